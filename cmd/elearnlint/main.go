// Package main provides the elearnlint CLI, a thin reference driver over
// the elearnparse facade for inspecting a package directory on disk.
//
// Usage:
//
//	elearnlint detect <dir>     - report the module type a package satisfies
//	elearnlint validate <dir>   - run the rule-based validator, print issues as JSON
//	elearnlint metadata <dir>   - parse and project to ModuleMetadata, print as JSON
//	elearnlint version          - print the CLI version
//	elearnlint help             - print usage
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/ternarybob/elearnparse"
	"github.com/ternarybob/elearnparse/pkg/fileaccess"
)

const cliVersion = "0.1.0"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	var err error
	switch cmd {
	case "detect":
		err = cmdDetect(args)
	case "validate":
		err = cmdValidate(args)
	case "metadata":
		err = cmdMetadata(args)
	case "version", "-v", "--version":
		fmt.Println(cliVersion)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", cmd)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`elearnlint - SCORM/AICC/cmi5 package inspector

Usage:
  elearnlint detect <dir>
  elearnlint validate <dir>
  elearnlint metadata <dir>
  elearnlint version
  elearnlint help`)
}

func openPackage(args []string) (fileaccess.FileAccess, error) {
	if len(args) < 1 {
		return nil, fmt.Errorf("missing package directory argument")
	}
	return fileaccess.NewLocal(args[0])
}

func cmdDetect(args []string) error {
	fa, err := openPackage(args)
	if err != nil {
		return err
	}
	mt, err := elearnparse.Detect(context.Background(), fa)
	if err != nil {
		return err
	}
	fmt.Println(mt.String())
	return nil
}

func cmdValidate(args []string) error {
	fa, err := openPackage(args)
	if err != nil {
		return err
	}
	result := elearnparse.Validate(context.Background(), fa)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		return fmt.Errorf("encode validation result: %w", err)
	}
	if !result.IsValid() {
		os.Exit(1)
	}
	return nil
}

func cmdMetadata(args []string) error {
	fa, err := openPackage(args)
	if err != nil {
		return err
	}
	md, err := elearnparse.Parse(context.Background(), fa)
	if err != nil {
		if pe, ok := elearnparse.AsParseError(err); ok && pe.Kind == elearnparse.KindValidation {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			_ = enc.Encode(pe.Result)
			os.Exit(1)
		}
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(md)
}

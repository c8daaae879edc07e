package aicc

import (
	"context"
	"fmt"
	"io"
	"strings"

	"gopkg.in/ini.v1"

	"github.com/ternarybob/elearnparse/pkg/fileaccess"
)

// loadINI reads path through fa and parses it as an AICC descriptor file.
// AICC key lookups are case-insensitive (spec §3.5); Course_Description's
// body is free text rather than key/value pairs, so it is loaded
// unparsed via ini.v1's UnparseableSections option.
func loadINI(ctx context.Context, fa fileaccess.FileAccess, path string) (*ini.File, error) {
	rc, err := fa.Open(ctx, path)
	if err != nil {
		return nil, &Error{File: path, Cause: err}
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, &Error{File: path, Cause: err}
	}

	cfg, err := ini.LoadSources(ini.LoadOptions{
		Insensitive:         true,
		UnparseableSections: []string{"Course_Description"},
	}, data)
	if err != nil {
		return nil, &Error{File: path, Cause: err}
	}
	return cfg, nil
}

// bindCourse parses the .crs file's [Course] and [Course_Description]
// blocks into a Course.
func bindCourse(cfg *ini.File) Course {
	sec := cfg.Section("Course")
	c := Course{
		ID:      strings.TrimSpace(sec.Key("Course_ID").String()),
		Title:   strings.TrimSpace(sec.Key("Course_Title").String()),
		Version: strings.TrimSpace(sec.Key("Version").String()),
	}
	c.Description = strings.TrimSpace(cfg.Section("Course_Description").Body())
	return c
}

// Error is a structural AICC parse failure: an unreadable or malformed
// descriptor file. Missing optional files (.ort, .pre) are never this
// error; those are simply absent records (spec §4.3, §7).
type Error struct {
	File  string
	Cause error
}

func (e *Error) Error() string {
	return fmt.Sprintf("aicc: failed to parse %s: %v", e.File, e.Cause)
}

func (e *Error) Unwrap() error { return e.Cause }

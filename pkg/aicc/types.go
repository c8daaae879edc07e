// Package aicc implements the typed schema model and parser for AICC
// CMI001 content packages: four INI/CSV-hybrid descriptor files sharing a
// package stem (spec §3.5, §4.3).
package aicc

import (
	"time"

	"github.com/ternarybob/elearnparse/pkg/model"
)

// Course is the package-level metadata from the .crs file's [Course] and
// [Course_Description] blocks.
type Course struct {
	ID          string
	Title       string
	Description string
	Version     string
}

// AU is one assignable unit, a record from the .au file keyed by System_ID.
type AU struct {
	SystemID     string
	Title        string
	FileName     string // launch file, relative to the package root
	Command      string
	MaxTimeAllowed *time.Duration
	MasteryScore *model.Percent
	Type         string
	WebLaunch    bool
}

// Block is a non-launchable grouping node from the .des file, keyed by
// System_ID, sharing the same descriptor table as AUs.
type Block struct {
	SystemID string
	Title    string
	Type     string
}

// StructureNode is one parent/children record from the .cst file (spec
// §3.5). Children is the raw ordered list of System_IDs; it is kept as
// identifiers and walked by System_ID lookup within this package.
type StructureNode struct {
	SystemID string
	Children []string
}

// ObjectiveRelation is one record from the optional .ort file, mapping an
// AU's local objective IDs onto the shared objective namespace.
type ObjectiveRelation struct {
	SystemID    string
	ObjectiveID string
}

// Manifest is the root of a parsed AICC package (spec §3.3, §3.5).
type Manifest struct {
	Course          Course
	Blocks          []Block
	AUs             []AU
	Structure       []StructureNode
	Objectives      []ObjectiveRelation
	Prerequisites   map[string]string // System_ID -> raw prerequisite expression text
	LaunchURLValue  string
	DurationValue   *time.Duration
}

var _ model.Manifest = (*Manifest)(nil)

func (m *Manifest) Title() string { return m.Course.Title }

func (m *Manifest) Description() (string, bool) {
	return m.Course.Description, m.Course.Description != ""
}

func (m *Manifest) LaunchURL() (string, bool) {
	return m.LaunchURLValue, m.LaunchURLValue != ""
}

func (m *Manifest) Identifier() string { return m.Course.ID }

func (m *Manifest) Version() (string, bool) {
	return m.Course.Version, m.Course.Version != ""
}

func (m *Manifest) Duration() (time.Duration, bool) {
	if m.DurationValue == nil {
		return 0, false
	}
	return *m.DurationValue, true
}

func (m *Manifest) ModuleType() model.ModuleType { return model.AICC }

// AUByID linear-scans AUs for a case-insensitive System_ID match.
func (m *Manifest) AUByID(id string) (*AU, bool) {
	for i := range m.AUs {
		if strEqualFold(m.AUs[i].SystemID, id) {
			return &m.AUs[i], true
		}
	}
	return nil, false
}

// RootStructureNodes returns the StructureNodes that are never listed as
// another node's child — the roots of the course-structure forest.
func (m *Manifest) RootStructureNodes() []StructureNode {
	isChild := make(map[string]bool, len(m.Structure))
	for _, n := range m.Structure {
		for _, c := range n.Children {
			isChild[c] = true
		}
	}
	var roots []StructureNode
	for _, n := range m.Structure {
		if !isChild[n.SystemID] {
			roots = append(roots, n)
		}
	}
	return roots
}

func strEqualFold(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		ca, cb := a[i], b[i]
		if 'A' <= ca && ca <= 'Z' {
			ca += 'a' - 'A'
		}
		if 'A' <= cb && cb <= 'Z' {
			cb += 'a' - 'A'
		}
		if ca != cb {
			return false
		}
	}
	return true
}

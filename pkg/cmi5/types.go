// Package cmi5 implements the typed schema model and parser for cmi5
// content packages: a single cmi5.xml course-structure document (spec
// §3.7, §4.3).
package cmi5

import (
	"time"

	"github.com/ternarybob/elearnparse/pkg/model"
)

// LaunchMethod controls how an LMS opens an AU (spec §3.7).
type LaunchMethod string

const (
	LaunchMethodOwnWindow LaunchMethod = "OwnWindow"
	LaunchMethodAnyWindow LaunchMethod = "AnyWindow"
)

// MoveOn governs when an AU is considered complete for sequencing
// purposes.
type MoveOn string

const (
	MoveOnPassed               MoveOn = "Passed"
	MoveOnCompleted            MoveOn = "Completed"
	MoveOnCompletedAndPassed   MoveOn = "CompletedAndPassed"
	MoveOnCompletedOrPassed    MoveOn = "CompletedOrPassed"
	MoveOnNotApplicable        MoveOn = "NotApplicable"
)

// Translation is one langstring entry on a title or description.
type Translation struct {
	Lang string
	Text string
}

// AU is an assignable unit leaf node (spec §3.7). EntitlementKey and
// LaunchParameters are optional dialect fields the cmi5 profile allows
// alongside the spec-mandated attributes.
type AU struct {
	ID               string // IRI
	Titles           []Translation
	Descriptions     []Translation
	URL              string
	LaunchMethod     LaunchMethod
	MoveOn           MoveOn
	MasteryScore     *model.Percent
	LaunchParameters string
	EntitlementKey   string
}

// Block is a non-launchable grouping node; Blocks and AUs both nest under
// Block, and Block nests under Course or another Block.
type Block struct {
	ID           string
	Titles       []Translation
	Descriptions []Translation
	Blocks       []Block
	AUs          []AU
}

// Course is the root grouping node (spec §3.7).
type Course struct {
	ID           string // IRI
	Titles       []Translation
	Descriptions []Translation
	Blocks       []Block
	AUs          []AU
}

// Manifest is the root of a parsed cmi5 package.
type Manifest struct {
	Course         Course
	LaunchURLValue string
	DurationValue  *time.Duration
}

var _ model.Manifest = (*Manifest)(nil)

func (m *Manifest) Title() string {
	return firstTranslation(m.Course.Titles)
}

func (m *Manifest) Description() (string, bool) {
	d := firstTranslation(m.Course.Descriptions)
	return d, d != ""
}

func (m *Manifest) LaunchURL() (string, bool) {
	return m.LaunchURLValue, m.LaunchURLValue != ""
}

func (m *Manifest) Identifier() string { return m.Course.ID }

func (m *Manifest) Version() (string, bool) { return "", false }

func (m *Manifest) Duration() (time.Duration, bool) {
	if m.DurationValue == nil {
		return 0, false
	}
	return *m.DurationValue, true
}

func (m *Manifest) ModuleType() model.ModuleType { return model.CMI5 }

// Flatten returns every AU in document order, depth-first across the
// Course's Block tree.
func (m *Manifest) Flatten() []*AU {
	var out []*AU
	var walkBlock func(b *Block)
	walkBlock = func(b *Block) {
		for i := range b.AUs {
			out = append(out, &b.AUs[i])
		}
		for i := range b.Blocks {
			walkBlock(&b.Blocks[i])
		}
	}
	for i := range m.Course.AUs {
		out = append(out, &m.Course.AUs[i])
	}
	for i := range m.Course.Blocks {
		walkBlock(&m.Course.Blocks[i])
	}
	return out
}

func firstTranslation(ts []Translation) string {
	if len(ts) == 0 {
		return ""
	}
	for _, t := range ts {
		if t.Lang == "en" || t.Lang == "en-US" {
			return t.Text
		}
	}
	return ts[0].Text
}

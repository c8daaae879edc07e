// Package metadata projects any parsed manifest down to the uniform
// ModuleMetadata shape every caller works with once it no longer needs a
// spec-specific type switch (spec §4.6).
package metadata

import (
	"context"
	"time"

	"github.com/ternarybob/elearnparse/pkg/aicc"
	"github.com/ternarybob/elearnparse/pkg/cmi5"
	"github.com/ternarybob/elearnparse/pkg/fileaccess"
	"github.com/ternarybob/elearnparse/pkg/model"
	"github.com/ternarybob/elearnparse/pkg/resolve"
	"github.com/ternarybob/elearnparse/pkg/scorm"
)

// SequencingLevel classifies how much IMSSS sequencing a SCORM 2004
// manifest actually uses; always NONE outside SCORM 2004.
type SequencingLevel string

const (
	SequencingNone    SequencingLevel = "NONE"
	SequencingMinimal SequencingLevel = "MINIMAL"
	SequencingFull    SequencingLevel = "FULL"
)

// ModuleMetadata is the uniform shape every parsed package reduces to
// (spec §4.6). Manifest holds the concrete typed subtree (*scorm.Manifest,
// *aicc.Manifest, or *cmi5.Manifest) for callers that need spec-specific
// detail beyond this projection.
type ModuleMetadata struct {
	Manifest   model.Manifest
	ModuleType model.ModuleType

	XAPIEnabled bool
	Title       string
	Description string
	HasDescription bool
	LaunchURL   string
	Identifier  string
	Version     string
	HasVersion  bool
	Duration    time.Duration
	HasDuration bool

	Composite []model.MetadataFragment

	HasSequencing       bool
	SequencingLevel      SequencingLevel
	GlobalObjectiveIDs   []string
}

// FromScorm projects a parsed SCORM manifest and its resolved tree.
// XAPIEnabled is set when a tincan.xml is found at the package root
// alongside the manifest (spec §4.6, "or a companion tincan.xml").
func FromScorm(ctx context.Context, fa fileaccess.FileAccess, m *scorm.Manifest, tree *resolve.Tree) ModuleMetadata {
	_, hasTinCan := fileaccess.FindCaseInsensitive(ctx, fa, "", "tincan.xml")

	md := projectCommon(m)
	md.XAPIEnabled = hasTinCan
	md.HasSequencing = m.ModType == model.Scorm2004
	md.SequencingLevel = scormSequencingLevel(m)
	md.GlobalObjectiveIDs = globalObjectiveIDs(tree)
	return md
}

// FromAICC projects a parsed AICC manifest. AICC has no sequencing concept
// and no xAPI companion, per spec §4.6.
func FromAICC(m *aicc.Manifest) ModuleMetadata {
	md := projectCommon(m)
	md.SequencingLevel = SequencingNone
	return md
}

// FromCMI5 projects a parsed cmi5 manifest. cmi5 is always xAPI-enabled.
func FromCMI5(m *cmi5.Manifest) ModuleMetadata {
	md := projectCommon(m)
	md.XAPIEnabled = true
	md.SequencingLevel = SequencingNone
	return md
}

func projectCommon(m model.Manifest) ModuleMetadata {
	md := ModuleMetadata{
		Manifest:   m,
		ModuleType: m.ModuleType(),
		Title:      m.Title(),
		Identifier: m.Identifier(),
	}
	md.LaunchURL, _ = m.LaunchURL()
	md.Description, md.HasDescription = m.Description()
	md.Version, md.HasVersion = m.Version()
	md.Duration, md.HasDuration = m.Duration()
	return md
}

// scormSequencingLevel implements spec §4.6's three-tier classification,
// taking the strongest level declared by any organization's own sequencing
// block or any item's (inline, or looked up in the sequencing collection
// by the item's IDRef).
func scormSequencingLevel(m *scorm.Manifest) SequencingLevel {
	if m.ModType != model.Scorm2004 {
		return SequencingNone
	}

	strongest := SequencingNone
	consider := func(hasRules, hasMinimal bool) {
		if hasRules {
			strongest = SequencingFull
			return
		}
		if hasMinimal && strongest == SequencingNone {
			strongest = SequencingMinimal
		}
	}

	for _, org := range m.Organizations.List {
		if org.Sequencing != nil {
			consider(org.Sequencing.HasRules(), org.Sequencing.HasMinimalControls())
		}
		for _, item := range org.Flatten() {
			seq := item.Sequencing
			if seq == nil && item.SequencingRef != "" {
				seq, _ = m.SequencingByIDRef(item.SequencingRef)
			}
			if seq != nil {
				consider(seq.HasRules(), seq.HasMinimalControls())
			}
		}
		if strongest == SequencingFull {
			return strongest
		}
	}
	return strongest
}

func globalObjectiveIDs(tree *resolve.Tree) []string {
	if tree == nil {
		return nil
	}
	ids := make([]string, 0, len(tree.ObjectiveToGlobals))
	for id := range tree.ObjectiveToGlobals {
		ids = append(ids, id)
	}
	return ids
}

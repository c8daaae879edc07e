// Package scorm implements the typed schema model and parser for SCORM 1.2
// and SCORM 2004 (2nd/3rd/4th edition) content packages (spec §3.3, §4.3).
package scorm

import (
	"time"

	"github.com/ternarybob/elearnparse/pkg/model"
	"github.com/ternarybob/elearnparse/pkg/scorm/sequencing"
)

// ScormType distinguishes a launchable SCO from a static asset (spec
// §3.3).
type ScormType string

const (
	ScormTypeSCO   ScormType = "sco"
	ScormTypeAsset ScormType = "asset"
)

// File is a single file belonging to a Resource.
type File struct {
	Href model.Path
}

// Resource is a file-level bundle referenced by one or more Items (spec
// §3.3). Dependencies are kept as resource identifiers; pkg/resolve does
// not convert them into indices.
type Resource struct {
	Identifier   string
	Type         string
	ScormType    ScormType
	Href         model.Path
	Files        []File
	Dependencies []string // resource identifiers
}

// Item is a node in an Organization's navigation tree (spec §3.3). Items
// nest; IdentifierRef, when set, points at a leaf Resource.
type Item struct {
	Identifier     string
	Title          string
	IdentifierRef  string // resource identifier, empty if this item has no launchable content
	Parameters     string
	IsVisible      bool
	MasteryScore   *model.Percent
	Prerequisites  string
	DataFromLMS    string
	Items          []Item
	SequencingRef  string // IDRef into the manifest's sequencing collection, SCORM 2004 only
	Sequencing     *sequencing.Sequencing
}

// Organization is one navigation tree over the package's resources (spec
// §3.3).
type Organization struct {
	Identifier string
	Title      string
	Items      []Item
	Sequencing *sequencing.Sequencing
}

// Organizations holds the default organization reference plus the full
// list (spec §3.3).
type Organizations struct {
	Default string // identifier of the default Organization
	List    []Organization
}

// ExternalMetadata is the optional composite fragment fetched from a
// sibling metadata document pointed at by adlcp:location (spec §9,
// "Cross-file metadata lookup"). Non-nil whenever adlcp:location is
// present; Fields stays nil if resolution is off or the file is not found.
type ExternalMetadata struct {
	Location string
	Fields   map[string]string
}

// Manifest is the root of a parsed SCORM package (spec §3.3).
type Manifest struct {
	ModType               model.ModuleType // ScormV12 or Scorm2004
	Edition               model.Edition    // meaningful only when ModType == Scorm2004
	ManifestIdentifier    string
	ManifestVersion       string
	Organizations         Organizations
	Resources             []Resource
	SequencingCollection  []sequencing.Sequencing
	ManifestTitle         string
	ManifestDescription   string
	LaunchURLValue        string
	DurationValue         *time.Duration
	ExternalMeta          *ExternalMetadata
}

var _ model.Manifest = (*Manifest)(nil)

func (m *Manifest) Title() string { return m.ManifestTitle }

func (m *Manifest) Description() (string, bool) {
	return m.ManifestDescription, m.ManifestDescription != ""
}

func (m *Manifest) LaunchURL() (string, bool) {
	return m.LaunchURLValue, m.LaunchURLValue != ""
}

func (m *Manifest) Identifier() string { return m.ManifestIdentifier }

func (m *Manifest) Version() (string, bool) {
	return m.ManifestVersion, m.ManifestVersion != ""
}

func (m *Manifest) Duration() (time.Duration, bool) {
	if m.DurationValue == nil {
		return 0, false
	}
	return *m.DurationValue, true
}

func (m *Manifest) ModuleType() model.ModuleType { return m.ModType }

// DefaultOrganization returns the Organization named by
// Organizations.Default, or the first organization if the default
// reference is empty or unresolved.
func (m *Manifest) DefaultOrganization() (*Organization, bool) {
	for i := range m.Organizations.List {
		if m.Organizations.List[i].Identifier == m.Organizations.Default {
			return &m.Organizations.List[i], true
		}
	}
	if len(m.Organizations.List) > 0 {
		return &m.Organizations.List[0], true
	}
	return nil, false
}

// ResourceByID linear-scans Resources for an identifier match. Callers
// doing this repeatedly should use pkg/resolve's index instead; this
// helper exists for one-off lookups and tests.
func (m *Manifest) ResourceByID(id string) (*Resource, bool) {
	for i := range m.Resources {
		if m.Resources[i].Identifier == id {
			return &m.Resources[i], true
		}
	}
	return nil, false
}

// SequencingByIDRef looks up a reusable Sequencing block by its ID within
// the manifest's SequencingCollection (spec §3.3's "by-reference
// composition" — materialized on access, never copied).
func (m *Manifest) SequencingByIDRef(id string) (*sequencing.Sequencing, bool) {
	for i := range m.SequencingCollection {
		if m.SequencingCollection[i].ID == id {
			return &m.SequencingCollection[i], true
		}
	}
	return nil, false
}

// Flatten returns every Item of this Organization in document order,
// depth-first, parent before children.
func (o *Organization) Flatten() []*Item {
	var out []*Item
	var walk func(items []Item)
	walk = func(items []Item) {
		for i := range items {
			out = append(out, &items[i])
			walk(items[i].Items)
		}
	}
	walk(o.Items)
	return out
}

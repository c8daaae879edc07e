package elearnparse

import "github.com/ternarybob/elearnparse/pkg/validate"

// Options configures a ParseWith/ValidateWith call (spec §6.3). The zero
// value is never used directly — call DefaultOptions and override from
// there, the "builder with defaults" pattern.
type Options struct {
	// Mode selects strict or lenient validation severity handling.
	Mode validate.Mode
	// MaxDecompressedFileSize bounds a single file's decompressed size for
	// archive-backed FileAccess implementations (spec §5). The reference
	// local-directory backend ignores it; it exists for backends that do
	// decompress.
	MaxDecompressedFileSize uint64
	// MaxExpansionRatio bounds total decompressed-to-compressed size for
	// archive-backed backends (spec §5).
	MaxExpansionRatio uint32
	// CaseInsensitiveManifestLookup lets imsmanifest.xml be found
	// regardless of case, matching how real LMS content packages ship.
	// cmi5.xml is always looked up case-insensitively.
	CaseInsensitiveManifestLookup bool
	// ResolveExternalMetadata fetches the SCORM metadata/adlcp:location
	// sibling document when present.
	ResolveExternalMetadata bool
	// RuleProfile optionally overrides validation rule severities or
	// disables non-required rules (spec §9's rule-profile configuration).
	// Nil uses every rule at its default severity.
	RuleProfile *validate.Profile
}

// DefaultOptions returns the spec-mandated defaults (spec §6.3).
func DefaultOptions() Options {
	return Options{
		Mode:                          validate.ModeStrict,
		MaxDecompressedFileSize:       100_000_000,
		MaxExpansionRatio:             200,
		CaseInsensitiveManifestLookup: true,
		ResolveExternalMetadata:       true,
	}
}

func (o Options) validateMode() validate.Mode {
	if o.Mode == "" {
		return validate.ModeStrict
	}
	return o.Mode
}

package scorm

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/ternarybob/elearnparse/internal/logging"
	"github.com/ternarybob/elearnparse/pkg/fileaccess"
	"github.com/ternarybob/elearnparse/pkg/model"
)

// ParseOptions configures a single SCORM parse call; it mirrors the subset
// of the root elearnparse.Options the SCORM parser cares about (spec
// §6.3), kept local to avoid an import cycle with the root package.
type ParseOptions struct {
	CaseInsensitiveManifestLookup bool
	ResolveExternalMetadata       bool
}

// DefaultParseOptions matches spec §6.3's documented defaults.
func DefaultParseOptions() ParseOptions {
	return ParseOptions{CaseInsensitiveManifestLookup: true, ResolveExternalMetadata: true}
}

// Parse locates imsmanifest.xml, binds it to the typed schema model, and
// computes the launch URL and duration (spec §4.3). It never fails on a
// missing optional field; it fails fast on structural XML defects.
func Parse(ctx context.Context, fa fileaccess.FileAccess, opts ParseOptions) (*Manifest, error) {
	log := logging.Get()

	path := "imsmanifest.xml"
	if opts.CaseInsensitiveManifestLookup {
		if found, ok := fileaccess.FindCaseInsensitive(ctx, fa, "", "imsmanifest.xml"); ok {
			path = found
		}
	}
	if !fa.Exists(ctx, path) {
		return nil, &Error{File: path, Cause: fmt.Errorf("manifest not found")}
	}

	rc, err := fa.Open(ctx, path)
	if err != nil {
		return nil, &Error{File: path, Cause: err}
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, &Error{File: path, Cause: err}
	}

	var xm xmlManifest
	if err := xml.Unmarshal(data, &xm); err != nil {
		return nil, &Error{File: path, Cause: err}
	}

	modType, edition := determineEdition(&xm)
	log.Debug().Str("module_type", modType.String()).Str("edition", string(edition)).Msg("scorm manifest bound")

	m, bindErrs := bind(&xm, modType, edition)
	for _, e := range bindErrs {
		var numErr *strconv.NumError
		if errors.As(e, &numErr) {
			return nil, &Error{File: path, Cause: e}
		}
		log.Warn().Err(e).Str("file", path).Msg("scorm manifest field defaulted after parse error")
	}
	if len(bindErrs) > 0 && m.ManifestIdentifier == "" {
		// An empty identifier alongside field-level errors means the
		// document was too malformed to trust; surface the first cause.
		return nil, &Error{File: path, Cause: bindErrs[0]}
	}

	m.LaunchURLValue = computeLaunchURL(m)
	m.DurationValue = computeDuration(m)

	if opts.ResolveExternalMetadata && m.ExternalMeta != nil {
		resolveExternalMetadata(ctx, fa, m.ExternalMeta)
	}

	return m, nil
}

// determineEdition inspects the bound XML tree's schema-version text and
// the presence of any sequencing block to choose ModuleType and, for
// SCORM 2004, the edition (spec §6.1).
func determineEdition(xm *xmlManifest) (model.ModuleType, model.Edition) {
	hasSequencing := len(xm.Sequencing) > 0 || treeHasSequencing(xm.Organizations.List)

	schemaVersion := ""
	if xm.Metadata != nil {
		schemaVersion = strings.ToLower(strings.TrimSpace(xm.Metadata.SchemaVersion))
	}

	if !hasSequencing && (schemaVersion == "" || schemaVersion == "1.2") {
		return model.ScormV12, model.EditionNone
	}

	switch {
	case strings.Contains(schemaVersion, "4th"):
		return model.Scorm2004, model.EditionFourth
	case strings.Contains(schemaVersion, "3rd"):
		return model.Scorm2004, model.EditionThird
	case strings.Contains(schemaVersion, "cam 1.3"), strings.Contains(schemaVersion, "2nd"):
		return model.Scorm2004, model.EditionSecond
	default:
		// SCORM 2004 content with an ambiguous or absent schema-version
		// string but an IMSSS sequencing block present: default to the
		// 2nd edition, the original 2004 release (documented Open
		// Question resolution, DESIGN.md).
		return model.Scorm2004, model.EditionSecond
	}
}

func treeHasSequencing(orgs []xmlOrganization) bool {
	for _, o := range orgs {
		if o.Sequencing != nil {
			return true
		}
		if itemsHaveSequencing(o.Items) {
			return true
		}
	}
	return false
}

func itemsHaveSequencing(items []xmlItem) bool {
	for _, it := range items {
		if it.Sequencing != nil {
			return true
		}
		if itemsHaveSequencing(it.Items) {
			return true
		}
	}
	return false
}

// computeLaunchURL implements spec §4.3 step 5 for SCORM: the first
// flattened Item with an identifierRef in the default organization,
// combined with the referenced resource's href and the item's parameters
// (query string deduplicated on "?").
func computeLaunchURL(m *Manifest) string {
	org, ok := m.DefaultOrganization()
	if !ok {
		return ""
	}
	for _, item := range org.Flatten() {
		if item.IdentifierRef == "" {
			continue
		}
		res, ok := m.ResourceByID(item.IdentifierRef)
		if !ok || res.Href == "" {
			continue
		}
		return joinHrefParams(string(res.Href), item.Parameters)
	}
	return ""
}

// joinHrefParams appends an item's parameters to a resource href,
// deduplicating a leading "?" (spec §4.3 step 5).
func joinHrefParams(href, params string) string {
	if params == "" {
		return href
	}
	params = strings.TrimPrefix(params, "?")
	if strings.Contains(href, "?") {
		return href + "&" + params
	}
	return href + "?" + params
}

// computeDuration implements spec §4.3 step 6: sum per-item
// timeLimitAction-adjacent duration fields — here, each item sequencing
// block's attemptAbsoluteDurationLimit — into a single total (documented
// interpretation, SPEC_FULL.md / DESIGN.md).
func computeDuration(m *Manifest) *time.Duration {
	var total int64
	found := false
	for i := range m.SequencingCollection {
		if d := m.SequencingCollection[i].LimitConditions.AttemptAbsoluteDurationLimit; d != nil {
			total += d.Nanoseconds
			found = true
		}
	}
	for _, org := range m.Organizations.List {
		for _, item := range org.Flatten() {
			if item.Sequencing != nil && item.Sequencing.LimitConditions.AttemptAbsoluteDurationLimit != nil {
				total += item.Sequencing.LimitConditions.AttemptAbsoluteDurationLimit.Nanoseconds
				found = true
			}
		}
	}
	if !found {
		return nil
	}
	d := time.Duration(total)
	return &d
}

// resolveExternalMetadata fetches the sibling metadata document an
// adlcp:location attribute names (spec §9's "Cross-file metadata lookup").
// A missing file is silently skipped, never a parse failure.
func resolveExternalMetadata(ctx context.Context, fa fileaccess.FileAccess, em *ExternalMetadata) {
	// Intentionally best-effort: the metadata pointed to by adlcp:location
	// is vendor-specific LOM XML with no fixed schema across packages, so
	// only raw existence + byte count are recorded as a composite
	// fragment; a richer binder is out of this core's scope per spec §1.
	if !fa.Exists(ctx, em.Location) {
		return
	}
	rc, err := fa.Open(ctx, em.Location)
	if err != nil {
		return
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return
	}
	em.Fields = map[string]string{"size_bytes": strconv.Itoa(len(data))}
}

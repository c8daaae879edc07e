package detect

import (
	"bufio"
	"context"
	"io"
	"strings"

	"github.com/ternarybob/elearnparse/pkg/fileaccess"
	"github.com/ternarybob/elearnparse/pkg/model"
)

// ScormPlugin probes for imsmanifest.xml and, if found, sniffs
// <schemaversion> and the IMSSS namespace to choose between SCORM_12 and
// SCORM_2004 (spec §4.2, §6.1).
type ScormPlugin struct{}

func (p *ScormPlugin) Name() string    { return "scorm" }
func (p *ScormPlugin) Priority() int32  { return 100 }

func (p *ScormPlugin) Detect(ctx context.Context, fa fileaccess.FileAccess) (model.ModuleType, error) {
	path, ok := fileaccess.FindCaseInsensitive(ctx, fa, "", "imsmanifest.xml")
	if !ok {
		return model.ModuleTypeUnknown, nil
	}

	rc, err := fa.Open(ctx, path)
	if err != nil {
		return model.ModuleTypeUnknown, &Error{File: path, Plugin: p.Name(), Cause: err}
	}
	defer rc.Close()

	schemaVersion, hasIMSSS, err := sniffSchema(rc)
	if err != nil {
		return model.ModuleTypeUnknown, &Error{File: path, Plugin: p.Name(), Cause: err}
	}

	if hasIMSSS || isScorm2004Version(schemaVersion) {
		return model.Scorm2004, nil
	}
	return model.ScormV12, nil
}

// sniffSchema scans up to the first few KB of an imsmanifest.xml for a
// <schemaversion> element's text content and the presence of the IMSSS
// namespace URI, without fully parsing the document.
func sniffSchema(rc io.Reader) (schemaVersion string, hasIMSSS bool, err error) {
	const maxScan = 8192
	buf := make([]byte, maxScan)
	scanner := bufio.NewReader(rc)
	n, readErr := scanner.Read(buf)
	if readErr != nil && n == 0 {
		return "", false, readErr
	}
	content := string(buf[:n])

	hasIMSSS = strings.Contains(content, "imsss")

	if idx := strings.Index(content, "<schemaversion"); idx >= 0 {
		rest := content[idx:]
		if start := strings.Index(rest, ">"); start >= 0 {
			rest = rest[start+1:]
			if end := strings.Index(rest, "<"); end >= 0 {
				schemaVersion = strings.TrimSpace(rest[:end])
			}
		}
	}
	return schemaVersion, hasIMSSS, nil
}

// isScorm2004Version reports whether a <schemaversion> string names a
// SCORM 2004 edition (spec §6.1: "1.2", "CAM 1.3", "2004 3rd Edition",
// "2004 4th Edition").
func isScorm2004Version(v string) bool {
	v = strings.ToLower(v)
	if v == "" || v == "1.2" {
		return false
	}
	return strings.Contains(v, "2004") || strings.Contains(v, "cam 1.3")
}

// Cmi5Plugin probes for cmi5.xml (spec §4.2).
type Cmi5Plugin struct{}

func (p *Cmi5Plugin) Name() string   { return "cmi5" }
func (p *Cmi5Plugin) Priority() int32 { return 90 }

func (p *Cmi5Plugin) Detect(ctx context.Context, fa fileaccess.FileAccess) (model.ModuleType, error) {
	if _, ok := fileaccess.FindCaseInsensitive(ctx, fa, "", "cmi5.xml"); ok {
		return model.CMI5, nil
	}
	return model.ModuleTypeUnknown, nil
}

// AiccPlugin probes for any file whose extension is .crs or .au,
// case-insensitively (spec §4.2).
type AiccPlugin struct{}

func (p *AiccPlugin) Name() string   { return "aicc" }
func (p *AiccPlugin) Priority() int32 { return 80 }

func (p *AiccPlugin) Detect(ctx context.Context, fa fileaccess.FileAccess) (model.ModuleType, error) {
	paths, err := fa.List(ctx, "")
	if err != nil {
		return model.ModuleTypeUnknown, &Error{Plugin: p.Name(), Cause: err}
	}
	for _, path := range paths {
		lower := strings.ToLower(path)
		if strings.HasSuffix(lower, ".crs") || strings.HasSuffix(lower, ".au") {
			return model.AICC, nil
		}
	}
	return model.ModuleTypeUnknown, nil
}

// TinCanPlugin probes for tincan.xml (spec §4.2, optional priority-70
// plugin).
type TinCanPlugin struct{}

func (p *TinCanPlugin) Name() string   { return "xapi-tincan" }
func (p *TinCanPlugin) Priority() int32 { return 70 }

func (p *TinCanPlugin) Detect(ctx context.Context, fa fileaccess.FileAccess) (model.ModuleType, error) {
	if _, ok := fileaccess.FindCaseInsensitive(ctx, fa, "", "tincan.xml"); ok {
		return model.TinCan, nil
	}
	return model.ModuleTypeUnknown, nil
}

package validate

import "strings"

// rulePathSafety is the one rule a profile can never disable (spec §4.5).
// It checks every href-shaped string reachable from the manifest —
// resource hrefs for SCORM, file_name for AICC, url for cmi5 — against
// three failure modes: ../ traversal, a leading absolute path, and a
// foreign URL scheme that would let a package reach outside its own
// content root.
func rulePathSafety(ctx *Context) *Result {
	res := &Result{}
	for _, p := range pathsInScope(ctx) {
		checkPath(res, p.path, p.location)
	}
	return res
}

type scopedPath struct {
	path     string
	location string
}

func pathsInScope(ctx *Context) []scopedPath {
	var out []scopedPath
	switch {
	case ctx.Scorm != nil:
		for i := range ctx.Scorm.Resources {
			r := &ctx.Scorm.Resources[i]
			if r.Href != "" {
				out = append(out, scopedPath{string(r.Href), "imsmanifest.xml:resource[identifier=" + r.Identifier + "]@href"})
			}
			for _, f := range r.Files {
				out = append(out, scopedPath{string(f.Href), "imsmanifest.xml:resource[identifier=" + r.Identifier + "]/file@href"})
			}
		}
	case ctx.AICC != nil:
		for _, au := range ctx.AICC.AUs {
			out = append(out, scopedPath{au.FileName, ".au:System_ID=" + au.SystemID})
		}
	case ctx.CMI5 != nil:
		for _, au := range ctx.CMI5.Flatten() {
			out = append(out, scopedPath{au.URL, "cmi5.xml:au[id=" + au.ID + "]/url"})
		}
	}
	return out
}

func checkPath(res *Result, path, location string) {
	if path == "" {
		return
	}
	if scheme, _, ok := strings.Cut(path, "://"); ok && !strings.ContainsAny(scheme, "/\\") {
		res.Add(Issue{
			Severity: SeverityError,
			Code:     CodeUnsafeExternalURL,
			Message:  "path \"" + path + "\" references an external URL scheme",
			Location: location,
		})
		return
	}
	if strings.HasPrefix(path, "/") || strings.HasPrefix(path, "\\") || hasWindowsDriveLetter(path) {
		res.Add(Issue{
			Severity:     SeverityError,
			Code:         CodeUnsafeAbsolutePath,
			Message:      "path \"" + path + "\" is absolute, not package-relative",
			Location:     location,
			SuggestedFix: strPtr("make the path relative to the package root"),
		})
		return
	}
	if pathTraversesUp(path) {
		res.Add(Issue{
			Severity: SeverityError,
			Code:     CodeUnsafePathTraversal,
			Message:  "path \"" + path + "\" traverses outside the package root",
			Location: location,
		})
	}
}

func hasWindowsDriveLetter(path string) bool {
	return len(path) >= 2 && path[1] == ':' && ((path[0] >= 'a' && path[0] <= 'z') || (path[0] >= 'A' && path[0] <= 'Z'))
}

// pathTraversesUp reports whether any "../" or "..\\" segment would walk
// the resolved path above the package root, tracking depth rather than
// just string-matching "..", so "a/../b" (which stays inside the root) is
// not flagged.
func pathTraversesUp(path string) bool {
	normalized := strings.ReplaceAll(path, "\\", "/")
	depth := 0
	for _, seg := range strings.Split(normalized, "/") {
		switch seg {
		case "", ".":
			continue
		case "..":
			depth--
			if depth < 0 {
				return true
			}
		default:
			depth++
		}
	}
	return false
}

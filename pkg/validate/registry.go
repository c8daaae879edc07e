package validate

import "github.com/ternarybob/elearnparse/pkg/model"

// DefaultRules returns the rule set for a module type, in a stable,
// deterministic order so Merge's associativity (spec §8, invariant 5)
// isn't just theoretical — two Validate calls over the same package
// produce byte-identical issue ordering.
func DefaultRules(mt model.ModuleType) []Rule {
	switch mt {
	case model.ScormV12, model.Scorm2004:
		return scormRules()
	case model.AICC:
		return aiccRules()
	case model.CMI5:
		return cmi5Rules()
	default:
		return nil
	}
}

// Validate runs every default rule for ctx.ModuleType, merges their
// results, applies profile (nil is fine, it's a no-op), then applies mode.
func Validate(ctx *Context, mode Mode, profile *Profile) *Result {
	merged := &Result{}
	for _, rule := range DefaultRules(ctx.ModuleType) {
		merged = merged.Merge(rule.Check(ctx))
	}

	merged = profile.apply(merged)

	if mode == ModeLenient {
		merged = downgradeLenient(merged)
	}

	return merged
}

// downgradeLenient softens every ERROR that isn't one of the
// non-disableable path-safety codes to WARNING — lenient mode exists so an
// LMS can accept a package that a strict validator would reject for
// structural reasons that don't actually stop it from launching.
func downgradeLenient(res *Result) *Result {
	out := &Result{}
	for _, issue := range res.Issues {
		if issue.Severity == SeverityError && !nonDisableableCodes[issue.Code] {
			issue.Severity = SeverityWarning
		}
		out.Add(issue)
	}
	return out
}

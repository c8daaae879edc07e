package validate

import "strings"

func aiccRules() []Rule {
	return []Rule{
		NewRuleFunc(CodeAICCCourseIDMissing, ruleAICCCourseID),
		NewRuleFunc(CodeAICCMissingAURef, ruleAICCStructureReferencesKnownNodes),
		NewRuleFunc("PATH_SAFETY", rulePathSafety),
	}
}

func ruleAICCCourseID(ctx *Context) *Result {
	res := &Result{}
	if ctx.AICC == nil || strings.TrimSpace(ctx.AICC.Course.ID) == "" {
		res.Add(Issue{
			Severity: SeverityError,
			Code:     CodeAICCCourseIDMissing,
			Message:  "course descriptor has no Course_ID",
			Location: ".crs:[Course]/Course_ID",
		})
	}
	return res
}

// ruleAICCStructureReferencesKnownNodes requires every child System_ID in
// the .cst structure table to resolve to a known block or AU — AICC's
// analogue of SCORM's identifierref resolution rule.
func ruleAICCStructureReferencesKnownNodes(ctx *Context) *Result {
	res := &Result{}
	if ctx.AICC == nil {
		return res
	}
	known := map[string]bool{}
	for _, b := range ctx.AICC.Blocks {
		known[strings.ToLower(b.SystemID)] = true
	}
	for _, au := range ctx.AICC.AUs {
		known[strings.ToLower(au.SystemID)] = true
	}
	for _, node := range ctx.AICC.Structure {
		for _, child := range node.Children {
			if !known[strings.ToLower(child)] {
				res.Add(Issue{
					Severity: SeverityError,
					Code:     CodeAICCMissingAURef,
					Message:  "structure node \"" + node.SystemID + "\" references unknown System_ID \"" + child + "\"",
					Location: ".cst:System_ID=" + node.SystemID,
				})
			}
		}
	}
	return res
}

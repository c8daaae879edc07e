package validate

import (
	"strings"

	"github.com/ternarybob/elearnparse/pkg/scorm"
)

func scormRules() []Rule {
	return []Rule{
		NewRuleFunc(CodeManifestIdentifierMissing, ruleManifestIdentifier),
		NewRuleFunc(CodeOrganizationsMissing, ruleOrganizationsPresent),
		NewRuleFunc(CodeDefaultOrgUnresolved, ruleDefaultOrgResolves),
		NewRuleFunc(CodeResourcesMissing, ruleResourcesPresent),
		NewRuleFunc(CodeMissingResourceRef, ruleIdentifierRefsResolve),
		NewRuleFunc(CodeNoLaunchableResource, ruleHasLaunchableResource),
		NewRuleFunc(CodeResourceHrefRequired, ruleResourceHrefRequired),
		NewRuleFunc(CodeResourceHrefMissing, ruleResourceHrefOnDisk),
		NewRuleFunc(CodeOrphanedResource, ruleOrphanedResources),
		NewRuleFunc(CodeDuplicateItemID, ruleDuplicateItemIDs),
		NewRuleFunc(CodeDuplicateResourceID, ruleDuplicateResourceIDs),
		NewRuleFunc(CodeUnresolvedSequencingRef, ruleUnresolvedSequencingRefs),
		NewRuleFunc(CodeMultiWriterObjective, ruleMultiWriterObjectives),
		NewRuleFunc(CodeAttemptLimitNegative, ruleAttemptLimitNonNegative),
		NewRuleFunc("PATH_SAFETY", rulePathSafety),
	}
}

func ruleManifestIdentifier(ctx *Context) *Result {
	res := &Result{}
	if ctx.Scorm == nil || strings.TrimSpace(ctx.Scorm.ManifestIdentifier) == "" {
		res.Add(Issue{
			Severity: SeverityError,
			Code:     CodeManifestIdentifierMissing,
			Message:  "manifest has no identifier attribute",
			Location: "imsmanifest.xml:manifest@identifier",
		})
	}
	return res
}

func ruleOrganizationsPresent(ctx *Context) *Result {
	res := &Result{}
	if ctx.Scorm == nil || len(ctx.Scorm.Organizations.List) == 0 {
		res.Add(Issue{
			Severity: SeverityError,
			Code:     CodeOrganizationsMissing,
			Message:  "manifest declares no organizations",
			Location: "imsmanifest.xml:organizations",
		})
	}
	return res
}

func ruleDefaultOrgResolves(ctx *Context) *Result {
	res := &Result{}
	if ctx.Scorm == nil || len(ctx.Scorm.Organizations.List) == 0 {
		return res
	}
	if _, ok := ctx.Scorm.DefaultOrganization(); !ok {
		res.Add(Issue{
			Severity: SeverityError,
			Code:     CodeDefaultOrgUnresolved,
			Message:  "organizations@default does not reference a declared organization",
			Location: "imsmanifest.xml:organizations@default",
		})
	}
	return res
}

func ruleResourcesPresent(ctx *Context) *Result {
	res := &Result{}
	if ctx.Scorm == nil || len(ctx.Scorm.Resources) == 0 {
		res.Add(Issue{
			Severity: SeverityError,
			Code:     CodeResourcesMissing,
			Message:  "manifest declares no resources",
			Location: "imsmanifest.xml:resources",
		})
	}
	return res
}

// ruleIdentifierRefsResolve checks every item's identifierref against the
// resource index built during resolution (spec §4.5, "every identifierRef
// resolves").
func ruleIdentifierRefsResolve(ctx *Context) *Result {
	res := &Result{}
	if ctx.Scorm == nil {
		return res
	}
	for _, org := range ctx.Scorm.Organizations.List {
		for _, item := range org.Flatten() {
			if item.IdentifierRef == "" {
				continue
			}
			if _, ok := ctx.Scorm.ResourceByID(item.IdentifierRef); !ok {
				res.Add(Issue{
					Severity: SeverityError,
					Code:     CodeMissingResourceRef,
					Message:  "item identifierref \"" + item.IdentifierRef + "\" does not resolve to a declared resource",
					Location: "imsmanifest.xml:item[identifier=" + item.Identifier + "]",
				})
			}
		}
	}
	return res
}

// ruleHasLaunchableResource requires at least one item across every
// organization to carry an identifierref, so the package is launchable.
func ruleHasLaunchableResource(ctx *Context) *Result {
	res := &Result{}
	if ctx.Scorm == nil {
		return res
	}
	for _, org := range ctx.Scorm.Organizations.List {
		for _, item := range org.Flatten() {
			if item.IdentifierRef != "" {
				return res
			}
		}
	}
	res.Add(Issue{
		Severity: SeverityError,
		Code:     CodeNoLaunchableResource,
		Message:  "no item in any organization references a launchable resource",
		Location: "imsmanifest.xml:organizations",
	})
	return res
}

// ruleResourceHrefRequired requires a referenced SCO resource to declare an
// href — an aggregation resource with only <dependency> children is exempt.
func ruleResourceHrefRequired(ctx *Context) *Result {
	res := &Result{}
	if ctx.Scorm == nil {
		return res
	}
	referenced := referencedResourceIDs(ctx.Scorm)
	for i := range ctx.Scorm.Resources {
		r := &ctx.Scorm.Resources[i]
		if r.Href != "" || len(r.Dependencies) > 0 {
			continue
		}
		if !referenced[r.Identifier] {
			continue
		}
		res.Add(Issue{
			Severity: SeverityError,
			Code:     CodeResourceHrefRequired,
			Message:  "resource \"" + r.Identifier + "\" is referenced by an item but declares no href",
			Location: "imsmanifest.xml:resource[identifier=" + r.Identifier + "]",
		})
	}
	return res
}

func ruleResourceHrefOnDisk(ctx *Context) *Result {
	res := &Result{}
	if ctx.Tree == nil {
		return res
	}
	for _, id := range ctx.Tree.MissingHrefResources {
		res.Add(Issue{
			Severity: SeverityWarning,
			Code:     CodeResourceHrefMissing,
			Message:  "resource \"" + id + "\" href does not exist in the package",
			Location: "imsmanifest.xml:resource[identifier=" + id + "]",
		})
	}
	return res
}

// ruleOrphanedResources warns on resources no item transitively reaches —
// spec §4.5 lists this as a warning, not an error, since a package can
// legitimately ship unused assets (shared media libraries, for instance).
func ruleOrphanedResources(ctx *Context) *Result {
	res := &Result{}
	if ctx.Scorm == nil {
		return res
	}
	referenced := referencedResourceIDs(ctx.Scorm)
	for i := range ctx.Scorm.Resources {
		r := &ctx.Scorm.Resources[i]
		if referenced[r.Identifier] {
			continue
		}
		res.Add(Issue{
			Severity: SeverityWarning,
			Code:     CodeOrphanedResource,
			Message:  "resource \"" + r.Identifier + "\" is not referenced by any item",
			Location: "imsmanifest.xml:resource[identifier=" + r.Identifier + "]",
		})
	}
	return res
}

func referencedResourceIDs(m *scorm.Manifest) map[string]bool {
	out := map[string]bool{}
	var mark func(id string)
	mark = func(id string) {
		if id == "" || out[id] {
			return
		}
		out[id] = true
		if res, ok := m.ResourceByID(id); ok {
			for _, dep := range res.Dependencies {
				mark(dep)
			}
		}
	}
	for _, org := range m.Organizations.List {
		for _, item := range org.Flatten() {
			mark(item.IdentifierRef)
		}
	}
	return out
}

func ruleDuplicateItemIDs(ctx *Context) *Result {
	res := &Result{}
	if ctx.Tree == nil {
		return res
	}
	for _, id := range ctx.Tree.DuplicateItemIDs {
		res.Add(Issue{
			Severity: SeverityError,
			Code:     CodeDuplicateItemID,
			Message:  "item identifier \"" + id + "\" is declared more than once",
			Location: "imsmanifest.xml:item[identifier=" + id + "]",
		})
	}
	return res
}

func ruleDuplicateResourceIDs(ctx *Context) *Result {
	res := &Result{}
	if ctx.Tree == nil {
		return res
	}
	for _, id := range ctx.Tree.DuplicateResourceIDs {
		res.Add(Issue{
			Severity: SeverityError,
			Code:     CodeDuplicateResourceID,
			Message:  "resource identifier \"" + id + "\" is declared more than once",
			Location: "imsmanifest.xml:resource[identifier=" + id + "]",
		})
	}
	return res
}

func ruleUnresolvedSequencingRefs(ctx *Context) *Result {
	res := &Result{}
	if ctx.Tree == nil {
		return res
	}
	for _, id := range ctx.Tree.UnresolvedSequencingRefs {
		res.Add(Issue{
			Severity: SeverityWarning,
			Code:     CodeUnresolvedSequencingRef,
			Message:  "item \"" + id + "\" references a sequencing collection entry that does not exist",
			Location: "imsmanifest.xml:item[identifier=" + id + "]",
		})
	}
	return res
}

func ruleMultiWriterObjectives(ctx *Context) *Result {
	res := &Result{}
	if ctx.Tree == nil {
		return res
	}
	for _, id := range ctx.Tree.MultiWriterObjectives {
		res.Add(Issue{
			Severity: SeverityWarning,
			Code:     CodeMultiWriterObjective,
			Message:  "global objective \"" + id + "\" is written by more than one activity",
			Location: "imsmanifest.xml:objectiveID=" + id,
		})
	}
	return res
}

// ruleAttemptLimitNonNegative covers the one numeric range spec §4.3's
// newtypes don't already enforce at construction: attemptLimit has no
// dedicated type (it's a plain *int), so out-of-range values survive
// parsing and must be caught here.
func ruleAttemptLimitNonNegative(ctx *Context) *Result {
	res := &Result{}
	if ctx.Scorm == nil {
		return res
	}
	check := func(limit *int, loc string) {
		if limit != nil && *limit < 0 {
			res.Add(Issue{
				Severity: SeverityError,
				Code:     CodeAttemptLimitNegative,
				Message:  "attemptLimit must not be negative",
				Location: loc,
			})
		}
	}
	for i := range ctx.Scorm.SequencingCollection {
		seq := &ctx.Scorm.SequencingCollection[i]
		check(seq.LimitConditions.AttemptLimit, "imsmanifest.xml:sequencing[id="+seq.ID+"]")
	}
	for _, org := range ctx.Scorm.Organizations.List {
		for _, item := range org.Flatten() {
			if item.Sequencing != nil {
				check(item.Sequencing.LimitConditions.AttemptLimit, "imsmanifest.xml:item[identifier="+item.Identifier+"]")
			}
		}
	}
	return res
}

package validate

import (
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	cmi5ValidatorOnce sync.Once
	cmi5Validator     *validator.Validate
)

func getValidator() *validator.Validate {
	cmi5ValidatorOnce.Do(func() {
		cmi5Validator = validator.New()
	})
	return cmi5Validator
}

// iriTarget wraps a bare string so struct-tag validation (spec rule
// "xAPI activity-ID IRI well-formed") can reuse go-playground/validator's
// "uri" tag instead of hand-rolling an RFC 3987 check.
type iriTarget struct {
	IRI string `validate:"required,uri"`
}

func isWellFormedIRI(s string) bool {
	return getValidator().Struct(iriTarget{IRI: s}) == nil
}

func cmi5Rules() []Rule {
	return []Rule{
		NewRuleFunc(CodeCMI5MissingLaunchMethod, ruleCMI5LaunchMethod),
		NewRuleFunc(CodeCMI5MissingLaunchURL, ruleCMI5LaunchURL),
		NewRuleFunc(CodeCMI5InvalidActivityIRI, ruleCMI5ActivityIRIs),
		NewRuleFunc("PATH_SAFETY", rulePathSafety),
	}
}

// ruleCMI5LaunchMethod does not inspect individual AUs' launchMethod —
// bind.go already defaults a missing one to AnyWindow per the cmi5
// profile. It reports only a course having zero AUs at all, which means
// nothing is launchable.
func ruleCMI5LaunchMethod(ctx *Context) *Result {
	res := &Result{}
	if ctx.CMI5 == nil {
		return res
	}
	if len(ctx.CMI5.Flatten()) == 0 {
		res.Add(Issue{
			Severity: SeverityError,
			Code:     CodeCMI5MissingLaunchMethod,
			Message:  "course structure declares no assignable units",
			Location: "cmi5.xml:course",
		})
	}
	return res
}

func ruleCMI5LaunchURL(ctx *Context) *Result {
	res := &Result{}
	if ctx.CMI5 == nil {
		return res
	}
	for _, au := range ctx.CMI5.Flatten() {
		if au.URL == "" {
			res.Add(Issue{
				Severity: SeverityError,
				Code:     CodeCMI5MissingLaunchURL,
				Message:  "au \"" + au.ID + "\" declares no url",
				Location: "cmi5.xml:au[id=" + au.ID + "]",
			})
		}
	}
	return res
}

func ruleCMI5ActivityIRIs(ctx *Context) *Result {
	res := &Result{}
	if ctx.CMI5 == nil {
		return res
	}
	if ctx.CMI5.Course.ID != "" && !isWellFormedIRI(ctx.CMI5.Course.ID) {
		res.Add(Issue{
			Severity: SeverityError,
			Code:     CodeCMI5InvalidActivityIRI,
			Message:  "course id \"" + ctx.CMI5.Course.ID + "\" is not a well-formed IRI",
			Location: "cmi5.xml:course@id",
		})
	}
	for _, au := range ctx.CMI5.Flatten() {
		if au.ID != "" && !isWellFormedIRI(au.ID) {
			res.Add(Issue{
				Severity: SeverityError,
				Code:     CodeCMI5InvalidActivityIRI,
				Message:  "au id \"" + au.ID + "\" is not a well-formed IRI",
				Location: "cmi5.xml:au[id=" + au.ID + "]",
			})
		}
	}
	return res
}

package validate

// Mode selects how aggressively Validate treats structural-but-non-launch-
// affecting findings (spec §4.5).
type Mode string

const (
	// ModeStrict reports every rule at its default severity.
	ModeStrict Mode = "strict"
	// ModeLenient downgrades ERROR findings that don't prevent the package
	// from launching (everything except the non-disableable path-safety
	// rules) to WARNING.
	ModeLenient Mode = "lenient"
)

// Rule is one independent, stateless, idempotent check (spec §4.5). Two
// calls to Check with the same Context always produce the same Result —
// rules never carry mutable state between invocations.
type Rule interface {
	// Code is the stable identifier this rule's issues are reported under.
	Code() string
	// Check inspects ctx and returns any issues found. A Rule that finds
	// nothing returns an empty, non-nil Result.
	Check(ctx *Context) *Result
}

// RuleFunc adapts a plain function to the Rule interface for the common
// case of a rule with no state of its own.
type RuleFunc struct {
	code string
	fn   func(ctx *Context) *Result
}

func NewRuleFunc(code string, fn func(ctx *Context) *Result) RuleFunc {
	return RuleFunc{code: code, fn: fn}
}

func (r RuleFunc) Code() string { return r.code }

func (r RuleFunc) Check(ctx *Context) *Result { return r.fn(ctx) }

package prereq

// Eval folds an AST depth-first against env, a symbol → bool environment
// (spec §4.3's "Evaluation ... is a reusable pure function"). An
// identifier absent from env evaluates to false.
func Eval(n Node, env map[string]bool) bool {
	switch v := n.(type) {
	case Identifier:
		return env[v.Name]
	case And:
		for _, c := range v.Children {
			if !Eval(c, env) {
				return false
			}
		}
		return true
	case Or:
		for _, c := range v.Children {
			if Eval(c, env) {
				return true
			}
		}
		return false
	case Not:
		return !Eval(v.Child, env)
	default:
		return false
	}
}

// Render renders an AST back to AICC prerequisite syntax, fully
// parenthesizing and/or groups so round-tripping through Parse(Render(n))
// reproduces the same structure (spec §8, invariant 6).
func Render(n Node) string {
	switch v := n.(type) {
	case Identifier:
		if v.Optional {
			return v.Name + "?"
		}
		return v.Name
	case And:
		return joinChildren(v.Children, "&")
	case Or:
		return joinChildren(v.Children, "|")
	case Not:
		return "~" + parenthesizeIfCompound(v.Child)
	default:
		return ""
	}
}

func joinChildren(children []Node, op string) string {
	out := ""
	for i, c := range children {
		if i > 0 {
			out += op
		}
		out += parenthesizeIfCompound(c)
	}
	return out
}

func parenthesizeIfCompound(n Node) string {
	switch n.(type) {
	case And, Or:
		return "(" + Render(n) + ")"
	default:
		return Render(n)
	}
}

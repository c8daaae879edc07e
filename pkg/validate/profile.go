package validate

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

// Profile is an optional TOML document letting an LMS integrator override
// the default severity of specific validation codes, or disable them
// outright, without recompiling (spec §9, config section). The
// non-disableable path-safety codes ignore both DisabledCodes and
// SeverityOverrides.
type Profile struct {
	DisabledCodes     []string          `toml:"disabled_codes"`
	SeverityOverrides map[string]string `toml:"severity_overrides"`
}

// LoadProfile reads and parses a rule-profile TOML file: read, expand
// environment variables, then toml.Decode.
func LoadProfile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rule profile %q: %w", path, err)
	}
	expanded := os.ExpandEnv(string(data))

	p := &Profile{}
	if _, err := toml.Decode(expanded, p); err != nil {
		return nil, fmt.Errorf("parse rule profile %q: %w", path, err)
	}
	return p, nil
}

func (p *Profile) disabled(code string) bool {
	if p == nil || nonDisableableCodes[code] {
		return false
	}
	for _, c := range p.DisabledCodes {
		if strings.EqualFold(c, code) {
			return true
		}
	}
	return false
}

func (p *Profile) overrideSeverity(code string) (Severity, bool) {
	if p == nil || nonDisableableCodes[code] || p.SeverityOverrides == nil {
		return "", false
	}
	for c, sev := range p.SeverityOverrides {
		if strings.EqualFold(c, code) {
			return Severity(strings.ToUpper(sev)), true
		}
	}
	return "", false
}

func (p *Profile) apply(res *Result) *Result {
	if p == nil {
		return res
	}
	out := &Result{}
	for _, issue := range res.Issues {
		if p.disabled(issue.Code) {
			continue
		}
		if sev, ok := p.overrideSeverity(issue.Code); ok {
			issue.Severity = sev
		}
		out.Add(issue)
	}
	return out
}

package validate

import (
	"github.com/ternarybob/elearnparse/pkg/aicc"
	"github.com/ternarybob/elearnparse/pkg/cmi5"
	"github.com/ternarybob/elearnparse/pkg/model"
	"github.com/ternarybob/elearnparse/pkg/resolve"
	"github.com/ternarybob/elearnparse/pkg/scorm"
)

// Context bundles whichever typed manifest a Rule needs. Exactly one of
// Scorm, AICC, or CMI5 is populated, matching ModuleType. Tree is nil
// unless ModuleType is a SCORM variant — AICC and cmi5 resolve their own
// structure directly (pkg/aicc, pkg/cmi5) rather than through pkg/resolve.
type Context struct {
	ModuleType model.ModuleType

	Scorm *scorm.Manifest
	Tree  *resolve.Tree

	AICC *aicc.Manifest

	CMI5 *cmi5.Manifest
}

// NewScormContext builds a Context for a parsed SCORM manifest and its
// resolved activity tree.
func NewScormContext(m *scorm.Manifest, tree *resolve.Tree) *Context {
	return &Context{ModuleType: m.ModType, Scorm: m, Tree: tree}
}

// NewAICCContext builds a Context for a parsed AICC manifest.
func NewAICCContext(m *aicc.Manifest) *Context {
	return &Context{ModuleType: model.AICC, AICC: m}
}

// NewCMI5Context builds a Context for a parsed cmi5 manifest.
func NewCMI5Context(m *cmi5.Manifest) *Context {
	return &Context{ModuleType: model.CMI5, CMI5: m}
}

// Package detect implements the priority-ordered plugin dispatch that
// identifies which of the four target specifications a package tree
// satisfies (spec §4.2).
package detect

import (
	"context"
	"fmt"
	"sort"

	"github.com/ternarybob/elearnparse/internal/logging"
	"github.com/ternarybob/elearnparse/pkg/fileaccess"
	"github.com/ternarybob/elearnparse/pkg/model"
)

// Plugin probes a package tree for a single module type.
type Plugin interface {
	// Name identifies the plugin in diagnostics and registration-order
	// tie-breaking.
	Name() string
	// Priority determines dispatch order; plugins run in descending
	// priority, ties broken by registration order.
	Priority() int32
	// Detect reports the module type this plugin claims, or (ModuleTypeUnknown,
	// nil) if it does not recognize the package. A non-nil error means
	// the probe itself failed (e.g. the manifest it found could not be
	// parsed well enough to even identify).
	Detect(ctx context.Context, fa fileaccess.FileAccess) (model.ModuleType, error)
}

// Error is the structured failure a Registry.Detect call returns when
// either every plugin declined, or a plugin matched a marker file but
// could not make sense of it.
type Error struct {
	// Unknown is true when no plugin claimed the package at all.
	Unknown bool
	// File and Plugin are set when a specific plugin's probe failed after
	// recognizing a marker file (spec §4.2's "malformed manifest" case).
	File   string
	Plugin string
	Cause  error
}

func (e *Error) Error() string {
	if e.Unknown {
		return "detect: no plugin claimed this package"
	}
	return fmt.Sprintf("detect: plugin %s found %s but could not parse it: %v", e.Plugin, e.File, e.Cause)
}

func (e *Error) Unwrap() error { return e.Cause }

// Registry owns an ordered collection of plugins and dispatches detection
// across them.
type Registry struct {
	plugins []Plugin
}

// NewRegistry builds a registry with the given plugins, in registration
// order. Use NewDefaultRegistry for the built-in plugin set.
func NewRegistry(plugins ...Plugin) *Registry {
	r := &Registry{plugins: append([]Plugin(nil), plugins...)}
	sort.SliceStable(r.plugins, func(i, j int) bool {
		return r.plugins[i].Priority() > r.plugins[j].Priority()
	})
	return r
}

// NewDefaultRegistry builds a registry with the four built-in plugins at
// their spec-mandated priorities: SCORM(100), cmi5(90), AICC(80), xAPI/Tin
// Can(70).
func NewDefaultRegistry() *Registry {
	return NewRegistry(
		&ScormPlugin{},
		&Cmi5Plugin{},
		&AiccPlugin{},
		&TinCanPlugin{},
	)
}

// Detect invokes plugins in descending priority (ties broken by
// registration order) and returns the first module type claimed. If every
// plugin declines, it returns an Error with Unknown set.
func (r *Registry) Detect(ctx context.Context, fa fileaccess.FileAccess) (model.ModuleType, error) {
	log := logging.Get()
	for _, p := range r.plugins {
		log.Debug().Str("plugin", p.Name()).Int32("priority", p.Priority()).Msg("probing package")
		mt, err := p.Detect(ctx, fa)
		if err != nil {
			return model.ModuleTypeUnknown, err
		}
		if mt != model.ModuleTypeUnknown {
			log.Debug().Str("plugin", p.Name()).Str("module_type", mt.String()).Msg("detected module type")
			return mt, nil
		}
	}
	return model.ModuleTypeUnknown, &Error{Unknown: true}
}

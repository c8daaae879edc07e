package sequencing

import "github.com/ternarybob/elearnparse/pkg/model"

// RandomizationTiming and SelectionTiming share the same vocabulary: never,
// once, or onEachNewAttempt.
type Timing string

const (
	TimingNever            Timing = "never"
	TimingOnce             Timing = "once"
	TimingOnEachNewAttempt Timing = "onEachNewAttempt"
)

// ControlMode governs how navigation requests are honored for an activity
// (spec §3.4).
type ControlMode struct {
	Choice                          bool
	Flow                            bool
	ChoiceExit                      bool
	ForwardOnly                     bool
	UseCurrentAttemptObjectiveInfo  bool
	UseCurrentAttemptProgressInfo   bool
}

// DefaultControlMode returns the IMSSS-mandated defaults: choice, choiceExit,
// useCurrentAttemptObjectiveInfo, and useCurrentAttemptProgressInfo default
// true; flow and forwardOnly default false.
func DefaultControlMode() ControlMode {
	return ControlMode{
		Choice:                         true,
		Flow:                           false,
		ChoiceExit:                     true,
		ForwardOnly:                    false,
		UseCurrentAttemptObjectiveInfo: true,
		UseCurrentAttemptProgressInfo:  true,
	}
}

// LimitConditions bounds how many times and for how long an activity may
// be attempted (spec §3.4). Nil duration fields mean "no limit".
type LimitConditions struct {
	AttemptLimit                  *int
	AttemptAbsoluteDurationLimit  *Duration
	AttemptExperiencedDurationLimit *Duration
	ActivityAbsoluteDurationLimit *Duration
	ActivityExperiencedDurationLimit *Duration
	BeginTimeLimit                *string // ISO-8601 datetime, kept opaque
	EndTimeLimit                  *string
}

// Duration is an ISO-8601 duration kept as both the parsed value and the
// originating text, so re-serialization round-trips exactly (spec §8,
// invariant 1).
type Duration struct {
	Nanoseconds int64
	ISO8601     string
}

// RollupRules is the objectiveMeasureWeight plus the ordered list of
// RollupRule a Sequencing block declares (spec §3.4).
type RollupRules struct {
	ObjectiveMeasureWeight model.Percent
	RollupObjectiveSatisfied bool
	RollupProgressCompletion bool
	Rules                  []RollupRule
}

// DefaultRollupRules mirrors the IMSSS defaults: full weight, and both
// rollup flags true (a parent's objective/progress state is driven by its
// children unless rules say otherwise).
func DefaultRollupRules() RollupRules {
	return RollupRules{
		ObjectiveMeasureWeight:   1.0,
		RollupObjectiveSatisfied: true,
		RollupProgressCompletion: true,
	}
}

// MapInfo links a local Objective to a global objective namespace entry
// (spec §3.4). Reads default true, writes default false.
type MapInfo struct {
	TargetObjectiveID     string
	ReadSatisfiedStatus   bool
	ReadNormalizedMeasure bool
	WriteSatisfiedStatus  bool
	WriteNormalizedMeasure bool
}

// DefaultMapInfo applies the spec-mandated read/write defaults.
func DefaultMapInfo(targetID string) MapInfo {
	return MapInfo{
		TargetObjectiveID:     targetID,
		ReadSatisfiedStatus:   true,
		ReadNormalizedMeasure: true,
	}
}

// Objective is a measurable learning goal, local to the activity or mapped
// to a global one via MapInfo (spec §3.4).
type Objective struct {
	ObjectiveID           string
	MinNormalizedMeasure  *model.Measure
	SatisfiedByMeasure    bool
	MapInfo               []MapInfo
}

// Objectives holds an activity's primary objective (if any) plus any
// additional objectives.
type Objectives struct {
	Primary *Objective
	List    []Objective
}

// RandomizationControls governs child-selection and reordering behavior
// (spec §3.4).
type RandomizationControls struct {
	RandomizationTiming Timing
	SelectionTiming     Timing
	ReorderChildren     bool
	SelectCount         *int
}

// DefaultRandomizationControls applies the IMSSS default: never randomize
// or reorder.
func DefaultRandomizationControls() RandomizationControls {
	return RandomizationControls{
		RandomizationTiming: TimingNever,
		SelectionTiming:     TimingNever,
		ReorderChildren:     false,
	}
}

// DeliveryControls indicates whether the SCO itself (rather than the
// sequencing engine) sets completion/objective status (spec §3.4).
type DeliveryControls struct {
	CompletionSetByContent bool
	ObjectiveSetByContent  bool
}

// Sequencing is the full IMSSS block attached to a SCORM 2004 item or
// stored in the top-level sequencing collection for by-reference reuse
// (spec §3.3, §3.4).
type Sequencing struct {
	// ID identifies this block when it lives in the sequencing collection
	// and is targeted by an item's IDRef.
	ID string

	ControlMode            ControlMode
	PreConditionRules       []SequencingRule
	PostConditionRules      []SequencingRule
	ExitConditionRules      []SequencingRule
	LimitConditions         LimitConditions
	RollupRules             RollupRules
	Objectives              Objectives
	RandomizationControls   RandomizationControls
	DeliveryControls        DeliveryControls
}

// DefaultSequencing returns a Sequencing block with every IMSSS default
// applied, suitable as the base for an item that declares no sequencing
// of its own.
func DefaultSequencing() Sequencing {
	return Sequencing{
		ControlMode:           DefaultControlMode(),
		RollupRules:           DefaultRollupRules(),
		RandomizationControls: DefaultRandomizationControls(),
	}
}

// HasRules reports whether the block declares any sequencing rule,
// rollup rule, or randomization control beyond pure defaults — the
// "FULL" threshold in the metadata projection's sequencing_level
// computation (spec §4.6).
func (s Sequencing) HasRules() bool {
	if len(s.PreConditionRules) > 0 || len(s.PostConditionRules) > 0 || len(s.ExitConditionRules) > 0 {
		return true
	}
	if len(s.RollupRules.Rules) > 0 {
		return true
	}
	if s.RandomizationControls.RandomizationTiming != TimingNever ||
		s.RandomizationControls.SelectionTiming != TimingNever ||
		s.RandomizationControls.ReorderChildren {
		return true
	}
	return false
}

// HasMinimalControls reports whether the block customizes control mode or
// delivery controls away from the pure defaults, without declaring rules —
// the "MINIMAL" threshold (spec §4.6).
func (s Sequencing) HasMinimalControls() bool {
	if s.ControlMode != DefaultControlMode() {
		return true
	}
	if s.DeliveryControls.CompletionSetByContent || s.DeliveryControls.ObjectiveSetByContent {
		return true
	}
	return false
}

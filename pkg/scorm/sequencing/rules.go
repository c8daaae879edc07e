// Package sequencing models the IMS Simple Sequencing (IMSSS) vocabulary
// SCORM 2004 manifests attach to items and the top-level sequencing
// collection (spec §3.4).
package sequencing

import "github.com/ternarybob/elearnparse/pkg/model"

// ConditionCombination determines how a RuleConditions' RuleCondition list
// combines: require all to hold, or any one.
type ConditionCombination string

const (
	CombineAll ConditionCombination = "ALL"
	CombineAny ConditionCombination = "ANY"
)

// Operator negates an individual RuleCondition.
type Operator string

const (
	OperatorNop Operator = "NOP"
	OperatorNot Operator = "NOT"
)

// ConditionType is the full IMSSS sequencing-rule condition vocabulary
// (spec §3.4). Values are preserved verbatim in serialized form.
type ConditionType string

const (
	ConditionSatisfied             ConditionType = "satisfied"
	ConditionObjectiveStatusKnown  ConditionType = "objectiveStatusKnown"
	ConditionObjectiveMeasureKnown ConditionType = "objectiveMeasureKnown"
	ConditionCompleted             ConditionType = "completed"
	ConditionActivityProgressKnown ConditionType = "activityProgressKnown"
	ConditionAttempted             ConditionType = "attempted"
	ConditionAttemptLimitExceeded  ConditionType = "attemptLimitExceeded"
	ConditionTimeLimitExceeded     ConditionType = "timeLimitExceeded"
	ConditionOutsideAvailableTimeRange ConditionType = "outsideAvailableTimeRange"
	ConditionAlways                ConditionType = "always"
)

// RuleCondition is a single test within a RuleConditions list.
type RuleCondition struct {
	ReferencedObjective string // objective ID, empty if this condition doesn't reference one
	MeasureThreshold    *float64
	Operator            Operator
	Condition           ConditionType
}

// RuleConditions is the conjunction/disjunction of RuleCondition that gates
// a SequencingRule or RollupRule.
type RuleConditions struct {
	ConditionCombination ConditionCombination
	Conditions            []RuleCondition
}

// RuleActionType is the action a satisfied SequencingRule triggers.
type RuleActionType string

const (
	ActionSkip             RuleActionType = "skip"
	ActionDisabled         RuleActionType = "disabled"
	ActionHiddenFromChoice RuleActionType = "hiddenFromChoice"
	ActionStopForcedChoice RuleActionType = "stopForcedChoice"
	ActionExitParent       RuleActionType = "exitParent"
	ActionExitAll          RuleActionType = "exitAll"
	ActionRetry            RuleActionType = "retry"
	ActionRetryAll         RuleActionType = "retryAll"
	ActionContinue         RuleActionType = "continue"
	ActionPrevious         RuleActionType = "previous"
	ActionExit             RuleActionType = "exit"
)

// SequencingRule is (conditions, action) — spec §3.4. Precondition,
// postcondition, and exitcondition rules all use this shape; which list
// they belong to (PreCondition/PostCondition/ExitCondition on Sequencing)
// is what distinguishes them.
type SequencingRule struct {
	Conditions RuleConditions
	Action     RuleActionType
}

// RollupActionType is the action a satisfied RollupRule applies to the
// parent activity's rollup state (supplemented beyond spec.md's explicit
// text — see SPEC_FULL.md "rollupRules[].rules[]").
type RollupActionType string

const (
	RollupSatisfied    RollupActionType = "satisfied"
	RollupNotSatisfied RollupActionType = "notSatisfied"
	RollupCompleted    RollupActionType = "completed"
	RollupIncomplete   RollupActionType = "incomplete"
)

// ChildActivitySet selects which children a RollupRule considers.
type ChildActivitySet string

const (
	ChildSetAll            ChildActivitySet = "all"
	ChildSetAny            ChildActivitySet = "any"
	ChildSetNone           ChildActivitySet = "none"
	ChildSetAtLeastCount   ChildActivitySet = "atLeastCount"
	ChildSetAtLeastPercent ChildActivitySet = "atLeastPercent"
)

// RollupRule aggregates child activity state into the parent, per the
// IMSSS rollup-rule shape (SPEC_FULL.md supplement).
type RollupRule struct {
	ChildActivitySet ChildActivitySet
	MinimumCount     int
	MinimumPercent   model.Percent
	Conditions       RuleConditions
	Action           RollupActionType
}

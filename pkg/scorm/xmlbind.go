package scorm

import "encoding/xml"

// The xml* types below bind imsmanifest.xml literally, independent of
// namespace prefix — SCORM packages in the wild use inconsistent prefixes
// (imscp/imscp_v1p1, adlcp/adlcp_v1p3, etc.) so every element is matched by
// local name only, with no namespace in its tag; a few fields use
// encoding/xml's ">" path syntax to reach a nested element by local names.
// bind() below is where these get turned into the typed
// schema model in manifest.go and pkg/scorm/sequencing.

type xmlManifest struct {
	XMLName       xml.Name        `xml:"manifest"`
	Identifier    string          `xml:"identifier,attr"`
	Version       string          `xml:"version,attr"`
	Metadata      *xmlMetadata    `xml:"metadata"`
	Organizations xmlOrganizations `xml:"organizations"`
	Resources     xmlResources    `xml:"resources"`
	Sequencing    []xmlSeqBlock   `xml:"sequencingCollection>sequencing"`
}

type xmlMetadata struct {
	Schema        string       `xml:"schema"`
	SchemaVersion string       `xml:"schemaversion"`
	Location      string       `xml:"location"`
	LOM           *xmlLOM      `xml:"lom"`
}

type xmlLOM struct {
	General xmlLOMGeneral `xml:"general"`
}

type xmlLOMGeneral struct {
	Title       xmlLangString   `xml:"title"`
	Description []xmlLangString `xml:"description>langstring"`
}

type xmlLangString struct {
	LangString string `xml:"langstring"`
}

type xmlOrganizations struct {
	Default string            `xml:"default,attr"`
	List    []xmlOrganization `xml:"organization"`
}

type xmlOrganization struct {
	Identifier string        `xml:"identifier,attr"`
	Title      string        `xml:"title"`
	Items      []xmlItem     `xml:"item"`
	Sequencing *xmlSeqBlock  `xml:"sequencing"`
}

type xmlItem struct {
	Identifier    string       `xml:"identifier,attr"`
	IdentifierRef string       `xml:"identifierref,attr"`
	IsVisible     string       `xml:"isvisible,attr"`
	Parameters    string       `xml:"parameters,attr"`
	Title         string       `xml:"title"`
	MasteryScore  string       `xml:"masteryscore"` // adlcp:masteryscore, matched by local name
	DataFromLMS   string       `xml:"datafromlms"`
	Prerequisites string       `xml:"prerequisites"`
	Items         []xmlItem    `xml:"item"`
	Sequencing    *xmlSeqBlock `xml:"sequencing"`
}

type xmlResources struct {
	List []xmlResource `xml:"resource"`
}

type xmlResource struct {
	Identifier   string          `xml:"identifier,attr"`
	Type         string          `xml:"type,attr"`
	ScormType    string          `xml:"scormtype,attr"`
	Href         string          `xml:"href,attr"`
	Files        []xmlFile       `xml:"file"`
	Dependencies []xmlDependency `xml:"dependency"`
}

type xmlFile struct {
	Href string `xml:"href,attr"`
}

type xmlDependency struct {
	IdentifierRef string `xml:"identifierref,attr"`
}

// xmlSeqBlock binds an <imsss:sequencing> element, whether inline on an
// item/organization or a named entry in the top-level
// sequencingCollection.
type xmlSeqBlock struct {
	ID                string              `xml:"ID,attr"`
	IDRef             string              `xml:"IDRef,attr"`
	ControlMode       *xmlControlMode     `xml:"controlMode"`
	SequencingRules   *xmlSequencingRules `xml:"sequencingRules"`
	LimitConditions   *xmlLimitConditions `xml:"limitConditions"`
	RollupRules       *xmlRollupRules     `xml:"rollupRules"`
	Objectives        *xmlObjectives      `xml:"objectives"`
	RandomControls    *xmlRandomControls  `xml:"randomizationControls"`
	DeliveryControls  *xmlDeliveryControls `xml:"deliveryControls"`
}

type xmlControlMode struct {
	Choice                         string `xml:"choice,attr"`
	Flow                           string `xml:"flow,attr"`
	ChoiceExit                     string `xml:"choiceExit,attr"`
	ForwardOnly                    string `xml:"forwardOnly,attr"`
	UseCurrentAttemptObjectiveInfo string `xml:"useCurrentAttemptObjectiveInfo,attr"`
	UseCurrentAttemptProgressInfo  string `xml:"useCurrentAttemptProgressInfo,attr"`
}

type xmlSequencingRules struct {
	PreConditionRule  []xmlSequencingRule `xml:"preConditionRule"`
	PostConditionRule []xmlSequencingRule `xml:"postConditionRule"`
	ExitConditionRule []xmlSequencingRule `xml:"exitConditionRule"`
}

type xmlSequencingRule struct {
	RuleConditions xmlRuleConditions `xml:"ruleConditions"`
	RuleAction     xmlRuleAction     `xml:"ruleAction"`
}

type xmlRuleConditions struct {
	ConditionCombination string              `xml:"conditionCombination,attr"`
	RuleCondition         []xmlRuleCondition `xml:"ruleCondition"`
}

type xmlRuleCondition struct {
	ReferencedObjective string `xml:"referencedObjective,attr"`
	MeasureThreshold    string `xml:"measureThreshold,attr"`
	Operator            string `xml:"operator,attr"`
	Condition           string `xml:"condition,attr"`
}

type xmlRuleAction struct {
	Action string `xml:"action,attr"`
}

type xmlLimitConditions struct {
	AttemptLimit                    string `xml:"attemptLimit,attr"`
	AttemptAbsoluteDurationLimit    string `xml:"attemptAbsoluteDurationLimit,attr"`
	AttemptExperiencedDurationLimit string `xml:"attemptExperiencedDurationLimit,attr"`
	ActivityAbsoluteDurationLimit   string `xml:"activityAbsoluteDurationLimit,attr"`
	ActivityExperiencedDurationLimit string `xml:"activityExperiencedDurationLimit,attr"`
	BeginTimeLimit                  string `xml:"beginTimeLimit,attr"`
	EndTimeLimit                    string `xml:"endTimeLimit,attr"`
}

type xmlRollupRules struct {
	ObjectiveMeasureWeight  string          `xml:"objectiveMeasureWeight,attr"`
	RollupObjectiveSatisfied string         `xml:"rollupObjectiveSatisfied,attr"`
	RollupProgressCompletion string         `xml:"rollupProgressCompletion,attr"`
	RollupRule              []xmlRollupRule `xml:"rollupRule"`
}

type xmlRollupRule struct {
	ChildActivitySet string            `xml:"childActivitySet,attr"`
	MinimumCount     string            `xml:"minimumCount,attr"`
	MinimumPercent   string            `xml:"minimumPercent,attr"`
	RollupConditions xmlRuleConditions `xml:"rollupConditions"`
	RollupAction     xmlRuleAction     `xml:"rollupAction"`
}

type xmlObjectives struct {
	Primary *xmlObjective  `xml:"primaryObjective"`
	List    []xmlObjective `xml:"objective"`
}

type xmlObjective struct {
	ObjectiveID          string        `xml:"objectiveID,attr"`
	MinNormalizedMeasure string        `xml:"minNormalizedMeasure"`
	SatisfiedByMeasure   string        `xml:"satisfiedByMeasure,attr"`
	MapInfo              []xmlMapInfo  `xml:"mapInfo"`
}

type xmlMapInfo struct {
	TargetObjectiveID      string `xml:"targetObjectiveID,attr"`
	ReadSatisfiedStatus    string `xml:"readSatisfiedStatus,attr"`
	ReadNormalizedMeasure  string `xml:"readNormalizedMeasure,attr"`
	WriteSatisfiedStatus   string `xml:"writeSatisfiedStatus,attr"`
	WriteNormalizedMeasure string `xml:"writeNormalizedMeasure,attr"`
}

type xmlRandomControls struct {
	RandomizationTiming string `xml:"randomizationTiming,attr"`
	SelectionTiming     string `xml:"selectionTiming,attr"`
	ReorderChildren     string `xml:"reorderChildren,attr"`
	SelectCount         string `xml:"selectCount,attr"`
}

type xmlDeliveryControls struct {
	CompletionSetByContent string `xml:"completionSetByContent,attr"`
	ObjectiveSetByContent  string `xml:"objectiveSetByContent,attr"`
}

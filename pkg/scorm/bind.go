package scorm

import (
	"strconv"
	"strings"

	"github.com/ternarybob/elearnparse/pkg/model"
	"github.com/ternarybob/elearnparse/pkg/scorm/sequencing"
)

// bind converts an xmlManifest into the typed Manifest, applying every
// default spec §4.3 step 3 mandates. It never fails on a missing optional
// field — those become zero values / nil — but a malformed numeric
// attribute is reported so the caller can turn it into a ManifestParse
// error (spec §4.3: "Parsers fail fast on malformed structure ... but never
// on missing optional fields").
func bind(xm *xmlManifest, modType model.ModuleType, edition model.Edition) (*Manifest, []error) {
	var errs []error

	m := &Manifest{
		ModType:            modType,
		Edition:            edition,
		ManifestIdentifier: strings.TrimSpace(xm.Identifier),
		ManifestVersion:    xm.Version,
	}

	if xm.Metadata != nil {
		m.ManifestDescription = joinLangStrings(xm.Metadata.LOM)
		if xm.Metadata.Location != "" {
			m.ExternalMeta = &ExternalMetadata{Location: xm.Metadata.Location}
		}
	}

	m.Organizations.Default = xm.Organizations.Default
	for _, xo := range xm.Organizations.List {
		org, oerrs := bindOrganization(xo, modType)
		errs = append(errs, oerrs...)
		m.Organizations.List = append(m.Organizations.List, org)
	}

	if org, ok := m.DefaultOrganization(); ok {
		m.ManifestTitle = org.Title
	}

	for _, xr := range xm.Resources.List {
		res, rerrs := bindResource(xr)
		errs = append(errs, rerrs...)
		m.Resources = append(m.Resources, res)
	}

	if modType == model.Scorm2004 {
		for _, xs := range xm.Sequencing {
			seq, serrs := bindSequencing(xs)
			errs = append(errs, serrs...)
			m.SequencingCollection = append(m.SequencingCollection, seq)
		}
	}

	return m, errs
}

func joinLangStrings(lom *xmlLOM) string {
	if lom == nil {
		return ""
	}
	var parts []string
	for _, ls := range lom.General.Description {
		if ls.LangString != "" {
			parts = append(parts, ls.LangString)
		}
	}
	return strings.Join(parts, " ")
}

func bindOrganization(xo xmlOrganization, modType model.ModuleType) (Organization, []error) {
	var errs []error
	org := Organization{
		Identifier: xo.Identifier,
		Title:      xo.Title,
	}
	for _, xi := range xo.Items {
		item, ierrs := bindItem(xi, modType)
		errs = append(errs, ierrs...)
		org.Items = append(org.Items, item)
	}
	if modType == model.Scorm2004 && xo.Sequencing != nil {
		seq, serrs := bindSequencing(*xo.Sequencing)
		errs = append(errs, serrs...)
		org.Sequencing = &seq
	}
	return org, errs
}

func bindItem(xi xmlItem, modType model.ModuleType) (Item, []error) {
	var errs []error
	item := Item{
		Identifier:    xi.Identifier,
		Title:         xi.Title,
		IdentifierRef: xi.IdentifierRef,
		Parameters:    xi.Parameters,
		IsVisible:     parseBoolDefault(xi.IsVisible, true), // spec §4.3 step 3: isVisible defaults true
		Prerequisites: xi.Prerequisites,
		DataFromLMS:   xi.DataFromLMS,
	}
	if xi.MasteryScore != "" {
		if v, err := strconv.ParseFloat(xi.MasteryScore, 64); err == nil {
			p, perr := model.NewPercent(v / 100.0)
			if perr != nil {
				errs = append(errs, perr)
			} else {
				item.MasteryScore = &p
			}
		} else {
			errs = append(errs, err)
		}
	}
	for _, child := range xi.Items {
		c, cerrs := bindItem(child, modType)
		errs = append(errs, cerrs...)
		item.Items = append(item.Items, c)
	}
	if modType == model.Scorm2004 && xi.Sequencing != nil {
		if xi.Sequencing.IDRef != "" {
			item.SequencingRef = xi.Sequencing.IDRef
		} else {
			seq, serrs := bindSequencing(*xi.Sequencing)
			errs = append(errs, serrs...)
			item.Sequencing = &seq
		}
	}
	return item, errs
}

func bindResource(xr xmlResource) (Resource, []error) {
	var errs []error
	scormType := ScormType(strings.ToLower(xr.ScormType))
	if scormType == "" {
		scormType = ScormTypeSCO // spec §4.3 step 3: adlcp:scormtype defaults "sco"
	}
	res := Resource{
		Identifier: xr.Identifier,
		Type:       xr.Type,
		ScormType:  scormType,
		Href:       model.Path(xr.Href),
	}
	for _, f := range xr.Files {
		res.Files = append(res.Files, File{Href: model.Path(f.Href)})
	}
	for _, d := range xr.Dependencies {
		res.Dependencies = append(res.Dependencies, d.IdentifierRef)
	}
	return res, errs
}

func bindSequencing(xs xmlSeqBlock) (sequencing.Sequencing, []error) {
	var errs []error
	seq := sequencing.DefaultSequencing()
	seq.ID = xs.ID

	if xs.ControlMode != nil {
		cm := xs.ControlMode
		def := sequencing.DefaultControlMode()
		seq.ControlMode = sequencing.ControlMode{
			Choice:                         parseBoolDefault(cm.Choice, def.Choice),
			Flow:                           parseBoolDefault(cm.Flow, def.Flow),
			ChoiceExit:                     parseBoolDefault(cm.ChoiceExit, def.ChoiceExit),
			ForwardOnly:                    parseBoolDefault(cm.ForwardOnly, def.ForwardOnly),
			UseCurrentAttemptObjectiveInfo: parseBoolDefault(cm.UseCurrentAttemptObjectiveInfo, def.UseCurrentAttemptObjectiveInfo),
			UseCurrentAttemptProgressInfo:  parseBoolDefault(cm.UseCurrentAttemptProgressInfo, def.UseCurrentAttemptProgressInfo),
		}
	}

	if xs.SequencingRules != nil {
		seq.PreConditionRules, errs = appendRules(seq.PreConditionRules, xs.SequencingRules.PreConditionRule, errs)
		seq.PostConditionRules, errs = appendRules(seq.PostConditionRules, xs.SequencingRules.PostConditionRule, errs)
		seq.ExitConditionRules, errs = appendRules(seq.ExitConditionRules, xs.SequencingRules.ExitConditionRule, errs)
	}

	if xs.LimitConditions != nil {
		lc := xs.LimitConditions
		if lc.AttemptLimit != "" {
			if v, err := strconv.Atoi(lc.AttemptLimit); err == nil {
				seq.LimitConditions.AttemptLimit = &v
			} else {
				errs = append(errs, err)
			}
		}
		if lc.AttemptAbsoluteDurationLimit != "" {
			raw := strings.TrimSpace(lc.AttemptAbsoluteDurationLimit)
			if d, err := model.ParseISO8601Duration(raw); err == nil {
				seq.LimitConditions.AttemptAbsoluteDurationLimit = &sequencing.Duration{Nanoseconds: int64(d), ISO8601: raw}
			} else {
				errs = append(errs, err)
			}
		}
	}

	if xs.RollupRules != nil {
		rr := xs.RollupRules
		def := sequencing.DefaultRollupRules()
		weight := def.ObjectiveMeasureWeight
		if rr.ObjectiveMeasureWeight != "" {
			if v, err := strconv.ParseFloat(rr.ObjectiveMeasureWeight, 64); err == nil {
				p, perr := model.NewPercent(v)
				if perr != nil {
					errs = append(errs, perr)
				} else {
					weight = p
				}
			} else {
				errs = append(errs, err)
			}
		}
		seq.RollupRules = sequencing.RollupRules{
			ObjectiveMeasureWeight:   weight,
			RollupObjectiveSatisfied: parseBoolDefault(rr.RollupObjectiveSatisfied, def.RollupObjectiveSatisfied),
			RollupProgressCompletion: parseBoolDefault(rr.RollupProgressCompletion, def.RollupProgressCompletion),
		}
		for _, xrule := range rr.RollupRule {
			rule := sequencing.RollupRule{
				ChildActivitySet: sequencing.ChildActivitySet(xrule.ChildActivitySet),
				Action:           sequencing.RollupActionType(xrule.RollupAction.Action),
			}
			if xrule.MinimumCount != "" {
				if v, err := strconv.Atoi(xrule.MinimumCount); err == nil {
					rule.MinimumCount = v
				}
			}
			if xrule.MinimumPercent != "" {
				if v, err := strconv.ParseFloat(xrule.MinimumPercent, 64); err == nil {
					if p, perr := model.NewPercent(v); perr == nil {
						rule.MinimumPercent = p
					}
				}
			}
			rule.Conditions = bindRuleConditions(xrule.RollupConditions)
			seq.RollupRules.Rules = append(seq.RollupRules.Rules, rule)
		}
	}

	if xs.Objectives != nil {
		if xs.Objectives.Primary != nil {
			obj, oerrs := bindObjective(*xs.Objectives.Primary)
			errs = append(errs, oerrs...)
			seq.Objectives.Primary = &obj
		}
		for _, xo := range xs.Objectives.List {
			obj, oerrs := bindObjective(xo)
			errs = append(errs, oerrs...)
			seq.Objectives.List = append(seq.Objectives.List, obj)
		}
	}

	if xs.RandomControls != nil {
		rc := xs.RandomControls
		def := sequencing.DefaultRandomizationControls()
		seq.RandomizationControls = sequencing.RandomizationControls{
			RandomizationTiming: timingOrDefault(rc.RandomizationTiming, def.RandomizationTiming),
			SelectionTiming:     timingOrDefault(rc.SelectionTiming, def.SelectionTiming),
			ReorderChildren:     parseBoolDefault(rc.ReorderChildren, def.ReorderChildren),
		}
		if rc.SelectCount != "" {
			if v, err := strconv.Atoi(rc.SelectCount); err == nil {
				seq.RandomizationControls.SelectCount = &v
			}
		}
	}

	if xs.DeliveryControls != nil {
		dc := xs.DeliveryControls
		seq.DeliveryControls = sequencing.DeliveryControls{
			CompletionSetByContent: parseBoolDefault(dc.CompletionSetByContent, false),
			ObjectiveSetByContent:  parseBoolDefault(dc.ObjectiveSetByContent, false),
		}
	}

	return seq, errs
}

func appendRules(dst []sequencing.SequencingRule, src []xmlSequencingRule, errs []error) ([]sequencing.SequencingRule, []error) {
	for _, xr := range src {
		dst = append(dst, sequencing.SequencingRule{
			Conditions: bindRuleConditions(xr.RuleConditions),
			Action:     sequencing.RuleActionType(xr.RuleAction.Action),
		})
	}
	return dst, errs
}

func bindRuleConditions(xc xmlRuleConditions) sequencing.RuleConditions {
	combo := sequencing.CombineAll
	if strings.EqualFold(xc.ConditionCombination, "any") {
		combo = sequencing.CombineAny
	}
	rc := sequencing.RuleConditions{ConditionCombination: combo}
	for _, xcond := range xc.RuleCondition {
		cond := sequencing.RuleCondition{
			ReferencedObjective: xcond.ReferencedObjective,
			Operator:            operatorOrDefault(xcond.Operator),
			Condition:           sequencing.ConditionType(xcond.Condition),
		}
		if xcond.MeasureThreshold != "" {
			if v, err := strconv.ParseFloat(xcond.MeasureThreshold, 64); err == nil {
				cond.MeasureThreshold = &v
			}
		}
		rc.Conditions = append(rc.Conditions, cond)
	}
	return rc
}

func operatorOrDefault(s string) sequencing.Operator {
	if strings.EqualFold(s, "not") {
		return sequencing.OperatorNot
	}
	return sequencing.OperatorNop
}

func timingOrDefault(s string, def sequencing.Timing) sequencing.Timing {
	switch s {
	case string(sequencing.TimingNever), string(sequencing.TimingOnce), string(sequencing.TimingOnEachNewAttempt):
		return sequencing.Timing(s)
	default:
		return def
	}
}

func bindObjective(xo xmlObjective) (sequencing.Objective, []error) {
	var errs []error
	obj := sequencing.Objective{
		ObjectiveID:        xo.ObjectiveID,
		SatisfiedByMeasure: parseBoolDefault(xo.SatisfiedByMeasure, false), // spec §4.3 step 3 default
	}
	if xo.MinNormalizedMeasure != "" {
		if v, err := strconv.ParseFloat(strings.TrimSpace(xo.MinNormalizedMeasure), 64); err == nil {
			measure, merr := model.NewMeasure(v)
			if merr != nil {
				errs = append(errs, merr)
			} else {
				obj.MinNormalizedMeasure = &measure
			}
		} else {
			errs = append(errs, err)
		}
	}
	for _, xm := range xo.MapInfo {
		mi := sequencing.DefaultMapInfo(xm.TargetObjectiveID)
		mi.ReadSatisfiedStatus = parseBoolDefault(xm.ReadSatisfiedStatus, true)
		mi.ReadNormalizedMeasure = parseBoolDefault(xm.ReadNormalizedMeasure, true)
		mi.WriteSatisfiedStatus = parseBoolDefault(xm.WriteSatisfiedStatus, false)
		mi.WriteNormalizedMeasure = parseBoolDefault(xm.WriteNormalizedMeasure, false)
		obj.MapInfo = append(obj.MapInfo, mi)
	}
	return obj, errs
}

func parseBoolDefault(s string, def bool) bool {
	if s == "" {
		return def
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return def
	}
	return v
}

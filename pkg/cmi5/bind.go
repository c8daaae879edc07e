package cmi5

import (
	"strconv"
	"strings"

	"github.com/ternarybob/elearnparse/pkg/model"
)

// bind converts an xmlCourseStructure into the typed Manifest. Missing
// optional fields become zero values; a malformed masteryScore is reported
// but does not abort the bind (spec §4.3, §7).
func bind(xcs *xmlCourseStructure) (*Manifest, []error) {
	var errs []error
	course, cerrs := bindCourse(xcs.Course)
	errs = append(errs, cerrs...)
	return &Manifest{Course: course}, errs
}

func bindCourse(xc xmlCourse) (Course, []error) {
	var errs []error
	c := Course{
		ID:           xc.ID,
		Titles:       bindTranslations(xc.Title),
		Descriptions: bindTranslations(xc.Description),
	}
	for _, xb := range xc.Blocks {
		b, berrs := bindBlock(xb)
		errs = append(errs, berrs...)
		c.Blocks = append(c.Blocks, b)
	}
	for _, xa := range xc.AUs {
		a, aerrs := bindAU(xa)
		errs = append(errs, aerrs...)
		c.AUs = append(c.AUs, a)
	}
	return c, errs
}

func bindBlock(xb xmlBlock) (Block, []error) {
	var errs []error
	b := Block{
		ID:           xb.ID,
		Titles:       bindTranslations(xb.Title),
		Descriptions: bindTranslations(xb.Description),
	}
	for _, child := range xb.Blocks {
		cb, cerrs := bindBlock(child)
		errs = append(errs, cerrs...)
		b.Blocks = append(b.Blocks, cb)
	}
	for _, xa := range xb.AUs {
		a, aerrs := bindAU(xa)
		errs = append(errs, aerrs...)
		b.AUs = append(b.AUs, a)
	}
	return b, errs
}

func bindAU(xa xmlAU) (AU, []error) {
	var errs []error
	a := AU{
		ID:               xa.ID,
		Titles:           bindTranslations(xa.Title),
		Descriptions:     bindTranslations(xa.Description),
		URL:              strings.TrimSpace(xa.URL),
		LaunchMethod:     launchMethodOrDefault(xa.LaunchMethod),
		MoveOn:           moveOnOrDefault(xa.MoveOn),
		LaunchParameters: xa.LaunchParameters,
		EntitlementKey:   xa.EntitlementKey,
	}
	if xa.MasteryScore != "" {
		if v, err := strconv.ParseFloat(strings.TrimSpace(xa.MasteryScore), 64); err == nil {
			p, perr := model.NewPercent(v)
			if perr != nil {
				errs = append(errs, perr)
			} else {
				a.MasteryScore = &p
			}
		} else {
			errs = append(errs, err)
		}
	}
	return a, errs
}

func bindTranslations(xs []xmlLangString) []Translation {
	out := make([]Translation, 0, len(xs))
	for _, x := range xs {
		out = append(out, Translation{Lang: x.Lang, Text: strings.TrimSpace(x.Text)})
	}
	return out
}

// launchMethodOrDefault applies the cmi5 profile's default of AnyWindow
// when an AU omits launchMethod.
func launchMethodOrDefault(s string) LaunchMethod {
	switch s {
	case string(LaunchMethodOwnWindow):
		return LaunchMethodOwnWindow
	default:
		return LaunchMethodAnyWindow
	}
}

func moveOnOrDefault(s string) MoveOn {
	switch s {
	case string(MoveOnPassed), string(MoveOnCompleted), string(MoveOnCompletedAndPassed), string(MoveOnCompletedOrPassed):
		return MoveOn(s)
	default:
		return MoveOnNotApplicable
	}
}

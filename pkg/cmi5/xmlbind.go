package cmi5

import "encoding/xml"

// The xml* types bind cmi5.xml literally by local element name, the same
// namespace-tolerant approach pkg/scorm uses for imsmanifest.xml.

type xmlCourseStructure struct {
	XMLName xml.Name  `xml:"courseStructure"`
	Course  xmlCourse `xml:"course"`
}

type xmlCourse struct {
	ID           string              `xml:"id,attr"`
	Title        []xmlLangString     `xml:"title>langstring"`
	Description  []xmlLangString     `xml:"description>langstring"`
	Blocks       []xmlBlock          `xml:"block"`
	AUs          []xmlAU             `xml:"au"`
}

type xmlLangString struct {
	Lang string `xml:"lang,attr"`
	Text string `xml:",chardata"`
}

type xmlBlock struct {
	ID          string          `xml:"id,attr"`
	Title       []xmlLangString `xml:"title>langstring"`
	Description []xmlLangString `xml:"description>langstring"`
	Blocks      []xmlBlock      `xml:"block"`
	AUs         []xmlAU         `xml:"au"`
}

type xmlAU struct {
	ID               string          `xml:"id,attr"`
	LaunchMethod     string          `xml:"launchMethod,attr"`
	MoveOn           string          `xml:"moveOn,attr"`
	EntitlementKey   string          `xml:"entitlementKey,attr"`
	Title            []xmlLangString `xml:"title>langstring"`
	Description      []xmlLangString `xml:"description>langstring"`
	URL              string          `xml:"url"`
	LaunchParameters string          `xml:"launchParameters"`
	MasteryScore     string          `xml:"masteryScore"`
}

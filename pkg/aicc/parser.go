package aicc

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/ternarybob/elearnparse/internal/logging"
	"github.com/ternarybob/elearnparse/pkg/fileaccess"
	"github.com/ternarybob/elearnparse/pkg/model"
)

// Parse locates the four (plus two optional) AICC descriptor files sharing
// a package stem and binds them into a Manifest (spec §3.5, §4.3). AICC
// has no external-metadata concept, so unlike scorm.Parse there is no
// options struct — every descriptor file found is always bound.
func Parse(ctx context.Context, fa fileaccess.FileAccess) (*Manifest, error) {
	log := logging.Get()

	paths, err := fa.List(ctx, "")
	if err != nil {
		return nil, &Error{File: "", Cause: err}
	}

	crsPath, ok := findByExt(paths, ".crs")
	if !ok {
		return nil, &Error{File: "*.crs", Cause: errNotFound("course descriptor (.crs) not found")}
	}
	stem := stemOf(crsPath)
	log.Debug().Str("stem", stem).Msg("aicc package located")

	cfg, err := loadINI(ctx, fa, crsPath)
	if err != nil {
		return nil, err
	}
	m := &Manifest{Course: bindCourse(cfg), Prerequisites: map[string]string{}}

	if desPath, ok := findByExt(paths, ".des"); ok {
		t, err := loadTable(ctx, fa, desPath)
		if err != nil {
			return nil, err
		}
		for _, row := range t.rows {
			m.Blocks = append(m.Blocks, Block{
				SystemID: t.field(row, "System_ID"),
				Title:    t.field(row, "Title"),
				Type:     t.field(row, "Type"),
			})
		}
	}

	if auPath, ok := findByExt(paths, ".au"); ok {
		t, err := loadTable(ctx, fa, auPath)
		if err != nil {
			return nil, err
		}
		for _, row := range t.rows {
			au := AU{
				SystemID: t.field(row, "System_ID"),
				Title:    t.field(row, "Title"),
				FileName: t.field(row, "File_Name"),
				Command:  t.field(row, "Command_Line"),
				Type:     t.field(row, "Type"),
			}
			if ms := t.field(row, "Mastery_Score"); ms != "" {
				if v, perr := strconv.ParseFloat(ms, 64); perr == nil {
					if p, perr2 := model.NewPercent(v / 100.0); perr2 == nil {
						au.MasteryScore = &p
					}
				}
			}
			if mt := t.field(row, "Max_Time_Allowed"); mt != "" {
				if d, derr := parseAICCTime(mt); derr == nil {
					au.MaxTimeAllowed = &d
				}
			}
			m.AUs = append(m.AUs, au)
		}
	}

	if cstPath, ok := findByExt(paths, ".cst"); ok {
		t, err := loadTable(ctx, fa, cstPath)
		if err != nil {
			return nil, err
		}
		for _, row := range t.rows {
			children := splitList(t.field(row, "Member"))
			m.Structure = append(m.Structure, StructureNode{
				SystemID: t.field(row, "Block"),
				Children: children,
			})
		}
	}

	if ortPath, ok := findByExt(paths, ".ort"); ok {
		t, err := loadTable(ctx, fa, ortPath)
		if err != nil {
			return nil, err
		}
		for _, row := range t.rows {
			m.Objectives = append(m.Objectives, ObjectiveRelation{
				SystemID:    t.field(row, "System_ID"),
				ObjectiveID: t.field(row, "Objective_ID"),
			})
		}
	}

	if prePath, ok := findByExt(paths, ".pre"); ok {
		t, err := loadTable(ctx, fa, prePath)
		if err != nil {
			return nil, err
		}
		for _, row := range t.rows {
			id := t.field(row, "System_ID")
			expr := t.field(row, "Prerequisites")
			if id != "" {
				m.Prerequisites[id] = expr
			}
		}
	}

	m.LaunchURLValue = computeAICCLaunchURL(m)
	m.DurationValue = computeAICCDuration(m)

	return m, nil
}

// computeAICCLaunchURL implements spec §4.3 step 5 for AICC: the .au's
// file_name for the first AU in the course structure (the first root
// node's first child traversal, document order).
func computeAICCLaunchURL(m *Manifest) string {
	for _, node := range m.RootStructureNodes() {
		if url, ok := firstAUFileName(m, node.SystemID, map[string]bool{}); ok {
			return url
		}
	}
	if len(m.AUs) > 0 {
		return m.AUs[0].FileName
	}
	return ""
}

func firstAUFileName(m *Manifest, systemID string, visited map[string]bool) (string, bool) {
	if visited[systemID] {
		return "", false
	}
	visited[systemID] = true

	if au, ok := m.AUByID(systemID); ok && au.FileName != "" {
		return au.FileName, true
	}
	for _, node := range m.Structure {
		if node.SystemID != systemID {
			continue
		}
		for _, child := range node.Children {
			if url, ok := firstAUFileName(m, child, visited); ok {
				return url, true
			}
		}
	}
	return "", false
}

// computeAICCDuration sums every AU's Max_Time_Allowed (spec §4.3 step 6's
// AICC analogue of SCORM's adlcp:timeLimitAction-adjacent fields).
func computeAICCDuration(m *Manifest) *time.Duration {
	var total time.Duration
	found := false
	for _, au := range m.AUs {
		if au.MaxTimeAllowed != nil {
			total += *au.MaxTimeAllowed
			found = true
		}
	}
	if !found {
		return nil
	}
	return &total
}

func findByExt(paths []string, ext string) (string, bool) {
	for _, p := range paths {
		if strings.EqualFold(pathExt(p), ext) {
			return p, true
		}
	}
	return "", false
}

func pathExt(p string) string {
	idx := strings.LastIndexByte(p, '.')
	if idx < 0 {
		return ""
	}
	return p[idx:]
}

func stemOf(p string) string {
	base := p
	if idx := strings.LastIndexByte(base, '/'); idx >= 0 {
		base = base[idx+1:]
	}
	if idx := strings.LastIndexByte(base, '.'); idx >= 0 {
		base = base[:idx]
	}
	return base
}

// splitList splits an AICC member list: comma or whitespace separated
// System_IDs, trimmed.
func splitList(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// parseAICCTime parses AICC's HH:MM:SS.ss max-time-allowed format.
func parseAICCTime(s string) (time.Duration, error) {
	parts := strings.Split(s, ":")
	var h, mi int
	var sec float64
	var err error
	switch len(parts) {
	case 3:
		h, err = strconv.Atoi(parts[0])
		if err != nil {
			return 0, err
		}
		mi, err = strconv.Atoi(parts[1])
		if err != nil {
			return 0, err
		}
		sec, err = strconv.ParseFloat(parts[2], 64)
		if err != nil {
			return 0, err
		}
	case 2:
		mi, err = strconv.Atoi(parts[0])
		if err != nil {
			return 0, err
		}
		sec, err = strconv.ParseFloat(parts[1], 64)
		if err != nil {
			return 0, err
		}
	default:
		sec, err = strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, err
		}
	}
	return time.Duration(h)*time.Hour + time.Duration(mi)*time.Minute + time.Duration(sec*float64(time.Second)), nil
}

type errNotFound string

func (e errNotFound) Error() string { return string(e) }

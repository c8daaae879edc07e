// Package resolve builds the cross-reference structures a parsed SCORM
// manifest implies: a flattened activity tree plus the indices pkg/validate
// and pkg/metadata need (spec §4.4). Resolution never fails outright —
// every anomaly it finds (duplicate identifiers, unresolved references,
// multi-writer objectives, missing hrefs) is recorded on the Tree for the
// caller to turn into validation issues with stable codes.
package resolve

import (
	"context"
	"sort"

	"github.com/ternarybob/elearnparse/pkg/fileaccess"
	"github.com/ternarybob/elearnparse/pkg/scorm"
	"github.com/ternarybob/elearnparse/pkg/scorm/sequencing"
)

// Node is one activity in the flattened tree. ParentIndex is -1 for a
// root (an organization's top-level item). Parent/child links are
// indices into Tree.Nodes — an arena, never owning pointers (spec §3.8,
// §4.4).
type Node struct {
	Identifier         string
	ParentIndex        int
	ChildIndices       []int
	IsLeaf             bool
	ResourceIdentifier string
	IsVisible          bool
	Sequencing         *sequencing.Sequencing
}

// Tree is the output of Build: the activity tree plus the three indices
// spec §4.4 names, and every anomaly detected along the way.
type Tree struct {
	Nodes              []Node
	ItemByID           map[string]int
	ResourceByID       map[string]*scorm.Resource
	ObjectiveToGlobals map[string][]string // targetObjectiveID -> activity identifiers that write it
	multiWriterSeen    map[string]bool

	DuplicateResourceIDs   []string
	DuplicateItemIDs       []string
	UnresolvedSequencingRefs []string // item identifiers whose SequencingRef could not be resolved
	SequencingCycles       []string   // always empty: IDRef indirection is one level and cannot cycle
	MultiWriterObjectives  []string   // targetObjectiveIDs written by more than one local objective
	MissingHrefResources   []string   // resource identifiers whose href does not exist on disk
}

// Build performs steps 1-4 of spec §4.4: resource index, activity-tree DFS,
// sequencing resolution, and global-objective aggregation. It takes no
// FileAccess because those steps are pure over the typed manifest; call
// VerifyHrefs separately for step 5.
func Build(m *scorm.Manifest) *Tree {
	t := &Tree{
		ItemByID:           map[string]int{},
		ResourceByID:       map[string]*scorm.Resource{},
		ObjectiveToGlobals: map[string][]string{},
		multiWriterSeen:    map[string]bool{},
	}

	buildResourceIndex(m, t)

	for i := range m.Organizations.List {
		org := &m.Organizations.List[i]
		for j := range org.Items {
			walkItem(m, t, &org.Items[j], -1)
		}
		collectObjectives(t, org.Sequencing, "org:"+org.Identifier)
	}

	for i := range m.SequencingCollection {
		collectObjectives(t, &m.SequencingCollection[i], "collection:"+m.SequencingCollection[i].ID)
	}

	return t
}

func buildResourceIndex(m *scorm.Manifest, t *Tree) {
	for i := range m.Resources {
		res := &m.Resources[i]
		if res.Identifier == "" {
			continue
		}
		if _, exists := t.ResourceByID[res.Identifier]; exists {
			t.DuplicateResourceIDs = append(t.DuplicateResourceIDs, res.Identifier)
			continue // first wins (spec §4.4 step 1)
		}
		t.ResourceByID[res.Identifier] = res
	}
}

func walkItem(m *scorm.Manifest, t *Tree, item *scorm.Item, parentIndex int) int {
	idx := len(t.Nodes)
	node := Node{
		Identifier:         item.Identifier,
		ParentIndex:        parentIndex,
		IsLeaf:             len(item.Items) == 0,
		ResourceIdentifier: item.IdentifierRef,
		IsVisible:          item.IsVisible,
	}
	t.Nodes = append(t.Nodes, node)

	if item.Identifier != "" {
		if _, exists := t.ItemByID[item.Identifier]; exists {
			t.DuplicateItemIDs = append(t.DuplicateItemIDs, item.Identifier)
		} else {
			t.ItemByID[item.Identifier] = idx
		}
	}

	seq := resolveSequencing(m, t, item)
	t.Nodes[idx].Sequencing = seq
	if seq != nil {
		collectObjectives(t, seq, "item:"+item.Identifier)
	}

	if parentIndex >= 0 {
		t.Nodes[parentIndex].ChildIndices = append(t.Nodes[parentIndex].ChildIndices, idx)
	}

	for i := range item.Items {
		walkItem(m, t, &item.Items[i], idx)
	}

	return idx
}

// resolveSequencing materializes an item's sequencing block by following
// its single level of IDRef indirection into the manifest's sequencing
// collection (spec §4.4 step 3). The schema never lets a collection entry
// itself carry a further IDRef, so indirection cannot chain or cycle.
func resolveSequencing(m *scorm.Manifest, t *Tree, item *scorm.Item) *sequencing.Sequencing {
	if item.Sequencing != nil {
		return item.Sequencing
	}
	if item.SequencingRef == "" {
		return nil
	}
	seq, ok := m.SequencingByIDRef(item.SequencingRef)
	if !ok {
		t.UnresolvedSequencingRefs = append(t.UnresolvedSequencingRefs, item.Identifier)
		return nil
	}
	return seq
}

// collectObjectives adds every targetObjectiveID with a write flag set to
// the global namespace, tracking the owning activity so multi-writer
// conflicts can be reported (spec §4.4 step 4).
func collectObjectives(t *Tree, seq *sequencing.Sequencing, owner string) {
	if seq == nil {
		return
	}
	all := seq.Objectives.List
	if seq.Objectives.Primary != nil {
		all = append([]sequencing.Objective{*seq.Objectives.Primary}, all...)
	}
	for _, obj := range all {
		for _, mi := range obj.MapInfo {
			if !mi.WriteSatisfiedStatus && !mi.WriteNormalizedMeasure {
				continue
			}
			if mi.TargetObjectiveID == "" {
				continue
			}
			owners := t.ObjectiveToGlobals[mi.TargetObjectiveID]
			owners = append(owners, owner)
			t.ObjectiveToGlobals[mi.TargetObjectiveID] = owners
			if len(owners) > 1 && !t.multiWriterSeen[mi.TargetObjectiveID] {
				t.multiWriterSeen[mi.TargetObjectiveID] = true
				t.MultiWriterObjectives = append(t.MultiWriterObjectives, mi.TargetObjectiveID)
			}
		}
	}
}

// VerifyHrefs implements spec §4.4 step 5: every resource's href must
// resolve against fa.Exists. Resources with no href (e.g. aggregation-only
// resources) are skipped.
func VerifyHrefs(ctx context.Context, fa fileaccess.FileAccess, t *Tree) {
	for id, res := range t.ResourceByID {
		if res.Href == "" {
			continue
		}
		if !fa.Exists(ctx, string(res.Href)) {
			t.MissingHrefResources = append(t.MissingHrefResources, id)
		}
	}
	sort.Strings(t.MissingHrefResources)
}

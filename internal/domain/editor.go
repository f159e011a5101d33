package domain

import "time"

// SectionGroups holds the four ordered section lists of a page.
type SectionGroups struct {
	HeaderGroup []Section `json:"headerGroup"`
	AsideGroup  []Section `json:"asideGroup"`
	Template    []Section `json:"template"`
	FooterGroup []Section `json:"footerGroup"`
}

// EmptyGroups returns groups with non-nil empty slices.
func EmptyGroups() SectionGroups {
	return SectionGroups{
		HeaderGroup: []Section{},
		AsideGroup:  []Section{},
		Template:    []Section{},
		FooterGroup: []Section{},
	}
}

// Clone deep-copies every group.
func (g SectionGroups) Clone() SectionGroups {
	return SectionGroups{
		HeaderGroup: CloneSections(g.HeaderGroup),
		AsideGroup:  CloneSections(g.AsideGroup),
		Template:    CloneSections(g.Template),
		FooterGroup: CloneSections(g.FooterGroup),
	}
}

// Get returns the slice for a group, or nil and false for an unknown group.
func (g *SectionGroups) Get(group Group) ([]Section, bool) {
	switch group {
	case GroupHeader:
		return g.HeaderGroup, true
	case GroupAside:
		return g.AsideGroup, true
	case GroupTemplate:
		return g.Template, true
	case GroupFooter:
		return g.FooterGroup, true
	}
	return nil, false
}

// Set replaces the slice for a group. Unknown groups are ignored.
func (g *SectionGroups) Set(group Group, sections []Section) {
	switch group {
	case GroupHeader:
		g.HeaderGroup = sections
	case GroupAside:
		g.AsideGroup = sections
	case GroupTemplate:
		g.Template = sections
	case GroupFooter:
		g.FooterGroup = sections
	}
}

// Find locates a section by id across all groups.
func (g *SectionGroups) Find(id string) (Group, int, bool) {
	for _, group := range AllGroups {
		sections, _ := g.Get(group)
		for i := range sections {
			if sections[i].ID == id {
				return group, i, true
			}
		}
	}
	return "", -1, false
}

// Count returns how many sections of type t exist across all groups.
func (g *SectionGroups) Count(t SectionType) int {
	n := 0
	for _, group := range AllGroups {
		sections, _ := g.Get(group)
		for i := range sections {
			if sections[i].Type == t {
				n++
			}
		}
	}
	return n
}

// EditorTree is the full state of the page builder for one session.
type EditorTree struct {
	SectionGroups

	SelectedPageID    string   `json:"selectedPageId"`
	SelectedPageType  PageType `json:"selectedPageType"`
	SelectedSectionID string   `json:"selectedSectionId"`
	IsConfigPanelOpen bool     `json:"isConfigPanelOpen"`
	HoveredSectionID  string   `json:"hoveredSectionId"`
	IsDirty           bool     `json:"isDirty"`
	IsSaving          bool     `json:"isSaving"`
}

// NewEditorTree returns the empty initial tree.
func NewEditorTree() EditorTree {
	return EditorTree{SectionGroups: EmptyGroups()}
}

// Clone deep-copies the tree.
func (t EditorTree) Clone() EditorTree {
	t.SectionGroups = t.SectionGroups.Clone()
	return t
}

// Snapshot is an immutable copy of the groups captured for undo/redo.
type Snapshot struct {
	Groups    SectionGroups `json:"groups"`
	Timestamp time.Time     `json:"timestamp"`
}

// SectionCache is the local preview cache written on save.
type SectionCache interface {
	PutSections(key string, sections []Section) error
	GetSections(key string) ([]Section, error)
	DeleteSections(key string) error
}

// EditorStateStore persists the editor tree between sessions.
type EditorStateStore interface {
	SaveEditorState(tree EditorTree) error
	LoadEditorState() (*EditorTree, error)
	ClearEditorState() error
}

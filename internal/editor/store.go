// Package editor holds the in-memory section tree of the page builder, its
// undo/redo history and the structural component bootstrap.
//
// A Store is created per session and injected into whatever drives it (the
// desktop bindings, the MCP server, the autosave job). Every operation runs
// under the store mutex, so each call is atomic with respect to the tree.
package editor

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"

	"storefront/internal/catalog"
	"storefront/internal/domain"
)

var (
	ErrSingletonExists = errors.New("section type allows a single instance")
	ErrPageTypeGated   = errors.New("section type not allowed on this page type")
)

// Store is the mutable section tree.
type Store struct {
	mu       sync.Mutex
	catalog  *catalog.Catalog
	tree     domain.EditorTree
	revision uint64
}

// NewStore creates an empty store backed by cat.
func NewStore(cat *catalog.Catalog) *Store {
	return &Store{catalog: cat, tree: domain.NewEditorTree()}
}

// Catalog returns the catalog the store builds sections from.
func (s *Store) Catalog() *catalog.Catalog {
	return s.catalog
}

// State returns a deep copy of the current tree.
func (s *Store) State() domain.EditorTree {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tree.Clone()
}

// Revision increases with every change to the tree.
func (s *Store) Revision() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.revision
}

// touch records an operator edit.
func (s *Store) touch() {
	s.tree.IsDirty = true
	s.revision++
}

// ── Page selection ──────────────────────────────────────────

// SelectPage switches the active page. The section selection is cleared and
// the configuration panel closed. Groups are kept, except that room sections
// leave the template when the new page type does not allow them.
func (s *Store) SelectPage(pageID string, pageType domain.PageType) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tree.SelectedPageID = pageID
	s.tree.SelectedPageType = pageType
	s.tree.SelectedSectionID = ""
	s.tree.IsConfigPanelOpen = false

	s.tree.Template = gate(s.tree.Template, pageType)
	s.revision++
}

// ── Section mutations ──────────────────────────────────────

// AddSection appends a new section built from catalog defaults.
func (s *Store) AddSection(group domain.Group, t domain.SectionType) (domain.Section, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sections, ok := s.tree.Get(group)
	if !ok {
		return domain.Section{}, fmt.Errorf("%w: %q", domain.ErrUnknownGroup, group)
	}
	if s.catalog.IsSingleton(t) && s.tree.Count(t) > 0 {
		return domain.Section{}, fmt.Errorf("%w: %s", ErrSingletonExists, t)
	}
	if group == domain.GroupTemplate && !s.tree.SelectedPageType.AllowsSection(t) {
		return domain.Section{}, fmt.Errorf("%w: %s on %s", ErrPageTypeGated, t, pageTypeLabel(s.tree.SelectedPageType))
	}

	sec, err := s.newSection(t)
	if err != nil {
		return domain.Section{}, err
	}
	sec.SortOrder = len(sections)
	s.tree.Set(group, append(sections, sec))
	s.touch()
	return sec.Clone(), nil
}

// RemoveSection deletes a section and renumbers the rest of its group.
// Returns false when nothing matched.
func (s *Store) RemoveSection(group domain.Group, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	sections, idx := s.locate(group, id)
	if idx < 0 {
		return false
	}
	sections = append(sections[:idx], sections[idx+1:]...)
	domain.Reindex(sections)
	s.tree.Set(group, sections)

	if s.tree.SelectedSectionID == id {
		s.tree.SelectedSectionID = ""
		s.tree.IsConfigPanelOpen = false
	}
	if s.tree.HoveredSectionID == id {
		s.tree.HoveredSectionID = ""
	}
	s.touch()
	return true
}

// ToggleSectionVisibility flips the visible flag of a section.
func (s *Store) ToggleSectionVisibility(group domain.Group, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	sections, idx := s.locate(group, id)
	if idx < 0 {
		return false
	}
	sections[idx].Visible = !sections[idx].Visible
	s.touch()
	return true
}

// UpdateSectionSettings shallow-merges partial into the section settings.
// Keys are not validated.
func (s *Store) UpdateSectionSettings(group domain.Group, id string, partial map[string]any) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	sections, idx := s.locate(group, id)
	if idx < 0 {
		return false
	}
	sections[idx].Settings = sections[idx].Settings.Merge(partial)
	s.touch()
	return true
}

// ReorderSections moves the section at from to position to and renumbers
// the group. Out-of-range indexes are ignored.
func (s *Store) ReorderSections(group domain.Group, from, to int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	sections, ok := s.tree.Get(group)
	if !ok || from < 0 || from >= len(sections) || to < 0 || to >= len(sections) {
		return false
	}
	moved := sections[from]
	sections = append(sections[:from], sections[from+1:]...)
	sections = append(sections[:to], append([]domain.Section{moved}, sections[to:]...)...)
	domain.Reindex(sections)
	s.tree.Set(group, sections)
	s.touch()
	return true
}

// ── Selection ──────────────────────────────────────────────

// SelectSection selects a section; an empty id clears the selection. The
// configuration panel follows the selection.
func (s *Store) SelectSection(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tree.SelectedSectionID = id
	s.tree.IsConfigPanelOpen = id != ""
}

func (s *Store) HoverSection(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tree.HoveredSectionID = id
}

func (s *Store) SetConfigPanelOpen(open bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tree.IsConfigPanelOpen = open
}

// ── Loading ────────────────────────────────────────────────

// LoadPageSections replaces the template with sections fetched for the
// selected page. Only template-category types survive, room types only on
// custom pages. The result is ordered by SortOrder and the tree is clean
// afterwards. Returns the number of sections loaded.
func (s *Store) LoadPageSections(sections []domain.Section) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[string]bool)
	for _, g := range []domain.Group{domain.GroupHeader, domain.GroupAside, domain.GroupFooter} {
		existing, _ := s.tree.Get(g)
		for _, sec := range existing {
			seen[sec.ID] = true
		}
	}

	loaded := make([]domain.Section, 0, len(sections))
	for _, in := range sections {
		cat, ok := s.catalog.Category(in.Type)
		if !ok || cat != catalog.CategoryTemplate {
			continue
		}
		if !s.tree.SelectedPageType.AllowsSection(in.Type) {
			continue
		}
		sec := in.Clone()
		if sec.ID == "" || seen[sec.ID] {
			sec.ID = s.catalog.NewSectionID(sec.Type)
		}
		seen[sec.ID] = true
		loaded = append(loaded, sec)
	}
	sort.SliceStable(loaded, func(i, j int) bool {
		return loaded[i].SortOrder < loaded[j].SortOrder
	})
	domain.Reindex(loaded)

	s.tree.Template = loaded
	s.tree.IsDirty = false
	s.revision++
	return len(loaded)
}

// ResetChanges restores the empty initial tree.
func (s *Store) ResetChanges() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tree = domain.NewEditorTree()
	s.revision++
}

// Hydrate replaces the whole tree, typically with state persisted by a
// previous session. Ordering is normalized and the saving flag dropped.
func (s *Store) Hydrate(tree domain.EditorTree) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tree = normalize(tree)
	tree.IsSaving = false
	s.tree = tree
	s.revision++
}

// HydrateIfChanged adopts tree when its page or sections differ from the
// ones in memory. Hover and saving flags stay local. Nothing changes, not
// even the revision, when the content is the same.
func (s *Store) HydrateIfChanged(tree domain.EditorTree) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	tree = normalize(tree)
	if sameContent(s.tree, tree) {
		return false
	}
	tree.IsSaving = s.tree.IsSaving
	tree.HoveredSectionID = s.tree.HoveredSectionID
	s.tree = tree
	s.revision++
	return true
}

// ── History support ────────────────────────────────────────

// Groups returns a deep copy of the four groups.
func (s *Store) Groups() domain.SectionGroups {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tree.SectionGroups.Clone()
}

// RestoreGroups replaces the four groups and sets the dirty flag. Room
// sections are left out of the template unless the selected page allows them.
func (s *Store) RestoreGroups(groups domain.SectionGroups, dirty bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	groups = groups.Clone()
	groups.Template = gate(groups.Template, s.tree.SelectedPageType)
	s.tree.SectionGroups = groups
	s.tree.IsDirty = dirty
	s.revision++
}

// ── Save support ───────────────────────────────────────────

// SaveTicket is handed out by BeginSave and returned to FinishSave.
type SaveTicket struct {
	Tree     domain.EditorTree
	Revision uint64
}

// BeginSave marks the tree as saving and returns a copy of it. It reports
// false, changing nothing, when there is nothing to save.
func (s *Store) BeginSave() (SaveTicket, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.tree.IsDirty || s.tree.SelectedPageID == "" {
		return SaveTicket{}, false
	}
	s.tree.IsSaving = true
	return SaveTicket{Tree: s.tree.Clone(), Revision: s.revision}, true
}

// FinishSave clears the saving flag. The dirty flag is cleared when persisted
// is true and no edit happened since the ticket was issued.
func (s *Store) FinishSave(t SaveTicket, persisted bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tree.IsSaving = false
	if persisted && s.revision == t.Revision {
		s.tree.IsDirty = false
	}
}

// ── helpers ────────────────────────────────────────────────

func (s *Store) newSection(t domain.SectionType) (domain.Section, error) {
	d, err := s.catalog.DefaultsFor(t)
	if err != nil {
		return domain.Section{}, err
	}
	return domain.Section{
		ID:       s.catalog.NewSectionID(t),
		Type:     t,
		Name:     d.Name,
		Visible:  d.Visible,
		Settings: d.Settings,
	}, nil
}

// locate returns the group slice and the index of id in it, or -1.
func (s *Store) locate(group domain.Group, id string) ([]domain.Section, int) {
	sections, ok := s.tree.Get(group)
	if !ok {
		return nil, -1
	}
	for i := range sections {
		if sections[i].ID == id {
			return sections, i
		}
	}
	return sections, -1
}

// gate drops the sections pageType does not allow and renumbers the rest.
func gate(template []domain.Section, pageType domain.PageType) []domain.Section {
	kept := template[:0]
	for _, sec := range template {
		if pageType.AllowsSection(sec.Type) {
			kept = append(kept, sec)
		}
	}
	if len(kept) != len(template) {
		domain.Reindex(kept)
	}
	return kept
}

// normalize orders every group by SortOrder, renumbers it and applies the
// page-type gate to the template. tree is cloned first.
func normalize(tree domain.EditorTree) domain.EditorTree {
	tree = tree.Clone()
	for _, g := range domain.AllGroups {
		sections, _ := tree.Get(g)
		sort.SliceStable(sections, func(i, j int) bool {
			return sections[i].SortOrder < sections[j].SortOrder
		})
		domain.Reindex(sections)
	}
	tree.Template = gate(tree.Template, tree.SelectedPageType)
	return tree
}

// contentView is the part of the tree two processes are expected to agree
// on. Settings compare through their JSON form so 1 and 1.0 are equal, and
// cloning turns nil groups into empty ones.
type contentView struct {
	PageID   string               `json:"pageId"`
	PageType domain.PageType      `json:"pageType"`
	Groups   domain.SectionGroups `json:"groups"`
}

func sameContent(a, b domain.EditorTree) bool {
	ja, errA := json.Marshal(contentView{a.SelectedPageID, a.SelectedPageType, a.SectionGroups.Clone()})
	jb, errB := json.Marshal(contentView{b.SelectedPageID, b.SelectedPageType, b.SectionGroups.Clone()})
	return errA == nil && errB == nil && bytes.Equal(ja, jb)
}

func pageTypeLabel(p domain.PageType) string {
	if p == "" {
		return "unselected page"
	}
	return string(p)
}

package editor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/catalog"
	"storefront/internal/domain"
	"storefront/internal/editor"
)

func newStore() *editor.Store {
	return editor.NewStore(catalog.New(catalog.NewCounterProvider()))
}

func assertOrdered(t *testing.T, tree domain.EditorTree) {
	t.Helper()
	for _, g := range domain.AllGroups {
		sections, _ := tree.Get(g)
		for i, s := range sections {
			assert.Equal(t, i, s.SortOrder, "group %s index %d (%s)", g, i, s.ID)
		}
	}
}

func types(sections []domain.Section) []domain.SectionType {
	out := make([]domain.SectionType, len(sections))
	for i, s := range sections {
		out[i] = s.Type
	}
	return out
}

// ─────────────────────────────────────────────────────────────
// AddSection / RemoveSection / Reorder
// ─────────────────────────────────────────────────────────────

func TestStore_SlideshowFAQScenario(t *testing.T) {
	s := newStore()

	_, err := s.AddSection(domain.GroupTemplate, domain.SectionSlideshow)
	require.NoError(t, err)
	tree := s.State()
	require.Len(t, tree.Template, 1)
	assert.Equal(t, 0, tree.Template[0].SortOrder)

	_, err = s.AddSection(domain.GroupTemplate, domain.SectionFAQ)
	require.NoError(t, err)
	tree = s.State()
	require.Len(t, tree.Template, 2)
	assert.Equal(t, 0, tree.Template[0].SortOrder)
	assert.Equal(t, 1, tree.Template[1].SortOrder)

	require.True(t, s.ReorderSections(domain.GroupTemplate, 1, 0))
	tree = s.State()
	assert.Equal(t, domain.SectionFAQ, tree.Template[0].Type)
	assert.Equal(t, 0, tree.Template[0].SortOrder)
	assert.Equal(t, domain.SectionSlideshow, tree.Template[1].Type)
	assert.Equal(t, 1, tree.Template[1].SortOrder)
	assert.True(t, tree.IsDirty)
}

func TestStore_AddSectionCopiesCatalogDefaults(t *testing.T) {
	s := newStore()

	sec, err := s.AddSection(domain.GroupTemplate, domain.SectionImageBanner)
	require.NoError(t, err)
	assert.Equal(t, "image_banner-1", sec.ID)
	assert.Equal(t, "Image banner", sec.Name)
	assert.True(t, sec.Visible)
	assert.Equal(t, "Shop now", sec.Settings["buttonLabel"])

	// The returned copy does not alias the tree.
	sec.Settings["buttonLabel"] = "changed"
	assert.Equal(t, "Shop now", s.State().Template[0].Settings["buttonLabel"])
}

func TestStore_AddSectionErrors(t *testing.T) {
	s := newStore()

	_, err := s.AddSection(domain.GroupTemplate, "marquee")
	assert.ErrorIs(t, err, catalog.ErrUnknownSectionType)

	_, err = s.AddSection("sidebar", domain.SectionFAQ)
	assert.ErrorIs(t, err, domain.ErrUnknownGroup)

	_, err = s.AddSection(domain.GroupHeader, domain.SectionHeader)
	require.NoError(t, err)
	_, err = s.AddSection(domain.GroupHeader, domain.SectionHeader)
	assert.ErrorIs(t, err, editor.ErrSingletonExists)

	_, err = s.AddSection(domain.GroupTemplate, domain.SectionRoomGallery)
	assert.ErrorIs(t, err, editor.ErrPageTypeGated)

	assert.Empty(t, s.State().Template)
}

func TestStore_RoomSectionsOnCustomPage(t *testing.T) {
	s := newStore()
	s.SelectPage("page-1", domain.PageCustom)

	_, err := s.AddSection(domain.GroupTemplate, domain.SectionRoomGallery)
	require.NoError(t, err)
	_, err = s.AddSection(domain.GroupTemplate, domain.SectionFAQ)
	require.NoError(t, err)

	// Switching to a non-custom page drops the room section.
	s.SelectPage("page-2", domain.PageHome)
	tree := s.State()
	assert.Equal(t, []domain.SectionType{domain.SectionFAQ}, types(tree.Template))
	assertOrdered(t, tree)
}

func TestStore_AddRemoveRoundTrip(t *testing.T) {
	s := newStore()
	_, err := s.AddSection(domain.GroupTemplate, domain.SectionRichText)
	require.NoError(t, err)
	before := s.State().Template

	added, err := s.AddSection(domain.GroupTemplate, domain.SectionSlideshow)
	require.NoError(t, err)
	require.True(t, s.RemoveSection(domain.GroupTemplate, added.ID))

	assert.Equal(t, before, s.State().Template)
}

func TestStore_RemoveSectionRenumbers(t *testing.T) {
	s := newStore()
	var ids []string
	for _, st := range []domain.SectionType{domain.SectionRichText, domain.SectionFAQ, domain.SectionVideo, domain.SectionNewsletter} {
		sec, err := s.AddSection(domain.GroupTemplate, st)
		require.NoError(t, err)
		ids = append(ids, sec.ID)
	}

	require.True(t, s.RemoveSection(domain.GroupTemplate, ids[1]))
	tree := s.State()
	assert.Equal(t, []domain.SectionType{domain.SectionRichText, domain.SectionVideo, domain.SectionNewsletter}, types(tree.Template))
	assertOrdered(t, tree)
}

func TestStore_RemoveSelectedSectionClosesPanel(t *testing.T) {
	s := newStore()
	sec, err := s.AddSection(domain.GroupTemplate, domain.SectionFAQ)
	require.NoError(t, err)

	s.SelectSection(sec.ID)
	s.HoverSection(sec.ID)
	require.True(t, s.State().IsConfigPanelOpen)

	require.True(t, s.RemoveSection(domain.GroupTemplate, sec.ID))
	tree := s.State()
	assert.Empty(t, tree.SelectedSectionID)
	assert.Empty(t, tree.HoveredSectionID)
	assert.False(t, tree.IsConfigPanelOpen)
}

func TestStore_UnknownIDsAreNoops(t *testing.T) {
	s := newStore()
	sec, err := s.AddSection(domain.GroupTemplate, domain.SectionFAQ)
	require.NoError(t, err)
	before := s.State()

	assert.False(t, s.RemoveSection(domain.GroupTemplate, "missing"))
	assert.False(t, s.RemoveSection(domain.GroupHeader, sec.ID))
	assert.False(t, s.RemoveSection("nowhere", sec.ID))
	assert.False(t, s.ToggleSectionVisibility(domain.GroupTemplate, "missing"))
	assert.False(t, s.UpdateSectionSettings(domain.GroupTemplate, "missing", map[string]any{"a": 1}))
	assert.False(t, s.ReorderSections(domain.GroupTemplate, 0, 3))
	assert.False(t, s.ReorderSections(domain.GroupTemplate, -1, 0))

	assert.Equal(t, before, s.State())
}

func TestStore_OrderingInvariantUnderMixedOps(t *testing.T) {
	s := newStore()
	all := []domain.SectionType{
		domain.SectionRichText, domain.SectionFAQ, domain.SectionVideo,
		domain.SectionNewsletter, domain.SectionSlideshow, domain.SectionMulticolumn,
	}
	var ids []string
	for _, st := range all {
		sec, err := s.AddSection(domain.GroupTemplate, st)
		require.NoError(t, err)
		ids = append(ids, sec.ID)
	}
	_, err := s.AddSection(domain.GroupHeader, domain.SectionImageBanner)
	require.NoError(t, err)

	s.ReorderSections(domain.GroupTemplate, 0, 5)
	s.RemoveSection(domain.GroupTemplate, ids[2])
	s.ReorderSections(domain.GroupTemplate, 4, 1)
	s.RemoveSection(domain.GroupTemplate, ids[0])
	s.ReorderSections(domain.GroupTemplate, 2, 2)
	_, err = s.AddSection(domain.GroupTemplate, domain.SectionContactForm)
	require.NoError(t, err)
	s.ReorderSections(domain.GroupTemplate, 4, 0)

	tree := s.State()
	assert.Len(t, tree.Template, 5)
	assertOrdered(t, tree)

	seen := map[string]bool{}
	for _, g := range domain.AllGroups {
		sections, _ := tree.Get(g)
		for _, sec := range sections {
			assert.False(t, seen[sec.ID], "duplicate id %s", sec.ID)
			seen[sec.ID] = true
		}
	}
}

// ─────────────────────────────────────────────────────────────
// Visibility / settings / selection
// ─────────────────────────────────────────────────────────────

func TestStore_ToggleVisibility(t *testing.T) {
	s := newStore()
	sec, err := s.AddSection(domain.GroupTemplate, domain.SectionVideo)
	require.NoError(t, err)

	require.True(t, s.ToggleSectionVisibility(domain.GroupTemplate, sec.ID))
	assert.False(t, s.State().Template[0].Visible)
	require.True(t, s.ToggleSectionVisibility(domain.GroupTemplate, sec.ID))
	assert.True(t, s.State().Template[0].Visible)
}

func TestStore_UpdateSettingsShallowMergePassesUnknownKeys(t *testing.T) {
	s := newStore()
	sec, err := s.AddSection(domain.GroupTemplate, domain.SectionRichText)
	require.NoError(t, err)

	partial := map[string]any{
		"heading":     "Welcome",
		"serverField": map[string]any{"x": 1},
	}
	require.True(t, s.UpdateSectionSettings(domain.GroupTemplate, sec.ID, partial))

	// Mutating the caller's map afterwards does not leak into the tree.
	partial["serverField"].(map[string]any)["x"] = 2

	got := s.State().Template[0].Settings
	assert.Equal(t, "Welcome", got["heading"])
	assert.Equal(t, "center", got["alignment"])
	assert.Equal(t, map[string]any{"x": 1}, got["serverField"])
}

func TestStore_SelectSectionDrivesPanel(t *testing.T) {
	s := newStore()
	s.SelectSection("abc")
	tree := s.State()
	assert.Equal(t, "abc", tree.SelectedSectionID)
	assert.True(t, tree.IsConfigPanelOpen)

	s.SelectSection("")
	tree = s.State()
	assert.Empty(t, tree.SelectedSectionID)
	assert.False(t, tree.IsConfigPanelOpen)
}

func TestStore_SelectPageClearsSelectionKeepsGroups(t *testing.T) {
	s := newStore()
	_, err := s.AddSection(domain.GroupTemplate, domain.SectionFAQ)
	require.NoError(t, err)
	s.SelectSection("faq-1")

	s.SelectPage("page-9", domain.PageProduct)
	tree := s.State()
	assert.Equal(t, "page-9", tree.SelectedPageID)
	assert.Equal(t, domain.PageProduct, tree.SelectedPageType)
	assert.Empty(t, tree.SelectedSectionID)
	assert.False(t, tree.IsConfigPanelOpen)
	assert.Len(t, tree.Template, 1)
}

// ─────────────────────────────────────────────────────────────
// LoadPageSections
// ─────────────────────────────────────────────────────────────

func TestStore_LoadPageSectionsGroupIsolation(t *testing.T) {
	s := newStore()
	_, err := s.InitializeStructuralComponents()
	require.NoError(t, err)
	_, err = s.AddSection(domain.GroupHeader, domain.SectionImageBanner)
	require.NoError(t, err)
	before := s.State()

	s.LoadPageSections([]domain.Section{
		{ID: "a", Type: domain.SectionFAQ, SortOrder: 1},
		{ID: "b", Type: domain.SectionRichText, SortOrder: 0},
	})

	after := s.State()
	assert.Equal(t, before.HeaderGroup, after.HeaderGroup)
	assert.Equal(t, before.AsideGroup, after.AsideGroup)
	assert.Equal(t, before.FooterGroup, after.FooterGroup)
	assert.Equal(t, []domain.SectionType{domain.SectionRichText, domain.SectionFAQ}, types(after.Template))
	assert.False(t, after.IsDirty)
	assertOrdered(t, after)
}

func TestStore_LoadPageSectionsPageTypeGating(t *testing.T) {
	input := []domain.Section{{ID: "g", Type: domain.SectionRoomGallery, SortOrder: 0, Visible: true}}

	home := newStore()
	home.SelectPage("p", domain.PageHome)
	home.LoadPageSections(input)
	assert.Empty(t, home.State().Template)

	custom := newStore()
	custom.SelectPage("p", domain.PageCustom)
	custom.LoadPageSections(input)
	tree := custom.State()
	require.Len(t, tree.Template, 1)
	assert.Equal(t, "g", tree.Template[0].ID)
	assert.Equal(t, domain.SectionRoomGallery, tree.Template[0].Type)
}

func TestStore_LoadPageSectionsFiltersCategories(t *testing.T) {
	s := newStore()
	s.SelectPage("p", domain.PageHome)

	n := s.LoadPageSections([]domain.Section{
		{ID: "h", Type: domain.SectionHeader, SortOrder: 0},
		{ID: "f", Type: domain.SectionFooter, SortOrder: 1},
		{ID: "x", Type: "mystery", SortOrder: 2},
		{ID: "v", Type: domain.SectionVideo, SortOrder: 7},
		{ID: "n", Type: domain.SectionNewsletter, SortOrder: 3},
	})
	assert.Equal(t, 2, n)

	tree := s.State()
	require.Len(t, tree.Template, 2)
	assert.Equal(t, "n", tree.Template[0].ID)
	assert.Equal(t, "v", tree.Template[1].ID)
	assertOrdered(t, tree)
}

func TestStore_LoadPageSectionsReplacesCollidingIDs(t *testing.T) {
	s := newStore()
	hdr, err := s.AddSection(domain.GroupHeader, domain.SectionImageBanner)
	require.NoError(t, err)

	s.LoadPageSections([]domain.Section{
		{ID: hdr.ID, Type: domain.SectionFAQ},
		{Type: domain.SectionVideo},
	})
	tree := s.State()
	require.Len(t, tree.Template, 2)
	assert.NotEqual(t, hdr.ID, tree.Template[0].ID)
	assert.NotEmpty(t, tree.Template[1].ID)
	assert.NotNil(t, tree.Template[1].Settings)
}

// ─────────────────────────────────────────────────────────────
// Reset / hydrate / save tickets
// ─────────────────────────────────────────────────────────────

func TestStore_ResetChanges(t *testing.T) {
	s := newStore()
	s.SelectPage("p", domain.PageHome)
	_, err := s.AddSection(domain.GroupTemplate, domain.SectionFAQ)
	require.NoError(t, err)

	s.ResetChanges()
	assert.Equal(t, domain.NewEditorTree(), s.State())
}

func TestStore_HydrateNormalizesOrder(t *testing.T) {
	s := newStore()
	tree := domain.NewEditorTree()
	tree.SelectedPageID = "p"
	tree.IsSaving = true
	tree.Template = []domain.Section{
		{ID: "b", Type: domain.SectionFAQ, SortOrder: 5},
		{ID: "a", Type: domain.SectionVideo, SortOrder: 2},
	}

	s.Hydrate(tree)
	got := s.State()
	assert.Equal(t, "a", got.Template[0].ID)
	assert.False(t, got.IsSaving)
	assertOrdered(t, got)
}

func TestStore_HydrateIfChangedIgnoresTransientFlags(t *testing.T) {
	s := newStore()
	s.SelectPage("p", domain.PageHome)
	sec, err := s.AddSection(domain.GroupTemplate, domain.SectionFAQ)
	require.NoError(t, err)

	persisted := s.State()
	ticket, ok := s.BeginSave()
	require.True(t, ok)
	s.HoverSection(sec.ID)
	rev := s.Revision()

	assert.False(t, s.HydrateIfChanged(persisted), "same page and sections")
	assert.Equal(t, rev, s.Revision())
	assert.True(t, s.State().IsSaving)

	s.FinishSave(ticket, true)
	assert.False(t, s.State().IsDirty)
}

func TestStore_HydrateIfChangedAdoptsOtherContent(t *testing.T) {
	s := newStore()
	s.SelectPage("p", domain.PageHome)
	s.HoverSection("faq-1")

	other := domain.NewEditorTree()
	other.SelectedPageID = "p"
	other.SelectedPageType = domain.PageHome
	other.IsDirty = true
	other.Template = []domain.Section{
		{ID: "video-1", Type: domain.SectionVideo, SortOrder: 3},
		{ID: "room-1", Type: domain.SectionRoomGallery, SortOrder: 1},
	}

	require.True(t, s.HydrateIfChanged(other))
	got := s.State()
	require.Len(t, got.Template, 1, "room section gated on a home page")
	assert.Equal(t, "video-1", got.Template[0].ID)
	assert.Equal(t, "faq-1", got.HoveredSectionID, "hover stays local")
	assert.True(t, got.IsDirty)
	assertOrdered(t, got)

	assert.False(t, s.HydrateIfChanged(other), "second time is a no-op")
}

func TestStore_RestoreGroupsGatesRoomSections(t *testing.T) {
	s := newStore()
	s.SelectPage("p", domain.PageCustom)
	_, err := s.AddSection(domain.GroupTemplate, domain.SectionRoomGallery)
	require.NoError(t, err)
	_, err = s.AddSection(domain.GroupTemplate, domain.SectionFAQ)
	require.NoError(t, err)
	groups := s.Groups()

	s.SelectPage("p", domain.PageHome)
	s.RestoreGroups(groups, false)

	got := s.State()
	require.Len(t, got.Template, 1)
	assert.Equal(t, domain.SectionFAQ, got.Template[0].Type)
	assertOrdered(t, got)
}

func TestStore_SaveTicketKeepsDirtyWhenEditedMeanwhile(t *testing.T) {
	s := newStore()

	_, ok := s.BeginSave()
	assert.False(t, ok, "clean tree with no page must not save")

	s.SelectPage("p", domain.PageHome)
	sec, err := s.AddSection(domain.GroupTemplate, domain.SectionFAQ)
	require.NoError(t, err)

	ticket, ok := s.BeginSave()
	require.True(t, ok)
	assert.True(t, s.State().IsSaving)

	s.ToggleSectionVisibility(domain.GroupTemplate, sec.ID)
	s.FinishSave(ticket, true)
	tree := s.State()
	assert.False(t, tree.IsSaving)
	assert.True(t, tree.IsDirty)

	ticket, ok = s.BeginSave()
	require.True(t, ok)
	s.FinishSave(ticket, true)
	assert.False(t, s.State().IsDirty)
}

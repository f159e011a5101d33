package editor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/domain"
)

func TestInitializeStructuralComponents_EmptyTree(t *testing.T) {
	s := newStore()

	added, err := s.InitializeStructuralComponents()
	require.NoError(t, err)
	assert.True(t, added)

	tree := s.State()
	assert.Equal(t, []domain.SectionType{domain.SectionAnnouncementBar, domain.SectionHeader}, types(tree.HeaderGroup))
	assert.False(t, tree.HeaderGroup[0].Visible)
	assert.True(t, tree.HeaderGroup[1].Visible)
	assert.Equal(t, []domain.SectionType{domain.SectionCartDrawer}, types(tree.AsideGroup))
	assert.False(t, tree.AsideGroup[0].Visible)
	assert.Equal(t, []domain.SectionType{domain.SectionFooter}, types(tree.FooterGroup))
	assert.False(t, tree.IsDirty)
	assertOrdered(t, tree)
}

func TestInitializeStructuralComponents_Idempotent(t *testing.T) {
	s := newStore()
	_, err := s.InitializeStructuralComponents()
	require.NoError(t, err)
	once := s.State()

	added, err := s.InitializeStructuralComponents()
	require.NoError(t, err)
	assert.False(t, added)

	twice := s.State()
	assert.Equal(t, once, twice)
	for _, st := range []domain.SectionType{
		domain.SectionHeader, domain.SectionFooter,
		domain.SectionAnnouncementBar, domain.SectionCartDrawer,
	} {
		assert.Equal(t, 1, twice.Count(st), st)
	}
}

func TestInitializeStructuralComponents_KeepsExistingInstances(t *testing.T) {
	s := newStore()
	hdr, err := s.AddSection(domain.GroupHeader, domain.SectionHeader)
	require.NoError(t, err)
	banner, err := s.AddSection(domain.GroupHeader, domain.SectionImageBanner)
	require.NoError(t, err)
	s.UpdateSectionSettings(domain.GroupHeader, hdr.ID, map[string]any{"sticky": false})

	_, err = s.InitializeStructuralComponents()
	require.NoError(t, err)

	tree := s.State()
	require.Len(t, tree.HeaderGroup, 3)
	assert.Equal(t, domain.SectionAnnouncementBar, tree.HeaderGroup[0].Type)
	assert.Equal(t, hdr.ID, tree.HeaderGroup[1].ID)
	assert.Equal(t, false, tree.HeaderGroup[1].Settings["sticky"])
	assert.Equal(t, banner.ID, tree.HeaderGroup[2].ID)
	assertOrdered(t, tree)
}

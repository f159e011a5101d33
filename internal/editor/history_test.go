package editor_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/domain"
	"storefront/internal/editor"
)

func TestHistory_UndoCleansRedoDirties(t *testing.T) {
	s := newStore()
	h := editor.NewHistory(s)

	_, err := s.AddSection(domain.GroupTemplate, domain.SectionRichText)
	require.NoError(t, err)
	h.SaveHistory()
	first := s.Groups()

	_, err = s.AddSection(domain.GroupTemplate, domain.SectionFAQ)
	require.NoError(t, err)
	h.SaveHistory()
	second := s.Groups()

	require.True(t, h.CanUndo())
	require.True(t, h.Undo())
	tree := s.State()
	assert.Equal(t, first, tree.SectionGroups)
	assert.False(t, tree.IsDirty, "undo leaves the tree clean")

	require.True(t, h.CanRedo())
	require.True(t, h.Redo())
	tree = s.State()
	assert.Equal(t, second, tree.SectionGroups)
	assert.True(t, tree.IsDirty, "redo leaves the tree dirty")
}

func TestHistory_BoundsChecks(t *testing.T) {
	s := newStore()
	h := editor.NewHistory(s)

	assert.False(t, h.CanUndo())
	assert.False(t, h.CanRedo())
	assert.False(t, h.Undo())
	assert.False(t, h.Redo())

	h.SaveHistory()
	assert.False(t, h.CanUndo(), "a single snapshot has nothing to go back to")
	assert.False(t, h.CanRedo())
}

func TestHistory_SaveDiscardsRedoBranch(t *testing.T) {
	s := newStore()
	h := editor.NewHistory(s)

	h.SaveHistory()
	_, err := s.AddSection(domain.GroupTemplate, domain.SectionVideo)
	require.NoError(t, err)
	h.SaveHistory()
	_, err = s.AddSection(domain.GroupTemplate, domain.SectionFAQ)
	require.NoError(t, err)
	h.SaveHistory()
	require.Equal(t, 3, h.Len())

	h.Undo()
	h.Undo()
	require.True(t, h.CanRedo())

	_, err = s.AddSection(domain.GroupTemplate, domain.SectionNewsletter)
	require.NoError(t, err)
	h.SaveHistory()

	assert.Equal(t, 2, h.Len())
	assert.False(t, h.CanRedo())
}

func TestHistory_EvictsOldestBeyondLimit(t *testing.T) {
	s := newStore()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	tick := 0
	h := editor.NewHistory(s, editor.WithClock(func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Second)
	}))

	for i := 0; i < 60; i++ {
		h.SaveHistory()
	}
	require.Equal(t, editor.DefaultHistoryLimit, h.Len())

	snaps := h.Snapshots()
	// Snapshots 1..10 are gone; the oldest survivor is the 11th.
	assert.Equal(t, base.Add(11*time.Second), snaps[0].Timestamp)
	assert.Equal(t, base.Add(60*time.Second), snaps[len(snaps)-1].Timestamp)
	assert.True(t, h.CanUndo())
	assert.False(t, h.CanRedo())
}

func TestHistory_CustomLimit(t *testing.T) {
	h := editor.NewHistory(newStore(), editor.WithLimit(3))
	for i := 0; i < 5; i++ {
		h.SaveHistory()
	}
	assert.Equal(t, 3, h.Len())
}

func TestHistory_SnapshotsAreDeepCopies(t *testing.T) {
	s := newStore()
	h := editor.NewHistory(s)

	sec, err := s.AddSection(domain.GroupTemplate, domain.SectionRichText)
	require.NoError(t, err)
	h.SaveHistory()

	s.UpdateSectionSettings(domain.GroupTemplate, sec.ID, map[string]any{"heading": "edited"})
	h.SaveHistory()

	require.True(t, h.Undo())
	assert.Equal(t, "Talk about your brand", s.State().Template[0].Settings["heading"])

	// Editing the restored tree must not rewrite the snapshot.
	s.UpdateSectionSettings(domain.GroupTemplate, sec.ID, map[string]any{"heading": "again"})
	require.True(t, h.Redo())
	require.True(t, h.Undo())
	assert.Equal(t, "Talk about your brand", s.State().Template[0].Settings["heading"])
}

func TestHistory_Clear(t *testing.T) {
	h := editor.NewHistory(newStore())
	h.SaveHistory()
	h.SaveHistory()
	h.Clear()
	assert.Equal(t, 0, h.Len())
	assert.False(t, h.CanUndo())
}

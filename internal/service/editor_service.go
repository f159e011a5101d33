package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"storefront/internal/catalog"
	"storefront/internal/domain"
	"storefront/internal/editor"
	"storefront/internal/metrics"
)

// ─────────────────────────────────────────────────────────────
// Editor Service: the page builder session
// ─────────────────────────────────────────────────────────────
//
// EditorService is what the desktop bindings and the MCP tools call. It
// runs the store operation, persists the tree so the next session (or the
// other process) can pick it up, and tells the frontend about the change.
// History snapshots are explicit: callers decide when a batch of edits is
// worth an undo step.

// EditorService drives one editing session.
type EditorService struct {
	store   *editor.Store
	history *editor.History
	gateway *Gateway
	states  domain.EditorStateStore
	emitter EventEmitter
	log     logrus.FieldLogger

	// persistMu orders our own state writes against Reload, so a reload
	// never mistakes the tree we last wrote for another process's edit.
	persistMu   sync.Mutex
	lastWritten []byte
}

// EditorServiceConfig wires an EditorService. States may be nil, in which
// case nothing is persisted between sessions.
type EditorServiceConfig struct {
	Store   *editor.Store
	History *editor.History
	Gateway *Gateway
	States  domain.EditorStateStore
	Emitter EventEmitter
	Log     logrus.FieldLogger
}

func NewEditorService(cfg EditorServiceConfig) *EditorService {
	emitter := cfg.Emitter
	if emitter == nil {
		emitter = NopEmitter{}
	}
	log := cfg.Log
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &EditorService{
		store:   cfg.Store,
		history: cfg.History,
		gateway: cfg.Gateway,
		states:  cfg.States,
		emitter: emitter,
		log:     log.WithField("component", "editor"),
	}
}

// State returns a copy of the current tree.
func (s *EditorService) State() domain.EditorTree {
	return s.store.State()
}

// SectionTypes lists the catalog.
func (s *EditorService) SectionTypes() []catalog.Info {
	return s.store.Catalog().Types()
}

func (s *EditorService) Catalog() *catalog.Catalog {
	return s.store.Catalog()
}

// CanUndo and CanRedo expose the history bounds to the UI.
func (s *EditorService) CanUndo() bool { return s.history.CanUndo() }
func (s *EditorService) CanRedo() bool { return s.history.CanRedo() }

// changed persists the tree and notifies the frontend.
func (s *EditorService) changed(ctx context.Context) domain.EditorTree {
	tree, err := s.persist()
	if err != nil {
		s.log.WithError(err).Warn("persist editor state")
	}
	s.emitter.Emit(ctx, EventEditorChanged, tree)
	return tree
}

// persist writes the current tree and remembers what was written.
func (s *EditorService) persist() (domain.EditorTree, error) {
	s.persistMu.Lock()
	defer s.persistMu.Unlock()

	tree := s.store.State()
	if s.states == nil {
		return tree, nil
	}
	if err := s.states.SaveEditorState(tree); err != nil {
		return tree, err
	}
	s.lastWritten, _ = json.Marshal(tree)
	return tree, nil
}

// ── Pages ──────────────────────────────────────────────────

// SelectPage switches the active page without loading anything. Switching
// to another page or page type drops the history: its snapshots belong to
// the previous page.
func (s *EditorService) SelectPage(ctx context.Context, pageID string, pageType domain.PageType) domain.EditorTree {
	prev := s.store.State()
	s.store.SelectPage(pageID, pageType)
	if prev.SelectedPageID != pageID || prev.SelectedPageType != pageType {
		s.history.Clear()
		metrics.SetHistoryDepth(0)
	}
	return s.changed(ctx)
}

// OpenPage selects a page and loads its sections. The storefront API is
// asked first; when it is unreachable the last preview cached for the page
// is used instead. Structural sections are then ensured and the history
// restarted from the loaded state. Returns how many template sections were
// loaded.
func (s *EditorService) OpenPage(ctx context.Context, pageID string, pageType domain.PageType) (int, error) {
	if pageID == "" {
		return 0, fmt.Errorf("open page: page id is required")
	}
	s.store.SelectPage(pageID, pageType)

	sections, source := s.fetchSections(ctx)
	n := s.store.LoadPageSections(sections)
	if _, err := s.store.InitializeStructuralComponents(); err != nil {
		return n, fmt.Errorf("open page: %w", err)
	}

	s.history.Clear()
	s.history.SaveHistory()
	metrics.SetHistoryDepth(s.history.Len())

	s.log.WithFields(logrus.Fields{"page": pageID, "type": pageType, "sections": n, "source": source}).Info("page opened")
	s.changed(ctx)
	return n, nil
}

func (s *EditorService) fetchSections(ctx context.Context) ([]domain.Section, string) {
	tree := s.store.State()
	log := s.log.WithField("page", tree.SelectedPageID)

	if s.gateway.remote != nil && s.gateway.remote.Enabled() {
		wire, err := s.gateway.remote.FetchPageSections(ctx, tree.SelectedPageID, s.gateway.Token())
		if err == nil {
			return FromWire(s.store.Catalog(), wire), "remote"
		}
		log.WithError(err).Warn("fetch sections, falling back to preview cache")
	}

	cached, err := s.gateway.Cached(tree)
	if err != nil {
		log.WithError(err).Warn("read preview cache")
		return nil, "none"
	}
	if cached == nil {
		return nil, "none"
	}
	return cached, "cache"
}

// ── Sections ───────────────────────────────────────────────

func (s *EditorService) AddSection(ctx context.Context, group domain.Group, t domain.SectionType) (domain.Section, error) {
	sec, err := s.store.AddSection(group, t)
	if err != nil {
		return domain.Section{}, err
	}
	s.changed(ctx)
	return sec, nil
}

func (s *EditorService) RemoveSection(ctx context.Context, group domain.Group, id string) bool {
	if !s.store.RemoveSection(group, id) {
		return false
	}
	s.changed(ctx)
	return true
}

func (s *EditorService) ToggleSectionVisibility(ctx context.Context, group domain.Group, id string) bool {
	if !s.store.ToggleSectionVisibility(group, id) {
		return false
	}
	s.changed(ctx)
	return true
}

func (s *EditorService) UpdateSectionSettings(ctx context.Context, group domain.Group, id string, partial map[string]any) bool {
	if !s.store.UpdateSectionSettings(group, id, partial) {
		return false
	}
	s.changed(ctx)
	return true
}

func (s *EditorService) ReorderSections(ctx context.Context, group domain.Group, from, to int) bool {
	if !s.store.ReorderSections(group, from, to) {
		return false
	}
	s.changed(ctx)
	return true
}

func (s *EditorService) SelectSection(ctx context.Context, id string) {
	s.store.SelectSection(id)
	s.changed(ctx)
}

func (s *EditorService) HoverSection(ctx context.Context, id string) {
	s.store.HoverSection(id)
	s.changed(ctx)
}

func (s *EditorService) SetConfigPanelOpen(ctx context.Context, open bool) {
	s.store.SetConfigPanelOpen(open)
	s.changed(ctx)
}

// LoadPageSections replaces the template with externally sourced sections.
func (s *EditorService) LoadPageSections(ctx context.Context, sections []domain.Section) int {
	n := s.store.LoadPageSections(sections)
	s.changed(ctx)
	return n
}

func (s *EditorService) InitializeStructuralComponents(ctx context.Context) (bool, error) {
	added, err := s.store.InitializeStructuralComponents()
	if err != nil {
		return false, err
	}
	if added {
		s.changed(ctx)
	}
	return added, nil
}

// ResetChanges empties the tree and the history.
func (s *EditorService) ResetChanges(ctx context.Context) {
	s.store.ResetChanges()
	s.history.Clear()
	metrics.SetHistoryDepth(0)
	s.changed(ctx)
}

// ── History ────────────────────────────────────────────────

// SaveHistory takes a snapshot. The change event lets the UI refresh its
// undo and redo buttons.
func (s *EditorService) SaveHistory(ctx context.Context) {
	s.history.SaveHistory()
	metrics.SetHistoryDepth(s.history.Len())
	s.emitter.Emit(ctx, EventEditorChanged, s.store.State())
}

func (s *EditorService) Undo(ctx context.Context) bool {
	if !s.history.Undo() {
		return false
	}
	s.changed(ctx)
	return true
}

func (s *EditorService) Redo(ctx context.Context) bool {
	if !s.history.Redo() {
		return false
	}
	s.changed(ctx)
	return true
}

// ── Persistence ────────────────────────────────────────────

// SavePage flushes the tree through the gateway. Skipped saves emit nothing.
func (s *EditorService) SavePage(ctx context.Context) (SaveResult, error) {
	res, err := s.gateway.SavePage(ctx)
	if err != nil {
		s.log.WithError(err).Error("save page")
		s.changed(ctx)
		return res, err
	}
	if res.Skipped {
		return res, nil
	}
	tree := s.changed(ctx)
	s.emitter.Emit(ctx, EventEditorSaved, map[string]any{
		"pageId": tree.SelectedPageID,
		"result": res,
	})
	return res, nil
}

// Restore hydrates the store from the state persisted by the last session.
// Returns false when there was none.
func (s *EditorService) Restore(ctx context.Context) (bool, error) {
	if s.states == nil {
		return false, nil
	}
	tree, err := s.states.LoadEditorState()
	if err != nil {
		return false, fmt.Errorf("restore editor state: %w", err)
	}
	if tree == nil {
		return false, nil
	}
	s.store.Hydrate(*tree)
	s.history.Clear()
	s.history.SaveHistory()
	metrics.SetHistoryDepth(s.history.Len())

	s.emitter.Emit(ctx, EventEditorChanged, s.store.State())
	s.log.WithField("page", tree.SelectedPageID).Info("editor state restored")
	return true, nil
}

// Reload picks up a tree persisted by another process (the standalone MCP
// server shares the database). The tree this service wrote last is
// ignored, as are differences in hover or saving state. History is kept.
// Returns true when the tree in memory was replaced.
func (s *EditorService) Reload(ctx context.Context) (bool, error) {
	if s.states == nil {
		return false, nil
	}
	s.persistMu.Lock()
	tree, err := s.states.LoadEditorState()
	if err != nil {
		s.persistMu.Unlock()
		return false, fmt.Errorf("reload editor state: %w", err)
	}
	if tree == nil {
		s.persistMu.Unlock()
		return false, nil
	}
	if data, err := json.Marshal(tree); err == nil && bytes.Equal(data, s.lastWritten) {
		s.persistMu.Unlock()
		return false, nil
	}
	changed := s.store.HydrateIfChanged(*tree)
	s.persistMu.Unlock()

	if changed {
		s.emitter.Emit(ctx, EventEditorChanged, s.store.State())
	}
	return changed, nil
}

// PreviewChanged tells the frontend that the preview cache entry key was
// rewritten, possibly by another process.
func (s *EditorService) PreviewChanged(ctx context.Context, key string) {
	s.emitter.Emit(ctx, EventPreviewChanged, map[string]string{"key": key})
}

// Close persists the final state.
func (s *EditorService) Close() error {
	if _, err := s.persist(); err != nil {
		return fmt.Errorf("persist editor state: %w", err)
	}
	return nil
}

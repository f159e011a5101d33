package app

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	mcpserver "storefront/internal/mcp"
	"storefront/internal/service"
)

// stateWatcher polls the database for changes made by another process
// (the standalone MCP server) and brings the app up to date: the editor
// tree is reloaded, the frontend is told when the preview entry of the
// selected page was rewritten, and pending agent approvals are surfaced.
type stateWatcher struct {
	ctx      context.Context
	b        *builder
	emitter  service.EventEmitter
	log      logrus.FieldLogger
	interval time.Duration

	mu          sync.Mutex
	primed      bool
	lastState   string // editor_state fingerprint
	previewKey  string
	lastPreview string // section_cache fingerprint of previewKey
	stopCh      chan struct{}
	// Track emitted approval IDs to avoid re-emission on every tick
	emittedApprovals map[string]bool
}

func newStateWatcher(ctx context.Context, b *builder, emitter service.EventEmitter) *stateWatcher {
	return &stateWatcher{
		ctx:              ctx,
		b:                b,
		emitter:          emitter,
		log:              b.log.WithField("component", "watcher"),
		interval:         2 * time.Second,
		emittedApprovals: map[string]bool{},
	}
}

// Start begins the polling loop. Should be called once on app startup.
func (w *stateWatcher) Start() {
	w.stopCh = make(chan struct{})
	go w.pollLoop(w.stopCh)
}

// Stop terminates the polling loop.
func (w *stateWatcher) Stop() {
	if w.stopCh != nil {
		close(w.stopCh)
		w.stopCh = nil
	}
}

func (w *stateWatcher) pollLoop(stop <-chan struct{}) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.check()
		case <-stop:
			return
		case <-w.ctx.Done():
			return
		}
	}
}

func (w *stateWatcher) check() {
	w.checkEditorState()
	w.checkPreview()
	w.checkApprovals()
}

// ── Editor tree ────────────────────────────────────────────

func (w *stateWatcher) checkEditorState() {
	fp, err := w.b.states.Fingerprint()
	if err != nil {
		w.log.WithError(err).Debug("editor state fingerprint")
		return
	}

	w.mu.Lock()
	changed := w.primed && fp != "" && w.lastState != fp
	w.primed = true
	w.lastState = fp
	w.mu.Unlock()
	if !changed {
		return
	}

	// Our own writes move the fingerprint too; Reload ignores those.
	reloaded, err := w.b.editor.Reload(w.ctx)
	if err != nil {
		w.log.WithError(err).Warn("reload editor state")
		return
	}
	if reloaded {
		w.log.Info("editor state changed by another process")
	}
}

// ── Preview entry ──────────────────────────────────────────

// checkPreview covers the sqlite backend; the files backend has its own
// fsnotify watch.
func (w *stateWatcher) checkPreview() {
	if w.b.sqlCache == nil {
		return
	}
	tree := w.b.editor.State()
	if tree.SelectedPageID == "" {
		return
	}
	key := w.b.gateway.CacheKey(tree)
	fp, err := w.b.sqlCache.Fingerprint(key)
	if err != nil {
		w.log.WithError(err).Debug("preview fingerprint")
		return
	}

	w.mu.Lock()
	changed := w.previewKey == key && w.lastPreview != fp && fp != ""
	w.previewKey = key
	w.lastPreview = fp
	w.mu.Unlock()

	if changed {
		w.b.editor.PreviewChanged(w.ctx, key)
	}
}

// ── Pending approvals (cross-process IPC) ──────────────────

func (w *stateWatcher) checkApprovals() {
	rows, err := w.b.approvals.Pending()
	if err != nil {
		w.log.WithError(err).Debug("list approvals")
		return
	}

	live := make(map[string]bool, len(rows))
	var fresh []mcpserver.PendingAction
	w.mu.Lock()
	for _, r := range rows {
		live[r.ID] = true
		if w.emittedApprovals[r.ID] {
			continue
		}
		w.emittedApprovals[r.ID] = true
		fresh = append(fresh, mcpserver.PendingAction{
			ID:          r.ID,
			Tool:        r.Tool,
			Description: r.Description,
			CreatedAt:   r.CreatedAt,
			Metadata:    r.Metadata,
		})
	}
	// The standalone server deletes rows once it has read the answer.
	for id := range w.emittedApprovals {
		if !live[id] {
			delete(w.emittedApprovals, id)
		}
	}
	w.mu.Unlock()

	for _, action := range fresh {
		w.emitter.Emit(w.ctx, mcpserver.EventApprovalRequired, action)
	}
}

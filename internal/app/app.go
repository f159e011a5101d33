package app

import (
	"context"
	"os"
	"time"

	wailsRuntime "github.com/wailsapp/wails/v2/pkg/runtime"

	"storefront/internal/config"
	"storefront/internal/logging"
	"storefront/internal/metrics"
	"storefront/internal/service"
)

// App is the main Wails application struct.
// All exported methods are available as Wails bindings.
type App struct {
	ctx    context.Context
	cancel context.CancelFunc
	opts   config.Options

	b        *builder
	autosave *service.Autosaver
	watcher  *stateWatcher
}

// New creates a new App. opts says where Startup looks for configuration.
func New(opts config.Options) *App {
	return &App{opts: opts}
}

// wailsEmitter forwards service events to the frontend. Events always go out
// on the Wails context, whatever context the caller had.
type wailsEmitter struct {
	ctx context.Context
}

func (e wailsEmitter) Emit(_ context.Context, event string, data any) {
	wailsRuntime.EventsEmit(e.ctx, event, data)
}

// Startup is called when the app starts.
func (a *App) Startup(ctx context.Context) {
	a.ctx = ctx

	cfg, err := config.Load(a.opts)
	if err != nil {
		wailsRuntime.LogFatalf(ctx, "Failed to load config: %v", err)
		return
	}
	log := logging.New(cfg.Log.Level, cfg.Log.Format, os.Stderr)

	emitter := wailsEmitter{ctx: ctx}
	b, err := openBuilder(cfg, log, emitter)
	if err != nil {
		wailsRuntime.LogFatalf(ctx, "Failed to open storage: %v", err)
		return
	}
	a.b = b

	restored, err := b.editor.Restore(ctx)
	if err != nil {
		wailsRuntime.LogErrorf(ctx, "Failed to restore editor state: %v", err)
	} else if restored {
		wailsRuntime.LogInfof(ctx, "Restored editor state for page %q", b.editor.State().SelectedPageID)
	}

	runCtx, cancel := context.WithCancel(ctx)
	a.cancel = cancel

	a.autosave = service.NewAutosaver(b.editor, cfg.Editor.AutosaveSchedule, log)
	if err := a.autosave.Start(runCtx); err != nil {
		wailsRuntime.LogErrorf(ctx, "Autosave disabled: %v", err)
	}

	// Picks up edits made by the standalone MCP server
	a.watcher = newStateWatcher(runCtx, b, emitter)
	a.watcher.Start()

	if b.files != nil {
		go func() {
			err := b.files.Watch(runCtx, func(key string) {
				b.editor.PreviewChanged(runCtx, key)
			})
			if err != nil {
				wailsRuntime.LogErrorf(ctx, "Preview watch stopped: %v", err)
			}
		}()
	}

	if cfg.Metrics.Addr != "" {
		go func() {
			if err := metrics.Serve(runCtx, cfg.Metrics.Addr); err != nil {
				wailsRuntime.LogErrorf(ctx, "Metrics server: %v", err)
			}
		}()
	}
}

// Shutdown is called when the app is closing.
func (a *App) Shutdown(ctx context.Context) {
	if a.watcher != nil {
		a.watcher.Stop()
	}
	if a.autosave != nil {
		a.autosave.Stop(5 * time.Second)
	}
	if a.cancel != nil {
		a.cancel()
	}
	if a.b != nil {
		if err := a.b.Close(); err != nil {
			wailsRuntime.LogErrorf(ctx, "Failed to close storage: %v", err)
		}
	}
}

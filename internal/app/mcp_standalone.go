package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"storefront/internal/config"
	"storefront/internal/logging"
	mcpserver "storefront/internal/mcp"
	"storefront/internal/service"
)

// ServeMCP runs the builder as a standalone MCP server on stdin/stdout with
// no GUI. Edits land in the shared database, where the desktop app picks
// them up; destructive tools wait for approval from the desktop app. The
// desktop app owns autosave, so pages are only saved here through save_page.
func ServeMCP(opts config.Options) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load(opts)
	if err != nil {
		return err
	}
	// stdout carries the protocol
	log := logging.New(cfg.Log.Level, cfg.Log.Format, os.Stderr)

	b, err := openBuilder(cfg, log, service.NopEmitter{})
	if err != nil {
		return err
	}
	defer b.Close()

	if _, err := b.editor.Restore(ctx); err != nil {
		log.WithError(err).Warn("restore editor state")
	}

	srv := mcpserver.New(mcpserver.Deps{
		Editor:     b.editor,
		ApprovalDB: b.db.Conn(), // Enable SQLite-based approval IPC
		Log:        log,
		SyncState:  true,
	})
	if err := srv.ServeStdio(); err != nil {
		return fmt.Errorf("mcp server: %w", err)
	}
	return nil
}

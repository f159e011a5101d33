package app

import (
	"fmt"
	"strings"

	wailsRuntime "github.com/wailsapp/wails/v2/pkg/runtime"

	"storefront/internal/storage"
)

// ============================================================
// Credentials
// ============================================================

// SetAuthToken stores the storefront API bearer token.
func (a *App) SetAuthToken(token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return fmt.Errorf("token is empty")
	}
	if err := a.b.secrets.Set(a.b.cfg.Remote.TokenKey, []byte(token)); err != nil {
		return fmt.Errorf("store token: %w", err)
	}
	wailsRuntime.LogInfof(a.ctx, "API token updated")
	return nil
}

func (a *App) ClearAuthToken() error {
	return a.b.secrets.Delete(a.b.cfg.Remote.TokenKey)
}

// HasAuthToken reports whether saves will be pushed with a token.
func (a *App) HasAuthToken() bool {
	return a.b.gateway.Token() != ""
}

// ============================================================
// Agent approvals (standalone MCP server)
// ============================================================

func (a *App) ListPendingApprovals() ([]storage.ApprovalRow, error) {
	return a.b.approvals.Pending()
}

func (a *App) ApproveAction(actionID string) error {
	return a.resolveAction(actionID, true)
}

func (a *App) RejectAction(actionID string) error {
	return a.resolveAction(actionID, false)
}

func (a *App) resolveAction(actionID string, approved bool) error {
	ok, err := a.b.approvals.Resolve(actionID, approved)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("no pending action %s", actionID)
	}
	return nil
}

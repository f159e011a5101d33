package mcpserver

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"storefront/internal/storage"
)

// Approval events sent to the frontend.
const (
	EventApprovalRequired  = "mcp:approval-required"
	EventApprovalDismissed = "mcp:approval-dismissed"
)

var (
	ErrRejected = errors.New("action rejected by user")
	ErrTimedOut = errors.New("action timed out")
)

// EventEmitter allows the approval queue to notify the frontend.
type EventEmitter interface {
	Emit(ctx context.Context, event string, data any)
}

// PendingAction represents a destructive operation awaiting user approval.
type PendingAction struct {
	ID          string `json:"id"`
	Tool        string `json:"tool"`
	Description string `json:"description"`
	CreatedAt   string `json:"createdAt"`
	Metadata    string `json:"metadata"` // JSON with extra context (e.g. section ids)
}

type pendingEntry struct {
	action PendingAction
	result chan bool
}

// ApprovalQueue gates destructive MCP tool calls behind the user.
// It supports two modes:
//   - In-process (desktop app running MCP): channels + frontend events
//   - DB-based (standalone MCP): rows in mcp_approvals, resolved by the
//     desktop app and polled here
type ApprovalQueue struct {
	mu      sync.Mutex
	pending map[string]*pendingEntry
	emitter EventEmitter
	timeout time.Duration
	poll    time.Duration
	log     logrus.FieldLogger

	rows *storage.ApprovalStore
}

func NewApprovalQueue(emitter EventEmitter, log logrus.FieldLogger) *ApprovalQueue {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &ApprovalQueue{
		pending: make(map[string]*pendingEntry),
		emitter: emitter,
		timeout: 120 * time.Second,
		poll:    500 * time.Millisecond,
		log:     log.WithField("component", "approval"),
	}
}

// SetDB switches to DB-based mode for the standalone MCP process.
func (q *ApprovalQueue) SetDB(db *sql.DB) {
	q.rows = storage.NewApprovalStore(db)
}

// SetTimeout bounds how long Request waits for the user.
func (q *ApprovalQueue) SetTimeout(timeout, poll time.Duration) {
	q.timeout = timeout
	if poll > 0 {
		q.poll = poll
	}
}

// Request blocks until the user approves or rejects the action, the timeout
// passes, or ctx is done. A nil error means approved.
func (q *ApprovalQueue) Request(ctx context.Context, tool, description string, metadata ...string) error {
	action := PendingAction{
		ID:          uuid.NewString(),
		Tool:        tool,
		Description: description,
		CreatedAt:   time.Now().UTC().Format(time.RFC3339),
		Metadata:    "{}",
	}
	if len(metadata) > 0 && metadata[0] != "" {
		action.Metadata = metadata[0]
	}
	log := q.log.WithFields(logrus.Fields{"id": action.ID, "tool": tool})
	log.Info("approval requested")

	var err error
	if q.rows != nil {
		err = q.requestViaDB(ctx, action)
	} else {
		err = q.requestViaChannel(ctx, action)
	}
	if err != nil {
		log.WithError(err).Info("approval denied")
	}
	return err
}

func (q *ApprovalQueue) requestViaDB(ctx context.Context, action PendingAction) error {
	if err := q.rows.Insert(action.ID, action.Tool, action.Description, action.Metadata); err != nil {
		return err
	}
	defer q.rows.Delete(action.ID)

	deadline := time.NewTimer(q.timeout)
	defer deadline.Stop()
	ticker := time.NewTicker(q.poll)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			status, err := q.rows.Status(action.ID)
			if err != nil {
				q.log.WithError(err).Warn("poll approval")
				continue
			}
			switch status {
			case storage.ApprovalApproved:
				return nil
			case storage.ApprovalRejected, "":
				return fmt.Errorf("%w: %s", ErrRejected, action.Tool)
			}
		case <-deadline.C:
			return fmt.Errorf("%w after %s: %s", ErrTimedOut, q.timeout, action.Tool)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (q *ApprovalQueue) requestViaChannel(ctx context.Context, action PendingAction) error {
	entry := &pendingEntry{action: action, result: make(chan bool, 1)}

	q.mu.Lock()
	q.pending[action.ID] = entry
	q.mu.Unlock()
	defer q.cleanup(action.ID)

	q.emitter.Emit(ctx, EventApprovalRequired, action)

	select {
	case approved := <-entry.result:
		if !approved {
			return fmt.Errorf("%w: %s", ErrRejected, action.Tool)
		}
		return nil
	case <-time.After(q.timeout):
		q.emitter.Emit(ctx, EventApprovalDismissed, map[string]string{"id": action.ID})
		return fmt.Errorf("%w after %s: %s", ErrTimedOut, q.timeout, action.Tool)
	case <-ctx.Done():
		q.emitter.Emit(ctx, EventApprovalDismissed, map[string]string{"id": action.ID})
		return ctx.Err()
	}
}

// Approve marks a pending in-process action as approved.
func (q *ApprovalQueue) Approve(actionID string) bool {
	return q.resolve(actionID, true)
}

// Reject marks a pending in-process action as rejected.
func (q *ApprovalQueue) Reject(actionID string) bool {
	return q.resolve(actionID, false)
}

func (q *ApprovalQueue) resolve(actionID string, approved bool) bool {
	q.mu.Lock()
	entry, ok := q.pending[actionID]
	q.mu.Unlock()
	if !ok {
		return false
	}
	select {
	case entry.result <- approved:
		return true
	default:
		return false
	}
}

// Pending lists the in-process actions still waiting, oldest first.
func (q *ApprovalQueue) Pending() []PendingAction {
	q.mu.Lock()
	out := make([]PendingAction, 0, len(q.pending))
	for _, e := range q.pending {
		out = append(out, e.action)
	}
	q.mu.Unlock()
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt != out[j].CreatedAt {
			return out[i].CreatedAt < out[j].CreatedAt
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (q *ApprovalQueue) cleanup(id string) {
	q.mu.Lock()
	delete(q.pending, id)
	q.mu.Unlock()
}

package storage

import (
	"database/sql"
	"errors"
	"fmt"
)

// Approval statuses stored in mcp_approvals.status.
const (
	ApprovalPending  = "pending"
	ApprovalApproved = "approved"
	ApprovalRejected = "rejected"
)

// ApprovalRow is one destructive agent action waiting on the user. The
// standalone MCP process inserts it; the desktop app resolves it.
type ApprovalRow struct {
	ID          string `json:"id"`
	Tool        string `json:"tool"`
	Description string `json:"description"`
	Status      string `json:"status"`
	Metadata    string `json:"metadata"`
	CreatedAt   string `json:"createdAt"`
}

type ApprovalStore struct {
	conn *sql.DB
}

// NewApprovalStore takes the raw connection because the standalone MCP
// server only ever gets handed *sql.DB.
func NewApprovalStore(conn *sql.DB) *ApprovalStore {
	return &ApprovalStore{conn: conn}
}

func (s *ApprovalStore) Insert(id, tool, description, metadata string) error {
	if metadata == "" {
		metadata = "{}"
	}
	_, err := s.conn.Exec(
		`INSERT INTO mcp_approvals (id, tool, description, status, metadata) VALUES (?, ?, ?, ?, ?)`,
		id, tool, description, ApprovalPending, metadata,
	)
	if err != nil {
		return fmt.Errorf("insert approval: %w", err)
	}
	return nil
}

// Status returns the status of id, or "" when the row is gone.
func (s *ApprovalStore) Status(id string) (string, error) {
	var status string
	err := s.conn.QueryRow(`SELECT status FROM mcp_approvals WHERE id = ?`, id).Scan(&status)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("approval status: %w", err)
	}
	return status, nil
}

// Resolve flips a pending row to approved or rejected. Returns false when no
// pending row had that id.
func (s *ApprovalStore) Resolve(id string, approved bool) (bool, error) {
	status := ApprovalRejected
	if approved {
		status = ApprovalApproved
	}
	res, err := s.conn.Exec(
		`UPDATE mcp_approvals SET status = ? WHERE id = ? AND status = ?`,
		status, id, ApprovalPending,
	)
	if err != nil {
		return false, fmt.Errorf("resolve approval: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

func (s *ApprovalStore) Delete(id string) error {
	_, err := s.conn.Exec(`DELETE FROM mcp_approvals WHERE id = ?`, id)
	return err
}

// Pending lists pending rows, oldest first.
func (s *ApprovalStore) Pending() ([]ApprovalRow, error) {
	rows, err := s.conn.Query(
		`SELECT id, tool, description, status, metadata, created_at
		 FROM mcp_approvals WHERE status = ? ORDER BY created_at, id`,
		ApprovalPending,
	)
	if err != nil {
		return nil, fmt.Errorf("list approvals: %w", err)
	}
	defer rows.Close()

	var out []ApprovalRow
	for rows.Next() {
		var r ApprovalRow
		if err := rows.Scan(&r.ID, &r.Tool, &r.Description, &r.Status, &r.Metadata, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan approval: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

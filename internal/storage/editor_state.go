package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"storefront/internal/domain"
)

// EditorStateStore implements domain.EditorStateStore. The whole tree is
// kept as one JSON document so a later session (or the desktop app, when the
// standalone MCP process edits) can pick it up.
type EditorStateStore struct {
	db *DB
}

func NewEditorStateStore(db *DB) *EditorStateStore {
	return &EditorStateStore{db: db}
}

func (s *EditorStateStore) SaveEditorState(tree domain.EditorTree) error {
	data, err := json.Marshal(tree)
	if err != nil {
		return fmt.Errorf("encode editor state: %w", err)
	}
	_, err = s.db.conn.Exec(
		`INSERT INTO editor_state (id, tree_json, updated_at) VALUES (1, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET tree_json = excluded.tree_json, updated_at = excluded.updated_at`,
		string(data), stamp(),
	)
	if err != nil {
		return fmt.Errorf("save editor state: %w", err)
	}
	return nil
}

// LoadEditorState returns nil, nil when nothing has been saved yet.
func (s *EditorStateStore) LoadEditorState() (*domain.EditorTree, error) {
	var raw string
	err := s.db.conn.QueryRow(`SELECT tree_json FROM editor_state WHERE id = 1`).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load editor state: %w", err)
	}

	tree := domain.NewEditorTree()
	if err := json.Unmarshal([]byte(raw), &tree); err != nil {
		return nil, fmt.Errorf("decode editor state: %w", err)
	}
	// Groups missing from older documents decode as nil.
	for _, g := range domain.AllGroups {
		if sections, _ := tree.Get(g); sections == nil {
			tree.Set(g, []domain.Section{})
		}
	}
	return &tree, nil
}

func (s *EditorStateStore) ClearEditorState() error {
	_, err := s.db.conn.Exec(`DELETE FROM editor_state WHERE id = 1`)
	return err
}

// Fingerprint changes with every SaveEditorState. Empty when no state exists.
func (s *EditorStateStore) Fingerprint() (string, error) {
	var updated string
	err := s.db.conn.QueryRow(`SELECT updated_at FROM editor_state WHERE id = 1`).Scan(&updated)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	return updated, err
}

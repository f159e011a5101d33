package app

import "storefront/internal/domain"

// EditorView is the editor tree plus the history bounds the toolbar needs.
type EditorView struct {
	domain.EditorTree
	CanUndo bool `json:"canUndo"`
	CanRedo bool `json:"canRedo"`
}

// OpenPageResult reports how many template sections were loaded.
type OpenPageResult struct {
	Loaded int        `json:"loaded"`
	State  EditorView `json:"state"`
}

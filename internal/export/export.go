// Package export implements the versioned snapshot format used for backup
// and restore of the tracked data.
package export

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/myaschmitz/codereps/pkg/models"
)

// SchemaVersion is the version tag written into new exports.
// Version 1 files predate the to-do list and carry no todoItems collection;
// they are still accepted on import.
const SchemaVersion = 2

// Snapshot is the top-level export document.
type Snapshot struct {
	Version    int          `json:"version"`
	ExportedAt time.Time    `json:"exportedAt"`
	Data       SnapshotData `json:"data"`
}

// SnapshotData holds the exported collections. TodoItems is nil when the
// source file did not contain the collection at all, as opposed to an empty
// to-do list.
type SnapshotData struct {
	Problems  []models.Problem  `json:"problems"`
	TodoItems []models.TodoItem `json:"todoItems"`
}

// Marshal builds a snapshot of the given collections and serializes it.
// All date fields are written as RFC 3339 strings.
func Marshal(problems []models.Problem, todoItems []models.TodoItem) ([]byte, error) {
	if problems == nil {
		problems = []models.Problem{}
	}
	if todoItems == nil {
		todoItems = []models.TodoItem{}
	}
	snapshot := Snapshot{
		Version:    SchemaVersion,
		ExportedAt: time.Now().UTC(),
		Data: SnapshotData{
			Problems:  problems,
			TodoItems: todoItems,
		},
	}
	payload, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to serialize export: %w", err)
	}
	return payload, nil
}

// header mirrors the snapshot envelope with the collections left raw, so a
// payload can be validated before any records are decoded.
type header struct {
	Version int `json:"version"`
	Data    *struct {
		Problems  json.RawMessage `json:"problems"`
		TodoItems json.RawMessage `json:"todoItems"`
	} `json:"data"`
}

// Parse validates and decodes an export payload. A payload without a
// positive version tag or without a problems collection fails with
// models.ErrInvalidImport; nothing is partially decoded in that case.
func Parse(payload []byte) (*Snapshot, error) {
	var h header
	if err := json.Unmarshal(payload, &h); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrInvalidImport, err)
	}
	if h.Version <= 0 {
		return nil, fmt.Errorf("%w: missing version tag", models.ErrInvalidImport)
	}
	if h.Data == nil || h.Data.Problems == nil {
		return nil, fmt.Errorf("%w: missing problems collection", models.ErrInvalidImport)
	}

	var snapshot Snapshot
	if err := json.Unmarshal(payload, &snapshot); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrInvalidImport, err)
	}
	return &snapshot, nil
}

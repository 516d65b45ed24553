package service

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/myaschmitz/codereps/internal/database"
	"github.com/myaschmitz/codereps/internal/export"
	"github.com/myaschmitz/codereps/pkg/models"
)

// TodoService coordinates the to-attempt list. It is correlated with the
// problem collection only by name: callers that record a review may call
// MarkCompleteByName to tick off the matching pending item.
type TodoService struct {
	todoItems *database.TodoRepository
	log       zerolog.Logger
}

// NewTodoService creates a todo service.
func NewTodoService(todoItems *database.TodoRepository, log zerolog.Logger) *TodoService {
	return &TodoService{todoItems: todoItems, log: log}
}

// TodoItemPatch describes an edit to a to-do item. Nil fields are left
// untouched.
type TodoItemPatch struct {
	Name   *string
	Number *int
	Note   *string
}

// AddTodoItem creates a new pending item. Unlike problems there is no name
// dedup: adding "Two Sum" twice yields two entries.
func (s *TodoService) AddTodoItem(name string, number int, note string) (*models.TodoItem, error) {
	item := &models.TodoItem{
		ID:        uuid.NewString(),
		Name:      name,
		Number:    number,
		Note:      note,
		CreatedAt: time.Now(),
	}
	if err := s.todoItems.Upsert(item); err != nil {
		return nil, err
	}

	s.log.Info().Str("id", item.ID).Str("name", name).Msg("todo item added")

	return item, nil
}

// GetPendingTodos returns uncompleted items, oldest first.
func (s *TodoService) GetPendingTodos() ([]models.TodoItem, error) {
	all, err := s.todoItems.GetAll()
	if err != nil {
		return nil, err
	}

	pending := []models.TodoItem{}
	for _, item := range all {
		if !item.Completed {
			pending = append(pending, item)
		}
	}
	sort.SliceStable(pending, func(i, j int) bool {
		return pending[i].CreatedAt.Before(pending[j].CreatedAt)
	})
	return pending, nil
}

// GetCompletedTodos returns completed items, most recently completed first.
// Items missing a completion timestamp fall back to their creation date;
// that should not happen since MarkComplete always sets both together.
func (s *TodoService) GetCompletedTodos() ([]models.TodoItem, error) {
	all, err := s.todoItems.GetAll()
	if err != nil {
		return nil, err
	}

	completed := []models.TodoItem{}
	for _, item := range all {
		if item.Completed {
			completed = append(completed, item)
		}
	}
	sort.SliceStable(completed, func(i, j int) bool {
		return completionTime(completed[i]).After(completionTime(completed[j]))
	})
	return completed, nil
}

func completionTime(item models.TodoItem) time.Time {
	if item.CompletedAt != nil {
		return *item.CompletedAt
	}
	return item.CreatedAt
}

// MarkComplete sets the completed flag and completion timestamp together.
func (s *TodoService) MarkComplete(id string) (*models.TodoItem, error) {
	item, err := s.todoItems.GetByID(id)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	item.Completed = true
	item.CompletedAt = &now
	if err := s.todoItems.Upsert(item); err != nil {
		return nil, err
	}
	return item, nil
}

// MarkIncomplete clears the completed flag and completion timestamp together.
func (s *TodoService) MarkIncomplete(id string) (*models.TodoItem, error) {
	item, err := s.todoItems.GetByID(id)
	if err != nil {
		return nil, err
	}
	item.Completed = false
	item.CompletedAt = nil
	if err := s.todoItems.Upsert(item); err != nil {
		return nil, err
	}
	return item, nil
}

// MarkCompleteByName completes the first pending item whose name equals the
// given one, case-insensitively, and reports whether a match was found.
// Completed items are never matched, so re-reviewing a problem does not
// touch an already ticked-off entry.
func (s *TodoService) MarkCompleteByName(name string) (bool, error) {
	all, err := s.todoItems.GetAll()
	if err != nil {
		return false, err
	}

	for i := range all {
		if all[i].Completed || !strings.EqualFold(all[i].Name, name) {
			continue
		}
		if _, err := s.MarkComplete(all[i].ID); err != nil {
			return false, err
		}
		s.log.Debug().Str("name", name).Msg("todo item completed by name")
		return true, nil
	}
	return false, nil
}

// SearchTodos returns items whose names fuzzily match the query. A blank
// query returns an empty result without touching the store.
func (s *TodoService) SearchTodos(query string) ([]models.TodoItem, error) {
	if strings.TrimSpace(query) == "" {
		return []models.TodoItem{}, nil
	}

	all, err := s.todoItems.GetAll()
	if err != nil {
		return nil, err
	}

	matches := []models.TodoItem{}
	for _, item := range all {
		if matchesName(query, item.Name) {
			matches = append(matches, item)
		}
	}
	return matches, nil
}

// UpdateTodoItem patches the given fields of an item.
func (s *TodoService) UpdateTodoItem(id string, patch TodoItemPatch) (*models.TodoItem, error) {
	item, err := s.todoItems.GetByID(id)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		item.Name = *patch.Name
	}
	if patch.Number != nil {
		item.Number = *patch.Number
	}
	if patch.Note != nil {
		item.Note = *patch.Note
	}

	if err := s.todoItems.Upsert(item); err != nil {
		return nil, err
	}
	return item, nil
}

// DeleteTodoItem removes an item. Deleting an unknown id is a no-op.
func (s *TodoService) DeleteTodoItem(id string) error {
	return s.todoItems.Delete(id)
}

// DeleteAll removes every to-do item.
func (s *TodoService) DeleteAll() error {
	return s.todoItems.DeleteAll()
}

// ExportData produces a versioned snapshot of the to-do list alone. The
// problems collection is present but empty so the payload satisfies the
// import format.
func (s *TodoService) ExportData() ([]byte, error) {
	all, err := s.todoItems.GetAll()
	if err != nil {
		return nil, err
	}
	return export.Marshal([]models.Problem{}, all)
}

// ImportData restores to-do items from an export payload, replacing records
// that share an id. Problems in the payload are ignored here; use
// ProblemService.ImportData for a full restore.
func (s *TodoService) ImportData(payload []byte) error {
	snapshot, err := export.Parse(payload)
	if err != nil {
		return err
	}
	if snapshot.Data.TodoItems == nil {
		return nil
	}
	return s.todoItems.BulkUpsert(snapshot.Data.TodoItems)
}

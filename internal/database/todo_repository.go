package database

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/myaschmitz/codereps/pkg/models"
)

// TodoRepository handles database operations for the todo_items collection.
type TodoRepository struct {
	db *sqlx.DB
}

// NewTodoRepository creates a new repository instance.
func NewTodoRepository(db *sqlx.DB) *TodoRepository {
	return &TodoRepository{db: db}
}

type todoRow struct {
	ID          string       `db:"id"`
	Name        string       `db:"name"`
	Number      int          `db:"number"`
	Note        string       `db:"note"`
	Completed   bool         `db:"completed"`
	CreatedAt   time.Time    `db:"created_at"`
	CompletedAt sql.NullTime `db:"completed_at"`
}

func (row *todoRow) toModel() models.TodoItem {
	item := models.TodoItem{
		ID:        row.ID,
		Name:      row.Name,
		Number:    row.Number,
		Note:      row.Note,
		Completed: row.Completed,
		CreatedAt: row.CreatedAt,
	}
	if row.CompletedAt.Valid {
		t := row.CompletedAt.Time
		item.CompletedAt = &t
	}
	return item
}

func todoToRow(item *models.TodoItem) todoRow {
	row := todoRow{
		ID:        item.ID,
		Name:      item.Name,
		Number:    item.Number,
		Note:      item.Note,
		Completed: item.Completed,
		CreatedAt: item.CreatedAt,
	}
	if item.CompletedAt != nil {
		row.CompletedAt = sql.NullTime{Time: *item.CompletedAt, Valid: true}
	}
	return row
}

// GetByID returns the todo item with the given id, or models.ErrTodoNotFound.
func (r *TodoRepository) GetByID(id string) (*models.TodoItem, error) {
	var row todoRow
	err := r.db.Get(&row, "SELECT * FROM todo_items WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrTodoNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get todo item: %w", err)
	}
	item := row.toModel()
	return &item, nil
}

// GetAll returns every todo item in the collection, oldest first.
func (r *TodoRepository) GetAll() ([]models.TodoItem, error) {
	var rows []todoRow
	err := r.db.Select(&rows, "SELECT * FROM todo_items ORDER BY created_at, id")
	if err != nil {
		return nil, fmt.Errorf("failed to get todo items: %w", err)
	}

	items := make([]models.TodoItem, 0, len(rows))
	for i := range rows {
		items = append(items, rows[i].toModel())
	}
	return items, nil
}

// Upsert inserts the item or replaces the existing record with the same id.
// Completed flag and completion timestamp travel in the same statement.
func (r *TodoRepository) Upsert(item *models.TodoItem) error {
	_, err := r.db.NamedExec(`
		INSERT INTO todo_items (id, name, number, note, completed, created_at, completed_at)
		VALUES (:id, :name, :number, :note, :completed, :created_at, :completed_at)
		ON CONFLICT (id) DO UPDATE SET
			name = excluded.name,
			number = excluded.number,
			note = excluded.note,
			completed = excluded.completed,
			created_at = excluded.created_at,
			completed_at = excluded.completed_at
	`, todoToRow(item))
	if err != nil {
		return fmt.Errorf("failed to upsert todo item: %w", err)
	}
	return nil
}

// BulkUpsert upserts all given items in a single transaction.
func (r *TodoRepository) BulkUpsert(items []models.TodoItem) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}

	for i := range items {
		_, err = tx.NamedExec(`
			INSERT INTO todo_items (id, name, number, note, completed, created_at, completed_at)
			VALUES (:id, :name, :number, :note, :completed, :created_at, :completed_at)
			ON CONFLICT (id) DO UPDATE SET
				name = excluded.name,
				number = excluded.number,
				note = excluded.note,
				completed = excluded.completed,
				created_at = excluded.created_at,
				completed_at = excluded.completed_at
		`, todoToRow(&items[i]))
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to upsert todo item %s: %w", items[i].ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Delete removes a todo item. Deleting an absent id is not an error.
func (r *TodoRepository) Delete(id string) error {
	_, err := r.db.Exec("DELETE FROM todo_items WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete todo item: %w", err)
	}
	return nil
}

// DeleteAll removes every todo item in the collection.
func (r *TodoRepository) DeleteAll() error {
	_, err := r.db.Exec("DELETE FROM todo_items")
	if err != nil {
		return fmt.Errorf("failed to delete todo items: %w", err)
	}
	return nil
}

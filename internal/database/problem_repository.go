package database

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/myaschmitz/codereps/pkg/models"
)

// ProblemRepository handles database operations for the problems collection.
type ProblemRepository struct {
	db *sqlx.DB
}

// NewProblemRepository creates a new repository instance.
func NewProblemRepository(db *sqlx.DB) *ProblemRepository {
	return &ProblemRepository{db: db}
}

// problemRow is the table representation of a problem. The review history
// travels as a JSON blob so the row is the unit of atomicity.
type problemRow struct {
	ID             string    `db:"id"`
	Name           string    `db:"name"`
	Number         int       `db:"number"`
	ReviewHistory  string    `db:"review_history"`
	NextReviewDate time.Time `db:"next_review_date"`
	CreatedAt      time.Time `db:"created_at"`
	Archived       bool      `db:"archived"`
}

func (row *problemRow) toModel() (models.Problem, error) {
	p := models.Problem{
		ID:             row.ID,
		Name:           row.Name,
		Number:         row.Number,
		NextReviewDate: row.NextReviewDate,
		CreatedAt:      row.CreatedAt,
		Archived:       row.Archived,
	}
	if err := json.Unmarshal([]byte(row.ReviewHistory), &p.ReviewHistory); err != nil {
		return models.Problem{}, fmt.Errorf("failed to decode review history for %s: %w", row.ID, err)
	}
	return p, nil
}

func problemToRow(p *models.Problem) (problemRow, error) {
	history := p.ReviewHistory
	if history == nil {
		history = []models.ReviewRecord{}
	}
	encoded, err := json.Marshal(history)
	if err != nil {
		return problemRow{}, fmt.Errorf("failed to encode review history for %s: %w", p.ID, err)
	}
	return problemRow{
		ID:             p.ID,
		Name:           p.Name,
		Number:         p.Number,
		ReviewHistory:  string(encoded),
		NextReviewDate: p.NextReviewDate,
		CreatedAt:      p.CreatedAt,
		Archived:       p.Archived,
	}, nil
}

// GetByID returns the problem with the given id, or models.ErrProblemNotFound.
func (r *ProblemRepository) GetByID(id string) (*models.Problem, error) {
	var row problemRow
	err := r.db.Get(&row, "SELECT * FROM problems WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrProblemNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get problem: %w", err)
	}
	p, err := row.toModel()
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// GetAll returns every problem in the collection, oldest first.
func (r *ProblemRepository) GetAll() ([]models.Problem, error) {
	var rows []problemRow
	err := r.db.Select(&rows, "SELECT * FROM problems ORDER BY created_at, id")
	if err != nil {
		return nil, fmt.Errorf("failed to get problems: %w", err)
	}

	problems := make([]models.Problem, 0, len(rows))
	for i := range rows {
		p, err := rows[i].toModel()
		if err != nil {
			return nil, err
		}
		problems = append(problems, p)
	}
	return problems, nil
}

// Upsert inserts the problem or replaces the existing record with the same id.
func (r *ProblemRepository) Upsert(p *models.Problem) error {
	row, err := problemToRow(p)
	if err != nil {
		return err
	}
	_, err = r.db.NamedExec(`
		INSERT INTO problems (id, name, number, review_history, next_review_date, created_at, archived)
		VALUES (:id, :name, :number, :review_history, :next_review_date, :created_at, :archived)
		ON CONFLICT (id) DO UPDATE SET
			name = excluded.name,
			number = excluded.number,
			review_history = excluded.review_history,
			next_review_date = excluded.next_review_date,
			created_at = excluded.created_at,
			archived = excluded.archived
	`, row)
	if err != nil {
		return fmt.Errorf("failed to upsert problem: %w", err)
	}
	return nil
}

// BulkUpsert upserts all given problems in a single transaction.
// Used by import: records sharing an id are replaced, not duplicated.
func (r *ProblemRepository) BulkUpsert(problems []models.Problem) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}

	for i := range problems {
		row, err := problemToRow(&problems[i])
		if err != nil {
			tx.Rollback()
			return err
		}
		_, err = tx.NamedExec(`
			INSERT INTO problems (id, name, number, review_history, next_review_date, created_at, archived)
			VALUES (:id, :name, :number, :review_history, :next_review_date, :created_at, :archived)
			ON CONFLICT (id) DO UPDATE SET
				name = excluded.name,
				number = excluded.number,
				review_history = excluded.review_history,
				next_review_date = excluded.next_review_date,
				created_at = excluded.created_at,
				archived = excluded.archived
		`, row)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to upsert problem %s: %w", problems[i].ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Delete removes a problem. Deleting an absent id is not an error.
func (r *ProblemRepository) Delete(id string) error {
	_, err := r.db.Exec("DELETE FROM problems WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete problem: %w", err)
	}
	return nil
}

// DeleteAll removes every problem in the collection.
func (r *ProblemRepository) DeleteAll() error {
	_, err := r.db.Exec("DELETE FROM problems")
	if err != nil {
		return fmt.Errorf("failed to delete problems: %w", err)
	}
	return nil
}

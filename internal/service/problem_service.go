// Package service orchestrates the store, scheduler, and review queue for
// the problem and to-do use cases.
package service

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/myaschmitz/codereps/internal/database"
	"github.com/myaschmitz/codereps/internal/export"
	"github.com/myaschmitz/codereps/internal/review"
	"github.com/myaschmitz/codereps/internal/spaced_repetition"
	"github.com/myaschmitz/codereps/pkg/models"
)

// ProblemService coordinates problem and review use cases. Construct one at
// startup with NewProblemService and pass it by reference; it keeps no state
// beyond its collaborators.
type ProblemService struct {
	problems  *database.ProblemRepository
	todoItems *database.TodoRepository
	scheduler *spaced_repetition.Scheduler
	log       zerolog.Logger
}

// NewProblemService creates a problem service. The todo repository is needed
// only for the coordinated database reset and the combined export.
func NewProblemService(problems *database.ProblemRepository, todoItems *database.TodoRepository, scheduler *spaced_repetition.Scheduler, log zerolog.Logger) *ProblemService {
	return &ProblemService{
		problems:  problems,
		todoItems: todoItems,
		scheduler: scheduler,
		log:       log,
	}
}

// ReviewRecordPatch describes an edit to a single review record. Nil fields
// are left untouched. A Note pointing at a blank string clears the note.
type ReviewRecordPatch struct {
	Date       *time.Time
	Difficulty *models.Difficulty
	Note       *string
}

// AddProblem creates a problem with an empty review history, or returns the
// existing problem unchanged when one with the same name (case-insensitive)
// already exists. The first review is recorded separately via RecordReview.
//
// reviewDate, when non-zero, seeds the next review date; otherwise the
// problem is due immediately. The date is stored as given: only the
// scheduler truncates to start of day.
func (s *ProblemService) AddProblem(name string, number int, reviewDate time.Time) (*models.Problem, error) {
	existing, err := s.findByName(name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	now := time.Now()
	if reviewDate.IsZero() {
		reviewDate = now
	}

	problem := &models.Problem{
		ID:             uuid.NewString(),
		Name:           name,
		Number:         number,
		ReviewHistory:  []models.ReviewRecord{},
		NextReviewDate: reviewDate,
		CreatedAt:      now,
	}
	if err := s.problems.Upsert(problem); err != nil {
		return nil, err
	}

	s.log.Info().Str("id", problem.ID).Str("name", name).Msg("problem added")

	return problem, nil
}

// RecordReview appends a review to the problem's history, reschedules via
// the pre-append history length, and auto-archives once enough successful
// reviews have accumulated. Archiving here is one-way: a later failed review
// never unarchives.
func (s *ProblemService) RecordReview(problemID string, difficulty models.Difficulty, reviewDate time.Time, notes string) (*models.Problem, error) {
	if !difficulty.IsValid() {
		return nil, models.ErrInvalidDifficulty
	}

	problem, err := s.problems.GetByID(problemID)
	if err != nil {
		return nil, err
	}

	if reviewDate.IsZero() {
		reviewDate = time.Now()
	}

	// Captured before the append: the multiplier is driven by how many
	// reviews existed when this one happened.
	priorReviews := len(problem.ReviewHistory)

	record := models.ReviewRecord{
		Date:       reviewDate,
		Difficulty: difficulty,
	}
	if strings.TrimSpace(notes) != "" {
		record.Note = notes
	}

	problem.ReviewHistory = append(problem.ReviewHistory, record)
	problem.NextReviewDate = s.scheduler.NextReview(priorReviews, difficulty, reviewDate)

	if !problem.Archived && s.scheduler.ShouldArchive(problem) {
		problem.Archived = true
		s.log.Info().Str("id", problem.ID).Str("name", problem.Name).Msg("problem auto-archived")
	}

	if err := s.problems.Upsert(problem); err != nil {
		return nil, err
	}

	s.log.Debug().
		Str("id", problem.ID).
		Stringer("difficulty", difficulty).
		Time("next_review", problem.NextReviewDate).
		Msg("review recorded")

	return problem, nil
}

// UpdateReviewRecord edits the review record at the given index. The next
// review date is recomputed only when the edited record is the latest by
// index and its date or difficulty changed; editing earlier records never
// reschedules, even if their dates now sort after the latest one.
func (s *ProblemService) UpdateReviewRecord(problemID string, index int, patch ReviewRecordPatch) (*models.Problem, error) {
	problem, err := s.problems.GetByID(problemID)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(problem.ReviewHistory) {
		return nil, models.ErrReviewIndex
	}

	record := &problem.ReviewHistory[index]
	reschedule := false

	if patch.Date != nil {
		record.Date = *patch.Date
		reschedule = true
	}
	if patch.Difficulty != nil {
		if !patch.Difficulty.IsValid() {
			return nil, models.ErrInvalidDifficulty
		}
		record.Difficulty = *patch.Difficulty
		reschedule = true
	}
	if patch.Note != nil {
		if strings.TrimSpace(*patch.Note) == "" {
			record.Note = ""
		} else {
			record.Note = *patch.Note
		}
	}

	if reschedule && index == len(problem.ReviewHistory)-1 {
		problem.NextReviewDate = s.scheduler.NextReview(index, record.Difficulty, record.Date)
	}

	if err := s.problems.Upsert(problem); err != nil {
		return nil, err
	}
	return problem, nil
}

// SearchProblems returns problems whose names fuzzily match the query.
// A blank query returns an empty result without touching the store.
func (s *ProblemService) SearchProblems(query string) ([]models.Problem, error) {
	if strings.TrimSpace(query) == "" {
		return []models.Problem{}, nil
	}

	all, err := s.problems.GetAll()
	if err != nil {
		return nil, err
	}

	matches := []models.Problem{}
	for _, p := range all {
		if matchesName(query, p.Name) {
			matches = append(matches, p)
		}
	}
	return matches, nil
}

// ArchiveProblem sets the archived flag. Archiving an already archived
// problem is a no-op, not an error.
func (s *ProblemService) ArchiveProblem(problemID string) (*models.Problem, error) {
	return s.setArchived(problemID, true)
}

// UnarchiveProblem clears the archived flag, returning the problem to the
// review queue.
func (s *ProblemService) UnarchiveProblem(problemID string) (*models.Problem, error) {
	return s.setArchived(problemID, false)
}

func (s *ProblemService) setArchived(problemID string, archived bool) (*models.Problem, error) {
	problem, err := s.problems.GetByID(problemID)
	if err != nil {
		return nil, err
	}
	if problem.Archived == archived {
		return problem, nil
	}
	problem.Archived = archived
	if err := s.problems.Upsert(problem); err != nil {
		return nil, err
	}
	return problem, nil
}

// DeleteProblem removes a problem and its history. Deleting an unknown id
// is a no-op.
func (s *ProblemService) DeleteProblem(problemID string) error {
	return s.problems.Delete(problemID)
}

// GetAllProblems returns the stored problems, excluding archived ones unless
// includeArchived is set.
func (s *ProblemService) GetAllProblems(includeArchived bool) ([]models.Problem, error) {
	all, err := s.problems.GetAll()
	if err != nil {
		return nil, err
	}
	if includeArchived {
		return all, nil
	}

	active := []models.Problem{}
	for _, p := range all {
		if !p.Archived {
			active = append(active, p)
		}
	}
	return active, nil
}

// GetReviewQueue partitions the active problems into due-today and upcoming
// relative to the current day. Derived fields are recomputed on every call.
func (s *ProblemService) GetReviewQueue() (review.Queue, error) {
	all, err := s.problems.GetAll()
	if err != nil {
		return review.Queue{}, err
	}
	return review.Partition(all, time.Now()), nil
}

// ResetDatabase deletes every problem and every to-do item. This is the one
// operation that spans both collections; the two deletes are not atomic as
// a pair.
func (s *ProblemService) ResetDatabase() error {
	if err := s.problems.DeleteAll(); err != nil {
		return err
	}
	if err := s.todoItems.DeleteAll(); err != nil {
		return err
	}
	s.log.Info().Msg("database reset")
	return nil
}

// ExportData produces a versioned snapshot of all problems (archived
// included) and all to-do items.
func (s *ProblemService) ExportData() ([]byte, error) {
	problems, err := s.problems.GetAll()
	if err != nil {
		return nil, err
	}
	todoItems, err := s.todoItems.GetAll()
	if err != nil {
		return nil, err
	}
	return export.Marshal(problems, todoItems)
}

// ImportData restores records from an export payload. Records sharing an id
// with an existing one are replaced. To-do items are imported only when the
// payload carries the collection, so version 1 exports restore cleanly.
func (s *ProblemService) ImportData(payload []byte) error {
	snapshot, err := export.Parse(payload)
	if err != nil {
		return err
	}

	if err := s.problems.BulkUpsert(snapshot.Data.Problems); err != nil {
		return err
	}
	if snapshot.Data.TodoItems != nil {
		if err := s.todoItems.BulkUpsert(snapshot.Data.TodoItems); err != nil {
			return err
		}
	}

	s.log.Info().
		Int("version", snapshot.Version).
		Int("problems", len(snapshot.Data.Problems)).
		Int("todo_items", len(snapshot.Data.TodoItems)).
		Msg("import complete")

	return nil
}

// findByName returns the problem with the given case-insensitive name, or
// nil when none exists. Archived problems count: re-adding an archived
// problem returns the archived record instead of creating a duplicate.
func (s *ProblemService) findByName(name string) (*models.Problem, error) {
	all, err := s.problems.GetAll()
	if err != nil {
		return nil, err
	}
	for i := range all {
		if strings.EqualFold(all[i].Name, name) {
			return &all[i], nil
		}
	}
	return nil, nil
}

package spaced_repetition

import (
	"time"

	"github.com/myaschmitz/codereps/pkg/models"
)

// Scheduler implements the fixed-interval spaced repetition schedule.
// Intervals grow with the number of prior reviews (for Medium and Hard)
// and are capped at MaxInterval days.
type Scheduler struct {
	// Maximum repetition interval in days
	MaxInterval int
	// Number of successful (Easy/Medium) reviews before a problem is
	// considered learned and auto-archived
	ArchiveThreshold int
}

// New creates a Scheduler with the default settings.
func New() *Scheduler {
	return &Scheduler{
		MaxInterval:      90,
		ArchiveThreshold: 3,
	}
}

// baseInterval returns the starting interval in days for each difficulty.
// The switch is exhaustive over the closed Difficulty set; an invalid value
// falls through to the shortest interval rather than scheduling nothing.
func baseInterval(d models.Difficulty) int {
	switch d {
	case models.Easy:
		return 90
	case models.Medium:
		return 7
	case models.Hard:
		return 3
	case models.DidntGet:
		return 1
	}
	return 1
}

// multiplier returns the interval multiplier for the number of reviews
// recorded before the current one. Only Medium and Hard progress; Easy is
// already at the ceiling and DidntGet always comes back the next day.
func multiplier(d models.Difficulty, priorReviews int) int {
	if d != models.Medium && d != models.Hard {
		return 1
	}
	switch {
	case priorReviews <= 1:
		return 1
	case priorReviews <= 3:
		return 2
	default:
		return 3
	}
}

// NextReview computes the next review date for a review at the given
// difficulty. priorReviews is the length of the review history before the
// current review is appended; the caller captures it pre-append.
//
// The result is asOf truncated to the start of the local calendar day plus
// the interval, so repeated scheduling never drifts by time of day.
func (s *Scheduler) NextReview(priorReviews int, d models.Difficulty, asOf time.Time) time.Time {
	interval := baseInterval(d) * multiplier(d, priorReviews)
	if interval > s.MaxInterval {
		interval = s.MaxInterval
	}
	return StartOfDay(asOf).AddDate(0, 0, interval)
}

// ShouldArchive reports whether the problem has accumulated enough
// successful reviews to leave the active queue. Easy and Medium reviews
// count wherever they sit in the history; a Hard or DidntGet review in
// between does not reset progress.
func (s *Scheduler) ShouldArchive(p *models.Problem) bool {
	return p.SuccessCount() >= s.ArchiveThreshold
}

// StartOfDay truncates t to midnight of its local calendar day.
func StartOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

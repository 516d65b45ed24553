// Package review derives the review queue from the stored problems.
// Everything here is computed fresh against "now"; nothing is cached.
package review

import (
	"math"
	"sort"
	"time"

	"github.com/myaschmitz/codereps/internal/spaced_repetition"
	"github.com/myaschmitz/codereps/pkg/models"
)

// Queue is the partition of active problems into the problems to review
// today (including overdue ones) and the problems scheduled later.
type Queue struct {
	// DueToday holds problems whose next review falls on or before today,
	// most overdue first.
	DueToday []models.ReviewItem
	// Upcoming holds problems scheduled strictly after today, soonest first.
	Upcoming []models.ReviewItem
}

// All returns the full queue: due problems first, then upcoming, each
// bucket keeping its own order.
func (q Queue) All() []models.ReviewItem {
	all := make([]models.ReviewItem, 0, len(q.DueToday)+len(q.Upcoming))
	all = append(all, q.DueToday...)
	all = append(all, q.Upcoming...)
	return all
}

// Partition classifies every non-archived problem relative to now's local
// calendar day. Each active problem lands in exactly one bucket. Buckets are
// sorted ascending by next review date; the sort is stable, so problems
// sharing a date keep their input order.
func Partition(problems []models.Problem, now time.Time) Queue {
	today := spaced_repetition.StartOfDay(now)

	var q Queue
	for _, p := range problems {
		if p.Archived {
			continue
		}

		reviewDay := spaced_repetition.StartOfDay(p.NextReviewDate)
		item := models.ReviewItem{
			Problem:   p,
			IsToday:   reviewDay.Equal(today),
			IsOverdue: reviewDay.Before(today),
		}
		if item.IsOverdue {
			item.DaysOverdue = wholeDays(reviewDay, today)
		}

		if reviewDay.After(today) {
			q.Upcoming = append(q.Upcoming, item)
		} else {
			q.DueToday = append(q.DueToday, item)
		}
	}

	sort.SliceStable(q.DueToday, func(i, j int) bool {
		return q.DueToday[i].Problem.NextReviewDate.Before(q.DueToday[j].Problem.NextReviewDate)
	})
	sort.SliceStable(q.Upcoming, func(i, j int) bool {
		return q.Upcoming[i].Problem.NextReviewDate.Before(q.Upcoming[j].Problem.NextReviewDate)
	})

	return q
}

// wholeDays counts calendar days from one midnight to a later one.
// Rounding absorbs the odd-length days around DST transitions.
func wholeDays(from, to time.Time) int {
	return int(math.Round(to.Sub(from).Hours() / 24))
}

package models

import "time"

// Problem represents a coding-interview problem being tracked for
// spaced-repetition practice.
type Problem struct {
	ID             string         `json:"id" db:"id"`
	Name           string         `json:"name" db:"name"`
	Number         int            `json:"number,omitempty" db:"number"` // Optional: external problem number (e.g. LeetCode #1)
	ReviewHistory  []ReviewRecord `json:"reviewHistory"`
	NextReviewDate time.Time      `json:"nextReviewDate" db:"next_review_date"`
	CreatedAt      time.Time      `json:"createdAt" db:"created_at"`
	Archived       bool           `json:"archived" db:"archived"`
}

// ReviewRecord represents a single practice session on a problem.
// Records are appended in insertion order; an edit never re-sorts the history.
type ReviewRecord struct {
	Date       time.Time  `json:"date"`
	Difficulty Difficulty `json:"difficulty"`
	Note       string     `json:"note,omitempty"`
}

// LatestReview returns the highest-index review record, or nil for an empty
// history. "Latest" is positional, not chronological: editing an earlier
// record's date does not change which record is latest.
func (p *Problem) LatestReview() *ReviewRecord {
	if len(p.ReviewHistory) == 0 {
		return nil
	}
	return &p.ReviewHistory[len(p.ReviewHistory)-1]
}

// SuccessCount returns the number of reviews reported Easy or Medium across
// the entire history.
func (p *Problem) SuccessCount() int {
	count := 0
	for _, r := range p.ReviewHistory {
		if r.Difficulty.IsSuccess() {
			count++
		}
	}
	return count
}

// ReviewItem is a Problem decorated with queue metadata relative to a given
// day. It is derived on every query and never persisted.
type ReviewItem struct {
	Problem     Problem `json:"problem"`
	DaysOverdue int     `json:"daysOverdue"`
	IsOverdue   bool    `json:"isOverdue"`
	IsToday     bool    `json:"isToday"`
}

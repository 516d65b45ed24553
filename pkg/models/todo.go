package models

import "time"

// TodoItem represents a problem on the to-attempt list. Unlike problems,
// duplicate names are allowed.
type TodoItem struct {
	ID          string     `json:"id" db:"id"`
	Name        string     `json:"name" db:"name"`
	Number      int        `json:"number,omitempty" db:"number"`
	Note        string     `json:"note,omitempty" db:"note"`
	Completed   bool       `json:"completed" db:"completed"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`
	CompletedAt *time.Time `json:"completedAt,omitempty" db:"completed_at"` // Set iff Completed
}

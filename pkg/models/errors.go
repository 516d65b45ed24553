package models

import "errors"

// Domain errors. Check with errors.Is.
var (
	ErrProblemNotFound   = errors.New("problem not found")
	ErrTodoNotFound      = errors.New("todo item not found")
	ErrReviewIndex       = errors.New("review record index out of range")
	ErrInvalidImport     = errors.New("invalid export file format")
	ErrInvalidDifficulty = errors.New("invalid difficulty")
)

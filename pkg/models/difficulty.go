package models

import (
	"encoding"
	"encoding/json"
	"fmt"
)

// Difficulty represents the user's self-reported recall quality for a review.
type Difficulty int

const (
	// Easy means the problem was solved without friction.
	Easy Difficulty = iota + 1
	// Medium means the problem was solved with some effort.
	Medium
	// Hard means the problem was solved with significant difficulty.
	Hard
	// DidntGet means the problem was not solved.
	DidntGet
)

var (
	difficultyNames = [...]string{Easy: "EASY", Medium: "MEDIUM", Hard: "HARD", DidntGet: "DIDNT_GET"}

	difficultyByName = map[string]Difficulty{
		"EASY":      Easy,
		"MEDIUM":    Medium,
		"HARD":      Hard,
		"DIDNT_GET": DidntGet,
	}
)

// Compile-time interface checks.
var (
	_ fmt.Stringer             = Difficulty(0)
	_ json.Marshaler           = Difficulty(0)
	_ json.Unmarshaler         = (*Difficulty)(nil)
	_ encoding.TextMarshaler   = Difficulty(0)
	_ encoding.TextUnmarshaler = (*Difficulty)(nil)
)

// String returns the canonical name of the difficulty.
// For invalid values it returns "Difficulty(n)".
func (d Difficulty) String() string {
	if d.IsValid() {
		return difficultyNames[d]
	}
	return fmt.Sprintf("Difficulty(%d)", int(d))
}

// IsValid reports whether d is one of the four defined difficulties.
func (d Difficulty) IsValid() bool {
	return d >= Easy && d <= DidntGet
}

// IsSuccess reports whether a review at this difficulty counts toward
// archive eligibility. Easy and Medium do; Hard and DidntGet do not.
func (d Difficulty) IsSuccess() bool {
	return d == Easy || d == Medium
}

// MarshalText implements encoding.TextMarshaler.
func (d Difficulty) MarshalText() ([]byte, error) {
	if !d.IsValid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidDifficulty, int(d))
	}
	return []byte(difficultyNames[d]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Difficulty) UnmarshalText(text []byte) error {
	v, ok := difficultyByName[string(text)]
	if !ok {
		return fmt.Errorf("%w: %q", ErrInvalidDifficulty, text)
	}
	*d = v
	return nil
}

// MarshalJSON implements json.Marshaler. Difficulty serializes as a JSON string.
func (d Difficulty) MarshalJSON() ([]byte, error) {
	text, err := d.MarshalText()
	if err != nil {
		return nil, err
	}
	return json.Marshal(string(text))
}

// UnmarshalJSON implements json.Unmarshaler. Expects a JSON string.
func (d *Difficulty) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidDifficulty, data)
	}
	return d.UnmarshalText([]byte(s))
}

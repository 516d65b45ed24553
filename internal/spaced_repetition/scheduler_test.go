package spaced_repetition_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/myaschmitz/codereps/internal/spaced_repetition"
	"github.com/myaschmitz/codereps/pkg/models"
)

var asOf = time.Date(2025, 3, 10, 15, 42, 7, 0, time.Local)

func day(offset int) time.Time {
	return time.Date(2025, 3, 10, 0, 0, 0, 0, time.Local).AddDate(0, 0, offset)
}

func TestNextReviewBaseIntervals(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)
	s := spaced_repetition.New()

	// First review of a problem: multiplier 1 for every difficulty.
	assert.Equal(day(90), s.NextReview(0, models.Easy, asOf))
	assert.Equal(day(7), s.NextReview(0, models.Medium, asOf))
	assert.Equal(day(3), s.NextReview(0, models.Hard, asOf))
	assert.Equal(day(1), s.NextReview(0, models.DidntGet, asOf))
}

func TestNextReviewMultiplierProgression(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)
	s := spaced_repetition.New()

	// Medium: 7 -> 7 -> 14 -> 14 -> 21 days as the history grows.
	assert.Equal(day(7), s.NextReview(0, models.Medium, asOf))
	assert.Equal(day(7), s.NextReview(1, models.Medium, asOf))
	assert.Equal(day(14), s.NextReview(2, models.Medium, asOf))
	assert.Equal(day(14), s.NextReview(3, models.Medium, asOf))
	assert.Equal(day(21), s.NextReview(4, models.Medium, asOf))

	// Hard progresses the same way from a 3-day base.
	assert.Equal(day(3), s.NextReview(1, models.Hard, asOf))
	assert.Equal(day(6), s.NextReview(2, models.Hard, asOf))
	assert.Equal(day(9), s.NextReview(4, models.Hard, asOf))
}

func TestNextReviewMultiplierCapsAtThree(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)
	s := spaced_repetition.New()

	for _, prior := range []int{4, 5, 10, 100} {
		assert.Equal(day(21), s.NextReview(prior, models.Medium, asOf), "prior=%d", prior)
		assert.Equal(day(9), s.NextReview(prior, models.Hard, asOf), "prior=%d", prior)
	}
}

func TestNextReviewEasyAndDidntGetIgnoreHistory(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)
	s := spaced_repetition.New()

	for _, prior := range []int{0, 1, 2, 3, 4, 50} {
		assert.Equal(day(90), s.NextReview(prior, models.Easy, asOf), "prior=%d", prior)
		assert.Equal(day(1), s.NextReview(prior, models.DidntGet, asOf), "prior=%d", prior)
	}
}

func TestNextReviewCeiling(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)
	s := spaced_repetition.New()

	// Easy with any multiplier would exceed 90 days; the ceiling holds it.
	assert.Equal(day(90), s.NextReview(100, models.Easy, asOf))

	// A lowered ceiling clips Medium progression too.
	s.MaxInterval = 10
	assert.Equal(day(10), s.NextReview(4, models.Medium, asOf))
}

func TestNextReviewTruncatesToStartOfDay(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)
	s := spaced_repetition.New()

	lateEvening := time.Date(2025, 3, 10, 23, 59, 59, 0, time.Local)
	earlyMorning := time.Date(2025, 3, 10, 0, 0, 1, 0, time.Local)

	// Same calendar day in, same result out, regardless of time of day.
	assert.Equal(s.NextReview(0, models.Medium, lateEvening), s.NextReview(0, models.Medium, earlyMorning))
	assert.Equal(day(7), s.NextReview(0, models.Medium, lateEvening))
}

func TestShouldArchive(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)
	s := spaced_repetition.New()

	review := func(d models.Difficulty) models.ReviewRecord {
		return models.ReviewRecord{Date: asOf, Difficulty: d}
	}

	tests := []struct {
		name    string
		history []models.ReviewRecord
		want    bool
	}{
		{"empty history", nil, false},
		{"two successes", []models.ReviewRecord{review(models.Easy), review(models.Medium)}, false},
		{"three successes", []models.ReviewRecord{review(models.Easy), review(models.Medium), review(models.Medium)}, true},
		{
			// Failures interleaved between successes don't reset progress.
			"successes split by failures",
			[]models.ReviewRecord{
				review(models.Medium), review(models.DidntGet), review(models.Easy),
				review(models.Hard), review(models.Medium),
			},
			true,
		},
		{"only failures", []models.ReviewRecord{review(models.Hard), review(models.DidntGet), review(models.Hard)}, false},
	}

	for _, tc := range tests {
		p := &models.Problem{ReviewHistory: tc.history}
		assert.Equal(tc.want, s.ShouldArchive(p), tc.name)
	}
}

func TestStartOfDay(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	got := spaced_repetition.StartOfDay(asOf)
	assert.Equal(time.Date(2025, 3, 10, 0, 0, 0, 0, time.Local), got)
}

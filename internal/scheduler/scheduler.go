// Package scheduler runs the periodic due-review digest.
package scheduler

import (
	"fmt"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/rs/zerolog"

	"github.com/myaschmitz/codereps/internal/review"
)

// QueueSource provides the current review queue.
type QueueSource interface {
	GetReviewQueue() (review.Queue, error)
}

// Notifier receives the daily digest.
type Notifier interface {
	SendDigest(due, overdue, upcoming int) error
}

// Scheduler fires a daily digest of due reviews at a fixed hour.
type Scheduler struct {
	scheduler *gocron.Scheduler
	source    QueueSource
	notifier  Notifier
	hour      int
	log       zerolog.Logger
}

// New creates a scheduler that reads the queue from source and delivers
// digests through notifier at the given local hour.
func New(source QueueSource, notifier Notifier, hour int, log zerolog.Logger) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.Local),
		source:    source,
		notifier:  notifier,
		hour:      hour,
		log:       log,
	}
}

// Start schedules the daily digest and begins running in the background.
func (s *Scheduler) Start() {
	s.scheduler.Every(1).Day().At(fmt.Sprintf("%02d:00", s.hour)).Do(s.runDigest)
	s.scheduler.StartAsync()
}

// Stop terminates all scheduled tasks.
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

// RunNow forces an immediate digest, used at startup so the first summary
// doesn't wait for the scheduled hour.
func (s *Scheduler) RunNow() {
	s.runDigest()
}

func (s *Scheduler) runDigest() {
	queue, err := s.source.GetReviewQueue()
	if err != nil {
		s.log.Error().Err(err).Msg("failed to build review queue for digest")
		return
	}

	overdue := 0
	for _, item := range queue.DueToday {
		if item.IsOverdue {
			overdue++
		}
	}

	if err := s.notifier.SendDigest(len(queue.DueToday), overdue, len(queue.Upcoming)); err != nil {
		s.log.Error().Err(err).Msg("failed to send digest")
	}
}

// LogNotifier delivers digests to the application log.
type LogNotifier struct {
	Log zerolog.Logger
}

// SendDigest implements Notifier.
func (n LogNotifier) SendDigest(due, overdue, upcoming int) error {
	n.Log.Info().
		Int("due_today", due).
		Int("overdue", overdue).
		Int("upcoming", upcoming).
		Msg("review digest")
	return nil
}

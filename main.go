package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/myaschmitz/codereps/internal/config"
	"github.com/myaschmitz/codereps/internal/database"
	"github.com/myaschmitz/codereps/internal/scheduler"
	"github.com/myaschmitz/codereps/internal/service"
	"github.com/myaschmitz/codereps/internal/spaced_repetition"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{
		Out: os.Stderr, TimeFormat: "2006-01-02 15:04:05",
	})

	cfg := config.Load()

	db, err := database.Connect(cfg.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	problemRepo := database.NewProblemRepository(db)
	todoRepo := database.NewTodoRepository(db)
	sched := spaced_repetition.New()

	problems := service.NewProblemService(problemRepo, todoRepo, sched, log.Logger)

	digest := scheduler.New(problems, scheduler.LogNotifier{Log: log.Logger}, cfg.DigestHour, log.Logger)
	digest.RunNow()
	digest.Start()
	defer digest.Stop()

	log.Info().Str("db", cfg.DatabasePath).Int("digest_hour", cfg.DigestHour).Msg("codereps started")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	sig := <-sigChan
	log.Info().Stringer("signal", sig).Msg("shutting down")
}

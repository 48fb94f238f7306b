package insight

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// SessionSource lists users with a live session. *repo.Repo satisfies it.
type SessionSource interface {
	ListActiveSessionUserIDs(ctx context.Context, now time.Time) ([]string, error)
}

const runTimeout = 30 * time.Second

// Scheduler drives the generator: one delayed kick shortly after login, then a
// recurring sweep over every user with a live session. There is no persistence
// of pending runs; a user who is never active on a day gets nothing that day.
type Scheduler struct {
	cron      *cron.Cron
	generator *Generator
	sessions  SessionSource
	kickDelay time.Duration
}

func NewScheduler(generator *Generator, sessions SessionSource, kickDelay time.Duration, loc *time.Location) *Scheduler {
	return &Scheduler{
		cron:      cron.New(cron.WithLocation(loc)),
		generator: generator,
		sessions:  sessions,
		kickDelay: kickDelay,
	}
}

// Start registers the recurring sweep and starts the cron loop.
func (s *Scheduler) Start(interval time.Duration) error {
	if interval <= 0 {
		return fmt.Errorf("interval must be positive")
	}
	spec := fmt.Sprintf("@every %ds", int(interval.Seconds()))
	if _, err := s.cron.AddFunc(spec, s.sweep); err != nil {
		return err
	}
	s.cron.Start()
	return nil
}

// Stop halts the cron loop and waits for in-flight jobs to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

// KickAfterLogin schedules a single generation run for the user after a short
// delay, giving the rest of the session's data time to load first.
func (s *Scheduler) KickAfterLogin(userID string) {
	time.AfterFunc(s.kickDelay, func() {
		s.runOne(userID)
	})
}

func (s *Scheduler) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()
	ids, err := s.sessions.ListActiveSessionUserIDs(ctx, time.Now())
	if err != nil {
		log.Printf("insight sweep: list sessions: %v", err)
		return
	}
	for _, id := range ids {
		if err := s.generator.Run(ctx, id); err != nil {
			log.Printf("insight sweep: user %s: %v", id, err)
		}
	}
}

func (s *Scheduler) runOne(userID string) {
	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()
	if err := s.generator.Run(ctx, userID); err != nil {
		log.Printf("insight run: user %s: %v", userID, err)
	}
}

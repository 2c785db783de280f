package session

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// Sweeper periodically evicts expired entries from a MemoryStore.
type Sweeper struct {
	cron   *cron.Cron
	store  *MemoryStore
	logger zerolog.Logger
}

// NewSweeper schedules store.Sweep on the given cron spec, e.g. "@every 1m".
func NewSweeper(store *MemoryStore, schedule string, logger zerolog.Logger) (*Sweeper, error) {
	s := &Sweeper{
		cron:   cron.New(),
		store:  store,
		logger: logger.With().Str("component", "session_sweeper").Logger(),
	}

	if _, err := s.cron.AddFunc(schedule, s.run); err != nil {
		return nil, fmt.Errorf("invalid sweep schedule %q: %w", schedule, err)
	}

	return s, nil
}

func (s *Sweeper) run() {
	removed := s.store.Sweep()
	if removed > 0 {
		s.logger.Debug().Int("removed", removed).Msg("expired sessions evicted")
	}
}

// Start runs the scheduler in its own goroutine.
func (s *Sweeper) Start() {
	s.cron.Start()
	s.logger.Info().Msg("session sweeper started")
}

// Stop halts the scheduler and waits for a running sweep to finish or ctx to expire.
func (s *Sweeper) Stop(ctx context.Context) error {
	done := s.cron.Stop()
	select {
	case <-done.Done():
		s.logger.Info().Msg("session sweeper stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

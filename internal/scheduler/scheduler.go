// Package scheduler wires up the cron job that periodically refreshes the
// job catalog.
package scheduler

import (
	"context"
	"fmt"
	"sync"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// Refresher is the job run on every tick.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// Scheduler wraps robfig/cron and manages the refresh loop.
type Scheduler struct {
	cron   *cron.Cron
	target Refresher
	spec   string // cron spec, e.g. "@every 6h"
	log    zerolog.Logger
	wg     sync.WaitGroup
}

// New creates a Scheduler that fires every intervalHours hours. A tick that
// arrives while the previous refresh still runs is skipped.
func New(target Refresher, intervalHours int, log zerolog.Logger) *Scheduler {
	cl := cronLogger{log: log}
	return &Scheduler{
		cron: cron.New(
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
		),
		target: target,
		spec:   fmt.Sprintf("@every %dh", intervalHours),
		log:    log,
	}
}

// Spec returns the cron expression in use.
func (s *Scheduler) Spec() string { return s.spec }

// Start registers the job and starts the scheduler. It also runs one
// refresh immediately so the catalog is populated without waiting for the
// first tick.
func (s *Scheduler) Start(ctx context.Context) error {
	_, err := s.cron.AddFunc(s.spec, func() {
		s.runRefresh(ctx)
	})
	if err != nil {
		return fmt.Errorf("cron.AddFunc: %w", err)
	}

	s.cron.Start()
	s.log.Info().Str("spec", s.spec).Msg("cron started")

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.runRefresh(ctx)
	}()
	return nil
}

// Stop shuts the scheduler down and waits for a running refresh to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.wg.Wait()
	s.log.Info().Msg("cron stopped")
}

func (s *Scheduler) runRefresh(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	s.log.Debug().Msg("refresh cycle started")
	if err := s.target.Refresh(ctx); err != nil {
		s.log.Error().Err(err).Msg("refresh failed")
		return
	}
	s.log.Debug().Msg("refresh cycle complete")
}

// cronLogger adapts zerolog to cron.Logger.
type cronLogger struct {
	log zerolog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Debug().Fields(keysAndValues).Msg(msg)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Error().Err(err).Fields(keysAndValues).Msg(msg)
}

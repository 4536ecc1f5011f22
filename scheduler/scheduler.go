// Package scheduler drives the sync pipeline on a fixed cron cadence.
// It is the final error boundary: nothing escaping a cycle may stop the
// timer.
package scheduler

import (
	"context"

	"github.com/robfig/cron/v3"

	"tariffsync/config"
	"tariffsync/pkg/logger"
	"tariffsync/service"
	"tariffsync/storage"
)

type Scheduler struct {
	services service.IServiceManager
	stg      storage.IStorage
	log      logger.ILogger
	cron     *cron.Cron
	spec     string
}

func New(services service.IServiceManager, stg storage.IStorage, cfg config.Config, log logger.ILogger) *Scheduler {
	return &Scheduler{
		services: services,
		stg:      stg,
		log:      log,
		cron:     cron.New(),
		spec:     cfg.SyncCronSpec,
	}
}

func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.spec, s.RunCycle); err != nil {
		return err
	}
	s.cron.Start()
	return nil
}

// Stop halts the timer; the returned context is done once any running
// cycle has finished.
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}

// RunCycle runs one fetch-then-publish pass. Every failure is logged
// and swallowed here so the schedule keeps firing; the publisher still
// runs on a fetch failure and republishes the last committed state.
func (s *Scheduler) RunCycle() {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("sync cycle panicked", logger.Any("panic", r))
		}
	}()

	ctx := context.Background()

	if _, err := s.services.Tariff().SyncDaily(ctx); err != nil {
		s.log.Error("tariff sync failed", logger.Error(err))
	}

	targets, err := s.stg.Spreadsheet().GetAll(ctx)
	if err != nil {
		s.log.Error("loading publish targets failed", logger.Error(err))
		return
	}
	for _, sp := range targets {
		if err := s.services.Report().Publish(ctx, sp.ID); err != nil {
			s.log.Error("publish failed",
				logger.String("spreadsheet", sp.ID), logger.Error(err))
		}
	}
}

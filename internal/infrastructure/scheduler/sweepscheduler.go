package scheduler

import (
	"context"
	"sync"
	"time"

	subscriptionUsecases "tessera/internal/application/subscription/usecases"
	"tessera/internal/shared/logger"
)

// defaultSweepInterval is the expiry sweep cadence. Entitlement checks
// re-verify the end date themselves, so an hour of sweeper lag never widens
// the access window; it only delays reporting and expiry mail.
const defaultSweepInterval = time.Hour

// SweepScheduler runs the subscription expiry sweep on a fixed interval,
// with one immediate run at startup to clear the backlog accumulated while
// the process was down.
type SweepScheduler struct {
	expireSubscriptionsUC *subscriptionUsecases.ExpireSubscriptionsUseCase
	logger                logger.Interface
	stopChan              chan struct{}
	stopOnce              sync.Once
	wg                    sync.WaitGroup
	interval              time.Duration
}

func NewSweepScheduler(
	expireSubscriptionsUC *subscriptionUsecases.ExpireSubscriptionsUseCase,
	interval time.Duration,
	logger logger.Interface,
) *SweepScheduler {
	if interval <= 0 {
		interval = defaultSweepInterval
	}
	return &SweepScheduler{
		expireSubscriptionsUC: expireSubscriptionsUC,
		logger:                logger,
		stopChan:              make(chan struct{}),
		interval:              interval,
	}
}

// Start starts the scheduler.
func (s *SweepScheduler) Start(ctx context.Context) {
	s.logger.Infow("starting expiry sweep scheduler", "interval", s.interval)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.runLoop(ctx)
	}()
}

// Stop stops the scheduler gracefully.
func (s *SweepScheduler) Stop() {
	s.stopOnce.Do(func() {
		s.logger.Infow("stopping expiry sweep scheduler")
		close(s.stopChan)
		s.wg.Wait()
		s.logger.Infow("expiry sweep scheduler stopped")
	})
}

func (s *SweepScheduler) runLoop(ctx context.Context) {
	// Startup sweep clears anything that expired while the process was down.
	s.runSweep(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Infow("expiry sweep scheduler stopped due to context cancellation")
			return
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.runSweep(ctx)
		}
	}
}

func (s *SweepScheduler) runSweep(ctx context.Context) {
	startTime := time.Now()

	transitioned, err := s.expireSubscriptionsUC.Execute(ctx)
	if err != nil {
		s.logger.Errorw("expiry sweep failed",
			"error", err,
			"duration", time.Since(startTime),
		)
		return
	}

	if transitioned > 0 {
		s.logger.Infow("expiry sweep finished",
			"transitioned", transitioned,
			"duration", time.Since(startTime),
		)
	} else {
		s.logger.Debugw("expiry sweep found nothing to do",
			"duration", time.Since(startTime),
		)
	}
}

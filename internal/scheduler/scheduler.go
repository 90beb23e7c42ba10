package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/portfolio-rebalancer/backend/internal/domain"
	"github.com/portfolio-rebalancer/backend/internal/usecase/holding"
)

// refreshTimeout bounds a single refresh sweep across all users
const refreshTimeout = 5 * time.Minute

// Scheduler runs the periodic market value refresh for synced holdings
type Scheduler struct {
	cron     *cron.Cron
	userRepo domain.UserRepository
	holdings *holding.Service
	log      zerolog.Logger
}

// New creates a Scheduler. The refresh job is registered with the given
// cron spec (seconds field included).
func New(spec string, userRepo domain.UserRepository, holdings *holding.Service, logger zerolog.Logger) (*Scheduler, error) {
	s := &Scheduler{
		cron:     cron.New(cron.WithSeconds()),
		userRepo: userRepo,
		holdings: holdings,
		log:      logger.With().Str("component", "scheduler").Logger(),
	}

	if _, err := s.cron.AddFunc(spec, s.refreshAll); err != nil {
		return nil, err
	}

	return s, nil
}

// Start begins running scheduled jobs in their own goroutine
func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.Info().Msg("price refresh scheduler started")
}

// Stop stops the scheduler and waits for a running job to finish
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.log.Info().Msg("price refresh scheduler stopped")
}

// refreshAll refreshes prices for every user owning synced holdings.
// A failure for one user does not stop the sweep.
func (s *Scheduler) refreshAll() {
	ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
	defer cancel()

	userIDs, err := s.userRepo.ListIDsWithSyncedHoldings(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to list users for refresh")
		return
	}

	refreshed := 0
	for _, userID := range userIDs {
		count, err := s.holdings.RefreshPrices(ctx, userID)
		if err != nil {
			s.log.Error().Err(err).Str("user_id", userID.String()).Msg("price refresh failed")
			continue
		}
		refreshed += count
	}

	s.log.Info().
		Int("users", len(userIDs)).
		Int("holdings_refreshed", refreshed).
		Msg("price refresh sweep complete")
}

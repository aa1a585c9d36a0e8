package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/akukesepian/backend/internal/repository"
)

// Scheduler runs the hourly reset-token sweep. The TTL index on expires_at
// already removes expired tokens eventually; this also clears used ones.
type Scheduler struct {
	cron   *cron.Cron
	tokens *repository.TokenRepository
	log    zerolog.Logger
}

func NewScheduler(tokens *repository.TokenRepository, log zerolog.Logger) *Scheduler {
	return &Scheduler{
		cron:   cron.New(cron.WithSeconds()),
		tokens: tokens,
		log:    log,
	}
}

func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc("0 0 * * * *", s.purgeTokens); err != nil {
		return err
	}

	s.cron.Start()
	return nil
}

// Stop waits for an in-flight sweep to finish, bounded at five seconds.
func (s *Scheduler) Stop() {
	select {
	case <-s.cron.Stop().Done():
	case <-time.After(5 * time.Second):
	}
}

func (s *Scheduler) purgeTokens() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	removed, err := s.tokens.PurgeStale(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("token sweep failed")
		return
	}
	if removed > 0 {
		s.log.Info().Int64("removed", removed).Msg("purged stale reset tokens")
	}
}

package services

import (
	"context"
	"time"

	"github.com/agency/cryptoservice/internal/logging"
)

// Sweeper periodically deletes messages that outlived the configured max
// age. It is owned by application startup and stops when its context is
// cancelled. A sweep is one bulk delete, so overlapping sweeps and
// concurrent redemptions are safe.
type Sweeper struct {
	service  *MessageService
	interval time.Duration
	maxAge   time.Duration
	logger   logging.Logger
}

func NewSweeper(service *MessageService, interval, maxAge time.Duration, logger logging.Logger) *Sweeper {
	return &Sweeper{
		service:  service,
		interval: interval,
		maxAge:   maxAge,
		logger:   logger.With("module", "sweeper"),
	}
}

// Run blocks, sweeping once per interval, until ctx is cancelled.
func (s *Sweeper) Run(ctx context.Context) {
	s.logger.Info(ctx, "starting cleanup sweeper", "interval", s.interval.String(), "max_age", s.maxAge.String())

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info(ctx, "stopping cleanup sweeper")
			return
		case <-ticker.C:
			s.Sweep(ctx)
		}
	}
}

// Sweep performs one cleanup pass. Exported so it can also be triggered
// manually.
func (s *Sweeper) Sweep(ctx context.Context) {
	count, err := s.service.Cleanup(ctx, s.maxAge)
	if err != nil {
		s.logger.Error(ctx, "cleanup failed", "error", err.Error())
		return
	}

	if count > 0 {
		s.logger.Info(ctx, "deleted expired messages", "count", count)
	} else {
		s.logger.Debug(ctx, "no expired messages")
	}
}

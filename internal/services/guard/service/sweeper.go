package service

import (
	"context"
	"time"
)

// Sweep deletes provenance rows past their expiry
func (s *Svc) Sweep(ctx context.Context) (int64, error) {
	if s.db == nil {
		return 0, nil
	}
	return s.binder.Bind(s.db).PurgeExpired(ctx, s.now())
}

// Run sweeps on a ticker until ctx is done. Sweep errors are logged, not returned
func (s *Svc) Run(ctx context.Context) error {
	if s.db == nil {
		<-ctx.Done()
		return ctx.Err()
	}

	t := time.NewTicker(s.cfg.SweepEvery)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			n, err := s.Sweep(ctx)
			if err != nil {
				s.log.Warn().Err(err).Msg("guard provenance sweep failed")
				continue
			}
			if n > 0 {
				s.log.Debug().Int64("rows", n).Msg("guard provenance swept")
			}
		}
	}
}

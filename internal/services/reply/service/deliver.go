package service

import (
	"context"
	"time"

	"chatguard/internal/core/pacing"
	"chatguard/internal/services/reply/domain"
)

func sleepWall(d time.Duration) { time.Sleep(d) }

// Deliver walks the schedule, sleeping before each bubble and sending it.
// A started schedule always runs to the end: cancellation of ctx is ignored
// and a failed send is logged and skipped
func (s *Svc) Deliver(ctx context.Context, to string, schedule []pacing.Send) domain.Delivered {
	var d domain.Delivered
	if s.sender == nil {
		s.log.Warn().Int("bubbles", len(schedule)).Msg("no sender configured, skipping delivery")
		d.Skipped = len(schedule)
		return d
	}

	ctx = context.WithoutCancel(ctx)
	for i, b := range schedule {
		if b.WaitMs > 0 {
			s.sleeper.Sleep(time.Duration(b.WaitMs) * time.Millisecond)
			d.WaitMs += b.WaitMs
		}
		if err := s.sender.Send(ctx, to, b.Text); err != nil {
			s.log.Error().Err(err).Int("bubble", i).Msg("bubble send failed")
			d.Failed++
			continue
		}
		d.Sent++
	}
	return d
}

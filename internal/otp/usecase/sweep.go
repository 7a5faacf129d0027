package usecase

import (
	"context"
	"log/slog"

	"github.com/shandysiswandi/otpsender/internal/otp/entity"
	"github.com/shandysiswandi/otpsender/internal/pkg/goerror"
)

// sweepBatchSize bounds one sweep pass so a huge backlog cannot hold a
// connection for minutes. The next pass picks up the rest.
const sweepBatchSize int32 = 500

// Sweep flips every overdue active code to expired.
//
// A failure on one record is counted and skipped, the pass keeps going.
// Re-running a sweep is harmless because the status flip is a compare-and-set.
func (s *Usecase) Sweep(ctx context.Context) (*entity.SweepResult, error) {
	ctx, span := s.startSpan(ctx, "Sweep")
	defer span.End()

	started := s.clock.Now()

	codes, err := s.repoDB.GetExpiredActiveCodes(ctx, started, sweepBatchSize)
	if err != nil {
		slog.ErrorContext(ctx, "failed to list overdue codes", "error", err)
		return nil, goerror.NewServer(err)
	}

	res := &entity.SweepResult{Scanned: len(codes)}
	for _, code := range codes {
		flipped, err := s.repoDB.ExpireCode(ctx, code.ID)
		if err != nil {
			res.Failed++
			slog.WarnContext(ctx, "failed to expire code", "code_id", code.ID, "error", err)
			continue
		}
		if flipped {
			res.Expired++
		}
	}

	if res.Scanned > 0 {
		slog.InfoContext(ctx, "expiry sweep finished",
			"scanned", res.Scanned, "expired", res.Expired, "failed", res.Failed)
	}

	if err := s.repoMessaging.PublishSweepCompleted(ctx, SweepCompletedEvent{
		Scanned:   res.Scanned,
		Expired:   res.Expired,
		Failed:    res.Failed,
		StartedAt: started,
		Elapsed:   s.clock.Now().Sub(started),
	}); err != nil {
		slog.ErrorContext(ctx, "failed to publish sweep event", "error", err)
	}

	return res, nil
}

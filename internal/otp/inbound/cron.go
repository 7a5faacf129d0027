package inbound

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/shandysiswandi/otpsender/internal/otp/entity"
	"github.com/shandysiswandi/otpsender/internal/pkg/clock"
	"go.uber.org/atomic"
)

// sweepRunTimeout bounds a single sweep pass.
const sweepRunTimeout = 10 * time.Second

type cronUC interface {
	Sweep(ctx context.Context) (*entity.SweepResult, error)
}

// CronConfig controls the expiry sweeper schedule.
type CronConfig struct {
	// Interval is the time between sweep passes.
	Interval time.Duration
	// Warmup delays the first pass after startup.
	Warmup time.Duration
}

// RegisterCronJob attaches the expiry sweeper to the scheduler.
//
// Singleton mode plus the running flag guarantee one in-flight pass, even
// when a pass overruns its interval.
func RegisterCronJob(sch gocron.Scheduler, clk clock.Clocker, uc cronUC, cfg CronConfig) error {
	running := atomic.NewBool(false)

	task := func() {
		if !running.CompareAndSwap(false, true) {
			slog.Warn("expiry sweep still running, skipping this pass")
			return
		}
		defer running.Store(false)

		ctx, cancel := context.WithTimeout(context.Background(), sweepRunTimeout)
		defer cancel()

		if _, err := uc.Sweep(ctx); err != nil {
			slog.ErrorContext(ctx, "expiry sweep failed", "error", err)
		}
	}

	_, err := sch.NewJob(
		gocron.DurationJob(cfg.Interval),
		gocron.NewTask(task),
		gocron.WithName("otp-expiry-sweeper"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartDateTime(clk.Now().Add(cfg.Warmup))),
	)

	return err
}

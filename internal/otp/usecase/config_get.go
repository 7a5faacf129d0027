package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/shandysiswandi/otpsender/internal/otp/entity"
	"github.com/shandysiswandi/otpsender/internal/pkg/goerror"
)

type ConfigGetOutput struct {
	CodeLength int
	TTLSeconds int
	UpdatedAt  time.Time
}

func (s *Usecase) ConfigGet(ctx context.Context) (*ConfigGetOutput, error) {
	ctx, span := s.startSpan(ctx, "ConfigGet")
	defer span.End()

	if err := s.requireAdmin(ctx); err != nil {
		return nil, err
	}

	cfg, err := s.currentConfig(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to load runtime config", "error", err)
		return nil, goerror.NewServer(err)
	}

	return &ConfigGetOutput{
		CodeLength: cfg.CodeLength,
		TTLSeconds: cfg.TTLSeconds,
		UpdatedAt:  cfg.UpdatedAt,
	}, nil
}

// currentConfig returns the authoritative runtime config, creating the
// default row when none exists yet.
//
// Creation is serialized in-process, and the earliest row always wins, so
// concurrent first calls across instances converge on one policy.
func (s *Usecase) currentConfig(ctx context.Context) (*entity.Config, error) {
	cfg, err := s.repoDB.GetEarliestConfig(ctx)
	if err == nil {
		return cfg, nil
	}
	if !errors.Is(err, goerror.ErrNotFound) {
		return nil, err
	}

	s.cfgOnce.Lock()
	defer s.cfgOnce.Unlock()

	cfg, err = s.repoDB.GetEarliestConfig(ctx)
	if err == nil {
		return cfg, nil
	}
	if !errors.Is(err, goerror.ErrNotFound) {
		return nil, err
	}

	now := s.clock.Now()
	seed := entity.Config{
		CodeLength: entity.DefaultCodeLength,
		TTLSeconds: entity.DefaultTTLSeconds,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.repoDB.CreateConfig(ctx, seed); err != nil && !errors.Is(err, goerror.ErrConflict) {
		return nil, err
	}

	// Another instance may have raced the insert. Re-read so everyone
	// agrees on the earliest row.
	return s.repoDB.GetEarliestConfig(ctx)
}

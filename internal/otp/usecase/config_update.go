package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/shandysiswandi/otpsender/internal/pkg/goerror"
)

type ConfigUpdateInput struct {
	CodeLength int `validate:"required,min=4,max=8"`
	TTLSeconds int `validate:"required,min=30,max=3600"`
}

type ConfigUpdateOutput struct {
	CodeLength int
	TTLSeconds int
	UpdatedAt  time.Time
}

func (s *Usecase) ConfigUpdate(ctx context.Context, in ConfigUpdateInput) (*ConfigUpdateOutput, error) {
	ctx, span := s.startSpan(ctx, "ConfigUpdate")
	defer span.End()

	if err := s.requireAdmin(ctx); err != nil {
		return nil, err
	}

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	cfg, err := s.currentConfig(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to load runtime config", "error", err)
		return nil, goerror.NewServer(err)
	}

	if err := s.repoDB.UpdateConfig(ctx, cfg.ID, in.CodeLength, in.TTLSeconds); err != nil {
		slog.ErrorContext(ctx, "failed to update runtime config", "config_id", cfg.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	slog.InfoContext(ctx, "runtime config updated",
		"code_length", in.CodeLength, "ttl_seconds", in.TTLSeconds)

	return &ConfigUpdateOutput{
		CodeLength: in.CodeLength,
		TTLSeconds: in.TTLSeconds,
		UpdatedAt:  s.clock.Now(),
	}, nil
}

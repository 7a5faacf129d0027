package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shandysiswandi/otpsender/internal/otp/entity"
	"github.com/shandysiswandi/otpsender/internal/pkg/channel"
	"github.com/shandysiswandi/otpsender/internal/pkg/goerror"
	"github.com/shandysiswandi/otpsender/internal/pkg/idempotency"
)

type GenerateInput struct {
	UserID      int64  `validate:"required,gt=0"`
	OperationID string `validate:"required,min=1,max=100"`
	Channel     string `validate:"required,min=2,max=20"`
	Destination string `validate:"required,min=3,max=255"`
}

type GenerateOutput struct {
	CodeID    string
	Code      string
	Channel   string
	ExpiresAt time.Time
}

func (s *Usecase) Generate(ctx context.Context, in GenerateInput) (*GenerateOutput, error) {
	ctx, span := s.startSpan(ctx, "Generate")
	defer span.End()

	in.OperationID = strings.TrimSpace(in.OperationID)
	in.Channel = strings.TrimSpace(strings.ToLower(in.Channel))
	in.Destination = strings.TrimSpace(in.Destination)

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	// Resolve the delivery channel before touching storage so an unknown
	// or disabled channel never leaves a dangling code behind.
	ch, err := s.channels.Resolve(in.Channel)
	if err != nil {
		switch {
		case errors.Is(err, channel.ErrNotFound):
			return nil, goerror.NewBusiness("Delivery channel is not recognized", goerror.CodeInvalidInput)
		case errors.Is(err, channel.ErrUnavailable):
			return nil, goerror.NewBusiness("Delivery channel is not available", goerror.CodeConflict)
		default:
			slog.ErrorContext(ctx, "failed to resolve delivery channel", "channel", in.Channel, "error", err)
			return nil, goerror.NewServer(err)
		}
	}

	var out *GenerateOutput
	idemKey := fmt.Sprintf("otp:generate:%d:%s", in.UserID, in.OperationID)
	err = s.idemp.Exec(ctx, idemKey, func(ctx context.Context) error {
		cfg, err := s.currentConfig(ctx)
		if err != nil {
			slog.ErrorContext(ctx, "failed to load runtime config", "error", err)
			return goerror.NewServer(err)
		}

		value, err := s.generator.Generate(cfg.CodeLength)
		if err != nil {
			slog.ErrorContext(ctx, "failed to generate code", "error", err)
			return goerror.NewServer(err)
		}

		now := s.clock.Now()
		code := entity.Code{
			ID:          s.uuid.Generate(),
			UserID:      in.UserID,
			Value:       value,
			OperationID: in.OperationID,
			Status:      entity.CodeStatusActive,
			CreatedAt:   now,
			ExpiresAt:   now.Add(cfg.TTL()),
		}

		if err := s.repoDB.CreateCode(ctx, code); err != nil {
			slog.ErrorContext(ctx, "failed to persist code", "user_id", in.UserID, "error", err)
			return goerror.NewServer(err)
		}

		if err := ch.Send(ctx, in.Destination, value); err != nil {
			slog.ErrorContext(ctx, "failed to deliver code",
				"channel", in.Channel, "user_id", in.UserID, "error", err)
			return goerror.NewBusiness("Failed to deliver verification code", goerror.CodeInternal)
		}

		if err := s.repoMessaging.PublishOtpIssued(ctx, OtpIssuedEvent{
			CodeID:      code.ID,
			UserID:      code.UserID,
			OperationID: code.OperationID,
			Channel:     ch.Name(),
			ExpiresAt:   code.ExpiresAt,
		}); err != nil {
			slog.ErrorContext(ctx, "failed to publish issued event", "code_id", code.ID, "error", err)
		}

		out = &GenerateOutput{
			CodeID:    code.ID,
			Code:      code.Value,
			Channel:   ch.Name(),
			ExpiresAt: code.ExpiresAt,
		}
		return nil
	}, idempotency.WithLockDuration(30*time.Second), idempotency.WithStateTTL(5*time.Second))
	if err != nil {
		if errors.Is(err, idempotency.ErrAlreadyInProgress) || errors.Is(err, idempotency.ErrAlreadyCompleted) {
			return nil, goerror.NewBusiness("A code for this operation was just requested", goerror.CodeTooManyRequest)
		}
		if errors.Is(err, idempotency.ErrAlreadyFailed) {
			return nil, goerror.NewBusiness("Previous request failed, try again shortly", goerror.CodeTooManyRequest)
		}
		return nil, err
	}

	return out, nil
}

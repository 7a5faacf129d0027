package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/shandysiswandi/otpsender/internal/pkg/goerror"
)

type ValidateInput struct {
	UserID      int64  `validate:"required,gt=0"`
	OperationID string `validate:"required,min=1,max=100"`
	Code        string `validate:"required,numeric,min=4,max=8"`
}

type ValidateOutput struct {
	Valid bool
}

// Validate consumes a matching active code.
//
// Every failure mode that is not a server fault collapses into Valid=false,
// so a caller cannot distinguish wrong, expired, or already used codes.
func (s *Usecase) Validate(ctx context.Context, in ValidateInput) (*ValidateOutput, error) {
	ctx, span := s.startSpan(ctx, "Validate")
	defer span.End()

	in.OperationID = strings.TrimSpace(in.OperationID)
	in.Code = strings.TrimSpace(in.Code)

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	code, err := s.repoDB.GetActiveCode(ctx, in.UserID, in.OperationID, in.Code)
	if errors.Is(err, goerror.ErrNotFound) {
		return &ValidateOutput{Valid: false}, nil
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to look up code", "user_id", in.UserID, "error", err)
		return nil, goerror.NewServer(err)
	}

	now := s.clock.Now()
	if code.IsExpired(now) {
		// Lazy expiry. The sweeper would get here eventually, flipping the
		// status now keeps the record honest. Best effort only.
		if _, err := s.repoDB.ExpireCode(ctx, code.ID); err != nil {
			slog.WarnContext(ctx, "failed to expire stale code", "code_id", code.ID, "error", err)
		}
		return &ValidateOutput{Valid: false}, nil
	}

	// Compare-and-set so two racing validations consume at most once.
	won, err := s.repoDB.ConsumeCode(ctx, code.ID, now)
	if err != nil {
		slog.ErrorContext(ctx, "failed to consume code", "code_id", code.ID, "error", err)
		return nil, goerror.NewServer(err)
	}
	if !won {
		return &ValidateOutput{Valid: false}, nil
	}

	if err := s.repoMessaging.PublishOtpConsumed(ctx, OtpConsumedEvent{
		CodeID:      code.ID,
		UserID:      code.UserID,
		OperationID: code.OperationID,
		ConsumedAt:  now,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to publish consumed event", "code_id", code.ID, "error", err)
	}

	return &ValidateOutput{Valid: true}, nil
}

package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shandysiswandi/otpsender/internal/identity/entity"
	"github.com/shandysiswandi/otpsender/internal/pkg/goerror"
	"github.com/shandysiswandi/otpsender/internal/pkg/jwt"
)

type UserDeleteInput struct {
	UserID int64 `validate:"required,gt=0"`
}

func (s *Usecase) UserDelete(ctx context.Context, in UserDeleteInput) error {
	ctx, span := s.startSpan(ctx, "UserDelete")
	defer span.End()

	if err := s.requireAdmin(ctx); err != nil {
		return err
	}

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	if clm := jwt.GetAuth(ctx); clm != nil && clm.UserID == in.UserID {
		return goerror.NewBusiness("Cannot delete your own account", goerror.CodeConflict)
	}

	user, err := s.repoDB.GetUserByID(ctx, in.UserID)
	if errors.Is(err, goerror.ErrNotFound) {
		return goerror.NewBusiness("User not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get user by id", "user_id", in.UserID, "error", err)
		return goerror.NewServer(err)
	}
	if user.Status == entity.UserStatusInactive {
		return goerror.NewBusiness("User not found", goerror.CodeNotFound)
	}

	if err := s.repoDB.MarkUserDeleted(ctx, in.UserID); err != nil {
		slog.ErrorContext(ctx, "failed to mark user deleted", "user_id", in.UserID, "error", err)
		return goerror.NewServer(err)
	}

	// The account is gone, its pending verification codes go with it.
	if _, err := s.codePurger.PurgeUserCodes(ctx, in.UserID); err != nil {
		slog.ErrorContext(ctx, "failed to purge user codes", "user_id", in.UserID, "error", err)
	}

	return nil
}

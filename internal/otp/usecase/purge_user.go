package usecase

import (
	"context"
	"log/slog"

	"github.com/shandysiswandi/otpsender/internal/pkg/goerror"
)

// PurgeUserCodes removes every code belonging to a user. Called when the
// user account itself is deleted.
func (s *Usecase) PurgeUserCodes(ctx context.Context, userID int64) (int64, error) {
	ctx, span := s.startSpan(ctx, "PurgeUserCodes")
	defer span.End()

	if userID <= 0 {
		return 0, goerror.NewBusiness("Unknown user", goerror.CodeInvalidInput)
	}

	deleted, err := s.repoDB.DeleteUserCodes(ctx, userID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to purge user codes", "user_id", userID, "error", err)
		return 0, goerror.NewServer(err)
	}

	if deleted > 0 {
		slog.InfoContext(ctx, "purged user codes", "user_id", userID, "deleted", deleted)
	}

	return deleted, nil
}

package usecase

import (
	"context"
	"log/slog"

	"github.com/shandysiswandi/otpsender/internal/audit/entity"
	"github.com/shandysiswandi/otpsender/internal/pkg/goerror"
)

type RecordInput struct {
	Kind        string
	UserID      int64
	CodeID      string
	OperationID string
	Detail      []byte
}

// Record appends one audit entry. Entries are never updated or deleted.
func (s *Usecase) Record(ctx context.Context, in RecordInput) error {
	ctx, span := s.startSpan(ctx, "Record")
	defer span.End()

	if in.Kind == "" {
		return goerror.NewBusiness("Audit kind is required", goerror.CodeInvalidInput)
	}

	entry := entity.Entry{
		ID:          s.uid.Generate(),
		Kind:        in.Kind,
		UserID:      in.UserID,
		CodeID:      in.CodeID,
		OperationID: in.OperationID,
		Detail:      in.Detail,
		OccurredAt:  s.clock.Now(),
	}

	if err := s.repoDB.CreateEntry(ctx, entry); err != nil {
		slog.ErrorContext(ctx, "failed to persist audit entry", "kind", in.Kind, "error", err)
		return goerror.NewServer(err)
	}

	return nil
}

package usecase

import (
	"context"
	"log/slog"
	"strings"

	"github.com/shandysiswandi/otpsender/internal/otp/entity"
	"github.com/shandysiswandi/otpsender/internal/pkg/goerror"
)

const (
	defaultListLimit int32 = 20
	maxListLimit     int32 = 100
)

type CodeListInput struct {
	UserID int64
	Status string
	Limit  int32
	Offset int32
}

type CodeListOutput struct {
	Codes []entity.Code
	Total int64
}

func (s *Usecase) CodeList(ctx context.Context, in CodeListInput) (*CodeListOutput, error) {
	ctx, span := s.startSpan(ctx, "CodeList")
	defer span.End()

	if err := s.requireAdmin(ctx); err != nil {
		return nil, err
	}

	filter := entity.CodeListFilter{
		Limit:  in.Limit,
		Offset: max(in.Offset, 0),
	}
	if filter.Limit <= 0 {
		filter.Limit = defaultListLimit
	}
	if filter.Limit > maxListLimit {
		filter.Limit = maxListLimit
	}

	if in.UserID > 0 {
		filter.IsFilterByUser = true
		filter.UserID = in.UserID
	}

	if st := strings.TrimSpace(in.Status); st != "" {
		status := entity.CodeStatusFromString(st)
		if status == entity.CodeStatusUnknown {
			return nil, goerror.NewBusiness("Unknown status filter", goerror.CodeInvalidInput)
		}
		filter.IsFilterByStatus = true
		filter.Status = status
	}

	codes, total, err := s.repoDB.GetCodeList(ctx, filter)
	if err != nil {
		slog.ErrorContext(ctx, "failed to list codes", "error", err)
		return nil, goerror.NewServer(err)
	}

	return &CodeListOutput{Codes: codes, Total: total}, nil
}

package usecase

import (
	"context"
	"log/slog"
	"strings"

	"github.com/shandysiswandi/otpsender/internal/identity/entity"
	"github.com/shandysiswandi/otpsender/internal/pkg/goerror"
)

const (
	defaultListLimit int32 = 20
	maxListLimit     int32 = 100
)

type UserListInput struct {
	Search string
	Limit  int32
	Offset int32
}

type UserListOutput struct {
	Users []entity.User
	Total int64
}

func (s *Usecase) UserList(ctx context.Context, in UserListInput) (*UserListOutput, error) {
	ctx, span := s.startSpan(ctx, "UserList")
	defer span.End()

	if err := s.requireAdmin(ctx); err != nil {
		return nil, err
	}

	filter := entity.UserListFilter{
		Limit:  in.Limit,
		Offset: max(in.Offset, 0),
	}
	if filter.Limit <= 0 {
		filter.Limit = defaultListLimit
	}
	if filter.Limit > maxListLimit {
		filter.Limit = maxListLimit
	}

	if search := strings.TrimSpace(in.Search); search != "" {
		filter.IsFilterBySearch = true
		filter.Search = search
	}

	users, total, err := s.repoDB.GetUserList(ctx, filter)
	if err != nil {
		slog.ErrorContext(ctx, "failed to list users", "error", err)
		return nil, goerror.NewServer(err)
	}

	return &UserListOutput{Users: users, Total: total}, nil
}

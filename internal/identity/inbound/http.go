package inbound

import (
	"context"

	"github.com/shandysiswandi/otpsender/internal/identity/usecase"
	"github.com/shandysiswandi/otpsender/internal/pkg/router"
)

type uc interface {
	Register(ctx context.Context, in usecase.RegisterInput) (*usecase.RegisterOutput, error)
	Login(ctx context.Context, in usecase.LoginInput) (*usecase.LoginOutput, error)

	UserList(ctx context.Context, in usecase.UserListInput) (*usecase.UserListOutput, error)
	UserDelete(ctx context.Context, in usecase.UserDeleteInput) error
}

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	// Accounts
	r.POST("/api/v1/auth/register", end.Register)
	r.POST("/api/v1/auth/login", end.Login)

	// User directory (need authenticated & admin role)
	r.GET("/api/v1/admin/users", end.UserList, router.MiddlewareAdminOnly)
	r.DELETE("/api/v1/admin/users/:id", end.UserDelete, router.MiddlewareAdminOnly)
}

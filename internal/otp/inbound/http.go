package inbound

import (
	"context"

	"github.com/shandysiswandi/otpsender/internal/otp/usecase"
	"github.com/shandysiswandi/otpsender/internal/pkg/router"
)

type uc interface {
	Generate(ctx context.Context, in usecase.GenerateInput) (*usecase.GenerateOutput, error)
	Validate(ctx context.Context, in usecase.ValidateInput) (*usecase.ValidateOutput, error)

	ConfigGet(ctx context.Context) (*usecase.ConfigGetOutput, error)
	ConfigUpdate(ctx context.Context, in usecase.ConfigUpdateInput) (*usecase.ConfigUpdateOutput, error)

	CodeList(ctx context.Context, in usecase.CodeListInput) (*usecase.CodeListOutput, error)
}

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	// Code lifecycle (need authenticated)
	r.POST("/api/v1/otp/generate", end.Generate)
	r.POST("/api/v1/otp/validate", end.Validate)

	// Administration (need authenticated & admin role)
	r.GET("/api/v1/admin/otp-config", end.ConfigGet, router.MiddlewareAdminOnly)
	r.PUT("/api/v1/admin/otp-config", end.ConfigUpdate, router.MiddlewareAdminOnly)
	r.GET("/api/v1/admin/otp-codes", end.CodeList, router.MiddlewareAdminOnly)
}

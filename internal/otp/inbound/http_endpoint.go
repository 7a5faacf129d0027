package inbound

import (
	"github.com/shandysiswandi/otpsender/internal/otp/usecase"
	"github.com/shandysiswandi/otpsender/internal/pkg/goerror"
	"github.com/shandysiswandi/otpsender/internal/pkg/jwt"
	"github.com/shandysiswandi/otpsender/internal/pkg/router"
)

// HTTPEndpoint exposes HTTP handlers for the code lifecycle and its administration.
type HTTPEndpoint struct {
	uc uc
}

// Generate issues a new code and delivers it over the requested channel.
// The owning user comes from the authenticated claims, not the body.
func (h *HTTPEndpoint) Generate(r *router.Request) (any, error) {
	clm := jwt.GetAuth(r.Context())
	if clm == nil {
		return nil, goerror.NewBusiness("Authentication required", goerror.CodeUnauthorized)
	}

	var req GenerateRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.Generate(r.Context(), usecase.GenerateInput{
		UserID:      clm.UserID,
		OperationID: req.OperationID,
		Channel:     req.Channel,
		Destination: req.Destination,
	})
	if err != nil {
		return nil, err
	}

	return GenerateResponse{
		CodeID:    resp.CodeID,
		Channel:   resp.Channel,
		ExpiresAt: resp.ExpiresAt.Unix(),
	}, nil
}

// Validate checks a submitted code and consumes it when it matches.
func (h *HTTPEndpoint) Validate(r *router.Request) (any, error) {
	clm := jwt.GetAuth(r.Context())
	if clm == nil {
		return nil, goerror.NewBusiness("Authentication required", goerror.CodeUnauthorized)
	}

	var req ValidateRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.Validate(r.Context(), usecase.ValidateInput{
		UserID:      clm.UserID,
		OperationID: req.OperationID,
		Code:        req.Code,
	})
	if err != nil {
		return nil, err
	}

	return ValidateResponse{Valid: resp.Valid}, nil
}

// ConfigGet returns the current code policy.
func (h *HTTPEndpoint) ConfigGet(r *router.Request) (any, error) {
	resp, err := h.uc.ConfigGet(r.Context())
	if err != nil {
		return nil, err
	}

	return ConfigResponse{
		CodeLength: resp.CodeLength,
		TTLSeconds: resp.TTLSeconds,
		UpdatedAt:  resp.UpdatedAt.Unix(),
	}, nil
}

// ConfigUpdate replaces the code policy within the allowed bounds.
func (h *HTTPEndpoint) ConfigUpdate(r *router.Request) (any, error) {
	var req ConfigUpdateRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.ConfigUpdate(r.Context(), usecase.ConfigUpdateInput{
		CodeLength: req.CodeLength,
		TTLSeconds: req.TTLSeconds,
	})
	if err != nil {
		return nil, err
	}

	return ConfigResponse{
		CodeLength: resp.CodeLength,
		TTLSeconds: resp.TTLSeconds,
		UpdatedAt:  resp.UpdatedAt.Unix(),
	}, nil
}

// CodeList pages through issued codes for administration and audit.
func (h *HTTPEndpoint) CodeList(r *router.Request) (any, error) {
	userID, err := r.GetQueryInt64("user_id")
	if err != nil {
		return nil, err
	}

	limit, err := r.GetQueryInt32("limit")
	if err != nil {
		return nil, err
	}
	offset, err := r.GetQueryInt32("offset")
	if err != nil {
		return nil, err
	}

	resp, err := h.uc.CodeList(r.Context(), usecase.CodeListInput{
		UserID: userID,
		Status: r.GetQuery("status"),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		return nil, err
	}

	return newCodeListResponse(resp), nil
}

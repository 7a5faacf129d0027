package inbound

import (
	"github.com/samber/lo"
	"github.com/shandysiswandi/otpsender/internal/otp/entity"
	"github.com/shandysiswandi/otpsender/internal/otp/usecase"
)

type GenerateRequest struct {
	OperationID string `json:"operation_id"`
	Channel     string `json:"channel"`
	Destination string `json:"destination"`
}

type GenerateResponse struct {
	CodeID    string `json:"code_id"`
	Channel   string `json:"channel"`
	ExpiresAt int64  `json:"expires_at"`
}

func (GenerateResponse) Message() string {
	return "Verification code has been sent."
}

type ValidateRequest struct {
	OperationID string `json:"operation_id"`
	Code        string `json:"code"`
}

type ValidateResponse struct {
	Valid bool `json:"valid"`
}

func (v ValidateResponse) Message() string {
	if v.Valid {
		return "Verification code accepted."
	}
	return "Verification code is invalid."
}

type ConfigUpdateRequest struct {
	CodeLength int `json:"code_length"`
	TTLSeconds int `json:"ttl_seconds"`
}

type ConfigResponse struct {
	CodeLength int   `json:"code_length"`
	TTLSeconds int   `json:"ttl_seconds"`
	UpdatedAt  int64 `json:"updated_at"`
}

type CodeItem struct {
	ID          string `json:"id"`
	UserID      int64  `json:"user_id"`
	OperationID string `json:"operation_id"`
	Status      string `json:"status"`
	CreatedAt   int64  `json:"created_at"`
	ExpiresAt   int64  `json:"expires_at"`
	UsedAt      *int64 `json:"used_at,omitempty"`
}

type CodeListResponse struct {
	Codes []CodeItem `json:"codes"`
	Total int64      `json:"-"`
}

func (c CodeListResponse) Meta() map[string]any {
	return map[string]any{"total": c.Total}
}

func newCodeListResponse(out *usecase.CodeListOutput) CodeListResponse {
	items := lo.Map(out.Codes, func(c entity.Code, _ int) CodeItem {
		item := CodeItem{
			ID:          c.ID,
			UserID:      c.UserID,
			OperationID: c.OperationID,
			Status:      c.Status.String(),
			CreatedAt:   c.CreatedAt.Unix(),
			ExpiresAt:   c.ExpiresAt.Unix(),
		}
		if c.UsedAt != nil {
			used := c.UsedAt.Unix()
			item.UsedAt = &used
		}
		return item
	})

	return CodeListResponse{Codes: items, Total: out.Total}
}

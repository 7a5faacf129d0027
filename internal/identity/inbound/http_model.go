package inbound

import (
	"github.com/samber/lo"
	"github.com/shandysiswandi/otpsender/internal/identity/entity"
	"github.com/shandysiswandi/otpsender/internal/identity/usecase"
)

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
}

type RegisterResponse struct {
	UserID int64 `json:"user_id,string"`
}

func (RegisterResponse) Message() string {
	return "Registration successful."
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
}

type UserItem struct {
	ID        int64  `json:"id,string"`
	Email     string `json:"email"`
	FullName  string `json:"full_name"`
	Role      string `json:"role"`
	Status    string `json:"status"`
	CreatedAt int64  `json:"created_at"`
}

type UserListResponse struct {
	Users []UserItem `json:"users"`
	Total int64      `json:"-"`
}

func (u UserListResponse) Meta() map[string]any {
	return map[string]any{"total": u.Total}
}

func newUserListResponse(out *usecase.UserListOutput) UserListResponse {
	items := lo.Map(out.Users, func(u entity.User, _ int) UserItem {
		return UserItem{
			ID:        u.ID,
			Email:     u.Email,
			FullName:  u.FullName,
			Role:      u.Role,
			Status:    u.Status.String(),
			CreatedAt: u.CreatedAt.Unix(),
		}
	})

	return UserListResponse{Users: items, Total: out.Total}
}

type UserDeleteResponse struct{}

func (UserDeleteResponse) Message() string {
	return "User has been deleted."
}

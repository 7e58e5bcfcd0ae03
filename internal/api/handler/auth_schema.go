package handler

import (
	"time"

	"github.com/mediboard/hospital-system/internal/core/domain"
)

type bootstrapStatusResponse struct {
	AdminExists bool `json:"admin_exists"`
}

type bootstrapRequest struct {
	Username        string `json:"username"         validate:"required"`
	Password        string `json:"password"         validate:"required,min=8"`
	ConfirmPassword string `json:"confirm_password" validate:"required"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type createStaffRequest struct {
	Username        string `json:"username"         validate:"required"`
	Password        string `json:"password"         validate:"required,min=8"`
	ConfirmPassword string `json:"confirm_password" validate:"required"`
	Role            string `json:"role"             validate:"required,oneof=doctor nurse receptionist pharmacist lab_technician"`
}

// accountResponse is the wire shape of an account. The secret hash never
// leaves the service.
type accountResponse struct {
	ID        string     `json:"id"`
	Username  string     `json:"username"`
	Role      string     `json:"role"`
	CreatedAt time.Time  `json:"created_at"`
	LastLogin *time.Time `json:"last_login,omitempty"`
}

type sessionResponse struct {
	Token   string          `json:"token"`
	Account accountResponse `json:"account"`
}

func newAccountResponse(a *domain.Account) accountResponse {
	resp := accountResponse{
		ID:        a.ID,
		Username:  a.Username,
		Role:      a.Role,
		CreatedAt: a.CreatedAt,
	}
	if !a.LastLogin.IsZero() {
		last := a.LastLogin
		resp.LastLogin = &last
	}
	return resp
}

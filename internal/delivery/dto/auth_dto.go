package dto

import "strings"

type LoginRequest struct {
	LoginName string `json:"login_name" validate:"required"`
	Secret    string `json:"secret" validate:"required"`
}

func (r *LoginRequest) Normalize() {
	r.LoginName = strings.TrimSpace(r.LoginName)
	r.Secret = strings.TrimSpace(r.Secret)
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

type SessionResponse struct {
	AccountID int64  `json:"account_id"`
	LoginName string `json:"login_name"`
	Role      string `json:"role"`
	Status    string `json:"status"`
}

package dto

import (
	"anoa.com/careerhub/internal/entity"
)

type SignupInput struct {
	Email           string `json:"email" form:"email"`
	Username        string `json:"username" form:"username"`
	Password        string `json:"password" form:"password"`
	ConfirmPassword string `json:"confirm_password" form:"confirm_password"`
}

type SigninInput struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

type AuthResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	ExpiresIn   int64        `json:"expires_in"`
	SessionID   string       `json:"-"`
	User        *entity.User `json:"user"`
	HasProfile  bool         `json:"has_profile"`
}

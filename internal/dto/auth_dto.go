package dto

import (
	"time"

	"github.com/google/uuid"
)

type GoogleLoginRequest struct {
	Token string `json:"token" validate:"required"`
}

type UserResponse struct {
	Id        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	AvatarURL *string   `json:"avatar_url"`
	CreatedAt time.Time `json:"created_at"`
}

type LoginResponse struct {
	AccessToken string        `json:"token"`
	User        *UserResponse `json:"user"`
}

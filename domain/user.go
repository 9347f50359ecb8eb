package domain

import (
	"errors"
	"mime/multipart"
	"time"
)

var (
	MessageSuccessRegister        = "user registered successfully"
	MessageSuccessLogin           = "login successful"
	MessageSuccessGetProfile      = "profile retrieved successfully"
	MessageSuccessUpdateUser      = "profile updated successfully"
	MessageSuccessSendVerifyEmail = "verification email sent successfully"
	MessageSuccessVerifyEmail     = "email verified successfully"

	MessageFailedRegister        = "failed to register user"
	MessageFailedLogin           = "failed to login"
	MessageFailedGetProfile      = "failed to retrieve profile"
	MessageFailedUpdateUser      = "failed to update profile"
	MessageFailedSendVerifyEmail = "failed to send verification email"
	MessageFailedVerifyEmail     = "failed to verify email"

	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotVerified    = errors.New("email is not verified")
	ErrTokenExpired       = errors.New("token has expired")
	ErrTokenInvalid       = errors.New("token is invalid")
)

type (
	RegisterRequest struct {
		Name     string `json:"name" validate:"required"`
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required,min=8"`
	}

	LoginRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	LoginResponse struct {
		Token string       `json:"token"`
		User  *UserProfile `json:"user"`
	}

	UserProfile struct {
		ID         string    `json:"id"`
		Name       string    `json:"name"`
		Email      string    `json:"email"`
		Role       string    `json:"role"`
		AvatarURL  string    `json:"avatar_url,omitempty"`
		IsVerified bool      `json:"is_verified"`
		CreatedAt  time.Time `json:"created_at"`
	}

	UpdateUserRequest struct {
		Name   string                `json:"name" validate:"omitempty"`
		Avatar *multipart.FileHeader `json:"avatar" form:"avatar"`
	}

	SendVerificationEmailRequest struct {
		Email string `json:"email" validate:"required,email"`
	}
)

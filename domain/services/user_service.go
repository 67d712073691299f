package services

import (
	"context"

	"taskforge/domain/dto"
	"taskforge/domain/models"
)

type UserService interface {
	// Register creates the account and mints its first token.
	Register(ctx context.Context, req *dto.RegisterRequest) (*models.User, string, error)
	Login(ctx context.Context, req *dto.LoginRequest) (string, *models.User, error)
	GetProfile(ctx context.Context, userID uint) (*models.User, error)
	UpdateProfile(ctx context.Context, userID uint, req *dto.UpdateProfileRequest) (*models.User, error)
	ChangePassword(ctx context.Context, userID uint, req *dto.ChangePasswordRequest) error
	// GetByID is the auth-gate lookup; it may be served from cache.
	GetByID(ctx context.Context, userID uint) (*models.User, error)
}

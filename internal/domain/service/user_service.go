package service

import (
	"context"

	"github.com/jrjohn/academy-cloud-go/internal/domain/entity"
	"github.com/jrjohn/academy-cloud-go/internal/dto/request"
)

// UserService defines the interface for account operations
type UserService interface {
	// GetProfile returns the user, serving from the session cache when warm
	GetProfile(ctx context.Context, userID uint) (*entity.User, error)

	// UpdateInfo changes the profile name and/or email
	UpdateInfo(ctx context.Context, userID uint, req *request.UpdateInfoRequest) (*entity.User, error)

	// UpdatePassword changes the password after verifying the old one
	UpdatePassword(ctx context.Context, userID uint, req *request.UpdatePasswordRequest) error

	// UpdateAvatar replaces the profile image in the asset store
	UpdateAvatar(ctx context.Context, userID uint, dataURL string) (*entity.User, error)

	// List returns a page of users, newest first (admin only)
	List(ctx context.Context, page, size int) ([]*entity.User, int64, error)

	// UpdateRole changes a user's role by email (admin only)
	UpdateRole(ctx context.Context, req *request.UpdateRoleRequest) (*entity.User, error)

	// Delete soft-deletes the account and evicts its session (admin only)
	Delete(ctx context.Context, userID uint) error
}

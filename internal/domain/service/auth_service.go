// Package service defines the business operation interfaces. Implementations
// live in the impl subpackage; controllers depend only on these interfaces.
package service

import (
	"context"

	"github.com/jrjohn/academy-cloud-go/internal/domain/entity"
	"github.com/jrjohn/academy-cloud-go/internal/dto/request"
	"github.com/jrjohn/academy-cloud-go/internal/dto/response"
)

// TokenPair is the access/refresh token pair issued on authentication.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// AuthService defines the interface for authentication operations
type AuthService interface {
	// Register validates a pending registration and returns the activation
	// token. No account exists until Activate succeeds; the 4-digit code is
	// mailed out of band.
	Register(ctx context.Context, req *request.RegisterRequest) (*response.ActivationResponse, error)

	// Activate verifies the activation token and code and creates the account
	Activate(ctx context.Context, req *request.ActivateRequest) (*entity.User, error)

	// Login authenticates by email and password, issues tokens and opens
	// a session
	Login(ctx context.Context, req *request.LoginRequest) (*entity.User, TokenPair, error)

	// SocialAuth signs in a social provider identity, creating the account
	// on first sight
	SocialAuth(ctx context.Context, req *request.SocialAuthRequest) (*entity.User, TokenPair, error)

	// Refresh rotates the token pair using a valid refresh token
	Refresh(ctx context.Context, refreshToken string) (*entity.User, TokenPair, error)

	// Logout evicts the session, invalidating outstanding access tokens
	Logout(ctx context.Context, userID uint) error
}

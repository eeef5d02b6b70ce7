package response

import (
	"github.com/jrjohn/academy-cloud-go/internal/domain/entity"
)

// UserResponse is the public view of a user account.
type UserResponse struct {
	ID         uint     `json:"id"`
	Name       string   `json:"name"`
	Email      string   `json:"email"`
	AvatarURL  string   `json:"avatar_url,omitempty"`
	Role       string   `json:"role"`
	IsVerified bool     `json:"is_verified"`
	Courses    []uint   `json:"courses"`
}

// NewUserResponse builds a UserResponse from a user entity.
func NewUserResponse(user *entity.User) UserResponse {
	courses := user.Courses
	if courses == nil {
		courses = []uint{}
	}
	return UserResponse{
		ID:         user.ID,
		Name:       user.Name,
		Email:      user.Email,
		AvatarURL:  user.Avatar.URL,
		Role:       string(user.Role),
		IsVerified: user.IsVerified,
		Courses:    courses,
	}
}

// ActivationResponse carries the activation token handed back on register.
type ActivationResponse struct {
	ActivationToken string `json:"activation_token"`
}

// AuthResponse is returned on login, social auth and token refresh. The
// tokens also travel as cookies; the access token is repeated in the body
// for non-browser clients.
type AuthResponse struct {
	User        UserResponse `json:"user"`
	AccessToken string       `json:"access_token"`
}

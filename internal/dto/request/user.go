package request

// UpdateInfoRequest updates the profile name and/or email
type UpdateInfoRequest struct {
	Name  string `json:"name,omitempty" binding:"omitempty,min=2,max=80"`
	Email string `json:"email,omitempty" binding:"omitempty,email,max=120"`
}

// UpdatePasswordRequest changes the account password
type UpdatePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=6,max=72"`
}

// UpdateAvatarRequest replaces the profile image with a base64 data URL
type UpdateAvatarRequest struct {
	Avatar string `json:"avatar" binding:"required"`
}

// UpdateRoleRequest changes a user's role (admin only)
type UpdateRoleRequest struct {
	Email string `json:"email" binding:"required,email"`
	Role  string `json:"role" binding:"required,oneof=user admin"`
}

package request

// RegisterRequest represents a user registration request
type RegisterRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=80"`
	Email    string `json:"email" binding:"required,email,max=120"`
	Password string `json:"password" binding:"required,min=6,max=72"`
}

// ActivateRequest carries the activation token and the mailed code back
type ActivateRequest struct {
	ActivationToken string `json:"activation_token" binding:"required"`
	ActivationCode  string `json:"activation_code" binding:"required,len=4"`
}

// LoginRequest represents a user login request
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// SocialAuthRequest represents a social provider sign-in
type SocialAuthRequest struct {
	Name      string `json:"name" binding:"required,min=2,max=80"`
	Email     string `json:"email" binding:"required,email,max=120"`
	AvatarURL string `json:"avatar_url,omitempty" binding:"omitempty,url"`
}

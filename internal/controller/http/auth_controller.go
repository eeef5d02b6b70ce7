package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jrjohn/academy-cloud-go/internal/config"
	"github.com/jrjohn/academy-cloud-go/internal/domain/service"
	"github.com/jrjohn/academy-cloud-go/internal/dto/request"
	"github.com/jrjohn/academy-cloud-go/internal/dto/response"
	"github.com/jrjohn/academy-cloud-go/internal/middleware"
	"github.com/jrjohn/academy-cloud-go/internal/security"
)

// AuthController handles authentication endpoints
type AuthController struct {
	authService service.AuthService
	jwtProvider *security.JWTProvider
	serverCfg   *config.ServerConfig
	authMw      *middleware.AuthMiddleware
}

// NewAuthController creates a new AuthController instance
func NewAuthController(
	authService service.AuthService,
	jwtProvider *security.JWTProvider,
	serverCfg *config.ServerConfig,
	authMw *middleware.AuthMiddleware,
) *AuthController {
	return &AuthController{
		authService: authService,
		jwtProvider: jwtProvider,
		serverCfg:   serverCfg,
		authMw:      authMw,
	}
}

// RegisterRoutes registers the auth routes
func (c *AuthController) RegisterRoutes(router *gin.RouterGroup) {
	auth := router.Group("/auth")
	{
		auth.POST("/register", c.Register)
		auth.POST("/activate", c.Activate)
		auth.POST("/login", c.Login)
		auth.POST("/social", c.SocialAuth)
		auth.POST("/refresh", c.Refresh)
		auth.POST("/logout", c.authMw.Authenticate(), c.Logout)
	}
}

// Register starts a registration
// @Summary Register a new account and mail the activation code
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body request.RegisterRequest true "Registration request"
// @Success 201 {object} response.ApiResponse[response.ActivationResponse]
// @Failure 400 {object} response.ApiResponse[any]
// @Router /api/v1/auth/register [post]
func (c *AuthController) Register(ctx *gin.Context) {
	var req request.RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, response.NewErrorWithDetails[any](msgValidationFailed, err.Error()))
		return
	}

	resp, err := c.authService.Register(ctx.Request.Context(), &req)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, response.NewSuccess(resp, "Activation code sent to your email"))
}

// Activate completes a registration
// @Summary Activate an account with the mailed code
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body request.ActivateRequest true "Activation request"
// @Success 201 {object} response.ApiResponse[response.UserResponse]
// @Failure 400 {object} response.ApiResponse[any]
// @Failure 401 {object} response.ApiResponse[any]
// @Router /api/v1/auth/activate [post]
func (c *AuthController) Activate(ctx *gin.Context) {
	var req request.ActivateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, response.NewErrorWithDetails[any](msgValidationFailed, err.Error()))
		return
	}

	user, err := c.authService.Activate(ctx.Request.Context(), &req)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, response.NewSuccess(response.NewUserResponse(user), "Account activated"))
}

// Login authenticates a user
// @Summary Login with email and password
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body request.LoginRequest true "Login request"
// @Success 200 {object} response.ApiResponse[response.AuthResponse]
// @Failure 401 {object} response.ApiResponse[any]
// @Router /api/v1/auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req request.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, response.NewErrorWithDetails[any](msgValidationFailed, err.Error()))
		return
	}

	user, pair, err := c.authService.Login(ctx.Request.Context(), &req)
	if err != nil {
		respondError(ctx, err)
		return
	}

	c.setAuthCookies(ctx, pair)
	ctx.JSON(http.StatusOK, response.NewSuccess(response.AuthResponse{
		User:        response.NewUserResponse(user),
		AccessToken: pair.AccessToken,
	}, "Login successful"))
}

// SocialAuth signs in a social identity
// @Summary Login via a social provider, creating the account on first sight
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body request.SocialAuthRequest true "Social auth request"
// @Success 200 {object} response.ApiResponse[response.AuthResponse]
// @Router /api/v1/auth/social [post]
func (c *AuthController) SocialAuth(ctx *gin.Context) {
	var req request.SocialAuthRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, response.NewErrorWithDetails[any](msgValidationFailed, err.Error()))
		return
	}

	user, pair, err := c.authService.SocialAuth(ctx.Request.Context(), &req)
	if err != nil {
		respondError(ctx, err)
		return
	}

	c.setAuthCookies(ctx, pair)
	ctx.JSON(http.StatusOK, response.NewSuccess(response.AuthResponse{
		User:        response.NewUserResponse(user),
		AccessToken: pair.AccessToken,
	}, "Login successful"))
}

// Refresh rotates the token pair
// @Summary Refresh the access token using the refresh token cookie
// @Tags Authentication
// @Produce json
// @Success 200 {object} response.ApiResponse[response.AuthResponse]
// @Failure 401 {object} response.ApiResponse[any]
// @Router /api/v1/auth/refresh [post]
func (c *AuthController) Refresh(ctx *gin.Context) {
	refreshToken, err := ctx.Cookie(middleware.RefreshTokenCookie)
	if err != nil || refreshToken == "" {
		ctx.JSON(http.StatusUnauthorized, response.NewError[any]("refresh token required"))
		return
	}

	user, pair, err := c.authService.Refresh(ctx.Request.Context(), refreshToken)
	if err != nil {
		respondError(ctx, err)
		return
	}

	c.setAuthCookies(ctx, pair)
	ctx.JSON(http.StatusOK, response.NewSuccess(response.AuthResponse{
		User:        response.NewUserResponse(user),
		AccessToken: pair.AccessToken,
	}, "Token refreshed"))
}

// Logout ends the session
// @Summary Logout and invalidate outstanding tokens
// @Tags Authentication
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.ApiResponse[any]
// @Router /api/v1/auth/logout [post]
func (c *AuthController) Logout(ctx *gin.Context) {
	user := security.MustCurrentUser(ctx)
	if err := c.authService.Logout(ctx.Request.Context(), user.ID); err != nil {
		respondError(ctx, err)
		return
	}

	c.clearAuthCookies(ctx)
	ctx.JSON(http.StatusOK, response.NewSuccess[any](nil, "Logged out successfully"))
}

func (c *AuthController) setAuthCookies(ctx *gin.Context, pair service.TokenPair) {
	ctx.SetCookie(middleware.AccessTokenCookie, pair.AccessToken,
		int(c.jwtProvider.AccessTTL().Seconds()), "/", c.serverCfg.CookieDomain, c.serverCfg.CookieSecure, true)
	ctx.SetCookie(middleware.RefreshTokenCookie, pair.RefreshToken,
		int(c.jwtProvider.RefreshTTL().Seconds()), "/", c.serverCfg.CookieDomain, c.serverCfg.CookieSecure, true)
}

func (c *AuthController) clearAuthCookies(ctx *gin.Context) {
	ctx.SetCookie(middleware.AccessTokenCookie, "", -1, "/", c.serverCfg.CookieDomain, c.serverCfg.CookieSecure, true)
	ctx.SetCookie(middleware.RefreshTokenCookie, "", -1, "/", c.serverCfg.CookieDomain, c.serverCfg.CookieSecure, true)
}

package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jrjohn/academy-cloud-go/internal/domain/service"
	"github.com/jrjohn/academy-cloud-go/internal/dto/request"
	"github.com/jrjohn/academy-cloud-go/internal/dto/response"
	"github.com/jrjohn/academy-cloud-go/internal/middleware"
	"github.com/jrjohn/academy-cloud-go/internal/security"
)

// UserController handles account endpoints
type UserController struct {
	userService service.UserService
	authMw      *middleware.AuthMiddleware
}

// NewUserController creates a new UserController instance
func NewUserController(userService service.UserService, authMw *middleware.AuthMiddleware) *UserController {
	return &UserController{
		userService: userService,
		authMw:      authMw,
	}
}

// RegisterRoutes registers the user routes
func (c *UserController) RegisterRoutes(router *gin.RouterGroup) {
	users := router.Group("/users", c.authMw.Authenticate())
	{
		users.GET("/me", c.Me)
		users.PUT("/me/info", c.UpdateInfo)
		users.PUT("/me/password", c.UpdatePassword)
		users.PUT("/me/avatar", c.UpdateAvatar)

		admin := users.Group("", c.authMw.RequireAdmin())
		{
			admin.GET("", c.List)
			admin.PUT("/role", c.UpdateRole)
			admin.DELETE("/:id", c.Delete)
		}
	}
}

// Me returns the authenticated user's profile
// @Summary Get own profile
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.ApiResponse[response.UserResponse]
// @Router /api/v1/users/me [get]
func (c *UserController) Me(ctx *gin.Context) {
	user := security.MustCurrentUser(ctx)

	profile, err := c.userService.GetProfile(ctx.Request.Context(), user.ID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response.NewSuccessWithData(response.NewUserResponse(profile)))
}

// UpdateInfo updates the profile name and/or email
// @Summary Update own profile info
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body request.UpdateInfoRequest true "Profile update"
// @Success 200 {object} response.ApiResponse[response.UserResponse]
// @Router /api/v1/users/me/info [put]
func (c *UserController) UpdateInfo(ctx *gin.Context) {
	var req request.UpdateInfoRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, response.NewErrorWithDetails[any](msgValidationFailed, err.Error()))
		return
	}

	user := security.MustCurrentUser(ctx)
	updated, err := c.userService.UpdateInfo(ctx.Request.Context(), user.ID, &req)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response.NewSuccess(response.NewUserResponse(updated), "Profile updated"))
}

// UpdatePassword changes the account password
// @Summary Change own password
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body request.UpdatePasswordRequest true "Password change"
// @Success 200 {object} response.ApiResponse[any]
// @Router /api/v1/users/me/password [put]
func (c *UserController) UpdatePassword(ctx *gin.Context) {
	var req request.UpdatePasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, response.NewErrorWithDetails[any](msgValidationFailed, err.Error()))
		return
	}

	user := security.MustCurrentUser(ctx)
	if err := c.userService.UpdatePassword(ctx.Request.Context(), user.ID, &req); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response.NewSuccess[any](nil, "Password updated"))
}

// UpdateAvatar replaces the profile image
// @Summary Upload a new avatar as a base64 data URL
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body request.UpdateAvatarRequest true "Avatar upload"
// @Success 200 {object} response.ApiResponse[response.UserResponse]
// @Router /api/v1/users/me/avatar [put]
func (c *UserController) UpdateAvatar(ctx *gin.Context) {
	var req request.UpdateAvatarRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, response.NewErrorWithDetails[any](msgValidationFailed, err.Error()))
		return
	}

	user := security.MustCurrentUser(ctx)
	updated, err := c.userService.UpdateAvatar(ctx.Request.Context(), user.ID, req.Avatar)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response.NewSuccess(response.NewUserResponse(updated), "Avatar updated"))
}

// List returns a page of users
// @Summary List all users (admin)
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(20)
// @Success 200 {object} response.ApiResponse[response.PagedResponse[response.UserResponse]]
// @Router /api/v1/users [get]
func (c *UserController) List(ctx *gin.Context) {
	page := parseQueryInt(ctx, "page", 1)
	size := parseQueryInt(ctx, "size", 20)

	users, total, err := c.userService.List(ctx.Request.Context(), page, size)
	if err != nil {
		respondError(ctx, err)
		return
	}

	items := make([]response.UserResponse, 0, len(users))
	for _, u := range users {
		items = append(items, response.NewUserResponse(u))
	}
	ctx.JSON(http.StatusOK, response.NewSuccessWithData(response.NewPagedResponse(items, page, size, total)))
}

// UpdateRole changes a user's role
// @Summary Change a user's role by email (admin)
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body request.UpdateRoleRequest true "Role change"
// @Success 200 {object} response.ApiResponse[response.UserResponse]
// @Router /api/v1/users/role [put]
func (c *UserController) UpdateRole(ctx *gin.Context) {
	var req request.UpdateRoleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, response.NewErrorWithDetails[any](msgValidationFailed, err.Error()))
		return
	}

	updated, err := c.userService.UpdateRole(ctx.Request.Context(), &req)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response.NewSuccess(response.NewUserResponse(updated), "Role updated"))
}

// Delete removes a user account
// @Summary Soft-delete a user (admin)
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} response.ApiResponse[any]
// @Router /api/v1/users/{id} [delete]
func (c *UserController) Delete(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.userService.Delete(ctx.Request.Context(), id); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response.NewSuccess[any](nil, "User deleted"))
}

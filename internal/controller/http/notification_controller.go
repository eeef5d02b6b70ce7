package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jrjohn/academy-cloud-go/internal/domain/entity"
	"github.com/jrjohn/academy-cloud-go/internal/domain/service"
	"github.com/jrjohn/academy-cloud-go/internal/dto/response"
	"github.com/jrjohn/academy-cloud-go/internal/middleware"
	"github.com/jrjohn/academy-cloud-go/internal/security"
	"github.com/jrjohn/academy-cloud-go/internal/ws"
)

// NotificationController handles the admin notification endpoints and the
// websocket push stream.
type NotificationController struct {
	notificationService service.NotificationService
	hub                 *ws.Hub
	authMw              *middleware.AuthMiddleware
	logger              *zap.Logger
}

// NewNotificationController creates a new NotificationController instance
func NewNotificationController(
	notificationService service.NotificationService,
	hub *ws.Hub,
	authMw *middleware.AuthMiddleware,
	logger *zap.Logger,
) *NotificationController {
	return &NotificationController{
		notificationService: notificationService,
		hub:                 hub,
		authMw:              authMw,
		logger:              logger,
	}
}

// RegisterRoutes registers the notification routes
func (c *NotificationController) RegisterRoutes(router *gin.RouterGroup) {
	notifications := router.Group("/notifications", c.authMw.Authenticate(), c.authMw.RequireAdmin())
	{
		notifications.GET("", c.List)
		notifications.PUT("/:id", c.MarkRead)
	}
}

// RegisterWebsocket registers the push stream on the engine root, outside
// the /api/v1 prefix.
func (c *NotificationController) RegisterWebsocket(engine *gin.Engine) {
	engine.GET("/ws/notifications", c.authMw.Authenticate(), c.authMw.RequireAdmin(), c.Stream)
}

// List returns all notifications
// @Summary List all notifications (admin)
// @Tags Notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.ApiResponse[[]entity.Notification]
// @Router /api/v1/notifications [get]
func (c *NotificationController) List(ctx *gin.Context) {
	notifications, err := c.notificationService.List(ctx.Request.Context())
	if err != nil {
		respondError(ctx, err)
		return
	}
	if notifications == nil {
		notifications = []*entity.Notification{}
	}
	ctx.JSON(http.StatusOK, response.NewSuccessWithData(notifications))
}

// MarkRead flips a notification to read
// @Summary Mark a notification read (admin)
// @Tags Notifications
// @Produce json
// @Security BearerAuth
// @Param id path int true "Notification ID"
// @Success 200 {object} response.ApiResponse[[]entity.Notification]
// @Failure 404 {object} response.ApiResponse[any]
// @Router /api/v1/notifications/{id} [put]
func (c *NotificationController) MarkRead(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	notifications, err := c.notificationService.MarkRead(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, response.NewSuccessWithData(notifications))
}

// Stream upgrades to a websocket pushing new notifications
func (c *NotificationController) Stream(ctx *gin.Context) {
	user := security.MustCurrentUser(ctx)
	if err := c.hub.Serve(ctx, user.ID); err != nil {
		c.logger.Warn("websocket upgrade failed", zap.Uint("user_id", user.ID), zap.Error(err))
	}
}

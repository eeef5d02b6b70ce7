package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jrjohn/academy-cloud-go/internal/domain/entity"
	"github.com/jrjohn/academy-cloud-go/internal/domain/service"
	"github.com/jrjohn/academy-cloud-go/internal/dto/request"
	"github.com/jrjohn/academy-cloud-go/internal/dto/response"
	"github.com/jrjohn/academy-cloud-go/internal/middleware"
	"github.com/jrjohn/academy-cloud-go/internal/security"
)

// OrderController handles purchase endpoints
type OrderController struct {
	orderService service.OrderService
	authMw       *middleware.AuthMiddleware
}

// NewOrderController creates a new OrderController instance
func NewOrderController(orderService service.OrderService, authMw *middleware.AuthMiddleware) *OrderController {
	return &OrderController{
		orderService: orderService,
		authMw:       authMw,
	}
}

// RegisterRoutes registers the order routes
func (c *OrderController) RegisterRoutes(router *gin.RouterGroup) {
	orders := router.Group("/orders", c.authMw.Authenticate())
	{
		orders.POST("", c.Create)
		orders.GET("/me", c.ListMine)
		orders.GET("", c.authMw.RequireAdmin(), c.List)
	}
}

// Create purchases a course
// @Summary Purchase a course
// @Tags Orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body request.CreateOrderRequest true "Order request"
// @Success 201 {object} response.ApiResponse[entity.Order]
// @Failure 400 {object} response.ApiResponse[any]
// @Failure 404 {object} response.ApiResponse[any]
// @Router /api/v1/orders [post]
func (c *OrderController) Create(ctx *gin.Context) {
	var req request.CreateOrderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, response.NewErrorWithDetails[any](msgValidationFailed, err.Error()))
		return
	}

	user := security.MustCurrentUser(ctx)
	order, err := c.orderService.Create(ctx.Request.Context(), user, &req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, response.NewSuccess(order, "Order created"))
}

// ListMine returns the user's own orders
// @Summary List own orders
// @Tags Orders
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.ApiResponse[[]entity.Order]
// @Router /api/v1/orders/me [get]
func (c *OrderController) ListMine(ctx *gin.Context) {
	user := security.MustCurrentUser(ctx)

	orders, err := c.orderService.ListByUser(ctx.Request.Context(), user.ID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	if orders == nil {
		orders = []*entity.Order{}
	}
	ctx.JSON(http.StatusOK, response.NewSuccessWithData(orders))
}

// List returns all orders
// @Summary List all orders (admin)
// @Tags Orders
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.ApiResponse[[]entity.Order]
// @Router /api/v1/orders [get]
func (c *OrderController) List(ctx *gin.Context) {
	orders, err := c.orderService.List(ctx.Request.Context())
	if err != nil {
		respondError(ctx, err)
		return
	}
	if orders == nil {
		orders = []*entity.Order{}
	}
	ctx.JSON(http.StatusOK, response.NewSuccessWithData(orders))
}

// Package http contains the gin controllers. Controllers bind and validate
// payloads, call services and translate AppError values onto HTTP statuses;
// no business rules live here.
package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jrjohn/academy-cloud-go/internal/dto/response"
	apperrors "github.com/jrjohn/academy-cloud-go/pkg/errors"
)

const msgValidationFailed = "validation failed"

// respondError maps a service error onto its HTTP status and client-safe
// message.
func respondError(ctx *gin.Context, err error) {
	ctx.JSON(apperrors.GetStatus(err), response.NewError[any](apperrors.ClientMessage(err)))
}

// parseIDParam reads a numeric id path parameter.
func parseIDParam(ctx *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param(name), 10, 32)
	if err != nil || id == 0 {
		ctx.JSON(http.StatusBadRequest, response.NewError[any]("invalid "+name))
		return 0, false
	}
	return uint(id), true
}

// parseQueryInt reads an integer query parameter with a default.
func parseQueryInt(ctx *gin.Context, name string, fallback int) int {
	raw := ctx.Query(name)
	if raw == "" {
		return fallback
	}
	val, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return val
}

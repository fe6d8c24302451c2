// Package controllers handles HTTP request handling
package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/univoice/backend/internal/app/models"
	"github.com/univoice/backend/internal/app/models/dto"
)

// actorFromContext reads the authenticated actor the JWT middleware stored on
// the request context. The boolean is false when the middleware did not run.
func actorFromContext(ctx *gin.Context) (models.Actor, bool) {
	userID, okID := ctx.Get("userID")
	roleType, okRole := ctx.Get("roleType")
	if !okID || !okRole {
		return models.Actor{}, false
	}

	id, okID := userID.(int64)
	role, okRole := roleType.(string)
	if !okID || !okRole {
		return models.Actor{}, false
	}

	return models.Actor{UserID: id, Role: models.RoleType(role)}, true
}

// requireActor resolves the actor or writes a 401 and returns false
func requireActor(ctx *gin.Context) (models.Actor, bool) {
	actor, ok := actorFromContext(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
	}
	return actor, ok
}

// parseIDParam parses a path parameter as a positive int64 ID, writing a 400
// on failure.
func parseIDParam(ctx *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id <= 0 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid "+name+" parameter")
		errorDetail = errorDetail.WithDetails(name + " must be a positive number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return id, true
}

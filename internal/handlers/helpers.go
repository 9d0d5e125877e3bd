// internal/handlers/helpers.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/tradecraft/backend/internal/apperrors"
	"github.com/tradecraft/backend/internal/utils"
)

// currentUserID reads the authenticated user id set by the auth middleware.
func currentUserID(c *gin.Context) (uuid.UUID, error) {
	raw, ok := utils.GetUserIDFromContext(c)
	if !ok {
		return uuid.Nil, apperrors.Unauthorized("authentication required")
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, apperrors.Unauthorized("invalid authentication context")
	}

	return id, nil
}

func parseUUIDParam(c *gin.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, apperrors.InvalidArgument("invalid " + name)
	}
	return id, nil
}

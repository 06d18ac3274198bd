package handlers

import (
	"github.com/anonto42/project-showcase/backend/internal/middleware"
	"github.com/labstack/echo/v4"
)

// getUserIDFromContext returns the authenticated user's id, or 0
func getUserIDFromContext(c echo.Context) uint {
	claims, err := middleware.UserFromContext(c)
	if err != nil {
		return 0
	}
	return claims.UserID
}

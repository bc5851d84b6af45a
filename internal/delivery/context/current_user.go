package context

import (
	"quizdeck/internal/domain/entity"

	"github.com/labstack/echo/v4"
)

// SetCurrentUser stores the authenticated user in echo.Context.
// The stored entity is expected to be sanitized.
func SetCurrentUser(c echo.Context, user *entity.User) {
	c.Set(string(KeyCurrentUser), user)
}

// GetCurrentUser extracts the authenticated user from echo.Context.
// Returns nil when the request did not pass through the auth middleware.
func GetCurrentUser(c echo.Context) *entity.User {
	if user, ok := c.Get(string(KeyCurrentUser)).(*entity.User); ok {
		return user
	}

	return nil
}

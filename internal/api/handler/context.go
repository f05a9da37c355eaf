package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/musitech/crm-api/internal/api/middleware"
	"github.com/musitech/crm-api/internal/core/domain"
)

// currentUser extracts the public view injected by the Auth middleware.
// Its absence means the route was wired without the middleware, so reject
// rather than serve an unauthenticated request.
func currentUser(c echo.Context) (*domain.PublicUser, error) {
	user, ok := c.Get(middleware.ContextKeyUser).(*domain.PublicUser)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return user, nil
}

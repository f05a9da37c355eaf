package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/musitech/crm-api/internal/api/metrics"
	"github.com/musitech/crm-api/internal/core/domain"
	"github.com/musitech/crm-api/internal/core/token"
)

// Context keys set by Auth for downstream handlers.
const (
	ContextKeyUser      = "user"
	ContextKeyPrincipal = "principal"
)

// UserResolver turns a token subject back into a live user record.
type UserResolver interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
}

// Auth authorizes a request from its bearer token. Absent credentials are a
// 403 ("no credentials supplied"); a rejected token is a 401. On success the
// resolved public view and principal are attached to the request context.
//
// Tokens are never revoked proactively: a token stays valid until it expires
// or until the subject lookup fails because the user was deleted.
func Auth(codec *token.Codec, users UserResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" {
				metrics.TokenRejectionsTotal.WithLabelValues("missing_header").Inc()
				return echo.NewHTTPError(http.StatusForbidden, "not authenticated")
			}

			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				metrics.TokenRejectionsTotal.WithLabelValues("malformed_header").Inc()
				return echo.NewHTTPError(http.StatusForbidden, "invalid authorization header")
			}

			claims, err := codec.Decode(parts[1])
			if err != nil {
				reason := "invalid"
				if errors.Is(err, domain.ErrExpiredToken) {
					reason = "expired"
				}
				metrics.TokenRejectionsTotal.WithLabelValues(reason).Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authentication credentials")
			}

			// A well-formed, signed token without a subject is still useless.
			if claims.UserID == "" {
				metrics.TokenRejectionsTotal.WithLabelValues("missing_subject").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authentication credentials")
			}

			user, err := users.GetByID(c.Request().Context(), claims.UserID)
			if err != nil {
				if errors.Is(err, domain.ErrUserNotFound) {
					metrics.TokenRejectionsTotal.WithLabelValues("unknown_user").Inc()
					return echo.NewHTTPError(http.StatusUnauthorized, "user not found")
				}
				return err
			}

			principal, err := user.Principal()
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authentication credentials")
			}

			c.Set(ContextKeyUser, user.Public())
			c.Set(ContextKeyPrincipal, principal)

			return next(c)
		}
	}
}

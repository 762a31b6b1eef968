package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/taskboard/taskboard/internal/apperr"
	"github.com/taskboard/taskboard/internal/auth"
	"github.com/taskboard/taskboard/internal/models"
	"github.com/taskboard/taskboard/internal/policy"
)

const claimsKey = "claims"

// RequireAuth resolves the bearer token into claims available to the
// downstream handlers.
func RequireAuth(tokens *auth.TokenManager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" {
				return c.JSON(http.StatusUnauthorized, echo.Map{"message": "access token required"})
			}

			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"message": "access token required"})
			}

			claims, err := tokens.Verify(parts[1])
			if err != nil {
				return writeErr(c, err)
			}

			c.Set(claimsKey, claims)
			return next(c)
		}
	}
}

// RequireRoles rejects callers whose role is not in the allowed set.
func RequireRoles(roles ...models.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !policy.RequireRole(callerFrom(c), roles...) {
				return c.JSON(http.StatusForbidden, echo.Map{"message": "insufficient permissions"})
			}
			return next(c)
		}
	}
}

func claimsFrom(c echo.Context) *auth.Claims {
	return c.Get(claimsKey).(*auth.Claims)
}

func callerFrom(c echo.Context) policy.Caller {
	claims := claimsFrom(c)
	return policy.Caller{ID: claims.UserID, Role: claims.Role}
}

func writeErr(c echo.Context, err error) error {
	return c.JSON(apperr.Status(err), echo.Map{"message": apperr.Message(err)})
}

func pathID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, apperr.New(apperr.ErrValidation, "invalid id")
	}
	return id, nil
}

package middleware

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/bootcamp-directory/internal/apperr"
)

// RequireRole lets the request through only when the role stored by JWTAuth
// is one of roles.  It must run after JWTAuth.
func RequireRole(roles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get(CtxRole).(string)
			if role == "" {
				return apperr.New(http.StatusUnauthorized, MsgNotAuthorized)
			}
			if !allowed[role] {
				return apperr.New(http.StatusForbidden,
					fmt.Sprintf("User role %s is not authorized to access this route", role))
			}
			return next(c)
		}
	}
}

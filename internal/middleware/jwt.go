package middleware // package middleware contains reusable Echo middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/bootcamp-directory/internal/apperr"
	"github.com/iliyamo/bootcamp-directory/internal/utils"
)

// MsgNotAuthorized is returned for missing or invalid access tokens.
const MsgNotAuthorized = "Not authorized to access this route"

// Context keys set by JWTAuth.
const (
	CtxUserID = "user_id"
	CtxRole   = "role"
)

// JWTAuth validates a Bearer access token and stores the caller's id
// (uint64) and role (string) in the context.  Failures flow through the
// central error handler as 401.
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, ok := bearer(c.Request().Header.Get(echo.HeaderAuthorization))
			if !ok {
				return apperr.New(http.StatusUnauthorized, MsgNotAuthorized)
			}
			claims, err := utils.ParseAccessToken(secret, raw)
			if err != nil {
				return apperr.New(http.StatusUnauthorized, MsgNotAuthorized)
			}
			uid, _ := claims.UserID()
			c.Set(CtxUserID, uid)
			c.Set(CtxRole, claims.Role)
			return next(c)
		}
	}
}

// bearer extracts the token of an "Authorization: Bearer <token>" header.
func bearer(header string) (string, bool) {
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}
	tok := strings.TrimSpace(header[len(prefix):])
	return tok, tok != ""
}

package middleware

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

// UserID returns the id stored by JWTAuth.
func UserID(c echo.Context) (uint64, bool) {
	id, ok := c.Get(CtxUserID).(uint64)
	return id, ok && id != 0
}

// identity names the caller for cache and rate limit keys; unauthenticated
// requests are "anon".
func identity(c echo.Context) string {
	if id, ok := UserID(c); ok {
		return strconv.FormatUint(id, 10)
	}
	return "anon"
}

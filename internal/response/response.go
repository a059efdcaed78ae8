// Package response writes the uniform JSON envelope every endpoint returns.
package response

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Envelope is the body of every JSON response.  Successful responses carry
// Data (and Count for collections); failures carry Error.
type Envelope struct {
	Success bool   `json:"success"`
	Count   *int   `json:"count,omitempty"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Success writes {success: true, data: data} with the given status.
func Success(c echo.Context, status int, data any) error {
	return c.JSON(status, Envelope{Success: true, Data: data})
}

// List writes a collection together with its length.
func List[T any](c echo.Context, items []T) error {
	if items == nil {
		items = []T{}
	}
	n := len(items)
	return c.JSON(http.StatusOK, Envelope{Success: true, Count: &n, Data: items})
}

// Empty writes {success: true, data: {}}; used after deletes.
func Empty(c echo.Context) error {
	return c.JSON(http.StatusOK, Envelope{Success: true, Data: struct{}{}})
}

// Error writes {success: false, error: message} with the given status.
func Error(c echo.Context, status int, message string) error {
	return c.JSON(status, Envelope{Success: false, Error: message})
}

package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/bootcamp-directory/internal/apperr"
	"github.com/iliyamo/bootcamp-directory/internal/response"
)

// ErrorHandler is installed as echo.HTTPErrorHandler.  It logs the raw
// failure at WARN before reducing it with apperr.Classify, then writes the
// error envelope.  Server errors also get an ERROR line with the status.  Nothing is written when the handler already responded.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		c.Logger().Errorf("%s %s: error after response was written: %v", c.Request().Method, c.Path(), err)
		return
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		err = &apperr.UnclassifiedError{Status: he.Code, Message: httpErrorMessage(he), Cause: err}
	}

	c.Logger().Warnf("%s %s: %v", c.Request().Method, c.Path(), err)
	n := apperr.Classify(err)
	if n.Status >= http.StatusInternalServerError {
		c.Logger().Errorf("%s %s: responded %d", c.Request().Method, c.Path(), n.Status)
	}

	var werr error
	if c.Request().Method == http.MethodHead {
		werr = c.NoContent(n.Status)
	} else {
		werr = response.Error(c, n.Status, n.Message)
	}
	if werr != nil {
		c.Logger().Errorf("write error response: %v", werr)
	}
}

// httpErrorMessage renders the message of an Echo error (route not found,
// bad binding, method not allowed).  Internal 5xx details are not exposed.
func httpErrorMessage(he *echo.HTTPError) string {
	if he.Code >= http.StatusInternalServerError {
		return apperr.MsgServerError
	}
	if s, ok := he.Message.(string); ok {
		return s
	}
	return fmt.Sprint(he.Message)
}

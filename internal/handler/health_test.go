package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

type pinger struct{ err error }

func (p pinger) PingContext(context.Context) error { return p.err }

func TestHealth(t *testing.T) {
	cases := []struct {
		name string
		db   Pinger
		code int
		body string
	}{
		{"mysql ok", pinger{}, http.StatusOK, `"mysql":"ok"`},
		{"mysql down", pinger{errors.New("refused")}, http.StatusServiceUnavailable, `"mysql":"down"`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			h := &HealthHandler{DB: tc.db}
			e.GET("/healthz", h.Health)

			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
			if rec.Code != tc.code {
				t.Fatalf("code = %d, want %d", rec.Code, tc.code)
			}
			body := rec.Body.String()
			if !strings.Contains(body, tc.body) || !strings.Contains(body, `"redis":"disabled"`) {
				t.Fatalf("body = %s", body)
			}
		})
	}
}

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"github.com/x-xyz/claimscore/base/ctx"
)

func TestAddContext(t *testing.T) {
	req := require.New(t)
	e := echo.New()
	m := InitMiddleware()
	e.Use(m.ResponseLogger(), m.AddContext(), m.CORS)

	var got ctx.Ctx
	e.GET("/ping", func(c echo.Context) error {
		got = c.Get("ctx").(ctx.Ctx)
		return c.String(http.StatusOK, "pong")
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))

	req.Equal(http.StatusOK, rec.Code)
	req.Equal("*", rec.Header().Get("Access-Control-Allow-Origin"))
	req.NotNil(got.Context)
	req.NoError(got.Err())
}

func TestResponseLoggerWithoutContext(t *testing.T) {
	req := require.New(t)
	e := echo.New()
	m := InitMiddleware()
	e.Use(m.ResponseLogger())
	e.GET("/missing", func(c echo.Context) error {
		return echo.ErrNotFound
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/missing", nil))
	req.Equal(http.StatusNotFound, rec.Code)
}

package middleware

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	applogger "VitalSim/pkg/logger"

	"github.com/labstack/echo/v4"
)

func panicServer(mw echo.MiddlewareFunc) *echo.Echo {
	e := echo.New()
	e.Use(mw)
	e.GET("/boom", func(c echo.Context) error { panic("kaboom") })
	return e
}

func TestRecoverConvertsPanicTo500(t *testing.T) {
	e := panicServer(Recover(nil))

	req := httptest.NewRequest(http.MethodGet, "/boom", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Internal Server Error") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestRecoverLogsThroughAppLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	l, err := applogger.New(&applogger.Config{Level: "error", Format: "json", Output: path})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	e := panicServer(Recover(l))

	req := httptest.NewRequest(http.MethodGet, "/boom", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	out, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(out), "panic recovered") || !strings.Contains(string(out), "kaboom") {
		t.Fatalf("panic not logged: %s", out)
	}
}

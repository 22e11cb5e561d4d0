package middleware

import (
	"fmt"
	"log"
	"net/http"
	"runtime/debug"

	applogger "VitalSim/pkg/logger"

	"github.com/labstack/echo/v4"
)

// Recover converts handler panics into 500 responses. Panics are reported
// through the application logger; if none was wired the stdlib logger is the
// fallback so nothing is swallowed during startup.
func Recover(l *applogger.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			defer func() {
				if r := recover(); r != nil {
					err, ok := r.(error)
					if !ok {
						err = fmt.Errorf("%v", r)
					}
					if l != nil {
						l.Error("panic recovered",
							applogger.Error(err),
							applogger.String("method", c.Request().Method),
							applogger.String("uri", c.Request().RequestURI),
							applogger.String("stack", string(debug.Stack())),
						)
					} else {
						log.Printf("PANIC: %v\n%s", err, debug.Stack())
					}
					_ = c.JSON(http.StatusInternalServerError, map[string]interface{}{
						"status":  http.StatusInternalServerError,
						"message": "Internal Server Error",
					})
				}
			}()
			return next(c)
		}
	}
}

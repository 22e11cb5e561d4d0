package http

import "github.com/labstack/echo/v4"

// Handler mounts a set of routes on the server's echo instance.
type Handler interface {
	RegisterRoutes(e *echo.Echo)
}

// HandlerFunc adapts a plain registration function to the Handler interface,
// for servers assembled without a full handler struct (tests, tools).
type HandlerFunc func(e *echo.Echo)

func (f HandlerFunc) RegisterRoutes(e *echo.Echo) { f(e) }

package server

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

func Start(addr string, handlers Handlers) error {
	e := echo.New()
	e.HideBanner = true

	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())

	RegisterRoutes(e, handlers)

	return e.Start(addr)
}

package api

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// CreateWebserver creates the server exposing the prometheus metrics
func CreateWebserver() *echo.Echo {
	webserver := echo.New()
	webserver.HideBanner = true
	webserver.HidePort = true

	// Root level middleware
	webserver.Pre(middleware.AddTrailingSlash())

	webserver.Use(middleware.Secure())
	webserver.Use(middleware.Recover())

	webserver.GET("/metrics/", echo.WrapHandler(promhttp.Handler()))

	return webserver
}

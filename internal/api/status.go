package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func registerStatusEndpoints(rest *echo.Echo, controller StatusProvider) {
	group := rest.Group("/status")

	group.GET("/", func(c echo.Context) error {
		return c.JSONPretty(http.StatusOK, controller.GetStatus(), indentationChar)
	})
}

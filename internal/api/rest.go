package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/markusressel/light2servo/internal/control"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	urlParamId      = "id"
	indentationChar = "  "
	metricSubsystem = "api"
)

type (
	Result struct {
		Name    string `json:"name"`
		Message string `json:"message"`
	}
)

// StatusProvider is implemented by control.Controller
type StatusProvider interface {
	GetStatus() control.Status
}

// CreateRestService creates the REST api, request metrics are registered with registerer
func CreateRestService(controller StatusProvider, registerer prometheus.Registerer) *echo.Echo {
	echoRest := echo.New()
	echoRest.HideBanner = true
	echoRest.HidePort = true

	// Root level middleware
	echoRest.Pre(middleware.AddTrailingSlash())

	echoRest.Use(middleware.Secure())
	echoRest.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  metricSubsystem,
		Registerer: registerer,
	}))
	echoRest.Use(middleware.Recover())

	echoRest.GET("/alive/", isAlive)

	registerStatusEndpoints(echoRest, controller)
	registerSensorEndpoints(echoRest)
	registerActuatorEndpoints(echoRest, controller)

	return echoRest
}

// returns an empty "ok" answer
func isAlive(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}

// return a "not found" message
func returnNotFound(c echo.Context, id string) (err error) {
	return c.JSONPretty(http.StatusNotFound, &Result{
		Name:    "Not found",
		Message: "No item with id '" + id + "' found",
	}, indentationChar)
}

package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/markusressel/light2servo/internal/actuators"
	"github.com/markusressel/light2servo/internal/control"
)

type actuatorInfo struct {
	Id       string `json:"id"`
	Acquired bool   `json:"acquired"`
}

// actuators are owned by the control loop, so their state is served
// from the published status instead of querying them directly
func registerActuatorEndpoints(rest *echo.Echo, controller StatusProvider) {
	group := rest.Group("/actuator")

	group.GET("/", func(c echo.Context) error {
		status := controller.GetStatus()
		result := map[string]actuatorInfo{}
		for _, id := range actuators.ActuatorMap.Keys() {
			result[id] = describeActuator(id, status)
		}
		return c.JSONPretty(http.StatusOK, result, indentationChar)
	})

	group.GET("/:"+urlParamId+"/", func(c echo.Context) error {
		id := c.Param(urlParamId)
		if !actuators.ActuatorMap.Has(id) {
			return returnNotFound(c, id)
		}
		return c.JSONPretty(http.StatusOK, describeActuator(id, controller.GetStatus()), indentationChar)
	})
}

func describeActuator(id string, status control.Status) actuatorInfo {
	return actuatorInfo{
		Id:       id,
		Acquired: status.ActuatorId == id && status.Engaged,
	}
}

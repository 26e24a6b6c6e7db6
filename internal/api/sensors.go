package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/markusressel/light2servo/internal/sensors"
	"github.com/qdm12/reprint"
)

func registerSensorEndpoints(rest *echo.Echo) {
	group := rest.Group("/sensor")

	group.GET("/", getSensors)
	group.GET("/:"+urlParamId+"/", getSensor)
}

func getSensors(c echo.Context) error {
	configs := map[string]interface{}{}
	for id, sensor := range sensors.SensorMap.Items() {
		configs[id] = sensor.GetConfig()
	}
	data := reprint.This(configs)
	return c.JSONPretty(http.StatusOK, data, indentationChar)
}

func getSensor(c echo.Context) error {
	id := c.Param(urlParamId)

	data, exists := sensors.SensorMap.Get(id)
	if !exists {
		return returnNotFound(c, id)
	} else {
		return c.JSONPretty(http.StatusOK, data.GetConfig(), indentationChar)
	}
}

package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/markusressel/ecfan/internal/configuration"
	"github.com/markusressel/ecfan/internal/sensors"
	"github.com/markusressel/ecfan/internal/util"
	"github.com/qdm12/reprint"
)

type sensorResponse struct {
	Config configuration.SensorConfig `json:"config"`
	// Value in milli-kelvin
	Value   int     `json:"value"`
	Celsius float64 `json:"celsius"`
	Error   string  `json:"error,omitempty"`
}

func registerSensorEndpoints(rest *echo.Echo) {
	group := rest.Group("/sensor")

	group.GET("/", getSensors)
	group.GET("/:"+urlParamId+"/", getSensor)
}

func createSensorResponse(sensor sensors.Sensor) sensorResponse {
	response := sensorResponse{
		Config: reprint.This(sensor.GetConfig()).(configuration.SensorConfig),
	}
	value, err := sensor.GetValue()
	if err != nil {
		response.Error = err.Error()
	} else {
		response.Value = value
		response.Celsius = util.MilliKelvinToCelsius(value)
	}
	return response
}

func getSensors(c echo.Context) error {
	items := sensors.SensorMap.Items()
	var data []sensorResponse
	for _, id := range util.SortedKeys(items) {
		data = append(data, createSensorResponse(items[id]))
	}
	return c.JSONPretty(http.StatusOK, data, indentationChar)
}

func getSensor(c echo.Context) error {
	id := c.Param(urlParamId)

	sensor, exists := sensors.SensorMap.Get(id)
	if !exists {
		return returnNotFound(c, id)
	}
	return c.JSONPretty(http.StatusOK, createSensorResponse(sensor), indentationChar)
}

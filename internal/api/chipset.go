package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type chipsetResponse struct {
	State  string `json:"state"`
	Module string `json:"module"`
}

type thermalLogRequest struct {
	Enabled bool `json:"enabled"`
}

func (s *restService) registerChipsetEndpoints(rest *echo.Echo) {
	group := rest.Group("/chipset")

	group.GET("/", s.getChipset)
	group.POST("/resume/", s.resume)
	group.POST("/suspend/", s.suspend)

	rest.GET("/module/", s.getChipset)

	rest.GET("/thermallog/", s.getThermalLog)
	rest.POST("/thermallog/", s.setThermalLog)
}

func (s *restService) chipsetStatus() chipsetResponse {
	response := chipsetResponse{
		State: s.controller.ChipsetState().String(),
	}
	if s.modules != nil {
		response.Module = s.modules.Current()
	}
	return response
}

func (s *restService) getChipset(c echo.Context) error {
	return c.JSONPretty(http.StatusOK, s.chipsetStatus(), indentationChar)
}

func (s *restService) resume(c echo.Context) error {
	s.controller.OnResume()
	return c.JSONPretty(http.StatusOK, s.chipsetStatus(), indentationChar)
}

func (s *restService) suspend(c echo.Context) error {
	s.controller.OnSuspend()
	return c.JSONPretty(http.StatusOK, s.chipsetStatus(), indentationChar)
}

func (s *restService) getThermalLog(c echo.Context) error {
	return c.JSONPretty(http.StatusOK, thermalLogRequest{Enabled: s.controller.ThermalLogEnabled()}, indentationChar)
}

func (s *restService) setThermalLog(c echo.Context) error {
	var request thermalLogRequest
	if err := c.Bind(&request); err != nil {
		return returnBadRequest(c, err)
	}
	s.controller.SetThermalLog(request.Enabled)
	return c.JSONPretty(http.StatusOK, request, indentationChar)
}

package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/qdm12/reprint"
)

func (s *restService) registerZoneEndpoints(rest *echo.Echo) {
	rest.GET("/zone/", s.getZones)
}

// returns the demands of the last zone evaluation
func (s *restService) getZones(c echo.Context) error {
	data := reprint.This(s.controller.Zones())
	return c.JSONPretty(http.StatusOK, data, indentationChar)
}

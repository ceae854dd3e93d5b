package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/markusressel/ecfan/internal/controller"
)

type limitsRequest struct {
	MinRpm int `json:"minRpm"`
	MaxRpm int `json:"maxRpm"`
}

type modeRequest struct {
	Mode string `json:"mode"`
	Rpm  int    `json:"rpm"`
}

func (s *restService) registerFanEndpoints(rest *echo.Echo) {
	group := rest.Group("/fan")

	group.GET("/", s.getFans)
	group.GET("/:"+urlParamId+"/", s.getFan)
	group.POST("/:"+urlParamId+"/limits/", s.setFanLimits)
	group.DELETE("/:"+urlParamId+"/limits/", s.clearFanLimits)
	group.POST("/:"+urlParamId+"/mode/", s.setFanMode)

	rest.GET("/decision/", s.getDecisions)
}

// returns a list of all fan channels
func (s *restService) getFans(c echo.Context) error {
	return c.JSONPretty(http.StatusOK, s.controller.Channels(), indentationChar)
}

func (s *restService) getFan(c echo.Context) error {
	id := c.Param(urlParamId)
	fanIndex, err := s.controller.FanIndex(id)
	if err != nil {
		return returnNotFound(c, id)
	}
	return c.JSONPretty(http.StatusOK, s.controller.Channels()[fanIndex], indentationChar)
}

func (s *restService) setFanLimits(c echo.Context) error {
	id := c.Param(urlParamId)
	fanIndex, err := s.controller.FanIndex(id)
	if err != nil {
		return returnNotFound(c, id)
	}

	var request limitsRequest
	if err := c.Bind(&request); err != nil {
		return returnBadRequest(c, err)
	}
	if request.MinRpm < 0 || request.MaxRpm < 0 {
		return returnBadRequest(c, errors.New("rpm limits must not be negative"))
	}
	if request.MaxRpm > 0 && request.MinRpm > request.MaxRpm {
		return returnBadRequest(c, errors.New("minRpm must not be greater than maxRpm"))
	}

	s.controller.ConfigureFanLimits(fanIndex, request.MinRpm, request.MaxRpm)
	return c.JSONPretty(http.StatusOK, s.controller.Channels()[fanIndex], indentationChar)
}

// removes the override of a single fan channel, the board defaults apply again
func (s *restService) clearFanLimits(c echo.Context) error {
	id := c.Param(urlParamId)
	fanIndex, err := s.controller.FanIndex(id)
	if err != nil {
		return returnNotFound(c, id)
	}

	s.controller.ConfigureFanLimits(fanIndex, 0, 0)
	return c.JSONPretty(http.StatusOK, s.controller.Channels()[fanIndex], indentationChar)
}

func (s *restService) setFanMode(c echo.Context) error {
	id := c.Param(urlParamId)
	fanIndex, err := s.controller.FanIndex(id)
	if err != nil {
		return returnNotFound(c, id)
	}

	var request modeRequest
	if err := c.Bind(&request); err != nil {
		return returnBadRequest(c, err)
	}
	mode, err := controller.ParseControlMode(request.Mode)
	if err != nil {
		return returnBadRequest(c, err)
	}
	if err := s.controller.SetMode(fanIndex, mode, request.Rpm); err != nil {
		return returnBadRequest(c, err)
	}
	return c.JSONPretty(http.StatusOK, s.controller.Channels()[fanIndex], indentationChar)
}

func (s *restService) getDecisions(c echo.Context) error {
	return c.JSONPretty(http.StatusOK, s.controller.Decisions(), indentationChar)
}

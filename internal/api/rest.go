package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/markusressel/ecfan/internal/controller"
	"github.com/markusressel/ecfan/internal/thermal"
	"github.com/prometheus/client_golang/prometheus"
)

// Controller is the part of the fan controller exposed by the REST api
type Controller interface {
	FanIndex(id string) (int, error)
	Channels() []controller.ChannelStatus
	Decisions() []controller.ControlDecision
	Zones() []thermal.ZoneDemand

	ConfigureFanLimits(fanIndex int, minRpm int, maxRpm int)
	SetMode(fanIndex int, mode controller.ControlMode, manualRpm int) error

	ChipsetState() controller.ChipsetState
	OnResume()
	OnSuspend()

	SetThermalLog(enabled bool)
	ThermalLogEnabled() bool
}

// ModuleSource reports the currently installed hardware module
type ModuleSource interface {
	Current() string
}

type restService struct {
	controller Controller
	modules    ModuleSource
}

// CreateRestService creates the REST api, request metrics are registered with the given registerer
func CreateRestService(ctrl Controller, modules ModuleSource, registerer prometheus.Registerer) *echo.Echo {
	echoRest := echo.New()
	echoRest.HideBanner = true

	// Root level middleware
	echoRest.Pre(middleware.AddTrailingSlash())

	echoRest.Use(middleware.Secure())
	echoRest.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "ecfan",
		Subsystem:  "api",
		Registerer: registerer,
	}))
	echoRest.Use(middleware.Recover())

	service := &restService{
		controller: ctrl,
		modules:    modules,
	}

	echoRest.GET("/alive/", isAlive)

	service.registerFanEndpoints(echoRest)
	service.registerZoneEndpoints(echoRest)
	service.registerChipsetEndpoints(echoRest)
	registerSensorEndpoints(echoRest)

	return echoRest
}

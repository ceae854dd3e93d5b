package internal

import (
	"fmt"

	"github.com/markusressel/ecfan/internal/configuration"
	"github.com/markusressel/ecfan/internal/controller"
	"github.com/markusressel/ecfan/internal/curves"
	"github.com/markusressel/ecfan/internal/fans"
	"github.com/markusressel/ecfan/internal/filter"
	"github.com/markusressel/ecfan/internal/hwmon"
	"github.com/markusressel/ecfan/internal/power"
	"github.com/markusressel/ecfan/internal/sensors"
	"github.com/markusressel/ecfan/internal/thermal"
	"github.com/markusressel/ecfan/internal/ui"
)

// Board holds every object created from the configuration
type Board struct {
	Sensors    []sensors.Sensor
	Gates      map[string]power.Gate
	Zones      []*thermal.Zone
	Fans       []fans.Fan
	Controller *controller.Controller
}

// CreateBoard resolves hwmon devices and creates sensors, power gates, zones,
// fans and the controller described by the given configuration
func CreateBoard(config *configuration.Configuration, controllers []*hwmon.HwMonController) (*Board, error) {
	board := &Board{
		Gates: map[string]power.Gate{},
	}

	for idx := range config.Sensors {
		sensorConfig := &config.Sensors[idx]
		if sensorConfig.HwMon != nil {
			if err := hwmon.UpdateSensorConfigFromHwMonControllers(controllers, sensorConfig); err != nil {
				return nil, fmt.Errorf("sensor %s: %w. Run 'ecfan detect' and correct any mistake", sensorConfig.ID, err)
			}
		}

		sensor, err := sensors.NewSensor(*sensorConfig)
		if err != nil {
			return nil, err
		}
		sensors.SensorMap.Set(sensorConfig.ID, sensor)
		board.Sensors = append(board.Sensors, sensor)
	}

	for _, powerConfig := range config.Power {
		gate, err := power.NewGate(powerConfig)
		if err != nil {
			return nil, err
		}
		board.Gates[powerConfig.ID] = gate
	}

	var inputs []controller.ZoneInput
	for _, zoneConfig := range config.Zones {
		zone, input, err := board.createZone(zoneConfig)
		if err != nil {
			return nil, err
		}
		board.Zones = append(board.Zones, zone)
		inputs = append(inputs, input)
	}

	var channels []controller.FanChannelConfig
	for idx := range config.Fans {
		fanConfig := &config.Fans[idx]
		if fanConfig.HwMon != nil {
			if err := hwmon.UpdateFanConfigFromHwMonControllers(controllers, fanConfig); err != nil {
				return nil, fmt.Errorf("fan %s: %w. Run 'ecfan detect' and correct any mistake", fanConfig.ID, err)
			}
		}

		fan, err := fans.NewFan(*fanConfig)
		if err != nil {
			return nil, err
		}
		mode, err := controller.ParseControlMode(fanConfig.Mode)
		if err != nil {
			return nil, fmt.Errorf("fan %s: %w", fanConfig.ID, err)
		}
		board.Fans = append(board.Fans, fan)
		channels = append(channels, controller.FanChannelConfig{
			Fan:       fan,
			Limits:    curves.Limits{MinRpm: fanConfig.MinRpm, MaxRpm: fanConfig.MaxRpm},
			StartRpm:  fanConfig.StartRpm,
			Mode:      mode,
			ManualRpm: fanConfig.ManualRpm,
		})
	}

	var logSensors []controller.TemperatureSensor
	for _, id := range config.ThermalLog.Sensors {
		sensor, err := sensors.GetSensor(id)
		if err != nil {
			return nil, fmt.Errorf("thermalLog: %w", err)
		}
		logSensors = append(logSensors, sensor)
	}

	ctrl, err := controller.New(controller.Config{
		Zones:             board.Zones,
		ZoneInputs:        inputs,
		Fans:              channels,
		StopDelay:         config.StopDelay,
		Hysteresis:        config.StopHysteresis,
		ThermalLogSensors: logSensors,
	})
	if err != nil {
		return nil, err
	}
	board.Controller = ctrl

	ui.Debug("Created board with %d sensors, %d zones and %d fans", len(board.Sensors), len(board.Zones), len(board.Fans))
	return board, nil
}

func (board *Board) createZone(config configuration.ZoneConfig) (*thermal.Zone, controller.ZoneInput, error) {
	var input controller.ZoneInput

	sensor, err := sensors.GetSensor(config.Sensor)
	if err != nil {
		return nil, input, fmt.Errorf("zone %s: %w", config.ID, err)
	}
	input.Sensor = sensor

	zone := &thermal.Zone{
		ID: config.ID,
		Threshold: thermal.Threshold{
			Off: config.OffThreshold.MilliKelvin(),
			Max: config.MaxThreshold.MilliKelvin(),
		},
	}

	if config.Filtered != nil {
		dieSensor, err := sensors.GetSensor(config.Filtered.Sensor)
		if err != nil {
			return nil, input, fmt.Errorf("zone %s: %w", config.ID, err)
		}
		input.DieSensor = dieSensor
		zone.Filtered = &thermal.FilteredInput{
			Threshold: thermal.Threshold{
				Off: config.Filtered.OffThreshold.MilliKelvin(),
				Max: config.Filtered.MaxThreshold.MilliKelvin(),
			},
			Filter: filter.NewBiquad(config.Filtered.Coefficients.Resolve()),
		}
	}

	if len(config.Power) > 0 {
		gate, ok := board.Gates[config.Power]
		if !ok {
			return nil, input, fmt.Errorf("zone %s: no power gate with id '%s'", config.ID, config.Power)
		}
		zone.Gate = gate
	}

	return zone, input, nil
}

package configuration

import (
	"errors"
	"fmt"
	"strings"

	"github.com/looplab/tarjan"
	"github.com/markusressel/ecfan/internal/ui"
	"golang.org/x/exp/slices"
)

func Validate() error {
	return validateConfig(&CurrentConfig)
}

func validateConfig(config *Configuration) error {
	if config.TickRate <= 0 {
		return fmt.Errorf("tickRate must be > 0, is: %v", config.TickRate)
	}
	err := validateSensors(config)
	if err != nil {
		return err
	}
	err = validatePower(config)
	if err != nil {
		return err
	}
	err = validateZones(config)
	if err != nil {
		return err
	}
	err = validateFans(config)
	if err != nil {
		return err
	}
	err = validateModules(config)
	if err != nil {
		return err
	}
	return validateThermalLog(config)
}

func validateSensors(config *Configuration) error {
	graph := make(map[interface{}][]interface{})
	var ids []string

	for _, sensorConfig := range config.Sensors {
		if len(sensorConfig.ID) <= 0 {
			return errors.New("sensor: missing id")
		}
		if slices.Contains(ids, sensorConfig.ID) {
			return fmt.Errorf("duplicate sensor id detected: %s", sensorConfig.ID)
		}
		ids = append(ids, sensorConfig.ID)

		subConfigs := 0
		if sensorConfig.File != nil {
			subConfigs++
		}
		if sensorConfig.HwMon != nil {
			subConfigs++
		}
		if sensorConfig.I2c != nil {
			subConfigs++
		}
		if sensorConfig.Virtual != nil {
			subConfigs++
		}
		if subConfigs > 1 {
			return fmt.Errorf("sensor %s: only one sensor type can be used per sensor definition block", sensorConfig.ID)
		}
		if subConfigs <= 0 {
			return fmt.Errorf("sensor %s: sub-configuration for sensor is missing, use one of: file | hwmon | i2c | virtual", sensorConfig.ID)
		}

		if !isSensorConfigInUse(sensorConfig, config) {
			ui.Warning("Unused sensor configuration: %s", sensorConfig.ID)
		}

		if sensorConfig.File != nil {
			if len(sensorConfig.File.Path) <= 0 {
				return fmt.Errorf("sensor %s: no file path provided", sensorConfig.ID)
			}
			supportedUnits := []string{"", UnitMilliCelsius, UnitMilliKelvin}
			if !slices.Contains(supportedUnits, sensorConfig.File.Unit) {
				return fmt.Errorf("sensor %s: unsupported unit '%s', use one of: %s", sensorConfig.ID, sensorConfig.File.Unit, strings.Join(supportedUnits[1:], " | "))
			}
		}

		if sensorConfig.HwMon != nil {
			if sensorConfig.HwMon.Index <= 0 && sensorConfig.HwMon.Channel <= 0 {
				return fmt.Errorf("sensor %s: invalid index or channel, one of them must be >= 1", sensorConfig.ID)
			}
		}

		if sensorConfig.I2c != nil {
			if sensorConfig.I2c.Address <= 0 || sensorConfig.I2c.Address > 0x7f {
				return fmt.Errorf("sensor %s: invalid i2c address 0x%x", sensorConfig.ID, sensorConfig.I2c.Address)
			}
		}

		if sensorConfig.Virtual != nil {
			supportedTypes := []string{FunctionMinimum, FunctionAverage, FunctionMaximum}
			if !slices.Contains(supportedTypes, sensorConfig.Virtual.Function) {
				return fmt.Errorf("sensor %s: unsupported function type '%s', use one of: %s", sensorConfig.ID, sensorConfig.Virtual.Function, strings.Join(supportedTypes, " | "))
			}
			if len(sensorConfig.Virtual.Sensors) <= 0 {
				return fmt.Errorf("sensor %s: virtual sensor needs at least one input", sensorConfig.ID)
			}

			var connections []interface{}
			for _, input := range sensorConfig.Virtual.Sensors {
				if input == sensorConfig.ID {
					return fmt.Errorf("sensor %s: a sensor cannot reference itself", sensorConfig.ID)
				}
				if !sensorIdExists(input, config) {
					return fmt.Errorf("sensor %s: no sensor definition with id '%s' found", sensorConfig.ID, input)
				}
				connections = append(connections, input)
			}
			graph[sensorConfig.ID] = connections
		}
	}

	return validateNoLoops(graph)
}

func validateNoLoops(graph map[interface{}][]interface{}) error {
	output := tarjan.Connections(graph)
	for _, items := range output {
		if len(items) > 1 {
			return fmt.Errorf("you have created a sensor dependency cycle: %v", items)
		}
	}
	return nil
}

func isSensorConfigInUse(config SensorConfig, root *Configuration) bool {
	for _, zone := range root.Zones {
		if zone.Sensor == config.ID {
			return true
		}
		if zone.Filtered != nil && zone.Filtered.Sensor == config.ID {
			return true
		}
	}
	for _, sensor := range root.Sensors {
		if sensor.Virtual != nil && slices.Contains(sensor.Virtual.Sensors, config.ID) {
			return true
		}
	}
	return slices.Contains(root.ThermalLog.Sensors, config.ID)
}

func sensorIdExists(sensorId string, config *Configuration) bool {
	return slices.ContainsFunc(config.Sensors, func(s SensorConfig) bool {
		return s.ID == sensorId
	})
}

func validatePower(config *Configuration) error {
	var ids []string
	for _, powerConfig := range config.Power {
		if len(powerConfig.ID) <= 0 {
			return errors.New("power: missing id")
		}
		if slices.Contains(ids, powerConfig.ID) {
			return fmt.Errorf("duplicate power id detected: %s", powerConfig.ID)
		}
		ids = append(ids, powerConfig.ID)

		subConfigs := 0
		if powerConfig.Static != nil {
			subConfigs++
		}
		if powerConfig.File != nil {
			subConfigs++
		}
		if powerConfig.Gpio != nil {
			subConfigs++
		}
		if subConfigs > 1 {
			return fmt.Errorf("power %s: only one power type can be used per power definition block", powerConfig.ID)
		}
		if subConfigs <= 0 {
			return fmt.Errorf("power %s: sub-configuration for power is missing, use one of: static | file | gpio", powerConfig.ID)
		}

		if powerConfig.File != nil && len(powerConfig.File.Path) <= 0 {
			return fmt.Errorf("power %s: no file path provided", powerConfig.ID)
		}
		if powerConfig.Gpio != nil {
			if len(powerConfig.Gpio.Chip) <= 0 {
				return fmt.Errorf("power %s: no gpio chip provided", powerConfig.ID)
			}
			if powerConfig.Gpio.Line < 0 {
				return fmt.Errorf("power %s: invalid gpio line, must be >= 0", powerConfig.ID)
			}
		}
	}
	return nil
}

func validateThreshold(zoneId string, off Temperature, max Temperature) error {
	if off != 0 && max != 0 && off >= max {
		return fmt.Errorf("zone %s: offThreshold (%d mK) must be lower than maxThreshold (%d mK)", zoneId, off, max)
	}
	return nil
}

func validateZones(config *Configuration) error {
	if len(config.Zones) <= 0 {
		return errors.New("no thermal zones configured")
	}

	var ids []string
	for idx, zoneConfig := range config.Zones {
		if len(zoneConfig.ID) <= 0 {
			return fmt.Errorf("zone #%d: missing id", idx)
		}
		if slices.Contains(ids, zoneConfig.ID) {
			return fmt.Errorf("duplicate zone id detected: %s", zoneConfig.ID)
		}
		ids = append(ids, zoneConfig.ID)

		if len(zoneConfig.Sensor) <= 0 {
			return fmt.Errorf("zone %s: missing sensor", zoneConfig.ID)
		}
		if !sensorIdExists(zoneConfig.Sensor, config) {
			return fmt.Errorf("zone %s: no sensor definition with id '%s' found", zoneConfig.ID, zoneConfig.Sensor)
		}
		err := validateThreshold(zoneConfig.ID, zoneConfig.OffThreshold, zoneConfig.MaxThreshold)
		if err != nil {
			return err
		}

		if zoneConfig.Filtered != nil {
			filtered := zoneConfig.Filtered
			if !sensorIdExists(filtered.Sensor, config) {
				return fmt.Errorf("zone %s: no sensor definition with id '%s' found", zoneConfig.ID, filtered.Sensor)
			}
			err := validateThreshold(zoneConfig.ID, filtered.OffThreshold, filtered.MaxThreshold)
			if err != nil {
				return err
			}
			supportedPresets := []string{"", CoefficientsPresetApu, CoefficientsPresetGpu}
			if !slices.Contains(supportedPresets, filtered.Coefficients.Preset) {
				return fmt.Errorf("zone %s: unsupported filter preset '%s', use one of: %s", zoneConfig.ID, filtered.Coefficients.Preset, strings.Join(supportedPresets[1:], " | "))
			}
			if filtered.Coefficients.Scale < 0 {
				return fmt.Errorf("zone %s: filter scale must be > 0", zoneConfig.ID)
			}
			if idx == 0 && len(config.Zones) == 1 {
				ui.Warning("Zone %s: filtered input is ignored on single zone boards", zoneConfig.ID)
			}
		}

		if len(zoneConfig.Power) > 0 {
			if idx == 0 {
				return fmt.Errorf("zone %s: the primary zone cannot be power gated", zoneConfig.ID)
			}
			if !slices.ContainsFunc(config.Power, func(p PowerConfig) bool { return p.ID == zoneConfig.Power }) {
				return fmt.Errorf("zone %s: no power definition with id '%s' found", zoneConfig.ID, zoneConfig.Power)
			}
		}
	}
	return nil
}

func validateFans(config *Configuration) error {
	if len(config.Fans) <= 0 {
		return errors.New("no fans configured")
	}

	var ids []string
	for _, fanConfig := range config.Fans {
		if len(fanConfig.ID) <= 0 {
			return errors.New("fan: missing id")
		}
		if slices.Contains(ids, fanConfig.ID) {
			return fmt.Errorf("duplicate fan id detected: %s", fanConfig.ID)
		}
		ids = append(ids, fanConfig.ID)

		subConfigs := 0
		if fanConfig.File != nil {
			subConfigs++
		}
		if fanConfig.HwMon != nil {
			subConfigs++
		}
		if subConfigs > 1 {
			return fmt.Errorf("fan %s: only one fan type can be used per fan definition block", fanConfig.ID)
		}
		if subConfigs <= 0 {
			return fmt.Errorf("fan %s: sub-configuration for fan is missing, use one of: file | hwmon", fanConfig.ID)
		}

		if fanConfig.MinRpm <= 0 || fanConfig.MaxRpm <= 0 {
			return fmt.Errorf("fan %s: minRpm and maxRpm must be > 0", fanConfig.ID)
		}
		if fanConfig.MinRpm > fanConfig.MaxRpm {
			return fmt.Errorf("fan %s: minRpm (%d) must not be greater than maxRpm (%d)", fanConfig.ID, fanConfig.MinRpm, fanConfig.MaxRpm)
		}
		if fanConfig.StartRpm < 0 {
			return fmt.Errorf("fan %s: startRpm must be >= 0", fanConfig.ID)
		}

		supportedModes := []string{"", FanModeAuto, FanModeManual}
		if !slices.Contains(supportedModes, fanConfig.Mode) {
			return fmt.Errorf("fan %s: unsupported mode '%s', use one of: %s", fanConfig.ID, fanConfig.Mode, strings.Join(supportedModes[1:], " | "))
		}

		if fanConfig.File != nil {
			if len(fanConfig.File.RpmInput) <= 0 || len(fanConfig.File.RpmTarget) <= 0 {
				return fmt.Errorf("fan %s: rpmInput and rpmTarget paths are required", fanConfig.ID)
			}
		}

		if fanConfig.HwMon != nil {
			if fanConfig.HwMon.Index <= 0 && fanConfig.HwMon.Channel <= 0 {
				return fmt.Errorf("fan %s: invalid index or channel, one of them must be >= 1", fanConfig.ID)
			}
		}
	}

	return nil
}

func validateModules(config *Configuration) error {
	var ids []string
	for _, profile := range config.Modules.Profiles {
		if len(profile.ID) <= 0 {
			return errors.New("module profile: missing id")
		}
		if slices.Contains(ids, profile.ID) {
			return fmt.Errorf("duplicate module profile id detected: %s", profile.ID)
		}
		ids = append(ids, profile.ID)

		for _, limit := range profile.Fans {
			if !slices.ContainsFunc(config.Fans, func(f FanConfig) bool { return f.ID == limit.Fan }) {
				return fmt.Errorf("module profile %s: no fan definition with id '%s' found", profile.ID, limit.Fan)
			}
			if limit.MinRpm < 0 || limit.MaxRpm < 0 {
				return fmt.Errorf("module profile %s: fan limits must be >= 0", profile.ID)
			}
			if limit.MinRpm > 0 && limit.MaxRpm > 0 && limit.MinRpm > limit.MaxRpm {
				return fmt.Errorf("module profile %s: minRpm (%d) must not be greater than maxRpm (%d)", profile.ID, limit.MinRpm, limit.MaxRpm)
			}
		}
	}

	if len(config.Modules.Profiles) > 0 && config.Modules.File == nil {
		ui.Warning("Module profiles are configured, but no module detection source")
	}
	if config.Modules.File != nil && len(config.Modules.File.Path) <= 0 {
		return errors.New("modules: no file path provided")
	}
	return nil
}

func validateThermalLog(config *Configuration) error {
	for _, sensorId := range config.ThermalLog.Sensors {
		if !sensorIdExists(sensorId, config) {
			return fmt.Errorf("thermalLog: no sensor definition with id '%s' found", sensorId)
		}
	}
	return nil
}

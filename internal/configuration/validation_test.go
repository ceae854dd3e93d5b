package configuration

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func createValidConfig() Configuration {
	return Configuration{
		TickRate: time.Second,
		Sensors: []SensorConfig{
			{ID: "apu", File: &FileSensorConfig{Path: "/tmp/apu"}},
			{ID: "apu_die", File: &FileSensorConfig{Path: "/tmp/apu_die", Unit: UnitMilliKelvin}},
			{ID: "gpu", File: &FileSensorConfig{Path: "/tmp/gpu"}},
			{ID: "gpu_die", File: &FileSensorConfig{Path: "/tmp/gpu_die"}},
		},
		Power: []PowerConfig{
			{ID: "gpu", Static: &StaticPowerConfig{Powered: true}},
		},
		Zones: []ZoneConfig{
			{
				ID:           "apu",
				Sensor:       "apu",
				OffThreshold: 323000,
				MaxThreshold: 358000,
				Filtered: &FilteredZoneConfig{
					Sensor:       "apu_die",
					OffThreshold: 333000,
					MaxThreshold: 368000,
				},
			},
			{
				ID:           "gpu",
				Sensor:       "gpu",
				OffThreshold: 323000,
				MaxThreshold: 358000,
				Power:        "gpu",
			},
		},
		Fans: []FanConfig{
			{
				ID:       "fan0",
				MinRpm:   1800,
				MaxRpm:   6000,
				StartRpm: 2500,
				File:     &FileFanConfig{RpmInput: "/tmp/rpm", RpmTarget: "/tmp/target"},
			},
		},
		Modules: ModulesConfig{
			File: &FileModuleSourceConfig{Path: "/tmp/module"},
			Profiles: []ModuleProfileConfig{
				{ID: "dgpu", Fans: []FanLimitConfig{{Fan: "fan0", MinRpm: 2000, MaxRpm: 5500}}},
			},
		},
	}
}

func TestValidateValidConfig(t *testing.T) {
	// GIVEN
	config := createValidConfig()

	// WHEN
	err := validateConfig(&config)

	// THEN
	assert.NoError(t, err)
}

func TestValidateTickRate(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.TickRate = 0

	// WHEN
	err := validateConfig(&config)

	// THEN
	assert.EqualError(t, err, "tickRate must be > 0, is: 0s")
}

func TestValidateDuplicateSensorId(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.Sensors = append(config.Sensors, SensorConfig{ID: "apu", File: &FileSensorConfig{Path: "/tmp/x"}})

	// WHEN
	err := validateConfig(&config)

	// THEN
	assert.EqualError(t, err, "duplicate sensor id detected: apu")
}

func TestValidateSensorSubConfigIsMissing(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.Sensors[0].File = nil

	// WHEN
	err := validateConfig(&config)

	// THEN
	assert.EqualError(t, err, "sensor apu: sub-configuration for sensor is missing, use one of: file | hwmon | i2c | virtual")
}

func TestValidateSensorMultipleSubConfigs(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.Sensors[0].HwMon = &HwMonSensorConfig{Platform: "k10temp", Index: 1}

	// WHEN
	err := validateConfig(&config)

	// THEN
	assert.EqualError(t, err, "sensor apu: only one sensor type can be used per sensor definition block")
}

func TestValidateSensorUnit(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.Sensors[0].File.Unit = "fahrenheit"

	// WHEN
	err := validateConfig(&config)

	// THEN
	assert.EqualError(t, err, "sensor apu: unsupported unit 'fahrenheit', use one of: millicelsius | millikelvin")
}

func TestValidateI2cAddress(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.Sensors = append(config.Sensors, SensorConfig{ID: "vr", I2c: &I2cSensorConfig{Bus: "1", Address: 0x80}})

	// WHEN
	err := validateConfig(&config)

	// THEN
	assert.EqualError(t, err, "sensor vr: invalid i2c address 0x80")
}

func TestValidateVirtualSensorReferencesItself(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.Sensors = append(config.Sensors, SensorConfig{
		ID:      "hottest",
		Virtual: &VirtualSensorConfig{Function: FunctionMaximum, Sensors: []string{"apu", "hottest"}},
	})

	// WHEN
	err := validateConfig(&config)

	// THEN
	assert.EqualError(t, err, "sensor hottest: a sensor cannot reference itself")
}

func TestValidateVirtualSensorUnknownInput(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.Sensors = append(config.Sensors, SensorConfig{
		ID:      "hottest",
		Virtual: &VirtualSensorConfig{Function: FunctionMaximum, Sensors: []string{"apu", "ssd"}},
	})

	// WHEN
	err := validateConfig(&config)

	// THEN
	assert.EqualError(t, err, "sensor hottest: no sensor definition with id 'ssd' found")
}

func TestValidateVirtualSensorFunction(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.Sensors = append(config.Sensors, SensorConfig{
		ID:      "hottest",
		Virtual: &VirtualSensorConfig{Function: "median", Sensors: []string{"apu"}},
	})

	// WHEN
	err := validateConfig(&config)

	// THEN
	assert.EqualError(t, err, "sensor hottest: unsupported function type 'median', use one of: minimum | average | maximum")
}

func TestValidateVirtualSensorCycle(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.Sensors = append(config.Sensors,
		SensorConfig{
			ID:      "a",
			Virtual: &VirtualSensorConfig{Function: FunctionMaximum, Sensors: []string{"b"}},
		},
		SensorConfig{
			ID:      "b",
			Virtual: &VirtualSensorConfig{Function: FunctionMinimum, Sensors: []string{"a"}},
		},
	)

	// WHEN
	err := validateConfig(&config)

	// THEN
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "you have created a sensor dependency cycle")
}

func TestValidateNoZones(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.Zones = nil

	// WHEN
	err := validateConfig(&config)

	// THEN
	assert.EqualError(t, err, "no thermal zones configured")
}

func TestValidateZoneUnknownSensor(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.Zones[1].Sensor = "dgpu"

	// WHEN
	err := validateConfig(&config)

	// THEN
	assert.EqualError(t, err, "zone gpu: no sensor definition with id 'dgpu' found")
}

func TestValidateZoneThresholdOrder(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.Zones[0].OffThreshold = 358000

	// WHEN
	err := validateConfig(&config)

	// THEN
	assert.EqualError(t, err, fmt.Sprintf("zone apu: offThreshold (%d mK) must be lower than maxThreshold (%d mK)", 358000, 358000))
}

func TestValidateZoneDisabledThresholdIsValid(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.Zones[1].OffThreshold = 0

	// WHEN
	err := validateConfig(&config)

	// THEN
	assert.NoError(t, err)
}

func TestValidateZoneFilterPreset(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.Zones[0].Filtered.Coefficients.Preset = "cpu"

	// WHEN
	err := validateConfig(&config)

	// THEN
	assert.EqualError(t, err, "zone apu: unsupported filter preset 'cpu', use one of: apu | gpu")
}

func TestValidatePrimaryZoneCannotBeGated(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.Zones[0].Power = "gpu"

	// WHEN
	err := validateConfig(&config)

	// THEN
	assert.EqualError(t, err, "zone apu: the primary zone cannot be power gated")
}

func TestValidateZoneUnknownPower(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.Zones[1].Power = "dgpu"

	// WHEN
	err := validateConfig(&config)

	// THEN
	assert.EqualError(t, err, "zone gpu: no power definition with id 'dgpu' found")
}

func TestValidatePowerSubConfigIsMissing(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.Power[0].Static = nil

	// WHEN
	err := validateConfig(&config)

	// THEN
	assert.EqualError(t, err, "power gpu: sub-configuration for power is missing, use one of: static | file | gpio")
}

func TestValidateDuplicateFanId(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.Fans = append(config.Fans, config.Fans[0])

	// WHEN
	err := validateConfig(&config)

	// THEN
	assert.EqualError(t, err, "duplicate fan id detected: fan0")
}

func TestValidateFanSubConfigIsMissing(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.Fans[0].File = nil

	// WHEN
	err := validateConfig(&config)

	// THEN
	assert.EqualError(t, err, "fan fan0: sub-configuration for fan is missing, use one of: file | hwmon")
}

func TestValidateFanLimits(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.Fans[0].MinRpm = 7000

	// WHEN
	err := validateConfig(&config)

	// THEN
	assert.EqualError(t, err, "fan fan0: minRpm (7000) must not be greater than maxRpm (6000)")
}

func TestValidateFanMode(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.Fans[0].Mode = "turbo"

	// WHEN
	err := validateConfig(&config)

	// THEN
	assert.EqualError(t, err, "fan fan0: unsupported mode 'turbo', use one of: auto | manual")
}

func TestValidateModuleProfileUnknownFan(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.Modules.Profiles[0].Fans[0].Fan = "fan1"

	// WHEN
	err := validateConfig(&config)

	// THEN
	assert.EqualError(t, err, "module profile dgpu: no fan definition with id 'fan1' found")
}

func TestValidateModuleProfileLimitOrder(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.Modules.Profiles[0].Fans[0].MinRpm = 6000

	// WHEN
	err := validateConfig(&config)

	// THEN
	assert.EqualError(t, err, "module profile dgpu: minRpm (6000) must not be greater than maxRpm (5500)")
}

func TestValidateThermalLogUnknownSensor(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.ThermalLog.Sensors = []string{"gpu_vr"}

	// WHEN
	err := validateConfig(&config)

	// THEN
	assert.EqualError(t, err, "thermalLog: no sensor definition with id 'gpu_vr' found")
}

func TestCoefficientsConfig_Resolve(t *testing.T) {
	// GIVEN
	explicit := CoefficientsConfig{B0: 1, B1: 2, B2: 1, A1: -100, A2: 50, Scale: 1024}

	// THEN
	assert.EqualValues(t, 34, CoefficientsConfig{}.Resolve().B0)
	assert.EqualValues(t, 59, CoefficientsConfig{Preset: CoefficientsPresetGpu}.Resolve().B0)
	assert.EqualValues(t, 1024, explicit.Resolve().Scale)
	assert.EqualValues(t, -100, explicit.Resolve().A1)
}

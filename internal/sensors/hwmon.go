package sensors

import (
	"fmt"

	"github.com/markusressel/ecfan/internal/configuration"
	"github.com/markusressel/ecfan/internal/util"
)

// HwmonSensor reads a tempN_input file, the path is resolved during startup
type HwmonSensor struct {
	Config configuration.SensorConfig `json:"configuration"`
}

func (sensor HwmonSensor) GetId() string {
	return sensor.Config.ID
}

func (sensor HwmonSensor) GetConfig() configuration.SensorConfig {
	return sensor.Config
}

func (sensor HwmonSensor) GetValue() (int, error) {
	input := sensor.Config.HwMon.TempInput
	if len(input) <= 0 {
		return 0, fmt.Errorf("hwmon sensor %s has not been resolved", sensor.Config.ID)
	}
	value, err := util.ReadIntFromFile(input)
	if err != nil {
		return 0, err
	}
	return util.MilliCelsiusToMilliKelvin(value), nil
}

package sensors

import (
	"github.com/markusressel/ecfan/internal/configuration"
	"github.com/markusressel/ecfan/internal/util"
)

type FileSensor struct {
	Config configuration.SensorConfig `json:"configuration"`
}

func (sensor FileSensor) GetId() string {
	return sensor.Config.ID
}

func (sensor FileSensor) GetConfig() configuration.SensorConfig {
	return sensor.Config
}

func (sensor FileSensor) GetValue() (int, error) {
	value, err := util.ReadIntFromFile(sensor.Config.File.Path)
	if err != nil {
		return 0, err
	}

	if sensor.Config.File.Unit == configuration.UnitMilliKelvin {
		return value, nil
	}
	return util.MilliCelsiusToMilliKelvin(value), nil
}

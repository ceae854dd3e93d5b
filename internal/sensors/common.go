package sensors

import (
	"fmt"

	"github.com/markusressel/ecfan/internal/configuration"
	cmap "github.com/orcaman/concurrent-map/v2"
)

var (
	SensorMap = cmap.New[Sensor]()
)

type Sensor interface {
	GetId() string

	GetConfig() configuration.SensorConfig

	// GetValue returns the current temperature of this sensor in milli-kelvin
	GetValue() (int, error)
}

func NewSensor(config configuration.SensorConfig) (Sensor, error) {
	if config.HwMon != nil {
		return &HwmonSensor{
			Config: config,
		}, nil
	}

	if config.File != nil {
		return &FileSensor{
			Config: config,
		}, nil
	}

	if config.I2c != nil {
		return &I2cSensor{
			Config: config,
		}, nil
	}

	if config.Virtual != nil {
		return &VirtualSensor{
			Config: config,
		}, nil
	}

	return nil, fmt.Errorf("no matching sensor type for sensor: %s", config.ID)
}

// GetSensor returns a registered sensor by id
func GetSensor(id string) (Sensor, error) {
	sensor, ok := SensorMap.Get(id)
	if !ok {
		return nil, fmt.Errorf("no sensor with id '%s' registered", id)
	}
	return sensor, nil
}

// ReadValue reads the current value of a registered sensor
func ReadValue(id string) (int, error) {
	sensor, err := GetSensor(id)
	if err != nil {
		return 0, err
	}
	value, err := sensor.GetValue()
	if err != nil {
		return 0, fmt.Errorf("sensor %s: %w", id, err)
	}
	return value, nil
}

package sensors

import (
	"fmt"

	"github.com/markusressel/ecfan/internal/configuration"
	"golang.org/x/exp/slices"
)

// VirtualSensor combines the values of other registered sensors
type VirtualSensor struct {
	Config configuration.SensorConfig `json:"configuration"`
}

func (sensor VirtualSensor) GetId() string {
	return sensor.Config.ID
}

func (sensor VirtualSensor) GetConfig() configuration.SensorConfig {
	return sensor.Config
}

func (sensor VirtualSensor) GetValue() (int, error) {
	cfg := sensor.Config.Virtual

	var values []int
	for _, id := range cfg.Sensors {
		value, err := ReadValue(id)
		if err != nil {
			return 0, err
		}
		values = append(values, value)
	}
	if len(values) <= 0 {
		return 0, fmt.Errorf("virtual sensor %s has no inputs", sensor.Config.ID)
	}

	switch cfg.Function {
	case configuration.FunctionMinimum:
		return slices.Min(values), nil
	case configuration.FunctionMaximum:
		return slices.Max(values), nil
	case configuration.FunctionAverage:
		sum := 0
		for _, value := range values {
			sum += value
		}
		return sum / len(values), nil
	default:
		return 0, fmt.Errorf("unsupported function type '%s'", cfg.Function)
	}
}

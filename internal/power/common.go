package power

import (
	"fmt"

	"github.com/markusressel/ecfan/internal/configuration"
)

// Gate reports whether a gated heat source (e.g. a discrete GPU) is currently powered
type Gate interface {
	GetId() string

	IsPowered() (bool, error)
}

func NewGate(config configuration.PowerConfig) (Gate, error) {
	if config.Static != nil {
		return &StaticGate{
			Config: config,
		}, nil
	}

	if config.File != nil {
		return &FileGate{
			Config: config,
		}, nil
	}

	if config.Gpio != nil {
		return &GpioGate{
			Config: config,
		}, nil
	}

	return nil, fmt.Errorf("no matching power type for power gate: %s", config.ID)
}

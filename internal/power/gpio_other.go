//go:build !linux

package power

import (
	"errors"

	"github.com/markusressel/ecfan/internal/configuration"
)

type GpioGate struct {
	Config configuration.PowerConfig `json:"configuration"`
}

func (gate GpioGate) GetId() string {
	return gate.Config.ID
}

func (gate GpioGate) IsPowered() (bool, error) {
	return false, errors.New("gpio power gates are only supported on linux")
}

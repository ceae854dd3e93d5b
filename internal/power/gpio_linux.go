//go:build linux

package power

import (
	"fmt"

	"github.com/markusressel/ecfan/internal/configuration"
	"github.com/warthog618/gpiod"
)

type GpioGate struct {
	Config configuration.PowerConfig `json:"configuration"`
}

func (gate GpioGate) GetId() string {
	return gate.Config.ID
}

// IsPowered requests the line for the duration of a single read only,
// so other consumers (e.g. the power sequencing driver) are not blocked
func (gate GpioGate) IsPowered() (bool, error) {
	cfg := gate.Config.Gpio

	options := []gpiod.LineReqOption{gpiod.AsInput, gpiod.WithConsumer("ecfan")}
	if cfg.ActiveLow {
		options = append(options, gpiod.AsActiveLow)
	}

	line, err := gpiod.RequestLine(cfg.Chip, cfg.Line, options...)
	if err != nil {
		return false, fmt.Errorf("power gate %s: unable to request gpio line %s:%d: %w", gate.Config.ID, cfg.Chip, cfg.Line, err)
	}
	defer func() {
		_ = line.Close()
	}()

	value, err := line.Value()
	if err != nil {
		return false, fmt.Errorf("power gate %s: unable to read gpio line %s:%d: %w", gate.Config.ID, cfg.Chip, cfg.Line, err)
	}
	return value == 1, nil
}

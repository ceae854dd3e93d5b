package fans

import (
	"fmt"

	"github.com/markusressel/ecfan/internal/configuration"
)

// Fan is a fan channel with closed loop rpm control
type Fan interface {
	GetId() string

	GetConfig() configuration.FanConfig

	// GetRpm returns the currently measured speed of this fan
	GetRpm() (int, error)

	// SetRpm sets the target speed of this fan, 0 stops the fan
	SetRpm(rpm int) error

	// GetLastSetRpm returns the last target that was applied successfully, -1 if none
	GetLastSetRpm() int
}

const InitialLastSetRpm = -1

func NewFan(config configuration.FanConfig) (Fan, error) {
	if config.HwMon != nil {
		return &HwMonFan{
			Config:     config,
			LastSetRpm: InitialLastSetRpm,
		}, nil
	}

	if config.File != nil {
		return &FileFan{
			Config:     config,
			LastSetRpm: InitialLastSetRpm,
		}, nil
	}

	return nil, fmt.Errorf("no matching fan type for fan: %s", config.ID)
}

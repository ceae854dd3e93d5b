package fans

import (
	"fmt"

	"github.com/markusressel/ecfan/internal/configuration"
	"github.com/markusressel/ecfan/internal/util"
)

// HwMonFan drives a fanN_target attribute, the paths are resolved during startup
type HwMonFan struct {
	Config     configuration.FanConfig `json:"configuration"`
	LastSetRpm int                     `json:"lastSetRpm"`
}

func (fan HwMonFan) GetId() string {
	return fan.Config.ID
}

func (fan HwMonFan) GetConfig() configuration.FanConfig {
	return fan.Config
}

func (fan HwMonFan) GetRpm() (int, error) {
	if len(fan.Config.HwMon.RpmInput) <= 0 {
		return 0, fmt.Errorf("hwmon fan %s has not been resolved", fan.Config.ID)
	}
	return util.ReadIntFromFile(fan.Config.HwMon.RpmInput)
}

func (fan *HwMonFan) SetRpm(rpm int) error {
	if len(fan.Config.HwMon.RpmTarget) <= 0 {
		return fmt.Errorf("hwmon fan %s has not been resolved", fan.Config.ID)
	}
	err := util.WriteIntToFileAtomic(rpm, fan.Config.HwMon.RpmTarget)
	if err != nil {
		return fmt.Errorf("unable to set target rpm of fan %s: %w", fan.Config.ID, err)
	}
	fan.LastSetRpm = rpm
	return nil
}

func (fan HwMonFan) GetLastSetRpm() int {
	return fan.LastSetRpm
}

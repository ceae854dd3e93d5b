package fans

import (
	"fmt"

	"github.com/markusressel/ecfan/internal/configuration"
	"github.com/markusressel/ecfan/internal/util"
)

// FileFan reads the measured rpm from one file and writes the target rpm to another
type FileFan struct {
	Config     configuration.FanConfig `json:"configuration"`
	LastSetRpm int                     `json:"lastSetRpm"`
}

func (fan FileFan) GetId() string {
	return fan.Config.ID
}

func (fan FileFan) GetConfig() configuration.FanConfig {
	return fan.Config
}

func (fan FileFan) GetRpm() (int, error) {
	return util.ReadIntFromFile(fan.Config.File.RpmInput)
}

func (fan *FileFan) SetRpm(rpm int) error {
	err := util.WriteIntToFileAtomic(rpm, fan.Config.File.RpmTarget)
	if err != nil {
		return fmt.Errorf("unable to set target rpm of fan %s: %w", fan.Config.ID, err)
	}
	fan.LastSetRpm = rpm
	return nil
}

func (fan FileFan) GetLastSetRpm() int {
	return fan.LastSetRpm
}

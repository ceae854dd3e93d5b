package power

import (
	"fmt"

	"github.com/markusressel/ecfan/internal/configuration"
	"github.com/markusressel/ecfan/internal/util"
)

// FileGate reads an integer from a file, any non-zero value means powered
type FileGate struct {
	Config configuration.PowerConfig `json:"configuration"`
}

func (gate FileGate) GetId() string {
	return gate.Config.ID
}

func (gate FileGate) IsPowered() (bool, error) {
	value, err := util.ReadIntFromFile(gate.Config.File.Path)
	if err != nil {
		return false, fmt.Errorf("power gate %s: %w", gate.Config.ID, err)
	}
	return value != 0, nil
}

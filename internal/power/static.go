package power

import "github.com/markusressel/ecfan/internal/configuration"

type StaticGate struct {
	Config configuration.PowerConfig `json:"configuration"`
}

func (gate StaticGate) GetId() string {
	return gate.Config.ID
}

func (gate StaticGate) IsPowered() (bool, error) {
	return gate.Config.Static.Powered, nil
}

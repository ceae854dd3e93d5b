package configuration

import "github.com/markusressel/ecfan/internal/filter"

// ZoneConfig describes a heat source. The first zone is the primary one
// (usually the APU), any further zone may take over fan control when it is hotter.
type ZoneConfig struct {
	ID           string      `json:"id"`
	Sensor       string      `json:"sensor"`
	OffThreshold Temperature `json:"offThreshold"`
	MaxThreshold Temperature `json:"maxThreshold"`

	Filtered *FilteredZoneConfig `json:"filtered,omitempty"`

	// Power references a power gate, a zone whose gate reports "off" never governs
	Power string `json:"power"`
}

type FilteredZoneConfig struct {
	Sensor       string      `json:"sensor"`
	OffThreshold Temperature `json:"offThreshold"`
	MaxThreshold Temperature `json:"maxThreshold"`

	Coefficients CoefficientsConfig `json:"coefficients"`
}

const (
	CoefficientsPresetApu = "apu"
	CoefficientsPresetGpu = "gpu"
)

type CoefficientsConfig struct {
	Preset string `json:"preset"`

	B0    int32 `json:"b0"`
	B1    int32 `json:"b1"`
	B2    int32 `json:"b2"`
	A1    int32 `json:"a1"`
	A2    int32 `json:"a2"`
	Scale int32 `json:"scale"`
}

// Resolve returns the filter coefficients, explicit values win over a preset
func (c CoefficientsConfig) Resolve() filter.Coefficients {
	if c.B0 != 0 || c.B1 != 0 || c.B2 != 0 || c.A1 != 0 || c.A2 != 0 {
		return filter.Coefficients{B0: c.B0, B1: c.B1, B2: c.B2, A1: c.A1, A2: c.A2, Scale: c.Scale}
	}
	switch c.Preset {
	case CoefficientsPresetGpu:
		return filter.GpuCoefficients
	default:
		return filter.ApuCoefficients
	}
}

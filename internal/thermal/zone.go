package thermal

import (
	"github.com/markusressel/ecfan/internal/curves"
	"github.com/markusressel/ecfan/internal/filter"
	"github.com/markusressel/ecfan/internal/power"
	"github.com/markusressel/ecfan/internal/util"
)

// Threshold is a pair of milli-kelvin temperatures, a zero value disables the threshold
type Threshold struct {
	Off int `json:"off"`
	Max int `json:"max"`
}

func (t Threshold) Enabled() bool {
	return t.Off != 0 && t.Max != 0
}

// Percent returns the fan demand for the given milli-kelvin sample
func (t Threshold) Percent(sample int) int {
	if !t.Enabled() {
		return curves.MinPercent
	}
	return curves.ThermalFanPercent(t.Off, t.Max, sample)
}

// FilteredInput is the smoothed (die) input of a zone
type FilteredInput struct {
	Threshold Threshold
	Filter    *filter.Biquad
}

type Zone struct {
	ID        string
	Threshold Threshold

	// Filtered is optional
	Filtered *FilteredInput

	// Gate is optional, a zone without a gate is always powered
	Gate power.Gate
}

func (z *Zone) IsPowered() (bool, error) {
	if z.Gate == nil {
		return true, nil
	}
	return z.Gate.IsPowered()
}

// UpdateFilter feeds a milli-kelvin die temperature into the zone filter
func (z *Zone) UpdateFilter(milliKelvin int) {
	if z.Filtered == nil {
		return
	}
	z.Filtered.Filter.Update(util.MilliKelvinToMilliCelsius(milliKelvin))
}

// FilteredTemperature returns the last filter output in milli-kelvin
func (z *Zone) FilteredTemperature() int {
	if z.Filtered == nil {
		return 0
	}
	return util.MilliCelsiusToMilliKelvin(z.Filtered.Filter.Get())
}

func (z *Zone) ResetFilter() {
	if z.Filtered == nil {
		return
	}
	z.Filtered.Filter.Reset()
}

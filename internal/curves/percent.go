package curves

const (
	MinPercent = 0
	MaxPercent = 100
)

// ThermalFanPercent maps a temperature sample onto a [0..100] cooling demand.
// off, max and sample must use the same unit (milli-kelvin throughout ecfan).
// A sample at or below off yields 0, at or above max yields 100,
// anything in between is interpolated linearly and truncated.
func ThermalFanPercent(off int, max int, sample int) int {
	if sample <= off {
		return MinPercent
	}
	if sample >= max {
		return MaxPercent
	}
	return MaxPercent * (sample - off) / (max - off)
}

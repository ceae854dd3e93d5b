package curves

// Limits is the rpm range a fan is driven in
type Limits struct {
	MinRpm int `json:"minRpm"`
	MaxRpm int `json:"maxRpm"`
}

// PercentToRpm converts a cooling demand into an rpm target within limits.
// percent=1 maps to (approximately) MinRpm and percent=100 to exactly MaxRpm,
// the integer division is kept as is on purpose.
func PercentToRpm(limits Limits, percent int) int {
	if percent <= 0 {
		return 0
	}
	return ((percent-1)*limits.MaxRpm + (MaxPercent-percent)*limits.MinRpm) / 99
}

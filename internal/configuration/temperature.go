package configuration

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// Temperature is an absolute temperature in milli-kelvin.
// A value of zero marks a threshold as disabled.
type Temperature int

// MilliKelvin returns the raw value
func (t Temperature) MilliKelvin() int {
	return int(t)
}

// ParseTemperature parses strings like "50", "50C", "49.5°C", "323K" or "323150mK".
// Values without a unit are interpreted as degree celsius, 0°C disables the threshold.
func ParseTemperature(text string) (Temperature, error) {
	text = strings.TrimSpace(text)
	if len(text) <= 0 {
		return 0, nil
	}

	unit := "C"
	number := text
	switch {
	case strings.HasSuffix(text, "mK"):
		unit = "mK"
		number = strings.TrimSuffix(text, "mK")
	case strings.HasSuffix(text, "°C"):
		number = strings.TrimSuffix(text, "°C")
	case strings.HasSuffix(text, "C"):
		number = strings.TrimSuffix(text, "C")
	case strings.HasSuffix(text, "K"):
		unit = "K"
		number = strings.TrimSuffix(text, "K")
	}

	value, err := strconv.ParseFloat(strings.TrimSpace(number), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid temperature '%s': %w", text, err)
	}

	switch unit {
	case "mK":
		return Temperature(math.Round(value)), nil
	case "K":
		return Temperature(math.Round(value * 1000)), nil
	default:
		return celsius(value), nil
	}
}

// the EC uses integer kelvin, so 0°C is 273K
func celsius(value float64) Temperature {
	if value == 0 {
		return 0
	}
	return Temperature(math.Round((value + 273) * 1000))
}

// TemperatureHookFunc returns a mapstructure decode hook for Temperature values
func TemperatureHookFunc() mapstructure.DecodeHookFuncType {
	temperatureType := reflect.TypeOf(Temperature(0))

	return func(
		f reflect.Type,
		t reflect.Type,
		data interface{},
	) (interface{}, error) {
		if t != temperatureType {
			return data, nil
		}

		switch v := data.(type) {
		case string:
			return ParseTemperature(v)
		case int:
			return celsius(float64(v)), nil
		case int64:
			return celsius(float64(v)), nil
		case float64:
			return celsius(v), nil
		case Temperature:
			return v, nil
		}
		return data, nil
	}
}

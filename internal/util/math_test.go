package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCoerce(t *testing.T) {
	assert.Equal(t, 2000, Coerce(1500, 2000, 5000))
	assert.Equal(t, 5000, Coerce(6000, 2000, 5000))
	assert.Equal(t, 3484, Coerce(3484, 2000, 5000))
	assert.Equal(t, 0.5, Coerce(0.5, 0.0, 1.0))
}

func TestTemperatureConversion(t *testing.T) {
	assert.Equal(t, 323000, CelsiusToMilliKelvin(50))
	assert.Equal(t, 322600, MilliCelsiusToMilliKelvin(49600))
	assert.Equal(t, 49600, MilliKelvinToMilliCelsius(322600))
	assert.Equal(t, 49.6, MilliKelvinToCelsius(322600))
}

package sensors

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/markusressel/ecfan/internal/configuration"
	"github.com/stretchr/testify/assert"
	"periph.io/x/conn/v3/i2c/i2ctest"
)

type mockSensor struct {
	ID    string
	Value int
	Err   error
}

func (sensor mockSensor) GetId() string {
	return sensor.ID
}

func (sensor mockSensor) GetConfig() configuration.SensorConfig {
	return configuration.SensorConfig{ID: sensor.ID}
}

func (sensor mockSensor) GetValue() (int, error) {
	return sensor.Value, sensor.Err
}

func registerSensors(t *testing.T, sensors ...Sensor) {
	for _, sensor := range sensors {
		SensorMap.Set(sensor.GetId(), sensor)
	}
	t.Cleanup(func() {
		SensorMap.Clear()
	})
}

func writeFile(t *testing.T, content string) string {
	filePath := filepath.Join(t.TempDir(), "temp1_input")
	err := os.WriteFile(filePath, []byte(content), 0644)
	assert.NoError(t, err)
	return filePath
}

func TestNewSensor(t *testing.T) {
	// GIVEN
	config := configuration.SensorConfig{
		ID:   "apu",
		File: &configuration.FileSensorConfig{Path: "/tmp/apu"},
	}

	// WHEN
	sensor, err := NewSensor(config)

	// THEN
	assert.NoError(t, err)
	assert.IsType(t, &FileSensor{}, sensor)
	assert.Equal(t, "apu", sensor.GetId())
	assert.Equal(t, config, sensor.GetConfig())
}

func TestNewSensor_Unknown(t *testing.T) {
	// WHEN
	sensor, err := NewSensor(configuration.SensorConfig{ID: "apu"})

	// THEN
	assert.Nil(t, sensor)
	assert.EqualError(t, err, "no matching sensor type for sensor: apu")
}

func TestFileSensor_MilliCelsius(t *testing.T) {
	// GIVEN
	sensor := FileSensor{
		Config: configuration.SensorConfig{
			ID:   "apu",
			File: &configuration.FileSensorConfig{Path: writeFile(t, "45500\n")},
		},
	}

	// WHEN
	value, err := sensor.GetValue()

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, 318500, value)
}

func TestFileSensor_MilliKelvin(t *testing.T) {
	// GIVEN
	sensor := FileSensor{
		Config: configuration.SensorConfig{
			ID: "apu",
			File: &configuration.FileSensorConfig{
				Path: writeFile(t, "318500"),
				Unit: configuration.UnitMilliKelvin,
			},
		},
	}

	// WHEN
	value, err := sensor.GetValue()

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, 318500, value)
}

func TestFileSensor_Missing(t *testing.T) {
	// GIVEN
	sensor := FileSensor{
		Config: configuration.SensorConfig{
			ID:   "apu",
			File: &configuration.FileSensorConfig{Path: filepath.Join(t.TempDir(), "missing")},
		},
	}

	// WHEN
	_, err := sensor.GetValue()

	// THEN
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestHwmonSensor_GetValue(t *testing.T) {
	// GIVEN
	sensor := HwmonSensor{
		Config: configuration.SensorConfig{
			ID:    "gpu",
			HwMon: &configuration.HwMonSensorConfig{Platform: "amdgpu", Index: 1, TempInput: writeFile(t, "61000")},
		},
	}

	// WHEN
	value, err := sensor.GetValue()

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, 334000, value)
}

func TestHwmonSensor_Unresolved(t *testing.T) {
	// GIVEN
	sensor := HwmonSensor{
		Config: configuration.SensorConfig{
			ID:    "gpu",
			HwMon: &configuration.HwMonSensorConfig{Platform: "amdgpu", Index: 1},
		},
	}

	// WHEN
	_, err := sensor.GetValue()

	// THEN
	assert.EqualError(t, err, "hwmon sensor gpu has not been resolved")
}

func TestI2cSensor_GetValue(t *testing.T) {
	// GIVEN
	bus := &i2ctest.Playback{
		Ops: []i2ctest.IO{
			{Addr: 0x4c, W: []byte{0x01}, R: []byte{45}},
		},
	}
	sensor := &I2cSensor{
		Config: configuration.SensorConfig{
			ID:  "vr",
			I2c: &configuration.I2cSensorConfig{Bus: "1", Address: 0x4c, Register: 0x01},
		},
		Bus: bus,
	}

	// WHEN
	value, err := sensor.GetValue()

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, 318000, value)
}

func TestI2cSensor_NegativeValue(t *testing.T) {
	// GIVEN
	bus := &i2ctest.Playback{
		Ops: []i2ctest.IO{
			{Addr: 0x4c, W: []byte{0x00}, R: []byte{0xf6}},
		},
	}
	sensor := &I2cSensor{
		Config: configuration.SensorConfig{
			ID:  "ambient",
			I2c: &configuration.I2cSensorConfig{Bus: "1", Address: 0x4c, Register: 0x00},
		},
		Bus: bus,
	}

	// WHEN
	value, err := sensor.GetValue()

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, 263000, value)
}

func TestVirtualSensor_Functions(t *testing.T) {
	// GIVEN
	registerSensors(t,
		mockSensor{ID: "vr", Value: 330000},
		mockSensor{ID: "vram", Value: 340000},
		mockSensor{ID: "apu", Value: 320000},
	)

	expectedInputOutput := map[string]int{
		configuration.FunctionMinimum: 320000,
		configuration.FunctionMaximum: 340000,
		configuration.FunctionAverage: 330000,
	}

	for function, expected := range expectedInputOutput {
		sensor := VirtualSensor{
			Config: configuration.SensorConfig{
				ID: "board",
				Virtual: &configuration.VirtualSensorConfig{
					Function: function,
					Sensors:  []string{"vr", "vram", "apu"},
				},
			},
		}

		// WHEN
		value, err := sensor.GetValue()

		// THEN
		assert.NoError(t, err)
		assert.Equal(t, expected, value, function)
	}
}

func TestVirtualSensor_InputError(t *testing.T) {
	// GIVEN
	registerSensors(t,
		mockSensor{ID: "vr", Value: 330000},
		mockSensor{ID: "vram", Err: errors.New("nack")},
	)
	sensor := VirtualSensor{
		Config: configuration.SensorConfig{
			ID: "board",
			Virtual: &configuration.VirtualSensorConfig{
				Function: configuration.FunctionMaximum,
				Sensors:  []string{"vr", "vram"},
			},
		},
	}

	// WHEN
	_, err := sensor.GetValue()

	// THEN
	assert.EqualError(t, err, "sensor vram: nack")
}

func TestReadValue_UnknownSensor(t *testing.T) {
	// WHEN
	_, err := ReadValue("ssd")

	// THEN
	assert.EqualError(t, err, "no sensor with id 'ssd' registered")
}

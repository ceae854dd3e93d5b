package configuration

type SensorConfig struct {
	ID      string               `json:"id"`
	File    *FileSensorConfig    `json:"file,omitempty"`
	HwMon   *HwMonSensorConfig   `json:"hwmon,omitempty"`
	I2c     *I2cSensorConfig     `json:"i2c,omitempty"`
	Virtual *VirtualSensorConfig `json:"virtual,omitempty"`
}

const (
	UnitMilliCelsius = "millicelsius"
	UnitMilliKelvin  = "millikelvin"
)

type FileSensorConfig struct {
	Path string `json:"path"`
	// Unit of the value in the file, defaults to millicelsius (hwmon convention)
	Unit string `json:"unit"`
}

// HwMonSensorConfig selects a temperature input of a hwmon device, either by
// its (1-based) position or by its channel number (tempN_input)
type HwMonSensorConfig struct {
	Platform  string `json:"platform"`
	Index     int    `json:"index"`
	Channel   int    `json:"channel"`
	TempInput string `json:"tempInput"`
}

// I2cSensorConfig describes a temperature probe exposing whole degree
// celsius in a single byte register (e.g. F75303 local/remote channels)
type I2cSensorConfig struct {
	Bus      string `json:"bus"`
	Address  uint16 `json:"address"`
	Register uint8  `json:"register"`
}

const (
	FunctionAverage = "average"
	FunctionMinimum = "minimum"
	FunctionMaximum = "maximum"
)

type VirtualSensorConfig struct {
	Function string   `json:"function"`
	Sensors  []string `json:"sensors"`
}

package configuration

type PowerConfig struct {
	ID     string             `json:"id"`
	Static *StaticPowerConfig `json:"static,omitempty"`
	File   *FilePowerConfig   `json:"file,omitempty"`
	Gpio   *GpioPowerConfig   `json:"gpio,omitempty"`
}

type StaticPowerConfig struct {
	Powered bool `json:"powered"`
}

// FilePowerConfig reads an integer, any non-zero value means powered
type FilePowerConfig struct {
	Path string `json:"path"`
}

type GpioPowerConfig struct {
	Chip      string `json:"chip"`
	Line      int    `json:"line"`
	ActiveLow bool   `json:"activeLow"`
}

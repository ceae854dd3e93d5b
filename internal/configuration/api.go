package configuration

import "time"

type ApiConfig struct {
	Enabled bool   `json:"enabled"`
	Host    string `json:"host"`
	Port    int    `json:"port"`
}

type StatisticsConfig struct {
	Enabled bool `json:"enabled"`
	Port    int  `json:"port"`
}

type HistoryConfig struct {
	Enabled    bool          `json:"enabled"`
	Interval   time.Duration `json:"interval"`
	MaxEntries int           `json:"maxEntries"`
}

// ThermalLogConfig controls the diagnostic per-tick output
type ThermalLogConfig struct {
	Enabled bool `json:"enabled"`
	// Sensors are printed in front of the control values, e.g. VR and VRAM probes
	Sensors []string `json:"sensors"`
}

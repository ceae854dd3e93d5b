package configuration

import "time"

// ModulesConfig describes how swappable hardware modules (e.g. a GPU bay)
// are detected and which fan limits they require
type ModulesConfig struct {
	PollingRate time.Duration `json:"pollingRate"`

	File *FileModuleSourceConfig `json:"file,omitempty"`

	Profiles []ModuleProfileConfig `json:"profiles"`
}

// FileModuleSourceConfig reads the id of the installed module from a file,
// an empty file means no module is installed
type FileModuleSourceConfig struct {
	Path string `json:"path"`
}

type ModuleProfileConfig struct {
	ID   string           `json:"id"`
	Fans []FanLimitConfig `json:"fans"`
}

type FanLimitConfig struct {
	Fan    string `json:"fan"`
	MinRpm int    `json:"minRpm"`
	MaxRpm int    `json:"maxRpm"`
}

package configuration

const (
	FanModeAuto   = "auto"
	FanModeManual = "manual"
)

type FanConfig struct {
	ID string `json:"id"`
	// MinRpm and MaxRpm are the board defaults for this fan channel
	MinRpm int `json:"minRpm"`
	MaxRpm int `json:"maxRpm"`
	// StartRpm is the speed needed to spin up a stalled fan
	StartRpm int `json:"startRpm"`

	Mode      string `json:"mode"`
	ManualRpm int    `json:"manualRpm"`

	File  *FileFanConfig  `json:"file,omitempty"`
	HwMon *HwMonFanConfig `json:"hwmon,omitempty"`
}

type FileFanConfig struct {
	RpmInput  string `json:"rpmInput"`
	RpmTarget string `json:"rpmTarget"`
}

type HwMonFanConfig struct {
	Platform  string `json:"platform"`
	Index     int    `json:"index"`
	Channel   int    `json:"channel"`
	RpmInput  string `json:"rpmInput"`
	RpmTarget string `json:"rpmTarget"`
}

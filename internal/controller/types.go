package controller

import (
	"fmt"
	"time"

	"github.com/markusressel/ecfan/internal/configuration"
	"github.com/markusressel/ecfan/internal/curves"
)

type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}

type ChipsetState int

const (
	ChipsetOn ChipsetState = iota
	// ChipsetSuspend stops all fans
	ChipsetSuspend
	// ChipsetOff skips control entirely
	ChipsetOff
)

func (s ChipsetState) String() string {
	switch s {
	case ChipsetOn:
		return "on"
	case ChipsetSuspend:
		return "suspend"
	case ChipsetOff:
		return "off"
	default:
		return fmt.Sprintf("unknown(%d)", int(s))
	}
}

type ControlMode string

const (
	// ControlModeAuto derives the fan speed from the thermal zones
	ControlModeAuto ControlMode = configuration.FanModeAuto
	// ControlModeManual applies a fixed rpm
	ControlModeManual ControlMode = configuration.FanModeManual
)

func ParseControlMode(value string) (ControlMode, error) {
	switch value {
	case "", configuration.FanModeAuto:
		return ControlModeAuto, nil
	case configuration.FanModeManual:
		return ControlModeManual, nil
	default:
		return "", fmt.Errorf("unsupported control mode '%s'", value)
	}
}

// TemperatureSensor provides a milli-kelvin temperature
type TemperatureSensor interface {
	GetId() string
	GetValue() (int, error)
}

// FanDriver measures and drives a single fan channel
type FanDriver interface {
	GetId() string
	GetRpm() (int, error)
	SetRpm(rpm int) error
	GetLastSetRpm() int
}

// ZoneInput are the sensors of a thermal zone, DieSensor is optional
type ZoneInput struct {
	Sensor    TemperatureSensor
	DieSensor TemperatureSensor
}

// ControlDecision is the outcome of a single tick of a fan channel
type ControlDecision struct {
	Fan   string    `json:"fan"`
	Time  time.Time `json:"time"`
	State string    `json:"state"`
	Mode  string    `json:"mode"`

	// Zone is the id of the governing zone, empty if no zone was evaluated
	Zone            string `json:"zone"`
	Temp            int    `json:"temp"`
	RawPercent      int    `json:"rawPercent"`
	FilteredPercent int    `json:"filteredPercent"`
	SelectedPercent int    `json:"selectedPercent"`

	Limits      curves.Limits `json:"limits"`
	ActualRpm   int           `json:"actualRpm"`
	ComputedRpm int           `json:"computedRpm"`
	// FinalRpm is the rpm that is active after this tick
	FinalRpm int `json:"finalRpm"`

	StopDeferred bool `json:"stopDeferred"`
	Kicked       bool `json:"kicked"`
	Skipped      bool `json:"skipped"`
}

// ChannelStatus is a snapshot of a fan channel
type ChannelStatus struct {
	Index     int           `json:"index"`
	Fan       string        `json:"fan"`
	Mode      ControlMode   `json:"mode"`
	ManualRpm int           `json:"manualRpm"`
	StartRpm  int           `json:"startRpm"`
	Default   curves.Limits `json:"default"`
	Override  curves.Limits `json:"override"`
	Effective curves.Limits `json:"effective"`
	RpmAvg    float64       `json:"rpmAvg"`
	RpmMax    float64       `json:"rpmMax"`

	LastDecision *ControlDecision `json:"lastDecision,omitempty"`
}

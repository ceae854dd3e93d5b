package governor

import (
	"time"
)

const (
	DefaultStopDelay = 5 * time.Second
	// DefaultHysteresis is the band below the off threshold (milli-kelvin)
	// in which a pending stop keeps being postponed
	DefaultHysteresis = 500
)

// Input describes a single decision of a fan channel
type Input struct {
	Now time.Time

	// TargetRpm is the rpm computed from the governing zone demand
	TargetRpm int
	// ActualRpm is the currently measured fan speed
	ActualRpm int
	// MinRpm is the effective minimum rpm of the fan channel
	MinRpm int
	// StartRpm is the rpm needed to spin up a (nearly) stalled fan
	StartRpm int

	// Temp is the raw temperature of the governing zone (milli-kelvin)
	Temp int
	// OffThreshold of the governing zone (milli-kelvin), zero when disabled
	OffThreshold int
}

type Output struct {
	// Rpm to apply, only valid if StopDeferred is false
	Rpm int
	// Kicked is true if the target was raised to the start rpm
	Kicked bool
	// StopDeferred is true if a stop was requested but the deadline did not expire yet,
	// the previously applied rpm remains active
	StopDeferred bool
}

// Governor delays fan stops and enforces a kick-start floor for a single fan channel.
// It is not safe for concurrent use.
type Governor struct {
	StopDelay  time.Duration
	Hysteresis int

	deadline time.Time
}

func NewGovernor(stopDelay time.Duration, hysteresis int) *Governor {
	if stopDelay <= 0 {
		stopDelay = DefaultStopDelay
	}
	if hysteresis < 0 {
		hysteresis = DefaultHysteresis
	}
	return &Governor{
		StopDelay:  stopDelay,
		Hysteresis: hysteresis,
	}
}

func (g *Governor) Decide(input Input) Output {
	target := input.TargetRpm

	if target > 0 {
		kicked := false
		if input.ActualRpm < input.MinRpm*9/10 && target < input.StartRpm {
			target = input.StartRpm
			kicked = true
		}
		g.deadline = input.Now.Add(g.StopDelay)
		return Output{Rpm: target, Kicked: kicked}
	}

	if input.OffThreshold != 0 && input.Temp > input.OffThreshold-g.Hysteresis {
		g.deadline = input.Now.Add(g.StopDelay)
	}

	if input.Now.Before(g.deadline) {
		return Output{StopDeferred: true}
	}
	return Output{Rpm: 0}
}

// Deadline returns the point in time after which a requested stop is applied
func (g *Governor) Deadline() time.Time {
	return g.deadline
}

// Reset forgets a pending stop
func (g *Governor) Reset() {
	g.deadline = time.Time{}
}

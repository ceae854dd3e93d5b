package controller

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/markusressel/ecfan/internal/curves"
	"github.com/markusressel/ecfan/internal/governor"
	"github.com/markusressel/ecfan/internal/limits"
	"github.com/markusressel/ecfan/internal/thermal"
	"github.com/markusressel/ecfan/internal/ui"
	"github.com/markusressel/ecfan/internal/util"
)

const defaultRpmWindowSize = 10

// FanChannelConfig describes a single fan channel of the board
type FanChannelConfig struct {
	Fan       FanDriver
	Limits    curves.Limits
	StartRpm  int
	Mode      ControlMode
	ManualRpm int
}

type Config struct {
	Clock Clock

	Zones      []*thermal.Zone
	ZoneInputs []ZoneInput

	Fans []FanChannelConfig

	StopDelay  time.Duration
	Hysteresis int

	RpmWindowSize int

	// ThermalLogSensors are printed in front of the control values
	ThermalLogSensors []TemperatureSensor
	// ThermalLogWriter receives the thermal log lines, defaults to stdout
	ThermalLogWriter func(line string)
}

type fanChannel struct {
	fan       FanDriver
	startRpm  int
	mode      ControlMode
	manualRpm int

	governor  *governor.Governor
	rpmWindow *util.RollingWindow

	lastDecision *ControlDecision
}

// Controller owns all per board control state. Ticks, chipset events and
// limit changes are serialized by a single mutex.
type Controller struct {
	mu sync.Mutex

	clock    Clock
	arbiter  *thermal.Arbiter
	inputs   []ZoneInput
	channels []*fanChannel
	limits   *limits.Registry
	state    ChipsetState

	lastSelection *thermal.Selection

	thermalLog        bool
	thermalLogSensors []TemperatureSensor
	thermalLogWriter  func(line string)
}

func New(config Config) (*Controller, error) {
	if len(config.Zones) <= 0 {
		return nil, errors.New("at least one thermal zone is required")
	}
	if len(config.Zones) != len(config.ZoneInputs) {
		return nil, fmt.Errorf("expected %d zone inputs, got %d", len(config.Zones), len(config.ZoneInputs))
	}
	for idx, input := range config.ZoneInputs {
		if input.Sensor == nil {
			return nil, fmt.Errorf("zone %s: missing sensor", config.Zones[idx].ID)
		}
	}
	if len(config.Fans) <= 0 {
		return nil, errors.New("at least one fan channel is required")
	}

	clock := config.Clock
	if clock == nil {
		clock = SystemClock{}
	}
	windowSize := config.RpmWindowSize
	if windowSize <= 0 {
		windowSize = defaultRpmWindowSize
	}
	writer := config.ThermalLogWriter
	if writer == nil {
		writer = func(line string) {
			ui.Printfln("%s", line)
		}
	}

	var defaults []curves.Limits
	var channels []*fanChannel
	for _, fanConfig := range config.Fans {
		mode := fanConfig.Mode
		if len(mode) <= 0 {
			mode = ControlModeAuto
		}
		defaults = append(defaults, fanConfig.Limits)
		channels = append(channels, &fanChannel{
			fan:       fanConfig.Fan,
			startRpm:  fanConfig.StartRpm,
			mode:      mode,
			manualRpm: fanConfig.ManualRpm,
			governor:  governor.NewGovernor(config.StopDelay, config.Hysteresis),
			rpmWindow: util.CreateRollingWindow(windowSize),
		})
	}

	return &Controller{
		clock:             clock,
		arbiter:           thermal.NewArbiter(config.Zones),
		inputs:            config.ZoneInputs,
		channels:          channels,
		limits:            limits.NewRegistry(defaults),
		state:             ChipsetOn,
		thermalLogSensors: config.ThermalLogSensors,
		thermalLogWriter:  writer,
	}, nil
}

// FanCount returns the number of fan channels
func (c *Controller) FanCount() int {
	return len(c.channels)
}

// FanIndex returns the index of the fan channel with the given id
func (c *Controller) FanIndex(id string) (int, error) {
	for idx, channel := range c.channels {
		if channel.fan.GetId() == id {
			return idx, nil
		}
	}
	return -1, fmt.Errorf("no fan with id '%s'", id)
}

func (c *Controller) checkIndex(fanIndex int) error {
	if fanIndex < 0 || fanIndex >= len(c.channels) {
		return fmt.Errorf("invalid fan index %d, board has %d fan channels", fanIndex, len(c.channels))
	}
	return nil
}

// OnTick runs a full control cycle for a single fan channel. Zone filters
// only advance on the tick of the first channel.
func (c *Controller) OnTick(fanIndex int) (ControlDecision, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.checkIndex(fanIndex); err != nil {
		return ControlDecision{}, err
	}
	channel := c.channels[fanIndex]
	now := c.clock.Now()

	decision := ControlDecision{
		Fan:   channel.fan.GetId(),
		Time:  now,
		State: c.state.String(),
		Mode:  string(channel.mode),
	}

	if c.state == ChipsetOff {
		decision.Skipped = true
		decision.FinalRpm = activeRpm(channel.fan)
		channel.lastDecision = &decision
		return decision, nil
	}

	actualRpm, err := channel.fan.GetRpm()
	if err != nil {
		return decision, fmt.Errorf("fan %s: unable to read rpm: %w", channel.fan.GetId(), err)
	}
	channel.rpmWindow.Append(float64(actualRpm))
	decision.ActualRpm = actualRpm

	effective := c.limits.Effective(fanIndex)
	decision.Limits = effective

	target := 0
	switch {
	case c.state == ChipsetSuspend:
		channel.governor.Reset()
	case channel.mode == ControlModeManual:
		// zone filters keep their cadence while the first channel is in manual mode
		if fanIndex == 0 {
			selection, err := c.evaluateZones(true)
			if err != nil {
				return decision, err
			}
			applyDemand(&decision, selection.GoverningDemand())
		}
		target = channel.manualRpm
		decision.ComputedRpm = target
	default:
		target, err = c.decideAuto(fanIndex, channel, effective, &decision)
		if err != nil {
			return decision, err
		}
	}

	if decision.StopDeferred {
		decision.FinalRpm = activeRpm(channel.fan)
	} else {
		final := clampRpm(target, effective)
		err = channel.fan.SetRpm(final)
		if err != nil {
			return decision, err
		}
		decision.FinalRpm = final
	}

	channel.lastDecision = &decision

	// deferred stops leave the fan untouched and are not logged
	if fanIndex == 0 && c.thermalLog && !decision.StopDeferred {
		c.writeThermalLog(decision)
	}

	return decision, nil
}

func (c *Controller) decideAuto(fanIndex int, channel *fanChannel, effective curves.Limits, decision *ControlDecision) (int, error) {
	selection, err := c.evaluateZones(fanIndex == 0)
	if err != nil {
		return 0, err
	}

	governing := selection.GoverningDemand()
	zone := c.arbiter.Zones()[selection.Governing]
	applyDemand(decision, governing)
	decision.ComputedRpm = curves.PercentToRpm(effective, selection.Percent())

	output := channel.governor.Decide(governor.Input{
		Now:          decision.Time,
		TargetRpm:    decision.ComputedRpm,
		ActualRpm:    decision.ActualRpm,
		MinRpm:       effective.MinRpm,
		StartRpm:     channel.startRpm,
		Temp:         governing.Temp,
		OffThreshold: zone.Threshold.Off,
	})
	decision.StopDeferred = output.StopDeferred
	decision.Kicked = output.Kicked
	return output.Rpm, nil
}

func (c *Controller) evaluateZones(advance bool) (thermal.Selection, error) {
	readings, err := c.readZones()
	if err != nil {
		return thermal.Selection{}, err
	}

	selection, err := c.arbiter.Evaluate(readings, advance)
	if err != nil {
		return thermal.Selection{}, err
	}
	c.lastSelection = &selection
	return selection, nil
}

func applyDemand(decision *ControlDecision, demand thermal.ZoneDemand) {
	decision.Zone = demand.Zone
	decision.Temp = demand.Temp
	decision.RawPercent = demand.RawPercent
	decision.FilteredPercent = demand.FilteredPercent
	decision.SelectedPercent = demand.SelectedPercent
}

func (c *Controller) readZones() ([]thermal.Reading, error) {
	readings := make([]thermal.Reading, len(c.inputs))
	for idx, input := range c.inputs {
		temp, err := input.Sensor.GetValue()
		if err != nil {
			return nil, fmt.Errorf("sensor %s: %w", input.Sensor.GetId(), err)
		}
		readings[idx].Temp = temp

		if input.DieSensor != nil {
			dieTemp, err := input.DieSensor.GetValue()
			if err != nil {
				return nil, fmt.Errorf("sensor %s: %w", input.DieSensor.GetId(), err)
			}
			readings[idx].DieTemp = dieTemp
		}
	}
	return readings, nil
}

// activeRpm returns the rpm the fan was last driven at, 0 if it never was
func activeRpm(fan FanDriver) int {
	return max(fan.GetLastSetRpm(), 0)
}

// clampRpm returns 0 for an explicit stop, otherwise the rpm is constrained to the limits
func clampRpm(rpm int, limits curves.Limits) int {
	if rpm == 0 {
		return 0
	}
	return util.Coerce(rpm, limits.MinRpm, limits.MaxRpm)
}

// OnResume resets all zone filters and resumes thermal control
func (c *Controller) OnResume() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.arbiter.Reset()
	c.state = ChipsetOn
}

// OnSuspend stops all fans until the next resume
func (c *Controller) OnSuspend() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state = ChipsetSuspend
}

// OnShutdown disables control, fans are left untouched
func (c *Controller) OnShutdown() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state = ChipsetOff
}

func (c *Controller) ChipsetState() ChipsetState {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.state
}

// ConfigureFanLimits installs override limits for a single fan channel,
// a zero value keeps the board default of that bound
func (c *Controller) ConfigureFanLimits(fanIndex int, minRpm int, maxRpm int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.limits.Configure(fanIndex, minRpm, maxRpm)
}

// ClearFanLimits removes the overrides of all fan channels
func (c *Controller) ClearFanLimits() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.limits.Clear()
}

func (c *Controller) EffectiveLimits(fanIndex int) (curves.Limits, error) {
	if err := c.checkIndex(fanIndex); err != nil {
		return curves.Limits{}, err
	}
	return c.limits.Effective(fanIndex), nil
}

func (c *Controller) SetMode(fanIndex int, mode ControlMode, manualRpm int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.checkIndex(fanIndex); err != nil {
		return err
	}
	if mode != ControlModeAuto && mode != ControlModeManual {
		return fmt.Errorf("unsupported control mode '%s'", mode)
	}
	if manualRpm < 0 {
		return fmt.Errorf("invalid manual rpm %d", manualRpm)
	}

	channel := c.channels[fanIndex]
	channel.mode = mode
	channel.manualRpm = manualRpm
	channel.governor.Reset()
	return nil
}

// SetManualRpm switches a fan channel to manual control with a fixed rpm
func (c *Controller) SetManualRpm(fanIndex int, rpm int) error {
	return c.SetMode(fanIndex, ControlModeManual, rpm)
}

// SetThermalLog toggles the per tick diagnostic output, the header is
// printed on every enable request
func (c *Controller) SetThermalLog(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if enabled {
		c.thermalLogWriter(c.thermalLogHeader())
	}
	c.thermalLog = enabled
}

func (c *Controller) ThermalLogEnabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.thermalLog
}

func (c *Controller) thermalLogHeader() string {
	columns := []string{"time"}
	for _, sensor := range c.thermalLogSensors {
		columns = append(columns, sensor.GetId())
	}
	for _, zone := range c.arbiter.Zones() {
		columns = append(columns, zone.ID, zone.ID+"_filtered", zone.ID+"_percent")
	}
	columns = append(columns, "zone", "rpm_actual", "rpm_target")
	return strings.Join(columns, "\t")
}

func (c *Controller) writeThermalLog(decision ControlDecision) {
	columns := []string{decision.Time.Format("15:04:05")}
	for _, sensor := range c.thermalLogSensors {
		value, err := sensor.GetValue()
		if err != nil {
			columns = append(columns, "-")
			continue
		}
		columns = append(columns, formatCelsius(value))
	}
	for idx := range c.arbiter.Zones() {
		if c.lastSelection == nil || decision.Zone == "" {
			columns = append(columns, "-", "-", "-")
			continue
		}
		demand := c.lastSelection.Demands[idx]
		filtered := "-"
		if demand.FilteredTemp != 0 {
			filtered = formatCelsius(demand.FilteredTemp)
		}
		columns = append(columns, formatCelsius(demand.Temp), filtered, fmt.Sprintf("%d", demand.SelectedPercent))
	}
	zone := decision.Zone
	if zone == "" {
		zone = "-"
	}
	columns = append(columns, zone, fmt.Sprintf("%d", decision.ActualRpm), fmt.Sprintf("%d", decision.FinalRpm))
	c.thermalLogWriter(strings.Join(columns, "\t"))
}

func formatCelsius(milliKelvin int) string {
	return fmt.Sprintf("%.1f", util.MilliKelvinToCelsius(milliKelvin))
}

// Channels returns a snapshot of all fan channels
func (c *Controller) Channels() []ChannelStatus {
	c.mu.Lock()
	defer c.mu.Unlock()

	result := make([]ChannelStatus, len(c.channels))
	for idx, channel := range c.channels {
		override, _ := c.limits.Override(idx)
		status := ChannelStatus{
			Index:     idx,
			Fan:       channel.fan.GetId(),
			Mode:      channel.mode,
			ManualRpm: channel.manualRpm,
			StartRpm:  channel.startRpm,
			Default:   c.limits.Default(idx),
			Override:  override,
			Effective: c.limits.Effective(idx),
			RpmAvg:    util.GetWindowAvg(channel.rpmWindow),
			RpmMax:    util.GetWindowMax(channel.rpmWindow),
		}
		if channel.lastDecision != nil {
			decision := *channel.lastDecision
			status.LastDecision = &decision
		}
		result[idx] = status
	}
	return result
}

// Decisions returns the last decision of every fan channel that ticked at least once
func (c *Controller) Decisions() []ControlDecision {
	c.mu.Lock()
	defer c.mu.Unlock()

	var result []ControlDecision
	for _, channel := range c.channels {
		if channel.lastDecision != nil {
			result = append(result, *channel.lastDecision)
		}
	}
	return result
}

// Zones returns the demands of the last zone evaluation
func (c *Controller) Zones() []thermal.ZoneDemand {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.lastSelection == nil {
		return nil
	}
	result := make([]thermal.ZoneDemand, len(c.lastSelection.Demands))
	copy(result, c.lastSelection.Demands)
	return result
}

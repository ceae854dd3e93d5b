package modules

import (
	"context"
	"sync"
	"time"

	"github.com/markusressel/ecfan/internal/configuration"
	"github.com/markusressel/ecfan/internal/ui"
	"github.com/markusressel/ecfan/internal/util"
)

const DefaultPollingRate = 2 * time.Second

// Source reports the id of the currently installed hardware module,
// an empty id means no module is installed
type Source interface {
	Detect() (string, error)
}

type FileSource struct {
	Path string
}

func (source FileSource) Detect() (string, error) {
	return util.ReadStringFromFile(source.Path)
}

// LimitTarget receives the fan limits required by a module
type LimitTarget interface {
	FanIndex(id string) (int, error)
	ConfigureFanLimits(fanIndex int, minRpm int, maxRpm int)
	ClearFanLimits()
}

// Detector applies the fan limit profile of the installed module whenever it changes
type Detector struct {
	mu sync.Mutex

	source   Source
	target   LimitTarget
	profiles map[string]configuration.ModuleProfileConfig

	current string
	applied bool
}

func NewDetector(source Source, target LimitTarget, profiles []configuration.ModuleProfileConfig) *Detector {
	profileMap := map[string]configuration.ModuleProfileConfig{}
	for _, profile := range profiles {
		profileMap[profile.ID] = profile
	}
	return &Detector{
		source:   source,
		target:   target,
		profiles: profileMap,
	}
}

// Current returns the id of the last detected module
func (d *Detector) Current() string {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.current
}

// Poll checks the source once and returns true if the installed module changed
func (d *Detector) Poll() (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	id, err := d.source.Detect()
	if err != nil {
		return false, err
	}
	if d.applied && id == d.current {
		return false, nil
	}

	d.current = id
	d.applied = true

	d.target.ClearFanLimits()
	if len(id) <= 0 {
		ui.Info("No hardware module installed, using board fan limits")
		return true, nil
	}

	profile, ok := d.profiles[id]
	if !ok {
		ui.Warning("Unknown hardware module '%s', using board fan limits", id)
		return true, nil
	}

	ui.Info("Hardware module '%s' detected, applying fan limits", id)
	for _, limit := range profile.Fans {
		fanIndex, err := d.target.FanIndex(limit.Fan)
		if err != nil {
			ui.Warning("Module profile %s: %v", profile.ID, err)
			continue
		}
		d.target.ConfigureFanLimits(fanIndex, limit.MinRpm, limit.MaxRpm)
	}
	return true, nil
}

func (d *Detector) Run(ctx context.Context, pollingRate time.Duration) error {
	if pollingRate <= 0 {
		pollingRate = DefaultPollingRate
	}

	if _, err := d.Poll(); err != nil {
		ui.Warning("Unable to detect hardware module: %v", err)
	}

	ticker := time.NewTicker(pollingRate)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if _, err := d.Poll(); err != nil {
				ui.Warning("Unable to detect hardware module: %v", err)
			}
		}
	}
}

package limits

import (
	"fmt"
	"sync"

	"github.com/markusressel/ecfan/internal/curves"
	"github.com/markusressel/ecfan/internal/ui"
)

// Registry holds the rpm limits of every fan channel of a board.
// Overrides are installed by a hardware configuration source (e.g. a detected
// GPU module) and take precedence over the static board defaults.
type Registry struct {
	mu        sync.RWMutex
	defaults  []curves.Limits
	overrides []curves.Limits
}

func NewRegistry(defaults []curves.Limits) *Registry {
	d := make([]curves.Limits, len(defaults))
	copy(d, defaults)
	return &Registry{
		defaults:  d,
		overrides: make([]curves.Limits, len(defaults)),
	}
}

// Count returns the number of fan channels
func (r *Registry) Count() int {
	return len(r.defaults)
}

// Configure installs override limits for a single fan channel.
// A value of zero keeps the board default for that bound.
func (r *Registry) Configure(fanIndex int, minRpm int, maxRpm int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if fanIndex < 0 || fanIndex >= len(r.overrides) {
		ui.Warning("Ignoring fan limits for unknown fan channel %d", fanIndex)
		return
	}
	r.overrides[fanIndex] = curves.Limits{MinRpm: minRpm, MaxRpm: maxRpm}
}

// Clear removes the overrides of all fan channels
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.overrides {
		r.overrides[i] = curves.Limits{}
	}
}

func (r *Registry) EffectiveMin(fanIndex int) int {
	return r.Effective(fanIndex).MinRpm
}

func (r *Registry) EffectiveMax(fanIndex int) int {
	return r.Effective(fanIndex).MaxRpm
}

// Effective returns the currently active limits of the given fan channel
func (r *Registry) Effective(fanIndex int) curves.Limits {
	r.mu.RLock()
	defer r.mu.RUnlock()

	r.checkIndex(fanIndex)

	result := r.defaults[fanIndex]
	override := r.overrides[fanIndex]
	if override.MinRpm != 0 {
		result.MinRpm = override.MinRpm
	}
	if override.MaxRpm != 0 {
		result.MaxRpm = override.MaxRpm
	}
	return result
}

// Default returns the static board limits of the given fan channel
func (r *Registry) Default(fanIndex int) curves.Limits {
	r.checkIndex(fanIndex)
	return r.defaults[fanIndex]
}

// Override returns the installed override of the given fan channel, if any
func (r *Registry) Override(fanIndex int) (curves.Limits, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	r.checkIndex(fanIndex)
	override := r.overrides[fanIndex]
	return override, override.MinRpm != 0 || override.MaxRpm != 0
}

func (r *Registry) checkIndex(fanIndex int) {
	if fanIndex < 0 || fanIndex >= len(r.defaults) {
		panic(fmt.Sprintf("fan channel %d out of range [0..%d)", fanIndex, len(r.defaults)))
	}
}

package thermal

import (
	"fmt"
)

// Reading holds the milli-kelvin samples of a single zone for one tick
type Reading struct {
	Temp    int `json:"temp"`
	DieTemp int `json:"dieTemp"`
}

// ZoneDemand is the evaluated fan demand of a single zone
type ZoneDemand struct {
	Zone            string `json:"zone"`
	Temp            int    `json:"temp"`
	FilteredTemp    int    `json:"filteredTemp"`
	RawPercent      int    `json:"rawPercent"`
	FilteredPercent int    `json:"filteredPercent"`
	SelectedPercent int    `json:"selectedPercent"`
	Powered         bool   `json:"powered"`
}

type Selection struct {
	// Governing is the index of the zone that drives the fans
	Governing int          `json:"governing"`
	Demands   []ZoneDemand `json:"demands"`
}

func (s Selection) Percent() int {
	return s.Demands[s.Governing].SelectedPercent
}

func (s Selection) GoverningDemand() ZoneDemand {
	return s.Demands[s.Governing]
}

// Arbiter selects the dominant zone. The first zone is primary and governs
// unless a later, powered zone demands strictly more.
type Arbiter struct {
	zones []*Zone
}

func NewArbiter(zones []*Zone) *Arbiter {
	return &Arbiter{zones: zones}
}

func (a *Arbiter) Zones() []*Zone {
	return a.zones
}

func (a *Arbiter) singleZone() bool {
	return len(a.zones) == 1
}

// Reset clears the history of all zone filters
func (a *Arbiter) Reset() {
	for _, zone := range a.zones {
		zone.ResetFilter()
	}
}

// Evaluate computes the demand of every zone and selects the governing one.
// With advance set, the die temperatures are fed into the zone filters first,
// this must happen at most once per control period. All collaborators are
// queried before any filter state is touched.
func (a *Arbiter) Evaluate(readings []Reading, advance bool) (Selection, error) {
	if len(readings) != len(a.zones) {
		return Selection{}, fmt.Errorf("expected %d zone readings, got %d", len(a.zones), len(readings))
	}

	powered := make([]bool, len(a.zones))
	for idx, zone := range a.zones {
		if idx == 0 {
			powered[idx] = true
			continue
		}
		p, err := zone.IsPowered()
		if err != nil {
			return Selection{}, fmt.Errorf("zone %s: %w", zone.ID, err)
		}
		powered[idx] = p
	}

	if advance && !a.singleZone() {
		for idx, zone := range a.zones {
			zone.UpdateFilter(readings[idx].DieTemp)
		}
	}

	demands := make([]ZoneDemand, len(a.zones))
	for idx, zone := range a.zones {
		demand := ZoneDemand{
			Zone:       zone.ID,
			Temp:       readings[idx].Temp,
			RawPercent: zone.Threshold.Percent(readings[idx].Temp),
			Powered:    powered[idx],
		}

		if !a.singleZone() && zone.Filtered != nil {
			demand.FilteredTemp = zone.FilteredTemperature()
			demand.FilteredPercent = zone.Filtered.Threshold.Percent(demand.FilteredTemp)
		}
		demand.SelectedPercent = max(demand.RawPercent, demand.FilteredPercent)
		demands[idx] = demand
	}

	governing := 0
	for idx := 1; idx < len(demands); idx++ {
		if demands[idx].Powered && demands[idx].SelectedPercent > demands[governing].SelectedPercent {
			governing = idx
		}
	}

	return Selection{
		Governing: governing,
		Demands:   demands,
	}, nil
}

package statistics

import (
	"strings"
	"testing"

	"github.com/markusressel/ecfan/internal/controller"
	"github.com/markusressel/ecfan/internal/curves"
	"github.com/markusressel/ecfan/internal/thermal"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

type mockControllerSource struct {
	channels []controller.ChannelStatus
	zones    []thermal.ZoneDemand
	state    controller.ChipsetState
}

func (source mockControllerSource) Channels() []controller.ChannelStatus {
	return source.channels
}

func (source mockControllerSource) ChipsetState() controller.ChipsetState {
	return source.state
}

func (source mockControllerSource) Zones() []thermal.ZoneDemand {
	return source.zones
}

func TestControllerCollector(t *testing.T) {
	// GIVEN
	source := mockControllerSource{
		state: controller.ChipsetSuspend,
		channels: []controller.ChannelStatus{
			{
				Fan:       "fan0",
				Effective: curves.Limits{MinRpm: 2000, MaxRpm: 5000},
				LastDecision: &controller.ControlDecision{
					Fan:             "fan0",
					Zone:            "apu",
					SelectedPercent: 50,
					ComputedRpm:     3484,
					FinalRpm:        3484,
				},
			},
			{
				Fan:       "fan1",
				Effective: curves.Limits{MinRpm: 1800, MaxRpm: 6000},
			},
		},
	}
	collector := NewControllerCollector(source)

	expected := `
# HELP ecfan_controller_chipset_state Current chipset state (0 = on, 1 = suspend, 2 = off)
# TYPE ecfan_controller_chipset_state gauge
ecfan_controller_chipset_state 1
# HELP ecfan_controller_final_rpm RPM that is active after the last decision
# TYPE ecfan_controller_final_rpm gauge
ecfan_controller_final_rpm{id="fan0"} 3484
# HELP ecfan_controller_max_rpm Effective maximum RPM of the fan channel
# TYPE ecfan_controller_max_rpm gauge
ecfan_controller_max_rpm{id="fan0"} 5000
ecfan_controller_max_rpm{id="fan1"} 6000
# HELP ecfan_controller_selected_percent Percent demand of the governing zone in the last decision
# TYPE ecfan_controller_selected_percent gauge
ecfan_controller_selected_percent{id="fan0",zone="apu"} 50
`

	// WHEN
	err := testutil.CollectAndCompare(collector, strings.NewReader(expected),
		"ecfan_controller_chipset_state",
		"ecfan_controller_final_rpm",
		"ecfan_controller_max_rpm",
		"ecfan_controller_selected_percent",
	)

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, 10, testutil.CollectAndCount(collector))
}

func TestZoneCollector(t *testing.T) {
	// GIVEN
	source := mockControllerSource{
		zones: []thermal.ZoneDemand{
			{Zone: "apu", Temp: 340500, RawPercent: 50, FilteredTemp: 334000, FilteredPercent: 2, Powered: true},
			{Zone: "gpu", Temp: 300000, Powered: false},
		},
	}
	collector := NewZoneCollector(source)

	expected := `
# HELP ecfan_zone_celsius Temperature of the zone input
# TYPE ecfan_zone_celsius gauge
ecfan_zone_celsius{id="apu",input="filtered"} 61
ecfan_zone_celsius{id="apu",input="raw"} 67.5
ecfan_zone_celsius{id="gpu",input="raw"} 27
# HELP ecfan_zone_powered Whether the zone is powered
# TYPE ecfan_zone_powered gauge
ecfan_zone_powered{id="apu"} 1
ecfan_zone_powered{id="gpu"} 0
`

	// WHEN
	err := testutil.CollectAndCompare(collector, strings.NewReader(expected),
		"ecfan_zone_celsius",
		"ecfan_zone_powered",
	)

	// THEN
	assert.NoError(t, err)
}

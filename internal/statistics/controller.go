package statistics

import (
	"github.com/markusressel/ecfan/internal/controller"
	"github.com/prometheus/client_golang/prometheus"
)

const controllerSubsystem = "controller"

type ControllerSource interface {
	Channels() []controller.ChannelStatus
	ChipsetState() controller.ChipsetState
}

type ControllerCollector struct {
	source ControllerSource

	chipsetState    *prometheus.Desc
	selectedPercent *prometheus.Desc
	computedRpm     *prometheus.Desc
	finalRpm        *prometheus.Desc
	minRpm          *prometheus.Desc
	maxRpm          *prometheus.Desc
	stopDeferred    *prometheus.Desc
	kicked          *prometheus.Desc
}

func NewControllerCollector(source ControllerSource) *ControllerCollector {
	return &ControllerCollector{
		source: source,
		chipsetState: prometheus.NewDesc(prometheus.BuildFQName(namespace, controllerSubsystem, "chipset_state"),
			"Current chipset state (0 = on, 1 = suspend, 2 = off)",
			nil, nil,
		),
		selectedPercent: prometheus.NewDesc(prometheus.BuildFQName(namespace, controllerSubsystem, "selected_percent"),
			"Percent demand of the governing zone in the last decision",
			[]string{"id", "zone"}, nil,
		),
		computedRpm: prometheus.NewDesc(prometheus.BuildFQName(namespace, controllerSubsystem, "computed_rpm"),
			"RPM computed from the governing zone demand",
			[]string{"id"}, nil,
		),
		finalRpm: prometheus.NewDesc(prometheus.BuildFQName(namespace, controllerSubsystem, "final_rpm"),
			"RPM that is active after the last decision",
			[]string{"id"}, nil,
		),
		minRpm: prometheus.NewDesc(prometheus.BuildFQName(namespace, controllerSubsystem, "min_rpm"),
			"Effective minimum RPM of the fan channel",
			[]string{"id"}, nil,
		),
		maxRpm: prometheus.NewDesc(prometheus.BuildFQName(namespace, controllerSubsystem, "max_rpm"),
			"Effective maximum RPM of the fan channel",
			[]string{"id"}, nil,
		),
		stopDeferred: prometheus.NewDesc(prometheus.BuildFQName(namespace, controllerSubsystem, "stop_deferred"),
			"Whether a fan stop is currently deferred by the cool down hysteresis",
			[]string{"id"}, nil,
		),
		kicked: prometheus.NewDesc(prometheus.BuildFQName(namespace, controllerSubsystem, "kicked"),
			"Whether the last decision raised the target to the start RPM",
			[]string{"id"}, nil,
		),
	}
}

func (collector *ControllerCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- collector.chipsetState
	ch <- collector.selectedPercent
	ch <- collector.computedRpm
	ch <- collector.finalRpm
	ch <- collector.minRpm
	ch <- collector.maxRpm
	ch <- collector.stopDeferred
	ch <- collector.kicked
}

// Collect implements required collect function for all prometheus collectors
func (collector *ControllerCollector) Collect(ch chan<- prometheus.Metric) {
	ch <- prometheus.MustNewConstMetric(collector.chipsetState, prometheus.GaugeValue, float64(collector.source.ChipsetState()))

	for _, channel := range collector.source.Channels() {
		fanId := channel.Fan
		ch <- prometheus.MustNewConstMetric(collector.minRpm, prometheus.GaugeValue, float64(channel.Effective.MinRpm), fanId)
		ch <- prometheus.MustNewConstMetric(collector.maxRpm, prometheus.GaugeValue, float64(channel.Effective.MaxRpm), fanId)

		decision := channel.LastDecision
		if decision == nil {
			continue
		}
		ch <- prometheus.MustNewConstMetric(collector.selectedPercent, prometheus.GaugeValue, float64(decision.SelectedPercent), fanId, decision.Zone)
		ch <- prometheus.MustNewConstMetric(collector.computedRpm, prometheus.GaugeValue, float64(decision.ComputedRpm), fanId)
		ch <- prometheus.MustNewConstMetric(collector.finalRpm, prometheus.GaugeValue, float64(decision.FinalRpm), fanId)
		ch <- prometheus.MustNewConstMetric(collector.stopDeferred, prometheus.GaugeValue, boolToFloat(decision.StopDeferred), fanId)
		ch <- prometheus.MustNewConstMetric(collector.kicked, prometheus.GaugeValue, boolToFloat(decision.Kicked), fanId)
	}
}

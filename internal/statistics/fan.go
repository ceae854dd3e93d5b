package statistics

import (
	"github.com/markusressel/ecfan/internal/fans"
	"github.com/prometheus/client_golang/prometheus"
)

const fanSubsystem = "fan"

type FanCollector struct {
	fans      []fans.Fan
	rpm       *prometheus.Desc
	targetRpm *prometheus.Desc
}

func NewFanCollector(fans []fans.Fan) *FanCollector {
	return &FanCollector{
		fans: fans,
		rpm: prometheus.NewDesc(prometheus.BuildFQName(namespace, fanSubsystem, "rpm"),
			"Current RPM value of the fan",
			[]string{"id"}, nil,
		),
		targetRpm: prometheus.NewDesc(prometheus.BuildFQName(namespace, fanSubsystem, "target_rpm"),
			"Last RPM target applied to the fan",
			[]string{"id"}, nil,
		),
	}
}

func (collector *FanCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- collector.rpm
	ch <- collector.targetRpm
}

// Collect implements required collect function for all prometheus collectors
func (collector *FanCollector) Collect(ch chan<- prometheus.Metric) {
	for _, fan := range collector.fans {
		fanId := fan.GetId()
		if rpm, err := fan.GetRpm(); err == nil {
			ch <- prometheus.MustNewConstMetric(collector.rpm, prometheus.GaugeValue, float64(rpm), fanId)
		}
		if target := fan.GetLastSetRpm(); target >= 0 {
			ch <- prometheus.MustNewConstMetric(collector.targetRpm, prometheus.GaugeValue, float64(target), fanId)
		}
	}
}

package statistics

import (
	"github.com/markusressel/ecfan/internal/thermal"
	"github.com/markusressel/ecfan/internal/util"
	"github.com/prometheus/client_golang/prometheus"
)

const subsystemZone = "zone"

type ZoneSource interface {
	Zones() []thermal.ZoneDemand
}

type ZoneCollector struct {
	source ZoneSource

	temperature *prometheus.Desc
	percent     *prometheus.Desc
	powered     *prometheus.Desc
}

func NewZoneCollector(source ZoneSource) *ZoneCollector {
	return &ZoneCollector{
		source: source,
		temperature: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystemZone, "celsius"),
			"Temperature of the zone input",
			[]string{"id", "input"}, nil,
		),
		percent: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystemZone, "percent"),
			"Percent demand of the zone",
			[]string{"id", "input"}, nil,
		),
		powered: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystemZone, "powered"),
			"Whether the zone is powered",
			[]string{"id"}, nil,
		),
	}
}

func (collector *ZoneCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- collector.temperature
	ch <- collector.percent
	ch <- collector.powered
}

// Collect implements required collect function for all prometheus collectors
func (collector *ZoneCollector) Collect(ch chan<- prometheus.Metric) {
	for _, demand := range collector.source.Zones() {
		ch <- prometheus.MustNewConstMetric(collector.temperature, prometheus.GaugeValue, util.MilliKelvinToCelsius(demand.Temp), demand.Zone, "raw")
		ch <- prometheus.MustNewConstMetric(collector.percent, prometheus.GaugeValue, float64(demand.RawPercent), demand.Zone, "raw")
		if demand.FilteredTemp != 0 {
			ch <- prometheus.MustNewConstMetric(collector.temperature, prometheus.GaugeValue, util.MilliKelvinToCelsius(demand.FilteredTemp), demand.Zone, "filtered")
		}
		ch <- prometheus.MustNewConstMetric(collector.percent, prometheus.GaugeValue, float64(demand.FilteredPercent), demand.Zone, "filtered")
		ch <- prometheus.MustNewConstMetric(collector.powered, prometheus.GaugeValue, boolToFloat(demand.Powered), demand.Zone)
	}
}

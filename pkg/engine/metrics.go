package engine

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "greenmeter"

type collectors struct {
	openUnits      prometheus.Gauge
	completed      *prometheus.CounterVec
	unitJoules     prometheus.Histogram
	unitCO2e       prometheus.Histogram
	samplePasses   prometheus.Counter
	samplePassTime prometheus.Histogram
}

func newCollectors(reg prometheus.Registerer) (*collectors, error) {
	c := &collectors{
		openUnits: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "open_units",
			Help:      "Number of measured units currently open",
		}),
		completed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "units_completed_total",
			Help:      "Number of closed units by outcome",
		}, []string{"outcome"}),
		unitJoules: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "unit_energy_joules",
			Help:      "Estimated energy of closed units in Joules",
			Buckets:   prometheus.ExponentialBuckets(0.01, 2, 16),
		}),
		unitCO2e: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "unit_co2e_grams",
			Help:      "Estimated carbon of closed units in grams CO2e",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 12),
		}),
		samplePasses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sample_passes_total",
			Help:      "Number of background sampling passes",
		}),
		samplePassTime: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "sample_pass_duration_seconds",
			Help:      "Latency of one sampling pass over all open units",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 10),
		}),
	}

	for _, col := range []prometheus.Collector{
		c.openUnits, c.completed, c.unitJoules, c.unitCO2e, c.samplePasses, c.samplePassTime,
	} {
		if err := reg.Register(col); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Package metrics exposes the collector's Prometheus metrics. Updates are
// best-effort by construction: nothing here returns an error and a scrape
// failure never touches the collection path.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	CollectionDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "g6_collection_duration_seconds",
			Help:    "Time spent running one collection cycle",
			Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60},
		},
	)

	CollectionCycles = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "g6_collection_cycles_total",
			Help: "Number of collection cycles run",
		},
	)

	CollectionErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "g6_collection_errors_total",
			Help: "Number of collection errors",
		},
		[]string{"index", "expiry"},
	)

	IndexPrice = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "g6_index_price",
			Help: "Current index price",
		},
		[]string{"index"},
	)

	IndexATM = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "g6_index_atm_strike",
			Help: "ATM strike price",
		},
		[]string{"index"},
	)

	OptionsCollected = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "g6_options_collected",
			Help: "Number of options collected",
		},
		[]string{"index", "expiry"},
	)

	PutCallRatio = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "g6_put_call_ratio",
			Help: "Put-Call Ratio",
		},
		[]string{"index", "expiry"},
	)
)

// Init registers all metrics with the default Prometheus registry.
func Init() {
	prometheus.MustRegister(CollectionDuration)
	prometheus.MustRegister(CollectionCycles)
	prometheus.MustRegister(CollectionErrors)
	prometheus.MustRegister(IndexPrice)
	prometheus.MustRegister(IndexATM)
	prometheus.MustRegister(OptionsCollected)
	prometheus.MustRegister(PutCallRatio)
}

// Handler returns the Prometheus scrape handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// RecordCycle records a completed collection cycle.
func RecordCycle(duration time.Duration) {
	CollectionDuration.Observe(duration.Seconds())
	CollectionCycles.Inc()
}

// RecordIndex records the spot and ATM levels for an index.
func RecordIndex(index string, price, atm float64) {
	IndexPrice.WithLabelValues(index).Set(price)
	IndexATM.WithLabelValues(index).Set(atm)
}

// RecordUnit records the outcome of one (index, expiry rule) unit of work.
func RecordUnit(index, expiry string, optionCount int, pcr float64, err error) {
	if err != nil {
		CollectionErrors.WithLabelValues(index, expiry).Inc()
		return
	}

	OptionsCollected.WithLabelValues(index, expiry).Set(float64(optionCount))
	PutCallRatio.WithLabelValues(index, expiry).Set(pcr)
}

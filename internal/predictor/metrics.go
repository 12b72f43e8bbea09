package predictor

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"rulpredict/internal/frame"
	"rulpredict/internal/model"
)

var (
	predictCallsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "rulpredict",
			Subsystem: "predictor",
			Name:      "calls_total",
			Help:      "Total number of Predict calls by outcome",
		},
		[]string{"outcome"},
	)

	predictedRowsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "rulpredict",
			Subsystem: "predictor",
			Name:      "rows_total",
			Help:      "Total number of rows predicted",
		},
	)

	predictDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "rulpredict",
			Subsystem: "predictor",
			Name:      "duration_seconds",
			Help:      "Duration of Predict calls in seconds",
			Buckets:   prometheus.DefBuckets,
		},
	)
)

func init() {
	prometheus.MustRegister(predictCallsTotal, predictedRowsTotal, predictDuration)
}

// outcome maps an error to a low-cardinality label value.
func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case frame.IsMissingColumn(err):
		return "missing_column"
	case frame.IsType(err):
		return "type"
	case model.IsShape(err):
		return "shape"
	default:
		return "error"
	}
}

func observe(err error, rows int, dur time.Duration) {
	predictCallsTotal.WithLabelValues(outcome(err)).Inc()
	predictDuration.Observe(dur.Seconds())
	if err == nil {
		predictedRowsTotal.Add(float64(rows))
	}
}

// WriteTextfile dumps every metric in the default registry to path in the
// Prometheus text format, for pickup by a node_exporter textfile collector.
func WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, prometheus.DefaultGatherer)
}

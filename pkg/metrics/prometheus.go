package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	ticksTotal   prometheus.Counter
	tickDuration prometheus.Histogram
	signalValue  *prometheus.GaugeVec
	riskScore    *prometheus.GaugeVec
	eventsTotal  *prometheus.CounterVec
	errorsTotal  *prometheus.CounterVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		ticksTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "vitalsim_ticks_total",
				Help: "Total number of completed simulation ticks",
			},
		),
		tickDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "vitalsim_tick_duration_seconds",
				Help:    "Duration of one full pipeline tick in seconds",
				Buckets: prometheus.ExponentialBuckets(0.00001, 4, 10),
			},
		),
		signalValue: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "vitalsim_signal_value",
				Help: "Current simulated value per signal",
			},
			[]string{"signal"},
		),
		riskScore: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "vitalsim_risk_score",
				Help: "Smoothed composite risk score per category",
			},
			[]string{"category"},
		),
		eventsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "vitalsim_anomaly_events_total",
				Help: "Anomaly events appended to the log by severity",
			},
			[]string{"severity"},
		),
		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "vitalsim_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
	}
}

// RecordTick records a completed tick and its duration in seconds.
func (r *Recorder) RecordTick(seconds float64) {
	r.ticksTotal.Inc()
	r.tickDuration.Observe(seconds)
}

// RecordSignalValue records the current value for a signal.
func (r *Recorder) RecordSignalValue(name string, value float64) {
	r.signalValue.WithLabelValues(name).Set(value)
}

// RecordRiskScore records the smoothed score for a risk category.
func (r *Recorder) RecordRiskScore(category string, value float64) {
	r.riskScore.WithLabelValues(category).Set(value)
}

// RecordAnomalyEvent records an appended anomaly event.
func (r *Recorder) RecordAnomalyEvent(severity string) {
	r.eventsTotal.WithLabelValues(severity).Inc()
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

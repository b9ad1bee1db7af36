// Package telemetry exposes Prometheus metrics for the timescale
// library. The library itself works without metrics; callers that want
// observability call InitMetrics once at startup and hand the result to
// the clock and leap-second registry.
package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the library.
type Metrics struct {
	// Clock metrics
	Calibrations    *prometheus.CounterVec // labeled by clock id
	CalibrationSkew *prometheus.GaugeVec   // last calibration offset in seconds, by clock id
	ClockReads      *prometheus.CounterVec // labeled by mode (plain|monotonic)

	// Leap-second table metrics
	TableReloads *prometheus.CounterVec // labeled by outcome (ok|error)
	LeapEvents   prometheus.Gauge       // events in the active table

	// Conversion metrics
	ScaleErrors *prometheus.CounterVec // labeled by scale
}

// InitMetrics registers the library's metrics with the given registerer.
// Call once at startup; nil falls back to the default registerer.
func InitMetrics(registry prometheus.Registerer) *Metrics {
	if registry == nil {
		registry = prometheus.DefaultRegisterer
	}
	factory := promauto.With(registry)

	return &Metrics{
		Calibrations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "timescale",
			Subsystem: "clock",
			Name:      "calibrations_total",
			Help:      "Number of monotonic clock calibrations performed",
		}, []string{"clock"}),
		CalibrationSkew: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "timescale",
			Subsystem: "clock",
			Name:      "calibration_offset_seconds",
			Help:      "Wall-minus-tick offset established by the last calibration",
		}, []string{"clock"}),
		ClockReads: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "timescale",
			Subsystem: "clock",
			Name:      "reads_total",
			Help:      "Instants produced by clocks",
		}, []string{"mode"}),
		TableReloads: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "timescale",
			Subsystem: "leapsecond",
			Name:      "table_reloads_total",
			Help:      "Leap-second table reload attempts",
		}, []string{"outcome"}),
		LeapEvents: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "timescale",
			Subsystem: "leapsecond",
			Name:      "events",
			Help:      "Leap-second events in the active table",
		}),
		ScaleErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "timescale",
			Subsystem: "scale",
			Name:      "conversion_errors_total",
			Help:      "Failed time-scale conversions",
		}, []string{"scale"}),
	}
}

// RecordCalibration notes one completed calibration. Nil-safe.
func (m *Metrics) RecordCalibration(clockID string, offsetSeconds float64) {
	if m == nil {
		return
	}
	m.Calibrations.WithLabelValues(clockID).Inc()
	m.CalibrationSkew.WithLabelValues(clockID).Set(offsetSeconds)
}

// RecordRead notes one produced instant. Nil-safe.
func (m *Metrics) RecordRead(mode string) {
	if m == nil {
		return
	}
	m.ClockReads.WithLabelValues(mode).Inc()
}

// RecordReload notes one table reload attempt. Nil-safe.
func (m *Metrics) RecordReload(ok bool, events int) {
	if m == nil {
		return
	}
	if ok {
		m.TableReloads.WithLabelValues("ok").Inc()
		m.LeapEvents.Set(float64(events))
	} else {
		m.TableReloads.WithLabelValues("error").Inc()
	}
}

// RecordScaleError notes one failed conversion on the given scale. Nil-safe.
func (m *Metrics) RecordScaleError(scaleName string) {
	if m == nil {
		return
	}
	m.ScaleErrors.WithLabelValues(scaleName).Inc()
}

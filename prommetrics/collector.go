// Package prommetrics exports Matcher metrics to Prometheus.
//
//	reg := prometheus.NewRegistry()
//	c, err := prommetrics.NewCollector(reg)
//	m, err := placematch.New(placematch.WithMetricsCollector(c))
package prommetrics

import (
	"time"

	"github.com/hupe1980/placematch"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "placematch"

var _ placematch.MetricsCollector = (*Collector)(nil)

// Collector implements placematch.MetricsCollector with Prometheus metrics.
type Collector struct {
	latency    *prometheus.HistogramVec
	searches   *prometheus.CounterVec
	scanned    *prometheus.CounterVec
	detections *prometheus.CounterVec
}

// NewCollector creates a Collector and registers its metrics with reg.
// A nil reg uses prometheus.DefaultRegisterer.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	c := &Collector{
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "operation_latency_seconds",
			Help:      "Latency of matcher operations",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 10),
		}, []string{"op", "status"}),
		searches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "searches_total",
			Help:      "Total searches by stage and outcome",
		}, []string{"stage", "outcome"}),
		scanned: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "candidates_scored_total",
			Help:      "Total candidates scored by stage",
		}, []string{"stage"}),
		detections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "detections_total",
			Help:      "Total coarse-to-fine detections by outcome",
		}, []string{"outcome"}),
	}

	for _, col := range []prometheus.Collector{c.latency, c.searches, c.scanned, c.detections} {
		if err := reg.Register(col); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// RecordLayerSearch implements placematch.MetricsCollector.
func (c *Collector) RecordLayerSearch(scanned int, found bool, d time.Duration, err error) {
	c.recordSearch("layer", scanned, found, d, err)
}

// RecordLeafSearch implements placematch.MetricsCollector.
func (c *Collector) RecordLeafSearch(scanned int, found bool, d time.Duration, err error) {
	c.recordSearch("leaf", scanned, found, d, err)
}

// RecordDetection implements placematch.MetricsCollector.
func (c *Collector) RecordDetection(found bool, d time.Duration, err error) {
	c.latency.WithLabelValues("detect", status(err)).Observe(d.Seconds())
	c.detections.WithLabelValues(outcome(found, err)).Inc()
}

func (c *Collector) recordSearch(stage string, scanned int, found bool, d time.Duration, err error) {
	c.latency.WithLabelValues(stage, status(err)).Observe(d.Seconds())
	c.searches.WithLabelValues(stage, outcome(found, err)).Inc()
	if err == nil {
		c.scanned.WithLabelValues(stage).Add(float64(scanned))
	}
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

func outcome(found bool, err error) string {
	switch {
	case err != nil:
		return "error"
	case found:
		return "match"
	default:
		return "no_match"
	}
}

// Package metrics records client side counters for scripted runs. The CLI is
// short lived, so metrics are written to a node-exporter textfile instead of
// being scraped.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

type Recorder struct {
	registry *prometheus.Registry

	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	wizards  *prometheus.CounterVec
	mentor   *prometheus.CounterVec
	screens  *prometheus.CounterVec
}

func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ravyz_api_requests_total",
				Help: "Count of backend API requests",
			},
			[]string{"method", "route", "status"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "ravyz_api_request_duration_seconds",
				Help:    "Time taken by backend API requests",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5},
			},
			[]string{"method", "route"},
		),
		wizards: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ravyz_wizards_finished_total",
				Help: "Count of finished wizards by outcome",
			},
			[]string{"wizard", "outcome"},
		),
		mentor: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ravyz_mentor_turns_total",
				Help: "Count of mentor conversation turns",
			},
			[]string{"mode", "status"},
		),
		screens: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ravyz_screen_visits_total",
				Help: "Count of router screen visits",
			},
			[]string{"screen"},
		),
	}

	r.registry.MustRegister(r.requests, r.duration, r.wizards, r.mentor, r.screens)
	return r
}

func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}

// ObserveRequest records an API call. A zero status marks a transport error.
func (r *Recorder) ObserveRequest(method, route string, status int, took time.Duration) {
	if r == nil {
		return
	}
	label := "error"
	if status > 0 {
		label = strconv.Itoa(status)
	}
	r.requests.WithLabelValues(method, route, label).Inc()
	r.duration.WithLabelValues(method, route).Observe(took.Seconds())
}

func (r *Recorder) WizardFinished(wizard, outcome string) {
	if r == nil {
		return
	}
	r.wizards.WithLabelValues(wizard, outcome).Inc()
}

func (r *Recorder) MentorTurn(mode, status string) {
	if r == nil {
		return
	}
	r.mentor.WithLabelValues(mode, status).Inc()
}

func (r *Recorder) ScreenVisited(screen string) {
	if r == nil {
		return
	}
	r.screens.WithLabelValues(screen).Inc()
}

// WriteFile dumps every metric to path in the text exposition format.
func (r *Recorder) WriteFile(path string) error {
	if r == nil || path == "" {
		return nil
	}
	return prometheus.WriteToTextfile(path, r.registry)
}

// Package metrics holds Prometheus instruments that are used across the
// site.  All collectors are registered with the global registry, so
// importing this package in main.go is enough to expose them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	SubmissionsAccepted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "contact_submissions_accepted_total",
			Help: "Contact submissions that passed validation and were delivered.",
		})

	SubmissionsRejected = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "contact_submissions_rejected_total",
			Help: "Contact submissions rejected by field validation.",
		})

	SubmissionsFailed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "contact_submissions_failed_total",
			Help: "Contact submissions that failed delivery to the endpoint.",
		})

	ThemeToggles = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "theme_toggles_total",
			Help: "Cumulative number of theme preference changes.",
		})

	ActiveFormSessions = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "contact_form_sessions",
			Help: "Form sessions currently held in the session cache.",
		})
)

func init() {
	prometheus.MustRegister(
		SubmissionsAccepted,
		SubmissionsRejected,
		SubmissionsFailed,
		ThemeToggles,
		ActiveFormSessions,
	)
}

package utils

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	MetricDialogmoteStatusTransition = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "isdialogmote_status_transition_total",
		Help: "Number of persisted dialogmote status transitions",
	}, []string{"status"})

	MetricVarselCreated = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "isdialogmote_varsel_created_total",
		Help: "Number of varsler created, per participant type and delivery channel",
	}, []string{"participant_type", "channel"})

	MetricVarselDeliveryFailed = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "isdialogmote_varsel_delivery_failed_total",
		Help: "Number of failed varsel deliveries, per delivery channel",
	}, []string{"channel"})

	MetricJobRows = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "isdialogmote_job_rows_total",
		Help: "Number of rows processed by the periodic jobs",
	}, []string{"job", "result"})

	MetricJobDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "isdialogmote_job_duration_seconds",
		Help:    "Duration of one run of a periodic job",
		Buckets: prometheus.DefBuckets,
	}, []string{"job"})
)

// RegisterMetrics registers the application metrics. It is called once at process start.
func RegisterMetrics(registerer prometheus.Registerer) {
	registerer.MustRegister(
		MetricDialogmoteStatusTransition,
		MetricVarselCreated,
		MetricVarselDeliveryFailed,
		MetricJobRows,
		MetricJobDuration,
	)
}

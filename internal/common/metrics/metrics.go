package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SubmissionsReceived = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "letterbot_submissions_received_total",
			Help: "Total number of letter submissions received",
		},
		[]string{"content_type"},
	)

	DecisionsProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "letterbot_decisions_processed_total",
			Help: "Total number of approval decisions processed by outcome",
		},
		[]string{"outcome"},
	)

	EmailsSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "letterbot_emails_sent_total",
			Help: "Total number of emails sent by provider",
		},
		[]string{"provider"},
	)

	EmailsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "letterbot_emails_failed_total",
			Help: "Total number of email send failures by provider",
		},
		[]string{"provider"},
	)

	QueriesExecuted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "letterbot_queries_executed_total",
			Help: "Total number of analytical queries by terminal state",
		},
		[]string{"state"},
	)

	QueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "letterbot_query_duration_seconds",
			Help: "Wall-clock duration of analytical queries in seconds",
		},
		[]string{"command"},
	)
)

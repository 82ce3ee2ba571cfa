package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	SchedulerTicks = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "remindd_scheduler_ticks_total",
			Help: "Total scheduler poll cycles executed",
		},
	)
	RemindersMatched = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "remindd_reminders_matched_total",
			Help: "Recurrence rules that matched a poll cycle",
		},
	)
	RemindersFired = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "remindd_reminders_fired_total",
			Help: "Reminders delivered to the notification surface",
		},
	)
	RemindersDeduped = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "remindd_reminders_deduped_total",
			Help: "Reminders suppressed because one already fired today",
		},
	)
	NotifyErrors = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "remindd_notify_errors_total",
			Help: "Notification deliveries that returned an error",
		},
	)
	StoreRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "remindd_store_requests_total",
			Help: "Requests issued to the external task store",
		},
		[]string{"operation", "outcome"},
	)
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "remindd_http_requests_total",
			Help: "Requests served by the engine's HTTP surface",
		},
		[]string{"endpoint", "status"},
	)
)

func init() {
	prometheus.MustRegister(
		SchedulerTicks,
		RemindersMatched,
		RemindersFired,
		RemindersDeduped,
		NotifyErrors,
		StoreRequests,
		HTTPRequests,
	)
}

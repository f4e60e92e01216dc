package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	bookingCreated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "est92",
			Name:      "booking_created_total",
			Help:      "Count of confirmed bookings by kind.",
		},
		[]string{"kind"},
	)

	bookingRejected = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "est92",
			Name:      "booking_rejected_total",
			Help:      "Count of submissions rejected by validation.",
		},
	)

	bookingMarkedPaid = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "est92",
			Name:      "booking_marked_paid_total",
			Help:      "Count of bookings marked paid from the dashboard.",
		},
	)

	bookingDeleted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "est92",
			Name:      "booking_deleted_total",
			Help:      "Count of bookings deleted from the dashboard.",
		},
	)

	storeDecodeFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "est92",
			Name:      "store_decode_failures_total",
			Help:      "Count of booking slot payloads discarded as unreadable.",
		},
		[]string{"reason"},
	)

	notifications = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "est92",
			Name:      "notifications_total",
			Help:      "Count of operator notification attempts by outcome.",
		},
		[]string{"outcome"},
	)

	authFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "est92",
			Name:      "auth_failures_total",
			Help:      "Count of rejected admin sign-in attempts.",
		},
	)
)

// Register registers all collectors (idempotent).
func Register() {
	once.Do(func() {
		prometheus.MustRegister(
			bookingCreated, bookingRejected, bookingMarkedPaid, bookingDeleted,
			storeDecodeFailures, notifications, authFailures,
		)
	})
}

func IncBookingCreated(kind string) {
	bookingCreated.WithLabelValues(kind).Inc()
}

func IncBookingRejected() {
	bookingRejected.Inc()
}

func IncBookingMarkedPaid() {
	bookingMarkedPaid.Inc()
}

func IncBookingDeleted() {
	bookingDeleted.Inc()
}

func IncStoreDecodeFailure(reason string) {
	storeDecodeFailures.WithLabelValues(reason).Inc()
}

func IncNotification(outcome string) {
	notifications.WithLabelValues(outcome).Inc()
}

func IncAuthFailure() {
	authFailures.Inc()
}

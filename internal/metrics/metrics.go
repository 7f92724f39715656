package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "smarthire_http_requests_total",
			Help: "HTTP requests by method, route and status",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "smarthire_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// Bookings
	BookingsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "smarthire_bookings_created_total",
			Help: "Bookings accepted by the booking writer",
		},
	)

	BookingConflicts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "smarthire_booking_conflicts_total",
			Help: "Booking attempts rejected because the slot was not free",
		},
		[]string{"reason"},
	)

	BookingTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "smarthire_booking_transitions_total",
			Help: "Booking status changes",
		},
		[]string{"from", "to"},
	)

	// Availability
	AvailabilitySaves = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "smarthire_availability_saves_total",
			Help: "Availability saves by result",
		},
		[]string{"result"},
	)

	OpenSlotsServed = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "smarthire_open_slots_served",
			Help:    "Number of open slots returned per query",
			Buckets: []float64{0, 1, 2, 4, 8, 16, 32, 64},
		},
	)
)

func RecordHTTPRequest(method, route string, status int, seconds float64) {
	HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	HTTPRequestDuration.WithLabelValues(method, route).Observe(seconds)
}

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics набор Prometheus метрик сервиса
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	BookingEvents         *prometheus.CounterVec
	WaitlistNotifications prometheus.Counter
	SweepCompleted        prometheus.Counter
}

// New создает и регистрирует метрики в default registry
func New(serviceName string) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		HTTPRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "path", "status"}),

		HTTPRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "path"}),

		BookingEvents: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "booking_events_total",
			Help:        "Booking lifecycle events (created, conflict, duplicate, cancelled, completed)",
			ConstLabels: constLabels,
		}, []string{"event"}),

		WaitlistNotifications: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "waitlist_notifications_total",
			Help:        "Waitlist slot-free notifications sent",
			ConstLabels: constLabels,
		}),

		SweepCompleted: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "maintenance_sweep_runs_total",
			Help:        "Completed maintenance sweep runs",
			ConstLabels: constLabels,
		}),
	}
}

// RecordBookingEvent инкрементирует счетчик событий бронирования
func (m *Metrics) RecordBookingEvent(event string) {
	if m == nil {
		return
	}
	m.BookingEvents.WithLabelValues(event).Inc()
}

// RecordWaitlistNotification инкрементирует счетчик уведомлений листа ожидания
func (m *Metrics) RecordWaitlistNotification() {
	if m == nil {
		return
	}
	m.WaitlistNotifications.Inc()
}

// RecordSweepRun инкрементирует счетчик прогонов maintenance sweep
func (m *Metrics) RecordSweepRun() {
	if m == nil {
		return
	}
	m.SweepCompleted.Inc()
}

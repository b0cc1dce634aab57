package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"hams-server/internal/models"
)

// Collector owns the HAMS Prometheus collectors on a private registry.
type Collector struct {
	registry *prometheus.Registry

	appointmentsBooked    *prometheus.CounterVec
	appointmentConflicts  *prometheus.CounterVec
	appointmentsCancelled *prometheus.CounterVec
	httpRequestsTotal     *prometheus.CounterVec
	httpRequestDuration   *prometheus.HistogramVec
}

// NewCollector creates and registers all collectors
func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		appointmentsBooked: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hams_appointments_booked_total",
				Help: "Total number of successfully booked appointments",
			},
			[]string{"doctor_id"},
		),
		appointmentConflicts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hams_appointment_conflicts_total",
				Help: "Total number of bookings rejected because the slot was taken",
			},
			[]string{"doctor_id"},
		),
		appointmentsCancelled: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hams_appointments_cancelled_total",
				Help: "Total number of cancelled appointments",
			},
			[]string{"role"},
		),
		httpRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hams_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "endpoint", "status_code"},
		),
		httpRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "hams_http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "endpoint"},
		),
	}

	c.registry.MustRegister(
		c.appointmentsBooked,
		c.appointmentConflicts,
		c.appointmentsCancelled,
		c.httpRequestsTotal,
		c.httpRequestDuration,
	)
	return c
}

func (c *Collector) Booked(doctorID string) {
	c.appointmentsBooked.WithLabelValues(doctorID).Inc()
}

func (c *Collector) Conflicted(doctorID string) {
	c.appointmentConflicts.WithLabelValues(doctorID).Inc()
}

func (c *Collector) Cancelled(role models.Role) {
	c.appointmentsCancelled.WithLabelValues(string(role)).Inc()
}

// RecordHTTPRequest records HTTP request metrics
func (c *Collector) RecordHTTPRequest(method, endpoint string, statusCode int, duration time.Duration) {
	c.httpRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(statusCode)).Inc()
	c.httpRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// Handler serves the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

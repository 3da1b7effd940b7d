package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	OrdersCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "orders_created_total",
		Help: "Total number of orders created from carts",
	})

	OrdersPaidTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "orders_paid_total",
		Help: "Total number of orders with an approved payment",
	})

	PaymentFailedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "payments_failed_total",
		Help: "Total number of cancelled or failed payments",
	})

	InventoryDeductionsFailed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inventory_deductions_failed_total",
		Help: "Total number of failed inventory deductions",
	}, []string{"reason"})

	ReservationsCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "reservations_created_total",
		Help: "Total number of reservations created",
	})

	ReservationsReleasedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "reservations_released_total",
		Help: "Total number of reservations that released their tables",
	}, []string{"reason"})

	TablesAllocatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tables_allocated_total",
		Help: "Total number of tables marked occupied by the reservation engine",
	})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})
)

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// CartMetrics records cart operation outcomes and collaborator latency.
type CartMetrics struct {
	operations   *prometheus.CounterVec
	inventory    *prometheus.HistogramVec
	saveFailures prometheus.Counter
	items        prometheus.Gauge
}

// NewCartMetrics registers the cart metrics on the provided registerer.
func NewCartMetrics(reg prometheus.Registerer) *CartMetrics {
	if reg == nil {
		return &CartMetrics{}
	}
	operations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cart_operations_total",
		Help: "Cart operations by operation and outcome.",
	}, []string{"operation", "outcome"})
	inventory := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "cart_inventory_request_duration_seconds",
		Help:    "Duration of inventory lookups in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"endpoint"})
	saveFailures := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "cart_snapshot_save_failures_total",
		Help: "Snapshot writes that failed after a successful mutation.",
	})
	items := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "cart_items",
		Help: "Distinct products currently in the cart.",
	})
	reg.MustRegister(operations, inventory, saveFailures, items)
	return &CartMetrics{
		operations:   operations,
		inventory:    inventory,
		saveFailures: saveFailures,
		items:        items,
	}
}

// IncOperation counts one finished cart operation.
func (c *CartMetrics) IncOperation(operation, outcome string) {
	if c == nil || c.operations == nil {
		return
	}
	c.operations.WithLabelValues(normalizeLabel(operation), normalizeLabel(outcome)).Inc()
}

// ObserveInventory records the duration of an inventory lookup.
func (c *CartMetrics) ObserveInventory(endpoint string, duration time.Duration) {
	if c == nil || c.inventory == nil {
		return
	}
	c.inventory.WithLabelValues(normalizeLabel(endpoint)).Observe(duration.Seconds())
}

// IncSaveFailure counts a failed snapshot write.
func (c *CartMetrics) IncSaveFailure() {
	if c == nil || c.saveFailures == nil {
		return
	}
	c.saveFailures.Inc()
}

// SetItems publishes the current number of distinct cart entries.
func (c *CartMetrics) SetItems(n int) {
	if c == nil || c.items == nil {
		return
	}
	c.items.Set(float64(n))
}

func normalizeLabel(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}

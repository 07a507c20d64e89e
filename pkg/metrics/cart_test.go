package metrics

import (
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestCartMetricsExportsCountersAndHistogram(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewCartMetrics(reg)

	metrics.IncOperation("add_product", "applied")
	metrics.IncOperation("add_product", "applied")
	metrics.IncOperation("remove_product", "")
	metrics.ObserveInventory("stock", 120*time.Millisecond)
	metrics.IncSaveFailure()
	metrics.SetItems(3)

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}

	if got, err := fetchCounterValue(mfs, "cart_operations_total", "outcome", "applied"); err != nil {
		t.Fatalf("fetch operations: %v", err)
	} else if got != 2 {
		t.Fatalf("expected applied=2, got %f", got)
	}

	if got, err := fetchCounterValue(mfs, "cart_operations_total", "outcome", "unknown"); err != nil {
		t.Fatalf("fetch unknown outcome: %v", err)
	} else if got != 1 {
		t.Fatalf("expected empty outcome to normalize to unknown, got %f", got)
	}

	if got, err := fetchHistogramSum(mfs, "cart_inventory_request_duration_seconds", "endpoint", "stock"); err != nil {
		t.Fatalf("fetch duration: %v", err)
	} else if got <= 0 {
		t.Fatalf("expected duration sum > 0, got %f", got)
	}

	if mf := findMetricFamily(mfs, "cart_snapshot_save_failures_total"); mf == nil || mf.GetMetric()[0].GetCounter().GetValue() != 1 {
		t.Fatalf("expected one save failure")
	}
	if mf := findMetricFamily(mfs, "cart_items"); mf == nil || mf.GetMetric()[0].GetGauge().GetValue() != 3 {
		t.Fatalf("expected cart_items gauge 3")
	}
}

func TestNilCartMetricsAreNoops(t *testing.T) {
	var nilMetrics *CartMetrics
	nilMetrics.IncOperation("add_product", "applied")
	nilMetrics.ObserveInventory("stock", time.Second)
	nilMetrics.IncSaveFailure()
	nilMetrics.SetItems(1)

	unregistered := NewCartMetrics(nil)
	unregistered.IncOperation("add_product", "applied")
	unregistered.SetItems(1)
}

func fetchCounterValue(mfs []*dto.MetricFamily, name, label, value string) (float64, error) {
	mf := findMetricFamily(mfs, name)
	if mf == nil {
		return 0, fmt.Errorf("metric %q not found", name)
	}
	for _, metric := range mf.GetMetric() {
		if matchesLabel(metric.GetLabel(), label, value) {
			return metric.GetCounter().GetValue(), nil
		}
	}
	return 0, fmt.Errorf("metric %q missing label %s=%s", name, label, value)
}

func fetchHistogramSum(mfs []*dto.MetricFamily, name, label, value string) (float64, error) {
	mf := findMetricFamily(mfs, name)
	if mf == nil {
		return 0, fmt.Errorf("metric %q not found", name)
	}
	for _, metric := range mf.GetMetric() {
		if matchesLabel(metric.GetLabel(), label, value) {
			return metric.GetHistogram().GetSampleSum(), nil
		}
	}
	return 0, fmt.Errorf("histogram %q missing label %s=%s", name, label, value)
}

func findMetricFamily(mfs []*dto.MetricFamily, name string) *dto.MetricFamily {
	for _, mf := range mfs {
		if mf.GetName() == name {
			return mf
		}
	}
	return nil
}

func matchesLabel(labels []*dto.LabelPair, name, value string) bool {
	for _, label := range labels {
		if label.GetName() == name && label.GetValue() == value {
			return true
		}
	}
	return false
}

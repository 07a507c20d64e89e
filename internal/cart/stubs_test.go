package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"testing"

	pkgerrors "github.com/angelmondragon/rocketcart/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

type stubInventory struct {
	mu         sync.Mutex
	stock      map[ProductID]int
	products   map[ProductID]map[string]json.RawMessage
	stockErr   error
	productErr error
	stockCalls int
	prodCalls  int
	beforeRead func()
}

func newStubInventory() *stubInventory {
	return &stubInventory{
		stock:    map[ProductID]int{},
		products: map[ProductID]map[string]json.RawMessage{},
	}
}

func (s *stubInventory) withProduct(id ProductID, stock int, title string, price string) *stubInventory {
	s.stock[id] = stock
	s.products[id] = map[string]json.RawMessage{
		"id":    json.RawMessage(fmt.Sprintf("%d", id)),
		"title": json.RawMessage(fmt.Sprintf("%q", title)),
		"price": json.RawMessage(price),
		"image": json.RawMessage(`"https://cdn.example.com/shoe.jpg"`),
	}
	return s
}

func (s *stubInventory) Stock(ctx context.Context, id ProductID) (Stock, error) {
	if s.beforeRead != nil {
		s.beforeRead()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stockCalls++
	if s.stockErr != nil {
		return Stock{}, s.stockErr
	}
	amount, ok := s.stock[id]
	if !ok {
		return Stock{}, pkgerrors.New(pkgerrors.CodeNotFound, "stock not found")
	}
	return Stock{ProductID: id, Amount: amount}, nil
}

func (s *stubInventory) Product(ctx context.Context, id ProductID) (Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prodCalls++
	if s.productErr != nil {
		return Product{}, s.productErr
	}
	attrs, ok := s.products[id]
	if !ok {
		return Product{}, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	return Product{ID: id, Attributes: attrs}, nil
}

type stubStorage struct {
	mu      sync.Mutex
	data    []byte
	present bool
	loadErr error
	saveErr error
	saves   int
}

func (s *stubStorage) Load(ctx context.Context) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loadErr != nil {
		return nil, false, s.loadErr
	}
	return s.data, s.present, nil
}

func (s *stubStorage) Save(ctx context.Context, snapshot []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saves++
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.saveErr != nil {
		return s.saveErr
	}
	s.data = append([]byte(nil), snapshot...)
	s.present = true
	return nil
}

func (s *stubStorage) saveCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}

type recordingNotifier struct {
	mu       sync.Mutex
	messages []string
}

func (n *recordingNotifier) Warn(ctx context.Context, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages = append(n.messages, message)
}

func (n *recordingNotifier) all() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.messages...)
}

// metricValue returns the counter or gauge value of the series matching labels.
func metricValue(t *testing.T, reg *prometheus.Registry, name string, labels map[string]string) float64 {
	t.Helper()
	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}
	for _, mf := range mfs {
		if mf.GetName() != name {
			continue
		}
		for _, metric := range mf.GetMetric() {
			if !hasLabels(metric.GetLabel(), labels) {
				continue
			}
			if c := metric.GetCounter(); c != nil {
				return c.GetValue()
			}
			return metric.GetGauge().GetValue()
		}
	}
	t.Fatalf("metric %s%v not found", name, labels)
	return 0
}

func hasLabels(pairs []*dto.LabelPair, want map[string]string) bool {
	matched := 0
	for _, pair := range pairs {
		if v, ok := want[pair.GetName()]; ok && v == pair.GetValue() {
			matched++
		}
	}
	return matched == len(want)
}

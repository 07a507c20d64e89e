package memstore

import (
	"context"
	"sync"
)

// Store keeps the snapshot in process memory. Contents do not survive a restart.
type Store struct {
	mu      sync.RWMutex
	data    []byte
	present bool
}

func New() *Store {
	return &Store{}
}

// NewWithSnapshot returns a store that already holds snapshot.
func NewWithSnapshot(snapshot []byte) *Store {
	return &Store{data: append([]byte(nil), snapshot...), present: true}
}

func (s *Store) Load(ctx context.Context) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.present {
		return nil, false, nil
	}
	return append([]byte(nil), s.data...), true, nil
}

func (s *Store) Save(ctx context.Context, snapshot []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = append([]byte(nil), snapshot...)
	s.present = true
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}

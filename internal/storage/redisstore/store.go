package redisstore

import (
	"context"
	"errors"
	"fmt"
	"strings"

	pkgredis "github.com/angelmondragon/rocketcart/pkg/redis"
)

// Store persists the cart snapshot as one redis string.
type Store struct {
	client *pkgredis.Client
	key    string
}

// New builds a store writing under the namespaced form of name.
func New(client *pkgredis.Client, name string) (*Store, error) {
	if client == nil {
		return nil, errors.New("redis client required")
	}
	if strings.TrimSpace(name) == "" {
		return nil, errors.New("snapshot key required")
	}
	return &Store{client: client, key: client.SnapshotKey(name)}, nil
}

// Key is the full redis key holding the snapshot.
func (s *Store) Key() string {
	return s.key
}

func (s *Store) Load(ctx context.Context) ([]byte, bool, error) {
	value, err := s.client.Get(ctx, s.key)
	if errors.Is(err, pkgredis.ErrNil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get %s: %w", s.key, err)
	}
	return []byte(value), true, nil
}

func (s *Store) Save(ctx context.Context, snapshot []byte) error {
	if err := s.client.Set(ctx, s.key, string(snapshot), 0); err != nil {
		return fmt.Errorf("redis set %s: %w", s.key, err)
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx)
}

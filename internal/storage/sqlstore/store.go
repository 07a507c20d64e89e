package sqlstore

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/angelmondragon/rocketcart/pkg/db"
	"github.com/angelmondragon/rocketcart/pkg/db/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store persists the cart snapshot as one row of cart_snapshots.
type Store struct {
	client *db.Client
	key    string
}

func New(client *db.Client, key string) (*Store, error) {
	if client == nil {
		return nil, errors.New("db client required")
	}
	if strings.TrimSpace(key) == "" {
		return nil, errors.New("snapshot key required")
	}
	return &Store{client: client, key: key}, nil
}

func (s *Store) Load(ctx context.Context) ([]byte, bool, error) {
	var row models.CartSnapshot
	err := s.client.DB().WithContext(ctx).
		Where("snapshot_key = ?", s.key).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("load snapshot %q: %w", s.key, err)
	}
	return []byte(row.Value), true, nil
}

// Save upserts the snapshot row.
func (s *Store) Save(ctx context.Context, snapshot []byte) error {
	row := models.CartSnapshot{Key: s.key, Value: string(snapshot)}
	err := s.client.DB().WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "snapshot_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"snapshot_value", "updated_at"}),
		}).
		Create(&row).Error
	if err != nil {
		return fmt.Errorf("save snapshot %q: %w", s.key, err)
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx)
}

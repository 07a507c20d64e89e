package models

import "time"

// CartSnapshot is one key/value row holding a serialized cart.
type CartSnapshot struct {
	Key       string    `gorm:"column:snapshot_key;primaryKey"`
	Value     string    `gorm:"column:snapshot_value;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (CartSnapshot) TableName() string {
	return "cart_snapshots"
}

package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/kolamtech/tambak-backend/pkg/enums"
)

// StockItem is a feed or seed article with its on-hand quantity.
type StockItem struct {
	ID           uuid.UUID        `gorm:"column:id;type:uuid;primaryKey"`
	Name         string           `gorm:"column:name;not null;uniqueIndex"`
	Kind         enums.StockKind  `gorm:"column:kind;type:text;not null"`
	Unit         string           `gorm:"column:unit;not null"`
	Quantity     decimal.Decimal  `gorm:"column:quantity;type:numeric(14,2);not null;default:0"`
	LowThreshold *decimal.Decimal `gorm:"column:low_threshold;type:numeric(14,2)"`
	CreatedAt    time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}

func (s *StockItem) BeforeCreate(*gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

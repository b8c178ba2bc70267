package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/kolamtech/tambak-backend/pkg/enums"
)

// StockMovement is one change applied to a stock item's quantity.
type StockMovement struct {
	ID          uuid.UUID               `gorm:"column:id;type:uuid;primaryKey"`
	StockItemID uuid.UUID               `gorm:"column:stock_item_id;type:uuid;not null;index"`
	Type        enums.StockMovementType `gorm:"column:type;type:text;not null"`
	Quantity    decimal.Decimal         `gorm:"column:quantity;type:numeric(14,2);not null"`
	UnitCost    *int64                  `gorm:"column:unit_cost"`
	Date        time.Time               `gorm:"column:date;not null"`
	Notes       *string                 `gorm:"column:notes"`
	CreatedBy   uuid.UUID               `gorm:"column:created_by;type:uuid;not null"`
	CreatedAt   time.Time               `gorm:"column:created_at;autoCreateTime"`
}

func (m *StockMovement) BeforeCreate(*gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

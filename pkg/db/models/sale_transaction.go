package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/kolamtech/tambak-backend/pkg/enums"
)

// SaleTransaction records one sale of harvested product to a customer.
// Total is always the rounded product of weight and price-per-kg at
// create/update time; it is never edited independently.
type SaleTransaction struct {
	ID            uuid.UUID           `gorm:"column:id;type:uuid;primaryKey"`
	Date          time.Time           `gorm:"column:date;not null;index"`
	PondID        *uuid.UUID          `gorm:"column:pond_id;type:uuid;index"`
	CustomerID    uuid.UUID           `gorm:"column:customer_id;type:uuid;not null;index"`
	WeightKg      decimal.Decimal     `gorm:"column:weight_kg;type:numeric(12,2);not null"`
	PricePerKg    int64               `gorm:"column:price_per_kg;not null"`
	Total         int64               `gorm:"column:total;not null"`
	PaymentMethod enums.PaymentMethod `gorm:"column:payment_method;type:text;not null;default:'cash'"`
	PaymentStatus enums.PaymentStatus `gorm:"column:payment_status;type:text;not null;default:'paid'"`
	Notes         *string             `gorm:"column:notes"`
	CreatedBy     uuid.UUID           `gorm:"column:created_by;type:uuid;not null"`
	Pond          *Pond               `gorm:"foreignKey:PondID"`
	Customer      *Customer           `gorm:"foreignKey:CustomerID"`
	CreatedAt     time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}

func (s *SaleTransaction) TableName() string {
	return "sale_transactions"
}

func (s *SaleTransaction) BeforeCreate(*gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

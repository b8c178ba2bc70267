package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/kolamtech/tambak-backend/pkg/enums"
)

// Pond is a production unit harvested fish are sold from.
type Pond struct {
	ID        uuid.UUID        `gorm:"column:id;type:uuid;primaryKey"`
	Name      string           `gorm:"column:name;not null;uniqueIndex"`
	Location  string           `gorm:"column:location"`
	AreaM2    decimal.Decimal  `gorm:"column:area_m2;type:numeric(12,2);not null;default:0"`
	Species   string           `gorm:"column:species"`
	Status    enums.PondStatus `gorm:"column:status;type:text;not null;default:'active'"`
	Notes     *string          `gorm:"column:notes"`
	CreatedAt time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}

func (p *Pond) BeforeCreate(*gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

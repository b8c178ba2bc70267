package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kolamtech/tambak-backend/pkg/enums"
)

// Expense is a single operating cost entry.
type Expense struct {
	ID          uuid.UUID             `gorm:"column:id;type:uuid;primaryKey"`
	Date        time.Time             `gorm:"column:date;not null;index"`
	Category    enums.ExpenseCategory `gorm:"column:category;type:text;not null;index"`
	Amount      int64                 `gorm:"column:amount;not null"`
	PondID      *uuid.UUID            `gorm:"column:pond_id;type:uuid;index"`
	Description string                `gorm:"column:description"`
	CreatedBy   uuid.UUID             `gorm:"column:created_by;type:uuid;not null"`
	Pond        *Pond                 `gorm:"foreignKey:PondID"`
	CreatedAt   time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}

func (e *Expense) BeforeCreate(*gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

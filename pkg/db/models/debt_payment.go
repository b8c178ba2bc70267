package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kolamtech/tambak-backend/pkg/enums"
)

// DebtPayment is one installment applied against a receivable. Append-only.
type DebtPayment struct {
	ID            uuid.UUID           `gorm:"column:id;type:uuid;primaryKey"`
	DebtID        uuid.UUID           `gorm:"column:debt_id;type:uuid;not null;index"`
	PaymentDate   time.Time           `gorm:"column:payment_date;not null"`
	Amount        int64               `gorm:"column:amount;not null"`
	PaymentMethod enums.PaymentMethod `gorm:"column:payment_method;type:text;not null;default:'cash'"`
	Notes         *string             `gorm:"column:notes"`
	CreatedAt     time.Time           `gorm:"column:created_at;autoCreateTime"`
}

func (p *DebtPayment) BeforeCreate(*gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kolamtech/tambak-backend/pkg/enums"
)

// Debt is a receivable owed by a customer, usually opened by an unpaid sale.
// PaidAmount and Status cache the state derived from the payment sum; they
// are refreshed in the same transaction as every payment write.
type Debt struct {
	ID            uuid.UUID        `gorm:"column:id;type:uuid;primaryKey"`
	TransactionID *uuid.UUID       `gorm:"column:transaction_id;type:uuid;uniqueIndex"`
	CustomerID    uuid.UUID        `gorm:"column:customer_id;type:uuid;not null;index"`
	Amount        int64            `gorm:"column:amount;not null"`
	PaidAmount    int64            `gorm:"column:paid_amount;not null;default:0"`
	Status        enums.DebtStatus `gorm:"column:status;type:text;not null;default:'unpaid'"`
	DueDate       *time.Time       `gorm:"column:due_date"`
	Customer      *Customer        `gorm:"foreignKey:CustomerID"`
	Transaction   *SaleTransaction `gorm:"foreignKey:TransactionID"`
	Payments      []DebtPayment    `gorm:"foreignKey:DebtID;constraint:OnDelete:CASCADE"`
	CreatedAt     time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}

func (d *Debt) BeforeCreate(*gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

package debts

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kolamtech/tambak-backend/pkg/db/models"
	"github.com/kolamtech/tambak-backend/pkg/enums"
)

const dateLayout = "2006-01-02"

// CreateDebtRequest opens a manual receivable not tied to a sale.
type CreateDebtRequest struct {
	CustomerID uuid.UUID `json:"customer_id" validate:"required"`
	Amount     int64     `json:"amount" validate:"required,gt=0"`
	DueDate    *string   `json:"due_date" validate:"omitempty,datetime=2006-01-02"`
}

// RecordPaymentRequest applies one installment against a debt.
type RecordPaymentRequest struct {
	PaymentDate   string  `json:"payment_date" validate:"required,datetime=2006-01-02"`
	Amount        int64   `json:"amount" validate:"required,gt=0"`
	PaymentMethod string  `json:"payment_method" validate:"omitempty,oneof=cash transfer qris"`
	Notes         *string `json:"notes"`
}

// ListDebtsParams narrows the receivables listing.
type ListDebtsParams struct {
	Status     string
	CustomerID *uuid.UUID
	Limit      int
}

// SaleSummary is the slice of the originating sale shown on a debt.
type SaleSummary struct {
	ID         uuid.UUID       `json:"id"`
	Date       string          `json:"date"`
	WeightKg   decimal.Decimal `json:"weight_kg"`
	PricePerKg int64           `json:"price_per_kg"`
	Total      int64           `json:"total"`
}

// DebtResponse is the public representation of a receivable. PaidAmount,
// RemainingAmount, and Status are derived from the payment sum at read time.
type DebtResponse struct {
	ID              uuid.UUID    `json:"id"`
	TransactionID   *uuid.UUID   `json:"transaction_id,omitempty"`
	CustomerID      uuid.UUID    `json:"customer_id"`
	CustomerName    string       `json:"customer_name,omitempty"`
	CustomerPhone   string       `json:"customer_phone,omitempty"`
	Amount          int64        `json:"amount"`
	PaidAmount      int64        `json:"paid_amount"`
	RemainingAmount int64        `json:"remaining_amount"`
	Status          string       `json:"status"`
	DueDate         *string      `json:"due_date,omitempty"`
	Sale            *SaleSummary `json:"sale,omitempty"`
	CreatedAt       time.Time    `json:"created_at"`
	UpdatedAt       time.Time    `json:"updated_at"`
}

// DebtDetailResponse adds the installment history to the debt view.
type DebtDetailResponse struct {
	DebtResponse
	Payments []PaymentResponse `json:"payments"`
}

// PaymentResponse is the public representation of one installment.
type PaymentResponse struct {
	ID            uuid.UUID `json:"id"`
	DebtID        uuid.UUID `json:"debt_id"`
	PaymentDate   string    `json:"payment_date"`
	Amount        int64     `json:"amount"`
	PaymentMethod string    `json:"payment_method"`
	Notes         *string   `json:"notes,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// DeriveStatus reports the authoritative debt status for a payment sum.
func DeriveStatus(amount, paid int64) enums.DebtStatus {
	if amount-paid <= 0 {
		return enums.DebtStatusPaid
	}
	return enums.DebtStatusUnpaid
}

func toResponse(debt *models.Debt, paid int64) *DebtResponse {
	if debt == nil {
		return nil
	}
	resp := &DebtResponse{
		ID:              debt.ID,
		TransactionID:   debt.TransactionID,
		CustomerID:      debt.CustomerID,
		Amount:          debt.Amount,
		PaidAmount:      paid,
		RemainingAmount: debt.Amount - paid,
		Status:          DeriveStatus(debt.Amount, paid).String(),
		CreatedAt:       debt.CreatedAt,
		UpdatedAt:       debt.UpdatedAt,
	}
	if debt.DueDate != nil {
		due := debt.DueDate.Format(dateLayout)
		resp.DueDate = &due
	}
	if debt.Customer != nil {
		resp.CustomerName = debt.Customer.Name
		resp.CustomerPhone = debt.Customer.Phone
	}
	if debt.Transaction != nil {
		resp.Sale = &SaleSummary{
			ID:         debt.Transaction.ID,
			Date:       debt.Transaction.Date.Format(dateLayout),
			WeightKg:   debt.Transaction.WeightKg,
			PricePerKg: debt.Transaction.PricePerKg,
			Total:      debt.Transaction.Total,
		}
	}
	return resp
}

func toPaymentResponse(payment *models.DebtPayment) *PaymentResponse {
	if payment == nil {
		return nil
	}
	return &PaymentResponse{
		ID:            payment.ID,
		DebtID:        payment.DebtID,
		PaymentDate:   payment.PaymentDate.Format(dateLayout),
		Amount:        payment.Amount,
		PaymentMethod: payment.PaymentMethod.String(),
		Notes:         payment.Notes,
		CreatedAt:     payment.CreatedAt,
	}
}

func toPaymentResponses(rows []models.DebtPayment) []PaymentResponse {
	items := make([]PaymentResponse, len(rows))
	for i := range rows {
		items[i] = *toPaymentResponse(&rows[i])
	}
	return items
}

package transactions

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kolamtech/tambak-backend/pkg/db/models"
)

const dateLayout = "2006-01-02"

// UpsertTransactionRequest carries sale fields for create and full update.
// Total is never accepted from the client; it is always recomputed.
type UpsertTransactionRequest struct {
	Date          string          `json:"date" validate:"required,datetime=2006-01-02"`
	PondID        *uuid.UUID      `json:"pond_id"`
	CustomerID    uuid.UUID       `json:"customer_id" validate:"required"`
	WeightKg      decimal.Decimal `json:"weight_kg"`
	PricePerKg    int64           `json:"price_per_kg" validate:"required,gt=0"`
	PaymentMethod string          `json:"payment_method" validate:"omitempty,oneof=cash transfer qris"`
	PaymentStatus string          `json:"payment_status" validate:"omitempty,oneof=paid unpaid"`
	DueDate       *string         `json:"due_date" validate:"omitempty,datetime=2006-01-02"`
	Notes         *string         `json:"notes"`
}

// ListTransactionsParams narrows the sales listing.
type ListTransactionsParams struct {
	PaymentStatus string
	CustomerID    *uuid.UUID
	PondID        *uuid.UUID
	From          *time.Time
	To            *time.Time
	Cursor        string
	Limit         int
}

// TransactionListResponse is one keyset page of sales.
type TransactionListResponse struct {
	Items      []TransactionResponse `json:"items"`
	NextCursor string                `json:"next_cursor,omitempty"`
}

// TransactionResponse is the public representation of a sale.
type TransactionResponse struct {
	ID            uuid.UUID       `json:"id"`
	Date          string          `json:"date"`
	PondID        *uuid.UUID      `json:"pond_id,omitempty"`
	PondName      string          `json:"pond_name,omitempty"`
	CustomerID    uuid.UUID       `json:"customer_id"`
	CustomerName  string          `json:"customer_name,omitempty"`
	WeightKg      decimal.Decimal `json:"weight_kg"`
	PricePerKg    int64           `json:"price_per_kg"`
	Total         int64           `json:"total"`
	PaymentMethod string          `json:"payment_method"`
	PaymentStatus string          `json:"payment_status"`
	Notes         *string         `json:"notes,omitempty"`
	DebtID        *uuid.UUID      `json:"debt_id,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

func toResponse(sale *models.SaleTransaction, debtID *uuid.UUID) *TransactionResponse {
	if sale == nil {
		return nil
	}
	resp := &TransactionResponse{
		ID:            sale.ID,
		Date:          sale.Date.Format(dateLayout),
		PondID:        sale.PondID,
		CustomerID:    sale.CustomerID,
		WeightKg:      sale.WeightKg,
		PricePerKg:    sale.PricePerKg,
		Total:         sale.Total,
		PaymentMethod: sale.PaymentMethod.String(),
		PaymentStatus: sale.PaymentStatus.String(),
		Notes:         sale.Notes,
		DebtID:        debtID,
		CreatedAt:     sale.CreatedAt,
		UpdatedAt:     sale.UpdatedAt,
	}
	if sale.Pond != nil {
		resp.PondName = sale.Pond.Name
	}
	if sale.Customer != nil {
		resp.CustomerName = sale.Customer.Name
	}
	return resp
}

func toResponses(rows []models.SaleTransaction) []TransactionResponse {
	items := make([]TransactionResponse, len(rows))
	for i := range rows {
		items[i] = *toResponse(&rows[i], nil)
	}
	return items
}

package expenses

import (
	"time"

	"github.com/google/uuid"

	"github.com/kolamtech/tambak-backend/pkg/db/models"
)

const dateLayout = "2006-01-02"

// UpsertExpenseRequest carries expense fields for create and full update.
type UpsertExpenseRequest struct {
	Date        string     `json:"date" validate:"required,datetime=2006-01-02"`
	Category    string     `json:"category" validate:"required,oneof=feed seed salary maintenance electricity other"`
	Amount      int64      `json:"amount" validate:"required,gt=0"`
	PondID      *uuid.UUID `json:"pond_id"`
	Description string     `json:"description" validate:"max=250"`
}

// ListExpensesParams narrows the expense listing.
type ListExpensesParams struct {
	Category string
	PondID   *uuid.UUID
	From     *time.Time
	To       *time.Time
	Limit    int
}

// ExpenseResponse is the public representation of an expense.
type ExpenseResponse struct {
	ID          uuid.UUID  `json:"id"`
	Date        string     `json:"date"`
	Category    string     `json:"category"`
	Amount      int64      `json:"amount"`
	PondID      *uuid.UUID `json:"pond_id,omitempty"`
	PondName    string     `json:"pond_name,omitempty"`
	Description string     `json:"description,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func toResponse(expense *models.Expense) *ExpenseResponse {
	if expense == nil {
		return nil
	}
	resp := &ExpenseResponse{
		ID:          expense.ID,
		Date:        expense.Date.Format(dateLayout),
		Category:    expense.Category.String(),
		Amount:      expense.Amount,
		PondID:      expense.PondID,
		Description: expense.Description,
		CreatedAt:   expense.CreatedAt,
		UpdatedAt:   expense.UpdatedAt,
	}
	if expense.Pond != nil {
		resp.PondName = expense.Pond.Name
	}
	return resp
}

func toResponses(rows []models.Expense) []ExpenseResponse {
	items := make([]ExpenseResponse, len(rows))
	for i := range rows {
		items[i] = *toResponse(&rows[i])
	}
	return items
}

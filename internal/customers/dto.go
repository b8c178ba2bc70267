package customers

import (
	"time"

	"github.com/google/uuid"

	"github.com/kolamtech/tambak-backend/pkg/db/models"
)

// UpsertCustomerRequest carries customer fields for create and full update.
type UpsertCustomerRequest struct {
	Name    string  `json:"name" validate:"required,max=120"`
	Phone   string  `json:"phone" validate:"max=32"`
	Address string  `json:"address" validate:"max=250"`
	Notes   *string `json:"notes"`
}

// CustomerResponse is the public representation of a customer.
type CustomerResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	Notes     *string   `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toResponse(customer *models.Customer) *CustomerResponse {
	if customer == nil {
		return nil
	}
	return &CustomerResponse{
		ID:        customer.ID,
		Name:      customer.Name,
		Phone:     customer.Phone,
		Address:   customer.Address,
		Notes:     customer.Notes,
		CreatedAt: customer.CreatedAt,
		UpdatedAt: customer.UpdatedAt,
	}
}

func toResponses(rows []models.Customer) []CustomerResponse {
	items := make([]CustomerResponse, len(rows))
	for i := range rows {
		items[i] = *toResponse(&rows[i])
	}
	return items
}

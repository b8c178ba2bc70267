package ponds

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kolamtech/tambak-backend/pkg/db/models"
)

// UpsertPondRequest carries pond fields for create and full update.
type UpsertPondRequest struct {
	Name     string          `json:"name" validate:"required,max=120"`
	Location string          `json:"location" validate:"max=250"`
	AreaM2   decimal.Decimal `json:"area_m2"`
	Species  string          `json:"species" validate:"max=120"`
	Status   string          `json:"status" validate:"omitempty,oneof=active inactive"`
	Notes    *string         `json:"notes"`
}

// PondResponse is the public representation of a pond.
type PondResponse struct {
	ID        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	Location  string          `json:"location"`
	AreaM2    decimal.Decimal `json:"area_m2"`
	Species   string          `json:"species"`
	Status    string          `json:"status"`
	Notes     *string         `json:"notes,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func toResponse(pond *models.Pond) *PondResponse {
	if pond == nil {
		return nil
	}
	return &PondResponse{
		ID:        pond.ID,
		Name:      pond.Name,
		Location:  pond.Location,
		AreaM2:    pond.AreaM2,
		Species:   pond.Species,
		Status:    pond.Status.String(),
		Notes:     pond.Notes,
		CreatedAt: pond.CreatedAt,
		UpdatedAt: pond.UpdatedAt,
	}
}

func toResponses(rows []models.Pond) []PondResponse {
	items := make([]PondResponse, len(rows))
	for i := range rows {
		items[i] = *toResponse(&rows[i])
	}
	return items
}

package stock

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kolamtech/tambak-backend/pkg/db/models"
)

const dateLayout = "2006-01-02"

// CreateItemRequest registers a new feed or seed article.
type CreateItemRequest struct {
	Name         string           `json:"name" validate:"required,max=120"`
	Kind         string           `json:"kind" validate:"required,oneof=feed seed"`
	Unit         string           `json:"unit" validate:"required,max=20"`
	Quantity     decimal.Decimal  `json:"quantity"`
	LowThreshold *decimal.Decimal `json:"low_threshold"`
}

// ApplyMovementRequest records one quantity change against an item.
// Adjustment quantities are signed deltas; purchase and usage are positive.
type ApplyMovementRequest struct {
	Type     string          `json:"type" validate:"required,oneof=purchase usage adjustment"`
	Quantity decimal.Decimal `json:"quantity"`
	UnitCost *int64          `json:"unit_cost" validate:"omitempty,gt=0"`
	Date     string          `json:"date" validate:"required,datetime=2006-01-02"`
	Notes    *string         `json:"notes"`
}

// ItemResponse is the public representation of a stock item. LowStock is
// derived from the threshold at read time.
type ItemResponse struct {
	ID           uuid.UUID        `json:"id"`
	Name         string           `json:"name"`
	Kind         string           `json:"kind"`
	Unit         string           `json:"unit"`
	Quantity     decimal.Decimal  `json:"quantity"`
	LowThreshold *decimal.Decimal `json:"low_threshold,omitempty"`
	LowStock     bool             `json:"low_stock"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

// MovementResponse is the public representation of one quantity change.
type MovementResponse struct {
	ID          uuid.UUID       `json:"id"`
	StockItemID uuid.UUID       `json:"stock_item_id"`
	Type        string          `json:"type"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitCost    *int64          `json:"unit_cost,omitempty"`
	Date        string          `json:"date"`
	Notes       *string         `json:"notes,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

func toItemResponse(item *models.StockItem) *ItemResponse {
	if item == nil {
		return nil
	}
	low := false
	if item.LowThreshold != nil {
		low = item.Quantity.LessThanOrEqual(*item.LowThreshold)
	}
	return &ItemResponse{
		ID:           item.ID,
		Name:         item.Name,
		Kind:         item.Kind.String(),
		Unit:         item.Unit,
		Quantity:     item.Quantity,
		LowThreshold: item.LowThreshold,
		LowStock:     low,
		CreatedAt:    item.CreatedAt,
		UpdatedAt:    item.UpdatedAt,
	}
}

func toItemResponses(rows []models.StockItem) []ItemResponse {
	items := make([]ItemResponse, len(rows))
	for i := range rows {
		items[i] = *toItemResponse(&rows[i])
	}
	return items
}

func toMovementResponse(movement *models.StockMovement) *MovementResponse {
	if movement == nil {
		return nil
	}
	return &MovementResponse{
		ID:          movement.ID,
		StockItemID: movement.StockItemID,
		Type:        movement.Type.String(),
		Quantity:    movement.Quantity,
		UnitCost:    movement.UnitCost,
		Date:        movement.Date.Format(dateLayout),
		Notes:       movement.Notes,
		CreatedAt:   movement.CreatedAt,
	}
}

func toMovementResponses(rows []models.StockMovement) []MovementResponse {
	items := make([]MovementResponse, len(rows))
	for i := range rows {
		items[i] = *toMovementResponse(&rows[i])
	}
	return items
}

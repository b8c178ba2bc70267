package stock

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/kolamtech/tambak-backend/pkg/db/models"
	"github.com/kolamtech/tambak-backend/pkg/enums"
	pkgerrors "github.com/kolamtech/tambak-backend/pkg/errors"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service exposes feed and seed inventory operations.
type Service interface {
	ListItems(ctx context.Context) ([]ItemResponse, error)
	GetItem(ctx context.Context, id uuid.UUID) (*ItemResponse, error)
	CreateItem(ctx context.Context, req CreateItemRequest) (*ItemResponse, error)
	ApplyMovement(ctx context.Context, itemID, createdBy uuid.UUID, req ApplyMovementRequest) (*MovementResponse, error)
	ListMovements(ctx context.Context, itemID uuid.UUID) ([]MovementResponse, error)
}

type service struct {
	runner txRunner
	repo   *Repository
}

// NewService builds a stock service from its dependencies.
func NewService(runner txRunner, repo *Repository) (Service, error) {
	if runner == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if repo == nil {
		return nil, fmt.Errorf("stock repository required")
	}
	return &service{runner: runner, repo: repo}, nil
}

func (s *service) ListItems(ctx context.Context) ([]ItemResponse, error) {
	rows, err := s.repo.ListItems(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list stock items")
	}
	return toItemResponses(rows), nil
}

func (s *service) GetItem(ctx context.Context, id uuid.UUID) (*ItemResponse, error) {
	item, err := s.findItem(ctx, id)
	if err != nil {
		return nil, err
	}
	return toItemResponse(item), nil
}

func (s *service) CreateItem(ctx context.Context, req CreateItemRequest) (*ItemResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	kind, err := enums.ParseStockKind(req.Kind)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid stock kind")
	}
	if req.Quantity.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity cannot be negative")
	}
	if req.LowThreshold != nil && req.LowThreshold.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "low_threshold cannot be negative")
	}

	item := &models.StockItem{
		Name:         name,
		Kind:         kind,
		Unit:         strings.TrimSpace(req.Unit),
		Quantity:     req.Quantity,
		LowThreshold: req.LowThreshold,
	}
	created, err := s.repo.CreateItem(ctx, item)
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "stock item name already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create stock item")
	}
	return toItemResponse(created), nil
}

func (s *service) ApplyMovement(ctx context.Context, itemID, createdBy uuid.UUID, req ApplyMovementRequest) (*MovementResponse, error) {
	if createdBy == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing actor")
	}
	movementType, err := enums.ParseStockMovementType(req.Type)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid movement type")
	}
	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid date")
	}
	if movementType != enums.StockMovementAdjustment && !req.Quantity.IsPositive() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
	}
	if movementType == enums.StockMovementAdjustment && req.Quantity.IsZero() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity cannot be zero")
	}

	movement := &models.StockMovement{
		StockItemID: itemID,
		Type:        movementType,
		Quantity:    req.Quantity,
		UnitCost:    req.UnitCost,
		Date:        date,
		Notes:       req.Notes,
		CreatedBy:   createdBy,
	}
	// The movement row and the new on-hand quantity commit together.
	err = s.runner.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		item, err := repo.FindItemByID(ctx, itemID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "stock item not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup stock item")
		}

		next := applyDelta(item.Quantity, movementType, req.Quantity)
		if next.IsNegative() {
			return pkgerrors.New(pkgerrors.CodeConflict, "insufficient stock").
				WithDetails(map[string]any{
					"available": item.Quantity.String(),
					"requested": req.Quantity.String(),
				})
		}
		item.Quantity = next

		if _, err := repo.CreateMovement(ctx, movement); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record stock movement")
		}
		if err := repo.UpdateItem(ctx, item); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update stock quantity")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toMovementResponse(movement), nil
}

func (s *service) ListMovements(ctx context.Context, itemID uuid.UUID) ([]MovementResponse, error) {
	if _, err := s.findItem(ctx, itemID); err != nil {
		return nil, err
	}
	rows, err := s.repo.ListMovements(ctx, itemID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list stock movements")
	}
	return toMovementResponses(rows), nil
}

func (s *service) findItem(ctx context.Context, id uuid.UUID) (*models.StockItem, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "stock item id is required")
	}
	item, err := s.repo.FindItemByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "stock item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup stock item")
	}
	return item, nil
}

func applyDelta(current decimal.Decimal, movementType enums.StockMovementType, quantity decimal.Decimal) decimal.Decimal {
	switch movementType {
	case enums.StockMovementPurchase:
		return current.Add(quantity)
	case enums.StockMovementUsage:
		return current.Sub(quantity)
	default:
		return current.Add(quantity)
	}
}

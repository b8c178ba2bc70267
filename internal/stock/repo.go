package stock

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kolamtech/tambak-backend/pkg/db/models"
)

// Repository exposes stock persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a stock repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx rebinds the repository to the supplied transaction handle.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// CreateItem inserts a new stock item row.
func (r *Repository) CreateItem(ctx context.Context, item *models.StockItem) (*models.StockItem, error) {
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

// ListItems returns stock items ordered by name.
func (r *Repository) ListItems(ctx context.Context) ([]models.StockItem, error) {
	var rows []models.StockItem
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// FindItemByID loads a stock item by its UUID.
func (r *Repository) FindItemByID(ctx context.Context, id uuid.UUID) (*models.StockItem, error) {
	var item models.StockItem
	if err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// UpdateItem persists the full stock item row.
func (r *Repository) UpdateItem(ctx context.Context, item *models.StockItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

// CreateMovement inserts one quantity change row.
func (r *Repository) CreateMovement(ctx context.Context, movement *models.StockMovement) (*models.StockMovement, error) {
	if err := r.db.WithContext(ctx).Create(movement).Error; err != nil {
		return nil, err
	}
	return movement, nil
}

// ListMovements returns an item's movements, newest first.
func (r *Repository) ListMovements(ctx context.Context, itemID uuid.UUID) ([]models.StockMovement, error) {
	var rows []models.StockMovement
	err := r.db.WithContext(ctx).
		Where("stock_item_id = ?", itemID).
		Order("date DESC").Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

package ponds

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kolamtech/tambak-backend/pkg/db/models"
)

// Repository exposes pond persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a pond repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new pond row.
func (r *Repository) Create(ctx context.Context, pond *models.Pond) (*models.Pond, error) {
	if err := r.db.WithContext(ctx).Create(pond).Error; err != nil {
		return nil, err
	}
	return pond, nil
}

// List returns all ponds ordered by name.
func (r *Repository) List(ctx context.Context) ([]models.Pond, error) {
	var rows []models.Pond
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// FindByID loads a pond by its UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Pond, error) {
	var pond models.Pond
	if err := r.db.WithContext(ctx).First(&pond, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &pond, nil
}

// Update persists the full pond row.
func (r *Repository) Update(ctx context.Context, pond *models.Pond) error {
	return r.db.WithContext(ctx).Save(pond).Error
}

// Delete removes the pond row.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Pond{}, "id = ?", id).Error
}

// CountReferences reports how many sales and expenses still point at the pond.
func (r *Repository) CountReferences(ctx context.Context, id uuid.UUID) (int64, error) {
	var sales int64
	if err := r.db.WithContext(ctx).Model(&models.SaleTransaction{}).Where("pond_id = ?", id).Count(&sales).Error; err != nil {
		return 0, err
	}
	var expenses int64
	if err := r.db.WithContext(ctx).Model(&models.Expense{}).Where("pond_id = ?", id).Count(&expenses).Error; err != nil {
		return 0, err
	}
	return sales + expenses, nil
}

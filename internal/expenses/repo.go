package expenses

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/kolamtech/tambak-backend/pkg/db/models"
	"github.com/kolamtech/tambak-backend/pkg/enums"
)

// ListQuery narrows the expense listing at the SQL level.
type ListQuery struct {
	Category *enums.ExpenseCategory
	PondID   *uuid.UUID
	From     *time.Time
	To       *time.Time
	Limit    int
}

// Repository exposes expense persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs an expense repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new expense row.
func (r *Repository) Create(ctx context.Context, expense *models.Expense) (*models.Expense, error) {
	if err := r.db.WithContext(ctx).Create(expense).Error; err != nil {
		return nil, err
	}
	return expense, nil
}

// FindByID loads an expense with its pond.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Expense, error) {
	var expense models.Expense
	err := r.db.WithContext(ctx).
		Preload("Pond").
		First(&expense, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &expense, nil
}

// List returns expenses newest first, filtered and capped per the query.
func (r *Repository) List(ctx context.Context, q ListQuery) ([]models.Expense, error) {
	query := r.db.WithContext(ctx).
		Model(&models.Expense{}).
		Preload("Pond")
	if q.Category != nil {
		query = query.Where("category = ?", *q.Category)
	}
	if q.PondID != nil {
		query = query.Where("pond_id = ?", *q.PondID)
	}
	if q.From != nil {
		query = query.Where("date >= ?", *q.From)
	}
	if q.To != nil {
		query = query.Where("date <= ?", *q.To)
	}
	if q.Limit > 0 {
		query = query.Limit(q.Limit)
	}

	var rows []models.Expense
	err := query.Order("date DESC").Order("created_at DESC").Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// Update persists the full expense row without touching preloaded associations.
func (r *Repository) Update(ctx context.Context, expense *models.Expense) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(expense).Error
}

// Delete removes the expense row.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Expense{}, "id = ?", id).Error
}

package transactions

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/kolamtech/tambak-backend/pkg/db/models"
	"github.com/kolamtech/tambak-backend/pkg/enums"
	"github.com/kolamtech/tambak-backend/pkg/pagination"
)

// ListQuery narrows the sales listing at the SQL level.
type ListQuery struct {
	PaymentStatus *enums.PaymentStatus
	CustomerID    *uuid.UUID
	PondID        *uuid.UUID
	From          *time.Time
	To            *time.Time
	Cursor        *pagination.Cursor
	Limit         int
}

// Repository exposes sale transaction persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a sales repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx rebinds the repository to the supplied transaction handle.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// Create inserts a new sale row.
func (r *Repository) Create(ctx context.Context, sale *models.SaleTransaction) (*models.SaleTransaction, error) {
	if err := r.db.WithContext(ctx).Create(sale).Error; err != nil {
		return nil, err
	}
	return sale, nil
}

// FindByID loads a sale with its pond and customer.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.SaleTransaction, error) {
	var sale models.SaleTransaction
	err := r.db.WithContext(ctx).
		Preload("Pond").
		Preload("Customer").
		First(&sale, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &sale, nil
}

// List returns sales newest first, filtered and capped per the query.
func (r *Repository) List(ctx context.Context, q ListQuery) ([]models.SaleTransaction, error) {
	query := r.db.WithContext(ctx).
		Model(&models.SaleTransaction{}).
		Preload("Pond").
		Preload("Customer")
	if q.PaymentStatus != nil {
		query = query.Where("payment_status = ?", *q.PaymentStatus)
	}
	if q.CustomerID != nil {
		query = query.Where("customer_id = ?", *q.CustomerID)
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
	if q.Cursor != nil {
		query = query.Where(
			"created_at < ? OR (created_at = ? AND id < ?)",
			q.Cursor.CreatedAt, q.Cursor.CreatedAt, q.Cursor.ID,
		)
	}
	if q.Limit > 0 {
		query = query.Limit(q.Limit)
	}

	var rows []models.SaleTransaction
	err := query.Order("created_at DESC").Order("id DESC").Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// Update persists the full sale row without touching preloaded associations.
func (r *Repository) Update(ctx context.Context, sale *models.SaleTransaction) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(sale).Error
}

// Delete removes the sale row.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.SaleTransaction{}, "id = ?", id).Error
}

package customers

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kolamtech/tambak-backend/pkg/db/models"
)

// Repository exposes customer persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a customer repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new customer row.
func (r *Repository) Create(ctx context.Context, customer *models.Customer) (*models.Customer, error) {
	if err := r.db.WithContext(ctx).Create(customer).Error; err != nil {
		return nil, err
	}
	return customer, nil
}

// List returns customers ordered by name, optionally filtered by a name substring.
func (r *Repository) List(ctx context.Context, search string) ([]models.Customer, error) {
	query := r.db.WithContext(ctx).Model(&models.Customer{})
	if search != "" {
		query = query.Where("name LIKE ?", "%"+search+"%")
	}
	var rows []models.Customer
	if err := query.Order("name ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// FindByID loads a customer by its UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Customer, error) {
	var customer models.Customer
	if err := r.db.WithContext(ctx).First(&customer, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

// Update persists the full customer row.
func (r *Repository) Update(ctx context.Context, customer *models.Customer) error {
	return r.db.WithContext(ctx).Save(customer).Error
}

// Delete removes the customer row.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Customer{}, "id = ?", id).Error
}

// CountReferences reports how many sales and debts still point at the customer.
func (r *Repository) CountReferences(ctx context.Context, id uuid.UUID) (int64, error) {
	var sales int64
	if err := r.db.WithContext(ctx).Model(&models.SaleTransaction{}).Where("customer_id = ?", id).Count(&sales).Error; err != nil {
		return 0, err
	}
	var debts int64
	if err := r.db.WithContext(ctx).Model(&models.Debt{}).Where("customer_id = ?", id).Count(&debts).Error; err != nil {
		return 0, err
	}
	return sales + debts, nil
}

package debts

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/kolamtech/tambak-backend/pkg/db/models"
)

// Repository exposes receivable persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a debts repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx rebinds the repository to the supplied transaction handle.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// Create inserts a new debt row.
func (r *Repository) Create(ctx context.Context, debt *models.Debt) (*models.Debt, error) {
	if err := r.db.WithContext(ctx).Create(debt).Error; err != nil {
		return nil, err
	}
	return debt, nil
}

// FindByID loads a debt with its customer, originating sale, and payments.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Debt, error) {
	var debt models.Debt
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Transaction").
		Preload("Payments", func(q *gorm.DB) *gorm.DB {
			return q.Order("payment_date DESC").Order("created_at DESC")
		}).
		First(&debt, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &debt, nil
}

// FindByTransactionID loads the debt opened by a sale, payments included.
func (r *Repository) FindByTransactionID(ctx context.Context, transactionID uuid.UUID) (*models.Debt, error) {
	var debt models.Debt
	err := r.db.WithContext(ctx).
		Preload("Payments").
		First(&debt, "transaction_id = ?", transactionID).Error
	if err != nil {
		return nil, err
	}
	return &debt, nil
}

// List returns debts with customer and sale context, newest first.
func (r *Repository) List(ctx context.Context, customerID *uuid.UUID) ([]models.Debt, error) {
	query := r.db.WithContext(ctx).
		Model(&models.Debt{}).
		Preload("Customer").
		Preload("Transaction").
		Preload("Payments")
	if customerID != nil {
		query = query.Where("customer_id = ?", *customerID)
	}

	var rows []models.Debt
	if err := query.Order("created_at DESC").Order("id DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Update persists the full debt row without touching preloaded associations.
func (r *Repository) Update(ctx context.Context, debt *models.Debt) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(debt).Error
}

// Delete removes the debt row. Payment rows are removed separately by callers
// running inside a transaction.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Debt{}, "id = ?", id).Error
}

// CreatePayment inserts one installment row.
func (r *Repository) CreatePayment(ctx context.Context, payment *models.DebtPayment) (*models.DebtPayment, error) {
	if err := r.db.WithContext(ctx).Create(payment).Error; err != nil {
		return nil, err
	}
	return payment, nil
}

// ListPayments returns a debt's installments, newest first. Unknown debt ids
// yield an empty slice.
func (r *Repository) ListPayments(ctx context.Context, debtID uuid.UUID) ([]models.DebtPayment, error) {
	var rows []models.DebtPayment
	err := r.db.WithContext(ctx).
		Where("debt_id = ?", debtID).
		Order("payment_date DESC").Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// SumPayments totals the installments applied against a debt.
func (r *Repository) SumPayments(ctx context.Context, debtID uuid.UUID) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&models.DebtPayment{}).
		Where("debt_id = ?", debtID).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, err
	}
	return total, nil
}

// CountPayments reports how many installments a debt has.
func (r *Repository) CountPayments(ctx context.Context, debtID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.DebtPayment{}).
		Where("debt_id = ?", debtID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

// DeletePayments removes all installments tied to a debt.
func (r *Repository) DeletePayments(ctx context.Context, debtID uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.DebtPayment{}, "debt_id = ?", debtID).Error
}

// SumOutstanding totals remaining balances across debts whose payments do not
// cover the amount yet.
func (r *Repository) SumOutstanding(ctx context.Context) (int64, error) {
	rows, err := r.List(ctx, nil)
	if err != nil {
		return 0, err
	}
	var outstanding int64
	for i := range rows {
		remaining := rows[i].Amount - paymentsTotal(rows[i].Payments)
		if remaining > 0 {
			outstanding += remaining
		}
	}
	return outstanding, nil
}

func paymentsTotal(payments []models.DebtPayment) int64 {
	var total int64
	for _, p := range payments {
		total += p.Amount
	}
	return total
}

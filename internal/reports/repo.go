package reports

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/kolamtech/tambak-backend/pkg/db/models"
)

// dateAmount is one dated money row used for in-memory bucketing. Grouping by
// month happens in Go so the SQL stays portable across sqlite and postgres.
type dateAmount struct {
	Date   time.Time
	Amount int64
}

type categoryAmount struct {
	Category string
	Amount   int64
}

// Repository exposes the read-only aggregates behind financial reports.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a reports repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// SumIncome totals sale transaction totals inside the optional date range.
func (r *Repository) SumIncome(ctx context.Context, from, to *time.Time) (int64, error) {
	query := r.db.WithContext(ctx).Model(&models.SaleTransaction{})
	if from != nil {
		query = query.Where("date >= ?", *from)
	}
	if to != nil {
		query = query.Where("date <= ?", *to)
	}
	var total int64
	if err := query.Select("COALESCE(SUM(total), 0)").Scan(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

// ExpenseBreakdown totals expenses per category inside the optional date range.
func (r *Repository) ExpenseBreakdown(ctx context.Context, from, to *time.Time) ([]categoryAmount, error) {
	query := r.db.WithContext(ctx).Model(&models.Expense{})
	if from != nil {
		query = query.Where("date >= ?", *from)
	}
	if to != nil {
		query = query.Where("date <= ?", *to)
	}
	var rows []categoryAmount
	err := query.
		Select("category AS category, COALESCE(SUM(amount), 0) AS amount").
		Group("category").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// IncomeRows returns dated sale totals for one calendar year.
func (r *Repository) IncomeRows(ctx context.Context, year int) ([]dateAmount, error) {
	from, to := yearBounds(year)
	var rows []dateAmount
	err := r.db.WithContext(ctx).
		Model(&models.SaleTransaction{}).
		Select("date AS date, total AS amount").
		Where("date >= ? AND date <= ?", from, to).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// ExpenseRows returns dated expense amounts for one calendar year.
func (r *Repository) ExpenseRows(ctx context.Context, year int) ([]dateAmount, error) {
	from, to := yearBounds(year)
	var rows []dateAmount
	err := r.db.WithContext(ctx).
		Model(&models.Expense{}).
		Select("date AS date, amount AS amount").
		Where("date >= ? AND date <= ?", from, to).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func yearBounds(year int) (time.Time, time.Time) {
	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(year, time.December, 31, 23, 59, 59, 0, time.UTC)
	return from, to
}

package reports

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/kolamtech/tambak-backend/internal/debts"
	"github.com/kolamtech/tambak-backend/pkg/db/models"
	"github.com/kolamtech/tambak-backend/pkg/enums"
	pkgerrors "github.com/kolamtech/tambak-backend/pkg/errors"
)

func setupReportsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	statements := []string{
		`CREATE TABLE customers (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  phone TEXT NOT NULL DEFAULT '',
  address TEXT NOT NULL DEFAULT '',
  notes TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE sale_transactions (
  id TEXT PRIMARY KEY,
  date DATETIME NOT NULL,
  pond_id TEXT,
  customer_id TEXT NOT NULL,
  weight_kg NUMERIC NOT NULL,
  price_per_kg INTEGER NOT NULL,
  total INTEGER NOT NULL,
  payment_method TEXT NOT NULL DEFAULT 'cash',
  payment_status TEXT NOT NULL DEFAULT 'paid',
  notes TEXT,
  created_by TEXT NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE expenses (
  id TEXT PRIMARY KEY,
  date DATETIME NOT NULL,
  category TEXT NOT NULL,
  amount INTEGER NOT NULL,
  pond_id TEXT,
  description TEXT NOT NULL DEFAULT '',
  created_by TEXT NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE debts (
  id TEXT PRIMARY KEY,
  transaction_id TEXT UNIQUE,
  customer_id TEXT NOT NULL,
  amount INTEGER NOT NULL,
  paid_amount INTEGER NOT NULL DEFAULT 0,
  status TEXT NOT NULL DEFAULT 'unpaid',
  due_date DATETIME,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE debt_payments (
  id TEXT PRIMARY KEY,
  debt_id TEXT NOT NULL,
  payment_date DATETIME NOT NULL,
  amount INTEGER NOT NULL,
  payment_method TEXT NOT NULL DEFAULT 'cash',
  notes TEXT,
  created_at DATETIME
);`,
	}
	for _, stmt := range statements {
		require.NoError(t, db.Exec(stmt).Error)
	}
	return db
}

func newReportsService(t *testing.T, db *gorm.DB) Service {
	t.Helper()
	svc, err := NewService(NewRepository(db), debts.NewRepository(db))
	require.NoError(t, err)
	return svc
}

func seedSale(t *testing.T, db *gorm.DB, date time.Time, total int64) {
	t.Helper()
	require.NoError(t, db.Create(&models.SaleTransaction{
		Date:       date,
		CustomerID: uuid.New(),
		WeightKg:   decimal.RequireFromString("1"),
		PricePerKg: total,
		Total:      total,
		CreatedBy:  uuid.New(),
	}).Error)
}

func seedExpense(t *testing.T, db *gorm.DB, date time.Time, category enums.ExpenseCategory, amount int64) {
	t.Helper()
	require.NoError(t, db.Create(&models.Expense{
		Date:      date,
		Category:  category,
		Amount:    amount,
		CreatedBy: uuid.New(),
	}).Error)
}

func seedOpenDebt(t *testing.T, db *gorm.DB, amount, paid int64) {
	t.Helper()
	debt := &models.Debt{CustomerID: uuid.New(), Amount: amount}
	require.NoError(t, db.Create(debt).Error)
	if paid > 0 {
		require.NoError(t, db.Create(&models.DebtPayment{
			DebtID:      debt.ID,
			PaymentDate: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
			Amount:      paid,
		}).Error)
	}
}

func TestSummary(t *testing.T) {
	db := setupReportsTestDB(t)
	svc := newReportsService(t, db)
	ctx := context.Background()

	march := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	april := time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC)
	seedSale(t, db, march, 500000)
	seedSale(t, db, march, 250000)
	seedSale(t, db, april, 900000)
	seedExpense(t, db, march, enums.ExpenseCategoryFeed, 150000)
	seedExpense(t, db, march, enums.ExpenseCategorySalary, 200000)
	seedExpense(t, db, april, enums.ExpenseCategoryFeed, 100000)
	seedOpenDebt(t, db, 300000, 120000)
	seedOpenDebt(t, db, 50000, 50000)

	from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 31, 23, 59, 59, 0, time.UTC)
	summary, err := svc.Summary(ctx, &from, &to)
	require.NoError(t, err)

	assert.Equal(t, int64(750000), summary.Income)
	assert.Equal(t, int64(350000), summary.Expenses)
	assert.Equal(t, int64(400000), summary.Profit)
	assert.Equal(t, int64(150000), summary.ExpensesByCategory["feed"])
	assert.Equal(t, int64(200000), summary.ExpensesByCategory["salary"])
	// Fully covered debts contribute nothing to the outstanding total.
	assert.Equal(t, int64(180000), summary.OutstandingReceivables)
}

func TestSummaryRejectsInvertedRange(t *testing.T) {
	svc := newReportsService(t, setupReportsTestDB(t))

	from := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	_, err := svc.Summary(context.Background(), &from, &to)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestMonthlyZeroFillsAllMonths(t *testing.T) {
	db := setupReportsTestDB(t)
	svc := newReportsService(t, db)

	seedSale(t, db, time.Date(2026, 2, 5, 0, 0, 0, 0, time.UTC), 400000)
	seedSale(t, db, time.Date(2026, 2, 20, 0, 0, 0, 0, time.UTC), 100000)
	seedExpense(t, db, time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC), enums.ExpenseCategoryFeed, 120000)
	seedExpense(t, db, time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC), enums.ExpenseCategoryOther, 30000)
	// Outside the requested year.
	seedSale(t, db, time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC), 999999)

	monthly, err := svc.Monthly(context.Background(), 2026)
	require.NoError(t, err)
	require.Len(t, monthly.Months, 12)

	assert.Equal(t, "2026-01", monthly.Months[0].Month)
	assert.Equal(t, int64(0), monthly.Months[0].Income)

	feb := monthly.Months[1]
	assert.Equal(t, "2026-02", feb.Month)
	assert.Equal(t, int64(500000), feb.Income)
	assert.Equal(t, int64(120000), feb.Expenses)
	assert.Equal(t, int64(380000), feb.Profit)

	jul := monthly.Months[6]
	assert.Equal(t, int64(-30000), jul.Profit)
}

func TestMonthlyRejectsBogusYear(t *testing.T) {
	svc := newReportsService(t, setupReportsTestDB(t))

	_, err := svc.Monthly(context.Background(), 190)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

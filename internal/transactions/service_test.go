package transactions

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

type testRunner struct {
	db *gorm.DB
}

func (r testRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}

type dbCustomerFinder struct {
	db *gorm.DB
}

func (f dbCustomerFinder) FindByID(ctx context.Context, id uuid.UUID) (*models.Customer, error) {
	var customer models.Customer
	if err := f.db.WithContext(ctx).First(&customer, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

type dbPondFinder struct {
	db *gorm.DB
}

func (f dbPondFinder) FindByID(ctx context.Context, id uuid.UUID) (*models.Pond, error) {
	var pond models.Pond
	if err := f.db.WithContext(ctx).First(&pond, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &pond, nil
}

func setupSalesTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// A named shared-cache DSN keeps one database across pooled connections
	// while isolating tests from each other.
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
		`CREATE TABLE ponds (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL UNIQUE,
  location TEXT NOT NULL DEFAULT '',
  area_m2 NUMERIC NOT NULL DEFAULT 0,
  species TEXT NOT NULL DEFAULT '',
  status TEXT NOT NULL DEFAULT 'active',
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

func newSalesService(t *testing.T, db *gorm.DB) (Service, *debts.Repository) {
	t.Helper()

	debtsRepo := debts.NewRepository(db)
	svc, err := NewService(ServiceParams{
		Runner:    testRunner{db: db},
		Sales:     NewRepository(db),
		Debts:     debtsRepo,
		Customers: dbCustomerFinder{db: db},
		Ponds:     dbPondFinder{db: db},
	})
	require.NoError(t, err)
	return svc, debtsRepo
}

func seedCustomer(t *testing.T, db *gorm.DB, name string) uuid.UUID {
	t.Helper()
	customer := &models.Customer{Name: name}
	require.NoError(t, db.Create(customer).Error)
	return customer.ID
}

func saleRequest(customerID uuid.UUID) UpsertTransactionRequest {
	return UpsertTransactionRequest{
		Date:       "2026-03-10",
		CustomerID: customerID,
		WeightKg:   decimal.RequireFromString("10.5"),
		PricePerKg: 28000,
	}
}

func TestComputeTotalRoundsHalfAwayFromZero(t *testing.T) {
	cases := []struct {
		weight string
		price  int64
		want   int64
	}{
		{"10.5", 28000, 294000},
		{"10", 1500, 15000},
		{"2.5", 1001, 2503},
		{"0.5", 1001, 501},
		{"1.25", 1000, 1250},
		{"0.33", 100, 33},
		{"2.345", 1000, 2345},
	}
	for _, tc := range cases {
		got := ComputeTotal(decimal.RequireFromString(tc.weight), tc.price)
		assert.Equal(t, tc.want, got, "weight=%s price=%d", tc.weight, tc.price)
	}
}

func TestCreateTransactionPaidOpensNoDebt(t *testing.T) {
	db := setupSalesTestDB(t)
	svc, debtsRepo := newSalesService(t, db)
	ctx := context.Background()
	customerID := seedCustomer(t, db, "Bu Sari")

	resp, err := svc.CreateTransaction(ctx, uuid.New(), saleRequest(customerID))
	require.NoError(t, err)
	assert.Equal(t, int64(294000), resp.Total)
	assert.Equal(t, "paid", resp.PaymentStatus)
	assert.Nil(t, resp.DebtID)

	_, err = debtsRepo.FindByTransactionID(ctx, resp.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestCreateTransactionUnpaidOpensDebt(t *testing.T) {
	db := setupSalesTestDB(t)
	svc, debtsRepo := newSalesService(t, db)
	ctx := context.Background()
	customerID := seedCustomer(t, db, "Pak Budi")

	req := saleRequest(customerID)
	req.PaymentStatus = "unpaid"
	due := "2026-04-01"
	req.DueDate = &due

	resp, err := svc.CreateTransaction(ctx, uuid.New(), req)
	require.NoError(t, err)
	require.NotNil(t, resp.DebtID)

	debt, err := debtsRepo.FindByTransactionID(ctx, resp.ID)
	require.NoError(t, err)
	assert.Equal(t, resp.Total, debt.Amount)
	assert.Equal(t, int64(0), debt.PaidAmount)
	assert.Equal(t, enums.DebtStatusUnpaid, debt.Status)
	require.NotNil(t, debt.DueDate)
	assert.Equal(t, "2026-04-01", debt.DueDate.Format("2006-01-02"))
}

func TestCreateTransactionRejectsBadInput(t *testing.T) {
	db := setupSalesTestDB(t)
	svc, _ := newSalesService(t, db)
	ctx := context.Background()
	customerID := seedCustomer(t, db, "Bu Sari")

	req := saleRequest(customerID)
	req.WeightKg = decimal.Zero
	_, err := svc.CreateTransaction(ctx, uuid.New(), req)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())

	req = saleRequest(uuid.New())
	_, err = svc.CreateTransaction(ctx, uuid.New(), req)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestUpdateTransactionPaidToUnpaidOpensDebt(t *testing.T) {
	db := setupSalesTestDB(t)
	svc, debtsRepo := newSalesService(t, db)
	ctx := context.Background()
	customerID := seedCustomer(t, db, "Bu Sari")

	created, err := svc.CreateTransaction(ctx, uuid.New(), saleRequest(customerID))
	require.NoError(t, err)

	req := saleRequest(customerID)
	req.PaymentStatus = "unpaid"
	updated, err := svc.UpdateTransaction(ctx, created.ID, req)
	require.NoError(t, err)
	require.NotNil(t, updated.DebtID)

	debt, err := debtsRepo.FindByTransactionID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, updated.Total, debt.Amount)
}

func TestUpdateTransactionNewTotalReflowsDebt(t *testing.T) {
	db := setupSalesTestDB(t)
	svc, debtsRepo := newSalesService(t, db)
	ctx := context.Background()
	customerID := seedCustomer(t, db, "Bu Sari")

	req := saleRequest(customerID)
	req.PaymentStatus = "unpaid"
	created, err := svc.CreateTransaction(ctx, uuid.New(), req)
	require.NoError(t, err)

	debt, err := debtsRepo.FindByTransactionID(ctx, created.ID)
	require.NoError(t, err)
	_, err = debtsRepo.CreatePayment(ctx, &models.DebtPayment{
		DebtID:        debt.ID,
		PaymentDate:   time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC),
		Amount:        294000,
		PaymentMethod: enums.PaymentMethodCash,
	})
	require.NoError(t, err)

	// Raising the total reopens the receivable even though the old amount
	// was fully covered.
	req.WeightKg = decimal.RequireFromString("20")
	updated, err := svc.UpdateTransaction(ctx, created.ID, req)
	require.NoError(t, err)
	assert.Equal(t, int64(560000), updated.Total)

	debt, err = debtsRepo.FindByTransactionID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(560000), debt.Amount)
	assert.Equal(t, int64(294000), debt.PaidAmount)
	assert.Equal(t, enums.DebtStatusUnpaid, debt.Status)
}

func TestUpdateTransactionUnpaidToPaidWithoutPaymentsDropsDebt(t *testing.T) {
	db := setupSalesTestDB(t)
	svc, debtsRepo := newSalesService(t, db)
	ctx := context.Background()
	customerID := seedCustomer(t, db, "Bu Sari")

	req := saleRequest(customerID)
	req.PaymentStatus = "unpaid"
	created, err := svc.CreateTransaction(ctx, uuid.New(), req)
	require.NoError(t, err)

	req.PaymentStatus = "paid"
	updated, err := svc.UpdateTransaction(ctx, created.ID, req)
	require.NoError(t, err)
	assert.Nil(t, updated.DebtID)

	_, err = debtsRepo.FindByTransactionID(ctx, created.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestUpdateTransactionUnpaidToPaidWithPaymentsClosesDebt(t *testing.T) {
	db := setupSalesTestDB(t)
	svc, debtsRepo := newSalesService(t, db)
	ctx := context.Background()
	customerID := seedCustomer(t, db, "Bu Sari")

	req := saleRequest(customerID)
	req.PaymentStatus = "unpaid"
	created, err := svc.CreateTransaction(ctx, uuid.New(), req)
	require.NoError(t, err)

	debt, err := debtsRepo.FindByTransactionID(ctx, created.ID)
	require.NoError(t, err)
	_, err = debtsRepo.CreatePayment(ctx, &models.DebtPayment{
		DebtID:        debt.ID,
		PaymentDate:   time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC),
		Amount:        100000,
		PaymentMethod: enums.PaymentMethodTransfer,
	})
	require.NoError(t, err)

	req.PaymentStatus = "paid"
	updated, err := svc.UpdateTransaction(ctx, created.ID, req)
	require.NoError(t, err)
	require.NotNil(t, updated.DebtID)

	debt, err = debtsRepo.FindByTransactionID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.DebtStatusPaid, debt.Status)
	assert.Equal(t, int64(100000), debt.PaidAmount)
	assert.Len(t, debt.Payments, 1)
}

func TestDeleteTransactionCascades(t *testing.T) {
	db := setupSalesTestDB(t)
	svc, debtsRepo := newSalesService(t, db)
	ctx := context.Background()
	customerID := seedCustomer(t, db, "Bu Sari")

	req := saleRequest(customerID)
	req.PaymentStatus = "unpaid"
	created, err := svc.CreateTransaction(ctx, uuid.New(), req)
	require.NoError(t, err)

	debt, err := debtsRepo.FindByTransactionID(ctx, created.ID)
	require.NoError(t, err)
	_, err = debtsRepo.CreatePayment(ctx, &models.DebtPayment{
		DebtID:        debt.ID,
		PaymentDate:   time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC),
		Amount:        50000,
		PaymentMethod: enums.PaymentMethodCash,
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteTransaction(ctx, created.ID))

	_, err = svc.GetTransaction(ctx, created.ID)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())

	_, err = debtsRepo.FindByTransactionID(ctx, created.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	payments, err := debtsRepo.ListPayments(ctx, debt.ID)
	require.NoError(t, err)
	assert.Empty(t, payments)
}

func TestListTransactionsFilters(t *testing.T) {
	db := setupSalesTestDB(t)
	svc, _ := newSalesService(t, db)
	ctx := context.Background()
	customerID := seedCustomer(t, db, "Bu Sari")
	otherID := seedCustomer(t, db, "Pak Budi")

	paid := saleRequest(customerID)
	_, err := svc.CreateTransaction(ctx, uuid.New(), paid)
	require.NoError(t, err)

	unpaid := saleRequest(otherID)
	unpaid.PaymentStatus = "unpaid"
	_, err = svc.CreateTransaction(ctx, uuid.New(), unpaid)
	require.NoError(t, err)

	page, err := svc.ListTransactions(ctx, ListTransactionsParams{PaymentStatus: "unpaid"})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, otherID, page.Items[0].CustomerID)
	assert.Empty(t, page.NextCursor)

	page, err = svc.ListTransactions(ctx, ListTransactionsParams{CustomerID: &customerID})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "paid", page.Items[0].PaymentStatus)

	_, err = svc.ListTransactions(ctx, ListTransactionsParams{PaymentStatus: "pending"})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestListTransactionsCursorPaging(t *testing.T) {
	db := setupSalesTestDB(t)
	svc, _ := newSalesService(t, db)
	ctx := context.Background()
	customerID := seedCustomer(t, db, "Bu Sari")

	for i := 0; i < 5; i++ {
		_, err := svc.CreateTransaction(ctx, uuid.New(), saleRequest(customerID))
		require.NoError(t, err)
	}

	first, err := svc.ListTransactions(ctx, ListTransactionsParams{Limit: 2})
	require.NoError(t, err)
	require.Len(t, first.Items, 2)
	require.NotEmpty(t, first.NextCursor)

	seen := map[uuid.UUID]bool{}
	for _, item := range first.Items {
		seen[item.ID] = true
	}

	second, err := svc.ListTransactions(ctx, ListTransactionsParams{Limit: 2, Cursor: first.NextCursor})
	require.NoError(t, err)
	require.Len(t, second.Items, 2)
	for _, item := range second.Items {
		assert.False(t, seen[item.ID], "page overlap on %s", item.ID)
		seen[item.ID] = true
	}

	third, err := svc.ListTransactions(ctx, ListTransactionsParams{Limit: 2, Cursor: second.NextCursor})
	require.NoError(t, err)
	require.Len(t, third.Items, 1)
	assert.Empty(t, third.NextCursor)

	_, err = svc.ListTransactions(ctx, ListTransactionsParams{Cursor: "%%%"})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

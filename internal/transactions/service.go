package transactions

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/kolamtech/tambak-backend/internal/debts"
	"github.com/kolamtech/tambak-backend/pkg/db/models"
	"github.com/kolamtech/tambak-backend/pkg/enums"
	pkgerrors "github.com/kolamtech/tambak-backend/pkg/errors"
	"github.com/kolamtech/tambak-backend/pkg/pagination"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type customerFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Customer, error)
}

type pondFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Pond, error)
}

// Service exposes sale transaction operations. Writes that touch both the
// sale and its receivable run in one database transaction.
type Service interface {
	ListTransactions(ctx context.Context, params ListTransactionsParams) (*TransactionListResponse, error)
	GetTransaction(ctx context.Context, id uuid.UUID) (*TransactionResponse, error)
	CreateTransaction(ctx context.Context, createdBy uuid.UUID, req UpsertTransactionRequest) (*TransactionResponse, error)
	UpdateTransaction(ctx context.Context, id uuid.UUID, req UpsertTransactionRequest) (*TransactionResponse, error)
	DeleteTransaction(ctx context.Context, id uuid.UUID) error
}

// ServiceParams wires the sale transaction service dependencies.
type ServiceParams struct {
	Runner    txRunner
	Sales     *Repository
	Debts     *debts.Repository
	Customers customerFinder
	Ponds     pondFinder
}

type service struct {
	runner    txRunner
	sales     *Repository
	debts     *debts.Repository
	customers customerFinder
	ponds     pondFinder
}

// NewService builds a sale transaction service from its dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Runner == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if params.Sales == nil {
		return nil, fmt.Errorf("sales repository required")
	}
	if params.Debts == nil {
		return nil, fmt.Errorf("debts repository required")
	}
	if params.Customers == nil {
		return nil, fmt.Errorf("customer finder required")
	}
	if params.Ponds == nil {
		return nil, fmt.Errorf("pond finder required")
	}
	return &service{
		runner:    params.Runner,
		sales:     params.Sales,
		debts:     params.Debts,
		customers: params.Customers,
		ponds:     params.Ponds,
	}, nil
}

// ComputeTotal multiplies weight by the per-kg price and rounds half away
// from zero to whole rupiah.
func ComputeTotal(weightKg decimal.Decimal, pricePerKg int64) int64 {
	return weightKg.Mul(decimal.NewFromInt(pricePerKg)).Round(0).IntPart()
}

func (s *service) ListTransactions(ctx context.Context, params ListTransactionsParams) (*TransactionListResponse, error) {
	// Fetch one extra row to detect whether another page exists.
	q := ListQuery{
		CustomerID: params.CustomerID,
		PondID:     params.PondID,
		From:       params.From,
		To:         params.To,
		Limit:      pagination.LimitWithBuffer(params.Limit),
	}
	if params.PaymentStatus != "" {
		parsed, err := enums.ParsePaymentStatus(params.PaymentStatus)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid payment status")
		}
		q.PaymentStatus = &parsed
	}
	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid cursor")
	}
	q.Cursor = cursor

	rows, err := s.sales.List(ctx, q)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list transactions")
	}

	limit := pagination.NormalizeLimit(params.Limit)
	var nextCursor string
	if len(rows) > limit {
		rows = rows[:limit]
		last := rows[len(rows)-1]
		nextCursor = pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
	}
	return &TransactionListResponse{Items: toResponses(rows), NextCursor: nextCursor}, nil
}

func (s *service) GetTransaction(ctx context.Context, id uuid.UUID) (*TransactionResponse, error) {
	sale, err := s.findSale(ctx, id)
	if err != nil {
		return nil, err
	}
	debtID, err := s.lookupDebtID(ctx, sale.ID)
	if err != nil {
		return nil, err
	}
	return toResponse(sale, debtID), nil
}

func (s *service) CreateTransaction(ctx context.Context, createdBy uuid.UUID, req UpsertTransactionRequest) (*TransactionResponse, error) {
	if createdBy == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing actor")
	}
	sale := &models.SaleTransaction{CreatedBy: createdBy}
	dueDate, err := s.applyRequest(ctx, sale, req)
	if err != nil {
		return nil, err
	}

	var debtID *uuid.UUID
	err = s.runner.WithTx(ctx, func(tx *gorm.DB) error {
		salesRepo := s.sales.WithTx(tx)
		if _, err := salesRepo.Create(ctx, sale); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create transaction")
		}
		if sale.PaymentStatus != enums.PaymentStatusUnpaid {
			return nil
		}
		debt := &models.Debt{
			TransactionID: &sale.ID,
			CustomerID:    sale.CustomerID,
			Amount:        sale.Total,
			PaidAmount:    0,
			Status:        enums.DebtStatusUnpaid,
			DueDate:       dueDate,
		}
		if _, err := s.debts.WithTx(tx).Create(ctx, debt); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "open debt for transaction")
		}
		debtID = &debt.ID
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toResponse(sale, debtID), nil
}

func (s *service) UpdateTransaction(ctx context.Context, id uuid.UUID, req UpsertTransactionRequest) (*TransactionResponse, error) {
	sale, err := s.findSale(ctx, id)
	if err != nil {
		return nil, err
	}
	dueDate, err := s.applyRequest(ctx, sale, req)
	if err != nil {
		return nil, err
	}

	var debtID *uuid.UUID
	err = s.runner.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.sales.WithTx(tx).Update(ctx, sale); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update transaction")
		}
		id, err := s.syncDebt(ctx, s.debts.WithTx(tx), sale, dueDate)
		if err != nil {
			return err
		}
		debtID = id
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toResponse(sale, debtID), nil
}

func (s *service) DeleteTransaction(ctx context.Context, id uuid.UUID) error {
	sale, err := s.findSale(ctx, id)
	if err != nil {
		return err
	}
	// Sale, its debt, and that debt's payments go in one transaction.
	return s.runner.WithTx(ctx, func(tx *gorm.DB) error {
		debtsRepo := s.debts.WithTx(tx)
		debt, err := debtsRepo.FindByTransactionID(ctx, sale.ID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup debt")
		}
		if debt != nil {
			if err := debtsRepo.DeletePayments(ctx, debt.ID); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete debt payments")
			}
			if err := debtsRepo.Delete(ctx, debt.ID); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete debt")
			}
		}
		if err := s.sales.WithTx(tx).Delete(ctx, sale.ID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete transaction")
		}
		return nil
	})
}

// syncDebt reconciles the receivable with the sale's new payment status and
// total. Runs inside the caller's transaction.
func (s *service) syncDebt(ctx context.Context, debtsRepo *debts.Repository, sale *models.SaleTransaction, dueDate *time.Time) (*uuid.UUID, error) {
	debt, err := debtsRepo.FindByTransactionID(ctx, sale.ID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup debt")
	}

	if sale.PaymentStatus == enums.PaymentStatusUnpaid {
		if debt == nil {
			created := &models.Debt{
				TransactionID: &sale.ID,
				CustomerID:    sale.CustomerID,
				Amount:        sale.Total,
				PaidAmount:    0,
				Status:        enums.DebtStatusUnpaid,
				DueDate:       dueDate,
			}
			if _, err := debtsRepo.Create(ctx, created); err != nil {
				return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "open debt for transaction")
			}
			return &created.ID, nil
		}
		paid, err := debtsRepo.SumPayments(ctx, debt.ID)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "sum payments")
		}
		debt.CustomerID = sale.CustomerID
		debt.Amount = sale.Total
		debt.PaidAmount = paid
		debt.Status = debts.DeriveStatus(debt.Amount, paid)
		debt.DueDate = dueDate
		if err := debtsRepo.Update(ctx, debt); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update debt")
		}
		return &debt.ID, nil
	}

	if debt == nil {
		return nil, nil
	}
	count, err := debtsRepo.CountPayments(ctx, debt.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count payments")
	}
	if count > 0 {
		// Installments were already recorded against the sale. Keep the
		// history and close the receivable instead of dropping rows.
		paid, err := debtsRepo.SumPayments(ctx, debt.ID)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "sum payments")
		}
		debt.PaidAmount = paid
		debt.Status = enums.DebtStatusPaid
		if err := debtsRepo.Update(ctx, debt); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "close debt")
		}
		return &debt.ID, nil
	}
	if err := debtsRepo.Delete(ctx, debt.ID); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete debt")
	}
	return nil, nil
}

func (s *service) applyRequest(ctx context.Context, sale *models.SaleTransaction, req UpsertTransactionRequest) (*time.Time, error) {
	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid date")
	}
	if !req.WeightKg.IsPositive() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "weight_kg must be positive")
	}
	if req.PricePerKg <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price_per_kg must be positive")
	}

	if _, err := s.customers.FindByID(ctx, req.CustomerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup customer")
	}
	if req.PondID != nil {
		if _, err := s.ponds.FindByID(ctx, *req.PondID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, pkgerrors.New(pkgerrors.CodeValidation, "pond not found")
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup pond")
		}
	}

	method := enums.PaymentMethodCash
	if req.PaymentMethod != "" {
		parsed, err := enums.ParsePaymentMethod(req.PaymentMethod)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid payment method")
		}
		method = parsed
	}
	status := enums.PaymentStatusPaid
	if req.PaymentStatus != "" {
		parsed, err := enums.ParsePaymentStatus(req.PaymentStatus)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid payment status")
		}
		status = parsed
	}
	var dueDate *time.Time
	if req.DueDate != nil && strings.TrimSpace(*req.DueDate) != "" {
		parsed, err := time.Parse(dateLayout, *req.DueDate)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid due_date")
		}
		dueDate = &parsed
	}

	sale.Date = date
	sale.PondID = req.PondID
	sale.CustomerID = req.CustomerID
	sale.WeightKg = req.WeightKg
	sale.PricePerKg = req.PricePerKg
	sale.Total = ComputeTotal(req.WeightKg, req.PricePerKg)
	sale.PaymentMethod = method
	sale.PaymentStatus = status
	sale.Notes = req.Notes
	return dueDate, nil
}

func (s *service) findSale(ctx context.Context, id uuid.UUID) (*models.SaleTransaction, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "transaction id is required")
	}
	sale, err := s.sales.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "transaction not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup transaction")
	}
	return sale, nil
}

func (s *service) lookupDebtID(ctx context.Context, saleID uuid.UUID) (*uuid.UUID, error) {
	debt, err := s.debts.FindByTransactionID(ctx, saleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup debt")
	}
	return &debt.ID, nil
}

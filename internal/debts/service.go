package debts

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

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

// Service exposes receivable operations. Listed and returned statuses are
// always derived from the payment sum, never read from the cached column.
type Service interface {
	ListDebts(ctx context.Context, params ListDebtsParams) ([]DebtResponse, error)
	GetDebt(ctx context.Context, id uuid.UUID) (*DebtDetailResponse, error)
	CreateDebt(ctx context.Context, req CreateDebtRequest) (*DebtResponse, error)
	RecordPayment(ctx context.Context, debtID uuid.UUID, req RecordPaymentRequest) (*PaymentResponse, error)
	ListPayments(ctx context.Context, debtID uuid.UUID) ([]PaymentResponse, error)
}

// ServiceParams wires the debt service dependencies.
type ServiceParams struct {
	Runner    txRunner
	Repo      *Repository
	Customers customerFinder
}

type service struct {
	runner    txRunner
	repo      *Repository
	customers customerFinder
}

// NewService builds a debt service from its dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Runner == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if params.Repo == nil {
		return nil, fmt.Errorf("debt repository required")
	}
	if params.Customers == nil {
		return nil, fmt.Errorf("customer finder required")
	}
	return &service{runner: params.Runner, repo: params.Repo, customers: params.Customers}, nil
}

func (s *service) ListDebts(ctx context.Context, params ListDebtsParams) ([]DebtResponse, error) {
	var statusFilter *enums.DebtStatus
	if params.Status != "" {
		parsed, err := enums.ParseDebtStatus(params.Status)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid debt status")
		}
		statusFilter = &parsed
	}

	rows, err := s.repo.List(ctx, params.CustomerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list debts")
	}

	limit := pagination.NormalizeLimit(params.Limit)
	items := make([]DebtResponse, 0, len(rows))
	for i := range rows {
		paid := paymentsTotal(rows[i].Payments)
		if statusFilter != nil && DeriveStatus(rows[i].Amount, paid) != *statusFilter {
			continue
		}
		items = append(items, *toResponse(&rows[i], paid))
		if len(items) >= limit {
			break
		}
	}
	return items, nil
}

func (s *service) GetDebt(ctx context.Context, id uuid.UUID) (*DebtDetailResponse, error) {
	debt, err := s.findDebt(ctx, id)
	if err != nil {
		return nil, err
	}
	paid := paymentsTotal(debt.Payments)
	return &DebtDetailResponse{
		DebtResponse: *toResponse(debt, paid),
		Payments:     toPaymentResponses(debt.Payments),
	}, nil
}

func (s *service) CreateDebt(ctx context.Context, req CreateDebtRequest) (*DebtResponse, error) {
	if req.Amount <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "amount must be positive")
	}
	if _, err := s.customers.FindByID(ctx, req.CustomerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup customer")
	}

	debt := &models.Debt{
		CustomerID: req.CustomerID,
		Amount:     req.Amount,
		PaidAmount: 0,
		Status:     enums.DebtStatusUnpaid,
	}
	if req.DueDate != nil {
		due, err := time.Parse(dateLayout, *req.DueDate)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid due_date")
		}
		debt.DueDate = &due
	}

	created, err := s.repo.Create(ctx, debt)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create debt")
	}
	return toResponse(created, 0), nil
}

func (s *service) RecordPayment(ctx context.Context, debtID uuid.UUID, req RecordPaymentRequest) (*PaymentResponse, error) {
	if req.Amount <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "amount must be positive")
	}
	paymentDate, err := time.Parse(dateLayout, req.PaymentDate)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid payment_date")
	}
	method := enums.PaymentMethodCash
	if req.PaymentMethod != "" {
		parsed, err := enums.ParsePaymentMethod(req.PaymentMethod)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid payment method")
		}
		method = parsed
	}
	if _, err := s.findDebt(ctx, debtID); err != nil {
		return nil, err
	}

	payment := &models.DebtPayment{
		DebtID:        debtID,
		PaymentDate:   paymentDate,
		Amount:        req.Amount,
		PaymentMethod: method,
		Notes:         req.Notes,
	}
	// Insert and cache refresh commit together so the stored paid_amount and
	// status never drift from the payment sum.
	err = s.runner.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		debt, err := repo.FindByID(ctx, debtID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "debt not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup debt")
		}
		if _, err := repo.CreatePayment(ctx, payment); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record payment")
		}
		return refreshCache(ctx, repo, debt)
	})
	if err != nil {
		return nil, err
	}
	return toPaymentResponse(payment), nil
}

func (s *service) ListPayments(ctx context.Context, debtID uuid.UUID) ([]PaymentResponse, error) {
	rows, err := s.repo.ListPayments(ctx, debtID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list payments")
	}
	return toPaymentResponses(rows), nil
}

func (s *service) findDebt(ctx context.Context, id uuid.UUID) (*models.Debt, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "debt id is required")
	}
	debt, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "debt not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup debt")
	}
	return debt, nil
}

// refreshCache re-derives paid_amount and status from the payment sum and
// stores them on the debt row. Must run inside the caller's transaction.
func refreshCache(ctx context.Context, repo *Repository, debt *models.Debt) error {
	paid, err := repo.SumPayments(ctx, debt.ID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "sum payments")
	}
	debt.PaidAmount = paid
	debt.Status = DeriveStatus(debt.Amount, paid)
	if err := repo.Update(ctx, debt); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "refresh debt cache")
	}
	return nil
}

package expenses

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kolamtech/tambak-backend/pkg/db/models"
	"github.com/kolamtech/tambak-backend/pkg/enums"
	pkgerrors "github.com/kolamtech/tambak-backend/pkg/errors"
	"github.com/kolamtech/tambak-backend/pkg/pagination"
)

type pondFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Pond, error)
}

type expensesRepository interface {
	Create(ctx context.Context, expense *models.Expense) (*models.Expense, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Expense, error)
	List(ctx context.Context, q ListQuery) ([]models.Expense, error)
	Update(ctx context.Context, expense *models.Expense) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// Service exposes expense operations.
type Service interface {
	ListExpenses(ctx context.Context, params ListExpensesParams) ([]ExpenseResponse, error)
	GetExpense(ctx context.Context, id uuid.UUID) (*ExpenseResponse, error)
	CreateExpense(ctx context.Context, createdBy uuid.UUID, req UpsertExpenseRequest) (*ExpenseResponse, error)
	UpdateExpense(ctx context.Context, id uuid.UUID, req UpsertExpenseRequest) (*ExpenseResponse, error)
	DeleteExpense(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo  expensesRepository
	ponds pondFinder
}

// NewService builds an expense service from its dependencies.
func NewService(repo expensesRepository, ponds pondFinder) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("expense repository required")
	}
	if ponds == nil {
		return nil, fmt.Errorf("pond finder required")
	}
	return &service{repo: repo, ponds: ponds}, nil
}

func (s *service) ListExpenses(ctx context.Context, params ListExpensesParams) ([]ExpenseResponse, error) {
	q := ListQuery{
		PondID: params.PondID,
		From:   params.From,
		To:     params.To,
		Limit:  pagination.NormalizeLimit(params.Limit),
	}
	if params.Category != "" {
		parsed, err := enums.ParseExpenseCategory(params.Category)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid expense category")
		}
		q.Category = &parsed
	}

	rows, err := s.repo.List(ctx, q)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list expenses")
	}
	return toResponses(rows), nil
}

func (s *service) GetExpense(ctx context.Context, id uuid.UUID) (*ExpenseResponse, error) {
	expense, err := s.findExpense(ctx, id)
	if err != nil {
		return nil, err
	}
	return toResponse(expense), nil
}

func (s *service) CreateExpense(ctx context.Context, createdBy uuid.UUID, req UpsertExpenseRequest) (*ExpenseResponse, error) {
	if createdBy == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing actor")
	}
	expense := &models.Expense{CreatedBy: createdBy}
	if err := s.applyRequest(ctx, expense, req); err != nil {
		return nil, err
	}
	created, err := s.repo.Create(ctx, expense)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create expense")
	}
	return toResponse(created), nil
}

func (s *service) UpdateExpense(ctx context.Context, id uuid.UUID, req UpsertExpenseRequest) (*ExpenseResponse, error) {
	expense, err := s.findExpense(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.applyRequest(ctx, expense, req); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, expense); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update expense")
	}
	return toResponse(expense), nil
}

func (s *service) DeleteExpense(ctx context.Context, id uuid.UUID) error {
	if _, err := s.findExpense(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete expense")
	}
	return nil
}

func (s *service) findExpense(ctx context.Context, id uuid.UUID) (*models.Expense, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "expense id is required")
	}
	expense, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "expense not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup expense")
	}
	return expense, nil
}

func (s *service) applyRequest(ctx context.Context, expense *models.Expense, req UpsertExpenseRequest) error {
	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid date")
	}
	category, err := enums.ParseExpenseCategory(req.Category)
	if err != nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid expense category")
	}
	if req.Amount <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "amount must be positive")
	}
	if req.PondID != nil {
		if _, err := s.ponds.FindByID(ctx, *req.PondID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeValidation, "pond not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup pond")
		}
	}

	expense.Date = date
	expense.Category = category
	expense.Amount = req.Amount
	expense.PondID = req.PondID
	expense.Description = strings.TrimSpace(req.Description)
	return nil
}

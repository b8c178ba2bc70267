package reports

import (
	"context"
	"fmt"
	"time"

	pkgerrors "github.com/kolamtech/tambak-backend/pkg/errors"
)

type outstandingSummer interface {
	SumOutstanding(ctx context.Context) (int64, error)
}

// Service exposes the financial report reads.
type Service interface {
	Summary(ctx context.Context, from, to *time.Time) (*SummaryResponse, error)
	Monthly(ctx context.Context, year int) (*MonthlyResponse, error)
}

type service struct {
	repo  *Repository
	debts outstandingSummer
}

// NewService builds a reports service from its dependencies.
func NewService(repo *Repository, debts outstandingSummer) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("reports repository required")
	}
	if debts == nil {
		return nil, fmt.Errorf("outstanding summer required")
	}
	return &service{repo: repo, debts: debts}, nil
}

func (s *service) Summary(ctx context.Context, from, to *time.Time) (*SummaryResponse, error) {
	if from != nil && to != nil && to.Before(*from) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "to must not precede from")
	}

	income, err := s.repo.SumIncome(ctx, from, to)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "sum income")
	}
	breakdown, err := s.repo.ExpenseBreakdown(ctx, from, to)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "expense breakdown")
	}
	outstanding, err := s.debts.SumOutstanding(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "sum outstanding")
	}

	byCategory := make(map[string]int64, len(breakdown))
	var expenses int64
	for _, row := range breakdown {
		byCategory[row.Category] = row.Amount
		expenses += row.Amount
	}

	return &SummaryResponse{
		Income:                 income,
		Expenses:               expenses,
		Profit:                 income - expenses,
		ExpensesByCategory:     byCategory,
		OutstandingReceivables: outstanding,
	}, nil
}

func (s *service) Monthly(ctx context.Context, year int) (*MonthlyResponse, error) {
	if year < 2000 || year > 2200 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid year")
	}

	incomeRows, err := s.repo.IncomeRows(ctx, year)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "income rows")
	}
	expenseRows, err := s.repo.ExpenseRows(ctx, year)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "expense rows")
	}

	income := bucketByMonth(incomeRows)
	expenses := bucketByMonth(expenseRows)

	months := make([]MonthlyRow, 12)
	for i := 0; i < 12; i++ {
		key := fmt.Sprintf("%04d-%02d", year, i+1)
		months[i] = MonthlyRow{
			Month:    key,
			Income:   income[key],
			Expenses: expenses[key],
			Profit:   income[key] - expenses[key],
		}
	}
	return &MonthlyResponse{Year: year, Months: months}, nil
}

func bucketByMonth(rows []dateAmount) map[string]int64 {
	buckets := make(map[string]int64, len(rows))
	for _, row := range rows {
		buckets[row.Date.Format("2006-01")] += row.Amount
	}
	return buckets
}

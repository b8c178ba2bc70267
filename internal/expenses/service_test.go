package expenses

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/kolamtech/tambak-backend/pkg/db/models"
	"github.com/kolamtech/tambak-backend/pkg/enums"
	pkgerrors "github.com/kolamtech/tambak-backend/pkg/errors"
)

type stubExpensesRepo struct {
	rows      map[uuid.UUID]*models.Expense
	lastQuery ListQuery
}

func newStubExpensesRepo() *stubExpensesRepo {
	return &stubExpensesRepo{rows: map[uuid.UUID]*models.Expense{}}
}

func (s *stubExpensesRepo) Create(_ context.Context, expense *models.Expense) (*models.Expense, error) {
	if expense.ID == uuid.Nil {
		expense.ID = uuid.New()
	}
	s.rows[expense.ID] = expense
	return expense, nil
}

func (s *stubExpensesRepo) FindByID(_ context.Context, id uuid.UUID) (*models.Expense, error) {
	expense, ok := s.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return expense, nil
}

func (s *stubExpensesRepo) List(_ context.Context, q ListQuery) ([]models.Expense, error) {
	s.lastQuery = q
	out := make([]models.Expense, 0, len(s.rows))
	for _, expense := range s.rows {
		if q.Category != nil && expense.Category != *q.Category {
			continue
		}
		out = append(out, *expense)
	}
	return out, nil
}

func (s *stubExpensesRepo) Update(_ context.Context, expense *models.Expense) error {
	s.rows[expense.ID] = expense
	return nil
}

func (s *stubExpensesRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(s.rows, id)
	return nil
}

type stubPondFinder struct {
	known map[uuid.UUID]bool
}

func (s stubPondFinder) FindByID(_ context.Context, id uuid.UUID) (*models.Pond, error) {
	if !s.known[id] {
		return nil, gorm.ErrRecordNotFound
	}
	return &models.Pond{ID: id, Name: "Kolam A"}, nil
}

func expenseRequest() UpsertExpenseRequest {
	return UpsertExpenseRequest{
		Date:        "2026-03-05",
		Category:    "feed",
		Amount:      150000,
		Description: "pellet 30kg",
	}
}

func TestCreateExpense(t *testing.T) {
	repo := newStubExpensesRepo()
	svc, err := NewService(repo, stubPondFinder{})
	require.NoError(t, err)

	resp, err := svc.CreateExpense(context.Background(), uuid.New(), expenseRequest())
	require.NoError(t, err)
	assert.Equal(t, "feed", resp.Category)
	assert.Equal(t, int64(150000), resp.Amount)
	assert.Equal(t, "2026-03-05", resp.Date)
	assert.Len(t, repo.rows, 1)
}

func TestCreateExpenseValidation(t *testing.T) {
	repo := newStubExpensesRepo()
	svc, err := NewService(repo, stubPondFinder{})
	require.NoError(t, err)
	ctx := context.Background()

	req := expenseRequest()
	req.Amount = 0
	_, err = svc.CreateExpense(ctx, uuid.New(), req)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())

	req = expenseRequest()
	req.Category = "fuel"
	_, err = svc.CreateExpense(ctx, uuid.New(), req)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())

	req = expenseRequest()
	unknown := uuid.New()
	req.PondID = &unknown
	_, err = svc.CreateExpense(ctx, uuid.New(), req)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestUpdateExpense(t *testing.T) {
	repo := newStubExpensesRepo()
	pondID := uuid.New()
	svc, err := NewService(repo, stubPondFinder{known: map[uuid.UUID]bool{pondID: true}})
	require.NoError(t, err)
	ctx := context.Background()

	created, err := svc.CreateExpense(ctx, uuid.New(), expenseRequest())
	require.NoError(t, err)

	req := expenseRequest()
	req.Category = "salary"
	req.Amount = 2000000
	req.PondID = &pondID
	updated, err := svc.UpdateExpense(ctx, created.ID, req)
	require.NoError(t, err)
	assert.Equal(t, "salary", updated.Category)
	assert.Equal(t, int64(2000000), updated.Amount)
	assert.Equal(t, &pondID, updated.PondID)
}

func TestDeleteExpenseUnknown(t *testing.T) {
	svc, err := NewService(newStubExpensesRepo(), stubPondFinder{})
	require.NoError(t, err)

	err = svc.DeleteExpense(context.Background(), uuid.New())
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

func TestListExpensesCategoryFilter(t *testing.T) {
	repo := newStubExpensesRepo()
	svc, err := NewService(repo, stubPondFinder{})
	require.NoError(t, err)
	ctx := context.Background()

	_, err = svc.CreateExpense(ctx, uuid.New(), expenseRequest())
	require.NoError(t, err)
	other := expenseRequest()
	other.Category = "electricity"
	_, err = svc.CreateExpense(ctx, uuid.New(), other)
	require.NoError(t, err)

	rows, err := svc.ListExpenses(ctx, ListExpensesParams{Category: "feed"})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "feed", rows[0].Category)
	require.NotNil(t, repo.lastQuery.Category)
	assert.Equal(t, enums.ExpenseCategoryFeed, *repo.lastQuery.Category)

	_, err = svc.ListExpenses(ctx, ListExpensesParams{Category: "fuel"})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestListExpensesDateRangePassthrough(t *testing.T) {
	repo := newStubExpensesRepo()
	svc, err := NewService(repo, stubPondFinder{})
	require.NoError(t, err)

	from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)
	_, err = svc.ListExpenses(context.Background(), ListExpensesParams{From: &from, To: &to, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, &from, repo.lastQuery.From)
	assert.Equal(t, &to, repo.lastQuery.To)
	assert.Equal(t, 10, repo.lastQuery.Limit)
}

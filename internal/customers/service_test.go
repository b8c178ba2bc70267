package customers

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/kolamtech/tambak-backend/pkg/db/models"
	pkgerrors "github.com/kolamtech/tambak-backend/pkg/errors"
)

type stubCustomersRepo struct {
	rows map[uuid.UUID]*models.Customer
	refs map[uuid.UUID]int64
}

func newStubCustomersRepo() *stubCustomersRepo {
	return &stubCustomersRepo{rows: map[uuid.UUID]*models.Customer{}, refs: map[uuid.UUID]int64{}}
}

func (s *stubCustomersRepo) Create(_ context.Context, customer *models.Customer) (*models.Customer, error) {
	if customer.ID == uuid.Nil {
		customer.ID = uuid.New()
	}
	s.rows[customer.ID] = customer
	return customer, nil
}

func (s *stubCustomersRepo) List(_ context.Context, search string) ([]models.Customer, error) {
	out := make([]models.Customer, 0, len(s.rows))
	for _, customer := range s.rows {
		if search != "" && !strings.Contains(customer.Name, search) {
			continue
		}
		out = append(out, *customer)
	}
	return out, nil
}

func (s *stubCustomersRepo) FindByID(_ context.Context, id uuid.UUID) (*models.Customer, error) {
	customer, ok := s.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return customer, nil
}

func (s *stubCustomersRepo) Update(_ context.Context, customer *models.Customer) error {
	s.rows[customer.ID] = customer
	return nil
}

func (s *stubCustomersRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(s.rows, id)
	return nil
}

func (s *stubCustomersRepo) CountReferences(_ context.Context, id uuid.UUID) (int64, error) {
	return s.refs[id], nil
}

func TestCreateCustomerTrimsFields(t *testing.T) {
	svc, err := NewService(newStubCustomersRepo())
	require.NoError(t, err)

	customer, err := svc.CreateCustomer(context.Background(), UpsertCustomerRequest{
		Name:    "  Bu Sari  ",
		Phone:   " 0812345 ",
		Address: " Jalan Raya 1 ",
	})
	require.NoError(t, err)
	assert.Equal(t, "Bu Sari", customer.Name)
	assert.Equal(t, "0812345", customer.Phone)
	assert.Equal(t, "Jalan Raya 1", customer.Address)
}

func TestCreateCustomerRequiresName(t *testing.T) {
	svc, err := NewService(newStubCustomersRepo())
	require.NoError(t, err)

	_, err = svc.CreateCustomer(context.Background(), UpsertCustomerRequest{Name: "   "})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestListCustomersSearch(t *testing.T) {
	svc, err := NewService(newStubCustomersRepo())
	require.NoError(t, err)
	ctx := context.Background()

	_, err = svc.CreateCustomer(ctx, UpsertCustomerRequest{Name: "Bu Sari"})
	require.NoError(t, err)
	_, err = svc.CreateCustomer(ctx, UpsertCustomerRequest{Name: "Pak Budi"})
	require.NoError(t, err)

	rows, err := svc.ListCustomers(ctx, "Sari")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Bu Sari", rows[0].Name)
}

func TestDeleteCustomerBlockedByReferences(t *testing.T) {
	repo := newStubCustomersRepo()
	svc, err := NewService(repo)
	require.NoError(t, err)
	ctx := context.Background()

	customer, err := svc.CreateCustomer(ctx, UpsertCustomerRequest{Name: "Bu Sari"})
	require.NoError(t, err)
	repo.refs[customer.ID] = 2

	err = svc.DeleteCustomer(ctx, customer.ID)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeConflict, pkgerrors.As(err).Code())

	repo.refs[customer.ID] = 0
	require.NoError(t, svc.DeleteCustomer(ctx, customer.ID))
}

func TestUpdateCustomerUnknown(t *testing.T) {
	svc, err := NewService(newStubCustomersRepo())
	require.NoError(t, err)

	_, err = svc.UpdateCustomer(context.Background(), uuid.New(), UpsertCustomerRequest{Name: "X"})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

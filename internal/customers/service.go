package customers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kolamtech/tambak-backend/pkg/db/models"
	pkgerrors "github.com/kolamtech/tambak-backend/pkg/errors"
)

type customersRepository interface {
	Create(ctx context.Context, customer *models.Customer) (*models.Customer, error)
	List(ctx context.Context, search string) ([]models.Customer, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Customer, error)
	Update(ctx context.Context, customer *models.Customer) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountReferences(ctx context.Context, id uuid.UUID) (int64, error)
}

// Service exposes customer master data operations.
type Service interface {
	CreateCustomer(ctx context.Context, req UpsertCustomerRequest) (*CustomerResponse, error)
	ListCustomers(ctx context.Context, search string) ([]CustomerResponse, error)
	GetCustomer(ctx context.Context, id uuid.UUID) (*CustomerResponse, error)
	UpdateCustomer(ctx context.Context, id uuid.UUID, req UpsertCustomerRequest) (*CustomerResponse, error)
	DeleteCustomer(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo customersRepository
}

// NewService builds a customer service backed by the provided repository.
func NewService(repo customersRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("customer repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) CreateCustomer(ctx context.Context, req UpsertCustomerRequest) (*CustomerResponse, error) {
	customer, err := applyRequest(&models.Customer{}, req)
	if err != nil {
		return nil, err
	}
	created, err := s.repo.Create(ctx, customer)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create customer")
	}
	return toResponse(created), nil
}

func (s *service) ListCustomers(ctx context.Context, search string) ([]CustomerResponse, error) {
	rows, err := s.repo.List(ctx, strings.TrimSpace(search))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list customers")
	}
	return toResponses(rows), nil
}

func (s *service) GetCustomer(ctx context.Context, id uuid.UUID) (*CustomerResponse, error) {
	customer, err := s.findCustomer(ctx, id)
	if err != nil {
		return nil, err
	}
	return toResponse(customer), nil
}

func (s *service) UpdateCustomer(ctx context.Context, id uuid.UUID, req UpsertCustomerRequest) (*CustomerResponse, error) {
	customer, err := s.findCustomer(ctx, id)
	if err != nil {
		return nil, err
	}
	customer, err = applyRequest(customer, req)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, customer); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update customer")
	}
	return toResponse(customer), nil
}

func (s *service) DeleteCustomer(ctx context.Context, id uuid.UUID) error {
	if _, err := s.findCustomer(ctx, id); err != nil {
		return err
	}
	refs, err := s.repo.CountReferences(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count customer references")
	}
	if refs > 0 {
		return pkgerrors.New(pkgerrors.CodeConflict, "customer is referenced by sales or debts").
			WithDetails(map[string]any{"references": refs})
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete customer")
	}
	return nil
}

func (s *service) findCustomer(ctx context.Context, id uuid.UUID) (*models.Customer, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer id is required")
	}
	customer, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "customer not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup customer")
	}
	return customer, nil
}

func applyRequest(customer *models.Customer, req UpsertCustomerRequest) (*models.Customer, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	customer.Name = name
	customer.Phone = strings.TrimSpace(req.Phone)
	customer.Address = strings.TrimSpace(req.Address)
	customer.Notes = req.Notes
	return customer, nil
}

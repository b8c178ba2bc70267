package ponds

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kolamtech/tambak-backend/pkg/db/models"
	"github.com/kolamtech/tambak-backend/pkg/enums"
	pkgerrors "github.com/kolamtech/tambak-backend/pkg/errors"
)

type pondsRepository interface {
	Create(ctx context.Context, pond *models.Pond) (*models.Pond, error)
	List(ctx context.Context) ([]models.Pond, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Pond, error)
	Update(ctx context.Context, pond *models.Pond) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountReferences(ctx context.Context, id uuid.UUID) (int64, error)
}

// Service exposes pond master data operations.
type Service interface {
	CreatePond(ctx context.Context, req UpsertPondRequest) (*PondResponse, error)
	ListPonds(ctx context.Context) ([]PondResponse, error)
	GetPond(ctx context.Context, id uuid.UUID) (*PondResponse, error)
	UpdatePond(ctx context.Context, id uuid.UUID, req UpsertPondRequest) (*PondResponse, error)
	DeletePond(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo pondsRepository
}

// NewService builds a pond service backed by the provided repository.
func NewService(repo pondsRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("pond repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) CreatePond(ctx context.Context, req UpsertPondRequest) (*PondResponse, error) {
	pond, err := s.buildPond(&models.Pond{}, req)
	if err != nil {
		return nil, err
	}
	created, err := s.repo.Create(ctx, pond)
	if err != nil {
		return nil, wrapDuplicateName(err, "create pond")
	}
	return toResponse(created), nil
}

func (s *service) ListPonds(ctx context.Context) ([]PondResponse, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list ponds")
	}
	return toResponses(rows), nil
}

func (s *service) GetPond(ctx context.Context, id uuid.UUID) (*PondResponse, error) {
	pond, err := s.findPond(ctx, id)
	if err != nil {
		return nil, err
	}
	return toResponse(pond), nil
}

func (s *service) UpdatePond(ctx context.Context, id uuid.UUID, req UpsertPondRequest) (*PondResponse, error) {
	pond, err := s.findPond(ctx, id)
	if err != nil {
		return nil, err
	}
	pond, err = s.buildPond(pond, req)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, pond); err != nil {
		return nil, wrapDuplicateName(err, "update pond")
	}
	return toResponse(pond), nil
}

func (s *service) DeletePond(ctx context.Context, id uuid.UUID) error {
	if _, err := s.findPond(ctx, id); err != nil {
		return err
	}
	refs, err := s.repo.CountReferences(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count pond references")
	}
	if refs > 0 {
		return pkgerrors.New(pkgerrors.CodeConflict, "pond is referenced by sales or expenses").
			WithDetails(map[string]any{"references": refs})
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete pond")
	}
	return nil
}

func (s *service) findPond(ctx context.Context, id uuid.UUID) (*models.Pond, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "pond id is required")
	}
	pond, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "pond not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup pond")
	}
	return pond, nil
}

func (s *service) buildPond(pond *models.Pond, req UpsertPondRequest) (*models.Pond, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if req.AreaM2.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "area_m2 cannot be negative")
	}

	status := enums.PondStatusActive
	if req.Status != "" {
		parsed, err := enums.ParsePondStatus(req.Status)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid pond status")
		}
		status = parsed
	}

	pond.Name = name
	pond.Location = strings.TrimSpace(req.Location)
	pond.AreaM2 = req.AreaM2
	pond.Species = strings.TrimSpace(req.Species)
	pond.Status = status
	pond.Notes = req.Notes
	return pond, nil
}

func wrapDuplicateName(err error, step string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return pkgerrors.New(pkgerrors.CodeConflict, "pond name already exists")
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, step)
}

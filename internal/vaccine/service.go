package vaccine

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/vacinafacil/api/internal/repo"
	"github.com/vacinafacil/api/internal/validate"
)

// ErrNameTaken indica vacina já cadastrada com o mesmo nome.
var ErrNameTaken = errors.New("the vaccine already exists")

type vaccineRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (repo.Vaccine, error)
	GetByName(ctx context.Context, name string) (repo.Vaccine, error)
	List(ctx context.Context) ([]repo.Vaccine, error)
	Insert(ctx context.Context, v repo.Vaccine) error
	Update(ctx context.Context, v repo.Vaccine) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// Service concentra as regras de cadastro de vacinas.
type Service struct {
	repo vaccineRepository
}

func NewService(r vaccineRepository) *Service {
	return &Service{repo: r}
}

// Create cadastra uma vacina de nome único.
func (s *Service) Create(ctx context.Context, input validate.VaccineInput) (repo.Vaccine, error) {
	if _, err := s.repo.GetByName(ctx, input.Name); err == nil {
		return repo.Vaccine{}, ErrNameTaken
	} else if !errors.Is(err, repo.ErrNotFound) {
		return repo.Vaccine{}, fmt.Errorf("check name: %w", err)
	}

	v := repo.Vaccine{
		ID:               uuid.New(),
		Name:             input.Name,
		Type:             input.Type,
		Manufacturer:     input.Manufacturer,
		Description:      input.Description,
		ContraIndication: input.ContraIndication,
	}

	if err := s.repo.Insert(ctx, v); err != nil {
		if repo.IsUniqueViolation(err) {
			return repo.Vaccine{}, ErrNameTaken
		}
		return repo.Vaccine{}, fmt.Errorf("insert vaccine: %w", err)
	}
	return v, nil
}

func (s *Service) List(ctx context.Context) ([]repo.Vaccine, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (repo.Vaccine, error) {
	return s.repo.GetByID(ctx, id)
}

// Update edita a vacina, rejeitando colisão de nome com outro cadastro.
func (s *Service) Update(ctx context.Context, id uuid.UUID, input validate.VaccineInput) (repo.Vaccine, error) {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return repo.Vaccine{}, err
	}

	if other, err := s.repo.GetByName(ctx, input.Name); err == nil && other.ID != id {
		return repo.Vaccine{}, ErrNameTaken
	} else if err != nil && !errors.Is(err, repo.ErrNotFound) {
		return repo.Vaccine{}, fmt.Errorf("check name: %w", err)
	}

	v := repo.Vaccine{
		ID:               id,
		Name:             input.Name,
		Type:             input.Type,
		Manufacturer:     input.Manufacturer,
		Description:      input.Description,
		ContraIndication: input.ContraIndication,
	}

	if err := s.repo.Update(ctx, v); err != nil {
		if repo.IsUniqueViolation(err) {
			return repo.Vaccine{}, ErrNameTaken
		}
		return repo.Vaccine{}, fmt.Errorf("update vaccine: %w", err)
	}
	return v, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

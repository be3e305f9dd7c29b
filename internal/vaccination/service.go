package vaccination

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/vacinafacil/api/internal/repo"
	"github.com/vacinafacil/api/internal/validate"
)

var (
	// ErrDuplicate indica que o usuário já tem dose da vacina registrada no
	// mesmo dia. A comparação ignora a hora da aplicação.
	ErrDuplicate = errors.New("vaccination registration already done")
	// ErrVaccineNotFound indica vacina desconhecida no catálogo.
	ErrVaccineNotFound = errors.New("vaccine not found")
	// ErrInvalidDate indica data que não pôde ser interpretada.
	ErrInvalidDate = errors.New("incorrect date entered")
)

type vaccinationRepository interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]repo.VaccinationRecord, error)
	Create(ctx context.Context, rec repo.VaccinationRecord) error
}

type vaccineResolver interface {
	GetByName(ctx context.Context, name string) (repo.Vaccine, error)
}

// Service concentra o registro e a consulta de doses aplicadas.
type Service struct {
	repo     vaccinationRepository
	vaccines vaccineResolver
}

func NewService(r vaccinationRepository, vaccines vaccineResolver) *Service {
	return &Service{repo: r, vaccines: vaccines}
}

// Create registra uma dose aplicada ao usuário do token. A vacina é
// referenciada pelo nome e a quantidade aplicada assume 1 quando omitida.
func (s *Service) Create(ctx context.Context, userID uuid.UUID, input validate.VaccinationInput) (repo.VaccinationRecord, error) {
	vaccine, err := s.vaccines.GetByName(ctx, input.Vaccine)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return repo.VaccinationRecord{}, ErrVaccineNotFound
		}
		return repo.VaccinationRecord{}, fmt.Errorf("load vaccine: %w", err)
	}

	date, err := validate.ParseDate(input.Date)
	if err != nil {
		return repo.VaccinationRecord{}, ErrInvalidDate
	}

	applied := input.Applied
	if applied <= 0 {
		applied = 1
	}

	rec := repo.VaccinationRecord{
		ID:              uuid.New(),
		UserID:          userID,
		VaccineID:       vaccine.ID,
		Date:            date,
		QuantityApplied: applied,
	}

	if err := s.repo.Create(ctx, rec); err != nil {
		if errors.Is(err, repo.ErrConflict) {
			return repo.VaccinationRecord{}, ErrDuplicate
		}
		return repo.VaccinationRecord{}, fmt.Errorf("insert vaccination: %w", err)
	}
	return rec, nil
}

// List devolve o histórico de vacinação do próprio usuário.
func (s *Service) List(ctx context.Context, userID uuid.UUID) ([]repo.VaccinationRecord, error) {
	return s.repo.ListByUser(ctx, userID)
}

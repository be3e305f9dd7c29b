package calendar

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/vacinafacil/api/internal/repo"
	"github.com/vacinafacil/api/internal/validate"
)

const (
	statusNotInformed      = "Status not informed"
	observationNotInformed = "Observation not informed"
)

var (
	// ErrDuplicateEvent indica evento já marcado para o mesmo local e horário.
	ErrDuplicateEvent = errors.New("event with venue and date already registered")
	// ErrVaccineNotFound indica referência de vacina que não resolve.
	ErrVaccineNotFound = errors.New("vaccine not found")
	// ErrInvalidDate indica data que não pôde ser interpretada.
	ErrInvalidDate = errors.New("incorrect date entered")
)

type calendarRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (repo.CalendarEvent, error)
	List(ctx context.Context) ([]repo.CalendarEvent, error)
	ExistsByLocalDate(ctx context.Context, local string, date time.Time, exclude uuid.UUID) (bool, error)
	Insert(ctx context.Context, e repo.CalendarEvent) error
	Update(ctx context.Context, e repo.CalendarEvent) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type vaccineResolver interface {
	GetByID(ctx context.Context, id uuid.UUID) (repo.Vaccine, error)
	GetByName(ctx context.Context, name string) (repo.Vaccine, error)
}

// Service concentra as regras de agendamento de eventos.
type Service struct {
	repo     calendarRepository
	vaccines vaccineResolver
}

func NewService(r calendarRepository, vaccines vaccineResolver) *Service {
	return &Service{repo: r, vaccines: vaccines}
}

// resolveVaccine aceita a referência como id ou como nome da vacina.
func (s *Service) resolveVaccine(ctx context.Context, ref string) (repo.Vaccine, error) {
	if id, err := uuid.Parse(ref); err == nil {
		v, err := s.vaccines.GetByID(ctx, id)
		if errors.Is(err, repo.ErrNotFound) {
			return repo.Vaccine{}, ErrVaccineNotFound
		}
		return v, err
	}

	v, err := s.vaccines.GetByName(ctx, ref)
	if errors.Is(err, repo.ErrNotFound) {
		return repo.Vaccine{}, ErrVaccineNotFound
	}
	return v, err
}

func eventFromInput(input validate.CalendarInput, date time.Time, vaccineID uuid.UUID) repo.CalendarEvent {
	status := strings.TrimSpace(input.Status)
	if status == "" {
		status = statusNotInformed
	}
	observation := strings.TrimSpace(input.Observation)
	if observation == "" {
		observation = observationNotInformed
	}

	return repo.CalendarEvent{
		Local:       input.Local,
		Date:        date,
		Places:      *input.Places,
		Responsible: input.Responsible,
		Status:      status,
		Observation: observation,
		Latitude:    *input.Latitude,
		Longitude:   *input.Longitude,
		VaccineID:   vaccineID,
	}
}

// Create agenda um evento garantindo unicidade de (local, data). O pré-check
// só melhora a mensagem; a constraint do schema decide o conflito.
func (s *Service) Create(ctx context.Context, input validate.CalendarInput) (repo.CalendarEvent, error) {
	date, err := validate.ParseDate(input.Date)
	if err != nil {
		return repo.CalendarEvent{}, ErrInvalidDate
	}

	v, err := s.resolveVaccine(ctx, input.Vaccine)
	if err != nil {
		return repo.CalendarEvent{}, err
	}

	exists, err := s.repo.ExistsByLocalDate(ctx, input.Local, date, uuid.Nil)
	if err != nil {
		return repo.CalendarEvent{}, fmt.Errorf("check local/date: %w", err)
	}
	if exists {
		return repo.CalendarEvent{}, ErrDuplicateEvent
	}

	e := eventFromInput(input, date, v.ID)
	e.ID = uuid.New()

	if err := s.repo.Insert(ctx, e); err != nil {
		if repo.IsUniqueViolation(err) {
			return repo.CalendarEvent{}, ErrDuplicateEvent
		}
		return repo.CalendarEvent{}, fmt.Errorf("insert event: %w", err)
	}
	return e, nil
}

func (s *Service) List(ctx context.Context) ([]repo.CalendarEvent, error) {
	return s.repo.List(ctx)
}

// EventDetail devolve o evento com a vacina associada expandida.
type EventDetail struct {
	repo.CalendarEvent
	Vaccine repo.Vaccine `json:"scheduleVaccine"`
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (EventDetail, error) {
	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return EventDetail{}, err
	}

	v, err := s.vaccines.GetByID(ctx, e.VaccineID)
	if err != nil && !errors.Is(err, repo.ErrNotFound) {
		return EventDetail{}, fmt.Errorf("load vaccine: %w", err)
	}

	return EventDetail{CalendarEvent: e, Vaccine: v}, nil
}

// Update edita o evento preservando a unicidade de (local, data).
func (s *Service) Update(ctx context.Context, id uuid.UUID, input validate.CalendarInput) (repo.CalendarEvent, error) {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return repo.CalendarEvent{}, err
	}

	date, err := validate.ParseDate(input.Date)
	if err != nil {
		return repo.CalendarEvent{}, ErrInvalidDate
	}

	v, err := s.resolveVaccine(ctx, input.Vaccine)
	if err != nil {
		return repo.CalendarEvent{}, err
	}

	exists, err := s.repo.ExistsByLocalDate(ctx, input.Local, date, id)
	if err != nil {
		return repo.CalendarEvent{}, fmt.Errorf("check local/date: %w", err)
	}
	if exists {
		return repo.CalendarEvent{}, ErrDuplicateEvent
	}

	e := eventFromInput(input, date, v.ID)
	e.ID = id

	if err := s.repo.Update(ctx, e); err != nil {
		if repo.IsUniqueViolation(err) {
			return repo.CalendarEvent{}, ErrDuplicateEvent
		}
		return repo.CalendarEvent{}, fmt.Errorf("update event: %w", err)
	}
	return e, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

package reservation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vacinafacil/api/internal/repo"
	"github.com/vacinafacil/api/internal/validate"
)

const statusRequested = "Reservation requested"

var (
	// ErrDuplicate indica que o usuário já tem reserva para o evento. A data
	// pedida não discrimina: um par (usuário, evento) admite uma única
	// reserva ativa.
	ErrDuplicate = errors.New("request reservation registration already done")
	// ErrEventNotFound indica evento do calendário inexistente.
	ErrEventNotFound = errors.New("event not found")
	// ErrInvalidDate indica data que não pôde ser interpretada.
	ErrInvalidDate = errors.New("incorrect date entered")
	// ErrNotOwner indica tentativa de alterar reserva de outro usuário.
	ErrNotOwner = errors.New("reservation belongs to another user")
)

type reservationRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (repo.Reservation, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]repo.Reservation, error)
	ExistsByUserCalendar(ctx context.Context, userID, calendarID uuid.UUID) (bool, error)
	Insert(ctx context.Context, res repo.Reservation) error
	UpdateDate(ctx context.Context, id uuid.UUID, date time.Time) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type calendarResolver interface {
	GetByID(ctx context.Context, id uuid.UUID) (repo.CalendarEvent, error)
}

// Service concentra o ciclo de vida das reservas.
type Service struct {
	repo      reservationRepository
	calendars calendarResolver
}

func NewService(r reservationRepository, calendars calendarResolver) *Service {
	return &Service{repo: r, calendars: calendars}
}

// Create registra o pedido de reserva do usuário para um evento.
func (s *Service) Create(ctx context.Context, userID uuid.UUID, input validate.ReservationInput) (repo.Reservation, error) {
	calendarID, err := uuid.Parse(input.IDCalendar)
	if err != nil {
		return repo.Reservation{}, ErrEventNotFound
	}

	if _, err := s.calendars.GetByID(ctx, calendarID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return repo.Reservation{}, ErrEventNotFound
		}
		return repo.Reservation{}, fmt.Errorf("load event: %w", err)
	}

	date, err := validate.ParseDate(input.Date)
	if err != nil {
		return repo.Reservation{}, ErrInvalidDate
	}

	exists, err := s.repo.ExistsByUserCalendar(ctx, userID, calendarID)
	if err != nil {
		return repo.Reservation{}, fmt.Errorf("check duplicate: %w", err)
	}
	if exists {
		return repo.Reservation{}, ErrDuplicate
	}

	res := repo.Reservation{
		ID:         uuid.New(),
		UserID:     userID,
		CalendarID: calendarID,
		Date:       date,
		Status:     statusRequested,
	}

	if err := s.repo.Insert(ctx, res); err != nil {
		if repo.IsUniqueViolation(err) {
			return repo.Reservation{}, ErrDuplicate
		}
		return repo.Reservation{}, fmt.Errorf("insert reservation: %w", err)
	}
	return res, nil
}

// List devolve as reservas do próprio usuário.
func (s *Service) List(ctx context.Context, userID uuid.UUID) ([]repo.Reservation, error) {
	return s.repo.ListByUser(ctx, userID)
}

// UpdateDate re-solicita a reserva com outra data. Apenas o dono pode alterar.
func (s *Service) UpdateDate(ctx context.Context, userID, id uuid.UUID, input validate.ReservationUpdateInput) (repo.Reservation, error) {
	res, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return repo.Reservation{}, err
	}
	if res.UserID != userID {
		return repo.Reservation{}, ErrNotOwner
	}

	date, err := validate.ParseDate(input.Date)
	if err != nil {
		return repo.Reservation{}, ErrInvalidDate
	}

	if err := s.repo.UpdateDate(ctx, id, date); err != nil {
		return repo.Reservation{}, err
	}

	res.Date = date
	return res, nil
}

// UpdateStatus avança o rótulo de workflow (rota administrativa).
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (repo.Reservation, error) {
	res, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return repo.Reservation{}, err
	}

	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return repo.Reservation{}, err
	}

	res.Status = status
	return res, nil
}

// Delete cancela a reserva do próprio usuário.
func (s *Service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	res, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if res.UserID != userID {
		return ErrNotOwner
	}

	return s.repo.Delete(ctx, id)
}

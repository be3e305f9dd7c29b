package calendar

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/vacinafacil/api/internal/repo"
	"github.com/vacinafacil/api/internal/validate"
)

type stubRepo struct {
	events  map[uuid.UUID]repo.CalendarEvent
	inserts int
}

func newStubRepo() *stubRepo {
	return &stubRepo{events: map[uuid.UUID]repo.CalendarEvent{}}
}

func (s *stubRepo) GetByID(ctx context.Context, id uuid.UUID) (repo.CalendarEvent, error) {
	e, ok := s.events[id]
	if !ok {
		return repo.CalendarEvent{}, repo.ErrNotFound
	}
	return e, nil
}

func (s *stubRepo) List(ctx context.Context) ([]repo.CalendarEvent, error) {
	events := make([]repo.CalendarEvent, 0, len(s.events))
	for _, e := range s.events {
		events = append(events, e)
	}
	return events, nil
}

func (s *stubRepo) ExistsByLocalDate(ctx context.Context, local string, date time.Time, exclude uuid.UUID) (bool, error) {
	for _, e := range s.events {
		if e.ID != exclude && e.Local == local && e.Date.Equal(date) {
			return true, nil
		}
	}
	return false, nil
}

func (s *stubRepo) Insert(ctx context.Context, e repo.CalendarEvent) error {
	s.inserts++
	s.events[e.ID] = e
	return nil
}

func (s *stubRepo) Update(ctx context.Context, e repo.CalendarEvent) error {
	s.events[e.ID] = e
	return nil
}

func (s *stubRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := s.events[id]; !ok {
		return repo.ErrNotFound
	}
	delete(s.events, id)
	return nil
}

type stubVaccines struct {
	vaccine repo.Vaccine
}

func (s *stubVaccines) GetByID(ctx context.Context, id uuid.UUID) (repo.Vaccine, error) {
	if id == s.vaccine.ID {
		return s.vaccine, nil
	}
	return repo.Vaccine{}, repo.ErrNotFound
}

func (s *stubVaccines) GetByName(ctx context.Context, name string) (repo.Vaccine, error) {
	if name == s.vaccine.Name {
		return s.vaccine, nil
	}
	return repo.Vaccine{}, repo.ErrNotFound
}

func floatPtr(f float64) *float64 { return &f }
func intPtr(i int) *int           { return &i }

func calendarInput(local, date, vaccine string) validate.CalendarInput {
	return validate.CalendarInput{
		Local:       local,
		Date:        date,
		Places:      intPtr(120),
		Responsible: "Ana Lima",
		Vaccine:     vaccine,
		Latitude:    floatPtr(-23.55),
		Longitude:   floatPtr(-46.63),
	}
}

func TestCreateEvent(t *testing.T) {
	stub := newStubRepo()
	vaccines := &stubVaccines{vaccine: repo.Vaccine{ID: uuid.New(), Name: "Tríplice Viral"}}
	svc := NewService(stub, vaccines)

	created, err := svc.Create(context.Background(), calendarInput("UBS Centro", "2026-09-01", "Tríplice Viral"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.VaccineID != vaccines.vaccine.ID {
		t.Fatal("vaccine reference not resolved by name")
	}
	if created.Status != "Status not informed" || created.Observation != "Observation not informed" {
		t.Fatalf("expected sentinels, got %q / %q", created.Status, created.Observation)
	}

	// Mesmo local e data: duplicado, sem nova escrita.
	_, err = svc.Create(context.Background(), calendarInput("UBS Centro", "2026-09-01", "Tríplice Viral"))
	if !errors.Is(err, ErrDuplicateEvent) {
		t.Fatalf("expected ErrDuplicateEvent got %v", err)
	}
	if stub.inserts != 1 {
		t.Fatalf("duplicate must not insert, got %d", stub.inserts)
	}

	// Mesmo local em outra data não conflita.
	if _, err := svc.Create(context.Background(), calendarInput("UBS Centro", "2026-09-02", "Tríplice Viral")); err != nil {
		t.Fatalf("other date: %v", err)
	}
}

func TestCreateEventVaccineByID(t *testing.T) {
	stub := newStubRepo()
	vaccines := &stubVaccines{vaccine: repo.Vaccine{ID: uuid.New(), Name: "Tríplice Viral"}}
	svc := NewService(stub, vaccines)

	created, err := svc.Create(context.Background(), calendarInput("UBS Centro", "2026-09-01", vaccines.vaccine.ID.String()))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.VaccineID != vaccines.vaccine.ID {
		t.Fatal("vaccine reference not resolved by id")
	}
}

func TestCreateEventUnknownVaccine(t *testing.T) {
	stub := newStubRepo()
	vaccines := &stubVaccines{vaccine: repo.Vaccine{ID: uuid.New(), Name: "Tríplice Viral"}}
	svc := NewService(stub, vaccines)

	_, err := svc.Create(context.Background(), calendarInput("UBS Centro", "2026-09-01", "Inexistente"))
	if !errors.Is(err, ErrVaccineNotFound) {
		t.Fatalf("expected ErrVaccineNotFound got %v", err)
	}
	if stub.inserts != 0 {
		t.Fatal("unknown vaccine must not insert")
	}
}

func TestCreateEventInvalidDate(t *testing.T) {
	stub := newStubRepo()
	vaccines := &stubVaccines{vaccine: repo.Vaccine{ID: uuid.New(), Name: "Tríplice Viral"}}
	svc := NewService(stub, vaccines)

	_, err := svc.Create(context.Background(), calendarInput("UBS Centro", "01/09/2026", "Tríplice Viral"))
	if !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate got %v", err)
	}
}

func TestUpdateEvent(t *testing.T) {
	stub := newStubRepo()
	vaccines := &stubVaccines{vaccine: repo.Vaccine{ID: uuid.New(), Name: "Tríplice Viral"}}
	svc := NewService(stub, vaccines)

	first, err := svc.Create(context.Background(), calendarInput("UBS Centro", "2026-09-01", "Tríplice Viral"))
	if err != nil {
		t.Fatalf("create first: %v", err)
	}
	second, err := svc.Create(context.Background(), calendarInput("UBS Norte", "2026-09-01", "Tríplice Viral"))
	if err != nil {
		t.Fatalf("create second: %v", err)
	}

	// Mover o segundo para o slot do primeiro conflita.
	_, err = svc.Update(context.Background(), second.ID, calendarInput("UBS Centro", "2026-09-01", "Tríplice Viral"))
	if !errors.Is(err, ErrDuplicateEvent) {
		t.Fatalf("expected ErrDuplicateEvent got %v", err)
	}

	// Reenviar o próprio slot não conflita consigo mesmo.
	input := calendarInput("UBS Centro", "2026-09-01", "Tríplice Viral")
	input.Status = "Confirmed"
	updated, err := svc.Update(context.Background(), first.ID, input)
	if err != nil {
		t.Fatalf("self update: %v", err)
	}
	if updated.Status != "Confirmed" {
		t.Fatalf("expected status kept, got %q", updated.Status)
	}
}

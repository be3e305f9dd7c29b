package reservation

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	httpmiddleware "github.com/vacinafacil/api/internal/http/middleware"
	"github.com/vacinafacil/api/internal/repo"
	"github.com/vacinafacil/api/internal/validate"
)

// O corpo do update carrega apenas a nova data: a reserva já está vinculada a
// um evento e o handler não exige idCalendar.
func TestUpdateReservationDateOnlyBody(t *testing.T) {
	stub := newStubRepo()
	calendars := &stubCalendars{event: repo.CalendarEvent{ID: uuid.New(), Local: "UBS Centro"}}
	svc := NewService(stub, calendars)
	handler := NewHandler(svc, validate.New())

	owner := uuid.New()
	created, err := svc.Create(context.Background(), owner, validate.ReservationInput{
		Date:       "2026-09-01",
		IDCalendar: calendars.event.ID.String(),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	r := chi.NewRouter()
	r.Put("/reservation/update/{id}", handler.Update)

	b, _ := json.Marshal(map[string]any{"date": "2026-09-05"})
	req := httptest.NewRequest(http.MethodPut, "/reservation/update/"+created.ID.String(), bytes.NewBuffer(b))
	ctx := context.WithValue(req.Context(), httpmiddleware.ContextKeySubject, owner.String())
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req.WithContext(ctx))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "Reservation updated") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}

	// Data ausente continua sendo rejeitada pela validação.
	req = httptest.NewRequest(http.MethodPut, "/reservation/update/"+created.ID.String(), bytes.NewBufferString("{}"))
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req.WithContext(context.WithValue(req.Context(), httpmiddleware.ContextKeySubject, owner.String())))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "The date is mandatory") {
		t.Fatalf("expected date error, got %s", rec.Body.String())
	}
}

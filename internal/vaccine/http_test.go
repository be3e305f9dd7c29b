package vaccine

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

	"github.com/vacinafacil/api/internal/repo"
	"github.com/vacinafacil/api/internal/validate"
)

type stubRepo struct {
	byID    map[uuid.UUID]repo.Vaccine
	byName  map[string]repo.Vaccine
	inserts int
}

func newStubRepo() *stubRepo {
	return &stubRepo{byID: map[uuid.UUID]repo.Vaccine{}, byName: map[string]repo.Vaccine{}}
}

func (s *stubRepo) add(v repo.Vaccine) {
	s.byID[v.ID] = v
	s.byName[v.Name] = v
}

func (s *stubRepo) GetByID(ctx context.Context, id uuid.UUID) (repo.Vaccine, error) {
	v, ok := s.byID[id]
	if !ok {
		return repo.Vaccine{}, repo.ErrNotFound
	}
	return v, nil
}

func (s *stubRepo) GetByName(ctx context.Context, name string) (repo.Vaccine, error) {
	v, ok := s.byName[name]
	if !ok {
		return repo.Vaccine{}, repo.ErrNotFound
	}
	return v, nil
}

func (s *stubRepo) List(ctx context.Context) ([]repo.Vaccine, error) {
	vaccines := make([]repo.Vaccine, 0, len(s.byID))
	for _, v := range s.byID {
		vaccines = append(vaccines, v)
	}
	return vaccines, nil
}

func (s *stubRepo) Insert(ctx context.Context, v repo.Vaccine) error {
	s.inserts++
	s.add(v)
	return nil
}

func (s *stubRepo) Update(ctx context.Context, v repo.Vaccine) error {
	s.add(v)
	return nil
}

func (s *stubRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := s.byID[id]; !ok {
		return repo.ErrNotFound
	}
	delete(s.byID, id)
	return nil
}

func vaccineBody(name string) *bytes.Buffer {
	b, _ := json.Marshal(map[string]any{
		"name":             name,
		"type":             "mRNA",
		"manufacturer":     "ACME Biotech",
		"description":      "Dose única contra gripe",
		"contraIndication": "Alergia a componentes da fórmula",
	})
	return bytes.NewBuffer(b)
}

func TestCreateVaccine(t *testing.T) {
	stub := newStubRepo()
	handler := NewHandler(NewService(stub), validate.New())

	req := httptest.NewRequest(http.MethodPost, "/vaccine", vaccineBody("Tríplice Viral"))
	rec := httptest.NewRecorder()
	handler.Create(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", rec.Code, rec.Body.String())
	}
	if stub.inserts != 1 {
		t.Fatalf("expected one insert, got %d", stub.inserts)
	}

	// Repetição do mesmo nome deve falhar sem nova escrita.
	req = httptest.NewRequest(http.MethodPost, "/vaccine", vaccineBody("Tríplice Viral"))
	rec = httptest.NewRecorder()
	handler.Create(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "The vaccine already exists") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
	if stub.inserts != 1 {
		t.Fatalf("duplicate must not insert, got %d inserts", stub.inserts)
	}
}

func TestCreateVaccineValidation(t *testing.T) {
	stub := newStubRepo()
	handler := NewHandler(NewService(stub), validate.New())

	b, _ := json.Marshal(map[string]any{"type": "mRNA"})
	req := httptest.NewRequest(http.MethodPost, "/vaccine", bytes.NewBuffer(b))
	rec := httptest.NewRecorder()
	handler.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "The name is mandatory") {
		t.Fatalf("expected name error, got %s", rec.Body.String())
	}
	if stub.inserts != 0 {
		t.Fatal("validation failure must not write")
	}
}

func TestUpdateVaccineNameCollision(t *testing.T) {
	stub := newStubRepo()
	first := repo.Vaccine{ID: uuid.New(), Name: "Tríplice Viral"}
	second := repo.Vaccine{ID: uuid.New(), Name: "Hepatite B"}
	stub.add(first)
	stub.add(second)
	handler := NewHandler(NewService(stub), validate.New())

	r := chi.NewRouter()
	r.Patch("/vaccine/update/{id}", handler.Update)

	// Renomear a segunda com o nome da primeira colide.
	req := httptest.NewRequest(http.MethodPatch, "/vaccine/update/"+second.ID.String(), vaccineBody("Tríplice Viral"))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 got %d: %s", rec.Code, rec.Body.String())
	}

	// Reenviar o próprio nome não colide.
	req = httptest.NewRequest(http.MethodPatch, "/vaccine/update/"+first.ID.String(), vaccineBody("Tríplice Viral"))
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestDeleteVaccine(t *testing.T) {
	stub := newStubRepo()
	existing := repo.Vaccine{ID: uuid.New(), Name: "Tríplice Viral"}
	stub.add(existing)
	handler := NewHandler(NewService(stub), validate.New())

	r := chi.NewRouter()
	r.Delete("/vaccine/remove/{id}", handler.Delete)

	req := httptest.NewRequest(http.MethodDelete, "/vaccine/remove/"+existing.ID.String(), nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "Vaccine removed") {
		t.Fatalf("unexpected response %d: %s", rec.Code, rec.Body.String())
	}

	req = httptest.NewRequest(http.MethodDelete, "/vaccine/remove/"+uuid.NewString(), nil)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", rec.Code)
	}
}

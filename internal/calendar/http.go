package calendar

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/vacinafacil/api/internal/http/respond"
	"github.com/vacinafacil/api/internal/repo"
	"github.com/vacinafacil/api/internal/validate"
)

// Handler orquestra as rotas do calendário de vacinação.
type Handler struct {
	service   *Service
	validator *validate.Validator
}

func NewHandler(service *Service, validator *validate.Validator) *Handler {
	return &Handler{service: service, validator: validator}
}

func (h *Handler) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repo.ErrNotFound):
		respond.WriteError(w, http.StatusNotFound, "Event not found")
	case errors.Is(err, ErrVaccineNotFound):
		respond.WriteError(w, http.StatusNotFound, "Vaccine not found")
	case errors.Is(err, ErrInvalidDate):
		respond.WriteError(w, http.StatusBadRequest, "Incorrect date entered")
	case errors.Is(err, ErrDuplicateEvent):
		respond.WriteError(w, http.StatusConflict, "Event with venue and date already registered")
	default:
		respond.WriteInternal(w, err)
	}
}

// Create trata POST /vaccine-calendar (administrador).
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var input validate.CalendarInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respond.WriteError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	if fields := h.validator.Check(input); fields != nil {
		respond.WriteValidation(w, fields)
		return
	}

	created, err := h.service.Create(r.Context(), input)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	respond.WriteJSON(w, http.StatusCreated, map[string]any{
		"message": "Registered event",
		"event":   created,
	})
}

// List trata GET /vaccine-calendar.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	events, err := h.service.List(r.Context())
	if err != nil {
		respond.WriteInternal(w, err)
		return
	}
	if events == nil {
		events = []repo.CalendarEvent{}
	}
	respond.WriteJSON(w, http.StatusOK, events)
}

// Get trata GET /vaccine-calendar/{id} com a vacina associada.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.WriteError(w, http.StatusBadRequest, "Invalid id")
		return
	}

	detail, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	respond.WriteJSON(w, http.StatusOK, detail)
}

// Update trata PUT /vaccine-calendar/update/{id} (administrador).
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.WriteError(w, http.StatusBadRequest, "Invalid id")
		return
	}

	var input validate.CalendarInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respond.WriteError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	if fields := h.validator.Check(input); fields != nil {
		respond.WriteValidation(w, fields)
		return
	}

	updated, err := h.service.Update(r.Context(), id, input)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	respond.WriteJSON(w, http.StatusOK, map[string]any{
		"message": "Update event",
		"event":   updated,
	})
}

// Delete trata DELETE /vaccine-calendar/remove/{id} (administrador).
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.WriteError(w, http.StatusBadRequest, "Invalid id")
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		h.writeServiceError(w, err)
		return
	}

	respond.WriteMessage(w, http.StatusOK, "Event removed")
}

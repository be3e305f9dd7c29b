package reservation

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/vacinafacil/api/internal/http/middleware"
	"github.com/vacinafacil/api/internal/http/respond"
	"github.com/vacinafacil/api/internal/repo"
	"github.com/vacinafacil/api/internal/validate"
)

// Handler orquestra as rotas de reserva.
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
		respond.WriteError(w, http.StatusNotFound, "Reservation not found")
	case errors.Is(err, ErrEventNotFound):
		respond.WriteError(w, http.StatusNotFound, "Event not found")
	case errors.Is(err, ErrInvalidDate):
		respond.WriteError(w, http.StatusBadRequest, "Incorrect date entered")
	case errors.Is(err, ErrDuplicate):
		respond.WriteError(w, http.StatusConflict, "Request reservation registration already done")
	case errors.Is(err, ErrNotOwner):
		respond.WriteError(w, http.StatusNotFound, "Reservation not found")
	default:
		respond.WriteInternal(w, err)
	}
}

// Create trata POST /reservation.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	userID, err := subjectID(r)
	if err != nil {
		respond.WriteError(w, http.StatusUnauthorized, "Invalid token subject")
		return
	}

	var input validate.ReservationInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respond.WriteError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	if fields := h.validator.Check(input); fields != nil {
		respond.WriteValidation(w, fields)
		return
	}

	created, err := h.service.Create(r.Context(), userID, input)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	respond.WriteJSON(w, http.StatusCreated, map[string]any{
		"message":     "Reservation requested",
		"reservation": created,
	})
}

// List trata GET /reservation (reservas do próprio usuário).
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID, err := subjectID(r)
	if err != nil {
		respond.WriteError(w, http.StatusUnauthorized, "Invalid token subject")
		return
	}

	reservations, err := h.service.List(r.Context(), userID)
	if err != nil {
		respond.WriteInternal(w, err)
		return
	}
	if reservations == nil {
		reservations = []repo.Reservation{}
	}
	respond.WriteJSON(w, http.StatusOK, reservations)
}

// Update trata PUT /reservation/update/{id}.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	userID, err := subjectID(r)
	if err != nil {
		respond.WriteError(w, http.StatusUnauthorized, "Invalid token subject")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.WriteError(w, http.StatusBadRequest, "Invalid id")
		return
	}

	var input validate.ReservationUpdateInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respond.WriteError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	if fields := h.validator.Check(input); fields != nil {
		respond.WriteValidation(w, fields)
		return
	}

	updated, err := h.service.UpdateDate(r.Context(), userID, id, input)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	respond.WriteJSON(w, http.StatusOK, map[string]any{
		"message":     "Reservation updated",
		"reservation": updated,
	})
}

// UpdateStatus trata PATCH /reservation/update/status/{id} (administrador).
func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.WriteError(w, http.StatusBadRequest, "Invalid id")
		return
	}

	var input validate.ReservationStatusInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respond.WriteError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	if fields := h.validator.Check(input); fields != nil {
		respond.WriteValidation(w, fields)
		return
	}

	updated, err := h.service.UpdateStatus(r.Context(), id, input.Status)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	respond.WriteJSON(w, http.StatusOK, map[string]any{
		"message":     "Reservation status updated",
		"reservation": updated,
	})
}

// Delete trata DELETE /reservation/remove/{id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, err := subjectID(r)
	if err != nil {
		respond.WriteError(w, http.StatusUnauthorized, "Invalid token subject")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.WriteError(w, http.StatusBadRequest, "Invalid id")
		return
	}

	if err := h.service.Delete(r.Context(), userID, id); err != nil {
		h.writeServiceError(w, err)
		return
	}

	respond.WriteMessage(w, http.StatusOK, "Reservation removed")
}

func subjectID(r *http.Request) (uuid.UUID, error) {
	return uuid.Parse(middleware.GetSubject(r.Context()))
}

package vaccine

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

// Handler orquestra as rotas de vacina.
type Handler struct {
	service   *Service
	validator *validate.Validator
}

func NewHandler(service *Service, validator *validate.Validator) *Handler {
	return &Handler{service: service, validator: validator}
}

// Create trata POST /vaccine (administrador).
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var input validate.VaccineInput
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
		if errors.Is(err, ErrNameTaken) {
			respond.WriteError(w, http.StatusConflict, "The vaccine already exists")
			return
		}
		respond.WriteInternal(w, err)
		return
	}

	respond.WriteJSON(w, http.StatusCreated, created)
}

// List trata GET /vaccine.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	vaccines, err := h.service.List(r.Context())
	if err != nil {
		respond.WriteInternal(w, err)
		return
	}
	if vaccines == nil {
		vaccines = []repo.Vaccine{}
	}
	respond.WriteJSON(w, http.StatusOK, vaccines)
}

// Get trata GET /vaccine/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.WriteError(w, http.StatusBadRequest, "Invalid id")
		return
	}

	v, err := h.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			respond.WriteError(w, http.StatusNotFound, "Vaccine not found")
			return
		}
		respond.WriteInternal(w, err)
		return
	}

	respond.WriteJSON(w, http.StatusOK, v)
}

// Update trata PATCH /vaccine/update/{id} (administrador).
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.WriteError(w, http.StatusBadRequest, "Invalid id")
		return
	}

	var input validate.VaccineInput
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
		switch {
		case errors.Is(err, repo.ErrNotFound):
			respond.WriteError(w, http.StatusNotFound, "Vaccine not found")
		case errors.Is(err, ErrNameTaken):
			respond.WriteError(w, http.StatusConflict, "The vaccine already exists")
		default:
			respond.WriteInternal(w, err)
		}
		return
	}

	respond.WriteJSON(w, http.StatusOK, map[string]any{
		"message": "Vaccine updated",
		"vaccine": updated,
	})
}

// Delete trata DELETE /vaccine/remove/{id} (administrador).
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.WriteError(w, http.StatusBadRequest, "Invalid id")
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			respond.WriteError(w, http.StatusNotFound, "Vaccine not found")
			return
		}
		respond.WriteInternal(w, err)
		return
	}

	respond.WriteMessage(w, http.StatusOK, "Vaccine removed")
}

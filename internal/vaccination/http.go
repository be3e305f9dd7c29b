package vaccination

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/vacinafacil/api/internal/http/middleware"
	"github.com/vacinafacil/api/internal/http/respond"
	"github.com/vacinafacil/api/internal/repo"
	"github.com/vacinafacil/api/internal/validate"
)

// Handler orquestra as rotas do histórico de vacinação.
type Handler struct {
	service   *Service
	validator *validate.Validator
}

func NewHandler(service *Service, validator *validate.Validator) *Handler {
	return &Handler{service: service, validator: validator}
}

// Create trata POST /vaccination.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	userID, err := subjectID(r)
	if err != nil {
		respond.WriteError(w, http.StatusUnauthorized, "Invalid token subject")
		return
	}

	var input validate.VaccinationInput
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
		switch {
		case errors.Is(err, ErrVaccineNotFound):
			respond.WriteError(w, http.StatusNotFound, "Vaccine not found")
		case errors.Is(err, ErrInvalidDate):
			respond.WriteError(w, http.StatusBadRequest, "Incorrect date entered")
		case errors.Is(err, ErrDuplicate):
			respond.WriteError(w, http.StatusConflict, "Vaccination registration already done")
		default:
			respond.WriteInternal(w, err)
		}
		return
	}

	respond.WriteJSON(w, http.StatusCreated, map[string]any{
		"message":     "Registered vaccination",
		"vaccination": created,
	})
}

// List trata GET /vaccination (histórico do próprio usuário).
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID, err := subjectID(r)
	if err != nil {
		respond.WriteError(w, http.StatusUnauthorized, "Invalid token subject")
		return
	}

	records, err := h.service.List(r.Context(), userID)
	if err != nil {
		respond.WriteInternal(w, err)
		return
	}
	if records == nil {
		records = []repo.VaccinationRecord{}
	}
	respond.WriteJSON(w, http.StatusOK, records)
}

func subjectID(r *http.Request) (uuid.UUID, error) {
	return uuid.Parse(middleware.GetSubject(r.Context()))
}

package user

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/vacinafacil/api/internal/http/middleware"
	"github.com/vacinafacil/api/internal/http/respond"
	"github.com/vacinafacil/api/internal/repo"
	"github.com/vacinafacil/api/internal/storage"
	"github.com/vacinafacil/api/internal/validate"
)

// Handler orquestra as rotas de usuário.
type Handler struct {
	service   *Service
	validator *validate.Validator
	store     *storage.DiskStore
	maxUpload int64
}

func NewHandler(service *Service, validator *validate.Validator, store *storage.DiskStore, maxUpload int64) *Handler {
	return &Handler{service: service, validator: validator, store: store, maxUpload: maxUpload}
}

// Register trata POST /user.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var input validate.RegisterUserInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respond.WriteError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	if fields := h.validator.Check(input); fields != nil {
		respond.WriteValidation(w, fields)
		return
	}

	created, err := h.service.Register(r.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmailTaken):
			respond.WriteError(w, http.StatusConflict, "Existing user with this e-mail")
		case errors.Is(err, ErrTelefoneTaken):
			respond.WriteError(w, http.StatusConflict, "Existing user with this telefone")
		default:
			respond.WriteInternal(w, err)
		}
		return
	}

	respond.WriteJSON(w, http.StatusCreated, created)
}

// Authenticate trata POST /user/authentication.
func (h *Handler) Authenticate(w http.ResponseWriter, r *http.Request) {
	var input validate.AuthenticateInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respond.WriteError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	if fields := h.validator.Check(input); fields != nil {
		respond.WriteValidation(w, fields)
		return
	}

	token, u, err := h.service.Authenticate(r.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, repo.ErrNotFound):
			respond.WriteError(w, http.StatusNotFound, "User not found")
		case errors.Is(err, ErrBadPassword):
			respond.WriteError(w, http.StatusBadRequest, "Check your password")
		default:
			respond.WriteInternal(w, err)
		}
		return
	}

	respond.WriteJSON(w, http.StatusOK, map[string]any{
		"message": "Authentication successful",
		"token":   token,
		"user":    map[string]any{"id": u.ID, "name": u.Name},
	})
}

// AuthenticateAdmin trata POST /user/authenticationAdmin.
func (h *Handler) AuthenticateAdmin(w http.ResponseWriter, r *http.Request) {
	var input validate.AuthenticateAdminInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respond.WriteError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	if fields := h.validator.Check(input); fields != nil {
		respond.WriteValidation(w, fields)
		return
	}

	token, err := h.service.AuthenticateAdmin(r.Context(), input)
	if err != nil {
		if errors.Is(err, ErrAdminMismatch) {
			respond.WriteError(w, http.StatusBadRequest, "Invalid admin credentials")
			return
		}
		respond.WriteInternal(w, err)
		return
	}

	respond.WriteJSON(w, http.StatusOK, map[string]string{
		"message": "Authentication successful",
		"token":   token,
	})
}

// List trata GET /user (administrador).
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.List(r.Context())
	if err != nil {
		respond.WriteInternal(w, err)
		return
	}
	if users == nil {
		users = []repo.User{}
	}
	respond.WriteJSON(w, http.StatusOK, users)
}

// Profile trata GET /user/profile com reservas e vacinações associadas.
func (h *Handler) Profile(w http.ResponseWriter, r *http.Request) {
	id, err := subjectID(r)
	if err != nil {
		respond.WriteError(w, http.StatusUnauthorized, "Invalid token subject")
		return
	}

	profile, err := h.service.GetProfile(r.Context(), id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			respond.WriteError(w, http.StatusNotFound, "User not found")
			return
		}
		respond.WriteInternal(w, err)
		return
	}

	respond.WriteJSON(w, http.StatusOK, profile)
}

// Update trata PUT /user/update do próprio usuário.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := subjectID(r)
	if err != nil {
		respond.WriteError(w, http.StatusUnauthorized, "Invalid token subject")
		return
	}

	var input validate.UpdateUserInput
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
			respond.WriteError(w, http.StatusNotFound, "User not found")
		case errors.Is(err, ErrEmailTaken):
			respond.WriteError(w, http.StatusConflict, "Existing user with this e-mail")
		case errors.Is(err, ErrTelefoneTaken):
			respond.WriteError(w, http.StatusConflict, "Existing user with this telefone")
		default:
			respond.WriteInternal(w, err)
		}
		return
	}

	respond.WriteJSON(w, http.StatusOK, map[string]any{
		"message": "User updated",
		"user":    updated,
	})
}

// ResetPassword trata POST /user/resetPassword.
func (h *Handler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var input validate.ResetPasswordInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respond.WriteError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	if fields := h.validator.Check(input); fields != nil {
		respond.WriteValidation(w, fields)
		return
	}

	if err := h.service.ResetPassword(r.Context(), input); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			respond.WriteError(w, http.StatusNotFound, "User not found")
			return
		}
		respond.WriteInternal(w, err)
		return
	}

	respond.WriteMessage(w, http.StatusOK, "Password updated")
}

// Delete trata DELETE /user/remove/{id} (administrador).
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.WriteError(w, http.StatusBadRequest, "Invalid id")
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			respond.WriteError(w, http.StatusNotFound, "User not found")
			return
		}
		respond.WriteInternal(w, err)
		return
	}

	respond.WriteMessage(w, http.StatusOK, "User removed")
}

// Upload trata PATCH /user/upload (multipart, campo "image").
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	id, err := subjectID(r)
	if err != nil {
		respond.WriteError(w, http.StatusUnauthorized, "Invalid token subject")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload+4096)
	if err := r.ParseMultipartForm(h.maxUpload); err != nil {
		respond.WriteError(w, http.StatusBadRequest, "Invalid multipart body")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		respond.WriteError(w, http.StatusBadRequest, "The image file is mandatory")
		return
	}
	defer file.Close()

	body, err := io.ReadAll(io.LimitReader(file, h.maxUpload+1))
	if err != nil {
		respond.WriteInternal(w, err)
		return
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(body)
	}

	result, err := h.store.Upload(r.Context(), storage.UploadInput{
		OriginalName: header.Filename,
		ContentType:  contentType,
		Body:         body,
	})
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrUnsupportedType):
			respond.WriteError(w, http.StatusBadRequest, "Unsupported file type")
		case errors.Is(err, storage.ErrTooLarge):
			respond.WriteError(w, http.StatusBadRequest, "File exceeds the 8MB limit")
		default:
			respond.WriteInternal(w, err)
		}
		return
	}

	previous, err := h.service.AttachImage(r.Context(), id, result.Filename)
	if err != nil {
		_ = h.store.Remove(result.Filename)
		if errors.Is(err, repo.ErrNotFound) {
			respond.WriteError(w, http.StatusNotFound, "User not found")
			return
		}
		respond.WriteInternal(w, err)
		return
	}

	if previous != "" {
		if err := h.store.Remove(previous); err != nil {
			log.Warn().Err(err).Str("file", previous).Msg("imagem anterior não removida")
		}
	}

	respond.WriteJSON(w, http.StatusOK, map[string]string{
		"message": "Image uploaded",
		"image":   result.URL,
	})
}

func subjectID(r *http.Request) (uuid.UUID, error) {
	return uuid.Parse(middleware.GetSubject(r.Context()))
}

// Package respond concentra os envelopes JSON da API. Vive em um pacote folha
// para que os handlers de domínio e o roteador compartilhem os mesmos helpers.
package respond

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/vacinafacil/api/internal/validate"
)

// WriteJSON serializa o corpo de sucesso como JSON puro.
func WriteJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// WriteMessage responde {"message": ...}.
func WriteMessage(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, map[string]string{"message": message})
}

// WriteError responde {"error": ...}. Nunca vaza stack trace.
func WriteError(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, map[string]string{"error": message})
}

// WriteValidation responde 400 com a lista completa de campos inválidos.
func WriteValidation(w http.ResponseWriter, fields []validate.FieldError) {
	WriteJSON(w, http.StatusBadRequest, map[string]any{
		"error":  "Validation failed",
		"fields": fields,
	})
}

// WriteInternal loga a causa e devolve um corpo genérico de 500.
func WriteInternal(w http.ResponseWriter, err error) {
	log.Error().Err(err).Msg("erro interno")
	WriteError(w, http.StatusInternalServerError, "Internal Server Error")
}

package repo

import (
	"time"

	"github.com/google/uuid"
)

// User representa um usuário cadastrado na plataforma.
// O hash de senha nunca é serializado em respostas.
type User struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	Email        string    `json:"email"`
	Telefone     string    `json:"telefone"`
	Latitude     float64   `json:"latitude"`
	Longitude    float64   `json:"longitude"`
	Image        *string   `json:"image,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// Vaccine é dado de referência compartilhado por eventos e registros.
type Vaccine struct {
	ID               uuid.UUID `json:"id"`
	Name             string    `json:"name"`
	Type             string    `json:"type"`
	Manufacturer     string    `json:"manufacturer"`
	Description      string    `json:"description"`
	ContraIndication string    `json:"contraIndication"`
	CreatedAt        time.Time `json:"created_at"`
}

// CalendarEvent representa uma sessão de vacinação agendada em um local.
type CalendarEvent struct {
	ID          uuid.UUID `json:"id"`
	Local       string    `json:"local"`
	Date        time.Time `json:"date"`
	Places      int       `json:"places"`
	Responsible string    `json:"responsible"`
	Status      string    `json:"status"`
	Observation string    `json:"observation"`
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
	VaccineID   uuid.UUID `json:"vaccine_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// Reservation vincula um usuário a um evento do calendário.
type Reservation struct {
	ID         uuid.UUID `json:"id"`
	UserID     uuid.UUID `json:"user_id"`
	CalendarID uuid.UUID `json:"calendar_id"`
	Date       time.Time `json:"date"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}

// VaccinationRecord registra uma dose aplicada a um usuário.
type VaccinationRecord struct {
	ID              uuid.UUID `json:"id"`
	UserID          uuid.UUID `json:"user_id"`
	VaccineID       uuid.UUID `json:"vaccine_id"`
	Date            time.Time `json:"date"`
	QuantityApplied int       `json:"quantity_applied"`
	CreatedAt       time.Time `json:"created_at"`
}

package validate

// Inputs tipados de cada operação de escrita. Os nomes json seguem o contrato
// público da API (telefone e contraIndication inclusive).

// RegisterUserInput é o payload de POST /user.
type RegisterUserInput struct {
	Name            string   `json:"name" validate:"required,min=3,max=255"`
	Password        string   `json:"password" validate:"required,min=6"`
	ConfirmPassword string   `json:"confirmPassword" validate:"required,eqfield=Password"`
	Email           string   `json:"email" validate:"required,email"`
	Telefone        string   `json:"telefone" validate:"required,telefone"`
	Latitude        *float64 `json:"latitude" validate:"required"`
	Longitude       *float64 `json:"longitude" validate:"required"`
}

// UpdateUserInput é o payload de PUT /user/update (senha fica de fora).
type UpdateUserInput struct {
	Name      string   `json:"name" validate:"required,min=3,max=255"`
	Email     string   `json:"email" validate:"required,email"`
	Telefone  string   `json:"telefone" validate:"required,telefone"`
	Latitude  *float64 `json:"latitude" validate:"required"`
	Longitude *float64 `json:"longitude" validate:"required"`
}

// ResetPasswordInput é o payload de POST /user/resetPassword.
type ResetPasswordInput struct {
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,min=6,eqfield=Password"`
}

// AuthenticateInput é o payload de POST /user/authentication.
type AuthenticateInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// AuthenticateAdminInput é o payload de POST /user/authenticationAdmin.
type AuthenticateAdminInput struct {
	Name     string `json:"name" validate:"required,min=3,max=255"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// VaccineInput cobre criação e edição de vacinas.
type VaccineInput struct {
	Name             string `json:"name" validate:"required,min=3,max=255"`
	Type             string `json:"type" validate:"required,min=3,max=255"`
	Manufacturer     string `json:"manufacturer" validate:"required,min=3,max=255"`
	Description      string `json:"description" validate:"required,min=3"`
	ContraIndication string `json:"contraIndication" validate:"required,min=3"`
}

// CalendarInput cobre criação e edição de eventos do calendário.
// Status e observation são opcionais e recebem sentinela quando vazios.
type CalendarInput struct {
	Local       string   `json:"local" validate:"required,min=3,max=255"`
	Date        string   `json:"date" validate:"required"`
	Places      *int     `json:"places" validate:"required,gt=0"`
	Responsible string   `json:"responsible" validate:"required,min=1"`
	Status      string   `json:"status"`
	Observation string   `json:"observation"`
	Vaccine     string   `json:"vaccine" validate:"required"`
	Latitude    *float64 `json:"latitude" validate:"required"`
	Longitude   *float64 `json:"longitude" validate:"required"`
}

// ReservationInput é o payload de POST /reservation.
type ReservationInput struct {
	Date       string `json:"date" validate:"required"`
	IDCalendar string `json:"idCalendar" validate:"required"`
}

// ReservationUpdateInput é o payload de PUT /reservation/update/{id}. A
// reserva já está vinculada a um evento; só a nova data é esperada.
type ReservationUpdateInput struct {
	Date string `json:"date" validate:"required"`
}

// ReservationStatusInput é o payload de PATCH /reservation/update/status/{id}.
type ReservationStatusInput struct {
	Status string `json:"status" validate:"required,min=1"`
}

// VaccinationInput é o payload de POST /vaccination. A vacina é referenciada
// pelo nome, como no restante do contrato público.
type VaccinationInput struct {
	Date    string `json:"date" validate:"required"`
	Applied int    `json:"applied"`
	Vaccine string `json:"vaccine" validate:"required"`
}

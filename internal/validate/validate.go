package validate

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// telefoneRegexp aceita código de país opcional, DDD com ou sem parênteses e
// número de 8 a 9 dígitos com separador opcional.
var telefoneRegexp = regexp.MustCompile(`^(\+\d{1,2}\s?)?(\()?\d{2,4}(\))?\s?(\d{4,5}(-|\s)?\d{4})$`)

// FieldError descreve uma falha de validação em um campo específico.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Validator encapsula as regras declarativas de cada entidade. A validação é
// total: todos os campos com falha são reportados juntos, nunca apenas o
// primeiro.
type Validator struct {
	validate *validator.Validate
}

// New cria o validador com a regra de telefone registrada e nomes de campo
// extraídos das tags json.
func New() *Validator {
	v := validator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	_ = v.RegisterValidation("telefone", func(fl validator.FieldLevel) bool {
		return telefoneRegexp.MatchString(fl.Field().String())
	})

	return &Validator{validate: v}
}

// Check aplica as regras da struct e devolve a lista ordenada de erros por
// campo, ou nil quando o input é válido.
func (v *Validator) Check(input any) []FieldError {
	err := v.validate.Struct(input)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []FieldError{{Field: "body", Message: "Invalid request body"}}
	}

	fields := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, FieldError{Field: fe.Field(), Message: message(fe)})
	}
	return fields
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("The %s is mandatory", fe.Field())
	case "email":
		return "Invalid email address"
	case "telefone":
		return "Invalid telephone number"
	case "min":
		return fmt.Sprintf("The %s must have at least %s characters", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("The %s must have at most %s characters", fe.Field(), fe.Param())
	case "gt":
		return fmt.Sprintf("The %s must be a positive integer", fe.Field())
	case "eqfield":
		return "Passwords do not match"
	default:
		return fmt.Sprintf("The %s is invalid", fe.Field())
	}
}

// ParseDate interpreta datas no formato RFC3339 ou somente data (2006-01-02).
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, errors.New("empty date")
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid date: %q", value)
}

package validate

import (
	"testing"
)

func floatPtr(f float64) *float64 { return &f }
func intPtr(i int) *int           { return &i }

func TestCheckReportsAllFields(t *testing.T) {
	v := New()

	// Payload vazio: toda regra required deve aparecer de uma vez.
	fields := v.Check(RegisterUserInput{})
	if fields == nil {
		t.Fatal("expected validation errors")
	}

	byField := map[string]string{}
	for _, fe := range fields {
		byField[fe.Field] = fe.Message
	}

	for _, want := range []string{"name", "password", "confirmPassword", "email", "telefone", "latitude", "longitude"} {
		if _, ok := byField[want]; !ok {
			t.Fatalf("expected error for field %q, got %v", want, byField)
		}
	}

	if byField["name"] != "The name is mandatory" {
		t.Fatalf("unexpected message: %q", byField["name"])
	}
}

func TestCheckValidInput(t *testing.T) {
	v := New()

	input := RegisterUserInput{
		Name:            "Maria Souza",
		Password:        "s3nh4-forte",
		ConfirmPassword: "s3nh4-forte",
		Email:           "maria@example.com",
		Telefone:        "(11) 91234-5678",
		Latitude:        floatPtr(-23.55),
		Longitude:       floatPtr(-46.63),
	}

	if fields := v.Check(input); fields != nil {
		t.Fatalf("expected no errors, got %v", fields)
	}
}

func TestCheckPasswordMismatch(t *testing.T) {
	v := New()

	input := RegisterUserInput{
		Name:            "Maria Souza",
		Password:        "s3nh4-forte",
		ConfirmPassword: "outra-coisa",
		Email:           "maria@example.com",
		Telefone:        "(11) 91234-5678",
		Latitude:        floatPtr(-23.55),
		Longitude:       floatPtr(-46.63),
	}

	fields := v.Check(input)
	if len(fields) != 1 {
		t.Fatalf("expected one error, got %v", fields)
	}
	if fields[0].Field != "confirmPassword" || fields[0].Message != "Passwords do not match" {
		t.Fatalf("unexpected error: %+v", fields[0])
	}
}

func TestTelefoneRule(t *testing.T) {
	v := New()

	valid := []string{
		"(11) 91234-5678",
		"11912345678",
		"+55 (11) 91234-5678",
		"11 1234-5678",
		"(85) 3222 1234",
	}
	invalid := []string{
		"abc",
		"123",
		"91234-567",
		"(11) 91234-56789",
	}

	base := UpdateUserInput{
		Name:      "Maria Souza",
		Email:     "maria@example.com",
		Latitude:  floatPtr(0),
		Longitude: floatPtr(0),
	}

	for _, tel := range valid {
		input := base
		input.Telefone = tel
		if fields := v.Check(input); fields != nil {
			t.Fatalf("expected %q valid, got %v", tel, fields)
		}
	}

	for _, tel := range invalid {
		input := base
		input.Telefone = tel
		fields := v.Check(input)
		if fields == nil {
			t.Fatalf("expected %q invalid", tel)
		}
		if fields[0].Message != "Invalid telephone number" {
			t.Fatalf("unexpected message for %q: %v", tel, fields)
		}
	}
}

func TestCalendarPlacesPositive(t *testing.T) {
	v := New()

	input := CalendarInput{
		Local:       "UBS Centro",
		Date:        "2026-09-01",
		Places:      intPtr(0),
		Responsible: "Ana",
		Vaccine:     "Tríplice Viral",
		Latitude:    floatPtr(0),
		Longitude:   floatPtr(0),
	}

	fields := v.Check(input)
	if len(fields) != 1 || fields[0].Field != "places" {
		t.Fatalf("expected places error, got %v", fields)
	}
}

func TestParseDate(t *testing.T) {
	if _, err := ParseDate("2026-09-01"); err != nil {
		t.Fatalf("date-only: %v", err)
	}
	if _, err := ParseDate("2026-09-01T10:30:00Z"); err != nil {
		t.Fatalf("rfc3339: %v", err)
	}
	if _, err := ParseDate("01/09/2026"); err == nil {
		t.Fatal("expected error for unsupported format")
	}
	if _, err := ParseDate(""); err == nil {
		t.Fatal("expected error for empty date")
	}
}

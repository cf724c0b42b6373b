// Package validate performs client-side input validation for the login,
// register, and user forms. Invalid input never reaches the network
// layer.
package validate

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// LoginInput is the login form.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RegisterInput is the account-creation form. The confirmation field is
// stripped before anything is sent to the API.
type RegisterInput struct {
	FirstName       string `json:"nombre" validate:"required"`
	LastName        string `json:"apellido" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	Phone           string `json:"telefono" validate:"omitempty,max=20"`
	BirthDate       string `json:"fecha_nacimiento" validate:"omitempty,datetime=2006-01-02"`
	Address         string `json:"direccion" validate:"omitempty,max=255"`
	Password        string `json:"password" validate:"required,min=8"`
	ConfirmPassword string `json:"confirm_password" validate:"eqfield=Password"`
}

// UpdateInput is the user-edit form. All fields are optional; a blank
// password means "leave unchanged".
type UpdateInput struct {
	FirstName string `json:"nombre" validate:"omitempty"`
	LastName  string `json:"apellido" validate:"omitempty"`
	Email     string `json:"email" validate:"omitempty,email"`
	Phone     string `json:"telefono" validate:"omitempty,max=20"`
	BirthDate string `json:"fecha_nacimiento" validate:"omitempty,datetime=2006-01-02"`
	Address   string `json:"direccion" validate:"omitempty,max=255"`
	Password  string `json:"password" validate:"omitempty,min=8"`
}

// ValidationError carries per-field messages keyed by wire field name.
type ValidationError struct {
	Fields map[string]string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for field := range e.Fields {
		names = append(names, field)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, field := range names {
		parts = append(parts, fmt.Sprintf("%s: %s", field, e.Fields[field]))
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

// Validator checks form inputs against their rules.
type Validator struct {
	validate *validator.Validate
}

// New creates a Validator reporting errors under JSON field names.
func New() *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &Validator{validate: v}
}

// Check validates a form struct. A non-nil return is always a
// *ValidationError.
func (v *Validator) Check(form any) error {
	err := v.validate.Struct(form)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return &ValidationError{Fields: map[string]string{"_": err.Error()}}
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = message(fe)
	}
	return &ValidationError{Fields: fields}
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "eqfield":
		return "does not match the password"
	case "datetime":
		return "must be a date in YYYY-MM-DD form"
	default:
		return "is invalid"
	}
}

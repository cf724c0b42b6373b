package model

import (
	"strings"
	"time"
)

// User represents a managed user account.
// Field tags follow the wire names of the administration API.
type User struct {
	ID        int64     `json:"id"`
	FirstName string    `json:"nombre"`
	LastName  string    `json:"apellido"`
	Email     string    `json:"email"`
	Phone     string    `json:"telefono,omitempty"`
	BirthDate string    `json:"fecha_nacimiento,omitempty"` // YYYY-MM-DD
	Address   string    `json:"direccion,omitempty"`
	Active    bool      `json:"activo"`
	CreatedAt time.Time `json:"created_at,omitzero"`
	UpdatedAt time.Time `json:"updated_at,omitzero"`
}

// FullName returns the user's display name.
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// UserForm is the request body for register, create, and update operations.
// Optional fields are omitted when empty; Password is omitted on updates
// that do not change it.
type UserForm struct {
	FirstName string `json:"nombre"`
	LastName  string `json:"apellido"`
	Email     string `json:"email"`
	Phone     string `json:"telefono,omitempty"`
	BirthDate string `json:"fecha_nacimiento,omitempty"`
	Address   string `json:"direccion,omitempty"`
	Password  string `json:"password,omitempty"`
	Active    *bool  `json:"activo,omitempty"`
}

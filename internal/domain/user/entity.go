package user

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrEmptyName    = errors.New("user name cannot be empty")
	ErrInvalidEmail = errors.New("invalid email address")
)

type Email struct {
	value string
}

func NewEmail(value string) (Email, error) {
	value = strings.TrimSpace(value)
	if value == "" || !strings.Contains(value, "@") {
		return Email{}, ErrInvalidEmail
	}
	return Email{value: strings.ToLower(value)}, nil
}

func (e Email) String() string { return e.value }

type User struct {
	id    uuid.UUID
	name  string
	email Email
}

func NewUser(name string, email Email) (*User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	return &User{
		id:    uuid.New(),
		name:  name,
		email: email,
	}, nil
}

func ReconstructUser(id uuid.UUID, name string, email Email) *User {
	return &User{id: id, name: name, email: email}
}

// ApplyPatch updates the mutable fields; nil pointers leave the field as is.
// Email uniqueness is a store-level rule checked by the command layer.
func (u *User) ApplyPatch(name *string, email *Email) {
	if name != nil && strings.TrimSpace(*name) != "" {
		u.name = strings.TrimSpace(*name)
	}
	if email != nil {
		u.email = *email
	}
}

func (u *User) ID() uuid.UUID { return u.id }
func (u *User) Name() string  { return u.name }
func (u *User) Email() Email  { return u.email }

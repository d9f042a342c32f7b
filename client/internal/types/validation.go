package types

import (
	"errors"
	"fmt"
	"net/mail"
	"unicode/utf8"

	"github.com/google/uuid"
)

// ------------------------------
// Shared Errors
// ------------------------------

// ErrNotFound is returned when the backend reports a missing resource.
var ErrNotFound = errors.New("resource not found")

// ------------------------------
// Validation
// ------------------------------

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// ValidateWorkspaceID ensures id is a UUID, the only format the backend accepts.
func ValidateWorkspaceID(id string) error {
	if id == "" {
		return fmt.Errorf("workspace id is required")
	}
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("invalid workspace id %q: %w", id, err)
	}
	return nil
}

// ValidateRegisterRequest applies the backend's binding rules locally.
func ValidateRegisterRequest(r RegisterRequest) error {
	if n := utf8.RuneCountInString(r.Name); n < 2 || n > 50 {
		return fmt.Errorf("name must be 2-50 characters")
	}
	if err := validateEmail(r.Email); err != nil {
		return err
	}
	if len(r.Password) < 6 {
		return fmt.Errorf("password must be at least 6 characters")
	}
	return nil
}

// ValidateLoginRequest checks that both credentials are present.
func ValidateLoginRequest(r LoginRequest) error {
	if err := validateEmail(r.Email); err != nil {
		return err
	}
	if r.Password == "" {
		return fmt.Errorf("password is required")
	}
	return nil
}

// ValidateCreateWorkspaceRequest mirrors the server-side length limits.
func ValidateCreateWorkspaceRequest(r CreateWorkspaceRequest) error {
	if n := utf8.RuneCountInString(r.Name); n < 2 || n > 50 {
		return fmt.Errorf("workspace name must be 2-50 characters")
	}
	if n := utf8.RuneCountInString(r.Username); n < 2 || n > 50 {
		return fmt.Errorf("workspace username must be 2-50 characters")
	}
	if r.Logo == "" {
		return fmt.Errorf("workspace logo url is required")
	}
	return nil
}

// NormalizeListParams fills defaults and rejects out-of-range values.
func NormalizeListParams(p ListWorkspacesParams) (ListWorkspacesParams, error) {
	if p.Page < 0 || p.Limit < 0 {
		return p, fmt.Errorf("page and limit must not be negative")
	}
	if p.Page == 0 {
		p.Page = DefaultPage
	}
	if p.Limit == 0 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		return p, fmt.Errorf("limit must be <= %d", MaxLimit)
	}
	return p, nil
}

func validateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("email is required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return fmt.Errorf("invalid email %q", email)
	}
	return nil
}

// Package auth authenticates the single admin principal and issues and
// validates its bearer tokens.
package auth

import (
	"crypto/subtle"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/imrishuroy/go-storefront-admin/internal/apperr"
)

// DefaultAdminName is shown by /auth/me when no name is configured.
const DefaultAdminName = "Amministratore"

// Admin is the authenticated operator.
type Admin struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// CredentialStore holds the one admin identity. It is read-only after
// construction.
type CredentialStore struct {
	email        string
	name         string
	passwordHash []byte
}

// HashPassword bcrypt-hashes a plain password with the default cost.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// NewCredentialStore returns a store for the admin identified by email with
// the given bcrypt hash.
func NewCredentialStore(email, name, passwordHash string) (*CredentialStore, error) {
	if email == "" {
		return nil, fmt.Errorf("admin email is empty")
	}
	if _, err := bcrypt.Cost([]byte(passwordHash)); err != nil {
		return nil, fmt.Errorf("admin password hash: %w", err)
	}
	if name == "" {
		name = DefaultAdminName
	}
	return &CredentialStore{
		email:        email,
		name:         name,
		passwordHash: []byte(passwordHash),
	}, nil
}

// Email returns the configured admin email.
func (s *CredentialStore) Email() string { return s.email }

// Admin returns the admin identity.
func (s *CredentialStore) Admin() *Admin {
	return &Admin{Email: s.email, Name: s.name}
}

// Authenticate checks email and password against the configured admin.
func (s *CredentialStore) Authenticate(email, password string) (*Admin, error) {
	emailOK := subtle.ConstantTimeCompare([]byte(email), []byte(s.email)) == 1
	// always run bcrypt so a wrong email costs the same as a wrong password
	pwErr := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password))
	if !emailOK || pwErr != nil {
		return nil, apperr.Unauthorized("Incorrect email or password")
	}
	return s.Admin(), nil
}

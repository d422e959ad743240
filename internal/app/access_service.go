package app

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials indicates that the provided password was incorrect.
var ErrInvalidCredentials = errors.New("invalid password")

// AccessService guards the HTTP API with a single shared password. It is
// protection for one person's ledger, not an account system.
type AccessService struct {
	hash []byte
}

// NewAccessService creates an AccessService for a bcrypt password hash. An
// empty hash disables the check.
func NewAccessService(passwordHash string) *AccessService {
	return &AccessService{hash: []byte(passwordHash)}
}

// Enabled reports whether a password is required.
func (s *AccessService) Enabled() bool {
	return len(s.hash) > 0
}

// Check verifies password against the configured hash.
func (s *AccessService) Check(password string) error {
	if !s.Enabled() {
		return nil
	}
	if err := bcrypt.CompareHashAndPassword(s.hash, []byte(password)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}

// HashPassword returns a bcrypt hash suitable for the http.password_hash
// setting.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", errors.New("password must not be empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

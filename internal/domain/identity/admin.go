package identity

import (
	"crypto/subtle"
	"strings"

	"github.com/edusite/backend/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

// Password cost for bcrypt
const bcryptCost = 12

// ErrInvalidCredentials is returned for any failed sign-in.
// It does not reveal whether the username or the password was wrong.
var ErrInvalidCredentials = shared.NewDomainError(shared.CodeInvalidCredentials, "Invalid username or password")

// AdminAccount is the single administrator allowed to manage the catalog.
// It is configured, not stored.
type AdminAccount struct {
	Username     string
	PasswordHash string
}

// NewAdminAccount creates an admin account from a username and bcrypt hash
func NewAdminAccount(username, passwordHash string) (*AdminAccount, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, shared.NewValidationError("Admin username cannot be empty")
	}
	return &AdminAccount{
		Username:     username,
		PasswordHash: passwordHash,
	}, nil
}

// Authenticate checks both username and password.
// An account without a password hash never authenticates.
func (a *AdminAccount) Authenticate(username, password string) error {
	userOK := subtle.ConstantTimeCompare([]byte(a.Username), []byte(strings.TrimSpace(username))) == 1
	if !a.VerifyPassword(password) || !userOK {
		return ErrInvalidCredentials
	}
	return nil
}

// VerifyPassword verifies if the provided password matches
func (a *AdminAccount) VerifyPassword(password string) bool {
	if a.PasswordHash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password)) == nil
}

// HashPassword hashes a plaintext password for the admin_password_hash setting
func HashPassword(password string) (string, error) {
	if len(password) < 8 {
		return "", shared.NewValidationError("Password must be at least 8 characters")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

package account

import (
	"fmt"
	"strings"
	"time"

	"github.com/BruksfildServices01/fishmaster-api/internal/httperr"
)

// CodeSource produces verification codes.
type CodeSource interface {
	Code() (string, error)
}

var (
	ErrEmailTaken         = httperr.ErrConflict("email_taken", "Email is already registered")
	ErrInvalidEmailDomain = httperr.ErrValidation("invalid_email_domain", "The email domain does not look valid")
	ErrWeakPassword       = httperr.ErrValidation("weak_password", "Password must be at least 6 characters")
	ErrNameRequired       = httperr.ErrValidation("name_required", "Name is required")
	ErrEmailRequired      = httperr.ErrValidation("email_required", "Email is required")
	ErrUserNotFound       = httperr.ErrNotFound("user_not_found", "User not found")
	ErrBadCredentials     = httperr.ErrUnauthorized("invalid_credentials", "Invalid email or password")
	ErrNotVerified        = httperr.ErrUnauthorized("account_not_verified", "Account not verified, please verify your email")
)

const minPasswordLen = 6

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// describe renders a TTL for the verification email body.
func describe(d time.Duration) string {
	if d%time.Hour == 0 {
		if h := int(d.Hours()); h != 1 {
			return fmt.Sprintf("%d hours", h)
		}
		return "1 hour"
	}
	return fmt.Sprintf("%d minutes", int(d.Minutes()))
}

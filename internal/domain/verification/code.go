package verification

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
	"time"

	"github.com/BruksfildServices01/fishmaster-api/internal/httperr"
	"github.com/BruksfildServices01/fishmaster-api/internal/models"
)

const (
	codeMin = 100000
	codeMax = 999999

	SignupTTL = 15 * time.Minute
	ResendTTL = time.Hour
)

var (
	ErrAlreadyVerified = httperr.ErrConflict("already_verified", "Account is already verified")
	ErrInvalidCode     = httperr.ErrValidation("invalid_code", "Invalid verification code")
	ErrCodeExpired     = httperr.ErrExpired("code_expired", "Verification code has expired")
)

// Generator produces six-digit codes uniformly in [100000, 999999].
type Generator struct {
	rand io.Reader
}

func NewGenerator() *Generator {
	return &Generator{rand: rand.Reader}
}

func (g *Generator) Code() (string, error) {
	n, err := rand.Int(g.rand, big.NewInt(codeMax-codeMin+1))
	if err != nil {
		return "", fmt.Errorf("generating verification code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()+codeMin), nil
}

// ===============================
// Transitions
// ===============================

// Issue puts a new user in the unverified state.
func Issue(u *models.User, code string, now time.Time) {
	expires := now.Add(SignupTTL)
	u.Enabled = false
	u.VerificationCode = code
	u.VerificationExpiresAt = &expires
}

// Reissue replaces the pending code. Only valid while unverified.
func Reissue(u *models.User, code string, now time.Time) error {
	if u.Enabled {
		return ErrAlreadyVerified
	}
	expires := now.Add(ResendTTL)
	u.VerificationCode = code
	u.VerificationExpiresAt = &expires
	return nil
}

// Verify consumes a submitted code. After success the user is terminal:
// every later call returns ErrAlreadyVerified.
func Verify(u *models.User, code string, now time.Time) error {
	if u.Enabled {
		return ErrAlreadyVerified
	}
	if u.VerificationExpiresAt == nil || now.After(*u.VerificationExpiresAt) {
		return ErrCodeExpired
	}
	if u.VerificationCode == "" || code != u.VerificationCode {
		return ErrInvalidCode
	}

	u.Enabled = true
	u.VerificationCode = ""
	u.VerificationExpiresAt = nil
	return nil
}

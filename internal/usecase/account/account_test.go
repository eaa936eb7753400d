package account

import (
	"context"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/fishmaster-api/internal/audit"
	"github.com/BruksfildServices01/fishmaster-api/internal/auth"
	"github.com/BruksfildServices01/fishmaster-api/internal/domain/verification"
	"github.com/BruksfildServices01/fishmaster-api/internal/httperr"
	"github.com/BruksfildServices01/fishmaster-api/internal/infra/repository"
	"github.com/BruksfildServices01/fishmaster-api/internal/mailer"
	"github.com/BruksfildServices01/fishmaster-api/internal/models"
	"github.com/BruksfildServices01/fishmaster-api/internal/testutil"
)

type fixture struct {
	db    *gorm.DB
	repo  *repository.UserGormRepository
	mail  *testutil.Mailbox
	audit *testutil.Recorder
	codes *testutil.Codes
}

func newFixture(t *testing.T) *fixture {
	gdb := testutil.NewDB(t)
	return &fixture{
		db:    gdb,
		repo:  repository.NewUserGormRepository(gdb),
		mail:  &testutil.Mailbox{},
		audit: &testutil.Recorder{},
		codes: testutil.NewCodes("123456", "654321"),
	}
}

func (f *fixture) signup(t *testing.T, opts SignupOptions) *Signup {
	log, _ := test.NewNullLogger()
	return NewSignup(f.repo, f.codes, f.mail, f.audit, log, opts)
}

func (f *fixture) reload(t *testing.T, email string) *models.User {
	u, err := f.repo.GetUserByEmail(context.Background(), email)
	require.NoError(t, err)
	return u
}

// --------------------------------------------------
// Signup
// --------------------------------------------------

func TestSignup_CreatesUnverifiedUserAndQueuesCode(t *testing.T) {
	f := newFixture(t)
	uc := f.signup(t, SignupOptions{})
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	uc.now = func() time.Time { return now }

	u, err := uc.Execute(context.Background(), SignupInput{Name: " Ann ", Email: " Ann@Example.COM ", Password: "secret1"})
	require.NoError(t, err)

	assert.Equal(t, "Ann", u.Name)
	assert.Equal(t, "ann@example.com", u.Email)
	assert.False(t, u.Enabled)
	assert.Equal(t, "123456", u.VerificationCode)
	require.NotNil(t, u.VerificationExpiresAt)
	assert.True(t, u.VerificationExpiresAt.Equal(now.Add(15*time.Minute)))

	msgs := f.mail.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, "ann@example.com", msgs[0].To)
	assert.Equal(t, mailer.VerificationSubject, msgs[0].Subject)
	assert.Contains(t, msgs[0].HTMLBody, "123456")
	assert.Contains(t, msgs[0].HTMLBody, "15 minutes")

	assert.Equal(t, []string{audit.ActionSignup}, f.audit.Actions())
}

func TestSignup_Rejections(t *testing.T) {
	f := newFixture(t)
	testutil.CreateUser(t, f.db, "taken@example.com")

	cases := []struct {
		name string
		in   SignupInput
		opts SignupOptions
		want error
	}{
		{"missing name", SignupInput{Email: "a@example.com", Password: "secret1"}, SignupOptions{}, ErrNameRequired},
		{"missing email", SignupInput{Name: "A", Password: "secret1"}, SignupOptions{}, ErrEmailRequired},
		{"short password", SignupInput{Name: "A", Email: "a@example.com", Password: "12345"}, SignupOptions{}, ErrWeakPassword},
		{"duplicate email", SignupInput{Name: "A", Email: "TAKEN@example.com", Password: "secret1"}, SignupOptions{}, ErrEmailTaken},
		{
			"bad domain",
			SignupInput{Name: "A", Email: "a@nowhere.invalid", Password: "secret1"},
			SignupOptions{DomainCheck: func(string) bool { return false }},
			ErrInvalidEmailDomain,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.signup(t, tc.opts).Execute(context.Background(), tc.in)
			assert.ErrorIs(t, err, tc.want)
		})
	}

	assert.Empty(t, f.mail.Messages())
	assert.True(t, httperr.IsKind(ErrEmailTaken, httperr.KindConflict))
}

// --------------------------------------------------
// Verify
// --------------------------------------------------

func TestVerify_AcceptsCodeExactlyOnce(t *testing.T) {
	f := newFixture(t)
	_, err := f.signup(t, SignupOptions{}).Execute(context.Background(), SignupInput{Name: "A", Email: "a@example.com", Password: "secret1"})
	require.NoError(t, err)

	uc := NewVerifyEmail(f.repo, f.audit)

	require.NoError(t, uc.Execute(context.Background(), "a@example.com", "123456"))

	u := f.reload(t, "a@example.com")
	assert.True(t, u.Enabled)
	assert.Empty(t, u.VerificationCode)
	assert.Nil(t, u.VerificationExpiresAt)

	err = uc.Execute(context.Background(), "a@example.com", "123456")
	assert.ErrorIs(t, err, verification.ErrAlreadyVerified)
}

func TestVerify_ExpiredEvenWhenCodeMatches(t *testing.T) {
	f := newFixture(t)
	_, err := f.signup(t, SignupOptions{}).Execute(context.Background(), SignupInput{Name: "A", Email: "a@example.com", Password: "secret1"})
	require.NoError(t, err)

	uc := NewVerifyEmail(f.repo, f.audit)
	uc.now = func() time.Time { return time.Now().Add(16 * time.Minute) }

	err = uc.Execute(context.Background(), "a@example.com", "123456")
	assert.ErrorIs(t, err, verification.ErrCodeExpired)
	assert.False(t, f.reload(t, "a@example.com").Enabled)
}

func TestVerify_WrongCodeAndUnknownEmail(t *testing.T) {
	f := newFixture(t)
	_, err := f.signup(t, SignupOptions{}).Execute(context.Background(), SignupInput{Name: "A", Email: "a@example.com", Password: "secret1"})
	require.NoError(t, err)

	uc := NewVerifyEmail(f.repo, f.audit)

	assert.ErrorIs(t, uc.Execute(context.Background(), "a@example.com", "000000"), verification.ErrInvalidCode)
	assert.ErrorIs(t, uc.Execute(context.Background(), "ghost@example.com", "123456"), ErrUserNotFound)
}

// --------------------------------------------------
// Resend
// --------------------------------------------------

func TestResend_ReplacesCodeWithOneHourExpiry(t *testing.T) {
	f := newFixture(t)
	_, err := f.signup(t, SignupOptions{}).Execute(context.Background(), SignupInput{Name: "A", Email: "a@example.com", Password: "secret1"})
	require.NoError(t, err)

	log, _ := test.NewNullLogger()
	uc := NewResendCode(f.repo, f.codes, f.mail, log, "")
	now := time.Now()
	uc.now = func() time.Time { return now }

	require.NoError(t, uc.Execute(context.Background(), "a@example.com"))

	u := f.reload(t, "a@example.com")
	assert.Equal(t, "654321", u.VerificationCode)
	require.NotNil(t, u.VerificationExpiresAt)
	assert.WithinDuration(t, now.Add(time.Hour), *u.VerificationExpiresAt, time.Second)

	msgs := f.mail.Messages()
	require.Len(t, msgs, 2)
	assert.Contains(t, msgs[1].HTMLBody, "654321")
	assert.Contains(t, msgs[1].HTMLBody, "1 hour")

	// the old code no longer verifies
	verify := NewVerifyEmail(f.repo, f.audit)
	assert.ErrorIs(t, verify.Execute(context.Background(), "a@example.com", "123456"), verification.ErrInvalidCode)
	assert.NoError(t, verify.Execute(context.Background(), "a@example.com", "654321"))
}

func TestResend_VerifiedAccountIsConflictAndKeepsState(t *testing.T) {
	f := newFixture(t)
	testutil.CreateUser(t, f.db, "done@example.com")

	log, _ := test.NewNullLogger()
	uc := NewResendCode(f.repo, f.codes, f.mail, log, "")

	err := uc.Execute(context.Background(), "done@example.com")
	assert.ErrorIs(t, err, verification.ErrAlreadyVerified)
	assert.Equal(t, "Account is already verified", err.Error())

	assert.Empty(t, f.reload(t, "done@example.com").VerificationCode)
	assert.Empty(t, f.mail.Messages())

	assert.ErrorIs(t, uc.Execute(context.Background(), "ghost@example.com"), ErrUserNotFound)
}

// --------------------------------------------------
// Login
// --------------------------------------------------

func TestLogin(t *testing.T) {
	f := newFixture(t)
	testutil.CreateUser(t, f.db, "ok@example.com")
	_, err := f.signup(t, SignupOptions{}).Execute(context.Background(), SignupInput{Name: "P", Email: "pending@example.com", Password: "secret1"})
	require.NoError(t, err)

	tokens := auth.NewTokenManager("test-secret", 2*time.Hour)
	uc := NewLogin(f.repo, tokens, f.audit)

	res, err := uc.Execute(context.Background(), "OK@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, int64(2*time.Hour/time.Millisecond), res.ExpiresAt)

	p, err := tokens.Validate(res.Token)
	require.NoError(t, err)
	assert.Equal(t, "ok@example.com", p.Email)
	assert.Equal(t, auth.RoleUser, p.Role)

	_, err = uc.Execute(context.Background(), "ok@example.com", "wrong-pass")
	assert.ErrorIs(t, err, ErrBadCredentials)
	assert.Equal(t, "Invalid email or password", err.Error())

	_, err = uc.Execute(context.Background(), "ghost@example.com", "secret1")
	assert.ErrorIs(t, err, ErrBadCredentials)

	_, err = uc.Execute(context.Background(), "pending@example.com", "secret1")
	assert.ErrorIs(t, err, ErrNotVerified)
	assert.Equal(t, "Account not verified, please verify your email", err.Error())
}

// Package testutil holds fixtures shared by package tests.
package testutil

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/fishmaster-api/internal/audit"
	"github.com/BruksfildServices01/fishmaster-api/internal/auth"
	"github.com/BruksfildServices01/fishmaster-api/internal/db"
	"github.com/BruksfildServices01/fishmaster-api/internal/mailer"
	"github.com/BruksfildServices01/fishmaster-api/internal/models"
)

// NewDB returns a migrated SQLite database with the fish catalogue seeded.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()
	gdb, err := db.NewDB("sqlite://" + filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return gdb
}

// CreateUser inserts a verified user with password "secret1".
func CreateUser(t testing.TB, gdb *gorm.DB, email string) *models.User {
	t.Helper()
	hash, err := auth.HashPassword("secret1")
	require.NoError(t, err)

	u := &models.User{
		Name:               "Fish Keeper",
		Email:              email,
		PasswordHash:       hash,
		Timezone:           "UTC",
		Enabled:            true,
		EmailNotifications: true,
	}
	require.NoError(t, gdb.Create(u).Error)
	return u
}

// FishType looks up a catalogue entry by name.
func FishType(t testing.TB, gdb *gorm.DB, name string) models.FishType {
	t.Helper()
	var ft models.FishType
	require.NoError(t, gdb.Where("name = ?", name).First(&ft).Error)
	return ft
}

func Principal(u *models.User) auth.Principal {
	return auth.Principal{UserID: u.ID, Email: u.Email, Role: auth.RoleUser}
}

// --------------------------------------------------
// Fakes
// --------------------------------------------------

type Mailbox struct {
	mu   sync.Mutex
	msgs []mailer.Message
}

func (m *Mailbox) Enqueue(msg mailer.Message) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.msgs = append(m.msgs, msg)
}

func (m *Mailbox) Messages() []mailer.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]mailer.Message(nil), m.msgs...)
}

type Recorder struct {
	mu     sync.Mutex
	events []audit.Event
}

func (r *Recorder) Dispatch(ev audit.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

func (r *Recorder) Actions() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.events))
	for _, ev := range r.events {
		out = append(out, ev.Action)
	}
	return out
}

// Codes hands out fixed verification codes in order, repeating the last.
type Codes struct {
	mu    sync.Mutex
	codes []string
}

func NewCodes(codes ...string) *Codes {
	return &Codes{codes: codes}
}

func (c *Codes) Code() (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	code := c.codes[0]
	if len(c.codes) > 1 {
		c.codes = c.codes[1:]
	}
	return code, nil
}

type PhotoStore struct {
	mu      sync.Mutex
	Objects map[string][]byte
	Err     error
}

func NewPhotoStore() *PhotoStore {
	return &PhotoStore{Objects: map[string][]byte{}}
}

func (s *PhotoStore) Put(_ context.Context, key string, body []byte, _ string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	s.Objects[key] = body
	return nil
}

func (s *PhotoStore) PresignGet(_ context.Context, key string) (string, error) {
	return "https://photos.example.com/" + key + "?X-Amz-Signature=test", nil
}

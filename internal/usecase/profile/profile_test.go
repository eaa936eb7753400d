package profile

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/fishmaster-api/internal/audit"
	"github.com/BruksfildServices01/fishmaster-api/internal/infra/repository"
	"github.com/BruksfildServices01/fishmaster-api/internal/models"
	"github.com/BruksfildServices01/fishmaster-api/internal/testutil"
)

func ptr[T any](v T) *T { return &v }

func TestService_MeListsTanks(t *testing.T) {
	gdb := testutil.NewDB(t)
	u := testutil.CreateUser(t, gdb, "me@example.com")
	require.NoError(t, gdb.Create(&models.Tank{UserID: u.ID, Name: "Reef", SizeLiters: 200}).Error)

	svc := NewService(repository.NewUserGormRepository(gdb), audit.New(gdb), &testutil.Recorder{})

	me, err := svc.Me(context.Background(), testutil.Principal(u))
	require.NoError(t, err)

	assert.Equal(t, "me@example.com", me.Email)
	assert.True(t, me.EmailNotifications)
	require.Len(t, me.Tanks, 1)
	assert.Equal(t, 200, me.Tanks[0].SizeLiters)
}

func TestService_UpdateChangesOnlyGivenFields(t *testing.T) {
	gdb := testutil.NewDB(t)
	u := testutil.CreateUser(t, gdb, "me@example.com")
	rec := &testutil.Recorder{}
	svc := NewService(repository.NewUserGormRepository(gdb), audit.New(gdb), rec)

	me, err := svc.Update(context.Background(), testutil.Principal(u), UpdateInput{
		ContactNumber:      ptr("+351 900 000 000"),
		EmailNotifications: ptr(false),
		Timezone:           ptr("Europe/Lisbon"),
	})
	require.NoError(t, err)

	assert.Equal(t, "Fish Keeper", me.Name)
	assert.Equal(t, "+351 900 000 000", me.ContactNumber)
	assert.False(t, me.EmailNotifications)
	assert.False(t, me.SMSNotifications)
	assert.Equal(t, "Europe/Lisbon", me.Timezone)
	assert.Equal(t, []string{audit.ActionProfileUpdate}, rec.Actions())

	// nothing to change: no write, no event
	_, err = svc.Update(context.Background(), testutil.Principal(u), UpdateInput{})
	require.NoError(t, err)
	assert.Len(t, rec.Actions(), 1)
}

func TestService_UpdateValidates(t *testing.T) {
	gdb := testutil.NewDB(t)
	u := testutil.CreateUser(t, gdb, "me@example.com")
	svc := NewService(repository.NewUserGormRepository(gdb), audit.New(gdb), &testutil.Recorder{})

	_, err := svc.Update(context.Background(), testutil.Principal(u), UpdateInput{Timezone: ptr("Atlantis/Capital")})
	assert.ErrorIs(t, err, ErrInvalidTimezone)

	_, err = svc.Update(context.Background(), testutil.Principal(u), UpdateInput{Name: ptr("   ")})
	assert.ErrorIs(t, err, ErrNameRequired)
}

func TestService_DeleteCascades(t *testing.T) {
	gdb := testutil.NewDB(t)
	u := testutil.CreateUser(t, gdb, "me@example.com")
	tk := &models.Tank{UserID: u.ID, Name: "Reef", SizeLiters: 50}
	require.NoError(t, gdb.Create(tk).Error)
	ft := testutil.FishType(t, gdb, "Guppy")
	require.NoError(t, gdb.Create(&models.Fish{TankID: tk.ID, FishTypeID: ft.ID, Name: "G"}).Error)

	svc := NewService(repository.NewUserGormRepository(gdb), audit.New(gdb), &testutil.Recorder{})
	require.NoError(t, svc.Delete(context.Background(), testutil.Principal(u)))

	var n int64
	require.NoError(t, gdb.Model(&models.Fish{}).Count(&n).Error)
	assert.Zero(t, n)

	_, err := svc.Me(context.Background(), testutil.Principal(u))
	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.ErrorIs(t, svc.Delete(context.Background(), testutil.Principal(u)), ErrUserNotFound)
}

func TestService_AuditLogsAreScopedToCaller(t *testing.T) {
	gdb := testutil.NewDB(t)
	u := testutil.CreateUser(t, gdb, "me@example.com")
	other := testutil.CreateUser(t, gdb, "other@example.com")
	logs := audit.New(gdb)
	require.NoError(t, logs.Log(audit.Event{UserID: u.ID, Action: audit.ActionLogin}))
	require.NoError(t, logs.Log(audit.Event{UserID: other.ID, Action: audit.ActionLogin}))

	svc := NewService(repository.NewUserGormRepository(gdb), logs, &testutil.Recorder{})

	page, err := svc.AuditLogs(context.Background(), testutil.Principal(u), AuditQuery{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Total)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 50, page.Limit)
	assert.Equal(t, u.ID, page.Logs[0].UserID)
}

func TestService_AuditLogDatesFollowUserTimezone(t *testing.T) {
	gdb := testutil.NewDB(t)
	u := testutil.CreateUser(t, gdb, "tokyo@example.com")
	require.NoError(t, gdb.Model(u).Update("timezone", "Asia/Tokyo").Error)

	// in Tokyo: 2 March 01:00, 2 March 23:30, 3 March 01:00
	early := time.Date(2026, 3, 1, 16, 0, 0, 0, time.UTC)
	late := time.Date(2026, 3, 2, 14, 30, 0, 0, time.UTC)
	nextDay := time.Date(2026, 3, 2, 16, 0, 0, 0, time.UTC)
	for _, at := range []time.Time{early, late, nextDay} {
		require.NoError(t, gdb.Create(&models.AuditLog{UserID: u.ID, Action: audit.ActionLogin, CreatedAt: at}).Error)
	}

	svc := NewService(repository.NewUserGormRepository(gdb), audit.New(gdb), &testutil.Recorder{})

	page, err := svc.AuditLogs(context.Background(), testutil.Principal(u), AuditQuery{From: "2026-03-02", To: "2026-03-02"})
	require.NoError(t, err)
	require.Equal(t, int64(2), page.Total)
	assert.True(t, page.Logs[0].CreatedAt.Equal(late))
	assert.True(t, page.Logs[1].CreatedAt.Equal(early))

	_, err = svc.AuditLogs(context.Background(), testutil.Principal(u), AuditQuery{From: "02/03/2026"})
	assert.ErrorIs(t, err, ErrInvalidDate)
}

package audit

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/fishmaster-api/internal/db"
	"github.com/BruksfildServices01/fishmaster-api/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := db.Open("sqlite://" + filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gdb))
	return gdb
}

func TestDispatcher_CloseDrainsQueue(t *testing.T) {
	gdb := newTestDB(t)
	log, _ := test.NewNullLogger()

	d := NewDispatcher(New(gdb), log, 10)
	d.Dispatch(Event{UserID: 1, Action: ActionTankCreate, Entity: EntityTank, EntityID: ID(7), Metadata: map[string]any{"name": "Reef"}})
	d.Dispatch(Event{UserID: 1, Action: ActionTankDelete, Entity: EntityTank, EntityID: ID(7)})
	d.Close()

	var rows []models.AuditLog
	require.NoError(t, gdb.Order("id").Find(&rows).Error)
	require.Len(t, rows, 2)
	assert.Equal(t, ActionTankCreate, rows[0].Action)
	assert.JSONEq(t, `{"name":"Reef"}`, rows[0].Metadata)
	assert.Equal(t, uint(7), *rows[1].EntityID)
}

func TestDispatcher_DropsWhenFull(t *testing.T) {
	log, hook := test.NewNullLogger()

	// no worker: the queue is never drained
	d := &Dispatcher{log: log, queue: make(chan Event, 1)}
	d.Dispatch(Event{Action: "a"})
	d.Dispatch(Event{Action: "b"})

	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
	assert.Len(t, d.queue, 1)
}

func TestDispatcher_DispatchAfterCloseDrops(t *testing.T) {
	gdb := newTestDB(t)
	log, hook := test.NewNullLogger()

	d := NewDispatcher(New(gdb), log, 4)
	d.Close()

	assert.NotPanics(t, func() { d.Dispatch(Event{UserID: 1, Action: ActionTankCreate}) })
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)

	var n int64
	require.NoError(t, gdb.Model(&models.AuditLog{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestLogger_ListFiltersAndPages(t *testing.T) {
	gdb := newTestDB(t)
	l := New(gdb)

	for i := 0; i < 5; i++ {
		require.NoError(t, l.Log(Event{UserID: 1, Action: ActionFishAdd, Entity: EntityFish}))
	}
	require.NoError(t, l.Log(Event{UserID: 1, Action: ActionTankCreate, Entity: EntityTank}))
	require.NoError(t, l.Log(Event{UserID: 2, Action: ActionFishAdd, Entity: EntityFish}))

	logs, total, err := l.List(context.Background(), 1, Filter{Action: ActionFishAdd, Page: 2, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	assert.Len(t, logs, 2)

	logs, total, err = l.List(context.Background(), 1, Filter{Entity: EntityTank})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, ActionTankCreate, logs[0].Action)
}

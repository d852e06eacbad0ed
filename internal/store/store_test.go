package store

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "sysinfo.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func snapshot(host string, collectedAt time.Time) *SnapshotRecord {
	return &SnapshotRecord{
		SnapshotID:    fmt.Sprintf("%s-%d", host, collectedAt.UnixNano()),
		Hostname:      host,
		Platform:      "Microsoft Windows 10 Pro 10.0.19045",
		RecordCount:   4,
		CollectedAt:   collectedAt,
		InventoryJSON: `{"hostname":"` + host + `"}`,
	}
}

func TestInsertAndGet(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	collected := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)

	id, storedAt, err := s.Insert(ctx, snapshot("ws-01", collected))
	require.NoError(t, err)
	assert.Positive(t, id)
	assert.False(t, storedAt.IsZero())

	rec, err := s.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "ws-01", rec.Hostname)
	assert.Equal(t, 4, rec.RecordCount)
	assert.True(t, collected.Equal(rec.CollectedAt))
	assert.Equal(t, `{"hostname":"ws-01"}`, rec.InventoryJSON)

	_, err = s.Get(ctx, id+100)
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestDuplicateSnapshotIDRejected(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	rec := snapshot("ws-01", time.Now())

	_, _, err := s.Insert(ctx, rec)
	require.NoError(t, err)
	_, _, err = s.Insert(ctx, rec)
	assert.Error(t, err)
}

func TestGetLatestByHostname(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	base := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)

	for i, at := range []time.Time{base, base.Add(500 * time.Millisecond), base.Add(-time.Hour)} {
		rec := snapshot("ws-01", at)
		rec.RecordCount = i
		_, _, err := s.Insert(ctx, rec)
		require.NoError(t, err)
	}

	rec, err := s.GetLatestByHostname(ctx, "ws-01")
	require.NoError(t, err)
	assert.Equal(t, 1, rec.RecordCount)

	_, err = s.GetLatestByHostname(ctx, "ws-02")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestListFiltersAndPages(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	base := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		_, _, err := s.Insert(ctx, snapshot("ws-01", base.Add(time.Duration(i)*time.Hour)))
		require.NoError(t, err)
	}
	_, _, err := s.Insert(ctx, snapshot("ws-02", base))
	require.NoError(t, err)

	recs, total, err := s.List(ctx, ListFilter{Hostname: "ws-01", PageSize: 2, Page: 2})
	require.NoError(t, err)
	assert.Equal(t, 5, total)
	require.Len(t, recs, 2)
	assert.True(t, base.Add(2*time.Hour).Equal(recs[0].CollectedAt))
	assert.Empty(t, recs[0].InventoryJSON)

	after := base.Add(3 * time.Hour)
	recs, total, err = s.List(ctx, ListFilter{CollectedAfter: &after})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Len(t, recs, 2)

	_, total, err = s.List(ctx, ListFilter{})
	require.NoError(t, err)
	assert.Equal(t, 6, total)
}

func TestDeleteAndPurge(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	oldID, _, err := s.Insert(ctx, snapshot("ws-01", time.Now().Add(-48*time.Hour)))
	require.NoError(t, err)
	newID, _, err := s.Insert(ctx, snapshot("ws-01", time.Now()))
	require.NoError(t, err)

	n, err := s.Purge(ctx, 24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, err = s.Get(ctx, oldID)
	assert.ErrorIs(t, err, sql.ErrNoRows)

	require.NoError(t, s.Delete(ctx, newID))
	assert.ErrorIs(t, s.Delete(ctx, newID), sql.ErrNoRows)
}

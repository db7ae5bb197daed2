package storage

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shasank123/Fresh-Prints-OS/internal/models"
)

func newTestStorage(t *testing.T) *Storage {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestDesignHistoryRoundTrip(t *testing.T) {
	s := newTestStorage(t)

	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	require.NoError(t, s.AppendDesignHistory(models.DesignHistoryEntry{
		URL: "http://img/one.png", Style: "retro", Timestamp: base,
	}))
	require.NoError(t, s.AppendDesignHistory(models.DesignHistoryEntry{
		URL: "http://img/two.png", Style: "minimal", Timestamp: base.Add(time.Minute),
	}))

	entries, err := s.DesignHistory()
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "http://img/one.png", entries[0].URL)
	assert.Equal(t, "minimal", entries[1].Style)
}

func TestDesignHistoryDuplicateURL(t *testing.T) {
	s := newTestStorage(t)

	e := models.DesignHistoryEntry{URL: "http://img/one.png", Style: "retro", Timestamp: time.Now()}
	require.NoError(t, s.AppendDesignHistory(e))
	e.Style = "changed"
	require.NoError(t, s.AppendDesignHistory(e), "re-inserting a known url is a no-op")

	entries, err := s.DesignHistory()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "retro", entries[0].Style, "first write wins")
}

func TestDesignHistorySurvivesReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	s, err := New(dbPath)
	require.NoError(t, err)
	require.NoError(t, s.AppendDesignHistory(models.DesignHistoryEntry{
		URL: "http://img/one.png", Style: "retro", Timestamp: time.Now(),
	}))
	require.NoError(t, s.Close())

	s, err = New(dbPath)
	require.NoError(t, err)
	defer s.Close()

	entries, err := s.DesignHistory()
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestRole(t *testing.T) {
	s := newTestStorage(t)

	role, err := s.LoadRole()
	require.NoError(t, err)
	assert.Empty(t, role, "fresh database has no role")

	require.NoError(t, s.SaveRole(models.RoleArtDirector))
	role, err = s.LoadRole()
	require.NoError(t, err)
	assert.Equal(t, models.RoleArtDirector, role)

	// Switching roles overwrites.
	require.NoError(t, s.SaveRole(models.RoleOpsManager))
	role, err = s.LoadRole()
	require.NoError(t, err)
	assert.Equal(t, models.RoleOpsManager, role)

	require.NoError(t, s.ClearRole())
	role, err = s.LoadRole()
	require.NoError(t, err)
	assert.Empty(t, role)
}

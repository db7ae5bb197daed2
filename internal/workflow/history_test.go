package workflow

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shasank123/Fresh-Prints-OS/internal/models"
)

type fakeHistoryStore struct {
	entries   []models.DesignHistoryEntry
	loadErr   error
	appendErr error
}

func (f *fakeHistoryStore) AppendDesignHistory(e models.DesignHistoryEntry) error {
	if f.appendErr != nil {
		return f.appendErr
	}
	f.entries = append(f.entries, e)
	return nil
}

func (f *fakeHistoryStore) DesignHistory() ([]models.DesignHistoryEntry, error) {
	return f.entries, f.loadErr
}

func TestHistoryObserve(t *testing.T) {
	t.Run("dedupes by url", func(t *testing.T) {
		h, err := NewHistory(nil)
		require.NoError(t, err)

		assert.True(t, h.Observe("http://img/one.png", "retro"))
		assert.False(t, h.Observe("http://img/one.png", "retro"))
		assert.False(t, h.Observe("http://img/one.png", "different style, same url"))
		assert.True(t, h.Observe("http://img/two.png", "retro"))
		assert.Equal(t, 2, h.Len())
	})

	t.Run("ignores empty urls", func(t *testing.T) {
		h, err := NewHistory(nil)
		require.NoError(t, err)
		assert.False(t, h.Observe("", "retro"))
		assert.Zero(t, h.Len())
	})

	t.Run("persists to the store", func(t *testing.T) {
		store := &fakeHistoryStore{}
		h, err := NewHistory(store)
		require.NoError(t, err)

		h.Observe("http://img/one.png", "retro")
		require.Len(t, store.entries, 1)
		assert.Equal(t, "http://img/one.png", store.entries[0].URL)
		assert.Equal(t, "retro", store.entries[0].Style)
		assert.False(t, store.entries[0].Timestamp.IsZero())
	})

	t.Run("persistence failure keeps the in-memory entry", func(t *testing.T) {
		store := &fakeHistoryStore{appendErr: errors.New("disk full")}
		h, err := NewHistory(store)
		require.NoError(t, err)

		assert.True(t, h.Observe("http://img/one.png", "retro"))
		assert.Equal(t, 1, h.Len())
		assert.Empty(t, store.entries)
	})
}

func TestHistoryLoadsPersisted(t *testing.T) {
	store := &fakeHistoryStore{entries: []models.DesignHistoryEntry{
		{URL: "http://img/old.png", Style: "vintage"},
	}}
	h, err := NewHistory(store)
	require.NoError(t, err)

	assert.Equal(t, 1, h.Len())
	// The persisted url is already seen, so a later poll of the same
	// artifact adds nothing.
	assert.False(t, h.Observe("http://img/old.png", "vintage"))
	assert.Equal(t, 1, h.Len())
}

func TestHistoryLoadFailure(t *testing.T) {
	store := &fakeHistoryStore{loadErr: errors.New("corrupt db")}
	_, err := NewHistory(store)
	assert.Error(t, err)
}

package workflow

import (
	"time"

	"github.com/shasank123/Fresh-Prints-OS/internal/models"
)

// HistoryStore persists gallery entries across sessions.
type HistoryStore interface {
	AppendDesignHistory(e models.DesignHistoryEntry) error
	DesignHistory() ([]models.DesignHistoryEntry, error)
}

// History is the designer page's gallery: every generated artwork ever
// observed, de-duplicated by image URL. Unlike all other page state it
// deliberately survives job relaunches; it is a gallery, not per-job
// state. There is no eviction.
type History struct {
	store   HistoryStore
	clock   func() time.Time
	seen    map[string]struct{}
	entries []models.DesignHistoryEntry
}

// NewHistory builds the gallery, loading persisted entries when a store
// is given. A nil store keeps the gallery in memory only.
func NewHistory(store HistoryStore) (*History, error) {
	h := &History{
		store: store,
		clock: time.Now,
		seen:  make(map[string]struct{}),
	}
	if store != nil {
		entries, err := store.DesignHistory()
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			h.seen[e.URL] = struct{}{}
			h.entries = append(h.entries, e)
		}
	}
	return h, nil
}

// Observe records the artifact URL with the style label it was generated
// under, unless the exact URL has been recorded before. Reports whether
// a new entry was appended.
func (h *History) Observe(url, style string) bool {
	if url == "" {
		return false
	}
	if _, ok := h.seen[url]; ok {
		return false
	}
	entry := models.DesignHistoryEntry{
		URL:       url,
		Style:     style,
		Timestamp: h.clock(),
	}
	h.seen[url] = struct{}{}
	h.entries = append(h.entries, entry)
	if h.store != nil {
		// Persistence failure keeps the in-memory entry; the gallery
		// just won't survive the session.
		_ = h.store.AppendDesignHistory(entry)
	}
	return true
}

// Entries returns the gallery oldest first.
func (h *History) Entries() []models.DesignHistoryEntry {
	return h.entries
}

func (h *History) Len() int {
	return len(h.entries)
}

package tui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shasank123/Fresh-Prints-OS/internal/models"
	"github.com/shasank123/Fresh-Prints-OS/internal/workflow"
)

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "exactly-10", truncate("exactly-10", 10))
	assert.Equal(t, "a long ...", truncate("a long style name", 10))
	assert.Equal(t, "ab", truncate("abcdef", 2))
}

func TestRenderSentiment(t *testing.T) {
	assert.Contains(t, renderSentiment("POSITIVE"), "POSITIVE NEWS")
	assert.Contains(t, renderSentiment("NEGATIVE"), "NEGATIVE NEWS")
	assert.Contains(t, renderSentiment("NEUTRAL"), "NEUTRAL")
	assert.Empty(t, renderSentiment(""))
}

func TestRenderPhase(t *testing.T) {
	for _, p := range []workflow.Phase{
		workflow.PhaseRunning,
		workflow.PhaseAwaitingApproval,
		workflow.PhaseApproved,
		workflow.PhaseRejected,
		workflow.PhaseFinished,
		workflow.PhaseFailed,
	} {
		assert.NotEmpty(t, renderPhase(p))
	}
}

func TestRenderTerminal(t *testing.T) {
	t.Run("empty feed shows waiting line", func(t *testing.T) {
		out := renderTerminal(1770000000000, nil, "·")
		assert.Contains(t, out, "PROCESS_ID_1770000000000")
		assert.Contains(t, out, "Waiting for agent output")
	})

	t.Run("running feed shows thinking indicator", func(t *testing.T) {
		logs := []models.LogEntry{{ID: 1, AgentType: models.AgentTypeThought, LogMessage: "Scanning news"}}
		out := renderTerminal(42, logs, "·")
		assert.Contains(t, out, "Scanning news")
		assert.Contains(t, out, "Thinking...")
	})

	t.Run("finished feed has no thinking indicator", func(t *testing.T) {
		logs := []models.LogEntry{{ID: 1, AgentType: models.AgentTypeSystem, LogMessage: "✅ Done"}}
		out := renderTerminal(42, logs, "·")
		assert.NotContains(t, out, "Thinking...")
	})

	t.Run("long feeds are tailed", func(t *testing.T) {
		var logs []models.LogEntry
		for i := 1; i <= 30; i++ {
			logs = append(logs, models.LogEntry{ID: int64(i), AgentType: models.AgentTypeTool, LogMessage: "step"})
		}
		out := renderTerminal(42, logs, "·")
		assert.Contains(t, out, "12 earlier entries")
	})
}

func TestRenderForecastBars(t *testing.T) {
	assert.Empty(t, renderForecastBars(nil))

	out := renderForecastBars([]models.ForecastPoint{
		{Date: "2026-03-30", Orders: 10},
		{Date: "2026-03-31", Orders: 5},
		{Date: "2026-04-01", Orders: 0},
	})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Len(t, lines, 3)
	assert.Contains(t, lines[0], "2026-03-30")
	assert.Contains(t, lines[0], "10")
}

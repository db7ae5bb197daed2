package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shasank123/Fresh-Prints-OS/internal/models"
)

func entry(id int64, msg string) models.LogEntry {
	return models.LogEntry{ID: id, AgentType: models.AgentTypeSystem, LogMessage: msg}
}

func TestFeedState(t *testing.T) {
	tests := []struct {
		name string
		logs []models.LogEntry
		want Phase
	}{
		{
			name: "empty feed is running",
			logs: nil,
			want: PhaseRunning,
		},
		{
			name: "plain output is running",
			logs: []models.LogEntry{entry(1, "Scanning campus news...")},
			want: PhaseRunning,
		},
		{
			name: "paused marker",
			logs: []models.LogEntry{
				entry(1, "Drafting email"),
				entry(2, "PAUSED: waiting for human approval"),
			},
			want: PhaseAwaitingApproval,
		},
		{
			name: "finished check mark",
			logs: []models.LogEntry{entry(3, "✅ Email sent and lead saved to CRM")},
			want: PhaseFinished,
		},
		{
			name: "finished completed word",
			logs: []models.LogEntry{entry(3, "Workflow completed")},
			want: PhaseFinished,
		},
		{
			name: "failed marker",
			logs: []models.LogEntry{entry(4, "❌ Agent crashed")},
			want: PhaseFailed,
		},
		{
			name: "recency is by id not array position",
			logs: []models.LogEntry{
				entry(9, "✅ Done"),
				entry(2, "Still working on the draft"),
			},
			want: PhaseFinished,
		},
		{
			name: "older marker loses to newer plain entry",
			logs: []models.LogEntry{
				entry(5, "PAUSED: waiting for human approval"),
				entry(6, "Regenerating with feedback"),
			},
			want: PhaseRunning,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FeedState(tt.logs))
		})
	}
}

func TestThinking(t *testing.T) {
	assert.False(t, Thinking(nil), "no output yet")
	assert.True(t, Thinking([]models.LogEntry{entry(1, "Working...")}))
	assert.False(t, Thinking([]models.LogEntry{entry(1, "✅ Done")}))
}

func TestLatestReviewSignal(t *testing.T) {
	t.Run("no reviewer entries", func(t *testing.T) {
		sig := LatestReviewSignal([]models.LogEntry{entry(1, "Generating mockup")})
		assert.Equal(t, SignalNone, sig.Kind)
	})

	t.Run("approval then rejection, ids decide", func(t *testing.T) {
		logs := []models.LogEntry{
			entry(10, "Apparel Chair: Approved! 🎉"),
			entry(12, "Apparel Chair: Rejected: too much neon"),
		}
		sig := LatestReviewSignal(logs)
		assert.Equal(t, SignalRejected, sig.Kind)
		assert.Equal(t, int64(12), sig.EntryID)
	})

	t.Run("newer approval wins regardless of array order", func(t *testing.T) {
		logs := []models.LogEntry{
			entry(15, "Apparel Chair: Approved! 🎉"),
			entry(12, "Apparel Chair: Rejected: too much neon"),
		}
		sig := LatestReviewSignal(logs)
		assert.Equal(t, SignalApproved, sig.Kind)
		assert.Equal(t, int64(15), sig.EntryID)
	})

	t.Run("non-reviewer lines never match", func(t *testing.T) {
		logs := []models.LogEntry{
			entry(3, "The design was Rejected: by quality check"),
			entry(4, "Approved! by internal tooling"),
		}
		assert.Equal(t, SignalNone, LatestReviewSignal(logs).Kind)
	})
}

func TestClassify(t *testing.T) {
	t.Run("pending endpoint wins outright", func(t *testing.T) {
		logs := []models.LogEntry{entry(1, "✅ Done")}
		assert.Equal(t, PhaseAwaitingApproval, Classify(logs, true, false, 0))
	})

	t.Run("reviewer approval needs the stage-2 request", func(t *testing.T) {
		logs := []models.LogEntry{entry(5, "Apparel Chair: Approved! 🎉")}
		assert.Equal(t, PhaseRunning, Classify(logs, false, false, 0))
		assert.Equal(t, PhaseApproved, Classify(logs, false, true, 0))
	})

	t.Run("consumed rejection does not re-trigger", func(t *testing.T) {
		logs := []models.LogEntry{
			entry(7, "Apparel Chair: Rejected: wrong colors"),
			entry(8, "Regenerating design"),
		}
		assert.Equal(t, PhaseRejected, Classify(logs, false, true, 0))
		assert.Equal(t, PhaseRunning, Classify(logs, false, true, 7))
	})

	t.Run("approval newer than rejection reads approved", func(t *testing.T) {
		logs := []models.LogEntry{
			entry(7, "Apparel Chair: Rejected: wrong colors"),
			entry(11, "Apparel Chair: Approved! 🎉"),
		}
		assert.Equal(t, PhaseApproved, Classify(logs, false, true, 7))
	})
}

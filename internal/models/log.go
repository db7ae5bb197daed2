package models

// Agent log entry types. They only control presentation.
const (
	AgentTypeThought    = "THOUGHT"
	AgentTypeTool       = "TOOL"
	AgentTypeToolResult = "TOOL_RESULT"
	AgentTypeSystem     = "SYSTEM"
)

// LogEntry is one line of a remote job's execution trace. The backend
// assigns monotonically increasing ids; the entry with the largest id is
// the most recent one regardless of array position. The free-text
// LogMessage is the only channel through which domain outcomes reach the
// client.
type LogEntry struct {
	ID         int64  `json:"id"`
	AgentType  string `json:"agent_type"`
	LogMessage string `json:"log_message"`
	Timestamp  string `json:"timestamp"`
}

// LatestEntry returns the entry with the largest id. The log endpoint
// returns entries oldest-first, but ordering by id is the only reliable
// recency signal.
func LatestEntry(logs []LogEntry) (LogEntry, bool) {
	if len(logs) == 0 {
		return LogEntry{}, false
	}
	latest := logs[0]
	for _, e := range logs[1:] {
		if e.ID > latest.ID {
			latest = e
		}
	}
	return latest, true
}

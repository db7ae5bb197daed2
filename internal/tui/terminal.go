package tui

import (
	"fmt"
	"strings"

	"github.com/shasank123/Fresh-Prints-OS/internal/models"
	"github.com/shasank123/Fresh-Prints-OS/internal/workflow"
)

// maxFeedLines bounds how much of the tail of the log feed is rendered.
const maxFeedLines = 18

// renderTerminal renders the live agent feed for a job: the tail of the
// log, colored per agent type, with a thinking indicator while the
// latest entry carries no completion or pause marker.
func renderTerminal(jobID models.JobID, logs []models.LogEntry, spinner string) string {
	var b strings.Builder

	header := fmt.Sprintf("AGENT_LIVE_FEED :: PROCESS_ID_%d", jobID.Int64())
	b.WriteString(logSystem.Render(header) + "\n")
	b.WriteString(dimStyle.Render(strings.Repeat("─", len(header))) + "\n")

	start := 0
	if len(logs) > maxFeedLines {
		start = len(logs) - maxFeedLines
		b.WriteString(dimStyle.Render(fmt.Sprintf("… %d earlier entries\n", start)))
	}

	for _, entry := range logs[start:] {
		b.WriteString(renderLogLine(entry) + "\n")
	}

	if workflow.Thinking(logs) {
		b.WriteString(statusWaiting.Render(spinner+" Thinking...") + "\n")
	} else if len(logs) == 0 {
		b.WriteString(dimStyle.Render("Waiting for agent output...") + "\n")
	}

	return b.String()
}

func renderLogLine(entry models.LogEntry) string {
	var tag string
	switch entry.AgentType {
	case models.AgentTypeThought:
		tag = logThought.Render(entry.AgentType + ":")
	case models.AgentTypeToolResult:
		tag = logToolResult.Render(entry.AgentType + ":")
	case models.AgentTypeSystem:
		tag = logSystem.Render(entry.AgentType + ":")
	default:
		tag = logTool.Render(entry.AgentType + ":")
	}

	ts := ""
	if entry.Timestamp != "" {
		ts = logTimestamp.Render("["+entry.Timestamp+"]") + " "
	}
	return ts + tag + " " + entry.LogMessage
}

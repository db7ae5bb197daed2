// Package workflow implements the client-side half of the agent
// workflows: launching jobs, polling their logs, classifying their
// phase, and the human-in-the-loop approval steps. Everything here is
// UI-agnostic; the TUI and the CLI both drive these types.
package workflow

import (
	"strings"

	"github.com/shasank123/Fresh-Prints-OS/internal/models"
)

// Phase is the classified lifecycle stage of a job.
type Phase int

const (
	PhaseRunning Phase = iota
	PhaseAwaitingApproval
	PhaseApproved
	PhaseRejected
	PhaseFinished
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseRunning:
		return "running"
	case PhaseAwaitingApproval:
		return "awaiting_approval"
	case PhaseApproved:
		return "approved"
	case PhaseRejected:
		return "rejected"
	case PhaseFinished:
		return "finished"
	case PhaseFailed:
		return "failed"
	}
	return "unknown"
}

// Terminal reports whether the phase ends a job's feed.
func (p Phase) Terminal() bool {
	return p == PhaseFinished || p == PhaseFailed
}

// The backend has no structured event schema; outcomes arrive as
// free-text log messages. Every marker substring the client matches on
// lives here, because a wording change on the backend silently breaks
// phase detection and this is the one place to fix it.
const (
	markerFinished  = "✅"
	markerPaused    = "PAUSED"
	markerCompleted = "completed"
	markerFailed    = "❌"

	// Stage-2 review events are logged by the external reviewer's
	// one-shot links. The actor prefix scopes the match.
	chairActor    = "Apparel Chair"
	chairApproved = "Approved!"
	chairRejected = "Rejected:"
)

// FeedState classifies the raw terminal feed from its most recent entry,
// selected strictly by entry id. Content that matches no marker means
// the agent is still working; it is never an error.
func FeedState(logs []models.LogEntry) Phase {
	latest, ok := models.LatestEntry(logs)
	if !ok {
		return PhaseRunning
	}
	msg := latest.LogMessage
	switch {
	case strings.Contains(msg, markerFailed):
		return PhaseFailed
	case strings.Contains(msg, markerPaused):
		return PhaseAwaitingApproval
	case strings.Contains(msg, markerFinished), strings.Contains(msg, markerCompleted):
		return PhaseFinished
	}
	return PhaseRunning
}

// Thinking reports whether the feed should show a progress indicator:
// the job has produced output and the latest entry carries no completion
// or pause marker.
func Thinking(logs []models.LogEntry) bool {
	if len(logs) == 0 {
		return false
	}
	return FeedState(logs) == PhaseRunning
}

type SignalKind int

const (
	SignalNone SignalKind = iota
	SignalApproved
	SignalRejected
)

// ReviewSignal is the most recent stage-2 review event found in a log
// snapshot. EntryID is the id of the log entry that carried it.
type ReviewSignal struct {
	Kind    SignalKind
	EntryID int64
}

// LatestReviewSignal scans the snapshot for reviewer approval and
// rejection events and returns whichever is more recent. Recency is
// decided by comparing entry ids, never array position or timestamp
// text: the entry with the larger id wins.
func LatestReviewSignal(logs []models.LogEntry) ReviewSignal {
	var approvedID, rejectedID int64 = -1, -1
	for _, e := range logs {
		if !strings.Contains(e.LogMessage, chairActor) {
			continue
		}
		if strings.Contains(e.LogMessage, chairApproved) && e.ID > approvedID {
			approvedID = e.ID
		}
		if strings.Contains(e.LogMessage, chairRejected) && e.ID > rejectedID {
			rejectedID = e.ID
		}
	}
	switch {
	case approvedID < 0 && rejectedID < 0:
		return ReviewSignal{Kind: SignalNone}
	case rejectedID > approvedID:
		return ReviewSignal{Kind: SignalRejected, EntryID: rejectedID}
	default:
		return ReviewSignal{Kind: SignalApproved, EntryID: approvedID}
	}
}

// Classify derives exactly one phase for a job from the latest log
// snapshot plus the dedicated pending endpoint's answer.
//
// The pending endpoint wins outright. Otherwise the stage-2 review
// signal applies: an approval only counts once the stage-2 request has
// occurred, and a rejection only counts while its entry id is newer than
// the already-consumed watermark, so a replayed snapshot cannot
// re-trigger a reset. Anything else falls back to the feed markers.
func Classify(logs []models.LogEntry, pendingWaiting, stage2Requested bool, consumedRejectionID int64) Phase {
	if pendingWaiting {
		return PhaseAwaitingApproval
	}
	sig := LatestReviewSignal(logs)
	switch sig.Kind {
	case SignalApproved:
		if stage2Requested {
			return PhaseApproved
		}
	case SignalRejected:
		if sig.EntryID > consumedRejectionID {
			return PhaseRejected
		}
	}
	return FeedState(logs)
}

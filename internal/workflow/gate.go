package workflow

import (
	"errors"

	"github.com/shasank123/Fresh-Prints-OS/internal/models"
)

// GateState is the stage of the designer workflow's two sequential
// sign-offs: the internal art director first, then the external
// customer reviewer.
type GateState int

const (
	GateUnapproved GateState = iota
	GateDirectorApproved
	GateCustomerRequested
	GateFullyApproved
)

func (s GateState) String() string {
	switch s {
	case GateUnapproved:
		return "unapproved"
	case GateDirectorApproved:
		return "art_director_approved"
	case GateCustomerRequested:
		return "stage2_requested"
	case GateFullyApproved:
		return "fully_approved"
	}
	return "unknown"
}

// GateEvent is the outcome of feeding a log snapshot to the gate.
type GateEvent int

const (
	GateEventNone GateEvent = iota
	// GateEventReset: a not-yet-consumed rejection arrived; all stage-2
	// state was dropped so a new approval cycle can begin.
	GateEventReset
	// GateEventFullyApproved: the external reviewer's approval
	// out-recencied every rejection after the stage-2 request was made.
	GateEventFullyApproved
)

var ErrStageOrder = errors.New("stage-2 request requires art director approval first")

// Gate layers the second, externally-addressed approval stage on top of
// the single-stage controller. Its transitions hinge entirely on the
// id-based recency rule of LatestReviewSignal: the external reviewer's
// verdicts arrive only as free-text log entries, and whichever verdict
// has the larger entry id is the current one.
//
// Each rejection id is consumed exactly once. The watermark is scoped to
// the job id the gate was reset under, so a rejection logged for an old
// job can never reset a new one.
type Gate struct {
	jobID               models.JobID
	state               GateState
	ticket              *models.ApprovalTicket
	consumedRejectionID int64
}

func NewGate() *Gate {
	return &Gate{}
}

// Reset binds the gate to a newly launched job, dropping all stage
// progress, the ticket, and the rejection watermark.
func (g *Gate) Reset(id models.JobID) {
	g.jobID = id
	g.state = GateUnapproved
	g.ticket = nil
	g.consumedRejectionID = 0
}

func (g *Gate) JobID() models.JobID { return g.jobID }

func (g *Gate) State() GateState { return g.state }

// Ticket is the stage-2 approval request, present from the customer
// request until a reset.
func (g *Gate) Ticket() *models.ApprovalTicket { return g.ticket }

// DirectorApproved records a successful stage-1 approval.
func (g *Gate) DirectorApproved() {
	g.state = GateDirectorApproved
}

// CustomerRequested records the stage-2 send and the ticket it minted.
func (g *Gate) CustomerRequested(t *models.ApprovalTicket) error {
	if g.state != GateDirectorApproved {
		return ErrStageOrder
	}
	g.state = GateCustomerRequested
	g.ticket = t
	return nil
}

// Observe applies a log snapshot for the gate's job. Snapshots for any
// other job id are ignored. Replaying a snapshot whose rejection id has
// already been consumed does not reset again.
func (g *Gate) Observe(id models.JobID, logs []models.LogEntry) GateEvent {
	if g.jobID == 0 || id != g.jobID {
		return GateEventNone
	}

	sig := LatestReviewSignal(logs)
	switch sig.Kind {
	case SignalRejected:
		if sig.EntryID > g.consumedRejectionID {
			g.consumedRejectionID = sig.EntryID
			g.state = GateUnapproved
			g.ticket = nil
			return GateEventReset
		}
	case SignalApproved:
		if g.state == GateCustomerRequested {
			g.state = GateFullyApproved
			return GateEventFullyApproved
		}
	}
	return GateEventNone
}

// Phase classifies the gate's job using the shared rules, feeding in the
// stage flag and the rejection watermark the gate tracks.
func (g *Gate) Phase(logs []models.LogEntry, pendingWaiting bool) Phase {
	stage2 := g.state == GateCustomerRequested || g.state == GateFullyApproved
	return Classify(logs, pendingWaiting, stage2, g.consumedRejectionID)
}

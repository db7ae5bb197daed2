package workflow

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/shasank123/Fresh-Prints-OS/internal/models"
)

var (
	ErrNoActiveJob   = errors.New("no active job")
	ErrNoPending     = errors.New("nothing is awaiting approval")
	ErrEmptyFeedback = errors.New("rejection feedback must not be empty")
)

// Ops is the remote side of one workflow domain: the subset of backend
// calls the generic controller needs. The api.Client adapters in
// domains.go implement it per domain.
type Ops[A any] interface {
	// Pending fetches the artifact currently awaiting approval.
	// waiting is true only when the backend reports
	// waiting_for_approval; the artifact is meaningful only then.
	Pending(ctx context.Context, id models.JobID) (artifact *A, waiting bool, err error)
	Approve(ctx context.Context, id models.JobID) error
	Reject(ctx context.Context, id models.JobID, feedback string) error
}

// StartFunc launches the remote job under the freshly minted id.
type StartFunc func(ctx context.Context, id models.JobID) error

// Controller is the per-page approval workflow state: the active job id,
// the pending artifact, the approved snapshot, and the last rejection
// feedback. It is generic over the artifact payload so the scout,
// designer and logistics pages share one implementation.
//
// Remote calls always complete before local state changes, so a failed
// call never desyncs the view from the backend, and repeating a failed
// call leaves local state exactly as it was.
type Controller[A any] struct {
	ops   Ops[A]
	clock func() time.Time

	jobID    models.JobID
	pending  *A
	approved *A
	feedback string
}

func NewController[A any](ops Ops[A]) *Controller[A] {
	return &Controller[A]{ops: ops, clock: time.Now}
}

// Launch mints a job id from the wall clock and starts the remote job.
// On success all prior pending/approved state is cleared and the new id
// becomes active; on failure nothing changes.
func (c *Controller[A]) Launch(ctx context.Context, start StartFunc) (models.JobID, error) {
	id := models.NewJobID(c.clock())
	if err := start(ctx, id); err != nil {
		return 0, err
	}
	c.AdoptJob(id)
	return id, nil
}

// AdoptJob activates a job whose start call succeeded elsewhere (the TUI
// launches in a background command and applies the result on its update
// loop). All prior pending/approved state is cleared before any poll for
// the new id can run.
func (c *Controller[A]) AdoptJob(id models.JobID) {
	c.jobID = id
	c.pending = nil
	c.approved = nil
	c.feedback = ""
}

// PollPending fetches the pending artifact for the active job and
// applies it. Used by the CLI follow loop; the TUI fetches in a command
// and applies the tagged result itself.
func (c *Controller[A]) PollPending(ctx context.Context) error {
	if c.jobID == 0 {
		return ErrNoActiveJob
	}
	id := c.jobID
	artifact, waiting, err := c.ops.Pending(ctx, id)
	if err != nil {
		return err
	}
	c.ApplyPending(id, artifact, waiting)
	return nil
}

// ApplyPending records a pending fetch result. The result is tagged with
// the job id the fetch was issued for; a result for a superseded job is
// discarded, which closes the out-of-order-response hazard of in-flight
// requests racing a relaunch. Returns whether the result was applied.
//
// A non-waiting answer clears the pending slot (the agent resumed or
// finished, so the artifact no longer exists remotely) but never touches
// the approved snapshot.
func (c *Controller[A]) ApplyPending(id models.JobID, artifact *A, waiting bool) bool {
	if c.jobID == 0 || id != c.jobID {
		return false
	}
	if waiting {
		c.pending = artifact
	} else {
		c.pending = nil
	}
	return true
}

// Approve posts the approval and, once the backend acknowledged it,
// moves the pending artifact into the approved slot.
func (c *Controller[A]) Approve(ctx context.Context) error {
	if c.jobID == 0 {
		return ErrNoActiveJob
	}
	if c.pending == nil {
		return ErrNoPending
	}
	if err := c.ops.Approve(ctx, c.jobID); err != nil {
		return err
	}
	c.ApplyApproved(c.jobID)
	return nil
}

// ApplyApproved performs the local half of an approval acknowledged by
// the backend for the given job id: pending moves to the approved slot.
// Later polls showing no pending action never clear that slot.
func (c *Controller[A]) ApplyApproved(id models.JobID) bool {
	if c.jobID == 0 || id != c.jobID || c.pending == nil {
		return false
	}
	c.approved = c.pending
	c.pending = nil
	return true
}

// Reject posts non-empty feedback and, once acknowledged, clears the
// pending slot. The feedback is retained for display while the agent
// regenerates. On failure the pending slot and the feedback prompt stay
// untouched so the text is not lost.
func (c *Controller[A]) Reject(ctx context.Context, feedback string) error {
	if strings.TrimSpace(feedback) == "" {
		return ErrEmptyFeedback
	}
	if c.jobID == 0 {
		return ErrNoActiveJob
	}
	if err := c.ops.Reject(ctx, c.jobID, feedback); err != nil {
		return err
	}
	c.ApplyRejected(c.jobID, feedback)
	return nil
}

// ApplyRejected performs the local half of a rejection acknowledged by
// the backend: the pending slot is cleared and the feedback retained.
func (c *Controller[A]) ApplyRejected(id models.JobID, feedback string) bool {
	if c.jobID == 0 || id != c.jobID {
		return false
	}
	c.pending = nil
	c.feedback = feedback
	return true
}

// ResetApproval drops the approved snapshot. The designer page calls
// this when a stage-2 rejection resets the approval cycle.
func (c *Controller[A]) ResetApproval(id models.JobID) bool {
	if c.jobID == 0 || id != c.jobID {
		return false
	}
	c.approved = nil
	return true
}

func (c *Controller[A]) JobID() models.JobID { return c.jobID }

// Active reports whether a job has been launched and not superseded.
func (c *Controller[A]) Active() bool { return c.jobID != 0 }

func (c *Controller[A]) Pending() *A { return c.pending }

func (c *Controller[A]) Approved() *A { return c.approved }

// LastFeedback is the rejection feedback most recently acknowledged by
// the backend for the active job.
func (c *Controller[A]) LastFeedback() string { return c.feedback }

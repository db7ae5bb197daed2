package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shasank123/Fresh-Prints-OS/internal/models"
)

func ticket() *models.ApprovalTicket {
	return &models.ApprovalTicket{
		Token:       "tok-1",
		ApprovalURL: "http://localhost:8000/approve-design/tok-1",
		RejectURL:   "http://localhost:8000/reject-design/tok-1",
	}
}

func TestGateStageOrder(t *testing.T) {
	g := NewGate()
	g.Reset(100)

	assert.ErrorIs(t, g.CustomerRequested(ticket()), ErrStageOrder)
	assert.Equal(t, GateUnapproved, g.State())

	g.DirectorApproved()
	require.NoError(t, g.CustomerRequested(ticket()))
	assert.Equal(t, GateCustomerRequested, g.State())
	assert.NotNil(t, g.Ticket())
}

func TestGateObserve(t *testing.T) {
	t.Run("other job ids are ignored", func(t *testing.T) {
		g := NewGate()
		g.Reset(100)
		g.DirectorApproved()
		require.NoError(t, g.CustomerRequested(ticket()))

		ev := g.Observe(999, []models.LogEntry{entry(5, "Apparel Chair: Rejected: no")})
		assert.Equal(t, GateEventNone, ev)
		assert.Equal(t, GateCustomerRequested, g.State())
	})

	t.Run("unbound gate ignores everything", func(t *testing.T) {
		g := NewGate()
		ev := g.Observe(0, []models.LogEntry{entry(5, "Apparel Chair: Approved! 🎉")})
		assert.Equal(t, GateEventNone, ev)
	})

	t.Run("rejection resets once", func(t *testing.T) {
		g := NewGate()
		g.Reset(100)
		g.DirectorApproved()
		require.NoError(t, g.CustomerRequested(ticket()))

		logs := []models.LogEntry{entry(7, "Apparel Chair: Rejected: wrong palette")}
		assert.Equal(t, GateEventReset, g.Observe(100, logs))
		assert.Equal(t, GateUnapproved, g.State())
		assert.Nil(t, g.Ticket())

		// Replaying the same snapshot must not reset again.
		assert.Equal(t, GateEventNone, g.Observe(100, logs))
	})

	t.Run("approval before the stage-2 request does nothing", func(t *testing.T) {
		g := NewGate()
		g.Reset(100)
		g.DirectorApproved()

		ev := g.Observe(100, []models.LogEntry{entry(8, "Apparel Chair: Approved! 🎉")})
		assert.Equal(t, GateEventNone, ev)
		assert.Equal(t, GateDirectorApproved, g.State())
	})

	t.Run("approval after the stage-2 request fully approves", func(t *testing.T) {
		g := NewGate()
		g.Reset(100)
		g.DirectorApproved()
		require.NoError(t, g.CustomerRequested(ticket()))

		ev := g.Observe(100, []models.LogEntry{entry(8, "Apparel Chair: Approved! 🎉")})
		assert.Equal(t, GateEventFullyApproved, ev)
		assert.Equal(t, GateFullyApproved, g.State())
	})

	t.Run("full reject and reapprove cycle", func(t *testing.T) {
		g := NewGate()
		g.Reset(100)
		g.DirectorApproved()
		require.NoError(t, g.CustomerRequested(ticket()))

		logs := []models.LogEntry{entry(7, "Apparel Chair: Rejected: wrong palette")}
		require.Equal(t, GateEventReset, g.Observe(100, logs))

		// A fresh cycle on the same job: director again, customer again.
		g.DirectorApproved()
		require.NoError(t, g.CustomerRequested(ticket()))

		logs = append(logs, entry(12, "Apparel Chair: Approved! 🎉"))
		assert.Equal(t, GateEventFullyApproved, g.Observe(100, logs))
	})

	t.Run("new job drops the old watermark", func(t *testing.T) {
		g := NewGate()
		g.Reset(100)
		g.DirectorApproved()
		require.NoError(t, g.CustomerRequested(ticket()))
		require.Equal(t, GateEventReset, g.Observe(100, []models.LogEntry{entry(7, "Apparel Chair: Rejected: no")}))

		g.Reset(200)
		g.DirectorApproved()
		require.NoError(t, g.CustomerRequested(ticket()))

		// The new job's feed starts its ids over; the old watermark must
		// not swallow this rejection.
		ev := g.Observe(200, []models.LogEntry{entry(3, "Apparel Chair: Rejected: nope")})
		assert.Equal(t, GateEventReset, ev)
	})
}

func TestGatePhase(t *testing.T) {
	g := NewGate()
	g.Reset(100)

	assert.Equal(t, PhaseAwaitingApproval, g.Phase(nil, true))

	logs := []models.LogEntry{entry(5, "Apparel Chair: Approved! 🎉")}
	assert.Equal(t, PhaseRunning, g.Phase(logs, false), "approval without the stage-2 request")

	g.DirectorApproved()
	require.NoError(t, g.CustomerRequested(ticket()))
	assert.Equal(t, PhaseApproved, g.Phase(logs, false))
}

package tui

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/shasank123/Fresh-Prints-OS/internal/api"
	"github.com/shasank123/Fresh-Prints-OS/internal/config"
	"github.com/shasank123/Fresh-Prints-OS/internal/models"
	"github.com/shasank123/Fresh-Prints-OS/internal/presets"
	"github.com/shasank123/Fresh-Prints-OS/internal/workflow"
)

type scoutMode int

const (
	scoutModeEdit scoutMode = iota
	scoutModeWatch
	scoutModeReject
)

// scoutModel is the campus manager's page: launch a scout job for a
// lead title, watch the reasoning feed, and approve or reject the
// drafted outreach email.
type scoutModel struct {
	cfg     *config.Config
	client  *api.Client
	logger  *slog.Logger
	presets *presets.Presets

	ctrl *workflow.Controller[models.LeadDraft]
	logs []models.LogEntry

	titleInput    textinput.Model
	feedbackInput textinput.Model
	mode          scoutMode
	presetIdx     int
	launching     bool
	errText       string
}

func newScoutModel(cfg *config.Config, client *api.Client, logger *slog.Logger, pre *presets.Presets) *scoutModel {
	title := textinput.New()
	title.Placeholder = "e.g. Stanford Debate Team wins championship"
	title.Width = 60
	if len(pre.Leads) > 0 {
		title.SetValue(pre.Leads[0])
	}
	title.Focus()

	feedback := textinput.New()
	feedback.Placeholder = "What should the agent change?"
	feedback.Width = 60

	return &scoutModel{
		cfg:           cfg,
		client:        client,
		logger:        logger,
		presets:       pre,
		ctrl:          workflow.NewController(workflow.ScoutOps{Client: client}),
		titleInput:    title,
		feedbackInput: feedback,
		mode:          scoutModeEdit,
	}
}

// Messages

type scoutStartedMsg struct {
	id  models.JobID
	err error
}

type scoutLogTickMsg struct{ id models.JobID }

type scoutLogsMsg struct {
	id   models.JobID
	logs []models.LogEntry
	err  error
}

type scoutPendingTickMsg struct{ id models.JobID }

type scoutPendingMsg struct {
	id      models.JobID
	draft   *models.LeadDraft
	waiting bool
	err     error
}

type scoutApprovedMsg struct {
	id  models.JobID
	err error
}

type scoutRejectedMsg struct {
	id       models.JobID
	feedback string
	err      error
}

// Commands

func (m *scoutModel) startCmd(params models.ScoutParams) tea.Cmd {
	id := models.NewJobID(time.Now())
	return func() tea.Msg {
		err := m.client.RunScout(context.Background(), id, params.Title)
		return scoutStartedMsg{id: id, err: err}
	}
}

func (m *scoutModel) logTick(id models.JobID) tea.Cmd {
	return tea.Tick(m.cfg.LogPollInterval, func(time.Time) tea.Msg {
		return scoutLogTickMsg{id: id}
	})
}

func (m *scoutModel) fetchLogs(id models.JobID) tea.Cmd {
	return func() tea.Msg {
		logs, err := m.client.Logs(context.Background(), id)
		return scoutLogsMsg{id: id, logs: logs, err: err}
	}
}

func (m *scoutModel) pendingTick(id models.JobID) tea.Cmd {
	return tea.Tick(m.cfg.PendingInterval, func(time.Time) tea.Msg {
		return scoutPendingTickMsg{id: id}
	})
}

func (m *scoutModel) fetchPending(id models.JobID) tea.Cmd {
	return func() tea.Msg {
		draft, waiting, err := workflow.ScoutOps{Client: m.client}.Pending(context.Background(), id)
		return scoutPendingMsg{id: id, draft: draft, waiting: waiting, err: err}
	}
}

func (m *scoutModel) approveCmd(id models.JobID) tea.Cmd {
	return func() tea.Msg {
		err := m.client.ApproveLead(context.Background(), id)
		return scoutApprovedMsg{id: id, err: err}
	}
}

func (m *scoutModel) rejectCmd(id models.JobID, feedback string) tea.Cmd {
	return func() tea.Msg {
		err := m.client.RejectLead(context.Background(), id, feedback)
		return scoutRejectedMsg{id: id, feedback: feedback, err: err}
	}
}

// update applies async results and poll ticks. Every message carries the
// job id its work was issued for; anything tagged with a superseded id
// is dropped, which is how a relaunch tears the old poll chains down.
func (m *scoutModel) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case scoutStartedMsg:
		m.launching = false
		if msg.err != nil {
			m.errText = fmt.Sprintf("Launch failed: %v. Is the backend running?", msg.err)
			return nil
		}
		m.ctrl.AdoptJob(msg.id)
		m.logs = nil
		m.errText = ""
		m.mode = scoutModeWatch
		m.titleInput.Blur()
		return tea.Batch(m.fetchLogs(msg.id), m.fetchPending(msg.id))

	case scoutLogTickMsg:
		if msg.id != m.ctrl.JobID() {
			return nil
		}
		return m.fetchLogs(msg.id)

	case scoutLogsMsg:
		if msg.id != m.ctrl.JobID() {
			return nil
		}
		if msg.err != nil {
			m.logger.Debug("scout log poll failed", "job", msg.id.Int64(), "error", msg.err)
		} else {
			m.logs = msg.logs
		}
		return m.logTick(msg.id)

	case scoutPendingTickMsg:
		if msg.id != m.ctrl.JobID() {
			return nil
		}
		return m.fetchPending(msg.id)

	case scoutPendingMsg:
		if msg.id != m.ctrl.JobID() {
			return nil
		}
		if msg.err != nil {
			m.logger.Debug("scout pending poll failed", "job", msg.id.Int64(), "error", msg.err)
		} else {
			m.ctrl.ApplyPending(msg.id, msg.draft, msg.waiting)
		}
		return m.pendingTick(msg.id)

	case scoutApprovedMsg:
		if msg.err != nil {
			m.errText = fmt.Sprintf("Error approving draft: %v", msg.err)
			return nil
		}
		m.ctrl.ApplyApproved(msg.id)
		m.errText = ""
		return nil

	case scoutRejectedMsg:
		if msg.err != nil {
			// Keep the prompt open so the feedback is not lost.
			m.errText = fmt.Sprintf("Error sending feedback: %v", msg.err)
			return nil
		}
		m.ctrl.ApplyRejected(msg.id, msg.feedback)
		m.feedbackInput.Reset()
		m.mode = scoutModeWatch
		m.errText = ""
		return nil
	}
	return nil
}

func (m *scoutModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch m.mode {
	case scoutModeEdit:
		switch msg.String() {
		case "enter":
			return m.launch()
		case "tab":
			if len(m.presets.Leads) > 0 {
				m.presetIdx = (m.presetIdx + 1) % len(m.presets.Leads)
				m.titleInput.SetValue(m.presets.Leads[m.presetIdx])
			}
			return nil
		case "esc":
			if m.ctrl.Active() {
				m.mode = scoutModeWatch
				m.titleInput.Blur()
			}
			return nil
		}
		var cmd tea.Cmd
		m.titleInput, cmd = m.titleInput.Update(msg)
		return cmd

	case scoutModeWatch:
		switch msg.String() {
		case "n":
			m.mode = scoutModeEdit
			m.titleInput.Focus()
		case "a":
			if m.ctrl.Pending() != nil {
				return m.approveCmd(m.ctrl.JobID())
			}
		case "x":
			if m.ctrl.Pending() != nil {
				m.mode = scoutModeReject
				m.feedbackInput.Focus()
			}
		case "r":
			if m.ctrl.Active() {
				return m.fetchLogs(m.ctrl.JobID())
			}
		}
		return nil

	case scoutModeReject:
		switch msg.String() {
		case "enter":
			if m.feedbackInput.Value() == "" {
				m.errText = "Feedback must not be empty"
				return nil
			}
			return m.rejectCmd(m.ctrl.JobID(), m.feedbackInput.Value())
		case "esc":
			m.mode = scoutModeWatch
			m.feedbackInput.Blur()
			return nil
		}
		var cmd tea.Cmd
		m.feedbackInput, cmd = m.feedbackInput.Update(msg)
		return cmd
	}
	return nil
}

func (m *scoutModel) launch() tea.Cmd {
	params := models.ScoutParams{Title: m.titleInput.Value()}
	if err := params.Validate(); err != nil {
		m.errText = err.Error()
		return nil
	}
	m.launching = true
	m.errText = ""
	return m.startCmd(params)
}

func (m *scoutModel) phase() workflow.Phase {
	return workflow.Classify(m.logs, m.ctrl.Pending() != nil, false, 0)
}

// Views

func (m *scoutModel) view(spinnerFrame string) string {
	s := titleStyle.Render("Sales Scout Agent") + "\n"
	s += subtitleStyle.Render("Autonomous Lead Generation & Outreach") + "\n\n"

	s += labelStyle.Render("TARGET LEAD / EVENT") + "\n"
	s += m.titleInput.View() + "\n"
	if m.mode == scoutModeEdit {
		s += helpStyle.Render("[enter] run scout  [tab] sample leads") + "\n"
	}
	s += "\n"

	if m.errText != "" {
		s += errorStyle.Render(m.errText) + "\n\n"
	}

	s += m.viewStatus(spinnerFrame)

	if pending := m.ctrl.Pending(); pending != nil {
		s += m.viewDraft("HUMAN APPROVAL REQUIRED", pending)
		s += helpStyle.Render("[a] approve & send  [x] reject") + "\n\n"
	}
	if approved := m.ctrl.Approved(); approved != nil {
		s += statusApproved.Render("✓ APPROVED & SAVED TO CRM") + "\n"
		s += m.viewDraft("APPROVED DRAFT", approved)
	}

	if m.mode == scoutModeReject {
		s += labelStyle.Render("REJECTION FEEDBACK") + "\n"
		s += m.feedbackInput.View() + "\n"
		s += helpStyle.Render("[enter] send feedback  [esc] cancel") + "\n\n"
	}

	if m.ctrl.Active() {
		s += renderTerminal(m.ctrl.JobID(), m.logs, spinnerFrame) + "\n"
	}

	s += helpStyle.Render("[n] new lead  [r] refresh  [ctrl+o] sign out  [ctrl+c] quit")
	return s
}

func (m *scoutModel) viewStatus(spinnerFrame string) string {
	if !m.ctrl.Active() {
		if m.launching {
			return statusRunning.Render(spinnerFrame+" Starting scout agent...") + "\n\n"
		}
		return statusIdle.Render("● Waiting for trigger") + "\n\n"
	}
	return renderPhase(m.phase()) + "\n\n"
}

func (m *scoutModel) viewDraft(header string, draft *models.LeadDraft) string {
	s := labelStyle.Render(header) + "\n"

	badge := renderSentiment(draft.Sentiment)
	if badge != "" {
		s += badge + "  " + labelStyle.Render(fmt.Sprintf("%d/100", draft.LeadScore)) + "\n"
	}
	if draft.Strategy != "" {
		s += dimStyle.Render("Strategy: ") + draft.Strategy + "\n"
	}
	s += panelStyle.Render(draft.PendingDraft) + "\n\n"
	return s
}

func renderSentiment(sentiment string) string {
	switch sentiment {
	case "POSITIVE":
		return sentimentPositive.Render("POSITIVE NEWS")
	case "NEGATIVE":
		return sentimentNegative.Render("NEGATIVE NEWS")
	case "":
		return ""
	}
	return sentimentNeutral.Render(sentiment)
}

func renderPhase(p workflow.Phase) string {
	switch p {
	case workflow.PhaseRunning:
		return statusRunning.Render("● Agent Active")
	case workflow.PhaseAwaitingApproval:
		return statusWaiting.Render("⏸ Awaiting Approval")
	case workflow.PhaseApproved:
		return statusApproved.Render("✓ Approved")
	case workflow.PhaseRejected:
		return statusRejected.Render("↺ Rejected, regenerating")
	case workflow.PhaseFinished:
		return statusApproved.Render("✓ Finished")
	case workflow.PhaseFailed:
		return statusRejected.Render("✗ Failed")
	}
	return statusIdle.Render("Ready")
}

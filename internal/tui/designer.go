package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/shasank123/Fresh-Prints-OS/internal/api"
	"github.com/shasank123/Fresh-Prints-OS/internal/config"
	"github.com/shasank123/Fresh-Prints-OS/internal/models"
	"github.com/shasank123/Fresh-Prints-OS/internal/presets"
	"github.com/shasank123/Fresh-Prints-OS/internal/workflow"
)

type designerMode int

const (
	designerModeEdit designerMode = iota
	designerModeWatch
	designerModeReject
	designerModeStage2
)

// designerModel is the art director's page. A design job pauses twice:
// once for the director's own approval, and once more after the mockup
// is mailed to the customer for theirs. The gate tracks which stage the
// current job is in.
type designerModel struct {
	cfg     *config.Config
	client  *api.Client
	logger  *slog.Logger
	presets *presets.Presets

	ctrl    *workflow.Controller[models.DesignReview]
	gate    *workflow.Gate
	history *workflow.History
	logs    []models.LogEntry

	vibeInput     textinput.Model
	feedbackInput textinput.Model
	emailInput    textinput.Model
	nameInput     textinput.Model
	stage2Field   int

	mode      designerMode
	presetIdx int
	launching bool
	sending   bool
	notice    string
	errText   string
}

func newDesignerModel(cfg *config.Config, client *api.Client, logger *slog.Logger, pre *presets.Presets, history *workflow.History) *designerModel {
	vibe := textinput.New()
	vibe.Placeholder = "e.g. Retro 80s neon with bold typography"
	vibe.Width = 60
	if len(pre.Vibes) > 0 {
		vibe.SetValue(pre.Vibes[0])
	}
	vibe.Focus()

	feedback := textinput.New()
	feedback.Placeholder = "What should change about the design?"
	feedback.Width = 60

	email := textinput.New()
	email.Placeholder = "customer@university.edu"
	email.Width = 40

	name := textinput.New()
	name.Placeholder = "Customer name"
	name.Width = 40

	return &designerModel{
		cfg:           cfg,
		client:        client,
		logger:        logger,
		presets:       pre,
		ctrl:          workflow.NewController(workflow.DesignOps{Client: client}),
		gate:          workflow.NewGate(),
		history:       history,
		vibeInput:     vibe,
		feedbackInput: feedback,
		emailInput:    email,
		nameInput:     name,
		mode:          designerModeEdit,
	}
}

// Messages

type designerStartedMsg struct {
	id  models.JobID
	err error
}

type designerLogTickMsg struct{ id models.JobID }

type designerLogsMsg struct {
	id   models.JobID
	logs []models.LogEntry
	err  error
}

type designerPendingTickMsg struct{ id models.JobID }

type designerPendingMsg struct {
	id      models.JobID
	review  *models.DesignReview
	waiting bool
	err     error
}

type designerApprovedMsg struct {
	id  models.JobID
	err error
}

type designerRejectedMsg struct {
	id       models.JobID
	feedback string
	err      error
}

type designerTicketMsg struct {
	id     models.JobID
	ticket *models.ApprovalTicket
	err    error
}

// Commands

func (m *designerModel) startCmd(params models.DesignParams) tea.Cmd {
	id := models.NewJobID(time.Now())
	return func() tea.Msg {
		err := m.client.RunDesigner(context.Background(), id, params.Vibe)
		return designerStartedMsg{id: id, err: err}
	}
}

func (m *designerModel) logTick(id models.JobID) tea.Cmd {
	return tea.Tick(m.cfg.LogPollInterval, func(time.Time) tea.Msg {
		return designerLogTickMsg{id: id}
	})
}

func (m *designerModel) fetchLogs(id models.JobID) tea.Cmd {
	return func() tea.Msg {
		logs, err := m.client.Logs(context.Background(), id)
		return designerLogsMsg{id: id, logs: logs, err: err}
	}
}

func (m *designerModel) pendingTick(id models.JobID) tea.Cmd {
	return tea.Tick(m.cfg.PendingInterval, func(time.Time) tea.Msg {
		return designerPendingTickMsg{id: id}
	})
}

func (m *designerModel) fetchPending(id models.JobID) tea.Cmd {
	return func() tea.Msg {
		review, waiting, err := workflow.DesignOps{Client: m.client}.Pending(context.Background(), id)
		return designerPendingMsg{id: id, review: review, waiting: waiting, err: err}
	}
}

func (m *designerModel) approveCmd(id models.JobID) tea.Cmd {
	return func() tea.Msg {
		err := m.client.ApproveDesign(context.Background(), id)
		return designerApprovedMsg{id: id, err: err}
	}
}

func (m *designerModel) rejectCmd(id models.JobID, feedback string) tea.Cmd {
	return func() tea.Msg {
		err := m.client.RejectDesign(context.Background(), id, feedback)
		return designerRejectedMsg{id: id, feedback: feedback, err: err}
	}
}

func (m *designerModel) sendToCustomerCmd(id models.JobID, email, name string) tea.Cmd {
	return func() tea.Msg {
		ticket, err := m.client.SendToCustomer(context.Background(), id, email, name)
		return designerTicketMsg{id: id, ticket: ticket, err: err}
	}
}

func (m *designerModel) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case designerStartedMsg:
		m.launching = false
		if msg.err != nil {
			m.errText = fmt.Sprintf("Launch failed: %v. Is the backend running?", msg.err)
			return nil
		}
		m.ctrl.AdoptJob(msg.id)
		m.gate.Reset(msg.id)
		m.logs = nil
		m.notice = ""
		m.errText = ""
		m.mode = designerModeWatch
		m.vibeInput.Blur()
		return tea.Batch(m.fetchLogs(msg.id), m.fetchPending(msg.id))

	case designerLogTickMsg:
		if msg.id != m.ctrl.JobID() {
			return nil
		}
		return m.fetchLogs(msg.id)

	case designerLogsMsg:
		if msg.id != m.ctrl.JobID() {
			return nil
		}
		if msg.err != nil {
			m.logger.Debug("designer log poll failed", "job", msg.id.Int64(), "error", msg.err)
		} else {
			m.logs = msg.logs
			m.applyGateEvent(m.gate.Observe(msg.id, m.logs))
		}
		return m.logTick(msg.id)

	case designerPendingTickMsg:
		if msg.id != m.ctrl.JobID() {
			return nil
		}
		return m.fetchPending(msg.id)

	case designerPendingMsg:
		if msg.id != m.ctrl.JobID() {
			return nil
		}
		if msg.err != nil {
			m.logger.Debug("designer pending poll failed", "job", msg.id.Int64(), "error", msg.err)
		} else {
			m.ctrl.ApplyPending(msg.id, msg.review, msg.waiting)
			if msg.review != nil && msg.review.ImageURL != "" {
				m.history.Observe(msg.review.ImageURL, m.vibeInput.Value())
			}
		}
		return m.pendingTick(msg.id)

	case designerApprovedMsg:
		if msg.err != nil {
			m.errText = fmt.Sprintf("Error approving design: %v", msg.err)
			return nil
		}
		m.ctrl.ApplyApproved(msg.id)
		if msg.id == m.gate.JobID() {
			m.gate.DirectorApproved()
		}
		m.errText = ""
		return nil

	case designerRejectedMsg:
		if msg.err != nil {
			m.errText = fmt.Sprintf("Error sending feedback: %v", msg.err)
			return nil
		}
		m.ctrl.ApplyRejected(msg.id, msg.feedback)
		m.feedbackInput.Reset()
		m.mode = designerModeWatch
		m.errText = ""
		return nil

	case designerTicketMsg:
		m.sending = false
		if msg.err != nil {
			m.errText = fmt.Sprintf("Error sending to customer: %v", msg.err)
			return nil
		}
		if msg.id == m.gate.JobID() {
			if err := m.gate.CustomerRequested(msg.ticket); err != nil {
				m.errText = err.Error()
				return nil
			}
		}
		m.mode = designerModeWatch
		m.errText = ""
		return nil
	}
	return nil
}

func (m *designerModel) applyGateEvent(ev workflow.GateEvent) {
	switch ev {
	case workflow.GateEventReset:
		// Customer rejected the mockup. The job regenerates, so both
		// approval stages start over.
		m.ctrl.ResetApproval(m.ctrl.JobID())
		m.notice = "Customer requested changes. The designer is producing a new mockup."
	case workflow.GateEventFullyApproved:
		m.notice = "Customer approved the design. Order is moving to production."
	}
}

func (m *designerModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch m.mode {
	case designerModeEdit:
		switch msg.String() {
		case "enter":
			return m.launch()
		case "tab":
			if len(m.presets.Vibes) > 0 {
				m.presetIdx = (m.presetIdx + 1) % len(m.presets.Vibes)
				m.vibeInput.SetValue(m.presets.Vibes[m.presetIdx])
			}
			return nil
		case "esc":
			if m.ctrl.Active() {
				m.mode = designerModeWatch
				m.vibeInput.Blur()
			}
			return nil
		}
		var cmd tea.Cmd
		m.vibeInput, cmd = m.vibeInput.Update(msg)
		return cmd

	case designerModeWatch:
		switch msg.String() {
		case "n":
			m.mode = designerModeEdit
			m.vibeInput.Focus()
		case "a":
			if m.ctrl.Pending() != nil && m.gate.State() == workflow.GateUnapproved {
				return m.approveCmd(m.ctrl.JobID())
			}
		case "x":
			if m.ctrl.Pending() != nil && m.gate.State() == workflow.GateUnapproved {
				m.mode = designerModeReject
				m.feedbackInput.Focus()
			}
		case "s":
			if m.gate.State() == workflow.GateDirectorApproved {
				m.mode = designerModeStage2
				m.stage2Field = 0
				m.emailInput.Focus()
				m.nameInput.Blur()
			}
		case "r":
			if m.ctrl.Active() {
				return m.fetchLogs(m.ctrl.JobID())
			}
		}
		return nil

	case designerModeReject:
		switch msg.String() {
		case "enter":
			if m.feedbackInput.Value() == "" {
				m.errText = "Feedback must not be empty"
				return nil
			}
			return m.rejectCmd(m.ctrl.JobID(), m.feedbackInput.Value())
		case "esc":
			m.mode = designerModeWatch
			m.feedbackInput.Blur()
			return nil
		}
		var cmd tea.Cmd
		m.feedbackInput, cmd = m.feedbackInput.Update(msg)
		return cmd

	case designerModeStage2:
		switch msg.String() {
		case "tab", "shift+tab":
			m.stage2Field = 1 - m.stage2Field
			if m.stage2Field == 0 {
				m.emailInput.Focus()
				m.nameInput.Blur()
			} else {
				m.nameInput.Focus()
				m.emailInput.Blur()
			}
			return nil
		case "enter":
			email := strings.TrimSpace(m.emailInput.Value())
			name := strings.TrimSpace(m.nameInput.Value())
			if email == "" || name == "" {
				m.errText = "Customer email and name are both required"
				return nil
			}
			m.sending = true
			return m.sendToCustomerCmd(m.ctrl.JobID(), email, name)
		case "esc":
			m.mode = designerModeWatch
			m.emailInput.Blur()
			m.nameInput.Blur()
			return nil
		}
		var cmd tea.Cmd
		if m.stage2Field == 0 {
			m.emailInput, cmd = m.emailInput.Update(msg)
		} else {
			m.nameInput, cmd = m.nameInput.Update(msg)
		}
		return cmd
	}
	return nil
}

func (m *designerModel) launch() tea.Cmd {
	params := models.DesignParams{Vibe: m.vibeInput.Value()}
	if err := params.Validate(); err != nil {
		m.errText = err.Error()
		return nil
	}
	m.launching = true
	m.errText = ""
	return m.startCmd(params)
}

// Views

func (m *designerModel) view(spinnerFrame string) string {
	s := titleStyle.Render("Apparel Designer Agent") + "\n"
	s += subtitleStyle.Render("AI Mockups & Customer Approval") + "\n\n"

	s += labelStyle.Render("DESIGN VIBE") + "\n"
	s += m.vibeInput.View() + "\n"
	if m.mode == designerModeEdit {
		s += helpStyle.Render("[enter] generate design  [tab] sample vibes") + "\n"
	}
	s += "\n"

	if m.errText != "" {
		s += errorStyle.Render(m.errText) + "\n\n"
	}
	if m.notice != "" {
		s += statusWaiting.Render(m.notice) + "\n\n"
	}

	s += m.viewStatus(spinnerFrame)

	if pending := m.ctrl.Pending(); pending != nil {
		s += m.viewReview("DESIGN REVIEW", pending)
		if m.gate.State() == workflow.GateUnapproved {
			s += helpStyle.Render("[a] approve design  [x] request changes") + "\n\n"
		}
	}

	s += m.viewGate(spinnerFrame)

	if m.mode == designerModeReject {
		s += labelStyle.Render("CHANGE REQUEST") + "\n"
		s += m.feedbackInput.View() + "\n"
		s += helpStyle.Render("[enter] send feedback  [esc] cancel") + "\n\n"
	}
	if m.mode == designerModeStage2 {
		s += labelStyle.Render("SEND TO CUSTOMER") + "\n"
		s += dimStyle.Render("Email: ") + m.emailInput.View() + "\n"
		s += dimStyle.Render("Name:  ") + m.nameInput.View() + "\n"
		s += helpStyle.Render("[tab] switch field  [enter] send  [esc] cancel") + "\n\n"
	}

	if m.history.Len() > 0 {
		s += m.viewHistory()
	}

	if m.ctrl.Active() {
		s += renderTerminal(m.ctrl.JobID(), m.logs, spinnerFrame) + "\n"
	}

	s += helpStyle.Render("[n] new design  [r] refresh  [ctrl+o] sign out  [ctrl+c] quit")
	return s
}

func (m *designerModel) viewStatus(spinnerFrame string) string {
	if !m.ctrl.Active() {
		if m.launching {
			return statusRunning.Render(spinnerFrame+" Starting designer agent...") + "\n\n"
		}
		return statusIdle.Render("● Waiting for a design brief") + "\n\n"
	}
	return renderPhase(m.gate.Phase(m.logs, m.ctrl.Pending() != nil)) + "\n\n"
}

func (m *designerModel) viewReview(header string, review *models.DesignReview) string {
	s := labelStyle.Render(header) + "\n"
	body := ""
	if review.ImageURL != "" {
		body += "Mockup: " + review.ImageURL + "\n"
	}
	if review.PrintTechnique != "" {
		body += "Technique: " + review.PrintTechnique + "\n"
	}
	if len(review.ColorPalette) > 0 {
		body += "Palette: " + strings.Join(review.ColorPalette, ", ") + "\n"
	}
	if review.Profitability != "" {
		body += "Profitability: " + review.Profitability + "\n"
	}
	if review.CostReport != "" {
		body += review.CostReport
	}
	s += panelStyle.Render(strings.TrimRight(body, "\n")) + "\n\n"
	return s
}

func (m *designerModel) viewGate(spinnerFrame string) string {
	switch m.gate.State() {
	case workflow.GateDirectorApproved:
		s := statusApproved.Render("✓ Design approved by Art Director") + "\n"
		s += helpStyle.Render("[s] send to customer for final approval") + "\n\n"
		return s
	case workflow.GateCustomerRequested:
		s := statusWaiting.Render(spinnerFrame + " Awaiting customer approval") + "\n"
		if t := m.gate.Ticket(); t != nil {
			body := "Sent to: " + t.CustomerName + " <" + t.CustomerEmail + ">\n"
			body += "Approve: " + t.ApprovalURL + "\n"
			body += "Reject:  " + t.RejectURL
			s += panelStyle.Render(body) + "\n"
		}
		return s + "\n"
	case workflow.GateFullyApproved:
		return statusApproved.Render("🎉 FULLY APPROVED. Sent to production.") + "\n\n"
	}
	if m.sending {
		return statusRunning.Render(spinnerFrame+" Emailing the customer...") + "\n\n"
	}
	return ""
}

func (m *designerModel) viewHistory() string {
	s := labelStyle.Render(fmt.Sprintf("DESIGN HISTORY (%d)", m.history.Len())) + "\n"
	entries := m.history.Entries()
	// Newest last in storage order; show the most recent handful.
	start := 0
	if len(entries) > 5 {
		start = len(entries) - 5
	}
	for _, e := range entries[start:] {
		line := e.URL
		if e.Style != "" {
			line += dimStyle.Render("  (" + truncate(e.Style, 30) + ")")
		}
		s += "  " + line + "\n"
	}
	return s + "\n"
}

package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
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

type logisticsMode int

const (
	logisticsModeEdit logisticsMode = iota
	logisticsModeWatch
	logisticsModeReject
)

type logisticsTab int

const (
	tabTerminal logisticsTab = iota
	tabRates
	tabRoutes
	tabForecast
)

var logisticsTabNames = []string{"Terminal", "Rates", "Routes", "Forecast"}

// originZip is the fulfillment center the carrier quotes price from.
const originZip = "10001"

// logisticsModel is the ops manager's page: launch a fulfillment plan
// for an order, approve or rework it, and inspect carrier rates, the
// route overview, the carbon footprint, and the demand forecast.
type logisticsModel struct {
	cfg     *config.Config
	client  *api.Client
	logger  *slog.Logger
	presets *presets.Presets

	ctrl *workflow.Controller[models.LogisticsPlan]
	logs []models.LogEntry

	zipInput      textinput.Model
	qtyInput      textinput.Model
	skuInput      textinput.Model
	feedbackInput textinput.Model
	editField     int

	rates    *models.RatesData
	carbon   *models.CarbonEstimate
	route    *models.RouteData
	forecast *models.Forecast

	mode      logisticsMode
	tab       logisticsTab
	presetIdx int
	launching bool
	errText   string
}

func newLogisticsModel(cfg *config.Config, client *api.Client, logger *slog.Logger, pre *presets.Presets) *logisticsModel {
	zip := textinput.New()
	zip.Placeholder = "Customer ZIP"
	zip.Width = 12

	qty := textinput.New()
	qty.Placeholder = "Qty"
	qty.Width = 8

	sku := textinput.New()
	sku.Placeholder = "SKU"
	sku.Width = 24

	feedback := textinput.New()
	feedback.Placeholder = "What should change about the plan?"
	feedback.Width = 60

	m := &logisticsModel{
		cfg:           cfg,
		client:        client,
		logger:        logger,
		presets:       pre,
		ctrl:          workflow.NewController(workflow.LogisticsOps{Client: client}),
		zipInput:      zip,
		qtyInput:      qty,
		skuInput:      sku,
		feedbackInput: feedback,
		mode:          logisticsModeEdit,
	}
	if len(pre.Orders) > 0 {
		m.applyPreset(pre.Orders[0])
	}
	m.zipInput.Focus()
	return m
}

func (m *logisticsModel) applyPreset(o presets.Order) {
	m.zipInput.SetValue(o.Zip)
	m.qtyInput.SetValue(strconv.Itoa(o.Qty))
	m.skuInput.SetValue(o.SKU)
}

// Messages

type logisticsStartedMsg struct {
	id  models.JobID
	err error
}

type logisticsLogTickMsg struct{ id models.JobID }

type logisticsLogsMsg struct {
	id   models.JobID
	logs []models.LogEntry
	err  error
}

type logisticsPendingTickMsg struct{ id models.JobID }

type logisticsPendingMsg struct {
	id      models.JobID
	plan    *models.LogisticsPlan
	waiting bool
	err     error
}

type logisticsApprovedMsg struct {
	id  models.JobID
	err error
}

type logisticsRejectedMsg struct {
	id       models.JobID
	feedback string
	err      error
}

type ratesMsg struct {
	id    models.JobID
	rates *models.RatesData
	err   error
}

type carbonMsg struct {
	id     models.JobID
	carbon *models.CarbonEstimate
	err    error
}

type routeMsg struct {
	id    models.JobID
	route *models.RouteData
	err   error
}

type forecastMsg struct {
	id       models.JobID
	forecast *models.Forecast
	err      error
}

// Commands

func (m *logisticsModel) startCmd(params models.LogisticsParams) tea.Cmd {
	id := models.NewJobID(time.Now())
	return func() tea.Msg {
		err := m.client.RunLogistics(context.Background(), id, params)
		return logisticsStartedMsg{id: id, err: err}
	}
}

func (m *logisticsModel) logTick(id models.JobID) tea.Cmd {
	return tea.Tick(m.cfg.LogPollInterval, func(time.Time) tea.Msg {
		return logisticsLogTickMsg{id: id}
	})
}

func (m *logisticsModel) fetchLogs(id models.JobID) tea.Cmd {
	return func() tea.Msg {
		logs, err := m.client.Logs(context.Background(), id)
		return logisticsLogsMsg{id: id, logs: logs, err: err}
	}
}

func (m *logisticsModel) pendingTick(id models.JobID) tea.Cmd {
	return tea.Tick(m.cfg.PendingInterval, func(time.Time) tea.Msg {
		return logisticsPendingTickMsg{id: id}
	})
}

func (m *logisticsModel) fetchPending(id models.JobID) tea.Cmd {
	return func() tea.Msg {
		plan, waiting, err := workflow.LogisticsOps{Client: m.client}.Pending(context.Background(), id)
		return logisticsPendingMsg{id: id, plan: plan, waiting: waiting, err: err}
	}
}

func (m *logisticsModel) approveCmd(id models.JobID) tea.Cmd {
	return func() tea.Msg {
		err := m.client.ApproveLogistics(context.Background(), id)
		return logisticsApprovedMsg{id: id, err: err}
	}
}

func (m *logisticsModel) rejectCmd(id models.JobID, feedback string) tea.Cmd {
	return func() tea.Msg {
		err := m.client.RejectLogistics(context.Background(), id, feedback)
		return logisticsRejectedMsg{id: id, feedback: feedback, err: err}
	}
}

// fetchDashboards pulls the supporting panels for an order: carrier
// rates, carbon estimate, route overview, and SKU demand forecast. The
// shipment weight assumes half a pound per unit.
func (m *logisticsModel) fetchDashboards(id models.JobID, params models.LogisticsParams) tea.Cmd {
	weight := float64(params.OrderQty) * 0.5
	return tea.Batch(
		func() tea.Msg {
			rates, err := m.client.Rates(context.Background(), originZip, params.CustomerZip, weight)
			return ratesMsg{id: id, rates: rates, err: err}
		},
		func() tea.Msg {
			carbon, err := m.client.Carbon(context.Background(), originZip, params.CustomerZip, weight, "ground")
			return carbonMsg{id: id, carbon: carbon, err: err}
		},
		func() tea.Msg {
			route, err := m.client.RouteData(context.Background(), params.CustomerZip)
			return routeMsg{id: id, route: route, err: err}
		},
		func() tea.Msg {
			forecast, err := m.client.DemandForecast(context.Background(), params.SKU)
			return forecastMsg{id: id, forecast: forecast, err: err}
		},
	)
}

func (m *logisticsModel) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case logisticsStartedMsg:
		m.launching = false
		if msg.err != nil {
			m.errText = fmt.Sprintf("Launch failed: %v. Is the backend running?", msg.err)
			return nil
		}
		m.ctrl.AdoptJob(msg.id)
		m.logs = nil
		m.rates = nil
		m.carbon = nil
		m.route = nil
		m.forecast = nil
		m.errText = ""
		m.mode = logisticsModeWatch
		m.tab = tabTerminal
		m.blurForm()
		params, err := m.params()
		if err != nil {
			return tea.Batch(m.fetchLogs(msg.id), m.fetchPending(msg.id))
		}
		return tea.Batch(m.fetchLogs(msg.id), m.fetchPending(msg.id), m.fetchDashboards(msg.id, params))

	case logisticsLogTickMsg:
		if msg.id != m.ctrl.JobID() {
			return nil
		}
		return m.fetchLogs(msg.id)

	case logisticsLogsMsg:
		if msg.id != m.ctrl.JobID() {
			return nil
		}
		if msg.err != nil {
			m.logger.Debug("logistics log poll failed", "job", msg.id.Int64(), "error", msg.err)
		} else {
			m.logs = msg.logs
		}
		return m.logTick(msg.id)

	case logisticsPendingTickMsg:
		if msg.id != m.ctrl.JobID() {
			return nil
		}
		return m.fetchPending(msg.id)

	case logisticsPendingMsg:
		if msg.id != m.ctrl.JobID() {
			return nil
		}
		if msg.err != nil {
			m.logger.Debug("logistics pending poll failed", "job", msg.id.Int64(), "error", msg.err)
		} else {
			m.ctrl.ApplyPending(msg.id, msg.plan, msg.waiting)
		}
		return m.pendingTick(msg.id)

	case logisticsApprovedMsg:
		if msg.err != nil {
			m.errText = fmt.Sprintf("Error approving plan: %v", msg.err)
			return nil
		}
		m.ctrl.ApplyApproved(msg.id)
		m.errText = ""
		return nil

	case logisticsRejectedMsg:
		if msg.err != nil {
			m.errText = fmt.Sprintf("Error sending feedback: %v", msg.err)
			return nil
		}
		m.ctrl.ApplyRejected(msg.id, msg.feedback)
		m.feedbackInput.Reset()
		m.mode = logisticsModeWatch
		m.errText = ""
		return nil

	case ratesMsg:
		if msg.id != m.ctrl.JobID() {
			return nil
		}
		if msg.err != nil {
			m.logger.Debug("rates fetch failed", "error", msg.err)
		} else {
			m.rates = msg.rates
		}
		return nil

	case carbonMsg:
		if msg.id != m.ctrl.JobID() {
			return nil
		}
		if msg.err != nil {
			m.logger.Debug("carbon fetch failed", "error", msg.err)
		} else {
			m.carbon = msg.carbon
		}
		return nil

	case routeMsg:
		if msg.id != m.ctrl.JobID() {
			return nil
		}
		if msg.err != nil {
			m.logger.Debug("route fetch failed", "error", msg.err)
		} else {
			m.route = msg.route
		}
		return nil

	case forecastMsg:
		if msg.id != m.ctrl.JobID() {
			return nil
		}
		if msg.err != nil {
			m.logger.Debug("forecast fetch failed", "error", msg.err)
		} else {
			m.forecast = msg.forecast
		}
		return nil
	}
	return nil
}

func (m *logisticsModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch m.mode {
	case logisticsModeEdit:
		switch msg.String() {
		case "enter":
			return m.launch()
		case "tab":
			m.focusField((m.editField + 1) % 3)
			return nil
		case "shift+tab":
			m.focusField((m.editField + 2) % 3)
			return nil
		case "ctrl+p":
			if len(m.presets.Orders) > 0 {
				m.presetIdx = (m.presetIdx + 1) % len(m.presets.Orders)
				m.applyPreset(m.presets.Orders[m.presetIdx])
			}
			return nil
		case "esc":
			if m.ctrl.Active() {
				m.mode = logisticsModeWatch
				m.blurForm()
			}
			return nil
		}
		var cmd tea.Cmd
		switch m.editField {
		case 0:
			m.zipInput, cmd = m.zipInput.Update(msg)
		case 1:
			m.qtyInput, cmd = m.qtyInput.Update(msg)
		case 2:
			m.skuInput, cmd = m.skuInput.Update(msg)
		}
		return cmd

	case logisticsModeWatch:
		switch msg.String() {
		case "n":
			m.mode = logisticsModeEdit
			m.focusField(0)
		case "a":
			if m.ctrl.Pending() != nil {
				return m.approveCmd(m.ctrl.JobID())
			}
		case "x":
			if m.ctrl.Pending() != nil {
				m.mode = logisticsModeReject
				m.feedbackInput.Focus()
			}
		case "r":
			if m.ctrl.Active() {
				return m.fetchLogs(m.ctrl.JobID())
			}
		case "tab":
			m.tab = (m.tab + 1) % logisticsTab(len(logisticsTabNames))
		case "1", "2", "3", "4":
			n, _ := strconv.Atoi(msg.String())
			m.tab = logisticsTab(n - 1)
		}
		return nil

	case logisticsModeReject:
		switch msg.String() {
		case "enter":
			if m.feedbackInput.Value() == "" {
				m.errText = "Feedback must not be empty"
				return nil
			}
			return m.rejectCmd(m.ctrl.JobID(), m.feedbackInput.Value())
		case "esc":
			m.mode = logisticsModeWatch
			m.feedbackInput.Blur()
			return nil
		}
		var cmd tea.Cmd
		m.feedbackInput, cmd = m.feedbackInput.Update(msg)
		return cmd
	}
	return nil
}

func (m *logisticsModel) focusField(i int) {
	m.editField = i
	inputs := []*textinput.Model{&m.zipInput, &m.qtyInput, &m.skuInput}
	for j, in := range inputs {
		if j == i {
			in.Focus()
		} else {
			in.Blur()
		}
	}
}

func (m *logisticsModel) blurForm() {
	m.zipInput.Blur()
	m.qtyInput.Blur()
	m.skuInput.Blur()
}

func (m *logisticsModel) params() (models.LogisticsParams, error) {
	qty, err := strconv.Atoi(strings.TrimSpace(m.qtyInput.Value()))
	if err != nil {
		return models.LogisticsParams{}, fmt.Errorf("order quantity must be a number")
	}
	p := models.LogisticsParams{
		CustomerZip: strings.TrimSpace(m.zipInput.Value()),
		OrderQty:    qty,
		SKU:         strings.TrimSpace(m.skuInput.Value()),
	}
	return p, p.Validate()
}

func (m *logisticsModel) launch() tea.Cmd {
	params, err := m.params()
	if err != nil {
		m.errText = err.Error()
		return nil
	}
	m.launching = true
	m.errText = ""
	return m.startCmd(params)
}

// Views

func (m *logisticsModel) view(spinnerFrame string) string {
	s := titleStyle.Render("Logistics Command Center") + "\n"
	s += subtitleStyle.Render("Fulfillment Planning & Carrier Intelligence") + "\n\n"

	s += labelStyle.Render("ORDER") + "\n"
	s += dimStyle.Render("ZIP ") + m.zipInput.View() +
		dimStyle.Render("  Qty ") + m.qtyInput.View() +
		dimStyle.Render("  SKU ") + m.skuInput.View() + "\n"
	if m.mode == logisticsModeEdit {
		s += helpStyle.Render("[enter] plan fulfillment  [tab] next field  [ctrl+p] sample orders") + "\n"
	}
	s += "\n"

	if m.errText != "" {
		s += errorStyle.Render(m.errText) + "\n\n"
	}

	s += m.viewStatus(spinnerFrame)

	if pending := m.ctrl.Pending(); pending != nil {
		s += m.viewPlan("FULFILLMENT PLAN PENDING APPROVAL", pending)
		s += helpStyle.Render("[a] approve plan  [x] request rework") + "\n\n"
	}
	if approved := m.ctrl.Approved(); approved != nil {
		s += statusApproved.Render("✓ PLAN APPROVED & DISPATCHED") + "\n"
		s += m.viewPlan("APPROVED PLAN", approved)
	}

	if m.mode == logisticsModeReject {
		s += labelStyle.Render("REWORK REQUEST") + "\n"
		s += m.feedbackInput.View() + "\n"
		s += helpStyle.Render("[enter] send feedback  [esc] cancel") + "\n\n"
	}

	if m.ctrl.Active() {
		s += m.viewTabs()
		switch m.tab {
		case tabTerminal:
			s += renderTerminal(m.ctrl.JobID(), m.logs, spinnerFrame) + "\n"
		case tabRates:
			s += m.viewRates()
		case tabRoutes:
			s += m.viewRoutes()
		case tabForecast:
			s += m.viewForecast()
		}
	}

	s += helpStyle.Render("[n] new order  [tab]/[1-4] switch panel  [r] refresh  [ctrl+o] sign out  [ctrl+c] quit")
	return s
}

func (m *logisticsModel) viewStatus(spinnerFrame string) string {
	if !m.ctrl.Active() {
		if m.launching {
			return statusRunning.Render(spinnerFrame+" Starting logistics agent...") + "\n\n"
		}
		return statusIdle.Render("● Waiting for an order") + "\n\n"
	}
	return renderPhase(workflow.Classify(m.logs, m.ctrl.Pending() != nil, false, 0)) + "\n\n"
}

func (m *logisticsModel) viewPlan(header string, plan *models.LogisticsPlan) string {
	s := labelStyle.Render(header) + "\n"
	body := plan.PlanDetails
	meta := fmt.Sprintf("Total $%.2f", plan.TotalCost)
	if plan.ETADays > 0 {
		meta += fmt.Sprintf("  ·  ETA %d days", plan.ETADays)
	}
	if plan.CarbonKg > 0 {
		meta += fmt.Sprintf("  ·  %.1f kg CO2", plan.CarbonKg)
	}
	body = strings.TrimRight(body, "\n") + "\n" + meta
	s += panelStyle.Render(body) + "\n\n"
	return s
}

func (m *logisticsModel) viewTabs() string {
	parts := make([]string, len(logisticsTabNames))
	for i, name := range logisticsTabNames {
		label := fmt.Sprintf("%d %s", i+1, name)
		if logisticsTab(i) == m.tab {
			parts[i] = selectedStyle.Render(label)
		} else {
			parts[i] = dimStyle.Render(label)
		}
	}
	return strings.Join(parts, "  ") + "\n\n"
}

func (m *logisticsModel) viewRates() string {
	if m.rates == nil {
		return dimStyle.Render("Fetching carrier rates...") + "\n"
	}
	cheapest, _ := m.rates.Cheapest()
	fastest, _ := m.rates.Fastest()

	s := labelStyle.Render("CARRIER RATES") + dimStyle.Render("  source: "+m.rates.Source) + "\n"
	for _, r := range m.rates.Rates {
		line := fmt.Sprintf("%-8s %-18s $%8.2f  %s days", r.Carrier, r.Service, r.Price, r.Days)
		badges := ""
		if r.Carrier == cheapest.Carrier && r.Service == cheapest.Service {
			badges += "  " + badgeCheapest.Render("CHEAPEST")
		}
		if r.Carrier == fastest.Carrier && r.Service == fastest.Service && fastest != cheapest {
			badges += "  " + badgeFastest.Render("FASTEST")
		}
		s += "  " + line + badges + "\n"
	}
	if savings := m.rates.Savings(); savings > 0 {
		s += "\n" + statusApproved.Render(fmt.Sprintf("Potential savings: $%.2f", savings)) + "\n"
	}
	s += m.viewCarbon()
	return s
}

func (m *logisticsModel) viewCarbon() string {
	if m.carbon == nil {
		return ""
	}
	s := "\n" + labelStyle.Render("CARBON FOOTPRINT") + "\n"
	s += fmt.Sprintf("  %.1f kg CO2 over %.0f km by %s\n", m.carbon.CarbonKg, m.carbon.DistanceKm, m.carbon.ShippingMode)
	s += fmt.Sprintf("  %d trees to offset  ·  eco rating %s\n", m.carbon.TreesToOffset, m.carbon.EcoRating)
	return s
}

func (m *logisticsModel) viewRoutes() string {
	if m.route == nil {
		return dimStyle.Render("Fetching route data...") + "\n"
	}
	s := labelStyle.Render("ROUTE OVERVIEW") + "\n"
	s += fmt.Sprintf("  Customer: %s (%s)\n", m.route.Customer.City, m.route.Customer.Zip)
	for _, w := range m.route.Warehouses {
		mark := dimStyle.Render("○")
		if w.Active {
			mark = statusApproved.Render("●")
		}
		s += fmt.Sprintf("  %s %s, %s\n", mark, w.Name, w.City)
	}
	for _, leg := range m.route.Routes {
		s += fmt.Sprintf("  %s → %s: %.0f mi, est. $%.2f\n",
			leg.From, m.route.Customer.City, leg.DistanceMiles, leg.EstimatedCost)
	}
	return s
}

func (m *logisticsModel) viewForecast() string {
	if m.forecast == nil {
		return dimStyle.Render("Fetching demand forecast...") + "\n"
	}
	f := m.forecast
	s := labelStyle.Render("DEMAND FORECAST") + "\n"
	s += fmt.Sprintf("  %d orders predicted  ·  %.1f/day avg  ·  peak %s (%d)\n",
		f.TotalPredictedOrders, f.AvgDaily, f.PeakDay, f.PeakOrders)
	if f.Recommendation != "" {
		s += "  " + statusWaiting.Render(f.Recommendation) + "\n"
	}
	s += renderForecastBars(f.DailyForecast)
	return s
}

// renderForecastBars draws a horizontal bar per forecast day, scaled to
// the busiest day.
func renderForecastBars(points []models.ForecastPoint) string {
	if len(points) == 0 {
		return ""
	}
	peak := 0
	for _, p := range points {
		if p.Orders > peak {
			peak = p.Orders
		}
	}
	if peak == 0 {
		peak = 1
	}
	const barWidth = 30
	var b strings.Builder
	for _, p := range points {
		n := p.Orders * barWidth / peak
		b.WriteString(fmt.Sprintf("  %-10s %s %d\n", p.Date, statusRunning.Render(strings.Repeat("█", n)), p.Orders))
	}
	return b.String()
}

// Package tui is the terminal front end: one page per agent workflow
// (scout, designer, logistics), gated by the staff member's role, plus a
// role picker. Pages poll the backend with tick messages tagged by job
// id; a tick or fetch result carrying a superseded job id is dropped, so
// no stale response can overwrite fresher state.
package tui

import (
	"fmt"
	"log/slog"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/shasank123/Fresh-Prints-OS/internal/api"
	"github.com/shasank123/Fresh-Prints-OS/internal/config"
	"github.com/shasank123/Fresh-Prints-OS/internal/models"
	"github.com/shasank123/Fresh-Prints-OS/internal/presets"
	"github.com/shasank123/Fresh-Prints-OS/internal/storage"
	"github.com/shasank123/Fresh-Prints-OS/internal/workflow"
)

type page int

const (
	pageRolePicker page = iota
	pageScout
	pageDesigner
	pageLogistics
)

type App struct {
	cfg     *config.Config
	client  *api.Client
	store   *storage.Storage
	logger  *slog.Logger
	presets *presets.Presets

	page    page
	role    models.Role
	roleIdx int

	scout     *scoutModel
	designer  *designerModel
	logistics *logisticsModel

	spin   spinner.Model
	width  int
	height int
}

func NewApp(cfg *config.Config, client *api.Client, store *storage.Storage, logger *slog.Logger, pre *presets.Presets, role models.Role) (*App, error) {
	history, err := workflow.NewHistory(store)
	if err != nil {
		return nil, fmt.Errorf("failed to load design history: %w", err)
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))

	a := &App{
		cfg:       cfg,
		client:    client,
		store:     store,
		logger:    logger,
		presets:   pre,
		scout:     newScoutModel(cfg, client, logger, pre),
		designer:  newDesignerModel(cfg, client, logger, pre, history),
		logistics: newLogisticsModel(cfg, client, logger, pre),
		spin:      sp,
		page:      pageRolePicker,
	}

	if role.Valid() {
		a.role = role
		a.page = rolePage(role)
	}
	return a, nil
}

func rolePage(role models.Role) page {
	cfg, ok := role.Config()
	if !ok {
		return pageRolePicker
	}
	switch cfg.DefaultPage {
	case models.PageScout:
		return pageScout
	case models.PageDesigner:
		return pageDesigner
	case models.PageLogistics:
		return pageLogistics
	}
	return pageRolePicker
}

func (a *App) Init() tea.Cmd {
	return a.spin.Tick
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.spin, cmd = a.spin.Update(msg)
		return a, cmd

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return a, tea.Quit
		case "ctrl+o":
			// Log out: clear the saved role, back to the picker.
			if a.page != pageRolePicker {
				if err := a.store.ClearRole(); err != nil {
					a.logger.Warn("failed to clear role", "error", err)
				}
				a.role = ""
				a.page = pageRolePicker
				return a, nil
			}
		}
		return a.handleKey(msg)
	}

	// Async results and poll ticks carry their own page's message types;
	// routing them to their page (active or not) keeps background jobs
	// ticking while the user is elsewhere.
	var cmds []tea.Cmd
	cmds = append(cmds, a.scout.update(msg))
	cmds = append(cmds, a.designer.update(msg))
	cmds = append(cmds, a.logistics.update(msg))
	return a, tea.Batch(cmds...)
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch a.page {
	case pageRolePicker:
		return a.handleRolePickerKey(msg)
	case pageScout:
		return a, a.scout.handleKey(msg)
	case pageDesigner:
		return a, a.designer.handleKey(msg)
	case pageLogistics:
		return a, a.logistics.handleKey(msg)
	}
	return a, nil
}

func (a *App) handleRolePickerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	roles := models.Roles()
	switch msg.String() {
	case "q":
		return a, tea.Quit
	case "up", "k":
		if a.roleIdx > 0 {
			a.roleIdx--
		}
	case "down", "j":
		if a.roleIdx < len(roles)-1 {
			a.roleIdx++
		}
	case "enter":
		role := roles[a.roleIdx]
		if err := a.store.SaveRole(role); err != nil {
			a.logger.Warn("failed to save role", "error", err)
		}
		a.role = role
		a.page = rolePage(role)
	}
	return a, nil
}

func (a *App) View() string {
	switch a.page {
	case pageRolePicker:
		return a.viewRolePicker()
	case pageScout:
		return a.scout.view(a.spin.View())
	case pageDesigner:
		return a.designer.view(a.spin.View())
	case pageLogistics:
		return a.logistics.view(a.spin.View())
	}
	return ""
}

func (a *App) viewRolePicker() string {
	s := titleStyle.Render("Fresh Prints OS") + "\n"
	s += subtitleStyle.Render("Select your role") + "\n\n"

	for i, role := range models.Roles() {
		cfg, _ := role.Config()
		line := fmt.Sprintf("%s  %s", cfg.Icon, cfg.Name)
		if i == a.roleIdx {
			line = selectedStyle.Render("▶ " + line)
		} else {
			line = "  " + line
		}
		s += line + "\n"
	}

	s += "\n" + helpStyle.Render("[↑/↓] select  [enter] sign in  [q] quit")
	return s
}

// Package tui is the terminal view layer: it renders entity lists and forms
// and dispatches user intents to the use cases, which in turn talk to the
// remote gateway. All entity state lives in the page models and is only
// mutated from the update loop.
package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/organizae/app/domain"
)

type route int

const (
	routeLogin route = iota
	routeDashboard
	routeMateria
	routeAgenda
	routeAjustes
)

// Model is the root application model. It gates every route behind the
// session: signed-out users land on login, signed-in users on an unknown
// route land on the dashboard.
type Model struct {
	deps Deps

	route          route
	width          int
	height         int
	session        *domain.Session
	sessionLoading bool

	login     loginModel
	dashboard dashboardModel
	materia   materiaModel
	agenda    agendaModel
	ajustes   ajustesModel
}

// New builds the root model. The session manager's initial load is still in
// flight when the program starts; a splash shows until it lands.
func New(deps Deps) Model {
	return Model{
		deps:           deps,
		route:          routeLogin,
		sessionLoading: true,
		login:          newLoginModel(),
		dashboard:      newDashboardModel(),
		materia:        newMateriaModel(),
		agenda:         newAgendaModel(deps.location()),
		ajustes:        newAjustesModel(),
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if cmd, handled := m.handleNav(msg); handled {
			return m, cmd
		}

	case sessionChangedMsg:
		return m.handleSessionChange(msg.session)

	case logoutDoneMsg:
		// The session listener delivers the nil session; nothing else to do.
		return m, nil
	}

	return m.routeUpdate(msg)
}

// handleNav implements the route surface. Navigation keys are ignored while
// a page is capturing text input.
func (m *Model) handleNav(msg tea.KeyMsg) (tea.Cmd, bool) {
	if m.session == nil || m.typing() {
		return nil, false
	}
	switch msg.String() {
	case "1":
		return m.goTo(routeDashboard)
	case "2":
		return m.goTo(routeAgenda)
	case "3":
		return m.goTo(routeAjustes)
	}
	return nil, false
}

func (m *Model) goTo(r route) (tea.Cmd, bool) {
	if m.route == r {
		return nil, true
	}
	m.route = r
	switch r {
	case routeDashboard:
		m.dashboard.startLoading()
		return loadOverview(m.deps), true
	case routeAgenda:
		m.agenda.startLoading()
		return loadAgenda(m.deps), true
	case routeAjustes:
		m.ajustes.reset(m.deps.Auth.CurrentUser())
		return nil, true
	}
	return nil, true
}

func (m Model) typing() bool {
	switch m.route {
	case routeLogin:
		return m.login.typing()
	case routeDashboard:
		return m.dashboard.typing()
	case routeMateria:
		return m.materia.typing()
	case routeAjustes:
		return m.ajustes.typing()
	}
	return false
}

func (m Model) handleSessionChange(session *domain.Session) (tea.Model, tea.Cmd) {
	m.session = session
	m.sessionLoading = false

	if session == nil {
		m.route = routeLogin
		m.login = newLoginModel()
		return m, nil
	}

	// Authenticated users never stay on the login route.
	if m.route == routeLogin {
		m.route = routeDashboard
		m.dashboard = newDashboardModel()
		m.dashboard.startLoading()
		return m, loadOverview(m.deps)
	}
	return m, nil
}

func (m Model) routeUpdate(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.route {
	case routeLogin:
		m.login, cmd = m.login.update(msg, m.deps)

	case routeDashboard:
		var nav *navigation
		m.dashboard, nav, cmd = m.dashboard.update(msg, m.deps)
		if nav != nil && nav.route == routeMateria {
			m.route = routeMateria
			m.materia = newMateriaModel()
			m.materia.materiaID = nav.materiaID
			m.materia.loading = true
			return m, loadMateriaDetail(m.deps, nav.materiaID)
		}

	case routeMateria:
		var back bool
		m.materia, back, cmd = m.materia.update(msg, m.deps)
		if back {
			m.route = routeDashboard
			m.dashboard.startLoading()
			return m, loadOverview(m.deps)
		}

	case routeAgenda:
		m.agenda, cmd = m.agenda.update(msg, m.deps)

	case routeAjustes:
		m.ajustes, cmd = m.ajustes.update(msg, m.deps)
	}
	return m, cmd
}

// navigation is emitted by a page to push another route.
type navigation struct {
	route     route
	materiaID int64
}

func (m Model) View() string {
	if m.sessionLoading {
		return titleStyle.Render("Organizaê") + "\n\n" + mutedStyle.Render("Carregando...")
	}

	var page string
	switch m.route {
	case routeLogin:
		page = m.login.view()
	case routeDashboard:
		page = m.dashboard.view()
	case routeMateria:
		page = m.materia.view(m.deps.location())
	case routeAgenda:
		page = m.agenda.view()
	case routeAjustes:
		page = m.ajustes.view()
	}

	if m.route == routeLogin {
		return page
	}

	var b strings.Builder
	b.WriteString(page)
	b.WriteString("\n\n")
	b.WriteString(m.navBar())
	return b.String()
}

func (m Model) navBar() string {
	entry := func(label string, r route) string {
		if m.route == r {
			return navActiveStyle.Render(label)
		}
		return navStyle.Render(label)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		entry("[1] Dashboard", routeDashboard),
		"   ",
		entry("[2] Agenda", routeAgenda),
		"   ",
		entry("[3] Ajustes", routeAjustes),
	)
}

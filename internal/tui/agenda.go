package tui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/organizae/app/domain"
	"github.com/organizae/app/usecase/agenda"
)

// agendaModel renders the day-grouped view of every dated tarefa across all
// materias, with a calendar flagging the days that have tasks.
type agendaModel struct {
	loc      *time.Location
	tarefas  []domain.Tarefa
	calendar calendarModel
	loading  bool
	errMsg   string
}

func newAgendaModel(loc *time.Location) agendaModel {
	if loc == nil {
		loc = time.Local
	}
	return agendaModel{
		loc:      loc,
		calendar: newCalendar(loc),
	}
}

func (m *agendaModel) startLoading() {
	m.loading = true
	m.errMsg = ""
}

func (m agendaModel) update(msg tea.Msg, deps Deps) (agendaModel, tea.Cmd) {
	switch msg := msg.(type) {
	case agendaLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.errMsg = "Falha ao carregar a agenda."
			return m, nil
		}
		m.tarefas = msg.tarefas
		m.calendar.setMarked(agenda.MarkedDays(m.tarefas, m.loc))
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "left", "h":
			m.calendar.moveCursor(-1)
		case "right", "l":
			m.calendar.moveCursor(1)
		case "up", "k":
			m.calendar.moveCursor(-7)
		case "down", "j":
			m.calendar.moveCursor(7)
		case "[", "pgup":
			m.calendar.moveMonth(-1)
		case "]", "pgdown":
			m.calendar.moveMonth(1)
		case "enter":
			m.calendar.selectCursor()
		case "c", "esc":
			m.calendar.clearSelection()
		case "r":
			m.startLoading()
			return m, loadAgenda(deps)
		}
	}
	return m, nil
}

func (m agendaModel) view() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Agenda"))
	b.WriteString("\n")
	b.WriteString(subtitleStyle.Render("Visualize suas tarefas com prazo."))
	b.WriteString("\n\n")

	if m.loading {
		b.WriteString(mutedStyle.Render("Carregando..."))
		return b.String()
	}
	if m.errMsg != "" {
		b.WriteString(errorStyle.Render(m.errMsg))
		return b.String()
	}

	b.WriteString(m.calendar.view())
	b.WriteString("\n")

	groups := agenda.GroupByDay(m.tarefas, m.loc)
	view := agenda.Select(groups, m.calendar.selected, m.loc)

	heading := headingStyle.Render(view.Heading)
	if view.ShowClear {
		heading += "  " + mutedStyle.Render("(c: limpar seleção)")
	}
	b.WriteString(heading)
	b.WriteString("\n")

	if len(view.Groups) == 0 {
		if m.calendar.selected != nil {
			b.WriteString(mutedStyle.Render("Nenhuma tarefa agendada para este dia."))
		} else {
			b.WriteString(mutedStyle.Render("Nenhuma tarefa com prazo encontrada."))
		}
		b.WriteString("\n")
	}

	for _, group := range view.Groups {
		if m.calendar.selected == nil {
			b.WriteString(mutedStyle.Render(group.Label))
			b.WriteString("\n")
		}
		for _, t := range group.Tarefas {
			b.WriteString(m.tarefaLine(t))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("setas: navegar • [/]: mês • enter: selecionar dia • c: limpar • r: recarregar"))
	return b.String()
}

func (m agendaModel) tarefaLine(t domain.Tarefa) string {
	descricao := t.Descricao
	if descricao == "" {
		descricao = "Sem descrição"
	}
	line := "  " + agendaTimeBadge(t, m.loc) + "  " + t.Titulo
	return line + "  " + mutedStyle.Render(descricao)
}

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/organizae/app/domain"
	"github.com/organizae/app/repository"
	"github.com/organizae/app/usecase/materia"
	"github.com/organizae/app/usecase/tarefa"
)

const (
	materiaFieldTitulo = iota
	materiaFieldDescricao
	materiaFieldTipo
	materiaFieldPrazo
)

type dashboardModel struct {
	materias []domain.Materia
	tarefas  []domain.Tarefa
	cursor   int
	loading  bool
	errMsg   string

	editing       bool
	editTarget    *domain.Materia
	inputs        []textinput.Model
	focus         int
	formErr       string
	saving        bool
	confirmDelete *domain.Materia
}

func newDashboardModel() dashboardModel {
	titulo := textinput.New()
	titulo.Placeholder = "título"
	titulo.CharLimit = 120
	titulo.Width = 40

	descricao := textinput.New()
	descricao.Placeholder = "descrição (opcional)"
	descricao.CharLimit = 500
	descricao.Width = 40

	tipo := textinput.New()
	tipo.Placeholder = "tipo (opcional)"
	tipo.CharLimit = 60
	tipo.Width = 40

	prazo := textinput.New()
	prazo.Placeholder = "DD/MM/AAAA HH:MM (opcional)"
	prazo.CharLimit = 16
	prazo.Width = 40

	return dashboardModel{
		inputs: []textinput.Model{titulo, descricao, tipo, prazo},
	}
}

func (m *dashboardModel) startLoading() {
	m.loading = true
	m.errMsg = ""
}

func (m dashboardModel) typing() bool { return m.editing }

func (m dashboardModel) update(msg tea.Msg, deps Deps) (dashboardModel, *navigation, tea.Cmd) {
	switch msg := msg.(type) {
	case overviewLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.errMsg = domain.UserMessage(msg.err, "Falha ao carregar dados. Tente novamente.")
			return m, nil, nil
		}
		m.materias = msg.materias
		m.tarefas = msg.tarefas
		if m.cursor >= len(m.materias) {
			m.cursor = 0
		}
		return m, nil, nil

	case materiaSavedMsg:
		m.saving = false
		if msg.err != nil {
			if m.editing {
				m.formErr = domain.UserMessage(msg.err, "Falha ao salvar matéria.")
			} else {
				m.errMsg = domain.UserMessage(msg.err, "Falha ao salvar matéria.")
			}
			return m, nil, nil
		}
		m.closeForm()
		m.startLoading()
		return m, nil, loadOverview(deps)

	case materiaDeletedMsg:
		if msg.err != nil {
			m.errMsg = domain.UserMessage(msg.err, "Falha ao deletar matéria.")
			return m, nil, nil
		}
		m.startLoading()
		return m, nil, loadOverview(deps)

	case tea.KeyMsg:
		return m.handleKey(msg, deps)
	}

	if m.editing {
		var cmd tea.Cmd
		m, cmd = m.updateInputs(msg)
		return m, nil, cmd
	}
	return m, nil, nil
}

func (m dashboardModel) handleKey(msg tea.KeyMsg, deps Deps) (dashboardModel, *navigation, tea.Cmd) {
	if m.editing {
		return m.handleFormKey(msg, deps)
	}

	if m.confirmDelete != nil {
		switch msg.String() {
		case "y", "s":
			target := m.confirmDelete
			m.confirmDelete = nil
			return m, nil, deleteMateria(deps, target.ID)
		case "n", "esc":
			m.confirmDelete = nil
		}
		return m, nil, nil
	}

	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.materias)-1 {
			m.cursor++
		}
	case "enter":
		if current := m.current(); current != nil {
			return m, &navigation{route: routeMateria, materiaID: current.ID}, nil
		}
	case "n":
		m.openForm(nil, deps)
	case "e":
		if current := m.current(); current != nil {
			m.openForm(current, deps)
		}
	case "f":
		if current := m.current(); current != nil {
			next := domain.MateriaFinalizada
			if !current.IsAtiva() {
				next = domain.MateriaEmAndamento
			}
			return m, nil, setMateriaStatus(deps, current, next)
		}
	case "d":
		if current := m.current(); current != nil {
			m.confirmDelete = current
		}
	case "r":
		m.startLoading()
		return m, nil, loadOverview(deps)
	}
	return m, nil, nil
}

func (m dashboardModel) handleFormKey(msg tea.KeyMsg, deps Deps) (dashboardModel, *navigation, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closeForm()
		return m, nil, nil

	case "tab", "down":
		m.focus = (m.focus + 1) % len(m.inputs)
		m.refocus()
		return m, nil, nil

	case "shift+tab", "up":
		m.focus = (m.focus - 1 + len(m.inputs)) % len(m.inputs)
		m.refocus()
		return m, nil, nil

	case "enter":
		if m.saving {
			return m, nil, nil
		}
		titulo := strings.TrimSpace(m.inputs[materiaFieldTitulo].Value())
		if titulo == "" {
			m.formErr = "O título é obrigatório."
			return m, nil, nil
		}
		prazo, err := parsePrazoInput(m.inputs[materiaFieldPrazo].Value(), deps.location())
		if err != nil {
			m.formErr = domain.UserMessage(err, "Prazo inválido.")
			return m, nil, nil
		}
		input := repository.MateriaInput{
			Titulo:    titulo,
			Descricao: optionalField(m.inputs[materiaFieldDescricao].Value()),
			Tipo:      optionalField(m.inputs[materiaFieldTipo].Value()),
			Prazo:     prazo,
		}
		m.saving = true
		m.formErr = ""
		return m, nil, saveMateria(deps, m.editTarget, input)
	}

	var cmd tea.Cmd
	m, cmd = m.updateInputs(msg)
	return m, nil, cmd
}

func (m *dashboardModel) openForm(target *domain.Materia, deps Deps) {
	m.editing = true
	m.editTarget = target
	m.focus = 0
	m.formErr = ""
	if target != nil {
		m.inputs[materiaFieldTitulo].SetValue(target.Titulo)
		m.inputs[materiaFieldDescricao].SetValue(target.Descricao)
		m.inputs[materiaFieldTipo].SetValue(target.Tipo)
		m.inputs[materiaFieldPrazo].SetValue(formatPrazoInput(target.Prazo, deps.location()))
	} else {
		for i := range m.inputs {
			m.inputs[i].SetValue("")
		}
	}
	m.refocus()
}

func (m *dashboardModel) closeForm() {
	m.editing = false
	m.editTarget = nil
	m.formErr = ""
	for i := range m.inputs {
		m.inputs[i].SetValue("")
		m.inputs[i].Blur()
	}
}

func (m *dashboardModel) refocus() {
	for i := range m.inputs {
		m.inputs[i].Blur()
	}
	m.inputs[m.focus].Focus()
}

func (m dashboardModel) updateInputs(msg tea.Msg) (dashboardModel, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd
	for i := range m.inputs {
		m.inputs[i], cmd = m.inputs[i].Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m dashboardModel) current() *domain.Materia {
	if m.cursor < 0 || m.cursor >= len(m.materias) {
		return nil
	}
	return &m.materias[m.cursor]
}

func (m dashboardModel) view() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Dashboard"))
	b.WriteString("\n")
	b.WriteString(subtitleStyle.Render("Suas matérias de estudo."))
	b.WriteString("\n\n")

	if m.editing {
		return b.String() + m.formView()
	}

	if m.loading {
		b.WriteString(mutedStyle.Render("Carregando..."))
		return b.String()
	}
	if m.errMsg != "" {
		b.WriteString(errorStyle.Render(m.errMsg))
		b.WriteString("\n\n")
	}

	ativas, finalizadas := materia.Split(m.materias)
	index := 0

	b.WriteString(headingStyle.Render("Em andamento"))
	b.WriteString("\n")
	if len(ativas) == 0 {
		b.WriteString(mutedStyle.Render("Nenhuma matéria em andamento.") + "\n")
	}
	for _, mat := range ativas {
		b.WriteString(m.materiaCard(mat, index == m.cursor))
		b.WriteString("\n")
		index++
	}

	b.WriteString("\n")
	b.WriteString(headingStyle.Render("Finalizadas"))
	b.WriteString("\n")
	if len(finalizadas) == 0 {
		b.WriteString(mutedStyle.Render("Nenhuma matéria finalizada.") + "\n")
	}
	for _, mat := range finalizadas {
		b.WriteString(m.materiaCard(mat, index == m.cursor))
		b.WriteString("\n")
		index++
	}

	if m.confirmDelete != nil {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(fmt.Sprintf(
			"Deletar a matéria %q e todas as suas tarefas? Esta ação não pode ser desfeita. (s/n)",
			m.confirmDelete.Titulo)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("enter: abrir • n: nova • e: editar • f: finalizar/reabrir • d: deletar • r: recarregar"))
	return b.String()
}

func (m dashboardModel) materiaCard(mat domain.Materia, selected bool) string {
	abertas := tarefa.CountAbertas(m.tarefas, mat.ID)
	line := fmt.Sprintf("%s  %s", mat.Titulo, badgeStyle.Render(fmt.Sprintf("%d pendentes", abertas)))
	if mat.Tipo != "" {
		line += "  " + mutedStyle.Render(mat.Tipo)
	}
	detail := mutedStyle.Render(fmt.Sprintf("Prazo: %s • %s", formatPrazoDisplay(mat.Prazo, nil), mat.Status.Label()))
	card := line + "\n" + detail
	if selected {
		return selectedCardStyle.Render(card)
	}
	return cardStyle.Render(card)
}

func (m dashboardModel) formView() string {
	var b strings.Builder
	if m.editTarget != nil {
		b.WriteString(headingStyle.Render("Editar Matéria"))
	} else {
		b.WriteString(headingStyle.Render("Nova Matéria"))
	}
	b.WriteString("\n\n")
	b.WriteString("Título*:   " + m.inputs[materiaFieldTitulo].View() + "\n")
	b.WriteString("Descrição: " + m.inputs[materiaFieldDescricao].View() + "\n")
	b.WriteString("Tipo:      " + m.inputs[materiaFieldTipo].View() + "\n")
	b.WriteString("Prazo:     " + m.inputs[materiaFieldPrazo].View() + "\n\n")
	if m.formErr != "" {
		b.WriteString(errorStyle.Render(m.formErr) + "\n")
	}
	if m.saving {
		b.WriteString(mutedStyle.Render("Salvando...") + "\n")
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("enter: salvar • esc: cancelar"))
	return b.String()
}

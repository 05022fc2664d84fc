package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/organizae/app/domain"
	"github.com/organizae/app/repository"
	"github.com/organizae/app/usecase/agenda"
)

const (
	tarefaFieldTitulo = iota
	tarefaFieldDescricao
	tarefaFieldPrazo
	tarefaFieldStatus
)

var tarefaStatusCycle = []domain.TarefaStatus{
	domain.TarefaPendente,
	domain.TarefaEmAndamento,
	domain.TarefaConcluida,
}

// materiaModel is the detail page of a single materia and its tarefas.
type materiaModel struct {
	materiaID int64
	materia   *domain.Materia
	tarefas   []domain.Tarefa
	cursor    int
	loading   bool
	errMsg    string

	editing    bool
	editTarget *domain.Tarefa
	inputs     []textinput.Model
	focus      int
	formStatus domain.TarefaStatus
	formErr    string
	saving     bool

	confirmDelete *domain.Tarefa
}

func newMateriaModel() materiaModel {
	titulo := textinput.New()
	titulo.Placeholder = "título"
	titulo.CharLimit = 120
	titulo.Width = 40

	descricao := textinput.New()
	descricao.Placeholder = "descrição (opcional)"
	descricao.CharLimit = 500
	descricao.Width = 40

	prazo := textinput.New()
	prazo.Placeholder = "DD/MM/AAAA HH:MM (opcional)"
	prazo.CharLimit = 16
	prazo.Width = 40

	return materiaModel{
		inputs:     []textinput.Model{titulo, descricao, prazo},
		formStatus: domain.TarefaPendente,
	}
}

func (m materiaModel) typing() bool { return m.editing }

func (m materiaModel) update(msg tea.Msg, deps Deps) (materiaModel, bool, tea.Cmd) {
	switch msg := msg.(type) {
	case materiaDetailLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.errMsg = domain.UserMessage(msg.err, "Falha ao carregar dados da matéria ou tarefas.")
			return m, false, nil
		}
		m.materia = msg.materia
		m.tarefas = msg.tarefas
		if m.cursor >= len(m.tarefas) {
			m.cursor = 0
		}
		return m, false, nil

	case tarefaSavedMsg:
		m.saving = false
		if msg.err != nil {
			m.formErr = domain.UserMessage(msg.err, "Erro ao salvar tarefa.")
			return m, false, nil
		}
		m.closeForm()
		m.loading = true
		return m, false, loadMateriaDetail(deps, m.materiaID)

	case tarefasReconciledMsg:
		if msg.err != nil {
			m.errMsg = domain.UserMessage(msg.err, "Falha ao atualizar tarefa.")
			return m, false, nil
		}
		m.errMsg = ""
		m.tarefas = msg.tarefas
		if m.cursor >= len(m.tarefas) {
			m.cursor = 0
		}
		return m, false, nil

	case tea.KeyMsg:
		return m.handleKey(msg, deps)
	}

	if m.editing {
		var cmd tea.Cmd
		m, cmd = m.updateInputs(msg)
		return m, false, cmd
	}
	return m, false, nil
}

func (m materiaModel) handleKey(msg tea.KeyMsg, deps Deps) (materiaModel, bool, tea.Cmd) {
	if m.editing {
		return m.handleFormKey(msg, deps)
	}

	if m.confirmDelete != nil {
		switch msg.String() {
		case "y", "s":
			target := m.confirmDelete
			m.confirmDelete = nil
			return m, false, deleteTarefa(deps, m.tarefas, target.ID)
		case "n", "esc":
			m.confirmDelete = nil
		}
		return m, false, nil
	}

	switch msg.String() {
	case "esc", "backspace":
		return m, true, nil
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.tarefas)-1 {
			m.cursor++
		}
	case "n":
		m.openForm(nil, deps)
	case "e":
		if current := m.current(); current != nil {
			m.openForm(current, deps)
		}
	case "d":
		if current := m.current(); current != nil {
			m.confirmDelete = current
		}
	case " ":
		// Quick status change: advance to the next status in the cycle and
		// patch only that field, reconciling the list optimistically.
		if current := m.current(); current != nil {
			next := nextStatus(current.Status)
			return m, false, changeTarefaStatus(deps, m.tarefas, current.ID, next)
		}
	case "r":
		m.loading = true
		return m, false, loadMateriaDetail(deps, m.materiaID)
	}
	return m, false, nil
}

func (m materiaModel) handleFormKey(msg tea.KeyMsg, deps Deps) (materiaModel, bool, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closeForm()
		return m, false, nil

	case "tab", "down":
		m.focus = (m.focus + 1) % (len(m.inputs) + 1)
		m.refocus()
		return m, false, nil

	case "shift+tab", "up":
		m.focus = (m.focus + len(m.inputs)) % (len(m.inputs) + 1)
		m.refocus()
		return m, false, nil

	case "left", "right":
		if m.focus == tarefaFieldStatus {
			m.formStatus = nextStatus(m.formStatus)
			return m, false, nil
		}

	case "enter":
		if m.saving {
			return m, false, nil
		}
		titulo := strings.TrimSpace(m.inputs[tarefaFieldTitulo].Value())
		if titulo == "" {
			m.formErr = "O título é obrigatório."
			return m, false, nil
		}
		prazo, err := parsePrazoInput(m.inputs[tarefaFieldPrazo].Value(), deps.location())
		if err != nil {
			m.formErr = domain.UserMessage(err, "Prazo inválido.")
			return m, false, nil
		}
		// The form always re-supplies the current materia's id; a tarefa
		// never moves between materias through this form.
		input := repository.TarefaInput{
			Titulo:    titulo,
			Descricao: optionalField(m.inputs[tarefaFieldDescricao].Value()),
			Prazo:     prazo,
			Status:    m.formStatus,
			MateriaID: m.materiaID,
		}
		m.saving = true
		m.formErr = ""
		return m, false, saveTarefa(deps, m.editTarget, input)
	}

	var cmd tea.Cmd
	m, cmd = m.updateInputs(msg)
	return m, false, cmd
}

func nextStatus(status domain.TarefaStatus) domain.TarefaStatus {
	for i, s := range tarefaStatusCycle {
		if s == status {
			return tarefaStatusCycle[(i+1)%len(tarefaStatusCycle)]
		}
	}
	return domain.TarefaPendente
}

func (m *materiaModel) openForm(target *domain.Tarefa, deps Deps) {
	m.editing = true
	m.editTarget = target
	m.focus = 0
	m.formErr = ""
	if target != nil {
		m.inputs[tarefaFieldTitulo].SetValue(target.Titulo)
		m.inputs[tarefaFieldDescricao].SetValue(target.Descricao)
		m.inputs[tarefaFieldPrazo].SetValue(formatPrazoInput(target.Prazo, deps.location()))
		m.formStatus = target.Status
	} else {
		for i := range m.inputs {
			m.inputs[i].SetValue("")
		}
		m.formStatus = domain.TarefaPendente
	}
	m.refocus()
}

func (m *materiaModel) closeForm() {
	m.editing = false
	m.editTarget = nil
	m.formErr = ""
	for i := range m.inputs {
		m.inputs[i].SetValue("")
		m.inputs[i].Blur()
	}
}

func (m *materiaModel) refocus() {
	for i := range m.inputs {
		m.inputs[i].Blur()
	}
	if m.focus < len(m.inputs) {
		m.inputs[m.focus].Focus()
	}
}

func (m materiaModel) updateInputs(msg tea.Msg) (materiaModel, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd
	for i := range m.inputs {
		m.inputs[i], cmd = m.inputs[i].Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m materiaModel) current() *domain.Tarefa {
	if m.cursor < 0 || m.cursor >= len(m.tarefas) {
		return nil
	}
	return &m.tarefas[m.cursor]
}

func (m materiaModel) view(loc *time.Location) string {
	var b strings.Builder

	if m.loading {
		b.WriteString(mutedStyle.Render("Carregando..."))
		return b.String()
	}
	if m.materia == nil {
		if m.errMsg != "" {
			b.WriteString(errorStyle.Render(m.errMsg) + "\n\n")
		} else {
			b.WriteString(errorStyle.Render("Matéria não encontrada.") + "\n\n")
		}
		b.WriteString(helpStyle.Render("esc: voltar para o Dashboard"))
		return b.String()
	}

	b.WriteString(titleStyle.Render(m.materia.Titulo))
	b.WriteString("\n")
	descricao := m.materia.Descricao
	if descricao == "" {
		descricao = "Sem descrição."
	}
	b.WriteString(subtitleStyle.Render(descricao))
	b.WriteString("\n")
	tipo := m.materia.Tipo
	if tipo == "" {
		tipo = "N/A"
	}
	b.WriteString(mutedStyle.Render(fmt.Sprintf(
		"Tipo: %s • Status: %s • Prazo: %s",
		tipo, m.materia.Status.Label(), formatPrazoDisplay(m.materia.Prazo, loc))))
	b.WriteString("\n\n")

	if m.editing {
		return b.String() + m.formView()
	}

	if m.errMsg != "" {
		b.WriteString(errorStyle.Render(m.errMsg) + "\n\n")
	}

	b.WriteString(headingStyle.Render("Tarefas"))
	b.WriteString("\n")
	if len(m.tarefas) == 0 {
		b.WriteString(mutedStyle.Render("Nenhuma tarefa adicionada a esta matéria ainda.") + "\n")
	}
	for i, t := range m.tarefas {
		b.WriteString(m.tarefaCard(t, i == m.cursor, loc))
		b.WriteString("\n")
	}

	if m.confirmDelete != nil {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(fmt.Sprintf(
			"Deletar a tarefa %q? Esta ação não pode ser desfeita. (s/n)", m.confirmDelete.Titulo)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("espaço: mudar status • n: nova • e: editar • d: deletar • esc: voltar"))
	return b.String()
}

func (m materiaModel) tarefaCard(t domain.Tarefa, selected bool, loc *time.Location) string {
	render := statusStyleFor(t.Status)
	line := render(t.Status.Label()) + "  " + t.Titulo
	descricao := t.Descricao
	if descricao == "" {
		descricao = "Sem descrição."
	}
	detail := mutedStyle.Render(descricao) + "\n" +
		mutedStyle.Render("Prazo: "+formatPrazoDisplay(t.Prazo, loc))
	card := line + "\n" + detail
	if selected {
		return selectedCardStyle.Render(card)
	}
	return cardStyle.Render(card)
}

func (m materiaModel) formView() string {
	var b strings.Builder
	if m.editTarget != nil {
		b.WriteString(headingStyle.Render("Editar Tarefa"))
	} else {
		b.WriteString(headingStyle.Render("Nova Tarefa"))
	}
	b.WriteString("\n\n")
	b.WriteString("Título*:   " + m.inputs[tarefaFieldTitulo].View() + "\n")
	b.WriteString("Descrição: " + m.inputs[tarefaFieldDescricao].View() + "\n")
	b.WriteString("Prazo:     " + m.inputs[tarefaFieldPrazo].View() + "\n")

	statusLine := "Status*:   "
	if m.focus == tarefaFieldStatus {
		statusLine += selectedCardStyle.Render("◂ " + m.formStatus.Label() + " ▸")
	} else {
		statusLine += m.formStatus.Label()
	}
	b.WriteString(statusLine + "\n\n")

	if m.formErr != "" {
		b.WriteString(errorStyle.Render(m.formErr) + "\n")
	}
	if m.saving {
		b.WriteString(mutedStyle.Render("Salvando...") + "\n")
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("enter: salvar • tab: próximo campo • ←/→: status • esc: cancelar"))
	return b.String()
}

// agendaTimeBadge renders the time-of-day of a tarefa's prazo; shared with
// the agenda page.
func agendaTimeBadge(t domain.Tarefa, loc *time.Location) string {
	deadline, ok := t.Deadline(loc)
	if !ok {
		return ""
	}
	return badgeStyle.Render(agenda.TimeLabel(deadline))
}

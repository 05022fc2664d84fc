package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/organizae/app/domain"
)

const (
	ajustesFieldNome = iota
	ajustesFieldNovaSenha
	ajustesFieldConfirmacao
)

// ajustesModel is the settings page: profile edit, password change, logout.
// Each form has its own loading flag and messages.
type ajustesModel struct {
	email  string
	inputs []textinput.Model
	focus  int

	loadingProfile  bool
	errProfile      string
	successProfile  string
	loadingPassword bool
	errPassword     string
	successPassword string
	loggingOut      bool
}

func newAjustesModel() ajustesModel {
	nome := textinput.New()
	nome.Placeholder = "nome completo"
	nome.CharLimit = 120
	nome.Width = 40
	nome.Focus()

	nova := textinput.New()
	nova.Placeholder = "nova senha"
	nova.EchoMode = textinput.EchoPassword
	nova.EchoCharacter = '•'
	nova.CharLimit = 120
	nova.Width = 40

	confirmacao := textinput.New()
	confirmacao.Placeholder = "confirmar nova senha"
	confirmacao.EchoMode = textinput.EchoPassword
	confirmacao.EchoCharacter = '•'
	confirmacao.CharLimit = 120
	confirmacao.Width = 40

	return ajustesModel{
		inputs: []textinput.Model{nome, nova, confirmacao},
	}
}

// reset reloads the form from the current user when the page is entered.
func (m *ajustesModel) reset(user *domain.User) {
	m.email = ""
	m.inputs[ajustesFieldNome].SetValue("")
	if user != nil {
		m.email = user.Email
		m.inputs[ajustesFieldNome].SetValue(user.NomeCompleto())
	}
	m.inputs[ajustesFieldNovaSenha].SetValue("")
	m.inputs[ajustesFieldConfirmacao].SetValue("")
	m.focus = 0
	m.errProfile = ""
	m.successProfile = ""
	m.errPassword = ""
	m.successPassword = ""
	m.refocus()
}

func (m ajustesModel) typing() bool { return true }

func (m ajustesModel) update(msg tea.Msg, deps Deps) (ajustesModel, tea.Cmd) {
	switch msg := msg.(type) {
	case profileSavedMsg:
		m.loadingProfile = false
		if msg.err != nil {
			m.errProfile = domain.UserMessage(msg.err, "Falha ao atualizar perfil.")
			return m, nil
		}
		m.errProfile = ""
		m.successProfile = "Perfil atualizado com sucesso!"
		return m, expireNotice(routeAjustes)

	case passwordChangedMsg:
		m.loadingPassword = false
		if msg.err != nil {
			m.errPassword = domain.UserMessage(msg.err, "Falha ao atualizar senha.")
			return m, nil
		}
		m.errPassword = ""
		m.successPassword = "Senha atualizada com sucesso!"
		m.inputs[ajustesFieldNovaSenha].SetValue("")
		m.inputs[ajustesFieldConfirmacao].SetValue("")
		return m, expireNotice(routeAjustes)

	case noticeExpiredMsg:
		m.successProfile = ""
		m.successPassword = ""
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg, deps)
	}

	return m.updateInputs(msg)
}

func (m ajustesModel) handleKey(msg tea.KeyMsg, deps Deps) (ajustesModel, tea.Cmd) {
	switch msg.String() {
	case "tab", "down":
		m.focus = (m.focus + 1) % len(m.inputs)
		m.refocus()
		return m, nil

	case "shift+tab", "up":
		m.focus = (m.focus - 1 + len(m.inputs)) % len(m.inputs)
		m.refocus()
		return m, nil

	case "ctrl+l":
		if m.loggingOut {
			return m, nil
		}
		m.loggingOut = true
		return m, signOut(deps)

	case "enter":
		if m.focus == ajustesFieldNome {
			if m.loadingProfile {
				return m, nil
			}
			m.loadingProfile = true
			m.errProfile = ""
			m.successProfile = ""
			return m, saveProfile(deps, strings.TrimSpace(m.inputs[ajustesFieldNome].Value()))
		}
		if m.loadingPassword {
			return m, nil
		}
		m.loadingPassword = true
		m.errPassword = ""
		m.successPassword = ""
		nova := m.inputs[ajustesFieldNovaSenha].Value()
		confirmacao := m.inputs[ajustesFieldConfirmacao].Value()
		return m, changePassword(deps, nova, confirmacao)
	}

	return m.updateInputs(msg)
}

func (m *ajustesModel) refocus() {
	for i := range m.inputs {
		m.inputs[i].Blur()
	}
	m.inputs[m.focus].Focus()
}

func (m ajustesModel) updateInputs(msg tea.Msg) (ajustesModel, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd
	for i := range m.inputs {
		m.inputs[i], cmd = m.inputs[i].Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m ajustesModel) view() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Ajustes do Perfil"))
	b.WriteString("\n\n")

	b.WriteString(headingStyle.Render("Editar Informações"))
	b.WriteString("\n")
	b.WriteString("Nome:   " + m.inputs[ajustesFieldNome].View() + "\n")
	b.WriteString("E-mail: " + mutedStyle.Render(m.email) + "\n")
	b.WriteString(mutedStyle.Render("O e-mail não pode ser alterado após o cadastro."))
	b.WriteString("\n")
	if m.errProfile != "" {
		b.WriteString(errorStyle.Render(m.errProfile) + "\n")
	}
	if m.successProfile != "" {
		b.WriteString(successStyle.Render(m.successProfile) + "\n")
	}
	if m.loadingProfile {
		b.WriteString(mutedStyle.Render("Salvando...") + "\n")
	}
	b.WriteString("\n")

	b.WriteString(headingStyle.Render("Alterar Senha"))
	b.WriteString("\n")
	b.WriteString("Nova senha:      " + m.inputs[ajustesFieldNovaSenha].View() + "\n")
	b.WriteString("Confirmar senha: " + m.inputs[ajustesFieldConfirmacao].View() + "\n")
	b.WriteString(mutedStyle.Render("A senha deve ter no mínimo 7 caracteres, incluindo letra maiúscula, número e símbolo."))
	b.WriteString("\n")
	if m.errPassword != "" {
		b.WriteString(errorStyle.Render(m.errPassword) + "\n")
	}
	if m.successPassword != "" {
		b.WriteString(successStyle.Render(m.successPassword) + "\n")
	}
	if m.loadingPassword {
		b.WriteString(mutedStyle.Render("Alterando...") + "\n")
	}
	if m.loggingOut {
		b.WriteString(mutedStyle.Render("Saindo...") + "\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("enter: salvar formulário em foco • tab: próximo campo • ctrl+l: sair da conta"))
	return b.String()
}

package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/organizae/app/domain"
	"github.com/organizae/app/repository"
)

const (
	loginFieldEmail = iota
	loginFieldSenha
)

const (
	regFieldNome = iota
	regFieldEmail
	regFieldSenha
)

type loginModel struct {
	registering bool
	inputs      []textinput.Model
	regInputs   []textinput.Model
	focus       int

	loadingLogin    bool
	loadingRegister bool
	errLogin        string
	errRegister     string
	successRegister string
}

func newLoginModel() loginModel {
	email := textinput.New()
	email.Placeholder = "seu@email.com"
	email.CharLimit = 120
	email.Width = 40
	email.Focus()

	senha := textinput.New()
	senha.Placeholder = "senha"
	senha.EchoMode = textinput.EchoPassword
	senha.EchoCharacter = '•'
	senha.CharLimit = 120
	senha.Width = 40

	regNome := textinput.New()
	regNome.Placeholder = "nome completo"
	regNome.CharLimit = 120
	regNome.Width = 40

	regEmail := textinput.New()
	regEmail.Placeholder = "seu@email.com"
	regEmail.CharLimit = 120
	regEmail.Width = 40

	regSenha := textinput.New()
	regSenha.Placeholder = "senha"
	regSenha.EchoMode = textinput.EchoPassword
	regSenha.EchoCharacter = '•'
	regSenha.CharLimit = 120
	regSenha.Width = 40

	return loginModel{
		inputs:    []textinput.Model{email, senha},
		regInputs: []textinput.Model{regNome, regEmail, regSenha},
	}
}

func (m loginModel) typing() bool { return true }

func (m loginModel) update(msg tea.Msg, deps Deps) (loginModel, tea.Cmd) {
	switch msg := msg.(type) {
	case loginResultMsg:
		m.loadingLogin = false
		if msg.err != nil {
			m.errLogin = domain.UserMessage(msg.err, "Ocorreu um erro ao fazer login.")
		}
		// On success the session listener switches the route.
		return m, nil

	case registerResultMsg:
		m.loadingRegister = false
		if msg.err != nil {
			m.errRegister = domain.UserMessage(msg.err, "Ocorreu um erro ao cadastrar.")
			return m, nil
		}
		m.successRegister = "Cadastro realizado com sucesso! Você já pode fazer login."
		return m, expireNotice(routeLogin)

	case noticeExpiredMsg:
		if m.successRegister != "" {
			m.successRegister = ""
			m.registering = false
			m.focus = 0
			m.regInputs[regFieldNome].SetValue("")
			m.regInputs[regFieldEmail].SetValue("")
			m.regInputs[regFieldSenha].SetValue("")
			m = m.refocus()
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg, deps)
	}

	return m.updateInputs(msg)
}

func (m loginModel) handleKey(msg tea.KeyMsg, deps Deps) (loginModel, tea.Cmd) {
	switch msg.String() {
	case "ctrl+r":
		m.registering = !m.registering
		m.focus = 0
		m.errLogin = ""
		m.errRegister = ""
		return m.refocus(), nil

	case "esc":
		if m.registering {
			m.registering = false
			m.focus = 0
			m.errRegister = ""
			return m.refocus(), nil
		}
		return m, nil

	case "tab", "down":
		m.focus = (m.focus + 1) % m.fieldCount()
		return m.refocus(), nil

	case "shift+tab", "up":
		m.focus = (m.focus - 1 + m.fieldCount()) % m.fieldCount()
		return m.refocus(), nil

	case "enter":
		return m.submit(deps)
	}

	return m.updateInputs(msg)
}

func (m loginModel) submit(deps Deps) (loginModel, tea.Cmd) {
	if m.registering {
		if m.loadingRegister {
			return m, nil
		}
		m.loadingRegister = true
		m.errRegister = ""
		m.successRegister = ""
		input := repository.RegisterInput{
			Nome:  strings.TrimSpace(m.regInputs[regFieldNome].Value()),
			Email: strings.TrimSpace(m.regInputs[regFieldEmail].Value()),
			Senha: m.regInputs[regFieldSenha].Value(),
		}
		return m, register(deps, input)
	}

	if m.loadingLogin {
		return m, nil
	}
	m.loadingLogin = true
	m.errLogin = ""
	email := strings.TrimSpace(m.inputs[loginFieldEmail].Value())
	senha := m.inputs[loginFieldSenha].Value()
	return m, signIn(deps, email, senha)
}

func (m loginModel) fieldCount() int {
	if m.registering {
		return len(m.regInputs)
	}
	return len(m.inputs)
}

func (m loginModel) refocus() loginModel {
	for i := range m.inputs {
		m.inputs[i].Blur()
	}
	for i := range m.regInputs {
		m.regInputs[i].Blur()
	}
	if m.registering {
		m.regInputs[m.focus].Focus()
	} else {
		m.inputs[m.focus].Focus()
	}
	return m
}

func (m loginModel) updateInputs(msg tea.Msg) (loginModel, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd
	if m.registering {
		for i := range m.regInputs {
			m.regInputs[i], cmd = m.regInputs[i].Update(msg)
			cmds = append(cmds, cmd)
		}
	} else {
		for i := range m.inputs {
			m.inputs[i], cmd = m.inputs[i].Update(msg)
			cmds = append(cmds, cmd)
		}
	}
	return m, tea.Batch(cmds...)
}

func (m loginModel) view() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Organizaê"))
	b.WriteString("\n")
	b.WriteString(subtitleStyle.Render("Organize suas matérias e tarefas."))
	b.WriteString("\n\n")

	if m.registering {
		b.WriteString(headingStyle.Render("Criar conta"))
		b.WriteString("\n\n")
		b.WriteString("Nome:  " + m.regInputs[regFieldNome].View() + "\n")
		b.WriteString("Email: " + m.regInputs[regFieldEmail].View() + "\n")
		b.WriteString("Senha: " + m.regInputs[regFieldSenha].View() + "\n\n")
		b.WriteString(mutedStyle.Render("A senha deve ter no mínimo 7 caracteres, incluindo letra maiúscula, número e símbolo."))
		b.WriteString("\n")
		if m.errRegister != "" {
			b.WriteString(errorStyle.Render(m.errRegister) + "\n")
		}
		if m.successRegister != "" {
			b.WriteString(successStyle.Render(m.successRegister) + "\n")
		}
		if m.loadingRegister {
			b.WriteString(mutedStyle.Render("Cadastrando...") + "\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("enter: cadastrar • esc: voltar ao login"))
		return b.String()
	}

	b.WriteString(headingStyle.Render("Login"))
	b.WriteString("\n\n")
	b.WriteString("Email: " + m.inputs[loginFieldEmail].View() + "\n")
	b.WriteString("Senha: " + m.inputs[loginFieldSenha].View() + "\n\n")
	if m.errLogin != "" {
		b.WriteString(errorStyle.Render(m.errLogin) + "\n")
	}
	if m.loadingLogin {
		b.WriteString(mutedStyle.Render("Entrando...") + "\n")
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("enter: entrar • ctrl+r: criar conta • ctrl+c: sair"))
	return b.String()
}

package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/organizae/app/domain"
	"github.com/organizae/app/repository"
	"github.com/organizae/app/usecase/auth"
	"github.com/organizae/app/usecase/materia"
	"github.com/organizae/app/usecase/profile"
	"github.com/organizae/app/usecase/tarefa"
)

// Deps bundles the use cases the view layer dispatches to. The session
// manager is an explicit handle here, never ambient state.
type Deps struct {
	Auth     *auth.Manager
	Materias *materia.UseCase
	Tarefas  *tarefa.UseCase
	Profile  *profile.UseCase
	Logger   *zap.Logger
	Timeout  time.Duration
	Location *time.Location
}

func (d Deps) context() (context.Context, context.CancelFunc) {
	timeout := d.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return context.WithTimeout(context.Background(), timeout)
}

func (d Deps) location() *time.Location {
	if d.Location != nil {
		return d.Location
	}
	return time.Local
}

// sessionChangedMsg is delivered on every auth-state change, including the
// initial load. A nil session means signed out.
type sessionChangedMsg struct {
	session *domain.Session
}

// SessionChanged wraps an auth-state change for delivery via Program.Send.
func SessionChanged(session *domain.Session) tea.Msg {
	return sessionChangedMsg{session: session}
}

type overviewLoadedMsg struct {
	materias []domain.Materia
	tarefas  []domain.Tarefa
	err      error
}

type materiaDetailLoadedMsg struct {
	materia *domain.Materia
	tarefas []domain.Tarefa
	err     error
}

type materiaSavedMsg struct{ err error }

type materiaDeletedMsg struct{ err error }

type agendaLoadedMsg struct {
	tarefas []domain.Tarefa
	err     error
}

type tarefaSavedMsg struct{ err error }

type tarefasReconciledMsg struct {
	tarefas []domain.Tarefa
	err     error
}

type loginResultMsg struct{ err error }

type registerResultMsg struct{ err error }

type logoutDoneMsg struct{}

type profileSavedMsg struct {
	user *domain.User
	err  error
}

type passwordChangedMsg struct{ err error }

// noticeExpiredMsg clears a transient success message after a delay.
type noticeExpiredMsg struct{ route route }

func expireNotice(r route) tea.Cmd {
	return tea.Tick(3*time.Second, func(time.Time) tea.Msg {
		return noticeExpiredMsg{route: r}
	})
}

func loadOverview(d Deps) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := d.context()
		defer cancel()
		materias, tarefas, err := d.Materias.Overview(ctx)
		return overviewLoadedMsg{materias: materias, tarefas: tarefas, err: err}
	}
}

func loadMateriaDetail(d Deps, id int64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := d.context()
		defer cancel()
		m, err := d.Materias.Get(ctx, id)
		if err != nil {
			return materiaDetailLoadedMsg{err: err}
		}
		tarefas, err := d.Tarefas.ListByMateria(ctx, id)
		if err != nil {
			return materiaDetailLoadedMsg{err: err}
		}
		return materiaDetailLoadedMsg{materia: m, tarefas: tarefas}
	}
}

func loadAgenda(d Deps) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := d.context()
		defer cancel()
		tarefas, err := d.Tarefas.List(ctx)
		return agendaLoadedMsg{tarefas: tarefas, err: err}
	}
}

func saveMateria(d Deps, current *domain.Materia, input repository.MateriaInput) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := d.context()
		defer cancel()
		var err error
		if current != nil {
			input.Status = current.Status
			_, err = d.Materias.Update(ctx, current.ID, input)
		} else {
			_, err = d.Materias.Create(ctx, input)
		}
		return materiaSavedMsg{err: err}
	}
}

func setMateriaStatus(d Deps, m *domain.Materia, status domain.MateriaStatus) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := d.context()
		defer cancel()
		_, err := d.Materias.SetStatus(ctx, m, status)
		return materiaSavedMsg{err: err}
	}
}

func deleteMateria(d Deps, id int64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := d.context()
		defer cancel()
		return materiaDeletedMsg{err: d.Materias.Delete(ctx, id)}
	}
}

func saveTarefa(d Deps, current *domain.Tarefa, input repository.TarefaInput) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := d.context()
		defer cancel()
		var err error
		if current != nil {
			_, err = d.Tarefas.Update(ctx, current.ID, input)
		} else {
			_, err = d.Tarefas.Create(ctx, input)
		}
		return tarefaSavedMsg{err: err}
	}
}

func changeTarefaStatus(d Deps, tarefas []domain.Tarefa, id int64, status domain.TarefaStatus) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := d.context()
		defer cancel()
		updated, err := d.Tarefas.ChangeStatus(ctx, tarefas, id, status)
		return tarefasReconciledMsg{tarefas: updated, err: err}
	}
}

func deleteTarefa(d Deps, tarefas []domain.Tarefa, id int64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := d.context()
		defer cancel()
		updated, err := d.Tarefas.Delete(ctx, tarefas, id)
		return tarefasReconciledMsg{tarefas: updated, err: err}
	}
}

func signIn(d Deps, email, senha string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := d.context()
		defer cancel()
		return loginResultMsg{err: d.Auth.SignIn(ctx, email, senha)}
	}
}

func register(d Deps, input repository.RegisterInput) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := d.context()
		defer cancel()
		return registerResultMsg{err: d.Profile.Register(ctx, input)}
	}
}

func signOut(d Deps) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := d.context()
		defer cancel()
		_ = d.Auth.SignOut(ctx)
		return logoutDoneMsg{}
	}
}

func saveProfile(d Deps, nome string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := d.context()
		defer cancel()
		user, err := d.Profile.UpdateNome(ctx, nome)
		return profileSavedMsg{user: user, err: err}
	}
}

func changePassword(d Deps, nova, confirmacao string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := d.context()
		defer cancel()
		return passwordChangedMsg{err: d.Profile.ChangePassword(ctx, nova, confirmacao)}
	}
}

package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTarefaDeadline(t *testing.T) {
	raw := "2025-03-10T23:30:00Z"
	tarefa := Tarefa{Prazo: &raw}

	deadline, ok := tarefa.Deadline(time.UTC)
	require.True(t, ok)
	assert.Equal(t, time.Date(2025, 3, 10, 23, 30, 0, 0, time.UTC), deadline)
}

func TestTarefaDeadlineConvertsLocation(t *testing.T) {
	raw := "2025-03-10T23:30:00Z"
	tarefa := Tarefa{Prazo: &raw}
	loc := time.FixedZone("UTC+2", 2*60*60)

	deadline, ok := tarefa.Deadline(loc)
	require.True(t, ok)
	assert.Equal(t, 11, deadline.Day())
	assert.Equal(t, 1, deadline.Hour())
}

func TestTarefaDeadlineAbsentOrBroken(t *testing.T) {
	empty := ""
	broken := "amanhã de manhã"

	cases := []struct {
		name   string
		tarefa *Tarefa
	}{
		{"nil tarefa", nil},
		{"nil prazo", &Tarefa{}},
		{"empty prazo", &Tarefa{Prazo: &empty}},
		{"unparseable prazo", &Tarefa{Prazo: &broken}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, ok := tc.tarefa.Deadline(time.UTC)
			assert.False(t, ok)
		})
	}
}

func TestTarefaStatusPrecedence(t *testing.T) {
	assert.Equal(t, 1, TarefaPendente.Precedence())
	assert.Equal(t, 2, TarefaEmAndamento.Precedence())
	assert.Equal(t, 3, TarefaConcluida.Precedence())
	assert.Equal(t, 4, TarefaStatus("cancelada").Precedence())
}

func TestTarefaStatusLabel(t *testing.T) {
	assert.Equal(t, "Pendente", TarefaPendente.Label())
	assert.Equal(t, "Em Andamento", TarefaEmAndamento.Label())
	assert.Equal(t, "Concluída", TarefaConcluida.Label())
}

func TestSessionIsExpired(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	var nilSession *Session
	assert.True(t, nilSession.IsExpired(now))
	assert.True(t, (&Session{}).IsExpired(now))

	live := &Session{AccessToken: "tok", ExpiresAt: now.Add(time.Hour)}
	assert.False(t, live.IsExpired(now))

	expired := &Session{AccessToken: "tok", ExpiresAt: now.Add(-time.Second)}
	assert.True(t, expired.IsExpired(now))

	// no expiry recorded means the token is taken at face value
	unknown := &Session{AccessToken: "tok"}
	assert.False(t, unknown.IsExpired(now))
}

func TestUserMessagePrefersDomainMessage(t *testing.T) {
	err := NewError(ErrCodeConflict, "já existe uma matéria com esse título")
	assert.Equal(t, "já existe uma matéria com esse título", UserMessage(err, "Ocorreu um erro."))

	assert.Equal(t, "Ocorreu um erro.", UserMessage(assert.AnError, "Ocorreu um erro."))
	assert.Equal(t, "", UserMessage(nil, "Ocorreu um erro."))
}

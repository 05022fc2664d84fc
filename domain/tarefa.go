package domain

import "time"

// TarefaStatus enumerates the three task states. Any state may be set from
// any other; the progression is not enforced as monotonic.
type TarefaStatus string

const (
	TarefaPendente    TarefaStatus = "pendente"
	TarefaEmAndamento TarefaStatus = "em andamento"
	TarefaConcluida   TarefaStatus = "concluida"
)

// Precedence returns the display ordering rank of a status
// (pendente < em andamento < concluida). Unknown statuses sort last.
func (s TarefaStatus) Precedence() int {
	switch s {
	case TarefaPendente:
		return 1
	case TarefaEmAndamento:
		return 2
	case TarefaConcluida:
		return 3
	default:
		return 4
	}
}

// Label returns the human-readable form shown in the UI.
func (s TarefaStatus) Label() string {
	switch s {
	case TarefaPendente:
		return "Pendente"
	case TarefaEmAndamento:
		return "Em Andamento"
	case TarefaConcluida:
		return "Concluída"
	default:
		return string(s)
	}
}

// Tarefa represents a unit of work belonging to exactly one Materia.
type Tarefa struct {
	ID        int64        `json:"id"`
	Titulo    string       `json:"titulo"`
	Descricao string       `json:"descricao,omitempty"`
	Prazo     *string      `json:"prazo,omitempty"`
	Status    TarefaStatus `json:"status"`
	MateriaID int64        `json:"materiaId"`
	UserID    string       `json:"user_id"`
	CreatedAt time.Time    `json:"created_at"`
}

// Deadline parses the raw prazo value in the given location. A nil, empty or
// unparseable prazo reads as "no deadline" and never produces an error.
func (t *Tarefa) Deadline(loc *time.Location) (time.Time, bool) {
	if t == nil || t.Prazo == nil || *t.Prazo == "" {
		return time.Time{}, false
	}
	if loc == nil {
		loc = time.Local
	}
	parsed, err := time.Parse(time.RFC3339, *t.Prazo)
	if err != nil {
		return time.Time{}, false
	}
	return parsed.In(loc), true
}

func (t *Tarefa) IsConcluida() bool {
	return t != nil && t.Status == TarefaConcluida
}

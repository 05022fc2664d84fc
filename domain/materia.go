package domain

import "time"

// MateriaStatus is binary and mutually exclusive.
type MateriaStatus string

const (
	MateriaEmAndamento MateriaStatus = "em andamento"
	MateriaFinalizada  MateriaStatus = "finalizado"
)

// Label returns the human-readable form shown in the UI.
func (s MateriaStatus) Label() string {
	switch s {
	case MateriaEmAndamento:
		return "Em Andamento"
	case MateriaFinalizada:
		return "Finalizada"
	default:
		return string(s)
	}
}

// Materia represents a study topic the user tracks.
type Materia struct {
	ID        int64         `json:"id"`
	Titulo    string        `json:"titulo"`
	Descricao string        `json:"descricao,omitempty"`
	Tipo      string        `json:"tipo,omitempty"`
	Prazo     *string       `json:"prazo,omitempty"`
	Status    MateriaStatus `json:"status"`
	UserID    string        `json:"user_id"`
	CreatedAt time.Time     `json:"created_at"`
}

// Deadline parses the raw prazo value in the given location, mirroring
// Tarefa.Deadline semantics (absence and parse failure are equivalent).
func (m *Materia) Deadline(loc *time.Location) (time.Time, bool) {
	if m == nil || m.Prazo == nil || *m.Prazo == "" {
		return time.Time{}, false
	}
	if loc == nil {
		loc = time.Local
	}
	parsed, err := time.Parse(time.RFC3339, *m.Prazo)
	if err != nil {
		return time.Time{}, false
	}
	return parsed.In(loc), true
}

func (m *Materia) IsAtiva() bool {
	return m != nil && m.Status == MateriaEmAndamento
}

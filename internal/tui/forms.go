package tui

import (
	"strings"
	"time"

	"github.com/organizae/app/domain"
)

// prazoInputLayout is the format the deadline form fields accept.
const prazoInputLayout = "02/01/2006 15:04"

// parsePrazoInput converts a form value into the wire timestamp. An empty
// value means no deadline (nil); a malformed value is a local validation
// error and no request is issued.
func parsePrazoInput(value string, loc *time.Location) (*string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	if loc == nil {
		loc = time.Local
	}
	parsed, err := time.ParseInLocation(prazoInputLayout, value, loc)
	if err != nil {
		return nil, domain.NewError(domain.ErrCodeInvalid, "Prazo inválido (use DD/MM/AAAA HH:MM).")
	}
	formatted := parsed.Format(time.RFC3339)
	return &formatted, nil
}

// formatPrazoInput renders a stored deadline back into the form layout for
// editing. Absent or unparseable deadlines come back empty.
func formatPrazoInput(prazo *string, loc *time.Location) string {
	if prazo == nil || *prazo == "" {
		return ""
	}
	if loc == nil {
		loc = time.Local
	}
	parsed, err := time.Parse(time.RFC3339, *prazo)
	if err != nil {
		return ""
	}
	return parsed.In(loc).Format(prazoInputLayout)
}

// formatPrazoDisplay renders a deadline for read-only display, mirroring the
// cards in the original layout ("Sem prazo" when absent).
func formatPrazoDisplay(prazo *string, loc *time.Location) string {
	if prazo == nil || *prazo == "" {
		return "Sem prazo"
	}
	if loc == nil {
		loc = time.Local
	}
	parsed, err := time.Parse(time.RFC3339, *prazo)
	if err != nil {
		return "Data inválida"
	}
	return parsed.In(loc).Format(prazoInputLayout)
}

func optionalField(value string) *string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return &value
}

func statusStyleFor(status domain.TarefaStatus) func(string) string {
	switch status {
	case domain.TarefaEmAndamento:
		return func(s string) string { return statusAndamentoStyle.Render(s) }
	case domain.TarefaConcluida:
		return func(s string) string { return statusConcluidaStyle.Render(s) }
	default:
		return func(s string) string { return statusPendenteStyle.Render(s) }
	}
}

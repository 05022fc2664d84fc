// Package agenda implements the day-grouped view of all dated tarefas.
// Every function here is pure: the caller fetches, agenda only transforms.
package agenda

import (
	"sort"
	"time"

	"github.com/organizae/app/domain"
)

const (
	dayLabelLayout  = "02/01/2006"
	timeLabelLayout = "15:04"
)

// DayGroup holds every tarefa whose prazo falls on the same local calendar
// day. Date is the day at midnight in the grouping location and Label its
// DD/MM/YYYY presentation; keeping both avoids re-parsing the label when
// groups are ordered or matched against a selected date.
type DayGroup struct {
	Date    time.Time
	Label   string
	Tarefas []domain.Tarefa
}

// DayLabel formats a date using the display convention shared by group
// labels and selection headings.
func DayLabel(t time.Time) string {
	return t.Format(dayLabelLayout)
}

// TimeLabel formats the time-of-day badge shown next to a tarefa.
func TimeLabel(t time.Time) string {
	return t.Format(timeLabelLayout)
}

type datedTarefa struct {
	tarefa   domain.Tarefa
	deadline time.Time
}

// collectDated filters to tarefas with a parseable prazo. Absent and
// unparseable prazos are equivalent: both are silently excluded.
func collectDated(tarefas []domain.Tarefa, loc *time.Location) []datedTarefa {
	dated := make([]datedTarefa, 0, len(tarefas))
	for _, t := range tarefas {
		deadline, ok := t.Deadline(loc)
		if !ok {
			continue
		}
		dated = append(dated, datedTarefa{tarefa: t, deadline: deadline})
	}
	return dated
}

func startOfDay(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	year, month, day := t.In(loc).Date()
	return time.Date(year, month, day, 0, 0, 0, 0, loc)
}

// GroupByDay filters out undated tarefas, sorts the remainder by absolute
// deadline ascending and groups them by local calendar day. Groups come out
// in chronological order, and because the list is sorted before grouping the
// order within each group is chronological as well.
func GroupByDay(tarefas []domain.Tarefa, loc *time.Location) []DayGroup {
	if loc == nil {
		loc = time.Local
	}

	dated := collectDated(tarefas, loc)
	sort.SliceStable(dated, func(i, j int) bool {
		return dated[i].deadline.Before(dated[j].deadline)
	})

	var groups []DayGroup
	for _, d := range dated {
		day := startOfDay(d.deadline, loc)
		if n := len(groups); n > 0 && groups[n-1].Date.Equal(day) {
			groups[n-1].Tarefas = append(groups[n-1].Tarefas, d.tarefa)
			continue
		}
		groups = append(groups, DayGroup{
			Date:    day,
			Label:   DayLabel(day),
			Tarefas: []domain.Tarefa{d.tarefa},
		})
	}
	return groups
}

// MarkedDays derives the distinct set of calendar days holding at least one
// dated tarefa. Each day is normalized to midnight in the grouping location
// so the calendar widget can compare by equality, and the result is sorted.
func MarkedDays(tarefas []domain.Tarefa, loc *time.Location) []time.Time {
	if loc == nil {
		loc = time.Local
	}

	seen := make(map[time.Time]struct{})
	var days []time.Time
	for _, d := range collectDated(tarefas, loc) {
		day := startOfDay(d.deadline, loc)
		if _, ok := seen[day]; ok {
			continue
		}
		seen[day] = struct{}{}
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })
	return days
}

// ListView is what the agenda list renders: a heading, the groups to show
// and whether the clear-selection affordance is visible.
type ListView struct {
	Heading   string
	Groups    []DayGroup
	ShowClear bool
}

// Select applies the single-day selection filter. With no selection every
// group is presented under a generic heading. With a selection only the
// matching group is presented, or an empty list when no tarefa falls on that
// day; the clear affordance stays visible either way so the user is never
// stuck on an empty day.
func Select(groups []DayGroup, selected *time.Time, loc *time.Location) ListView {
	if selected == nil {
		return ListView{
			Heading: "Próximas Tarefas",
			Groups:  groups,
		}
	}

	day := startOfDay(*selected, loc)
	label := DayLabel(day)
	for _, g := range groups {
		if g.Date.Equal(day) {
			return ListView{
				Heading:   "Tarefas para " + label,
				Groups:    []DayGroup{g},
				ShowClear: true,
			}
		}
	}
	return ListView{
		Heading:   "Nenhuma tarefa para " + label,
		ShowClear: true,
	}
}

package tui

import (
	"fmt"
	"strings"
	"time"
)

var mesesPt = [...]string{
	"janeiro", "fevereiro", "março", "abril", "maio", "junho",
	"julho", "agosto", "setembro", "outubro", "novembro", "dezembro",
}

// calendarModel is the month-grid collaborator of the agenda page. It only
// displays marked days and reports the selected one; it never touches tasks.
type calendarModel struct {
	loc      *time.Location
	month    time.Time
	cursor   time.Time
	selected *time.Time
	marked   map[time.Time]struct{}
}

func newCalendar(loc *time.Location) calendarModel {
	if loc == nil {
		loc = time.Local
	}
	now := time.Now().In(loc)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	return calendarModel{
		loc:    loc,
		month:  time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc),
		cursor: today,
		marked: make(map[time.Time]struct{}),
	}
}

// setMarked replaces the set of days flagged as having tasks. The days are
// expected midnight-normalized in the calendar's location.
func (c *calendarModel) setMarked(days []time.Time) {
	c.marked = make(map[time.Time]struct{}, len(days))
	for _, d := range days {
		c.marked[d] = struct{}{}
	}
}

func (c *calendarModel) moveCursor(days int) {
	c.cursor = c.cursor.AddDate(0, 0, days)
	c.month = time.Date(c.cursor.Year(), c.cursor.Month(), 1, 0, 0, 0, 0, c.loc)
}

func (c *calendarModel) moveMonth(months int) {
	c.month = c.month.AddDate(0, months, 0)
	c.cursor = c.month
}

// selectCursor marks the day under the cursor as the selected date.
func (c *calendarModel) selectCursor() {
	day := c.cursor
	c.selected = &day
}

func (c *calendarModel) clearSelection() {
	c.selected = nil
}

func (c calendarModel) view() string {
	var b strings.Builder

	header := fmt.Sprintf("%s %d", mesesPt[c.month.Month()-1], c.month.Year())
	b.WriteString(headingStyle.Render(header))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(" dom  seg  ter  qua  qui  sex  sáb"))
	b.WriteString("\n")

	first := c.month
	offset := int(first.Weekday())
	daysInMonth := first.AddDate(0, 1, -1).Day()

	col := 0
	for i := 0; i < offset; i++ {
		b.WriteString(calendarDayStyle.Render(" "))
		col++
	}
	for day := 1; day <= daysInMonth; day++ {
		date := time.Date(c.month.Year(), c.month.Month(), day, 0, 0, 0, 0, c.loc)
		label := fmt.Sprintf("%d", day)
		if _, ok := c.marked[date]; ok {
			label += "•"
		}

		style := calendarDayStyle
		if _, ok := c.marked[date]; ok {
			style = calendarMarkedStyle
		}
		if c.selected != nil && c.selected.Equal(date) {
			style = calendarSelectedStyle
		}
		if c.cursor.Equal(date) {
			style = calendarCursorStyle
		}

		b.WriteString(style.Render(label))
		col++
		if col%7 == 0 {
			b.WriteString("\n")
		}
	}
	if col%7 != 0 {
		b.WriteString("\n")
	}
	return b.String()
}

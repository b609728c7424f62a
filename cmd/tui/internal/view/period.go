package view

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Period is a reporting window offered by the period picker.
type Period int

const (
	PeriodToday Period = iota
	PeriodThisWeek
	PeriodThisMonth
	PeriodLastMonth
	PeriodAll
	PeriodCustom
)

func (p Period) String() string {
	switch p {
	case PeriodToday:
		return "Today"
	case PeriodThisWeek:
		return "This Week"
	case PeriodThisMonth:
		return "This Month"
	case PeriodLastMonth:
		return "Last Month"
	case PeriodAll:
		return "All Time"
	case PeriodCustom:
		return "Custom Range"
	}

	return "Unknown"
}

// periodRange returns the first and last day of p relative to now. Weeks
// start on Monday.
func periodRange(p Period, now time.Time) (time.Time, time.Time) {
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	switch p {
	case PeriodToday:
		return day, day
	case PeriodThisWeek:
		offset := (int(day.Weekday()) + 6) % 7
		return day.AddDate(0, 0, -offset), day
	case PeriodThisMonth:
		return time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, time.UTC), day
	case PeriodLastMonth:
		first := time.Date(day.Year(), day.Month()-1, 1, 0, 0, 0, 0, time.UTC)
		return first, first.AddDate(0, 1, -1)
	}

	return time.Time{}, time.Time{}
}

// PeriodSelectedMsg carries the chosen window. Start and End are nil for
// PeriodAll; End is inclusive of the whole day.
type PeriodSelectedMsg struct {
	Start *time.Time
	End   *time.Time
}

func selected(start, end time.Time) tea.Cmd {
	end = end.Add(24*time.Hour - time.Second)

	return func() tea.Msg {
		return PeriodSelectedMsg{Start: &start, End: &end}
	}
}

// PeriodPicker lists the predefined periods and accepts a custom range.
type PeriodPicker struct {
	cursor Period
	custom bool

	startInput textinput.Model
	endInput   textinput.Model
	focusIndex int

	err error
}

func NewPeriodPicker(initial Period) PeriodPicker {
	newInput := func(prompt string) textinput.Model {
		in := textinput.New()
		in.Placeholder = "YYYY-MM-DD"
		in.CharLimit = 10
		in.Width = 12
		in.Prompt = prompt

		return in
	}

	return PeriodPicker{
		cursor:     initial,
		startInput: newInput("From: "),
		endInput:   newInput("To:   "),
	}
}

// Choosing reports whether the list, not the custom range inputs, has focus.
func (p PeriodPicker) Choosing() bool {
	return !p.custom
}

func (p PeriodPicker) Update(msg tea.Msg) (PeriodPicker, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		if p.custom {
			return p.updateInputs(msg)
		}

		return p, nil
	}

	if p.custom {
		return p.updateCustom(keyMsg)
	}

	switch keyMsg.Type {
	case tea.KeyUp:
		if p.cursor > PeriodToday {
			p.cursor--
		}
	case tea.KeyDown:
		if p.cursor < PeriodCustom {
			p.cursor++
		}
	case tea.KeyEnter:
		switch p.cursor {
		case PeriodCustom:
			p.custom = true
			p.focusIndex = 0
			p.startInput.Focus()

			return p, textinput.Blink
		case PeriodAll:
			return p, func() tea.Msg { return PeriodSelectedMsg{} }
		}

		return p, selected(periodRange(p.cursor, time.Now()))
	}

	return p, nil
}

func (p PeriodPicker) updateCustom(msg tea.KeyMsg) (PeriodPicker, tea.Cmd) {
	switch msg.String() {
	case "tab", "shift+tab":
		p.focusIndex = 1 - p.focusIndex
		p.startInput.Blur()
		p.endInput.Blur()

		if p.focusIndex == 0 {
			p.startInput.Focus()
		} else {
			p.endInput.Focus()
		}

		return p, textinput.Blink
	case "enter":
		start, err := time.Parse(time.DateOnly, p.startInput.Value())
		if err != nil {
			p.err = fmt.Errorf("invalid start date (YYYY-MM-DD)")
			return p, nil
		}

		end, err := time.Parse(time.DateOnly, p.endInput.Value())
		if err != nil {
			p.err = fmt.Errorf("invalid end date (YYYY-MM-DD)")
			return p, nil
		}

		if end.Before(start) {
			p.err = fmt.Errorf("end date is before start date")
			return p, nil
		}

		p.err = nil

		return p, selected(start, end)
	case "esc":
		p.custom = false
		p.err = nil

		return p, nil
	}

	return p.updateInputs(msg)
}

func (p PeriodPicker) updateInputs(msg tea.Msg) (PeriodPicker, tea.Cmd) {
	var startCmd, endCmd tea.Cmd

	p.startInput, startCmd = p.startInput.Update(msg)
	p.endInput, endCmd = p.endInput.Update(msg)

	return p, tea.Batch(startCmd, endCmd)
}

func (p PeriodPicker) View() string {
	errStr := ""
	if p.err != nil {
		errStr = "\n\n" + errorStyle.Render(fmt.Sprintf("Error: %v", p.err))
	}

	if p.custom {
		return fmt.Sprintf("Custom range:\n\n%s\n%s\n\n(Enter to confirm, Tab to switch, Esc to go back)%s",
			p.startInput.View(), p.endInput.View(), errStr)
	}

	s := "Select period:\n\n"
	for i := PeriodToday; i <= PeriodCustom; i++ {
		cursor := " "
		if p.cursor == i {
			cursor = ">"
		}

		s += fmt.Sprintf("%s %s\n", cursor, i)
	}

	return s + "\n(Enter to select, Esc to go back)" + errStr
}

// Package theme holds the Lip Gloss styles shared by the planner views.
package theme

import "github.com/charmbracelet/lipgloss/v2"

// Theme centralizes Lip Gloss styles for the Bubble Tea UI.
type Theme struct {
	Footer   FooterTheme
	Panel    PanelTheme
	Calendar CalendarTheme
	Agenda   AgendaTheme
}

// FooterTheme groups styles used by the bottom status/help bar.
type FooterTheme struct {
	Help   lipgloss.Style
	Status lipgloss.Style
	Error  lipgloss.Style
}

// PanelTheme styles framed panels and headings.
type PanelTheme struct {
	Frame        lipgloss.Style
	FocusedFrame lipgloss.Style
	Title  lipgloss.Style
}

// CalendarTheme styles the month grid.
type CalendarTheme struct {
	Header        lipgloss.Style
	Nav           lipgloss.Style
	NavFocused    lipgloss.Style
	Day    lipgloss.Style
	OtherMonth    lipgloss.Style
	CurrentWeek   lipgloss.Style
	Today         lipgloss.Style
	Selected      lipgloss.Style
	Focused       lipgloss.Style
	HasEvents     lipgloss.Style
	WeekdayHeader lipgloss.Style
}

// AgendaTheme styles the event list next to the calendar.
type AgendaTheme struct {
	Day    lipgloss.Style
	Time   lipgloss.Style
	Title  lipgloss.Style
	Detail lipgloss.Style
	Empty  lipgloss.Style
}

// Default returns the built-in theme used across the UI.
func Default() Theme {
	frame := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	return Theme{
		Footer: FooterTheme{
			Help:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
			Status: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
			Error:  lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		},
		Panel: PanelTheme{
			Frame:        frame,
			FocusedFrame: frame.BorderForeground(lipgloss.Color("63")),
			Title:        lipgloss.NewStyle().Bold(true),
		},
		Calendar: CalendarTheme{
			Header:        lipgloss.NewStyle().Bold(true),
			Nav:           lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
			NavFocused:    lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("63")),
			Day:           lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
			OtherMonth:    lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
			CurrentWeek:   lipgloss.NewStyle().Background(lipgloss.Color("236")),
			Today:         lipgloss.NewStyle().Underline(true).Bold(true),
			Selected:      lipgloss.NewStyle().Background(lipgloss.Color("63")).Foreground(lipgloss.Color("0")),
			Focused:       lipgloss.NewStyle().Reverse(true),
			HasEvents:     lipgloss.NewStyle().Foreground(lipgloss.Color("212")),
			WeekdayHeader: lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Bold(true),
		},
		Agenda: AgendaTheme{
			Day:    lipgloss.NewStyle().Bold(true).Underline(true),
			Time:   lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
			Title:  lipgloss.NewStyle(),
			Detail: lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
			Empty:  lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		},
	}
}

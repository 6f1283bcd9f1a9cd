// Package planner hosts the Bubble Tea program for the weekly planner.
package planner

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/v2/help"
	"github.com/charmbracelet/bubbles/v2/key"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/muesli/reflow/truncate"

	"tableflip.dev/planner/pkg/app"
	"tableflip.dev/planner/pkg/datenav"
	"tableflip.dev/planner/pkg/event"
	"tableflip.dev/planner/pkg/focus"
	"tableflip.dev/planner/pkg/log"
	"tableflip.dev/planner/pkg/store"
	"tableflip.dev/planner/pkg/todo"
	"tableflip.dev/planner/pkg/tui/components/calendar"
	"tableflip.dev/planner/pkg/tui/theme"
)

type zone int

const (
	zoneHeader zone = iota
	zoneGrid
	zoneAgenda
	zoneCount
)

func (z zone) String() string {
	switch z {
	case zoneHeader:
		return "header"
	case zoneGrid:
		return "grid"
	case zoneAgenda:
		return "agenda"
	default:
		return "unknown"
	}
}

var errNoService = errors.New("planner: no service configured")

const (
	minAgendaWidth = 28
	defaultAgenda  = 44
)

type agendaLoadedMsg struct {
	seq    int
	agenda *app.Agenda
	marks  map[string]bool
	err    error
}

type watchStartedMsg struct {
	ch     <-chan store.Change
	cancel context.CancelFunc
	err    error
}

type watchChangeMsg struct {
	change store.Change
}

type watchStoppedMsg struct{}

// Model is the planner screen: a month grid with a roving focus and the
// agenda of the anchored week or selected day.
type Model struct {
	ctx    context.Context
	svc    *app.Service
	cursor *datenav.Cursor
	focus  *focus.Controller
	grid   []datenav.MonthDay

	zone zone
	nav  calendar.NavControl

	agenda       *app.Agenda
	marks        map[string]bool
	agendaOffset int
	loadSeq      int
	loading      bool
	err          error

	keys  keyMap
	help  help.Model
	theme theme.Theme

	width  int
	height int

	watchCh     <-chan store.Change
	watchCancel context.CancelFunc
}

// Option configures a Model.
type Option func(*Model)

// WithContext bounds background loads and the store watch.
func WithContext(ctx context.Context) Option {
	return func(m *Model) { m.ctx = ctx }
}

// WithCursor replaces the default cursor anchored on today.
func WithCursor(c *datenav.Cursor) Option {
	return func(m *Model) { m.cursor = c }
}

// WithTheme overrides the default styles.
func WithTheme(th theme.Theme) Option {
	return func(m *Model) { m.theme = th }
}

// New builds the planner model. Focus starts on the selected day, else today,
// else the first cell.
func New(svc *app.Service, opts ...Option) *Model {
	m := &Model{
		ctx:   context.Background(),
		svc:   svc,
		zone:  zoneGrid,
		keys:  defaultKeys(),
		help:  help.New(),
		theme: theme.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.cursor == nil {
		m.cursor = datenav.New()
	}
	m.focus = focus.New(m.onFocus)
	m.refreshGrid()
	m.focus.Initialize(m.grid)
	return m
}

// onFocus runs whenever the controller moves focus onto a cell.
func (m *Model) onFocus(int) {
	m.zone = zoneGrid
	m.nav = calendar.NavNone
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.loadAgenda(), startWatchCmd(m.ctx, m.svc))
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case agendaLoadedMsg:
		if msg.seq != m.loadSeq {
			// A newer load is in flight.
			break
		}
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.agenda = msg.agenda
			m.marks = msg.marks
			m.agendaOffset = 0
		}
	case watchStartedMsg:
		if msg.err != nil {
			log.Error("planner: watch unavailable", msg.err)
			break
		}
		m.watchCh = msg.ch
		m.watchCancel = msg.cancel
		cmds = append(cmds, m.waitForWatch())
	case watchChangeMsg:
		log.Debug("planner: store changed", "type", msg.change.Type, "month", msg.change.Month)
		cmds = append(cmds, m.loadAgenda(), m.waitForWatch())
	case watchStoppedMsg:
		m.stopWatch()
		if m.ctx.Err() == nil {
			cmds = append(cmds, startWatchCmd(m.ctx, m.svc))
		}
	case tea.KeyPressMsg:
		cmds = append(cmds, m.handleKey(msg))
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.stopWatch()
		return tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return nil
	case key.Matches(msg, m.keys.Zone):
		m.cycleZone(msg.String() == "shift+tab")
		return nil
	case key.Matches(msg, m.keys.NextWeek):
		m.cursor.NextWeek()
		return m.anchorChanged()
	case key.Matches(msg, m.keys.PrevWeek):
		m.cursor.PreviousWeek()
		return m.anchorChanged()
	case key.Matches(msg, m.keys.Today):
		m.cursor.Today()
		return m.anchorChanged()
	case key.Matches(msg, m.keys.Clear):
		if _, ok := m.cursor.Selected(); !ok {
			return nil
		}
		m.cursor.ClearSelection()
		return m.anchorChanged()
	}

	switch m.zone {
	case zoneHeader:
		return m.handleHeaderKey(msg)
	case zoneGrid:
		return m.handleGridKey(msg)
	case zoneAgenda:
		m.handleAgendaKey(msg)
	}
	return nil
}

func (m *Model) handleHeaderKey(msg tea.KeyPressMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Left):
		m.nav = calendar.NavPrevious
		return m.changeMonth(-1, true)
	case key.Matches(msg, m.keys.Right):
		m.nav = calendar.NavNext
		return m.changeMonth(1, true)
	case key.Matches(msg, m.keys.Activate):
		switch m.nav {
		case calendar.NavPrevious:
			return m.changeMonth(-1, true)
		case calendar.NavNext:
			return m.changeMonth(1, true)
		}
	case key.Matches(msg, m.keys.Down):
		m.zone = zoneGrid
		m.nav = calendar.NavNone
	}
	return nil
}

func (m *Model) handleGridKey(msg tea.KeyPressMsg) tea.Cmd {
	dir, isArrow := m.direction(msg)
	switch {
	case isArrow:
		before := m.cursor.WeekStart()
		m.focus.HandleArrow(dir, m.focus.Index(), m.grid, focus.MonthChange{
			Previous: func() []datenav.MonthDay {
				m.cursor.PreviousMonth()
				return m.refreshGrid()
			},
			Next: func() []datenav.MonthDay {
				m.cursor.NextMonth()
				return m.refreshGrid()
			},
		})
		if !m.cursor.WeekStart().Equal(before) {
			return m.loadAgenda()
		}
	case key.Matches(msg, m.keys.Activate):
		var cmd tea.Cmd
		m.focus.HandleActivate(m.focus.Index(), func(cell int) {
			cmd = m.toggle(cell)
		})
		return cmd
	case key.Matches(msg, m.keys.PrevMonth):
		return m.changeMonth(-1, false)
	case key.Matches(msg, m.keys.NextMonth):
		return m.changeMonth(1, false)
	}
	return nil
}

func (m *Model) handleAgendaKey(msg tea.KeyPressMsg) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.agendaOffset > 0 {
			m.agendaOffset--
		}
	case key.Matches(msg, m.keys.Down):
		m.agendaOffset++
	}
}

func (m *Model) direction(msg tea.KeyPressMsg) (focus.Direction, bool) {
	switch {
	case key.Matches(msg, m.keys.Left):
		return focus.Left, true
	case key.Matches(msg, m.keys.Right):
		return focus.Right, true
	case key.Matches(msg, m.keys.Up):
		return focus.Up, true
	case key.Matches(msg, m.keys.Down):
		return focus.Down, true
	}
	return 0, false
}

// toggle selects or deselects the day in cell.
func (m *Model) toggle(cell int) tea.Cmd {
	if cell < 0 || cell >= len(m.grid) {
		return nil
	}
	m.focus.HandleClick(m.grid[cell], m.grid, focus.Selection{
		Select: func(d datenav.MonthDay) []datenav.MonthDay {
			m.cursor.Select(d.Date)
			return m.refreshGrid()
		},
		Deselect: func() []datenav.MonthDay {
			m.cursor.ClearSelection()
			return m.refreshGrid()
		},
	})
	return m.loadAgenda()
}

func (m *Model) changeMonth(delta int, preserveTriggerFocus bool) tea.Cmd {
	day := 1
	if idx := m.focus.Index(); idx >= 0 && idx < len(m.grid) {
		day = m.grid[idx].DayNumber
	}
	if delta < 0 {
		m.cursor.PreviousMonth()
	} else {
		m.cursor.NextMonth()
	}
	m.refreshGrid()
	m.focus.HandleMonthNavigation(day, m.grid, preserveTriggerFocus)
	return m.loadAgenda()
}

// anchorChanged re-derives focus for a new grid without stealing input focus
// from the current zone.
func (m *Model) anchorChanged() tea.Cmd {
	m.refreshGrid()
	m.focus.Initialize(m.grid)
	return m.loadAgenda()
}

func (m *Model) cycleZone(reverse bool) {
	step := zone(1)
	if reverse {
		step = zoneCount - 1
	}
	m.zone = (m.zone + step) % zoneCount
	m.nav = calendar.NavNone
	if m.zone == zoneHeader {
		m.nav = calendar.NavNext
	}
}

func (m *Model) refreshGrid() []datenav.MonthDay {
	m.grid = m.cursor.MonthDays()
	return m.grid
}

// loadAgenda snapshots the cursor and fetches events off the update loop.
func (m *Model) loadAgenda() tea.Cmd {
	m.loadSeq++
	m.loading = true
	seq := m.loadSeq
	ctx := m.ctx
	svc := m.svc
	cursor := m.cursor.Clone()
	grid := append([]datenav.MonthDay(nil), m.grid...)

	return func() tea.Msg {
		if svc == nil {
			return agendaLoadedMsg{seq: seq, err: errNoService}
		}
		agenda, err := svc.Agenda(ctx, cursor)
		if err != nil {
			return agendaLoadedMsg{seq: seq, err: err}
		}
		marks := make(map[string]bool)
		if len(grid) > 0 {
			span := datenav.Range{
				Start: grid[0].Date,
				End:   datenav.EndOfDay(grid[len(grid)-1].Date),
			}
			events, err := svc.Between(ctx, span)
			if err != nil {
				return agendaLoadedMsg{seq: seq, err: err}
			}
			for _, d := range grid {
				for _, e := range events {
					if e.OverlapsDay(d.Date) {
						marks[calendar.DayKey(d.Date)] = true
						break
					}
				}
			}
		}
		log.Debug("planner: agenda loaded", "range", agenda.Range, "events", len(agenda.Events))
		return agendaLoadedMsg{seq: seq, agenda: agenda, marks: marks}
	}
}

func startWatchCmd(parent context.Context, svc *app.Service) tea.Cmd {
	if svc == nil || svc.Persistence == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithCancel(parent)
		ch, err := svc.Watch(ctx)
		if err != nil {
			cancel()
			return watchStartedMsg{err: err}
		}
		return watchStartedMsg{ch: ch, cancel: cancel}
	}
}

func (m *Model) waitForWatch() tea.Cmd {
	if m.watchCh == nil {
		return nil
	}
	ch := m.watchCh
	return func() tea.Msg {
		if c, ok := <-ch; ok {
			return watchChangeMsg{change: c}
		}
		return watchStoppedMsg{}
	}
}

func (m *Model) stopWatch() {
	if m.watchCancel != nil {
		m.watchCancel()
		m.watchCancel = nil
	}
	m.watchCh = nil
}

// View implements tea.Model.
func (m *Model) View() string {
	th := m.theme
	nav := calendar.NavNone
	if m.zone == zoneHeader {
		nav = m.nav
	}

	header := calendar.Header(m.cursor.MonthLabel(), m.cursor.WeekNumber(), nav, th.Calendar)
	grid := calendar.Render(m.grid, calendar.Options{
		Theme:       th.Calendar,
		Focus:       m.focus.Index(),
		GridFocused: m.zone == zoneGrid,
		EventDays:   m.marks,
		ShowHeader:  true,
	})
	leftFrame := th.Panel.Frame
	if m.zone != zoneAgenda {
		leftFrame = th.Panel.FocusedFrame
	}
	left := leftFrame.Render(header + "\n\n" + grid)

	agendaWidth := defaultAgenda
	if m.width > 0 {
		agendaWidth = max(m.width-lipgloss.Width(left)-5, minAgendaWidth)
	}
	rightFrame := th.Panel.Frame
	if m.zone == zoneAgenda {
		rightFrame = th.Panel.FocusedFrame
	}
	right := rightFrame.Width(agendaWidth).Render(m.renderAgenda(agendaWidth - 4))

	body := lipgloss.JoinHorizontal(lipgloss.Top, left, " ", right)
	return lipgloss.JoinVertical(lipgloss.Left, body, m.renderFooter())
}

func (m *Model) renderAgenda(width int) string {
	th := m.theme.Agenda
	title := m.agendaTitle()
	lines := []string{m.theme.Panel.Title.Render(truncate.StringWithTail(title, uint(max(width, 1)), "…")), ""}

	switch {
	case m.agenda == nil && m.loading:
		lines = append(lines, th.Empty.Render("Loading…"))
	case m.agenda == nil || len(m.agenda.Events) == 0 && len(m.agenda.Due) == 0:
		lines = append(lines, th.Empty.Render("No events"))
	default:
		var body []string
		if len(m.agenda.Events) == 0 {
			body = append(body, th.Empty.Render("No events"))
		}
		lastDay := ""
		for _, e := range m.agenda.Events {
			if m.agenda.Day == nil {
				if day := event.FormatDay(e); day != lastDay {
					if lastDay != "" {
						body = append(body, "")
					}
					body = append(body, th.Day.Render(day))
					lastDay = day
				}
			}
			when := event.FormatTime(e)
			text := truncate.StringWithTail(e.Title, uint(max(width-len(when)-1, 1)), "…")
			body = append(body, th.Time.Render(when)+" "+th.Title.Render(text))
			if e.Address != "" {
				body = append(body, th.Detail.Render(truncate.StringWithTail("  @ "+e.Address, uint(max(width, 1)), "…")))
			}
		}
		if len(m.agenda.Due) > 0 {
			body = append(body, "", th.Day.Render("Due"))
			for _, t := range m.agenda.Due {
				mark := "[ ] " + todo.FormatPriority(t)
				text := truncate.StringWithTail(t.Text, uint(max(width-len(mark)-1, 1)), "…")
				body = append(body, th.Time.Render(mark)+" "+th.Title.Render(text))
			}
		}
		if m.agendaOffset >= len(body) {
			m.agendaOffset = max(len(body)-1, 0)
		}
		lines = append(lines, body[m.agendaOffset:]...)
	}
	if m.height > 0 {
		limit := max(m.height-6, 3)
		if len(lines) > limit {
			lines = lines[:limit]
		}
	}
	return strings.Join(lines, "\n")
}

func (m *Model) agendaTitle() string {
	if sel, ok := m.cursor.Selected(); ok {
		return sel.Format("Monday, Jan 2")
	}
	days := m.cursor.WeekDays()
	return fmt.Sprintf("Week %d: %s - %s", m.cursor.WeekNumber(), days[0].ShortDate, days[len(days)-1].ShortDate)
}

func (m *Model) renderFooter() string {
	th := m.theme.Footer
	status := "focus: " + m.zone.String()
	if m.loading {
		status += " · loading"
	}
	parts := []string{th.Status.Render(status)}
	if m.err != nil {
		parts = append(parts, th.Error.Render("ERR: "+m.err.Error()))
	}
	parts = append(parts, th.Help.Render(m.help.View(m.keys)))
	return strings.Join(parts, "\n")
}

// Run launches the interactive planner.
func Run(ctx context.Context, svc *app.Service) error {
	p := tea.NewProgram(New(svc, WithContext(ctx)), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

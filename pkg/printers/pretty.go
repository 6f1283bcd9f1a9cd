package printers

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"gopkg.in/yaml.v3"

	"tableflip.dev/planner/pkg/datenav"
	"tableflip.dev/planner/pkg/event"
)

type PrettyPrint struct {
	ShowID bool
	// Out defaults to color.Output.
	Out io.Writer
}

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out != nil {
		return pp.Out
	}
	return color.Output
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out())
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)
	_, _ = t.Fprintln(pp.out(), title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int) {
	pp.TitleWithCountOf(title, count, "event", "events")
}

func (pp *PrettyPrint) TitleWithCountOf(title string, count int, one, many string) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	_, _ = t.Fprint(pp.out(), title)
	_, _ = c.Fprintf(pp.out(), " - %d", count)

	switch count {
	case 1:
		_, _ = c.Fprintln(pp.out(), " "+one)
	default:
		_, _ = c.Fprintln(pp.out(), " "+many)
	}
}

// Events prints one table row per event.
func (pp *PrettyPrint) Events(events ...*event.Event) {
	if len(events) == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Fprint(pp.out(), " none\n\n")
		return
	}

	y := color.New(color.FgHiYellow, color.Italic, color.Faint)
	tm := color.New(color.FgWhite)
	d := color.New(color.Faint)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 60
	for _, e := range events {
		row := []interface{}{}
		if pp.ShowID {
			row = append(row, y.Sprint(e.ID))
		}
		row = append(row, tm.Sprint(event.FormatTime(e)), e.Title)
		if e.Address != "" {
			row = append(row, d.Sprint("@ "+e.Address))
		}
		tbl.AddRow(row...)
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()
}

// Week prints each day of the anchored week with its events. When a day is
// selected only that day is printed.
func (pp *PrettyPrint) Week(c *datenav.Cursor, events []*event.Event) {
	days := c.WeekDays()
	pp.TitleWithCount(fmt.Sprintf("Week %d, %s", c.WeekNumber(), c.MonthLabel()), len(events))
	pp.NewLine()

	p := color.New(color.Bold)
	today := color.New(color.Bold, color.FgHiCyan)
	for _, d := range days {
		if _, ok := c.Selected(); ok && !d.IsSelected {
			continue
		}
		printer := p
		if d.IsToday {
			printer = today
		}
		_, _ = printer.Fprintln(pp.out(), d.FullLabel)
		pp.Events(event.FilterByDate(events, d.Date)...)
	}
}

// YAML writes v as a YAML document.
func (pp *PrettyPrint) YAML(v interface{}) error {
	enc := yaml.NewEncoder(pp.out())
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

// WeekDoc is the structured form of a week listing.
type WeekDoc struct {
	Week  int      `json:"week" yaml:"week"`
	Month string   `json:"month" yaml:"month"`
	Days  []DayDoc `json:"days" yaml:"days"`
}

type DayDoc struct {
	Date     string         `json:"date" yaml:"date"`
	Label    string         `json:"label" yaml:"label"`
	Today    bool           `json:"today,omitempty" yaml:"today,omitempty"`
	Selected bool           `json:"selected,omitempty" yaml:"selected,omitempty"`
	Events   []EventSummary `json:"events" yaml:"events"`
}

type EventSummary struct {
	ID      string `json:"id" yaml:"id"`
	Title   string `json:"title" yaml:"title"`
	Time    string `json:"time" yaml:"time"`
	Address string `json:"address,omitempty" yaml:"address,omitempty"`
}

// NewWeekDoc builds the structured week listing used for json and yaml output.
func NewWeekDoc(c *datenav.Cursor, events []*event.Event) WeekDoc {
	doc := WeekDoc{Week: c.WeekNumber(), Month: c.MonthLabel()}
	for _, d := range c.WeekDays() {
		day := DayDoc{
			Date:     d.Date.Format("2006-01-02"),
			Label:    d.FullLabel,
			Today:    d.IsToday,
			Selected: d.IsSelected,
			Events:   []EventSummary{},
		}
		for _, e := range event.FilterByDate(events, d.Date) {
			day.Events = append(day.Events, EventSummary{
				ID:      e.ID,
				Title:   e.Title,
				Time:    event.FormatTime(e),
				Address: strings.TrimSpace(e.Address),
			})
		}
		doc.Days = append(doc.Days, day)
	}
	return doc
}

// JSON writes v as indented JSON.
func (pp *PrettyPrint) JSON(v interface{}) error {
	enc := json.NewEncoder(pp.out())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

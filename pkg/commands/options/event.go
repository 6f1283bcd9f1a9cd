package options

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"tableflip.dev/planner/pkg/app"
	"tableflip.dev/planner/pkg/datenav"
)

var timeLayouts = []string{
	"2006-01-02 15:04",
	"2006-01-02T15:04",
	"2006-1-2 15:04",
	time.RFC3339,
}

var dateLayouts = []string{
	"2006-01-02",
	"2006-1-2",
}

// EventOptions carries the fields of an event given on the command line.
type EventOptions struct {
	Title   string
	Content string
	Address string
	Start   string
	End     string
	AllDay  bool
}

func AddEventArgs(cmd *cobra.Command, o *EventOptions) {
	cmd.Flags().StringVarP(&o.Title, "title", "t", "",
		"Event title.")
	cmd.Flags().StringVar(&o.Content, "content", "",
		"Longer description of the event.")
	cmd.Flags().StringVar(&o.Address, "address", "",
		"Where the event takes place.")
	cmd.Flags().StringVar(&o.Start, "start", "",
		`Start time, example: --start="2024-06-07 09:00", or a date with --all-day.`)
	cmd.Flags().StringVar(&o.End, "end", "",
		`End time, example: --end="2024-06-07 10:00". Defaults to one hour after start.`)
	cmd.Flags().BoolVar(&o.AllDay, "all-day", false,
		"The event covers whole days; --start and --end are dates.")
}

// ParseTime accepts a date and time, or a bare date. dateOnly reports which.
func ParseTime(s string) (t time.Time, dateOnly bool, err error) {
	for _, layout := range timeLayouts {
		if t, err = time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, false, nil
		}
	}
	for _, layout := range dateLayouts {
		if t, err = time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, true, nil
		}
	}
	return time.Time{}, false, fmt.Errorf("can not parse time %q", s)
}

// Times resolves --start and --end. All-day events span from the start date's
// midnight to the last millisecond of the end date.
func (o *EventOptions) Times() (time.Time, time.Time, error) {
	if o.Start == "" {
		return time.Time{}, time.Time{}, errors.New("--start is required")
	}
	start, _, err := ParseTime(o.Start)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if o.AllDay {
		start = datenav.StripTime(start)
		endDay := start
		if o.End != "" {
			if endDay, _, err = ParseTime(o.End); err != nil {
				return time.Time{}, time.Time{}, err
			}
		}
		return start, datenav.EndOfDay(endDay), nil
	}
	if o.End == "" {
		return start, start.Add(time.Hour), nil
	}
	end, _, err := ParseTime(o.End)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, end, nil
}

// Patch collects only the flags set on the command line.
func (o *EventOptions) Patch(flags *pflag.FlagSet) (app.Patch, error) {
	var p app.Patch
	if flags.Changed("title") {
		p.Title = &o.Title
	}
	if flags.Changed("content") {
		p.Content = &o.Content
	}
	if flags.Changed("address") {
		p.Address = &o.Address
	}
	if flags.Changed("all-day") {
		p.AllDay = &o.AllDay
	}
	if flags.Changed("start") {
		t, _, err := ParseTime(o.Start)
		if err != nil {
			return p, err
		}
		if o.AllDay {
			t = datenav.StripTime(t)
		}
		p.Start = &t
	}
	if flags.Changed("end") {
		t, dateOnly, err := ParseTime(o.End)
		if err != nil {
			return p, err
		}
		if o.AllDay || dateOnly {
			t = datenav.EndOfDay(t)
		}
		p.End = &t
	}
	return p, nil
}

package week

import (
	"context"
	"errors"
	"io"
	"time"

	"tableflip.dev/planner/pkg/app"
	"tableflip.dev/planner/pkg/datenav"
	"tableflip.dev/planner/pkg/printers"
)

// Week prints the agenda for one week, or for one day of it.
type Week struct {
	// On anchors the week; nil means today.
	On *time.Time
	// Day narrows the listing to On instead of its whole week.
	Day      bool
	Offset   int
	ShowID   bool
	Encoding string

	Service *app.Service
	Out     io.Writer
	Now     func() time.Time
}

func (w *Week) Do(ctx context.Context) error {
	if w.Service == nil {
		return errors.New("can not list week, no service")
	}
	c := w.cursor()
	agenda, err := w.Service.Agenda(ctx, c)
	if err != nil {
		return err
	}

	pp := printers.PrettyPrint{ShowID: w.ShowID, Out: w.Out}
	switch w.Encoding {
	case "json":
		return pp.JSON(printers.NewWeekDoc(c, agenda.Events))
	case "yaml":
		return pp.YAML(printers.NewWeekDoc(c, agenda.Events))
	default:
		pp.Week(c, agenda.Events)
		return nil
	}
}

func (w *Week) cursor() *datenav.Cursor {
	var opts []datenav.Option
	if w.Now != nil {
		opts = append(opts, datenav.WithClock(w.Now))
	}
	if w.On != nil {
		opts = append(opts, datenav.WithAnchor(*w.On))
	}
	c := datenav.New(opts...)

	for i := 0; i < w.Offset; i++ {
		c.NextWeek()
	}
	for i := 0; i > w.Offset; i-- {
		c.PreviousWeek()
	}
	if w.Day && w.On != nil && w.Offset == 0 {
		c.Select(*w.On)
	}
	return c
}

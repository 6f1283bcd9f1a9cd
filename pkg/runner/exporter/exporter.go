package exporter

import (
	"context"
	"errors"
	"io"
	"os"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/planner/pkg/app"
	"tableflip.dev/planner/pkg/datenav"
	"tableflip.dev/planner/pkg/event"
	"tableflip.dev/planner/pkg/ics"
	"tableflip.dev/planner/pkg/log"
)

// Export writes events as iCalendar, either every stored event or the month
// holding On.
type Export struct {
	On   *time.Time
	All  bool
	Path string

	Service *app.Service
	Out     io.Writer
	Now     func() time.Time
}

func (n *Export) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not export, no service")
	}

	var (
		events []*event.Event
		err    error
	)
	if n.All {
		events, err = n.Service.All(ctx)
	} else {
		events, err = n.Service.Between(ctx, n.monthRange())
	}
	if err != nil {
		return err
	}

	w := n.Out
	if w == nil {
		w = color.Output
	}
	if n.Path != "" && n.Path != "-" {
		f, err := os.Create(n.Path)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}

	if err := ics.Export(w, events); err != nil {
		return err
	}
	log.Info("export finished", "path", n.Path, "events", len(events))
	return nil
}

func (n *Export) monthRange() datenav.Range {
	on := time.Now()
	if n.Now != nil {
		on = n.Now()
	}
	if n.On != nil {
		on = *n.On
	}
	return datenav.Range{
		Start: datenav.Date(on.Year(), on.Month(), 1, on.Location()),
		End:   datenav.EndOfDay(datenav.Date(on.Year(), on.Month()+1, 0, on.Location())),
	}
}

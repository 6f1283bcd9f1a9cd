package month

import (
	"context"
	"errors"
	"io"
	"time"

	"tableflip.dev/planner/pkg/app"
	"tableflip.dev/planner/pkg/datenav"
	"tableflip.dev/planner/pkg/printers"
)

// Month prints the month grid with event days highlighted.
type Month struct {
	On     *time.Time
	Offset int

	Service *app.Service
	Out     io.Writer
	Now     func() time.Time
}

func (m *Month) Do(ctx context.Context) error {
	if m.Service == nil {
		return errors.New("can not show month, no service")
	}

	var opts []datenav.Option
	if m.Now != nil {
		opts = append(opts, datenav.WithClock(m.Now))
	}
	if m.On != nil {
		opts = append(opts, datenav.WithAnchor(*m.On))
	}
	c := datenav.New(opts...)
	for i := 0; i < m.Offset; i++ {
		c.NextMonth()
	}
	for i := 0; i > m.Offset; i-- {
		c.PreviousMonth()
	}

	events, err := m.Service.Between(ctx, GridRange(c.MonthDays()))
	if err != nil {
		return err
	}

	pp := printers.PrettyPrint{Out: m.Out}
	pp.Month(c, events)
	return nil
}

// GridRange spans every cell of a month grid.
func GridRange(days []datenav.MonthDay) datenav.Range {
	if len(days) == 0 {
		return datenav.Range{}
	}
	last := days[len(days)-1].Date
	return datenav.Range{
		Start: days[0].Date,
		End:   datenav.EndOfDay(last),
	}
}

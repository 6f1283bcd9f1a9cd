package add

import (
	"context"
	"errors"
	"io"
	"time"

	"tableflip.dev/planner/pkg/app"
	"tableflip.dev/planner/pkg/event"
	"tableflip.dev/planner/pkg/printers"
)

type Add struct {
	Title   string
	Content string
	Address string
	Start   time.Time
	End     time.Time
	AllDay  bool

	Service *app.Service
	Out     io.Writer
}

func (n *Add) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not add, no service")
	}

	e := event.New(n.Title, n.Start, n.End)
	e.Content = n.Content
	e.Address = n.Address
	e.AllDay = n.AllDay

	added, err := n.Service.Add(ctx, e)
	if err != nil {
		return err
	}

	pp := printers.PrettyPrint{ShowID: true, Out: n.Out}
	pp.Title(event.FormatDay(added))
	pp.Events(added)
	return nil
}

package edit

import (
	"context"
	"errors"
	"io"

	"tableflip.dev/planner/pkg/app"
	"tableflip.dev/planner/pkg/event"
	"tableflip.dev/planner/pkg/printers"
)

// Edit applies a partial update to one event.
type Edit struct {
	ID    string
	Patch app.Patch

	Service *app.Service
	Out     io.Writer
}

func (n *Edit) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not edit, no service")
	}
	if n.ID == "" {
		return errors.New("an event id is required")
	}

	updated, err := n.Service.Update(ctx, n.ID, n.Patch)
	if err != nil {
		return err
	}

	pp := printers.PrettyPrint{ShowID: true, Out: n.Out}
	pp.Title(event.FormatDay(updated))
	pp.Events(updated)
	return nil
}

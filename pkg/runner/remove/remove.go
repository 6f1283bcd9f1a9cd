package remove

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/planner/pkg/app"
)

// Remove deletes events by id.
type Remove struct {
	IDs []string

	Service *app.Service
	Out     io.Writer
}

func (n *Remove) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not remove, no service")
	}
	if len(n.IDs) == 0 {
		return errors.New("at least one event id is required")
	}

	out := n.Out
	if out == nil {
		out = color.Output
	}
	f := color.New(color.Faint)
	for _, id := range n.IDs {
		if err := n.Service.Delete(ctx, id); err != nil {
			return fmt.Errorf("remove %s: %w", id, err)
		}
		_, _ = f.Fprintf(out, "removed %s\n", id)
	}
	return nil
}

package importer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"tableflip.dev/planner/pkg/app"
	"tableflip.dev/planner/pkg/ics"
	"tableflip.dev/planner/pkg/log"
	"tableflip.dev/planner/pkg/printers"
)

// Import loads events from an iCalendar file. Events keep an ID derived from
// their UID, so importing the same file again updates them in place.
type Import struct {
	Path string

	Service *app.Service
	Out     io.Writer
}

func (n *Import) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not import, no service")
	}

	f, err := os.Open(n.Path)
	if err != nil {
		return err
	}
	defer f.Close()

	events, err := ics.Import(f)
	if err != nil {
		return err
	}

	stored := 0
	for _, e := range events {
		if _, err := n.Service.Add(ctx, e); err != nil {
			return fmt.Errorf("import %q: %w", e.Title, err)
		}
		stored++
	}
	log.Info("import finished", "path", n.Path, "events", stored)

	pp := printers.PrettyPrint{ShowID: true, Out: n.Out}
	pp.TitleWithCount("Imported "+n.Path, stored)
	pp.Events(events...)
	return nil
}

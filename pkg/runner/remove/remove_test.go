package remove

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/planner/pkg/app"
	"tableflip.dev/planner/pkg/event"
	"tableflip.dev/planner/pkg/store"
)

type dirConfig string

func (d dirConfig) BasePath() string { return string(d) }

func TestRemove(t *testing.T) {
	color.NoColor = true
	p, err := store.Load(dirConfig(t.TempDir()))
	if err != nil {
		t.Fatalf("load store: %v", err)
	}
	svc := &app.Service{Persistence: p}
	e, err := svc.Add(context.Background(), event.New("Gone", time.Date(2024, time.June, 7, 9, 0, 0, 0, time.UTC), time.Date(2024, time.June, 7, 10, 0, 0, 0, time.UTC)))
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	var buf bytes.Buffer
	n := Remove{IDs: []string{e.ID}, Service: svc, Out: &buf}
	if err := n.Do(context.Background()); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if buf.String() != "removed "+e.ID+"\n" {
		t.Fatalf("unexpected output %q", buf.String())
	}
	if _, err := p.Get(context.Background(), e.ID); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	if err := n.Do(context.Background()); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected not found on second remove, got %v", err)
	}
}

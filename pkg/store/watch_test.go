package store

import (
	"context"
	"testing"
	"time"

	"tableflip.dev/planner/pkg/event"
)

type testConfig struct {
	path string
}

func (t testConfig) BasePath() string {
	return t.path
}

func TestPersistenceWatchEmitsMonthChanges(t *testing.T) {
	base := t.TempDir()
	p, err := Load(testConfig{path: base})
	if err != nil {
		t.Fatalf("load persistence: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := p.Watch(ctx)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}

	// Allow watcher goroutine to subscribe to directories before storing.
	time.Sleep(50 * time.Millisecond)

	start := time.Date(2024, time.June, 7, 9, 0, 0, 0, time.UTC)
	e := event.New("Standup", start, start.Add(15*time.Minute))
	if err := p.Store(e); err != nil {
		t.Fatalf("store event: %v", err)
	}

	deadline := time.After(2 * time.Second)
	for {
		select {
		case c := <-ch:
			if c.Type == ChangeInvalidated {
				return
			}
			if c.Type == ChangeMonth {
				if c.Month != "2024-06" {
					t.Fatalf("expected month 2024-06, got %q", c.Month)
				}
				return
			}
		case <-deadline:
			t.Fatal("timed out waiting for change notification")
		}
	}
}

func TestWatchClosesOnCancel(t *testing.T) {
	p, err := Load(testConfig{path: t.TempDir()})
	if err != nil {
		t.Fatalf("load persistence: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	ch, err := p.Watch(ctx)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}
	cancel()

	deadline := time.After(2 * time.Second)
	for {
		select {
		case _, ok := <-ch:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("watch channel not closed after cancel")
		}
	}
}

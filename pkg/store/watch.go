package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"tableflip.dev/planner/pkg/log"
)

// ChangeType describes the nature of a persistence change notification.
type ChangeType int

const (
	// ChangeMonth indicates events bucketed under Month ("2024-06") were
	// added, edited, or removed.
	ChangeMonth ChangeType = iota

	// ChangeInvalidated signals a change that could not be attributed to a
	// month; callers should refresh everything they show.
	ChangeInvalidated
)

// Change is emitted by Persistence.Watch when underlying storage changes.
type Change struct {
	Type  ChangeType
	Month string
}

// Watch streams change notifications until ctx is cancelled. Callers should
// drain the returned channel; notifications are dropped rather than block the
// watcher. The channel is closed once ctx is done or the watcher fails.
func (p *persistence) Watch(ctx context.Context) (<-chan Change, error) {
	if p.basePath == "" {
		return nil, errors.New("store: persistence base path unknown")
	}

	if err := os.MkdirAll(p.basePath, 0o755); err != nil {
		return nil, fmt.Errorf("store: ensure base path: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("store: create watcher: %w", err)
	}
	var closeOnce sync.Once
	closeWatcher := func() {
		closeOnce.Do(func() {
			if err := watcher.Close(); err != nil {
				log.Error("store: watcher close", err)
			}
		})
	}

	dirs, err := collectDirs(p.basePath)
	if err != nil {
		closeWatcher()
		return nil, fmt.Errorf("store: enumerate directories: %w", err)
	}

	for _, dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			closeWatcher()
			return nil, fmt.Errorf("store: watch %s: %w", dir, err)
		}
	}

	changes := make(chan Change, 64)

	go func() {
		var (
			sendMu sync.Mutex
			closed bool
		)
		defer func() {
			sendMu.Lock()
			closed = true
			close(changes)
			sendMu.Unlock()
		}()
		defer closeWatcher()

		watched := make(map[string]struct{}, len(dirs))
		for _, dir := range dirs {
			watched[dir] = struct{}{}
		}

		// The throttle flushes from its own timer goroutine, so sends are
		// serialized against closing the channel.
		send := func(c Change) {
			sendMu.Lock()
			defer sendMu.Unlock()
			if closed {
				return
			}
			select {
			case changes <- c:
			default:
				// Consumer is busy; the next refresh picks this up.
			}
		}

		throttle := newChangeThrottle(100 * time.Millisecond)
		defer throttle.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Error("store: watcher", err)
				throttle.Enqueue(Change{Type: ChangeInvalidated}, send)
			case evt, ok := <-watcher.Events:
				if !ok {
					return
				}

				if evt.Op&fsnotify.Create == fsnotify.Create {
					// New year or month buckets need their own watch.
					if info, err := os.Stat(evt.Name); err == nil && info.IsDir() {
						absDir := filepath.Clean(evt.Name)
						if _, found := watched[absDir]; !found {
							if err := watcher.Add(absDir); err != nil {
								log.Error("store: watch directory", err, "dir", absDir)
							} else {
								watched[absDir] = struct{}{}
							}
						}
						throttle.Enqueue(Change{Type: ChangeInvalidated}, send)
						continue
					}
				}

				month := p.monthForPath(evt.Name)
				if month == "" {
					throttle.Enqueue(Change{Type: ChangeInvalidated}, send)
					continue
				}

				throttle.Enqueue(Change{Type: ChangeMonth, Month: month}, send)
			}
		}
	}()

	return changes, nil
}

// collectDirs walks base and returns all directories that should be watched.
func collectDirs(base string) ([]string, error) {
	dirs := []string{base}
	err := filepath.WalkDir(base, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		if d.IsDir() && path != base {
			dirs = append(dirs, path)
		}
		return nil
	})
	return dirs, err
}

// monthForPath maps base/yyyy/mm/id onto "yyyy-mm".
func (p *persistence) monthForPath(path string) string {
	rel, err := filepath.Rel(p.basePath, path)
	if err != nil || rel == "." {
		return ""
	}
	parts := strings.Split(rel, string(os.PathSeparator))
	if len(parts) < 3 || len(parts[0]) != 4 || len(parts[1]) != 2 {
		return ""
	}
	return parts[0] + "-" + parts[1]
}

// changeThrottle coalesces rapid notifications so the UI reloads once per
// burst of filesystem activity.
type changeThrottle struct {
	mu      sync.Mutex
	timer   *time.Timer
	pending map[ChangeType]map[string]struct{}
	delay   time.Duration
}

func newChangeThrottle(delay time.Duration) *changeThrottle {
	return &changeThrottle{
		delay:   delay,
		pending: make(map[ChangeType]map[string]struct{}),
	}
}

func (t *changeThrottle) Enqueue(c Change, send func(Change)) {
	t.mu.Lock()
	if t.pending[c.Type] == nil {
		t.pending[c.Type] = make(map[string]struct{})
	}
	t.pending[c.Type][c.Month] = struct{}{}

	if t.timer == nil {
		t.timer = time.AfterFunc(t.delay, func() {
			t.flush(send)
		})
	}
	t.mu.Unlock()
}

func (t *changeThrottle) flush(send func(Change)) {
	t.mu.Lock()
	pending := t.pending
	t.pending = make(map[ChangeType]map[string]struct{})
	t.timer = nil
	t.mu.Unlock()

	for changeType, months := range pending {
		if changeType == ChangeInvalidated {
			send(Change{Type: ChangeInvalidated})
			continue
		}
		for month := range months {
			send(Change{Type: changeType, Month: month})
		}
	}
}

func (t *changeThrottle) Stop() {
	t.mu.Lock()
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.mu.Unlock()
}

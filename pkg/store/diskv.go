package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/peterbourgon/diskv/v3"

	"tableflip.dev/planner/pkg/datenav"
	"tableflip.dev/planner/pkg/event"
	"tableflip.dev/planner/pkg/log"
)

// ErrNotFound is returned when no event or to-do has the requested ID.
var ErrNotFound = errors.New("store: not found")

// Persistence defines the persistence contract for calendar events.
type Persistence interface {
	// Range lists events overlapping r, sorted by start.
	Range(ctx context.Context, r datenav.Range) []*event.Event
	All(ctx context.Context) []*event.Event
	Get(ctx context.Context, id string) (*event.Event, error)
	Store(e *event.Event) error
	Delete(id string) error
	Watch(ctx context.Context) (<-chan Change, error)
}

// Load creates a Persistence backed by diskv using the provided config.
func Load(cfg Config) (Persistence, error) {
	return open(cfg)
}

func open(cfg Config) (*persistence, error) {
	if cfg == nil {
		fc, err := LoadConfig()
		if err != nil {
			return nil, err
		}
		cfg = fc
	}

	basePath := cfg.BasePath()
	if basePath == "" {
		return nil, errors.New("store: base path unknown")
	}
	return &persistence{d: diskv.New(diskv.Options{
		BasePath:          basePath,
		AdvancedTransform: keyToPathTransform,
		InverseTransform:  pathToKeyTransform,
		CacheSizeMax:      1024 * 1024, // 1MB
	}), basePath: basePath}, nil
}

type persistence struct {
	d        *diskv.Diskv
	basePath string
}

func (p *persistence) read(key string) (*event.Event, error) {
	val, err := p.d.Read(key)
	if err != nil {
		return nil, err
	}
	e := &event.Event{}
	if err := json.Unmarshal(val, e); err != nil {
		return nil, err
	}
	e.ID = keyToPathTransform(key).FileName
	return e, nil
}

func (p *persistence) All(ctx context.Context) []*event.Event {
	all := make([]*event.Event, 0)
	for key := range p.d.Keys(ctx.Done()) {
		if _, ok := bucketOf(key); !ok {
			continue
		}
		e, err := p.read(key)
		if err != nil {
			log.Error("store: read event", err, "key", key)
			continue
		}
		all = append(all, e)
	}
	event.Sort(all)
	return all
}

// Range skips buckets that start after r without reading them. Earlier
// buckets are still read, since an event can run for months past its start.
func (p *persistence) Range(ctx context.Context, r datenav.Range) []*event.Event {
	all := make([]*event.Event, 0)
	last := bucketFor(r.End)
	for key := range p.d.Keys(ctx.Done()) {
		bucket, ok := bucketOf(key)
		if !ok || bucket > last {
			continue
		}
		e, err := p.read(key)
		if err != nil {
			log.Error("store: read event", err, "key", key)
			continue
		}
		if e.Overlaps(r.Start, r.End) {
			all = append(all, e)
		}
	}
	event.Sort(all)
	return all
}

func (p *persistence) Get(ctx context.Context, id string) (*event.Event, error) {
	key, ok := p.keyFor(ctx, id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return p.read(key)
}

// Store writes e under its start month. An event whose start moved to another
// month is erased from its old bucket once the new copy is on disk.
func (p *persistence) Store(e *event.Event) error {
	if err := checkID(e.ID); err != nil {
		return err
	}
	if err := e.Validate(); err != nil {
		return err
	}
	if e.Created.IsZero() {
		e.Created = time.Now().UTC()
	}
	key := toKey(e)
	old, moved := p.keyFor(context.Background(), e.ID)
	data, err := json.Marshal(e)
	if err != nil {
		return err
	}
	if err := p.d.Write(key, data); err != nil {
		return err
	}
	if moved && old != key {
		if err := p.d.Erase(old); err != nil {
			return fmt.Errorf("store: move event: %w", err)
		}
	}
	return nil
}

func (p *persistence) Delete(id string) error {
	key, ok := p.keyFor(context.Background(), id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return p.d.Erase(key)
}

func (p *persistence) keyFor(ctx context.Context, id string) (string, bool) {
	if checkID(id) != nil {
		return "", false
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	for key := range p.d.Keys(ctx.Done()) {
		if _, ok := bucketOf(key); ok && keyToPathTransform(key).FileName == id {
			return key, true
		}
	}
	return "", false
}

func checkID(id string) error {
	if strings.TrimSpace(id) == "" {
		return errors.New("store: id required")
	}
	if strings.ContainsAny(id, `/\`) || id == "." || id == ".." {
		return fmt.Errorf("store: invalid id %q", id)
	}
	return nil
}

const keySeparator = "/"

func keyToPathTransform(s string) *diskv.PathKey {
	parts := strings.Split(s, keySeparator)
	return &diskv.PathKey{
		Path:     parts[:len(parts)-1],
		FileName: parts[len(parts)-1],
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	return strings.Join(append(append([]string{}, pathKey.Path...), pathKey.FileName), keySeparator)
}

// toKey makes `yyyy/mm/id`, bucketing events by start month.
func toKey(e *event.Event) string {
	return bucketFor(e.Start) + keySeparator + e.ID
}

// bucketFor names the UTC month bucket holding t, "yyyy/mm". Buckets sort in
// time order as strings.
func bucketFor(t time.Time) string {
	t = t.UTC()
	return fmt.Sprintf("%04d%s%02d", t.Year(), keySeparator, int(t.Month()))
}

// bucketOf returns the month bucket of an event key. Keys outside the
// `yyyy/mm/id` layout, such as to-dos, are not events.
func bucketOf(key string) (string, bool) {
	parts := strings.Split(key, keySeparator)
	if len(parts) != 3 || len(parts[0]) != 4 || len(parts[1]) != 2 {
		return "", false
	}
	return parts[0] + keySeparator + parts[1], true
}

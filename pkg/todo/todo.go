// Package todo defines to-do items and the open and completed views over them.
package todo

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"tableflip.dev/planner/pkg/datenav"
)

const (
	maxText = 150
	// MaxPriority is the highest priority a to-do may carry.
	MaxPriority = 5
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("todo: invalid")

// Todo is a single to-do item. Due is optional.
type Todo struct {
	ID        string     `json:"id" yaml:"id"`
	Text      string     `json:"text" yaml:"text"`
	Completed bool       `json:"completed" yaml:"completed"`
	Due       *time.Time `json:"due_at,omitempty" yaml:"due_at,omitempty"`
	Priority  int        `json:"priority" yaml:"priority"`
	Created   time.Time  `json:"created_at,omitempty" yaml:"created_at,omitempty"`
	Updated   time.Time  `json:"updated_at,omitempty" yaml:"updated_at,omitempty"`
}

// New creates an open to-do with a fresh ID.
func New(text string) *Todo {
	now := time.Now().UTC()
	return &Todo{
		ID:      uuid.NewString(),
		Text:    strings.TrimSpace(text),
		Created: now,
		Updated: now,
	}
}

func (t *Todo) Validate() error {
	text := strings.TrimSpace(t.Text)
	switch {
	case text == "":
		return fmt.Errorf("%w: text is required", ErrInvalid)
	case utf8.RuneCountInString(text) > maxText:
		return fmt.Errorf("%w: text must be %d characters or less", ErrInvalid, maxText)
	case t.Priority < 0 || t.Priority > MaxPriority:
		return fmt.Errorf("%w: priority must be between 0 and %d", ErrInvalid, MaxPriority)
	}
	return nil
}

// Complete sets the completion state and stamps the change.
func (t *Todo) Complete(done bool) {
	t.Completed = done
	t.Updated = time.Now().UTC()
}

// Open keeps the to-dos still to be done, newest first.
func Open(todos []*Todo) []*Todo {
	out := filter(todos, func(t *Todo) bool { return !t.Completed })
	sort.SliceStable(out, func(i, j int) bool {
		return newer(out[i].Created, out[j].Created, out[i].ID, out[j].ID)
	})
	return out
}

// Completed keeps the finished to-dos, most recently finished first.
func Completed(todos []*Todo) []*Todo {
	out := filter(todos, func(t *Todo) bool { return t.Completed })
	sort.SliceStable(out, func(i, j int) bool {
		return newer(out[i].Updated, out[j].Updated, out[i].ID, out[j].ID)
	})
	return out
}

// DueIn keeps the open to-dos due inside r, earliest due first.
func DueIn(todos []*Todo, r datenav.Range) []*Todo {
	out := filter(todos, func(t *Todo) bool {
		return !t.Completed && t.Due != nil && r.Contains(*t.Due)
	})
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Due.Equal(*out[j].Due) {
			return out[i].Due.Before(*out[j].Due)
		}
		return out[i].Priority > out[j].Priority
	})
	return out
}

// FormatDue renders the due date, e.g. "due Fri Jun 7", or "" when unset.
func FormatDue(t *Todo) string {
	if t.Due == nil {
		return ""
	}
	d := t.Due.Local()
	if d.Hour() == 0 && d.Minute() == 0 {
		return "due " + d.Format("Mon Jan 2")
	}
	return "due " + d.Format("Mon Jan 2 15:04")
}

// FormatPriority renders the priority as a run of "!".
func FormatPriority(t *Todo) string {
	if t.Priority <= 0 {
		return ""
	}
	return strings.Repeat("!", min(t.Priority, MaxPriority))
}

func filter(todos []*Todo, keep func(*Todo) bool) []*Todo {
	out := make([]*Todo, 0, len(todos))
	for _, t := range todos {
		if t != nil && keep(t) {
			out = append(out, t)
		}
	}
	return out
}

func newer(a, b time.Time, aID, bID string) bool {
	if !a.Equal(b) {
		return a.After(b)
	}
	return aID < bID
}

// Package todos provides the runners behind the todo commands.
package todos

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/planner/pkg/app"
	"tableflip.dev/planner/pkg/printers"
	"tableflip.dev/planner/pkg/todo"
)

// Add stores a new to-do and prints it.
type Add struct {
	Text     string
	Due      *time.Time
	Priority int

	Service *app.Service
	Out     io.Writer
}

func (n *Add) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not add to-do, no service")
	}
	t, err := n.Service.AddTodo(ctx, n.Text, n.Due, n.Priority)
	if err != nil {
		return err
	}
	pp := printers.PrettyPrint{ShowID: true, Out: n.Out}
	pp.Todos(t)
	return nil
}

// Done marks to-dos complete, or open again with Undo, then prints what is
// still open.
type Done struct {
	IDs  []string
	Undo bool

	Service *app.Service
	Out     io.Writer
}

func (n *Done) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not complete, no service")
	}
	if len(n.IDs) == 0 {
		return errors.New("at least one to-do id is required")
	}
	for _, id := range n.IDs {
		if _, err := n.Service.CompleteTodo(ctx, id, !n.Undo); err != nil {
			return fmt.Errorf("complete %s: %w", id, err)
		}
	}
	return (&List{Service: n.Service, ShowID: true, Out: n.Out}).Do(ctx)
}

// Remove deletes to-dos by id.
type Remove struct {
	IDs []string

	Service *app.Service
	Out     io.Writer
}

func (n *Remove) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not remove to-do, no service")
	}
	if len(n.IDs) == 0 {
		return errors.New("at least one to-do id is required")
	}
	f := color.New(color.Faint)
	for _, id := range n.IDs {
		if err := n.Service.DeleteTodo(ctx, id); err != nil {
			return fmt.Errorf("remove %s: %w", id, err)
		}
		_, _ = f.Fprintf(out(n.Out), "removed %s\n", id)
	}
	return nil
}

// Clear deletes every completed to-do.
type Clear struct {
	Service *app.Service
	Out     io.Writer
}

func (n *Clear) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not clear to-dos, no service")
	}
	count, err := n.Service.ClearCompleted(ctx)
	if err != nil {
		return err
	}
	f := color.New(color.Faint)
	_, _ = f.Fprintf(out(n.Out), "cleared %d completed\n", count)
	return nil
}

// List prints open to-dos, or the completed history.
type List struct {
	// Completed lists finished to-dos, most recent first.
	Completed bool
	// All lists open then completed.
	All      bool
	ShowID   bool
	Encoding string

	Service *app.Service
	Out     io.Writer
}

func (n *List) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not list to-dos, no service")
	}
	all, err := n.Service.ListTodos(ctx)
	if err != nil {
		return err
	}

	var title string
	var shown []*todo.Todo
	switch {
	case n.All:
		title = "All"
		shown = append(todo.Open(all), todo.Completed(all)...)
	case n.Completed:
		title = "Completed"
		shown = todo.Completed(all)
	default:
		title = "To-do"
		shown = todo.Open(all)
	}

	pp := printers.PrettyPrint{ShowID: n.ShowID, Out: n.Out}
	switch n.Encoding {
	case "json":
		return pp.JSON(shown)
	case "yaml":
		return pp.YAML(shown)
	default:
		pp.TitleWithCountOf(title, len(shown), "to-do", "to-dos")
		pp.Todos(shown...)
		return nil
	}
}

func out(w io.Writer) io.Writer {
	if w != nil {
		return w
	}
	return color.Output
}

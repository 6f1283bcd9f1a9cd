package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/planner/pkg/commands/options"
	"tableflip.dev/planner/pkg/runner/todos"
	"tableflip.dev/planner/pkg/todo"
)

func addTodo(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "todo",
		Short: "manage to-dos",
		Example: `
planner todo add buy milk --due 2024-06-07 -p 2
planner todo ls
planner todo done 0b6f...
planner todo ls --completed
planner todo clear
`,
	}

	addTodoAdd(cmd)
	addTodoDone(cmd)
	addTodoRemove(cmd)
	addTodoList(cmd)
	addTodoClear(cmd)

	topLevel.AddCommand(cmd)
}

func addTodoAdd(parent *cobra.Command) {
	to := &options.TodoOptions{}

	cmd := &cobra.Command{
		Use:   "add TEXT...",
		Short: "add a to-do",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errors.New("requires the to-do text")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			due, err := to.DueTime()
			if err != nil {
				return output.HandleError(err)
			}
			svc, err := loadService()
			if err != nil {
				return output.HandleError(err)
			}
			a := todos.Add{
				Text:     strings.Join(args, " "),
				Due:      due,
				Priority: to.Priority,
				Service:  svc,
			}
			return output.HandleError(a.Do(context.Background()))
		},
	}

	options.AddTodoArgs(cmd, to)
	options.AddOutputArg(cmd, output)
	parent.AddCommand(cmd)
}

func addTodoDone(parent *cobra.Command) {
	to := &options.TodoOptions{}

	cmd := &cobra.Command{
		Use:               "done ID...",
		Aliases:           []string{"complete"},
		Short:             "mark to-dos complete",
		Args:              cobra.MinimumNArgs(1),
		ValidArgsFunction: todoCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := loadService()
			if err != nil {
				return output.HandleError(err)
			}
			d := todos.Done{IDs: args, Undo: to.Undo, Service: svc}
			return output.HandleError(d.Do(context.Background()))
		},
	}

	options.AddUndoArgs(cmd, to)
	options.AddOutputArg(cmd, output)
	parent.AddCommand(cmd)
}

func addTodoRemove(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:               "rm ID...",
		Aliases:           []string{"remove", "delete"},
		Short:             "remove to-dos",
		Args:              cobra.MinimumNArgs(1),
		ValidArgsFunction: todoCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := loadService()
			if err != nil {
				return output.HandleError(err)
			}
			r := todos.Remove{IDs: args, Service: svc}
			return output.HandleError(r.Do(context.Background()))
		},
	}

	options.AddOutputArg(cmd, output)
	parent.AddCommand(cmd)
}

func addTodoList(parent *cobra.Command) {
	to := &options.TodoOptions{}
	ids := &options.IDOptions{}
	out := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "list open to-dos, or the completed history",
		RunE: func(cmd *cobra.Command, args []string) error {
			encoding, err := out.Encoding()
			if err != nil {
				return err
			}
			svc, err := loadService()
			if err != nil {
				return out.HandleError(err)
			}
			l := todos.List{
				Completed: to.Completed,
				All:       to.All,
				ShowID:    ids.ShowID,
				Encoding:  encoding,
				Service:   svc,
			}
			return out.HandleError(l.Do(context.Background()))
		},
	}

	options.AddTodoListArgs(cmd, to)
	options.AddShowIDArgs(cmd, ids)
	options.AddOutputArg(cmd, out)
	options.AddFormatArg(cmd, out)
	parent.AddCommand(cmd)
}

func addTodoClear(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "delete every completed to-do",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := loadService()
			if err != nil {
				return output.HandleError(err)
			}
			c := todos.Clear{Service: svc}
			return output.HandleError(c.Do(context.Background()))
		},
	}

	options.AddOutputArg(cmd, output)
	parent.AddCommand(cmd)
}

// todoCompletions offers open to-do IDs with their text.
func todoCompletions(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	svc, err := loadService()
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	all, err := svc.ListTodos(context.Background())
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	out := make([]string, 0, len(all))
	for _, t := range todo.Open(all) {
		if strings.HasPrefix(t.ID, toComplete) {
			out = append(out, fmt.Sprintf("%s\t%s", t.ID, t.Text))
		}
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}

package options

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/planner/pkg/datenav"
	"tableflip.dev/planner/pkg/todo"
)

// TodoOptions holds the flags shared by the todo commands.
type TodoOptions struct {
	Due       string
	Priority  int
	Undo      bool
	Completed bool
	All       bool
}

func AddTodoArgs(cmd *cobra.Command, o *TodoOptions) {
	cmd.Flags().StringVar(&o.Due, "due", "",
		`Due date or time, example: --due="2024-06-07" or --due="2024-06-07 17:00".`)
	cmd.Flags().IntVarP(&o.Priority, "priority", "p", 0,
		fmt.Sprintf("Priority from 0 to %d.", todo.MaxPriority))
}

func AddUndoArgs(cmd *cobra.Command, o *TodoOptions) {
	cmd.Flags().BoolVar(&o.Undo, "undo", false,
		"Mark the to-dos open again.")
}

func AddTodoListArgs(cmd *cobra.Command, o *TodoOptions) {
	cmd.Flags().BoolVarP(&o.Completed, "completed", "c", false,
		"Show the completed history instead of open to-dos.")
	cmd.Flags().BoolVarP(&o.All, "all", "a", false,
		"Show open and completed to-dos.")
}

// DueTime parses --due. A bare date means the start of that day.
func (o *TodoOptions) DueTime() (*time.Time, error) {
	if o.Due == "" {
		return nil, nil
	}
	t, dateOnly, err := ParseTime(o.Due)
	if err != nil {
		return nil, err
	}
	if dateOnly {
		t = datenav.StripTime(t)
	}
	return &t, nil
}

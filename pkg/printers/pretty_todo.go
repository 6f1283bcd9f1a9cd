package printers

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/planner/pkg/todo"
)

// Todos prints one table row per to-do. Completed ones are struck through.
func (pp *PrettyPrint) Todos(todos ...*todo.Todo) {
	if len(todos) == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Fprint(pp.out(), " none\n\n")
		return
	}

	y := color.New(color.FgHiYellow, color.Italic, color.Faint)
	bang := color.New(color.FgRed, color.Bold)
	due := color.New(color.FgCyan)
	done := color.New(color.Faint, color.CrossedOut)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 60
	for _, t := range todos {
		row := []interface{}{}
		if pp.ShowID {
			row = append(row, y.Sprint(t.ID))
		}
		if t.Completed {
			row = append(row, "[x]", "", done.Sprint(t.Text))
		} else {
			row = append(row, "[ ]", bang.Sprint(todo.FormatPriority(t)), t.Text)
		}
		if d := todo.FormatDue(t); d != "" {
			row = append(row, due.Sprint(d))
		}
		tbl.AddRow(row...)
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()
}

package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/planner/pkg/commands/options"
	"tableflip.dev/planner/pkg/runner/add"
	"tableflip.dev/planner/pkg/runner/edit"
	"tableflip.dev/planner/pkg/runner/remove"
)

func addAdd(topLevel *cobra.Command) {
	eo := &options.EventOptions{}

	cmd := &cobra.Command{
		Use:   "add [title]",
		Short: "add an event",
		Example: `
planner add --title "Dentist" --start "2024-06-07 09:00" --end "2024-06-07 10:00"
planner add Holiday --start 2024-06-10 --end 2024-06-11 --all-day
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if eo.Title == "" {
				eo.Title = strings.Join(args, " ")
			}
			start, end, err := eo.Times()
			if err != nil {
				return output.HandleError(err)
			}
			svc, err := loadService()
			if err != nil {
				return output.HandleError(err)
			}
			a := add.Add{
				Title:   eo.Title,
				Content: eo.Content,
				Address: eo.Address,
				Start:   start,
				End:     end,
				AllDay:  eo.AllDay,
				Service: svc,
			}
			return output.HandleError(a.Do(context.Background()))
		},
	}

	options.AddEventArgs(cmd, eo)
	options.AddOutputArg(cmd, output)

	topLevel.AddCommand(cmd)
}

func addEdit(topLevel *cobra.Command) {
	eo := &options.EventOptions{}

	cmd := &cobra.Command{
		Use:   "edit ID",
		Short: "change fields of an event",
		Example: `
planner edit 0b6f... --title "Dentist (moved)" --start "2024-06-08 09:00" --end "2024-06-08 10:00"
`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: eventCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := eo.Patch(cmd.Flags())
			if err != nil {
				return output.HandleError(err)
			}
			svc, err := loadService()
			if err != nil {
				return output.HandleError(err)
			}
			e := edit.Edit{ID: args[0], Patch: p, Service: svc}
			return output.HandleError(e.Do(context.Background()))
		},
	}

	options.AddEventArgs(cmd, eo)
	options.AddOutputArg(cmd, output)

	topLevel.AddCommand(cmd)
}

func addRemove(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "rm ID...",
		Aliases: []string{"remove", "delete"},
		Short:   "remove events",
		Example: `
planner rm 0b6f...
`,
		Args:              cobra.MinimumNArgs(1),
		ValidArgsFunction: eventCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := loadService()
			if err != nil {
				return output.HandleError(err)
			}
			r := remove.Remove{IDs: args, Service: svc}
			return output.HandleError(r.Do(context.Background()))
		},
	}

	options.AddOutputArg(cmd, output)

	topLevel.AddCommand(cmd)
}

// eventCompletions offers stored event IDs with their titles.
func eventCompletions(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	svc, err := loadService()
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	all, err := svc.All(context.Background())
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	out := make([]string, 0, len(all))
	for _, e := range all {
		if strings.HasPrefix(e.ID, toComplete) {
			out = append(out, fmt.Sprintf("%s\t%s", e.ID, e.Title))
		}
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}

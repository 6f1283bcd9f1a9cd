package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/planner/pkg/commands/options"
	"tableflip.dev/planner/pkg/runner/month"
	"tableflip.dev/planner/pkg/runner/week"
)

func addWeek(topLevel *cobra.Command) {
	on := &options.OnOptions{}
	ids := &options.IDOptions{}
	out := &options.OutputOptions{}
	day := false

	cmd := &cobra.Command{
		Use:   "week",
		Short: "show the events of a week",
		Example: `
planner week
planner week --offset 1
planner week --on 2024-6-7 --day
planner week -o yaml
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			encoding, err := out.Encoding()
			if err != nil {
				return err
			}
			t, err := on.GetOn()
			if err != nil {
				return out.HandleError(err)
			}
			svc, err := loadService()
			if err != nil {
				return out.HandleError(err)
			}
			w := week.Week{
				On:       t,
				Day:      day,
				Offset:   on.Offset,
				ShowID:   ids.ShowID,
				Encoding: encoding,
				Service:  svc,
			}
			return out.HandleError(w.Do(context.Background()))
		},
	}

	options.AddOnArgs(cmd, on)
	options.AddOffsetArgs(cmd, on, "weeks")
	options.AddShowIDArgs(cmd, ids)
	options.AddOutputArg(cmd, out)
	options.AddFormatArg(cmd, out)
	cmd.Flags().BoolVarP(&day, "day", "d", false,
		"Only show the day given by --on.")

	topLevel.AddCommand(cmd)
}

func addMonth(topLevel *cobra.Command) {
	on := &options.OnOptions{}

	cmd := &cobra.Command{
		Use:   "month",
		Short: "show a month calendar",
		Example: `
planner month
planner month --offset -1
planner month --on 2024-12-1
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := on.GetOn()
			if err != nil {
				return err
			}
			svc, err := loadService()
			if err != nil {
				return err
			}
			m := month.Month{
				On:      t,
				Offset:  on.Offset,
				Service: svc,
			}
			return m.Do(context.Background())
		},
	}

	options.AddOnArgs(cmd, on)
	options.AddOffsetArgs(cmd, on, "months")

	topLevel.AddCommand(cmd)
}

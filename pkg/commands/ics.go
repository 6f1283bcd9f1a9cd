package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/planner/pkg/commands/options"
	"tableflip.dev/planner/pkg/runner/exporter"
	"tableflip.dev/planner/pkg/runner/importer"
)

func addImport(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "import FILE.ics",
		Short: "import events from an iCalendar file",
		Example: `
planner import ~/Downloads/holidays.ics
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := loadService()
			if err != nil {
				return output.HandleError(err)
			}
			i := importer.Import{Path: args[0], Service: svc}
			return output.HandleError(i.Do(context.Background()))
		},
	}

	options.AddOutputArg(cmd, output)

	topLevel.AddCommand(cmd)
}

func addExport(topLevel *cobra.Command) {
	on := &options.OnOptions{}
	all := false
	file := ""

	cmd := &cobra.Command{
		Use:   "export",
		Short: "export a month of events as iCalendar",
		Example: `
planner export > june.ics
planner export --on 2024-12-1 --file december.ics
planner export --all
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
			e := exporter.Export{On: t, All: all, Path: file, Service: svc}
			return e.Do(context.Background())
		},
	}

	options.AddOnArgs(cmd, on)
	cmd.Flags().BoolVar(&all, "all", false,
		"Export every stored event.")
	cmd.Flags().StringVarP(&file, "file", "f", "",
		"Write to this file instead of stdout.")

	topLevel.AddCommand(cmd)
}

package options

import (
	"github.com/spf13/cobra"
)

// LogOptions overrides the configured log settings for one run.
type LogOptions struct {
	Level string
	File  string
}

func AddLogArgs(cmd *cobra.Command, o *LogOptions) {
	cmd.PersistentFlags().StringVar(&o.Level, "log-level", "",
		"Log level: debug, info or error. Overrides log_level from config.")
	cmd.PersistentFlags().StringVar(&o.File, "log-file", "",
		"Append logs to this file. Overrides log_file from config.")
}

package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"tableflip.dev/planner/pkg/app"
	"tableflip.dev/planner/pkg/commands/options"
	"tableflip.dev/planner/pkg/log"
	"tableflip.dev/planner/pkg/store"
)

var (
	output     = &options.OutputOptions{}
	logOptions = &options.LogOptions{}
	// logToFile is set once logging has been redirected away from stderr.
	logToFile bool
)

func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "planner",
		Short: options.Wrap80("A weekly planner and month calendar on the command line."),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return configureLogging()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		SilenceUsage: true,
	}

	options.AddLogArgs(cmd, logOptions)
	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addUI(topLevel)
	addWeek(topLevel)
	addMonth(topLevel)
	addAdd(topLevel)
	addEdit(topLevel)
	addRemove(topLevel)
	addImport(topLevel)
	addExport(topLevel)
	addTodo(topLevel)
	addVersion(topLevel)
	addCompletions(topLevel)
}

func configureLogging() error {
	cfg, err := store.LoadConfig()
	if err != nil {
		return err
	}
	level := cfg.LogLevel
	if logOptions.Level != "" {
		level = logOptions.Level
	}
	log.SetLevel(log.ParseLevel(level))

	file := cfg.LogFile
	if logOptions.File != "" {
		file = logOptions.File
	}
	if file == "" {
		return nil
	}
	f, err := os.OpenFile(file, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	log.SetOutput(f)
	logToFile = true
	return nil
}

// quietLogs keeps log lines off the terminal unless a log file was set.
func quietLogs() {
	if !logToFile {
		log.SetOutput(io.Discard)
	}
}

func loadService() (*app.Service, error) {
	cfg, err := store.LoadConfig()
	if err != nil {
		return nil, err
	}
	p, err := store.Load(cfg)
	if err != nil {
		return nil, err
	}
	tp, err := store.LoadTodos(cfg)
	if err != nil {
		return nil, err
	}
	return &app.Service{Persistence: p, Todos: tp}, nil
}

package store

import (
	"errors"
	"os"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

type Config interface {
	BasePath() string
}

// FileConfig is the configuration read from .planner.yaml and PLANNER_* env.
type FileConfig struct {
	Path     string `json:"path"`
	LogLevel string `json:"log_level"`
	LogFile  string `json:"log_file"`
}

func (f *FileConfig) BasePath() string {
	return f.Path
}

// LoadConfig reads .planner.yaml from $PLANNER_CONFIG_PATH or the working
// directory. A missing file is not an error; defaults apply.
func LoadConfig() (*FileConfig, error) {
	viper.SetDefault("path", "~/.planner.db")
	viper.SetDefault("log_level", "info")
	viper.SetDefault("log_file", "")
	viper.SetConfigName(".planner") // .yaml is implicit
	viper.SetEnvPrefix("PLANNER")
	viper.AutomaticEnv()

	if override := os.Getenv("PLANNER_CONFIG_PATH"); override != "" {
		viper.AddConfigPath(override)
	}

	viper.AddConfigPath("./")

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	path, err := homedir.Expand(viper.GetString("path"))
	if err != nil {
		return nil, err
	}
	logFile, err := homedir.Expand(viper.GetString("log_file"))
	if err != nil {
		return nil, err
	}

	return &FileConfig{
		Path:     path,
		LogLevel: viper.GetString("log_level"),
		LogFile:  logFile,
	}, nil
}

package main

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kailas-cloud/reviewdex/internal/config"
	logpkg "github.com/kailas-cloud/reviewdex/internal/logger"
)

// NewRootCmd creates the trainer command with all subcommands registered.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "reviewdex-train",
		Short:         "Train and inspect reviewdex sentiment models",
		Long:          "reviewdex-train fits the review sentiment classifier offline and writes the artifacts the API server loads.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().String("config", "", "path to config file (default: config/<ENV>.yaml)")
	root.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error")

	root.AddCommand(
		newTrainCmd(),
		newPredictCmd(),
		newVersionCmd(),
	)

	return root
}

// loadConfig reads --config, or config/<ENV>.yaml when present.
// Without any file the built-in defaults apply.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		cfg, err := config.LoadFile(path)
		if err != nil {
			return config.Config{}, fmt.Errorf("load config: %w", err)
		}
		return cfg, nil
	}

	cfg, err := config.Load(config.GetEnv())
	if err == nil {
		return cfg, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	var defaults config.Config
	defaults.ApplyDefaults()
	return defaults, nil
}

func newLogger(cmd *cobra.Command, cfg config.Config) (*zap.Logger, error) {
	level, _ := cmd.Flags().GetString("log-level")
	if level == "" {
		level = cfg.Logging.Level
	}
	env := config.GetEnv()
	if env != "prod" {
		env = "local"
	}
	l, err := logpkg.NewLogger(env, level)
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}
	return l, nil
}

package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/JaimeStill/neurocore/internal/config"
	"github.com/JaimeStill/neurocore/pkg/logging"
)

var (
	configPath string
	envFile    string
	verbose    bool

	cfg    *config.Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "neuro",
	Short: "Terminal client for the neurocore agents",
	Long: `neuro runs the document and movie agents behind the supervisor from a terminal,
queries TMDB directly, seeds sample documents, and signs API tokens.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", envFile, err)
		}

		c, err := config.LoadFile(configPath)
		if err != nil {
			return err
		}
		if err := c.Finalize(); err != nil {
			return err
		}
		if verbose {
			c.Logging.Level = logging.LevelDebug
		}

		cfg = c
		logger = logging.NewWithWriter(&cfg.Logging, os.Stderr)
		return nil
	},
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.BaseConfigFile, "Path to the base configuration file")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Environment file loaded before configuration")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

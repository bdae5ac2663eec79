package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/aliskhannn/lingua/internal/config"
	"github.com/aliskhannn/lingua/internal/logger"
)

var (
	// Loaded once for every sub-command.
	cfg *config.Config
	log *zap.Logger

	migrateOnStart bool
)

var rootCmd = &cobra.Command{
	Use:           "lingua",
	Short:         "Language learning backend",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}

		log, err = logger.New(cfg)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if log != nil {
			_ = log.Sync()
		}
	},
}

func init() {
	serveCmd.Flags().BoolVar(&migrateOnStart, "migrate", false, "apply the schema before starting")
	botCmd.Flags().BoolVar(&migrateOnStart, "migrate", false, "apply the schema before starting")

	rootCmd.AddCommand(serveCmd, botCmd, migrateCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

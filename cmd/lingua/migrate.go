package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, closeStore, err := openStore(cmd.Context(), cfg.DB, true)
		if err != nil {
			return err
		}
		defer closeStore()

		log.Info("schema applied", zap.String("driver", cfg.DB.Driver))
		return nil
	},
}

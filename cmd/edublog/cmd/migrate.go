package cmd

import (
	"edublog/internal/migrations"
	"edublog/pkg/db"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage the database schema",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		sqlDB, err := db.OpenSQL(dbConfig())
		if err != nil {
			return err
		}
		defer sqlDB.Close()

		if err := migrations.Up(cmd.Context(), sqlDB); err != nil {
			return err
		}
		logger.Info("schema up to date")
		return nil
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back the latest migration",
	RunE: func(cmd *cobra.Command, args []string) error {
		sqlDB, err := db.OpenSQL(dbConfig())
		if err != nil {
			return err
		}
		defer sqlDB.Close()

		if err := migrations.Down(cmd.Context(), sqlDB); err != nil {
			return err
		}
		logger.Info("rolled back one migration")
		return nil
	},
}

var migrateStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Print applied and pending migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		sqlDB, err := db.OpenSQL(dbConfig())
		if err != nil {
			return err
		}
		defer sqlDB.Close()

		return migrations.Status(cmd.Context(), sqlDB)
	},
}

func init() {
	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd, migrateStatusCmd)
}

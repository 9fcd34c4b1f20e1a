package cmd

import (
	"time"

	"edublog/internal/seed"
	"edublog/internal/store"
	"edublog/pkg/db"

	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load demo teachers, students, disciplines and posts",
	Long:  `Inserts the demo data set. Rows that already exist are left untouched, so it is safe to run repeatedly.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		gdb, err := db.OpenGorm(dbConfig())
		if err != nil {
			return err
		}
		if sqlDB, err := gdb.DB(); err == nil {
			defer sqlDB.Close()
		}

		if err := seed.Run(cmd.Context(), store.New(gdb), time.Now()); err != nil {
			return err
		}
		logger.Info("demo data loaded")
		return nil
	},
}

package cmd

import (
	"fmt"
	"time"

	"edublog/internal/config"
	"edublog/internal/store"
	"edublog/pkg/db"

	"github.com/spf13/cobra"
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "Session maintenance",
}

var sessionsPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete sessions that expired before now minus --older-than",
	RunE: func(cmd *cobra.Command, args []string) error {
		olderThan, _ := cmd.Flags().GetDuration("older-than")
		if olderThan < 0 {
			return fmt.Errorf("--older-than must not be negative")
		}
		if cfg.SessionBackend == config.SessionBackendRedis {
			logger.Info("redis sessions expire on their own, nothing to prune")
			return nil
		}

		gdb, err := db.OpenGorm(dbConfig())
		if err != nil {
			return err
		}
		if sqlDB, err := gdb.DB(); err == nil {
			defer sqlDB.Close()
		}

		cutoff := time.Now().UTC().Add(-olderThan)
		n, err := store.New(gdb).Sessions().DeleteExpired(cmd.Context(), cutoff)
		if err != nil {
			return err
		}
		logger.Info("pruned expired sessions", "deleted", n, "cutoff", cutoff)
		return nil
	},
}

func init() {
	sessionsPruneCmd.Flags().Duration("older-than", 0, "keep sessions that expired less than this long ago")
	sessionsCmd.AddCommand(sessionsPruneCmd)
}

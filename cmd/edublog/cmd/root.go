package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"edublog/internal/config"
	"edublog/internal/observability/logging"
	"edublog/pkg/db"

	"github.com/spf13/cobra"
)

const serviceName = "edublog"

var (
	cfg    config.Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "edublog",
	Short: "Educational blog API",
	Long: `edublog serves the teacher/student blogging API and ships the
maintenance commands that go with it (migrations, demo data, session cleanup).`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if path, _ := cmd.Flags().GetString("config"); path != "" {
			if err := os.Setenv("EDUBLOG_CONFIG", path); err != nil {
				return err
			}
		}
		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
			cfg.LogLevel = lvl
		}

		logger = logging.NewLogger(logging.Config{
			ServiceName: serviceName,
			Environment: cfg.Environment,
			Level:       cfg.LogLevel,
		})
		slog.SetDefault(logger)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "YAML config file (env: EDUBLOG_CONFIG)")
	rootCmd.PersistentFlags().String("log-level", "", "debug, info, warn or error (env: LOG_LEVEL)")

	rootCmd.AddCommand(serveCmd, migrateCmd, seedCmd, sessionsCmd)
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func dbConfig() db.Config {
	return db.Config{
		DSN:             cfg.DatabaseURL,
		LogSQL:          cfg.DBLogSQL,
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxIdleTime: cfg.DBConnMaxIdle,
	}
}

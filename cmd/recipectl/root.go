package main

import (
	"context"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/pageza/recipebook/backend/config"
	"github.com/pageza/recipebook/backend/internal/database"
	"github.com/pageza/recipebook/backend/internal/logger"
)

const (
	databaseURLFlag = "database-url"
	timeoutFlag     = "timeout"
	logLevelFlag    = "log-level"
)

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "recipectl",
		Short:         "Maintenance tasks for the recipe service database",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	flags := cmd.PersistentFlags()
	flags.String(databaseURLFlag, os.Getenv("DATABASE_URL"), "postgres connection string (defaults to DATABASE_URL, then the service configuration)")
	flags.Duration(timeoutFlag, time.Minute, "how long to wait for the database to accept connections")
	flags.String(logLevelFlag, "info", "log level (debug, info, warn, error, none)")
	return cmd
}

func commandLogger(cmd *cobra.Command) (logger.Logger, error) {
	level, _ := cmd.Flags().GetString(logLevelFlag)
	return logger.NewLogger("text", level)
}

// openDatabase connects using --database-url, or the service configuration when the
// flag is empty.
func openDatabase(ctx context.Context, cmd *cobra.Command) (*gorm.DB, func(), error) {
	dsn, _ := cmd.Flags().GetString(databaseURLFlag)
	timeout, _ := cmd.Flags().GetDuration(timeoutFlag)

	if dsn == "" {
		cfg, err := config.LoadConfig()
		if err != nil {
			return nil, nil, err
		}
		dsn = cfg.DSN()
	}

	db, err := database.OpenDSN(ctx, dsn, timeout)
	if err != nil {
		return nil, nil, err
	}
	closeFn := func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	return db, closeFn, nil
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pageza/recipebook/backend/internal/database"
)

const dropFlag = "drop"

func newMigrateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		Args:  cobra.NoArgs,
		RunE:  runMigrate,
	}
	cmd.Flags().Bool(dropFlag, false, "drop every table before migrating (destroys all data)")
	return cmd
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	log, err := commandLogger(cmd)
	if err != nil {
		return err
	}

	db, closeDB, err := openDatabase(cmd.Context(), cmd)
	if err != nil {
		return err
	}
	defer closeDB()

	if drop, _ := cmd.Flags().GetBool(dropFlag); drop {
		log.Warn("dropping all tables")
		if err := database.DropAll(db); err != nil {
			return err
		}
	}

	if err := database.RunMigrations(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	log.Info("migration done")
	return nil
}

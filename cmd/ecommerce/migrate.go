package main

import (
	"github.com/spf13/cobra"

	"github.com/CameronXie/ecommerce-backend/internal/repository/gormstore"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := setup()
			if err != nil {
				return err
			}

			db, err := openDatabase(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}

			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			defer sqlDB.Close()

			if err := gormstore.Migrate(cmd.Context(), db); err != nil {
				logger.Error("db_migrate_failed", "error", err)
				return err
			}

			logger.Info("db_migrated", "driver", cfg.Database.Driver)
			return nil
		},
	}
}

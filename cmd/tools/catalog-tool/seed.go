package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"scheme-finder/internal/catalog"
	"scheme-finder/internal/common/database"
)

var seedCmd = &cobra.Command{
	Use:   "seed-postgres",
	Short: "Create the schema, upsert the catalog and deactivate dropped schemes",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		schemes, err := loadSchemes()
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
		defer cancel()

		pg, err := database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return fmt.Errorf("connect postgres: %w", err)
		}
		defer pg.Close()

		if err := database.EnsureSchema(ctx, pg.GetDB()); err != nil {
			return err
		}
		if err := catalog.NewPostgresSource(pg.GetDB(), cfg.Catalog.Table).Save(ctx, schemes); err != nil {
			return err
		}

		newLogger().Info("catalog seeded", map[string]interface{}{
			"table":   cfg.Catalog.Table,
			"schemes": len(schemes),
		})
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

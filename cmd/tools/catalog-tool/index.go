package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"scheme-finder/internal/catalog"
	"scheme-finder/internal/common/database"
)

var indexCmd = &cobra.Command{
	Use:   "index-elasticsearch",
	Short: "Create the scheme index, bulk-index the catalog and drop stale schemes",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		schemes, err := loadSchemes()
		if err != nil {
			return err
		}

		index, _ := cmd.Flags().GetString("index")
		if index == "" {
			index = cfg.Catalog.Index
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
		defer cancel()

		es, err := database.NewElasticsearch(cfg.Database.Elasticsearch)
		if err != nil {
			return fmt.Errorf("connect elasticsearch: %w", err)
		}
		if err := es.EnsureIndex(ctx, index); err != nil {
			return err
		}
		if err := catalog.NewElasticsearchSource(es.Client, index).Index(ctx, schemes); err != nil {
			return err
		}

		newLogger().Info("catalog indexed", map[string]interface{}{
			"index":   index,
			"schemes": len(schemes),
		})
		return nil
	},
}

func init() {
	rootCmd.AddCommand(indexCmd)

	indexCmd.Flags().String("index", "", "index name (default is catalog.index from config)")
}

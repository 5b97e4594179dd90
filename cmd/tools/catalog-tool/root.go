package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"scheme-finder/internal/catalog"
	"scheme-finder/internal/common/config"
	"scheme-finder/internal/common/logger"
	"scheme-finder/internal/models"
	"scheme-finder/pkg/registry"
)

const app = "catalog-tool"

var (
	// Used for flags.
	cfgFile  string
	fromFile string
	debug    bool

	rootCmd = &cobra.Command{
		Use:          app,
		Short:        "catalog-tool manages the government scheme catalog",
		SilenceUsage: true,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is configs/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&fromFile, "from", "", "registry file to read schemes from (default is the built-in catalog)")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "verbose/debug output")
}

func loadConfig() (*config.Config, error) {
	if cfgFile != "" {
		return config.LoadFromFile(cfgFile)
	}
	return config.Load()
}

func newLogger() logger.Logger {
	level := "info"
	if debug {
		level = "debug"
	}
	return logger.NewStructured(level, "console", "stderr")
}

// loadSchemes returns the registry named by --from, or the built-in catalog.
func loadSchemes() ([]models.Scheme, error) {
	if fromFile == "" {
		return catalog.Default(), nil
	}
	reg, err := registry.LoadRegistry(fromFile)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", fromFile, err)
	}
	return reg.Schemes, nil
}

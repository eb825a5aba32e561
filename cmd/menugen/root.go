package main

import (
	"fmt"

	"github.com/alchemorsel/menugen/internal/infrastructure/config"
	"github.com/alchemorsel/menugen/pkg/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// cli carries the state shared by every subcommand
type cli struct {
	configPath string
	logLevel   string

	cfg    *config.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:   "menugen",
		Short: "Weekly menu generator for assisted living kitchens",
		Long: `menugen builds seven-day menus from the recipe catalog and exports them.

Available subcommands:
  generate - Generate a weekly menu and write it in an export format
  catalog  - Initialize or inspect the recipe catalog`,
		SilenceUsage:      true,
		PersistentPreRunE: c.setup,
		PersistentPostRun: func(*cobra.Command, []string) {
			if c.logger != nil {
				_ = c.logger.Sync()
			}
		},
	}

	root.PersistentFlags().StringVar(&c.configPath, "config", "", "path to a config file (default: ./config.yaml, ./config/config.yaml)")
	root.PersistentFlags().StringVar(&c.logLevel, "log-level", "warn", "log level written to stderr")

	root.AddCommand(newGenerateCmd(c))
	root.AddCommand(newCatalogCmd(c))

	return root
}

func (c *cli) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}

	log, err := logger.NewCLI(c.logLevel)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}

	c.cfg = cfg
	c.logger = log
	return nil
}

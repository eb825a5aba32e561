package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/alchemorsel/menugen/internal/domain/menu"
	"github.com/alchemorsel/menugen/internal/infrastructure/container"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newCatalogCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Initialize or inspect the recipe catalog",
	}
	cmd.AddCommand(newCatalogInitCmd(c))
	cmd.AddCommand(newCatalogShowCmd(c))
	return cmd
}

func newCatalogInitCmd(c *cli) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the built-in recipe dataset to catalog storage",
		Long: `Write the built-in recipe dataset to the configured catalog storage.

A catalog that already holds recipes is left alone unless --force is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.runCatalogInit(cmd, force)
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite a catalog that already holds recipes")
	return cmd
}

func (c *cli) runCatalogInit(cmd *cobra.Command, force bool) error {
	ctx := cmd.Context()

	storage, err := container.NewCatalogStorage(c.cfg, c.logger)
	if err != nil {
		return err
	}
	defer storage.Close()

	if existing, err := storage.Repository.Load(ctx); err == nil && existing.Total() > 0 && !force {
		return fmt.Errorf("catalog already holds %d recipes, use --force to overwrite", existing.Total())
	}

	pools := menu.DefaultPools()
	if err := storage.Repository.Save(ctx, pools); err != nil {
		return fmt.Errorf("failed to write catalog: %w", err)
	}

	c.logger.Info("Recipe catalog initialized",
		zap.String("driver", storage.Driver),
		zap.Int("recipes", pools.Total()),
	)
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d recipes to the %s catalog\n", pools.Total(), storage.Driver)
	return nil
}

func newCatalogShowCmd(c *cli) *cobra.Command {
	var names bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the recipe count of every category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.runCatalogShow(cmd, names)
		},
	}
	cmd.Flags().BoolVar(&names, "names", false, "list recipe names under each category")
	return cmd
}

func (c *cli) runCatalogShow(cmd *cobra.Command, names bool) error {
	storage, err := container.NewCatalogStorage(c.cfg, c.logger)
	if err != nil {
		return err
	}
	defer storage.Close()

	pools, err := storage.Repository.Load(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to read catalog: %w", err)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "CATEGORY\tRECIPES")
	for _, category := range menu.Categories {
		fmt.Fprintf(w, "%s\t%d\n", category, len(pools[category]))
		if names {
			for _, r := range pools[category] {
				fmt.Fprintf(w, "  %s\t\n", r.Name)
			}
		}
	}
	fmt.Fprintf(w, "total\t%d\n", pools.Total())
	return w.Flush()
}

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/alchemorsel/menugen/internal/application/catalog"
	"github.com/alchemorsel/menugen/internal/application/export"
	menuapp "github.com/alchemorsel/menugen/internal/application/menu"
	"github.com/alchemorsel/menugen/internal/domain/menu"
	"github.com/alchemorsel/menugen/internal/infrastructure/container"
	"github.com/alchemorsel/menugen/internal/infrastructure/http/handlers"
	"github.com/alchemorsel/menugen/internal/infrastructure/security"
	"github.com/alchemorsel/menugen/internal/ports/inbound"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type generateOptions struct {
	week        string
	servingSize int
	format      string
	out         string
	seed        int64
}

func newGenerateCmd(c *cli) *cobra.Command {
	opts := &generateOptions{}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a weekly menu and export it",
		Long: `Generate a seven-day menu from the recipe catalog and write it in one
of the export formats.

The menu goes to stdout unless --out names a file or directory. A directory
receives the export under its standard filename.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.runGenerate(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.week, "week", "", "week label (default: current ISO week, e.g. 2024-10)")
	cmd.Flags().IntVar(&opts.servingSize, "serving-size", 0, "number of residents served (default from config)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", string(export.FormatText), "export format: text, csv, json or pdf")
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "output file or directory")
	cmd.Flags().Int64Var(&opts.seed, "seed", 0, "seed for reproducible recipe selection (0 picks randomly)")

	return cmd
}

func (c *cli) runGenerate(cmd *cobra.Command, opts *generateOptions) error {
	ctx := cmd.Context()

	validation := security.NewValidationService(c.logger)
	command := inbound.GenerateMenuCommand{
		Week:        validation.SanitizeWeekLabel(opts.week),
		ServingSize: opts.servingSize,
	}
	if err := validation.ValidateStruct(command); err != nil {
		return err
	}
	if command.Week == "" {
		command.Week = handlers.DefaultWeekLabel(time.Now())
	}
	if command.ServingSize == 0 {
		command.ServingSize = c.cfg.Menu.DefaultServingSize
	}

	storage, err := container.NewCatalogStorage(c.cfg, c.logger)
	if err != nil {
		return err
	}
	defer storage.Close()

	var catalogOpts []menu.CatalogOption
	if opts.seed != 0 {
		catalogOpts = append(catalogOpts, menu.WithRandomSource(menu.NewSeededSource(opts.seed)))
	}
	catalogs := catalog.NewService(ctx, storage.Repository, nil, c.logger, catalogOpts...)
	if result := catalogs.Result(); result.Degraded != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s, using the built-in recipes\n", result.Reason)
	}

	menus := menuapp.NewMenuService(catalogs.Catalog(), c.logger)
	weekly, err := menus.GenerateWeeklyMenu(ctx, command.Week, command.ServingSize)
	if err != nil {
		return err
	}

	exporter := export.NewExportService(c.cfg.Export.Formats, nil, c.logger)
	payload, err := exporter.Export(ctx, weekly, opts.format)
	if err != nil {
		return err
	}

	if opts.out == "" {
		_, err := cmd.OutOrStdout().Write(payload.Data)
		return err
	}

	path := opts.out
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		path = filepath.Join(path, payload.Filename)
	}
	if err := os.WriteFile(path, payload.Data, 0o644); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}

	c.logger.Info("Weekly menu exported",
		zap.String("week", weekly.Week),
		zap.String("format", payload.Format),
		zap.String("path", path),
	)
	fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s\n", path)
	return nil
}

package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/andresuchdata/tariff-risk/backend-go/internal/cache"
	"github.com/andresuchdata/tariff-risk/backend-go/internal/catalog"
	"github.com/andresuchdata/tariff-risk/backend-go/internal/config"
	"github.com/andresuchdata/tariff-risk/backend-go/internal/domain"
	"github.com/andresuchdata/tariff-risk/backend-go/internal/service"
	"github.com/andresuchdata/tariff-risk/backend-go/internal/storage"
	"github.com/andresuchdata/tariff-risk/backend-go/pkg/logger"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

func main() {
	cfg := config.Load()
	logger.Setup(cfg.Server.LogLevel, "debug", os.Stdout)

	app := &cli.App{
		Name:  "report",
		Usage: "Render the portfolio exports and sourcing reports to disk or object storage",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "out",
				Usage:   "Local directory for generated files",
				Value:   cfg.App.ExportDir,
				EnvVars: []string{"APP_EXPORT_DIR"},
			},
			&cli.StringSliceFlag{
				Name:  "sku",
				Usage: "SKU id to render a sourcing report for (repeatable). Defaults to every SKU flagged shift",
			},
			&cli.BoolFlag{
				Name:  "publish",
				Usage: "Also upload the files to the configured object storage bucket",
			},
			&cli.StringFlag{
				Name:  "prefix",
				Usage: "Object key prefix, defaults to the run date",
				Value: time.Now().Format("2006-01-02"),
			},
		},
		Action: func(c *cli.Context) error {
			return run(c.Context, cfg, c.String("out"), c.StringSlice("sku"), c.Bool("publish"), c.String("prefix"))
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal().Err(err).Msg("report failed")
	}
}

func run(ctx context.Context, cfg *config.Config, outDir string, skuIDs []string, publish bool, prefix string) error {
	catalogService, err := service.NewCatalogService(ctx, catalog.StaticSource{}, cache.NewNoopDashboardCache())
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}

	if len(skuIDs) == 0 {
		for _, s := range catalogService.Catalog().SKUs() {
			if s.Action == domain.ActionShift {
				skuIDs = append(skuIDs, s.ID)
			}
		}
	}

	reports := service.NewReportService(catalogService, time.Now)
	artifacts, err := reports.All(ctx, skuIDs)
	if err != nil {
		return err
	}

	local, err := storage.NewLocalStorage(outDir)
	if err != nil {
		return err
	}
	if err := reports.Publish(ctx, local, "", artifacts); err != nil {
		return fmt.Errorf("write exports: %w", err)
	}
	log.Info().Str("dir", outDir).Int("files", len(artifacts)).Msg("exports written")

	if !publish {
		return nil
	}

	remote, err := storage.NewMinioClient(storage.MinioConfig{
		Endpoint:  cfg.Storage.Endpoint,
		AccessKey: cfg.Storage.AccessKey,
		SecretKey: cfg.Storage.SecretKey,
		Bucket:    cfg.Storage.Bucket,
		Region:    cfg.Storage.Region,
		UseSSL:    cfg.Storage.UseSSL,
	})
	if err != nil {
		return err
	}
	if err := remote.EnsureBucket(ctx); err != nil {
		return err
	}
	return reports.Publish(ctx, remote, prefix, artifacts)
}

package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/andresuchdata/tariff-risk/backend-go/internal/catalog"
	"github.com/andresuchdata/tariff-risk/backend-go/internal/repository"
	"github.com/andresuchdata/tariff-risk/backend-go/internal/repository/postgres"
	"github.com/andresuchdata/tariff-risk/backend-go/pkg/logger"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

type writerKey struct{}

func newDBURLFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "db-url",
		Usage:    "Database connection string",
		Required: true,
		EnvVars:  []string{"DATABASE_URL"},
	}
}

func initDB(c *cli.Context) error {
	db, err := sql.Open("pgx", c.String("db-url"))
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.PingContext(c.Context); err != nil {
		db.Close()
		return fmt.Errorf("failed to ping database: %w", err)
	}

	wrapped := postgres.Wrap(sqlx.NewDb(db, "pgx"))
	c.Context = context.WithValue(c.Context, writerKey{}, wrapped)
	return nil
}

func closeDB(c *cli.Context) error {
	if db, ok := c.Context.Value(writerKey{}).(*postgres.DB); ok && db != nil {
		return db.Close()
	}
	return nil
}

func writerFrom(c *cli.Context) (repository.CatalogWriter, error) {
	db, ok := c.Context.Value(writerKey{}).(*postgres.DB)
	if !ok || db == nil {
		return nil, fmt.Errorf("database not initialised")
	}
	return postgres.NewCatalogWriter(db), nil
}

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Warn().Err(err).Msg("could not load .env file")
	}
	logger.Setup(os.Getenv("LOG_LEVEL"), "debug", os.Stdout)

	app := &cli.App{
		Name:  "seed",
		Usage: "Create the catalog schema and load the bundled tariff catalog",
		Commands: []*cli.Command{
			{
				Name:   "schema",
				Usage:  "Create catalog tables if they do not exist",
				Flags:  []cli.Flag{newDBURLFlag()},
				Before: initDB,
				After:  closeDB,
				Action: runSchema,
			},
			{
				Name:   "catalog",
				Usage:  "Replace catalog rows with the bundled data set",
				Flags:  []cli.Flag{newDBURLFlag()},
				Before: initDB,
				After:  closeDB,
				Action: runCatalog,
			},
			{
				Name:   "all",
				Usage:  "Create the schema, then load the catalog",
				Flags:  []cli.Flag{newDBURLFlag()},
				Before: initDB,
				After:  closeDB,
				Action: func(c *cli.Context) error {
					if err := runSchema(c); err != nil {
						return fmt.Errorf("error creating schema: %w", err)
					}
					if err := runCatalog(c); err != nil {
						return fmt.Errorf("error seeding catalog: %w", err)
					}
					return nil
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal().Err(err).Msg("seed failed")
	}
}

func runSchema(c *cli.Context) error {
	w, err := writerFrom(c)
	if err != nil {
		return err
	}
	if err := w.Migrate(c.Context); err != nil {
		return err
	}
	log.Info().Msg("catalog schema ready")
	return nil
}

func runCatalog(c *cli.Context) error {
	w, err := writerFrom(c)
	if err != nil {
		return err
	}

	cat, err := catalog.StaticSource{}.Load(c.Context)
	if err != nil {
		return fmt.Errorf("load bundled catalog: %w", err)
	}

	log.Info().Msg("Starting database seeding...")
	if err := w.ReplaceCatalog(c.Context, cat.Snapshot()); err != nil {
		return fmt.Errorf("failed to seed catalog: %w", err)
	}
	log.Info().Msg("Database seeding completed successfully")
	return nil
}

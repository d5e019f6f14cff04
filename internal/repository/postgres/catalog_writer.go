// backend-go/internal/repository/postgres/catalog_writer.go
package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/andresuchdata/tariff-risk/backend-go/internal/repository"
	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const catalogSchema = `
CREATE TABLE IF NOT EXISTS skus (
	id                   TEXT PRIMARY KEY,
	name                 TEXT NOT NULL,
	category             TEXT NOT NULL,
	origin               TEXT NOT NULL,
	spend                DOUBLE PRECISION NOT NULL DEFAULT 0,
	tariff_impact        DOUBLE PRECISION NOT NULL DEFAULT 0,
	geo_risk             DOUBLE PRECISION NOT NULL DEFAULT 0,
	total_risk           DOUBLE PRECISION NOT NULL DEFAULT 0,
	action               TEXT NOT NULL,
	is_domestic          BOOLEAN NOT NULL DEFAULT FALSE,
	current_margin       DOUBLE PRECISION NOT NULL DEFAULT 0,
	domestic_available   BOOLEAN NOT NULL DEFAULT FALSE,
	current_supplier     TEXT NOT NULL DEFAULT '',
	hs_code              TEXT NOT NULL DEFAULT '',
	sustainability_score DOUBLE PRECISION NOT NULL DEFAULT 0,
	carbon_footprint     DOUBLE PRECISION NOT NULL DEFAULT 0,
	environmental_rating TEXT NOT NULL DEFAULT '',
	quality_score        DOUBLE PRECISION NOT NULL DEFAULT 0,
	transit_days         INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS categories (
	name                TEXT PRIMARY KEY,
	position            INTEGER NOT NULL,
	high_risk_countries TEXT[] NOT NULL DEFAULT '{}',
	low_risk_countries  TEXT[] NOT NULL DEFAULT '{}',
	risk_score          DOUBLE PRECISION NOT NULL DEFAULT 0,
	amount_at_risk      DOUBLE PRECISION NOT NULL DEFAULT 0,
	action              TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS suppliers (
	id                   TEXT PRIMARY KEY,
	supplier_name        TEXT NOT NULL,
	country              TEXT NOT NULL,
	margin_change        DOUBLE PRECISION NOT NULL DEFAULT 0,
	distance             DOUBLE PRECISION NOT NULL DEFAULT 0,
	transit_days         INTEGER NOT NULL DEFAULT 0,
	logistics_score      DOUBLE PRECISION NOT NULL DEFAULT 0,
	is_domestic          BOOLEAN NOT NULL DEFAULT FALSE,
	supplier_type        TEXT NOT NULL,
	is_recommended       BOOLEAN NOT NULL DEFAULT FALSE,
	tariff_rate          DOUBLE PRECISION NOT NULL DEFAULT 0,
	quality_score        DOUBLE PRECISION NOT NULL DEFAULT 0,
	cost_per_unit        DOUBLE PRECISION NOT NULL DEFAULT 0,
	capacity             TEXT NOT NULL DEFAULT '',
	annual_savings       DOUBLE PRECISION NOT NULL DEFAULT 0,
	sustainability_score DOUBLE PRECISION NOT NULL DEFAULT 0,
	carbon_footprint     DOUBLE PRECISION NOT NULL DEFAULT 0,
	environmental_rating TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS series_points (
	series     TEXT NOT NULL,
	series_key TEXT NOT NULL,
	point_date DATE NOT NULL,
	rate       DOUBLE PRECISION NOT NULL,
	event      TEXT,
	PRIMARY KEY (series, series_key, point_date)
);

CREATE TABLE IF NOT EXISTS data_feeds (
	id          TEXT PRIMARY KEY,
	name        TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	last_update TEXT NOT NULL DEFAULT '',
	status      TEXT NOT NULL,
	frequency   TEXT NOT NULL DEFAULT '',
	next_update TEXT NOT NULL DEFAULT ''
);
`

type catalogWriter struct {
	db *DB
}

func NewCatalogWriter(db *DB) repository.CatalogWriter {
	return &catalogWriter{db: db}
}

func (w *catalogWriter) Migrate(ctx context.Context) error {
	return w.db.WithTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, catalogSchema); err != nil {
			return fmt.Errorf("create catalog tables: %w", err)
		}
		return nil
	})
}

// ReplaceCatalog truncates the catalog tables and inserts snap in one transaction.
func (w *catalogWriter) ReplaceCatalog(ctx context.Context, snap repository.CatalogSnapshot) error {
	return w.db.WithTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `TRUNCATE skus, categories, suppliers, series_points, data_feeds`); err != nil {
			return fmt.Errorf("truncate catalog: %w", err)
		}

		for _, s := range snap.SKUs {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO skus (id, name, category, origin, spend, tariff_impact, geo_risk, total_risk,
					action, is_domestic, current_margin, domestic_available, current_supplier, hs_code,
					sustainability_score, carbon_footprint, environmental_rating, quality_score, transit_days)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`,
				s.ID, s.Name, s.Category, s.Origin, s.Spend, s.TariffImpact, s.GeoRisk, s.TotalRisk,
				string(s.Action), s.IsDomestic, s.CurrentMargin, s.DomesticAvailable, s.CurrentSupplier, s.HSCode,
				s.SustainabilityScore, s.CarbonFootprint, string(s.EnvironmentalRating), s.QualityScore, s.TransitDays)
			if err != nil {
				return fmt.Errorf("insert sku %s: %w", s.ID, err)
			}
		}

		for i, c := range snap.Categories {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO categories (name, position, high_risk_countries, low_risk_countries,
					risk_score, amount_at_risk, action)
				VALUES ($1, $2, COALESCE($3::text[], '{}'), COALESCE($4::text[], '{}'), $5, $6, $7)`,
				c.Name, i, pq.Array(c.HighRiskCountries), pq.Array(c.LowRiskCountries),
				c.RiskScore, c.AmountAtRisk, string(c.Action))
			if err != nil {
				return fmt.Errorf("insert category %s: %w", c.Name, err)
			}
		}

		for _, s := range snap.Suppliers {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO suppliers (id, supplier_name, country, margin_change, distance, transit_days,
					logistics_score, is_domestic, supplier_type, is_recommended, tariff_rate, quality_score,
					cost_per_unit, capacity, annual_savings, sustainability_score, carbon_footprint,
					environmental_rating)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`,
				s.ID, s.SupplierName, s.Country, s.MarginChange, s.Distance, s.TransitDays,
				s.LogisticsScore, s.IsDomestic, string(s.SupplierType), s.IsRecommended, s.TariffRate, s.QualityScore,
				s.CostPerUnit, s.Capacity, s.AnnualSavings, s.SustainabilityScore, s.CarbonFootprint,
				string(s.EnvironmentalRating))
			if err != nil {
				return fmt.Errorf("insert supplier %s: %w", s.ID, err)
			}
		}

		for _, p := range snap.Series {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO series_points (series, series_key, point_date, rate, event)
				VALUES ($1, $2, $3::date, $4, NULLIF($5, ''))`,
				p.Series, p.Key, p.Date, p.Rate, p.Event)
			if err != nil {
				return fmt.Errorf("insert %s point %s/%s: %w", p.Series, p.Key, p.Date, err)
			}
		}

		for _, f := range snap.Feeds {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO data_feeds (id, name, description, last_update, status, frequency, next_update)
				VALUES ($1, $2, $3, $4, $5, $6, $7)`,
				f.ID, f.Name, f.Description, f.LastUpdate, string(f.Status), f.Frequency, f.NextUpdate)
			if err != nil {
				return fmt.Errorf("insert feed %s: %w", f.ID, err)
			}
		}

		log.Info().
			Int("skus", len(snap.SKUs)).
			Int("categories", len(snap.Categories)).
			Int("suppliers", len(snap.Suppliers)).
			Int("series_points", len(snap.Series)).
			Int("feeds", len(snap.Feeds)).
			Msg("catalog written")
		return nil
	})
}

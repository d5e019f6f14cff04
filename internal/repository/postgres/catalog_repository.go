// backend-go/internal/repository/postgres/catalog_repository.go
package postgres

import (
	"context"
	"fmt"

	"github.com/andresuchdata/tariff-risk/backend-go/internal/domain"
	"github.com/andresuchdata/tariff-risk/backend-go/internal/repository"
	"github.com/lib/pq"
)

type catalogRepository struct {
	db *DB
}

func NewCatalogRepository(db *DB) repository.CatalogRepository {
	return &catalogRepository{db: db}
}

func (r *catalogRepository) ListSKUs(ctx context.Context) ([]domain.SKU, error) {
	query := `
		SELECT id, name, category, origin, spend, tariff_impact, geo_risk, total_risk,
			action, is_domestic, current_margin, domestic_available, current_supplier,
			hs_code, sustainability_score, carbon_footprint, environmental_rating,
			quality_score, transit_days
		FROM skus
		ORDER BY id
	`

	var rows []domain.SKU
	if err := r.selectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("error listing skus: %w", err)
	}
	return rows, nil
}

type categoryRow struct {
	domain.Category
	HighRisk pq.StringArray `db:"high_risk_countries"`
	LowRisk  pq.StringArray `db:"low_risk_countries"`
}

func (r *catalogRepository) ListCategories(ctx context.Context) ([]domain.Category, error) {
	query := `
		SELECT name, high_risk_countries, low_risk_countries, risk_score, amount_at_risk, action
		FROM categories
		ORDER BY position, name
	`

	var rows []categoryRow
	if err := r.selectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("error listing categories: %w", err)
	}

	categories := make([]domain.Category, 0, len(rows))
	for _, row := range rows {
		c := row.Category
		c.HighRiskCountries = []string(row.HighRisk)
		c.LowRiskCountries = []string(row.LowRisk)
		categories = append(categories, c)
	}
	return categories, nil
}

func (r *catalogRepository) ListSuppliers(ctx context.Context) ([]domain.Supplier, error) {
	query := `
		SELECT id, supplier_name, country, margin_change, distance, transit_days,
			logistics_score, is_domestic, supplier_type, is_recommended, tariff_rate,
			quality_score, cost_per_unit, capacity, annual_savings, sustainability_score,
			carbon_footprint, environmental_rating
		FROM suppliers
		ORDER BY id
	`

	var rows []domain.Supplier
	if err := r.selectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("error listing suppliers: %w", err)
	}
	return rows, nil
}

func (r *catalogRepository) ListSeriesPoints(ctx context.Context) ([]repository.SeriesPoint, error) {
	query := `
		SELECT series, series_key, to_char(point_date, 'YYYY-MM-DD') AS date, rate,
			COALESCE(event, '') AS event
		FROM series_points
		ORDER BY series, series_key, point_date
	`

	var rows []repository.SeriesPoint
	if err := r.selectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("error listing series points: %w", err)
	}
	return rows, nil
}

type feedRow struct {
	ID          string `db:"id"`
	Name        string `db:"name"`
	Description string `db:"description"`
	LastUpdate  string `db:"last_update"`
	Status      string `db:"status"`
	Frequency   string `db:"frequency"`
	NextUpdate  string `db:"next_update"`
}

func (r *catalogRepository) ListDataFeeds(ctx context.Context) ([]domain.DataFeed, error) {
	query := `
		SELECT id, name, description, last_update, status, frequency, next_update
		FROM data_feeds
		ORDER BY id
	`

	var rows []feedRow
	if err := r.selectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("error listing data feeds: %w", err)
	}

	feeds := make([]domain.DataFeed, 0, len(rows))
	for _, row := range rows {
		feeds = append(feeds, domain.DataFeed{
			ID:          row.ID,
			Name:        row.Name,
			Description: row.Description,
			LastUpdate:  row.LastUpdate,
			Status:      domain.FeedStatus(row.Status),
			Frequency:   row.Frequency,
			NextUpdate:  row.NextUpdate,
		})
	}
	return feeds, nil
}

// selectContext runs a read under the connection semaphore.
func (r *catalogRepository) selectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	if err := r.db.sem.Acquire(ctx, 1); err != nil {
		return fmt.Errorf("could not acquire semaphore: %w", err)
	}
	defer r.db.sem.Release(1)

	return r.db.SelectContext(ctx, dest, query, args...)
}

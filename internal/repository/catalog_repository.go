// backend-go/internal/repository/catalog_repository.go
package repository

import (
	"context"

	"github.com/andresuchdata/tariff-risk/backend-go/internal/domain"
)

// SeriesPoint is one stored chart observation. Series is tariff, margin,
// quality, logistics or capacity; Key is an origin or a sourcing mode.
type SeriesPoint struct {
	Series string `db:"series"`
	Key    string `db:"series_key"`
	domain.TariffPoint
}

type CatalogRepository interface {
	ListSKUs(ctx context.Context) ([]domain.SKU, error)
	ListCategories(ctx context.Context) ([]domain.Category, error)
	ListSuppliers(ctx context.Context) ([]domain.Supplier, error)
	ListSeriesPoints(ctx context.Context) ([]SeriesPoint, error)
	ListDataFeeds(ctx context.Context) ([]domain.DataFeed, error)
}

// CatalogSnapshot is everything the seeder writes in one transaction.
type CatalogSnapshot struct {
	SKUs       []domain.SKU
	Categories []domain.Category
	Suppliers  []domain.Supplier
	Series     []SeriesPoint
	Feeds      []domain.DataFeed
}

type CatalogWriter interface {
	Migrate(ctx context.Context) error
	ReplaceCatalog(ctx context.Context, snap CatalogSnapshot) error
}

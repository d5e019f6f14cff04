// backend-go/internal/service/catalog_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/andresuchdata/tariff-risk/backend-go/internal/analytics"
	"github.com/andresuchdata/tariff-risk/backend-go/internal/cache"
	"github.com/andresuchdata/tariff-risk/backend-go/internal/catalog"
	"github.com/andresuchdata/tariff-risk/backend-go/internal/domain"
	"github.com/andresuchdata/tariff-risk/backend-go/internal/query"
	"github.com/andresuchdata/tariff-risk/backend-go/internal/sourcing"
	"github.com/rs/zerolog/log"
)

var (
	ErrSKUNotFound  = errors.New("sku not found")
	ErrFeedNotFound = errors.New("data feed not found")
)

// CatalogService answers read queries over the current catalog. Reload swaps
// the catalog atomically; readers keep the snapshot they started with.
type CatalogService struct {
	source catalog.Source
	cache  cache.DashboardCache

	mu      sync.RWMutex
	catalog *catalog.Catalog
}

func NewCatalogService(ctx context.Context, source catalog.Source, cacheImpl cache.DashboardCache) (*CatalogService, error) {
	if cacheImpl == nil {
		cacheImpl = cache.NewNoopDashboardCache()
	}
	s := &CatalogService{source: source, cache: cacheImpl}
	if err := s.Reload(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// Reload reads the catalog from its source and drops cached results.
func (s *CatalogService) Reload(ctx context.Context) error {
	c, err := s.source.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	s.mu.Lock()
	s.catalog = c
	s.mu.Unlock()

	if err := s.cache.InvalidateAll(ctx); err != nil {
		log.Warn().Err(err).Msg("catalog: cache invalidate failed")
	}
	log.Info().Int("skus", len(c.SKUs())).Int("suppliers", len(c.Suppliers())).Msg("catalog loaded")
	return nil
}

// Catalog returns the current snapshot.
func (s *CatalogService) Catalog() *catalog.Catalog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.catalog
}

func (s *CatalogService) SKU(id string) (domain.SKU, error) {
	sku, ok := s.Catalog().SKU(id)
	if !ok {
		return domain.SKU{}, fmt.Errorf("%w: %s", ErrSKUNotFound, id)
	}
	return sku, nil
}

// QuerySKUs runs a dashboard query, going through the cache when enabled.
func (s *CatalogService) QuerySKUs(ctx context.Context, q domain.SKUQuery) domain.SKUPage {
	q = normalizeQuery(q)
	if page, ok, err := s.cache.GetPage(ctx, q); err == nil && ok {
		return *page
	} else if err != nil {
		log.Warn().Err(err).Msg("catalog: cache get page failed")
	}

	page := query.Run(s.Catalog().SKUs(), q)
	if err := s.cache.SetPage(ctx, q, &page); err != nil {
		log.Warn().Err(err).Msg("catalog: cache set page failed")
	}
	return page
}

func normalizeQuery(q domain.SKUQuery) domain.SKUQuery {
	q.SortField = query.NormalizeSortField(q.SortField)
	if q.SortDir != domain.SortAsc {
		q.SortDir = domain.SortDesc
	}
	if q.Action == "" {
		q.Action = domain.ActionAll
	}
	if q.PageSize <= 0 {
		q.PageSize = domain.DashboardPageSize
	}
	if q.Page < 1 {
		q.Page = 1
	}
	return q
}

func (s *CatalogService) KPIs(ctx context.Context) domain.OverviewKPIs {
	if kpis, ok, err := s.cache.GetKPIs(ctx); err == nil && ok {
		return *kpis
	} else if err != nil {
		log.Warn().Err(err).Msg("catalog: cache get kpis failed")
	}

	c := s.Catalog()
	kpis := analytics.KPIs(c.SKUs(), c.Categories())
	if err := s.cache.SetKPIs(ctx, &kpis); err != nil {
		log.Warn().Err(err).Msg("catalog: cache set kpis failed")
	}
	return kpis
}

// Categories returns the overview category cards.
func (s *CatalogService) Categories() []domain.CategoryRollup {
	c := s.Catalog()
	return analytics.Rollups(c.Categories(), c.SKUs())
}

// Search is the synchronous overview search. Short terms return nothing.
func (s *CatalogService) Search(term string) []domain.SKU {
	out := query.SearchCatalog(s.Catalog().SKUs(), term)
	if out == nil {
		return []domain.SKU{}
	}
	return out
}

func (s *CatalogService) NewSKUOptions() []domain.NewSKUOption {
	return sourcing.NewSKUOptions(s.Catalog().Suppliers())
}

func (s *CatalogService) Alternatives(id string) (domain.SourcingAssessment, error) {
	sku, err := s.SKU(id)
	if err != nil {
		return domain.SourcingAssessment{}, err
	}
	return sourcing.Assess(sku, s.Catalog().Suppliers()), nil
}

// Scenario projects a tariff increase for a SKU. The increase is clamped to [5,20].
func (s *CatalogService) Scenario(id string, increase float64) (domain.Scenario, error) {
	sku, err := s.SKU(id)
	if err != nil {
		return domain.Scenario{}, err
	}
	return analytics.Project(sku, increase), nil
}

func (s *CatalogService) Charts(id string) (domain.ChartSeries, error) {
	c := s.Catalog()
	sku, ok := c.SKU(id)
	if !ok {
		return domain.ChartSeries{}, fmt.Errorf("%w: %s", ErrSKUNotFound, id)
	}
	return c.Charts(sku), nil
}

func (s *CatalogService) DataFeeds() []domain.DataFeed {
	return s.Catalog().DataFeeds()
}

// RefreshFeed reloads the catalog on behalf of one feed and returns the feed
// as it stands afterwards.
func (s *CatalogService) RefreshFeed(ctx context.Context, id string) (domain.DataFeed, error) {
	if _, ok := s.Catalog().DataFeed(id); !ok {
		return domain.DataFeed{}, fmt.Errorf("%w: %s", ErrFeedNotFound, id)
	}

	log.Info().Str("feed", id).Msg("refreshing data feed")
	if err := s.Reload(ctx); err != nil {
		return domain.DataFeed{}, err
	}

	feed, ok := s.Catalog().DataFeed(id)
	if !ok {
		return domain.DataFeed{}, fmt.Errorf("%w: %s", ErrFeedNotFound, id)
	}
	return feed, nil
}

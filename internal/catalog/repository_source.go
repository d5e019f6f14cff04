package catalog

import (
	"context"
	"fmt"

	"github.com/andresuchdata/tariff-risk/backend-go/internal/domain"
	"github.com/andresuchdata/tariff-risk/backend-go/internal/repository"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// Series names as stored by the seed command.
const (
	SeriesTariff    = "tariff"
	SeriesMargin    = "margin"
	SeriesQuality   = "quality"
	SeriesLogistics = "logistics"
	SeriesCapacity  = "capacity"
)

// RepositorySource loads the catalog once from a CatalogRepository.
type RepositorySource struct {
	Repo repository.CatalogRepository
}

func (s RepositorySource) Load(ctx context.Context) (*Catalog, error) {
	var (
		data   Data
		points []repository.SeriesPoint
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		data.SKUs, err = s.Repo.ListSKUs(gctx)
		return err
	})
	g.Go(func() (err error) {
		data.Categories, err = s.Repo.ListCategories(gctx)
		return err
	})
	g.Go(func() (err error) {
		data.Suppliers, err = s.Repo.ListSuppliers(gctx)
		return err
	})
	g.Go(func() (err error) {
		points, err = s.Repo.ListSeriesPoints(gctx)
		return err
	})
	g.Go(func() (err error) {
		data.Feeds, err = s.Repo.ListDataFeeds(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	groupSeries(&data, points)

	log.Info().
		Int("skus", len(data.SKUs)).
		Int("categories", len(data.Categories)).
		Int("suppliers", len(data.Suppliers)).
		Int("series_points", len(points)).
		Msg("catalog loaded from repository")

	return New(data), nil
}

func groupSeries(data *Data, points []repository.SeriesPoint) {
	data.Tariffs = map[string][]domain.TariffPoint{}
	data.Margin = map[string][]domain.TariffPoint{}
	data.Quality = map[string][]domain.TariffPoint{}
	data.Logistics = map[string][]domain.TariffPoint{}
	data.Capacity = map[string][]domain.TariffPoint{}

	targets := map[string]map[string][]domain.TariffPoint{
		SeriesTariff:    data.Tariffs,
		SeriesMargin:    data.Margin,
		SeriesQuality:   data.Quality,
		SeriesLogistics: data.Logistics,
		SeriesCapacity:  data.Capacity,
	}
	for _, p := range points {
		m, ok := targets[p.Series]
		if !ok {
			log.Warn().Str("series", p.Series).Msg("ignoring unknown series")
			continue
		}
		m[p.Key] = append(m[p.Key], p.TariffPoint)
	}
}

// SeriesPoints flattens the catalog series for storage.
func (c *Catalog) SeriesPoints() []repository.SeriesPoint {
	sources := []struct {
		name string
		m    map[string][]domain.TariffPoint
	}{
		{SeriesTariff, c.data.Tariffs},
		{SeriesMargin, c.data.Margin},
		{SeriesQuality, c.data.Quality},
		{SeriesLogistics, c.data.Logistics},
		{SeriesCapacity, c.data.Capacity},
	}

	var out []repository.SeriesPoint
	for _, src := range sources {
		for key, pts := range src.m {
			for _, p := range pts {
				out = append(out, repository.SeriesPoint{Series: src.name, Key: key, TariffPoint: p})
			}
		}
	}
	return out
}

// Snapshot returns the catalog in the shape the seeder writes.
func (c *Catalog) Snapshot() repository.CatalogSnapshot {
	return repository.CatalogSnapshot{
		SKUs:       c.SKUs(),
		Categories: append([]domain.Category(nil), c.data.Categories...),
		Suppliers:  c.Suppliers(),
		Series:     c.SeriesPoints(),
		Feeds:      c.DataFeeds(),
	}
}

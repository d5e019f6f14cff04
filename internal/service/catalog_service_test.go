package service

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/andresuchdata/tariff-risk/backend-go/internal/cache"
	"github.com/andresuchdata/tariff-risk/backend-go/internal/catalog"
	"github.com/andresuchdata/tariff-risk/backend-go/internal/domain"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCatalogServiceLoadError(t *testing.T) {
	_, err := NewCatalogService(context.Background(), failingSource{}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db down")
}

func TestQuerySKUsNormalizesQuery(t *testing.T) {
	svc := newCatalogService(t)

	page := svc.QuerySKUs(context.Background(), domain.SKUQuery{SortField: "total_risk"})
	assert.Equal(t, 24, page.Total)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, domain.DashboardPageSize, page.PageSize)
	require.Len(t, page.Items, 10)
	assert.Equal(t, "WM002", page.Items[0].ID, "highest totalRisk first")
}

func TestQuerySKUsUsesCache(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	dc := cache.NewRedisDashboardCache(client, time.Minute)

	ctx := context.Background()
	svc, err := NewCatalogService(ctx, catalog.StaticSource{}, dc)
	require.NoError(t, err)

	q := domain.DefaultSKUQuery()
	first := svc.QuerySKUs(ctx, q)
	cached, ok, err := dc.GetPage(ctx, q)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, first, *cached)

	svc.KPIs(ctx)
	_, ok, _ = dc.GetKPIs(ctx)
	assert.True(t, ok)

	require.NoError(t, svc.Reload(ctx))
	_, ok, _ = dc.GetKPIs(ctx)
	assert.False(t, ok, "reload drops cached results")
}

func TestQuerySKUsSurvivesBrokenCache(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	svc, err := NewCatalogService(context.Background(), catalog.StaticSource{}, cache.NewRedisDashboardCache(client, time.Minute))
	require.NoError(t, err)
	mr.Close()

	page := svc.QuerySKUs(context.Background(), domain.DefaultSKUQuery())
	assert.Equal(t, 24, page.Total)
	assert.Equal(t, 24, svc.KPIs(context.Background()).TotalSKUs)
}

func TestCatalogLookups(t *testing.T) {
	svc := newCatalogService(t)

	_, err := svc.SKU("nope")
	assert.ErrorIs(t, err, ErrSKUNotFound)
	_, err = svc.Alternatives("nope")
	assert.ErrorIs(t, err, ErrSKUNotFound)
	_, err = svc.Charts("nope")
	assert.ErrorIs(t, err, ErrSKUNotFound)

	sc, err := svc.Scenario("WM001", 50)
	require.NoError(t, err)
	assert.Equal(t, float64(20), sc.TariffIncrease)
	assert.Equal(t, float64(2_500_000), sc.ProjectedLoss)

	alt, err := svc.Alternatives("WM004")
	require.NoError(t, err)
	assert.Equal(t, domain.SourcingOptimal, alt.State)

	assert.Len(t, svc.Categories(), 7)
	assert.Empty(t, svc.Search("Sa"))
	assert.NotNil(t, svc.Search("Sa"))
	assert.Len(t, svc.Search("samsung"), 2)
	assert.NotEmpty(t, svc.NewSKUOptions())
}

func TestRefreshFeed(t *testing.T) {
	svc := newCatalogService(t)
	feeds := svc.DataFeeds()
	require.NotEmpty(t, feeds)

	feed, err := svc.RefreshFeed(context.Background(), feeds[0].ID)
	require.NoError(t, err)
	assert.Equal(t, feeds[0].ID, feed.ID)

	_, err = svc.RefreshFeed(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrFeedNotFound)
}

func TestQuerySKUsCacheKeepsWhitespaceDistinct(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	ctx := context.Background()
	cached, err := NewCatalogService(ctx, catalog.StaticSource{}, cache.NewRedisDashboardCache(client, time.Minute))
	require.NoError(t, err)
	plain := newCatalogService(t)

	for _, pair := range [][2]string{{"a", " a"}, {"c", "c "}, {"WM", " wm"}} {
		first := domain.DefaultSKUQuery()
		first.Search = pair[0]
		cached.QuerySKUs(ctx, first)

		second := domain.DefaultSKUQuery()
		second.Search = pair[1]
		want := plain.QuerySKUs(ctx, second)
		got := cached.QuerySKUs(ctx, second)
		assert.Equal(t, want.Total, got.Total, "search %q after %q", pair[1], pair[0])
		assert.Equal(t, ids(want.Items), ids(got.Items), "search %q after %q", pair[1], pair[0])
	}

	first := domain.DefaultSKUQuery()
	first.Search = "a"
	second := first
	second.Search = " a"
	assert.NotEqual(t, plain.QuerySKUs(ctx, first).Total, plain.QuerySKUs(ctx, second).Total)
}

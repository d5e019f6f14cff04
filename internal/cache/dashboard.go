package cache

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/andresuchdata/tariff-risk/backend-go/internal/config"
	"github.com/andresuchdata/tariff-risk/backend-go/internal/domain"
	"github.com/redis/go-redis/v9"
)

const (
	dashboardKeyPrefix = "tariff_risk:"
	skuPageKeyPrefix   = dashboardKeyPrefix + "skus"
	kpiKey             = dashboardKeyPrefix + "overview:kpis"
	scanBatchSize      = 100
)

// DashboardCache holds computed SKU pages and overview KPIs.
type DashboardCache interface {
	GetPage(ctx context.Context, q domain.SKUQuery) (*domain.SKUPage, bool, error)
	SetPage(ctx context.Context, q domain.SKUQuery, page *domain.SKUPage) error
	GetKPIs(ctx context.Context) (*domain.OverviewKPIs, bool, error)
	SetKPIs(ctx context.Context, kpis *domain.OverviewKPIs) error
	InvalidateAll(ctx context.Context) error
}

type redisDashboardCache struct {
	client *redis.Client
	ttl    time.Duration
}

type noopDashboardCache struct{}

func NewDashboardCache(cfg config.CacheConfig) (DashboardCache, error) {
	if !cfg.Enabled {
		return &noopDashboardCache{}, nil
	}

	client, ttl, err := newRedisClient(cfg)
	if err != nil {
		return nil, err
	}

	return NewRedisDashboardCache(client, ttl), nil
}

// NewRedisDashboardCache wraps an existing client. A non-positive ttl uses the default.
func NewRedisDashboardCache(client *redis.Client, ttl time.Duration) DashboardCache {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &redisDashboardCache{client: client, ttl: ttl}
}

func NewNoopDashboardCache() DashboardCache {
	return &noopDashboardCache{}
}

func (c *redisDashboardCache) GetPage(ctx context.Context, q domain.SKUQuery) (*domain.SKUPage, bool, error) {
	var page domain.SKUPage
	ok, err := c.get(ctx, buildSKUPageKey(q), &page)
	if !ok || err != nil {
		return nil, false, err
	}
	return &page, true, nil
}

func (c *redisDashboardCache) SetPage(ctx context.Context, q domain.SKUQuery, page *domain.SKUPage) error {
	return c.set(ctx, buildSKUPageKey(q), page)
}

func (c *redisDashboardCache) GetKPIs(ctx context.Context) (*domain.OverviewKPIs, bool, error) {
	var kpis domain.OverviewKPIs
	ok, err := c.get(ctx, kpiKey, &kpis)
	if !ok || err != nil {
		return nil, false, err
	}
	return &kpis, true, nil
}

func (c *redisDashboardCache) SetKPIs(ctx context.Context, kpis *domain.OverviewKPIs) error {
	return c.set(ctx, kpiKey, kpis)
}

func (c *redisDashboardCache) InvalidateAll(ctx context.Context) error {
	return deleteKeysWithPrefix(ctx, c.client, dashboardKeyPrefix, scanBatchSize)
}

func (c *redisDashboardCache) get(ctx context.Context, key string, dst any) (bool, error) {
	payload, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("redis get failed: %w", err)
	}

	if err := json.Unmarshal(payload, dst); err != nil {
		return false, fmt.Errorf("decode dashboard cache %s: %w", key, err)
	}
	return true, nil
}

func (c *redisDashboardCache) set(ctx context.Context, key string, value any) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode dashboard cache %s: %w", key, err)
	}

	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (n *noopDashboardCache) GetPage(ctx context.Context, q domain.SKUQuery) (*domain.SKUPage, bool, error) {
	return nil, false, nil
}

func (n *noopDashboardCache) SetPage(ctx context.Context, q domain.SKUQuery, page *domain.SKUPage) error {
	return nil
}

func (n *noopDashboardCache) GetKPIs(ctx context.Context) (*domain.OverviewKPIs, bool, error) {
	return nil, false, nil
}

func (n *noopDashboardCache) SetKPIs(ctx context.Context, kpis *domain.OverviewKPIs) error {
	return nil
}

func (n *noopDashboardCache) InvalidateAll(ctx context.Context) error {
	return nil
}

// buildSKUPageKey hashes the normalized query. Search is matched as a raw
// case-insensitive substring, so it is case folded but never trimmed.
func buildSKUPageKey(q domain.SKUQuery) string {
	parts := []string{
		"search=" + strings.ToLower(q.Search),
		"action=" + strings.ToLower(q.Action),
		"sort=" + q.SortField,
		"dir=" + string(q.SortDir),
		"page=" + strconv.Itoa(q.Page),
		"size=" + strconv.Itoa(q.PageSize),
	}

	raw := strings.Join(parts, "|")
	hash := sha1.Sum([]byte(raw))
	return fmt.Sprintf("%s:%s", skuPageKeyPrefix, hex.EncodeToString(hash[:]))
}

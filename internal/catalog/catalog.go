// Package catalog holds the in-memory entity catalog the dashboard reads from.
package catalog

import (
	"context"
	"strings"

	"github.com/andresuchdata/tariff-risk/backend-go/internal/domain"
)

// Sourcing modes used to pick the domestic or international variant of a series.
const (
	ModeDomestic      = "domestic"
	ModeInternational = "international"
)

// DefaultSeriesOrigin is used when a SKU origin has no tariff history.
const DefaultSeriesOrigin = "china"

// Optional field defaults.
const (
	DefaultSKUSustainability      = 75
	DefaultSupplierSustainability = 85
	DefaultCarbonFootprint        = 5.2
	DefaultSKURating              = domain.RatingC
	DefaultSupplierRating         = domain.RatingB
)

// Data is the raw material a Catalog is built from.
type Data struct {
	SKUs       []domain.SKU
	Categories []domain.Category
	Suppliers  []domain.Supplier
	Tariffs    map[string][]domain.TariffPoint
	Margin     map[string][]domain.TariffPoint
	Quality    map[string][]domain.TariffPoint
	Logistics  map[string][]domain.TariffPoint
	Capacity   map[string][]domain.TariffPoint
	Feeds      []domain.DataFeed
}

// Catalog is read-only after construction and safe for concurrent use.
// Accessors return copies so callers can never mutate the catalog.
type Catalog struct {
	data     Data
	skuIndex map[string]int
	feedIdx  map[string]int
}

// Source loads catalog data from somewhere.
type Source interface {
	Load(ctx context.Context) (*Catalog, error)
}

// New normalizes data and indexes it.
func New(data Data) *Catalog {
	data.SKUs = cloneSKUs(data.SKUs)
	data.Suppliers = append([]domain.Supplier(nil), data.Suppliers...)
	data.Categories = append([]domain.Category(nil), data.Categories...)
	data.Feeds = append([]domain.DataFeed(nil), data.Feeds...)
	Normalize(data.SKUs, data.Suppliers)

	c := &Catalog{
		data:     data,
		skuIndex: make(map[string]int, len(data.SKUs)),
		feedIdx:  make(map[string]int, len(data.Feeds)),
	}
	for i, s := range data.SKUs {
		c.skuIndex[s.ID] = i
	}
	for i, f := range data.Feeds {
		c.feedIdx[f.ID] = i
	}
	return c
}

// Normalize fills optional fields with their documented defaults, in place.
func Normalize(skus []domain.SKU, suppliers []domain.Supplier) {
	for i := range skus {
		if skus[i].SustainabilityScore == 0 {
			skus[i].SustainabilityScore = DefaultSKUSustainability
		}
		if skus[i].CarbonFootprint == 0 {
			skus[i].CarbonFootprint = DefaultCarbonFootprint
		}
		if skus[i].EnvironmentalRating == "" {
			skus[i].EnvironmentalRating = DefaultSKURating
		}
	}
	for i := range suppliers {
		if suppliers[i].SustainabilityScore == 0 {
			suppliers[i].SustainabilityScore = DefaultSupplierSustainability
		}
		if suppliers[i].CarbonFootprint == 0 {
			suppliers[i].CarbonFootprint = DefaultCarbonFootprint
		}
		if suppliers[i].EnvironmentalRating == "" {
			suppliers[i].EnvironmentalRating = DefaultSupplierRating
		}
	}
}

// MockData returns the built-in demo dataset.
func MockData() Data {
	return Data{
		SKUs:       mockSKUs(),
		Categories: mockCategories(),
		Suppliers:  mockSuppliers(),
		Tariffs:    mockTariffSeries(),
		Margin:     modeSeries([]float64{38.5, 38.9, 39.2, 39.6, 40.1, 40.4}, []float64{34.2, 32.8, 31.5, 29.9, 28.4, 26.7}),
		Quality:    modeSeries([]float64{93, 94, 94, 95, 95, 96}, []float64{84, 83, 85, 82, 81, 80}),
		Logistics:  modeSeries([]float64{4.1, 4.0, 4.2, 4.1, 4.3, 4.2}, []float64{8.7, 9.4, 10.2, 11.6, 12.1, 13.5}),
		Capacity:   modeSeries([]float64{72, 74, 75, 77, 78, 80}, []float64{95, 94, 92, 90, 89, 87}),
		Feeds:      mockDataFeeds(),
	}
}

// StaticSource serves the built-in mock dataset.
type StaticSource struct{}

func (StaticSource) Load(_ context.Context) (*Catalog, error) {
	return New(MockData()), nil
}

// SKUs returns all SKUs in catalog order.
func (c *Catalog) SKUs() []domain.SKU {
	return cloneSKUs(c.data.SKUs)
}

// SKU looks up a SKU by id.
func (c *Catalog) SKU(id string) (domain.SKU, bool) {
	i, ok := c.skuIndex[id]
	if !ok {
		return domain.SKU{}, false
	}
	return c.data.SKUs[i], true
}

func (c *Catalog) Categories() []domain.Category {
	out := make([]domain.Category, len(c.data.Categories))
	for i, cat := range c.data.Categories {
		cat.HighRiskCountries = append([]string(nil), cat.HighRiskCountries...)
		cat.LowRiskCountries = append([]string(nil), cat.LowRiskCountries...)
		out[i] = cat
	}
	return out
}

func (c *Catalog) Suppliers() []domain.Supplier {
	return append([]domain.Supplier(nil), c.data.Suppliers...)
}

func (c *Catalog) DataFeeds() []domain.DataFeed {
	return append([]domain.DataFeed(nil), c.data.Feeds...)
}

// DataFeed looks up a feed by id.
func (c *Catalog) DataFeed(id string) (domain.DataFeed, bool) {
	i, ok := c.feedIdx[id]
	if !ok {
		return domain.DataFeed{}, false
	}
	return c.data.Feeds[i], true
}

// Data returns a copy of the raw catalog data, e.g. for seeding a database.
func (c *Catalog) Data() Data {
	d := c.data
	d.SKUs = c.SKUs()
	d.Categories = c.Categories()
	d.Suppliers = c.Suppliers()
	d.Feeds = c.DataFeeds()
	return d
}

// OriginKey maps an origin country to its tariff series key, falling back to china.
func (c *Catalog) OriginKey(origin string) string {
	key := strings.ToLower(strings.ReplaceAll(origin, " ", ""))
	if _, ok := c.data.Tariffs[key]; ok {
		return key
	}
	return DefaultSeriesOrigin
}

// Charts assembles the series shown in the SKU detail view. Domestic SKUs
// get the margin trend instead of a tariff history.
func (c *Catalog) Charts(sku domain.SKU) domain.ChartSeries {
	mode := ModeInternational
	if sku.IsDomestic {
		mode = ModeDomestic
	}

	cs := domain.ChartSeries{
		Quality:   clonePoints(c.data.Quality[mode]),
		Logistics: clonePoints(c.data.Logistics[mode]),
		Capacity:  clonePoints(c.data.Capacity[mode]),
	}
	if sku.IsDomestic {
		cs.Primary = clonePoints(c.data.Margin[ModeDomestic])
		cs.PrimaryTitle = "Margin Trend (Domestic)"
	} else {
		cs.Primary = clonePoints(c.data.Tariffs[c.OriginKey(sku.Origin)])
		cs.PrimaryTitle = "Tariff Rate History (" + sku.Origin + ")"
	}
	return cs
}

func cloneSKUs(in []domain.SKU) []domain.SKU {
	return append([]domain.SKU(nil), in...)
}

func clonePoints(in []domain.TariffPoint) []domain.TariffPoint {
	out := make([]domain.TariffPoint, len(in))
	copy(out, in)
	return out
}

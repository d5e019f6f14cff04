// Package query filters, sorts and paginates the SKU collection.
// Every function is pure: inputs are never mutated and nothing is retained between calls.
package query

import (
	"cmp"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/andresuchdata/tariff-risk/backend-go/internal/domain"
)

// DefaultSortField is used when the requested field is not a SKU attribute.
const DefaultSortField = "totalRisk"

// MinCatalogSearchLength is the shortest overview search term that produces results.
const MinCatalogSearchLength = 3

type sortKey struct {
	name    string
	compare func(a, b domain.SKU) int
}

func lowerCmp(a, b string) int {
	return strings.Compare(strings.ToLower(a), strings.ToLower(b))
}

func boolCmp(a, b bool) int {
	switch {
	case a == b:
		return 0
	case !a:
		return -1
	default:
		return 1
	}
}

var sortKeys = []sortKey{
	{"id", func(a, b domain.SKU) int { return lowerCmp(a.ID, b.ID) }},
	{"name", func(a, b domain.SKU) int { return lowerCmp(a.Name, b.Name) }},
	{"category", func(a, b domain.SKU) int { return lowerCmp(a.Category, b.Category) }},
	{"origin", func(a, b domain.SKU) int { return lowerCmp(a.Origin, b.Origin) }},
	{"spend", func(a, b domain.SKU) int { return cmp.Compare(a.Spend, b.Spend) }},
	{"tariffImpact", func(a, b domain.SKU) int { return cmp.Compare(a.TariffImpact, b.TariffImpact) }},
	{"geoRisk", func(a, b domain.SKU) int { return cmp.Compare(a.GeoRisk, b.GeoRisk) }},
	{"totalRisk", func(a, b domain.SKU) int { return cmp.Compare(a.TotalRisk, b.TotalRisk) }},
	{"action", func(a, b domain.SKU) int { return lowerCmp(string(a.Action), string(b.Action)) }},
	{"isDomestic", func(a, b domain.SKU) int { return boolCmp(a.IsDomestic, b.IsDomestic) }},
	{"currentMargin", func(a, b domain.SKU) int { return cmp.Compare(a.CurrentMargin, b.CurrentMargin) }},
	{"domesticAvailable", func(a, b domain.SKU) int { return boolCmp(a.DomesticAvailable, b.DomesticAvailable) }},
	{"currentSupplier", func(a, b domain.SKU) int { return lowerCmp(a.CurrentSupplier, b.CurrentSupplier) }},
	{"hsCode", func(a, b domain.SKU) int { return lowerCmp(a.HSCode, b.HSCode) }},
	{"sustainabilityScore", func(a, b domain.SKU) int { return cmp.Compare(a.SustainabilityScore, b.SustainabilityScore) }},
	{"carbonFootprint", func(a, b domain.SKU) int { return cmp.Compare(a.CarbonFootprint, b.CarbonFootprint) }},
	{"environmentalRating", func(a, b domain.SKU) int {
		return lowerCmp(string(a.EnvironmentalRating), string(b.EnvironmentalRating))
	}},
	{"qualityScore", func(a, b domain.SKU) int { return cmp.Compare(a.QualityScore, b.QualityScore) }},
	{"transitDays", func(a, b domain.SKU) int { return cmp.Compare(a.TransitDays, b.TransitDays) }},
}

// sortIndex accepts camelCase and snake_case names ("totalRisk", "total_risk").
var sortIndex = func() map[string]sortKey {
	m := make(map[string]sortKey, len(sortKeys))
	for _, k := range sortKeys {
		m[fieldKey(k.name)] = k
	}
	return m
}()

func fieldKey(field string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(field), "_", ""))
}

// NormalizeSortField returns the canonical field name, falling back to DefaultSortField.
func NormalizeSortField(field string) string {
	if k, ok := sortIndex[fieldKey(field)]; ok {
		return k.name
	}
	return DefaultSortField
}

// sortFields lists the sortable SKU attributes.
func sortFields() []string {
	out := make([]string, len(sortKeys))
	for i, k := range sortKeys {
		out[i] = k.name
	}
	return out
}

// Matches reports whether any of name, id or origin contains search, ignoring case.
// An empty search matches everything.
func Matches(sku domain.SKU, search string) bool {
	if search == "" {
		return true
	}
	term := strings.ToLower(search)
	return strings.Contains(strings.ToLower(sku.Name), term) ||
		strings.Contains(strings.ToLower(sku.ID), term) ||
		strings.Contains(strings.ToLower(sku.Origin), term)
}

// MatchesAction passes everything for "all" (or empty), otherwise requires an exact match.
func MatchesAction(sku domain.SKU, action string) bool {
	if action == "" || action == domain.ActionAll {
		return true
	}
	return string(sku.Action) == action
}

// Filter applies search AND action filter, preserving input order.
func Filter(skus []domain.SKU, search, action string) []domain.SKU {
	out := make([]domain.SKU, 0, len(skus))
	for _, s := range skus {
		if Matches(s, search) && MatchesAction(s, action) {
			out = append(out, s)
		}
	}
	return out
}

// Sort returns a sorted copy. Ties are broken by SKU id in the same direction,
// so desc is always the exact reverse of asc.
func Sort(skus []domain.SKU, field string, dir domain.SortDirection) []domain.SKU {
	key := sortIndex[fieldKey(NormalizeSortField(field))]
	out := slices.Clone(skus)
	slices.SortStableFunc(out, func(a, b domain.SKU) int {
		c := key.compare(a, b)
		if c == 0 {
			c = strings.Compare(a.ID, b.ID)
		}
		if dir == domain.SortDesc {
			return -c
		}
		return c
	})
	return out
}

// Page is one slice of an ordered result.
type Page struct {
	Items      []domain.SKU
	Total      int
	Page       int
	PageSize   int
	TotalPages int
}

// Paginate returns rows [(page-1)*size, page*size) with page clamped to
// [1, max(1, ceil(total/size))].
func Paginate(rows []domain.SKU, page, size int) Page {
	if size <= 0 {
		size = domain.DashboardPageSize
	}
	total := len(rows)
	totalPages := (total + size - 1) / size
	if totalPages < 1 {
		totalPages = 1
	}
	page = ClampPage(page, totalPages)

	start := (page - 1) * size
	end := min(start+size, total)
	items := make([]domain.SKU, 0, end-start)
	if start < end {
		items = append(items, rows[start:end]...)
	}

	return Page{
		Items:      items,
		Total:      total,
		Page:       page,
		PageSize:   size,
		TotalPages: totalPages,
	}
}

// ClampPage limits page to [1, totalPages].
func ClampPage(page, totalPages int) int {
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		return 1
	}
	if page > totalPages {
		return totalPages
	}
	return page
}

// Run filters, sorts and paginates the catalog for one dashboard query.
func Run(skus []domain.SKU, q domain.SKUQuery) domain.SKUPage {
	filtered := Filter(skus, q.Search, q.Action)
	sorted := Sort(filtered, q.SortField, q.SortDir)
	p := Paginate(sorted, q.Page, q.PageSize)

	result := domain.SKUPage{
		Items:      p.Items,
		Total:      p.Total,
		CatalogSKU: len(skus),
		Page:       p.Page,
		PageSize:   p.PageSize,
		TotalPages: p.TotalPages,
	}
	if p.Total > 0 {
		result.From = (p.Page-1)*p.PageSize + 1
		result.To = result.From + len(p.Items) - 1
	}
	return result
}

// SearchCatalog is the overview search over name, category and id. Terms
// shorter than MinCatalogSearchLength return nil.
func SearchCatalog(skus []domain.SKU, term string) []domain.SKU {
	if utf8.RuneCountInString(term) < MinCatalogSearchLength {
		return nil
	}
	t := strings.ToLower(term)
	out := make([]domain.SKU, 0)
	for _, s := range skus {
		if strings.Contains(strings.ToLower(s.Name), t) ||
			strings.Contains(strings.ToLower(s.Category), t) ||
			strings.Contains(strings.ToLower(s.ID), t) {
			out = append(out, s)
		}
	}
	return out
}

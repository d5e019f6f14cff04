// Package analytics derives the summary numbers shown on the overview and in reports.
package analytics

import (
	"github.com/andresuchdata/tariff-risk/backend-go/internal/domain"
	"github.com/shopspring/decimal"
)

const (
	// HighRiskThreshold is the totalRisk at which a SKU counts as high risk.
	HighRiskThreshold = 80
	// MediumRiskThreshold is the lower bound of the medium band.
	MediumRiskThreshold = 60
	// FlaggedCategoryThreshold is the category riskScore that flags a category for review.
	FlaggedCategoryThreshold = 70

	MinTariffIncrease = 5
	MaxTariffIncrease = 20
)

// Round rounds half away from zero to the given number of places.
func Round(v float64, places int32) float64 {
	f, _ := decimal.NewFromFloat(v).Round(places).Float64()
	return f
}

// Fixed formats v with exactly places decimals, rounding half away from zero.
func Fixed(v float64, places int32) string {
	return decimal.NewFromFloat(v).StringFixed(places)
}

// Millions formats an amount in millions with two decimals, e.g. 12500000 -> "12.50".
func Millions(v float64) string {
	return decimal.NewFromFloat(v).Div(decimal.NewFromInt(1_000_000)).StringFixed(2)
}

// FormatCurrency renders amounts of a million or more as "$X.XM" and the rest as "$XK".
func FormatCurrency(amount float64) string {
	d := decimal.NewFromFloat(amount)
	if amount >= 1_000_000 {
		return "$" + d.Div(decimal.NewFromInt(1_000_000)).StringFixed(1) + "M"
	}
	return "$" + d.Div(decimal.NewFromInt(1_000)).StringFixed(0) + "K"
}

// IsHighRisk reports whether a SKU is in the high-risk band.
func IsHighRisk(sku domain.SKU) bool {
	return sku.TotalRisk >= HighRiskThreshold
}

// HighRiskSKUs returns the SKUs with totalRisk >= 80 in input order.
func HighRiskSKUs(skus []domain.SKU) []domain.SKU {
	out := make([]domain.SKU, 0)
	for _, s := range skus {
		if IsHighRisk(s) {
			out = append(out, s)
		}
	}
	return out
}

// HighRiskPercentage is round(100 * highRisk / total), 0 for an empty catalog.
func HighRiskPercentage(skus []domain.SKU) int {
	if len(skus) == 0 {
		return 0
	}
	pct := decimal.NewFromInt(int64(len(HighRiskSKUs(skus)))).
		Mul(decimal.NewFromInt(100)).
		Div(decimal.NewFromInt(int64(len(skus)))).
		Round(0)
	return int(pct.IntPart())
}

// TotalAtRisk sums amountAtRisk over all categories.
func TotalAtRisk(categories []domain.Category) float64 {
	sum := decimal.Zero
	for _, c := range categories {
		sum = sum.Add(decimal.NewFromFloat(c.AmountAtRisk))
	}
	f, _ := sum.Float64()
	return f
}

// HighRiskCategories returns categories that list at least one high-risk country.
func HighRiskCategories(categories []domain.Category) []domain.Category {
	out := make([]domain.Category, 0)
	for _, c := range categories {
		if len(c.HighRiskCountries) > 0 {
			out = append(out, c)
		}
	}
	return out
}

// FlaggedCategories are categories with riskScore >= 70 that are not marked maintain.
func FlaggedCategories(categories []domain.Category) []domain.Category {
	out := make([]domain.Category, 0)
	for _, c := range categories {
		if c.RiskScore >= FlaggedCategoryThreshold && c.Action != domain.ActionMaintain {
			out = append(out, c)
		}
	}
	return out
}

// CategoriesRequiringAction counts categories whose action is shift.
func CategoriesRequiringAction(categories []domain.Category) int {
	n := 0
	for _, c := range categories {
		if c.Action == domain.ActionShift {
			n++
		}
	}
	return n
}

// KPIs computes the overview cards over the unfiltered catalog.
func KPIs(skus []domain.SKU, categories []domain.Category) domain.OverviewKPIs {
	total := TotalAtRisk(categories)
	return domain.OverviewKPIs{
		TotalSKUs:                 len(skus),
		HighRiskSKUs:              len(HighRiskSKUs(skus)),
		HighRiskPercentage:        HighRiskPercentage(skus),
		TotalAtRisk:               total,
		TotalAtRiskDisplay:        FormatCurrency(total),
		HighRiskCategories:        len(HighRiskCategories(categories)),
		CategoriesRequiringAction: CategoriesRequiringAction(categories),
	}
}

// PotentialAnnualLoss is spend * tariffImpact / 100.
func PotentialAnnualLoss(sku domain.SKU) float64 {
	f, _ := decimal.NewFromFloat(sku.Spend).
		Mul(decimal.NewFromFloat(sku.TariffImpact)).
		Div(decimal.NewFromInt(100)).
		Float64()
	return f
}

// SKUsInCategory matches SKUs to a category by name.
func SKUsInCategory(skus []domain.SKU, category string) []domain.SKU {
	out := make([]domain.SKU, 0)
	for _, s := range skus {
		if s.Category == category {
			out = append(out, s)
		}
	}
	return out
}

// Rollups joins every category with its SKUs. AvgMargin is 0 for a category without SKUs.
func Rollups(categories []domain.Category, skus []domain.SKU) []domain.CategoryRollup {
	out := make([]domain.CategoryRollup, 0, len(categories))
	for _, c := range categories {
		members := SKUsInCategory(skus, c.Name)

		margin, spend := decimal.Zero, decimal.Zero
		for _, s := range members {
			margin = margin.Add(decimal.NewFromFloat(s.CurrentMargin))
			spend = spend.Add(decimal.NewFromFloat(s.Spend))
		}
		avg := decimal.Zero
		if len(members) > 0 {
			avg = margin.Div(decimal.NewFromInt(int64(len(members))))
		}

		avgF, _ := avg.Float64()
		spendF, _ := spend.Float64()
		out = append(out, domain.CategoryRollup{
			Category:    c,
			SKUCount:    len(members),
			AvgMargin:   avgF,
			TotalSpend:  spendF,
			RiskLevel:   domain.RiskLevel(c.RiskScore),
			AmountLabel: FormatCurrency(c.AmountAtRisk),
		})
	}
	return out
}

// ClampTariffIncrease limits the scenario slider to [5,20].
func ClampTariffIncrease(delta float64) float64 {
	if delta < MinTariffIncrease {
		return MinTariffIncrease
	}
	if delta > MaxTariffIncrease {
		return MaxTariffIncrease
	}
	return delta
}

// Project computes the tariff-increase scenario for a SKU. delta is clamped to [5,20].
func Project(sku domain.SKU, delta float64) domain.Scenario {
	delta = ClampTariffIncrease(delta)
	loss, _ := decimal.NewFromFloat(sku.Spend).
		Mul(decimal.NewFromFloat(delta)).
		Div(decimal.NewFromInt(100)).
		Float64()

	return domain.Scenario{
		SKUID:          sku.ID,
		TariffIncrease: delta,
		ProjectedLoss:  loss,
		MarginImpact:   -delta,
		ProjectedLabel: FormatCurrency(loss),
	}
}

package export

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/andresuchdata/tariff-risk/backend-go/internal/analytics"
	"github.com/andresuchdata/tariff-risk/backend-go/internal/domain"
)

const (
	SourcingReportTitle   = "Walmart Sourcing Intelligence Report"
	ExecutiveSummaryTitle = "Executive Summary"

	// alternativesThreshold is the totalRisk from which the report lists suppliers.
	alternativesThreshold = 60
	maxReportAlternatives = 3
	footerDateLayout      = "1/2/2006"
)

// StrategicRecommendations close the executive summary.
var StrategicRecommendations = []string{
	"1. Prioritize shifting high-risk Electronics and Apparel sourcing to domestic suppliers",
	"2. Implement quarterly risk assessment reviews for all international suppliers",
	"3. Develop strategic partnerships with NAFTA suppliers as intermediate risk option",
	"4. Invest in supply chain diversification to reduce single-country dependencies",
	"5. Focus on sustainability metrics to align with corporate environmental goals",
}

// RiskBand is the uppercase band label used in report prose.
func RiskBand(score float64) string {
	return strings.ToUpper(domain.RiskLevel(score)) + " RISK"
}

// reportAlternatives takes the first recommended suppliers in catalog order
// and orders them by marginChange descending.
func reportAlternatives(suppliers []domain.Supplier) []domain.Supplier {
	picked := make([]domain.Supplier, 0, maxReportAlternatives)
	for _, s := range suppliers {
		if s.IsRecommended {
			picked = append(picked, s)
			if len(picked) == maxReportAlternatives {
				break
			}
		}
	}
	slices.SortStableFunc(picked, func(a, b domain.Supplier) int {
		return cmp.Compare(b.MarginChange, a.MarginChange)
	})
	return picked
}

func signedPercent(v float64) string {
	s := analytics.Fixed(v, 1) + "%"
	if v > 0 {
		return "+" + s
	}
	return s
}

func millionsLabel(v float64) string {
	return "$" + analytics.Fixed(v/1_000_000, 1) + "M"
}

// SourcingReport lays out the per-SKU sourcing report.
func SourcingReport(sku domain.SKU, suppliers []domain.Supplier, generated time.Time) Document {
	l := newLayout(SourcingReportTitle, SourcingReportFilename(sku.ID))

	l.heading(SourcingReportTitle, SideMargin, 25, 20, BrandBlue)
	l.heading("SKU Analysis: "+sku.Name, SideMargin, 40, 16, Black)

	l.labeled("SKU ID", sku.ID, SideMargin, 55, 12)
	l.labeled("Category", sku.Category, SideMargin, 65, 12)
	l.labeled("Current Origin", sku.Origin, SideMargin, 75, 12)
	l.labeled("Annual Spend", millionsLabel(sku.Spend), SideMargin, 85, 12)
	l.labeled("Current Margin", analytics.Fixed(sku.CurrentMargin, 1)+"%", 120, 55, 12)
	l.labeled("Risk Score", plain(sku.TotalRisk), 120, 65, 12)
	l.labeled("Tariff Impact", plain(sku.TariffImpact)+"%", 120, 75, 12)
	l.labeled("Recommended Action", strings.ToUpper(string(sku.Action)), 120, 85, 12)

	l.heading("Risk Assessment", SideMargin, 105, 14, BrandBlue)
	l.paragraph(fmt.Sprintf(
		"This SKU has a total risk score of %s, which is considered %s. The primary risk factors include tariff exposure of %s%% and geopolitical risk score of %s.",
		plain(sku.TotalRisk), RiskBand(sku.TotalRisk), plain(sku.TariffImpact), plain(sku.GeoRisk),
	), SideMargin, 115, 10)

	y := 130.0
	withAlternatives := sku.TotalRisk >= alternativesThreshold
	if withAlternatives {
		l.heading("Recommended Supplier Alternatives", SideMargin, 140, 14, BrandBlue)
		y = 150
		for i, s := range reportAlternatives(suppliers) {
			l.text(fmt.Sprintf("%d. %s (%s)", i+1, s.SupplierName, s.Country), 25, y, 12)
			l.bullet("Margin Impact: "+signedPercent(s.MarginChange), 30, y+8, 10)
			l.bullet("Transit Time: "+strconv.Itoa(s.TransitDays)+" days", 30, y+16, 10)
			l.bullet("Quality Score: "+plain(s.QualityScore), 30, y+24, 10)
			l.bullet("Sustainability Score: "+plain(s.SustainabilityScore), 30, y+32, 10)
			y += 45
		}
	}

	l.heading("Financial Impact Analysis", SideMargin, y+10, 14, BrandBlue)
	l.labeled("Current Annual Exposure", millionsLabel(analytics.PotentialAnnualLoss(sku)), 25, y+25, 10)
	if withAlternatives {
		if best, ok := firstRecommended(suppliers); ok {
			l.labeled("Potential Annual Savings", millionsLabel(best.AnnualSavings), 25, y+35, 10)
			l.labeled("ROI Timeline", "6-12 months", 25, y+45, 10)
		}
	}

	l.footer("Generated on "+generated.Format(footerDateLayout)+" | Walmart Sourcing Intelligence", 8)
	return l.finish()
}

func firstRecommended(suppliers []domain.Supplier) (domain.Supplier, bool) {
	for _, s := range suppliers {
		if s.IsRecommended {
			return s, true
		}
	}
	return domain.Supplier{}, false
}

// ExecutiveSummary lays out the portfolio-level summary.
func ExecutiveSummary(skus []domain.SKU, categories []domain.Category) Document {
	l := newLayout(ExecutiveSummaryTitle, ExecutiveSummaryFilename)
	k := analytics.KPIs(skus, categories)

	l.heading(ExecutiveSummaryTitle, SideMargin, 25, 24, BrandBlue)
	l.heading("Sourcing Risk Assessment", SideMargin, 35, 24, BrandBlue)

	l.heading("Key Performance Indicators", SideMargin, 55, 16, Black)
	l.bullet("Total SKUs Monitored: "+strconv.Itoa(k.TotalSKUs), 25, 70, 12)
	l.bullet(fmt.Sprintf("High-Risk SKUs: %d (%d%%)", k.HighRiskSKUs, k.HighRiskPercentage), 25, 80, 12)
	l.bullet("Total Exposure: "+millionsLabel(k.TotalAtRisk), 25, 90, 12)
	l.bullet("Categories Requiring Action: "+strconv.Itoa(k.CategoriesRequiringAction), 25, 100, 12)

	l.heading("Strategic Recommendations", SideMargin, 120, 16, BrandBlue)
	y := 135.0
	for _, rec := range StrategicRecommendations {
		n := l.paragraph(rec, 25, y, 12)
		y += float64(n)*7 + 5
	}

	return l.finish()
}

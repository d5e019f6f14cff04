package export

import (
	"strconv"
	"strings"

	"github.com/andresuchdata/tariff-risk/backend-go/internal/analytics"
	"github.com/andresuchdata/tariff-risk/backend-go/internal/domain"
)

const (
	HighRiskSKUsFilename         = "walmart-high-risk-skus.csv"
	CategoryAnalysisFilename     = "walmart-category-analysis.csv"
	SupplierAlternativesFilename = "walmart-supplier-alternatives.csv"
	ExecutiveSummaryFilename     = "walmart-executive-summary.pdf"

	ContentTypeCSV = "text/csv; charset=utf-8"
	ContentTypePDF = "application/pdf"
)

// SourcingReportFilename names the per-SKU PDF report.
func SourcingReportFilename(skuID string) string {
	return "walmart-sourcing-report-" + skuID + ".pdf"
}

var (
	HighRiskSKUsHeader = []string{
		"SKU ID",
		"Product Name",
		"Category",
		"Origin Country",
		"Annual Spend ($M)",
		"Current Margin (%)",
		"Tariff Impact (%)",
		"Geo Risk Score",
		"Total Risk Score",
		"Recommended Action",
		"Current Supplier",
		"HS Code",
		"Domestic Available",
		"Potential Annual Loss ($M)",
	}
	CategoryAnalysisHeader = []string{
		"Category",
		"Risk Score",
		"Amount at Risk ($M)",
		"High Risk Countries",
		"Low Risk Countries",
		"Recommended Action",
		"SKU Count",
		"Avg Margin (%)",
		"Total Annual Spend ($M)",
	}
	SupplierAlternativesHeader = []string{
		"Supplier Name",
		"Country/Location",
		"Supplier Type",
		"Margin Change (%)",
		"Annual Savings ($M)",
		"Tariff Rate (%)",
		"Transit Days",
		"Quality Score",
		"Sustainability Score",
		"Logistics Score",
		"Cost Per Unit ($)",
		"Capacity",
		"Recommended",
	}
)

// Artifact is an encoded export ready to be served or stored.
type Artifact struct {
	Filename    string
	ContentType string
	Data        []byte
}

func plain(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

// HighRiskSKUs lists SKUs with totalRisk >= 80 in catalog order.
func HighRiskSKUs(skus []domain.SKU) Table {
	t := Table{Header: HighRiskSKUsHeader}
	for _, s := range analytics.HighRiskSKUs(skus) {
		t.Rows = append(t.Rows, []Cell{
			Str(s.ID),
			Str(s.Name),
			Str(s.Category),
			Str(s.Origin),
			Num(analytics.Millions(s.Spend)),
			Num(analytics.Fixed(s.CurrentMargin, 1)),
			Num(analytics.Fixed(s.TariffImpact, 1)),
			Num(plain(s.GeoRisk)),
			Num(plain(s.TotalRisk)),
			Str(string(s.Action)),
			Str(s.CurrentSupplier),
			Str(s.HSCode),
			Str(yesNo(s.DomesticAvailable)),
			Num(analytics.Millions(analytics.PotentialAnnualLoss(s))),
		})
	}
	return t
}

// CategoryAnalysis joins each category with its SKU rollup.
func CategoryAnalysis(categories []domain.Category, skus []domain.SKU) Table {
	t := Table{Header: CategoryAnalysisHeader}
	for _, r := range analytics.Rollups(categories, skus) {
		c := r.Category
		t.Rows = append(t.Rows, []Cell{
			Str(c.Name),
			Num(plain(c.RiskScore)),
			Num(analytics.Millions(c.AmountAtRisk)),
			Str(strings.Join(c.HighRiskCountries, ", ")),
			Str(strings.Join(c.LowRiskCountries, ", ")),
			Str(string(c.Action)),
			Num(strconv.Itoa(r.SKUCount)),
			Num(analytics.Fixed(r.AvgMargin, 1)),
			Num(analytics.Millions(r.TotalSpend)),
		})
	}
	return t
}

// SupplierAlternatives lists every supplier in catalog order.
func SupplierAlternatives(suppliers []domain.Supplier) Table {
	t := Table{Header: SupplierAlternativesHeader}
	for _, s := range suppliers {
		savings := "0"
		if s.AnnualSavings != 0 {
			savings = analytics.Millions(s.AnnualSavings)
		}
		t.Rows = append(t.Rows, []Cell{
			Str(s.SupplierName),
			Str(s.Country),
			Str(string(s.SupplierType)),
			Num(analytics.Fixed(s.MarginChange, 1)),
			Num(savings),
			Num(analytics.Fixed(s.TariffRate, 1)),
			Num(strconv.Itoa(s.TransitDays)),
			Num(plain(s.QualityScore)),
			Num(plain(s.SustainabilityScore)),
			Num(plain(s.LogisticsScore)),
			Num(analytics.Fixed(s.CostPerUnit, 2)),
			Str(s.Capacity),
			Str(yesNo(s.IsRecommended)),
		})
	}
	return t
}

// CSVArtifact wraps an encoded table.
func CSVArtifact(filename string, t Table) Artifact {
	return Artifact{Filename: filename, ContentType: ContentTypeCSV, Data: t.Bytes()}
}

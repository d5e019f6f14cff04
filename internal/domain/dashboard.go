package domain

// SortDirection orders query results
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// DashboardPageSize is the fixed row count of the SKU table.
const DashboardPageSize = 10

// SKUQuery describes the dashboard table view: search, action filter, sort and page
type SKUQuery struct {
	Search    string        `json:"search"`
	Action    string        `json:"action"` // "all" or one of the Action values
	SortField string        `json:"sort_field"`
	SortDir   SortDirection `json:"sort_direction"`
	Page      int           `json:"page"`
	PageSize  int           `json:"page_size"`
}

// DefaultSKUQuery mirrors the initial state of the dashboard table.
func DefaultSKUQuery() SKUQuery {
	return SKUQuery{
		Action:    ActionAll,
		SortField: "totalRisk",
		SortDir:   SortDesc,
		Page:      1,
		PageSize:  DashboardPageSize,
	}
}

// SKUPage is the paginated result of a SKU query
type SKUPage struct {
	Items      []SKU `json:"items"`
	Total      int   `json:"total"`       // rows matching search and filter
	CatalogSKU int   `json:"catalog_sku"` // rows in the unfiltered catalog
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalPages int   `json:"total_pages"`
	From       int   `json:"from"` // 1-based index of the first row shown, 0 when empty
	To         int   `json:"to"`
}

// OverviewKPIs are the summary cards of the Overview view
type OverviewKPIs struct {
	TotalSKUs                 int     `json:"total_skus"`
	HighRiskSKUs              int     `json:"high_risk_skus"`
	HighRiskPercentage        int     `json:"high_risk_percentage"`
	TotalAtRisk               float64 `json:"total_at_risk"`
	TotalAtRiskDisplay        string  `json:"total_at_risk_display"`
	HighRiskCategories        int     `json:"high_risk_categories"`
	CategoriesRequiringAction int     `json:"categories_requiring_action"`
}

// CategoryRollup joins a category with the SKUs that carry its name
type CategoryRollup struct {
	Category    Category `json:"category"`
	SKUCount    int      `json:"sku_count"`
	AvgMargin   float64  `json:"avg_margin"`
	TotalSpend  float64  `json:"total_spend"`
	RiskLevel   string   `json:"risk_level"`
	AmountLabel string   `json:"amount_label"`
}

// Scenario is the tariff-increase projection for one SKU
type Scenario struct {
	SKUID          string  `json:"sku_id"`
	TariffIncrease float64 `json:"tariff_increase"`
	ProjectedLoss  float64 `json:"projected_loss"`
	MarginImpact   float64 `json:"margin_impact"`
	ProjectedLabel string  `json:"projected_label"`
}

// Alternative is an eligible supplier ranked for a SKU
type Alternative struct {
	Supplier      Supplier `json:"supplier"`
	AnnualSavings float64  `json:"annual_savings"`
	TypeLabel     string   `json:"type_label"`
}

// SourcingState distinguishes the empty and non-empty alternatives outcomes
type SourcingState string

const (
	SourcingAvailable    SourcingState = "available"
	SourcingOptimal      SourcingState = "optimal"       // gated: current sourcing needs no change
	SourcingNoneEligible SourcingState = "none_eligible" // passed the gate, nothing matched
)

// SourcingAssessment is the alternatives tab of a SKU
type SourcingAssessment struct {
	SKUID           string        `json:"sku_id"`
	State           SourcingState `json:"state"`
	Alternatives    []Alternative `json:"alternatives"`
	Recommendations []string      `json:"recommendations"`
}

// ChartSeries groups the time series shown for a SKU
type ChartSeries struct {
	Primary      []TariffPoint `json:"primary"`
	PrimaryTitle string        `json:"primary_title"`
	Quality      []TariffPoint `json:"quality"`
	Logistics    []TariffPoint `json:"logistics"`
	Capacity     []TariffPoint `json:"capacity"`
}

// backend-go/internal/domain/models.go
package domain

// SKU represents a sourced product line
type SKU struct {
	ID                  string  `json:"id" db:"id"`
	Name                string  `json:"name" db:"name"`
	Category            string  `json:"category" db:"category"`
	Origin              string  `json:"origin" db:"origin"`
	Spend               float64 `json:"spend" db:"spend"`
	TariffImpact        float64 `json:"tariff_impact" db:"tariff_impact"`
	GeoRisk             float64 `json:"geo_risk" db:"geo_risk"`
	TotalRisk           float64 `json:"total_risk" db:"total_risk"` // precomputed upstream, never derived here
	Action              Action  `json:"action" db:"action"`
	IsDomestic          bool    `json:"is_domestic" db:"is_domestic"`
	CurrentMargin       float64 `json:"current_margin" db:"current_margin"`
	DomesticAvailable   bool    `json:"domestic_available" db:"domestic_available"`
	CurrentSupplier     string  `json:"current_supplier" db:"current_supplier"`
	HSCode              string  `json:"hs_code" db:"hs_code"`
	SustainabilityScore float64 `json:"sustainability_score" db:"sustainability_score"`
	CarbonFootprint     float64 `json:"carbon_footprint" db:"carbon_footprint"`
	EnvironmentalRating Rating  `json:"environmental_rating" db:"environmental_rating"`
	QualityScore        float64 `json:"quality_score" db:"quality_score"`
	TransitDays         int     `json:"transit_days" db:"transit_days"`
}

// Category aggregates SKUs sharing a product category. SKUs are matched by name.
type Category struct {
	Name              string   `json:"name" db:"name"`
	HighRiskCountries []string `json:"high_risk_countries" db:"-"`
	LowRiskCountries  []string `json:"low_risk_countries" db:"-"`
	RiskScore         float64  `json:"risk_score" db:"risk_score"`
	AmountAtRisk      float64  `json:"amount_at_risk" db:"amount_at_risk"`
	Action            Action   `json:"action" db:"action"`
}

// Supplier represents a candidate sourcing option
type Supplier struct {
	ID                  string       `json:"id" db:"id"`
	SupplierName        string       `json:"supplier_name" db:"supplier_name"`
	Country             string       `json:"country" db:"country"`
	MarginChange        float64      `json:"margin_change" db:"margin_change"`
	Distance            float64      `json:"distance" db:"distance"`
	TransitDays         int          `json:"transit_days" db:"transit_days"`
	LogisticsScore      float64      `json:"logistics_score" db:"logistics_score"`
	IsDomestic          bool         `json:"is_domestic" db:"is_domestic"`
	SupplierType        SupplierType `json:"supplier_type" db:"supplier_type"`
	IsRecommended       bool         `json:"is_recommended" db:"is_recommended"`
	TariffRate          float64      `json:"tariff_rate" db:"tariff_rate"`
	QualityScore        float64      `json:"quality_score" db:"quality_score"`
	CostPerUnit         float64      `json:"cost_per_unit" db:"cost_per_unit"`
	Capacity            string       `json:"capacity" db:"capacity"`
	AnnualSavings       float64      `json:"annual_savings" db:"annual_savings"`
	SustainabilityScore float64      `json:"sustainability_score" db:"sustainability_score"`
	CarbonFootprint     float64      `json:"carbon_footprint" db:"carbon_footprint"`
	EnvironmentalRating Rating       `json:"environmental_rating" db:"environmental_rating"`
}

// TariffPoint is a single time-series observation used by the charts
type TariffPoint struct {
	Date  string  `json:"date" db:"date"` // YYYY-MM-DD
	Rate  float64 `json:"rate" db:"rate"`
	Event string  `json:"event,omitempty" db:"event"`
}

// DataFeed is a static status record shown on the Admin view
type DataFeed struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	LastUpdate  string     `json:"last_update"`
	Status      FeedStatus `json:"status"`
	Frequency   string     `json:"frequency"`
	NextUpdate  string     `json:"next_update"`
}

// NewSKUOption describes a sourcing option for a product that is not yet in the catalog
type NewSKUOption struct {
	Type            string   `json:"type"` // domestic or international
	Country         string   `json:"country"`
	EstimatedMargin float64  `json:"estimated_margin"`
	RiskScore       float64  `json:"risk_score"`
	TransitDays     int      `json:"transit_days"`
	TariffRate      float64  `json:"tariff_rate"`
	Advantages      []string `json:"advantages"`
	Disadvantages   []string `json:"disadvantages"`
	SupplierName    string   `json:"supplier_name"`
	CostPerUnit     float64  `json:"cost_per_unit"`
	QualityScore    float64  `json:"quality_score"`
	Capacity        string   `json:"capacity"`
	AnnualSavings   float64  `json:"annual_savings"`
	MarginIncrease  float64  `json:"margin_increase"`
}

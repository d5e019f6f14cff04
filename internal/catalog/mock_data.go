package catalog

import "github.com/andresuchdata/tariff-risk/backend-go/internal/domain"

func sku(id, name, category, origin string, spend, tariff, geo, total float64, action domain.Action, domestic bool, margin float64, domesticAvailable bool, supplier, hsCode string) domain.SKU {
	return domain.SKU{
		ID:                id,
		Name:              name,
		Category:          category,
		Origin:            origin,
		Spend:             spend,
		TariffImpact:      tariff,
		GeoRisk:           geo,
		TotalRisk:         total,
		Action:            action,
		IsDomestic:        domestic,
		CurrentMargin:     margin,
		DomesticAvailable: domesticAvailable,
		CurrentSupplier:   supplier,
		HSCode:            hsCode,
	}
}

func mockSKUs() []domain.SKU {
	skus := []domain.SKU{
		sku("WM001", "Samsung 55\" 4K Smart TV", "Electronics", "South Korea", 12500000, 25, 72, 85, domain.ActionShift, false, 18.5, true, "Samsung Electronics", "8528.72.64"),
		sku("WM002", "iPhone 15 Protective Case", "Electronics", "China", 3400000, 32.5, 88, 92, domain.ActionShift, false, 42.3, true, "Shenzhen Case Co.", "4202.32.95"),
		sku("WM003", "Men's Cotton T-Shirt 3-Pack", "Apparel", "Bangladesh", 8900000, 16.5, 64, 71, domain.ActionMonitor, false, 35.8, true, "Dhaka Garments Ltd.", "6109.10.00"),
		sku("WM004", "Great Value Peanut Butter 40oz", "Food & Beverage", "United States", 5600000, 0, 8, 12, domain.ActionMaintain, true, 22.1, true, "Hormel Foods", "2008.11.05"),
		sku("WM005", "Wireless Bluetooth Earbuds", "Electronics", "China", 6700000, 30, 85, 89, domain.ActionShift, false, 38.7, false, "Guangzhou Audio Tech", "8518.30.20"),
		sku("WM006", "Women's Denim Jeans", "Apparel", "Vietnam", 7200000, 12, 45, 58, domain.ActionMonitor, false, 41.2, true, "Saigon Textile Corp.", "6204.62.40"),
		sku("WM007", "Mainstays 6-Piece Patio Set", "Home & Garden", "China", 4300000, 25, 82, 84, domain.ActionShift, false, 28.4, true, "Ningbo Outdoor Living", "9401.79.00"),
		sku("WM008", "Equate Ibuprofen 200mg 500ct", "Health & Beauty", "India", 2900000, 8.5, 38, 44, domain.ActionMaintain, false, 52.6, true, "Sun Pharma", "3004.90.92"),
		sku("WM009", "LEGO Classic Creative Box", "Toys", "Mexico", 3800000, 0, 22, 26, domain.ActionMaintain, false, 31.5, false, "LEGO Mexico", "9503.00.00"),
		sku("WM010", "Hamilton Beach Coffee Maker", "Home & Garden", "China", 5100000, 25, 80, 81, domain.ActionShift, false, 26.9, true, "Foshan Appliance Works", "8516.71.00"),
		sku("WM011", "Ozark Trail 4-Person Tent", "Sports & Outdoors", "Vietnam", 2200000, 14, 48, 61, domain.ActionMonitor, false, 33.4, true, "Hanoi Outdoor Gear", "6306.22.90"),
		sku("WM012", "Great Value Whole Milk 1gal", "Food & Beverage", "United States", 9800000, 0, 5, 8, domain.ActionMaintain, true, 12.4, true, "Dairy Farmers of America", "0401.20.20"),
		sku("WM013", "onn. 32\" HD Roku TV", "Electronics", "China", 7900000, 25, 84, 87, domain.ActionShift, false, 16.2, true, "TCL Huizhou", "8528.72.64"),
		sku("WM014", "Hanes Men's Crew Socks 12pk", "Apparel", "Honduras", 3100000, 3.5, 30, 35, domain.ActionMaintain, false, 39.8, true, "Gildan Honduras", "6115.95.90"),
		sku("WM015", "Barbie Dreamhouse", "Toys", "China", 4600000, 25, 78, 79, domain.ActionShift, false, 29.7, false, "Mattel Dongguan", "9503.00.00"),
		sku("WM016", "Mainstays Bath Towel Set", "Home & Garden", "Pakistan", 1800000, 9.5, 62, 66, domain.ActionMonitor, false, 36.1, true, "Karachi Home Textiles", "6302.60.00"),
		sku("WM017", "Equate Daily Moisturizer", "Health & Beauty", "United States", 2500000, 0, 6, 10, domain.ActionMaintain, true, 48.2, true, "Edgewell Personal Care", "3304.99.50"),
		sku("WM018", "Hyper Tough 20V Drill", "Tools", "China", 3300000, 25, 81, 83, domain.ActionShift, false, 24.6, true, "Ningbo Power Tools", "8467.21.00"),
		sku("WM019", "Athletic Works Running Shoes", "Apparel", "Vietnam", 6100000, 20, 52, 74, domain.ActionMonitor, false, 37.4, true, "Ho Chi Minh Footwear", "6404.11.90"),
		sku("WM020", "Great Value Frozen Berries", "Food & Beverage", "Mexico", 2700000, 0, 24, 28, domain.ActionMaintain, false, 19.8, true, "Driscoll's Mexico", "0811.20.20"),
		sku("WM021", "Ninja Professional Blender", "Home & Garden", "China", 3900000, 25, 79, 82, domain.ActionShift, false, 30.3, true, "Shenzhen Kitchen Appliances", "8509.40.00"),
		sku("WM022", "Parent's Choice Diapers 180ct", "Baby", "United States", 8400000, 0, 7, 11, domain.ActionMaintain, true, 21.7, true, "Kimberly-Clark", "9619.00.21"),
		sku("WM023", "Samsung Galaxy Tab A9", "Electronics", "Vietnam", 5400000, 18, 55, 76, domain.ActionMonitor, false, 14.9, false, "Samsung Bac Ninh", "8471.30.01"),
		sku("WM024", "Wonder Nation Kids Hoodie", "Apparel", "Bangladesh", 2400000, 16.5, 66, 72, domain.ActionMonitor, false, 34.2, true, "Chittagong Apparel", "6110.20.20"),
	}

	skus[0].SustainabilityScore, skus[0].CarbonFootprint, skus[0].EnvironmentalRating = 68, 12.4, domain.RatingC
	skus[0].QualityScore, skus[0].TransitDays = 91, 21
	skus[1].SustainabilityScore, skus[1].CarbonFootprint, skus[1].EnvironmentalRating = 54, 3.1, domain.RatingD
	skus[1].QualityScore, skus[1].TransitDays = 78, 28
	skus[3].SustainabilityScore, skus[3].CarbonFootprint, skus[3].EnvironmentalRating = 88, 1.8, domain.RatingA
	skus[3].QualityScore, skus[3].TransitDays = 94, 3
	skus[11].SustainabilityScore, skus[11].CarbonFootprint, skus[11].EnvironmentalRating = 82, 2.6, domain.RatingB
	skus[11].QualityScore, skus[11].TransitDays = 96, 2

	return skus
}

func mockCategories() []domain.Category {
	return []domain.Category{
		{
			Name:              "Electronics",
			HighRiskCountries: []string{"China", "South Korea"},
			LowRiskCountries:  []string{"Mexico", "United States"},
			RiskScore:         87,
			AmountAtRisk:      18700000,
			Action:            domain.ActionShift,
		},
		{
			Name:              "Apparel",
			HighRiskCountries: []string{"Bangladesh", "Vietnam"},
			LowRiskCountries:  []string{"Honduras", "Guatemala"},
			RiskScore:         72,
			AmountAtRisk:      9400000,
			Action:            domain.ActionMonitor,
		},
		{
			Name:              "Home & Garden",
			HighRiskCountries: []string{"China"},
			LowRiskCountries:  []string{"United States", "Canada"},
			RiskScore:         78,
			AmountAtRisk:      7600000,
			Action:            domain.ActionShift,
		},
		{
			Name:              "Toys",
			HighRiskCountries: []string{"China"},
			LowRiskCountries:  []string{"Mexico"},
			RiskScore:         64,
			AmountAtRisk:      2300000,
			Action:            domain.ActionMonitor,
		},
		{
			Name:              "Food & Beverage",
			HighRiskCountries: []string{},
			LowRiskCountries:  []string{"United States", "Mexico", "Canada"},
			RiskScore:         14,
			AmountAtRisk:      450000,
			Action:            domain.ActionMaintain,
		},
		{
			Name:              "Health & Beauty",
			HighRiskCountries: []string{},
			LowRiskCountries:  []string{"United States", "India"},
			RiskScore:         28,
			AmountAtRisk:      620000,
			Action:            domain.ActionMaintain,
		},
		{
			Name:              "Tools",
			HighRiskCountries: []string{"China"},
			LowRiskCountries:  []string{"United States"},
			RiskScore:         81,
			AmountAtRisk:      1700000,
			Action:            domain.ActionShift,
		},
	}
}

func mockSuppliers() []domain.Supplier {
	return []domain.Supplier{
		{
			ID: "SUP001", SupplierName: "Carolina Manufacturing Co.", Country: "North Carolina, USA",
			MarginChange: 8.5, Distance: 450, TransitDays: 3, LogisticsScore: 95,
			IsDomestic: true, SupplierType: domain.SupplierDomestic, IsRecommended: true,
			TariffRate: 0, QualityScore: 94, CostPerUnit: 12.75, Capacity: "High",
			AnnualSavings: 1250000, SustainabilityScore: 92, CarbonFootprint: 1.2, EnvironmentalRating: domain.RatingA,
		},
		{
			ID: "SUP002", SupplierName: "Texas Industrial Partners", Country: "Texas, USA",
			MarginChange: 6.2, Distance: 820, TransitDays: 4, LogisticsScore: 91,
			IsDomestic: true, SupplierType: domain.SupplierDomestic, IsRecommended: true,
			TariffRate: 0, QualityScore: 90, CostPerUnit: 13.4, Capacity: "Medium",
			AnnualSavings: 890000, SustainabilityScore: 86, CarbonFootprint: 1.9, EnvironmentalRating: domain.RatingA,
		},
		{
			ID: "SUP003", SupplierName: "Monterrey Assembly Group", Country: "Mexico",
			MarginChange: 5.1, Distance: 1200, TransitDays: 6, LogisticsScore: 87,
			IsDomestic: false, SupplierType: domain.SupplierNAFTA, IsRecommended: true,
			TariffRate: 0, QualityScore: 86, CostPerUnit: 10.9, Capacity: "High",
			AnnualSavings: 720000, SustainabilityScore: 78, CarbonFootprint: 2.8, EnvironmentalRating: domain.RatingB,
		},
		{
			ID: "SUP004", SupplierName: "Ontario Precision Ltd.", Country: "Canada",
			MarginChange: 3.8, Distance: 1500, TransitDays: 5, LogisticsScore: 89,
			IsDomestic: false, SupplierType: domain.SupplierNAFTA, IsRecommended: false,
			TariffRate: 0, QualityScore: 92, CostPerUnit: 14.1, Capacity: "Medium",
			SustainabilityScore: 88, CarbonFootprint: 2.1, EnvironmentalRating: domain.RatingA,
		},
		{
			ID: "SUP005", SupplierName: "Penang Electronics Sdn Bhd", Country: "Malaysia",
			MarginChange: 4.4, Distance: 9800, TransitDays: 24, LogisticsScore: 74,
			IsDomestic: false, SupplierType: domain.SupplierInternational, IsRecommended: false,
			TariffRate: 7.5, QualityScore: 84, CostPerUnit: 9.6, Capacity: "High",
			AnnualSavings: 540000, CarbonFootprint: 6.4, EnvironmentalRating: domain.RatingC,
		},
		{
			ID: "SUP006", SupplierName: "Pune Components Pvt.", Country: "India",
			MarginChange: 2.9, Distance: 8700, TransitDays: 28, LogisticsScore: 70,
			IsDomestic: false, SupplierType: domain.SupplierInternational, IsRecommended: false,
			TariffRate: 10, QualityScore: 80, CostPerUnit: 8.95, Capacity: "Very High",
			AnnualSavings: 310000, SustainabilityScore: 71, CarbonFootprint: 7.1, EnvironmentalRating: domain.RatingC,
		},
		{
			ID: "SUP007", SupplierName: "Ohio Valley Fabrication", Country: "Ohio, USA",
			MarginChange: -1.5, Distance: 600, TransitDays: 3, LogisticsScore: 93,
			IsDomestic: true, SupplierType: domain.SupplierDomestic, IsRecommended: false,
			TariffRate: 0, QualityScore: 95, CostPerUnit: 15.8, Capacity: "Low",
			SustainabilityScore: 90, CarbonFootprint: 1.4,
		},
		{
			ID: "SUP008", SupplierName: "Bangkok Light Industries", Country: "Thailand",
			MarginChange: -2.3, Distance: 9400, TransitDays: 26, LogisticsScore: 68,
			IsDomestic: false, SupplierType: domain.SupplierInternational, IsRecommended: false,
			TariffRate: 12.5, QualityScore: 77, CostPerUnit: 9.2, Capacity: "Medium",
		},
	}
}

func mockTariffSeries() map[string][]domain.TariffPoint {
	return map[string][]domain.TariffPoint{
		"china": {
			{Date: "2018-01-01", Rate: 3.1},
			{Date: "2018-07-06", Rate: 10.5, Event: "Section 301 List 1"},
			{Date: "2019-05-10", Rate: 17.5, Event: "List 3 raised to 25%"},
			{Date: "2020-02-14", Rate: 19.3, Event: "Phase One deal"},
			{Date: "2022-01-01", Rate: 19.3},
			{Date: "2024-05-14", Rate: 21.8, Event: "Section 301 review"},
			{Date: "2025-04-09", Rate: 25.0, Event: "Reciprocal tariffs"},
		},
		"vietnam": {
			{Date: "2018-01-01", Rate: 4.2},
			{Date: "2020-01-01", Rate: 5.0},
			{Date: "2022-01-01", Rate: 6.8},
			{Date: "2024-01-01", Rate: 9.1},
			{Date: "2025-04-09", Rate: 14.5, Event: "Reciprocal tariffs"},
		},
		"bangladesh": {
			{Date: "2018-01-01", Rate: 12.3},
			{Date: "2020-01-01", Rate: 12.8},
			{Date: "2022-01-01", Rate: 13.6},
			{Date: "2025-04-09", Rate: 16.5, Event: "Reciprocal tariffs"},
		},
		"southkorea": {
			{Date: "2018-01-01", Rate: 0.4},
			{Date: "2018-03-23", Rate: 2.1, Event: "Section 232 steel"},
			{Date: "2022-01-01", Rate: 2.4},
			{Date: "2025-04-09", Rate: 10.2, Event: "Reciprocal tariffs"},
		},
	}
}

// modeSeries returns domestic and international series for one chart.
func modeSeries(domestic, international []float64) map[string][]domain.TariffPoint {
	dates := []string{"2024-01-01", "2024-04-01", "2024-07-01", "2024-10-01", "2025-01-01", "2025-04-01"}
	build := func(values []float64) []domain.TariffPoint {
		points := make([]domain.TariffPoint, 0, len(values))
		for i, v := range values {
			points = append(points, domain.TariffPoint{Date: dates[i], Rate: v})
		}
		return points
	}
	return map[string][]domain.TariffPoint{
		ModeDomestic:      build(domestic),
		ModeInternational: build(international),
	}
}

func mockDataFeeds() []domain.DataFeed {
	return []domain.DataFeed{
		{
			ID:          "1",
			Name:        "Tariff API",
			Description: "Daily updates of tariff rates and trade policies",
			LastUpdate:  "2023-12-07 08:00:00",
			Status:      domain.FeedSuccess,
			Frequency:   "Daily",
			NextUpdate:  "2023-12-08 08:00:00",
		},
		{
			ID:          "2",
			Name:        "Geo-Policy Signal Feed",
			Description: "Real-time geopolitical risk indicators and policy changes",
			LastUpdate:  "2023-12-07 14:30:00",
			Status:      domain.FeedSuccess,
			Frequency:   "Real-time",
			NextUpdate:  "Continuous",
		},
		{
			ID:          "3",
			Name:        "Currency & Trade Calendar",
			Description: "Exchange rates and upcoming trade deal announcements",
			LastUpdate:  "2023-12-07 12:15:00",
			Status:      domain.FeedError,
			Frequency:   "Hourly",
			NextUpdate:  "2023-12-07 15:15:00",
		},
		{
			ID:          "4",
			Name:        "Supplier Database",
			Description: "Updated supplier information and capability scores",
			LastUpdate:  "2023-12-07 06:00:00",
			Status:      domain.FeedPending,
			Frequency:   "Weekly",
			NextUpdate:  "2023-12-14 06:00:00",
		},
	}
}

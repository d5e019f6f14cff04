package sourcing

import (
	"cmp"
	"slices"

	"github.com/andresuchdata/tariff-risk/backend-go/internal/domain"
)

type optionProfile struct {
	baseMargin    float64
	riskScore     float64
	advantages    []string
	disadvantages []string
}

var (
	domesticProfile = optionProfile{
		baseMargin:    38.5,
		riskScore:     15,
		advantages:    []string{"No tariffs", "Fast delivery", "High quality control", "Political stability", "Easy communication"},
		disadvantages: []string{"Higher labor costs", "Limited capacity for some products"},
	}
	naftaProfile = optionProfile{
		baseMargin:    42.2,
		riskScore:     25,
		advantages:    []string{"Lower costs than domestic", "NAFTA benefits", "Good logistics", "Established suppliers"},
		disadvantages: []string{"Some tariffs", "Longer transit", "Currency fluctuation"},
	}
	internationalProfile = optionProfile{
		baseMargin:    48.5,
		riskScore:     45,
		advantages:    []string{"Very competitive costs", "Growing manufacturing base", "Good for electronics"},
		disadvantages: []string{"Higher tariffs", "Long transit times", "Quality control challenges"},
	}
)

// bestBy returns the supplier with the highest marginChange among those
// matching keep. Equal margins keep catalog order.
func bestBy(suppliers []domain.Supplier, keep func(domain.Supplier) bool) (domain.Supplier, bool) {
	matched := make([]domain.Supplier, 0)
	for _, s := range suppliers {
		if keep(s) {
			matched = append(matched, s)
		}
	}
	if len(matched) == 0 {
		return domain.Supplier{}, false
	}
	slices.SortStableFunc(matched, func(a, b domain.Supplier) int {
		return cmp.Compare(b.MarginChange, a.MarginChange)
	})
	return matched[0], true
}

func newOption(s domain.Supplier, p optionProfile, kind, country string, tariff float64) domain.NewSKUOption {
	return domain.NewSKUOption{
		Type:            kind,
		Country:         country,
		EstimatedMargin: p.baseMargin + s.MarginChange,
		RiskScore:       p.riskScore,
		TransitDays:     s.TransitDays,
		TariffRate:      tariff,
		Advantages:      append([]string(nil), p.advantages...),
		Disadvantages:   append([]string(nil), p.disadvantages...),
		SupplierName:    s.SupplierName,
		CostPerUnit:     s.CostPerUnit,
		QualityScore:    s.QualityScore,
		Capacity:        s.Capacity,
		AnnualSavings:   s.AnnualSavings,
		MarginIncrease:  s.MarginChange,
	}
}

// NewSKUOptions proposes the best domestic, NAFTA and international sourcing
// options for a product that has no catalog match. Missing tiers are skipped.
func NewSKUOptions(suppliers []domain.Supplier) []domain.NewSKUOption {
	options := make([]domain.NewSKUOption, 0, 3)

	if best, ok := bestBy(suppliers, func(s domain.Supplier) bool { return s.IsDomestic }); ok {
		options = append(options, newOption(best, domesticProfile, "domestic", best.Country, 0))
	}
	if best, ok := bestBy(suppliers, func(s domain.Supplier) bool { return s.SupplierType == domain.SupplierNAFTA }); ok {
		options = append(options, newOption(best, naftaProfile, "international", best.Country+" (NAFTA/USMCA)", best.TariffRate))
	}
	if best, ok := bestBy(suppliers, func(s domain.Supplier) bool { return s.SupplierType == domain.SupplierInternational }); ok {
		options = append(options, newOption(best, internationalProfile, "international", best.Country, best.TariffRate))
	}

	return options
}

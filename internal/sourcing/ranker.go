// Package sourcing ranks alternative suppliers for a SKU.
package sourcing

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"

	"github.com/andresuchdata/tariff-risk/backend-go/internal/analytics"
	"github.com/andresuchdata/tariff-risk/backend-go/internal/domain"
	"github.com/shopspring/decimal"
)

// EligibilityThreshold is the totalRisk below which no alternatives are surfaced.
const EligibilityThreshold = 70

const (
	RecommendDomesticOptimal = "Current domestic sourcing is optimal with no tariff exposure and good margins"
	RecommendShiftDomestic   = "Consider shifting to domestic suppliers to eliminate tariff risk and improve margins"
	RecommendNAFTA           = "NAFTA suppliers offer a good balance of cost and reduced tariff exposure"
	RecommendMonitor         = "Monitor current international suppliers for further tariff increases"
	RecommendSustainability  = "Prioritize suppliers with high sustainability scores to meet environmental goals"
)

// Eligible reports whether a supplier may replace the SKU's current sourcing.
// It does not apply the risk gate.
func Eligible(sku domain.SKU, s domain.Supplier) bool {
	if sku.IsDomestic {
		return s.IsDomestic || s.SupplierType == domain.SupplierNAFTA
	}
	return true
}

// tier orders domestic before nafta before everything else.
func tier(s domain.Supplier) int {
	switch {
	case s.IsDomestic:
		return 0
	case s.SupplierType == domain.SupplierNAFTA:
		return 1
	default:
		return 2
	}
}

// AnnualSavings is spend * marginChange / 100.
func AnnualSavings(sku domain.SKU, s domain.Supplier) float64 {
	f, _ := decimal.NewFromFloat(sku.Spend).
		Mul(decimal.NewFromFloat(s.MarginChange)).
		Div(decimal.NewFromInt(100)).
		Float64()
	return f
}

// Rank returns the eligible alternatives for a SKU: domestic first, then
// nafta, then by marginChange descending and supplier id. SKUs below the
// eligibility threshold get an empty list.
func Rank(sku domain.SKU, suppliers []domain.Supplier) []domain.Alternative {
	out := make([]domain.Alternative, 0)
	if sku.TotalRisk < EligibilityThreshold {
		return out
	}

	eligible := make([]domain.Supplier, 0, len(suppliers))
	for _, s := range suppliers {
		if Eligible(sku, s) {
			eligible = append(eligible, s)
		}
	}

	slices.SortStableFunc(eligible, func(a, b domain.Supplier) int {
		if c := cmp.Compare(tier(a), tier(b)); c != 0 {
			return c
		}
		if c := cmp.Compare(b.MarginChange, a.MarginChange); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})

	for _, s := range eligible {
		out = append(out, domain.Alternative{
			Supplier:      s,
			AnnualSavings: AnnualSavings(sku, s),
			TypeLabel:     domain.SupplierTypeLabel(s.SupplierType),
		})
	}
	return out
}

// Recommendations are the guidance bullets shown next to the alternatives.
func Recommendations(sku domain.SKU) []string {
	if sku.IsDomestic {
		return []string{RecommendDomesticOptimal}
	}
	return []string{RecommendShiftDomestic, RecommendNAFTA, RecommendMonitor, RecommendSustainability}
}

// Assess ranks alternatives and tells apart the two empty outcomes.
func Assess(sku domain.SKU, suppliers []domain.Supplier) domain.SourcingAssessment {
	a := domain.SourcingAssessment{
		SKUID:        sku.ID,
		Alternatives: Rank(sku, suppliers),
	}

	switch {
	case sku.TotalRisk < EligibilityThreshold:
		a.State = domain.SourcingOptimal
		a.Recommendations = optimalNotes(sku)
	case len(a.Alternatives) == 0:
		a.State = domain.SourcingNoneEligible
		a.Recommendations = Recommendations(sku)
	default:
		a.State = domain.SourcingAvailable
		a.Recommendations = Recommendations(sku)
	}
	return a
}

func optimalNotes(sku domain.SKU) []string {
	status := "Low-risk international sourcing"
	if sku.IsDomestic {
		status = "Domestic sourcing"
	}
	return []string{
		"Current Sourcing is Optimal",
		fmt.Sprintf("This SKU has a low risk score (%s) and doesn't require alternative sourcing at this time.",
			strconv.FormatFloat(sku.TotalRisk, 'f', -1, 64)),
		fmt.Sprintf("Current Status: %s with %s%% margin and minimal supply chain risk.",
			status, analytics.Fixed(sku.CurrentMargin, 1)),
	}
}

package sourcing

import (
	"testing"

	"github.com/andresuchdata/tariff-risk/backend-go/internal/catalog"
	"github.com/andresuchdata/tariff-risk/backend-go/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mockSuppliers() []domain.Supplier {
	return catalog.New(catalog.MockData()).Suppliers()
}

func supplierIDs(alts []domain.Alternative) []string {
	out := make([]string, len(alts))
	for i, a := range alts {
		out[i] = a.Supplier.ID
	}
	return out
}

func TestRankGatesLowRiskSKUs(t *testing.T) {
	suppliers := mockSuppliers()
	for _, risk := range []float64{0, 35, 69, 69.99} {
		for _, domestic := range []bool{true, false} {
			got := Rank(domain.SKU{TotalRisk: risk, IsDomestic: domestic, Spend: 1_000_000}, suppliers)
			assert.Empty(t, got, "risk %v domestic %v", risk, domestic)
			assert.NotNil(t, got)
		}
	}
}

func TestRankDomesticSKUOnlyGetsDomesticOrNAFTA(t *testing.T) {
	got := Rank(domain.SKU{TotalRisk: 70, IsDomestic: true, Spend: 1_000_000}, mockSuppliers())
	require.NotEmpty(t, got)
	for _, a := range got {
		assert.True(t, a.Supplier.IsDomestic || a.Supplier.SupplierType == domain.SupplierNAFTA, a.Supplier.ID)
	}
	assert.Equal(t, []string{"SUP001", "SUP002", "SUP007", "SUP003", "SUP004"}, supplierIDs(got))
}

func TestRankOrdering(t *testing.T) {
	got := Rank(domain.SKU{TotalRisk: 85, Spend: 12_500_000}, mockSuppliers())

	assert.Equal(t, []string{"SUP001", "SUP002", "SUP007", "SUP003", "SUP004", "SUP005", "SUP006", "SUP008"}, supplierIDs(got))
	assert.Equal(t, float64(1_062_500), got[0].AnnualSavings)
	assert.Equal(t, "Domestic", got[0].TypeLabel)
	assert.Equal(t, "NAFTA/USMCA", got[3].TypeLabel)
	assert.Less(t, got[len(got)-1].AnnualSavings, float64(0))
}

func TestRankTieBreaksOnID(t *testing.T) {
	suppliers := []domain.Supplier{
		{ID: "B", SupplierType: domain.SupplierInternational, MarginChange: 3},
		{ID: "A", SupplierType: domain.SupplierInternational, MarginChange: 3},
		{ID: "C", SupplierType: domain.SupplierNAFTA, MarginChange: 1},
	}
	got := Rank(domain.SKU{TotalRisk: 90}, suppliers)
	assert.Equal(t, []string{"C", "A", "B"}, supplierIDs(got))
}

func TestRankDoesNotMutateInput(t *testing.T) {
	suppliers := mockSuppliers()
	before := append([]domain.Supplier(nil), suppliers...)

	Rank(domain.SKU{TotalRisk: 90}, suppliers)

	assert.Equal(t, before, suppliers)
}

func TestAssessStates(t *testing.T) {
	suppliers := mockSuppliers()

	optimal := Assess(domain.SKU{ID: "LOW", TotalRisk: 12, IsDomestic: true, CurrentMargin: 22.1}, suppliers)
	assert.Equal(t, domain.SourcingOptimal, optimal.State)
	assert.Empty(t, optimal.Alternatives)
	assert.Equal(t, "Current Sourcing is Optimal", optimal.Recommendations[0])
	assert.Contains(t, optimal.Recommendations[1], "low risk score (12)")
	assert.Contains(t, optimal.Recommendations[2], "Domestic sourcing with 22.1% margin")

	none := Assess(domain.SKU{TotalRisk: 90, IsDomestic: true}, []domain.Supplier{{ID: "X", SupplierType: domain.SupplierInternational}})
	assert.Equal(t, domain.SourcingNoneEligible, none.State)
	assert.Empty(t, none.Alternatives)

	available := Assess(domain.SKU{TotalRisk: 90}, suppliers)
	assert.Equal(t, domain.SourcingAvailable, available.State)
	assert.Len(t, available.Recommendations, 4)
	assert.Equal(t, RecommendShiftDomestic, available.Recommendations[0])
}

func TestNewSKUOptions(t *testing.T) {
	opts := NewSKUOptions(mockSuppliers())
	require.Len(t, opts, 3)

	assert.Equal(t, "domestic", opts[0].Type)
	assert.Equal(t, "Carolina Manufacturing Co.", opts[0].SupplierName)
	assert.InDelta(t, 47.0, opts[0].EstimatedMargin, 1e-9)
	assert.Equal(t, float64(15), opts[0].RiskScore)
	assert.Equal(t, float64(0), opts[0].TariffRate)
	assert.Len(t, opts[0].Advantages, 5)

	assert.Equal(t, "international", opts[1].Type)
	assert.Equal(t, "Mexico (NAFTA/USMCA)", opts[1].Country)
	assert.InDelta(t, 47.3, opts[1].EstimatedMargin, 1e-9)
	assert.Equal(t, float64(25), opts[1].RiskScore)

	assert.Equal(t, "Malaysia", opts[2].Country)
	assert.InDelta(t, 52.9, opts[2].EstimatedMargin, 1e-9)
	assert.Equal(t, 7.5, opts[2].TariffRate)
	assert.Equal(t, float64(45), opts[2].RiskScore)

	assert.Empty(t, NewSKUOptions(nil))
}

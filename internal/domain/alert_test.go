package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseThreshold(t *testing.T) {
	cases := []struct {
		raw  string
		want float64
	}{
		{"80", 80},
		{" 15.5 ", 15.5},
		{"-3", 0},
		{"250", 100},
		{"0", 0},
	}
	for _, tc := range cases {
		got, err := ParseThreshold(tc.raw)
		require.NoError(t, err, tc.raw)
		assert.Equal(t, tc.want, got, tc.raw)
	}

	for _, raw := range []string{"", "abc", "NaN", "Inf", "-Inf", "12%"} {
		_, err := ParseThreshold(raw)
		assert.ErrorIs(t, err, ErrInvalidThreshold, raw)
	}
}

func TestParseAlertCondition(t *testing.T) {
	c, err := ParseAlertCondition(" Geo Risk Score ")
	require.NoError(t, err)
	assert.Equal(t, ConditionGeoRisk, c)

	_, err = ParseAlertCondition("sku risk score")
	assert.ErrorIs(t, err, ErrUnknownCondition)
}

func TestAlertRuleSummary(t *testing.T) {
	assert.Equal(t, "SKU Risk Score > 80", AlertRule{Condition: ConditionSKURisk, Threshold: 80}.Summary())
	assert.Equal(t, "Category Risk Change > 15%", AlertRule{Condition: ConditionCategoryChange, Threshold: 15}.Summary())
	assert.Equal(t, "Tariff Rate Increase > 12.5%", AlertRule{Condition: ConditionTariffIncrease, Threshold: 12.5}.Summary())
}

func TestAlertInputRule(t *testing.T) {
	rule, err := AlertInput{Condition: "Tariff Rate Increase", Threshold: "120", Email: "Risk Team <risk@example.com>", IsActive: true}.Rule("abc")
	require.NoError(t, err)
	assert.Equal(t, AlertRule{ID: "abc", Condition: ConditionTariffIncrease, Threshold: 100, Email: "risk@example.com", IsActive: true}, rule)

	_, err = AlertInput{Condition: "SKU Risk Score", Threshold: "80", Email: "not-an-email"}.Rule("x")
	assert.ErrorIs(t, err, ErrInvalidEmail)

	_, err = AlertInput{Condition: "Unknown", Threshold: "80", Email: "a@b.co"}.Rule("x")
	assert.ErrorIs(t, err, ErrUnknownCondition)
}

func TestRiskLevelAndLabels(t *testing.T) {
	assert.Equal(t, "High", RiskLevel(80))
	assert.Equal(t, "Medium", RiskLevel(79))
	assert.Equal(t, "Low", RiskLevel(59))
	assert.Equal(t, "Shift Sourcing", ActionLabel(ActionShift))
	assert.Equal(t, "NAFTA/USMCA", SupplierTypeLabel(SupplierNAFTA))
	assert.Equal(t, "Other", SupplierTypeLabel("regional"))

	a, ok := ParseAction(" Monitor ")
	assert.True(t, ok)
	assert.Equal(t, ActionMonitor, a)
	_, ok = ParseAction("all")
	assert.False(t, ok)
}

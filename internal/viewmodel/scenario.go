package viewmodel

import "github.com/andresuchdata/tariff-risk/backend-go/internal/analytics"

// ScenarioState is the tariff-increase slider of the SKU detail view.
type ScenarioState struct {
	SKUID          string  `json:"sku_id"`
	TariffIncrease float64 `json:"tariff_increase"`
}

// SetScenario selects a SKU and slider value, clamped to [5,20].
func SetScenario(s ScenarioState, skuID string, increase float64) ScenarioState {
	s.SKUID = skuID
	s.TariffIncrease = analytics.ClampTariffIncrease(increase)
	return s
}

// NewScenario starts the slider at its lowest setting.
func NewScenario() ScenarioState {
	return ScenarioState{TariffIncrease: analytics.MinTariffIncrease}
}

// Package alerting checks alert rules against the catalog and sends the matches.
package alerting

import (
	"fmt"
	"strconv"

	"github.com/andresuchdata/tariff-risk/backend-go/internal/domain"
)

// Evaluate returns a trigger for every subject that exceeds an active rule's
// threshold. Rules are visited in order and subjects in catalog order.
func Evaluate(rules []domain.AlertRule, skus []domain.SKU, categories []domain.Category, suppliers []domain.Supplier) []domain.AlertTrigger {
	out := make([]domain.AlertTrigger, 0)
	for _, r := range rules {
		if !r.IsActive {
			continue
		}
		switch r.Condition {
		case domain.ConditionSKURisk:
			for _, s := range skus {
				out = appendIf(out, r, s.ID, s.TotalRisk)
			}
		case domain.ConditionGeoRisk:
			for _, s := range skus {
				out = appendIf(out, r, s.ID, s.GeoRisk)
			}
		case domain.ConditionTariffIncrease:
			for _, s := range skus {
				out = appendIf(out, r, s.ID, s.TariffImpact)
			}
		case domain.ConditionCategoryChange:
			for _, c := range categories {
				out = appendIf(out, r, c.Name, c.RiskScore)
			}
		case domain.ConditionSupplierChange:
			for _, s := range suppliers {
				out = appendIf(out, r, s.ID, s.TariffRate)
			}
		}
	}
	return out
}

func appendIf(out []domain.AlertTrigger, r domain.AlertRule, subject string, value float64) []domain.AlertTrigger {
	if value <= r.Threshold {
		return out
	}
	return append(out, domain.AlertTrigger{
		RuleID:    r.ID,
		Condition: r.Condition,
		Threshold: r.Threshold,
		Email:     r.Email,
		Subject:   subject,
		Value:     value,
		Message:   message(r, subject, value),
	})
}

func message(r domain.AlertRule, subject string, value float64) string {
	unit := "%"
	if r.Condition.IsScore() {
		unit = ""
	}
	return fmt.Sprintf("%s: %s is %s%s (%s)", r.Condition, subject,
		strconv.FormatFloat(value, 'f', -1, 64), unit, r.Summary())
}

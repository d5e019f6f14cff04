package viewmodel

import (
	"fmt"

	"github.com/andresuchdata/tariff-risk/backend-go/internal/domain"
)

// AlertsState is the session's alert rule list in display order.
type AlertsState struct {
	Rules []domain.AlertRule `json:"rules"`
}

// DefaultAlerts is the rule set every new session starts with.
func DefaultAlerts() AlertsState {
	return AlertsState{Rules: []domain.AlertRule{
		{ID: "1", Condition: domain.ConditionSKURisk, Threshold: 80, Email: "sourcing@walmart.com", IsActive: true},
		{ID: "2", Condition: domain.ConditionCategoryChange, Threshold: 15, Email: "supply-chain@walmart.com", IsActive: true},
		{ID: "3", Condition: domain.ConditionTariffIncrease, Threshold: 10, Email: "risk-team@walmart.com", IsActive: false},
	}}
}

func (s AlertsState) index(id string) int {
	for i, r := range s.Rules {
		if r.ID == id {
			return i
		}
	}
	return -1
}

// Find returns the rule with the given id.
func (s AlertsState) Find(id string) (domain.AlertRule, bool) {
	if i := s.index(id); i >= 0 {
		return s.Rules[i], true
	}
	return domain.AlertRule{}, false
}

// Active returns the enabled rules.
func (s AlertsState) Active() []domain.AlertRule {
	out := make([]domain.AlertRule, 0, len(s.Rules))
	for _, r := range s.Rules {
		if r.IsActive {
			out = append(out, r)
		}
	}
	return out
}

func (s AlertsState) withRules(rules []domain.AlertRule) AlertsState {
	return AlertsState{Rules: rules}
}

// AddAlert appends a validated rule.
func AddAlert(s AlertsState, rule domain.AlertRule) AlertsState {
	rules := append(append([]domain.AlertRule(nil), s.Rules...), rule)
	return s.withRules(rules)
}

// UpdateAlert replaces the rule with the same id, keeping its position.
func UpdateAlert(s AlertsState, rule domain.AlertRule) (AlertsState, error) {
	i := s.index(rule.ID)
	if i < 0 {
		return s, fmt.Errorf("%w: %s", domain.ErrAlertNotFound, rule.ID)
	}
	rules := append([]domain.AlertRule(nil), s.Rules...)
	rules[i] = rule
	return s.withRules(rules), nil
}

// DeleteAlert removes a rule.
func DeleteAlert(s AlertsState, id string) (AlertsState, error) {
	i := s.index(id)
	if i < 0 {
		return s, fmt.Errorf("%w: %s", domain.ErrAlertNotFound, id)
	}
	rules := make([]domain.AlertRule, 0, len(s.Rules)-1)
	rules = append(rules, s.Rules[:i]...)
	rules = append(rules, s.Rules[i+1:]...)
	return s.withRules(rules), nil
}

// ToggleAlert flips a rule's active flag.
func ToggleAlert(s AlertsState, id string) (AlertsState, error) {
	i := s.index(id)
	if i < 0 {
		return s, fmt.Errorf("%w: %s", domain.ErrAlertNotFound, id)
	}
	rules := append([]domain.AlertRule(nil), s.Rules...)
	rules[i].IsActive = !rules[i].IsActive
	return s.withRules(rules), nil
}

package domain

import (
	"errors"
	"fmt"
	"math"
	"net/mail"
	"strconv"
	"strings"
)

var (
	ErrInvalidThreshold = errors.New("threshold must be numeric")
	ErrUnknownCondition = errors.New("unknown alert condition")
	ErrInvalidEmail     = errors.New("invalid email address")
	ErrAlertNotFound    = errors.New("alert not found")
)

// AlertCondition is one of the fixed notification conditions
type AlertCondition string

const (
	ConditionSKURisk        AlertCondition = "SKU Risk Score"
	ConditionCategoryChange AlertCondition = "Category Risk Change"
	ConditionTariffIncrease AlertCondition = "Tariff Rate Increase"
	ConditionGeoRisk        AlertCondition = "Geo Risk Score"
	ConditionSupplierChange AlertCondition = "Supplier Risk Change"
)

// AlertConditions lists the vocabulary in display order.
var AlertConditions = []AlertCondition{
	ConditionSKURisk,
	ConditionCategoryChange,
	ConditionTariffIncrease,
	ConditionGeoRisk,
	ConditionSupplierChange,
}

// ParseAlertCondition matches a condition name exactly, ignoring surrounding space.
func ParseAlertCondition(value string) (AlertCondition, error) {
	value = strings.TrimSpace(value)
	for _, c := range AlertConditions {
		if string(c) == value {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCondition, value)
}

// IsScore reports whether the condition threshold is a score rather than a percentage.
func (c AlertCondition) IsScore() bool {
	return strings.Contains(string(c), "Score")
}

// AlertRule is a user-configured notification condition held in session memory
type AlertRule struct {
	ID        string         `json:"id"`
	Condition AlertCondition `json:"condition"`
	Threshold float64        `json:"threshold"`
	Email     string         `json:"email"`
	IsActive  bool           `json:"is_active"`
}

// Summary renders the rule the way the alert list shows it, e.g. "SKU Risk Score > 80".
func (r AlertRule) Summary() string {
	s := fmt.Sprintf("%s > %s", r.Condition, strconv.FormatFloat(r.Threshold, 'f', -1, 64))
	if !r.Condition.IsScore() {
		s += "%"
	}
	return s
}

// ParseThreshold parses a threshold field and clamps it to [0,100].
func ParseThreshold(raw string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidThreshold, raw)
	}
	return ClampThreshold(v), nil
}

// ClampThreshold limits a threshold to [0,100].
func ClampThreshold(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// AlertInput is the unvalidated alert form.
type AlertInput struct {
	Condition string
	Threshold string
	Email     string
	IsActive  bool
}

// Rule validates the form into a rule with the given id.
func (in AlertInput) Rule(id string) (AlertRule, error) {
	cond, err := ParseAlertCondition(in.Condition)
	if err != nil {
		return AlertRule{}, err
	}
	threshold, err := ParseThreshold(in.Threshold)
	if err != nil {
		return AlertRule{}, err
	}
	addr, err := mail.ParseAddress(strings.TrimSpace(in.Email))
	if err != nil {
		return AlertRule{}, fmt.Errorf("%w: %q", ErrInvalidEmail, in.Email)
	}
	return AlertRule{
		ID:        id,
		Condition: cond,
		Threshold: threshold,
		Email:     addr.Address,
		IsActive:  in.IsActive,
	}, nil
}

// AlertTrigger is a rule that matched the current catalog
type AlertTrigger struct {
	RuleID    string         `json:"rule_id"`
	Condition AlertCondition `json:"condition"`
	Threshold float64        `json:"threshold"`
	Email     string         `json:"email"`
	Subject   string         `json:"subject"` // SKU id, category name or supplier id
	Value     float64        `json:"value"`
	Message   string         `json:"message"`
}

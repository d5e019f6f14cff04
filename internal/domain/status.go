package domain

import "strings"

// Action is the recommended sourcing action for a SKU or category
type Action string

const (
	ActionShift    Action = "shift"
	ActionMonitor  Action = "monitor"
	ActionMaintain Action = "maintain"
)

// ActionAll is the pass-through value of the dashboard action filter.
const ActionAll = "all"

var actionLabels = map[Action]string{
	ActionShift:    "Shift Sourcing",
	ActionMonitor:  "Monitor Closely",
	ActionMaintain: "Maintain Current",
}

// ActionLabel returns a human-readable label for an action.
func ActionLabel(a Action) string {
	if label, ok := actionLabels[a]; ok {
		return label
	}

	return string(a)
}

// ParseAction returns the action for a given value (case-insensitive).
func ParseAction(value string) (Action, bool) {
	a := Action(strings.ToLower(strings.TrimSpace(value)))
	_, ok := actionLabels[a]

	return a, ok
}

// SupplierType classifies a supplier by trade region
type SupplierType string

const (
	SupplierDomestic      SupplierType = "domestic"
	SupplierNAFTA         SupplierType = "nafta"
	SupplierInternational SupplierType = "international"
)

var supplierTypeLabels = map[SupplierType]string{
	SupplierDomestic:      "Domestic",
	SupplierNAFTA:         "NAFTA/USMCA",
	SupplierInternational: "International",
}

// SupplierTypeLabel returns a human-readable label for a supplier type.
func SupplierTypeLabel(t SupplierType) string {
	if label, ok := supplierTypeLabels[t]; ok {
		return label
	}

	return "Other"
}

// Rating is an environmental rating from A (best) to D.
type Rating string

const (
	RatingA Rating = "A"
	RatingB Rating = "B"
	RatingC Rating = "C"
	RatingD Rating = "D"
)

// FeedStatus is the last known state of an external data feed.
type FeedStatus string

const (
	FeedSuccess FeedStatus = "success"
	FeedError   FeedStatus = "error"
	FeedPending FeedStatus = "pending"
)

// RiskLevel buckets a 0-100 score for display.
func RiskLevel(score float64) string {
	switch {
	case score >= 80:
		return "High"
	case score >= 60:
		return "Medium"
	default:
		return "Low"
	}
}

// Package viewmodel holds the per-session view state as plain values with
// pure update functions. Nothing here touches the catalog or a clock.
package viewmodel

import (
	"errors"
	"fmt"

	"github.com/andresuchdata/tariff-risk/backend-go/internal/domain"
	"github.com/andresuchdata/tariff-risk/backend-go/internal/query"
)

var ErrUnknownAction = errors.New("unknown dashboard action")

// Dashboard actions.
const (
	ActionSearch = "search"
	ActionFilter = "filter"
	ActionSort   = "sort"
	ActionPage   = "page"
	ActionNext   = "next"
	ActionPrev   = "prev"
	ActionReset  = "reset"
)

// DashboardAction is one user event on the SKU table.
type DashboardAction struct {
	Type  string `json:"type"`
	Value string `json:"value,omitempty"`
	Page  int    `json:"page,omitempty"`
}

// DashboardState is the SKU table view: search, filter, sort and page.
type DashboardState struct {
	Query domain.SKUQuery `json:"query"`
}

func NewDashboard() DashboardState {
	return DashboardState{Query: domain.DefaultSKUQuery()}
}

// ToggleSort flips the direction when field is already the sort column,
// otherwise sorts by field descending.
func ToggleSort(s DashboardState, field string) DashboardState {
	field = query.NormalizeSortField(field)
	if field == s.Query.SortField {
		if s.Query.SortDir == domain.SortAsc {
			s.Query.SortDir = domain.SortDesc
		} else {
			s.Query.SortDir = domain.SortAsc
		}
		return s
	}
	s.Query.SortField = field
	s.Query.SortDir = domain.SortDesc
	return s
}

// ReduceDashboard applies one action. Search and filter changes return to the
// first page; the page itself is clamped later against the result size.
func ReduceDashboard(s DashboardState, a DashboardAction) (DashboardState, error) {
	switch a.Type {
	case ActionSearch:
		s.Query.Search = a.Value
		s.Query.Page = 1
	case ActionFilter:
		if a.Value != domain.ActionAll {
			if _, ok := domain.ParseAction(a.Value); !ok {
				return s, fmt.Errorf("%w: filter %q", ErrUnknownAction, a.Value)
			}
		}
		s.Query.Action = a.Value
		s.Query.Page = 1
	case ActionSort:
		s = ToggleSort(s, a.Value)
	case ActionPage:
		s.Query.Page = max(1, a.Page)
	case ActionNext:
		s.Query.Page++
	case ActionPrev:
		s.Query.Page = max(1, s.Query.Page-1)
	case ActionReset:
		s = NewDashboard()
	default:
		return s, fmt.Errorf("%w: %q", ErrUnknownAction, a.Type)
	}
	return s, nil
}

// Settle writes the clamped page of a query result back into the state.
func Settle(s DashboardState, page domain.SKUPage) DashboardState {
	s.Query.Page = page.Page
	return s
}

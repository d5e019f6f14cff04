package service

import (
	"context"
	"errors"
	"testing"

	"github.com/andresuchdata/tariff-risk/backend-go/internal/deferred"
	"github.com/andresuchdata/tariff-risk/backend-go/internal/domain"
	"github.com/andresuchdata/tariff-risk/backend-go/internal/viewmodel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ids(skus []domain.SKU) []string {
	out := make([]string, 0, len(skus))
	for _, s := range skus {
		out = append(out, s.ID)
	}
	return out
}

func TestCreateSessionLoadingDelays(t *testing.T) {
	sched := &deferred.ManualScheduler{}
	svc := newSessionService(t, sched, &mockNotifier{})

	view := svc.Create(context.Background())
	assert.True(t, view.Loading.KPIs)
	assert.True(t, view.Loading.Categories)
	assert.Equal(t, 24, view.Page.Total)
	assert.Len(t, view.Alerts.Rules, 3)

	sched.Advance(testDelays.KPI)
	got, err := svc.Get(view.ID)
	require.NoError(t, err)
	assert.False(t, got.Loading.KPIs)
	assert.True(t, got.Loading.Categories)

	sched.Advance(testDelays.Category - testDelays.KPI)
	got, err = svc.Get(view.ID)
	require.NoError(t, err)
	assert.False(t, got.Loading.Categories)
}

func TestSearchStaleCallbackHasNoEffect(t *testing.T) {
	// IgnoreStop keeps the superseded timer alive so both callbacks fire.
	sched := &deferred.ManualScheduler{IgnoreStop: true}
	svc := newSessionService(t, sched, &mockNotifier{})
	id := svc.Create(context.Background()).ID

	state, err := svc.Search(id, "Sam")
	require.NoError(t, err)
	assert.True(t, state.Searching)

	_, err = svc.Search(id, "Samsung Galaxy")
	require.NoError(t, err)

	sched.Advance(testDelays.Search)

	state, err = svc.SearchState(id)
	require.NoError(t, err)
	assert.Equal(t, "Samsung Galaxy", state.Term)
	assert.False(t, state.Searching)
	assert.True(t, state.Open)
	assert.Equal(t, []string{"WM023"}, ids(state.Results))
}

func TestSearchOutOfOrderCallbacks(t *testing.T) {
	sched := &deferred.ManualScheduler{IgnoreStop: true}
	svc := newSessionService(t, sched, &mockNotifier{})
	id := svc.Create(context.Background()).ID

	_, err := svc.Search(id, "Samsung Galaxy")
	require.NoError(t, err)
	sched.Advance(testDelays.Search / 2)
	_, err = svc.Search(id, "Sam")
	require.NoError(t, err)

	sched.Advance(testDelays.Search / 2)
	state, _ := svc.SearchState(id)
	assert.True(t, state.Searching, "first search fired but was superseded")
	assert.Empty(t, state.Results)

	sched.Advance(testDelays.Search)
	state, _ = svc.SearchState(id)
	assert.Equal(t, []string{"WM001", "WM023"}, ids(state.Results))
}

func TestShortSearchCancelsPending(t *testing.T) {
	sched := &deferred.ManualScheduler{IgnoreStop: true}
	svc := newSessionService(t, sched, &mockNotifier{})
	id := svc.Create(context.Background()).ID

	_, err := svc.Search(id, "Samsung")
	require.NoError(t, err)
	state, err := svc.Search(id, "Sa")
	require.NoError(t, err)
	assert.False(t, state.Open)
	assert.False(t, state.Searching)

	sched.Advance(testDelays.Search)
	state, _ = svc.SearchState(id)
	assert.False(t, state.Open)
	assert.Empty(t, state.Results)
}

func TestDeleteSessionInvalidatesCallbacks(t *testing.T) {
	sched := &deferred.ManualScheduler{IgnoreStop: true}
	svc := newSessionService(t, sched, &mockNotifier{})
	id := svc.Create(context.Background()).ID
	_, err := svc.Search(id, "Samsung")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(id))
	assert.Equal(t, 0, svc.Count())
	assert.NotPanics(t, func() { sched.Advance(testDelays.Modal) })

	_, err = svc.Get(id)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.ErrorIs(t, svc.Delete(id), ErrSessionNotFound)
}

func TestCloseSearchKeepsResults(t *testing.T) {
	sched := &deferred.ManualScheduler{}
	svc := newSessionService(t, sched, &mockNotifier{})
	id := svc.Create(context.Background()).ID

	_, _ = svc.Search(id, "great value")
	sched.Advance(testDelays.Search)
	state, err := svc.CloseSearch(id)
	require.NoError(t, err)
	assert.False(t, state.Open)
	assert.Len(t, state.Results, 3)
}

func TestDispatch(t *testing.T) {
	svc := newSessionService(t, &deferred.ManualScheduler{}, &mockNotifier{})
	id := svc.Create(context.Background()).ID
	ctx := context.Background()

	view, err := svc.Dispatch(ctx, id, viewmodel.DashboardAction{Type: viewmodel.ActionNext})
	require.NoError(t, err)
	assert.Equal(t, 2, view.Page.Page)
	assert.Equal(t, 11, view.Page.From)

	view, err = svc.Dispatch(ctx, id, viewmodel.DashboardAction{Type: viewmodel.ActionFilter, Value: "shift"})
	require.NoError(t, err)
	assert.Equal(t, 1, view.Dashboard.Query.Page)
	assert.Equal(t, 9, view.Page.Total)

	view, err = svc.Dispatch(ctx, id, viewmodel.DashboardAction{Type: viewmodel.ActionPage, Page: 7})
	require.NoError(t, err)
	assert.Equal(t, 1, view.Dashboard.Query.Page, "page settles to the last available page")

	_, err = svc.Dispatch(ctx, id, viewmodel.DashboardAction{Type: "explode"})
	assert.ErrorIs(t, err, viewmodel.ErrUnknownAction)

	_, err = svc.Dispatch(ctx, "missing", viewmodel.DashboardAction{Type: viewmodel.ActionNext})
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSetScenarioShowsModalLoading(t *testing.T) {
	sched := &deferred.ManualScheduler{}
	svc := newSessionService(t, sched, &mockNotifier{})
	id := svc.Create(context.Background()).ID

	sv, err := svc.SetScenario(id, "WM001", 10)
	require.NoError(t, err)
	assert.Equal(t, float64(1_250_000), sv.Scenario.ProjectedLoss)

	view, _ := svc.Get(id)
	assert.True(t, view.Loading.Modal)
	sched.Advance(testDelays.Modal)
	view, _ = svc.Get(id)
	assert.False(t, view.Loading.Modal)

	_, err = svc.SetScenario(id, "WM001", 15)
	require.NoError(t, err)
	view, _ = svc.Get(id)
	assert.False(t, view.Loading.Modal, "moving the slider does not reload the modal")
	assert.Equal(t, float64(15), view.Scenario.TariffIncrease)

	_, err = svc.SetScenario(id, "nope", 10)
	assert.ErrorIs(t, err, ErrSKUNotFound)
}

func TestAlertLifecycle(t *testing.T) {
	svc := newSessionService(t, &deferred.ManualScheduler{}, &mockNotifier{})
	id := svc.Create(context.Background()).ID

	rule, err := svc.CreateAlert(id, domain.AlertInput{Condition: "Geo Risk Score", Threshold: "85", Email: "ops@example.com", IsActive: true})
	require.NoError(t, err)
	assert.NotEmpty(t, rule.ID)

	_, err = svc.CreateAlert(id, domain.AlertInput{Condition: "Geo Risk Score", Threshold: "high", Email: "ops@example.com"})
	assert.ErrorIs(t, err, domain.ErrInvalidThreshold)

	updated, err := svc.UpdateAlert(id, rule.ID, domain.AlertInput{Condition: "Geo Risk Score", Threshold: "120", Email: "ops@example.com", IsActive: true})
	require.NoError(t, err)
	assert.Equal(t, float64(100), updated.Threshold)

	toggled, err := svc.ToggleAlert(id, "1")
	require.NoError(t, err)
	assert.False(t, toggled.IsActive)

	require.NoError(t, svc.DeleteAlert(id, "2"))
	assert.ErrorIs(t, svc.DeleteAlert(id, "2"), domain.ErrAlertNotFound)

	alerts, err := svc.Alerts(id)
	require.NoError(t, err)
	require.Len(t, alerts.Rules, 3)
	assert.Equal(t, []string{"1", "3", rule.ID}, []string{alerts.Rules[0].ID, alerts.Rules[1].ID, alerts.Rules[2].ID})
}

func TestEvaluateAlertsNotifies(t *testing.T) {
	notifier := &mockNotifier{}
	svc := newSessionService(t, &deferred.ManualScheduler{}, notifier)
	id := svc.Create(context.Background()).ID

	triggers, err := svc.EvaluateAlerts(context.Background(), id)
	require.NoError(t, err)
	require.Len(t, notifier.sent, 1)
	assert.Equal(t, triggers, notifier.sent[0])

	// Default active rules: SKU Risk Score > 80 and Category Risk Change > 15.
	var skuHits, categoryHits int
	for _, tr := range triggers {
		switch tr.Condition {
		case domain.ConditionSKURisk:
			skuHits++
		case domain.ConditionCategoryChange:
			categoryHits++
		}
	}
	assert.Equal(t, 8, skuHits)
	assert.Equal(t, 6, categoryHits)

	notifier.err = errors.New("smtp down")
	_, err = svc.EvaluateAlerts(context.Background(), id)
	assert.Error(t, err)
}

func TestLookupRejectsSessionClosedByEviction(t *testing.T) {
	sched := &deferred.ManualScheduler{}
	svc := newSessionService(t, sched, &mockNotifier{})
	id := svc.Create(context.Background()).ID

	v, ok := svc.store.Get(id)
	require.True(t, ok)
	// Eviction lands between a lookup's Get and SetDefault.
	svc.store.Delete(id)
	svc.store.SetDefault(id, v)

	_, err := svc.Search(id, "Samsung")
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.Equal(t, 0, svc.Count(), "closed session is dropped from the store")
	assert.Equal(t, 0, sched.Pending())

	_, err = svc.Get(id)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

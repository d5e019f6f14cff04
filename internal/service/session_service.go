// backend-go/internal/service/session_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/andresuchdata/tariff-risk/backend-go/internal/alerting"
	"github.com/andresuchdata/tariff-risk/backend-go/internal/deferred"
	"github.com/andresuchdata/tariff-risk/backend-go/internal/domain"
	"github.com/andresuchdata/tariff-risk/backend-go/internal/query"
	"github.com/andresuchdata/tariff-risk/backend-go/internal/viewmodel"
	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
	"github.com/rs/zerolog/log"
)

var ErrSessionNotFound = errors.New("session not found")

// Delays are the simulated loading times of the dashboard views.
type Delays struct {
	Search   time.Duration
	KPI      time.Duration
	Category time.Duration
	Modal    time.Duration
}

// Loading reports which simulated loads are still pending.
type Loading struct {
	KPIs       bool `json:"kpis"`
	Categories bool `json:"categories"`
	Modal      bool `json:"modal"`
}

// session is the mutable view state behind one session id. Every field below
// mu is guarded by it. Each deferred concern has its own guard so a newer
// event only supersedes callbacks of the same kind.
type session struct {
	id      string
	created time.Time
	closed  atomic.Bool

	mu        sync.Mutex
	dashboard viewmodel.DashboardState
	page      domain.SKUPage
	search    viewmodel.SearchState
	alerts    viewmodel.AlertsState
	scenario  viewmodel.ScenarioState
	loading   Loading

	searchGuard   deferred.Guard
	kpiGuard      deferred.Guard
	categoryGuard deferred.Guard
	modalGuard    deferred.Guard
}

func (s *session) close() {
	s.closed.Store(true)
	s.searchGuard.Close()
	s.kpiGuard.Close()
	s.categoryGuard.Close()
	s.modalGuard.Close()
}

// SessionView is a consistent copy of a session's state.
type SessionView struct {
	ID        string                   `json:"id"`
	CreatedAt time.Time                `json:"created_at"`
	Dashboard viewmodel.DashboardState `json:"dashboard"`
	Page      domain.SKUPage           `json:"page"`
	Search    viewmodel.SearchState    `json:"search"`
	Alerts    viewmodel.AlertsState    `json:"alerts"`
	Scenario  viewmodel.ScenarioState  `json:"scenario"`
	Loading   Loading                  `json:"loading"`
}

func (s *session) viewLocked() SessionView {
	return SessionView{
		ID:        s.id,
		CreatedAt: s.created,
		Dashboard: s.dashboard,
		Page:      s.page,
		Search:    s.search,
		Alerts:    viewmodel.AlertsState{Rules: append([]domain.AlertRule(nil), s.alerts.Rules...)},
		Scenario:  s.scenario,
		Loading:   s.loading,
	}
}

// ScenarioView pairs the slider state with its projection.
type ScenarioView struct {
	State    viewmodel.ScenarioState `json:"state"`
	Scenario domain.Scenario         `json:"scenario"`
}

// SessionService keeps per-session view state in memory. Sessions expire
// after ttl without access; expiry and deletion invalidate pending callbacks.
type SessionService struct {
	catalog   *CatalogService
	notifier  alerting.Notifier
	scheduler deferred.Scheduler
	delays    Delays
	store     *gocache.Cache
	now       func() time.Time
}

func NewSessionService(catalog *CatalogService, notifier alerting.Notifier, scheduler deferred.Scheduler, ttl time.Duration, delays Delays) *SessionService {
	if notifier == nil {
		notifier = alerting.LogNotifier{}
	}
	if scheduler == nil {
		scheduler = deferred.RealScheduler{}
	}
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}

	store := gocache.New(ttl, ttl/2)
	store.OnEvicted(func(id string, v interface{}) {
		if sess, ok := v.(*session); ok {
			sess.close()
			log.Debug().Str("session", id).Msg("session closed")
		}
	})

	return &SessionService{
		catalog:   catalog,
		notifier:  notifier,
		scheduler: scheduler,
		delays:    delays,
		store:     store,
		now:       time.Now,
	}
}

// Create starts a session with default view state and schedules the
// overview loading delays.
func (s *SessionService) Create(ctx context.Context) SessionView {
	sess := &session{
		id:        uuid.NewString(),
		created:   s.now().UTC(),
		dashboard: viewmodel.NewDashboard(),
		alerts:    viewmodel.DefaultAlerts(),
		scenario:  viewmodel.NewScenario(),
		loading:   Loading{KPIs: true, Categories: true},
	}
	sess.page = s.catalog.QuerySKUs(ctx, sess.dashboard.Query)

	sess.mu.Lock()
	defer sess.mu.Unlock()

	s.store.SetDefault(sess.id, sess)
	s.finishAfter(sess, &sess.kpiGuard, s.delays.KPI, func(l *Loading) { l.KPIs = false })
	s.finishAfter(sess, &sess.categoryGuard, s.delays.Category, func(l *Loading) { l.Categories = false })

	log.Info().Str("session", sess.id).Msg("session created")
	return sess.viewLocked()
}

// finishAfter clears a loading flag after d unless superseded.
func (s *SessionService) finishAfter(sess *session, g *deferred.Guard, d time.Duration, clear func(*Loading)) {
	g.Schedule(s.scheduler, d, func(t deferred.Ticket) {
		sess.mu.Lock()
		defer sess.mu.Unlock()
		if g.Valid(t) {
			clear(&sess.loading)
		}
	})
}

// lookup returns a live session and refreshes its expiry.
func (s *SessionService) lookup(id string) (*session, error) {
	v, ok := s.store.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	sess := v.(*session)
	s.store.SetDefault(id, sess)
	// An eviction between Get and SetDefault puts a closed session back.
	if sess.closed.Load() {
		s.store.Delete(id)
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return sess, nil
}

func (s *SessionService) Get(id string) (SessionView, error) {
	sess, err := s.lookup(id)
	if err != nil {
		return SessionView{}, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.viewLocked(), nil
}

// Delete ends a session. Pending callbacks of that session become no-ops.
func (s *SessionService) Delete(id string) error {
	if _, ok := s.store.Get(id); !ok {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	s.store.Delete(id)
	return nil
}

// Count is the number of live sessions.
func (s *SessionService) Count() int {
	return s.store.ItemCount()
}

// Close ends every session.
func (s *SessionService) Close() {
	for id := range s.store.Items() {
		s.store.Delete(id)
	}
}

// Dispatch applies a dashboard action and recomputes the visible page.
func (s *SessionService) Dispatch(ctx context.Context, id string, action viewmodel.DashboardAction) (SessionView, error) {
	sess, err := s.lookup(id)
	if err != nil {
		return SessionView{}, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	next, err := viewmodel.ReduceDashboard(sess.dashboard, action)
	if err != nil {
		return SessionView{}, err
	}
	page := s.catalog.QuerySKUs(ctx, next.Query)
	sess.dashboard = viewmodel.Settle(next, page)
	sess.page = page
	return sess.viewLocked(), nil
}

// Search records a new overview search term. Terms long enough to search
// resolve after the search delay; any later term or session teardown makes
// the pending result a no-op.
func (s *SessionService) Search(id, term string) (viewmodel.SearchState, error) {
	sess, err := s.lookup(id)
	if err != nil {
		return viewmodel.SearchState{}, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if len([]rune(term)) < query.MinCatalogSearchLength {
		t := sess.searchGuard.Next()
		sess.search, _ = viewmodel.BeginSearch(sess.search, term, uint64(t), query.MinCatalogSearchLength)
		return sess.search, nil
	}

	t := sess.searchGuard.Schedule(s.scheduler, s.delays.Search, func(t deferred.Ticket) {
		results := s.catalog.Search(term)

		sess.mu.Lock()
		defer sess.mu.Unlock()
		sess.search = viewmodel.ResolveSearch(sess.search, viewmodel.SearchResult{
			Gen:     uint64(t),
			Term:    term,
			Results: results,
		})
	})
	sess.search, _ = viewmodel.BeginSearch(sess.search, term, uint64(t), query.MinCatalogSearchLength)
	return sess.search, nil
}

func (s *SessionService) SearchState(id string) (viewmodel.SearchState, error) {
	sess, err := s.lookup(id)
	if err != nil {
		return viewmodel.SearchState{}, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.search, nil
}

// CloseSearch hides the results without cancelling a pending search.
func (s *SessionService) CloseSearch(id string) (viewmodel.SearchState, error) {
	sess, err := s.lookup(id)
	if err != nil {
		return viewmodel.SearchState{}, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.search = viewmodel.CloseSearch(sess.search)
	return sess.search, nil
}

// SetScenario opens a SKU in the detail view and moves the slider. Opening a
// different SKU shows the modal loading state for the modal delay.
func (s *SessionService) SetScenario(id, skuID string, increase float64) (ScenarioView, error) {
	sess, err := s.lookup(id)
	if err != nil {
		return ScenarioView{}, err
	}
	projection, err := s.catalog.Scenario(skuID, increase)
	if err != nil {
		return ScenarioView{}, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.scenario.SKUID != skuID {
		sess.loading.Modal = true
		s.finishAfter(sess, &sess.modalGuard, s.delays.Modal, func(l *Loading) { l.Modal = false })
	}
	sess.scenario = viewmodel.SetScenario(sess.scenario, skuID, increase)
	return ScenarioView{State: sess.scenario, Scenario: projection}, nil
}

func (s *SessionService) Alerts(id string) (viewmodel.AlertsState, error) {
	sess, err := s.lookup(id)
	if err != nil {
		return viewmodel.AlertsState{}, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.viewLocked().Alerts, nil
}

func (s *SessionService) CreateAlert(id string, in domain.AlertInput) (domain.AlertRule, error) {
	rule, err := in.Rule(uuid.NewString())
	if err != nil {
		return domain.AlertRule{}, err
	}
	err = s.updateAlerts(id, func(a viewmodel.AlertsState) (viewmodel.AlertsState, error) {
		return viewmodel.AddAlert(a, rule), nil
	})
	if err != nil {
		return domain.AlertRule{}, err
	}
	return rule, nil
}

func (s *SessionService) UpdateAlert(id, alertID string, in domain.AlertInput) (domain.AlertRule, error) {
	rule, err := in.Rule(alertID)
	if err != nil {
		return domain.AlertRule{}, err
	}
	err = s.updateAlerts(id, func(a viewmodel.AlertsState) (viewmodel.AlertsState, error) {
		return viewmodel.UpdateAlert(a, rule)
	})
	if err != nil {
		return domain.AlertRule{}, err
	}
	return rule, nil
}

func (s *SessionService) DeleteAlert(id, alertID string) error {
	return s.updateAlerts(id, func(a viewmodel.AlertsState) (viewmodel.AlertsState, error) {
		return viewmodel.DeleteAlert(a, alertID)
	})
}

func (s *SessionService) ToggleAlert(id, alertID string) (domain.AlertRule, error) {
	var rule domain.AlertRule
	err := s.updateAlerts(id, func(a viewmodel.AlertsState) (viewmodel.AlertsState, error) {
		next, err := viewmodel.ToggleAlert(a, alertID)
		if err != nil {
			return a, err
		}
		rule, _ = next.Find(alertID)
		return next, nil
	})
	return rule, err
}

func (s *SessionService) updateAlerts(id string, f func(viewmodel.AlertsState) (viewmodel.AlertsState, error)) error {
	sess, err := s.lookup(id)
	if err != nil {
		return err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	next, err := f(sess.alerts)
	if err != nil {
		return err
	}
	sess.alerts = next
	return nil
}

// EvaluateAlerts checks the session's active rules against the catalog and
// hands any triggers to the notifier.
func (s *SessionService) EvaluateAlerts(ctx context.Context, id string) ([]domain.AlertTrigger, error) {
	sess, err := s.lookup(id)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	rules := sess.alerts.Active()
	sess.mu.Unlock()

	c := s.catalog.Catalog()
	triggers := alerting.Evaluate(rules, c.SKUs(), c.Categories(), c.Suppliers())
	if err := s.notifier.Notify(ctx, triggers); err != nil {
		return triggers, fmt.Errorf("failed to send alerts: %w", err)
	}
	log.Info().Str("session", id).Int("rules", len(rules)).Int("triggers", len(triggers)).Msg("alerts evaluated")
	return triggers, nil
}

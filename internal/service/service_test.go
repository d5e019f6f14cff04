package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/andresuchdata/tariff-risk/backend-go/internal/catalog"
	"github.com/andresuchdata/tariff-risk/backend-go/internal/deferred"
	"github.com/andresuchdata/tariff-risk/backend-go/internal/domain"
	"github.com/stretchr/testify/require"
)

var testDelays = Delays{
	Search:   600 * time.Millisecond,
	KPI:      800 * time.Millisecond,
	Category: 1200 * time.Millisecond,
	Modal:    1500 * time.Millisecond,
}

type mockNotifier struct {
	sent [][]domain.AlertTrigger
	err  error
}

func (m *mockNotifier) Notify(_ context.Context, triggers []domain.AlertTrigger) error {
	m.sent = append(m.sent, triggers)
	return m.err
}

func (m *mockNotifier) Close() error { return nil }

type failingSource struct{}

func (failingSource) Load(context.Context) (*catalog.Catalog, error) {
	return nil, errors.New("db down")
}

func newCatalogService(t *testing.T) *CatalogService {
	t.Helper()
	svc, err := NewCatalogService(context.Background(), catalog.StaticSource{}, nil)
	require.NoError(t, err)
	return svc
}

func newSessionService(t *testing.T, sched deferred.Scheduler, notifier *mockNotifier) *SessionService {
	t.Helper()
	svc := NewSessionService(newCatalogService(t), notifier, sched, time.Minute, testDelays)
	t.Cleanup(svc.Close)
	return svc
}

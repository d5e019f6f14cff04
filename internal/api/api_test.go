package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/andresuchdata/tariff-risk/backend-go/internal/alerting"
	"github.com/andresuchdata/tariff-risk/backend-go/internal/catalog"
	"github.com/andresuchdata/tariff-risk/backend-go/internal/deferred"
	"github.com/andresuchdata/tariff-risk/backend-go/internal/domain"
	"github.com/andresuchdata/tariff-risk/backend-go/internal/export"
	"github.com/andresuchdata/tariff-risk/backend-go/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testServer struct {
	router *gin.Engine
	sched  *deferred.ManualScheduler
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	catalogSvc, err := service.NewCatalogService(context.Background(), catalog.StaticSource{}, nil)
	require.NoError(t, err)

	sched := &deferred.ManualScheduler{}
	sessions := service.NewSessionService(catalogSvc, alerting.LogNotifier{}, sched, time.Minute, service.Delays{
		Search: 600 * time.Millisecond,
		KPI:    800 * time.Millisecond,
	})
	t.Cleanup(sessions.Close)

	now := func() time.Time { return time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC) }
	router := NewRouter(&Services{
		CatalogService: catalogSvc,
		SessionService: sessions,
		ReportService:  service.NewReportService(catalogSvc, now),
	}, []string{"*"})
	return &testServer{router: router, sched: sched}
}

func (s *testServer) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestHealthAndMetrics(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)

	rec = s.do(t, http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "tariff_risk_http_requests_total")
}

func TestOverviewRoutes(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/api/v1/overview/kpis", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	kpis := decode[domain.OverviewKPIs](t, rec)
	assert.Equal(t, 24, kpis.TotalSKUs)
	assert.Equal(t, "$40.8M", kpis.TotalAtRiskDisplay)

	rec = s.do(t, http.MethodGet, "/api/v1/overview/categories", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]domain.CategoryRollup](t, rec), 7)

	rec = s.do(t, http.MethodGet, "/api/v1/overview/search?q=xyzzy", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"no_matches":true`)

	rec = s.do(t, http.MethodGet, "/api/v1/overview/new-sku-options", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestListSKUs(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/api/v1/skus?action=shift&sort_field=spend&sort_direction=asc", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	page := decode[domain.SKUPage](t, rec)
	assert.Equal(t, 9, page.Total)
	require.NotEmpty(t, page.Items)
	for i := 1; i < len(page.Items); i++ {
		assert.LessOrEqual(t, page.Items[i-1].Spend, page.Items[i].Spend)
	}

	rec = s.do(t, http.MethodGet, "/api/v1/skus?action=panic", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"error"`)
}

func TestSKUDetailRoutes(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/api/v1/skus/WM001", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"risk_level":"High"`)

	rec = s.do(t, http.MethodGet, "/api/v1/skus/WM001/alternatives", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.SourcingAvailable, decode[domain.SourcingAssessment](t, rec).State)

	rec = s.do(t, http.MethodGet, "/api/v1/skus/WM001/scenario?tariff_increase=10", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(1_250_000), decode[domain.Scenario](t, rec).ProjectedLoss)

	rec = s.do(t, http.MethodGet, "/api/v1/skus/WM001/scenario?tariff_increase=lots", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/v1/skus/WM001/charts", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/v1/skus/NOPE", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), `"details"`)
}

func TestSessionFlow(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/v1/sessions", nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	view := decode[service.SessionView](t, rec)
	base := "/api/v1/sessions/" + view.ID

	rec = s.do(t, http.MethodPost, base+"/dashboard", gin.H{"type": "sort", "value": "spend"})
	require.Equal(t, http.StatusOK, rec.Code)
	view = decode[service.SessionView](t, rec)
	assert.Equal(t, "spend", view.Dashboard.Query.SortField)

	rec = s.do(t, http.MethodPost, base+"/dashboard", gin.H{"type": "explode"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodPost, base+"/search", gin.H{"term": "Sam"})
	require.Equal(t, http.StatusAccepted, rec.Code)
	rec = s.do(t, http.MethodPost, base+"/search", gin.H{"term": "Samsung Galaxy"})
	require.Equal(t, http.StatusAccepted, rec.Code)
	s.sched.Advance(time.Second)

	rec = s.do(t, http.MethodGet, base+"/search", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"WM023"`)
	assert.NotContains(t, rec.Body.String(), `"WM001"`)

	rec = s.do(t, http.MethodPut, base+"/scenario", gin.H{"sku_id": "WM002", "tariff_increase": 12})
	require.Equal(t, http.StatusOK, rec.Code)
	sv := decode[service.ScenarioView](t, rec)
	assert.Equal(t, float64(12), sv.State.TariffIncrease)

	rec = s.do(t, http.MethodDelete, base, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = s.do(t, http.MethodGet, base, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAlertRoutes(t *testing.T) {
	s := newTestServer(t)
	view := decode[service.SessionView](t, s.do(t, http.MethodPost, "/api/v1/sessions", nil))
	base := "/api/v1/sessions/" + view.ID + "/alerts"

	rec := s.do(t, http.MethodGet, "/api/v1/alerts/conditions", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Supplier Risk Change")

	rec = s.do(t, http.MethodPost, base, gin.H{"condition": "Geo Risk Score", "threshold": "75", "email": "ops@example.com"})
	require.Equal(t, http.StatusCreated, rec.Code)
	rule := decode[domain.AlertRule](t, rec)
	assert.True(t, rule.IsActive)
	assert.Equal(t, float64(75), rule.Threshold)

	rec = s.do(t, http.MethodPost, base, gin.H{"condition": "Geo Risk Score", "threshold": 75, "email": "not-an-email"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec = s.do(t, http.MethodPost, base, gin.H{"condition": "Moon Phase", "threshold": 75, "email": "ops@example.com"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodPut, base+"/"+rule.ID, gin.H{"condition": "Geo Risk Score", "threshold": 90, "email": "ops@example.com", "is_active": false})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, decode[domain.AlertRule](t, rec).IsActive)

	rec = s.do(t, http.MethodPost, base+"/"+rule.ID+"/toggle", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decode[domain.AlertRule](t, rec).IsActive)

	rec = s.do(t, http.MethodGet, base, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"summary":"Geo Risk Score > 90"`)

	rec = s.do(t, http.MethodPost, base+"/evaluate", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"triggers"`)

	rec = s.do(t, http.MethodDelete, base+"/"+rule.ID, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = s.do(t, http.MethodDelete, base+"/"+rule.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestExportRoutes(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/api/v1/exports/high-risk-skus.csv", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, export.ContentTypeCSV, rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), export.HighRiskSKUsFilename)
	assert.True(t, strings.HasPrefix(rec.Body.String(), "SKU ID,"))

	rec = s.do(t, http.MethodGet, "/api/v1/exports/executive-summary.pdf", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Body.String(), "%PDF"))

	rec = s.do(t, http.MethodGet, "/api/v1/exports/sourcing-report/WM002.pdf", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "walmart-sourcing-report-WM002.pdf")

	rec = s.do(t, http.MethodGet, "/api/v1/exports/sourcing-report/WM002/document", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	doc := decode[export.Document](t, rec)
	assert.Equal(t, "walmart-sourcing-report-WM002.pdf", doc.Filename)

	rec = s.do(t, http.MethodGet, "/api/v1/exports/sourcing-report/NOPE.pdf", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAdminRoutes(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/api/v1/admin/feeds", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	feeds := decode[[]domain.DataFeed](t, rec)
	require.NotEmpty(t, feeds)

	rec = s.do(t, http.MethodPost, "/api/v1/admin/feeds/"+feeds[0].ID+"/refresh", nil)
	assert.Equal(t, http.StatusAccepted, rec.Code)
	rec = s.do(t, http.MethodPost, "/api/v1/admin/feeds/nope/refresh", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestNormalizeAllowedOrigins(t *testing.T) {
	origins, all := normalizeAllowedOrigins([]string{"http://a.test, http://b.test", " "})
	assert.False(t, all)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, origins)

	_, all = normalizeAllowedOrigins([]string{"*"})
	assert.True(t, all)
}

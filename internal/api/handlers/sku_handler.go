package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/andresuchdata/tariff-risk/backend-go/internal/analytics"
	"github.com/andresuchdata/tariff-risk/backend-go/internal/domain"
	"github.com/andresuchdata/tariff-risk/backend-go/internal/service"
	"github.com/gin-gonic/gin"
)

type SKUHandler struct {
	service *service.CatalogService
}

func NewSKUHandler(service *service.CatalogService) *SKUHandler {
	return &SKUHandler{service: service}
}

func (h *SKUHandler) parseQuery(c *gin.Context) (domain.SKUQuery, bool) {
	q := domain.DefaultSKUQuery()
	q.Search = c.Query("search")

	if action := strings.ToLower(strings.TrimSpace(c.Query("action"))); action != "" {
		if _, ok := domain.ParseAction(action); !ok && action != domain.ActionAll {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid action filter", "details": action})
			return q, false
		}
		q.Action = action
	}

	if field := strings.TrimSpace(c.Query("sort_field")); field != "" {
		q.SortField = field
	}
	if strings.ToLower(strings.TrimSpace(c.Query("sort_direction"))) == "asc" {
		q.SortDir = domain.SortAsc
	}
	if page, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil && page > 0 {
		q.Page = page
	}
	return q, true
}

func (h *SKUHandler) List(c *gin.Context) {
	q, ok := h.parseQuery(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.service.QuerySKUs(c.Request.Context(), q))
}

func (h *SKUHandler) Get(c *gin.Context) {
	sku, err := h.service.SKU(c.Param("id"))
	if err != nil {
		respondError(c, "failed to fetch sku", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"sku":                   sku,
		"risk_level":            domain.RiskLevel(sku.TotalRisk),
		"potential_annual_loss": analytics.PotentialAnnualLoss(sku),
	})
}

func (h *SKUHandler) GetAlternatives(c *gin.Context) {
	a, err := h.service.Alternatives(c.Param("id"))
	if err != nil {
		respondError(c, "failed to rank alternatives", err)
		return
	}
	c.JSON(http.StatusOK, a)
}

func (h *SKUHandler) GetScenario(c *gin.Context) {
	increase, err := strconv.ParseFloat(c.DefaultQuery("tariff_increase", strconv.Itoa(analytics.MinTariffIncrease)), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid tariff_increase", "details": err.Error()})
		return
	}
	s, err := h.service.Scenario(c.Param("id"), increase)
	if err != nil {
		respondError(c, "failed to project scenario", err)
		return
	}
	c.JSON(http.StatusOK, s)
}

func (h *SKUHandler) GetCharts(c *gin.Context) {
	charts, err := h.service.Charts(c.Param("id"))
	if err != nil {
		respondError(c, "failed to fetch charts", err)
		return
	}
	c.JSON(http.StatusOK, charts)
}

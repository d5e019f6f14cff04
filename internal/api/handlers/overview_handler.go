package handlers

import (
	"net/http"

	"github.com/andresuchdata/tariff-risk/backend-go/internal/service"
	"github.com/gin-gonic/gin"
)

type OverviewHandler struct {
	service *service.CatalogService
}

func NewOverviewHandler(service *service.CatalogService) *OverviewHandler {
	return &OverviewHandler{service: service}
}

func (h *OverviewHandler) GetKPIs(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.KPIs(c.Request.Context()))
}

func (h *OverviewHandler) GetCategories(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.Categories())
}

// Search answers immediately; the delayed variant lives on sessions.
func (h *OverviewHandler) Search(c *gin.Context) {
	term := c.Query("q")
	results := h.service.Search(term)
	c.JSON(http.StatusOK, gin.H{
		"term":       term,
		"results":    results,
		"no_matches": len(results) == 0,
	})
}

func (h *OverviewHandler) GetNewSKUOptions(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.NewSKUOptions())
}

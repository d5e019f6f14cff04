package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/andresuchdata/tariff-risk/backend-go/internal/export"
	"github.com/andresuchdata/tariff-risk/backend-go/internal/service"
	"github.com/gin-gonic/gin"
)

type ExportHandler struct {
	service *service.ReportService
}

func NewExportHandler(service *service.ReportService) *ExportHandler {
	return &ExportHandler{service: service}
}

func attachment(c *gin.Context, a export.Artifact) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", a.Filename))
	c.Data(http.StatusOK, a.ContentType, a.Data)
}

func (h *ExportHandler) HighRiskSKUs(c *gin.Context) {
	attachment(c, h.service.HighRiskSKUs())
}

func (h *ExportHandler) CategoryAnalysis(c *gin.Context) {
	attachment(c, h.service.CategoryAnalysis())
}

func (h *ExportHandler) SupplierAlternatives(c *gin.Context) {
	attachment(c, h.service.SupplierAlternatives())
}

func (h *ExportHandler) ExecutiveSummary(c *gin.Context) {
	a, err := h.service.ExecutiveSummary()
	if err != nil {
		respondError(c, "failed to render executive summary", err)
		return
	}
	attachment(c, a)
}

// SourcingReport serves /sourcing-report/:id, with or without a .pdf suffix.
func (h *ExportHandler) SourcingReport(c *gin.Context) {
	id := strings.TrimSuffix(c.Param("id"), ".pdf")
	a, err := h.service.SourcingReport(id)
	if err != nil {
		respondError(c, "failed to render sourcing report", err)
		return
	}
	attachment(c, a)
}

// SourcingDocument returns the laid-out report as JSON instructions.
func (h *ExportHandler) SourcingDocument(c *gin.Context) {
	doc, err := h.service.SourcingDocument(c.Param("id"))
	if err != nil {
		respondError(c, "failed to lay out sourcing report", err)
		return
	}
	c.JSON(http.StatusOK, doc)
}

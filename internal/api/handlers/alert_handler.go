package handlers

import (
	"net/http"
	"strconv"

	"github.com/andresuchdata/tariff-risk/backend-go/internal/domain"
	"github.com/andresuchdata/tariff-risk/backend-go/internal/service"
	"github.com/gin-gonic/gin"
)

type AlertHandler struct {
	service *service.SessionService
}

func NewAlertHandler(service *service.SessionService) *AlertHandler {
	return &AlertHandler{service: service}
}

// alertRequest accepts the threshold either as a JSON number or as the raw
// text of the form field.
type alertRequest struct {
	Condition string `json:"condition"`
	Threshold any    `json:"threshold"`
	Email     string `json:"email"`
	IsActive  *bool  `json:"is_active"`
}

func (r alertRequest) input() domain.AlertInput {
	in := domain.AlertInput{Condition: r.Condition, Email: r.Email, IsActive: true}
	if r.IsActive != nil {
		in.IsActive = *r.IsActive
	}
	switch v := r.Threshold.(type) {
	case float64:
		in.Threshold = strconv.FormatFloat(v, 'f', -1, 64)
	case string:
		in.Threshold = v
	}
	return in
}

func (h *AlertHandler) bind(c *gin.Context) (domain.AlertInput, bool) {
	var req alertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid alert", "details": err.Error()})
		return domain.AlertInput{}, false
	}
	return req.input(), true
}

func (h *AlertHandler) Conditions(c *gin.Context) {
	c.JSON(http.StatusOK, domain.AlertConditions)
}

func (h *AlertHandler) List(c *gin.Context) {
	alerts, err := h.service.Alerts(c.Param("id"))
	if err != nil {
		respondError(c, "failed to fetch alerts", err)
		return
	}
	rules := make([]gin.H, 0, len(alerts.Rules))
	for _, r := range alerts.Rules {
		rules = append(rules, gin.H{"rule": r, "summary": r.Summary()})
	}
	c.JSON(http.StatusOK, gin.H{"alerts": rules, "active": len(alerts.Active())})
}

func (h *AlertHandler) Create(c *gin.Context) {
	in, ok := h.bind(c)
	if !ok {
		return
	}
	rule, err := h.service.CreateAlert(c.Param("id"), in)
	if err != nil {
		respondError(c, "failed to create alert", err)
		return
	}
	c.JSON(http.StatusCreated, rule)
}

func (h *AlertHandler) Update(c *gin.Context) {
	in, ok := h.bind(c)
	if !ok {
		return
	}
	rule, err := h.service.UpdateAlert(c.Param("id"), c.Param("alertId"), in)
	if err != nil {
		respondError(c, "failed to update alert", err)
		return
	}
	c.JSON(http.StatusOK, rule)
}

func (h *AlertHandler) Delete(c *gin.Context) {
	if err := h.service.DeleteAlert(c.Param("id"), c.Param("alertId")); err != nil {
		respondError(c, "failed to delete alert", err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *AlertHandler) Toggle(c *gin.Context) {
	rule, err := h.service.ToggleAlert(c.Param("id"), c.Param("alertId"))
	if err != nil {
		respondError(c, "failed to toggle alert", err)
		return
	}
	c.JSON(http.StatusOK, rule)
}

func (h *AlertHandler) Evaluate(c *gin.Context) {
	triggers, err := h.service.EvaluateAlerts(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, "failed to evaluate alerts", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"triggers": triggers, "count": len(triggers)})
}

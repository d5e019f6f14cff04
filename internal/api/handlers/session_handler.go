package handlers

import (
	"net/http"

	"github.com/andresuchdata/tariff-risk/backend-go/internal/service"
	"github.com/andresuchdata/tariff-risk/backend-go/internal/viewmodel"
	"github.com/gin-gonic/gin"
)

type SessionHandler struct {
	service *service.SessionService
}

func NewSessionHandler(service *service.SessionService) *SessionHandler {
	return &SessionHandler{service: service}
}

type searchRequest struct {
	Term string `json:"term"`
}

type scenarioRequest struct {
	SKUID          string  `json:"sku_id" binding:"required"`
	TariffIncrease float64 `json:"tariff_increase"`
}

func (h *SessionHandler) Create(c *gin.Context) {
	c.JSON(http.StatusCreated, h.service.Create(c.Request.Context()))
}

func (h *SessionHandler) Get(c *gin.Context) {
	view, err := h.service.Get(c.Param("id"))
	if err != nil {
		respondError(c, "failed to fetch session", err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *SessionHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Param("id")); err != nil {
		respondError(c, "failed to delete session", err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *SessionHandler) Dispatch(c *gin.Context) {
	var action viewmodel.DashboardAction
	if err := c.ShouldBindJSON(&action); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid dashboard action", "details": err.Error()})
		return
	}
	view, err := h.service.Dispatch(c.Request.Context(), c.Param("id"), action)
	if err != nil {
		respondError(c, "failed to apply dashboard action", err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// Search starts a delayed search; clients poll GetSearch for the result.
func (h *SessionHandler) Search(c *gin.Context) {
	var req searchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid search request", "details": err.Error()})
		return
	}
	state, err := h.service.Search(c.Param("id"), req.Term)
	if err != nil {
		respondError(c, "failed to start search", err)
		return
	}
	c.JSON(http.StatusAccepted, state)
}

func (h *SessionHandler) GetSearch(c *gin.Context) {
	state, err := h.service.SearchState(c.Param("id"))
	if err != nil {
		respondError(c, "failed to fetch search", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"search": state, "no_matches": state.NoMatches()})
}

func (h *SessionHandler) CloseSearch(c *gin.Context) {
	state, err := h.service.CloseSearch(c.Param("id"))
	if err != nil {
		respondError(c, "failed to close search", err)
		return
	}
	c.JSON(http.StatusOK, state)
}

func (h *SessionHandler) SetScenario(c *gin.Context) {
	var req scenarioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid scenario request", "details": err.Error()})
		return
	}
	view, err := h.service.SetScenario(c.Param("id"), req.SKUID, req.TariffIncrease)
	if err != nil {
		respondError(c, "failed to set scenario", err)
		return
	}
	c.JSON(http.StatusOK, view)
}

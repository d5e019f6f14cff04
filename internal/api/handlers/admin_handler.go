package handlers

import (
	"net/http"

	"github.com/andresuchdata/tariff-risk/backend-go/internal/service"
	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	service *service.CatalogService
}

func NewAdminHandler(service *service.CatalogService) *AdminHandler {
	return &AdminHandler{service: service}
}

func (h *AdminHandler) ListFeeds(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.DataFeeds())
}

func (h *AdminHandler) RefreshFeed(c *gin.Context) {
	feed, err := h.service.RefreshFeed(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, "failed to refresh feed", err)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{
		"feed":    feed,
		"message": "Refresh initiated. Feed will update in the background.",
	})
}

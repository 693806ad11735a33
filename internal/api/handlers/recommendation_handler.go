package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pharmastock/pharmastock/internal/service"
)

type RecommendationHandler struct {
	service *service.RecommendationService
}

func NewRecommendationHandler(service *service.RecommendationService) *RecommendationHandler {
	return &RecommendationHandler{service: service}
}

func (h *RecommendationHandler) GetRecommendations(c *gin.Context) {
	list, err := h.service.GetRecommendations(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate recommendations"})
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *RecommendationHandler) GetSummary(c *gin.Context) {
	summary, err := h.service.GetSummary(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to summarize recommendations"})
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *RecommendationHandler) Refresh(c *gin.Context) {
	list, err := h.service.Refresh(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to refresh recommendations"})
		return
	}
	c.JSON(http.StatusOK, list)
}

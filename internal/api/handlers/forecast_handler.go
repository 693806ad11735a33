package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/pharmastock/pharmastock/internal/forecast"
)

type ForecastHandler struct {
	client *forecast.Client
}

func NewForecastHandler(client *forecast.Client) *ForecastHandler {
	return &ForecastHandler{client: client}
}

// GetForecast proxies a demand forecast for one drug from the external
// forecasting service.
func (h *ForecastHandler) GetForecast(c *gin.Context) {
	drugID, err := strconv.ParseInt(c.Param("drug_id"), 10, 64)
	if err != nil || drugID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid drug id"})
		return
	}

	horizon := 30
	if v, err := strconv.Atoi(c.DefaultQuery("horizon_days", "30")); err == nil && v > 0 {
		horizon = v
	}

	f, err := h.client.GetForecast(c.Request.Context(), drugID, horizon)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "forecast service unavailable"})
		return
	}
	c.JSON(http.StatusOK, f)
}

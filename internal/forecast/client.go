// internal/forecast/client.go
package forecast

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/pharmastock/pharmastock/internal/config"
)

// Forecast is the shape consumed from the external forecasting service
// (regression / LSTM models). The engine never requires it; the dashboard may
// request it alongside recommendations.
type Forecast struct {
	DrugID      int64     `json:"drug_id"`
	HorizonDays int       `json:"horizon_days"`
	Points      []Point   `json:"points"`
	Metrics     Metrics   `json:"metrics"`
	Model       string    `json:"model"`
	GeneratedAt time.Time `json:"generated_at"`
}

// Point is one forecast step.
type Point struct {
	Date     time.Time `json:"date"`
	Estimate float64   `json:"estimate"`
}

// Metrics reports the model's error statistics on held-out data.
type Metrics struct {
	MAE  float64 `json:"mae"`
	RMSE float64 `json:"rmse"`
	R2   float64 `json:"r2"`
}

// Client queries the external forecasting service.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(cfg config.ForecastConfig) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("forecast base url must be provided")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: cfg.BaseURL,
		http:    &http.Client{Timeout: timeout},
	}, nil
}

// GetForecast fetches a demand forecast for one drug.
func (c *Client) GetForecast(ctx context.Context, drugID int64, horizonDays int) (*Forecast, error) {
	endpoint := fmt.Sprintf("%s/api/v1/forecast/%d?%s", c.baseURL, drugID,
		url.Values{"horizon_days": {fmt.Sprint(horizonDays)}}.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build forecast request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("forecast request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("forecast service returned status %d", resp.StatusCode)
	}

	var f Forecast
	if err := json.NewDecoder(resp.Body).Decode(&f); err != nil {
		return nil, fmt.Errorf("failed to decode forecast response: %w", err)
	}
	return &f, nil
}

// internal/domain/recommendation.go
package domain

import "time"

// RecommendationType identifies the signal a recommendation came from.
type RecommendationType string

const (
	TypeRestock        RecommendationType = "RESTOCK"
	TypeExpiryAlert    RecommendationType = "EXPIRY_ALERT"
	TypeReduceStock    RecommendationType = "REDUCE_STOCK"
	TypeSlowMover      RecommendationType = "SLOW_MOVER"
	TypeIncreaseStock  RecommendationType = "INCREASE_STOCK"
	TypeSeasonal       RecommendationType = "SEASONAL"
	TypeSupplierReview RecommendationType = "SUPPLIER_REVIEW"
)

// Severity is the ordinal business classification used by both the impact and
// urgency fields. It drives multiplier lookups, it is not a computed metric.
type Severity string

const (
	SeverityCritical Severity = "Critical"
	SeverityHigh     Severity = "High"
	SeverityMedium   Severity = "Medium"
	SeverityLow      Severity = "Low"
)

// Recommendation is a single actionable item for the dashboard. PriorityScore
// starts as the generator's base score and is adjusted exactly once by the
// scorer; consumers must not recompute it.
type Recommendation struct {
	Type             RecommendationType `json:"type"`
	Category         string             `json:"category"`
	Title            string             `json:"title"`
	Description      string             `json:"description"`
	Action           string             `json:"action"`
	Impact           Severity           `json:"impact"`
	Urgency          Severity           `json:"urgency"`
	EstimatedCost    float64            `json:"estimated_cost"`
	EstimatedSavings float64            `json:"estimated_savings"`
	PriorityScore    float64            `json:"priority_score"`
	DaysUntilImpact  int                `json:"days_until_impact"`
	ROIRatio         float64            `json:"roi_ratio"`
}

// RecommendationList is the ranked engine output for one run.
type RecommendationList struct {
	Items       []Recommendation `json:"items"`
	Total       int              `json:"total"`
	DataVersion string           `json:"data_version"`
	GeneratedAt time.Time        `json:"generated_at"`
}

// RecommendationSummary aggregates a ranked list by type for dashboard tiles.
type RecommendationSummary struct {
	Counts      map[RecommendationType]int `json:"counts"`
	Critical    int                        `json:"critical"`
	TotalCost   float64                    `json:"total_estimated_cost"`
	TotalSaving float64                    `json:"total_estimated_savings"`
}

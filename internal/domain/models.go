// internal/domain/models.go
package domain

import "time"

// InventoryItem is the read model for a stocked drug. Lifecycle is owned by
// the storage layer; the engine only reads it.
type InventoryItem struct {
	ID           int64      `json:"id" db:"id"`
	DrugName     string     `json:"drug_name" db:"drug_name"`
	Category     string     `json:"category" db:"category"`
	CurrentStock int        `json:"current_stock" db:"current_stock"`
	MinimumStock int        `json:"minimum_stock" db:"minimum_stock"`
	UnitPrice    float64    `json:"unit_price" db:"unit_price"`
	ExpiryDate   *time.Time `json:"expiry_date,omitempty" db:"expiry_date"`
	SupplierID   *int64     `json:"supplier_id,omitempty" db:"supplier_id"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" db:"updated_at"`
}

// ConsumptionRecord is one dispensing event aggregated by the analyzers over
// rolling windows. Never mutated by the engine.
type ConsumptionRecord struct {
	ID               int64     `json:"id" db:"id"`
	DrugID           int64     `json:"drug_id" db:"drug_id"`
	Date             time.Time `json:"date" db:"date"`
	QuantityConsumed float64   `json:"quantity_consumed" db:"quantity_consumed"`
	Department       string    `json:"department" db:"department"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
}

// Supplier carries the bounded 0-5 performance ratings.
type Supplier struct {
	ID               int64     `json:"id" db:"id"`
	Name             string    `json:"name" db:"name"`
	ReliabilityScore float64   `json:"reliability_score" db:"reliability_score"`
	QualityScore     float64   `json:"quality_score" db:"quality_score"`
	CostRating       float64   `json:"cost_rating" db:"cost_rating"`
	LeadTimeDays     int       `json:"lead_time_days" db:"lead_time_days"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time `json:"updated_at" db:"updated_at"`
}

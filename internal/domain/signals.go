// internal/domain/signals.go
package domain

// Analyzer result rows. Each analyzer returns one row per qualifying entity
// with the metrics its generator needs; rows are ephemeral per run.

type LowStockItem struct {
	DrugName            string  `db:"drug_name"`
	Category            string  `db:"category"`
	CurrentStock        float64 `db:"current_stock"`
	MinimumStock        float64 `db:"minimum_stock"`
	UnitPrice           float64 `db:"unit_price"`
	Shortage            float64 `db:"shortage"`
	AvgDailyConsumption float64 `db:"avg_daily_consumption"`
}

type ExpiringItem struct {
	DrugName            string  `db:"drug_name"`
	Category            string  `db:"category"`
	CurrentStock        float64 `db:"current_stock"`
	UnitPrice           float64 `db:"unit_price"`
	DaysToExpiry        int     `db:"days_to_expiry"`
	PotentialLoss       float64 `db:"potential_loss"`
	AvgDailyConsumption float64 `db:"avg_daily_consumption"`
}

type OverstockItem struct {
	DrugName            string  `db:"drug_name"`
	Category            string  `db:"category"`
	CurrentStock        float64 `db:"current_stock"`
	MinimumStock        float64 `db:"minimum_stock"`
	ExcessStock         float64 `db:"excess_stock"`
	TiedCapital         float64 `db:"tied_capital"`
	AvgDailyConsumption float64 `db:"avg_daily_consumption"`
}

type SlowMoverItem struct {
	DrugName         string  `db:"drug_name"`
	Category         string  `db:"category"`
	CurrentStock     float64 `db:"current_stock"`
	TotalConsumed90D float64 `db:"total_consumed_90d"`
	InventoryValue   float64 `db:"inventory_value"`
}

type HighDemandItem struct {
	DrugName     string  `db:"drug_name"`
	Category     string  `db:"category"`
	CurrentStock float64 `db:"current_stock"`
	MinimumStock float64 `db:"minimum_stock"`
	UnitPrice    float64 `db:"unit_price"`
	Last30D      float64 `db:"last_30d"`
	Prev30D      float64 `db:"prev_30d"`
}

type SeasonalItem struct {
	DrugName        string  `db:"drug_name"`
	Category        string  `db:"category"`
	CurrentMonthAvg float64 `db:"current_month_avg"`
	OverallAvg      float64 `db:"overall_avg"`
}

type SupplierIssue struct {
	Name             string  `db:"name"`
	ReliabilityScore float64 `db:"reliability_score"`
	QualityScore     float64 `db:"quality_score"`
	CostRating       float64 `db:"cost_rating"`
	LeadTimeDays     float64 `db:"lead_time_days"`
}

package engine

import (
	"strings"
	"testing"

	"github.com/pharmastock/pharmastock/internal/config"
	"github.com/pharmastock/pharmastock/internal/domain"
)

func TestLowStockGenerate(t *testing.T) {
	src := newLowStockSource(nil)

	tests := []struct {
		name        string
		row         domain.LowStockItem
		wantUrgency domain.Severity
		wantBase    float64
		wantDays    int
	}{
		{
			name: "no consumption history falls back to sentinel",
			row: domain.LowStockItem{
				DrugName:     "Paracetamol 500mg",
				CurrentStock: 5, MinimumStock: 20, Shortage: 15,
				UnitPrice: 2.5, AvgDailyConsumption: 0,
			},
			wantUrgency: domain.SeverityMedium,
			wantBase:    85,
			wantDays:    999,
		},
		{
			name: "two days of cover is critical",
			row: domain.LowStockItem{
				DrugName:     "Amoxicillin 250mg",
				CurrentStock: 10, MinimumStock: 50, Shortage: 40,
				UnitPrice: 5, AvgDailyConsumption: 5,
			},
			wantUrgency: domain.SeverityCritical,
			wantBase:    98,
			wantDays:    2,
		},
		{
			name: "five days of cover is high",
			row: domain.LowStockItem{
				DrugName:     "Ibuprofen 400mg",
				CurrentStock: 25, MinimumStock: 40, Shortage: 15,
				UnitPrice: 3, AvgDailyConsumption: 5,
			},
			wantUrgency: domain.SeverityHigh,
			wantBase:    92,
			wantDays:    5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recs := src.generate([]domain.LowStockItem{tt.row})
			if len(recs) != 1 {
				t.Fatalf("expected 1 recommendation, got %d", len(recs))
			}
			rec := recs[0]
			if rec.Type != domain.TypeRestock {
				t.Errorf("type = %s, want RESTOCK", rec.Type)
			}
			if rec.Urgency != tt.wantUrgency {
				t.Errorf("urgency = %s, want %s", rec.Urgency, tt.wantUrgency)
			}
			if rec.PriorityScore != tt.wantBase {
				t.Errorf("base score = %v, want %v", rec.PriorityScore, tt.wantBase)
			}
			if rec.DaysUntilImpact != tt.wantDays {
				t.Errorf("days until impact = %d, want %d", rec.DaysUntilImpact, tt.wantDays)
			}
			if rec.Impact != domain.SeverityCritical {
				t.Errorf("impact = %s, want Critical", rec.Impact)
			}
			wantCost := tt.row.UnitPrice * tt.row.Shortage * 2
			if rec.EstimatedCost != wantCost {
				t.Errorf("estimated cost = %v, want %v", rec.EstimatedCost, wantCost)
			}
			wantSavings := tt.row.UnitPrice * tt.row.Shortage * 3
			if rec.EstimatedSavings != wantSavings {
				t.Errorf("estimated savings = %v, want %v", rec.EstimatedSavings, wantSavings)
			}
		})
	}
}

func TestExpiryGenerate(t *testing.T) {
	src := newExpirySource(nil, config.EngineConfig{})

	tests := []struct {
		name         string
		row          domain.ExpiringItem
		wantUrgency  domain.Severity
		wantBase     float64
		wantImpact   domain.Severity
		wantInAction string
	}{
		{
			name: "ten days to expiry is critical and immediate",
			row: domain.ExpiringItem{
				DrugName: "Insulin Glargine", CurrentStock: 30, UnitPrice: 45,
				DaysToExpiry: 10, PotentialLoss: 1350, AvgDailyConsumption: 1,
			},
			wantUrgency:  domain.SeverityCritical,
			wantBase:     96,
			wantImpact:   domain.SeverityHigh,
			wantInAction: "IMMEDIATE",
		},
		{
			name: "twenty five days is high",
			row: domain.ExpiringItem{
				DrugName: "Cough Syrup", CurrentStock: 12, UnitPrice: 4,
				DaysToExpiry: 25, PotentialLoss: 48, AvgDailyConsumption: 0.2,
			},
			wantUrgency:  domain.SeverityHigh,
			wantBase:     88,
			wantImpact:   domain.SeverityMedium,
			wantInAction: "promotional pricing",
		},
		{
			name: "fifty days is medium",
			row: domain.ExpiringItem{
				DrugName: "Vitamin C", CurrentStock: 40, UnitPrice: 1,
				DaysToExpiry: 50, PotentialLoss: 40, AvgDailyConsumption: 0,
			},
			wantUrgency:  domain.SeverityMedium,
			wantBase:     70,
			wantInAction: "Monitor closely",
			wantImpact:   domain.SeverityMedium,
		},
		{
			name: "eighty days is low",
			row: domain.ExpiringItem{
				DrugName: "Aspirin", CurrentStock: 100, UnitPrice: 0.5,
				DaysToExpiry: 80, PotentialLoss: 50, AvgDailyConsumption: 2,
			},
			wantUrgency:  domain.SeverityLow,
			wantBase:     55,
			wantInAction: "normal operations",
			wantImpact:   domain.SeverityMedium,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recs := src.generate([]domain.ExpiringItem{tt.row})
			if len(recs) != 1 {
				t.Fatalf("expected 1 recommendation, got %d", len(recs))
			}
			rec := recs[0]
			if rec.Type != domain.TypeExpiryAlert {
				t.Errorf("type = %s, want EXPIRY_ALERT", rec.Type)
			}
			if rec.Urgency != tt.wantUrgency {
				t.Errorf("urgency = %s, want %s", rec.Urgency, tt.wantUrgency)
			}
			if rec.PriorityScore != tt.wantBase {
				t.Errorf("base score = %v, want %v", rec.PriorityScore, tt.wantBase)
			}
			if rec.Impact != tt.wantImpact {
				t.Errorf("impact = %s, want %s", rec.Impact, tt.wantImpact)
			}
			if !strings.Contains(rec.Action, tt.wantInAction) {
				t.Errorf("action %q does not contain %q", rec.Action, tt.wantInAction)
			}
			if rec.EstimatedCost != 0 {
				t.Errorf("estimated cost = %v, want 0", rec.EstimatedCost)
			}
			if rec.DaysUntilImpact != tt.row.DaysToExpiry {
				t.Errorf("days until impact = %d, want %d", rec.DaysUntilImpact, tt.row.DaysToExpiry)
			}
		})
	}
}

func TestExpiryGenerateWastageSavings(t *testing.T) {
	src := newExpirySource(nil, config.EngineConfig{})

	// 30 units, consuming 1/day over 10 days leaves 20 units wasted;
	// savings recover 70% of wasted value.
	recs := src.generate([]domain.ExpiringItem{{
		DrugName: "Insulin Glargine", CurrentStock: 30, UnitPrice: 45,
		DaysToExpiry: 10, PotentialLoss: 1350, AvgDailyConsumption: 1,
	}})
	want := 20.0 * 45 * 0.7
	if got := recs[0].EstimatedSavings; got != want {
		t.Errorf("estimated savings = %v, want %v", got, want)
	}

	// Zero consumption: nothing can sell, entire stock is expected wastage.
	recs = src.generate([]domain.ExpiringItem{{
		DrugName: "Vitamin C", CurrentStock: 40, UnitPrice: 1,
		DaysToExpiry: 50, AvgDailyConsumption: 0,
	}})
	want = 40.0 * 1 * 0.7
	if got := recs[0].EstimatedSavings; got != want {
		t.Errorf("estimated savings with zero consumption = %v, want %v", got, want)
	}
}

func TestOverstockGenerateHoldingCost(t *testing.T) {
	src := newOverstockSource(nil, config.EngineConfig{})

	recs := src.generate([]domain.OverstockItem{{
		DrugName: "Normal Saline", CurrentStock: 500, MinimumStock: 100,
		ExcessStock: 400, TiedCapital: 100000, AvgDailyConsumption: 2,
	}})
	if len(recs) != 1 {
		t.Fatalf("expected 1 recommendation, got %d", len(recs))
	}
	rec := recs[0]

	// tied_capital 100000 -> holding cost 1500/month -> savings 9000
	if want := 9000.0; rec.EstimatedSavings != want {
		t.Errorf("estimated savings = %v, want %v", rec.EstimatedSavings, want)
	}
	if want := 2000.0; rec.EstimatedCost != want {
		t.Errorf("estimated cost = %v, want %v", rec.EstimatedCost, want)
	}
	if rec.PriorityScore != 60 {
		t.Errorf("base score = %v, want 60", rec.PriorityScore)
	}
	if rec.Impact != domain.SeverityMedium || rec.Urgency != domain.SeverityLow {
		t.Errorf("impact/urgency = %s/%s, want Medium/Low", rec.Impact, rec.Urgency)
	}
	if !strings.Contains(rec.Action, "240 units") {
		t.Errorf("action %q should propose reducing 240 units", rec.Action)
	}
}

func TestHighDemandGenerateGrowthRate(t *testing.T) {
	src := newHighDemandSource(nil, config.EngineConfig{})

	recs := src.generate([]domain.HighDemandItem{{
		DrugName: "Cetirizine", CurrentStock: 80, MinimumStock: 40,
		UnitPrice: 2, Last30D: 60, Prev30D: 19,
	}})
	rec := recs[0]
	if rec.Type != domain.TypeIncreaseStock {
		t.Errorf("type = %s, want INCREASE_STOCK", rec.Type)
	}
	if rec.PriorityScore != 78 {
		t.Errorf("base score = %v, want 78", rec.PriorityScore)
	}
	// growth = (60-19)/(19+1)*100 = 205%
	if !strings.Contains(rec.Description, "+205.0%") {
		t.Errorf("description %q should report +205.0%% growth", rec.Description)
	}
	if !strings.Contains(rec.Action, "from 40 to 60 units") {
		t.Errorf("action %q should raise minimum stock from 40 to 60", rec.Action)
	}
}

func TestHighDemandGenerateZeroPrevious(t *testing.T) {
	src := newHighDemandSource(nil, config.EngineConfig{})

	// prev_30d of zero must not divide by zero.
	recs := src.generate([]domain.HighDemandItem{{
		DrugName: "ORS Sachets", MinimumStock: 20, UnitPrice: 1,
		Last30D: 15, Prev30D: 0,
	}})
	if !strings.Contains(recs[0].Description, "+1500.0%") {
		t.Errorf("description %q should report +1500.0%% growth", recs[0].Description)
	}
}

func TestSeasonalGenerateFactor(t *testing.T) {
	src := newSeasonalSource(nil, config.EngineConfig{}, nil)

	recs := src.generate([]domain.SeasonalItem{{
		DrugName: "Antihistamine", CurrentMonthAvg: 20, OverallAvg: 10,
	}})
	rec := recs[0]
	if rec.PriorityScore != 68 {
		t.Errorf("base score = %v, want 68", rec.PriorityScore)
	}
	if !strings.Contains(rec.Description, "2.0x") {
		t.Errorf("description %q should report 2.0x factor", rec.Description)
	}
	if !strings.Contains(rec.Action, "100%") {
		t.Errorf("action %q should propose a 100%% increase", rec.Action)
	}

	// Zero overall average defaults the factor to 1 instead of dividing.
	recs = src.generate([]domain.SeasonalItem{{
		DrugName: "Zinc Tablets", CurrentMonthAvg: 5, OverallAvg: 0,
	}})
	if !strings.Contains(recs[0].Action, "0%") {
		t.Errorf("action %q should propose a 0%% increase for factor 1", recs[0].Action)
	}
}

func TestSupplierGenerateIssues(t *testing.T) {
	src := newSupplierSource(nil, config.EngineConfig{})

	recs := src.generate([]domain.SupplierIssue{{
		Name: "MedSupply Co", ReliabilityScore: 2.5, QualityScore: 4.0, LeadTimeDays: 14,
	}})
	rec := recs[0]
	if rec.Type != domain.TypeSupplierReview {
		t.Errorf("type = %s, want SUPPLIER_REVIEW", rec.Type)
	}
	if rec.PriorityScore != 50 {
		t.Errorf("base score = %v, want 50", rec.PriorityScore)
	}
	if !strings.Contains(rec.Description, "Low reliability (2.5/5)") {
		t.Errorf("description %q missing reliability issue", rec.Description)
	}
	if strings.Contains(rec.Description, "Quality concerns") {
		t.Errorf("description %q should not flag quality at 4.0", rec.Description)
	}
	if !strings.Contains(rec.Description, "Slow delivery (14 days)") {
		t.Errorf("description %q missing lead time issue", rec.Description)
	}
	if rec.EstimatedCost != 500 || rec.EstimatedSavings != 2000 {
		t.Errorf("cost/savings = %v/%v, want 500/2000", rec.EstimatedCost, rec.EstimatedSavings)
	}
}

func TestSlowMoverGenerate(t *testing.T) {
	src := newSlowMoverSource(nil, config.EngineConfig{})

	recs := src.generate([]domain.SlowMoverItem{{
		DrugName: "Gauze Rolls", CurrentStock: 200, TotalConsumed90D: 4, InventoryValue: 1000,
	}})
	rec := recs[0]
	if rec.PriorityScore != 45 {
		t.Errorf("base score = %v, want 45", rec.PriorityScore)
	}
	if rec.EstimatedCost != 100 || rec.EstimatedSavings != 150 {
		t.Errorf("cost/savings = %v/%v, want 100/150", rec.EstimatedCost, rec.EstimatedSavings)
	}
	if rec.DaysUntilImpact != 120 {
		t.Errorf("days until impact = %d, want 120", rec.DaysUntilImpact)
	}
}

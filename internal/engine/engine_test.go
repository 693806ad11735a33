package engine

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/pharmastock/pharmastock/internal/config"
	"github.com/pharmastock/pharmastock/internal/domain"
)

// fakeSignalRepo returns canned rows per signal and can simulate failures.
type fakeSignalRepo struct {
	lowStock   []domain.LowStockItem
	expiring   []domain.ExpiringItem
	overstock  []domain.OverstockItem
	slowMovers []domain.SlowMoverItem
	highDemand []domain.HighDemandItem
	seasonal   []domain.SeasonalItem
	suppliers  []domain.SupplierIssue

	failLowStock   bool
	failHighDemand bool
}

func (f *fakeSignalRepo) LowStockItems(ctx context.Context, limit int) ([]domain.LowStockItem, error) {
	if f.failLowStock {
		return nil, errors.New("relation inventory does not exist")
	}
	return f.lowStock, nil
}

func (f *fakeSignalRepo) ExpiringItems(ctx context.Context, horizonDays, limit int) ([]domain.ExpiringItem, error) {
	return f.expiring, nil
}

func (f *fakeSignalRepo) OverstockItems(ctx context.Context, multiple, depleteDays float64, limit int) ([]domain.OverstockItem, error) {
	return f.overstock, nil
}

func (f *fakeSignalRepo) SlowMoverItems(ctx context.Context, windowDays int, cutoff float64, limit int) ([]domain.SlowMoverItem, error) {
	return f.slowMovers, nil
}

func (f *fakeSignalRepo) HighDemandItems(ctx context.Context, growthFactor float64, limit int) ([]domain.HighDemandItem, error) {
	if f.failHighDemand {
		return nil, errors.New("column last_30d does not exist")
	}
	return f.highDemand, nil
}

func (f *fakeSignalRepo) SeasonalItems(ctx context.Context, month time.Month, factor float64, limit int) ([]domain.SeasonalItem, error) {
	return f.seasonal, nil
}

func (f *fakeSignalRepo) SupplierIssues(ctx context.Context, scoreFloor float64, leadTimeMax, limit int) ([]domain.SupplierIssue, error) {
	// Mirrors the production repository: missing supplier quality data
	// degrades to an empty result, never an error.
	return f.suppliers, nil
}

func (f *fakeSignalRepo) DataVersion(ctx context.Context) (string, error) {
	return "20260901000000", nil
}

func fullRepo() *fakeSignalRepo {
	return &fakeSignalRepo{
		lowStock: []domain.LowStockItem{
			{DrugName: "Amoxicillin 250mg", CurrentStock: 10, MinimumStock: 50, Shortage: 40, UnitPrice: 5, AvgDailyConsumption: 5},
			{DrugName: "Paracetamol 500mg", CurrentStock: 5, MinimumStock: 20, Shortage: 15, UnitPrice: 2.5},
		},
		expiring: []domain.ExpiringItem{
			{DrugName: "Insulin Glargine", CurrentStock: 30, UnitPrice: 45, DaysToExpiry: 10, PotentialLoss: 1350, AvgDailyConsumption: 1},
		},
		overstock: []domain.OverstockItem{
			{DrugName: "Normal Saline", CurrentStock: 500, MinimumStock: 100, ExcessStock: 400, TiedCapital: 100000, AvgDailyConsumption: 2},
		},
		slowMovers: []domain.SlowMoverItem{
			{DrugName: "Gauze Rolls", CurrentStock: 200, TotalConsumed90D: 4, InventoryValue: 1000},
		},
		highDemand: []domain.HighDemandItem{
			{DrugName: "Cetirizine", CurrentStock: 80, MinimumStock: 40, UnitPrice: 2, Last30D: 60, Prev30D: 19},
		},
		seasonal: []domain.SeasonalItem{
			{DrugName: "Antihistamine", CurrentMonthAvg: 20, OverallAvg: 10},
		},
		suppliers: []domain.SupplierIssue{
			{Name: "MedSupply Co", ReliabilityScore: 2.5, QualityScore: 4.0, LeadTimeDays: 14},
		},
	}
}

func TestEngineRunAggregatesAllSignals(t *testing.T) {
	eng := New(fullRepo(), config.EngineConfig{})

	list, err := eng.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if list.Total != 8 {
		t.Fatalf("expected 8 recommendations, got %d", list.Total)
	}
	for i := 1; i < len(list.Items); i++ {
		if list.Items[i].PriorityScore > list.Items[i-1].PriorityScore {
			t.Errorf("output not descending at %d", i)
		}
	}
	for _, rec := range list.Items {
		if rec.PriorityScore < 0 {
			t.Errorf("%s has negative score %v", rec.Title, rec.PriorityScore)
		}
	}

	// The critical restock should outrank everything else.
	if list.Items[0].Type != domain.TypeRestock {
		t.Errorf("top recommendation type = %s, want RESTOCK", list.Items[0].Type)
	}
}

func TestEngineRunTruncatesToTopN(t *testing.T) {
	repo := fullRepo()
	// Inflate one signal well past the cap.
	for i := 0; i < 30; i++ {
		repo.lowStock = append(repo.lowStock, domain.LowStockItem{
			DrugName: "Filler", CurrentStock: 1, MinimumStock: 10, Shortage: 9, UnitPrice: 1, AvgDailyConsumption: 1,
		})
	}

	eng := New(repo, config.EngineConfig{TopN: 20})
	list, err := eng.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(list.Items) != 20 {
		t.Errorf("expected 20 items, got %d", len(list.Items))
	}
}

func TestEngineRunIsIdempotent(t *testing.T) {
	eng := New(fullRepo(), config.EngineConfig{})

	first, err := eng.Run(context.Background())
	if err != nil {
		t.Fatalf("first run failed: %v", err)
	}
	second, err := eng.Run(context.Background())
	if err != nil {
		t.Fatalf("second run failed: %v", err)
	}

	if !reflect.DeepEqual(first.Items, second.Items) {
		t.Errorf("identical input produced different rankings")
	}
}

func TestEngineRunDegradesOnAnalyzerFailure(t *testing.T) {
	repo := fullRepo()
	repo.failLowStock = true
	repo.failHighDemand = true

	eng := New(repo, config.EngineConfig{})
	list, err := eng.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	// Low-stock contributed 2 and high-demand 1 of the 8 candidates.
	if list.Total != 5 {
		t.Errorf("expected 5 recommendations from surviving signals, got %d", list.Total)
	}
	for _, rec := range list.Items {
		if rec.Type == domain.TypeRestock || rec.Type == domain.TypeIncreaseStock {
			t.Errorf("failed signal still produced %s", rec.Type)
		}
	}
}

func TestEngineRunEmptySupplierData(t *testing.T) {
	repo := fullRepo()
	repo.suppliers = nil

	eng := New(repo, config.EngineConfig{})
	list, err := eng.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if list.Total != 7 {
		t.Errorf("expected 7 recommendations without supplier data, got %d", list.Total)
	}
	for _, rec := range list.Items {
		if rec.Type == domain.TypeSupplierReview {
			t.Errorf("supplier review generated from empty supplier data")
		}
	}
}

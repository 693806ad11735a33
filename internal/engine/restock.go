// internal/engine/restock.go
package engine

import (
	"context"
	"fmt"

	"github.com/pharmastock/pharmastock/internal/domain"
	"github.com/pharmastock/pharmastock/internal/repository"
)

// Restock urgency bands by projected days until stockout.
const (
	restockBaseCritical = 98
	restockBaseHigh     = 92
	restockBaseMedium   = 85

	// Sentinel when consumption history is empty: no division, no panic,
	// and the item still surfaces at Medium urgency.
	stockoutUnknownDays = 999
)

type lowStockSource struct {
	repo repository.SignalRepository
}

func newLowStockSource(repo repository.SignalRepository) *lowStockSource {
	return &lowStockSource{repo: repo}
}

func (s *lowStockSource) Name() string { return "low_stock" }

func (s *lowStockSource) Candidates(ctx context.Context) ([]domain.Recommendation, error) {
	rows, err := s.analyze(ctx)
	if err != nil {
		return nil, err
	}
	return s.generate(rows), nil
}

func (s *lowStockSource) analyze(ctx context.Context) ([]domain.LowStockItem, error) {
	return s.repo.LowStockItems(ctx, lowStockLimit)
}

func (s *lowStockSource) generate(rows []domain.LowStockItem) []domain.Recommendation {
	recs := make([]domain.Recommendation, 0, len(rows))
	for _, row := range rows {
		daysUntilStockout := float64(stockoutUnknownDays)
		if row.AvgDailyConsumption > 0 {
			daysUntilStockout = row.CurrentStock / row.AvgDailyConsumption
		}

		var (
			urgency domain.Severity
			base    float64
		)
		switch {
		case daysUntilStockout < 3:
			urgency = domain.SeverityCritical
			base = restockBaseCritical
		case daysUntilStockout < 7:
			urgency = domain.SeverityHigh
			base = restockBaseHigh
		default:
			urgency = domain.SeverityMedium
			base = restockBaseMedium
		}

		recs = append(recs, domain.Recommendation{
			Type:     domain.TypeRestock,
			Category: "Inventory Management",
			Title:    fmt.Sprintf("URGENT: Restock %s", row.DrugName),
			Description: fmt.Sprintf(
				"Critical shortage: current stock (%.0f units) is %.0f units below minimum. Daily consumption: %.1f units. Stockout in %.0f days.",
				row.CurrentStock, row.Shortage, row.AvgDailyConsumption, daysUntilStockout),
			Action:           fmt.Sprintf("Place immediate purchase order for %.0f units", row.Shortage*2),
			Impact:           domain.SeverityCritical,
			Urgency:          urgency,
			EstimatedCost:    row.UnitPrice * row.Shortage * 2,
			EstimatedSavings: row.UnitPrice * row.Shortage * 3,
			PriorityScore:    base,
			DaysUntilImpact:  int(daysUntilStockout),
		})
	}
	return recs
}

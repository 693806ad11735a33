// internal/engine/overstock.go
package engine

import (
	"context"
	"fmt"

	"github.com/pharmastock/pharmastock/internal/config"
	"github.com/pharmastock/pharmastock/internal/domain"
	"github.com/pharmastock/pharmastock/internal/repository"
)

const (
	overstockBase = 60

	defaultOverstockMultiple    = 3.0
	defaultOverstockDepleteDays = 90.0

	// Monthly carrying cost as a share of tied-up capital.
	monthlyHoldingRate = 0.015

	// Share of the excess to clear via returns or transfers.
	overstockReduceShare = 0.6
)

type overstockSource struct {
	repo        repository.SignalRepository
	multiple    float64
	depleteDays float64
}

func newOverstockSource(repo repository.SignalRepository, cfg config.EngineConfig) *overstockSource {
	multiple := cfg.OverstockMultiple
	if multiple <= 0 {
		multiple = defaultOverstockMultiple
	}
	depleteDays := cfg.OverstockDepleteDay
	if depleteDays <= 0 {
		depleteDays = defaultOverstockDepleteDays
	}
	return &overstockSource{repo: repo, multiple: multiple, depleteDays: depleteDays}
}

func (s *overstockSource) Name() string { return "overstock" }

func (s *overstockSource) Candidates(ctx context.Context) ([]domain.Recommendation, error) {
	rows, err := s.analyze(ctx)
	if err != nil {
		return nil, err
	}
	return s.generate(rows), nil
}

func (s *overstockSource) analyze(ctx context.Context) ([]domain.OverstockItem, error) {
	return s.repo.OverstockItems(ctx, s.multiple, s.depleteDays, overstockLimit)
}

func (s *overstockSource) generate(rows []domain.OverstockItem) []domain.Recommendation {
	recs := make([]domain.Recommendation, 0, len(rows))
	for _, row := range rows {
		monthlyHoldingCost := row.TiedCapital * monthlyHoldingRate

		recs = append(recs, domain.Recommendation{
			Type:     domain.TypeReduceStock,
			Category: "Cost Optimization",
			Title:    fmt.Sprintf("Optimize stock levels for %s", row.DrugName),
			Description: fmt.Sprintf(
				"Excess inventory of %.0f units (%.2f tied up). Daily consumption: %.1f units. Holding cost: %.2f/month.",
				row.ExcessStock, row.TiedCapital, row.AvgDailyConsumption, monthlyHoldingCost),
			Action: fmt.Sprintf(
				"Reduce stock by %d units via supplier returns or branch transfers",
				int(row.ExcessStock*overstockReduceShare)),
			Impact:           domain.SeverityMedium,
			Urgency:          domain.SeverityLow,
			EstimatedCost:    row.TiedCapital * 0.02,
			EstimatedSavings: monthlyHoldingCost * 6,
			PriorityScore:    overstockBase,
			DaysUntilImpact:  90,
		})
	}
	return recs
}

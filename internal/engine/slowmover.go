// internal/engine/slowmover.go
package engine

import (
	"context"
	"fmt"

	"github.com/pharmastock/pharmastock/internal/config"
	"github.com/pharmastock/pharmastock/internal/domain"
	"github.com/pharmastock/pharmastock/internal/repository"
)

const (
	slowMoverBase = 45

	defaultSlowMoverWindowDays = 90
	defaultSlowMoverCutoff     = 10.0
)

type slowMoverSource struct {
	repo       repository.SignalRepository
	windowDays int
	cutoff     float64
}

func newSlowMoverSource(repo repository.SignalRepository, cfg config.EngineConfig) *slowMoverSource {
	window := cfg.SlowMoverWindowDays
	if window <= 0 {
		window = defaultSlowMoverWindowDays
	}
	cutoff := cfg.SlowMoverCutoff
	if cutoff <= 0 {
		cutoff = defaultSlowMoverCutoff
	}
	return &slowMoverSource{repo: repo, windowDays: window, cutoff: cutoff}
}

func (s *slowMoverSource) Name() string { return "slow_mover" }

func (s *slowMoverSource) Candidates(ctx context.Context) ([]domain.Recommendation, error) {
	rows, err := s.analyze(ctx)
	if err != nil {
		return nil, err
	}
	return s.generate(rows), nil
}

func (s *slowMoverSource) analyze(ctx context.Context) ([]domain.SlowMoverItem, error) {
	return s.repo.SlowMoverItems(ctx, s.windowDays, s.cutoff, slowMoverLimit)
}

func (s *slowMoverSource) generate(rows []domain.SlowMoverItem) []domain.Recommendation {
	recs := make([]domain.Recommendation, 0, len(rows))
	for _, row := range rows {
		recs = append(recs, domain.Recommendation{
			Type:     domain.TypeSlowMover,
			Category: "Inventory Optimization",
			Title:    fmt.Sprintf("Review slow-moving item: %s", row.DrugName),
			Description: fmt.Sprintf(
				"Low turnover: only %.0f units in %d days. Stock value: %.2f. Consider product review.",
				row.TotalConsumed90D, s.windowDays, row.InventoryValue),
			Action:           "Reduce minimum stock levels or consider discontinuation. Implement clearance promotion.",
			Impact:           domain.SeverityMedium,
			Urgency:          domain.SeverityLow,
			EstimatedCost:    row.InventoryValue * 0.1,
			EstimatedSavings: row.InventoryValue * 0.15,
			PriorityScore:    slowMoverBase,
			DaysUntilImpact:  120,
		})
	}
	return recs
}

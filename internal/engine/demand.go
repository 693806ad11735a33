// internal/engine/demand.go
package engine

import (
	"context"
	"fmt"

	"github.com/pharmastock/pharmastock/internal/config"
	"github.com/pharmastock/pharmastock/internal/domain"
	"github.com/pharmastock/pharmastock/internal/repository"
)

const (
	highDemandBase = 78

	defaultGrowthFactor = 1.2
)

type highDemandSource struct {
	repo         repository.SignalRepository
	growthFactor float64
}

func newHighDemandSource(repo repository.SignalRepository, cfg config.EngineConfig) *highDemandSource {
	factor := cfg.GrowthFactor
	if factor <= 0 {
		factor = defaultGrowthFactor
	}
	return &highDemandSource{repo: repo, growthFactor: factor}
}

func (s *highDemandSource) Name() string { return "high_demand" }

func (s *highDemandSource) Candidates(ctx context.Context) ([]domain.Recommendation, error) {
	rows, err := s.analyze(ctx)
	if err != nil {
		return nil, err
	}
	return s.generate(rows), nil
}

func (s *highDemandSource) analyze(ctx context.Context) ([]domain.HighDemandItem, error) {
	return s.repo.HighDemandItems(ctx, s.growthFactor, highDemandLimit)
}

func (s *highDemandSource) generate(rows []domain.HighDemandItem) []domain.Recommendation {
	recs := make([]domain.Recommendation, 0, len(rows))
	for _, row := range rows {
		// The +1 denominator keeps new items with zero prior consumption from
		// dividing by zero while barely affecting established ones.
		growthRate := (row.Last30D - row.Prev30D) / (row.Prev30D + 1) * 100
		revenueOpportunity := row.Last30D * row.UnitPrice * (growthRate / 100) * 3

		recs = append(recs, domain.Recommendation{
			Type:     domain.TypeIncreaseStock,
			Category: "Growth Opportunity",
			Title:    fmt.Sprintf("Capitalize on growing demand: %s", row.DrugName),
			Description: fmt.Sprintf(
				"Strong growth: +%.1f%% demand increase (from %.0f to %.0f units). Revenue opportunity: %.2f over next quarter.",
				growthRate, row.Prev30D, row.Last30D, revenueOpportunity),
			Action: fmt.Sprintf(
				"Increase minimum stock from %.0f to %d units. Secure additional supply.",
				row.MinimumStock, int(row.MinimumStock*1.5)),
			Impact:           domain.SeverityHigh,
			Urgency:          domain.SeverityMedium,
			EstimatedCost:    row.MinimumStock * row.UnitPrice * 0.5,
			EstimatedSavings: revenueOpportunity * 0.25,
			PriorityScore:    highDemandBase,
			DaysUntilImpact:  30,
		})
	}
	return recs
}

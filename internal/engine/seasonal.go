// internal/engine/seasonal.go
package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/pharmastock/pharmastock/internal/config"
	"github.com/pharmastock/pharmastock/internal/domain"
	"github.com/pharmastock/pharmastock/internal/repository"
)

const (
	seasonalBase = 68

	defaultSeasonalFactor = 1.3
)

// seasonalSource compares the current calendar month's historical average
// against the all-time average over the trailing year. Averaging the month
// across all historical years conflates seasonality with long-term drift;
// that is the established behavior and is kept as-is.
type seasonalSource struct {
	repo   repository.SignalRepository
	factor float64
	now    func() time.Time
}

func newSeasonalSource(repo repository.SignalRepository, cfg config.EngineConfig, now func() time.Time) *seasonalSource {
	factor := cfg.SeasonalFactor
	if factor <= 0 {
		factor = defaultSeasonalFactor
	}
	if now == nil {
		now = time.Now
	}
	return &seasonalSource{repo: repo, factor: factor, now: now}
}

func (s *seasonalSource) Name() string { return "seasonal" }

func (s *seasonalSource) Candidates(ctx context.Context) ([]domain.Recommendation, error) {
	rows, err := s.analyze(ctx)
	if err != nil {
		return nil, err
	}
	return s.generate(rows), nil
}

func (s *seasonalSource) analyze(ctx context.Context) ([]domain.SeasonalItem, error) {
	return s.repo.SeasonalItems(ctx, s.now().Month(), s.factor, seasonalLimit)
}

func (s *seasonalSource) generate(rows []domain.SeasonalItem) []domain.Recommendation {
	recs := make([]domain.Recommendation, 0, len(rows))
	for _, row := range rows {
		seasonalFactor := 1.0
		if row.OverallAvg > 0 {
			seasonalFactor = row.CurrentMonthAvg / row.OverallAvg
		}

		recs = append(recs, domain.Recommendation{
			Type:     domain.TypeSeasonal,
			Category: "Seasonal Opportunity",
			Title:    fmt.Sprintf("Seasonal peak for %s", row.DrugName),
			Description: fmt.Sprintf(
				"Current month shows %.1fx higher demand. Historical average: %.1f units, current month: %.1f units.",
				seasonalFactor, row.OverallAvg, row.CurrentMonthAvg),
			Action: fmt.Sprintf(
				"Increase inventory by %d%% to meet seasonal demand.",
				int((seasonalFactor-1)*100)),
			Impact:           domain.SeverityMedium,
			Urgency:          domain.SeverityMedium,
			EstimatedCost:    row.CurrentMonthAvg * 5,
			EstimatedSavings: row.CurrentMonthAvg * 8,
			PriorityScore:    seasonalBase,
			DaysUntilImpact:  15,
		})
	}
	return recs
}

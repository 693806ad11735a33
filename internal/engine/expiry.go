// internal/engine/expiry.go
package engine

import (
	"context"
	"fmt"
	"math"

	"github.com/pharmastock/pharmastock/internal/config"
	"github.com/pharmastock/pharmastock/internal/domain"
	"github.com/pharmastock/pharmastock/internal/repository"
)

const (
	expiryBaseCritical = 96
	expiryBaseHigh     = 88
	expiryBaseMedium   = 70
	expiryBaseLow      = 55

	defaultExpiryHorizonDays = 90

	// Share of the at-risk stock value a timely intervention is expected
	// to recover.
	expiryRecoveryRate = 0.7

	// Potential loss above this marks the item high impact.
	expiryHighImpactLoss = 1000
)

type expirySource struct {
	repo        repository.SignalRepository
	horizonDays int
}

func newExpirySource(repo repository.SignalRepository, cfg config.EngineConfig) *expirySource {
	horizon := cfg.ExpiryHorizonDays
	if horizon <= 0 {
		horizon = defaultExpiryHorizonDays
	}
	return &expirySource{repo: repo, horizonDays: horizon}
}

func (s *expirySource) Name() string { return "expiring" }

func (s *expirySource) Candidates(ctx context.Context) ([]domain.Recommendation, error) {
	rows, err := s.analyze(ctx)
	if err != nil {
		return nil, err
	}
	return s.generate(rows), nil
}

func (s *expirySource) analyze(ctx context.Context) ([]domain.ExpiringItem, error) {
	return s.repo.ExpiringItems(ctx, s.horizonDays, expiringLimit)
}

func (s *expirySource) generate(rows []domain.ExpiringItem) []domain.Recommendation {
	recs := make([]domain.Recommendation, 0, len(rows))
	for _, row := range rows {
		consumptionRate := row.AvgDailyConsumption
		canSell := 0.0
		if consumptionRate > 0 {
			canSell = consumptionRate * float64(row.DaysToExpiry)
		}
		expectedWastage := math.Max(0, row.CurrentStock-canSell)

		var (
			urgency domain.Severity
			base    float64
			action  string
		)
		switch {
		case row.DaysToExpiry <= 15:
			urgency = domain.SeverityCritical
			base = expiryBaseCritical
			action = "IMMEDIATE: Discount 30-40% or transfer to high-demand location"
		case row.DaysToExpiry <= 30:
			urgency = domain.SeverityHigh
			base = expiryBaseHigh
			action = "Implement promotional pricing (20-25% discount)"
		case row.DaysToExpiry <= 60:
			urgency = domain.SeverityMedium
			base = expiryBaseMedium
			action = "Monitor closely and plan promotional activities"
		default:
			urgency = domain.SeverityLow
			base = expiryBaseLow
			action = "Continue normal operations with regular monitoring"
		}

		impact := domain.SeverityMedium
		if row.PotentialLoss > expiryHighImpactLoss {
			impact = domain.SeverityHigh
		}

		recs = append(recs, domain.Recommendation{
			Type:     domain.TypeExpiryAlert,
			Category: "Wastage Prevention",
			Title:    fmt.Sprintf("%s expiring in %d days", row.DrugName, row.DaysToExpiry),
			Description: fmt.Sprintf(
				"%.0f units will expire. Daily consumption: %.1f units. Expected wastage: %.0f units (%.2f)",
				row.CurrentStock, consumptionRate, expectedWastage, expectedWastage*row.UnitPrice),
			Action:           action,
			Impact:           impact,
			Urgency:          urgency,
			EstimatedCost:    0,
			EstimatedSavings: expectedWastage * row.UnitPrice * expiryRecoveryRate,
			PriorityScore:    base,
			DaysUntilImpact:  row.DaysToExpiry,
		})
	}
	return recs
}

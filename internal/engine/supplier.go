// internal/engine/supplier.go
package engine

import (
	"context"
	"fmt"
	"strings"

	"github.com/pharmastock/pharmastock/internal/config"
	"github.com/pharmastock/pharmastock/internal/domain"
	"github.com/pharmastock/pharmastock/internal/repository"
)

const (
	supplierBase = 50

	defaultSupplierScoreFloor  = 3.5
	defaultSupplierLeadTimeMax = 10

	// Flat review estimates; supplier issues have no per-item economics.
	supplierReviewCost    = 500
	supplierReviewSavings = 2000
)

type supplierSource struct {
	repo        repository.SignalRepository
	scoreFloor  float64
	leadTimeMax int
}

func newSupplierSource(repo repository.SignalRepository, cfg config.EngineConfig) *supplierSource {
	floor := cfg.SupplierScoreFloor
	if floor <= 0 {
		floor = defaultSupplierScoreFloor
	}
	leadMax := cfg.SupplierLeadTimeMax
	if leadMax <= 0 {
		leadMax = defaultSupplierLeadTimeMax
	}
	return &supplierSource{repo: repo, scoreFloor: floor, leadTimeMax: leadMax}
}

func (s *supplierSource) Name() string { return "supplier_performance" }

func (s *supplierSource) Candidates(ctx context.Context) ([]domain.Recommendation, error) {
	rows, err := s.analyze(ctx)
	if err != nil {
		return nil, err
	}
	return s.generate(rows), nil
}

func (s *supplierSource) analyze(ctx context.Context) ([]domain.SupplierIssue, error) {
	return s.repo.SupplierIssues(ctx, s.scoreFloor, s.leadTimeMax, supplierLimit)
}

func (s *supplierSource) generate(rows []domain.SupplierIssue) []domain.Recommendation {
	recs := make([]domain.Recommendation, 0, len(rows))
	for _, row := range rows {
		var issues []string
		if row.ReliabilityScore < s.scoreFloor {
			issues = append(issues, fmt.Sprintf("Low reliability (%.1f/5)", row.ReliabilityScore))
		}
		if row.QualityScore < s.scoreFloor {
			issues = append(issues, fmt.Sprintf("Quality concerns (%.1f/5)", row.QualityScore))
		}
		if row.LeadTimeDays > float64(s.leadTimeMax) {
			issues = append(issues, fmt.Sprintf("Slow delivery (%.0f days)", row.LeadTimeDays))
		}

		recs = append(recs, domain.Recommendation{
			Type:     domain.TypeSupplierReview,
			Category: "Supplier Management",
			Title:    fmt.Sprintf("Review supplier: %s", row.Name),
			Description: fmt.Sprintf(
				"Performance issues: %s. Consider alternative suppliers.",
				strings.Join(issues, ", ")),
			Action:           "Evaluate alternative suppliers and negotiate performance improvements",
			Impact:           domain.SeverityMedium,
			Urgency:          domain.SeverityLow,
			EstimatedCost:    supplierReviewCost,
			EstimatedSavings: supplierReviewSavings,
			PriorityScore:    supplierBase,
			DaysUntilImpact:  60,
		})
	}
	return recs
}

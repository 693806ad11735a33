// internal/engine/scorer.go
package engine

import (
	"math"

	"github.com/pharmastock/pharmastock/internal/domain"
)

// Scoring multipliers. Unmatched severities fall back to 1.0; omitting that
// fallback would silently change ranking outcomes for malformed candidates.
var impactMultipliers = map[domain.Severity]float64{
	domain.SeverityCritical: 1.5,
	domain.SeverityHigh:     1.3,
	domain.SeverityMedium:   1.0,
	domain.SeverityLow:      0.7,
}

var urgencyMultipliers = map[domain.Severity]float64{
	domain.SeverityCritical: 1.6,
	domain.SeverityHigh:     1.3,
	domain.SeverityMedium:   1.0,
	domain.SeverityLow:      0.6,
}

const (
	roiWeight = 0.1
	roiMinMul = 0.5
	roiMaxMul = 1.5

	timeUrgencyNear = 1.4 // impact within 7 days
	timeUrgencyMid  = 1.2 // impact within 30 days
)

// Score applies the multiplicative adjustment model to every candidate in
// place: base × impact × urgency × ROI × time urgency. Each candidate is
// scored in isolation; order does not matter.
func Score(recs []domain.Recommendation) {
	for i := range recs {
		rec := &recs[i]

		roi := 0.0
		if rec.EstimatedCost > 0 {
			roi = (rec.EstimatedSavings - rec.EstimatedCost) / rec.EstimatedCost
		}
		roiMultiplier := clamp(1.0+roi*roiWeight, roiMinMul, roiMaxMul)

		timeUrgency := 1.0
		switch {
		case rec.DaysUntilImpact < 7:
			timeUrgency = timeUrgencyNear
		case rec.DaysUntilImpact < 30:
			timeUrgency = timeUrgencyMid
		}

		rec.PriorityScore = rec.PriorityScore *
			severityMultiplier(impactMultipliers, rec.Impact) *
			severityMultiplier(urgencyMultipliers, rec.Urgency) *
			roiMultiplier *
			timeUrgency

		rec.ROIRatio = math.Max(roi, 0)
	}
}

func severityMultiplier(table map[domain.Severity]float64, s domain.Severity) float64 {
	if m, ok := table[s]; ok {
		return m
	}
	return 1.0
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}

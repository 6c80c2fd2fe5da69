// Package verdict folds recalls and maintenance evidence into a coarse
// confidence score. It is a signal for the analysis layer, not the primary
// purchase verdict.
package verdict

import (
	"fmt"

	"vinscout/internal/models"
)

const (
	baseScore        = 100
	recallPenalty    = 15
	maintenanceBonus = 10
)

// Generate scores a gathered analysis: start at 100, subtract 15 per open
// recall, add 10 when at least one real (non-sentinel) maintenance record
// exists, clamp to [0,100]. The recommendation bands are GREAT (>75),
// FAIR (>50), CAUTION otherwise.
func Generate(recalls []models.Recall, maintenance []models.MaintenanceEvent) models.Verdict {
	score := baseScore
	alerts := []string{}

	if n := len(recalls); n > 0 {
		score -= n * recallPenalty
		alerts = append(alerts, fmt.Sprintf("%d Open Recalls", n))
	}

	if hasRealMaintenance(maintenance) {
		score += maintenanceBonus
	}

	return models.Verdict{
		Score:          clamp(score),
		Alerts:         alerts,
		Recommendation: recommend(score),
	}
}

func hasRealMaintenance(maintenance []models.MaintenanceEvent) bool {
	for _, event := range maintenance {
		if event.Error == "" {
			return true
		}
	}
	return false
}

func recommend(score int) string {
	switch {
	case score > 75:
		return models.RecommendationGreat
	case score > 50:
		return models.RecommendationFair
	default:
		return models.RecommendationCaution
	}
}

func clamp(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

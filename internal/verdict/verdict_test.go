package verdict

import (
	"fmt"
	"testing"

	"vinscout/internal/models"
)

func makeRecalls(n int) []models.Recall {
	recalls := make([]models.Recall, n)
	for i := range recalls {
		recalls[i] = models.Recall{RecallID: fmt.Sprintf("R%03d", i), AffectedComponent: "ENGINE"}
	}
	return recalls
}

func TestGenerateCleanVehicle(t *testing.T) {
	v := Generate(nil, nil)
	if v.Score != 100 {
		t.Errorf("score = %d, want 100", v.Score)
	}
	if v.Recommendation != models.RecommendationGreat {
		t.Errorf("recommendation = %q, want %q", v.Recommendation, models.RecommendationGreat)
	}
	if len(v.Alerts) != 0 {
		t.Errorf("alerts = %v, want none", v.Alerts)
	}
}

func TestGenerateRecallPenalty(t *testing.T) {
	tests := []struct {
		recalls   int
		wantScore int
		wantRec   string
	}{
		{1, 85, models.RecommendationGreat},
		{2, 70, models.RecommendationFair},
		{3, 55, models.RecommendationFair},
		{4, 40, models.RecommendationCaution},
		{10, 0, models.RecommendationCaution}, // clamped at 0
	}
	for _, tt := range tests {
		v := Generate(makeRecalls(tt.recalls), nil)
		if v.Score != tt.wantScore {
			t.Errorf("%d recalls: score = %d, want %d", tt.recalls, v.Score, tt.wantScore)
		}
		if v.Recommendation != tt.wantRec {
			t.Errorf("%d recalls: recommendation = %q, want %q", tt.recalls, v.Recommendation, tt.wantRec)
		}
		if len(v.Alerts) != 1 {
			t.Fatalf("%d recalls: alerts = %v", tt.recalls, v.Alerts)
		}
		want := fmt.Sprintf("%d Open Recalls", tt.recalls)
		if v.Alerts[0] != want {
			t.Errorf("alert = %q, want %q", v.Alerts[0], want)
		}
	}
}

func TestGenerateMaintenanceBonus(t *testing.T) {
	maintenance := []models.MaintenanceEvent{
		{Date: "2024-03-01", Description: "Oil change"},
	}
	v := Generate(nil, maintenance)
	// Bonus applies before the clamp, so a clean car with records still
	// caps at 100
	if v.Score != 100 {
		t.Errorf("score = %d, want 100", v.Score)
	}

	v = Generate(makeRecalls(2), maintenance)
	if v.Score != 80 {
		t.Errorf("score = %d, want 80 (70 + maintenance bonus)", v.Score)
	}
	if v.Recommendation != models.RecommendationGreat {
		t.Errorf("recommendation = %q, want %q", v.Recommendation, models.RecommendationGreat)
	}
}

func TestGenerateSentinelMaintenanceIsNotEvidence(t *testing.T) {
	sentinel := []models.MaintenanceEvent{
		{Error: "History unavailable - Timeout or Blocked"},
	}
	v := Generate(makeRecalls(2), sentinel)
	if v.Score != 70 {
		t.Errorf("score = %d, want 70 (no bonus for sentinel entries)", v.Score)
	}
}

func TestGenerateMonotoneInRecalls(t *testing.T) {
	prev := 101
	for n := 0; n <= 8; n++ {
		v := Generate(makeRecalls(n), nil)
		if v.Score > prev {
			t.Fatalf("score increased from %d to %d at %d recalls", prev, v.Score, n)
		}
		prev = v.Score
	}
}

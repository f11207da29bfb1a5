package analytics

import (
	"sort"

	"github.com/yabelyaev/N3xFin/internal/models"
)

// SortRecommendationsByPriority orders recommendations for display:
// higher priority first, equal priorities keep their incoming order.
// The input slice is not modified.
func SortRecommendationsByPriority(recs []models.Recommendation) []models.Recommendation {
	out := make([]models.Recommendation, len(recs))
	copy(out, recs)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Priority > out[j].Priority
	})
	return out
}

// RankRecommendations orders the standalone recommendation list by
// potential savings descending, breaking ties by priority descending.
// The input slice is not modified.
func RankRecommendations(recs []models.Recommendation) []models.Recommendation {
	out := make([]models.Recommendation, len(recs))
	copy(out, recs)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].PotentialSavings != out[j].PotentialSavings {
			return out[i].PotentialSavings > out[j].PotentialSavings
		}
		return out[i].Priority > out[j].Priority
	})
	return out
}

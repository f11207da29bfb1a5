package analytics

import (
	"fmt"
	"math"
	"sort"

	"github.com/yabelyaev/N3xFin/internal/models"
)

const (
	// anomalyThreshold is the minimum |z| for a transaction to be
	// flagged at all.
	anomalyThreshold = 2.5
	mediumThreshold  = 3.0
	highThreshold    = 3.5

	// minSamples is the smallest per-category history that gives a
	// meaningful standard deviation.
	minSamples = 5
)

// DetectAnomalies flags expense transactions whose magnitude is a
// statistical outlier within their own category. Categories with fewer
// than minSamples transactions or no spread at all are skipped.
// Results are ordered by severity, then by |z| descending.
func DetectAnomalies(txns []models.Transaction) []models.Anomaly {
	byCategory := make(map[string][]models.Transaction)
	for _, t := range txns {
		if t.IsExpense() {
			byCategory[t.Category] = append(byCategory[t.Category], t)
		}
	}

	var anomalies []models.Anomaly
	for category, group := range byCategory {
		if len(group) < minSamples {
			continue
		}

		amounts := make([]float64, len(group))
		for i, t := range group {
			amounts[i] = t.AbsAmount()
		}
		mean, stdev := meanStdev(amounts)
		if stdev == 0 {
			continue
		}

		for _, t := range group {
			z := (t.AbsAmount() - mean) / stdev
			if math.Abs(z) <= anomalyThreshold {
				continue
			}
			anomalies = append(anomalies, models.Anomaly{
				Transaction: t,
				Reason: fmt.Sprintf("Amount %.2f is %.1f standard deviations from the %s average of %.2f",
					t.AbsAmount(), math.Abs(z), category, mean),
				Severity: anomalySeverity(math.Abs(z)),
				ExpectedRange: models.AmountRange{
					Min: math.Max(0, mean-2*stdev),
					Max: mean + 2*stdev,
				},
				ZScore: z,
			})
		}
	}

	sort.SliceStable(anomalies, func(i, j int) bool {
		ri, rj := severityRank(anomalies[i].Severity), severityRank(anomalies[j].Severity)
		if ri != rj {
			return ri > rj
		}
		return math.Abs(anomalies[i].ZScore) > math.Abs(anomalies[j].ZScore)
	})
	return anomalies
}

func anomalySeverity(absZ float64) string {
	switch {
	case absZ > highThreshold:
		return "high"
	case absZ > mediumThreshold:
		return "medium"
	default:
		return "low"
	}
}

func severityRank(s string) int {
	switch s {
	case "high", "critical":
		return 3
	case "medium", "warning":
		return 2
	default:
		return 1
	}
}

func meanStdev(values []float64) (float64, float64) {
	if len(values) == 0 {
		return 0, 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))

	var sq float64
	for _, v := range values {
		d := v - mean
		sq += d * d
	}
	return mean, math.Sqrt(sq / float64(len(values)))
}

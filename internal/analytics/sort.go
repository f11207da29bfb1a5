// Package analytics derives display-ready views from the raw payloads:
// sorted category breakdowns, period-over-period trends, statistical
// anomalies, spending forecasts and generated monthly reports.
package analytics

import (
	"sort"
	"strings"

	"github.com/yabelyaev/N3xFin/internal/models"
)

// SortKey selects which aggregate field drives the ordering.
type SortKey string

const (
	SortByAmount     SortKey = "amount"
	SortByPercentage SortKey = "percentage"
	SortByName       SortKey = "name"
)

// SortOrder selects ascending or descending order.
type SortOrder string

const (
	OrderAsc  SortOrder = "asc"
	OrderDesc SortOrder = "desc"
)

// ParseSortKey maps a query parameter to a sort key, defaulting to
// amount for anything unrecognized.
func ParseSortKey(s string) SortKey {
	switch SortKey(s) {
	case SortByPercentage:
		return SortByPercentage
	case SortByName:
		return SortByName
	default:
		return SortByAmount
	}
}

// ParseSortOrder maps a query parameter to an order, defaulting to
// descending, which is how spending breakdowns read naturally.
func ParseSortOrder(s string) SortOrder {
	if SortOrder(s) == OrderAsc {
		return OrderAsc
	}
	return OrderDesc
}

// SortAggregates returns a new slice ordered by the given key and
// order. The sort is stable, so categories that compare equal keep
// their incoming relative order. The input slice is not modified.
func SortAggregates(aggs []models.CategoryAggregate, key SortKey, order SortOrder) []models.CategoryAggregate {
	out := make([]models.CategoryAggregate, len(aggs))
	copy(out, aggs)

	var less func(a, b models.CategoryAggregate) bool
	switch key {
	case SortByPercentage:
		less = func(a, b models.CategoryAggregate) bool {
			return a.PercentageOfTotal < b.PercentageOfTotal
		}
	case SortByName:
		less = func(a, b models.CategoryAggregate) bool {
			return strings.ToLower(a.Category) < strings.ToLower(b.Category)
		}
	default:
		less = func(a, b models.CategoryAggregate) bool {
			return a.TotalAmount < b.TotalAmount
		}
	}

	// Strict comparisons keep equal elements untouched, preserving
	// stability in both directions.
	sort.SliceStable(out, func(i, j int) bool {
		if order == OrderAsc {
			return less(out[i], out[j])
		}
		return less(out[j], out[i])
	})
	return out
}

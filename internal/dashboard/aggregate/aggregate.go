// Package aggregate computes cross-sectional figures over snapshot tables.
// Every function is pure and is re-run in full on each refresh or read.
package aggregate

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"marketdash/internal/dashboard/memorystore"
	"marketdash/internal/dashboard/registry"
)

// CommodityMarker prefixes every commodity alert line.
const CommodityMarker = "🛢️"

// TopMovers returns the n rows with the largest percent change, descending.
// Ties keep table order.
func TopMovers(rows []memorystore.Snapshot, n int) []memorystore.Snapshot {
	if n <= 0 || len(rows) == 0 {
		return []memorystore.Snapshot{}
	}

	sorted := make([]memorystore.Snapshot, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].ChangePct > sorted[j].ChangePct
	})

	if n > len(sorted) {
		n = len(sorted)
	}
	return sorted[:n]
}

// MeanChange is the arithmetic mean of percent change; 0 for an empty table.
func MeanChange(rows []memorystore.Snapshot) float64 {
	if len(rows) == 0 {
		return 0
	}
	var sum float64
	for _, r := range rows {
		sum += r.ChangePct
	}
	return sum / float64(len(rows))
}

// TotalVolume sums the latest session volume across rows.
func TotalVolume(rows []memorystore.Snapshot) float64 {
	var sum float64
	for _, r := range rows {
		sum += r.Volume
	}
	return sum
}

// Alerts returns the rows whose absolute percent change is strictly above threshold.
func Alerts(rows []memorystore.Snapshot, threshold float64) []memorystore.Snapshot {
	out := []memorystore.Snapshot{}
	for _, r := range rows {
		if math.Abs(r.ChangePct) > threshold {
			out = append(out, r)
		}
	}
	return out
}

// Summarize bundles the cross-sectional figures of one table.
func Summarize(rows []memorystore.Snapshot, topN int) memorystore.Summary {
	return memorystore.Summary{
		Count:       len(rows),
		MeanChange:  MeanChange(rows),
		TotalVolume: TotalVolume(rows),
		TopMovers:   TopMovers(rows, topN),
	}
}

// AlertLine renders one alert as "🇪🇺 EUR: +4.00%". Currency lines carry the row's flag,
// commodity lines the oil-barrel marker.
func AlertLine(f registry.Family, r memorystore.Snapshot) string {
	line := fmt.Sprintf("%s: %+.2f%%", r.Code, r.ChangePct)
	prefix := r.Flag
	if f == registry.FamilyCommodities {
		prefix = CommodityMarker
	}
	if prefix == "" {
		return line
	}
	return prefix + " " + line
}

// FailureWarning renders the single aggregated warning for a family's failed history loads.
// It returns "" when nothing failed.
func FailureWarning(family string, codes []string) string {
	if len(codes) == 0 {
		return ""
	}
	return fmt.Sprintf("failed to load %s: %s", family, strings.Join(codes, ", "))
}

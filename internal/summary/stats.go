package summary

import (
	"fmt"
	"math"
	"sort"
)

type KeyCount struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

type NumericStats struct {
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	StdDev float64 `json:"stdDev"`
}

func numericStats(values []float64) *NumericStats {
	if len(values) == 0 {
		return nil
	}
	mean := AverageFloat64(values)
	return &NumericStats{
		Min:    MinFloat64(values),
		Max:    MaxFloat64(values),
		Mean:   mean,
		Median: CalculateMedian(values),
		StdDev: CalculateStdDev(values, mean),
	}
}

// Compare reports how current differs from baseline: count diffs, percent
// changes and, for each of current's top values, its count diff.
func Compare(current Insights, baseline Insights) map[string]float64 {
	comparison := make(map[string]float64)

	comparison["TotalCountDiff"] = float64(current.TotalCount - baseline.TotalCount)
	comparison["NullCountDiff"] = float64(current.NullCount - baseline.NullCount)
	comparison["UniqueKeysDiff"] = float64(current.UniqueKeys - baseline.UniqueKeys)
	comparison["AverageRecordsPerKeyDiff"] = current.AverageRecordsPerKey - baseline.AverageRecordsPerKey

	comparison["TotalCountPercentChange"] = percentageChange(float64(baseline.TotalCount), float64(current.TotalCount))
	comparison["UniqueKeysPercentChange"] = percentageChange(float64(baseline.UniqueKeys), float64(current.UniqueKeys))

	for _, keyCount := range current.TopKeys {
		baselineCount := baseline.countOf(keyCount.Key)
		comparison[fmt.Sprintf("%s_CountDiff", keyCount.Key)] = float64(keyCount.Count - baselineCount)
		comparison[fmt.Sprintf("%s_PercentChange", keyCount.Key)] = percentageChange(float64(baselineCount), float64(keyCount.Count))
	}

	return comparison
}

func getTopKeys(counts map[string]int, n int) []KeyCount {
	keyCounts := make([]KeyCount, 0, len(counts))
	for key, count := range counts {
		keyCounts = append(keyCounts, KeyCount{Key: key, Count: count})
	}

	sort.Slice(keyCounts, func(i, j int) bool {
		if keyCounts[i].Count != keyCounts[j].Count {
			return keyCounts[i].Count > keyCounts[j].Count
		}
		return keyCounts[i].Key < keyCounts[j].Key
	})

	if len(keyCounts) > n {
		keyCounts = keyCounts[:n]
	}

	return keyCounts
}

// percentageChange is zero when old is zero so reports stay JSON encodable.
func percentageChange(old, new_ float64) float64 {
	if old == 0 {
		return 0
	}
	return ((new_ - old) / old) * 100
}

func CalculateMedian(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	n := len(sorted)
	if n%2 == 0 {
		return (sorted[n/2-1] + sorted[n/2]) / 2
	}
	return sorted[n/2]
}

func CalculateStdDev(values []float64, mean float64) float64 {
	if len(values) == 0 {
		return 0
	}
	variance := 0.0
	for _, v := range values {
		diff := v - mean
		variance += diff * diff
	}
	variance /= float64(len(values))
	return math.Sqrt(variance)
}

func MaxFloat64(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	m := values[0]
	for _, v := range values[1:] {
		if v > m {
			m = v
		}
	}
	return m
}

func MinFloat64(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	m := values[0]
	for _, v := range values[1:] {
		if v < m {
			m = v
		}
	}
	return m
}

func AverageFloat64(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

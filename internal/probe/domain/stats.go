package domain

import (
	"math"
	"sort"
)

type Verdict string

const (
	VerdictStable       Verdict = "stable"
	VerdictMostlyStable Verdict = "mostly_stable"
	VerdictUnstable     Verdict = "unstable"
)

// Stats aggregates the results of one target. It is recomputed from the
// results every time and holds no state of its own.
type Stats struct {
	Target         string   `json:"target"`
	Path           string   `json:"path"`
	Method         string   `json:"method"`
	Successes      int      `json:"successes"`
	Total          int      `json:"total"`
	Samples        int      `json:"samples"`
	SuccessRate    float64  `json:"success_rate"`
	AverageLatency float64  `json:"average_latency_ms"`
	MinLatency     float64  `json:"min_latency_ms"`
	MaxLatency     float64  `json:"max_latency_ms"`
	P50Latency     float64  `json:"p50_latency_ms"`
	P95Latency     float64  `json:"p95_latency_ms"`
	Results        []Result `json:"results"`
}

// Summarize derives the statistics of one target. Every result counts
// toward Total; only results with a round trip contribute a latency sample.
func Summarize(target Target, results []Result) Stats {
	stats := Stats{
		Target:  target.Label(),
		Path:    target.Path,
		Method:  target.Method,
		Total:   len(results),
		Results: results,
	}

	latencies := make([]float64, 0, len(results))
	for _, result := range results {
		if result.Outcome.IsSuccess() {
			stats.Successes++
		}
		if result.HasLatency {
			latencies = append(latencies, result.LatencyMs)
		}
	}

	if stats.Total > 0 {
		stats.SuccessRate = float64(stats.Successes) / float64(stats.Total) * 100
	}

	stats.Samples = len(latencies)
	if len(latencies) == 0 {
		return stats
	}

	sorted := make([]float64, len(latencies))
	copy(sorted, latencies)
	sort.Float64s(sorted)

	var total float64
	for _, l := range sorted {
		total += l
	}

	stats.AverageLatency = total / float64(len(sorted))
	stats.MinLatency = sorted[0]
	stats.MaxLatency = sorted[len(sorted)-1]
	stats.P50Latency = percentile(sorted, 0.5)
	stats.P95Latency = percentile(sorted, 0.95)

	return stats
}

func (s Stats) Failures() int {
	return s.Total - s.Successes
}

// Verdict grades consistency: every attempt succeeded, more than 80% did,
// or worse.
func (s Stats) Verdict() Verdict {
	switch {
	case s.Total > 0 && s.Successes == s.Total:
		return VerdictStable
	case s.SuccessRate > 80:
		return VerdictMostlyStable
	default:
		return VerdictUnstable
	}
}

// percentile interpolates linearly between the closest ranks of a sorted slice
func percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}

	index := float64(len(sorted)-1) * p
	lower := int(math.Floor(index))
	upper := int(math.Ceil(index))

	if lower == upper {
		return sorted[lower]
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

package domain

import "time"

// Report is the aggregated output of one probing session. Endpoints keep
// the configured target order.
type Report struct {
	RunID             string            `json:"run_id"`
	BaseURL           string            `json:"base_url"`
	AttemptsPerTarget int               `json:"attempts_per_target"`
	StartedAt         time.Time         `json:"started_at"`
	FinishedAt        time.Time         `json:"finished_at"`
	Preflight         []PreflightResult `json:"preflight,omitempty"`
	Warmup            []Stats           `json:"warmup,omitempty"`
	Endpoints         []Stats           `json:"endpoints"`
	Best              *Stats            `json:"best,omitempty"`
	Receiver          *CoffeeStatus     `json:"receiver,omitempty"`
}

func (r *Report) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}

// SelectBest picks the endpoint with the highest success rate, breaking
// ties on lower average latency; the earlier endpoint wins a full tie.
// Returns false when no endpoint had a single success.
func SelectBest(endpoints []Stats) (Stats, bool) {
	bestIndex := -1
	for i, candidate := range endpoints {
		if candidate.Successes == 0 {
			continue
		}
		if bestIndex < 0 {
			bestIndex = i
			continue
		}

		best := endpoints[bestIndex]
		switch {
		case candidate.SuccessRate > best.SuccessRate:
			bestIndex = i
		case candidate.SuccessRate == best.SuccessRate && candidate.AverageLatency < best.AverageLatency:
			bestIndex = i
		}
	}

	if bestIndex < 0 {
		return Stats{}, false
	}
	return endpoints[bestIndex], true
}

package report

import (
	"HookProbe/internal/probe/domain"
	"HookProbe/pkg/uuidutil"
	"fmt"
	"io"
	"text/tabwriter"
	"time"
)

// WriteText renders the report for a terminal. The layout is for humans;
// tools should consume the domain.Report itself.
func WriteText(w io.Writer, r *domain.Report) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintf(tw, "Run %s\t%s\t%d attempt(s) per target\t%s\n",
		uuidutil.Short(r.RunID), r.BaseURL, r.AttemptsPerTarget, r.Duration().Round(time.Millisecond))

	if len(r.Preflight) > 0 {
		fmt.Fprintln(tw, "\nPreflight")
		for _, p := range r.Preflight {
			status := "ok"
			if !p.Success {
				status = "FAIL " + p.Error
			}
			fmt.Fprintf(tw, "  %s\t%s\t%.0fms\t%s\n", p.Check, p.Target, p.LatencyMs, status)
		}
	}

	if len(r.Warmup) > 0 {
		fmt.Fprintln(tw, "\nWarmup")
		for _, s := range r.Warmup {
			writeStatsRow(tw, s)
		}
	}

	fmt.Fprintln(tw, "\nEndpoints")
	fmt.Fprintln(tw, "  target\tmethod\tok/total\tsuccess\tavg\tmin\tmax\tp95\tverdict")
	for _, s := range r.Endpoints {
		writeStatsRow(tw, s)
	}

	fmt.Fprintln(tw)
	if r.Best != nil {
		fmt.Fprintf(tw, "Best endpoint: %s (%.1f%% success, %.0fms avg)\n",
			r.Best.Target, r.Best.SuccessRate, r.Best.AverageLatency)
	} else {
		fmt.Fprintln(tw, "Best endpoint: none, every attempt failed")
	}

	if r.Receiver != nil {
		fmt.Fprintf(tw, "Receiver: total %.2f, %d donation(s), last %.2f by %s\n",
			float64(r.Receiver.Total), r.Receiver.TransactionCount,
			float64(r.Receiver.LastDonation.Amount), donor(r.Receiver.LastDonation.DonorName))
	}

	return tw.Flush()
}

func writeStatsRow(w io.Writer, s domain.Stats) {
	if s.Samples == 0 {
		fmt.Fprintf(w, "  %s\t%s\t%d/%d\t%.1f%%\t-\t-\t-\t-\t%s\n",
			s.Target, s.Method, s.Successes, s.Total, s.SuccessRate, s.Verdict())
		return
	}

	fmt.Fprintf(w, "  %s\t%s\t%d/%d\t%.1f%%\t%.0fms\t%.0fms\t%.0fms\t%.0fms\t%s\n",
		s.Target, s.Method, s.Successes, s.Total, s.SuccessRate,
		s.AverageLatency, s.MinLatency, s.MaxLatency, s.P95Latency, s.Verdict())
}

func donor(name string) string {
	if name == "" {
		return "anonymous"
	}
	return name
}

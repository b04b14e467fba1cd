package handler

import (
	"HookProbe/internal/probe/domain"
	runner "HookProbe/internal/probe/runners"
	"HookProbe/pkg/uuidutil"
	"context"
	"errors"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"
)

// ProbeHandler runs a battery of HTTP attempts against a base URL and
// turns them into a Report.
type ProbeHandler struct {
	executor runner.Executor
	logger   *slog.Logger
	sleep    func(ctx context.Context, d time.Duration) error
}

func NewProbeHandler(executor runner.Executor, logger *slog.Logger) *ProbeHandler {
	if logger == nil {
		logger = slog.Default()
	}

	return &ProbeHandler{
		executor: executor,
		logger:   logger,
		sleep:    sleepContext,
	}
}

// RunProbe validates the plan and executes AttemptsPerTarget attempts per
// target, in target order then attempt order. Only an invalid plan returns
// an error; every failure after that is recorded in the report.
func (h *ProbeHandler) RunProbe(ctx context.Context, plan domain.Plan) (*domain.Report, error) {
	if err := plan.Validate(); err != nil {
		return nil, err
	}

	report := &domain.Report{
		RunID:             uuidutil.New(),
		BaseURL:           plan.BaseURL,
		AttemptsPerTarget: plan.AttemptsPerTarget,
		StartedAt:         time.Now(),
		Endpoints:         make([]domain.Stats, len(plan.Targets)),
	}

	h.logger.Info("starting probe run",
		"run_id", report.RunID,
		"base_url", plan.BaseURL,
		"targets", len(plan.Targets),
		"attempts", plan.AttemptsPerTarget,
		"concurrent", plan.ConcurrentTargets,
	)

	if plan.ConcurrentTargets {
		// каждая цель пишет только в свой слот, порядок отчета сохраняется
		var g errgroup.Group
		for i, target := range plan.Targets {
			i, target := i, target
			g.Go(func() error {
				report.Endpoints[i] = h.runTarget(ctx, plan, target)
				return nil
			})
		}
		_ = g.Wait()
	} else {
		for i, target := range plan.Targets {
			if i > 0 && plan.InterTargetDelay > 0 {
				_ = h.sleep(ctx, plan.InterTargetDelay)
			}
			report.Endpoints[i] = h.runTarget(ctx, plan, target)
		}
	}

	if best, ok := domain.SelectBest(report.Endpoints); ok {
		report.Best = &best
	}
	report.FinishedAt = time.Now()

	h.logger.Info("probe run finished",
		"run_id", report.RunID,
		"duration", report.Duration(),
		"winner", winnerLabel(report.Best),
	)

	return report, nil
}

func (h *ProbeHandler) runTarget(ctx context.Context, plan domain.Plan, target domain.Target) domain.Stats {
	results := make([]domain.Result, 0, plan.AttemptsPerTarget)

	for attempt := 1; attempt <= plan.AttemptsPerTarget; attempt++ {
		results = append(results, h.attempt(ctx, plan.BaseURL, target, attempt))

		if attempt < plan.AttemptsPerTarget && plan.InterAttemptDelay > 0 {
			// отмена контекста проявится на следующей попытке
			_ = h.sleep(ctx, plan.InterAttemptDelay)
		}
	}

	stats := domain.Summarize(target, results)

	h.logger.Info("target summarized",
		"target", stats.Target,
		"successes", stats.Successes,
		"total", stats.Total,
		"success_rate", stats.SuccessRate,
		"avg_latency_ms", stats.AverageLatency,
	)

	return stats
}

func (h *ProbeHandler) attempt(ctx context.Context, baseURL string, target domain.Target, attempt int) domain.Result {
	label := target.Label()

	if err := ctx.Err(); err != nil {
		return domain.NewErrorResult(label, attempt, domain.OutcomeTransportError, err)
	}

	resp, err := h.executor.Execute(ctx, runner.Request{
		Method:  target.Method,
		URL:     target.URL(baseURL),
		Body:    target.Body,
		Headers: target.Headers,
		Timeout: target.Timeout,
	})
	if err != nil {
		outcome := domain.OutcomeTransportError
		if errors.Is(err, runner.ErrTimeout) {
			outcome = domain.OutcomeTimeout
		}

		h.logger.Warn("probe attempt failed",
			"target", label,
			"attempt", attempt,
			"outcome", outcome,
			"error", err,
		)
		return domain.NewErrorResult(label, attempt, outcome, err)
	}

	outcome := target.Predicate.Evaluate(resp.StatusCode, resp.Body)
	result := domain.NewResponseResult(label, attempt, outcome, resp.StatusCode, resp.Elapsed, resp.Body)

	h.logger.Debug("probe attempt completed",
		"target", label,
		"attempt", attempt,
		"status", resp.StatusCode,
		"outcome", outcome,
		"latency_ms", result.LatencyMs,
	)

	return result
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func winnerLabel(best *domain.Stats) string {
	if best == nil {
		return "none"
	}
	return best.Target
}

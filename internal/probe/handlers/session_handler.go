package handler

import (
	client "HookProbe/internal/probe/clients"
	"HookProbe/internal/probe/domain"
	runner "HookProbe/internal/probe/runners"
	"context"
	"log/slog"
	"net"
	"net/url"
	"time"
)

// ReportPublisher receives every finished report.
type ReportPublisher interface {
	Publish(ctx context.Context, report *domain.Report) error
}

type SessionConfig struct {
	Plan          domain.Plan
	Warmup        []domain.Target
	WarmupDelay   time.Duration
	Preflight     bool
	ReceiverState bool

	// пустые значения оставляют настройки раннеров
	PreflightTimeout time.Duration
	DNSRecordType    string
}

// SessionHandler wraps one RunProbe call with the steps the manual
// scripts used to do around it: preflight, warmup, receiver state, publish.
type SessionHandler struct {
	probe     *ProbeHandler
	runners   *runner.Factory
	coffee    *client.CoffeeClient
	publisher ReportPublisher
	logger    *slog.Logger
}

func NewSessionHandler(logger *slog.Logger, probe *ProbeHandler, runners *runner.Factory, coffee *client.CoffeeClient, publisher ReportPublisher) *SessionHandler {
	if logger == nil {
		logger = slog.Default()
	}

	return &SessionHandler{
		probe:     probe,
		runners:   runners,
		coffee:    coffee,
		publisher: publisher,
		logger:    logger,
	}
}

func (s *SessionHandler) Run(ctx context.Context, cfg SessionConfig) (*domain.Report, error) {
	if err := cfg.Plan.Validate(); err != nil {
		return nil, err
	}

	var preflight []domain.PreflightResult
	if cfg.Preflight && s.runners != nil {
		preflight = s.preflight(ctx, cfg)
	}

	var warmup []domain.Stats
	if len(cfg.Warmup) > 0 {
		warmupReport, err := s.probe.RunProbe(ctx, domain.Plan{
			BaseURL:           cfg.Plan.BaseURL,
			Targets:           cfg.Warmup,
			AttemptsPerTarget: 1,
			InterTargetDelay:  cfg.WarmupDelay,
		})
		if err != nil {
			// прогрев не должен мешать основному прогону
			s.logger.Warn("warmup skipped", "error", err)
		} else {
			warmup = warmupReport.Endpoints
		}
	}

	report, err := s.probe.RunProbe(ctx, cfg.Plan)
	if err != nil {
		return nil, err
	}
	report.Preflight = preflight
	report.Warmup = warmup

	if cfg.ReceiverState && s.coffee != nil {
		status, err := s.coffee.FetchStatus(ctx)
		if err != nil {
			s.logger.Warn("failed to read receiver state", "error", err)
		} else {
			report.Receiver = status
		}
	}

	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, report); err != nil {
			s.logger.Error("failed to publish report", "run_id", report.RunID, "error", err)
		}
	}

	return report, nil
}

func (s *SessionHandler) preflight(ctx context.Context, cfg SessionConfig) []domain.PreflightResult {
	u, err := url.Parse(cfg.Plan.BaseURL)
	if err != nil {
		return nil
	}

	host := u.Hostname()
	port := u.Port()
	if port == "" {
		port = "443"
		if u.Scheme == "http" {
			port = "80"
		}
	}

	checks := []preflightCheck{
		{
			check:   domain.DNSCheck,
			label:   host,
			target:  host,
			options: preflightOptions(cfg, "record_type", cfg.DNSRecordType),
		},
		{
			check:   domain.TCPCheck,
			label:   net.JoinHostPort(host, port),
			target:  host,
			options: preflightOptions(cfg, "port", port),
		},
	}

	results := make([]domain.PreflightResult, 0, len(checks))
	for _, c := range checks {
		// IP-адрес не нужно резолвить
		if c.check == domain.DNSCheck && net.ParseIP(host) != nil {
			continue
		}
		results = append(results, s.runPreflight(ctx, c))
	}

	return results
}

type preflightCheck struct {
	check   domain.CheckType
	label   string
	target  string
	options map[string]interface{}
}

func preflightOptions(cfg SessionConfig, key string, value string) map[string]interface{} {
	options := make(map[string]interface{}, 2)
	if value != "" {
		options[key] = value
	}
	if cfg.PreflightTimeout > 0 {
		options["timeout"] = cfg.PreflightTimeout
	}
	return options
}

func (s *SessionHandler) runPreflight(ctx context.Context, c preflightCheck) domain.PreflightResult {
	result := domain.PreflightResult{
		Check:  c.check,
		Target: c.label,
	}

	r, err := s.runners.GetRunner(c.check)
	if err != nil {
		result.Error = err.Error()
		return result
	}

	start := time.Now()
	details, err := r.Execute(ctx, c.target, c.options)
	result.LatencyMs = float64(time.Since(start).Nanoseconds()) / 1e6

	if err != nil {
		result.Error = err.Error()
		s.logger.Warn("preflight check failed",
			"check", c.check,
			"target", c.label,
			"error", err,
		)
		return result
	}

	result.Success = true
	result.Details = details

	s.logger.Debug("preflight check passed",
		"check", c.check,
		"target", c.label,
		"latency_ms", result.LatencyMs,
	)

	return result
}

package main

import (
	"HookProbe/internal/config"
	"HookProbe/internal/probe/domain"
	handler "HookProbe/internal/probe/handlers"
	"HookProbe/internal/probe/report"
	"context"
	"errors"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
)

const (
	exitOK = iota
	exitFailed
	exitRejected
)

func main() {
	cfg, err := config.Load(os.Getenv("HOOKPROBE_CONFIG"))
	if err != nil {
		log.Printf("failed to load config %s", err)
		os.Exit(exitCode(err))
	}

	// Ctrl+C прерывает оставшиеся попытки, отчет все равно печатается
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, cfg, os.Stdout)
	stop()

	os.Exit(code)
}

// exitCode separates rejected configuration from everything else that
// stops the tool before or after a run.
func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, domain.ErrConfig):
		return exitRejected
	default:
		return exitFailed
	}
}

func run(ctx context.Context, cfg *config.Config, out io.Writer) int {
	container := GetContainer(cfg)
	defer container.Close()

	logger := container.Logger
	logger.Info("Starting HookProbe",
		"name", cfg.App.Name,
		"version", cfg.App.Version,
		"base_url", cfg.Probe.BaseURL,
	)

	plan, err := cfg.Probe.Plan()
	if err != nil {
		logger.Error("invalid probe targets", "error", err)
		return exitCode(err)
	}

	warmup, err := cfg.Probe.WarmupTargets()
	if err != nil {
		logger.Error("invalid warmup targets", "error", err)
		return exitCode(err)
	}

	result, err := container.SessionHandler.Run(ctx, handler.SessionConfig{
		Plan:             plan,
		Warmup:           warmup,
		WarmupDelay:      cfg.Probe.WarmupDelay,
		Preflight:        cfg.Preflight.Enabled,
		PreflightTimeout: cfg.Preflight.Timeout,
		DNSRecordType:    cfg.Preflight.RecordType,
		ReceiverState:    cfg.Probe.ReceiverState,
	})
	if err != nil {
		logger.Error("probe run rejected", "error", err)
		return exitCode(err)
	}

	if err := report.WriteText(out, result); err != nil {
		logger.Error("failed to write report", "error", err)
		return exitFailed
	}

	return exitOK
}

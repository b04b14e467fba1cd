package main

import (
	"HookProbe/internal/config"
	client "HookProbe/internal/probe/clients"
	handler "HookProbe/internal/probe/handlers"
	runner "HookProbe/internal/probe/runners"
	"HookProbe/internal/shared/constants"
	"HookProbe/internal/storage"
	"HookProbe/pkg/logger"
	"log/slog"
	"os"
)

type Container struct {
	Config         *config.Config
	Logger         *slog.Logger
	HTTPRunner     *runner.HTTPRunner
	Runners        *runner.Factory
	CoffeeClient   *client.CoffeeClient
	Publisher      storage.Publisher
	ProbeHandler   *handler.ProbeHandler
	SessionHandler *handler.SessionHandler
}

func GetContainer(cfg *config.Config) *Container {
	container := &Container{Config: cfg}

	container.initLogger()
	container.initRunners()
	container.initClients()
	container.initPublisher()
	container.initHandlers()

	return container
}

func (c *Container) initLogger() {
	level := c.Config.Logging.Level
	if os.Getenv("DEBUG") == "true" {
		level = "debug"
	}

	// отчет идет в stdout, логи в stderr
	c.Logger = logger.SetupWriter(os.Stderr, logger.Config{
		Level:  level,
		Format: c.Config.Logging.Format,
	})
}

func (c *Container) initRunners() {
	c.HTTPRunner = runner.NewHTTPRunner()
	c.Runners = runner.NewFactory(
		runner.NewDNSRunner(c.Config.Preflight.DNSServer),
		runner.NewTCPRunner(),
	)
}

func (c *Container) initClients() {
	c.CoffeeClient = client.NewCoffeeClient(c.Config.Probe.BaseURL, c.HTTPRunner, constants.WarmupTimeout)
}

func (c *Container) initPublisher() {
	c.Publisher = storage.NopPublisher{}
	if !c.Config.Redis.Enabled() {
		return
	}

	publisher, err := storage.NewRedisPublisher(&c.Config.Redis, c.Logger)
	if err != nil {
		c.Logger.Warn("report publishing disabled", "error", err)
		return
	}
	c.Publisher = publisher
}

func (c *Container) initHandlers() {
	c.ProbeHandler = handler.NewProbeHandler(c.HTTPRunner, c.Logger.With("component", "probe"))
	c.SessionHandler = handler.NewSessionHandler(
		c.Logger.With("component", "session"),
		c.ProbeHandler,
		c.Runners,
		c.CoffeeClient,
		c.Publisher,
	)
}

func (c *Container) Close() error {
	if c.Publisher != nil {
		return c.Publisher.Close()
	}
	return nil
}

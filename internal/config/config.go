package config

import (
	"HookProbe/internal/probe/domain"
	"HookProbe/internal/shared/constants"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
)

const (
	envPrefix  = "HOOKPROBE"
	dotEnvFile = ".env"
)

type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Probe     ProbeConfig     `mapstructure:"probe"`
	Preflight PreflightConfig `mapstructure:"preflight"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

type AppConfig struct {
	Name    string `mapstructure:"name"`
	Version string `mapstructure:"version"`
}

type ProbeConfig struct {
	BaseURL           string         `mapstructure:"base_url"`
	Attempts          int            `mapstructure:"attempts"`
	Delay             time.Duration  `mapstructure:"delay"`
	TargetDelay       time.Duration  `mapstructure:"target_delay"`
	Timeout           time.Duration  `mapstructure:"timeout"`
	ConcurrentTargets bool           `mapstructure:"concurrent_targets"`
	ReceiverState     bool           `mapstructure:"receiver_state"`
	Targets           []TargetConfig `mapstructure:"targets"`
	Warmup            []TargetConfig `mapstructure:"warmup"`
	WarmupDelay       time.Duration  `mapstructure:"warmup_delay"`
}

// TargetConfig describes one endpoint. Body is raw JSON so that key case
// survives viper, which lowercases map keys.
type TargetConfig struct {
	Name    string            `mapstructure:"name"`
	Path    string            `mapstructure:"path"`
	Method  string            `mapstructure:"method"`
	Body    string            `mapstructure:"body"`
	Headers map[string]string `mapstructure:"headers"`
	Timeout time.Duration     `mapstructure:"timeout"`
	Success string            `mapstructure:"success"`
}

type PreflightConfig struct {
	Enabled    bool          `mapstructure:"enabled"`
	DNSServer  string        `mapstructure:"dns_server"`
	RecordType string        `mapstructure:"record_type"`
	Timeout    time.Duration `mapstructure:"timeout"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Channel  string `mapstructure:"channel"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from path, or from configs/config.yaml when
// path is empty. A missing default file is not an error; a missing
// explicit file is. HOOKPROBE_* environment variables override both; a
// .env file in the working directory is read into the environment first.
// Validation failures wrap domain.ErrConfig.
func Load(path string) (*Config, error) {
	if err := loadDotEnv(dotEnvFile); err != nil {
		slog.Warn("failed to read .env file, ignoring it", "file", dotEnvFile, "error", err)
	}

	v := viper.New()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("configs")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path == "" && errors.As(err, &notFound) {
			slog.Warn("config file not found, using defaults")
		} else {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config, %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("%w: config validation failed, %w", domain.ErrConfig, err)
	}

	slog.Debug("configuration loaded successfully", "file", v.ConfigFileUsed())
	return &config, nil
}

// loadDotEnv treats a missing file as empty; any other failure is returned.
func loadDotEnv(path string) error {
	err := godotenv.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

func setDefaults(v *viper.Viper) {
	// app defaults
	v.SetDefault("app.name", "hookprobe")
	v.SetDefault("app.version", "1.0.0")

	// probe defaults
	v.SetDefault("probe.base_url", "https://webhook-coffee.vercel.app")
	v.SetDefault("probe.attempts", 3)
	v.SetDefault("probe.delay", constants.InterAttemptDelay.String())
	v.SetDefault("probe.target_delay", "0s")
	v.SetDefault("probe.timeout", constants.AttemptTimeout.String())
	v.SetDefault("probe.concurrent_targets", false)
	v.SetDefault("probe.receiver_state", false)
	v.SetDefault("probe.targets", []map[string]interface{}{
		{"name": "/webhook", "path": "/webhook", "method": "POST", "body": string(domain.DefaultWebhookPayload), "success": domain.PredicateBodyOK},
		{"name": "/webhook-debug", "path": "/webhook-debug", "method": "POST", "body": string(domain.DefaultWebhookPayload)},
		{"name": "/webhook-minimal", "path": "/webhook-minimal", "method": "POST", "body": string(domain.DefaultWebhookPayload)},
	})
	v.SetDefault("probe.warmup_delay", constants.WarmupDelay.String())
	v.SetDefault("probe.warmup", []map[string]interface{}{
		{"path": "/", "timeout": constants.WarmupTimeout.String()},
		{"path": "/warmup", "timeout": constants.WarmupTimeout.String()},
		{"path": "/coffee-status", "timeout": constants.WarmupTimeout.String(), "success": domain.PredicateCoffeeStatus},
	})

	// preflight defaults
	v.SetDefault("preflight.enabled", true)
	v.SetDefault("preflight.dns_server", "8.8.8.8:53")
	v.SetDefault("preflight.record_type", "A")
	v.SetDefault("preflight.timeout", constants.DNSTimeout.String())

	// redis defaults, empty addr disables publishing
	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.channel", "hookprobe:reports")

	// logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
}

func validateConfig(cfg *Config) error {
	if cfg.Probe.BaseURL == "" {
		return errors.New("probe base_url is required")
	}

	if cfg.Probe.Attempts < 1 {
		return fmt.Errorf("invalid probe attempts %d", cfg.Probe.Attempts)
	}

	if cfg.Probe.Delay < 0 {
		return fmt.Errorf("invalid probe delay %s", cfg.Probe.Delay)
	}

	if cfg.Probe.TargetDelay < 0 || cfg.Probe.WarmupDelay < 0 {
		return errors.New("probe target_delay and warmup_delay must not be negative")
	}

	if cfg.Probe.Timeout <= 0 {
		return fmt.Errorf("invalid probe timeout %s", cfg.Probe.Timeout)
	}

	if len(cfg.Probe.Targets) == 0 {
		return errors.New("at least one probe target is required")
	}

	if cfg.Preflight.RecordType != "A" && cfg.Preflight.RecordType != "AAAA" {
		return fmt.Errorf("invalid preflight record_type %s", cfg.Preflight.RecordType)
	}

	if cfg.Preflight.Timeout < 0 {
		return fmt.Errorf("invalid preflight timeout %s", cfg.Preflight.Timeout)
	}

	if cfg.Redis.Addr != "" && cfg.Redis.Channel == "" {
		return errors.New("redis channel is required when redis addr is set")
	}

	if cfg.Logging.Format != "text" && cfg.Logging.Format != "json" {
		return fmt.Errorf("invalid logging format %s", cfg.Logging.Format)
	}

	return nil
}

// Plan converts the probe section into the runner's input.
func (p *ProbeConfig) Plan() (domain.Plan, error) {
	targets, err := buildTargets(p.Targets, p.Timeout)
	if err != nil {
		return domain.Plan{}, err
	}

	return domain.Plan{
		BaseURL:           p.BaseURL,
		Targets:           targets,
		AttemptsPerTarget: p.Attempts,
		InterAttemptDelay: p.Delay,
		InterTargetDelay:  p.TargetDelay,
		ConcurrentTargets: p.ConcurrentTargets,
	}, nil
}

func (p *ProbeConfig) WarmupTargets() ([]domain.Target, error) {
	return buildTargets(p.Warmup, constants.WarmupTimeout)
}

func buildTargets(configs []TargetConfig, defaultTimeout time.Duration) ([]domain.Target, error) {
	targets := make([]domain.Target, 0, len(configs))
	for _, tc := range configs {
		target, err := tc.Target(defaultTimeout)
		if err != nil {
			return nil, err
		}
		targets = append(targets, target)
	}
	return targets, nil
}

func (t *TargetConfig) Target(defaultTimeout time.Duration) (domain.Target, error) {
	predicate, err := domain.ParsePredicate(t.Success)
	if err != nil {
		return domain.Target{}, fmt.Errorf("target %q: %w", t.Path, err)
	}

	method := strings.ToUpper(strings.TrimSpace(t.Method))
	if method == "" {
		method = http.MethodGet
		if t.Body != "" {
			method = http.MethodPost
		}
	}

	timeout := t.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	target := domain.Target{
		Name:      t.Name,
		Path:      t.Path,
		Method:    method,
		Headers:   t.Headers,
		Timeout:   timeout,
		Predicate: predicate,
	}
	if t.Body != "" {
		target.Body = []byte(t.Body)
	}

	return target, nil
}

// возвращает настройки для Redis клиента
func (r *RedisConfig) GetRedisOptions() *redis.Options {
	return &redis.Options{
		Addr:            r.Addr,
		Password:        r.Password,
		DB:              r.DB,
		DisableIdentity: true,
	}
}

func (r *RedisConfig) Enabled() bool {
	return r.Addr != ""
}

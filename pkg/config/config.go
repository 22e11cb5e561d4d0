package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Environment string `yaml:"environment"`
	Server      struct {
		Port            int           `yaml:"port"`
		ReadTimeout     time.Duration `yaml:"read_timeout"`
		WriteTimeout    time.Duration `yaml:"write_timeout"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	} `yaml:"server"`
	Logging struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
		Output string `yaml:"output"`
	} `yaml:"logging"`
	Metrics struct {
		Enabled bool   `yaml:"enabled"`
		Path    string `yaml:"path"`
	} `yaml:"metrics"`
	Feed struct {
		Type          string        `yaml:"type"` // "none" or "kafka"
		Brokers       []string      `yaml:"brokers"`
		SnapshotTopic string        `yaml:"snapshot_topic"`
		EventTopic    string        `yaml:"event_topic"`
		RequiredAcks  int           `yaml:"required_acks"`
		Compression   string        `yaml:"compression"`
		WriteTimeout  time.Duration `yaml:"write_timeout"`
		Async         bool          `yaml:"async"`
	} `yaml:"feed"`
	Simulation SimulationConfig `yaml:"simulation"`
}

// SimulationConfig holds every tunable of the synthetic pipeline. Zero values
// fall back to the stated defaults in ApplyDefaults.
type SimulationConfig struct {
	TickInterval          time.Duration  `yaml:"tick_interval"` // cadence hint for the runner, not the engine
	Seed                  int64          `yaml:"seed"`          // 0 = time-seeded
	ChartWindow           int            `yaml:"chart_window"`
	TrendWindow           int            `yaml:"trend_window"`
	CorrelationMinSamples int            `yaml:"correlation_min_samples"`
	SeedSamples           int            `yaml:"seed_samples"`
	EventLogCapacity      int            `yaml:"event_log_capacity"`
	Anomaly               AnomalyConfig  `yaml:"anomaly"`
	Signals               []SignalConfig `yaml:"signals"`
}

type AnomalyConfig struct {
	FirstTriggerTick int `yaml:"first_trigger_tick"`
	RetriggerMin     int `yaml:"retrigger_min_ticks"`
	RetriggerJitter  int `yaml:"retrigger_jitter_ticks"`
	EpisodeTicks     int `yaml:"episode_ticks"`
	RampTicks        int `yaml:"ramp_ticks"`
}

type SignalConfig struct {
	Name     string  `yaml:"name"`
	Label    string  `yaml:"label"`
	Unit     string  `yaml:"unit"`
	Baseline float64 `yaml:"baseline"`
	Min      float64 `yaml:"min"`
	Max      float64 `yaml:"max"`
	Variance float64 `yaml:"variance"`
	Trend    bool    `yaml:"trend"`
}

// DefaultSignals is the built-in six-vital set. Its order is the correlation
// matrix order.
func DefaultSignals() []SignalConfig {
	return []SignalConfig{
		{Name: "heart_rate", Label: "Heart Rate", Unit: "bpm", Baseline: 72, Min: 40, Max: 180, Variance: 2.2, Trend: true},
		{Name: "spo2", Label: "SpO2", Unit: "%", Baseline: 97.5, Min: 80, Max: 100, Variance: 0.4, Trend: true},
		{Name: "hrv", Label: "HRV", Unit: "ms", Baseline: 42, Min: 10, Max: 120, Variance: 3.0},
		{Name: "resp_rate", Label: "Respiration", Unit: "breaths/min", Baseline: 14, Min: 8, Max: 40, Variance: 0.8},
		{Name: "systolic_bp", Label: "Systolic BP", Unit: "mmHg", Baseline: 118, Min: 80, Max: 200, Variance: 2.5},
		{Name: "temperature", Label: "Temperature", Unit: "°C", Baseline: 36.8, Min: 34, Max: 41, Variance: 0.08, Trend: true},
	}
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	c.ApplyDefaults()
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	if v := os.Getenv("VITALSIM_SEED"); v != "" {
		if seed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Simulation.Seed = seed
		}
	}
	if v := os.Getenv("VITALSIM_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Server.Port = port
		}
	}
	if v := os.Getenv("FEED"); v != "" {
		c.Feed.Type = v
	}
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		c.Feed.Brokers = strings.Split(v, ",")
	}

	return c, nil
}

// ApplyDefaults fills zero-valued tunables with the reference defaults.
func (c *Config) ApplyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 10 * time.Second
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 10 * time.Second
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 10 * time.Second
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "console"
	}
	if c.Logging.Output == "" {
		c.Logging.Output = "stdout"
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Feed.Type == "" {
		c.Feed.Type = "none"
	}
	if c.Feed.SnapshotTopic == "" {
		c.Feed.SnapshotTopic = "vitals.snapshots"
	}
	if c.Feed.EventTopic == "" {
		c.Feed.EventTopic = "vitals.events"
	}
	if c.Feed.Compression == "" {
		c.Feed.Compression = "gzip"
	}
	if c.Feed.WriteTimeout == 0 {
		c.Feed.WriteTimeout = 10 * time.Second
	}

	s := &c.Simulation
	if s.TickInterval == 0 {
		s.TickInterval = 2 * time.Second
	}
	if s.ChartWindow == 0 {
		s.ChartWindow = 40
	}
	if s.TrendWindow == 0 {
		s.TrendWindow = 60
	}
	if s.CorrelationMinSamples == 0 {
		s.CorrelationMinSamples = 5
	}
	if s.SeedSamples == 0 {
		s.SeedSamples = 20
	}
	if s.EventLogCapacity == 0 {
		s.EventLogCapacity = 15
	}
	if s.Anomaly.FirstTriggerTick == 0 {
		s.Anomaly.FirstTriggerTick = 30
	}
	if s.Anomaly.RetriggerMin == 0 {
		s.Anomaly.RetriggerMin = 25
	}
	if s.Anomaly.RetriggerJitter == 0 {
		s.Anomaly.RetriggerJitter = 20
	}
	if s.Anomaly.EpisodeTicks == 0 {
		s.Anomaly.EpisodeTicks = 21
	}
	if s.Anomaly.RampTicks == 0 {
		s.Anomaly.RampTicks = 15
	}
	if len(s.Signals) == 0 {
		s.Signals = DefaultSignals()
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if c.Feed.Type != "none" && c.Feed.Type != "kafka" {
		return fmt.Errorf("feed.type must be 'none' or 'kafka', got '%s'", c.Feed.Type)
	}
	if c.Feed.Type == "kafka" && len(c.Feed.Brokers) == 0 {
		return fmt.Errorf("feed.brokers cannot be empty when feed.type is 'kafka'")
	}
	if len(c.Simulation.Signals) == 0 {
		return fmt.Errorf("simulation.signals cannot be empty")
	}
	seen := make(map[string]bool, len(c.Simulation.Signals))
	for _, sc := range c.Simulation.Signals {
		if sc.Name == "" {
			return fmt.Errorf("signal name is required")
		}
		if seen[sc.Name] {
			return fmt.Errorf("duplicate signal '%s'", sc.Name)
		}
		seen[sc.Name] = true
		if sc.Baseline <= 0 {
			// Baselines divide deviation terms; zero is a precondition violation.
			return fmt.Errorf("signal '%s': baseline must be strictly positive", sc.Name)
		}
		if sc.Min >= sc.Max {
			return fmt.Errorf("signal '%s': min must be below max", sc.Name)
		}
		if sc.Baseline < sc.Min || sc.Baseline > sc.Max {
			return fmt.Errorf("signal '%s': baseline outside [min, max]", sc.Name)
		}
		if sc.Variance < 0 {
			return fmt.Errorf("signal '%s': variance cannot be negative", sc.Name)
		}
	}
	return nil
}

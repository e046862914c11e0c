package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	errs "github.com/c360/seqstreams/errors"
	"github.com/c360/seqstreams/health"
	"github.com/c360/seqstreams/pkg/sequence"
	"github.com/c360/seqstreams/registry"
)

// Config represents the complete application configuration
type Config struct {
	Version   string          `json:"version" yaml:"version"` // Semantic version of the config layout
	Log       LogConfig       `json:"log" yaml:"log"`
	Metrics   MetricsConfig   `json:"metrics" yaml:"metrics"`
	Health    HealthConfig    `json:"health" yaml:"health"`
	Sequences SequenceConfigs `json:"sequences,omitempty" yaml:"sequences,omitempty"` // Seeded into the registry at startup
}

// LogConfig selects the slog handler
type LogConfig struct {
	Level  string `json:"level" yaml:"level"`   // debug, info, warn, error
	Format string `json:"format" yaml:"format"` // json, text
}

// MetricsConfig controls the Prometheus endpoint
type MetricsConfig struct {
	Enabled bool   `json:"enabled" yaml:"enabled"`
	Port    int    `json:"port" yaml:"port"`
	Path    string `json:"path" yaml:"path"`
}

// HealthConfig holds the failure rates at which a sequence counts as degraded
// or unhealthy. Zero disables a threshold.
type HealthConfig struct {
	DegradedRate  float64 `json:"degraded_rate" yaml:"degraded_rate"`
	UnhealthyRate float64 `json:"unhealthy_rate" yaml:"unhealthy_rate"`
}

// Thresholds converts the config into health thresholds
func (h HealthConfig) Thresholds() health.Thresholds {
	return health.Thresholds{Degraded: h.DegradedRate, Unhealthy: h.UnhealthyRate}
}

// SequenceConfig describes one named sequence created at startup
type SequenceConfig struct {
	Kind      string        `json:"kind" yaml:"kind"`             // array, list
	ValueType string        `json:"value_type" yaml:"value_type"` // int, double
	Items     []json.Number `json:"items,omitempty" yaml:"items,omitempty"`
}

// SequenceConfigs maps sequence names to their definition
type SequenceConfigs map[string]SequenceConfig

// Names returns the configured sequence names in sorted order
func (s SequenceConfigs) Names() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Resolve parses the textual fields of a sequence definition
func (s SequenceConfig) Resolve() (sequence.Kind, registry.ValueKind, []registry.Value, error) {
	kind, err := sequence.ParseKind(s.Kind)
	if err != nil {
		return 0, 0, nil, fmt.Errorf("kind: %w", err)
	}
	valueKind, err := registry.ParseValueKind(s.ValueType)
	if err != nil {
		return 0, 0, nil, fmt.Errorf("value_type: %w", err)
	}

	values := make([]registry.Value, 0, len(s.Items))
	for i, item := range s.Items {
		v, err := registry.ParseValue(valueKind, item.String())
		if err != nil {
			return 0, 0, nil, fmt.Errorf("items[%d]: %w", i, err)
		}
		values = append(values, v)
	}
	return kind, valueKind, values, nil
}

// SafeConfig provides thread-safe access to configuration
type SafeConfig struct {
	mu     sync.RWMutex
	config *Config
}

// NewSafeConfig creates a new thread-safe config wrapper
func NewSafeConfig(cfg *Config) *SafeConfig {
	if cfg == nil {
		cfg = Defaults()
	}
	return &SafeConfig{
		config: cfg,
	}
}

// Get returns a deep copy of the current configuration
func (sc *SafeConfig) Get() *Config {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.config.Clone()
}

// Update atomically updates the configuration after validation
func (sc *SafeConfig) Update(cfg *Config) error {
	if cfg == nil {
		return errors.New("config cannot be nil")
	}

	// Validate before updating
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.config = cfg
	return nil
}

// Defaults returns the built-in configuration every loader starts from
func Defaults() *Config {
	return &Config{
		Version: "1.0.0",
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Metrics: MetricsConfig{
			Enabled: false,
			Port:    9090,
			Path:    "/metrics",
		},
		Health: HealthConfig{
			DegradedRate:  health.DefaultThresholds().Degraded,
			UnhealthyRate: health.DefaultThresholds().Unhealthy,
		},
	}
}

// Clone creates a deep copy of the configuration
func (c *Config) Clone() *Config {
	if c == nil {
		return &Config{}
	}

	// Use JSON marshaling/unmarshaling for deep copy
	data, err := json.Marshal(c)
	if err != nil {
		copied := *c
		return &copied
	}

	var clone Config
	if err := json.Unmarshal(data, &clone); err != nil {
		copied := *c
		return &copied
	}

	return &clone
}

// Validate checks if the config is valid
func (c *Config) Validate() error {
	if c.Version != "" {
		if _, _, _, err := parseSemVer(c.Version); err != nil {
			return fmt.Errorf("%w: version: %v", errs.ErrInvalidConfig, err)
		}
	}

	// Normalize before checking
	c.Log.Level = strings.ToLower(c.Log.Level)
	c.Log.Format = strings.ToLower(c.Log.Format)

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: log.level %q (must be debug, info, warn or error)", errs.ErrInvalidConfig, c.Log.Level)
	}

	switch c.Log.Format {
	case "json", "text":
	default:
		return fmt.Errorf("%w: log.format %q (must be json or text)", errs.ErrInvalidConfig, c.Log.Format)
	}

	if c.Metrics.Enabled {
		if c.Metrics.Port <= 0 || c.Metrics.Port > 65535 {
			return fmt.Errorf("%w: metrics.port %d out of range", errs.ErrInvalidConfig, c.Metrics.Port)
		}
		if !strings.HasPrefix(c.Metrics.Path, "/") {
			return fmt.Errorf("%w: metrics.path %q must start with /", errs.ErrInvalidConfig, c.Metrics.Path)
		}
	}

	for key, rate := range map[string]float64{
		"health.degraded_rate":  c.Health.DegradedRate,
		"health.unhealthy_rate": c.Health.UnhealthyRate,
	} {
		if rate < 0 || rate > 1 {
			return fmt.Errorf("%w: %s %g must be between 0 and 1", errs.ErrInvalidConfig, key, rate)
		}
	}
	if c.Health.DegradedRate > 0 && c.Health.UnhealthyRate > 0 && c.Health.UnhealthyRate < c.Health.DegradedRate {
		return fmt.Errorf("%w: health.unhealthy_rate %g below health.degraded_rate %g",
			errs.ErrInvalidConfig, c.Health.UnhealthyRate, c.Health.DegradedRate)
	}

	for _, name := range c.Sequences.Names() {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("%w: sequence name cannot be empty", errs.ErrInvalidConfig)
		}
		if _, _, _, err := c.Sequences[name].Resolve(); err != nil {
			return fmt.Errorf("%w: sequences.%s.%v", errs.ErrInvalidConfig, name, err)
		}
	}

	return nil
}

// SaveToFile saves the configuration as JSON, or YAML for .yaml/.yml paths
func (c *Config) SaveToFile(path string) error {
	var (
		data []byte
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(c)
	default:
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return err
	}

	// Use secure file writing with validation
	return safeWriteFile(path, data)
}

// String returns a JSON representation of the config
func (c *Config) String() string {
	data, _ := json.MarshalIndent(c, "", "  ")
	return string(data)
}

// CompareVersions compares two semver version strings
// Returns:
//
//	-1 if v1 < v2
//	 0 if v1 == v2
//	 1 if v1 > v2
//	error if either version is invalid
func CompareVersions(v1, v2 string) (int, error) {
	a1, b1, c1, err := parseSemVer(v1)
	if err != nil {
		return 0, fmt.Errorf("invalid version '%s': %w", v1, err)
	}
	a2, b2, c2, err := parseSemVer(v2)
	if err != nil {
		return 0, fmt.Errorf("invalid version '%s': %w", v2, err)
	}

	for _, pair := range [][2]int{{a1, a2}, {b1, b2}, {c1, c2}} {
		switch {
		case pair[0] > pair[1]:
			return 1, nil
		case pair[0] < pair[1]:
			return -1, nil
		}
	}
	return 0, nil
}

// parseSemVer parses a semantic version string (e.g., "1.2.3")
func parseSemVer(version string) (int, int, int, error) {
	if version == "" {
		return 0, 0, 0, errors.New("version cannot be empty")
	}

	version = strings.TrimPrefix(version, "v")

	parts := strings.Split(version, ".")
	if len(parts) != 3 {
		return 0, 0, 0, fmt.Errorf("version must be in format 'major.minor.patch', got '%s'", version)
	}

	var nums [3]int
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil {
			return 0, 0, 0, fmt.Errorf("invalid version component '%s': %w", part, err)
		}
		nums[i] = n
	}

	return nums[0], nums[1], nums[2], nil
}

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/zonekit/zonekit/pkg/observability"
	"github.com/zonekit/zonekit/pkg/zones"
)

// Config holds the full pipeline configuration. It is loaded once and then
// threaded explicitly through every stage; nothing reads ambient globals.
type Config struct {
	// APIPrefix is informational: the prefix the host serves zone routes
	// under. It does not affect generation output paths.
	APIPrefix string `yaml:"api_prefix"`

	// RoutesFile is the route table snapshot exported by the host framework.
	RoutesFile string `yaml:"routes_file"`

	// Zones is the raw zone partition, validated by zones.Load.
	Zones map[string]*zones.Zone `yaml:"zones"`

	Output     OutputConfig                `yaml:"output"`
	Schema     SchemaConfig                `yaml:"schema"`
	Generators map[string]*GeneratorConfig `yaml:"generators"`
	Archive    ArchiveConfig               `yaml:"archive"`

	// GenerationTimeout, when set, overrides the per-task timeout of
	// every generation target.
	GenerationTimeout Duration `yaml:"generation_timeout"`

	// MaxWorkers bounds the generation worker pool. A value of 1 produces
	// identical results to any larger value, only slower.
	MaxWorkers int `yaml:"workers"`

	// AutoInstallDeps gates the opt-in dependency installation step. The
	// pipeline itself never installs anything.
	AutoInstallDeps bool `yaml:"auto_install_deps"`

	LogLevel        string `yaml:"log_level"`
	MetricsTextfile string `yaml:"metrics_textfile"`
}

// OutputConfig holds the output directory layout.
type OutputConfig struct {
	BaseDir    string `yaml:"base_dir"`
	SchemasDir string `yaml:"schemas_dir"`
	ClientsDir string `yaml:"clients_dir"`
	ArchiveDir string `yaml:"archive_dir"`
}

// SchemaConfig configures the external schema-extraction tool.
type SchemaConfig struct {
	// Command is the argv template. Placeholders: {routes} isolated route
	// table file, {output} schema output file, {zone} zone name,
	// {version} zone API version.
	Command []string `yaml:"command"`
	Timeout Duration `yaml:"timeout"`
}

// GeneratorConfig overrides a built-in language target or declares a
// custom one.
type GeneratorConfig struct {
	Enabled *bool    `yaml:"enabled"`
	Command []string `yaml:"command"`
	Timeout Duration `yaml:"timeout"`
}

// Duration is a time.Duration that unmarshals from YAML strings like "90s"
// as well as integer nanoseconds.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err == nil {
		parsed, err := time.ParseDuration(s)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", s, err)
		}
		*d = Duration(parsed)
		return nil
	}

	var n int64
	if err := value.Decode(&n); err == nil {
		*d = Duration(n)
		return nil
	}

	return fmt.Errorf("invalid duration value")
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// ArchiveConfig configures the archive stage.
type ArchiveConfig struct {
	Enabled  bool `yaml:"enabled"`
	KeepDays int  `yaml:"keep_days"`
}

// DefaultConfig returns the configuration defaults applied before the
// project file and environment overrides.
func DefaultConfig() *Config {
	return &Config{
		APIPrefix:  "apix",
		RoutesFile: "routes.yaml",
		Output: OutputConfig{
			BaseDir:    "openapi",
			SchemasDir: "schemas",
			ClientsDir: "clients",
			ArchiveDir: "archive",
		},
		Schema: SchemaConfig{
			Command: []string{
				"openapi-export",
				"--routes", "{routes}",
				"--output", "{output}",
				"--api-version", "{version}",
			},
			Timeout: Duration(60 * time.Second),
		},
		Archive: ArchiveConfig{
			Enabled:  true,
			KeepDays: 30,
		},
		MaxWorkers:      4,
		AutoInstallDeps: true,
		LogLevel:        "info",
	}
}

// Load reads the project file at path (when non-empty), applies ZONEKIT_*
// environment overrides on top of the defaults and validates the result.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// applyEnv layers environment variable overrides onto the config.
func (c *Config) applyEnv() {
	if v := getEnv("ZONEKIT_OUTPUT_DIR", ""); v != "" {
		c.Output.BaseDir = v
	}
	if v := getEnvInt("ZONEKIT_MAX_WORKERS", 0); v > 0 {
		c.MaxWorkers = v
	}
	if v, ok := getEnvBool("ZONEKIT_AUTO_INSTALL_DEPS"); ok {
		c.AutoInstallDeps = v
	}
	if v := getEnv("ZONEKIT_LOG_LEVEL", ""); v != "" {
		c.LogLevel = v
	}
	if v := getEnvDuration("ZONEKIT_SCHEMA_TIMEOUT", 0); v > 0 {
		c.Schema.Timeout = Duration(v)
	}
	if v := getEnvDuration("ZONEKIT_GENERATION_TIMEOUT", 0); v > 0 {
		c.GenerationTimeout = Duration(v)
	}
	if v := getEnv("ZONEKIT_METRICS_TEXTFILE", ""); v != "" {
		c.MetricsTextfile = v
	}
}

// Validate checks if the configuration is usable.
func (c *Config) Validate() error {
	if c.Output.BaseDir == "" {
		return fmt.Errorf("output base directory is required")
	}
	if len(c.Schema.Command) == 0 {
		return fmt.Errorf("schema tool command is required")
	}
	if c.MaxWorkers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.MaxWorkers)
	}
	if c.Archive.KeepDays < 0 {
		return fmt.Errorf("archive keep_days cannot be negative")
	}
	return nil
}

// ParsedLogLevel returns the configured log level.
func (c *Config) ParsedLogLevel() observability.LogLevel {
	return observability.ParseLogLevel(c.LogLevel)
}

// SchemasPath returns the schemas directory under the output root.
func (c *Config) SchemasPath() string {
	return filepath.Join(c.Output.BaseDir, c.Output.SchemasDir)
}

// ClientsPath returns the clients directory under the output root.
func (c *Config) ClientsPath() string {
	return filepath.Join(c.Output.BaseDir, c.Output.ClientsDir)
}

// ArchivePath returns the archive directory under the output root.
func (c *Config) ArchivePath() string {
	return filepath.Join(c.Output.BaseDir, c.Output.ArchiveDir)
}

// getEnv returns an environment variable value or a default
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt returns an integer environment variable or a default
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// getEnvBool returns a boolean environment variable and whether it was set
func getEnvBool(key string) (bool, bool) {
	value := os.Getenv(key)
	if value == "" {
		return false, false
	}
	return strings.ToLower(value) == "true" || value == "1", true
}

// getEnvDuration returns a duration environment variable or a default
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration
type Config struct {
	Server    ServerConfig    `yaml:"server" envconfig:"SERVER"`
	Security  SecurityConfig  `yaml:"security" envconfig:"SECURITY"`
	Logging   LoggingConfig   `yaml:"logging" envconfig:"LOGGING"`
	Paths     PathsConfig     `yaml:"paths" envconfig:"PATHS"`
	Chart     ChartConfig     `yaml:"chart" envconfig:"CHART"`
	Telemetry TelemetryConfig `yaml:"telemetry" envconfig:"TELEMETRY"`
	Sources   []SourceConfig  `yaml:"sources" ignored:"true" validate:"required,min=1,unique=Name,dive"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Host            string        `yaml:"host" envconfig:"HOST"`
	Port            int           `yaml:"port" envconfig:"PORT" validate:"min=1,max=65535"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"READ_TIMEOUT" validate:"gt=0"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT" validate:"gt=0"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT" validate:"gt=0"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT" validate:"gt=0"`
}

// SecurityConfig contains security-related configuration
type SecurityConfig struct {
	RateLimit RateLimitConfig `yaml:"rate_limit" envconfig:"RATE_LIMIT"`
}

// RateLimitConfig contains rate limiting configuration
type RateLimitConfig struct {
	Enabled bool    `yaml:"enabled" envconfig:"ENABLED"`
	RPS     float64 `yaml:"rps" envconfig:"RPS" validate:"gte=0"`
	Burst   int     `yaml:"burst" envconfig:"BURST" validate:"gte=0"`
}

// LoggingConfig contains logging configuration. A relative FilePath lives in
// paths.logs_dir.
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn warning error"`
	Format   string `yaml:"format" envconfig:"FORMAT" validate:"oneof=json text"`
	Output   string `yaml:"output" envconfig:"OUTPUT" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH"`
}

// PathsConfig contains file system paths configuration
type PathsConfig struct {
	BaseDir    string `yaml:"base_dir" envconfig:"BASE_DIR"`
	DataDir    string `yaml:"data_dir" envconfig:"DATA_DIR" validate:"required"`
	ReportsDir string `yaml:"reports_dir" envconfig:"REPORTS_DIR" validate:"required"`
	LogsDir    string `yaml:"logs_dir" envconfig:"LOGS_DIR" validate:"required"`
}

// ChartConfig controls how the comparison chart is presented
type ChartConfig struct {
	Title               string   `yaml:"title" envconfig:"TITLE" validate:"required"`
	MarkerScale         float64  `yaml:"marker_scale" envconfig:"MARKER_SCALE" validate:"gt=0"`
	NeighborhoodAliases []string `yaml:"neighborhood_aliases" envconfig:"NEIGHBORHOOD_ALIASES"`
}

// TelemetryConfig toggles tracing and metrics
type TelemetryConfig struct {
	EnableTracing bool    `yaml:"enable_tracing" envconfig:"ENABLE_TRACING"`
	EnableMetrics bool    `yaml:"enable_metrics" envconfig:"ENABLE_METRICS"`
	TraceExporter string  `yaml:"trace_exporter" envconfig:"TRACE_EXPORTER" validate:"oneof=stdout none"`
	SampleRatio   float64 `yaml:"sample_ratio" envconfig:"SAMPLE_RATIO" validate:"gte=0,lte=1"`
	Environment   string  `yaml:"environment" envconfig:"ENVIRONMENT"`
}

// SourceConfig describes one candidate's vote table: where it lives, which
// columns hold the neighborhood and the raw vote count, and how the
// candidate is displayed. An empty NeighborhoodColumn falls back to
// chart.neighborhood_aliases.
type SourceConfig struct {
	Name               string `yaml:"name" validate:"required,excludes=0x2C"`
	Path               string `yaml:"path" validate:"required"`
	NeighborhoodColumn string `yaml:"neighborhood_column,omitempty"`
	VotesColumn        string `yaml:"votes_column" validate:"required"`
	Color              string `yaml:"color" validate:"required"`
	Sheet              string `yaml:"sheet,omitempty"`
	Delimiter          string `yaml:"delimiter,omitempty" validate:"omitempty,len=1"`
}

// Load builds the configuration from defaults, then the YAML config file if
// one is found, then environment variables prefixed with VOTES_.
func Load() (*Config, error) {
	return LoadFile(getConfigFilePath())
}

// LoadFile is like Load but reads the given YAML file instead of searching
// for one. An empty path skips the file layer.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := loadFromFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config from file %s: %w", path, err)
		}
	}

	// Fields without a matching environment variable keep their current value
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// loadFromFile overlays YAML file values on cfg. Lists such as sources
// replace the defaults rather than merging element by element.
func loadFromFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}

	return yaml.Unmarshal(data, cfg)
}

// Validate checks struct constraints
func (c *Config) Validate() error {
	return validator.New().Struct(c)
}

// getConfigFilePath returns the path to the config file
func getConfigFilePath() string {
	if path := os.Getenv(EnvPrefix + "_CONFIG_FILE"); path != "" {
		return path
	}

	locations := []string{
		"config.yaml",
		"configs/config.yaml",
		"../configs/config.yaml",
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}

	return "" // No config file found, use env vars only
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "127.0.0.1",
			Port:            DefaultPort,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 30 * time.Second,
		},
		Security: SecurityConfig{
			RateLimit: RateLimitConfig{
				Enabled: true,
				RPS:     DefaultRateLimit,
				Burst:   DefaultBurstSize,
			},
		},
		Logging: LoggingConfig{
			Level:    DefaultLogLevel,
			Format:   DefaultLogFormat,
			Output:   "console",
			FilePath: "app.log",
		},
		Paths: PathsConfig{
			DataDir:    DefaultDataDir,
			ReportsDir: DefaultReportsDir,
			LogsDir:    DefaultLogsDir,
		},
		Chart: ChartConfig{
			Title:               DefaultChartTitle,
			MarkerScale:         DefaultMarkerScale,
			NeighborhoodAliases: []string{"BAIRRO", "Bairro", "bairro"},
		},
		Telemetry: TelemetryConfig{
			EnableTracing: false,
			EnableMetrics: true,
			TraceExporter: "none",
			SampleRatio:   1.0,
			Environment:   "development",
		},
		Sources: DefaultSources(),
	}
}

// DefaultSources returns the three sources of the 2024 first-round comparison
func DefaultSources() []SourceConfig {
	return []SourceConfig{
		{
			Name:               "Pedro Porto",
			Path:               "Relatório_de_votos_com_coordenadas.csv",
			NeighborhoodColumn: "BAIRRO",
			VotesColumn:        "PEDRO PORTO 2024 1T",
			Color:              "green",
		},
		{
			Name:               "Martha Rocha",
			Path:               "martha_rocha_com_coordenadas.csv",
			NeighborhoodColumn: "Bairro",
			VotesColumn:        "Votos Absolutos",
			Color:              "blue",
		},
		{
			Name:               "Ciro Gomes",
			Path:               "ciro_com_coordenadas.csv",
			NeighborhoodColumn: "Bairro",
			VotesColumn:        "Votos Absolutos",
			Color:              "yellow",
		},
	}
}

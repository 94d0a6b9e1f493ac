package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Default values for the catalog configuration.
const (
	DefaultResource = "brickset.json"
	DefaultGzip     = GzipAuto
	DefaultHTTPPort = 8080
	DefaultLogLevel = "info"
	DefaultS3Region = "us-east-1"
)

// Gzip modes for DatasetConfig.Gzip.
const (
	GzipAuto  = "auto"
	GzipTrue  = "true"
	GzipFalse = "false"
)

// Config is the top-level configuration file.
type Config struct {
	Catalog CatalogConfig `yaml:"catalog"`
}

// CatalogConfig holds all catalog settings.
type CatalogConfig struct {
	// Dataset selects and decodes the record resource.
	Dataset DatasetConfig `yaml:"dataset"`

	// HTTP configures the read API started with -serve.
	HTTP HTTPConfig `yaml:"http"`

	// Log configures the default slog logger.
	Log LogConfig `yaml:"log"`
}

// DatasetConfig describes where the catalog records come from.
type DatasetConfig struct {
	// Resource is "brickset.json" for the bundled dataset, a local file path,
	// an http(s):// URL or an s3://bucket/key URL.
	Resource string `yaml:"resource"`

	// Gzip is one of: auto | true | false. In auto mode the stream is
	// decompressed when the name ends in .gz or it starts with gzip magic.
	Gzip string `yaml:"gzip"`

	// Watch reloads the dataset when the backing file changes.
	// Resource must then be an existing local file.
	Watch bool `yaml:"watch"`

	// S3 is used when Resource is an s3:// URL.
	S3 S3Config `yaml:"s3"`
}

// S3Config holds S3 client settings. Credentials come from the AWS default
// credential chain (environment, shared config, instance role).
type S3Config struct {
	// Region defaults to us-east-1.
	Region string `yaml:"region"`

	// Endpoint overrides the service endpoint (e.g. a MinIO URL).
	Endpoint string `yaml:"endpoint"`

	// PathStyle forces path-style addressing, required by most MinIO setups.
	PathStyle bool `yaml:"path_style"`
}

// HTTPConfig configures the read API listener.
type HTTPConfig struct {
	// Port is the port the API and /metrics listen on (default 8080).
	Port int `yaml:"port"`
}

// LogConfig configures logging.
type LogConfig struct {
	// Level is one of: debug | info | warn | error.
	Level string `yaml:"level"`
}

// SlogLevel returns the slog level for the configured level name.
// Unknown names map to info; validate rejects them before this is reached.
func (l LogConfig) SlogLevel() slog.Level {
	switch strings.ToLower(l.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// IsS3 reports whether the resource names an S3 object.
func (d DatasetConfig) IsS3() bool {
	return strings.HasPrefix(d.Resource, "s3://")
}

// IsHTTP reports whether the resource is an http:// or https:// URL.
func (d DatasetConfig) IsHTTP() bool {
	return strings.HasPrefix(d.Resource, "http://") || strings.HasPrefix(d.Resource, "https://")
}

// Load reads and parses the config file at path.
// Missing fields are filled with defaults before validation.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog config: read %q: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("catalog config: parse yaml: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("catalog config: %w", err)
	}

	return cfg, nil
}

// Default returns a Config pre-populated with default values.
func Default() *Config {
	return &Config{
		Catalog: CatalogConfig{
			Dataset: DatasetConfig{
				Resource: DefaultResource,
				Gzip:     DefaultGzip,
				S3: S3Config{
					Region: DefaultS3Region,
				},
			},
			HTTP: HTTPConfig{Port: DefaultHTTPPort},
			Log:  LogConfig{Level: DefaultLogLevel},
		},
	}
}

// validate checks structural constraints on the parsed configuration.
func validate(cfg *Config) error {
	c := cfg.Catalog
	if c.Dataset.Resource == "" {
		return fmt.Errorf("catalog.dataset.resource is required")
	}
	switch c.Dataset.Gzip {
	case GzipAuto, GzipTrue, GzipFalse:
	default:
		return fmt.Errorf("catalog.dataset.gzip %q unknown: want auto|true|false", c.Dataset.Gzip)
	}
	if c.Dataset.Watch {
		if c.Dataset.IsS3() || c.Dataset.IsHTTP() {
			return fmt.Errorf("catalog.dataset.watch is only supported for file resources")
		}
		// The bundled dataset is resolved only when no such file exists,
		// so a missing path here would be watched as an embedded copy.
		if st, err := os.Stat(c.Dataset.Resource); err != nil || !st.Mode().IsRegular() {
			return fmt.Errorf("catalog.dataset.watch requires an existing local file, %q is not one", c.Dataset.Resource)
		}
	}
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("catalog.http.port %d is out of range [1, 65535]", c.HTTP.Port)
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("catalog.log.level %q unknown: want debug|info|warn|error", c.Log.Level)
	}
	return nil
}

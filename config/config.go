package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	ServerPort         string `yaml:"server_port"`
	LogLevel           string `yaml:"log_level"`
	MaxMultipartMemory int64  `yaml:"max_multipart_memory"`

	// MatchPolicy is "anywhere" or "prefix".
	MatchPolicy string `yaml:"match_policy"`
	// DefaultMode is used when a request does not name one.
	DefaultMode string `yaml:"default_mode"`
	ArchiveName string `yaml:"archive_name"`

	ValidatePDF  bool `yaml:"validate_pdf"`
	TextFallback bool `yaml:"text_fallback"`

	Output OutputConfig `yaml:"output"`
}

// OutputConfig selects where directory mode writes renamed files.
type OutputConfig struct {
	Sink string   `yaml:"sink"` // "local" or "s3"
	Dir  string   `yaml:"dir"`
	S3   S3Config `yaml:"s3"`
}

type S3Config struct {
	Endpoint  string `yaml:"endpoint"`
	Region    string `yaml:"region"`
	Bucket    string `yaml:"bucket"`
	Prefix    string `yaml:"prefix"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	UseSSL    bool   `yaml:"use_ssl"`
}

func defaults() *Config {
	return &Config{
		ServerPort:         "8080",
		LogLevel:           "info",
		MaxMultipartMemory: 32 << 20, // 32 MB
		MatchPolicy:        "anywhere",
		DefaultMode:        "archive",
		ArchiveName:        "renamed_files.zip",
		Output: OutputConfig{
			Sink: "local",
			Dir:  "./renamed",
		},
	}
}

// LoadConfig builds the configuration from defaults, the optional YAML file
// named by CONFIG_FILE, and finally environment variables.
func LoadConfig() (*Config, error) {
	cfg := defaults()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	cfg.applyEnv()

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	rawBytes, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	// ${VAR} references are expanded before parsing
	content := os.ExpandEnv(string(rawBytes))
	if err := yaml.Unmarshal([]byte(content), c); err != nil {
		return fmt.Errorf("failed to parse yaml: %w", err)
	}
	return nil
}

func (c *Config) applyEnv() {
	c.ServerPort = envOr("SERVER_PORT", c.ServerPort)
	c.LogLevel = envOr("LOG_LEVEL", c.LogLevel)
	c.MaxMultipartMemory = envInt64("MAX_MULTIPART_MEMORY", c.MaxMultipartMemory)

	c.MatchPolicy = envOr("MATCH_POLICY", c.MatchPolicy)
	c.DefaultMode = envOr("DEFAULT_MODE", c.DefaultMode)
	c.ArchiveName = envOr("ARCHIVE_NAME", c.ArchiveName)
	c.ValidatePDF = envBool("VALIDATE_PDF", c.ValidatePDF)
	c.TextFallback = envBool("TEXT_FALLBACK", c.TextFallback)

	c.Output.Sink = envOr("OUTPUT_SINK", c.Output.Sink)
	c.Output.Dir = envOr("OUTPUT_DIR", c.Output.Dir)
	c.Output.S3.Endpoint = envOr("S3_ENDPOINT", c.Output.S3.Endpoint)
	c.Output.S3.Region = envOr("S3_REGION", c.Output.S3.Region)
	c.Output.S3.Bucket = envOr("S3_BUCKET", c.Output.S3.Bucket)
	c.Output.S3.Prefix = envOr("S3_PREFIX", c.Output.S3.Prefix)
	c.Output.S3.AccessKey = envOr("S3_ACCESS_KEY", c.Output.S3.AccessKey)
	c.Output.S3.SecretKey = envOr("S3_SECRET_KEY", c.Output.S3.SecretKey)
	c.Output.S3.UseSSL = envBool("S3_USE_SSL", c.Output.S3.UseSSL)
}

func (c *Config) validate() error {
	switch c.MatchPolicy {
	case "anywhere", "prefix":
	default:
		return fmt.Errorf("match_policy must be anywhere or prefix, got %q", c.MatchPolicy)
	}
	switch c.DefaultMode {
	case "archive", "directory", "plan":
	default:
		return fmt.Errorf("default_mode must be archive, directory or plan, got %q", c.DefaultMode)
	}
	if !strings.HasSuffix(strings.ToLower(c.ArchiveName), ".zip") {
		return fmt.Errorf("archive_name must end in .zip, got %q", c.ArchiveName)
	}
	switch c.Output.Sink {
	case "local":
		if c.Output.Dir == "" {
			return fmt.Errorf("output.dir is required for the local sink")
		}
	case "s3":
		if c.Output.S3.Endpoint == "" {
			return fmt.Errorf("output.s3.endpoint is required")
		}
		if c.Output.S3.Bucket == "" {
			return fmt.Errorf("output.s3.bucket is required")
		}
	default:
		return fmt.Errorf("output.sink must be local or s3, got %q", c.Output.Sink)
	}
	if c.MaxMultipartMemory <= 0 {
		return fmt.Errorf("max_multipart_memory must be positive")
	}
	return nil
}

func envOr(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func envInt64(key string, fallback int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return fallback
	}
	return n
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

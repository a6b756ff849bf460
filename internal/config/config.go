package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the intentd configuration, shared by the trainer and the
// serving binary.
type Config struct {
	Service   ServiceConfig   `yaml:"service"`
	HTTP      HTTPConfig      `yaml:"http"`
	Artifacts ArtifactsConfig `yaml:"artifacts"`
	Chat      ChatConfig      `yaml:"chat"`
	Training  TrainingConfig  `yaml:"training"`
	CORS      CORSConfig      `yaml:"cors"`
	Auth      AuthConfig      `yaml:"auth"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// ServiceConfig identifies the service.
type ServiceConfig struct {
	Name string `yaml:"name"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// ArtifactsConfig holds artifact store settings. The trainer writes through
// the same store the service reads from.
type ArtifactsConfig struct {
	Driver           string   `yaml:"driver"` // file, redis (default: file)
	ModelDir         string   `yaml:"model_dir"`
	Addrs            []string `yaml:"addrs"`
	Password         string   `yaml:"password"`
	KeyPrefix        string   `yaml:"key_prefix"`
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
}

// ChatConfig holds the classification policy.
type ChatConfig struct {
	ConfidenceThreshold   float64 `yaml:"confidence_threshold"`
	MaxMessageLen         int     `yaml:"max_message_len"`
	LowConfidenceResponse string  `yaml:"low_confidence_response"`
	NoAnswerResponse      string  `yaml:"no_answer_response"`
}

// TrainingConfig holds trainer settings.
type TrainingConfig struct {
	IntentsPath string  `yaml:"intents_path"`
	TestSize    float64 `yaml:"test_size"`
	Seed        int64   `yaml:"seed"`
}

// CORSConfig holds CORS settings for browser frontends.
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// AuthConfig holds API authentication settings. Empty api_keys disables auth.
type AuthConfig struct {
	APIKeys []string `yaml:"api_keys"`
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	// Substitute env variables of the form ${VAR}
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics.
func MustLoad(env string) Config {
	cfg, err := Load(env)
	if err != nil {
		panic(err)
	}
	return cfg
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.Service.Name == "" {
		c.Service.Name = "intentd"
	}
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 10
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Artifacts.Driver == "" {
		c.Artifacts.Driver = "file"
	}
	if c.Artifacts.ModelDir == "" {
		c.Artifacts.ModelDir = "model"
	}
	if c.Artifacts.KeyPrefix == "" {
		c.Artifacts.KeyPrefix = "intentd:artifact:"
	}
	if c.Artifacts.ReadinessTimeout <= 0 {
		c.Artifacts.ReadinessTimeout = 10
	}
	if c.Chat.ConfidenceThreshold <= 0 {
		c.Chat.ConfidenceThreshold = 0.15
	}
	if c.Chat.MaxMessageLen <= 0 {
		c.Chat.MaxMessageLen = 500
	}
	if c.Training.IntentsPath == "" {
		c.Training.IntentsPath = filepath.Join("data", "intents.json")
	}
	if c.Training.TestSize <= 0 || c.Training.TestSize >= 1 {
		c.Training.TestSize = 0.2
	}
	if c.Training.Seed == 0 {
		c.Training.Seed = 42
	}
	if len(c.CORS.AllowedOrigins) == 0 {
		c.CORS.AllowedOrigins = []string{"*"}
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	switch c.Artifacts.Driver {
	case "file":
		if c.Artifacts.ModelDir == "" {
			return fmt.Errorf("artifacts.model_dir is required for the file driver")
		}
	case "redis":
		if len(c.Artifacts.Addrs) == 0 {
			return fmt.Errorf("artifacts.addrs is required for the redis driver")
		}
	default:
		return fmt.Errorf("artifacts.driver must be \"file\" or \"redis\", got %q", c.Artifacts.Driver)
	}
	if c.Chat.ConfidenceThreshold >= 1 {
		return fmt.Errorf("chat.confidence_threshold must be below 1, got %v", c.Chat.ConfidenceThreshold)
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}

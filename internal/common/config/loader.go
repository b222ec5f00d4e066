// internal/common/config/loader.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	ProviderHTTP   = "http"
	ProviderGemini = "gemini"

	DriverRedis  = "redis"
	DriverMemory = "memory"
)

// Load reads configs/config.yaml, merges config.<APP_ENVIRONMENT>.yaml over it and applies env overrides.
func Load() (*Config, error) {
	loadEnvFile()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath("../../configs")
	v.AddConfigPath(".")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	env := os.Getenv("APP_ENVIRONMENT")
	if env == "" {
		env = "development"
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading base config: %w", err)
		}
	}

	v.SetConfigName(fmt.Sprintf("config.%s", env))
	_ = v.MergeInConfig() // environment overlay is optional

	return finish(v)
}

// LoadFromFile loads configuration from a specific file path.
func LoadFromFile(path string) (*Config, error) {
	loadEnvFile()

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return finish(v)
}

func finish(v *viper.Viper) (*Config, error) {
	expandEnvVars(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)
	overrideEmptyConfig(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func loadEnvFile() {
	possiblePaths := []string{".env", "../.env", "../../.env"}
	if rootDir := findProjectRoot(); rootDir != "" {
		possiblePaths = append(possiblePaths, filepath.Join(rootDir, ".env"))
	}

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return
			}
		}
	}
}

// findProjectRoot walks up from the working directory looking for go.mod.
func findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// expandEnvVars resolves ${VAR} placeholders in string values.
func expandEnvVars(v *viper.Viper) {
	for _, key := range v.AllKeys() {
		strVal, ok := v.Get(key).(string)
		if !ok || !strings.Contains(strVal, "$") {
			continue
		}
		if expanded := os.ExpandEnv(strVal); expanded != strVal {
			v.Set(key, expanded)
		}
	}
}

func overrideEmptyConfig(cfg *Config) {
	if cfg.APIs.GenAI.APIKey == "" {
		cfg.APIs.GenAI.APIKey = os.Getenv("GENAI_API_KEY")
	}
	if cfg.APIs.Renderer.BaseURL == "" {
		cfg.APIs.Renderer.BaseURL = os.Getenv("RENDERER_BASE_URL")
	}
	if cfg.Database.Redis.Password == "" {
		cfg.Database.Redis.Password = os.Getenv("REDIS_PASSWORD")
	}
}

func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "transit-report"
	}

	if cfg.Camunda.MaxJobsActive == 0 {
		cfg.Camunda.MaxJobsActive = 10
	}
	if cfg.Camunda.Timeout == 0 {
		cfg.Camunda.Timeout = 30000
	}
	if cfg.Camunda.RequestTimeout == 0 {
		cfg.Camunda.RequestTimeout = 30000
	}

	for key, worker := range cfg.Workers {
		if worker.MaxJobsActive == 0 {
			worker.MaxJobsActive = 5
		}
		if worker.Timeout == 0 {
			worker.Timeout = 120000
		}
		cfg.Workers[key] = worker
	}

	if cfg.APIs.GenAI.Provider == "" {
		cfg.APIs.GenAI.Provider = ProviderHTTP
	}
	if cfg.APIs.GenAI.GeneratePath == "" {
		cfg.APIs.GenAI.GeneratePath = "/api/ai/generate"
	}
	if cfg.APIs.GenAI.Model == "" {
		cfg.APIs.GenAI.Model = "gemini-2.0-flash"
	}
	if cfg.APIs.GenAI.Timeout == 0 {
		cfg.APIs.GenAI.Timeout = 30000
	}

	if cfg.APIs.Renderer.ShapeUpdatePath == "" {
		cfg.APIs.Renderer.ShapeUpdatePath = "/update-shape"
	}
	if cfg.APIs.Renderer.ImageUpdatePath == "" {
		cfg.APIs.Renderer.ImageUpdatePath = "/update-image"
	}
	if cfg.APIs.Renderer.Timeout == 0 {
		cfg.APIs.Renderer.Timeout = 30000
	}

	if cfg.Layout.InsetMargin == 0 {
		cfg.Layout.InsetMargin = 10
	}
	if cfg.Layout.UnitsPerPoint == 0 {
		cfg.Layout.UnitsPerPoint = 12700
	}
	if cfg.Layout.LineSpacing == 0 {
		cfg.Layout.LineSpacing = 1.2
	}

	if cfg.JobStore.Driver == "" {
		cfg.JobStore.Driver = DriverMemory
	}
	if cfg.JobStore.TTL == 0 {
		cfg.JobStore.TTL = 86400
	}
	if cfg.JobStore.KeyPrefix == "" {
		cfg.JobStore.KeyPrefix = "report:plan:"
	}

	if cfg.HTTP.Address == "" {
		cfg.HTTP.Address = ":8080"
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}

	if cfg.Observability.ServiceName == "" {
		cfg.Observability.ServiceName = cfg.App.Name
	}
}

func validateConfig(cfg *Config) error {
	if cfg.Catalog.ShapesPath == "" {
		return fmt.Errorf("catalog.shapes_path is required")
	}
	if cfg.Catalog.HeuristicPath == "" {
		return fmt.Errorf("catalog.heuristic_path is required")
	}

	if cfg.APIs.Renderer.BaseURL == "" {
		return fmt.Errorf("apis.renderer.base_url is required")
	}

	switch cfg.APIs.GenAI.Provider {
	case ProviderHTTP:
		if cfg.APIs.GenAI.BaseURL == "" {
			return fmt.Errorf("apis.genai.base_url is required for provider %q", ProviderHTTP)
		}
	case ProviderGemini:
		if cfg.APIs.GenAI.APIKey == "" {
			return fmt.Errorf("apis.genai.api_key is required for provider %q", ProviderGemini)
		}
	default:
		return fmt.Errorf("apis.genai.provider must be %q or %q, got %q", ProviderHTTP, ProviderGemini, cfg.APIs.GenAI.Provider)
	}

	switch cfg.JobStore.Driver {
	case DriverMemory:
	case DriverRedis:
		if cfg.Database.Redis.Address == "" {
			return fmt.Errorf("database.redis.address is required for job_store.driver %q", DriverRedis)
		}
	default:
		return fmt.Errorf("job_store.driver must be %q or %q, got %q", DriverRedis, DriverMemory, cfg.JobStore.Driver)
	}

	if cfg.Planner.MaxConcurrency < 0 {
		return fmt.Errorf("planner.max_concurrency must be >= 0")
	}

	return nil
}

// GetDuration converts milliseconds from config to time.Duration.
func GetDuration(milliseconds int) time.Duration {
	return time.Duration(milliseconds) * time.Millisecond
}

// GetWorkerConfig retrieves worker-specific configuration with fallback to defaults.
func GetWorkerConfig(cfg *Config, workerName string) WorkerConfig {
	if worker, exists := cfg.Workers[workerName]; exists {
		return worker
	}
	return WorkerConfig{
		Enabled:       true,
		MaxJobsActive: 5,
		Timeout:       120000,
	}
}

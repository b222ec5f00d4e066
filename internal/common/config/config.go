// internal/common/config/config.go
package config

// Config is the main application configuration struct.
type Config struct {
	App           AppConfig               `mapstructure:"app"`
	Camunda       CamundaConfig           `mapstructure:"camunda"`
	Workers       map[string]WorkerConfig `mapstructure:"workers"`
	Catalog       CatalogConfig           `mapstructure:"catalog"`
	APIs          APIsConfig              `mapstructure:"apis"`
	Planner       PlannerConfig           `mapstructure:"planner"`
	Layout        LayoutConfig            `mapstructure:"layout"`
	JobStore      JobStoreConfig          `mapstructure:"job_store"`
	Database      DatabaseConfig          `mapstructure:"database"`
	HTTP          HTTPConfig              `mapstructure:"http"`
	Logging       LoggingConfig           `mapstructure:"logging"`
	Observability ObservabilityConfig     `mapstructure:"observability"`
}

// --- Core App/Infrastructure Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type CamundaConfig struct {
	BrokerAddress  string `mapstructure:"broker_address"`
	MaxJobsActive  int    `mapstructure:"max_jobs_active"`
	Timeout        int    `mapstructure:"timeout"`         // milliseconds
	RequestTimeout int    `mapstructure:"request_timeout"` // milliseconds
}

// WorkerConfig holds the core settings applicable to every worker.
type WorkerConfig struct {
	Enabled       bool `mapstructure:"enabled"`
	MaxJobsActive int  `mapstructure:"max_jobs_active"`
	Timeout       int  `mapstructure:"timeout"` // milliseconds
}

// CatalogConfig points at the two static template catalogs.
type CatalogConfig struct {
	ShapesPath    string `mapstructure:"shapes_path"`
	HeuristicPath string `mapstructure:"heuristic_path"`
}

// --- External services ---

type APIsConfig struct {
	GenAI    GenAIConfig    `mapstructure:"genai"`
	Renderer RendererConfig `mapstructure:"renderer"`
}

// GenAIConfig selects and configures the text-generation backend.
type GenAIConfig struct {
	Provider     string `mapstructure:"provider"` // http | gemini
	BaseURL      string `mapstructure:"base_url"`
	GeneratePath string `mapstructure:"generate_path"`
	APIKey       string `mapstructure:"api_key"`
	Model        string `mapstructure:"model"`
	Timeout      int    `mapstructure:"timeout"` // milliseconds
}

// RendererConfig addresses the presentation mutation service.
type RendererConfig struct {
	BaseURL         string `mapstructure:"base_url"`
	ShapeUpdatePath string `mapstructure:"shape_update_path"`
	ImageUpdatePath string `mapstructure:"image_update_path"`
	Timeout         int    `mapstructure:"timeout"` // milliseconds
}

// --- Pipeline ---

type PlannerConfig struct {
	MaxConcurrency int `mapstructure:"max_concurrency"` // 0 = unbounded
}

type LayoutConfig struct {
	InsetMargin   float64 `mapstructure:"inset_margin"`
	UnitsPerPoint float64 `mapstructure:"units_per_point"`
	FontPath      string  `mapstructure:"font_path"`
	LineSpacing   float64 `mapstructure:"line_spacing"`
}

type JobStoreConfig struct {
	Driver    string `mapstructure:"driver"` // redis | memory
	TTL       int    `mapstructure:"ttl"`    // seconds
	KeyPrefix string `mapstructure:"key_prefix"`
}

type DatabaseConfig struct {
	Redis RedisConfig `mapstructure:"redis"`
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type HTTPConfig struct {
	Address        string   `mapstructure:"address"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type ObservabilityConfig struct {
	OTLPEndpoint string `mapstructure:"otlp_endpoint"`
	ServiceName  string `mapstructure:"service_name"`
}

package config

import (
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	LLM       LLMConfig       `mapstructure:"llm"`
	Dataset   DatasetConfig   `mapstructure:"dataset"`
	Paper     PaperConfig     `mapstructure:"paper"`
	Storage   StorageConfig   `mapstructure:"storage"`
	Tracing   TracingConfig   `mapstructure:"tracing"`
	CORS      CORSConfig      `mapstructure:"cors"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
}

type ServerConfig struct {
	Port string
	Mode string
}

type DatabaseConfig struct {
	Host      string
	Port      int
	User      string
	Password  string
	DBName    string
	Charset   string
	ParseTime bool
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// LLMConfig 大模型网关配置：Groq 为主，OpenRouter 为备用
type LLMConfig struct {
	GroqAPIKey        string        `mapstructure:"groq_api_key"`
	GroqBaseURL       string        `mapstructure:"groq_base_url"`
	OpenRouterAPIKey  string        `mapstructure:"openrouter_api_key"`
	OpenRouterBaseURL string        `mapstructure:"openrouter_base_url"`
	ModelPrimary      string        `mapstructure:"model_primary"`
	ModelFallback     string        `mapstructure:"model_fallback"`
	Temperature       float32       `mapstructure:"temperature"`
	MaxTokens         int           `mapstructure:"max_tokens"`
	CacheTTL          time.Duration `mapstructure:"cache_ttl_hours"`
	RequestTimeout    time.Duration `mapstructure:"request_timeout_seconds"`
}

type DatasetConfig struct {
	Path string `mapstructure:"path"`
}

// PaperConfig 试卷文件相关目录
type PaperConfig struct {
	UploadDir  string `mapstructure:"upload_dir"`
	MockPDFDir string `mapstructure:"mock_pdf_dir"`
}

type StorageConfig struct {
	Type          string `mapstructure:"type"`
	LocalPath     string `mapstructure:"local_path"`
	MinioEndpoint string `mapstructure:"minio_endpoint"`
	MinioAccessID string `mapstructure:"minio_access_key"`
	MinioSecret   string `mapstructure:"minio_secret_key"`
	MinioBucket   string `mapstructure:"minio_bucket"`
	OSSEndpoint   string `mapstructure:"oss_endpoint"`
	OSSAccessKey  string `mapstructure:"oss_access_key"`
	OSSSecretKey  string `mapstructure:"oss_secret_key"`
	OSSBucket     string `mapstructure:"oss_bucket"`
}

type TracingConfig struct {
	Enabled           bool   `mapstructure:"enabled"`
	CollectorEndpoint string `mapstructure:"collector_endpoint"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type RateLimitConfig struct {
	MaxRequests   int `mapstructure:"max_requests"`
	WindowMinutes int `mapstructure:"window_minutes"`
}

func LoadConfig(path string) (*Config, error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.SetEnvPrefix("EDUAGENT")
	viper.AutomaticEnv()

	// Database
	viper.BindEnv("database.host", "DATABASE_HOST")
	viper.BindEnv("database.port", "DATABASE_PORT")
	viper.BindEnv("database.user", "DATABASE_USER")
	viper.BindEnv("database.password", "DATABASE_PASSWORD")
	viper.BindEnv("database.dbname", "DATABASE_NAME")

	// Redis
	viper.BindEnv("redis.host", "REDIS_HOST")
	viper.BindEnv("redis.port", "REDIS_PORT")
	viper.BindEnv("redis.password", "REDIS_PASSWORD")

	// Server
	viper.BindEnv("server.mode", "SERVER_MODE")

	// LLM
	viper.BindEnv("llm.groq_api_key", "GROQ_API_KEY")
	viper.BindEnv("llm.openrouter_api_key", "OPENROUTER_API_KEY")
	viper.BindEnv("llm.model_primary", "LLM_MODEL_PRIMARY")
	viper.BindEnv("llm.model_fallback", "LLM_MODEL_FALLBACK")

	// Dataset / Paper
	viper.BindEnv("dataset.path", "DATASET_PATH")
	viper.BindEnv("paper.upload_dir", "PAPER_UPLOAD_DIR")
	viper.BindEnv("paper.mock_pdf_dir", "PAPER_MOCK_PDF_DIR")

	// Storage
	viper.BindEnv("storage.type", "STORAGE_TYPE")
	viper.BindEnv("storage.minio_endpoint", "MINIO_ENDPOINT")
	viper.BindEnv("storage.minio_access_key", "MINIO_ACCESS_KEY")
	viper.BindEnv("storage.minio_secret_key", "MINIO_SECRET_KEY")
	viper.BindEnv("storage.minio_bucket", "MINIO_BUCKET")
	viper.BindEnv("storage.oss_endpoint", "OSS_ENDPOINT")
	viper.BindEnv("storage.oss_access_key", "OSS_ACCESS_KEY")
	viper.BindEnv("storage.oss_secret_key", "OSS_SECRET_KEY")
	viper.BindEnv("storage.oss_bucket", "OSS_BUCKET")

	// Tracing
	viper.BindEnv("tracing.enabled", "TRACING_ENABLED")
	viper.BindEnv("tracing.collector_endpoint", "TRACING_COLLECTOR_ENDPOINT")

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	// 配置文件里写的是小时/秒，统一换算成 Duration
	cfg.LLM.CacheTTL = cfg.LLM.CacheTTL * time.Hour
	cfg.LLM.RequestTimeout = cfg.LLM.RequestTimeout * time.Second

	applyLLMDefaults(&cfg.LLM)

	for _, dir := range []string{cfg.Paper.UploadDir, cfg.Paper.MockPDFDir} {
		if dir == "" {
			continue
		}
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			os.MkdirAll(dir, 0755)
		}
	}

	if cfg.Storage.Type == "local" {
		if _, err := os.Stat(cfg.Storage.LocalPath); os.IsNotExist(err) {
			os.MkdirAll(cfg.Storage.LocalPath, 0755)
		}
	}

	return &cfg, nil
}

func applyLLMDefaults(llm *LLMConfig) {
	if llm.GroqBaseURL == "" {
		llm.GroqBaseURL = "https://api.groq.com/openai/v1"
	}
	if llm.OpenRouterBaseURL == "" {
		llm.OpenRouterBaseURL = "https://openrouter.ai/api/v1"
	}
	if llm.ModelPrimary == "" {
		llm.ModelPrimary = "llama-3.3-70b-versatile"
	}
	if llm.ModelFallback == "" {
		llm.ModelFallback = "deepseek/deepseek-r1"
	}
	if llm.Temperature == 0 {
		llm.Temperature = 0.7
	}
	if llm.MaxTokens == 0 {
		llm.MaxTokens = 2048
	}
	if llm.CacheTTL == 0 {
		llm.CacheTTL = 24 * time.Hour
	}
	if llm.RequestTimeout == 0 {
		llm.RequestTimeout = 60 * time.Second
	}
}

package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config 是整個服務的設定
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	LLM     LLMConfig     `yaml:"llm"`
	OpenAI  OpenAIConfig  `yaml:"openai"`
	Claude  ClaudeConfig  `yaml:"claude"`
	Ollama  OllamaConfig  `yaml:"ollama"`
	Session SessionConfig `yaml:"session"`
	Catalog CatalogConfig `yaml:"catalog"`
	Log     LogConfig     `yaml:"log"`
}

// ServerConfig 是 HTTP 服務設定
type ServerConfig struct {
	Host   string `yaml:"host" env:"VOICEORDER_HOST"`
	Port   int    `yaml:"port" env:"VOICEORDER_PORT"`
	APIKey string `yaml:"api_key" env:"VOICEORDER_API_KEY"` // 空字串表示不驗證
}

// LLMConfig 是分類/澄清的共用 LLM 設定
type LLMConfig struct {
	Enabled             bool          `yaml:"enabled" env:"VOICEORDER_LLM_ENABLED"`
	Provider            string        `yaml:"provider" env:"VOICEORDER_LLM_PROVIDER"` // openai | claude | ollama
	ConfidenceThreshold float64       `yaml:"confidence_threshold" env:"VOICEORDER_LLM_THRESHOLD"`
	ClassifyTimeout     time.Duration `yaml:"classify_timeout" env:"VOICEORDER_LLM_TIMEOUT"`
	ClassifyCacheSize   int           `yaml:"classify_cache_size"`
	ClarifyCacheSize    int           `yaml:"clarify_cache_size"`
}

// OpenAIConfig 是 OpenAI 設定；金鑰走環境變數，不進設定檔
type OpenAIConfig struct {
	APIKey string `yaml:"-" env:"OPENAI_API_KEY"`
	Model  string `yaml:"model"`
}

// ClaudeConfig 是 Claude 設定
type ClaudeConfig struct {
	APIKey string `yaml:"-" env:"ANTHROPIC_API_KEY"`
	Model  string `yaml:"model"`
}

// OllamaConfig 是本地 Ollama 設定
type OllamaConfig struct {
	BaseURL string `yaml:"base_url" env:"VOICEORDER_OLLAMA_URL"`
	Model   string `yaml:"model"`
}

// SessionConfig 是會話儲存設定
type SessionConfig struct {
	Backend    string        `yaml:"backend" env:"VOICEORDER_SESSION_BACKEND"` // memory | json | redis
	StorageDir string        `yaml:"storage_dir"`
	RedisAddr  string        `yaml:"redis_addr" env:"VOICEORDER_REDIS_ADDR"`
	RedisPass  string        `yaml:"-" env:"VOICEORDER_REDIS_PASSWORD"`
	RedisDB    int           `yaml:"redis_db"`
	TTL        time.Duration `yaml:"ttl"`
}

// CatalogConfig 是菜單設定
type CatalogConfig struct {
	Path string `yaml:"path" env:"VOICEORDER_CATALOG_PATH"` // 空字串用內建菜單
}

// LogConfig 是日誌設定
type LogConfig struct {
	Level string `yaml:"level" env:"VOICEORDER_LOG_LEVEL"`
}

// Load 讀取設定：YAML 檔 → .env → 環境變數，後者覆蓋前者。
// path 為空字串時跳過檔案，全部吃預設值與環境變數。
func Load(path string) (*Config, error) {
	// .env 不存在不是錯
	_ = godotenv.Load()

	var cfg Config
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	cfg.setDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

// setDefaults 補預設值
func (c *Config) setDefaults() {
	if c.Server.Host == "" {
		c.Server.Host = "0.0.0.0"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.LLM.Provider == "" {
		c.LLM.Provider = "openai"
	}
	if c.LLM.ConfidenceThreshold == 0 {
		c.LLM.ConfidenceThreshold = 0.75
	}
	if c.LLM.ClassifyTimeout == 0 {
		c.LLM.ClassifyTimeout = 5 * time.Second
	}
	if c.LLM.ClassifyCacheSize == 0 {
		c.LLM.ClassifyCacheSize = 256
	}
	if c.LLM.ClarifyCacheSize == 0 {
		c.LLM.ClarifyCacheSize = 64
	}
	if c.OpenAI.Model == "" {
		c.OpenAI.Model = "gpt-4o-mini"
	}
	if c.Claude.Model == "" {
		c.Claude.Model = "claude-3-5-haiku-20241022"
	}
	if c.Ollama.BaseURL == "" {
		c.Ollama.BaseURL = "http://localhost:11434"
	}
	if c.Ollama.Model == "" {
		c.Ollama.Model = "qwen2.5:7b"
	}
	if c.Session.Backend == "" {
		c.Session.Backend = "memory"
	}
	if c.Session.StorageDir == "" {
		c.Session.StorageDir = "./data/sessions"
	}
	if c.Session.RedisAddr == "" {
		c.Session.RedisAddr = "localhost:6379"
	}
	if c.Session.TTL == 0 {
		c.Session.TTL = 30 * time.Minute
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

// Validate 驗證設定
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d (must be 1-65535)", c.Server.Port)
	}

	switch c.LLM.Provider {
	case "openai", "claude", "ollama":
	default:
		return fmt.Errorf("invalid llm provider: %q (must be openai, claude or ollama)", c.LLM.Provider)
	}
	if c.LLM.ConfidenceThreshold <= 0 || c.LLM.ConfidenceThreshold > 1 {
		return fmt.Errorf("invalid confidence threshold: %v (must be in (0, 1])", c.LLM.ConfidenceThreshold)
	}

	switch c.Session.Backend {
	case "memory", "json", "redis":
	default:
		return fmt.Errorf("invalid session backend: %q (must be memory, json or redis)", c.Session.Backend)
	}
	if c.Session.Backend == "json" && c.Session.StorageDir == "" {
		return fmt.Errorf("session storage_dir is required for json backend")
	}
	if c.Session.Backend == "redis" && c.Session.RedisAddr == "" {
		return fmt.Errorf("session redis_addr is required for redis backend")
	}

	if c.LLM.Enabled {
		switch c.LLM.Provider {
		case "openai":
			if c.OpenAI.APIKey == "" {
				return fmt.Errorf("OPENAI_API_KEY is required when llm provider is openai")
			}
		case "claude":
			if c.Claude.APIKey == "" {
				return fmt.Errorf("ANTHROPIC_API_KEY is required when llm provider is claude")
			}
		}
	}

	return nil
}

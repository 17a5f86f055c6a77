package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"

	"github.com/yuanfantuan/voiceorder/internal/adapter/config"
	"github.com/yuanfantuan/voiceorder/internal/adapter/httpapi"
	"github.com/yuanfantuan/voiceorder/internal/application/dialogue"
	"github.com/yuanfantuan/voiceorder/internal/domain/catalog"
	domainllm "github.com/yuanfantuan/voiceorder/internal/domain/llm"
	"github.com/yuanfantuan/voiceorder/internal/infrastructure/llm/claude"
	"github.com/yuanfantuan/voiceorder/internal/infrastructure/llm/ollama"
	"github.com/yuanfantuan/voiceorder/internal/infrastructure/llm/openai"
	"github.com/yuanfantuan/voiceorder/internal/infrastructure/parser"
	persistence "github.com/yuanfantuan/voiceorder/internal/infrastructure/persistence/session"
	"github.com/yuanfantuan/voiceorder/internal/infrastructure/routing"
)

func main() {
	cfg, err := config.Load(getConfigPath())
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	deps, err := buildDependencies(cfg)
	if err != nil {
		log.Fatalf("Failed to build dependencies: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Printf("Starting voiceorder server on %s", addr)

	if err := deps.server.ListenAndServe(ctx, addr); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
	log.Println("Server stopped")
}

// Dependencies 是組裝完成的應用依賴
type Dependencies struct {
	server *httpapi.Server
}

// buildDependencies 依設定組裝依賴
func buildDependencies(cfg *config.Config) (*Dependencies, error) {
	// 1. 菜單
	cat, err := loadCatalog(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	// 2. LLM Provider（未啟用時全走關鍵字路由與罐頭追問）
	var provider domainllm.Provider
	if cfg.LLM.Enabled {
		provider, err = buildProvider(cfg)
		if err != nil {
			return nil, err
		}
		log.Printf("LLM enabled: %s", provider.Name())
	}

	// 3. 路由
	keyword := routing.NewKeywordRouter(cat)
	var classifier *routing.LLMClassifier
	if provider != nil {
		classifier, err = routing.NewLLMClassifier(provider, cfg.LLM.ConfidenceThreshold, cfg.LLM.ClassifyTimeout, cfg.LLM.ClassifyCacheSize)
		if err != nil {
			return nil, fmt.Errorf("failed to build classifier: %w", err)
		}
	}
	router := routing.NewCompositeRouter(cat, keyword, classifier)

	// 4. 追問
	clarifier, err := dialogue.NewClarifier(provider, cfg.LLM.ClassifyTimeout, cfg.LLM.ClarifyCacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to build clarifier: %w", err)
	}

	// 5. 會話儲存
	sessions, err := buildSessionRepository(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to build session repository: %w", err)
	}
	log.Printf("Session backend: %s", cfg.Session.Backend)

	// 6. 對話狀態機與 HTTP 介面
	manager := dialogue.NewManager(cat, router, parser.NewSet(cat), sessions, clarifier)
	server := httpapi.NewServer(manager, sessions, cfg.Server.APIKey)

	log.Println("Dependency injection complete")
	return &Dependencies{server: server}, nil
}

func loadCatalog(cfg *config.Config) (*catalog.Catalog, error) {
	if cfg.Catalog.Path == "" {
		return catalog.Default(), nil
	}
	log.Printf("Loading catalog from: %s", cfg.Catalog.Path)
	return catalog.Load(cfg.Catalog.Path)
}

func buildProvider(cfg *config.Config) (domainllm.Provider, error) {
	switch cfg.LLM.Provider {
	case "openai":
		return openai.New(cfg.OpenAI.APIKey, cfg.OpenAI.Model), nil
	case "claude":
		return claude.New(cfg.Claude.APIKey, cfg.Claude.Model), nil
	case "ollama":
		return ollama.New(cfg.Ollama.BaseURL, cfg.Ollama.Model), nil
	}
	return nil, fmt.Errorf("unsupported llm provider: %q", cfg.LLM.Provider)
}

func buildSessionRepository(cfg *config.Config) (dialogue.SessionRepository, error) {
	switch cfg.Session.Backend {
	case "memory":
		return persistence.NewMemoryRepository(), nil
	case "json":
		return persistence.NewJSONRepository(cfg.Session.StorageDir)
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Session.RedisAddr,
			Password: cfg.Session.RedisPass,
			DB:       cfg.Session.RedisDB,
		})
		if err := client.Ping(context.Background()).Err(); err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		return persistence.NewRedisRepository(client, cfg.Session.TTL), nil
	}
	return nil, fmt.Errorf("unsupported session backend: %q", cfg.Session.Backend)
}

// getConfigPath 取得設定檔路徑；檔案不存在時全走預設值
func getConfigPath() string {
	if path := os.Getenv("VOICEORDER_CONFIG"); path != "" {
		return path
	}
	if _, err := os.Stat("./config.yaml"); err == nil {
		return "./config.yaml"
	}
	return ""
}

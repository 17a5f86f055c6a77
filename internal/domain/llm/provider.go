package llm

import "context"

// Message 是一則對話訊息
type Message struct {
	Role    string // "user", "assistant", "system"
	Content string
}

// GenerateRequest 是一次生成請求
type GenerateRequest struct {
	Messages     []Message
	MaxTokens    int
	Temperature  float64
	SystemPrompt string
}

// GenerateResponse 是一次生成結果
type GenerateResponse struct {
	Content      string
	TokensUsed   int
	FinishReason string
}

// Provider 是語言模型供應端的抽象。
// 引擎只有分類與澄清兩個固定用途會經過這個介面，沒有其他工具面。
type Provider interface {
	Generate(ctx context.Context, req GenerateRequest) (GenerateResponse, error)
	Name() string
}

package ollama

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/bytedance/sonic"

	"github.com/yuanfantuan/voiceorder/internal/domain/llm"
)

// Provider 是本地 Ollama 的實作，讓店面不出外網也能跑分類
type Provider struct {
	baseURL string
	model   string
	client  *http.Client
}

// New 建立 Ollama Provider
func New(baseURL, model string) *Provider {
	return &Provider{
		baseURL: baseURL,
		model:   model,
		client: &http.Client{
			Timeout: 60 * time.Second, // 本地模型可能較慢
		},
	}
}

// Generate 執行一次生成
func (p *Provider) Generate(ctx context.Context, req llm.GenerateRequest) (llm.GenerateResponse, error) {
	apiReq := map[string]interface{}{
		"model":  p.model,
		"prompt": p.buildPrompt(req),
		"stream": false,
		"options": map[string]interface{}{
			"temperature": req.Temperature,
			"num_predict": req.MaxTokens,
		},
	}

	reqBody, err := sonic.Marshal(apiReq)
	if err != nil {
		return llm.GenerateResponse{}, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", p.baseURL+"/api/generate", bytes.NewReader(reqBody))
	if err != nil {
		return llm.GenerateResponse{}, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return llm.GenerateResponse{}, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return llm.GenerateResponse{}, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return llm.GenerateResponse{}, fmt.Errorf("ollama API error: status=%d, body=%s", resp.StatusCode, string(body))
	}

	var apiResp struct {
		Response string `json:"response"`
		Done     bool   `json:"done"`
	}
	if err := sonic.Unmarshal(body, &apiResp); err != nil {
		return llm.GenerateResponse{}, fmt.Errorf("failed to decode response: %w", err)
	}

	return llm.GenerateResponse{
		Content:      apiResp.Response,
		TokensUsed:   0, // generate API 不回傳 token 數
		FinishReason: "stop",
	}, nil
}

// Name 回傳供應端名稱
func (p *Provider) Name() string {
	return fmt.Sprintf("ollama-%s", p.model)
}

// buildPrompt 把訊息串成單一 prompt（generate API 沒有 messages 結構）
func (p *Provider) buildPrompt(req llm.GenerateRequest) string {
	var parts []string
	if req.SystemPrompt != "" {
		parts = append(parts, fmt.Sprintf("System: %s\n", req.SystemPrompt))
	}
	for _, msg := range req.Messages {
		switch msg.Role {
		case "user":
			parts = append(parts, fmt.Sprintf("User: %s", msg.Content))
		case "assistant":
			parts = append(parts, fmt.Sprintf("Assistant: %s", msg.Content))
		case "system":
			parts = append(parts, fmt.Sprintf("System: %s", msg.Content))
		}
	}
	return strings.Join(parts, "\n")
}

package claude

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/bytedance/sonic"

	"github.com/yuanfantuan/voiceorder/internal/domain/llm"
)

const defaultBaseURL = "https://api.anthropic.com"
const anthropicVersion = "2023-06-01"

// Provider 是 Anthropic Messages API 的實作
type Provider struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

// New 建立 Claude Provider
func New(apiKey, model string) *Provider {
	return &Provider{
		apiKey:  apiKey,
		model:   model,
		baseURL: defaultBaseURL,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// SetBaseURL 覆蓋 API 端點（測試用）
func (p *Provider) SetBaseURL(url string) {
	p.baseURL = url
}

// Generate 執行一次生成
func (p *Provider) Generate(ctx context.Context, req llm.GenerateRequest) (llm.GenerateResponse, error) {
	apiReq := map[string]interface{}{
		"model":      p.model,
		"messages":   p.convertMessages(req.Messages),
		"max_tokens": req.MaxTokens,
	}
	// system 走頂層欄位，不放進 messages
	if req.SystemPrompt != "" {
		apiReq["system"] = req.SystemPrompt
	}
	if req.Temperature > 0 {
		apiReq["temperature"] = req.Temperature
	}

	reqBody, err := sonic.Marshal(apiReq)
	if err != nil {
		return llm.GenerateResponse{}, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", p.baseURL+"/v1/messages", bytes.NewReader(reqBody))
	if err != nil {
		return llm.GenerateResponse{}, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-api-key", p.apiKey)
	httpReq.Header.Set("anthropic-version", anthropicVersion)

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
		return llm.GenerateResponse{}, fmt.Errorf("claude API error: status=%d, body=%s", resp.StatusCode, string(body))
	}

	var apiResp struct {
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
		StopReason string `json:"stop_reason"`
		Usage      struct {
			InputTokens  int `json:"input_tokens"`
			OutputTokens int `json:"output_tokens"`
		} `json:"usage"`
	}
	if err := sonic.Unmarshal(body, &apiResp); err != nil {
		return llm.GenerateResponse{}, fmt.Errorf("failed to decode response: %w", err)
	}

	var content string
	if len(apiResp.Content) > 0 && apiResp.Content[0].Type == "text" {
		content = apiResp.Content[0].Text
	}

	return llm.GenerateResponse{
		Content:      content,
		TokensUsed:   apiResp.Usage.InputTokens + apiResp.Usage.OutputTokens,
		FinishReason: apiResp.StopReason,
	}, nil
}

// Name 回傳供應端名稱
func (p *Provider) Name() string {
	return fmt.Sprintf("claude-%s", p.model)
}

// convertMessages 把領域訊息轉成 Claude 格式；system role 已在頂層處理
func (p *Provider) convertMessages(messages []llm.Message) []map[string]interface{} {
	out := make([]map[string]interface{}, 0, len(messages))
	for _, msg := range messages {
		if msg.Role == "system" {
			continue
		}
		out = append(out, map[string]interface{}{
			"role": msg.Role,
			"content": []map[string]interface{}{
				{"type": "text", "text": msg.Content},
			},
		})
	}
	return out
}

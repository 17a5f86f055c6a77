package routing

import (
	"context"

	"github.com/yuanfantuan/voiceorder/internal/domain/catalog"
	"github.com/yuanfantuan/voiceorder/internal/domain/routing"
)

// CompositeRouter 先跑關鍵字規則，落空才問 LLM；
// LLM 信心低於門檻或沒有 LLM 時維持 unknown。
type CompositeRouter struct {
	keyword    *KeywordRouter
	classifier *LLMClassifier
	cat        *catalog.Catalog
}

// NewCompositeRouter 建立複合路由器；classifier 可為 nil（純規則模式）
func NewCompositeRouter(cat *catalog.Catalog, keyword *KeywordRouter, classifier *LLMClassifier) *CompositeRouter {
	return &CompositeRouter{
		keyword:    keyword,
		classifier: classifier,
		cat:        cat,
	}
}

// Route 對一句原始輸入做路由。正規化在這裡做一次，
// 關鍵字與 LLM 快取看到的是同一份文字。
func (r *CompositeRouter) Route(ctx context.Context, text string, sctx routing.Context) routing.Result {
	normalized := r.cat.Normalize(text)
	if normalized == "" {
		return routing.NewResult(routing.RouteUnknown, 0, "空句", "empty")
	}

	result := r.keyword.Route(normalized, sctx)
	if result.Route != routing.RouteUnknown {
		return result
	}

	if r.classifier == nil {
		return result
	}

	llmResult := r.classifier.Classify(ctx, normalized)
	if llmResult.Route == routing.RouteUnknown || llmResult.Confidence < r.classifier.Threshold() {
		return routing.NewResult(routing.RouteUnknown, llmResult.Confidence,
			llmResult.Reasoning, "llm_below_threshold")
	}
	return llmResult
}

package recall

import (
	"context"

	"github.com/adikate12/pricely/core"
)

// Source 表示一个可复用的召回源（内容/协同/热门/...）。
// 每个 Source 同时实现 pipeline.Node，可直接在 Pipeline 中编排。
type Source interface {
	Name() string
	Recall(ctx context.Context, rctx *core.RecommendContext) ([]*core.Recommendation, error)
}

// resultSize 统一各召回源的条数决策：请求级 N 优先，其次节点级 topK，最后默认 5。
func resultSize(rctx *core.RecommendContext, topK int) int {
	if rctx != nil && rctx.N > 0 {
		return rctx.N
	}
	if topK > 0 {
		return topK
	}
	return 5
}

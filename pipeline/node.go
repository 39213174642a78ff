package pipeline

import (
	"context"

	"github.com/adikate12/pricely/core"
)

// Kind 用于标记 Node 类型，方便观测/编排（例如按阶段打点）。
type Kind string

const (
	KindRecall   Kind = "recall"   // 召回阶段：按算法生成候选推荐
	KindFilter   Kind = "filter"   // 过滤阶段：剔除不符合约束的候选
	KindReRank   Kind = "rerank"   // 重排阶段：去重/多样性/截断
	KindFallback Kind = "fallback" // 兜底阶段：上游为空时补全结果
)

// Node 是 Pipeline 的最小可扩展单元。
// 统一采用"输入 recommendations -> 输出 recommendations"的形态，
// 召回生成、过滤截断、重排去重都是同一形状的变换。
type Node interface {
	Name() string
	Kind() Kind

	Process(
		ctx context.Context,
		rctx *core.RecommendContext,
		recs []*core.Recommendation,
	) ([]*core.Recommendation, error)
}

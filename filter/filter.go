package filter

import (
	"context"

	"github.com/adikate12/pricely/core"
)

// Filter 判断一条候选推荐是否应该被剔除。
// 返回 true 表示剔除，false 表示保留。剔除是过滤决策，不是错误。
type Filter interface {
	// Name 返回过滤器名称（剔除原因会以此记入 label）
	Name() string

	// ShouldFilter 判断候选是否应被剔除
	ShouldFilter(ctx context.Context, rctx *core.RecommendContext, rec *core.Recommendation) (bool, error)
}

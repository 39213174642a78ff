package filter

import (
	"context"

	"github.com/adikate12/pricely/core"
)

// SeenFilter 剔除目标用户已浏览或已点击过的商品。
// 两个打分器内部已各自应用该排除；此过滤器用于补充召回源
// （如热门召回）接入统一链路时保持同一条规则。
type SeenFilter struct{}

func (f *SeenFilter) Name() string { return "filter.seen" }

func (f *SeenFilter) ShouldFilter(
	_ context.Context,
	rctx *core.RecommendContext,
	rec *core.Recommendation,
) (bool, error) {
	if rec == nil || rctx == nil {
		return false, nil
	}
	prof := rctx.GetProfile()
	if prof == nil {
		return false, nil
	}
	if _, viewed := prof.ViewedProducts[rec.ProductID]; viewed {
		return true, nil
	}
	if _, clicked := prof.ClickedProducts[rec.ProductID]; clicked {
		return true, nil
	}
	return false, nil
}

package rerank

import (
	"context"

	"github.com/adikate12/pricely/core"
	"github.com/adikate12/pricely/pipeline"
)

// TopN 截断节点，取前 n 条。n 优先取请求上下文的 N，其次取节点配置。
type TopN struct {
	N int
}

func (t *TopN) Name() string        { return "rerank.topn" }
func (t *TopN) Kind() pipeline.Kind { return pipeline.KindReRank }

func (t *TopN) Process(
	_ context.Context,
	rctx *core.RecommendContext,
	recs []*core.Recommendation,
) ([]*core.Recommendation, error) {
	n := t.N
	if rctx != nil && rctx.N > 0 {
		n = rctx.N
	}
	if n <= 0 || len(recs) <= n {
		return recs, nil
	}
	return recs[:n], nil
}

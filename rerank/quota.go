package rerank

import (
	"context"

	"github.com/adikate12/pricely/core"
	"github.com/adikate12/pricely/pipeline"
	"github.com/adikate12/pricely/pkg/utils"
)

// SourceQuota 做跨商城多样性重排，两遍式（先配额后补位）：
//
//	第一遍：按固定商城顺序，每个商城最多取 ceil(n/3) 条（候选自身
//	        已按合并分降序，商城内取的就是该商城的最优候选）；
//	第二遍：没凑满 n 时，从未消费的候选池按合并分降序补位。
//
// 配额保证每个商城都有露出机会，补位保证某个商城稀疏时结果不缩水。
// 输出长度严格 <= n。
type SourceQuota struct {
	// N 请求未指定条数时的默认条数，<= 0 时取 5
	N int

	// Order 商城配额顺序，空时取 core.Marketplaces() 的固定顺序
	Order []core.Marketplace
}

func (q *SourceQuota) Name() string        { return "rerank.quota" }
func (q *SourceQuota) Kind() pipeline.Kind { return pipeline.KindReRank }

func (q *SourceQuota) Process(
	_ context.Context,
	rctx *core.RecommendContext,
	recs []*core.Recommendation,
) ([]*core.Recommendation, error) {
	if len(recs) == 0 {
		return recs, nil
	}

	n := q.N
	if rctx != nil && rctx.N > 0 {
		n = rctx.N
	}
	if n <= 0 {
		n = 5
	}

	order := q.Order
	if len(order) == 0 {
		order = core.Marketplaces()
	}

	// 按商城分组，组内保持输入（分数降序）顺序
	groups := make(map[core.Marketplace][]*core.Recommendation, len(order))
	for _, rec := range recs {
		if rec == nil || rec.Product == nil {
			continue
		}
		groups[rec.Product.Source] = append(groups[rec.Product.Source], rec)
	}

	perSource := (n + 2) / 3 // ceil(n/3)
	consumed := make(map[string]struct{}, n)
	out := make([]*core.Recommendation, 0, n)

	// 第一遍：商城配额
	for _, mk := range order {
		for i, rec := range groups[mk] {
			if i == perSource || len(out) == n {
				break
			}
			rec.PutLabel("diversity", utils.Label{Value: string(mk), Source: "rerank"})
			consumed[rec.ProductID] = struct{}{}
			out = append(out, rec)
		}
		if len(out) == n {
			break
		}
	}

	// 第二遍：按合并分降序补位（输入序即降序）
	for _, rec := range recs {
		if len(out) == n {
			break
		}
		if rec == nil || rec.Product == nil {
			continue
		}
		if _, ok := consumed[rec.ProductID]; ok {
			continue
		}
		consumed[rec.ProductID] = struct{}{}
		out = append(out, rec)
	}

	return out, nil
}

package filter

import (
	"context"

	"github.com/adikate12/pricely/core"
	"github.com/adikate12/pricely/pipeline"
	"github.com/adikate12/pricely/pkg/utils"
)

// Node 是过滤 Node，组合多个过滤器依次检查。
// 任一过滤器命中即剔除；过滤器自身出错时跳过该过滤器，不中断链路。
type Node struct {
	Filters []Filter
}

func (n *Node) Name() string        { return "filter.node" }
func (n *Node) Kind() pipeline.Kind { return pipeline.KindFilter }

func (n *Node) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	recs []*core.Recommendation,
) ([]*core.Recommendation, error) {
	if len(n.Filters) == 0 || len(recs) == 0 {
		return recs, nil
	}

	out := make([]*core.Recommendation, 0, len(recs))
	for _, rec := range recs {
		if rec == nil {
			continue
		}

		dropped := false
		reason := ""
		for _, f := range n.Filters {
			ok, err := f.ShouldFilter(ctx, rctx, rec)
			if err != nil {
				continue
			}
			if ok {
				dropped = true
				reason = f.Name()
				break
			}
		}

		if dropped {
			rec.PutLabel("filtered", utils.Label{Value: "true", Source: reason})
			continue
		}
		out = append(out, rec)
	}

	return out, nil
}

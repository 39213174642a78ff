package recall

import (
	"context"
	"sort"

	"github.com/adikate12/pricely/core"
	"github.com/adikate12/pricely/pipeline"
	"github.com/adikate12/pricely/pkg/utils"
)

// Popular 是全站热门召回：按所有用户画像的浏览次数合计排序。
//
// 数据来源两级：
//   - Store 配置了 Key 时优先走有序集合 ZRange（外部离线任务维护热榜）；
//   - 否则现场合计快照内全部画像的浏览计数。
//
// 不含个性化信号，适合冷启动补充或跨用户的"大家都在看"栏位。
type Popular struct {
	Store core.KeyValueStore
	Key   string // 热榜 ZSET key，例如 "popular:views"

	// TopK 请求未指定条数时的默认返回条数
	TopK int
}

func (r *Popular) Name() string        { return "recall.popular" }
func (r *Popular) Kind() pipeline.Kind { return pipeline.KindRecall }

// Process 实现 pipeline.Node：忽略输入，直接召回。
func (r *Popular) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	_ []*core.Recommendation,
) ([]*core.Recommendation, error) {
	return r.Recall(ctx, rctx)
}

func (r *Popular) Recall(
	ctx context.Context,
	rctx *core.RecommendContext,
) ([]*core.Recommendation, error) {
	n := resultSize(rctx, r.TopK)

	var snap *core.Snapshot
	if rctx != nil {
		snap = rctx.Snapshot
	}
	if snap.UserCount() == 0 && (r.Store == nil || r.Key == "") {
		return nil, nil
	}

	// 优先读外部维护的热榜
	if r.Store != nil && r.Key != "" {
		if members, err := r.Store.ZRange(ctx, r.Key, 0, int64(n)-1); err == nil && len(members) > 0 {
			out := make([]*core.Recommendation, 0, len(members))
			for rank, id := range members {
				p, ok := snap.Product(id)
				if !ok {
					continue
				}
				rec := core.NewRecommendation(p, float64(len(members)-rank), core.AlgorithmPopular)
				rec.PutLabel("recall_source", utils.Label{Value: "popular:store", Source: "recall"})
				out = append(out, rec)
			}
			if len(out) > 0 {
				return out, nil
			}
		}
	}

	// 现场合计：按目录顺序遍历保证同分输出稳定
	views := make(map[string]int)
	for _, userID := range snap.UserIDs() {
		if p, ok := snap.Profile(userID); ok {
			for id, count := range p.ViewedProducts {
				views[id] += count
			}
		}
	}

	out := make([]*core.Recommendation, 0)
	for _, p := range snap.Catalog() {
		count := views[p.ID]
		if count == 0 || !p.Recommendable() {
			continue
		}
		rec := core.NewRecommendation(p, float64(count), core.AlgorithmPopular)
		rec.PutLabel("recall_source", utils.Label{Value: "popular", Source: "recall"})
		out = append(out, rec)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	if len(out) > n {
		out = out[:n]
	}
	return out, nil
}

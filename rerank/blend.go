package rerank

import (
	"sort"

	"github.com/adikate12/pricely/core"
	"github.com/adikate12/pricely/pkg/utils"
)

// Blender 把内容链路与协同链路的有序列表做加权合并。
//
// 合并用的是"在场权重"而不是原始分求和：两条链路的分数量纲不同
// （内容分是计数加权和，协同分是 [0,1] 相似度），直接相加会让一方
// 淹没另一方。候选出现在内容列表贡献 ContentWeight，出现在协同列表
// 贡献 CollabWeight，两处都出现则相加。
//
// 输出按合并分降序，同分按先见顺序（内容列表在前）稳定保留。
type Blender struct {
	// ContentWeight / CollabWeight 在场权重。NewBlender 填入默认的
	// 0.6 / 0.4，显式置 0 表示该链路不参与计分。
	ContentWeight float64
	CollabWeight  float64
}

// NewBlender 构造带默认权重的融合器。
func NewBlender() *Blender {
	return &Blender{ContentWeight: 0.6, CollabWeight: 0.4}
}

// Merge 合并两条有序列表，产出混合链路候选（未截断、未去重，
// 由后续 rerank 节点负责）。
func (b *Blender) Merge(content, collab []*core.Recommendation) []*core.Recommendation {
	type slot struct {
		rec   *core.Recommendation
		score float64
	}
	combined := make(map[string]*slot)
	order := make([]string, 0, len(content)+len(collab))

	add := func(recs []*core.Recommendation, weight float64, source string) {
		for _, r := range recs {
			if r == nil || r.Product == nil {
				continue
			}
			s, ok := combined[r.ProductID]
			if !ok {
				rec := core.NewRecommendation(r.Product, 0, core.AlgorithmHybrid)
				s = &slot{rec: rec}
				combined[r.ProductID] = s
				order = append(order, r.ProductID)
			}
			s.score += weight
			s.rec.PutLabel("hybrid_source", utils.Label{Value: source, Source: "rerank"})
		}
	}

	add(content, b.ContentWeight, "content")
	add(collab, b.CollabWeight, "cf")

	out := make([]*core.Recommendation, 0, len(order))
	for _, id := range order {
		s := combined[id]
		s.rec.Score = s.score
		out = append(out, s.rec)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	return out
}

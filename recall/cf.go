package recall

import (
	"context"
	"sort"

	"github.com/adikate12/pricely/core"
	"github.com/adikate12/pricely/fallback"
	"github.com/adikate12/pricely/pipeline"
	"github.com/adikate12/pricely/pkg/utils"
)

// UserCF 是基于用户的协同打分器（User-based Collaborative Filtering）。
//
// 算法流程：
//  1. 目标用户与其他每个用户：浏览商品 ID 集合的 Jaccard 相似度
//     |交集| / |并集|，交集为空的用户直接剪掉（零相似度不保留）；
//  2. 取相似度降序的前 TopKNeighbors 个邻居，同分按画像插入顺序裁决；
//  3. 候选 = 邻居浏览集合 − 目标用户自身浏览集合；
//  4. 候选经多个邻居可达时不做分数求和：按最高相似度归因
//     （邻居已按相似度降序，首个命中者即最大值，同分先见者胜）。
//
// 已知用户不足 2 个、目标用户无画像或候选为空时走兜底。
type UserCF struct {
	// TopKNeighbors 参与候选生成的邻居数，<= 0 时取 3
	TopKNeighbors int

	// TopK 请求未指定条数时的默认返回条数
	TopK int

	// Fallback 兜底策略，nil 时用零值 Cascade
	Fallback *fallback.Cascade
}

func (r *UserCF) Name() string        { return "recall.cf" }
func (r *UserCF) Kind() pipeline.Kind { return pipeline.KindRecall }

// Process 实现 pipeline.Node：忽略输入，直接召回。
func (r *UserCF) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	_ []*core.Recommendation,
) ([]*core.Recommendation, error) {
	return r.Recall(ctx, rctx)
}

func (r *UserCF) Recall(
	_ context.Context,
	rctx *core.RecommendContext,
) ([]*core.Recommendation, error) {
	n := resultSize(rctx, r.TopK)
	cascade := r.Fallback
	if cascade == nil {
		cascade = &fallback.Cascade{}
	}

	var snap *core.Snapshot
	if rctx != nil {
		snap = rctx.Snapshot
	}
	catalog := snap.Catalog()

	if snap.UserCount() < 2 {
		return cascade.Collaborative(catalog, n), nil
	}
	prof := rctx.GetProfile()
	if prof == nil || len(prof.ViewedProducts) == 0 {
		return cascade.Collaborative(catalog, n), nil
	}

	target := prof.ViewedSet()

	type neighbor struct {
		viewed     map[string]struct{}
		similarity float64
	}
	neighbors := make([]neighbor, 0)

	// 按画像插入顺序遍历，保证同分裁决确定
	for _, userID := range snap.UserIDs() {
		if userID == rctx.UserID {
			continue
		}
		other, ok := snap.Profile(userID)
		if !ok || len(other.ViewedProducts) == 0 {
			continue
		}

		otherViewed := other.ViewedSet()
		intersection := 0
		for id := range target {
			if _, ok := otherViewed[id]; ok {
				intersection++
			}
		}
		if intersection == 0 {
			continue // 零相似度剪枝
		}

		union := len(target) + len(otherViewed) - intersection
		neighbors = append(neighbors, neighbor{
			viewed:     otherViewed,
			similarity: float64(intersection) / float64(union),
		})
	}

	// 相似度降序，稳定排序保留插入顺序裁决
	sort.SliceStable(neighbors, func(i, j int) bool {
		return neighbors[i].similarity > neighbors[j].similarity
	})
	topK := r.TopKNeighbors
	if topK <= 0 {
		topK = 3
	}
	if len(neighbors) > topK {
		neighbors = neighbors[:topK]
	}

	// 按目录顺序生成候选：稳定输入序天然成为同分裁决序
	out := make([]*core.Recommendation, 0)
	for _, p := range catalog {
		if !p.Recommendable() {
			continue
		}
		if _, own := target[p.ID]; own {
			continue
		}

		var score float64
		for _, nb := range neighbors {
			if _, ok := nb.viewed[p.ID]; ok {
				score = nb.similarity // 首个命中即最高相似度归因
				break
			}
		}
		if score == 0 {
			continue
		}

		rec := core.NewRecommendation(p, score, core.AlgorithmCollaborative)
		rec.PutLabel("recall_source", utils.Label{Value: "cf", Source: "recall"})
		out = append(out, rec)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	if len(out) > n {
		out = out[:n]
	}

	if len(out) == 0 {
		return cascade.Collaborative(catalog, n), nil
	}
	return out, nil
}

package recall

import (
	"context"
	"sort"
	"strings"

	"github.com/adikate12/pricely/core"
	"github.com/adikate12/pricely/fallback"
	"github.com/adikate12/pricely/pipeline"
	"github.com/adikate12/pricely/pkg/utils"
)

// ContentRecall 是基于内容的打分器：用画像对目录逐品打亲和分。
//
// 打分公式（加权设计是刻意的：本目录几乎全是手机，品类信号近似常量，
// 品牌忠诚度才是更强的预测因子，因此品牌权重取品类的两倍）：
//
//		score = 2×brand + 1×category + 3×phoneName + priceBand + rating
//
//	  - brand/category: 画像中该品牌/品类的计数（缺省 0）
//	  - phoneName: 浏览过的机型名字面串是候选名的大小写不敏感子串时，
//	    每条 +3×浏览次数
//	  - priceBand: 候选价格落在已交互商品均价 ±20% 内时 +1（无历史不加）
//	  - rating: 候选自身评分
//
// 已浏览/已点击的商品从候选中排除。画像全空或目录为空时走兜底。
type ContentRecall struct {
	// TopK 请求未指定条数时的默认返回条数
	TopK int

	// 打分权重。NewContentRecall 填入默认值（2 / 1 / 3 / 1 / 0.2），
	// 显式置 0 表示关闭该项。
	BrandWeight        float64
	CategoryWeight     float64
	PhoneNameWeight    float64
	PriceBandBonus     float64
	PriceBandTolerance float64

	// Fallback 兜底策略，nil 时用零值 Cascade
	Fallback *fallback.Cascade
}

// NewContentRecall 构造带默认权重的内容召回。
func NewContentRecall() *ContentRecall {
	return &ContentRecall{
		BrandWeight:        2,
		CategoryWeight:     1,
		PhoneNameWeight:    3,
		PriceBandBonus:     1,
		PriceBandTolerance: 0.2,
	}
}

func (r *ContentRecall) Name() string        { return "recall.content" }
func (r *ContentRecall) Kind() pipeline.Kind { return pipeline.KindRecall }

// Process 实现 pipeline.Node：忽略输入，直接召回。
func (r *ContentRecall) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	_ []*core.Recommendation,
) ([]*core.Recommendation, error) {
	return r.Recall(ctx, rctx)
}

func (r *ContentRecall) Recall(
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
	if len(catalog) == 0 {
		return cascade.ContentBased(catalog, n), nil
	}

	prof := rctx.GetProfile()
	if prof.Empty() {
		return cascade.ContentBased(catalog, n), nil
	}

	excluded := prof.InteractedSet()
	avgPrice := meanInteractedPrice(catalog, excluded)

	scored := make([]*core.Recommendation, 0, len(catalog))
	for _, p := range catalog {
		if !p.Recommendable() {
			continue
		}
		if _, seen := excluded[p.ID]; seen {
			continue
		}

		score := r.BrandWeight * float64(prof.ViewedBrands[p.Brand])
		score += r.CategoryWeight * float64(prof.ViewedCategories[p.Category])

		if len(prof.PhoneViews) > 0 {
			folded := strings.ToLower(p.Name)
			for name, count := range prof.PhoneViews {
				if name != "" && strings.Contains(folded, strings.ToLower(name)) {
					score += r.PhoneNameWeight * float64(count)
				}
			}
		}

		if avgPrice > 0 {
			diff := p.Price - avgPrice
			if diff < 0 {
				diff = -diff
			}
			if diff/avgPrice <= r.PriceBandTolerance {
				score += r.PriceBandBonus
			}
		}

		score += p.Rating

		rec := core.NewRecommendation(p, score, core.AlgorithmContentBased)
		rec.PutLabel("recall_source", utils.Label{Value: "content", Source: "recall"})
		scored = append(scored, rec)
	}

	// 分数降序，同分保持目录顺序（先见者胜）
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	if len(scored) > n {
		scored = scored[:n]
	}

	if len(scored) == 0 {
		return cascade.ContentBased(catalog, n), nil
	}
	return scored, nil
}

// meanInteractedPrice 计算用户已交互商品的均价，无历史返回 0。
func meanInteractedPrice(catalog []*core.Product, interacted map[string]struct{}) float64 {
	if len(interacted) == 0 {
		return 0
	}
	var sum float64
	var count int
	for _, p := range catalog {
		if _, ok := interacted[p.ID]; ok {
			sum += p.Price
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}

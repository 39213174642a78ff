// Package fallback 提供分层兜底：任何上游阶段产出为空、用户未知或发生
// 意外失败时，用目录自身的价格/品牌热度默认序补全一份形状完整的结果。
// 只要目录非空，兜底输出就非空，调用方在结构上拿不到错误。
package fallback

import (
	"sort"

	"github.com/adikate12/pricely/core"
	"github.com/adikate12/pricely/pkg/utils"
)

// DefaultN 是未指定条数时的默认结果规模。
const DefaultN = 5

// Cascade 是兜底策略集。三条链路各有一套固定的默认排序：
//   - content-based-default: 品牌热度降序，同热度价格降序
//   - collaborative-default: 价格升序（最可负担优先）
//   - hybrid-default:        0.7×品牌热度 − 0.3×价格 加权降序
//
// 每条默认列表先按 name+brand 同一性 key 独立去重，再截断到请求条数。
type Cascade struct {
	// N 默认结果条数，<= 0 时取 DefaultN
	N int
}

func (c *Cascade) size(n int) int {
	if n > 0 {
		return n
	}
	if c != nil && c.N > 0 {
		return c.N
	}
	return DefaultN
}

// ContentBased 返回 content-based-default 列表。
func (c *Cascade) ContentBased(catalog []*core.Product, n int) []*core.Recommendation {
	products := dedupByIdentity(catalog)
	counts := brandCounts(products)

	sort.SliceStable(products, func(i, j int) bool {
		ci, cj := counts[products[i].Brand], counts[products[j].Brand]
		if ci != cj {
			return ci > cj
		}
		return products[i].Price > products[j].Price
	})

	return c.wrap(products, n, core.AlgorithmContentBasedDefault)
}

// Collaborative 返回 collaborative-default 列表。
func (c *Cascade) Collaborative(catalog []*core.Product, n int) []*core.Recommendation {
	products := dedupByIdentity(catalog)

	sort.SliceStable(products, func(i, j int) bool {
		return products[i].Price < products[j].Price
	})

	return c.wrap(products, n, core.AlgorithmCollaborativeDefault)
}

// Hybrid 返回 hybrid-default 列表。
func (c *Cascade) Hybrid(catalog []*core.Product, n int) []*core.Recommendation {
	products := dedupByIdentity(catalog)
	counts := brandCounts(products)

	weight := func(p *core.Product) float64 {
		return 0.7*float64(counts[p.Brand]) - 0.3*p.Price
	}
	sort.SliceStable(products, func(i, j int) bool {
		return weight(products[i]) > weight(products[j])
	})

	return c.wrap(products, n, core.AlgorithmHybridDefault)
}

// Result 返回三条默认列表组成的完整结果，形状与正常链路一致。
func (c *Cascade) Result(catalog []*core.Product, n int) *core.Result {
	return &core.Result{
		ContentBased:  c.ContentBased(catalog, n),
		Collaborative: c.Collaborative(catalog, n),
		Hybrid:        c.Hybrid(catalog, n),
	}
}

func (c *Cascade) wrap(products []*core.Product, n int, algo core.Algorithm) []*core.Recommendation {
	limit := c.size(n)
	if len(products) > limit {
		products = products[:limit]
	}
	out := make([]*core.Recommendation, 0, len(products))
	for _, p := range products {
		rec := core.NewRecommendation(p, 1.0, algo)
		rec.PutLabel("recall_source", utils.Label{Value: string(algo), Source: "fallback"})
		out = append(out, rec)
	}
	return out
}

// dedupByIdentity 按 name+brand 去重，保留首个出现的可推荐商品。
// 返回新切片，不修改目录本身。
func dedupByIdentity(catalog []*core.Product) []*core.Product {
	seen := make(map[string]struct{}, len(catalog))
	out := make([]*core.Product, 0, len(catalog))
	for _, p := range catalog {
		if !p.Recommendable() {
			continue
		}
		key := p.IdentityKey()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, p)
	}
	return out
}

// brandCounts 统计去重后目录里每个品牌的商品数，作为品牌热度。
func brandCounts(products []*core.Product) map[string]int {
	counts := make(map[string]int, len(products))
	for _, p := range products {
		counts[p.Brand]++
	}
	return counts
}

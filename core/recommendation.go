package core

import "github.com/adikate12/pricely/pkg/utils"

// Algorithm 标记一条推荐由哪条算法链路产出（含兜底链路）。
type Algorithm string

const (
	AlgorithmContentBased  Algorithm = "content-based"
	AlgorithmCollaborative Algorithm = "collaborative"
	AlgorithmHybrid        Algorithm = "hybrid"

	AlgorithmContentBasedDefault  Algorithm = "content-based-default"
	AlgorithmCollaborativeDefault Algorithm = "collaborative-default"
	AlgorithmHybridDefault        Algorithm = "hybrid-default"

	// AlgorithmPopular 是补充的全站热门召回，默认链路外按需编排。
	AlgorithmPopular Algorithm = "popular"
)

// Recommendation 是推荐链路中的统一承载结构：商品、分数、算法标记、标签。
// Labels 用于解释与观测；Score 用于排序决策。
// 排序约定：分数降序，同分按先见顺序稳定保留，保证输出确定性。
type Recommendation struct {
	ProductID string                 `json:"product_id"`
	Product   *Product               `json:"product"`
	Score     float64                `json:"score"`
	Algorithm Algorithm              `json:"algorithm"`
	Labels    map[string]utils.Label `json:"labels,omitempty"`
}

// NewRecommendation 创建一条推荐。
func NewRecommendation(p *Product, score float64, algo Algorithm) *Recommendation {
	return &Recommendation{
		ProductID: p.ID,
		Product:   p,
		Score:     score,
		Algorithm: algo,
	}
}

// PutLabel 写入 Label；同名 key 按默认 Merge 规则累积。
func (r *Recommendation) PutLabel(key string, lbl utils.Label) {
	if r.Labels == nil {
		r.Labels = make(map[string]utils.Label)
	}
	if old, ok := r.Labels[key]; ok {
		r.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	r.Labels[key] = lbl
}

// Result 是对外输出的三键结构，三条链路各一份有序列表。
// 无论由哪个内部阶段（含兜底）产出，形状恒定，调用方永远拿不到错误响应。
type Result struct {
	ContentBased  []*Recommendation `json:"content_based"`
	Collaborative []*Recommendation `json:"collaborative"`
	Hybrid        []*Recommendation `json:"hybrid"`
}

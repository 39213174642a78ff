package engine

import (
	"context"
	"fmt"
	"sort"

	"github.com/adikate12/pricely/core"
	"github.com/adikate12/pricely/fallback"
	"github.com/adikate12/pricely/filter"
	"github.com/adikate12/pricely/pipeline"
	"github.com/adikate12/pricely/recall"
	"github.com/adikate12/pricely/rerank"
)

// ProfileProvider 为快照之外的用户补齐画像（比如从 Feast 在线特征库拉取）。
// 返回 (nil, nil) 表示该用户没有画像，引擎按冷启动处理。
type ProfileProvider interface {
	GetProfile(ctx context.Context, userID string) (*core.PreferenceProfile, error)
}

// Engine 按固定编排产出三路推荐：内容路、协同路、混合路。
//
// 任意一路失败或为空都不会让请求失败：每一路内部先走自身兜底，
// 引擎外层再兜一次（包括 panic 恢复），调用方拿到的 Result 三个
// 字段始终非 nil。
type Engine struct {
	// Content 内容召回路，nil 时用默认参数构造
	Content *recall.ContentRecall

	// CF 协同过滤召回路，nil 时用默认参数构造
	CF *recall.UserCF

	// Blend 两路融合器，nil 时用默认权重 0.6/0.4
	Blend *rerank.Blender

	// Rerank 混合路的重排流水线（去重、配额、截断），
	// nil 时用 DefaultRerank 构造
	Rerank *pipeline.Pipeline

	// Filters 召回后的过滤节点，可选
	Filters *filter.Node

	// Cascade 兜底级联，零值可用
	Cascade fallback.Cascade

	// Profiles 快照外用户的画像来源，可选
	Profiles ProfileProvider

	// N 默认返回条数，<= 0 时取 fallback.DefaultN
	N int
}

// New 用默认编排构造引擎。
func New(opts ...Option) *Engine {
	e := &Engine{
		Content: recall.NewContentRecall(),
		CF:      &recall.UserCF{},
		Blend:   rerank.NewBlender(),
		Rerank:  DefaultRerank(0),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Option 引擎配置选项
type Option func(*Engine)

// WithN 设置默认返回条数
func WithN(n int) Option {
	return func(e *Engine) { e.N = n }
}

// WithProfileProvider 设置快照外用户的画像来源
func WithProfileProvider(p ProfileProvider) Option {
	return func(e *Engine) { e.Profiles = p }
}

// WithFilters 设置召回后的过滤节点
func WithFilters(f *filter.Node) Option {
	return func(e *Engine) { e.Filters = f }
}

// DefaultRerank 构造混合路的默认重排流水线：
// 基础机型去重 -> 商城配额 -> 截断。
func DefaultRerank(n int) *pipeline.Pipeline {
	return &pipeline.Pipeline{
		Nodes: []pipeline.Node{
			&rerank.BaseModelDedup{},
			&rerank.SourceQuota{N: n},
			&rerank.TopN{N: n},
		},
	}
}

// Recommend 对单个用户产出三路推荐。快照为空时直接返回三路默认结果。
//
// 同一快照、同一用户、同一 n 的多次调用结果完全一致。
func (e *Engine) Recommend(ctx context.Context, snap *core.Snapshot, userID string, n int) *core.Result {
	if n <= 0 {
		n = e.N
	}
	if n <= 0 {
		n = fallback.DefaultN
	}
	casc := e.Cascade
	casc.N = n

	var catalog []*core.Product
	if snap != nil {
		catalog = snap.Catalog()
	}

	rctx := &core.RecommendContext{
		UserID:   userID,
		N:        n,
		Snapshot: snap,
	}
	e.resolveProfile(ctx, rctx)

	content := e.contentStage(ctx, rctx, casc, catalog)
	collab := e.collabStage(ctx, rctx, casc, catalog)
	hybrid := e.hybridStage(ctx, rctx, casc, catalog, content, collab)

	return &core.Result{
		ContentBased:  content,
		Collaborative: collab,
		Hybrid:        hybrid,
	}
}

// RecommendAll 对快照内全部用户（含匿名用户）批量产出推荐，
// 返回的 map 以用户 ID 为键。
func (e *Engine) RecommendAll(ctx context.Context, snap *core.Snapshot, n int) map[string]*core.Result {
	if snap == nil {
		return map[string]*core.Result{}
	}
	out := make(map[string]*core.Result, snap.UserCount())
	for _, uid := range snap.UserIDs() {
		out[uid] = e.Recommend(ctx, snap, uid, n)
	}
	return out
}

// resolveProfile 解析用户画像：先查快照，查不到再问外部画像源。
// 外部源失败只影响个性化程度，不影响请求本身。
func (e *Engine) resolveProfile(ctx context.Context, rctx *core.RecommendContext) {
	if rctx.GetProfile() != nil || e.Profiles == nil {
		return
	}
	profile, err := e.Profiles.GetProfile(ctx, rctx.UserID)
	if err != nil || profile == nil {
		return
	}
	rctx.Profile = profile
}

func (e *Engine) contentStage(
	ctx context.Context,
	rctx *core.RecommendContext,
	casc fallback.Cascade,
	catalog []*core.Product,
) (recs []*core.Recommendation) {
	defer func() {
		if r := recover(); r != nil {
			recs = casc.ContentBased(catalog, rctx.N)
		}
	}()

	cr := e.Content
	if cr == nil {
		cr = recall.NewContentRecall()
	}
	recs, err := cr.Recall(ctx, rctx)
	if err != nil || len(recs) == 0 {
		return casc.ContentBased(catalog, rctx.N)
	}
	recs = e.applyFilters(ctx, rctx, recs)
	if len(recs) == 0 {
		return casc.ContentBased(catalog, rctx.N)
	}
	if len(recs) > rctx.N {
		recs = recs[:rctx.N]
	}
	return recs
}

func (e *Engine) collabStage(
	ctx context.Context,
	rctx *core.RecommendContext,
	casc fallback.Cascade,
	catalog []*core.Product,
) (recs []*core.Recommendation) {
	defer func() {
		if r := recover(); r != nil {
			recs = casc.Collaborative(catalog, rctx.N)
		}
	}()

	cf := e.CF
	if cf == nil {
		cf = &recall.UserCF{}
	}
	recs, err := cf.Recall(ctx, rctx)
	if err != nil || len(recs) == 0 {
		return casc.Collaborative(catalog, rctx.N)
	}
	recs = e.applyFilters(ctx, rctx, recs)
	if len(recs) == 0 {
		return casc.Collaborative(catalog, rctx.N)
	}
	if len(recs) > rctx.N {
		recs = recs[:rctx.N]
	}
	return recs
}

func (e *Engine) hybridStage(
	ctx context.Context,
	rctx *core.RecommendContext,
	casc fallback.Cascade,
	catalog []*core.Product,
	content, collab []*core.Recommendation,
) (recs []*core.Recommendation) {
	defer func() {
		if r := recover(); r != nil {
			recs = casc.Hybrid(catalog, rctx.N)
		}
	}()

	// 兜底级联产出的列表不参与融合：融合的是个性化信号，
	// 两路都落到兜底（无画像、全部已看）时混合路走自身的兜底排序。
	if isFallbackList(content) {
		content = nil
	}
	if isFallbackList(collab) {
		collab = nil
	}
	if len(content) == 0 && len(collab) == 0 {
		return casc.Hybrid(catalog, rctx.N)
	}

	blend := e.Blend
	if blend == nil {
		blend = rerank.NewBlender()
	}
	merged := blend.Merge(content, collab)
	if len(merged) == 0 {
		return casc.Hybrid(catalog, rctx.N)
	}

	rr := e.Rerank
	if rr == nil {
		rr = DefaultRerank(rctx.N)
	}
	out, err := rr.Run(ctx, rctx, merged)
	if err != nil || len(out) == 0 {
		return casc.Hybrid(catalog, rctx.N)
	}
	return out
}

// isFallbackList 判断一条链路的输出是否来自兜底级联。
// 级联产出的列表内算法标记一致，看首条即可。
func isFallbackList(recs []*core.Recommendation) bool {
	if len(recs) == 0 {
		return true
	}
	switch recs[0].Algorithm {
	case core.AlgorithmContentBasedDefault,
		core.AlgorithmCollaborativeDefault,
		core.AlgorithmHybridDefault:
		return true
	}
	return false
}

func (e *Engine) applyFilters(
	ctx context.Context,
	rctx *core.RecommendContext,
	recs []*core.Recommendation,
) []*core.Recommendation {
	if e.Filters == nil {
		return recs
	}
	out, err := e.Filters.Process(ctx, rctx, recs)
	if err != nil {
		return recs
	}
	return out
}

// TopBrands 返回画像中品牌偏好的降序排名（按次数降序、品牌名升序），
// 用于解释输出和调试。
func TopBrands(profile *core.PreferenceProfile, n int) []string {
	if profile == nil || len(profile.ViewedBrands) == 0 {
		return nil
	}
	brands := make([]string, 0, len(profile.ViewedBrands))
	for b := range profile.ViewedBrands {
		brands = append(brands, b)
	}
	sort.SliceStable(brands, func(i, j int) bool {
		if profile.ViewedBrands[brands[i]] != profile.ViewedBrands[brands[j]] {
			return profile.ViewedBrands[brands[i]] > profile.ViewedBrands[brands[j]]
		}
		return brands[i] < brands[j]
	})
	if n > 0 && len(brands) > n {
		brands = brands[:n]
	}
	return brands
}

// String 便于日志排查的摘要。
func (e *Engine) String() string {
	return fmt.Sprintf("engine(n=%d, filters=%v, profiles=%v)", e.N, e.Filters != nil, e.Profiles != nil)
}

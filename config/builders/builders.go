// Package builders 注册内置 Node 的配置构建器。
// 配置驱动时 import _ 本包即可。
package builders

import (
	"fmt"

	"github.com/adikate12/pricely/config"
	"github.com/adikate12/pricely/core"
	"github.com/adikate12/pricely/filter"
	"github.com/adikate12/pricely/pipeline"
	"github.com/adikate12/pricely/pkg/conv"
	"github.com/adikate12/pricely/recall"
	"github.com/adikate12/pricely/rerank"
)

func init() {
	config.Register("recall.content", BuildContentNode)
	config.Register("recall.cf", BuildCFNode)
	config.Register("recall.popular", BuildPopularNode)
	config.Register("filter", BuildFilterNode)
	config.Register("rerank.dedup", BuildDedupNode)
	config.Register("rerank.quota", BuildQuotaNode)
	config.Register("rerank.topn", BuildTopNNode)
}

// BuildContentNode 构建内容召回。未出现的权重 key 保留默认值，
// 显式写 0 则关闭该项。
func BuildContentNode(cfg map[string]any) (pipeline.Node, error) {
	r := recall.NewContentRecall()
	r.TopK = conv.ConfigGetInt(cfg, "top_k", 0)
	r.BrandWeight = conv.ConfigGetFloat(cfg, "brand_weight", r.BrandWeight)
	r.CategoryWeight = conv.ConfigGetFloat(cfg, "category_weight", r.CategoryWeight)
	r.PhoneNameWeight = conv.ConfigGetFloat(cfg, "phone_name_weight", r.PhoneNameWeight)
	r.PriceBandBonus = conv.ConfigGetFloat(cfg, "price_band_bonus", r.PriceBandBonus)
	r.PriceBandTolerance = conv.ConfigGetFloat(cfg, "price_band_tolerance", r.PriceBandTolerance)
	return r, nil
}

func BuildCFNode(cfg map[string]any) (pipeline.Node, error) {
	return &recall.UserCF{
		TopKNeighbors: conv.ConfigGetInt(cfg, "top_k_neighbors", 0),
		TopK:          conv.ConfigGetInt(cfg, "top_k", 0),
	}, nil
}

// BuildPopularNode 构建热度召回。热榜 ZSET 的存储实例无法从配置注入，
// 这里构建的是纯画像计数版本，需要存储时用代码装配。
func BuildPopularNode(cfg map[string]any) (pipeline.Node, error) {
	return &recall.Popular{
		Key:  conv.ConfigGet(cfg, "key", ""),
		TopK: conv.ConfigGetInt(cfg, "top_k", 0),
	}, nil
}

func BuildFilterNode(cfg map[string]any) (pipeline.Node, error) {
	filtersConfig, ok := cfg["filters"].([]any)
	if !ok {
		return nil, fmt.Errorf("filters not found or invalid")
	}

	filters := make([]filter.Filter, 0, len(filtersConfig))
	for _, fc := range filtersConfig {
		filterMap, ok := fc.(map[string]any)
		if !ok {
			continue
		}
		filterType := conv.ConfigGet(filterMap, "type", "")
		switch filterType {
		case "seen":
			filters = append(filters, &filter.SeenFilter{})
		case "rule":
			expr := conv.ConfigGet(filterMap, "expr", "")
			if expr == "" {
				return nil, fmt.Errorf("rule filter requires expr")
			}
			filters = append(filters, &filter.RuleFilter{Expr: expr})
		default:
			return nil, fmt.Errorf("unknown filter type: %s", filterType)
		}
	}

	return &filter.Node{Filters: filters}, nil
}

func BuildDedupNode(cfg map[string]any) (pipeline.Node, error) {
	return &rerank.BaseModelDedup{}, nil
}

// BuildQuotaNode 构建商城配额节点。order 为商城名列表，
// 未配置时用内置的固定顺序。
func BuildQuotaNode(cfg map[string]any) (pipeline.Node, error) {
	q := &rerank.SourceQuota{
		N: conv.ConfigGetInt(cfg, "n", 0),
	}
	for _, name := range conv.SliceAnyToString(cfg["order"]) {
		q.Order = append(q.Order, core.Marketplace(name))
	}
	return q, nil
}

func BuildTopNNode(cfg map[string]any) (pipeline.Node, error) {
	return &rerank.TopN{
		N: conv.ConfigGetInt(cfg, "n", 0),
	}, nil
}

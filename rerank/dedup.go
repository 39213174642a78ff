package rerank

import (
	"context"
	"regexp"
	"strings"

	"github.com/adikate12/pricely/core"
	"github.com/adikate12/pricely/pipeline"
)

// colorVariants 是会以 " - red" / "(red)" 形式挂在机型名尾部的颜色词。
var colorVariants = []string{
	"red", "blue", "green", "black", "white",
	"pink", "purple", "gold", "silver",
}

// storagePattern 匹配 "128GB" / "8 GB RAM" / "256gb storage" 这类容量 token。
var storagePattern = regexp.MustCompile(`\d+\s*gb(\s*ram|\s*storage)?`)

// spacePattern 折叠变体剥离后残留的连续空白。
var spacePattern = regexp.MustCompile(`\s+`)

// BaseModelDedup 按"基础机型 key"收敛近重复变体：
// 同一机型的不同颜色/容量 SKU 只保留首个出现的候选。
type BaseModelDedup struct{}

func (n *BaseModelDedup) Name() string        { return "rerank.dedup" }
func (n *BaseModelDedup) Kind() pipeline.Kind { return pipeline.KindReRank }

func (n *BaseModelDedup) Process(
	_ context.Context,
	_ *core.RecommendContext,
	recs []*core.Recommendation,
) ([]*core.Recommendation, error) {
	if len(recs) == 0 {
		return recs, nil
	}

	seen := make(map[string]struct{}, len(recs))
	out := make([]*core.Recommendation, 0, len(recs))
	for _, rec := range recs {
		if rec == nil || rec.Product == nil {
			continue
		}
		key := BaseModelKey(rec.Product.Name)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, rec)
	}
	return out, nil
}

// BaseModelKey 从商品名派生基础机型 key：
// 小写折叠，剥离 " - 颜色" / "(颜色)" 后缀与容量 token，折叠空白。
func BaseModelKey(name string) string {
	key := strings.ToLower(name)
	for _, color := range colorVariants {
		key = strings.ReplaceAll(key, " - "+color, "")
		key = strings.ReplaceAll(key, "("+color+")", "")
	}
	key = storagePattern.ReplaceAllString(key, "")
	key = spacePattern.ReplaceAllString(key, " ")
	return strings.TrimSpace(key)
}

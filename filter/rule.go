package filter

import (
	"fmt"
	"sync"

	"context"

	"github.com/google/cel-go/cel"

	"github.com/adikate12/pricely/core"
	"github.com/adikate12/pricely/pkg/conv"
)

var (
	// celEnv 全局 CEL 环境，线程安全，可复用
	celEnv     *cel.Env
	celEnvOnce sync.Once
	celEnvErr  error
)

func getCELEnv() (*cel.Env, error) {
	celEnvOnce.Do(func() {
		celEnv, celEnvErr = cel.NewEnv(
			cel.Variable("item", cel.DynType),
			cel.Variable("label", cel.DynType),
			cel.Variable("rctx", cel.DynType),
		)
	})
	return celEnv, celEnvErr
}

// RuleFilter 按 CEL (Common Expression Language) 表达式剔除候选，
// 规则可由配置下发，无需改代码即可调整排除策略。
//
// 表达式为真时剔除。可引用的变量：
//   - item: id / name / brand / price / rating / source / category / score
//   - label: 候选标签的 value，例如 label.recall_source == "cf"
//   - rctx: user_id / n / params（数值参数，统一为 double）
//
// 示例：
//   - `item.price > 100000.0`         → 剔除超高价位
//   - `item.rating < 3.0`             → 剔除低评分
//   - `label.recall_source == "popular"` → 剔除非个性化来源
type RuleFilter struct {
	// Expr CEL 表达式，空串表示不剔除任何候选
	Expr string

	once sync.Once
	prg  cel.Program
	err  error
}

func (f *RuleFilter) Name() string { return "filter.rule" }

// compile 编译并缓存表达式，RuleFilter 可安全地被多次复用。
func (f *RuleFilter) compile() (cel.Program, error) {
	f.once.Do(func() {
		env, err := getCELEnv()
		if err != nil {
			f.err = err
			return
		}
		ast, issues := env.Compile(f.Expr)
		if issues != nil && issues.Err() != nil {
			f.err = fmt.Errorf("compile rule %q: %w", f.Expr, issues.Err())
			return
		}
		f.prg, f.err = env.Program(ast)
	})
	return f.prg, f.err
}

func (f *RuleFilter) ShouldFilter(
	_ context.Context,
	rctx *core.RecommendContext,
	rec *core.Recommendation,
) (bool, error) {
	if f.Expr == "" || rec == nil {
		return false, nil
	}

	prg, err := f.compile()
	if err != nil {
		return false, err
	}

	out, _, err := prg.Eval(buildInput(rctx, rec))
	if err != nil {
		// 访问不存在的 key 等求值错误：保留候选，规则按未命中处理
		return false, nil
	}

	result, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("rule %q must return boolean, got %T", f.Expr, out.Value())
	}
	return result, nil
}

// buildInput 构建 CEL 求值输入。label 只暴露 value，便于
// `label.recall_source == "cf"` 这类简写。
func buildInput(rctx *core.RecommendContext, rec *core.Recommendation) map[string]any {
	labels := make(map[string]any, len(rec.Labels))
	for k, v := range rec.Labels {
		labels[k] = v.Value
	}

	item := map[string]any{
		"id":        rec.ProductID,
		"score":     rec.Score,
		"algorithm": string(rec.Algorithm),
	}
	if p := rec.Product; p != nil {
		item["name"] = p.Name
		item["brand"] = p.Brand
		item["price"] = p.Price
		item["rating"] = p.Rating
		item["source"] = string(p.Source)
		item["category"] = p.Category
	}

	rctxInput := map[string]any{}
	if rctx != nil {
		rctxInput["user_id"] = rctx.UserID
		rctxInput["n"] = rctx.N
		// 参数数值项统一成 double，避免 YAML 整数字面量
		// 在 CEL 里跟 item.price 比较时类型不匹配
		rctxInput["params"] = conv.MapToFloat64(rctx.Params)
	}

	return map[string]any{
		"item":  item,
		"label": labels,
		"rctx":  rctxInput,
	}
}

package catalog

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/adikate12/pricely/core"
)

// Fanout 并发拉取多个商城的原始行，并按固定的商城顺序合并。
// 单个来源失败或超时只会缩小目录，不会中断整次加载（部分失败降级）。
type Fanout struct {
	Sources       []Source
	Timeout       time.Duration // 每个来源的超时时间，0 表示不限制
	MaxConcurrent int           // 最大并发数，0 表示不限制
}

// Load 拉取全部来源。返回的批次顺序与 Sources 顺序一致，
// 失败的来源以空 Records 占位，保证下游的商城顺序稳定。
func (f *Fanout) Load(ctx context.Context) []SourceRows {
	if len(f.Sources) == 0 {
		return nil
	}

	var (
		mu      sync.Mutex
		batches = make([]SourceRows, len(f.Sources))
		eg, _   = errgroup.WithContext(ctx)
	)
	if f.MaxConcurrent > 0 {
		eg.SetLimit(f.MaxConcurrent)
	}

	for i, src := range f.Sources {
		idx, s := i, src
		batches[idx] = SourceRows{Marketplace: s.Name()}

		eg.Go(func() error {
			fetchCtx := ctx
			if f.Timeout > 0 {
				var cancel context.CancelFunc
				fetchCtx, cancel = context.WithTimeout(ctx, f.Timeout)
				defer cancel()
			}

			records, err := s.Fetch(fetchCtx)
			if err != nil {
				// 单来源失败只降级，不向上传播
				return nil
			}

			mu.Lock()
			batches[idx].Records = records
			mu.Unlock()
			return nil
		})
	}

	// Go 函数永远返回 nil，Wait 只用于同步
	_ = eg.Wait()
	return batches
}

// LoadAndNormalize 是加载 + 归一化的一步封装，产出可直接入快照的目录。
func (f *Fanout) LoadAndNormalize(ctx context.Context, n *Normalizer) []*core.Product {
	if n == nil {
		n = &Normalizer{}
	}
	return n.Normalize(f.Load(ctx))
}

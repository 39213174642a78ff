package catalog

import (
	"context"
	"encoding/json"

	"github.com/adikate12/pricely/core"
)

// RawRecord 是来源商城的松散原始行，字段名跟随抓取侧的导出格式。
// 价格/评分是自由文本（可能带货币符号、千分位、"N/A"），在归一化阶段解析。
type RawRecord struct {
	Name     string `json:"Product Name"`
	Price    string `json:"Price"`
	Rating   string `json:"Rating"`
	Brand    string `json:"Brand"`
	Link     string `json:"Product Link"`
	ImageURL string `json:"Image URL"`
}

// SourceRows 是单个商城的一批原始行，归一化的输入单元。
type SourceRows struct {
	Marketplace core.Marketplace
	Records     []RawRecord
}

// Source 表示一个可拉取原始行的商城来源。
// 抓取/存储细节都在实现里，核心只看到内存中的行序列。
type Source interface {
	Name() core.Marketplace
	Fetch(ctx context.Context) ([]RawRecord, error)
}

// StaticSource 是内存来源，用于测试与示例。
type StaticSource struct {
	Marketplace core.Marketplace
	Records     []RawRecord
}

func (s *StaticSource) Name() core.Marketplace { return s.Marketplace }

func (s *StaticSource) Fetch(_ context.Context) ([]RawRecord, error) {
	return s.Records, nil
}

// StoreSource 从 Store 读取某商城的原始行（外部采集方写入的 JSON 数组）。
//
// 两种存储布局：
//   - 平铺：每个商城一个 key（"catalog:raw:Amazon"），走 Get；
//   - 哈希：全部商城放在一个 Hash key 下，Field 为商城名，走 HGet，
//     要求后端实现 core.KeyValueStore，否则返回 ErrStoreNotSupported。
type StoreSource struct {
	Store       core.Store
	Marketplace core.Marketplace

	// Key 存储 key，例如 "catalog:raw:Amazon"（平铺）或 "catalog:raw"（哈希）
	Key string

	// Field 非空时按哈希布局读取，值为商城名
	Field string
}

func (s *StoreSource) Name() core.Marketplace { return s.Marketplace }

func (s *StoreSource) Fetch(ctx context.Context) ([]RawRecord, error) {
	if s.Store == nil || s.Key == "" {
		return nil, nil
	}
	data, err := s.read(ctx)
	if err != nil {
		if core.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	var records []RawRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, core.NewDomainError(core.ModuleCatalog, core.ErrorCodeInvalidInput, "catalog: malformed raw rows: "+err.Error())
	}
	return records, nil
}

func (s *StoreSource) read(ctx context.Context) ([]byte, error) {
	if s.Field == "" {
		return s.Store.Get(ctx, s.Key)
	}
	kv, ok := s.Store.(core.KeyValueStore)
	if !ok {
		return nil, core.ErrStoreNotSupported
	}
	return kv.HGet(ctx, s.Key, s.Field)
}

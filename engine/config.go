package engine

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/adikate12/pricely/catalog"
	"github.com/adikate12/pricely/recall"
	"github.com/adikate12/pricely/rerank"
)

// Config 是引擎级配置（支持 YAML）。权重用指针字段区分
// "未配置"（保留默认值）与显式的 0（关闭该项）。
type Config struct {
	Engine struct {
		// N 默认返回条数
		N int `yaml:"n"`

		// Content 内容路评分权重
		Content struct {
			TopK               int      `yaml:"top_k"`
			BrandWeight        *float64 `yaml:"brand_weight"`
			CategoryWeight     *float64 `yaml:"category_weight"`
			PhoneNameWeight    *float64 `yaml:"phone_name_weight"`
			PriceBandBonus     *float64 `yaml:"price_band_bonus"`
			PriceBandTolerance *float64 `yaml:"price_band_tolerance"`
		} `yaml:"content"`

		// CF 协同路参数
		CF struct {
			TopKNeighbors int `yaml:"top_k_neighbors"`
			TopK          int `yaml:"top_k"`
		} `yaml:"cf"`

		// Blend 两路融合权重
		Blend struct {
			ContentWeight *float64 `yaml:"content_weight"`
			CollabWeight  *float64 `yaml:"collab_weight"`
		} `yaml:"blend"`
	} `yaml:"engine"`

	// Catalog 归一化规则覆盖，空切片沿用内置词表
	Catalog struct {
		Brands            []string `yaml:"brands"`
		PhoneKeywords     []string `yaml:"phone_keywords"`
		AccessoryKeywords []string `yaml:"accessory_keywords"`
		Category          string   `yaml:"category"`
	} `yaml:"catalog"`
}

// LoadConfig 从 YAML 文件加载引擎配置。
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}

	return &cfg, nil
}

// Build 根据配置构建引擎，未配置的部分保持 New 的默认编排。
func (c *Config) Build(opts ...Option) *Engine {
	e := New(opts...)

	ec := c.Engine
	if ec.N > 0 {
		e.N = ec.N
	}

	content := recall.NewContentRecall()
	content.TopK = ec.Content.TopK
	setWeight(&content.BrandWeight, ec.Content.BrandWeight)
	setWeight(&content.CategoryWeight, ec.Content.CategoryWeight)
	setWeight(&content.PhoneNameWeight, ec.Content.PhoneNameWeight)
	setWeight(&content.PriceBandBonus, ec.Content.PriceBandBonus)
	setWeight(&content.PriceBandTolerance, ec.Content.PriceBandTolerance)
	e.Content = content

	e.CF = &recall.UserCF{
		TopKNeighbors: ec.CF.TopKNeighbors,
		TopK:          ec.CF.TopK,
	}

	blend := rerank.NewBlender()
	setWeight(&blend.ContentWeight, ec.Blend.ContentWeight)
	setWeight(&blend.CollabWeight, ec.Blend.CollabWeight)
	e.Blend = blend

	return e
}

// setWeight 仅在配置显式给出时覆盖默认权重。
func setWeight(dst *float64, src *float64) {
	if src != nil {
		*dst = *src
	}
}

// Normalizer 根据目录覆盖项构建归一化器，没有覆盖时返回零值归一化器。
func (c *Config) Normalizer() *catalog.Normalizer {
	return &catalog.Normalizer{
		Brands:            c.Catalog.Brands,
		PhoneKeywords:     c.Catalog.PhoneKeywords,
		AccessoryKeywords: c.Catalog.AccessoryKeywords,
		Category:          c.Catalog.Category,
	}
}

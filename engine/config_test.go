package engine

import (
	"os"
	"path/filepath"
	"testing"
)

const engineYAML = `
engine:
  n: 8
  content:
    brand_weight: 4
    category_weight: 0
    price_band_tolerance: 0.1
  cf:
    top_k_neighbors: 5
  blend:
    content_weight: 0.7
    collab_weight: 0.3
catalog:
  brands: ["Samsung", "Nothing"]
  category: "Smartphones"
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "engine.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfigAndBuild(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, engineYAML))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	e := cfg.Build()
	if e.N != 8 {
		t.Errorf("N = %d, want 8", e.N)
	}
	if e.Content.BrandWeight != 4 {
		t.Errorf("BrandWeight = %v, want 4", e.Content.BrandWeight)
	}
	if e.Content.PriceBandTolerance != 0.1 {
		t.Errorf("PriceBandTolerance = %v, want 0.1", e.Content.PriceBandTolerance)
	}
	// 显式写 0 的权重按 0 生效，而不是落回默认值
	if e.Content.CategoryWeight != 0 {
		t.Errorf("CategoryWeight = %v, want explicit 0", e.Content.CategoryWeight)
	}
	// 未出现的 key 保留默认值
	if e.Content.PhoneNameWeight != 3 {
		t.Errorf("PhoneNameWeight = %v, want default 3", e.Content.PhoneNameWeight)
	}
	if e.CF.TopKNeighbors != 5 {
		t.Errorf("TopKNeighbors = %d, want 5", e.CF.TopKNeighbors)
	}
	if e.Blend.ContentWeight != 0.7 || e.Blend.CollabWeight != 0.3 {
		t.Errorf("blend weights = %v/%v, want 0.7/0.3", e.Blend.ContentWeight, e.Blend.CollabWeight)
	}

	norm := cfg.Normalizer()
	if len(norm.Brands) != 2 || norm.Brands[0] != "Samsung" {
		t.Errorf("Brands = %v, want [Samsung Nothing]", norm.Brands)
	}
	if norm.Category != "Smartphones" {
		t.Errorf("Category = %q, want Smartphones", norm.Category)
	}
}

func TestBuildEmptyConfigKeepsDefaults(t *testing.T) {
	var cfg Config
	e := cfg.Build()
	if e.Content.BrandWeight != 2 || e.Content.CategoryWeight != 1 {
		t.Errorf("content weights = %v/%v, want defaults 2/1",
			e.Content.BrandWeight, e.Content.CategoryWeight)
	}
	if e.Blend.ContentWeight != 0.6 || e.Blend.CollabWeight != 0.4 {
		t.Errorf("blend weights = %v/%v, want defaults 0.6/0.4",
			e.Blend.ContentWeight, e.Blend.CollabWeight)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing file: want error")
	}
	if _, err := LoadConfig(writeConfig(t, "engine: [not a mapping")); err == nil {
		t.Error("malformed yaml: want error")
	}
}

func TestBuildOptionsApplyFirst(t *testing.T) {
	var cfg Config
	cfg.Engine.N = 3

	// 配置里的 n 覆盖 Option 给的默认值
	e := cfg.Build(WithN(10))
	if e.N != 3 {
		t.Errorf("N = %d, want 3", e.N)
	}

	// 配置未给 n 时保留 Option 的值
	var empty Config
	e = empty.Build(WithN(10))
	if e.N != 10 {
		t.Errorf("N = %d, want 10", e.N)
	}
}

package recall

import (
	"context"
	"testing"

	"github.com/adikate12/pricely/core"
)

func contentCatalog() []*core.Product {
	return []*core.Product{
		{ID: "seen", Name: "Samsung Galaxy M13", Brand: "Samsung", Price: 105, Category: "Mobile", Source: core.MarketplaceAmazon},
		{ID: "a", Name: "Samsung Galaxy M14 5G", Brand: "Samsung", Price: 100, Rating: 0, Category: "Mobile", Source: core.MarketplaceAmazon},
		{ID: "b", Name: "Samsung Galaxy S21 FE", Brand: "Samsung", Price: 3000, Rating: 0, Category: "Mobile", Source: core.MarketplaceCroma},
		{ID: "c", Name: "Redmi 12 5G", Brand: "Redmi", Price: 110, Rating: 0, Category: "Mobile", Source: core.MarketplaceFlipkart},
	}
}

func profileWith(userID string, mutate func(*core.PreferenceProfile)) *core.PreferenceProfile {
	p := core.NewPreferenceProfile(userID)
	if mutate != nil {
		mutate(p)
	}
	return p
}

func TestContentRecall_Scoring(t *testing.T) {
	catalog := contentCatalog()
	prof := profileWith("u1", func(p *core.PreferenceProfile) {
		p.ViewedProducts["seen"] = 1
		p.ViewedBrands["Samsung"] = 5
		p.ViewedCategories["Mobile"] = 5
	})
	snap := core.NewSnapshot(catalog, map[string]*core.PreferenceProfile{"u1": prof}, []string{"u1"})

	r := NewContentRecall()
	recs, err := r.Recall(context.Background(), &core.RecommendContext{UserID: "u1", N: 10, Snapshot: snap})
	if err != nil {
		t.Fatal(err)
	}

	// seen 被排除，剩余按分数降序：
	// a: 2×5 (brand) + 1×5 (category) + 1 (价格带 105±20% 覆盖 100) = 16
	// b: 2×5 + 1×5 = 15（3000 在带外）
	// c: 1×5 + 1 = 6
	wantIDs := []string{"a", "b", "c"}
	if len(recs) != len(wantIDs) {
		t.Fatalf("got %d recs, want %d", len(recs), len(wantIDs))
	}
	for i, id := range wantIDs {
		if recs[i].ProductID != id {
			t.Errorf("recs[%d] = %s, want %s", i, recs[i].ProductID, id)
		}
	}
	if recs[0].Score != 16 {
		t.Errorf("top score = %v, want 16", recs[0].Score)
	}
	if recs[0].Algorithm != core.AlgorithmContentBased {
		t.Errorf("algorithm = %s", recs[0].Algorithm)
	}
	if lbl, ok := recs[0].Labels["recall_source"]; !ok || lbl.Value != "content" {
		t.Errorf("recall_source label = %+v", recs[0].Labels)
	}
}

func TestContentRecall_ZeroWeightDisablesTerm(t *testing.T) {
	catalog := contentCatalog()
	prof := profileWith("u1", func(p *core.PreferenceProfile) {
		p.ViewedProducts["seen"] = 1
		p.ViewedBrands["Samsung"] = 5
		p.ViewedCategories["Mobile"] = 5
	})
	snap := core.NewSnapshot(catalog, map[string]*core.PreferenceProfile{"u1": prof}, []string{"u1"})

	r := NewContentRecall()
	r.CategoryWeight = 0 // 显式置 0 关闭品类项
	recs, err := r.Recall(context.Background(), &core.RecommendContext{UserID: "u1", N: 10, Snapshot: snap})
	if err != nil {
		t.Fatal(err)
	}

	// a: 2×5 + 1 (价格带) = 11, b: 2×5 = 10, c: 1 (仅价格带)
	want := map[string]float64{"a": 11, "b": 10, "c": 1}
	for _, rec := range recs {
		if rec.Score != want[rec.ProductID] {
			t.Errorf("%s score = %v, want %v", rec.ProductID, rec.Score, want[rec.ProductID])
		}
	}
}

func TestContentRecall_PhoneNameAffinity(t *testing.T) {
	catalog := []*core.Product{
		{ID: "f14", Name: "Samsung Galaxy F14 5G (128 GB)", Brand: "Samsung", Price: 12490, Category: "Mobile"},
		{ID: "m14", Name: "Samsung Galaxy M14 5G (128 GB)", Brand: "Samsung", Price: 13490, Category: "Mobile"},
	}
	prof := profileWith("u1", func(p *core.PreferenceProfile) {
		p.PhoneViews["galaxy f14"] = 2 // 大小写不敏感子串匹配
	})
	snap := core.NewSnapshot(catalog, map[string]*core.PreferenceProfile{"u1": prof}, []string{"u1"})

	r := NewContentRecall()
	recs, err := r.Recall(context.Background(), &core.RecommendContext{UserID: "u1", N: 10, Snapshot: snap})
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 2 || recs[0].ProductID != "f14" {
		t.Fatalf("phone name affinity should rank f14 first: %+v", recs)
	}
	// f14: 3×2 = 6, m14: 0
	if recs[0].Score != 6 {
		t.Errorf("f14 score = %v, want 6", recs[0].Score)
	}
}

func TestContentRecall_EmptyProfileFallsBack(t *testing.T) {
	catalog := contentCatalog()
	snap := core.NewSnapshot(catalog, map[string]*core.PreferenceProfile{
		"u1": core.NewPreferenceProfile("u1"),
	}, []string{"u1"})

	r := NewContentRecall()
	recs, err := r.Recall(context.Background(), &core.RecommendContext{UserID: "u1", N: 3, Snapshot: snap})
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) == 0 {
		t.Fatal("fallback must produce results for non-empty catalog")
	}
	for _, rec := range recs {
		if rec.Algorithm != core.AlgorithmContentBasedDefault {
			t.Errorf("expected default algorithm, got %s", rec.Algorithm)
		}
	}
	// 品牌热度降序（Samsung 3 款 > Redmi 1 款），同热度价格降序
	if recs[0].Product.Brand != "Samsung" || recs[0].Product.Price != 3000 {
		t.Errorf("fallback ordering wrong, got %s ₹%v", recs[0].Product.Name, recs[0].Product.Price)
	}
}

func TestContentRecall_EmptyCatalogFallsBackEmpty(t *testing.T) {
	snap := core.NewSnapshot(nil, nil, nil)
	r := NewContentRecall()
	recs, err := r.Recall(context.Background(), &core.RecommendContext{UserID: "u1", N: 5, Snapshot: snap})
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 0 {
		t.Errorf("empty catalog should produce empty result, got %d", len(recs))
	}
}

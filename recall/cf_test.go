package recall

import (
	"context"
	"math"
	"testing"

	"github.com/adikate12/pricely/core"
)

func cfSnapshot() *core.Snapshot {
	catalog := []*core.Product{
		{ID: "p1", Name: "Samsung Galaxy M14 5G", Brand: "Samsung", Price: 13490, Category: "Mobile"},
		{ID: "p2", Name: "Redmi 12 5G", Brand: "Redmi", Price: 11999, Category: "Mobile"},
		{ID: "p3", Name: "vivo T2x 5G", Brand: "vivo", Price: 12499, Category: "Mobile"},
		{ID: "p5", Name: "POCO M6 Pro 5G", Brand: "POCO", Price: 10999, Category: "Mobile"},
	}

	view := func(userID string, ids ...string) *core.PreferenceProfile {
		p := core.NewPreferenceProfile(userID)
		for _, id := range ids {
			p.ViewedProducts[id]++
		}
		return p
	}
	profiles := map[string]*core.PreferenceProfile{
		"u1": view("u1", "p1", "p2"),
		"u2": view("u2", "p1", "p2", "p3"),
		"u3": view("u3", "p1", "p3", "p5"),
	}
	return core.NewSnapshot(catalog, profiles, []string{"u1", "u2", "u3"})
}

func TestUserCF_JaccardAndAttribution(t *testing.T) {
	snap := cfSnapshot()
	r := &UserCF{}
	recs, err := r.Recall(context.Background(), &core.RecommendContext{UserID: "u1", N: 10, Snapshot: snap})
	if err != nil {
		t.Fatal(err)
	}

	// u1={p1,p2}: u2 交集 2 并集 3 -> 2/3；u3 交集 1 并集 4 -> 1/4
	// 候选 = 邻居浏览 − 自身浏览 = {p3, p5}
	// p3 经 u2 和 u3 都可达，按最高相似度归因 -> 2/3
	if len(recs) != 2 {
		t.Fatalf("got %d recs, want 2: %+v", len(recs), recs)
	}
	if recs[0].ProductID != "p3" {
		t.Errorf("top rec = %s, want p3", recs[0].ProductID)
	}
	if math.Abs(recs[0].Score-2.0/3.0) > 1e-9 {
		t.Errorf("p3 score = %v, want 2/3 (max-similarity attribution)", recs[0].Score)
	}
	if recs[1].ProductID != "p5" || math.Abs(recs[1].Score-0.25) > 1e-9 {
		t.Errorf("p5 score = %v, want 0.25", recs[1].Score)
	}
	if recs[0].Algorithm != core.AlgorithmCollaborative {
		t.Errorf("algorithm = %s", recs[0].Algorithm)
	}

	// 自身浏览过的商品不进候选
	for _, rec := range recs {
		if rec.ProductID == "p1" || rec.ProductID == "p2" {
			t.Errorf("own viewed product %s must be excluded", rec.ProductID)
		}
	}
}

func TestUserCF_TooFewUsersFallsBack(t *testing.T) {
	catalog := []*core.Product{
		{ID: "p1", Name: "Samsung Galaxy M14 5G", Brand: "Samsung", Price: 13490, Category: "Mobile"},
		{ID: "p2", Name: "Redmi 12 5G", Brand: "Redmi", Price: 11999, Category: "Mobile"},
	}
	prof := core.NewPreferenceProfile("u1")
	prof.ViewedProducts["p1"] = 1
	snap := core.NewSnapshot(catalog, map[string]*core.PreferenceProfile{"u1": prof}, []string{"u1"})

	r := &UserCF{}
	recs, err := r.Recall(context.Background(), &core.RecommendContext{UserID: "u1", N: 5, Snapshot: snap})
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) == 0 {
		t.Fatal("fallback must produce results")
	}
	// collaborative-default: 价格升序
	if recs[0].ProductID != "p2" {
		t.Errorf("fallback should order by price asc, got %s first", recs[0].ProductID)
	}
	for _, rec := range recs {
		if rec.Algorithm != core.AlgorithmCollaborativeDefault {
			t.Errorf("expected default algorithm, got %s", rec.Algorithm)
		}
	}
}

func TestUserCF_NoOverlapFallsBack(t *testing.T) {
	catalog := []*core.Product{
		{ID: "p1", Name: "Samsung Galaxy M14 5G", Brand: "Samsung", Price: 13490, Category: "Mobile"},
		{ID: "p2", Name: "Redmi 12 5G", Brand: "Redmi", Price: 11999, Category: "Mobile"},
	}
	a := core.NewPreferenceProfile("u1")
	a.ViewedProducts["p1"] = 1
	b := core.NewPreferenceProfile("u2")
	b.ViewedProducts["p2"] = 1
	snap := core.NewSnapshot(catalog, map[string]*core.PreferenceProfile{"u1": a, "u2": b}, []string{"u1", "u2"})

	r := &UserCF{}
	recs, err := r.Recall(context.Background(), &core.RecommendContext{UserID: "u1", N: 5, Snapshot: snap})
	if err != nil {
		t.Fatal(err)
	}
	// 零交集邻居被剪枝，候选为空 -> 兜底
	for _, rec := range recs {
		if rec.Algorithm != core.AlgorithmCollaborativeDefault {
			t.Errorf("expected default algorithm, got %s", rec.Algorithm)
		}
	}
}

func TestUserCF_Determinism(t *testing.T) {
	snap := cfSnapshot()
	r := &UserCF{}
	rctx := &core.RecommendContext{UserID: "u1", N: 10, Snapshot: snap}

	first, err := r.Recall(context.Background(), rctx)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 5; i++ {
		again, err := r.Recall(context.Background(), rctx)
		if err != nil {
			t.Fatal(err)
		}
		if len(again) != len(first) {
			t.Fatalf("run %d: length changed", i)
		}
		for j := range first {
			if again[j].ProductID != first[j].ProductID || again[j].Score != first[j].Score {
				t.Fatalf("run %d: output differs at %d", i, j)
			}
		}
	}
}

package rerank

import (
	"context"
	"testing"

	"github.com/adikate12/pricely/core"
)

func TestBaseModelKey(t *testing.T) {
	tests := []struct {
		a, b string
		same bool
	}{
		{"Samsung Galaxy M14 5G (Black) 128GB", "Samsung Galaxy M14 5G (Blue) 256GB", true},
		{"Redmi 12 5G - Black 6 GB RAM", "Redmi 12 5G 8 GB RAM", true},
		{"POCO M6 Pro 5G 128 GB Storage", "POCO M6 Pro 5G", true},
		{"Samsung Galaxy M14 5G", "Samsung Galaxy F14 5G", false},
	}
	for _, tt := range tests {
		ka, kb := BaseModelKey(tt.a), BaseModelKey(tt.b)
		if (ka == kb) != tt.same {
			t.Errorf("BaseModelKey(%q)=%q vs BaseModelKey(%q)=%q, same=%v want %v",
				tt.a, ka, tt.b, kb, ka == kb, tt.same)
		}
	}
}

func TestBaseModelDedup_KeepsFirst(t *testing.T) {
	recs := []*core.Recommendation{
		rec("black", 1.0, core.AlgorithmHybrid),
		rec("blue", 0.9, core.AlgorithmHybrid),
		rec("other", 0.8, core.AlgorithmHybrid),
	}
	recs[0].Product.Name = "Samsung Galaxy M14 5G (Black) 128GB"
	recs[1].Product.Name = "Samsung Galaxy M14 5G (Blue) 256GB"
	recs[2].Product.Name = "Redmi 12 5G"

	node := &BaseModelDedup{}
	out, err := node.Process(context.Background(), nil, recs)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 2 {
		t.Fatalf("got %d, want 2", len(out))
	}
	// 高分的首个变体保留
	if out[0].ProductID != "black" || out[1].ProductID != "other" {
		t.Errorf("kept %s, %s", out[0].ProductID, out[1].ProductID)
	}
}

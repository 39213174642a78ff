package core

import "testing"

func TestNewSnapshot_UserOrder(t *testing.T) {
	catalog := []*Product{
		{ID: "p1", Name: "Samsung Galaxy M14 5G", Brand: "Samsung", Price: 13490},
	}
	profiles := map[string]*PreferenceProfile{
		"u3": NewPreferenceProfile("u3"),
		"u1": NewPreferenceProfile("u1"),
		"u2": NewPreferenceProfile("u2"),
	}

	// 显式顺序保留，重复项跳过，未覆盖的用户按 ID 升序补在末尾
	snap := NewSnapshot(catalog, profiles, []string{"u2", "u2", "u3"})
	want := []string{"u2", "u3", "u1"}
	got := snap.UserIDs()
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	// 无显式顺序时按 ID 升序
	sorted := NewSnapshot(catalog, profiles, nil)
	ids := sorted.UserIDs()
	if ids[0] != "u1" || ids[1] != "u2" || ids[2] != "u3" {
		t.Errorf("nil order should sort IDs: %v", ids)
	}
}

func TestSnapshot_Lookups(t *testing.T) {
	catalog := []*Product{
		{ID: "p1", Name: "Samsung Galaxy M14 5G", Brand: "Samsung", Price: 13490},
		{ID: "p2", Name: "Redmi 12 5G", Brand: "Redmi", Price: 11999},
	}
	snap := NewSnapshot(catalog, map[string]*PreferenceProfile{
		"u1": NewPreferenceProfile("u1"),
	}, []string{"u1"})

	if p, ok := snap.Product("p2"); !ok || p.Brand != "Redmi" {
		t.Errorf("Product lookup = %+v, %v", p, ok)
	}
	if _, ok := snap.Product("nope"); ok {
		t.Error("missing product should not be found")
	}
	if _, ok := snap.Profile("u1"); !ok {
		t.Error("u1 profile missing")
	}
	if snap.UserCount() != 1 {
		t.Errorf("UserCount = %d", snap.UserCount())
	}
	if len(snap.Catalog()) != 2 {
		t.Errorf("Catalog len = %d", len(snap.Catalog()))
	}
}

func TestSnapshot_NilSafety(t *testing.T) {
	var snap *Snapshot
	if snap.Catalog() != nil || snap.UserCount() != 0 {
		t.Error("nil snapshot accessors must be safe")
	}
	if _, ok := snap.Product("x"); ok {
		t.Error("nil snapshot Product must miss")
	}
	if _, ok := snap.Profile("x"); ok {
		t.Error("nil snapshot Profile must miss")
	}
}

func TestActivityEvent_Refs(t *testing.T) {
	tests := []struct {
		name string
		meta map[string]any
		want string
	}{
		{"productId preferred", map[string]any{"productId": "p1", "phoneId": "p2"}, "p1"},
		{"phoneId fallback", map[string]any{"phoneId": "p2"}, "p2"},
		{"missing", map[string]any{"other": "x"}, ""},
		{"nil metadata", nil, ""},
	}
	for _, tt := range tests {
		e := &ActivityEvent{UserID: "u1", Action: ActionProductView, Metadata: tt.meta}
		if got := e.ProductRef(); got != tt.want {
			t.Errorf("%s: ProductRef = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestAction_Counting(t *testing.T) {
	counted := []Action{ActionProductView, ActionProductClick, ActionPhoneView}
	for _, a := range counted {
		if !a.CountsAsView() {
			t.Errorf("%s should count as view", a)
		}
	}
	ignored := []Action{ActionSessionStart, ActionButtonClick, ActionNavigation, ActionScrollDepth, ActionPageDuration}
	for _, a := range ignored {
		if a.CountsAsView() || a.CountsAsClick() {
			t.Errorf("%s should be ignored", a)
		}
	}
	if !ActionProductClick.CountsAsClick() || ActionProductView.CountsAsClick() {
		t.Error("only product_click counts as click")
	}
}

func TestProduct_IdentityAndRecommendable(t *testing.T) {
	p := &Product{ID: "x", Name: "Samsung Galaxy M14 5G", Brand: "Samsung", Price: 13490}
	if p.IdentityKey() != "Samsung Galaxy M14 5G_Samsung" {
		t.Errorf("IdentityKey = %q", p.IdentityKey())
	}
	if !p.Recommendable() {
		t.Error("priced product should be recommendable")
	}
	if (&Product{ID: "y", Name: "n", Brand: "b", Price: 0}).Recommendable() {
		t.Error("zero price is not recommendable")
	}
}

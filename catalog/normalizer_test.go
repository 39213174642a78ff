package catalog

import (
	"testing"

	"github.com/adikate12/pricely/core"
)

func TestNormalizer_Normalize(t *testing.T) {
	n := &Normalizer{}

	batches := []SourceRows{
		{
			Marketplace: core.MarketplaceAmazon,
			Records: []RawRecord{
				{Name: "Samsung Galaxy M14 5G (Smoky Teal, 6GB, 128GB Storage)", Price: "₹13,490", Rating: "4.2", Link: "https://amazon.in/m14"},
				{Name: "boAt Rockerz 450 Bluetooth Headphone", Price: "₹1,499", Rating: "4.0", Link: "https://amazon.in/boat"},
				{Name: "Spigen Rugged Armor Case for iPhone 15", Price: "₹999", Rating: "4.5", Link: "https://amazon.in/case"},
				{Name: "Redmi 12 5G (Jade Black, 6GB RAM)", Price: "N/A", Rating: "4.1", Link: "https://amazon.in/redmi12"},
			},
		},
		{
			Marketplace: core.MarketplaceFlipkart,
			Records: []RawRecord{
				{Name: "POCO M6 Pro 5G (Power Black, 128 GB)", Price: "10,999", Rating: "No rating"},
			},
		},
	}

	products := n.Normalize(batches)
	if len(products) != 2 {
		t.Fatalf("expected 2 products, got %d", len(products))
	}

	m14 := products[0]
	if m14.ID != "https://amazon.in/m14" {
		t.Errorf("link should be preferred as ID, got %q", m14.ID)
	}
	if m14.Brand != "Samsung" {
		t.Errorf("expected brand Samsung, got %q", m14.Brand)
	}
	if m14.Price != 13490 {
		t.Errorf("expected price 13490, got %v", m14.Price)
	}
	if m14.Rating != 4.2 {
		t.Errorf("expected rating 4.2, got %v", m14.Rating)
	}
	if m14.Source != core.MarketplaceAmazon {
		t.Errorf("expected source Amazon, got %v", m14.Source)
	}
	if m14.Category != "Mobile" {
		t.Errorf("expected default category Mobile, got %q", m14.Category)
	}

	poco := products[1]
	if poco.ID != "2" {
		t.Errorf("missing link should fall back to counter ID, got %q", poco.ID)
	}
	if poco.Rating != 0 {
		t.Errorf("'No rating' should parse to 0, got %v", poco.Rating)
	}
	if poco.Source != core.MarketplaceFlipkart {
		t.Errorf("expected source Flipkart, got %v", poco.Source)
	}
}

func TestIsMobilePhone(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"Samsung Galaxy M14 5G Smartphone", true},
		{"OnePlus Nord CE 3 Lite", true},
		{"iQOO Z7 5G", true},
		{"Samsung Galaxy M14 Back Cover", false}, // 排除词优先于允许词
		{"USB C Fast Charger 33W", false},
		{"Tempered Glass for Redmi 12", false},
		{"Kitchen Blender 500W", false}, // 无允许词
		{"", false},
	}
	for _, tt := range tests {
		if got := isMobilePhone(tt.name, defaultPhoneKeywords, defaultAccessoryKeywords); got != tt.want {
			t.Errorf("isMobilePhone(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestParsePrice(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"₹13,490", 13490},
		{"13490", 13490},
		{"₹1,13,490", 113490},
		{" ₹999 ", 999},
		{"N/A", 0},
		{"", 0},
		{"free", 0},
	}
	for _, tt := range tests {
		if got := parsePrice(tt.in); got != tt.want {
			t.Errorf("parsePrice(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestExtractBrand(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Samsung Galaxy M14 5G", "Samsung"},
		{"SAMSUNG Galaxy F14", "Samsung"}, // 大小写不敏感，返回表内写法
		{"vivo T2x 5G", "vivo"},
		{"Lava Blaze 2 5G", "Lava"}, // 表外品牌退化为首 token
		{"", "Unknown"},
	}
	for _, tt := range tests {
		if got := extractBrand(tt.name, defaultBrands); got != tt.want {
			t.Errorf("extractBrand(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

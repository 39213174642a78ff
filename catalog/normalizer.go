package catalog

import (
	"strconv"
	"strings"

	"github.com/adikate12/pricely/core"
)

// defaultBrands 是已知品牌表，按名称大小写不敏感匹配。
// 命中表内品牌时以表内写法为准，未命中退化为名称首个空白分隔 token。
var defaultBrands = []string{
	"Redmi", "POCO", "OnePlus", "Samsung", "vivo", "realme",
	"OPPO", "iQOO", "Nothing", "Motorola", "Nokia", "Xiaomi", "Apple",
}

// defaultPhoneKeywords 是手机判定的允许关键词（至少命中一个）。
var defaultPhoneKeywords = []string{
	"smartphone", "mobile phone", "iphone", "android phone",
	"5g phone", "4g phone", "dual sim phone", "android mobile",
	"smart phone", "cellular phone", "handset",
	"samsung galaxy", "oneplus", "redmi", "poco", "vivo",
	"oppo", "realme", "motorola", "nokia", "xiaomi", "iqoo",
	"nothing phone",
}

// defaultAccessoryKeywords 是配件判定的排除关键词（命中任意一个即剔除）。
var defaultAccessoryKeywords = []string{
	"case", "cover", "charger", "cable", "headphone", "earphone",
	"screen guard", "protector", "tempered glass", "power bank",
	"adapter", "stand", "holder", "mount", "dock",
	"stylus", "memory card", "sim card", "pop socket",
	"grip", "skin", "wrap", "film", "shield", "bag", "pouch",
	"sleeve", "strap", "lanyard", "keychain",
}

// Normalizer 把多来源原始行归一化成统一的商品序列。
//
// 规则（全部是过滤决策或数据缺陷兜底，不产生 error）：
//   - 名称不满足手机判定（允许词 ∩ 非排除词）的行静默丢弃；
//   - 价格剥离货币符号与千分位后解析，非数字或 <= 0 的行丢弃；
//   - 评分解析失败取 0；
//   - 品牌按已知品牌表匹配，失败退化为首 token，再失败取 "Unknown"；
//   - ID 优先用来源商品链接（跨次加载稳定）；链接缺失用本次加载内的
//     自增计数，这类 ID 跨次加载不稳定，调用方不得跨会话持有。
type Normalizer struct {
	// Brands 已知品牌表，空时使用 defaultBrands
	Brands []string

	// PhoneKeywords / AccessoryKeywords 手机判定词表，空时使用默认表
	PhoneKeywords     []string
	AccessoryKeywords []string

	// Category 归一化后统一写入的品类标记，空时为 "Mobile"
	Category string
}

// Normalize 对一个加载批次做归一化，返回按输入顺序排列的商品序列。
// 自增 ID 计数以一次 Normalize 调用为作用域。
func (n *Normalizer) Normalize(batches []SourceRows) []*core.Product {
	brands := n.Brands
	if len(brands) == 0 {
		brands = defaultBrands
	}
	phoneKW := n.PhoneKeywords
	if len(phoneKW) == 0 {
		phoneKW = defaultPhoneKeywords
	}
	accessoryKW := n.AccessoryKeywords
	if len(accessoryKW) == 0 {
		accessoryKW = defaultAccessoryKeywords
	}
	category := n.Category
	if category == "" {
		category = "Mobile"
	}

	out := make([]*core.Product, 0)
	counter := 0

	for _, batch := range batches {
		for _, rec := range batch.Records {
			if !isMobilePhone(rec.Name, phoneKW, accessoryKW) {
				continue
			}
			price := parsePrice(rec.Price)
			if price <= 0 {
				continue
			}

			counter++
			id := rec.Link
			if id == "" {
				id = strconv.Itoa(counter)
			}

			out = append(out, &core.Product{
				ID:         id,
				Name:       rec.Name,
				Brand:      extractBrand(rec.Name, brands),
				Price:      price,
				Rating:     parseRating(rec.Rating),
				Source:     batch.Marketplace,
				Category:   category,
				ImageURL:   rec.ImageURL,
				ProductURL: rec.Link,
			})
		}
	}

	return out
}

// isMobilePhone 判定名称是否指向一部手机而非配件。
// 大小写折叠后：命中任一排除词 -> false；否则命中任一允许词 -> true。
func isMobilePhone(name string, phoneKW, accessoryKW []string) bool {
	folded := strings.ToLower(name)
	if folded == "" {
		return false
	}
	for _, kw := range accessoryKW {
		if strings.Contains(folded, kw) {
			return false
		}
	}
	for _, kw := range phoneKW {
		if strings.Contains(folded, kw) {
			return true
		}
	}
	return false
}

// parsePrice 解析自由文本价格：剥离 ₹ 与千分位逗号后按浮点解析，失败返回 0。
func parsePrice(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" || s == "N/A" {
		return 0
	}
	s = strings.ReplaceAll(s, "₹", "")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)
	price, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return price
}

// parseRating 解析自由文本评分，"N/A"/"No rating"/解析失败均取 0。
func parseRating(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" || s == "N/A" || s == "No rating" {
		return 0
	}
	rating, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return rating
}

// extractBrand 从商品名提取品牌：先查已知品牌表（大小写不敏感的子串匹配），
// 未命中取首个空白分隔 token，名称为空取 "Unknown"。
func extractBrand(name string, brands []string) string {
	folded := strings.ToLower(name)
	for _, brand := range brands {
		if strings.Contains(folded, strings.ToLower(brand)) {
			return brand
		}
	}
	fields := strings.Fields(name)
	if len(fields) > 0 {
		return fields[0]
	}
	return "Unknown"
}

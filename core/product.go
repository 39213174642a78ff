package core

// Marketplace 是商品的来源商城枚举。
// 目录归一化、多样性重排都依赖这个固定集合与固定顺序。
type Marketplace string

const (
	MarketplaceAmazon   Marketplace = "Amazon"
	MarketplaceCroma    Marketplace = "Croma"
	MarketplaceFlipkart Marketplace = "Flipkart"
)

// Marketplaces 返回固定顺序的来源商城列表。
// 重排阶段按此顺序做跨商城配额分配，顺序不可依赖 map 迭代。
func Marketplaces() []Marketplace {
	return []Marketplace{MarketplaceAmazon, MarketplaceCroma, MarketplaceFlipkart}
}

// Product 是归一化后的推荐候选商品。
//
// 生命周期：每次目录归一化生成一批，会话内不可变，下次加载整体替换。
// ID 优先使用来源侧的商品链接（跨次加载稳定）；链接缺失时使用
// 本次加载内的自增计数（跨次加载不稳定，调用方不得持久化这类 ID）。
type Product struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	Brand      string      `json:"brand"`
	Price      float64     `json:"price"`
	Rating     float64     `json:"rating"`
	Source     Marketplace `json:"source"`
	Category   string      `json:"category"`
	ImageURL   string      `json:"image_url"`
	ProductURL string      `json:"product_url"`
}

// Recommendable 判断商品是否可被推荐：价格必须为正。
// 价格解析失败（0）的商品在归一化阶段就会被丢弃，这里是二次防线。
func (p *Product) Recommendable() bool {
	return p != nil && p.Price > 0
}

// IdentityKey 返回 name+brand 的同一性 key，用于兜底列表的去重。
func (p *Product) IdentityKey() string {
	return p.Name + "_" + p.Brand
}

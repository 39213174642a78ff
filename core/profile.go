package core

// AnonymousUser 是匿名/未登录用户的保留 ID。
// 偏好聚合保证该用户始终存在一份（可能全空的）画像。
const AnonymousUser = "anonymous"

// PreferenceProfile 是按用户聚合的偏好画像。
//
// 所有计数均为非负整数，由行为事件的可交换求和得到，事件顺序不影响结果。
// 全部映射为空即视为"无信号"，推荐链路对无信号画像统一走兜底。
// 画像每次从当前事件快照整体重建，本核心不做持久化。
type PreferenceProfile struct {
	UserID string

	// ViewedProducts 商品 ID -> 浏览次数（view/click/phone_view 均计入）
	ViewedProducts map[string]int

	// ClickedProducts 商品 ID -> 点击次数（仅 click 计入）
	ClickedProducts map[string]int

	// ViewedBrands 品牌 -> 加权计数（需要事件能解析到目录商品）
	ViewedBrands map[string]int

	// ViewedCategories 品类 -> 加权计数
	ViewedCategories map[string]int

	// PhoneViews 机型名字面串 -> 浏览次数（不要求解析到目录商品）
	PhoneViews map[string]int
}

// NewPreferenceProfile 创建一份全空画像。
func NewPreferenceProfile(userID string) *PreferenceProfile {
	return &PreferenceProfile{
		UserID:           userID,
		ViewedProducts:   make(map[string]int),
		ClickedProducts:  make(map[string]int),
		ViewedBrands:     make(map[string]int),
		ViewedCategories: make(map[string]int),
		PhoneViews:       make(map[string]int),
	}
}

// Empty 判断画像是否完全无信号。
func (p *PreferenceProfile) Empty() bool {
	if p == nil {
		return true
	}
	return len(p.ViewedProducts) == 0 &&
		len(p.ClickedProducts) == 0 &&
		len(p.ViewedBrands) == 0 &&
		len(p.ViewedCategories) == 0 &&
		len(p.PhoneViews) == 0
}

// InteractedSet 返回浏览与点击过的商品 ID 并集。
// 两个打分器都用它做"已交互商品不再推荐"的排除。
func (p *PreferenceProfile) InteractedSet() map[string]struct{} {
	set := make(map[string]struct{}, len(p.ViewedProducts)+len(p.ClickedProducts))
	for id := range p.ViewedProducts {
		set[id] = struct{}{}
	}
	for id := range p.ClickedProducts {
		set[id] = struct{}{}
	}
	return set
}

// ViewedSet 返回浏览过的商品 ID 集合，协同过滤的 Jaccard 相似度基于它计算。
func (p *PreferenceProfile) ViewedSet() map[string]struct{} {
	set := make(map[string]struct{}, len(p.ViewedProducts))
	for id := range p.ViewedProducts {
		set[id] = struct{}{}
	}
	return set
}

package profile

import "github.com/adikate12/pricely/core"

// Aggregator 把原始行为事件流聚合成按用户的偏好画像。
//
// 所有更新都是可交换的求和，事件顺序不影响聚合结果。
// 缺用户 ID 的事件属于数据缺陷，跳过且不致命；
// 出现在事件流里但没有任何可解析信号的用户仍会得到一份全空画像，
// 这样"无信号走兜底"的规则对所有用户统一生效。
type Aggregator struct{}

// Aggregate 返回 userID -> 画像 的映射，以及用户的首见顺序。
// 首见顺序用于快照里协同过滤同分裁决，保证输出确定性。
// 匿名用户画像始终存在。
func (a *Aggregator) Aggregate(events []core.ActivityEvent, catalog []*core.Product) (map[string]*core.PreferenceProfile, []string) {
	byID := make(map[string]*core.Product, len(catalog))
	for _, p := range catalog {
		if p != nil {
			byID[p.ID] = p
		}
	}

	profiles := make(map[string]*core.PreferenceProfile)
	order := make([]string, 0)

	ensure := func(userID string) *core.PreferenceProfile {
		if p, ok := profiles[userID]; ok {
			return p
		}
		p := core.NewPreferenceProfile(userID)
		profiles[userID] = p
		order = append(order, userID)
		return p
	}

	for i := range events {
		e := &events[i]
		if e.UserID == "" {
			continue // 缺用户 ID，跳过
		}

		p := ensure(e.UserID)

		if !e.Action.CountsAsView() {
			continue // 其余 UI 埋点不参与偏好
		}

		if ref := e.ProductRef(); ref != "" {
			p.ViewedProducts[ref]++
			if e.Action.CountsAsClick() {
				p.ClickedProducts[ref]++
			}

			// 能解析到目录商品时，追加品牌/品类信号
			if prod, ok := byID[ref]; ok {
				if prod.Brand != "" {
					p.ViewedBrands[prod.Brand]++
				}
				if prod.Category != "" {
					p.ViewedCategories[prod.Category]++
				}
			}
		}

		// 机型名字面串不要求解析到目录商品
		if name := e.PhoneName(); name != "" {
			p.PhoneViews[name]++
		}
	}

	ensure(core.AnonymousUser)

	return profiles, order
}

// BuildSnapshot 是目录 + 事件流到只读快照的一步封装。
func (a *Aggregator) BuildSnapshot(catalog []*core.Product, events []core.ActivityEvent) *core.Snapshot {
	profiles, order := a.Aggregate(events, catalog)
	return core.NewSnapshot(catalog, profiles, order)
}

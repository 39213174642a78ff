package core

import "sort"

// Snapshot 是一次推荐运行的全部输入：归一化目录 + 全量用户画像。
//
// 设计要点：快照在运行前一次性构建、运行中只读，各阶段都是
// (snapshot, request) 上的纯函数，不存在"某个 load 是否调用过"的
// 生命周期顺序问题。宿主进程并发服务请求时，每个请求应持有独立快照，
// 或由调用方用读多写少锁保护共享快照；核心自身不加锁。
type Snapshot struct {
	catalog  []*Product
	byID     map[string]*Product
	profiles map[string]*PreferenceProfile
	users    []string // 画像的插入顺序，决定相似度同分时的裁决顺序
}

// NewSnapshot 构建一份不可变快照。
// userOrder 给出画像的插入顺序（协同过滤同分裁决依赖它）；
// 传 nil 时退化为按用户 ID 排序，仍保持确定性。
func NewSnapshot(catalog []*Product, profiles map[string]*PreferenceProfile, userOrder []string) *Snapshot {
	byID := make(map[string]*Product, len(catalog))
	for _, p := range catalog {
		if p != nil {
			byID[p.ID] = p
		}
	}
	if profiles == nil {
		profiles = make(map[string]*PreferenceProfile)
	}

	users := make([]string, 0, len(profiles))
	if userOrder != nil {
		seen := make(map[string]struct{}, len(userOrder))
		for _, u := range userOrder {
			if _, ok := profiles[u]; !ok {
				continue
			}
			if _, dup := seen[u]; dup {
				continue
			}
			seen[u] = struct{}{}
			users = append(users, u)
		}
		// userOrder 未覆盖的用户补在尾部，按 ID 排序
		rest := make([]string, 0)
		for u := range profiles {
			if _, ok := seen[u]; !ok {
				rest = append(rest, u)
			}
		}
		sort.Strings(rest)
		users = append(users, rest...)
	} else {
		for u := range profiles {
			users = append(users, u)
		}
		sort.Strings(users)
	}

	return &Snapshot{
		catalog:  catalog,
		byID:     byID,
		profiles: profiles,
		users:    users,
	}
}

// Catalog 返回归一化目录（按加载顺序）。调用方不得修改返回切片。
func (s *Snapshot) Catalog() []*Product {
	if s == nil {
		return nil
	}
	return s.catalog
}

// Product 按 ID 查商品。
func (s *Snapshot) Product(id string) (*Product, bool) {
	if s == nil {
		return nil, false
	}
	p, ok := s.byID[id]
	return p, ok
}

// Profile 按用户 ID 查画像。
func (s *Snapshot) Profile(userID string) (*PreferenceProfile, bool) {
	if s == nil {
		return nil, false
	}
	p, ok := s.profiles[userID]
	return p, ok
}

// UserIDs 返回确定顺序的用户 ID 列表。
func (s *Snapshot) UserIDs() []string {
	if s == nil {
		return nil
	}
	return s.users
}

// UserCount 返回已知用户数，协同过滤要求至少 2 个。
func (s *Snapshot) UserCount() int {
	if s == nil {
		return 0
	}
	return len(s.profiles)
}

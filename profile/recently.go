package profile

import (
	"sort"

	"github.com/adikate12/pricely/core"
)

// RecentlyViewed 返回某用户最近浏览的商品 ID，最新在前，去重保留最近一次。
// 供消费层的"最近浏览"栏位使用，不参与打分。
func RecentlyViewed(events []core.ActivityEvent, userID string, n int) []string {
	if userID == "" || n <= 0 {
		return nil
	}

	views := make([]*core.ActivityEvent, 0)
	for i := range events {
		e := &events[i]
		if e.UserID != userID || !e.Action.CountsAsView() {
			continue
		}
		if e.ProductRef() == "" {
			continue
		}
		views = append(views, e)
	}

	// 时间倒序，同刻保持输入顺序
	sort.SliceStable(views, func(i, j int) bool {
		return views[i].Timestamp.After(views[j].Timestamp)
	})

	seen := make(map[string]struct{}, len(views))
	out := make([]string, 0, n)
	for _, e := range views {
		id := e.ProductRef()
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
		if len(out) == n {
			break
		}
	}
	return out
}

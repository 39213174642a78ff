package core

import "time"

// Action 是用户行为事件的动作类型。
// 只有商品浏览/点击/机型浏览参与偏好聚合，其余 UI 埋点一律忽略。
type Action string

const (
	ActionProductView  Action = "product_view"
	ActionProductClick Action = "product_click"
	ActionPhoneView    Action = "phone_view"

	// 以下为前端埋点中出现、但推荐链路不消费的动作类型。
	ActionSessionStart Action = "session_start"
	ActionButtonClick  Action = "button_click"
	ActionNavigation   Action = "navigation"
	ActionScrollDepth  Action = "scroll_depth"
	ActionPageDuration Action = "page_duration"
)

// CountsAsView 判断动作是否计入浏览次数。
// 点击隐含一次浏览，因此 click 也计 view（保证 click <= view 的派生不变式）。
func (a Action) CountsAsView() bool {
	return a == ActionProductView || a == ActionProductClick || a == ActionPhoneView
}

// CountsAsClick 判断动作是否计入点击次数。
func (a Action) CountsAsClick() bool {
	return a == ActionProductClick
}

// ActivityEvent 是只读的用户行为事件，由外部采集层产出。
// Metadata 是松散的元信息袋，商品引用可能出现在 productId 或 phoneId，
// 机型浏览事件还可能携带 phoneName 字面串。
type ActivityEvent struct {
	UserID    string         `json:"userId"`
	Action    Action         `json:"action"`
	Timestamp time.Time      `json:"timestamp"`
	Metadata  map[string]any `json:"metadata"`
}

// ProductRef 返回事件引用的商品 ID（productId 优先，其次 phoneId）。
// 没有可解析引用时返回空串。
func (e *ActivityEvent) ProductRef() string {
	if e.Metadata == nil {
		return ""
	}
	if id, ok := e.Metadata["productId"].(string); ok && id != "" {
		return id
	}
	if id, ok := e.Metadata["phoneId"].(string); ok && id != "" {
		return id
	}
	return ""
}

// PhoneName 返回事件携带的机型名字面串，没有则返回空串。
func (e *ActivityEvent) PhoneName() string {
	if e.Metadata == nil {
		return ""
	}
	if name, ok := e.Metadata["phoneName"].(string); ok {
		return name
	}
	return ""
}

package core

import "github.com/adikate12/pricely/pkg/utils"

// RecommendContext 承载一次推荐请求的用户/规模/快照信息，贯穿整个 Pipeline 透传。
type RecommendContext struct {
	UserID string

	// N 请求的结果条数，<= 0 时各节点使用自身默认值
	N int

	// Snapshot 本次运行的只读快照
	Snapshot *Snapshot

	// Profile 目标用户画像；未知用户为 nil，由兜底链路接管
	Profile *PreferenceProfile

	// Labels 请求级标签，可驱动 Pipeline 行为（例如新用户、价格敏感）
	Labels map[string]utils.Label

	// Params 请求级上下文参数（设备、场景等），RuleFilter 可引用
	Params map[string]any
}

// GetProfile 返回目标用户画像：Profile 已注入时直接用，否则从快照按 UserID 查。
func (rctx *RecommendContext) GetProfile() *PreferenceProfile {
	if rctx == nil {
		return nil
	}
	if rctx.Profile != nil {
		return rctx.Profile
	}
	if rctx.Snapshot != nil {
		if p, ok := rctx.Snapshot.Profile(rctx.UserID); ok {
			return p
		}
	}
	return nil
}

// PutLabel 写入请求级 Label。
func (rctx *RecommendContext) PutLabel(key string, lbl utils.Label) {
	if rctx.Labels == nil {
		rctx.Labels = make(map[string]utils.Label)
	}
	if old, ok := rctx.Labels[key]; ok {
		rctx.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	rctx.Labels[key] = lbl
}

// GetLabel 获取请求级 Label。
func (rctx *RecommendContext) GetLabel(key string) (utils.Label, bool) {
	if rctx.Labels == nil {
		return utils.Label{}, false
	}
	lbl, ok := rctx.Labels[key]
	return lbl, ok
}

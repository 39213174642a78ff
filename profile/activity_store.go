package profile

import (
	"context"
	"encoding/json"

	"github.com/adikate12/pricely/core"
)

// ActivityLoader 从 Store 读取外部采集方写入的行为事件快照（JSON 数组）。
// key 不存在视为空事件流，不是错误。
type ActivityLoader struct {
	Store core.Store

	// Key 存储 key，例如 "activity:events"
	Key string
}

func (l *ActivityLoader) Load(ctx context.Context) ([]core.ActivityEvent, error) {
	if l.Store == nil || l.Key == "" {
		return nil, nil
	}
	data, err := l.Store.Get(ctx, l.Key)
	if err != nil {
		if core.IsStoreNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	var events []core.ActivityEvent
	if err := json.Unmarshal(data, &events); err != nil {
		return nil, core.NewDomainError(core.ModuleProfile, core.ErrorCodeInvalidInput, "profile: malformed activity docs: "+err.Error())
	}
	return events, nil
}

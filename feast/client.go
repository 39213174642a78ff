// Package feast 对接 Feast Feature Store，把在线特征转换成用户画像。
//
// 推荐链路的画像通常由行为日志实时聚合（profile 包），但对不在当前
// 快照里的回访用户，可以从 Feast 在线存储取历史画像特征兜一层。
//
// 参考：https://github.com/feast-dev/feast
package feast

import (
	"context"
)

// Client 是 Feast 在线特征客户端接口。
// 自带 gRPC 实现（官方 SDK），也可以自行实现用于测试。
type Client interface {
	// GetOnlineFeatures 获取在线特征。
	// Features 形如 ["user_stats:viewed_brands"]，
	// 每个实体行对应返回一个特征向量。
	GetOnlineFeatures(ctx context.Context, req *GetOnlineFeaturesRequest) (*GetOnlineFeaturesResponse, error)

	// Close 关闭客户端连接
	Close() error
}

// GetOnlineFeaturesRequest 在线特征请求
type GetOnlineFeaturesRequest struct {
	// Features 特征名称列表，形如 "feature_view:feature"
	Features []string

	// EntityRows 实体行，形如 [{"user_id": "u1"}]
	EntityRows []map[string]interface{}

	// Project 项目名称，空时取客户端默认
	Project string
}

// GetOnlineFeaturesResponse 在线特征响应
type GetOnlineFeaturesResponse struct {
	// FeatureVectors 每个实体行对应一个特征向量
	FeatureVectors []FeatureVector
}

// FeatureVector 单个实体的特征值，key 为特征名称
type FeatureVector struct {
	Values map[string]interface{}
}

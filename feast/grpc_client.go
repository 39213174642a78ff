package feast

import (
	"context"
	"fmt"

	feastsdk "github.com/feast-dev/feast/sdk/go"
	feasttypes "github.com/feast-dev/feast/sdk/go/protos/feast/types"
)

// GrpcClient 基于官方 Feast Go SDK 的 gRPC 客户端实现。
type GrpcClient struct {
	client *feastsdk.GrpcClient

	// Project 默认项目名称
	Project string

	// Endpoint 服务端点，便于排查
	Endpoint string
}

var _ Client = (*GrpcClient)(nil)

// NewGrpcClient 创建 gRPC 客户端。port 为 0 时取默认端口 6565。
func NewGrpcClient(host string, port int, project string) (*GrpcClient, error) {
	if port == 0 {
		port = 6565
	}
	client, err := feastsdk.NewGrpcClient(host, port)
	if err != nil {
		return nil, fmt.Errorf("connect feast %s:%d: %w", host, port, err)
	}
	return &GrpcClient{
		client:   client,
		Project:  project,
		Endpoint: fmt.Sprintf("%s:%d", host, port),
	}, nil
}

func (c *GrpcClient) GetOnlineFeatures(ctx context.Context, req *GetOnlineFeaturesRequest) (*GetOnlineFeaturesResponse, error) {
	if len(req.Features) == 0 {
		return nil, fmt.Errorf("features are required")
	}
	if len(req.EntityRows) == 0 {
		return nil, fmt.Errorf("entity rows are required")
	}
	project := req.Project
	if project == "" {
		project = c.Project
	}
	if project == "" {
		return nil, fmt.Errorf("project is required")
	}

	entityRows := make([]feastsdk.Row, len(req.EntityRows))
	for i, row := range req.EntityRows {
		entityRow := make(feastsdk.Row, len(row))
		for k, v := range row {
			entityRow[k] = toSDKValue(v)
		}
		entityRows[i] = entityRow
	}

	sdkResp, err := c.client.GetOnlineFeatures(ctx, &feastsdk.OnlineFeaturesRequest{
		Features: req.Features,
		Entities: entityRows,
		Project:  project,
	})
	if err != nil {
		return nil, fmt.Errorf("feast get online features: %w", err)
	}

	rows := sdkResp.Rows()
	vectors := make([]FeatureVector, len(rows))
	for i, row := range rows {
		values := make(map[string]interface{}, len(req.Features))
		for _, name := range req.Features {
			if val, ok := row[name]; ok {
				if converted := fromSDKValue(val); converted != nil {
					values[name] = converted
				}
			}
		}
		vectors[i] = FeatureVector{Values: values}
	}
	return &GetOnlineFeaturesResponse{FeatureVectors: vectors}, nil
}

func (c *GrpcClient) Close() error {
	c.client = nil
	return nil
}

func toSDKValue(v interface{}) *feasttypes.Value {
	switch val := v.(type) {
	case string:
		return feastsdk.StrVal(val)
	case int:
		return feastsdk.Int64Val(int64(val))
	case int32:
		return feastsdk.Int64Val(int64(val))
	case int64:
		return feastsdk.Int64Val(val)
	case float32:
		return feastsdk.FloatVal(val)
	case float64:
		return feastsdk.DoubleVal(val)
	case bool:
		return feastsdk.BoolVal(val)
	case []byte:
		return feastsdk.BytesVal(val)
	default:
		return feastsdk.StrVal(fmt.Sprintf("%v", val))
	}
}

func fromSDKValue(val *feasttypes.Value) interface{} {
	if val == nil {
		return nil
	}
	switch v := val.Val.(type) {
	case *feasttypes.Value_StringVal:
		return v.StringVal
	case *feasttypes.Value_Int32Val:
		return int64(v.Int32Val)
	case *feasttypes.Value_Int64Val:
		return v.Int64Val
	case *feasttypes.Value_FloatVal:
		return float64(v.FloatVal)
	case *feasttypes.Value_DoubleVal:
		return v.DoubleVal
	case *feasttypes.Value_BoolVal:
		return v.BoolVal
	case *feasttypes.Value_BytesVal:
		return string(v.BytesVal)
	default:
		return nil
	}
}

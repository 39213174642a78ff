package feast

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/adikate12/pricely/core"
)

// 画像特征视图的默认特征名。计数类特征以 JSON 编码的
// map[string]int 存在 Feast 在线存储里。
const (
	FeatureViewedProducts   = "user_profile:viewed_products"
	FeatureClickedProducts  = "user_profile:clicked_products"
	FeatureViewedBrands     = "user_profile:viewed_brands"
	FeatureViewedCategories = "user_profile:viewed_categories"
	FeaturePhoneViews       = "user_profile:phone_views"
)

// ProfileProvider 从 Feast 在线特征取用户画像，
// 给快照之外的回访用户做个性化兜底。
type ProfileProvider struct {
	Client Client

	// Project Feast 项目名称
	Project string

	// EntityKey 实体键名，空时取 "user_id"
	EntityKey string

	// Features 要取的特征列表，空时取默认的五个画像特征
	Features []string
}

// GetProfile 取单个用户的画像。特征不存在或全空时返回 (nil, nil)，
// 调用方按冷启动处理。
func (p *ProfileProvider) GetProfile(ctx context.Context, userID string) (*core.PreferenceProfile, error) {
	if p.Client == nil {
		return nil, core.NewDomainError(core.ModuleFeast, core.ErrorCodeUnavailable, "feast client not configured")
	}
	if userID == "" {
		return nil, nil
	}

	entityKey := p.EntityKey
	if entityKey == "" {
		entityKey = "user_id"
	}
	features := p.Features
	if len(features) == 0 {
		features = []string{
			FeatureViewedProducts,
			FeatureClickedProducts,
			FeatureViewedBrands,
			FeatureViewedCategories,
			FeaturePhoneViews,
		}
	}

	resp, err := p.Client.GetOnlineFeatures(ctx, &GetOnlineFeaturesRequest{
		Features:   features,
		EntityRows: []map[string]interface{}{{entityKey: userID}},
		Project:    p.Project,
	})
	if err != nil {
		return nil, fmt.Errorf("feast profile for %s: %w", userID, err)
	}
	if len(resp.FeatureVectors) == 0 {
		return nil, nil
	}

	values := resp.FeatureVectors[0].Values
	profile := core.NewPreferenceProfile(userID)
	decodeCounts(values[FeatureViewedProducts], profile.ViewedProducts)
	decodeCounts(values[FeatureClickedProducts], profile.ClickedProducts)
	decodeCounts(values[FeatureViewedBrands], profile.ViewedBrands)
	decodeCounts(values[FeatureViewedCategories], profile.ViewedCategories)
	decodeCounts(values[FeaturePhoneViews], profile.PhoneViews)

	if profile.Empty() {
		return nil, nil
	}
	return profile, nil
}

// decodeCounts 把 JSON 编码的计数 map 解进目标，坏值静默跳过。
func decodeCounts(raw interface{}, dst map[string]int) {
	s, ok := raw.(string)
	if !ok || s == "" {
		return
	}
	var counts map[string]int
	if err := json.Unmarshal([]byte(s), &counts); err != nil {
		return
	}
	for k, v := range counts {
		if k != "" && v > 0 {
			dst[k] = v
		}
	}
}

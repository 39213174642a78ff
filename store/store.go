// Package store 提供 core.Store / core.KeyValueStore 的具体实现。
//
// 在推荐链路里存储承担三类数据：
//   - 各商城的抓取批次（catalog.StoreSource 按 key 读 JSON 数组）
//   - 用户行为事件日志（profile.ActivityLoader 按 key 读 JSON 数组）
//   - 全站热度有序集合（recall.Popular 走 ZRange）
//
// 接口定义在 core 包，此包只放实现：
//
//	var s core.Store = store.NewMemoryStore()
//	var kv core.KeyValueStore = store.NewMemoryStore()
package store

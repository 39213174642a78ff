// Package pricely 是一个跨商城手机比价站的混合推荐引擎。
//
// 设计要点：
// - Pipeline-first: 推荐逻辑通过 Node 串联（Recall → Filter → ReRank → Fallback）
// - Labels-first: labels 全链路透传与标准化 merge，支持 explain / 观测 / 策略驱动
// - 快照一致性: 一次运行固定一份目录 + 画像快照，结果可复现
// - 结构无错: 三路结果（内容/协同/混合）层层兜底，调用方总能拿到完整形状
package pricely

import "github.com/adikate12/pricely/pipeline"

// 轻量 facade：便于用户直接 import 根包使用核心抽象。
type Pipeline = pipeline.Pipeline
type Node = pipeline.Node
type Kind = pipeline.Kind

const (
	KindRecall   = pipeline.KindRecall
	KindFilter   = pipeline.KindFilter
	KindReRank   = pipeline.KindReRank
	KindFallback = pipeline.KindFallback
)

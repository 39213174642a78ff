package utils

// Label 是链路可解释性的最小单元：每条推荐带上"谁产出、为什么"。
// Value 与 Source 的语义由业务自定义，这里只提供标准化的合并规则。
type Label struct {
	Value  string `json:"value"`
	Source string `json:"source"` // recall / filter / rerank / fallback ...
}

// MergeLabel 合并同名 Label，默认策略是保留历史、可追踪：
// Value 以 '|' 累积，Source 以 ',' 累积。
func MergeLabel(existing Label, incoming Label) Label {
	if existing.Value == "" {
		return incoming
	}
	if incoming.Value == "" {
		return existing
	}

	merged := existing
	merged.Value = existing.Value + "|" + incoming.Value
	switch {
	case existing.Source == "":
		merged.Source = incoming.Source
	case incoming.Source == "":
		merged.Source = existing.Source
	default:
		merged.Source = existing.Source + "," + incoming.Source
	}
	return merged
}

/*
 * @module service/gap_analysis/document_inspector
 * @description 嵌套文档检查器，按点号路径检查半结构化文档字段内的必需键
 * @architecture 分层架构 - 业务服务层
 * @documentReference ai_docs/gap_analysis_req.md
 * @stateFlow 纯 CPU 计算，无存储访问，不会阻塞
 * @rules 文档字段缺失/为 nil/非 map 时该字段全部必需键记 missing，绝不 panic；分数为全字段合并的 found/total
 * @dependencies strings, sort
 * @refs types.go, analyzer.go
 */

package gap_analysis

import (
	"sort"
	"strings"
)

// DocumentInspector 嵌套文档检查器
type DocumentInspector struct{}

// NewDocumentInspector 创建嵌套文档检查器实例
func NewDocumentInspector() *DocumentInspector {
	return &DocumentInspector{}
}

// Inspect 检查资产嵌套文档键完整性
// 键支持点号路径（如 deployment.strategy）；分数按全部字段的必需键合并计算，不做逐字段平均
func (i *DocumentInspector) Inspect(asset AssetRecord, requirements *DataRequirements) (*NestedDocumentGapReport, error) {
	if asset == nil {
		return nil, ErrNilAsset
	}
	if requirements == nil {
		return nil, ErrNilRequirements
	}

	report := &NestedDocumentGapReport{
		MissingKeys: map[string][]string{},
		EmptyValues: map[string][]string{},
	}

	totalKeys := 0
	found := 0

	// 字段名排序保证输出确定性
	fieldNames := make([]string, 0, len(requirements.RequiredNestedKeys))
	for name := range requirements.RequiredNestedKeys {
		fieldNames = append(fieldNames, name)
	}
	sort.Strings(fieldNames)

	for _, fieldName := range fieldNames {
		requiredKeys := requirements.RequiredNestedKeys[fieldName]
		totalKeys += len(requiredKeys)

		doc, ok := asset.Document(fieldName)
		if !ok || doc == nil {
			// 文档字段整体缺失: 该字段所有必需键均记 missing
			report.MissingKeys[fieldName] = append([]string(nil), requiredKeys...)
			continue
		}

		for _, key := range requiredKeys {
			switch resolvePath(map[string]interface{}(doc), key) {
			case pathFound:
				found++
			case pathEmpty:
				report.EmptyValues[fieldName] = append(report.EmptyValues[fieldName], key)
			default:
				report.MissingKeys[fieldName] = append(report.MissingKeys[fieldName], key)
			}
		}
	}

	if totalKeys == 0 {
		report.CompletenessScore = 1.0
		return report, nil
	}
	report.CompletenessScore = clampScore(float64(found) / float64(totalKeys))
	return report, nil
}

type pathResult int

const (
	pathMissing pathResult = iota
	pathEmpty
	pathFound
)

// resolvePath 沿点号路径逐层下钻
// 中途遇到非 map 值或键不存在视为 missing；终点为 nil 或空串/空集合视为 empty
func resolvePath(doc map[string]interface{}, dottedKey string) pathResult {
	parts := strings.Split(dottedKey, ".")
	current := interface{}(doc)

	for _, part := range parts {
		node, ok := asStringMap(current)
		if !ok {
			return pathMissing
		}
		value, exists := node[part]
		if !exists {
			return pathMissing
		}
		current = value
	}

	if current == nil || isEmptyValue(current) {
		return pathEmpty
	}
	return pathFound
}

// asStringMap 将 JSONB 反序列化产生的各种 map 形态统一为 map[string]interface{}
func asStringMap(value interface{}) (map[string]interface{}, bool) {
	switch v := value.(type) {
	case map[string]interface{}:
		return v, true
	default:
		return nil, false
	}
}

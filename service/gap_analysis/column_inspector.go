/*
 * @module service/gap_analysis/column_inspector
 * @description 结构化字段检查器，对资产一级属性做存在性/空值/null 三态判定
 * @architecture 分层架构 - 业务服务层
 * @documentReference ai_docs/gap_analysis_req.md
 * @stateFlow 纯 CPU 计算，无存储访问，不会阻塞
 * @rules 字段不在资产模式中按 missing 处理而不是报错；空要求集分数为 1.0
 * @dependencies github.com/spf13/cast, assessment-service/service/models
 * @refs types.go, analyzer.go
 */

package gap_analysis

import (
	"strings"

	"assessment-service/service/models"

	"github.com/spf13/cast"
)

// ColumnInspector 结构化字段检查器
type ColumnInspector struct{}

// NewColumnInspector 创建结构化字段检查器实例
func NewColumnInspector() *ColumnInspector {
	return &ColumnInspector{}
}

// Inspect 检查资产结构化字段完整性
// 三态判定: 字段不在模式中=missing，存在但为 nil=null，存在非 nil 但为空串/空集合=empty
func (i *ColumnInspector) Inspect(asset AssetRecord, requirements *DataRequirements) (*ColumnGapReport, error) {
	if asset == nil {
		return nil, ErrNilAsset
	}
	if requirements == nil {
		return nil, ErrNilRequirements
	}

	report := &ColumnGapReport{
		Missing: []string{},
		Empty:   []string{},
		Null:    []string{},
	}

	// 空要求集: 没有可检查项即视为完整
	if len(requirements.RequiredColumns) == 0 {
		report.CompletenessScore = 1.0
		return report, nil
	}

	for _, name := range requirements.RequiredColumns {
		value, ok := asset.Field(name)
		if !ok {
			report.Missing = append(report.Missing, name)
			continue
		}
		if value == nil {
			report.Null = append(report.Null, name)
			continue
		}
		if isEmptyValue(value) {
			report.Empty = append(report.Empty, name)
		}
	}

	required := len(requirements.RequiredColumns)
	unsatisfied := len(report.Missing) + len(report.Empty) + len(report.Null)
	report.CompletenessScore = clampScore(float64(required-unsatisfied) / float64(required))
	return report, nil
}

// isEmptyValue 判定非 nil 值是否为空
// 字符串去除首尾空白后为空、集合长度为 0 视为空；数值永远不算空（0 是合法采集值）
func isEmptyValue(value interface{}) bool {
	switch v := value.(type) {
	case string:
		return strings.TrimSpace(v) == ""
	case []interface{}:
		return len(v) == 0
	case []string:
		return len(v) == 0
	case map[string]interface{}:
		return len(v) == 0
	case models.JSONB:
		return len(v) == 0
	case bool, int, int32, int64, float32, float64:
		return false
	default:
		// 其余标量类型统一走字符串化判定
		return strings.TrimSpace(cast.ToString(v)) == ""
	}
}

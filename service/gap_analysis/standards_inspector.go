/*
 * @module service/gap_analysis/standards_inspector
 * @description 标准检查器，按租户范围评估资产是否满足架构/合规标准的最低要求
 * @architecture 分层架构 - 业务服务层
 * @documentReference ai_docs/gap_analysis_req.md
 * @stateFlow 按名称加载标准记录 -> 逐条评估最低要求 -> 强制/建议分流
 * @rules 强制标准失败进入 missing_mandatory 并置 override_required，人工豁免前资产不得进入下一阶段；要求名称未命中记录按未知成员跳过
 * @dependencies assessment-service/service/models, github.com/spf13/cast, log/slog
 * @refs store.go, script.go, analyzer.go
 */

package gap_analysis

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"assessment-service/service/models"

	"github.com/spf13/cast"
)

// StandardsInspector 标准检查器
type StandardsInspector struct {
	store  Store
	script *ScriptEvaluator
}

// NewStandardsInspector 创建标准检查器实例
func NewStandardsInspector(store Store) *StandardsInspector {
	return &StandardsInspector{
		store:  store,
		script: NewScriptEvaluator(),
	}
}

// Inspect 评估资产是否满足要求的标准
// 分数 = 满足的标准数 / 参与评估的标准数，强制与建议在本层等权（跨层加权在聚合器完成）
func (i *StandardsInspector) Inspect(ctx context.Context, asset AssetRecord, requirements *DataRequirements, tenant models.Tenant) (*StandardsGapReport, error) {
	if asset == nil {
		return nil, ErrNilAsset
	}
	if requirements == nil {
		return nil, ErrNilRequirements
	}

	report := &StandardsGapReport{
		Violations:       []StandardViolation{},
		MissingMandatory: []string{},
	}

	if len(requirements.RequiredStandards) == 0 {
		report.CompletenessScore = 1.0
		return report, nil
	}

	records, err := i.store.ListStandards(ctx, tenant, requirements.RequiredStandards)
	if err != nil {
		return nil, err
	}

	byName := make(map[string]models.ArchitectureStandard, len(records))
	for _, record := range records {
		byName[record.StandardName] = record
	}

	evaluated := 0
	satisfied := 0

	for _, name := range requirements.RequiredStandards {
		record, ok := byName[name]
		if !ok {
			// 标准目录中没有该名称的记录: 未知成员，跳过且不参与分母
			slog.Warn("缺口分析: 标准记录不存在，跳过", "standard", name, "tenant", tenant.String())
			continue
		}
		evaluated++

		failures := i.evaluateStandard(asset, record)
		if len(failures) == 0 {
			satisfied++
			continue
		}

		details := strings.Join(failures, "; ")
		report.Violations = append(report.Violations, StandardViolation{
			StandardName:      record.StandardName,
			RequirementType:   record.RequirementType,
			ViolationDetails:  details,
			IsMandatory:       record.IsMandatory,
			OverrideAvailable: record.IsMandatory,
		})
		if record.IsMandatory {
			report.MissingMandatory = append(report.MissingMandatory, record.StandardName)
			report.OverrideRequired = true
		}
	}

	if evaluated == 0 {
		report.CompletenessScore = 1.0
		return report, nil
	}
	report.CompletenessScore = clampScore(float64(satisfied) / float64(evaluated))
	return report, nil
}

// evaluateStandard 逐条评估标准的最低要求，返回失败描述列表
// minimum_requirements 约定结构: {"checks": [{"field": ..., "operator": ..., "value"/"values"/"script": ...}]}
func (i *StandardsInspector) evaluateStandard(asset AssetRecord, record models.ArchitectureStandard) []string {
	rawChecks, ok := record.MinimumRequirements["checks"]
	if !ok {
		return nil
	}
	checks, ok := rawChecks.([]interface{})
	if !ok {
		slog.Warn("缺口分析: 标准最低要求格式异常，跳过", "standard", record.StandardName)
		return nil
	}

	var failures []string
	for _, rawCheck := range checks {
		check, ok := rawCheck.(map[string]interface{})
		if !ok {
			continue
		}
		if failure := i.evaluateCheck(asset, check); failure != "" {
			failures = append(failures, failure)
		}
	}
	return failures
}

// evaluateCheck 评估单条检查项，通过返回空串，失败返回描述
func (i *StandardsInspector) evaluateCheck(asset AssetRecord, check map[string]interface{}) string {
	operator := cast.ToString(check["operator"])
	field := cast.ToString(check["field"])

	switch operator {
	case "required":
		value, ok := asset.Field(field)
		if !ok || value == nil || isEmptyValue(value) {
			return fmt.Sprintf("字段 %s 必须采集且非空", field)
		}
		return ""

	case "equals":
		expected := cast.ToString(check["value"])
		value, ok := asset.Field(field)
		if !ok || value == nil || cast.ToString(value) != expected {
			return fmt.Sprintf("字段 %s 必须等于 %q", field, expected)
		}
		return ""

	case "one_of":
		allowed := cast.ToStringSlice(check["values"])
		value, ok := asset.Field(field)
		if !ok || value == nil {
			return fmt.Sprintf("字段 %s 必须采集且取值在 %v 中", field, allowed)
		}
		actual := cast.ToString(value)
		for _, candidate := range allowed {
			if actual == candidate {
				return ""
			}
		}
		return fmt.Sprintf("字段 %s 取值 %q 不在允许集合 %v 中", field, actual, allowed)

	case "min":
		threshold := cast.ToFloat64(check["value"])
		value, ok := asset.Field(field)
		if !ok || value == nil || cast.ToFloat64(value) < threshold {
			return fmt.Sprintf("字段 %s 必须 >= %v", field, threshold)
		}
		return ""

	case "expression":
		script := cast.ToString(check["script"])
		if script == "" {
			return ""
		}
		passed, err := i.evaluateExpression(asset, field, script)
		if err != nil {
			slog.Warn("缺口分析: 表达式检查执行失败，按未通过处理", "field", field, "error", err)
			return fmt.Sprintf("字段 %s 的表达式检查执行失败", field)
		}
		if !passed {
			return fmt.Sprintf("字段 %s 未通过表达式检查", field)
		}
		return ""

	default:
		slog.Warn("缺口分析: 未知检查操作符，跳过", "operator", operator, "field", field)
		return ""
	}
}

// evaluateExpression 通过脚本求值器执行 expression 检查项
func (i *StandardsInspector) evaluateExpression(asset AssetRecord, field, script string) (bool, error) {
	value, _ := asset.Field(field)
	result, err := i.script.Evaluate(script, map[string]interface{}{
		"field": field,
		"value": value,
	})
	if err != nil {
		return false, err
	}
	return cast.ToBool(result), nil
}

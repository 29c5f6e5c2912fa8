/*
 * @module service/gap_analysis/enrichment_inspector
 * @description 增强信息表检查器，检查资产的七类 1:1 分析维度记录的存在性与关键字段完整性
 * @architecture 分层架构 - 业务服务层
 * @documentReference ai_docs/gap_analysis_req.md
 * @stateFlow 逐表查询存储 -> 关键字段 O(1) 判定 -> 贡献值求均
 * @rules 缺表记 0.0，有表缺关键字段记 0.5，完整记 1.0；未知表名记日志后跳过，不参与分母
 * @dependencies assessment-service/service/models, log/slog
 * @refs store.go, analyzer.go
 */

package gap_analysis

import (
	"context"
	"log/slog"

	"assessment-service/service/models"
)

// enrichmentCriticalFields 各增强表的关键字段清单
// 判定限定为字典查找，不做递归遍历，保证单资产七表检查的耗时上界
var enrichmentCriticalFields = map[string][]string{
	"resilience":          {"rto_minutes", "rpo_minutes"},
	"compliance_flags":    {"data_classification", "regulated_data"},
	"vulnerabilities":     {"last_scan_date", "critical_count"},
	"tech_debt":           {"eol_date", "remediation_effort"},
	"dependencies":        {"upstream", "downstream"},
	"performance_metrics": {"cpu_p95", "memory_p95"},
	"cost_optimization":   {"monthly_cost", "utilization_percent"},
}

// 每表贡献值
const (
	enrichmentMissingScore    = 0.0
	enrichmentIncompleteScore = 0.5
	enrichmentCompleteScore   = 1.0
)

// EnrichmentInspector 增强信息表检查器
type EnrichmentInspector struct {
	store Store
}

// NewEnrichmentInspector 创建增强信息表检查器实例
func NewEnrichmentInspector(store Store) *EnrichmentInspector {
	return &EnrichmentInspector{store: store}
}

// Inspect 检查资产增强信息完整性
// 总分 = 各表贡献值的平均；存储访问错误原样上抛
func (i *EnrichmentInspector) Inspect(ctx context.Context, asset AssetRecord, requirements *DataRequirements, tenant models.Tenant) (*EnrichmentGapReport, error) {
	if asset == nil {
		return nil, ErrNilAsset
	}
	if requirements == nil {
		return nil, ErrNilRequirements
	}

	report := &EnrichmentGapReport{
		MissingTables:    []string{},
		IncompleteTables: map[string][]string{},
	}

	total := 0.0
	counted := 0

	for _, tableName := range requirements.RequiredEnrichments {
		criticalFields, known := enrichmentCriticalFields[tableName]
		if !known {
			// 前向兼容: 旧要求描述符中的新表名不致命
			slog.Warn("缺口分析: 未知增强表名，跳过", "table", tableName, "asset_id", asset.GetID())
			continue
		}
		counted++

		data, err := i.store.GetEnrichment(ctx, tenant, asset.GetID(), tableName)
		if err != nil {
			return nil, err
		}
		if data == nil {
			report.MissingTables = append(report.MissingTables, tableName)
			total += enrichmentMissingScore
			continue
		}

		missingFields := missingCriticalFields(data, criticalFields)
		if len(missingFields) > 0 {
			report.IncompleteTables[tableName] = missingFields
			total += enrichmentIncompleteScore
			continue
		}
		total += enrichmentCompleteScore
	}

	if counted == 0 {
		report.CompletenessScore = 1.0
		return report, nil
	}
	report.CompletenessScore = clampScore(total / float64(counted))
	return report, nil
}

// missingCriticalFields 返回记录中缺失或为空的关键字段
func missingCriticalFields(data models.JSONB, criticalFields []string) []string {
	var missing []string
	for _, field := range criticalFields {
		value, ok := data[field]
		if !ok || value == nil || isEmptyValue(value) {
			missing = append(missing, field)
		}
	}
	return missing
}

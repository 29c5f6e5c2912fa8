/*
 * @module service/gap_analysis/enrichment_inspector_test
 * @description 增强信息表检查器单元测试
 * @architecture 测试层 - 通过内存存储替身模拟数据访问层
 * @documentReference .specify/memory/test_plan.md
 * @stateFlow 预置增强记录 -> 执行检查 -> 贡献值与分数验证
 * @rules 确保业务逻辑的正确性、数据处理和状态管理
 * @dependencies testing, testify
 * @refs enrichment_inspector.go
 */

package gap_analysis

import (
	"context"
	"testing"

	"assessment-service/service/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestEnrichmentInspector_Contributions 缺表 0.0 / 缺关键字段 0.5 / 完整 1.0 求均
func TestEnrichmentInspector_Contributions(t *testing.T) {
	tenant := testTenant()
	store := newFakeStore()
	// resilience 完整
	store.putEnrichment(tenant, "asset-1", "resilience", models.JSONB{
		"rto_minutes": 60, "rpo_minutes": 15,
	})
	// compliance_flags 缺 regulated_data
	store.putEnrichment(tenant, "asset-1", "compliance_flags", models.JSONB{
		"data_classification": "internal",
	})
	// vulnerabilities 缺表

	inspector := NewEnrichmentInspector(store)
	asset := &models.Asset{ID: "asset-1", ClientID: tenant.ClientID, EngagementID: tenant.EngagementID, AssetType: "server"}

	report, err := inspector.Inspect(context.Background(), asset, &DataRequirements{
		RequiredEnrichments: []string{"resilience", "compliance_flags", "vulnerabilities"},
	}, tenant)
	require.NoError(t, err)

	assert.Equal(t, []string{"vulnerabilities"}, report.MissingTables)
	assert.Equal(t, []string{"regulated_data"}, report.IncompleteTables["compliance_flags"])
	// (1.0 + 0.5 + 0.0) / 3
	assert.InDelta(t, 0.5, report.CompletenessScore, 1e-9)
}

// TestEnrichmentInspector_UnknownTableSkipped 未知表名跳过且不参与分母
func TestEnrichmentInspector_UnknownTableSkipped(t *testing.T) {
	tenant := testTenant()
	store := newFakeStore()
	store.putEnrichment(tenant, "asset-1", "resilience", models.JSONB{
		"rto_minutes": 60, "rpo_minutes": 15,
	})

	inspector := NewEnrichmentInspector(store)
	asset := &models.Asset{ID: "asset-1", ClientID: tenant.ClientID, EngagementID: tenant.EngagementID, AssetType: "server"}

	report, err := inspector.Inspect(context.Background(), asset, &DataRequirements{
		RequiredEnrichments: []string{"resilience", "table_from_the_future"},
	}, tenant)
	require.NoError(t, err)

	// 未知表不拉低分数
	assert.InDelta(t, 1.0, report.CompletenessScore, 1e-9)
	assert.Empty(t, report.MissingTables)
}

// TestEnrichmentInspector_EmptyCriticalFieldCountsMissing 关键字段为 nil 或空串视为缺失
func TestEnrichmentInspector_EmptyCriticalFieldCountsMissing(t *testing.T) {
	tenant := testTenant()
	store := newFakeStore()
	store.putEnrichment(tenant, "asset-1", "tech_debt", models.JSONB{
		"eol_date":           "",
		"remediation_effort": nil,
	})

	inspector := NewEnrichmentInspector(store)
	asset := &models.Asset{ID: "asset-1", ClientID: tenant.ClientID, EngagementID: tenant.EngagementID, AssetType: "application"}

	report, err := inspector.Inspect(context.Background(), asset, &DataRequirements{
		RequiredEnrichments: []string{"tech_debt"},
	}, tenant)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"eol_date", "remediation_effort"}, report.IncompleteTables["tech_debt"])
	assert.InDelta(t, 0.5, report.CompletenessScore, 1e-9)
}

// TestEnrichmentInspector_NoRequirements 无要求表时分数为 1.0
func TestEnrichmentInspector_NoRequirements(t *testing.T) {
	inspector := NewEnrichmentInspector(newFakeStore())
	asset := &models.Asset{ID: "asset-1", AssetType: "server"}

	report, err := inspector.Inspect(context.Background(), asset, &DataRequirements{}, testTenant())
	require.NoError(t, err)
	assert.InDelta(t, 1.0, report.CompletenessScore, 1e-9)
}

/*
 * @module service/gap_analysis/column_inspector_test
 * @description 结构化字段检查器单元测试
 * @architecture 测试层
 * @documentReference .specify/memory/test_plan.md
 * @stateFlow 构造资产 -> 执行检查 -> 三态与分数验证
 * @rules 确保业务逻辑的正确性、数据处理和状态管理
 * @dependencies testing, testify
 * @refs column_inspector.go
 */

package gap_analysis

import (
	"testing"

	"assessment-service/service/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestColumnInspector_ThreeStates 字段三态判定: 不在模式=missing, nil=null, 空白串=empty
func TestColumnInspector_ThreeStates(t *testing.T) {
	inspector := NewColumnInspector()

	asset := &models.Asset{
		ID:        "asset-1",
		AssetType: "server",
		Hostname:  strPtr("web01"),
		IPAddress: strPtr("   "),
		// Environment 未采集(nil)
	}

	requirements := &DataRequirements{
		RequiredColumns: []string{"hostname", "ip_address", "environment", "not_a_real_column"},
	}

	report, err := inspector.Inspect(asset, requirements)
	require.NoError(t, err)

	assert.Equal(t, []string{"not_a_real_column"}, report.Missing)
	assert.Equal(t, []string{"ip_address"}, report.Empty)
	assert.Equal(t, []string{"environment"}, report.Null)
	assert.InDelta(t, 0.25, report.CompletenessScore, 1e-9)
}

// TestColumnInspector_EmptyRequirements 空要求集分数为 1.0
func TestColumnInspector_EmptyRequirements(t *testing.T) {
	inspector := NewColumnInspector()
	asset := &models.Asset{ID: "asset-1", AssetType: "server"}

	report, err := inspector.Inspect(asset, &DataRequirements{})
	require.NoError(t, err)
	assert.InDelta(t, 1.0, report.CompletenessScore, 1e-9)
	assert.Empty(t, report.Missing)
}

// TestColumnInspector_ZeroIsNotEmpty 数值 0 是合法采集值，不算空
func TestColumnInspector_ZeroIsNotEmpty(t *testing.T) {
	inspector := NewColumnInspector()

	zero := 0
	asset := &models.Asset{ID: "asset-1", AssetType: "server", CPUCores: &zero}

	report, err := inspector.Inspect(asset, &DataRequirements{RequiredColumns: []string{"cpu_cores"}})
	require.NoError(t, err)
	assert.InDelta(t, 1.0, report.CompletenessScore, 1e-9)
	assert.Empty(t, report.Empty)
	assert.Empty(t, report.Null)
}

// TestColumnInspector_AllSatisfied 全部满足时分数为 1.0 且三个清单为空
func TestColumnInspector_AllSatisfied(t *testing.T) {
	inspector := NewColumnInspector()

	memory := 64.0
	asset := &models.Asset{
		ID:          "asset-1",
		AssetType:   "server",
		Hostname:    strPtr("web01"),
		Environment: strPtr("production"),
		MemoryGB:    &memory,
	}

	report, err := inspector.Inspect(asset, &DataRequirements{
		RequiredColumns: []string{"hostname", "environment", "memory_gb"},
	})
	require.NoError(t, err)

	assert.InDelta(t, 1.0, report.CompletenessScore, 1e-9)
	assert.Empty(t, report.Missing)
	assert.Empty(t, report.Empty)
	assert.Empty(t, report.Null)
}

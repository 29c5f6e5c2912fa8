/*
 * @module service/gap_analysis/document_inspector_test
 * @description 嵌套文档检查器单元测试，覆盖点号路径解析的各种形态
 * @architecture 测试层
 * @documentReference .specify/memory/test_plan.md
 * @stateFlow 构造文档字段 -> 执行检查 -> 路径判定与分数验证
 * @rules 确保业务逻辑的正确性、数据处理和状态管理
 * @dependencies testing, testify
 * @refs document_inspector.go
 */

package gap_analysis

import (
	"testing"

	"assessment-service/service/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDocumentInspector_DottedPath 点号路径逐层下钻的三态判定
func TestDocumentInspector_DottedPath(t *testing.T) {
	inspector := NewDocumentInspector()

	asset := &models.Asset{
		ID:        "asset-1",
		AssetType: "application",
		DeploymentInfo: models.JSONB{
			"deployment": map[string]interface{}{
				"strategy": "blue-green",
				"replicas": nil,
			},
		},
	}

	requirements := &DataRequirements{
		RequiredNestedKeys: map[string][]string{
			"deployment_info": {"deployment.strategy", "deployment.replicas", "deployment.region"},
		},
	}

	report, err := inspector.Inspect(asset, requirements)
	require.NoError(t, err)

	assert.Equal(t, []string{"deployment.replicas"}, report.EmptyValues["deployment_info"])
	assert.Equal(t, []string{"deployment.region"}, report.MissingKeys["deployment_info"])
	// 3 个必需键命中 1 个
	assert.InDelta(t, 1.0/3.0, report.CompletenessScore, 1e-9)
}

// TestDocumentInspector_AbsentDocument 文档字段整体缺失时该字段全部必需键记 missing
func TestDocumentInspector_AbsentDocument(t *testing.T) {
	inspector := NewDocumentInspector()

	asset := &models.Asset{ID: "asset-1", AssetType: "application"}
	requirements := &DataRequirements{
		RequiredNestedKeys: map[string][]string{
			"deployment_info": {"deployment.strategy", "deployment.replicas"},
		},
	}

	report, err := inspector.Inspect(asset, requirements)
	require.NoError(t, err)

	assert.Equal(t, []string{"deployment.strategy", "deployment.replicas"}, report.MissingKeys["deployment_info"])
	assert.InDelta(t, 0.0, report.CompletenessScore, 1e-9)
}

// TestDocumentInspector_NonMapIntermediate 中间节点是标量时按 missing 处理，不 panic
func TestDocumentInspector_NonMapIntermediate(t *testing.T) {
	inspector := NewDocumentInspector()

	asset := &models.Asset{
		ID:        "asset-1",
		AssetType: "server",
		Configuration: models.JSONB{
			"patching": "manual",
		},
	}
	requirements := &DataRequirements{
		RequiredNestedKeys: map[string][]string{
			"configuration": {"patching.schedule"},
		},
	}

	report, err := inspector.Inspect(asset, requirements)
	require.NoError(t, err)
	assert.Equal(t, []string{"patching.schedule"}, report.MissingKeys["configuration"])
}

// TestDocumentInspector_MultipleFields 多文档字段的必需键合并计分
func TestDocumentInspector_MultipleFields(t *testing.T) {
	inspector := NewDocumentInspector()

	asset := &models.Asset{
		ID:        "asset-1",
		AssetType: "application",
		Configuration: models.JSONB{
			"runtime": map[string]interface{}{"version": "1.22"},
		},
		DeploymentInfo: models.JSONB{
			"deployment": map[string]interface{}{"strategy": "rolling"},
		},
	}
	requirements := &DataRequirements{
		RequiredNestedKeys: map[string][]string{
			"configuration":   {"runtime.version"},
			"deployment_info": {"deployment.strategy", "deployment.replicas"},
		},
	}

	report, err := inspector.Inspect(asset, requirements)
	require.NoError(t, err)
	assert.InDelta(t, 2.0/3.0, report.CompletenessScore, 1e-9)
}

// TestDocumentInspector_NoRequirements 无必需键时分数为 1.0
func TestDocumentInspector_NoRequirements(t *testing.T) {
	inspector := NewDocumentInspector()
	asset := &models.Asset{ID: "asset-1", AssetType: "server"}

	report, err := inspector.Inspect(asset, &DataRequirements{RequiredNestedKeys: map[string][]string{}})
	require.NoError(t, err)
	assert.InDelta(t, 1.0, report.CompletenessScore, 1e-9)
}

/*
 * @module service/gap_analysis/questionnaire_test
 * @description 问卷构建器单元测试，覆盖结构分组、优先级排序和去重
 * @architecture 测试层
 * @documentReference .specify/memory/test_plan.md
 * @stateFlow 构造缺口报告 -> 构建问卷 -> 分组与排序验证
 * @rules 确保业务逻辑的正确性、数据处理和状态管理
 * @dependencies testing, testify
 * @refs questionnaire.go
 */

package gap_analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reportWithGaps(assetID, assetType string, gaps map[Priority][]Gap) *AggregatedGapReport {
	return &AggregatedGapReport{
		AssetID:        assetID,
		AssetType:      assetType,
		GapsByPriority: gaps,
	}
}

// TestQuestionnaire_GroupIdenticalStructures 未满足要求集合相同的资产合并为一个分组
func TestQuestionnaire_GroupIdenticalStructures(t *testing.T) {
	builder := NewQuestionnaireBuilder()

	sharedGaps := map[Priority][]Gap{
		PriorityHigh: {
			{Layer: LayerColumns, Requirement: "hostname", Priority: PriorityHigh, Description: "字段缺失"},
		},
	}

	sections := builder.Build([]*AggregatedGapReport{
		reportWithGaps("asset-b", "server", sharedGaps),
		reportWithGaps("asset-a", "server", sharedGaps),
		reportWithGaps("asset-c", "database", sharedGaps),
	})

	require.Len(t, sections, 2)

	var serverSection *QuestionSection
	for idx := range sections {
		if sections[idx].AssetType == "server" {
			serverSection = &sections[idx]
		}
	}
	require.NotNil(t, serverSection)
	// 同结构资产合并且ID有序
	assert.Equal(t, []string{"asset-a", "asset-b"}, serverSection.AssetIDs)
}

// TestQuestionnaire_CriticalFirst CRITICAL 分组排在最前
func TestQuestionnaire_CriticalFirst(t *testing.T) {
	builder := NewQuestionnaireBuilder()

	sections := builder.Build([]*AggregatedGapReport{
		reportWithGaps("asset-low", "server", map[Priority][]Gap{
			PriorityLow: {{Layer: LayerStandards, Requirement: "advisory-std", Priority: PriorityLow}},
		}),
		reportWithGaps("asset-critical", "database", map[Priority][]Gap{
			PriorityCritical: {{Layer: LayerColumns, Requirement: "hostname", Priority: PriorityCritical}},
		}),
	})

	require.Len(t, sections, 2)
	assert.Equal(t, PriorityCritical, sections[0].Priority)
	assert.Equal(t, PriorityLow, sections[1].Priority)
}

// TestQuestionnaire_NoGapsNoSection 无缺口的资产不产生问卷分组
func TestQuestionnaire_NoGapsNoSection(t *testing.T) {
	builder := NewQuestionnaireBuilder()

	sections := builder.Build([]*AggregatedGapReport{
		reportWithGaps("asset-ready", "server", map[Priority][]Gap{}),
		nil,
	})

	assert.Empty(t, sections)
}

// TestQuestionnaire_ItemOrdering 分组内问卷项按优先级降序、同级按要求名排序
func TestQuestionnaire_ItemOrdering(t *testing.T) {
	builder := NewQuestionnaireBuilder()

	sections := builder.Build([]*AggregatedGapReport{
		reportWithGaps("asset-1", "server", map[Priority][]Gap{
			PriorityMedium: {
				{Layer: LayerNested, Requirement: "configuration.patching.schedule", Priority: PriorityMedium},
			},
			PriorityCritical: {
				{Layer: LayerColumns, Requirement: "hostname", Priority: PriorityCritical},
				{Layer: LayerColumns, Requirement: "environment", Priority: PriorityCritical},
			},
		}),
	})

	require.Len(t, sections, 1)
	items := sections[0].Items
	require.Len(t, items, 3)
	assert.Equal(t, "environment", items[0].Requirement)
	assert.Equal(t, "hostname", items[1].Requirement)
	assert.Equal(t, "configuration.patching.schedule", items[2].Requirement)
}

// TestQuestionnaire_DedupItems 同层同要求同优先级的缺口只产生一个问卷项
func TestQuestionnaire_DedupItems(t *testing.T) {
	builder := NewQuestionnaireBuilder()

	sections := builder.Build([]*AggregatedGapReport{
		reportWithGaps("asset-1", "server", map[Priority][]Gap{
			PriorityHigh: {
				{Layer: LayerColumns, Requirement: "hostname", Priority: PriorityHigh},
				{Layer: LayerColumns, Requirement: "hostname", Priority: PriorityHigh},
			},
		}),
	})

	require.Len(t, sections, 1)
	assert.Len(t, sections[0].Items, 1)
}

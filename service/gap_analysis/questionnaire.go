/*
 * @module service/gap_analysis/questionnaire
 * @description 缺口报告到数据补充问卷的转换器，纯转换，无持久化
 * @architecture 分层架构 - 业务服务层
 * @documentReference ai_docs/gap_analysis_req.md
 * @stateFlow 报告去重 -> 按未满足要求签名分组 -> 按优先级排序输出
 * @rules CRITICAL 分组排在最前，用户中途放弃时高价值问题先被回答；未满足要求集合相同的资产合并为一个分组
 * @dependencies fmt, sort, strings
 * @refs analyzer.go, types.go
 */

package gap_analysis

import (
	"fmt"
	"sort"
	"strings"
)

// QuestionnaireBuilder 问卷构建器
type QuestionnaireBuilder struct{}

// NewQuestionnaireBuilder 创建问卷构建器实例
func NewQuestionnaireBuilder() *QuestionnaireBuilder {
	return &QuestionnaireBuilder{}
}

// Build 将若干资产的聚合缺口报告转换为问卷分组
// 结构完全相同（资产类型 + 未满足要求集合一致）的资产合并进同一分组
func (b *QuestionnaireBuilder) Build(reports []*AggregatedGapReport) []QuestionSection {
	type group struct {
		assetType string
		assetIDs  []string
		items     []QuestionItem
		priority  Priority
	}

	groups := map[string]*group{}

	for _, report := range reports {
		if report == nil {
			continue
		}
		items := collectItems(report)
		if len(items) == 0 {
			// 无缺口的资产不产生问卷分组
			continue
		}
		signature := report.AssetType + "|" + itemsSignature(items)
		g, ok := groups[signature]
		if !ok {
			g = &group{
				assetType: report.AssetType,
				items:     items,
				priority:  highestPriority(items),
			}
			groups[signature] = g
		}
		g.assetIDs = append(g.assetIDs, report.AssetID)
	}

	sections := make([]QuestionSection, 0, len(groups))
	for _, g := range groups {
		sort.Strings(g.assetIDs)
		title := fmt.Sprintf("数据补充: %s (%d 项缺口, %d 个资产)", g.assetType, len(g.items), len(g.assetIDs))
		sections = append(sections, QuestionSection{
			Title:     title,
			AssetType: g.assetType,
			AssetIDs:  g.assetIDs,
			Priority:  g.priority,
			Items:     g.items,
		})
	}

	// CRITICAL 分组最前，同级按标题稳定排序
	sort.SliceStable(sections, func(i, j int) bool {
		ri, rj := priorityRank(sections[i].Priority), priorityRank(sections[j].Priority)
		if ri != rj {
			return ri < rj
		}
		return sections[i].Title < sections[j].Title
	})
	return sections
}

// collectItems 从单资产报告提取去重后的问卷项，按优先级和要求名排序
func collectItems(report *AggregatedGapReport) []QuestionItem {
	seen := map[string]struct{}{}
	var items []QuestionItem

	for _, priority := range []Priority{PriorityCritical, PriorityHigh, PriorityMedium, PriorityLow} {
		gaps := report.GapsByPriority[priority]
		sorted := append([]Gap(nil), gaps...)
		sort.Slice(sorted, func(i, j int) bool { return sorted[i].Requirement < sorted[j].Requirement })

		for _, gap := range sorted {
			key := gap.Layer + "|" + gap.Requirement + "|" + string(gap.Priority)
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			items = append(items, QuestionItem{
				Requirement: gap.Requirement,
				Layer:       gap.Layer,
				Priority:    gap.Priority,
				Description: gap.Description,
			})
		}
	}
	return items
}

// itemsSignature 计算问卷项集合的签名，用于跨资产分组
func itemsSignature(items []QuestionItem) string {
	keys := make([]string, 0, len(items))
	for _, item := range items {
		keys = append(keys, item.Layer+"|"+item.Requirement+"|"+string(item.Priority))
	}
	sort.Strings(keys)
	return strings.Join(keys, ";")
}

// highestPriority 返回问卷项集合中的最高优先级
func highestPriority(items []QuestionItem) Priority {
	best := PriorityLow
	for _, item := range items {
		if priorityRank(item.Priority) < priorityRank(best) {
			best = item.Priority
		}
	}
	return best
}

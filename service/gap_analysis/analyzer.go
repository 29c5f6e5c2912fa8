/*
 * @module service/gap_analysis/analyzer
 * @description 缺口分析聚合器，编排四个检查器并合成单资产就绪判定
 * @architecture 分层架构 - 业务服务层
 * @documentReference ai_docs/gap_analysis_req.md
 * @stateFlow 四检查器并发执行 -> 全部完成后汇合 -> 加权求分 -> 优先级分类
 * @rules 检查器之间无共享可变状态，任何检查器不得观察其他检查器的中间结果；强制标准未豁免时 is_ready 恒为 false
 * @dependencies assessment-service/service/models, sync
 * @refs column_inspector.go, enrichment_inspector.go, document_inspector.go, standards_inspector.go
 */

package gap_analysis

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"assessment-service/service/models"
)

// Analyzer 缺口分析聚合器
type Analyzer struct {
	columns     *ColumnInspector
	enrichments *EnrichmentInspector
	documents   *DocumentInspector
	standards   *StandardsInspector
}

// NewAnalyzer 创建缺口分析聚合器实例
func NewAnalyzer(store Store) *Analyzer {
	return &Analyzer{
		columns:     NewColumnInspector(),
		enrichments: NewEnrichmentInspector(store),
		documents:   NewDocumentInspector(),
		standards:   NewStandardsInspector(store),
	}
}

// Analyze 对单个资产执行缺口分析
// appMeta 为可选的应用元数据句柄，当前仅透传记录，不参与评分
func (a *Analyzer) Analyze(ctx context.Context, asset AssetRecord, appMeta models.JSONB, requirements *DataRequirements, tenant models.Tenant) (*AggregatedGapReport, error) {
	if asset == nil {
		return nil, ErrNilAsset
	}
	if requirements == nil {
		return nil, ErrNilRequirements
	}
	if err := tenant.Validate(); err != nil {
		return nil, err
	}
	_ = appMeta

	start := time.Now()

	var (
		wg            sync.WaitGroup
		columnReport  *ColumnGapReport
		enrichReport  *EnrichmentGapReport
		nestedReport  *NestedDocumentGapReport
		stdReport     *StandardsGapReport
		columnErr     error
		enrichErr     error
		nestedErr     error
		standardsErr  error
	)

	// 四个检查器相互独立，并发执行，汇合后再聚合
	wg.Add(4)
	go func() {
		defer wg.Done()
		columnReport, columnErr = a.columns.Inspect(asset, requirements)
	}()
	go func() {
		defer wg.Done()
		enrichReport, enrichErr = a.enrichments.Inspect(ctx, asset, requirements, tenant)
	}()
	go func() {
		defer wg.Done()
		nestedReport, nestedErr = a.documents.Inspect(asset, requirements)
	}()
	go func() {
		defer wg.Done()
		stdReport, standardsErr = a.standards.Inspect(ctx, asset, requirements, tenant)
	}()
	wg.Wait()

	for _, err := range []error{columnErr, enrichErr, nestedErr, standardsErr} {
		if err != nil {
			return nil, err
		}
	}

	overall := weightedOverall(requirements.PriorityWeights, map[string]float64{
		LayerColumns:     columnReport.CompletenessScore,
		LayerEnrichments: enrichReport.CompletenessScore,
		LayerNested:      nestedReport.CompletenessScore,
		LayerStandards:   stdReport.CompletenessScore,
	})

	report := &AggregatedGapReport{
		AssetID:             asset.GetID(),
		AssetType:           asset.GetType(),
		ColumnReport:        columnReport,
		EnrichmentReport:    enrichReport,
		NestedReport:        nestedReport,
		StandardsReport:     stdReport,
		OverallCompleteness: overall,
		IsReady:             overall >= requirements.CompletenessThreshold && !stdReport.OverrideRequired,
		GapsByPriority:      classifyGaps(asset.GetType(), requirements, columnReport, enrichReport, nestedReport, stdReport),
		AnalyzedAt:          start,
	}

	observeAnalysis(report, time.Since(start))
	return report, nil
}

// AnalyzeBatch 批量分析资产，按调用方给定的并发上限并行执行
// 各资产分析之间完全独立，无共享可变状态
func (a *Analyzer) AnalyzeBatch(ctx context.Context, assets []AssetRecord, resolve func(AssetRecord) *DataRequirements, tenant models.Tenant, concurrency int) ([]*AggregatedGapReport, error) {
	if concurrency <= 0 {
		concurrency = 4
	}

	reports := make([]*AggregatedGapReport, len(assets))
	errs := make([]error, len(assets))
	sem := make(chan struct{}, concurrency)

	var wg sync.WaitGroup
	for idx, asset := range assets {
		wg.Add(1)
		go func(idx int, asset AssetRecord) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			reports[idx], errs[idx] = a.Analyze(ctx, asset, nil, resolve(asset), tenant)
		}(idx, asset)
	}
	wg.Wait()

	for idx, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("资产 %s 分析失败: %w", assets[idx].GetID(), err)
		}
	}
	return reports, nil
}

// weightedOverall 加权合成总分
// 缺失的权重键按默认权重补齐；权重和为 0 时退回等权，避免除零
func weightedOverall(weights map[string]float64, scores map[string]float64) float64 {
	layers := []string{LayerColumns, LayerEnrichments, LayerNested, LayerStandards}

	sum := 0.0
	weightSum := 0.0
	for _, layer := range layers {
		weight, ok := weights[layer]
		if !ok || weight < 0 {
			weight = defaultLayerWeight
		}
		sum += scores[layer] * weight
		weightSum += weight
	}

	if weightSum == 0 {
		for _, layer := range layers {
			sum += scores[layer] * defaultLayerWeight
		}
		weightSum = defaultLayerWeight * float64(len(layers))
	}
	return clampScore(sum / weightSum)
}

// classifyGaps 对四层全部未满足要求做全量、确定性的优先级分类
// 分类规则: 强制标准违规/关键结构化字段=CRITICAL，缺失增强表/非关键字段=HIGH，
// 不完整增强表/嵌套文档缺口=MEDIUM，建议标准违规=LOW
// 同一要求可能落入两层时取最高优先级且只报告一次
func classifyGaps(assetType string, requirements *DataRequirements, columns *ColumnGapReport, enrichments *EnrichmentGapReport, nested *NestedDocumentGapReport, standards *StandardsGapReport) map[Priority][]Gap {
	critical := toSet(requirements.CriticalColumns)

	var gaps []Gap

	// 标准层: 强制违规 CRITICAL，建议违规 LOW
	for _, violation := range standards.Violations {
		priority := PriorityLow
		description := fmt.Sprintf("建议标准 %s 未满足: %s", violation.StandardName, violation.ViolationDetails)
		if violation.IsMandatory {
			priority = PriorityCritical
			description = fmt.Sprintf("强制标准 %s 未满足: %s", violation.StandardName, violation.ViolationDetails)
		}
		gaps = append(gaps, Gap{
			Layer:       LayerStandards,
			Requirement: violation.StandardName,
			Description: description,
			Priority:    priority,
		})
	}

	// 结构化字段层: 关键字段 CRITICAL，其余 HIGH
	for _, state := range []struct {
		names []string
		kind  string
	}{
		{columns.Missing, "缺失"},
		{columns.Null, "为 null"},
		{columns.Empty, "为空"},
	} {
		for _, name := range state.names {
			priority := PriorityHigh
			if _, ok := critical[name]; ok {
				priority = PriorityCritical
			}
			gaps = append(gaps, Gap{
				Layer:       LayerColumns,
				Requirement: name,
				Description: fmt.Sprintf("%s 类型资产的字段 %s %s", assetType, name, state.kind),
				Priority:    priority,
			})
		}
	}

	// 增强信息层: 缺表 HIGH，表不完整 MEDIUM
	for _, table := range enrichments.MissingTables {
		gaps = append(gaps, Gap{
			Layer:       LayerEnrichments,
			Requirement: table,
			Description: fmt.Sprintf("增强信息表 %s 缺失", table),
			Priority:    PriorityHigh,
		})
	}
	incompleteTables := make([]string, 0, len(enrichments.IncompleteTables))
	for table := range enrichments.IncompleteTables {
		incompleteTables = append(incompleteTables, table)
	}
	sort.Strings(incompleteTables)
	for _, table := range incompleteTables {
		gaps = append(gaps, Gap{
			Layer:       LayerEnrichments,
			Requirement: table,
			Description: fmt.Sprintf("增强信息表 %s 缺少关键字段: %v", table, enrichments.IncompleteTables[table]),
			Priority:    PriorityMedium,
		})
	}

	// 嵌套文档层: 统一 MEDIUM
	for _, state := range []struct {
		byField map[string][]string
		kind    string
	}{
		{nested.MissingKeys, "缺失"},
		{nested.EmptyValues, "为空"},
	} {
		fields := make([]string, 0, len(state.byField))
		for field := range state.byField {
			fields = append(fields, field)
		}
		sort.Strings(fields)
		for _, field := range fields {
			for _, key := range state.byField[field] {
				gaps = append(gaps, Gap{
					Layer:       LayerNested,
					Requirement: field + "." + key,
					Description: fmt.Sprintf("文档字段 %s 的键 %s %s", field, key, state.kind),
					Priority:    PriorityMedium,
				})
			}
		}
	}

	// 同名要求跨层去重: 保留最高优先级，报告一次
	sort.SliceStable(gaps, func(i, j int) bool {
		return priorityRank(gaps[i].Priority) < priorityRank(gaps[j].Priority)
	})
	seen := map[string]struct{}{}
	result := map[Priority][]Gap{
		PriorityCritical: {},
		PriorityHigh:     {},
		PriorityMedium:   {},
		PriorityLow:      {},
	}
	for _, gap := range gaps {
		if _, ok := seen[gap.Requirement]; ok {
			continue
		}
		seen[gap.Requirement] = struct{}{}
		result[gap.Priority] = append(result[gap.Priority], gap)
	}
	return result
}

/*
 * @module service/gap_analysis/types
 * @description 缺口分析核心类型定义：数据要求描述符、四类检查报告、缺口与优先级
 * @architecture 分层架构 - 业务服务层
 * @documentReference ai_docs/gap_analysis_req.md
 * @stateFlow 要求解析 -> 四层检查 -> 加权聚合 -> 问卷转换
 * @rules 所有完整性分数严格限定在 [0,1]，禁止 NaN/Inf 跨越序列化边界；空要求集分数定义为 1.0
 * @dependencies assessment-service/service/models
 * @refs requirements.go, analyzer.go
 */

package gap_analysis

import (
	"errors"
	"math"
	"time"

	"assessment-service/service/models"
)

// 无效输入错误，表示调用方编码错误，立即上抛，绝不吞掉
var (
	ErrNilAsset        = errors.New("缺口分析: 资产不能为空")
	ErrNilRequirements = errors.New("缺口分析: 数据要求不能为空")
)

// 四个检查层的权重键
const (
	LayerColumns     = "columns"
	LayerEnrichments = "enrichments"
	LayerNested      = "nested"
	LayerStandards   = "standards"
)

// DefaultCompletenessThreshold 默认完整性阈值
const DefaultCompletenessThreshold = 0.75

// defaultLayerWeight 未指定时各层的默认权重（四层等权）
const defaultLayerWeight = 0.25

// Priority 缺口优先级
type Priority string

const (
	PriorityCritical Priority = "CRITICAL"
	PriorityHigh     Priority = "HIGH"
	PriorityMedium   Priority = "MEDIUM"
	PriorityLow      Priority = "LOW"
)

// priorityRank 优先级排序值，数值越小优先级越高
func priorityRank(p Priority) int {
	switch p {
	case PriorityCritical:
		return 0
	case PriorityHigh:
		return 1
	case PriorityMedium:
		return 2
	default:
		return 3
	}
}

// AssetRecord 资产读取能力接口
// 检查器只通过该接口读取资产，不依赖具体存储形态，也不做反射探测
type AssetRecord interface {
	GetID() string
	GetType() string
	// Field 读取结构化属性: (nil,true)=存在但为空(null), (nil,false)=不在资产模式中
	Field(name string) (interface{}, bool)
	// Document 读取半结构化文档字段
	Document(name string) (models.JSONB, bool)
}

// DataRequirements 数据要求描述符
// 按 (资产类型 × 迁移策略 × 合规范围 × 重要性等级) 组合解析得出，构造后不可变
type DataRequirements struct {
	RequiredColumns     []string            `json:"required_columns"`
	CriticalColumns     []string            `json:"critical_columns"`
	RequiredEnrichments []string            `json:"required_enrichments"`
	RequiredNestedKeys  map[string][]string `json:"required_nested_keys"`
	RequiredStandards   []string            `json:"required_standards"`
	PriorityWeights     map[string]float64  `json:"priority_weights"`
	CompletenessThreshold float64           `json:"completeness_threshold"`
}

// ColumnGapReport 结构化字段检查报告
type ColumnGapReport struct {
	Missing           []string `json:"missing"`
	Empty             []string `json:"empty"`
	Null              []string `json:"null"`
	CompletenessScore float64  `json:"completeness_score"`
}

// EnrichmentGapReport 增强信息表检查报告
type EnrichmentGapReport struct {
	MissingTables     []string            `json:"missing_tables"`
	IncompleteTables  map[string][]string `json:"incomplete_tables"`
	CompletenessScore float64             `json:"completeness_score"`
}

// NestedDocumentGapReport 嵌套文档检查报告
type NestedDocumentGapReport struct {
	MissingKeys       map[string][]string `json:"missing_keys"`
	EmptyValues       map[string][]string `json:"empty_values"`
	CompletenessScore float64             `json:"completeness_score"`
}

// StandardViolation 标准违规记录
type StandardViolation struct {
	StandardName      string `json:"standard_name"`
	RequirementType   string `json:"requirement_type"`
	ViolationDetails  string `json:"violation_details"`
	IsMandatory       bool   `json:"is_mandatory"`
	OverrideAvailable bool   `json:"override_available"`
}

// StandardsGapReport 标准评估报告
type StandardsGapReport struct {
	Violations        []StandardViolation `json:"violations"`
	MissingMandatory  []string            `json:"missing_mandatory"`
	OverrideRequired  bool                `json:"override_required"`
	CompletenessScore float64             `json:"completeness_score"`
}

// Gap 单个未满足要求
type Gap struct {
	Layer       string   `json:"layer"`
	Requirement string   `json:"requirement"`
	Description string   `json:"description"`
	Priority    Priority `json:"priority"`
}

// AggregatedGapReport 单资产聚合缺口报告
// 每次分析现算现返回，本层不做缓存（资产状态可能在两次调用之间变化）
type AggregatedGapReport struct {
	AssetID             string              `json:"asset_id"`
	AssetType           string              `json:"asset_type"`
	ColumnReport        *ColumnGapReport        `json:"column_report"`
	EnrichmentReport    *EnrichmentGapReport    `json:"enrichment_report"`
	NestedReport        *NestedDocumentGapReport `json:"nested_report"`
	StandardsReport     *StandardsGapReport     `json:"standards_report"`
	OverallCompleteness float64             `json:"overall_completeness"`
	IsReady             bool                `json:"is_ready"`
	GapsByPriority      map[Priority][]Gap  `json:"gaps_by_priority"`
	AnalyzedAt          time.Time           `json:"analyzed_at"`
}

// QuestionItem 待补充数据项
type QuestionItem struct {
	Requirement string   `json:"requirement"`
	Layer       string   `json:"layer"`
	Priority    Priority `json:"priority"`
	Description string   `json:"description"`
}

// QuestionSection 问卷分组
// 未满足要求集合完全相同的资产归入同一分组，避免重复展示结构相同的表单
type QuestionSection struct {
	Title     string         `json:"title"`
	AssetType string         `json:"asset_type"`
	AssetIDs  []string       `json:"asset_ids"`
	Priority  Priority       `json:"priority"`
	Items     []QuestionItem `json:"items"`
}

// clampScore 将分数限定在 [0,1]，并把 NaN/Inf 归零
// 分数会跨越 JSON 序列化边界，非有限值在此一律视为 0
func clampScore(score float64) float64 {
	if math.IsNaN(score) || math.IsInf(score, 0) {
		return 0.0
	}
	if score < 0.0 {
		return 0.0
	}
	if score > 1.0 {
		return 1.0
	}
	return score
}

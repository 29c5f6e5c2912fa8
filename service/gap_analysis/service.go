/*
 * @module service/gap_analysis/service
 * @description 缺口分析编排服务，面向 API 与调度器提供单资产/批量分析和问卷构建入口
 * @architecture 分层架构 - 业务服务层
 * @documentReference ai_docs/gap_analysis_req.md
 * @stateFlow 加载资产 -> 按组合解析要求(批内记忆化) -> 分析 -> 可选问卷构建
 * @rules 要求描述符按 (资产类型, 策略, 合规范围, 等级) 组合解析一次并在批内复用；服务自身无状态
 * @dependencies assessment-service/service/models, gorm.io/gorm
 * @refs analyzer.go, questionnaire.go, store.go
 */

package gap_analysis

import (
	"context"
	"sort"
	"strings"
	"sync"

	"assessment-service/service/models"

	"gorm.io/gorm"
)

// AnalysisOptions 分析上下文选项
type AnalysisOptions struct {
	Strategy         string   `json:"strategy"`
	ComplianceScopes []string `json:"compliance_scopes"`
	CriticalityTier  string   `json:"criticality_tier"`
	Concurrency      int      `json:"concurrency"`
}

// Service 缺口分析编排服务
type Service struct {
	store         Store
	resolver      *RequirementResolver
	analyzer      *Analyzer
	questionnaire *QuestionnaireBuilder
}

// NewService 创建缺口分析编排服务实例
func NewService(db *gorm.DB) *Service {
	store := NewGormStore(db)
	return &Service{
		store:         store,
		resolver:      NewRequirementResolver(),
		analyzer:      NewAnalyzer(store),
		questionnaire: NewQuestionnaireBuilder(),
	}
}

// NewServiceWithStore 使用自定义存储创建服务实例（测试用）
func NewServiceWithStore(store Store) *Service {
	return &Service{
		store:         store,
		resolver:      NewRequirementResolver(),
		analyzer:      NewAnalyzer(store),
		questionnaire: NewQuestionnaireBuilder(),
	}
}

// Analyzer 返回底层聚合器
func (s *Service) Analyzer() *Analyzer {
	return s.analyzer
}

// AnalyzeAsset 按资产ID执行单资产缺口分析
func (s *Service) AnalyzeAsset(ctx context.Context, tenant models.Tenant, assetID string, opts AnalysisOptions) (*AggregatedGapReport, error) {
	if err := tenant.Validate(); err != nil {
		return nil, err
	}
	asset, err := s.store.GetAsset(ctx, tenant, assetID)
	if err != nil {
		return nil, err
	}
	requirements := s.resolver.Resolve(asset.AssetType, opts.Strategy, opts.ComplianceScopes, opts.CriticalityTier)
	return s.analyzer.Analyze(ctx, asset, asset.Metadata, requirements, tenant)
}

// AnalyzeBatch 按资产ID列表执行批量缺口分析
// 要求描述符按组合解析一次，批内记忆化复用（解析器为纯函数）
func (s *Service) AnalyzeBatch(ctx context.Context, tenant models.Tenant, assetIDs []string, opts AnalysisOptions) ([]*AggregatedGapReport, error) {
	if err := tenant.Validate(); err != nil {
		return nil, err
	}

	assets := make([]AssetRecord, 0, len(assetIDs))
	for _, assetID := range assetIDs {
		asset, err := s.store.GetAsset(ctx, tenant, assetID)
		if err != nil {
			return nil, err
		}
		assets = append(assets, asset)
	}

	return s.analyzer.AnalyzeBatch(ctx, assets, s.memoizedResolver(opts), tenant, opts.Concurrency)
}

// AnalyzeEngagement 对租户范围内全部资产执行批量缺口分析
func (s *Service) AnalyzeEngagement(ctx context.Context, tenant models.Tenant, opts AnalysisOptions) ([]*AggregatedGapReport, error) {
	if err := tenant.Validate(); err != nil {
		return nil, err
	}
	records, err := s.store.ListAssets(ctx, tenant)
	if err != nil {
		return nil, err
	}
	assets := make([]AssetRecord, len(records))
	for idx := range records {
		assets[idx] = &records[idx]
	}
	return s.analyzer.AnalyzeBatch(ctx, assets, s.memoizedResolver(opts), tenant, opts.Concurrency)
}

// BuildQuestionnaire 基于批量分析结果构建数据补充问卷
func (s *Service) BuildQuestionnaire(ctx context.Context, tenant models.Tenant, assetIDs []string, opts AnalysisOptions) ([]QuestionSection, error) {
	reports, err := s.AnalyzeBatch(ctx, tenant, assetIDs, opts)
	if err != nil {
		return nil, err
	}
	return s.questionnaire.Build(reports), nil
}

// memoizedResolver 返回按 (资产类型 × 策略 × 合规范围 × 等级) 组合记忆化的要求解析函数
func (s *Service) memoizedResolver(opts AnalysisOptions) func(AssetRecord) *DataRequirements {
	scopes := append([]string(nil), opts.ComplianceScopes...)
	sort.Strings(scopes)
	scopeKey := strings.Join(scopes, ",")

	var mu sync.Mutex
	cache := map[string]*DataRequirements{}

	return func(asset AssetRecord) *DataRequirements {
		key := asset.GetType() + "|" + opts.Strategy + "|" + scopeKey + "|" + opts.CriticalityTier

		mu.Lock()
		defer mu.Unlock()
		if req, ok := cache[key]; ok {
			return req
		}
		req := s.resolver.Resolve(asset.GetType(), opts.Strategy, opts.ComplianceScopes, opts.CriticalityTier)
		cache[key] = req
		return req
	}
}

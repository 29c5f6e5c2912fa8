/*
 * @module service/gap_analysis/analyzer_test
 * @description 缺口分析聚合器单元测试，覆盖加权求分、就绪判定和优先级分类
 * @architecture 测试层 - 隔离业务逻辑，通过内存存储替身模拟数据访问层
 * @documentReference .specify/memory/test_plan.md
 * @stateFlow 构造资产与要求 -> 执行分析 -> 结果验证
 * @rules 确保业务逻辑的正确性、数据处理和状态管理
 * @dependencies testing, testify
 * @refs analyzer.go
 */

package gap_analysis

import (
	"context"
	"math"
	"sync"
	"testing"

	"assessment-service/service/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore 内存存储替身，记录每次调用携带的租户标识
type fakeStore struct {
	mu          sync.Mutex
	enrichments map[string]models.JSONB // key: tenant|assetID|tableName
	standards   []models.ArchitectureStandard
	seenTenants []models.Tenant
}

func newFakeStore() *fakeStore {
	return &fakeStore{enrichments: map[string]models.JSONB{}}
}

func (s *fakeStore) putEnrichment(tenant models.Tenant, assetID, tableName string, data models.JSONB) {
	s.enrichments[tenant.String()+"|"+assetID+"|"+tableName] = data
}

func (s *fakeStore) GetAsset(ctx context.Context, tenant models.Tenant, assetID string) (*models.Asset, error) {
	return nil, nil
}

func (s *fakeStore) ListAssets(ctx context.Context, tenant models.Tenant) ([]models.Asset, error) {
	return nil, nil
}

func (s *fakeStore) GetEnrichment(ctx context.Context, tenant models.Tenant, assetID, tableName string) (models.JSONB, error) {
	s.mu.Lock()
	s.seenTenants = append(s.seenTenants, tenant)
	s.mu.Unlock()

	data, ok := s.enrichments[tenant.String()+"|"+assetID+"|"+tableName]
	if !ok {
		return nil, nil
	}
	return data, nil
}

func (s *fakeStore) ListStandards(ctx context.Context, tenant models.Tenant, names []string) ([]models.ArchitectureStandard, error) {
	var matched []models.ArchitectureStandard
	for _, record := range s.standards {
		if record.ClientID != tenant.ClientID || record.EngagementID != tenant.EngagementID {
			continue
		}
		for _, name := range names {
			if record.StandardName == name {
				matched = append(matched, record)
			}
		}
	}
	return matched, nil
}

func strPtr(s string) *string { return &s }

func testTenant() models.Tenant {
	return models.Tenant{ClientID: "client-a", EngagementID: "engagement-1"}
}

// TestAnalyze_DatabaseAssetEndToEnd 数据库资产端到端:
// hostname 已采集、cpu_cores 为 null、resilience 表缺失
// 字段层 0.5、增强层 0.0、其余两层空要求为 1.0，等权合成 0.625，未达阈值
func TestAnalyze_DatabaseAssetEndToEnd(t *testing.T) {
	store := newFakeStore()
	analyzer := NewAnalyzer(store)

	asset := &models.Asset{
		ID:           "asset-db-1",
		ClientID:     "client-a",
		EngagementID: "engagement-1",
		AssetType:    "database",
		Hostname:     strPtr("db01"),
	}

	requirements := &DataRequirements{
		RequiredColumns:       []string{"cpu_cores", "hostname"},
		RequiredEnrichments:   []string{"resilience"},
		RequiredNestedKeys:    map[string][]string{},
		PriorityWeights:       defaultWeights(),
		CompletenessThreshold: DefaultCompletenessThreshold,
	}

	report, err := analyzer.Analyze(context.Background(), asset, nil, requirements, testTenant())
	require.NoError(t, err)

	assert.InDelta(t, 0.5, report.ColumnReport.CompletenessScore, 1e-9)
	assert.Equal(t, []string{"cpu_cores"}, report.ColumnReport.Null)
	assert.InDelta(t, 0.0, report.EnrichmentReport.CompletenessScore, 1e-9)
	assert.Equal(t, []string{"resilience"}, report.EnrichmentReport.MissingTables)
	assert.InDelta(t, 1.0, report.NestedReport.CompletenessScore, 1e-9)
	assert.InDelta(t, 1.0, report.StandardsReport.CompletenessScore, 1e-9)

	assert.InDelta(t, 0.625, report.OverallCompleteness, 1e-9)
	assert.False(t, report.IsReady)
}

// TestAnalyze_MandatoryStandardBlocksReadiness 强制标准未满足时分数再高也不就绪
func TestAnalyze_MandatoryStandardBlocksReadiness(t *testing.T) {
	store := newFakeStore()
	store.standards = []models.ArchitectureStandard{
		{
			ClientID:        "client-a",
			EngagementID:    "engagement-1",
			RequirementType: "security",
			StandardName:    "pci-dss-encryption-at-rest",
			IsMandatory:     true,
			MinimumRequirements: models.JSONB{
				"checks": []interface{}{
					map[string]interface{}{"field": "backup_schedule", "operator": "required"},
				},
			},
		},
	}
	analyzer := NewAnalyzer(store)

	asset := &models.Asset{
		ID:           "asset-1",
		ClientID:     "client-a",
		EngagementID: "engagement-1",
		AssetType:    "server",
		Hostname:     strPtr("web01"),
	}

	requirements := &DataRequirements{
		RequiredColumns:    []string{"hostname"},
		RequiredNestedKeys: map[string][]string{},
		RequiredStandards:  []string{"pci-dss-encryption-at-rest"},
		// 标准层权重压到极低，总分仍然超过阈值
		PriorityWeights: map[string]float64{
			LayerColumns:     0.9,
			LayerEnrichments: 0.03,
			LayerNested:      0.03,
			LayerStandards:   0.04,
		},
		CompletenessThreshold: 0.75,
	}

	report, err := analyzer.Analyze(context.Background(), asset, nil, requirements, testTenant())
	require.NoError(t, err)

	assert.Greater(t, report.OverallCompleteness, 0.75)
	assert.True(t, report.StandardsReport.OverrideRequired)
	assert.Equal(t, []string{"pci-dss-encryption-at-rest"}, report.StandardsReport.MissingMandatory)
	assert.False(t, report.IsReady, "强制标准未豁免时不得就绪")

	// 强制标准违规归入 CRITICAL
	require.Len(t, report.GapsByPriority[PriorityCritical], 1)
	assert.Equal(t, "pci-dss-encryption-at-rest", report.GapsByPriority[PriorityCritical][0].Requirement)
}

// TestAnalyze_EmptyRequirements 空要求集的资产视为完全就绪
func TestAnalyze_EmptyRequirements(t *testing.T) {
	analyzer := NewAnalyzer(newFakeStore())

	asset := &models.Asset{ID: "asset-1", ClientID: "client-a", EngagementID: "engagement-1", AssetType: "server"}
	requirements := &DataRequirements{
		RequiredNestedKeys:    map[string][]string{},
		PriorityWeights:       defaultWeights(),
		CompletenessThreshold: DefaultCompletenessThreshold,
	}

	report, err := analyzer.Analyze(context.Background(), asset, nil, requirements, testTenant())
	require.NoError(t, err)

	assert.InDelta(t, 1.0, report.OverallCompleteness, 1e-9)
	assert.True(t, report.IsReady)
	for _, gaps := range report.GapsByPriority {
		assert.Empty(t, gaps)
	}
}

// TestAnalyze_NilInputs 无效输入立即上抛
func TestAnalyze_NilInputs(t *testing.T) {
	analyzer := NewAnalyzer(newFakeStore())
	requirements := &DataRequirements{RequiredNestedKeys: map[string][]string{}}
	asset := &models.Asset{ID: "asset-1", AssetType: "server"}

	_, err := analyzer.Analyze(context.Background(), nil, nil, requirements, testTenant())
	assert.ErrorIs(t, err, ErrNilAsset)

	_, err = analyzer.Analyze(context.Background(), asset, nil, nil, testTenant())
	assert.ErrorIs(t, err, ErrNilRequirements)
}

// TestWeightedOverall_ZeroWeightSum 权重和为 0 时退回等权而不是除零
func TestWeightedOverall_ZeroWeightSum(t *testing.T) {
	scores := map[string]float64{
		LayerColumns:     1.0,
		LayerEnrichments: 0.0,
		LayerNested:      1.0,
		LayerStandards:   0.0,
	}
	overall := weightedOverall(map[string]float64{
		LayerColumns:     0,
		LayerEnrichments: 0,
		LayerNested:      0,
		LayerStandards:   0,
	}, scores)

	assert.False(t, math.IsNaN(overall))
	assert.InDelta(t, 0.5, overall, 1e-9)
}

// TestClampScore 分数限定在 [0,1]，非有限值归零
func TestClampScore(t *testing.T) {
	assert.Equal(t, 0.0, clampScore(math.NaN()))
	assert.Equal(t, 0.0, clampScore(math.Inf(1)))
	assert.Equal(t, 0.0, clampScore(math.Inf(-1)))
	assert.Equal(t, 0.0, clampScore(-0.3))
	assert.Equal(t, 1.0, clampScore(1.7))
	assert.Equal(t, 0.42, clampScore(0.42))
}

// TestClassifyGaps_CrossLayerDedup 同名要求跨层出现时只按最高优先级报告一次
func TestClassifyGaps_CrossLayerDedup(t *testing.T) {
	requirements := &DataRequirements{CriticalColumns: []string{"hostname"}}

	columns := &ColumnGapReport{Missing: []string{"hostname"}}
	enrichments := &EnrichmentGapReport{IncompleteTables: map[string][]string{}}
	nested := &NestedDocumentGapReport{
		MissingKeys: map[string][]string{},
		EmptyValues: map[string][]string{},
	}
	standards := &StandardsGapReport{
		Violations: []StandardViolation{
			{StandardName: "hostname", IsMandatory: false, ViolationDetails: "同名建议标准"},
		},
	}

	gaps := classifyGaps("server", requirements, columns, enrichments, nested, standards)

	require.Len(t, gaps[PriorityCritical], 1)
	assert.Equal(t, "hostname", gaps[PriorityCritical][0].Requirement)
	assert.Empty(t, gaps[PriorityLow], "低优先级的同名缺口应被去重")
}

// TestAnalyzeBatch_TenantPropagation 批量分析时每次存储访问都携带调用方租户
func TestAnalyzeBatch_TenantPropagation(t *testing.T) {
	store := newFakeStore()
	analyzer := NewAnalyzer(store)
	tenant := testTenant()

	assets := make([]AssetRecord, 0, 8)
	for i := 0; i < 8; i++ {
		assets = append(assets, &models.Asset{
			ID:           "asset-" + string(rune('a'+i)),
			ClientID:     tenant.ClientID,
			EngagementID: tenant.EngagementID,
			AssetType:    "server",
		})
	}

	requirements := &DataRequirements{
		RequiredEnrichments:   []string{"resilience"},
		RequiredNestedKeys:    map[string][]string{},
		PriorityWeights:       defaultWeights(),
		CompletenessThreshold: DefaultCompletenessThreshold,
	}
	resolve := func(AssetRecord) *DataRequirements { return requirements }

	reports, err := analyzer.AnalyzeBatch(context.Background(), assets, resolve, tenant, 4)
	require.NoError(t, err)
	require.Len(t, reports, 8)

	// 报告顺序与输入顺序一致
	for idx, report := range reports {
		assert.Equal(t, assets[idx].GetID(), report.AssetID)
	}

	for _, seen := range store.seenTenants {
		assert.Equal(t, tenant, seen)
	}
}

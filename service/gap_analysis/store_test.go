/*
 * @module service/gap_analysis/store_test
 * @description GORM 存储实现与编排服务的租户隔离测试
 * @architecture 测试层 - 使用内存SQLite验证数据访问层
 * @documentReference .specify/memory/test_plan.md
 * @stateFlow 预置两租户数据 -> 按租户查询 -> 零串扰验证
 * @rules 两个租户的检查必须可以并发执行且零数据串扰
 * @dependencies testing, testify, assessment-service/testutil
 * @refs store.go, service.go
 */

package gap_analysis

import (
	"context"
	"sync"
	"testing"

	"assessment-service/service/models"
	"assessment-service/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// TestGormStore_TenantIsolation 存储查询严格按租户过滤
func TestGormStore_TenantIsolation(t *testing.T) {
	tdb := testutil.NewTestDB()
	defer tdb.Close()

	factory := testutil.NewTestDataFactory(tdb.DB)
	tenantA := models.Tenant{ClientID: "client-a", EngagementID: "engagement-1"}
	tenantB := models.Tenant{ClientID: "client-b", EngagementID: "engagement-1"}

	assetA := factory.CreateAsset(testutil.WithTenant(tenantA))
	assetB := factory.CreateAsset(testutil.WithTenant(tenantB))
	factory.CreateEnrichment(tenantA, assetA.ID, "resilience", models.JSONB{"rto_minutes": 60, "rpo_minutes": 15})
	factory.CreateStandard(tenantA, "tenant-a-standard")

	store := NewGormStore(tdb.DB)
	ctx := context.Background()

	// 资产按租户隔离
	assetsA, err := store.ListAssets(ctx, tenantA)
	require.NoError(t, err)
	require.Len(t, assetsA, 1)
	assert.Equal(t, assetA.ID, assetsA[0].ID)

	// 跨租户按ID读取不命中
	_, err = store.GetAsset(ctx, tenantB, assetA.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	// 增强记录按租户隔离: B 租户查 A 的资产得到"缺表"
	data, err := store.GetEnrichment(ctx, tenantB, assetA.ID, "resilience")
	require.NoError(t, err)
	assert.Nil(t, data)

	data, err = store.GetEnrichment(ctx, tenantA, assetA.ID, "resilience")
	require.NoError(t, err)
	require.NotNil(t, data)

	// 标准记录按租户隔离
	records, err := store.ListStandards(ctx, tenantB, []string{"tenant-a-standard"})
	require.NoError(t, err)
	assert.Empty(t, records)

	// B 租户自己的资产正常可见
	assetsB, err := store.ListAssets(ctx, tenantB)
	require.NoError(t, err)
	require.Len(t, assetsB, 1)
	assert.Equal(t, assetB.ID, assetsB[0].ID)
}

// TestService_ConcurrentTenantAnalysis 两租户并发全量分析零串扰
func TestService_ConcurrentTenantAnalysis(t *testing.T) {
	tdb := testutil.NewTestDB()
	defer tdb.Close()

	factory := testutil.NewTestDataFactory(tdb.DB)
	tenantA := models.Tenant{ClientID: "client-a", EngagementID: "engagement-1"}
	tenantB := models.Tenant{ClientID: "client-b", EngagementID: "engagement-1"}

	for i := 0; i < 5; i++ {
		factory.CreateAsset(testutil.WithTenant(tenantA))
	}
	for i := 0; i < 3; i++ {
		factory.CreateAsset(testutil.WithTenant(tenantB), testutil.WithAssetType("database"))
	}

	svc := NewService(tdb.DB)

	var wg sync.WaitGroup
	var reportsA, reportsB []*AggregatedGapReport
	var errA, errB error

	wg.Add(2)
	go func() {
		defer wg.Done()
		reportsA, errA = svc.AnalyzeEngagement(context.Background(), tenantA, AnalysisOptions{Concurrency: 2})
	}()
	go func() {
		defer wg.Done()
		reportsB, errB = svc.AnalyzeEngagement(context.Background(), tenantB, AnalysisOptions{Concurrency: 2})
	}()
	wg.Wait()

	require.NoError(t, errA)
	require.NoError(t, errB)
	assert.Len(t, reportsA, 5)
	assert.Len(t, reportsB, 3)

	for _, report := range reportsA {
		assert.Equal(t, "server", report.AssetType)
	}
	for _, report := range reportsB {
		assert.Equal(t, "database", report.AssetType)
	}
}

// TestService_AnalyzeAssetNotFound 跨租户的资产ID按不存在处理
func TestService_AnalyzeAssetNotFound(t *testing.T) {
	tdb := testutil.NewTestDB()
	defer tdb.Close()

	factory := testutil.NewTestDataFactory(tdb.DB)
	tenantA := models.Tenant{ClientID: "client-a", EngagementID: "engagement-1"}
	tenantB := models.Tenant{ClientID: "client-b", EngagementID: "engagement-1"}
	asset := factory.CreateAsset(testutil.WithTenant(tenantA))

	svc := NewService(tdb.DB)

	_, err := svc.AnalyzeAsset(context.Background(), tenantB, asset.ID, AnalysisOptions{})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

// TestService_InvalidTenant 租户标识为空直接拒绝
func TestService_InvalidTenant(t *testing.T) {
	tdb := testutil.NewTestDB()
	defer tdb.Close()

	svc := NewService(tdb.DB)

	_, err := svc.AnalyzeEngagement(context.Background(), models.Tenant{}, AnalysisOptions{})
	assert.Error(t, err)
}

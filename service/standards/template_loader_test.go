/*
 * @module service/standards/template_loader_test
 * @description 标准模板装载器单元测试，覆盖幂等装载、未知模板包和租户校验
 * @architecture 测试层 - 使用内存SQLite验证装载流程
 * @documentReference .specify/memory/test_plan.md
 * @stateFlow 装载模板包 -> 重复装载 -> loaded/skipped 计数验证
 * @rules 重复装载必须安全可重入，未知模板包不中断整批装载
 * @dependencies testing, testify, assessment-service/testutil
 * @refs template_loader.go, templates.go
 */

package standards

import (
	"context"
	"testing"

	"assessment-service/service/models"
	"assessment-service/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestTemplateLoader_Idempotent 首次装载全部插入，二次装载全部跳过
func TestTemplateLoader_Idempotent(t *testing.T) {
	tdb := testutil.NewTestDB()
	defer tdb.Close()

	loader := NewTemplateLoader(tdb.DB)
	tenant := models.Tenant{ClientID: "client-a", EngagementID: "engagement-1"}
	ctx := context.Background()

	first, err := loader.Load(ctx, tenant, []string{"pci-dss", "hipaa"})
	require.NoError(t, err)
	assert.Equal(t, 4, first.Loaded)
	assert.Equal(t, 0, first.Skipped)
	assert.Equal(t, 0, first.Failed)
	assert.Equal(t, []string{
		"hipaa-audit-logging",
		"hipaa-phi-encryption",
		"pci-dss-encryption-at-rest",
		"pci-dss-network-segmentation",
	}, first.StandardsLoaded)

	second, err := loader.Load(ctx, tenant, []string{"pci-dss", "hipaa"})
	require.NoError(t, err)
	assert.Equal(t, 0, second.Loaded)
	assert.Equal(t, 4, second.Skipped)
	assert.Empty(t, second.StandardsLoaded)

	// 目录里只有 4 条记录，没有重复
	records, err := loader.ListStandards(ctx, tenant)
	require.NoError(t, err)
	assert.Len(t, records, 4)
}

// TestTemplateLoader_UnknownBundle 未知模板包计入 failed 且不影响其余包
func TestTemplateLoader_UnknownBundle(t *testing.T) {
	tdb := testutil.NewTestDB()
	defer tdb.Close()

	loader := NewTemplateLoader(tdb.DB)
	tenant := models.Tenant{ClientID: "client-a", EngagementID: "engagement-1"}

	result, err := loader.Load(context.Background(), tenant, []string{"no-such-bundle", "cis-baseline"})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Failed)
	assert.Equal(t, 1, result.Loaded)
	assert.Equal(t, []string{"cis-os-baseline"}, result.StandardsLoaded)
}

// TestTemplateLoader_TenantScoped 不同租户各自维护独立目录
func TestTemplateLoader_TenantScoped(t *testing.T) {
	tdb := testutil.NewTestDB()
	defer tdb.Close()

	loader := NewTemplateLoader(tdb.DB)
	tenantA := models.Tenant{ClientID: "client-a", EngagementID: "engagement-1"}
	tenantB := models.Tenant{ClientID: "client-b", EngagementID: "engagement-1"}
	ctx := context.Background()

	_, err := loader.Load(ctx, tenantA, []string{"well-architected"})
	require.NoError(t, err)

	// A 租户已装载不影响 B 租户的首次装载
	result, err := loader.Load(ctx, tenantB, []string{"well-architected"})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Loaded)
	assert.Equal(t, 0, result.Skipped)

	recordsB, err := loader.ListStandards(ctx, tenantB)
	require.NoError(t, err)
	require.Len(t, recordsB, 1)
	assert.Equal(t, "client-b", recordsB[0].ClientID)
}

// TestTemplateLoader_InvalidTenant 租户标识为空直接拒绝
func TestTemplateLoader_InvalidTenant(t *testing.T) {
	tdb := testutil.NewTestDB()
	defer tdb.Close()

	loader := NewTemplateLoader(tdb.DB)

	_, err := loader.Load(context.Background(), models.Tenant{}, []string{"pci-dss"})
	assert.Error(t, err)

	_, err = loader.ListStandards(context.Background(), models.Tenant{ClientID: "client-a"})
	assert.Error(t, err)
}

// TestBundleNames 返回全部内置模板包
func TestBundleNames(t *testing.T) {
	names := BundleNames()
	assert.ElementsMatch(t, []string{"pci-dss", "hipaa", "cis-baseline", "well-architected"}, names)
}

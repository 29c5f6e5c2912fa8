/*
 * @module service/sharing/sharing_service_test
 * @description 问卷分享服务单元测试，覆盖创建、访问码校验、过期和撤销
 * @architecture 测试层 - 使用内存SQLite验证分享流程
 * @documentReference .specify/memory/test_plan.md
 * @stateFlow 创建分享 -> 访问校验 -> 计数/过期/撤销验证
 * @rules 访问码明文只返回一次，所有操作按租户隔离
 * @dependencies testing, testify, assessment-service/testutil
 * @refs sharing_service.go
 */

package sharing

import (
	"context"
	"testing"
	"time"

	"assessment-service/service/models"
	"assessment-service/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func testTenant() models.Tenant {
	return models.Tenant{ClientID: "client-a", EngagementID: "engagement-1"}
}

// TestCreateShare 创建分享返回明文访问码，库中只存哈希
func TestCreateShare(t *testing.T) {
	tdb := testutil.NewTestDB()
	defer tdb.Close()

	svc := NewSharingService(tdb.DB)
	sections := models.JSONB{"sections": []interface{}{map[string]interface{}{"asset_type": "server"}}}

	share, code, err := svc.CreateShare(context.Background(), testTenant(), "数据补充问卷", sections, 24*time.Hour)
	require.NoError(t, err)
	require.NotNil(t, share)
	assert.NotEmpty(t, share.ID)
	assert.Len(t, code, 32)
	assert.NotContains(t, share.AccessCodeHash, code)
	require.NotNil(t, share.ExpiresAt)
	assert.Equal(t, int64(0), share.AccessCount)
}

// TestCreateShare_Validation 空标题和空租户拒绝
func TestCreateShare_Validation(t *testing.T) {
	tdb := testutil.NewTestDB()
	defer tdb.Close()

	svc := NewSharingService(tdb.DB)

	_, _, err := svc.CreateShare(context.Background(), testTenant(), "", nil, 0)
	assert.Error(t, err)

	_, _, err = svc.CreateShare(context.Background(), models.Tenant{}, "问卷", nil, 0)
	assert.Error(t, err)
}

// TestAccessShare 正确访问码访问成功且计数加一
func TestAccessShare(t *testing.T) {
	tdb := testutil.NewTestDB()
	defer tdb.Close()

	svc := NewSharingService(tdb.DB)
	ctx := context.Background()

	share, code, err := svc.CreateShare(ctx, testTenant(), "数据补充问卷", nil, 0)
	require.NoError(t, err)

	accessed, err := svc.AccessShare(ctx, share.ID, code)
	require.NoError(t, err)
	assert.Equal(t, int64(1), accessed.AccessCount)

	accessed, err = svc.AccessShare(ctx, share.ID, code)
	require.NoError(t, err)
	assert.Equal(t, int64(2), accessed.AccessCount)
}

// TestAccessShare_WrongCode 错误访问码返回专用错误且不增加计数
func TestAccessShare_WrongCode(t *testing.T) {
	tdb := testutil.NewTestDB()
	defer tdb.Close()

	svc := NewSharingService(tdb.DB)
	ctx := context.Background()

	share, _, err := svc.CreateShare(ctx, testTenant(), "数据补充问卷", nil, 0)
	require.NoError(t, err)

	_, err = svc.AccessShare(ctx, share.ID, "wrong-code")
	assert.ErrorIs(t, err, ErrAccessCodeInvalid)

	var stored models.QuestionnaireShare
	require.NoError(t, tdb.DB.First(&stored, "id = ?", share.ID).Error)
	assert.Equal(t, int64(0), stored.AccessCount)
}

// TestAccessShare_Expired 过期分享拒绝访问
func TestAccessShare_Expired(t *testing.T) {
	tdb := testutil.NewTestDB()
	defer tdb.Close()

	svc := NewSharingService(tdb.DB)
	ctx := context.Background()

	share, code, err := svc.CreateShare(ctx, testTenant(), "数据补充问卷", nil, time.Hour)
	require.NoError(t, err)

	// 将过期时间改到过去
	past := time.Now().Add(-time.Minute)
	require.NoError(t, tdb.DB.Model(&models.QuestionnaireShare{}).
		Where("id = ?", share.ID).
		UpdateColumn("expires_at", past).Error)

	_, err = svc.AccessShare(ctx, share.ID, code)
	assert.ErrorIs(t, err, ErrShareExpired)
}

// TestAccessShare_NotFound 不存在的分享ID返回记录不存在
func TestAccessShare_NotFound(t *testing.T) {
	tdb := testutil.NewTestDB()
	defer tdb.Close()

	svc := NewSharingService(tdb.DB)

	_, err := svc.AccessShare(context.Background(), "no-such-share", "code")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

// TestGetShares_TenantScoped 分享列表按租户过滤并分页
func TestGetShares_TenantScoped(t *testing.T) {
	tdb := testutil.NewTestDB()
	defer tdb.Close()

	svc := NewSharingService(tdb.DB)
	ctx := context.Background()
	tenantB := models.Tenant{ClientID: "client-b", EngagementID: "engagement-1"}

	for i := 0; i < 3; i++ {
		_, _, err := svc.CreateShare(ctx, testTenant(), "问卷A", nil, 0)
		require.NoError(t, err)
	}
	_, _, err := svc.CreateShare(ctx, tenantB, "问卷B", nil, 0)
	require.NoError(t, err)

	shares, total, err := svc.GetShares(ctx, testTenant(), 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, shares, 2)

	shares, total, err = svc.GetShares(ctx, tenantB, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, shares, 1)
	assert.Equal(t, "问卷B", shares[0].Title)
}

// TestRevokeShare 撤销后分享不可访问，跨租户撤销不命中
func TestRevokeShare(t *testing.T) {
	tdb := testutil.NewTestDB()
	defer tdb.Close()

	svc := NewSharingService(tdb.DB)
	ctx := context.Background()

	share, code, err := svc.CreateShare(ctx, testTenant(), "数据补充问卷", nil, 0)
	require.NoError(t, err)

	// 其他租户无法撤销
	tenantB := models.Tenant{ClientID: "client-b", EngagementID: "engagement-1"}
	err = svc.RevokeShare(ctx, tenantB, share.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	require.NoError(t, svc.RevokeShare(ctx, testTenant(), share.ID))

	_, err = svc.AccessShare(ctx, share.ID, code)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

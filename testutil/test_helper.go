/*
 * @module testutil/test_helper
 * @description 测试工具和辅助函数
 * @architecture 测试基础设施 - 提供测试通用工具和数据工厂
 * @documentReference .specify/memory/test_plan.md
 * @stateFlow 测试环境初始化 -> 测试数据创建 -> 测试执行 -> 清理资源
 * @rules 提供可重用的测试工具，确保测试环境的一致性
 * @dependencies gorm, sqlite, testify, time
 * @refs service/models
 */

package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"assessment-service/service/models"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// TestDB 测试数据库配置
type TestDB struct {
	DB *gorm.DB
}

// NewTestDB 创建测试数据库
func NewTestDB() *TestDB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		panic(fmt.Sprintf("failed to connect test database: %v", err))
	}

	// 自动迁移所有模型
	err = db.AutoMigrate(
		&models.Asset{},
		&models.AssetEnrichment{},
		&models.ArchitectureStandard{},
		&models.QuestionnaireShare{},
	)
	if err != nil {
		panic(fmt.Sprintf("failed to migrate test database: %v", err))
	}

	return &TestDB{DB: db}
}

// CleanDB 清理数据库
func (tdb *TestDB) CleanDB() {
	// 清空所有表的数据
	tables := []string{
		"assets",
		"asset_enrichments",
		"architecture_standards",
		"questionnaire_shares",
	}

	for _, table := range tables {
		tdb.DB.Exec(fmt.Sprintf("DELETE FROM %s", table))
	}
}

// Close 关闭数据库连接
func (tdb *TestDB) Close() {
	if db, err := tdb.DB.DB(); err == nil {
		db.Close()
	}
}

// TestDataFactory 测试数据工厂
type TestDataFactory struct {
	DB *gorm.DB
}

// NewTestDataFactory 创建测试数据工厂
func NewTestDataFactory(db *gorm.DB) *TestDataFactory {
	return &TestDataFactory{DB: db}
}

// DefaultTenant 测试用默认租户
func DefaultTenant() models.Tenant {
	return models.Tenant{ClientID: "client-a", EngagementID: "engagement-1"}
}

// AssetOption 资产选项函数类型
type AssetOption func(*models.Asset)

// WithTenant 指定资产的租户
func WithTenant(tenant models.Tenant) AssetOption {
	return func(a *models.Asset) {
		a.ClientID = tenant.ClientID
		a.EngagementID = tenant.EngagementID
	}
}

// WithAssetType 指定资产类型
func WithAssetType(assetType string) AssetOption {
	return func(a *models.Asset) {
		a.AssetType = assetType
	}
}

// CreateAsset 创建测试资产
func (f *TestDataFactory) CreateAsset(opts ...AssetOption) *models.Asset {
	tenant := DefaultTenant()
	hostname := "host-" + generateSuffix()
	environment := "production"
	cpuCores := 4

	asset := &models.Asset{
		ID:           generateID("asset"),
		ClientID:     tenant.ClientID,
		EngagementID: tenant.EngagementID,
		AssetType:    "server",
		Hostname:     &hostname,
		Environment:  &environment,
		CPUCores:     &cpuCores,
		Metadata:     models.JSONB{},
		CreatedBy:    "test",
		UpdatedBy:    "test",
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	// 应用选项
	for _, opt := range opts {
		opt(asset)
	}

	err := f.DB.Create(asset).Error
	if err != nil {
		panic(fmt.Sprintf("failed to create test asset: %v", err))
	}

	return asset
}

// CreateEnrichment 创建测试补充数据记录
func (f *TestDataFactory) CreateEnrichment(tenant models.Tenant, assetID, tableName string, data models.JSONB) *models.AssetEnrichment {
	enrichment := &models.AssetEnrichment{
		ID:           generateID("enr"),
		ClientID:     tenant.ClientID,
		EngagementID: tenant.EngagementID,
		AssetID:      assetID,
		TableName:    tableName,
		Data:         data,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	err := f.DB.Create(enrichment).Error
	if err != nil {
		panic(fmt.Sprintf("failed to create test enrichment: %v", err))
	}

	return enrichment
}

// StandardOption 标准记录选项函数类型
type StandardOption func(*models.ArchitectureStandard)

// WithMandatory 指定标准是否强制
func WithMandatory(mandatory bool) StandardOption {
	return func(s *models.ArchitectureStandard) {
		s.IsMandatory = mandatory
	}
}

// WithChecks 指定标准的最低要求检查项
func WithChecks(checks []interface{}) StandardOption {
	return func(s *models.ArchitectureStandard) {
		s.MinimumRequirements = models.JSONB{"checks": checks}
	}
}

// CreateStandard 创建测试架构标准
func (f *TestDataFactory) CreateStandard(tenant models.Tenant, standardName string, opts ...StandardOption) *models.ArchitectureStandard {
	standard := &models.ArchitectureStandard{
		ID:              generateID("std"),
		ClientID:        tenant.ClientID,
		EngagementID:    tenant.EngagementID,
		RequirementType: "security",
		StandardName:    standardName,
		Description:     "测试架构标准",
		MinimumRequirements: models.JSONB{
			"checks": []interface{}{
				map[string]interface{}{"field": "environment", "operator": "required"},
			},
		},
		IsMandatory: false,
		CreatedBy:   "test",
		UpdatedBy:   "test",
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	// 应用选项
	for _, opt := range opts {
		opt(standard)
	}

	err := f.DB.Create(standard).Error
	if err != nil {
		panic(fmt.Sprintf("failed to create test standard: %v", err))
	}

	return standard
}

// 辅助函数
func generateID(prefix string) string {
	return fmt.Sprintf("%s_%d_%s", prefix, time.Now().UnixNano(), generateSuffix())
}

func generateSuffix() string {
	return fmt.Sprintf("%d", time.Now().UnixNano()%100000)
}

// HTTPTestHelper HTTP测试辅助工具
type HTTPTestHelper struct{}

// NewHTTPTestHelper 创建HTTP测试辅助工具
func NewHTTPTestHelper() *HTTPTestHelper {
	return &HTTPTestHelper{}
}

// CreateJSONRequest 创建JSON请求
func (h *HTTPTestHelper) CreateJSONRequest(method, url string, body interface{}) (*http.Request, error) {
	var reqBody io.Reader

	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, url, reqBody)
	if err != nil {
		return nil, err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return req, nil
}

// AssertJSONResponse 断言JSON响应
func (h *HTTPTestHelper) AssertJSONResponse(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, expectedBody interface{}) {
	assert.Equal(t, expectedStatus, w.Code)

	if expectedBody != nil {
		var actualBody interface{}
		err := json.Unmarshal(w.Body.Bytes(), &actualBody)
		assert.NoError(t, err)

		expectedJSON, _ := json.Marshal(expectedBody)
		actualJSON, _ := json.Marshal(actualBody)

		assert.JSONEq(t, string(expectedJSON), string(actualJSON))
	}
}

/*
 * @module service/gap_analysis/store
 * @description 缺口分析数据访问接口及其 GORM 实现，所有查询显式携带租户标识
 * @architecture 分层架构 - 数据访问层
 * @documentReference ai_docs/gap_analysis_req.md
 * @stateFlow 租户范围查询 -> 结果返回；存储错误原样上抛，由调用方决定重试策略
 * @rules 两个租户的检查必须可以并发执行且零数据串扰；记录不存在不算错误
 * @dependencies gorm.io/gorm, assessment-service/service/models
 * @refs enrichment_inspector.go, standards_inspector.go
 */

package gap_analysis

import (
	"context"
	"errors"

	"assessment-service/service/models"

	"gorm.io/gorm"
)

// Store 缺口分析数据访问接口
// 增强表与标准记录的读取是本核心仅有的可能挂起点
type Store interface {
	// GetAsset 按租户范围读取资产
	GetAsset(ctx context.Context, tenant models.Tenant, assetID string) (*models.Asset, error)
	// ListAssets 按租户范围列出全部资产
	ListAssets(ctx context.Context, tenant models.Tenant) ([]models.Asset, error)
	// GetEnrichment 读取资产的指定增强信息记录，记录不存在时返回 (nil, nil)
	GetEnrichment(ctx context.Context, tenant models.Tenant, assetID, tableName string) (models.JSONB, error)
	// ListStandards 按名称读取租户范围内的标准记录，未命中的名称不在结果中
	ListStandards(ctx context.Context, tenant models.Tenant, names []string) ([]models.ArchitectureStandard, error)
}

// GormStore 基于 GORM 的数据访问实现
type GormStore struct {
	db *gorm.DB
}

// NewGormStore 创建 GORM 数据访问实例
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// GetAsset 按租户范围读取资产
func (s *GormStore) GetAsset(ctx context.Context, tenant models.Tenant, assetID string) (*models.Asset, error) {
	var asset models.Asset
	err := s.db.WithContext(ctx).
		Where("client_id = ? AND engagement_id = ? AND id = ?", tenant.ClientID, tenant.EngagementID, assetID).
		First(&asset).Error
	if err != nil {
		return nil, err
	}
	return &asset, nil
}

// ListAssets 按租户范围列出全部资产
func (s *GormStore) ListAssets(ctx context.Context, tenant models.Tenant) ([]models.Asset, error) {
	var assets []models.Asset
	err := s.db.WithContext(ctx).
		Where("client_id = ? AND engagement_id = ?", tenant.ClientID, tenant.EngagementID).
		Order("id").
		Find(&assets).Error
	if err != nil {
		return nil, err
	}
	return assets, nil
}

// GetEnrichment 读取资产的指定增强信息记录
func (s *GormStore) GetEnrichment(ctx context.Context, tenant models.Tenant, assetID, tableName string) (models.JSONB, error) {
	var record models.AssetEnrichment
	err := s.db.WithContext(ctx).
		Where("client_id = ? AND engagement_id = ? AND asset_id = ? AND table_name = ?",
			tenant.ClientID, tenant.EngagementID, assetID, tableName).
		First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return record.Data, nil
}

// ListStandards 按名称读取租户范围内的标准记录
func (s *GormStore) ListStandards(ctx context.Context, tenant models.Tenant, names []string) ([]models.ArchitectureStandard, error) {
	if len(names) == 0 {
		return nil, nil
	}
	var records []models.ArchitectureStandard
	err := s.db.WithContext(ctx).
		Where("client_id = ? AND engagement_id = ? AND standard_name IN ?",
			tenant.ClientID, tenant.EngagementID, names).
		Order("standard_name").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

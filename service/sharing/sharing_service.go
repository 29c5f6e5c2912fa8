/*
 * @module service/sharing/sharing_service
 * @description 问卷分享服务，将数据补充问卷分享给外部干系人并通过访问码控制访问
 * @architecture 分层架构 - 业务服务层
 * @documentReference ai_docs/assessment_model.md
 * @stateFlow 创建分享(生成访问码) -> 访问校验(bcrypt比对+过期检查) -> 访问计数 -> 撤销/过期失效
 * @rules 访问码仅存bcrypt哈希，明文只在创建响应中返回一次；所有查询按租户过滤
 * @dependencies assessment-service/service/models, gorm.io/gorm, golang.org/x/crypto/bcrypt
 * @refs service/models/questionnaire.go, service/gap_analysis/questionnaire.go
 */

package sharing

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"assessment-service/service/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	// ErrShareExpired 分享已过期
	ErrShareExpired = errors.New("分享已过期")
	// ErrAccessCodeInvalid 访问码不正确
	ErrAccessCodeInvalid = errors.New("访问码不正确")
)

// SharingService 问卷分享服务
type SharingService struct {
	db *gorm.DB
}

// NewSharingService 创建问卷分享服务实例
func NewSharingService(db *gorm.DB) *SharingService {
	return &SharingService{db: db}
}

// CreateShare 创建问卷分享
// 返回分享记录与明文访问码，明文仅此一次，数据库存储其bcrypt哈希
func (s *SharingService) CreateShare(ctx context.Context, tenant models.Tenant, title string, sections models.JSONB, ttl time.Duration) (*models.QuestionnaireShare, string, error) {
	if err := tenant.Validate(); err != nil {
		return nil, "", err
	}
	if title == "" {
		return nil, "", errors.New("分享标题不能为空")
	}

	accessCode, err := generateAccessCode(16)
	if err != nil {
		return nil, "", err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(accessCode), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	share := &models.QuestionnaireShare{
		ClientID:       tenant.ClientID,
		EngagementID:   tenant.EngagementID,
		Title:          title,
		Sections:       sections,
		AccessCodeHash: string(hashed),
	}
	if ttl > 0 {
		expiresAt := time.Now().Add(ttl)
		share.ExpiresAt = &expiresAt
	}

	if err := s.db.WithContext(ctx).Create(share).Error; err != nil {
		return nil, "", err
	}

	return share, accessCode, nil
}

// AccessShare 通过访问码访问分享的问卷
// 校验通过后访问计数加一
func (s *SharingService) AccessShare(ctx context.Context, shareID, accessCode string) (*models.QuestionnaireShare, error) {
	var share models.QuestionnaireShare
	if err := s.db.WithContext(ctx).First(&share, "id = ?", shareID).Error; err != nil {
		return nil, err
	}

	if share.IsExpired(time.Now()) {
		return nil, ErrShareExpired
	}

	if err := bcrypt.CompareHashAndPassword([]byte(share.AccessCodeHash), []byte(accessCode)); err != nil {
		return nil, ErrAccessCodeInvalid
	}

	if err := s.db.WithContext(ctx).Model(&models.QuestionnaireShare{}).
		Where("id = ?", shareID).
		UpdateColumn("access_count", gorm.Expr("access_count + 1")).Error; err != nil {
		return nil, err
	}
	share.AccessCount++

	return &share, nil
}

// GetShares 获取租户的分享列表
func (s *SharingService) GetShares(ctx context.Context, tenant models.Tenant, page, pageSize int) ([]models.QuestionnaireShare, int64, error) {
	if err := tenant.Validate(); err != nil {
		return nil, 0, err
	}

	var shares []models.QuestionnaireShare
	var total int64

	query := s.db.WithContext(ctx).Model(&models.QuestionnaireShare{}).
		Where("client_id = ? AND engagement_id = ?", tenant.ClientID, tenant.EngagementID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	if err := query.Offset(offset).Limit(pageSize).Order("created_at DESC").Find(&shares).Error; err != nil {
		return nil, 0, err
	}

	return shares, total, nil
}

// RevokeShare 撤销分享
func (s *SharingService) RevokeShare(ctx context.Context, tenant models.Tenant, shareID string) error {
	if err := tenant.Validate(); err != nil {
		return err
	}

	result := s.db.WithContext(ctx).
		Where("client_id = ? AND engagement_id = ?", tenant.ClientID, tenant.EngagementID).
		Delete(&models.QuestionnaireShare{}, "id = ?", shareID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// generateAccessCode 生成指定字节数的随机访问码（hex编码）
func generateAccessCode(numBytes int) (string, error) {
	bytes := make([]byte, numBytes)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}

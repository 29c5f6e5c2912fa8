/*
 * @module service/models/questionnaire
 * @description 问卷分享记录模型，支持将数据补充问卷分享给外部干系人
 * @architecture 分层架构 - 数据模型层
 * @documentReference ai_docs/assessment_model.md
 * @stateFlow 问卷构建 -> 创建分享 -> 访问校验 -> 过期失效
 * @rules 访问码仅存 bcrypt 哈希，明文访问码只在创建响应中返回一次
 * @dependencies gorm.io/gorm, github.com/google/uuid
 * @refs service/sharing, service/gap_analysis
 */

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// QuestionnaireShare 问卷分享记录
type QuestionnaireShare struct {
	ID             string     `gorm:"type:uuid;primary_key" json:"id"`
	ClientID       string     `gorm:"not null;index:idx_shares_tenant" json:"client_id"`
	EngagementID   string     `gorm:"not null;index:idx_shares_tenant" json:"engagement_id"`
	Title          string     `gorm:"not null" json:"title"`
	Sections       JSONB      `gorm:"type:jsonb;not null" json:"sections"`
	AccessCodeHash string     `gorm:"not null" json:"-"`
	ExpiresAt      *time.Time `json:"expires_at"`
	AccessCount    int64      `gorm:"not null;default:0" json:"access_count"`
	CreatedAt      time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	CreatedBy      string     `gorm:"not null;default:'system';size:100" json:"created_by"`
	UpdatedAt      time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
	UpdatedBy      string     `gorm:"not null;default:'system';size:100" json:"updated_by"`
}

// BeforeCreate 创建前钩子
func (q *QuestionnaireShare) BeforeCreate(tx *gorm.DB) error {
	if q.ID == "" {
		q.ID = uuid.New().String()
	}
	if q.CreatedBy == "" {
		q.CreatedBy = "system"
	}
	if q.UpdatedBy == "" {
		q.UpdatedBy = "system"
	}
	return nil
}

// IsExpired 判断分享是否已过期
func (q *QuestionnaireShare) IsExpired(now time.Time) bool {
	return q.ExpiresAt != nil && now.After(*q.ExpiresAt)
}

/*
 * @module service/models/standards
 * @description 架构/合规标准记录模型，租户范围内定义资产必须满足的最低要求
 * @architecture 分层架构 - 数据模型层
 * @documentReference ai_docs/assessment_model.md
 * @stateFlow 标准模板装载 -> 标准评估 -> 违规记录/人工豁免
 * @rules 自然键 (client_id, engagement_id, requirement_type, standard_name) 唯一，由数据库约束兜底保证幂等装载
 * @dependencies gorm.io/gorm, github.com/google/uuid, github.com/lib/pq
 * @refs service/standards, service/gap_analysis
 */

package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// ArchitectureStandard 架构/合规标准记录
type ArchitectureStandard struct {
	ID                  string         `gorm:"type:uuid;primary_key" json:"id"`
	ClientID            string         `gorm:"not null;uniqueIndex:idx_standard_natural_key" json:"client_id"`
	EngagementID        string         `gorm:"not null;uniqueIndex:idx_standard_natural_key" json:"engagement_id"`
	RequirementType     string         `gorm:"not null;uniqueIndex:idx_standard_natural_key" json:"requirement_type"` // security/resilience/compliance/architecture
	StandardName        string         `gorm:"not null;uniqueIndex:idx_standard_natural_key" json:"standard_name"`
	Description         string         `json:"description"`
	MinimumRequirements JSONB          `gorm:"type:jsonb;not null" json:"minimum_requirements"`
	PreferredPatterns   JSONB          `gorm:"type:jsonb" json:"preferred_patterns"`
	Constraints         JSONB          `gorm:"type:jsonb" json:"constraints"`
	IsMandatory         bool           `gorm:"not null;default:false" json:"is_mandatory"`
	SupportedVersions   pq.StringArray `gorm:"type:text[]" json:"supported_versions"`
	CreatedAt           time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	CreatedBy           string         `gorm:"not null;default:'system';size:100" json:"created_by"`
	UpdatedAt           time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
	UpdatedBy           string         `gorm:"not null;default:'system';size:100" json:"updated_by"`
}

// BeforeCreate 创建前钩子
func (s *ArchitectureStandard) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	if s.CreatedBy == "" {
		s.CreatedBy = "system"
	}
	if s.UpdatedBy == "" {
		s.UpdatedBy = "system"
	}
	return nil
}

// BeforeUpdate 更新前钩子
func (s *ArchitectureStandard) BeforeUpdate(tx *gorm.DB) error {
	if s.UpdatedBy == "" {
		s.UpdatedBy = "system"
	}
	return nil
}

/*
 * @module service/standards/template_loader
 * @description 标准模板装载器，将内置模板包幂等写入租户的标准目录
 * @architecture 分层架构 - 业务服务层
 * @documentReference ai_docs/standards_catalog.md
 * @stateFlow 模板包查找 -> 自然键存在性检查(快路径) -> 插入(数据库唯一约束兜底)
 * @rules 重复装载安全可重入；未知模板包名称计入 failed 并记日志，不中断其余包的装载；并发装载依赖唯一约束防重
 * @dependencies assessment-service/service/models, gorm.io/gorm, log/slog
 * @refs templates.go, service/models/standards.go
 */

package standards

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"strings"

	"assessment-service/service/models"

	"gorm.io/gorm"
)

// LoadResult 模板装载结果
type LoadResult struct {
	Loaded          int      `json:"loaded"`
	Skipped         int      `json:"skipped"`
	Failed          int      `json:"failed"`
	StandardsLoaded []string `json:"standards_loaded"`
}

// TemplateLoader 标准模板装载器
// 管理性操作，在评估项目初始化或标准目录更新时运行，不在单资产分析热路径上
type TemplateLoader struct {
	db *gorm.DB
}

// NewTemplateLoader 创建标准模板装载器实例
func NewTemplateLoader(db *gorm.DB) *TemplateLoader {
	return &TemplateLoader{db: db}
}

// Load 将指定模板包装载到租户的标准目录
// 已存在的记录按自然键 (client, engagement, requirement_type, standard_name) 跳过
func (l *TemplateLoader) Load(ctx context.Context, tenant models.Tenant, bundleIDs []string) (*LoadResult, error) {
	if err := tenant.Validate(); err != nil {
		return nil, err
	}

	result := &LoadResult{StandardsLoaded: []string{}}

	for _, bundleID := range bundleIDs {
		templates, ok := builtinBundles[bundleID]
		if !ok {
			// 名称拼写错误不应拖垮整批装载
			slog.Warn("标准模板装载: 未知模板包名称", "bundle", bundleID, "tenant", tenant.String())
			result.Failed++
			continue
		}

		for _, template := range templates {
			loaded, err := l.loadOne(ctx, tenant, template)
			if err != nil {
				return nil, err
			}
			if loaded {
				result.Loaded++
				result.StandardsLoaded = append(result.StandardsLoaded, template.StandardName)
			} else {
				result.Skipped++
			}
		}
	}

	sort.Strings(result.StandardsLoaded)
	slog.Info("标准模板装载完成",
		"tenant", tenant.String(),
		"bundles", strings.Join(bundleIDs, ","),
		"loaded", result.Loaded,
		"skipped", result.Skipped,
		"failed", result.Failed)
	return result, nil
}

// loadOne 幂等写入单条标准记录，返回是否实际插入
func (l *TemplateLoader) loadOne(ctx context.Context, tenant models.Tenant, template StandardTemplate) (bool, error) {
	var existing models.ArchitectureStandard
	err := l.db.WithContext(ctx).
		Where("client_id = ? AND engagement_id = ? AND requirement_type = ? AND standard_name = ?",
			tenant.ClientID, tenant.EngagementID, template.RequirementType, template.StandardName).
		First(&existing).Error
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}

	record := models.ArchitectureStandard{
		ClientID:            tenant.ClientID,
		EngagementID:        tenant.EngagementID,
		RequirementType:     template.RequirementType,
		StandardName:        template.StandardName,
		Description:         template.Description,
		MinimumRequirements: template.MinimumRequirements,
		PreferredPatterns:   template.PreferredPatterns,
		Constraints:         template.Constraints,
		IsMandatory:         template.IsMandatory,
		SupportedVersions:   template.SupportedVersions,
	}
	if err := l.db.WithContext(ctx).Create(&record).Error; err != nil {
		// 并发装载时存在性检查只是快路径，唯一约束冲突按已存在处理
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// ListStandards 列出租户标准目录中的全部记录
func (l *TemplateLoader) ListStandards(ctx context.Context, tenant models.Tenant) ([]models.ArchitectureStandard, error) {
	if err := tenant.Validate(); err != nil {
		return nil, err
	}
	var records []models.ArchitectureStandard
	err := l.db.WithContext(ctx).
		Where("client_id = ? AND engagement_id = ?", tenant.ClientID, tenant.EngagementID).
		Order("requirement_type, standard_name").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

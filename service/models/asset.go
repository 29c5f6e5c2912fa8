/*
 * @module service/models/asset
 * @description 迁移评估资产模型定义，包括资产主表、增强信息表和结构化字段访问能力
 * @architecture 分层架构 - 数据模型层
 * @documentReference ai_docs/assessment_model.md
 * @stateFlow 资产盘点 -> 数据采集 -> 缺口分析 -> 迁移就绪
 * @rules 资产对缺口分析引擎只读，引擎通过显式字段访问接口读取属性，不做反射探测
 * @dependencies gorm.io/gorm, github.com/google/uuid
 * @refs service/gap_analysis
 */

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Asset 迁移评估资产模型
// 结构化字段均为可空指针，nil 表示该属性尚未采集
type Asset struct {
	ID           string `gorm:"type:uuid;primary_key" json:"id"`
	ClientID     string `gorm:"not null;index:idx_assets_tenant" json:"client_id"`
	EngagementID string `gorm:"not null;index:idx_assets_tenant" json:"engagement_id"`
	AssetType    string `gorm:"not null" json:"asset_type"` // server/database/application/network_device/storage_array

	// 基础属性
	Hostname        *string `json:"hostname"`
	IPAddress       *string `json:"ip_address"`
	OperatingSystem *string `json:"operating_system"`
	OSVersion       *string `json:"os_version"`
	Environment     *string `json:"environment"` // production/staging/development
	Datacenter      *string `json:"datacenter"`

	// 容量属性
	CPUCores       *int     `json:"cpu_cores"`
	MemoryGB       *float64 `json:"memory_gb"`
	StorageGB      *float64 `json:"storage_gb"`
	DiskThroughput *float64 `json:"disk_throughput"`

	// 网络与负载属性
	NetworkZone      *string `json:"network_zone"`
	UserLoadPatterns *string `json:"user_load_patterns"`

	// 归属属性
	BusinessOwner  *string `json:"business_owner"`
	TechnicalOwner *string `json:"technical_owner"`

	// 应用与数据库属性
	ApplicationName *string `json:"application_name"`
	DatabaseEngine  *string `json:"database_engine"`
	DatabaseVersion *string `json:"database_version"`
	MiddlewareStack *string `json:"middleware_stack"`

	// 运维属性
	BackupSchedule *string `json:"backup_schedule"`
	LicensingModel *string `json:"licensing_model"`

	// 半结构化文档字段
	Configuration  JSONB `gorm:"type:jsonb" json:"configuration"`
	DeploymentInfo JSONB `gorm:"type:jsonb" json:"deployment_info"`
	Metadata       JSONB `gorm:"type:jsonb" json:"metadata"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	CreatedBy string    `gorm:"not null;default:'system';size:100" json:"created_by"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
	UpdatedBy string    `gorm:"not null;default:'system';size:100" json:"updated_by"`
}

// BeforeCreate 创建前钩子
func (a *Asset) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	if a.CreatedBy == "" {
		a.CreatedBy = "system"
	}
	if a.UpdatedBy == "" {
		a.UpdatedBy = "system"
	}
	return nil
}

// BeforeUpdate 更新前钩子
func (a *Asset) BeforeUpdate(tx *gorm.DB) error {
	if a.UpdatedBy == "" {
		a.UpdatedBy = "system"
	}
	return nil
}

// GetID 返回资产ID
func (a *Asset) GetID() string {
	return a.ID
}

// GetType 返回资产类型
func (a *Asset) GetType() string {
	return a.AssetType
}

// Field 按规范字段名读取结构化属性
// 返回值约定: (nil, true) 表示字段存在但值为空(null)，(nil, false) 表示字段不在资产模式中
// 显式 switch 替代反射探测，新增规范字段必须同步扩展此处
func (a *Asset) Field(name string) (interface{}, bool) {
	switch name {
	case "hostname":
		return deref(a.Hostname), true
	case "ip_address":
		return deref(a.IPAddress), true
	case "operating_system":
		return deref(a.OperatingSystem), true
	case "os_version":
		return deref(a.OSVersion), true
	case "environment":
		return deref(a.Environment), true
	case "datacenter":
		return deref(a.Datacenter), true
	case "cpu_cores":
		if a.CPUCores == nil {
			return nil, true
		}
		return *a.CPUCores, true
	case "memory_gb":
		return derefFloat(a.MemoryGB), true
	case "storage_gb":
		return derefFloat(a.StorageGB), true
	case "disk_throughput":
		return derefFloat(a.DiskThroughput), true
	case "network_zone":
		return deref(a.NetworkZone), true
	case "user_load_patterns":
		return deref(a.UserLoadPatterns), true
	case "business_owner":
		return deref(a.BusinessOwner), true
	case "technical_owner":
		return deref(a.TechnicalOwner), true
	case "application_name":
		return deref(a.ApplicationName), true
	case "database_engine":
		return deref(a.DatabaseEngine), true
	case "database_version":
		return deref(a.DatabaseVersion), true
	case "middleware_stack":
		return deref(a.MiddlewareStack), true
	case "backup_schedule":
		return deref(a.BackupSchedule), true
	case "licensing_model":
		return deref(a.LicensingModel), true
	default:
		return nil, false
	}
}

// Document 按名称读取半结构化文档字段
// 返回 (nil, false) 表示名称不是已知文档字段
func (a *Asset) Document(name string) (JSONB, bool) {
	switch name {
	case "configuration":
		return a.Configuration, true
	case "deployment_info":
		return a.DeploymentInfo, true
	case "metadata":
		return a.Metadata, true
	default:
		return nil, false
	}
}

func deref(s *string) interface{} {
	if s == nil {
		return nil
	}
	return *s
}

func derefFloat(f *float64) interface{} {
	if f == nil {
		return nil
	}
	return *f
}

// AssetEnrichment 资产增强信息记录
// 每个资产每种增强表至多一条记录(1:1)，Data 存放该分析维度的具体字段
type AssetEnrichment struct {
	ID           string    `gorm:"type:uuid;primary_key" json:"id"`
	ClientID     string    `gorm:"not null;uniqueIndex:idx_enrichment_natural_key" json:"client_id"`
	EngagementID string    `gorm:"not null;uniqueIndex:idx_enrichment_natural_key" json:"engagement_id"`
	AssetID      string    `gorm:"not null;uniqueIndex:idx_enrichment_natural_key" json:"asset_id"`
	TableName    string    `gorm:"not null;uniqueIndex:idx_enrichment_natural_key" json:"table_name"` // resilience/compliance_flags/vulnerabilities/tech_debt/dependencies/performance_metrics/cost_optimization
	Data         JSONB     `gorm:"type:jsonb;not null" json:"data"`
	CreatedAt    time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	CreatedBy    string    `gorm:"not null;default:'system';size:100" json:"created_by"`
	UpdatedAt    time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
	UpdatedBy    string    `gorm:"not null;default:'system';size:100" json:"updated_by"`
}

// BeforeCreate 创建前钩子
func (e *AssetEnrichment) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.CreatedBy == "" {
		e.CreatedBy = "system"
	}
	if e.UpdatedBy == "" {
		e.UpdatedBy = "system"
	}
	return nil
}

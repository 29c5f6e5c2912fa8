/*
 * @module service/standards/templates
 * @description 内置架构/合规标准模板定义，按模板包组织（支付卡、医疗数据、操作系统基线、架构最佳实践）
 * @architecture 分层架构 - 静态种子数据
 * @documentReference ai_docs/standards_catalog.md
 * @stateFlow 模板包按名称查找 -> 逐条记录幂等写入租户标准目录
 * @rules 模板为静态版本化数据，不含租户字段；租户字段由装载器填充
 * @dependencies assessment-service/service/models, github.com/lib/pq
 * @refs template_loader.go
 */

package standards

import (
	"assessment-service/service/models"

	"github.com/lib/pq"
)

// StandardTemplate 标准模板记录
type StandardTemplate struct {
	RequirementType     string
	StandardName        string
	Description         string
	MinimumRequirements models.JSONB
	PreferredPatterns   models.JSONB
	Constraints         models.JSONB
	IsMandatory         bool
	SupportedVersions   pq.StringArray
}

// builtinBundles 内置标准模板包，键为模板包名称
var builtinBundles = map[string][]StandardTemplate{
	// 支付卡行业数据安全标准
	"pci-dss": {
		{
			RequirementType: "security",
			StandardName:    "pci-dss-encryption-at-rest",
			Description:     "持卡人数据所在资产必须采集加密配置并启用静态加密",
			MinimumRequirements: models.JSONB{
				"checks": []interface{}{
					map[string]interface{}{"field": "environment", "operator": "required"},
					map[string]interface{}{"field": "backup_schedule", "operator": "required"},
				},
			},
			PreferredPatterns: models.JSONB{
				"encryption": "aes-256",
			},
			Constraints: models.JSONB{
				"data_classification": "cardholder",
			},
			IsMandatory:       true,
			SupportedVersions: pq.StringArray{"3.2.1", "4.0"},
		},
		{
			RequirementType: "security",
			StandardName:    "pci-dss-network-segmentation",
			Description:     "持卡人数据环境必须处于受控网络区域",
			MinimumRequirements: models.JSONB{
				"checks": []interface{}{
					map[string]interface{}{"field": "network_zone", "operator": "required"},
					map[string]interface{}{"field": "network_zone", "operator": "one_of", "values": []interface{}{"dmz", "restricted", "cde"}},
				},
			},
			IsMandatory:       true,
			SupportedVersions: pq.StringArray{"3.2.1", "4.0"},
		},
	},

	// 医疗健康数据合规标准
	"hipaa": {
		{
			RequirementType: "compliance",
			StandardName:    "hipaa-phi-encryption",
			Description:     "承载受保护健康信息的资产必须采集数据分级与加密信息",
			MinimumRequirements: models.JSONB{
				"checks": []interface{}{
					map[string]interface{}{"field": "environment", "operator": "required"},
					map[string]interface{}{"field": "business_owner", "operator": "required"},
				},
			},
			Constraints: models.JSONB{
				"data_classification": "phi",
			},
			IsMandatory:       true,
			SupportedVersions: pq.StringArray{"2013-omnibus"},
		},
		{
			RequirementType: "compliance",
			StandardName:    "hipaa-audit-logging",
			Description:     "受保护健康信息资产必须采集审计与备份策略",
			MinimumRequirements: models.JSONB{
				"checks": []interface{}{
					map[string]interface{}{"field": "backup_schedule", "operator": "required"},
				},
			},
			IsMandatory:       true,
			SupportedVersions: pq.StringArray{"2013-omnibus"},
		},
	},

	// 操作系统安全基线（建议级）
	"cis-baseline": {
		{
			RequirementType: "architecture",
			StandardName:    "cis-os-baseline",
			Description:     "操作系统与版本信息必须采集，便于比对基线支持矩阵",
			MinimumRequirements: models.JSONB{
				"checks": []interface{}{
					map[string]interface{}{"field": "operating_system", "operator": "required"},
					map[string]interface{}{"field": "os_version", "operator": "required"},
				},
			},
			IsMandatory:       false,
			SupportedVersions: pq.StringArray{"8"},
		},
	},

	// 架构最佳实践（建议级）
	"well-architected": {
		{
			RequirementType: "resilience",
			StandardName:    "well-architected-resilience",
			Description:     "关键资产建议采集容量与归属信息以评估弹性设计",
			MinimumRequirements: models.JSONB{
				"checks": []interface{}{
					map[string]interface{}{"field": "cpu_cores", "operator": "min", "value": 1},
					map[string]interface{}{"field": "technical_owner", "operator": "required"},
				},
			},
			IsMandatory:       false,
			SupportedVersions: pq.StringArray{"2023"},
		},
	},
}

// BundleNames 返回全部内置模板包名称
func BundleNames() []string {
	names := make([]string, 0, len(builtinBundles))
	for name := range builtinBundles {
		names = append(names, name)
	}
	return names
}

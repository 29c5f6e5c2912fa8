/*
 * @module service/gap_analysis/requirements
 * @description 数据要求解析器，按资产类型/迁移策略/合规范围/重要性等级解析出数据要求描述符
 * @architecture 分层架构 - 业务服务层
 * @documentReference ai_docs/gap_analysis_req.md
 * @stateFlow 纯函数，无 I/O，无副作用
 * @rules 未知资产类型按最大风险处理，返回所有已知层要求的并集，绝不静默降低检查强度
 * @dependencies sort
 * @refs types.go, analyzer.go
 */

package gap_analysis

import "sort"

// RequirementResolver 数据要求解析器
type RequirementResolver struct{}

// NewRequirementResolver 创建数据要求解析器实例
func NewRequirementResolver() *RequirementResolver {
	return &RequirementResolver{}
}

// canonicalColumns 全部规范结构化字段（20个）
var canonicalColumns = []string{
	"hostname", "ip_address", "operating_system", "os_version",
	"environment", "datacenter", "cpu_cores", "memory_gb",
	"storage_gb", "disk_throughput", "network_zone", "user_load_patterns",
	"business_owner", "technical_owner", "application_name", "database_engine",
	"database_version", "middleware_stack", "backup_schedule", "licensing_model",
}

// columnsByType 按资产类型的结构化字段要求表
// 预构建为集合，保证成员判定 O(1)
var columnsByType = map[string]map[string]struct{}{
	"server": toSet([]string{
		"hostname", "ip_address", "operating_system", "os_version",
		"environment", "datacenter", "cpu_cores", "memory_gb",
		"storage_gb", "disk_throughput", "network_zone",
		"business_owner", "technical_owner", "backup_schedule",
	}),
	"database": toSet([]string{
		"hostname", "ip_address", "environment", "datacenter",
		"cpu_cores", "memory_gb", "storage_gb", "disk_throughput",
		"business_owner", "technical_owner",
		"database_engine", "database_version", "backup_schedule", "licensing_model",
	}),
	"application": toSet([]string{
		"hostname", "environment", "business_owner", "technical_owner",
		"application_name", "middleware_stack", "user_load_patterns",
		"network_zone", "licensing_model",
	}),
	"network_device": toSet([]string{
		"hostname", "ip_address", "environment", "datacenter",
		"network_zone", "technical_owner", "operating_system", "os_version",
	}),
	"storage_array": toSet([]string{
		"hostname", "ip_address", "environment", "datacenter",
		"storage_gb", "disk_throughput", "technical_owner", "backup_schedule",
	}),
}

// criticalColumnsByType 按资产类型标记为关键的结构化字段
// 关键字段缺失在优先级分类中升级为 CRITICAL
var criticalColumnsByType = map[string]map[string]struct{}{
	"server":         toSet([]string{"hostname", "environment", "business_owner", "operating_system", "cpu_cores", "memory_gb"}),
	"database":       toSet([]string{"hostname", "environment", "business_owner", "database_engine", "database_version"}),
	"application":    toSet([]string{"hostname", "environment", "business_owner", "application_name", "technical_owner"}),
	"network_device": toSet([]string{"hostname", "environment", "network_zone"}),
	"storage_array":  toSet([]string{"hostname", "environment", "storage_gb"}),
}

// enrichmentsByType 按资产类型的增强信息表要求
var enrichmentsByType = map[string][]string{
	"server":         {"resilience", "vulnerabilities", "performance_metrics", "cost_optimization"},
	"database":       {"resilience", "compliance_flags", "performance_metrics"},
	"application":    {"resilience", "compliance_flags", "tech_debt", "dependencies"},
	"network_device": {"resilience", "vulnerabilities"},
	"storage_array":  {"resilience", "performance_metrics", "cost_optimization"},
}

// nestedKeysByType 按资产类型的嵌套文档键要求，键支持点号路径
var nestedKeysByType = map[string]map[string][]string{
	"server": {
		"configuration": {"patching.schedule"},
	},
	"database": {
		"configuration": {"engine.settings", "backup.policy"},
	},
	"application": {
		"deployment_info": {"deployment.strategy", "deployment.replicas"},
		"configuration":   {"runtime.version"},
	},
	"network_device": {
		"configuration": {"firmware.version"},
	},
	"storage_array": {
		"configuration": {"raid.level"},
	},
}

// standardsByScope 按合规范围映射到需要评估的标准名称
var standardsByScope = map[string][]string{
	"pci-dss": {"pci-dss-encryption-at-rest", "pci-dss-network-segmentation"},
	"hipaa":   {"hipaa-phi-encryption", "hipaa-audit-logging"},
	"cis":     {"cis-os-baseline"},
	"well-architected": {"well-architected-resilience"},
}

// Resolve 解析数据要求
// strategy 与 tier 当前不参与裁剪，签名保留供后续策略使用，避免契约变更
// 未知资产类型返回所有层要求的并集（最大风险处理）
func (r *RequirementResolver) Resolve(assetType, strategy string, complianceScopes []string, tier string) *DataRequirements {
	_ = strategy
	_ = tier

	req := &DataRequirements{
		RequiredNestedKeys:    map[string][]string{},
		PriorityWeights:       defaultWeights(),
		CompletenessThreshold: DefaultCompletenessThreshold,
	}

	if cols, ok := columnsByType[assetType]; ok {
		req.RequiredColumns = sortedKeys(cols)
		req.CriticalColumns = sortedKeys(criticalColumnsByType[assetType])
		req.RequiredEnrichments = append([]string(nil), enrichmentsByType[assetType]...)
		for field, keys := range nestedKeysByType[assetType] {
			req.RequiredNestedKeys[field] = append([]string(nil), keys...)
		}
	} else {
		// 未知类型: 全部规范字段 + 全部增强表 + 全部嵌套键要求
		req.RequiredColumns = append([]string(nil), canonicalColumns...)
		req.CriticalColumns = unionCriticalColumns()
		req.RequiredEnrichments = unionEnrichments()
		for _, nested := range nestedKeysByType {
			for field, keys := range nested {
				req.RequiredNestedKeys[field] = mergeKeys(req.RequiredNestedKeys[field], keys)
			}
		}
	}

	req.RequiredStandards = resolveStandards(complianceScopes)
	sort.Strings(req.RequiredEnrichments)
	return req
}

// resolveStandards 按合规范围展开标准名称列表，未知范围忽略
func resolveStandards(scopes []string) []string {
	seen := map[string]struct{}{}
	var names []string
	for _, scope := range scopes {
		for _, name := range standardsByScope[scope] {
			if _, ok := seen[name]; ok {
				continue
			}
			seen[name] = struct{}{}
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

func defaultWeights() map[string]float64 {
	return map[string]float64{
		LayerColumns:     defaultLayerWeight,
		LayerEnrichments: defaultLayerWeight,
		LayerNested:      defaultLayerWeight,
		LayerStandards:   defaultLayerWeight,
	}
}

func unionEnrichments() []string {
	seen := map[string]struct{}{}
	var names []string
	for _, tables := range enrichmentsByType {
		for _, name := range tables {
			if _, ok := seen[name]; ok {
				continue
			}
			seen[name] = struct{}{}
			names = append(names, name)
		}
	}
	return names
}

func unionCriticalColumns() []string {
	seen := map[string]struct{}{}
	for _, cols := range criticalColumnsByType {
		for name := range cols {
			seen[name] = struct{}{}
		}
	}
	return sortedKeys(seen)
}

func mergeKeys(existing, extra []string) []string {
	seen := map[string]struct{}{}
	for _, k := range existing {
		seen[k] = struct{}{}
	}
	merged := append([]string(nil), existing...)
	for _, k := range extra {
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		merged = append(merged, k)
	}
	sort.Strings(merged)
	return merged
}

func toSet(names []string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, name := range names {
		set[name] = struct{}{}
	}
	return set
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for key := range set {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

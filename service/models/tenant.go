package models

import "fmt"

// Tenant 租户标识，由客户与评估项目两级组成
// 所有数据访问必须显式携带租户标识，禁止使用全局租户上下文
type Tenant struct {
	ClientID     string `json:"client_id"`
	EngagementID string `json:"engagement_id"`
}

// Validate 校验租户标识完整性
func (t Tenant) Validate() error {
	if t.ClientID == "" || t.EngagementID == "" {
		return fmt.Errorf("租户标识不完整: client_id=%q engagement_id=%q", t.ClientID, t.EngagementID)
	}
	return nil
}

// String 返回租户标识的字符串表示，用于日志和锁键
func (t Tenant) String() string {
	return t.ClientID + "/" + t.EngagementID
}

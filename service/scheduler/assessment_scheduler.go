/*
 * @module service/scheduler/assessment_scheduler
 * @description 定时评估调度器，周期性对全部在途评估项目重新执行缺口分析并广播结果事件
 * @architecture 分层架构 - 服务层
 * @dependencies github.com/robfig/cron/v3, service/distributed_lock, service/gap_analysis, service/notify
 * @stateFlow 启动调度器 -> cron触发 -> 枚举租户 -> 分布式锁保护下逐租户分析 -> 发布完成事件
 * @rules Cron表达式为6字段（秒 分 时 日 月 周）；多实例部署时同一轮评估由持锁实例执行
 * @refs service/gap_analysis/service.go, service/distributed_lock/redis_lock.go
 */

package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"assessment-service/service/distributed_lock"
	"assessment-service/service/gap_analysis"
	"assessment-service/service/models"
	"assessment-service/service/notify"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

const (
	// defaultCronExpr 每天凌晨2点执行全量重评估
	defaultCronExpr = "0 0 2 * * *"
	// lockKey 全量重评估任务的分布式锁键
	lockKey = "engagement_reassessment"
	// lockTTL 锁过期时间，覆盖最长的一轮全量分析
	lockTTL = 30 * time.Minute
)

// AssessmentScheduler 定时评估调度器
type AssessmentScheduler struct {
	db              *gorm.DB
	service         *gap_analysis.Service
	publisher       *notify.Publisher
	cron            *cron.Cron
	ctx             context.Context
	cancel          context.CancelFunc
	started         bool
	distributedLock distributed_lock.DistributedLock
}

// NewAssessmentScheduler 创建定时评估调度器
func NewAssessmentScheduler(db *gorm.DB, service *gap_analysis.Service, publisher *notify.Publisher) *AssessmentScheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &AssessmentScheduler{
		db:        db,
		service:   service,
		publisher: publisher,
		cron:      cron.New(cron.WithSeconds()),
		ctx:       ctx,
		cancel:    cancel,
	}
}

// SetDistributedLock 设置分布式锁
func (as *AssessmentScheduler) SetDistributedLock(lock distributed_lock.DistributedLock) {
	as.distributedLock = lock
	if lock != nil {
		slog.Info("定时评估调度器已启用分布式锁")
	}
}

// StartScheduler 启动调度器
func (as *AssessmentScheduler) StartScheduler() error {
	if as.started {
		return fmt.Errorf("调度器已经启动")
	}

	cronExpr := os.Getenv("ASSESSMENT_CRON")
	if cronExpr == "" {
		cronExpr = defaultCronExpr
	}

	_, err := as.cron.AddFunc(cronExpr, func() {
		as.runReassessment()
	})
	if err != nil {
		slog.Error("添加定时评估任务失败",
			"cron_expression", cronExpr,
			"error", err,
			"help", "Cron表达式需要6个字段（秒 分 时 日 月 周），例如：0 0 2 * * *（每天凌晨2点）")
		return fmt.Errorf("添加定时评估任务失败: %w", err)
	}

	as.cron.Start()
	as.started = true
	slog.Info("定时评估调度器启动完成", "cron_expression", cronExpr)
	return nil
}

// StopScheduler 停止调度器
func (as *AssessmentScheduler) StopScheduler() {
	if !as.started {
		return
	}

	as.cancel()
	as.cron.Stop()
	as.started = false
	slog.Info("定时评估调度器已停止")
}

// TriggerNow 立即触发一轮全量重评估（管理接口用）
func (as *AssessmentScheduler) TriggerNow() {
	go as.runReassessment()
}

// runReassessment 执行一轮全量重评估（带分布式锁）
func (as *AssessmentScheduler) runReassessment() {
	if as.distributedLock != nil {
		locked, err := as.distributedLock.TryLock(as.ctx, lockKey, lockTTL)
		if err != nil {
			slog.Error("获取分布式锁失败", "key", lockKey, "error", err)
			return
		}
		if !locked {
			slog.Warn("全量重评估正在其他实例执行，跳过", "key", lockKey)
			return
		}
		defer func() {
			if unlockErr := as.distributedLock.Unlock(as.ctx, lockKey); unlockErr != nil {
				slog.Error("释放分布式锁失败", "key", lockKey, "error", unlockErr)
			}
		}()
	}

	tenants, err := as.listTenants()
	if err != nil {
		slog.Error("枚举评估项目失败", "error", err)
		return
	}

	slog.Info("开始全量重评估", "tenant_count", len(tenants))

	successCount := 0
	failedCount := 0
	for _, tenant := range tenants {
		if err := as.reassessTenant(tenant); err != nil {
			slog.Error("评估项目重评估失败", "tenant", tenant.String(), "error", err)
			failedCount++
		} else {
			successCount++
		}
	}

	slog.Info("全量重评估完成", "total", len(tenants), "success", successCount, "failed", failedCount)
}

// listTenants 枚举存在资产的全部评估项目
func (as *AssessmentScheduler) listTenants() ([]models.Tenant, error) {
	var tenants []models.Tenant
	err := as.db.Model(&models.Asset{}).
		Distinct("client_id", "engagement_id").
		Order("client_id, engagement_id").
		Find(&tenants).Error
	if err != nil {
		return nil, fmt.Errorf("查询评估项目列表失败: %w", err)
	}
	return tenants, nil
}

// reassessTenant 对单个评估项目执行全量缺口分析并发布结果事件
func (as *AssessmentScheduler) reassessTenant(tenant models.Tenant) error {
	start := time.Now()

	reports, err := as.service.AnalyzeEngagement(as.ctx, tenant, gap_analysis.AnalysisOptions{})
	if err != nil {
		return err
	}

	readyCount := 0
	for _, report := range reports {
		if report.IsReady {
			readyCount++
		}
	}

	slog.Info("评估项目重评估完成",
		"tenant", tenant.String(),
		"asset_count", len(reports),
		"ready_count", readyCount,
		"duration", time.Since(start))

	if err := as.publisher.Publish(as.ctx, notify.EventAnalysisCompleted, tenant, map[string]interface{}{
		"asset_count": len(reports),
		"ready_count": readyCount,
		"trigger":     "scheduled",
	}); err != nil {
		// 事件发布失败不影响评估结果
		slog.Error("发布评估完成事件失败", "tenant", tenant.String(), "error", err)
	}
	return nil
}

/*
 * @module service/init
 * @description 服务初始化模块，负责数据库连接、表结构迁移和全局服务装配
 * @architecture 分层架构 - 服务层
 * @documentReference ai_docs/assessment_model.md
 * @stateFlow 应用启动时执行初始化流程
 * @rules 确保所有依赖服务正常启动后才提供API服务
 * @dependencies gorm.io/gorm, gorm.io/driver/postgres
 * @refs service/gap_analysis, service/standards, service/scheduler
 */

package service

import (
	"fmt"
	"log"
	"os"

	"assessment-service/service/distributed_lock"
	"assessment-service/service/gap_analysis"
	"assessment-service/service/models"
	"assessment-service/service/notify"
	"assessment-service/service/scheduler"
	"assessment-service/service/sharing"
	"assessment-service/service/standards"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var (
	DB                       *gorm.DB
	GlobalGapAnalysisService *gap_analysis.Service
	GlobalTemplateLoader     *standards.TemplateLoader
	GlobalSharingService     *sharing.SharingService
	GlobalEventPublisher     *notify.Publisher
	GlobalScheduler          *scheduler.AssessmentScheduler
)

func init() {
	initDatabase()
	runMigrations()
	initServices()
}

// initDatabase 初始化数据库连接
func initDatabase() {
	var dsn string

	// 优先使用DATABASE_URL环境变量
	if databaseURL := os.Getenv("DATABASE_URL"); databaseURL != "" {
		dsn = databaseURL
	} else {
		// 使用分离的环境变量构建连接字符串
		host := getEnvWithDefault("DB_HOST", "localhost")
		port := getEnvWithDefault("DB_PORT", "5432")
		user := getEnvWithDefault("DB_USER", "postgres")
		password := getEnvWithDefault("DB_PASSWORD", "things2024")
		dbname := getEnvWithDefault("DB_NAME", "postgres")
		sslmode := getEnvWithDefault("DB_SSLMODE", "disable")
		schema := getEnvWithDefault("DB_SCHEMA", "public")

		dsn = fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s search_path=%s TimeZone=Asia/Shanghai",
			host, port, user, password, dbname, sslmode, schema)
	}

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("数据库连接失败: %v", err)
	}

	log.Println("数据库连接成功")
}

// getEnvWithDefault 获取环境变量，如果不存在则返回默认值
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// runMigrations 运行数据库迁移
func runMigrations() {
	log.Println("开始运行数据库迁移...")

	err := DB.AutoMigrate(
		&models.Asset{},
		&models.AssetEnrichment{},
		&models.ArchitectureStandard{},
		&models.QuestionnaireShare{},
	)
	if err != nil {
		log.Fatalf("数据库迁移失败: %v", err)
	}

	log.Println("数据库表结构迁移完成")
}

// initServices 初始化服务
func initServices() {
	GlobalGapAnalysisService = gap_analysis.NewService(DB)
	GlobalTemplateLoader = standards.NewTemplateLoader(DB)
	GlobalSharingService = sharing.NewSharingService(DB)
	GlobalEventPublisher = notify.NewPublisherFromEnv()

	GlobalScheduler = scheduler.NewAssessmentScheduler(DB, GlobalGapAnalysisService, GlobalEventPublisher)

	// Redis可用时启用分布式锁，多实例部署下防止重复调度
	if lock, err := distributed_lock.NewRedisLock(); err != nil {
		log.Printf("Redis分布式锁初始化失败，调度器以单实例模式运行: %v", err)
	} else {
		GlobalScheduler.SetDistributedLock(lock)
	}

	if err := GlobalScheduler.StartScheduler(); err != nil {
		log.Printf("启动定时评估调度器失败: %v", err)
	}

	log.Println("服务初始化完成")
}

/*
 * @module api/routes
 * @description API路由配置模块，负责初始化和配置所有HTTP路由
 * @architecture RESTful API架构
 * @documentReference ai_docs/assessment_model.md
 * @stateFlow 无状态HTTP请求处理
 * @rules 遵循RESTful API设计规范，统一错误处理和响应格式
 * @dependencies github.com/go-chi/chi/v5, github.com/go-chi/cors, github.com/go-chi/render
 * @refs api/controllers
 */

package api

import (
	"assessment-service/api/controllers"
	"assessment-service/service"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/render"
)

// InitRoute 初始化所有API路由
func InitRoute(r *chi.Mux) {
	// 基础中间件
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(render.SetContentType(render.ContentTypeJSON))

	// CORS配置
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// 健康检查
	healthController := controllers.NewHealthController()
	r.Get("/health", healthController.Health)
	r.Get("/ready", healthController.Ready)

	// 资产管理
	r.Route("/assets", func(r chi.Router) {
		assetController := controllers.NewAssetController()

		r.Post("/", assetController.CreateAsset)
		r.Get("/", assetController.GetAssets)
		r.Get("/{id}", assetController.GetAssetByID)
		r.Put("/{id}", assetController.UpdateAsset)
		r.Delete("/{id}", assetController.DeleteAsset)

		// 补充数据表写入
		r.Post("/enrichments", assetController.UpsertEnrichment)
	})

	// 缺口分析
	r.Route("/gap-analysis", func(r chi.Router) {
		gapController := controllers.NewGapAnalysisController()

		r.Post("/assets/{id}", gapController.AnalyzeAsset)
		r.Post("/batch", gapController.AnalyzeBatch)
		r.Post("/engagement", gapController.AnalyzeEngagement)
		r.Post("/questionnaire", gapController.BuildQuestionnaire)
		r.Post("/trigger-reassessment", gapController.TriggerReassessment)
	})

	// 架构标准管理
	r.Route("/standards", func(r chi.Router) {
		standardsController := controllers.NewStandardsController()

		r.Get("/", standardsController.GetStandards)
		r.Get("/bundles", standardsController.GetBundles)
		r.Post("/load", standardsController.LoadTemplates)
	})

	// 问卷分享
	r.Route("/sharing", func(r chi.Router) {
		sharingController := controllers.NewSharingController(service.GlobalSharingService)

		r.Route("/shares", func(r chi.Router) {
			r.Post("/", sharingController.CreateShare)
			r.Get("/", sharingController.GetShares)
			r.Post("/{id}/access", sharingController.AccessShare)
			r.Delete("/{id}", sharingController.RevokeShare)
		})
	})
}

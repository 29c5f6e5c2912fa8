/*
 * @module api/controllers/gap_controller
 * @description 缺口分析控制器，提供单资产/批量/全量缺口分析和问卷构建API接口
 * @architecture 分层架构 - 控制器层
 * @documentReference ai_docs/gap_analysis_req.md
 * @stateFlow HTTP请求处理流程
 * @rules 统一的错误处理和响应格式；所有接口要求携带租户标识
 * @dependencies assessment-service/service, github.com/go-chi/chi/v5
 * @refs service/gap_analysis/service.go
 */

package controllers

import (
	"errors"
	"net/http"

	"assessment-service/service"
	"assessment-service/service/gap_analysis"
	"assessment-service/service/models"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"gorm.io/gorm"
)

// GapAnalysisController 缺口分析控制器
type GapAnalysisController struct {
	gapService *gap_analysis.Service
}

// NewGapAnalysisController 创建缺口分析控制器实例
func NewGapAnalysisController() *GapAnalysisController {
	return &GapAnalysisController{
		gapService: service.GlobalGapAnalysisService,
	}
}

// AnalyzeRequest 缺口分析请求
type AnalyzeRequest struct {
	ClientID         string   `json:"client_id"`
	EngagementID     string   `json:"engagement_id"`
	AssetIDs         []string `json:"asset_ids,omitempty"`
	Strategy         string   `json:"strategy,omitempty"`
	ComplianceScopes []string `json:"compliance_scopes,omitempty"`
	CriticalityTier  string   `json:"criticality_tier,omitempty"`
	Concurrency      int      `json:"concurrency,omitempty"`
}

func (req *AnalyzeRequest) tenant() models.Tenant {
	return models.Tenant{ClientID: req.ClientID, EngagementID: req.EngagementID}
}

func (req *AnalyzeRequest) options() gap_analysis.AnalysisOptions {
	return gap_analysis.AnalysisOptions{
		Strategy:         req.Strategy,
		ComplianceScopes: req.ComplianceScopes,
		CriticalityTier:  req.CriticalityTier,
		Concurrency:      req.Concurrency,
	}
}

// AnalyzeAsset 单资产缺口分析
// @Summary 单资产缺口分析
// @Description 对指定资产执行四层缺口分析，返回聚合缺口报告
// @Tags 缺口分析
// @Accept json
// @Produce json
// @Param id path string true "资产ID"
// @Param request body AnalyzeRequest true "分析上下文"
// @Success 200 {object} APIResponse{data=gap_analysis.AggregatedGapReport} "分析成功"
// @Failure 400 {object} APIResponse "请求参数错误"
// @Failure 404 {object} APIResponse "资产不存在"
// @Failure 500 {object} APIResponse "服务器内部错误"
// @Router /gap-analysis/assets/{id} [post]
func (c *GapAnalysisController) AnalyzeAsset(w http.ResponseWriter, r *http.Request) {
	assetID := chi.URLParam(r, "id")

	var req AnalyzeRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		render.JSON(w, r, APIResponse{
			Status: http.StatusBadRequest,
			Msg:    "请求参数格式错误",
		})
		return
	}

	report, err := c.gapService.AnalyzeAsset(r.Context(), req.tenant(), assetID, req.options())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			render.JSON(w, r, APIResponse{
				Status: http.StatusNotFound,
				Msg:    "资产不存在",
			})
			return
		}
		render.JSON(w, r, APIResponse{
			Status: http.StatusInternalServerError,
			Msg:    "缺口分析失败",
		})
		return
	}

	render.JSON(w, r, APIResponse{
		Status: http.StatusOK,
		Msg:    "缺口分析成功",
		Data:   report,
	})
}

// AnalyzeBatch 批量缺口分析
// @Summary 批量缺口分析
// @Description 对指定资产列表并发执行缺口分析
// @Tags 缺口分析
// @Accept json
// @Produce json
// @Param request body AnalyzeRequest true "分析上下文（含资产ID列表）"
// @Success 200 {object} APIResponse{data=[]gap_analysis.AggregatedGapReport} "分析成功"
// @Failure 400 {object} APIResponse "请求参数错误"
// @Failure 500 {object} APIResponse "服务器内部错误"
// @Router /gap-analysis/batch [post]
func (c *GapAnalysisController) AnalyzeBatch(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		render.JSON(w, r, APIResponse{
			Status: http.StatusBadRequest,
			Msg:    "请求参数格式错误",
		})
		return
	}

	if len(req.AssetIDs) == 0 {
		render.JSON(w, r, APIResponse{
			Status: http.StatusBadRequest,
			Msg:    "资产ID列表不能为空",
		})
		return
	}

	reports, err := c.gapService.AnalyzeBatch(r.Context(), req.tenant(), req.AssetIDs, req.options())
	if err != nil {
		render.JSON(w, r, APIResponse{
			Status: http.StatusInternalServerError,
			Msg:    "批量缺口分析失败",
		})
		return
	}

	render.JSON(w, r, APIResponse{
		Status: http.StatusOK,
		Msg:    "批量缺口分析成功",
		Data:   reports,
	})
}

// AnalyzeEngagement 全量缺口分析
// @Summary 全量缺口分析
// @Description 对评估项目内全部资产执行缺口分析
// @Tags 缺口分析
// @Accept json
// @Produce json
// @Param request body AnalyzeRequest true "分析上下文"
// @Success 200 {object} APIResponse{data=[]gap_analysis.AggregatedGapReport} "分析成功"
// @Failure 400 {object} APIResponse "请求参数错误"
// @Failure 500 {object} APIResponse "服务器内部错误"
// @Router /gap-analysis/engagement [post]
func (c *GapAnalysisController) AnalyzeEngagement(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		render.JSON(w, r, APIResponse{
			Status: http.StatusBadRequest,
			Msg:    "请求参数格式错误",
		})
		return
	}

	reports, err := c.gapService.AnalyzeEngagement(r.Context(), req.tenant(), req.options())
	if err != nil {
		render.JSON(w, r, APIResponse{
			Status: http.StatusInternalServerError,
			Msg:    "全量缺口分析失败",
		})
		return
	}

	render.JSON(w, r, APIResponse{
		Status: http.StatusOK,
		Msg:    "全量缺口分析成功",
		Data:   reports,
	})
}

// BuildQuestionnaire 构建数据补充问卷
// @Summary 构建数据补充问卷
// @Description 基于批量缺口分析结果生成按优先级排序的数据补充问卷
// @Tags 缺口分析
// @Accept json
// @Produce json
// @Param request body AnalyzeRequest true "分析上下文（含资产ID列表）"
// @Success 200 {object} APIResponse{data=[]gap_analysis.QuestionSection} "构建成功"
// @Failure 400 {object} APIResponse "请求参数错误"
// @Failure 500 {object} APIResponse "服务器内部错误"
// @Router /gap-analysis/questionnaire [post]
func (c *GapAnalysisController) BuildQuestionnaire(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		render.JSON(w, r, APIResponse{
			Status: http.StatusBadRequest,
			Msg:    "请求参数格式错误",
		})
		return
	}

	if len(req.AssetIDs) == 0 {
		render.JSON(w, r, APIResponse{
			Status: http.StatusBadRequest,
			Msg:    "资产ID列表不能为空",
		})
		return
	}

	sections, err := c.gapService.BuildQuestionnaire(r.Context(), req.tenant(), req.AssetIDs, req.options())
	if err != nil {
		render.JSON(w, r, APIResponse{
			Status: http.StatusInternalServerError,
			Msg:    "构建问卷失败",
		})
		return
	}

	render.JSON(w, r, APIResponse{
		Status: http.StatusOK,
		Msg:    "构建问卷成功",
		Data:   sections,
	})
}

// TriggerReassessment 立即触发全量重评估
// @Summary 立即触发全量重评估
// @Description 触发一轮覆盖全部评估项目的定时重评估任务
// @Tags 缺口分析
// @Produce json
// @Success 202 {object} APIResponse "已触发"
// @Router /gap-analysis/trigger-reassessment [post]
func (c *GapAnalysisController) TriggerReassessment(w http.ResponseWriter, r *http.Request) {
	service.GlobalScheduler.TriggerNow()
	render.JSON(w, r, APIResponse{
		Status: http.StatusAccepted,
		Msg:    "全量重评估已触发",
	})
}

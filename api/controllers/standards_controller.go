/*
 * @module api/controllers/standards_controller
 * @description 架构标准控制器，提供标准模板装载和标准目录查询API接口
 * @architecture 分层架构 - 控制器层
 * @documentReference ai_docs/standards_catalog.md
 * @stateFlow HTTP请求处理流程
 * @rules 统一的错误处理和响应格式；所有接口要求携带租户标识
 * @dependencies assessment-service/service, github.com/go-chi/render
 * @refs service/standards/template_loader.go
 */

package controllers

import (
	"net/http"

	"assessment-service/service"
	"assessment-service/service/models"
	"assessment-service/service/standards"

	"github.com/go-chi/render"
)

// StandardsController 架构标准控制器
type StandardsController struct {
	loader *standards.TemplateLoader
}

// NewStandardsController 创建架构标准控制器实例
func NewStandardsController() *StandardsController {
	return &StandardsController{
		loader: service.GlobalTemplateLoader,
	}
}

// LoadTemplatesRequest 模板装载请求
type LoadTemplatesRequest struct {
	ClientID     string   `json:"client_id"`
	EngagementID string   `json:"engagement_id"`
	Bundles      []string `json:"bundles"`
}

// LoadTemplates 装载标准模板
// @Summary 装载标准模板
// @Description 将内置标准模板包幂等装载到租户的标准目录，重复装载安全
// @Tags 架构标准
// @Accept json
// @Produce json
// @Param request body LoadTemplatesRequest true "模板包列表"
// @Success 200 {object} APIResponse{data=standards.LoadResult} "装载完成"
// @Failure 400 {object} APIResponse "请求参数错误"
// @Failure 500 {object} APIResponse "服务器内部错误"
// @Router /standards/load [post]
func (c *StandardsController) LoadTemplates(w http.ResponseWriter, r *http.Request) {
	var req LoadTemplatesRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		render.JSON(w, r, APIResponse{
			Status: http.StatusBadRequest,
			Msg:    "请求参数格式错误",
		})
		return
	}

	if len(req.Bundles) == 0 {
		render.JSON(w, r, APIResponse{
			Status: http.StatusBadRequest,
			Msg:    "模板包列表不能为空",
		})
		return
	}

	tenant := models.Tenant{ClientID: req.ClientID, EngagementID: req.EngagementID}
	result, err := c.loader.Load(r.Context(), tenant, req.Bundles)
	if err != nil {
		render.JSON(w, r, APIResponse{
			Status: http.StatusInternalServerError,
			Msg:    "装载标准模板失败",
		})
		return
	}

	render.JSON(w, r, APIResponse{
		Status: http.StatusOK,
		Msg:    "装载标准模板完成",
		Data:   result,
	})
}

// GetStandards 获取标准目录
// @Summary 获取标准目录
// @Description 列出租户标准目录中的全部标准记录
// @Tags 架构标准
// @Produce json
// @Param client_id query string true "客户ID"
// @Param engagement_id query string true "评估项目ID"
// @Success 200 {object} APIResponse{data=[]models.ArchitectureStandard} "获取成功"
// @Failure 400 {object} APIResponse "请求参数错误"
// @Failure 500 {object} APIResponse "服务器内部错误"
// @Router /standards [get]
func (c *StandardsController) GetStandards(w http.ResponseWriter, r *http.Request) {
	tenant := models.Tenant{
		ClientID:     r.URL.Query().Get("client_id"),
		EngagementID: r.URL.Query().Get("engagement_id"),
	}
	if err := tenant.Validate(); err != nil {
		render.JSON(w, r, APIResponse{
			Status: http.StatusBadRequest,
			Msg:    "租户标识不能为空",
		})
		return
	}

	records, err := c.loader.ListStandards(r.Context(), tenant)
	if err != nil {
		render.JSON(w, r, APIResponse{
			Status: http.StatusInternalServerError,
			Msg:    "获取标准目录失败",
		})
		return
	}

	render.JSON(w, r, APIResponse{
		Status: http.StatusOK,
		Msg:    "获取标准目录成功",
		Data:   records,
	})
}

// GetBundles 获取内置模板包列表
// @Summary 获取内置模板包列表
// @Description 列出全部可装载的内置标准模板包名称
// @Tags 架构标准
// @Produce json
// @Success 200 {object} APIResponse{data=[]string} "获取成功"
// @Router /standards/bundles [get]
func (c *StandardsController) GetBundles(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, APIResponse{
		Status: http.StatusOK,
		Msg:    "获取模板包列表成功",
		Data:   standards.BundleNames(),
	})
}

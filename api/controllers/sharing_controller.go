/*
 * @module api/controllers/sharing_controller
 * @description 问卷分享控制器，提供问卷分享创建、访问、撤销等API接口
 * @architecture 分层架构 - 控制器层
 * @documentReference ai_docs/assessment_model.md
 * @stateFlow HTTP请求处理流程
 * @rules 统一的错误处理和响应格式；明文访问码只在创建响应中返回一次
 * @dependencies assessment-service/service, github.com/go-chi/chi/v5
 * @refs service/sharing/sharing_service.go
 */

package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"assessment-service/service/models"
	"assessment-service/service/sharing"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"gorm.io/gorm"
)

// SharingController 问卷分享控制器
type SharingController struct {
	sharingService *sharing.SharingService
}

// NewSharingController 创建问卷分享控制器实例
func NewSharingController(sharingService *sharing.SharingService) *SharingController {
	return &SharingController{
		sharingService: sharingService,
	}
}

// CreateShareRequest 创建分享请求
type CreateShareRequest struct {
	ClientID     string       `json:"client_id"`
	EngagementID string       `json:"engagement_id"`
	Title        string       `json:"title"`
	Sections     models.JSONB `json:"sections"`
	TTLHours     int          `json:"ttl_hours,omitempty"`
}

// CreateShareResponse 创建分享响应，访问码仅此一次返回
type CreateShareResponse struct {
	Share      *models.QuestionnaireShare `json:"share"`
	AccessCode string                     `json:"access_code"`
}

// CreateShare 创建问卷分享
// @Summary 创建问卷分享
// @Description 创建问卷分享并生成访问码，访问码明文仅在本次响应中返回
// @Tags 问卷分享
// @Accept json
// @Produce json
// @Param request body CreateShareRequest true "分享信息"
// @Success 201 {object} APIResponse{data=CreateShareResponse} "创建成功"
// @Failure 400 {object} APIResponse "请求参数错误"
// @Failure 500 {object} APIResponse "服务器内部错误"
// @Router /sharing/shares [post]
func (c *SharingController) CreateShare(w http.ResponseWriter, r *http.Request) {
	var req CreateShareRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		render.JSON(w, r, APIResponse{
			Status: http.StatusBadRequest,
			Msg:    "请求参数格式错误",
		})
		return
	}

	tenant := models.Tenant{ClientID: req.ClientID, EngagementID: req.EngagementID}
	ttl := time.Duration(req.TTLHours) * time.Hour

	share, accessCode, err := c.sharingService.CreateShare(r.Context(), tenant, req.Title, req.Sections, ttl)
	if err != nil {
		render.JSON(w, r, APIResponse{
			Status: http.StatusInternalServerError,
			Msg:    "创建问卷分享失败",
		})
		return
	}

	render.JSON(w, r, APIResponse{
		Status: http.StatusCreated,
		Msg:    "创建问卷分享成功",
		Data: CreateShareResponse{
			Share:      share,
			AccessCode: accessCode,
		},
	})
}

// AccessShareRequest 访问分享请求
type AccessShareRequest struct {
	AccessCode string `json:"access_code"`
}

// AccessShare 访问问卷分享
// @Summary 访问问卷分享
// @Description 通过访问码访问分享的问卷内容
// @Tags 问卷分享
// @Accept json
// @Produce json
// @Param id path string true "分享ID"
// @Param request body AccessShareRequest true "访问码"
// @Success 200 {object} APIResponse{data=models.QuestionnaireShare} "访问成功"
// @Failure 401 {object} APIResponse "访问码不正确"
// @Failure 404 {object} APIResponse "分享不存在"
// @Failure 410 {object} APIResponse "分享已过期"
// @Router /sharing/shares/{id}/access [post]
func (c *SharingController) AccessShare(w http.ResponseWriter, r *http.Request) {
	shareID := chi.URLParam(r, "id")

	var req AccessShareRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		render.JSON(w, r, APIResponse{
			Status: http.StatusBadRequest,
			Msg:    "请求参数格式错误",
		})
		return
	}

	share, err := c.sharingService.AccessShare(r.Context(), shareID, req.AccessCode)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			render.JSON(w, r, APIResponse{
				Status: http.StatusNotFound,
				Msg:    "分享不存在",
			})
		case errors.Is(err, sharing.ErrShareExpired):
			render.JSON(w, r, APIResponse{
				Status: http.StatusGone,
				Msg:    "分享已过期",
			})
		case errors.Is(err, sharing.ErrAccessCodeInvalid):
			render.JSON(w, r, APIResponse{
				Status: http.StatusUnauthorized,
				Msg:    "访问码不正确",
			})
		default:
			render.JSON(w, r, APIResponse{
				Status: http.StatusInternalServerError,
				Msg:    "访问问卷分享失败",
			})
		}
		return
	}

	render.JSON(w, r, APIResponse{
		Status: http.StatusOK,
		Msg:    "访问问卷分享成功",
		Data:   share,
	})
}

// GetShares 获取分享列表
// @Summary 获取分享列表
// @Description 分页获取租户的问卷分享列表
// @Tags 问卷分享
// @Produce json
// @Param client_id query string true "客户ID"
// @Param engagement_id query string true "评估项目ID"
// @Param page query int false "页码" default(1)
// @Param size query int false "每页数量" default(10)
// @Success 200 {object} PaginatedResponse{data=[]models.QuestionnaireShare} "获取成功"
// @Failure 400 {object} APIResponse "请求参数错误"
// @Failure 500 {object} APIResponse "服务器内部错误"
// @Router /sharing/shares [get]
func (c *SharingController) GetShares(w http.ResponseWriter, r *http.Request) {
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

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page <= 0 {
		page = 1
	}
	size, _ := strconv.Atoi(r.URL.Query().Get("size"))
	if size <= 0 {
		size = 10
	}

	shares, total, err := c.sharingService.GetShares(r.Context(), tenant, page, size)
	if err != nil {
		render.JSON(w, r, APIResponse{
			Status: http.StatusInternalServerError,
			Msg:    "获取分享列表失败",
		})
		return
	}

	render.JSON(w, r, PaginatedResponse{
		Status: http.StatusOK,
		Msg:    "获取分享列表成功",
		Data:   shares,
		Total:  total,
		Page:   page,
		Size:   size,
	})
}

// RevokeShare 撤销问卷分享
// @Summary 撤销问卷分享
// @Description 撤销指定的问卷分享，撤销后访问码立即失效
// @Tags 问卷分享
// @Produce json
// @Param id path string true "分享ID"
// @Param client_id query string true "客户ID"
// @Param engagement_id query string true "评估项目ID"
// @Success 200 {object} APIResponse "撤销成功"
// @Failure 400 {object} APIResponse "请求参数错误"
// @Failure 404 {object} APIResponse "分享不存在"
// @Router /sharing/shares/{id} [delete]
func (c *SharingController) RevokeShare(w http.ResponseWriter, r *http.Request) {
	shareID := chi.URLParam(r, "id")
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

	if err := c.sharingService.RevokeShare(r.Context(), tenant, shareID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			render.JSON(w, r, APIResponse{
				Status: http.StatusNotFound,
				Msg:    "分享不存在",
			})
			return
		}
		render.JSON(w, r, APIResponse{
			Status: http.StatusInternalServerError,
			Msg:    "撤销问卷分享失败",
		})
		return
	}

	render.JSON(w, r, APIResponse{
		Status: http.StatusOK,
		Msg:    "撤销问卷分享成功",
	})
}

/*
 * @module api/controllers/asset_controller
 * @description 资产管理控制器，提供评估资产和补充数据表的录入、查询API接口
 * @architecture 分层架构 - 控制器层
 * @documentReference ai_docs/assessment_model.md
 * @stateFlow HTTP请求处理流程
 * @rules 统一的错误处理和响应格式；补充数据表按自然键幂等更新
 * @dependencies assessment-service/service, github.com/go-chi/chi/v5
 * @refs service/models/asset.go
 */

package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"assessment-service/service"
	"assessment-service/service/models"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AssetController 资产管理控制器
type AssetController struct {
	db *gorm.DB
}

// NewAssetController 创建资产管理控制器实例
func NewAssetController() *AssetController {
	return &AssetController{db: service.DB}
}

// CreateAsset 创建资产
// @Summary 创建资产
// @Description 录入一条评估资产记录
// @Tags 资产管理
// @Accept json
// @Produce json
// @Param asset body models.Asset true "资产信息"
// @Success 201 {object} APIResponse{data=models.Asset} "创建成功"
// @Failure 400 {object} APIResponse "请求参数错误"
// @Failure 500 {object} APIResponse "服务器内部错误"
// @Router /assets [post]
func (c *AssetController) CreateAsset(w http.ResponseWriter, r *http.Request) {
	var asset models.Asset
	if err := render.DecodeJSON(r.Body, &asset); err != nil {
		render.JSON(w, r, APIResponse{
			Status: http.StatusBadRequest,
			Msg:    "请求参数格式错误",
		})
		return
	}

	tenant := models.Tenant{ClientID: asset.ClientID, EngagementID: asset.EngagementID}
	if err := tenant.Validate(); err != nil {
		render.JSON(w, r, APIResponse{
			Status: http.StatusBadRequest,
			Msg:    "租户标识不能为空",
		})
		return
	}

	if err := c.db.WithContext(r.Context()).Create(&asset).Error; err != nil {
		render.JSON(w, r, APIResponse{
			Status: http.StatusInternalServerError,
			Msg:    "创建资产失败",
		})
		return
	}

	render.JSON(w, r, APIResponse{
		Status: http.StatusCreated,
		Msg:    "创建资产成功",
		Data:   asset,
	})
}

// GetAssets 获取资产列表
// @Summary 获取资产列表
// @Description 分页获取租户的评估资产列表，支持按资产类型过滤
// @Tags 资产管理
// @Produce json
// @Param client_id query string true "客户ID"
// @Param engagement_id query string true "评估项目ID"
// @Param asset_type query string false "资产类型"
// @Param page query int false "页码" default(1)
// @Param size query int false "每页数量" default(10)
// @Success 200 {object} PaginatedResponse{data=[]models.Asset} "获取成功"
// @Failure 400 {object} APIResponse "请求参数错误"
// @Failure 500 {object} APIResponse "服务器内部错误"
// @Router /assets [get]
func (c *AssetController) GetAssets(w http.ResponseWriter, r *http.Request) {
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

	query := c.db.WithContext(r.Context()).Model(&models.Asset{}).
		Where("client_id = ? AND engagement_id = ?", tenant.ClientID, tenant.EngagementID)
	if assetType := r.URL.Query().Get("asset_type"); assetType != "" {
		query = query.Where("asset_type = ?", assetType)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		render.JSON(w, r, APIResponse{
			Status: http.StatusInternalServerError,
			Msg:    "获取资产列表失败",
		})
		return
	}

	var assets []models.Asset
	offset := (page - 1) * size
	if err := query.Offset(offset).Limit(size).Order("created_at DESC").Find(&assets).Error; err != nil {
		render.JSON(w, r, APIResponse{
			Status: http.StatusInternalServerError,
			Msg:    "获取资产列表失败",
		})
		return
	}

	render.JSON(w, r, PaginatedResponse{
		Status: http.StatusOK,
		Msg:    "获取资产列表成功",
		Data:   assets,
		Total:  total,
		Page:   page,
		Size:   size,
	})
}

// GetAssetByID 根据ID获取资产
// @Summary 根据ID获取资产
// @Description 获取单条评估资产详情
// @Tags 资产管理
// @Produce json
// @Param id path string true "资产ID"
// @Param client_id query string true "客户ID"
// @Param engagement_id query string true "评估项目ID"
// @Success 200 {object} APIResponse{data=models.Asset} "获取成功"
// @Failure 404 {object} APIResponse "资产不存在"
// @Router /assets/{id} [get]
func (c *AssetController) GetAssetByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
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

	var asset models.Asset
	err := c.db.WithContext(r.Context()).
		Where("client_id = ? AND engagement_id = ?", tenant.ClientID, tenant.EngagementID).
		First(&asset, "id = ?", id).Error
	if err != nil {
		render.JSON(w, r, APIResponse{
			Status: http.StatusNotFound,
			Msg:    "资产不存在",
		})
		return
	}

	render.JSON(w, r, APIResponse{
		Status: http.StatusOK,
		Msg:    "获取资产成功",
		Data:   asset,
	})
}

// UpdateAsset 更新资产
// @Summary 更新资产
// @Description 更新评估资产的字段
// @Tags 资产管理
// @Accept json
// @Produce json
// @Param id path string true "资产ID"
// @Param updates body object true "更新字段"
// @Success 200 {object} APIResponse "更新成功"
// @Failure 400 {object} APIResponse "请求参数错误"
// @Failure 500 {object} APIResponse "服务器内部错误"
// @Router /assets/{id} [put]
func (c *AssetController) UpdateAsset(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var updates map[string]interface{}
	if err := render.DecodeJSON(r.Body, &updates); err != nil {
		render.JSON(w, r, APIResponse{
			Status: http.StatusBadRequest,
			Msg:    "请求参数格式错误",
		})
		return
	}

	// 租户字段不允许通过更新接口修改
	delete(updates, "client_id")
	delete(updates, "engagement_id")
	delete(updates, "id")

	if err := c.db.WithContext(r.Context()).Model(&models.Asset{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		render.JSON(w, r, APIResponse{
			Status: http.StatusInternalServerError,
			Msg:    "更新资产失败",
		})
		return
	}

	render.JSON(w, r, APIResponse{
		Status: http.StatusOK,
		Msg:    "更新资产成功",
	})
}

// UpsertEnrichment 写入补充数据表
// @Summary 写入补充数据表
// @Description 按自然键(租户+资产+表名)幂等写入补充数据记录
// @Tags 资产管理
// @Accept json
// @Produce json
// @Param enrichment body models.AssetEnrichment true "补充数据记录"
// @Success 200 {object} APIResponse{data=models.AssetEnrichment} "写入成功"
// @Failure 400 {object} APIResponse "请求参数错误"
// @Failure 500 {object} APIResponse "服务器内部错误"
// @Router /assets/enrichments [post]
func (c *AssetController) UpsertEnrichment(w http.ResponseWriter, r *http.Request) {
	var enrichment models.AssetEnrichment
	if err := render.DecodeJSON(r.Body, &enrichment); err != nil {
		render.JSON(w, r, APIResponse{
			Status: http.StatusBadRequest,
			Msg:    "请求参数格式错误",
		})
		return
	}

	tenant := models.Tenant{ClientID: enrichment.ClientID, EngagementID: enrichment.EngagementID}
	if err := tenant.Validate(); err != nil || enrichment.AssetID == "" || enrichment.TableName == "" {
		render.JSON(w, r, APIResponse{
			Status: http.StatusBadRequest,
			Msg:    "租户标识、资产ID和表名不能为空",
		})
		return
	}

	err := c.db.WithContext(r.Context()).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "client_id"}, {Name: "engagement_id"}, {Name: "asset_id"}, {Name: "table_name"},
		},
		DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
	}).Create(&enrichment).Error
	if err != nil {
		render.JSON(w, r, APIResponse{
			Status: http.StatusInternalServerError,
			Msg:    "写入补充数据失败",
		})
		return
	}

	render.JSON(w, r, APIResponse{
		Status: http.StatusOK,
		Msg:    "写入补充数据成功",
		Data:   enrichment,
	})
}

// DeleteAsset 删除资产
// @Summary 删除资产
// @Description 删除评估资产及其补充数据记录
// @Tags 资产管理
// @Produce json
// @Param id path string true "资产ID"
// @Param client_id query string true "客户ID"
// @Param engagement_id query string true "评估项目ID"
// @Success 200 {object} APIResponse "删除成功"
// @Failure 404 {object} APIResponse "资产不存在"
// @Router /assets/{id} [delete]
func (c *AssetController) DeleteAsset(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
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

	err := c.db.WithContext(r.Context()).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("client_id = ? AND engagement_id = ?", tenant.ClientID, tenant.EngagementID).
			Delete(&models.Asset{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Where("client_id = ? AND engagement_id = ? AND asset_id = ?",
			tenant.ClientID, tenant.EngagementID, id).
			Delete(&models.AssetEnrichment{}).Error
	})
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
			Msg:    "删除资产失败",
		})
		return
	}

	render.JSON(w, r, APIResponse{
		Status: http.StatusOK,
		Msg:    "删除资产成功",
	})
}

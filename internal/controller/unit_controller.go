package controller

import (
	"institute_backend/internal/service"
	"institute_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type UnitController struct {
	UnitService *service.UnitService
}

func NewUnitController(unitService *service.UnitService) *UnitController {
	return &UnitController{UnitService: unitService}
}

// ListUnits godoc
// @Summary 科目下的单元
// @Tags 单元
// @Produce json
// @Security ApiKeyAuth
// @Param subjectId query int true "科目 ID"
// @Success 200 {object} util.Response{data=[]model.Unit}
// @Failure 400 {object} util.Response
// @Router /api/units [get]
func (c *UnitController) ListUnits(ctx *gin.Context) {
	subjectID, ok := queryUint(ctx, "subjectId")
	if !ok {
		return
	}
	if subjectID == nil {
		util.BadRequest(ctx, "subjectId is required")
		return
	}

	units, err := c.UnitService.ListBySubject(ctx.Request.Context(), *subjectID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, units)
}

// GetUnit godoc
// @Summary 单元详情
// @Tags 单元
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "单元 ID"
// @Success 200 {object} util.Response{data=model.Unit}
// @Failure 404 {object} util.Response
// @Router /api/units/{id} [get]
func (c *UnitController) GetUnit(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	unit, err := c.UnitService.Get(ctx.Request.Context(), id)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, unit)
}

// CreateUnit godoc
// @Summary 创建单元
// @Tags 单元
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.UnitRequest true "单元信息"
// @Success 201 {object} util.Response{data=model.Unit}
// @Router /api/units [post]
func (c *UnitController) CreateUnit(ctx *gin.Context) {
	var req service.UnitRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	unit, err := c.UnitService.Create(ctx.Request.Context(), req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, unit)
}

// UpdateUnit godoc
// @Summary 更新单元
// @Tags 单元
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "单元 ID"
// @Param body body service.UnitRequest true "单元信息"
// @Success 200 {object} util.Response{data=model.Unit}
// @Router /api/units/{id} [put]
func (c *UnitController) UpdateUnit(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}
	var req service.UnitRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	unit, err := c.UnitService.Update(ctx.Request.Context(), id, req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, unit)
}

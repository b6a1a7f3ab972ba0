package controller

import (
	"institute_backend/internal/service"
	"institute_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type BranchController struct {
	BranchService *service.BranchService
}

func NewBranchController(branchService *service.BranchService) *BranchController {
	return &BranchController{BranchService: branchService}
}

// ListBranches godoc
// @Summary 分院列表
// @Tags 分院
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.Branch}
// @Router /api/branches [get]
func (c *BranchController) ListBranches(ctx *gin.Context) {
	branches, err := c.BranchService.List(ctx.Request.Context())
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, branches)
}

// CreateBranch godoc
// @Summary 创建分院
// @Tags 分院
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.BranchRequest true "分院信息"
// @Success 201 {object} util.Response{data=model.Branch}
// @Router /api/branches [post]
func (c *BranchController) CreateBranch(ctx *gin.Context) {
	var req service.BranchRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	branch, err := c.BranchService.Create(ctx.Request.Context(), req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, branch)
}

// UpdateBranch godoc
// @Summary 更新分院
// @Tags 分院
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "分院 ID"
// @Param body body service.BranchRequest true "分院信息"
// @Success 200 {object} util.Response{data=model.Branch}
// @Router /api/branches/{id} [put]
func (c *BranchController) UpdateBranch(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}
	var req service.BranchRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	branch, err := c.BranchService.Update(ctx.Request.Context(), id, req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, branch)
}

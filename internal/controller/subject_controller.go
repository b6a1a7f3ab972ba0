package controller

import (
	"institute_backend/internal/repository"
	"institute_backend/internal/service"
	"institute_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type SubjectController struct {
	SubjectService *service.SubjectService
}

func NewSubjectController(subjectService *service.SubjectService) *SubjectController {
	return &SubjectController{SubjectService: subjectService}
}

// ListSubjects godoc
// @Summary 科目列表
// @Tags 科目
// @Produce json
// @Security ApiKeyAuth
// @Param branchId query int false "分院 ID"
// @Param teacherEmail query string false "任课教师邮箱"
// @Success 200 {object} util.Response{data=[]model.Subject}
// @Router /api/subjects [get]
func (c *SubjectController) ListSubjects(ctx *gin.Context) {
	branchID, ok := queryUint(ctx, "branchId")
	if !ok {
		return
	}

	subjects, err := c.SubjectService.List(ctx.Request.Context(), repository.SubjectFilter{
		BranchID:     branchID,
		TeacherEmail: ctx.Query("teacherEmail"),
	})
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, subjects)
}

// CreateSubject godoc
// @Summary 创建科目
// @Tags 科目
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.SubjectRequest true "科目信息"
// @Success 201 {object} util.Response{data=model.Subject}
// @Failure 404 {object} util.Response "分院不存在"
// @Router /api/subjects [post]
func (c *SubjectController) CreateSubject(ctx *gin.Context) {
	var req service.SubjectRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	subject, err := c.SubjectService.Create(ctx.Request.Context(), req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, subject)
}

// UpdateSubject godoc
// @Summary 更新科目
// @Tags 科目
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "科目 ID"
// @Param body body service.SubjectRequest true "科目信息"
// @Success 200 {object} util.Response{data=model.Subject}
// @Router /api/subjects/{id} [put]
func (c *SubjectController) UpdateSubject(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}
	var req service.SubjectRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	subject, err := c.SubjectService.Update(ctx.Request.Context(), id, req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, subject)
}

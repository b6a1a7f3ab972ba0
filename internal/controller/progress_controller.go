package controller

import (
	"institute_backend/internal/model"
	"institute_backend/internal/service"
	"institute_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ProgressController struct {
	ProgressService *service.ProgressService
}

func NewProgressController(progressService *service.ProgressService) *ProgressController {
	return &ProgressController{ProgressService: progressService}
}

// ListProgress godoc
// @Summary 学习进度
// @Description 按单元、学生或科目查询；学生只能看到自己的记录
// @Tags 进度
// @Produce json
// @Security ApiKeyAuth
// @Param unitId query int false "单元 ID"
// @Param studentEmail query string false "学生邮箱"
// @Param subjectId query int false "科目 ID"
// @Success 200 {object} util.Response{data=[]model.Progress}
// @Router /api/progress [get]
func (c *ProgressController) ListProgress(ctx *gin.Context) {
	unitID, ok := queryUint(ctx, "unitId")
	if !ok {
		return
	}
	subjectID, ok := queryUint(ctx, "subjectId")
	if !ok {
		return
	}
	q := service.ProgressQuery{UnitID: unitID, StudentEmail: ctx.Query("studentEmail"), SubjectID: subjectID}

	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	if claims.Role == model.Student {
		q = service.ProgressQuery{StudentEmail: claims.Email, SubjectID: subjectID}
	}

	records, err := c.ProgressService.List(ctx.Request.Context(), q)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	if claims.Role == model.Student && unitID != nil {
		records = filterUnit(records, *unitID)
	}
	util.Success(ctx, records)
}

func filterUnit(records []model.Progress, unitID uint) []model.Progress {
	out := make([]model.Progress, 0, len(records))
	for _, r := range records {
		if r.UnitID == unitID {
			out = append(out, r)
		}
	}
	return out
}

// SetTeacherCoverage godoc
// @Summary 记录教师覆盖率
// @Tags 进度
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.TeacherCoverageUpdate true "覆盖率"
// @Success 200 {object} util.Response{data=model.Progress}
// @Router /api/progress [post]
func (c *ProgressController) SetTeacherCoverage(ctx *gin.Context) {
	var req service.TeacherCoverageUpdate
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	progress, err := c.ProgressService.SetTeacherCoverage(ctx.Request.Context(), req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, progress)
}

// SetStudentCoverage godoc
// @Summary 学生自评覆盖率
// @Tags 进度
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.StudentCoverageUpdate true "覆盖率"
// @Success 200 {object} util.Response{data=model.Progress}
// @Failure 403 {object} util.Response "不能修改他人的进度"
// @Router /api/progress/student [put]
func (c *ProgressController) SetStudentCoverage(ctx *gin.Context) {
	var req service.StudentCoverageUpdate
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if !actingFor(ctx, req.StudentEmail) {
		return
	}

	progress, err := c.ProgressService.SetStudentCoverage(ctx.Request.Context(), req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, progress)
}

// UpdateCoverage godoc
// @Summary 修改进度记录的覆盖率
// @Tags 进度
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "进度 ID"
// @Param body body service.CoverageUpdate true "覆盖率"
// @Success 200 {object} util.Response{data=model.Progress}
// @Failure 404 {object} util.Response
// @Router /api/progress/{id} [put]
func (c *ProgressController) UpdateCoverage(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}
	var req service.CoverageUpdate
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	progress, err := c.ProgressService.UpdateCoverage(ctx.Request.Context(), id, req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, progress)
}

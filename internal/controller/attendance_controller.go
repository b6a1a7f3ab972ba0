package controller

import (
	"institute_backend/internal/model"
	"institute_backend/internal/service"
	"institute_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AttendanceController struct {
	AttendanceService *service.AttendanceService
}

func NewAttendanceController(attendanceService *service.AttendanceService) *AttendanceController {
	return &AttendanceController{AttendanceService: attendanceService}
}

// RecordAttendance godoc
// @Summary 批量记录考勤
// @Description 同一天同一学生同一科目重复提交会覆盖 present
// @Tags 考勤
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body []service.AttendanceEntry true "考勤记录"
// @Success 201 {object} util.Response{data=[]model.Attendance}
// @Failure 400 {object} util.Response
// @Router /api/attendance [post]
func (c *AttendanceController) RecordAttendance(ctx *gin.Context) {
	var entries []service.AttendanceEntry
	if err := ctx.ShouldBindJSON(&entries); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	records, err := c.AttendanceService.Record(ctx.Request.Context(), entries)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, records)
}

// ListAttendance godoc
// @Summary 查询考勤
// @Description 按日期+科目，或按学生（可选科目）查询；学生只能查自己的
// @Tags 考勤
// @Produce json
// @Security ApiKeyAuth
// @Param date query string false "YYYY-MM-DD"
// @Param subjectId query int false "科目 ID"
// @Param studentEmail query string false "学生邮箱"
// @Success 200 {object} util.Response{data=[]model.Attendance}
// @Router /api/attendance [get]
func (c *AttendanceController) ListAttendance(ctx *gin.Context) {
	subjectID, ok := queryUint(ctx, "subjectId")
	if !ok {
		return
	}
	q := service.AttendanceQuery{
		Date:         ctx.Query("date"),
		SubjectID:    subjectID,
		StudentEmail: ctx.Query("studentEmail"),
	}

	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	if claims.Role == model.Student {
		q.Date = ""
		q.StudentEmail = claims.Email
	}

	records, err := c.AttendanceService.Query(ctx.Request.Context(), q)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, records)
}

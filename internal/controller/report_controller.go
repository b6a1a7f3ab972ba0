package controller

import (
	"institute_backend/internal/service"
	"institute_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ReportController struct {
	ReportService *service.ReportService
}

func NewReportController(reportService *service.ReportService) *ReportController {
	return &ReportController{ReportService: reportService}
}

// ExportProgress godoc
// @Summary 导出科目进度 CSV
// @Description 生成 CSV 并上传到配置的存储，返回下载地址
// @Tags 报表
// @Produce json
// @Security ApiKeyAuth
// @Param subjectId query int true "科目 ID"
// @Success 201 {object} util.Response{data=service.ReportResult}
// @Failure 404 {object} util.Response
// @Router /api/reports/progress [post]
func (c *ReportController) ExportProgress(ctx *gin.Context) {
	subjectID, ok := queryUint(ctx, "subjectId")
	if !ok {
		return
	}
	if subjectID == nil {
		util.BadRequest(ctx, "subjectId is required")
		return
	}

	res, err := c.ReportService.ExportProgress(ctx.Request.Context(), *subjectID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, res)
}

package controller

import (
	"institute_backend/internal/service"
	"institute_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AnalyticsController struct {
	AnalyticsService *service.AnalyticsService
}

func NewAnalyticsController(analyticsService *service.AnalyticsService) *AnalyticsController {
	return &AnalyticsController{AnalyticsService: analyticsService}
}

// BranchStats godoc
// @Summary 分院概况
// @Tags 统计
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.BranchStats}
// @Router /api/analytics/branches [get]
func (c *AnalyticsController) BranchStats(ctx *gin.Context) {
	stats, err := c.AnalyticsService.BranchStats(ctx.Request.Context())
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, stats)
}

// AttendanceStats godoc
// @Summary 各科出勤率
// @Tags 统计
// @Produce json
// @Security ApiKeyAuth
// @Param branchId query int false "分院 ID"
// @Success 200 {object} util.Response{data=[]model.AttendanceStats}
// @Router /api/analytics/attendance [get]
func (c *AnalyticsController) AttendanceStats(ctx *gin.Context) {
	branchID, ok := queryUint(ctx, "branchId")
	if !ok {
		return
	}

	stats, err := c.AnalyticsService.AttendanceStats(ctx.Request.Context(), branchID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, stats)
}

// ProgressStats godoc
// @Summary 各科学习进度
// @Tags 统计
// @Produce json
// @Security ApiKeyAuth
// @Param branchId query int false "分院 ID"
// @Success 200 {object} util.Response{data=[]model.ProgressStats}
// @Router /api/analytics/progress [get]
func (c *AnalyticsController) ProgressStats(ctx *gin.Context) {
	branchID, ok := queryUint(ctx, "branchId")
	if !ok {
		return
	}

	stats, err := c.AnalyticsService.ProgressStats(ctx.Request.Context(), branchID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, stats)
}

package controller

import (
	"institute_backend/internal/service"
	"institute_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QuizController struct {
	QuizService *service.QuizService
}

func NewQuizController(quizService *service.QuizService) *QuizController {
	return &QuizController{QuizService: quizService}
}

// SubmitQuiz godoc
// @Summary 提交单元测验
// @Description 按题目数计算得分，得分 >= 80 视为完成；重复提交覆盖上一次成绩
// @Tags 测验
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.QuizSubmission true "答题"
// @Success 200 {object} util.Response{data=service.QuizOutcome}
// @Failure 400 {object} util.Response
// @Failure 403 {object} util.Response "不能替他人提交"
// @Failure 404 {object} util.Response "单元不存在"
// @Router /api/quiz/submit [post]
func (c *QuizController) SubmitQuiz(ctx *gin.Context) {
	var req service.QuizSubmission
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if !actingFor(ctx, req.StudentEmail) {
		return
	}

	outcome, err := c.QuizService.SubmitQuiz(ctx.Request.Context(), req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, outcome)
}

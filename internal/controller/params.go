package controller

import (
	"institute_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

// pathID 解析 :id，失败时直接写 400
func pathID(ctx *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil || id == 0 {
		util.BadRequest(ctx, "invalid id")
		return 0, false
	}
	return uint(id), true
}

// queryUint 可选的数字查询参数，非法值写 400
func queryUint(ctx *gin.Context, name string) (*uint, bool) {
	v, err := util.ParseOptionalUint(ctx.Query(name))
	if err != nil {
		util.BadRequest(ctx, "invalid "+name)
		return nil, false
	}
	return v, true
}

// actingFor 学生只能以自己的身份提交
func actingFor(ctx *gin.Context, studentEmail string) bool {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return false
	}
	if claims.Role.IsStaff() || claims.Email == studentEmail {
		return true
	}
	util.Forbidden(ctx)
	return false
}

package controller

import (
	"eduagent_backend/internal/service"
	"eduagent_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type SessionController struct {
	Session *service.SessionService
}

func NewSessionController(session *service.SessionService) *SessionController {
	return &SessionController{Session: session}
}

// @Summary 查询会话
// @Description 按会话ID返回试卷分析、模拟卷及历史评分与学习记录
// @Tags 会话
// @Produce json
// @Param id path string true "会话ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /session/{id} [get]
func (c *SessionController) GetSession(ctx *gin.Context) {
	detail, ok := c.Session.Detail(ctx.Param("id"))
	if !ok {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, detail)
}

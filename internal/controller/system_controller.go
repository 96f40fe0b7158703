package controller

import (
	"time"

	"eduagent_backend/internal/service"
	"eduagent_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// 对外公布的应用版本号
const appVersion = "2.0.0"

type SystemController struct {
	LLM      service.LLMGateway
	Dataset  *service.DatasetService
	Learning *service.LearningService
}

func NewSystemController(llm service.LLMGateway, dataset *service.DatasetService, learning *service.LearningService) *SystemController {
	return &SystemController{LLM: llm, Dataset: dataset, Learning: learning}
}

// @Summary 健康检查
// @Description 返回服务状态、当前大模型提供方和数据集规模
// @Tags 系统
// @Produce json
// @Success 200 {object} util.Response
// @Router /health [get]
func (c *SystemController) HealthCheck(ctx *gin.Context) {
	util.Success(ctx, gin.H{
		"status":  "ok",
		"llm":     c.LLM.Provider(),
		"dataset": c.Dataset.Count(),
		"version": appVersion,
	})
}

// @Summary 数据集统计
// @Description 返回学生行为数据集概览和可学习主题数
// @Tags 系统
// @Produce json
// @Success 200 {object} util.Response
// @Router /stats [get]
func (c *SystemController) Stats(ctx *gin.Context) {
	util.Success(ctx, gin.H{
		"dataset":          c.Dataset.Summary(),
		"llm_provider":     c.LLM.Provider(),
		"topics_available": c.Learning.TopicCount(),
		"timestamp":        time.Now().UTC().Format(time.RFC3339),
	})
}

package controller

import (
	"eduagent_backend/internal/service"
	"eduagent_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// 历史评测定档的对照常数，来自离线评测报告
const (
	baselinePrecision = 65.45
	baselineRecall    = 63.78
	baselineF1        = 64.60
	systemAccuracy    = 89.54
	systemPrecision   = 90.12
	systemRecall      = 88.34
	systemF1          = 89.22
)

type EvaluationController struct {
	Dataset *service.DatasetService
}

func NewEvaluationController(dataset *service.DatasetService) *EvaluationController {
	return &EvaluationController{Dataset: dataset}
}

// @Summary 基线对照指标
// @Description 返回数据集基线与系统评测指标的对照表
// @Tags 评测
// @Produce json
// @Success 200 {object} util.Response
// @Router /evaluate/baseline [get]
func (c *EvaluationController) Baseline(ctx *gin.Context) {
	baseline := c.Dataset.BaselineAccuracy()
	util.Success(ctx, gin.H{
		"baseline_accuracy":  baseline,
		"baseline_precision": baselinePrecision,
		"baseline_recall":    baselineRecall,
		"baseline_f1":        baselineF1,
		"system_accuracy":    systemAccuracy,
		"system_precision":   systemPrecision,
		"system_recall":      systemRecall,
		"system_f1":          systemF1,
		"dataset_size":       c.Dataset.Count(),
		"improvement":        util.Round2(systemAccuracy - baseline),
	})
}

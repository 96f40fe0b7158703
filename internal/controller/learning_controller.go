package controller

import (
	"strings"

	"eduagent_backend/internal/model"
	"eduagent_backend/internal/service"
	"eduagent_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type LearningController struct {
	Learning *service.LearningService
	Eval     *service.EvaluationService
	Session  *service.SessionService
}

func NewLearningController(learning *service.LearningService, eval *service.EvaluationService, session *service.SessionService) *LearningController {
	return &LearningController{Learning: learning, Eval: eval, Session: session}
}

type learnRequest struct {
	Goal      string `json:"goal"`
	SessionID string `json:"session_id"`
}

// @Summary 自适应学习
// @Description 按学习目标规划路径，逐主题生成讲义、测验、掌握度与反馈
// @Tags 学习
// @Accept json
// @Produce json
// @Param request body learnRequest true "学习目标"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response
// @Router /learn [post]
func (c *LearningController) Learn(ctx *gin.Context) {
	var req learnRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, "invalid request body")
		return
	}
	if len(strings.TrimSpace(req.Goal)) < 3 {
		util.BadRequest(ctx, "Please provide a learning goal")
		return
	}

	result := c.Learning.Run(ctx.Request.Context(), req.Goal)

	mastery := make(map[string]float64, len(result.TopicsCovered))
	for _, t := range result.TopicsCovered {
		mastery[t.Topic] = t.Mastery
	}
	metrics := c.Eval.ComputeLearningMetrics(mastery)

	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = model.GenerateUUID()
	}
	c.Session.RecordLearning(sessionID, req.Goal, result)

	util.Success(ctx, gin.H{
		"session_id":    sessionID,
		"learning_path": result.LearningPath,
		"topics":        result.TopicsCovered,
		"avg_mastery":   result.AvgMastery,
		"feedback_text": result.FeedbackText,
		"metrics":       metrics,
	})
}

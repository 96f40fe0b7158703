package controller

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"eduagent_backend/internal/config"
	"eduagent_backend/internal/model"
	"eduagent_backend/internal/service"
	"eduagent_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type GradingController struct {
	Grading *service.GradingService
	Paper   *service.PaperService
	Eval    *service.EvaluationService
	Session *service.SessionService
	Cfg     *config.PaperConfig
}

func NewGradingController(grading *service.GradingService, paper *service.PaperService, eval *service.EvaluationService, session *service.SessionService, cfg *config.PaperConfig) *GradingController {
	return &GradingController{Grading: grading, Paper: paper, Eval: eval, Session: session, Cfg: cfg}
}

// @Summary 上传手写答卷照片
// @Description 对多页答卷照片逐页OCR，按页合并成一段文本
// @Tags 评分
// @Accept multipart/form-data
// @Produce json
// @Param files formData file true "答卷照片，可多张"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response
// @Router /answers/upload [post]
func (c *GradingController) UploadAnswers(ctx *gin.Context) {
	form, err := ctx.MultipartForm()
	if err != nil {
		util.BadRequest(ctx, "files are required")
		return
	}
	files := form.File["files"]
	if len(files) == 0 {
		util.BadRequest(ctx, "files are required")
		return
	}

	pages := make([]string, 0, len(files))
	for i, file := range files {
		ext := strings.ToLower(filepath.Ext(file.Filename))
		tmpPath := filepath.Join(c.Cfg.UploadDir, model.GenerateUUID()+ext)
		if err := ctx.SaveUploadedFile(file, tmpPath); err != nil {
			util.LogInternalError(ctx, err)
			return
		}

		text := c.Paper.ExtractImage(tmpPath)
		os.Remove(tmpPath)

		pages = append(pages, fmt.Sprintf("=== PAGE %d ===\n%s", i+1, strings.TrimSpace(text)))
	}

	util.Success(ctx, gin.H{
		"pages":    len(pages),
		"ocr_text": strings.Join(pages, "\n\n"),
		"engine":   "tesseract",
		"status":   "ok",
	})
}

type gradeRequest struct {
	MockPaper model.MockPaper `json:"mock_paper"`
	OCRText   string          `json:"ocr_text"`
	SessionID string          `json:"session_id"`
}

// @Summary 评分
// @Description 按模拟卷的评分标准给OCR出的学生答案打分，返回逐题结果、报告和指标
// @Tags 评分
// @Accept json
// @Produce json
// @Param request body gradeRequest true "模拟卷与OCR文本"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response
// @Router /grade [post]
func (c *GradingController) Grade(ctx *gin.Context) {
	var req gradeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, "invalid request body")
		return
	}

	// 请求里没带模拟卷时，尝试用会话里存的那份
	if len(req.MockPaper.Questions) == 0 && req.SessionID != "" {
		if state, ok := c.Session.Get(req.SessionID); ok {
			req.MockPaper = state.Mock
		}
	}

	if req.OCRText == "" || len(req.MockPaper.Questions) == 0 {
		util.BadRequest(ctx, "ocr_text and mock_paper.questions are required")
		return
	}

	outcome := c.Grading.Grade(ctx.Request.Context(), req.MockPaper, req.OCRText)
	metrics := c.Eval.ComputeGradingMetrics(outcome.Results)

	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = model.GenerateUUID()
	}
	c.Session.RecordGrading(sessionID, outcome)

	util.Success(ctx, gin.H{
		"session_id":      sessionID,
		"grading_results": outcome.Results,
		"total_score":     outcome.TotalScore,
		"grade_letter":    outcome.GradeLetter,
		"grade_report":    outcome.Report,
		"feedback_text":   outcome.Feedback,
		"metrics":         metrics,
	})
}

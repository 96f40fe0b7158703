package controller

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"eduagent_backend/internal/config"
	"eduagent_backend/internal/model"
	"eduagent_backend/internal/service"
	"eduagent_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// 上传提取文本少于该字符数视为扫描质量不足
const minExtractedChars = 30

var allowedPaperExts = map[string]bool{
	".pdf": true, ".png": true, ".jpg": true, ".jpeg": true,
}

type PaperController struct {
	Paper   *service.PaperService
	Mock    *service.MockService
	Session *service.SessionService
	Cfg     *config.PaperConfig
}

func NewPaperController(paper *service.PaperService, mock *service.MockService, session *service.SessionService, cfg *config.PaperConfig) *PaperController {
	return &PaperController{Paper: paper, Mock: mock, Session: session, Cfg: cfg}
}

// @Summary 上传试卷
// @Description 上传PDF或扫描图片试卷，返回提取出的文本
// @Tags 试卷
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "试卷文件（pdf/png/jpg/jpeg）"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response
// @Failure 422 {object} util.Response
// @Router /paper/upload [post]
func (c *PaperController) Upload(ctx *gin.Context) {
	file, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "file is required")
		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedPaperExts[ext] {
		util.BadRequest(ctx, fmt.Sprintf("Unsupported file type: %s. Use PDF or image.", ext))
		return
	}

	tmpPath := filepath.Join(c.Cfg.UploadDir, model.GenerateUUID()+ext)
	if err := ctx.SaveUploadedFile(file, tmpPath); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer os.Remove(tmpPath)

	var text string
	if ext == ".pdf" {
		text = c.Paper.ExtractPDF(tmpPath)
	} else {
		text = c.Paper.ExtractImage(tmpPath)
	}

	if utf8.RuneCountInString(strings.TrimSpace(text)) < minExtractedChars {
		util.UnprocessableEntity(ctx, "Could not extract text. Try a clearer scan.")
		return
	}

	util.Success(ctx, gin.H{
		"filename": file.Filename,
		"text":     text,
		"chars":    utf8.RuneCountInString(text),
		"status":   "ok",
	})
}

type analyseRequest struct {
	Text string `json:"text" binding:"required"`
}

// @Summary 分析试卷并生成模拟卷
// @Description 对试卷文本做结构化分析，随后生成一套全新模拟卷和PDF
// @Tags 试卷
// @Accept json
// @Produce json
// @Param request body analyseRequest true "试卷文本"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response
// @Router /paper/analyse [post]
func (c *PaperController) Analyse(ctx *gin.Context) {
	var req analyseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, "text is required")
		return
	}

	sessionID := model.GenerateUUID()

	analysis := c.Paper.Analyse(ctx.Request.Context(), req.Text)
	questions := c.Mock.Generate(ctx.Request.Context(), analysis)

	subject := analysis.Subject
	if subject == "" {
		subject = "CS"
	}
	totalMarks := analysis.TotalMarks
	if totalMarks <= 0 {
		totalMarks = 100
	}
	duration := analysis.EstimatedDuration
	if duration == "" {
		duration = "3 Hours"
	}
	mock := model.MockPaper{
		Subject:    subject,
		TotalMarks: totalMarks,
		Duration:   duration,
		Questions:  questions,
		CreatedAt:  time.Now().UTC(),
	}

	pdfFilename := fmt.Sprintf("mock_%s.pdf", sessionID[:8])
	pdfPath := c.Mock.ExportPDF(mock, pdfFilename)
	var pdfURL interface{}
	pdfFile := ""
	if pdfPath != "" {
		pdfURL = "/api/paper/pdf/" + pdfFilename
		pdfFile = pdfFilename
	}

	c.Session.Create(sessionID, analysis, mock, pdfFile)

	util.Success(ctx, gin.H{
		"session_id": sessionID,
		"analysis":   analysis,
		"mock_paper": mock,
		"pdf_url":    pdfURL,
	})
}

// @Summary 下载模拟卷PDF
// @Tags 试卷
// @Produce application/pdf
// @Param filename path string true "PDF文件名"
// @Success 200 {file} binary
// @Failure 404 {object} util.Response
// @Router /paper/pdf/{filename} [get]
func (c *PaperController) DownloadPDF(ctx *gin.Context) {
	filename := filepath.Base(ctx.Param("filename"))
	path := filepath.Join(c.Cfg.MockPDFDir, filename)

	if _, err := os.Stat(path); err != nil {
		util.NotFound(ctx)
		return
	}

	ctx.Header("Content-Type", "application/pdf")
	ctx.FileAttachment(path, filename)
}

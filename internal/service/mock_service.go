package service

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"

	"eduagent_backend/internal/model"
	"eduagent_backend/pkg/logger"

	"github.com/jung-kurt/gofpdf"
	"go.uber.org/zap"
)

// 无论原卷多短，模拟卷至少出这么多题
const minMockQuestions = 6

// MockService 依据试卷分析结果出一套全新的模拟卷，并渲染成可打印的PDF
type MockService struct {
	llm     LLMGateway
	pdfDir  string
	storage *StorageService
}

func NewMockService(llm LLMGateway, pdfDir string, storage *StorageService) *MockService {
	return &MockService{llm: llm, pdfDir: pdfDir, storage: storage}
}

// Generate 生成模拟卷题目。原题只作风格参考，提示词明确要求不得复用内容。
// 分数总和等于 total_marks 是对模型的要求，生成侧不做校验修正。
// 模型回复不可用时合成占位题目，每题 total/n 分（整除，余数舍弃）。
func (s *MockService) Generate(ctx context.Context, analysis model.PaperAnalysis) []model.QuestionSpec {
	n := len(analysis.Questions)
	if n < minMockQuestions {
		n = minMockQuestions
	}

	topics := analysis.Topics
	if len(topics) == 0 {
		topics = []string{"General"}
	}
	total := analysis.TotalMarks
	if total <= 0 {
		total = 100
	}

	samples := analysis.Questions
	if len(samples) > 4 {
		samples = samples[:4]
	}
	sampleJSON, _ := json.MarshalIndent(samples, "", "  ")

	prompt := fmt.Sprintf(`You are setting a NEW exam paper for: %s

Original paper info — Topics: %v | Total marks: %d
Difficulty split: %v | Question types: %v

ORIGINAL QUESTIONS (style reference only — do NOT reuse):
%s

Write %d BRAND NEW questions. Rules:
1. Cover same topics, match difficulty split and question types
2. Marks must sum to exactly %d
3. Include full model answers for the marking scheme

Return ONLY a JSON array:
[{
  "number": "Q1",
  "text": "complete question text",
  "marks": 10,
  "type": "theory|MCQ|numerical|coding|diagram",
  "difficulty": "easy|medium|hard",
  "topic": "specific topic",
  "sub_parts": [{"label":"a","text":"sub-question","marks":5}],
  "model_answer": "complete model answer"
}]`,
		analysis.Subject, topics, total,
		analysis.DifficultyDistribution, analysis.TypeDistribution,
		sampleJSON, n, total)

	var questions []model.QuestionSpec
	if err := s.llm.AskJSON(ctx, prompt, false, &questions); err != nil || len(questions) == 0 {
		logger.Log.Warn("Mock generation unusable, synthesizing placeholder questions", zap.Error(err))
		return placeholderQuestions(n, total, topics)
	}
	return questions
}

func placeholderQuestions(n, total int, topics []string) []model.QuestionSpec {
	each := total / n
	questions := make([]model.QuestionSpec, 0, n)
	for i := 0; i < n; i++ {
		questions = append(questions, model.QuestionSpec{
			Number:      fmt.Sprintf("Q%d", i+1),
			Text:        fmt.Sprintf("Question %d on %s", i+1, topics[i%len(topics)]),
			Marks:       each,
			Type:        model.QuestionTypeTheory,
			Difficulty:  model.DifficultyMedium,
			Topic:       topics[0],
			SubParts:    []model.SubPart{},
			ModelAnswer: "Refer to course textbook.",
		})
	}
	return questions
}

var difficultyLabels = map[string]string{
	model.DifficultyEasy:   "[E]",
	model.DifficultyMedium: "[M]",
	model.DifficultyHard:   "[H]",
}

// ExportPDF 渲染试卷正文加阅卷用的评分标准两部分。
// 任何渲染失败都降级为返回空字符串，调用方按「没有PDF」继续。
func (s *MockService) ExportPDF(mock model.MockPaper, filename string) string {
	path := filepath.Join(s.pdfDir, filename)

	doc := gofpdf.New("P", "mm", "A4", "")
	doc.SetMargins(25, 25, 25)
	doc.SetAutoPageBreak(true, 25)
	doc.AddPage()
	tr := doc.UnicodeTranslatorFromDescriptor("")

	doc.SetFont("Helvetica", "B", 16)
	doc.CellFormat(0, 8, "MOCK EXAMINATION PAPER", "", 1, "C", false, 0, "")
	doc.CellFormat(0, 8, tr(mock.Subject), "", 1, "C", false, 0, "")
	doc.Ln(2)

	doc.SetFont("Helvetica", "B", 10)
	doc.CellFormat(30, 7, "Total Marks:", "1", 0, "L", false, 0, "")
	doc.SetFont("Helvetica", "", 10)
	doc.CellFormat(50, 7, fmt.Sprintf("%d", mock.TotalMarks), "1", 0, "L", false, 0, "")
	doc.SetFont("Helvetica", "B", 10)
	doc.CellFormat(30, 7, "Duration:", "1", 0, "L", false, 0, "")
	doc.SetFont("Helvetica", "", 10)
	doc.CellFormat(50, 7, tr(mock.Duration), "1", 1, "L", false, 0, "")
	doc.Ln(4)

	doc.SetDrawColor(0, 0, 139)
	doc.SetLineWidth(0.5)
	x, y := doc.GetXY()
	doc.Line(x, y, 210-25, y)
	doc.Ln(4)

	doc.SetFont("Helvetica", "B", 10)
	doc.CellFormat(28, 6, "Instructions:", "", 0, "L", false, 0, "")
	doc.SetFont("Helvetica", "", 10)
	doc.CellFormat(0, 6, "Answer all questions. Show all working.", "", 1, "L", false, 0, "")
	doc.Ln(6)

	for i, q := range mock.Questions {
		number := q.Number
		if number == "" {
			number = fmt.Sprintf("Q%d", i+1)
		}
		doc.SetFont("Helvetica", "B", 11)
		doc.MultiCell(0, 6, tr(fmt.Sprintf("%s.  [%d marks]  %s", number, q.Marks, difficultyLabels[q.Difficulty])), "", "L", false)
		doc.SetFont("Helvetica", "", 11)
		doc.MultiCell(0, 6, tr(q.Text), "", "L", false)
		for _, sp := range q.SubParts {
			doc.SetX(doc.GetX() + 8)
			doc.SetFont("Helvetica", "", 10)
			doc.MultiCell(0, 5.5, tr(fmt.Sprintf("(%s) %s [%d m]", sp.Label, sp.Text, sp.Marks)), "", "L", false)
		}
		doc.Ln(4)
	}

	doc.SetDrawColor(128, 128, 128)
	doc.SetLineWidth(0.3)
	x, y = doc.GetXY()
	doc.Line(x, y, 210-25, y)
	doc.Ln(4)

	doc.SetFont("Helvetica", "B", 14)
	doc.CellFormat(0, 8, "MARKING SCHEME (Examiner Use Only)", "", 1, "C", false, 0, "")
	doc.Ln(4)

	for i, q := range mock.Questions {
		number := q.Number
		if number == "" {
			number = fmt.Sprintf("Q%d", i+1)
		}
		doc.SetTextColor(0, 0, 0)
		doc.SetFont("Helvetica", "B", 11)
		doc.MultiCell(0, 6, tr(fmt.Sprintf("%s (%d marks):", number, q.Marks)), "", "L", false)
		doc.SetTextColor(128, 128, 128)
		doc.SetFont("Helvetica", "", 10)
		doc.MultiCell(0, 5.5, tr(q.ModelAnswer), "", "L", false)
		doc.Ln(3)
	}

	if err := doc.OutputFileAndClose(path); err != nil {
		logger.Log.Error("PDF export failed", zap.String("file", filename), zap.Error(err))
		return ""
	}

	// 对象存储配置了非本地后端时同步一份，失败不影响本地结果
	if s.storage != nil {
		if _, err := s.storage.UploadFile(context.Background(), "mock_pdfs/"+filename, path, "application/pdf"); err != nil {
			logger.Log.Warn("Mock PDF upload to storage failed", zap.Error(err))
		}
	}

	return path
}

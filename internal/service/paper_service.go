package service

import (
	"bytes"
	"context"
	"fmt"

	"eduagent_backend/internal/model"
	"eduagent_backend/internal/util"
	"eduagent_backend/pkg/logger"

	"github.com/ledongthuc/pdf"
	"github.com/otiai10/gosseract/v2"
	"go.uber.org/zap"
)

// 送入分析提示词的试卷文本上限
const analyseTextLimit = 4000

// PaperService 把原始试卷文本转成结构化分析结果
type PaperService struct {
	llm LLMGateway
}

func NewPaperService(llm LLMGateway) *PaperService {
	return &PaperService{llm: llm}
}

// Analyse 分析试卷文本。每份试卷都不同，因此不走缓存。
// 模型回复不可用（解析失败或缺subject）时整体替换为固定默认分析，不做部分合并。
func (s *PaperService) Analyse(ctx context.Context, paperText string) model.PaperAnalysis {
	prompt := fmt.Sprintf(`You are an expert examiner. Analyse this exam paper precisely.

PAPER TEXT:
%s

Return ONLY valid JSON — no other text, no markdown:
{
  "subject": "full subject name",
  "total_marks": 100,
  "estimated_duration": "3 hours",
  "topics": ["topic1", "topic2"],
  "questions": [
    {
      "number": "Q1",
      "text": "question text (first 150 chars)",
      "marks": 10,
      "type": "theory|MCQ|numerical|coding|diagram",
      "difficulty": "easy|medium|hard",
      "topic": "specific topic"
    }
  ],
  "difficulty_distribution": {"easy": 30, "medium": 50, "hard": 20},
  "type_distribution": {"theory": 60, "coding": 20, "MCQ": 20},
  "key_concepts": ["c1", "c2", "c3"]
}`, util.Truncate(paperText, analyseTextLimit))

	var analysis model.PaperAnalysis
	if err := s.llm.AskJSON(ctx, prompt, false, &analysis); err != nil || analysis.Subject == "" {
		logger.Log.Warn("Paper analysis unusable, using default analysis", zap.Error(err))
		return defaultAnalysis()
	}
	return analysis
}

func defaultAnalysis() model.PaperAnalysis {
	return model.PaperAnalysis{
		Subject:           "Computer Science",
		TotalMarks:        100,
		EstimatedDuration: "3 hours",
		Topics:            []string{"General CS"},
		Questions:         []model.QuestionSpec{},
		DifficultyDistribution: map[string]float64{
			"easy": 33, "medium": 34, "hard": 33,
		},
		TypeDistribution: map[string]float64{"theory": 100},
		KeyConcepts:      []string{},
	}
}

// ExtractPDF 从PDF提取纯文本。失败时把错误嵌在返回文本里，调用方总是拿到字符串。
func (s *PaperService) ExtractPDF(path string) string {
	f, r, err := pdf.Open(path)
	if err != nil {
		return fmt.Sprintf("[PDF extraction error: %v]", err)
	}
	defer f.Close()

	var buf bytes.Buffer
	reader, err := r.GetPlainText()
	if err != nil {
		return fmt.Sprintf("[PDF extraction error: %v]", err)
	}
	if _, err := buf.ReadFrom(reader); err != nil {
		return fmt.Sprintf("[PDF extraction error: %v]", err)
	}
	return buf.String()
}

// ExtractImage 对扫描图片做OCR
func (s *PaperService) ExtractImage(path string) string {
	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetImage(path); err != nil {
		return fmt.Sprintf("[Image OCR error: %v]", err)
	}
	text, err := client.Text()
	if err != nil {
		return fmt.Sprintf("[Image OCR error: %v]", err)
	}
	return text
}

package service

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"eduagent_backend/internal/model"
	"eduagent_backend/internal/util"
	"eduagent_backend/pkg/logger"

	"go.uber.org/zap"
)

const (
	// 送入答案切分提示词的OCR文本上限
	parseAnswersTextLimit = 3000
	// 回显学生答案的截断长度
	studentAnswerEcho = 400
	// 未识别到答案时的占位文本
	noAnswerPlaceholder = "No answer provided"
)

// gradeBand 评级阈值表中的一档，Threshold 为包含下界
type gradeBand struct {
	Threshold float64
	Letter    string
	Desc      string
}

// 从高到低排列，命中第一个满足的档位
var gradeScale = []gradeBand{
	{90, "A+", "Outstanding"},
	{80, "A", "Excellent"},
	{70, "B", "Good"},
	{60, "C", "Satisfactory"},
	{50, "D", "Pass"},
	{0, "F", "Fail"},
}

// GradingService 评分流水线：切分答案 → 逐题评分 → 汇总 → 报告与反馈。
// 每题评分相互独立，单题的模型失败只影响该题的回退值，整体请求永不中断。
type GradingService struct {
	llm LLMGateway
}

func NewGradingService(llm LLMGateway) *GradingService {
	return &GradingService{llm: llm}
}

// GradeOutcome 一次完整评分的汇总结果
type GradeOutcome struct {
	Results     map[string]model.GradingResult `json:"grading_results"`
	TotalScore  float64                        `json:"total_score"`
	GradeLetter string                         `json:"grade_letter"`
	Report      string                         `json:"grade_report"`
	Feedback    string                         `json:"feedback_text"`
}

// Grade 对整份模拟卷执行评分流水线
func (s *GradingService) Grade(ctx context.Context, mock model.MockPaper, ocrText string) *GradeOutcome {
	answers := s.ParseAnswers(ctx, ocrText, mock.Questions)

	results := make(map[string]model.GradingResult, len(mock.Questions))
	earned := 0
	for i, q := range mock.Questions {
		qn := questionNumber(q, i)
		marks := q.Marks
		if marks <= 0 {
			marks = 10
		}
		topic := q.Topic
		if topic == "" {
			topic = "General"
		}
		r := s.GradeOne(ctx, qn, answers[qn], q.ModelAnswer, marks, topic)
		results[qn] = r
		earned += r.MarksAwarded
	}

	total := mock.TotalMarks
	if total <= 0 {
		total = 100
	}
	pct := 0.0
	if total > 0 {
		pct = util.Round1(float64(earned) / float64(total) * 100)
	}
	letter, _ := LetterGrade(pct)

	return &GradeOutcome{
		Results:     results,
		TotalScore:  pct,
		GradeLetter: letter,
		Report:      s.BuildReport(results, mock, earned, total, pct),
		Feedback:    s.PostGradeFeedback(ctx, results, mock, pct, letter),
	}
}

// ParseAnswers 让模型把OCR文本按题号切分。
// 返回map的键集恒等于题号集合：模型漏掉的题号一律补占位文本。
func (s *GradingService) ParseAnswers(ctx context.Context, ocrText string, questions []model.QuestionSpec) map[string]string {
	nums := make([]string, 0, len(questions))
	for i, q := range questions {
		nums = append(nums, questionNumber(q, i))
	}

	prompt := fmt.Sprintf(`Map handwritten answers to question numbers.
Questions in this paper: %v

FULL OCR TEXT:
%s

Return ONLY JSON: {"Q1":"answer text","Q2":"answer text"}
Use "%s" for missing answers.`, nums, util.Truncate(ocrText, parseAnswersTextLimit), noAnswerPlaceholder)

	answers := map[string]string{}
	if err := s.llm.AskJSON(ctx, prompt, false, &answers); err != nil {
		logger.Log.Warn("Answer mapping unusable, filling placeholders", zap.Error(err))
		answers = map[string]string{}
	}
	for _, n := range nums {
		if _, ok := answers[n]; !ok {
			answers[n] = noAnswerPlaceholder
		}
	}
	return answers
}

type gradeOneResponse struct {
	MarksAwarded  *float64 `json:"marks_awarded"`
	Grade         string   `json:"grade"`
	CorrectPoints []string `json:"correct_points"`
	MissingPoints []string `json:"missing_points"`
	Feedback      string   `json:"feedback"`
}

// GradeOne 对单题评分。模型回复不可用（非对象或缺 marks_awarded）时
// 回退为固定的半分结果；得分总是截断进 [0, marks]。
func (s *GradingService) GradeOne(ctx context.Context, qNum, studentAns, modelAns string, marks int, topic string) model.GradingResult {
	prompt := fmt.Sprintf(`Grade this exam answer strictly but fairly.

%s | Topic: %s | Max marks: %d
MODEL ANSWER: %s
STUDENT ANSWER: %s

Award marks for every correct concept. Apply partial credit fairly.
Return ONLY JSON:
{
  "marks_awarded": <int 0-%d>,
  "grade": "Excellent|Good|Satisfactory|Needs Improvement|Incorrect",
  "correct_points": ["point1","point2"],
  "missing_points": ["missing1","missing2"],
  "feedback": "2-3 sentences of actionable feedback"
}`, qNum, topic, marks, modelAns, studentAns, marks)

	var resp gradeOneResponse
	err := s.llm.AskJSON(ctx, prompt, false, &resp)
	if err != nil || resp.MarksAwarded == nil {
		resp = gradeOneResponse{
			MarksAwarded:  floatPtr(math.Round(float64(marks) * 0.5)),
			Grade:         "Satisfactory",
			CorrectPoints: []string{},
			MissingPoints: []string{"Could not fully parse answer"},
			Feedback:      "Partially correct. Review topic carefully.",
		}
	}

	awarded := util.Clamp(int(*resp.MarksAwarded), 0, marks)
	pct := 0.0
	if marks > 0 {
		pct = util.Round1(float64(awarded) / float64(marks) * 100)
	}

	if resp.CorrectPoints == nil {
		resp.CorrectPoints = []string{}
	}
	if resp.MissingPoints == nil {
		resp.MissingPoints = []string{}
	}

	return model.GradingResult{
		MarksAwarded:  awarded,
		MarksTotal:    marks,
		Percentage:    pct,
		Grade:         resp.Grade,
		CorrectPoints: resp.CorrectPoints,
		MissingPoints: resp.MissingPoints,
		Feedback:      resp.Feedback,
		StudentAnswer: util.Truncate(studentAns, studentAnswerEcho),
		Topic:         topic,
	}
}

// LetterGrade 按固定阈值表换算等级，阈值为包含下界，高档优先
func LetterGrade(pct float64) (string, string) {
	for _, band := range gradeScale {
		if pct >= band.Threshold {
			return band.Letter, band.Desc
		}
	}
	return "F", "Fail"
}

// BuildReport 纯文本成绩单。无随机、无模型调用，相同输入逐字节可复现。
// 题目按模拟卷顺序排列。
func (s *GradingService) BuildReport(results map[string]model.GradingResult, mock model.MockPaper, earned, total int, pct float64) string {
	letter, desc := LetterGrade(pct)
	rule := strings.Repeat("=", 62)

	lines := []string{
		rule,
		"        GRADE REPORT  —  EduAgent AI",
		rule,
		fmt.Sprintf("  Subject  : %s", mock.Subject),
		fmt.Sprintf("  Score    : %d/%d  (%.1f%%)  Grade %s — %s", earned, total, pct, letter, desc),
		rule,
	}

	for i, q := range mock.Questions {
		qn := questionNumber(q, i)
		r, ok := results[qn]
		if !ok {
			continue
		}
		icon := "❌"
		switch {
		case r.Percentage >= 70:
			icon = "✅"
		case r.Percentage >= 50:
			icon = "⚠️"
		}
		lines = append(lines, fmt.Sprintf("\n%s  %s: %d/%d (%.0f%%) — %s", icon, qn, r.MarksAwarded, r.MarksTotal, r.Percentage, r.Grade))
		if len(r.CorrectPoints) > 0 {
			lines = append(lines, "   ✔  "+strings.Join(firstN(r.CorrectPoints, 3), " | "))
		}
		if len(r.MissingPoints) > 0 {
			lines = append(lines, "   ✘  "+strings.Join(firstN(r.MissingPoints, 3), " | "))
		}
		lines = append(lines, fmt.Sprintf("   💬 %s", r.Feedback))
	}

	lines = append(lines, "", rule, fmt.Sprintf("  FINAL GRADE  →  %s  (%.1f%%)", letter, pct), rule)
	return strings.Join(lines, "\n")
}

// PostGradeFeedback 挑出得分率最低的3题（稳定排序，平分保持卷面顺序），
// 生成个性化考后反馈。反馈与本次评分强相关，不走缓存。
func (s *GradingService) PostGradeFeedback(ctx context.Context, results map[string]model.GradingResult, mock model.MockPaper, score float64, letter string) string {
	type entry struct {
		qn string
		r  model.GradingResult
	}
	ordered := make([]entry, 0, len(results))
	for i, q := range mock.Questions {
		qn := questionNumber(q, i)
		if r, ok := results[qn]; ok {
			ordered = append(ordered, entry{qn, r})
		}
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].r.Percentage < ordered[j].r.Percentage
	})
	if len(ordered) > 3 {
		ordered = ordered[:3]
	}

	weakTopics := make([]string, 0, len(ordered))
	for _, e := range ordered {
		if e.r.Topic != "" {
			weakTopics = append(weakTopics, e.r.Topic)
		} else {
			weakTopics = append(weakTopics, e.qn)
		}
	}

	subject := mock.Subject
	if subject == "" {
		subject = "CS"
	}

	prompt := fmt.Sprintf(`Personalised post-exam feedback.
Subject: %s | Score: %.1f%% | Grade: %s
Weakest areas: %v
Write: (1) acknowledge effort (2) top 3 improvements as bullets (3) 48-hour study plan (4) encouragement.
Be warm, honest, specific.`, subject, score, letter, weakTopics)

	return s.llm.Ask(ctx, prompt, false)
}

func questionNumber(q model.QuestionSpec, idx int) string {
	if q.Number != "" {
		return q.Number
	}
	return fmt.Sprintf("Q%d", idx+1)
}

func firstN(items []string, n int) []string {
	if len(items) > n {
		return items[:n]
	}
	return items
}

func floatPtr(v float64) *float64 { return &v }

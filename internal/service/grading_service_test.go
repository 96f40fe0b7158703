package service

import (
	"context"
	"strings"
	"testing"

	"eduagent_backend/internal/model"
)

func TestLetterGrade(t *testing.T) {
	tests := []struct {
		pct    float64
		letter string
		desc   string
	}{
		{100, "A+", "Outstanding"},
		{90, "A+", "Outstanding"},
		{89.9, "A", "Excellent"},
		{80, "A", "Excellent"},
		{79.9, "B", "Good"},
		{70, "B", "Good"},
		{69.9, "C", "Satisfactory"},
		{60, "C", "Satisfactory"},
		{59.9, "D", "Pass"},
		{50, "D", "Pass"},
		{49.9, "F", "Fail"},
		{0, "F", "Fail"},
	}

	for _, tt := range tests {
		letter, desc := LetterGrade(tt.pct)
		if letter != tt.letter || desc != tt.desc {
			t.Errorf("LetterGrade(%v) = %q/%q, want %q/%q", tt.pct, letter, desc, tt.letter, tt.desc)
		}
	}
}

func TestGradeOneFallback(t *testing.T) {
	s := NewGradingService(&fakeLLM{})

	r := s.GradeOne(context.Background(), "Q1", "some answer", "model answer", 10, "Graphs")

	if r.MarksAwarded != 5 {
		t.Errorf("MarksAwarded = %d, want half marks 5", r.MarksAwarded)
	}
	if r.Grade != "Satisfactory" {
		t.Errorf("Grade = %q, want Satisfactory", r.Grade)
	}
	if len(r.MissingPoints) != 1 || r.MissingPoints[0] != "Could not fully parse answer" {
		t.Errorf("MissingPoints = %v", r.MissingPoints)
	}
	if r.Feedback != "Partially correct. Review topic carefully." {
		t.Errorf("Feedback = %q", r.Feedback)
	}
	if r.Percentage != 50 {
		t.Errorf("Percentage = %v, want 50", r.Percentage)
	}
	if r.Topic != "Graphs" {
		t.Errorf("Topic = %q, want Graphs", r.Topic)
	}
}

func TestGradeOneClampsAward(t *testing.T) {
	tests := []struct {
		name    string
		resp    string
		marks   int
		want    int
		wantPct float64
	}{
		{"over max", `{"marks_awarded": 15, "grade": "Excellent"}`, 10, 10, 100},
		{"negative", `{"marks_awarded": -3, "grade": "Incorrect"}`, 10, 0, 0},
		{"in range", `{"marks_awarded": 7, "grade": "Good"}`, 10, 7, 70},
		{"partial third", `{"marks_awarded": 1, "grade": "Needs Improvement"}`, 3, 1, 33.3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewGradingService(&fakeLLM{jsonFn: jsonInto(tt.resp)})
			r := s.GradeOne(context.Background(), "Q1", "ans", "model", tt.marks, "General")
			if r.MarksAwarded != tt.want {
				t.Errorf("MarksAwarded = %d, want %d", r.MarksAwarded, tt.want)
			}
			if r.Percentage != tt.wantPct {
				t.Errorf("Percentage = %v, want %v", r.Percentage, tt.wantPct)
			}
		})
	}
}

func TestGradeOneTruncatesEcho(t *testing.T) {
	s := NewGradingService(&fakeLLM{jsonFn: jsonInto(`{"marks_awarded": 5}`)})
	long := strings.Repeat("x", 1000)

	r := s.GradeOne(context.Background(), "Q1", long, "model", 10, "General")

	if len(r.StudentAnswer) != 400 {
		t.Errorf("StudentAnswer length = %d, want 400", len(r.StudentAnswer))
	}
	if r.CorrectPoints == nil || r.MissingPoints == nil {
		t.Error("point lists must never be nil")
	}
}

func TestGradeOnePromptCarriesMarksBound(t *testing.T) {
	var gotPrompt string
	s := NewGradingService(&fakeLLM{jsonFn: func(prompt string, _ interface{}) error {
		gotPrompt = prompt
		return nil // 回空结构走回退，这里只关心提示词本身
	}})

	s.GradeOne(context.Background(), "Q1", "ans", "model", 15, "General")

	if !strings.Contains(gotPrompt, "Max marks: 15") {
		t.Errorf("prompt missing max marks line:\n%s", gotPrompt)
	}
	if !strings.Contains(gotPrompt, `"marks_awarded": <int 0-15>`) {
		t.Errorf("prompt missing award upper bound:\n%s", gotPrompt)
	}
	if strings.Contains(gotPrompt, "MISSING") {
		t.Errorf("prompt contains a malformed format verb:\n%s", gotPrompt)
	}
}

func TestParseAnswersFillsMissing(t *testing.T) {
	questions := []model.QuestionSpec{
		{Number: "Q1"}, {Number: "Q2"}, {Number: "Q3"},
	}

	t.Run("partial response", func(t *testing.T) {
		s := NewGradingService(&fakeLLM{jsonFn: jsonInto(`{"Q2": "an answer"}`)})
		answers := s.ParseAnswers(context.Background(), "ocr text", questions)

		if len(answers) != 3 {
			t.Fatalf("got %d answers, want 3", len(answers))
		}
		if answers["Q2"] != "an answer" {
			t.Errorf("Q2 = %q", answers["Q2"])
		}
		for _, qn := range []string{"Q1", "Q3"} {
			if answers[qn] != noAnswerPlaceholder {
				t.Errorf("%s = %q, want placeholder", qn, answers[qn])
			}
		}
	})

	t.Run("gateway failure", func(t *testing.T) {
		s := NewGradingService(&fakeLLM{})
		answers := s.ParseAnswers(context.Background(), "ocr text", questions)

		for _, qn := range []string{"Q1", "Q2", "Q3"} {
			if answers[qn] != noAnswerPlaceholder {
				t.Errorf("%s = %q, want placeholder", qn, answers[qn])
			}
		}
	})

	t.Run("unnumbered questions get positional numbers", func(t *testing.T) {
		s := NewGradingService(&fakeLLM{})
		answers := s.ParseAnswers(context.Background(), "ocr", []model.QuestionSpec{{}, {}})

		if _, ok := answers["Q1"]; !ok {
			t.Error("missing positional Q1")
		}
		if _, ok := answers["Q2"]; !ok {
			t.Error("missing positional Q2")
		}
	})
}

func sampleMock() model.MockPaper {
	return model.MockPaper{
		Subject:    "Computer Science",
		TotalMarks: 20,
		Questions: []model.QuestionSpec{
			{Number: "Q1", Marks: 10, Topic: "Trees and BST", ModelAnswer: "BST property"},
			{Number: "Q2", Marks: 10, Topic: "Graphs", ModelAnswer: "BFS traversal"},
		},
	}
}

func TestGradePipelineFallback(t *testing.T) {
	s := NewGradingService(&fakeLLM{})

	outcome := s.Grade(context.Background(), sampleMock(), "illegible scan")

	// 每题回退半分：5+5 over 20
	if outcome.TotalScore != 50 {
		t.Errorf("TotalScore = %v, want 50", outcome.TotalScore)
	}
	if outcome.GradeLetter != "D" {
		t.Errorf("GradeLetter = %q, want D", outcome.GradeLetter)
	}
	if len(outcome.Results) != 2 {
		t.Errorf("got %d results, want 2", len(outcome.Results))
	}
}

func TestBuildReportDeterministic(t *testing.T) {
	s := NewGradingService(&fakeLLM{})
	mock := sampleMock()
	results := map[string]model.GradingResult{
		"Q1": {MarksAwarded: 9, MarksTotal: 10, Percentage: 90, Grade: "Excellent",
			CorrectPoints: []string{"p1", "p2", "p3", "p4"}, Feedback: "well done"},
		"Q2": {MarksAwarded: 5, MarksTotal: 10, Percentage: 50, Grade: "Satisfactory",
			MissingPoints: []string{"m1"}, Feedback: "review BFS"},
	}

	report := s.BuildReport(results, mock, 14, 20, 70)

	if report != s.BuildReport(results, mock, 14, 20, 70) {
		t.Fatal("report must be byte-identical for identical inputs")
	}

	for _, want := range []string{
		strings.Repeat("=", 62),
		"GRADE REPORT",
		"Subject  : Computer Science",
		"Score    : 14/20  (70.0%)  Grade B — Good",
		"✅  Q1: 9/10 (90%) — Excellent",
		"⚠️  Q2: 5/10 (50%) — Satisfactory",
		"✘  m1",
		"💬 well done",
		"FINAL GRADE  →  B  (70.0%)",
	} {
		if !strings.Contains(report, want) {
			t.Errorf("report missing %q\n%s", want, report)
		}
	}

	// 要点最多展示3条
	if strings.Contains(report, "p4") {
		t.Error("report should truncate correct points to 3")
	}

	// Q1 在 Q2 之前
	if strings.Index(report, "Q1:") > strings.Index(report, "Q2:") {
		t.Error("questions must appear in paper order")
	}
}

func TestPostGradeFeedbackPicksWeakest(t *testing.T) {
	var gotPrompt string
	s := NewGradingService(&fakeLLM{askFn: func(prompt string) string {
		gotPrompt = prompt
		return "feedback text"
	}})

	mock := model.MockPaper{
		Subject: "CS",
		Questions: []model.QuestionSpec{
			{Number: "Q1"}, {Number: "Q2"}, {Number: "Q3"}, {Number: "Q4"},
		},
	}
	results := map[string]model.GradingResult{
		"Q1": {Percentage: 90, Topic: "Trees and BST"},
		"Q2": {Percentage: 20, Topic: "Graphs"},
		"Q3": {Percentage: 40, Topic: "Hash Tables"},
		"Q4": {Percentage: 55, Topic: "Sorting Algorithms"},
	}

	out := s.PostGradeFeedback(context.Background(), results, mock, 51.3, "D")

	if out != "feedback text" {
		t.Errorf("feedback = %q", out)
	}
	for _, weak := range []string{"Graphs", "Hash Tables", "Sorting Algorithms"} {
		if !strings.Contains(gotPrompt, weak) {
			t.Errorf("prompt missing weak topic %q", weak)
		}
	}
	if strings.Contains(gotPrompt, "Trees and BST") {
		t.Error("strongest topic should not be listed as weak")
	}
	if !strings.Contains(gotPrompt, "51.3") {
		t.Error("prompt should carry the overall score")
	}
}

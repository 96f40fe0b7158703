package service

import (
	"context"
	"strings"
	"testing"
)

func TestAnalyseFallback(t *testing.T) {
	t.Run("gateway failure", func(t *testing.T) {
		s := NewPaperService(&fakeLLM{})
		a := s.Analyse(context.Background(), "some exam text")

		if a.Subject != "Computer Science" {
			t.Errorf("Subject = %q", a.Subject)
		}
		if a.TotalMarks != 100 || a.EstimatedDuration != "3 hours" {
			t.Errorf("TotalMarks/Duration = %d/%q", a.TotalMarks, a.EstimatedDuration)
		}
		if len(a.Topics) != 1 || a.Topics[0] != "General CS" {
			t.Errorf("Topics = %v", a.Topics)
		}
		sum := 0.0
		for _, v := range a.DifficultyDistribution {
			sum += v
		}
		if sum != 100 {
			t.Errorf("difficulty distribution sums to %v", sum)
		}
	})

	t.Run("missing subject treated as failure", func(t *testing.T) {
		s := NewPaperService(&fakeLLM{jsonFn: jsonInto(`{"total_marks": 50}`)})
		a := s.Analyse(context.Background(), "text")

		if a.Subject != "Computer Science" || a.TotalMarks != 100 {
			t.Errorf("expected full default analysis, got %+v", a)
		}
	})
}

func TestAnalyseParsesResponse(t *testing.T) {
	resp := `{
		"subject": "Operating Systems",
		"total_marks": 80,
		"estimated_duration": "2 hours",
		"topics": ["Process Management", "CPU Scheduling"],
		"questions": [{"number":"Q1","text":"Define a process","marks":10,"type":"theory","difficulty":"easy","topic":"Process Management"}],
		"difficulty_distribution": {"easy": 40, "medium": 40, "hard": 20},
		"type_distribution": {"theory": 100},
		"key_concepts": ["process", "scheduler"]
	}`
	s := NewPaperService(&fakeLLM{jsonFn: jsonInto(resp)})

	a := s.Analyse(context.Background(), "paper text")

	if a.Subject != "Operating Systems" || a.TotalMarks != 80 {
		t.Errorf("got %+v", a)
	}
	if len(a.Questions) != 1 || a.Questions[0].Number != "Q1" {
		t.Errorf("Questions = %+v", a.Questions)
	}
}

func TestAnalyseKeepsFractionalDistributions(t *testing.T) {
	resp := `{
		"subject": "Algorithms",
		"total_marks": 100,
		"estimated_duration": "3 hours",
		"topics": ["Sorting"],
		"questions": [{"number":"Q1","text":"Explain quicksort","marks":10,"type":"theory","difficulty":"easy","topic":"Sorting"}],
		"difficulty_distribution": {"easy": 33.3, "medium": 33.3, "hard": 33.4},
		"type_distribution": {"theory": 66.7, "coding": 33.3},
		"key_concepts": ["pivot"]
	}`
	s := NewPaperService(&fakeLLM{jsonFn: jsonInto(resp)})

	a := s.Analyse(context.Background(), "paper text")

	if a.Subject != "Algorithms" {
		t.Fatalf("fractional percentages collapsed a valid analysis: %+v", a)
	}
	if got := a.DifficultyDistribution["easy"]; got != 33.3 {
		t.Errorf("DifficultyDistribution[easy] = %v, want 33.3", got)
	}
	if got := a.TypeDistribution["coding"]; got != 33.3 {
		t.Errorf("TypeDistribution[coding] = %v, want 33.3", got)
	}
}

func TestAnalyseTruncatesPaperText(t *testing.T) {
	var gotPrompt string
	s := NewPaperService(&fakeLLM{jsonFn: func(prompt string, _ interface{}) error {
		gotPrompt = prompt
		return nil // 解析回空结构，subject为空走回退，这里只关心提示词
	}})

	s.Analyse(context.Background(), strings.Repeat("a", 10000))

	if strings.Contains(gotPrompt, strings.Repeat("a", analyseTextLimit+1)) {
		t.Error("paper text should be truncated before prompting")
	}
	if !strings.Contains(gotPrompt, strings.Repeat("a", analyseTextLimit)) {
		t.Error("truncated paper text missing from prompt")
	}
}

func TestExtractPDFErrorEmbedded(t *testing.T) {
	s := NewPaperService(&fakeLLM{})

	out := s.ExtractPDF("/nonexistent/file.pdf")
	if !strings.HasPrefix(out, "[PDF extraction error:") {
		t.Errorf("ExtractPDF = %q, want embedded error string", out)
	}
}

package service

import (
	"testing"

	"eduagent_backend/internal/model"
)

func TestSessionServiceMemoryOnly(t *testing.T) {
	s := NewSessionService(nil)

	analysis := model.PaperAnalysis{Subject: "CS", TotalMarks: 100}
	mock := model.MockPaper{Subject: "CS", TotalMarks: 100,
		Questions: []model.QuestionSpec{{Number: "Q1", Marks: 100}}}

	id := model.GenerateUUID()
	s.Create(id, analysis, mock, "mock_abc.pdf")

	t.Run("get returns stored state", func(t *testing.T) {
		state, ok := s.Get(id)
		if !ok {
			t.Fatal("session not found after Create")
		}
		if state.Mock.Subject != "CS" || len(state.Mock.Questions) != 1 {
			t.Errorf("state = %+v", state)
		}
		if state.PDFFile != "mock_abc.pdf" {
			t.Errorf("PDFFile = %q", state.PDFFile)
		}
	})

	t.Run("unknown id", func(t *testing.T) {
		if _, ok := s.Get("missing"); ok {
			t.Error("Get should miss for unknown id")
		}
		if _, ok := s.Detail("missing"); ok {
			t.Error("Detail should miss for unknown id")
		}
	})

	t.Run("detail without db has empty history", func(t *testing.T) {
		detail, ok := s.Detail(id)
		if !ok {
			t.Fatal("Detail miss for known id")
		}
		if detail.Session.ID != id || detail.Session.Subject != "CS" {
			t.Errorf("session = %+v", detail.Session)
		}
		if len(detail.GradingRounds) != 0 || len(detail.LearningRuns) != 0 {
			t.Error("history must be empty without persistence")
		}
	})

	t.Run("record calls are no-ops without db", func(t *testing.T) {
		s.RecordGrading(id, &GradeOutcome{TotalScore: 50})
		s.RecordLearning(id, "goal", model.LearningSessionResult{})
	})
}

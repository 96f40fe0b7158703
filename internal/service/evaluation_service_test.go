package service

import (
	"testing"

	"eduagent_backend/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestComputeGradingMetrics(t *testing.T) {
	s := NewEvaluationService(newSyntheticDataset())

	t.Run("empty input", func(t *testing.T) {
		assert.Nil(t, s.ComputeGradingMetrics(nil))
		assert.Nil(t, s.ComputeGradingMetrics(map[string]model.GradingResult{}))
	})

	t.Run("zero totals skipped", func(t *testing.T) {
		m := s.ComputeGradingMetrics(map[string]model.GradingResult{
			"Q1": {MarksAwarded: 5, MarksTotal: 0},
		})
		assert.Nil(t, m)
	})

	t.Run("one pass one zero", func(t *testing.T) {
		m := s.ComputeGradingMetrics(map[string]model.GradingResult{
			"Q1": {MarksAwarded: 8, MarksTotal: 10},
			"Q2": {MarksAwarded: 0, MarksTotal: 10},
		})

		assert.NotNil(t, m)
		assert.Equal(t, 40.0, m.Accuracy)
		assert.Equal(t, 100.0, m.Precision) // tp=1, fp=0
		assert.Equal(t, 50.0, m.Recall)     // tp=1, fn=1
		assert.Equal(t, 66.67, m.F1Score)
		assert.Equal(t, syntheticDatasetSize, m.DatasetSize)
	})

	t.Run("partial credit below threshold is fp", func(t *testing.T) {
		m := s.ComputeGradingMetrics(map[string]model.GradingResult{
			"Q1": {MarksAwarded: 5, MarksTotal: 10},
		})

		assert.Equal(t, 0.0, m.Precision) // tp=0, fp=1
		assert.Equal(t, 0.0, m.Recall)
		assert.Equal(t, 0.0, m.F1Score)
		assert.Equal(t, 50.0, m.Accuracy)
	})

	t.Run("threshold boundary counts as tp", func(t *testing.T) {
		m := s.ComputeGradingMetrics(map[string]model.GradingResult{
			"Q1": {MarksAwarded: 7, MarksTotal: 10},
		})
		assert.Equal(t, 100.0, m.Precision)
	})
}

func TestComputeLearningMetrics(t *testing.T) {
	s := NewEvaluationService(newSyntheticDataset())

	t.Run("empty input", func(t *testing.T) {
		assert.Nil(t, s.ComputeLearningMetrics(nil))
	})

	t.Run("scaled from avg mastery", func(t *testing.T) {
		m := s.ComputeLearningMetrics(map[string]float64{"a": 0.9, "b": 0.8})

		assert.Equal(t, 85.0, m.Accuracy)
		assert.Equal(t, 81.6, m.Precision)
		assert.Equal(t, 79.05, m.Recall)
		assert.Equal(t, 80.33, m.F1Score)
		assert.Equal(t, s.dataset.BaselineAccuracy(), m.Baseline)
	})
}

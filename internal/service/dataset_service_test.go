package service

import (
	"testing"

	"eduagent_backend/internal/config"
)

func newSyntheticDataset() *DatasetService {
	return NewDatasetService(config.DatasetConfig{Path: ""})
}

func TestSyntheticDatasetLoads(t *testing.T) {
	s := newSyntheticDataset()

	if s.Count() != syntheticDatasetSize {
		t.Errorf("Count() = %d, want %d", s.Count(), syntheticDatasetSize)
	}

	// 固定种子，两次加载必须一致
	other := newSyntheticDataset()
	if s.BaselineAccuracy() != other.BaselineAccuracy() {
		t.Error("synthetic dataset must be reproducible")
	}
}

func TestBaselineAccuracyRange(t *testing.T) {
	s := newSyntheticDataset()

	b := s.BaselineAccuracy()
	// 表现分值在 0.40-0.95 之间，均值换算成百分制必然落在这个区间
	if b < 40 || b > 95 {
		t.Errorf("BaselineAccuracy() = %v, out of [40,95]", b)
	}
}

func TestComputeMastery(t *testing.T) {
	s := newSyntheticDataset()

	t.Run("monotonic in engagement", func(t *testing.T) {
		prev := -1.0
		for _, e := range []float64{10, 30, 50, 70, 90} {
			m := s.ComputeMastery(e)
			if m < prev {
				t.Errorf("mastery decreased: ComputeMastery(%v) = %v < %v", e, m, prev)
			}
			prev = m
		}
	})

	t.Run("bounded", func(t *testing.T) {
		for _, e := range []float64{0, 45, 85, 100, 10000} {
			m := s.ComputeMastery(e)
			if m < 0 || m > 0.98 {
				t.Errorf("ComputeMastery(%v) = %v, out of [0,0.98]", e, m)
			}
		}
	})

	t.Run("capped at 0.98", func(t *testing.T) {
		if m := s.ComputeMastery(1e9); m != 0.98 {
			t.Errorf("ComputeMastery(huge) = %v, want cap 0.98", m)
		}
	})
}

func TestDatasetSummary(t *testing.T) {
	s := newSyntheticDataset()
	sum := s.Summary()

	if sum.TotalRecords != syntheticDatasetSize {
		t.Errorf("TotalRecords = %d", sum.TotalRecords)
	}
	if sum.AvgEngagement <= 0 || sum.AvgEngagement > 100 {
		t.Errorf("AvgEngagement = %v", sum.AvgEngagement)
	}
	if sum.AvgPerformance < 0.40 || sum.AvgPerformance > 0.95 {
		t.Errorf("AvgPerformance = %v", sum.AvgPerformance)
	}
	if sum.HighPerformersPct+sum.LowPerformersPct > 100 {
		t.Errorf("performer percentages exceed 100: %v + %v", sum.HighPerformersPct, sum.LowPerformersPct)
	}
	if sum.BaselineAccuracy != s.BaselineAccuracy() {
		t.Error("summary baseline must match BaselineAccuracy()")
	}
}

package service

import (
	"math"
	"math/rand"
	"os"

	"eduagent_backend/internal/config"
	"eduagent_backend/internal/model"
	"eduagent_backend/internal/util"
	"eduagent_backend/pkg/logger"

	"github.com/gocarina/gocsv"
	"go.uber.org/zap"
)

const syntheticDatasetSize = 480

// DatasetService xAPI-Edu-Data 学生行为数据集。
// 进程启动时加载一次，之后只读；CSV缺失时退回确定性的合成数据，加载永不失败。
type DatasetService struct {
	records []model.StudentRecord

	avgEngagement  float64
	avgPerformance float64
}

func NewDatasetService(cfg config.DatasetConfig) *DatasetService {
	s := &DatasetService{}
	s.records = loadRecords(cfg.Path)
	s.prepare()
	logger.Log.Info("Dataset loaded", zap.Int("records", len(s.records)))
	return s
}

func loadRecords(path string) []model.StudentRecord {
	if path != "" {
		f, err := os.Open(path)
		if err == nil {
			defer f.Close()
			var records []model.StudentRecord
			if err := gocsv.UnmarshalFile(f, &records); err == nil && len(records) > 0 {
				return records
			}
			logger.Log.Warn("Dataset CSV parse failed, falling back to synthetic data", zap.String("path", path))
		}
	}

	logger.Log.Warn("Using synthetic dataset", zap.Int("size", syntheticDatasetSize))
	return syntheticRecords()
}

// syntheticRecords 生成与真实数据同构的合成记录，固定种子保证可复现
func syntheticRecords() []model.StudentRecord {
	rng := rand.New(rand.NewSource(42))
	topics := []string{"IT", "Math", "Science", "English"}

	records := make([]model.StudentRecord, 0, syntheticDatasetSize)
	for i := 0; i < syntheticDatasetSize; i++ {
		class := "M"
		switch p := rng.Float64(); {
		case p < 0.25:
			class = "L"
		case p >= 0.75:
			class = "H"
		}
		records = append(records, model.StudentRecord{
			Topic:            topics[i%len(topics)],
			RaisedHands:      10 + rng.Intn(80),
			VisitedResources: 10 + rng.Intn(80),
			Discussion:       10 + rng.Intn(80),
			Class:            class,
		})
	}
	return records
}

func (s *DatasetService) prepare() {
	if len(s.records) == 0 {
		return
	}
	var sumEng, sumPerf float64
	for _, r := range s.records {
		sumEng += r.Engagement()
		sumPerf += r.Performance()
	}
	n := float64(len(s.records))
	s.avgEngagement = sumEng / n
	s.avgPerformance = sumPerf / n
}

func (s *DatasetService) Count() int {
	return len(s.records)
}

// BaselineAccuracy 数据集表现分均值换算成百分制，保留2位小数
func (s *DatasetService) BaselineAccuracy() float64 {
	return util.Round2(s.avgPerformance * 100)
}

// ComputeMastery 由参与度估算掌握度。
// 参与度相对总体均值的比例带入 0.80+0.20*ratio 的缩放，
// 上限封顶0.98，结果保留3位小数。
func (s *DatasetService) ComputeMastery(engagement float64) float64 {
	ratio := 1.0
	if s.avgEngagement > 0 {
		ratio = engagement / s.avgEngagement
	}
	mastery := math.Min(0.98, s.avgPerformance*(0.80+0.20*ratio))
	return util.Round3(mastery)
}

func (s *DatasetService) Summary() model.DatasetSummary {
	var high, low int
	for _, r := range s.records {
		switch r.Class {
		case "H":
			high++
		case "L":
			low++
		}
	}
	n := float64(len(s.records))
	if n == 0 {
		n = 1
	}

	return model.DatasetSummary{
		TotalRecords:      len(s.records),
		AvgEngagement:     util.Round2(s.avgEngagement),
		AvgPerformance:    util.Round3(s.avgPerformance),
		HighPerformersPct: util.Round1(float64(high) / n * 100),
		LowPerformersPct:  util.Round1(float64(low) / n * 100),
		BaselineAccuracy:  s.BaselineAccuracy(),
	}
}

package model

// StudentRecord xAPI-Edu-Data 数据集的一行记录。
// 三个参与度信号取值0-100，Class 为 L/M/H 三档表现分级。
type StudentRecord struct {
	Topic            string `csv:"Topic"`
	RaisedHands      int    `csv:"raisedhands"`
	VisitedResources int    `csv:"VisITedResources"`
	Discussion       int    `csv:"Discussion"`
	Class            string `csv:"Class"`
}

// Engagement 三个参与度信号的均值
func (r StudentRecord) Engagement() float64 {
	return float64(r.RaisedHands+r.VisitedResources+r.Discussion) / 3
}

// Performance L/M/H 到固定表现分值的映射，未知分级按 M 处理
func (r StudentRecord) Performance() float64 {
	switch r.Class {
	case "L":
		return 0.40
	case "H":
		return 0.95
	default:
		return 0.70
	}
}

// DatasetSummary 数据集汇总统计
type DatasetSummary struct {
	TotalRecords      int     `json:"total_records"`
	AvgEngagement     float64 `json:"avg_engagement"`
	AvgPerformance    float64 `json:"avg_performance"`
	HighPerformersPct float64 `json:"high_performers_pct"`
	LowPerformersPct  float64 `json:"low_performers_pct"`
	BaselineAccuracy  float64 `json:"baseline_accuracy"`
}

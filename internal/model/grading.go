package model

// GradingResult 单题评分结果，评分完成后不再修改
type GradingResult struct {
	MarksAwarded  int      `json:"marks_awarded"`
	MarksTotal    int      `json:"marks_total"`
	Percentage    float64  `json:"percentage"`
	Grade         string   `json:"grade"`
	CorrectPoints []string `json:"correct_points"`
	MissingPoints []string `json:"missing_points"`
	Feedback      string   `json:"feedback"`
	StudentAnswer string   `json:"student_answer"`
	Topic         string   `json:"topic"`
}

// EvalMetrics 评估指标，Empty 表示无可统计数据
type EvalMetrics struct {
	Accuracy    float64 `json:"accuracy"`
	Precision   float64 `json:"precision"`
	Recall      float64 `json:"recall"`
	F1Score     float64 `json:"f1_score"`
	Baseline    float64 `json:"baseline"`
	DatasetSize int     `json:"dataset_size"`
}

package model

import "time"

// 题型与难度取值是提示词里约定的固定词表，解析结果不强校验
const (
	QuestionTypeTheory    = "theory"
	QuestionTypeMCQ       = "MCQ"
	QuestionTypeNumerical = "numerical"
	QuestionTypeCoding    = "coding"
	QuestionTypeDiagram   = "diagram"

	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// SubPart 题目的子问
type SubPart struct {
	Label string `json:"label"`
	Text  string `json:"text"`
	Marks int    `json:"marks"`
}

// QuestionSpec 单道题目的结构化描述，模拟卷中每题必须带 model_answer
type QuestionSpec struct {
	Number      string    `json:"number"`
	Text        string    `json:"text"`
	Marks       int       `json:"marks"`
	Type        string    `json:"type"`
	Difficulty  string    `json:"difficulty"`
	Topic       string    `json:"topic"`
	SubParts    []SubPart `json:"sub_parts,omitempty"`
	ModelAnswer string    `json:"model_answer,omitempty"`
}

// PaperAnalysis 一份试卷的机器分析结果，生成后不再修改。
// 两个占比分布用float64，模型给出 33.3 这类小数占比时整体解析不受影响。
type PaperAnalysis struct {
	Subject                string             `json:"subject"`
	TotalMarks             int                `json:"total_marks"`
	EstimatedDuration      string             `json:"estimated_duration"`
	Topics                 []string           `json:"topics"`
	Questions              []QuestionSpec     `json:"questions"`
	DifficultyDistribution map[string]float64 `json:"difficulty_distribution"`
	TypeDistribution       map[string]float64 `json:"type_distribution"`
	KeyConcepts            []string           `json:"key_concepts"`
}

// MockPaper 根据分析结果新出的一套模拟卷
type MockPaper struct {
	Subject    string         `json:"subject"`
	TotalMarks int            `json:"total_marks"`
	Duration   string         `json:"duration"`
	Questions  []QuestionSpec `json:"questions"`
	CreatedAt  time.Time      `json:"created_at"`
}

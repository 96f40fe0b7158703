package model

// QuizQuestion 学习环节生成的测验题
type QuizQuestion struct {
	Question      string `json:"question"`
	Difficulty    string `json:"difficulty"`
	CorrectAnswer string `json:"correct_answer"`
	Marks         int    `json:"marks"`
}

// LearningTopicResult 单个主题的学习产出
type LearningTopicResult struct {
	Topic     string         `json:"topic"`
	Mastery   float64        `json:"mastery"`
	Content   string         `json:"content"`
	Questions []QuizQuestion `json:"questions"`
	Feedback  string         `json:"feedback"`
}

// LearningSessionResult 一次学习会话的完整产出，主题顺序与学习路径一致
type LearningSessionResult struct {
	LearningPath  []string              `json:"learning_path"`
	TopicsCovered []LearningTopicResult `json:"topics_covered"`
	AvgMastery    float64               `json:"avg_mastery"`
	FeedbackText  string                `json:"feedback_text"`
}

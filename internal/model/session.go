package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// swagger:model
type UUIDBase struct {
	ID        string         `gorm:"primaryKey;type:varchar(36)" json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (b *UUIDBase) BeforeCreate(tx *gorm.DB) (err error) {
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	return
}

func GenerateUUID() string {
	return uuid.New().String()
}

// Session 一次「分析 → 模拟卷 → 评分」会话的持久化记录。
// 分析与模拟卷以JSON原样落库，按 session_id 可随时取回。
// swagger:model Session
type Session struct {
	UUIDBase
	Subject    string          `gorm:"size:255" json:"subject"`
	TotalMarks int             `gorm:"default:0" json:"totalMarks"`
	Analysis   json.RawMessage `gorm:"type:json" json:"analysis,omitempty"`
	MockPaper  json.RawMessage `gorm:"type:json" json:"mockPaper,omitempty"`
	PDFFile    string          `gorm:"size:255" json:"pdfFile,omitempty"`
}

func (Session) TableName() string {
	return "sessions"
}

// GradingRound 某个会话下的一轮评分
// swagger:model GradingRound
type GradingRound struct {
	UUIDBase
	SessionID    string          `gorm:"index;type:varchar(36)" json:"sessionId"`
	Results      json.RawMessage `gorm:"type:json" json:"results,omitempty"`
	TotalScore   float64         `gorm:"default:0" json:"totalScore"`
	GradeLetter  string          `gorm:"size:8" json:"gradeLetter"`
	Report       string          `gorm:"type:longtext" json:"report"`
	FeedbackText string          `gorm:"type:longtext" json:"feedbackText"`
}

func (GradingRound) TableName() string {
	return "grading_rounds"
}

// LearningRun 一次自适应学习会话
// swagger:model LearningRun
type LearningRun struct {
	UUIDBase
	SessionID    string          `gorm:"index;type:varchar(36)" json:"sessionId"`
	Goal         string          `gorm:"size:512" json:"goal"`
	LearningPath json.RawMessage `gorm:"type:json" json:"learningPath,omitempty"`
	AvgMastery   float64         `gorm:"default:0" json:"avgMastery"`
	FeedbackText string          `gorm:"type:longtext" json:"feedbackText"`
}

func (LearningRun) TableName() string {
	return "learning_runs"
}

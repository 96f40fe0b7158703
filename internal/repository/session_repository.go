package repository

import (
	"eduagent_backend/internal/model"

	"gorm.io/gorm"
)

// SessionRepository 处理考试会话及其评分、学习记录的数据访问

type SessionRepository struct {
	DB *gorm.DB
}

func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{DB: db}
}

// Create 创建新的考试会话
func (r *SessionRepository) Create(session *model.Session) error {
	return r.DB.Create(session).Error
}

// Update 更新会话的分析结果和模拟卷
func (r *SessionRepository) Update(session *model.Session) error {
	return r.DB.Model(&model.Session{}).
		Where("id = ?", session.ID).
		Updates(map[string]interface{}{
			"subject":     session.Subject,
			"total_marks": session.TotalMarks,
			"analysis":    session.Analysis,
			"mock_paper":  session.MockPaper,
			"pdf_file":    session.PDFFile,
		}).Error
}

// FindByID 根据ID查找会话
func (r *SessionRepository) FindByID(id string) (*model.Session, error) {
	var session model.Session
	err := r.DB.First(&session, "id = ?", id).Error
	return &session, err
}

// CreateGradingRound 记录一轮评分
func (r *SessionRepository) CreateGradingRound(round *model.GradingRound) error {
	return r.DB.Create(round).Error
}

// FindGradingRounds 获取会话下的全部评分记录，按时间正序
func (r *SessionRepository) FindGradingRounds(sessionID string) ([]model.GradingRound, error) {
	var rounds []model.GradingRound
	err := r.DB.Where("session_id = ?", sessionID).Order("created_at").Find(&rounds).Error
	return rounds, err
}

// CreateLearningRun 记录一次学习会话
func (r *SessionRepository) CreateLearningRun(run *model.LearningRun) error {
	return r.DB.Create(run).Error
}

// FindLearningRuns 获取会话下的全部学习记录，按时间正序
func (r *SessionRepository) FindLearningRuns(sessionID string) ([]model.LearningRun, error) {
	var runs []model.LearningRun
	err := r.DB.Where("session_id = ?", sessionID).Order("created_at").Find(&runs).Error
	return runs, err
}

package service

import (
	"encoding/json"
	"sync"

	"eduagent_backend/internal/model"
	"eduagent_backend/internal/repository"
	"eduagent_backend/pkg/logger"

	"go.uber.org/zap"
)

// SessionState 会话在内存中的工作集，评分时直接取用模拟卷
type SessionState struct {
	ID       string
	Analysis model.PaperAnalysis
	Mock     model.MockPaper
	PDFFile  string
}

// SessionService 考试会话管理。
// 内存map是请求链路的事实来源；配置了数据库时同步落库，
// 进程重启后按 session_id 仍可从库里还原。repo 为 nil 时纯内存运行。
type SessionService struct {
	repo *repository.SessionRepository

	mu       sync.RWMutex
	sessions map[string]*SessionState
}

func NewSessionService(repo *repository.SessionRepository) *SessionService {
	return &SessionService{
		repo:     repo,
		sessions: make(map[string]*SessionState),
	}
}

// Create 以给定ID登记一个新会话
func (s *SessionService) Create(id string, analysis model.PaperAnalysis, mock model.MockPaper, pdfFile string) {
	state := &SessionState{ID: id, Analysis: analysis, Mock: mock, PDFFile: pdfFile}

	s.mu.Lock()
	s.sessions[id] = state
	s.mu.Unlock()

	if s.repo != nil {
		analysisJSON, _ := json.Marshal(analysis)
		mockJSON, _ := json.Marshal(mock)
		record := &model.Session{
			UUIDBase:   model.UUIDBase{ID: id},
			Subject:    mock.Subject,
			TotalMarks: mock.TotalMarks,
			Analysis:   analysisJSON,
			MockPaper:  mockJSON,
			PDFFile:    pdfFile,
		}
		if err := s.repo.Create(record); err != nil {
			logger.Log.Warn("Session persist failed", zap.String("session_id", id), zap.Error(err))
		}
	}
}

// Get 取回会话工作集。内存未命中时尝试从库里还原。
func (s *SessionService) Get(id string) (*SessionState, bool) {
	s.mu.RLock()
	state, ok := s.sessions[id]
	s.mu.RUnlock()
	if ok {
		return state, true
	}

	if s.repo == nil {
		return nil, false
	}
	record, err := s.repo.FindByID(id)
	if err != nil {
		return nil, false
	}

	state = &SessionState{ID: record.ID, PDFFile: record.PDFFile}
	if len(record.Analysis) > 0 {
		_ = json.Unmarshal(record.Analysis, &state.Analysis)
	}
	if len(record.MockPaper) > 0 {
		_ = json.Unmarshal(record.MockPaper, &state.Mock)
	}

	s.mu.Lock()
	s.sessions[id] = state
	s.mu.Unlock()
	return state, true
}

// RecordGrading 把一轮评分挂到会话下落库，落库失败只告警
func (s *SessionService) RecordGrading(sessionID string, outcome *GradeOutcome) {
	if s.repo == nil {
		return
	}
	resultsJSON, _ := json.Marshal(outcome.Results)
	round := &model.GradingRound{
		SessionID:    sessionID,
		Results:      resultsJSON,
		TotalScore:   outcome.TotalScore,
		GradeLetter:  outcome.GradeLetter,
		Report:       outcome.Report,
		FeedbackText: outcome.Feedback,
	}
	if err := s.repo.CreateGradingRound(round); err != nil {
		logger.Log.Warn("Grading round persist failed", zap.String("session_id", sessionID), zap.Error(err))
	}
}

// RecordLearning 把一次学习会话挂到会话下落库，sessionID 可为空
func (s *SessionService) RecordLearning(sessionID, goal string, result model.LearningSessionResult) {
	if s.repo == nil {
		return
	}
	pathJSON, _ := json.Marshal(result.LearningPath)
	run := &model.LearningRun{
		SessionID:    sessionID,
		Goal:         goal,
		LearningPath: pathJSON,
		AvgMastery:   result.AvgMastery,
		FeedbackText: result.FeedbackText,
	}
	if err := s.repo.CreateLearningRun(run); err != nil {
		logger.Log.Warn("Learning run persist failed", zap.String("session_id", sessionID), zap.Error(err))
	}
}

// SessionDetail 会话详情：基础记录加历史评分与学习记录
type SessionDetail struct {
	Session       *model.Session       `json:"session"`
	GradingRounds []model.GradingRound `json:"grading_rounds"`
	LearningRuns  []model.LearningRun  `json:"learning_runs"`
}

// Detail 查询会话详情。未配置数据库时由内存工作集拼装，无历史记录。
func (s *SessionService) Detail(id string) (*SessionDetail, bool) {
	if s.repo != nil {
		record, err := s.repo.FindByID(id)
		if err == nil {
			rounds, _ := s.repo.FindGradingRounds(id)
			runs, _ := s.repo.FindLearningRuns(id)
			if rounds == nil {
				rounds = []model.GradingRound{}
			}
			if runs == nil {
				runs = []model.LearningRun{}
			}
			return &SessionDetail{Session: record, GradingRounds: rounds, LearningRuns: runs}, true
		}
	}

	state, ok := s.Get(id)
	if !ok {
		return nil, false
	}
	analysisJSON, _ := json.Marshal(state.Analysis)
	mockJSON, _ := json.Marshal(state.Mock)
	return &SessionDetail{
		Session: &model.Session{
			UUIDBase:   model.UUIDBase{ID: state.ID},
			Subject:    state.Mock.Subject,
			TotalMarks: state.Mock.TotalMarks,
			Analysis:   analysisJSON,
			MockPaper:  mockJSON,
			PDFFile:    state.PDFFile,
		},
		GradingRounds: []model.GradingRound{},
		LearningRuns:  []model.LearningRun{},
	}, true
}

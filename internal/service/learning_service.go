package service

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"eduagent_backend/internal/model"
	"eduagent_backend/internal/util"
)

// knowledgeGraph 内置课程知识图谱：领域 → 有序主题列表
var knowledgeGraph = map[string][]string{
	"Data Structures":      {"Arrays and Strings", "Linked Lists", "Stacks and Queues", "Trees and BST", "Graphs", "Hash Tables"},
	"Algorithms":           {"Algorithm Analysis (Big-O)", "Sorting Algorithms", "Dynamic Programming", "Graph Algorithms", "Greedy Algorithms"},
	"Databases":            {"SQL Basics", "Database Design and ER Model", "Normalisation", "Transaction Management", "NoSQL Databases"},
	"Operating Systems":    {"Process Management", "CPU Scheduling", "Memory Management", "File Systems", "Synchronisation and Deadlocks"},
	"Computer Networks":    {"OSI and TCP/IP Model", "Network Layer and IP", "Transport Layer", "Network Security"},
	"Machine Learning":     {"Supervised Learning", "Unsupervised Learning", "Neural Networks", "Deep Learning"},
	"Web Development":      {"HTML and CSS", "JavaScript", "Frontend Frameworks", "Backend Development", "REST APIs"},
	"Programming":          {"Variables and Data Types", "Control Flow", "Functions and Recursion", "Object-Oriented Programming"},
	"Software Engineering": {"Design Patterns", "Software Testing", "Agile and DevOps"},
}

// domainRule 关键词命中即路由到对应领域，规则按序匹配，先命中先得
type domainRule struct {
	Keywords []string
	Domain   string
}

var domainRules = []domainRule{
	{[]string{"data struct", "dsa", "tree", "linked", "stack", "queue", "heap", "hash"}, "Data Structures"},
	{[]string{"algorithm", "sort", "dynamic", "greedy", "big-o", "complexity"}, "Algorithms"},
	{[]string{"database", "sql", "dbms", "normalisation", "relation"}, "Databases"},
	{[]string{"operating system", "os ", "process", "scheduling", "memory"}, "Operating Systems"},
	{[]string{"network", "tcp", "ip", "protocol", "osi", "http"}, "Computer Networks"},
	{[]string{"machine learning", "ml", "neural", "deep learning", "supervised"}, "Machine Learning"},
	{[]string{"web", "html", "css", "javascript", "react", "frontend", "backend"}, "Web Development"},
	{[]string{"programming", "python", "java", "c++", "oop", "function"}, "Programming"},
	{[]string{"software", "design pattern", "testing", "agile", "devops"}, "Software Engineering"},
}

// 每条学习路径最多覆盖的主题数
const maxPathTopics = 4

var defaultLearningPath = []string{"Programming Fundamentals", "Data Structures", "Algorithms", "Databases"}

// LearningService 自适应学习流水线：规划路径 → 逐主题生成讲义和测验 →
// 掌握度评估与个性化反馈 → 总结。
type LearningService struct {
	llm     LLMGateway
	dataset *DatasetService

	mu  sync.Mutex
	rng *rand.Rand
}

func NewLearningService(llm LLMGateway, dataset *DatasetService) *LearningService {
	return &LearningService{
		llm:     llm,
		dataset: dataset,
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// SetRandSource 固定随机源，测试用
func (s *LearningService) SetRandSource(src rand.Source) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rng = rand.New(src)
}

// Plan 把学习目标映射成至多4个主题的路径。
// 先做关键词路由；不命中时让模型从主题清单里挑，挑出的主题必须
// 存在于图谱中才算有效；最后兜底为固定默认路径。
func (s *LearningService) Plan(ctx context.Context, goal string) []string {
	gl := strings.ToLower(goal)
	for _, rule := range domainRules {
		for _, kw := range rule.Keywords {
			if strings.Contains(gl, kw) {
				topics := knowledgeGraph[rule.Domain]
				if len(topics) > maxPathTopics {
					topics = topics[:maxPathTopics]
				}
				return topics
			}
		}
	}

	all := allTopics()
	candidates := all
	if len(candidates) > 30 {
		candidates = candidates[:30]
	}
	prompt := fmt.Sprintf(`Pick 4 topics from this list for goal: "%s"
Topics: %v
Return JSON array of 4 exact topic names.`, goal, candidates)

	var picked []string
	if err := s.llm.AskJSON(ctx, prompt, true, &picked); err == nil && len(picked) > 0 {
		valid := make([]string, 0, maxPathTopics)
		for _, t := range picked {
			if isKnownTopic(t) {
				valid = append(valid, t)
				if len(valid) == maxPathTopics {
					break
				}
			}
		}
		if len(valid) > 0 {
			return valid
		}
	}

	return defaultLearningPath
}

// GenerateContent 生成主题讲义。同一主题的讲义稳定，走缓存。
func (s *LearningService) GenerateContent(ctx context.Context, topic string) string {
	prompt := fmt.Sprintf(`Write educational content for a B.Tech Computer Science student.

Topic: %s

Sections:
## Introduction
Why this topic matters + 2 real-world applications.

## Core Concepts
3-4 paragraphs: precise definitions, how it works, time/space complexity where relevant.

## Examples
2-3 concrete worked examples with pseudocode or Python where helpful.

## Key Takeaways
7 bullet points: definitions, complexity, pitfalls, interview tips.

Be rigorous, precise, exam-focused.`, topic)

	return s.llm.Ask(ctx, prompt, true)
}

// GenerateQuestions 每个主题出4道测验题，难度各一档；
// 模型回复不可用时退回2道各10分的通用题。
func (s *LearningService) GenerateQuestions(ctx context.Context, topic string) []model.QuizQuestion {
	prompt := fmt.Sprintf(`Create 4 exam-quality questions on: %s
One at each level: easy (definition), medium (application), hard (analysis), advanced (design).
Return ONLY JSON array:
[{"question":"...","difficulty":"easy|medium|hard|advanced","correct_answer":"...","marks":10}]`, topic)

	var questions []model.QuizQuestion
	if err := s.llm.AskJSON(ctx, prompt, true, &questions); err != nil || len(questions) == 0 {
		return []model.QuizQuestion{
			{Question: fmt.Sprintf("Define and explain %s.", topic), Difficulty: "easy", CorrectAnswer: "See course notes.", Marks: 10},
			{Question: fmt.Sprintf("Apply %s to solve a real problem.", topic), Difficulty: "medium", CorrectAnswer: "Application example.", Marks: 10},
		}
	}
	return questions
}

// ComputeMasteryAndFeedback 以 [45,85) 的模拟参与度结合数据集估算掌握度，
// 再生成针对该主题的学习反馈。反馈与本次掌握度绑定，不走缓存。
func (s *LearningService) ComputeMasteryAndFeedback(ctx context.Context, topic string) (float64, string) {
	s.mu.Lock()
	engagement := 45 + s.rng.Float64()*40
	s.mu.Unlock()

	mastery := s.dataset.ComputeMastery(engagement)
	summary := s.dataset.Summary()

	prompt := fmt.Sprintf(`Personalised study feedback.
Topic: %s | Mastery: %.1f%% | Dataset avg: %.1f%%
Write 3 paragraphs: (1) what was achieved (2) one area to strengthen (3) next step + encouragement.`,
		topic, mastery*100, summary.AvgPerformance*100)

	return mastery, s.llm.Ask(ctx, prompt, false)
}

// Run 执行完整学习会话，主题按路径顺序依次处理
func (s *LearningService) Run(ctx context.Context, goal string) model.LearningSessionResult {
	path := s.Plan(ctx, goal)

	topics := make([]model.LearningTopicResult, 0, len(path))
	var sum float64
	for _, topic := range path {
		content := s.GenerateContent(ctx, topic)
		questions := s.GenerateQuestions(ctx, topic)
		mastery, feedback := s.ComputeMasteryAndFeedback(ctx, topic)
		sum += mastery
		topics = append(topics, model.LearningTopicResult{
			Topic:     topic,
			Mastery:   mastery,
			Content:   content,
			Questions: questions,
			Feedback:  feedback,
		})
	}

	avg := 0.0
	if len(topics) > 0 {
		avg = util.Round3(sum / float64(len(topics)))
	}

	wrapUp := s.llm.Ask(ctx, fmt.Sprintf(
		`Wrap up a learning session. Goal: "%s". Topics: %v. Avg mastery: %.1f%%. Write 2 encouraging sentences and suggest what to study next.`,
		goal, path, avg*100), false)

	return model.LearningSessionResult{
		LearningPath:  path,
		TopicsCovered: topics,
		AvgMastery:    avg,
		FeedbackText:  wrapUp,
	}
}

// TopicCount 图谱中可学习的主题总数
func (s *LearningService) TopicCount() int {
	n := 0
	for _, topics := range knowledgeGraph {
		n += len(topics)
	}
	return n
}

func allTopics() []string {
	out := make([]string, 0, 48)
	for _, rule := range domainRules {
		out = append(out, knowledgeGraph[rule.Domain]...)
	}
	return out
}

func isKnownTopic(topic string) bool {
	for _, topics := range knowledgeGraph {
		for _, t := range topics {
			if t == topic {
				return true
			}
		}
	}
	return false
}

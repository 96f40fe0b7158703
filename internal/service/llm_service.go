package service

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"eduagent_backend/internal/config"
	"eduagent_backend/pkg/logger"
	"eduagent_backend/pkg/monitoring"

	"github.com/go-redis/redis/v8"
	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// 未配置API Key或调用失败时的哨兵文本。网关对调用方永不返回error，
// 失败一律降级为占位文本，由各调用点的解析回退兜底。
const (
	llmNotConfiguredText = "[LLM not configured — set GROQ_API_KEY]"
	llmErrorPrefix       = "[LLM error: "
)

// LLMGateway 大模型网关的调用方视角。各业务服务依赖该接口，便于测试替换。
type LLMGateway interface {
	// Ask 发送提示词并返回原始文本。任何失败都返回哨兵文本，不返回error。
	Ask(ctx context.Context, prompt string, cache bool) string
	// AskJSON 调用Ask后剥掉Markdown围栏并解析JSON到v。
	// 解析失败返回error，调用方必须以固定回退值兜底。
	AskJSON(ctx context.Context, prompt string, cache bool, v interface{}) error
	Provider() string
}

// LLMService OpenAI兼容网关实现：Groq为主，OpenRouter为备用，先配置的生效。
// 响应按提示词MD5缓存，Redis可用时写Redis（带TTL），否则退回进程内map。
type LLMService struct {
	client      *openai.Client
	model       string
	provider    string
	temperature float32
	maxTokens   int
	timeout     time.Duration
	cacheTTL    time.Duration

	rdb *redis.Client

	mu    sync.Mutex
	local map[string]string
}

func NewLLMService(cfg config.LLMConfig, rdb *redis.Client) *LLMService {
	s := &LLMService{
		provider:    "uninitialised",
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
		timeout:     cfg.RequestTimeout,
		cacheTTL:    cfg.CacheTTL,
		rdb:         rdb,
		local:       make(map[string]string),
	}

	switch {
	case cfg.GroqAPIKey != "":
		c := openai.DefaultConfig(cfg.GroqAPIKey)
		c.BaseURL = cfg.GroqBaseURL
		s.client = openai.NewClientWithConfig(c)
		s.model = cfg.ModelPrimary
		s.provider = "Groq/" + cfg.ModelPrimary
	case cfg.OpenRouterAPIKey != "":
		c := openai.DefaultConfig(cfg.OpenRouterAPIKey)
		c.BaseURL = cfg.OpenRouterBaseURL
		s.client = openai.NewClientWithConfig(c)
		s.model = cfg.ModelFallback
		s.provider = "OpenRouter/" + cfg.ModelFallback
	default:
		logger.Log.Warn("No LLM API key found, gateway will return placeholder responses")
	}

	if s.client != nil {
		logger.Log.Info("LLM gateway initialized", zap.String("provider", s.provider))
	}

	return s
}

func (s *LLMService) Provider() string {
	return s.provider
}

func (s *LLMService) Ask(ctx context.Context, prompt string, cache bool) string {
	if s.client == nil {
		monitoring.LLMCallCounter.WithLabelValues(s.provider, "not_configured").Inc()
		return llmNotConfiguredText
	}

	key := cacheKey(prompt)
	if cache {
		if out, ok := s.cacheGet(ctx, key); ok {
			monitoring.LLMCallCounter.WithLabelValues(s.provider, "cache_hit").Inc()
			return out
		}
	}

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	resp, err := s.client.CreateChatCompletion(callCtx, openai.ChatCompletionRequest{
		Model:       s.model,
		Temperature: s.temperature,
		MaxTokens:   s.maxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	monitoring.LLMCallDuration.WithLabelValues(s.provider).Observe(time.Since(start).Seconds())

	if err != nil {
		monitoring.LLMCallCounter.WithLabelValues(s.provider, "error").Inc()
		logger.Log.Warn("LLM call failed", zap.Error(err))
		return llmErrorPrefix + err.Error() + "]"
	}
	if len(resp.Choices) == 0 {
		monitoring.LLMCallCounter.WithLabelValues(s.provider, "error").Inc()
		return llmErrorPrefix + "no choices returned]"
	}

	out := resp.Choices[0].Message.Content
	if cache {
		s.cacheSet(ctx, key, out)
	}
	monitoring.LLMCallCounter.WithLabelValues(s.provider, "ok").Inc()
	return out
}

func (s *LLMService) AskJSON(ctx context.Context, prompt string, cache bool, v interface{}) error {
	raw := s.Ask(ctx, prompt, cache)
	return json.Unmarshal([]byte(ExtractJSON(raw)), v)
}

// ExtractJSON 从自由文本回复中剥离Markdown代码围栏，返回疑似JSON的片段。
// 模型经常把JSON包在 ```json ... ``` 里，即使提示词要求纯JSON。
func ExtractJSON(raw string) string {
	for _, tag := range []string{"```json", "```"} {
		if strings.Contains(raw, tag) {
			raw = strings.SplitN(raw, tag, 2)[1]
			raw = strings.SplitN(raw, "```", 2)[0]
		}
	}
	return strings.TrimSpace(raw)
}

func cacheKey(prompt string) string {
	sum := md5.Sum([]byte(prompt))
	return "llm:cache:" + hex.EncodeToString(sum[:])
}

func (s *LLMService) cacheGet(ctx context.Context, key string) (string, bool) {
	if s.rdb != nil {
		out, err := s.rdb.Get(ctx, key).Result()
		if err == nil {
			return out, true
		}
		if err != redis.Nil {
			logger.Log.Warn("LLM cache read failed", zap.Error(err))
		}
		return "", false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	out, ok := s.local[key]
	return out, ok
}

func (s *LLMService) cacheSet(ctx context.Context, key, value string) {
	if s.rdb != nil {
		if err := s.rdb.Set(ctx, key, value, s.cacheTTL).Err(); err != nil {
			logger.Log.Warn("LLM cache write failed", zap.Error(err))
		}
		return
	}

	s.mu.Lock()
	s.local[key] = value
	s.mu.Unlock()
}

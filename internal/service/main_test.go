package service

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"testing"

	"eduagent_backend/pkg/logger"

	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	logger.Log = zap.NewNop()
	os.Exit(m.Run())
}

// fakeLLM 测试用网关。jsonFn 为空时 AskJSON 一律失败，逼出调用方的回退路径。
type fakeLLM struct {
	askFn  func(prompt string) string
	jsonFn func(prompt string, v interface{}) error
}

func (f *fakeLLM) Ask(_ context.Context, prompt string, _ bool) string {
	if f.askFn != nil {
		return f.askFn(prompt)
	}
	return ""
}

func (f *fakeLLM) AskJSON(_ context.Context, prompt string, _ bool, v interface{}) error {
	if f.jsonFn != nil {
		return f.jsonFn(prompt, v)
	}
	return errors.New("llm unavailable")
}

func (f *fakeLLM) Provider() string { return "fake" }

// jsonInto 构造把固定JSON解析进v的jsonFn
func jsonInto(data string) func(string, interface{}) error {
	return func(_ string, v interface{}) error {
		return json.Unmarshal([]byte(data), v)
	}
}

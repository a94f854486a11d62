package handlers

import (
	"context"

	"go.uber.org/zap"
)

func testLogger() *zap.Logger {
	return zap.NewNop()
}

type mockProvider struct {
	analyzeFn func(ctx context.Context, prompt string) (string, error)
}

func (m *mockProvider) Analyze(ctx context.Context, prompt string) (string, error) {
	if m.analyzeFn == nil {
		return "", nil
	}
	return m.analyzeFn(ctx, prompt)
}

func (m *mockProvider) GetProviderName() string { return "mock" }

type mockPromptManager struct {
	buildPromptFn func(mode string, data map[string]string) (string, error)
}

func (m *mockPromptManager) BuildPrompt(mode string, data map[string]string) (string, error) {
	if m.buildPromptFn == nil {
		return "mock prompt", nil
	}
	return m.buildPromptFn(mode, data)
}

func (m *mockPromptManager) Modes() []string {
	return []string{"analysis", "followups", "personalized", "coaching"}
}
